// Package imaging loads and caches the photographs that calibration
// strategies measure against.
//
// Calibration requests frequently touch the same capture several times
// (person detection, reference detection, point-cloud coloring), so decoded
// images are cached by path. The cache is safe for concurrent use; decoded
// images are never mutated.
//
// Supported formats are those of the underlying imaging library: PNG, JPEG,
// GIF, TIFF, and BMP.
package imaging
