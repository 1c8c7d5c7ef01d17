// Package geometry holds the shared spatial data model for calibration:
// camera intrinsics, depth maps, colored 3-D points, walls, and detected
// objects.
//
// # Coordinate System
//
// Pixel coordinates are 0-based with (0,0) at the top-left corner, X
// increasing rightward and Y downward. Back-projected 3-D coordinates follow
// the pinhole camera convention: X right, Y down, Z forward along the optical
// axis, in the same physical units as the source depth samples.
//
// # Depth Samples
//
// Depth maps store samples row-major, one float per pixel. A sample <= 0
// means "no depth at this pixel" and is excluded from all downstream
// geometry; it is never zero-filled.
package geometry
