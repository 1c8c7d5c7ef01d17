// Package detect implements the detector collaborators consumed by the
// calibration orchestrator: person pixel-height detection, reference-object
// localization, and layout inference over point clouds.
//
// Each collaborator is a capability behind a small interface (declared in
// the calibration package) with an explicit not-detected outcome, so the
// calibration core never depends on a specific detection backend. The
// implementations here are classical image-processing baselines; model-based
// backends (pose estimators, object detectors, spatial language models) plug
// in behind the same interfaces.
//
// # Limitations
//
// The contour-based detectors assume a dark background with a bright
// subject (or the reverse) and reasonably clean images. Cluttered
// photographs may need a model-based backend for reliable results.
package detect
