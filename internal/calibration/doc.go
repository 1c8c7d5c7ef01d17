// Package calibration estimates a pixel-to-real-world scale factor
// (cm/pixel) for a 2-D image from one of several evidence sources.
//
// # Strategies
//
// Four strategies produce a Result with the same shape:
//
//   - direct: a pre-computed factor supplied by the caller
//   - height: a person of known physical height measured in pixels
//   - spatial: depth/point-cloud data run through layout inference, with
//     detected walls and objects aggregated against standard dimensions
//   - reference: an object of known physical size (A4 paper, credit card, …)
//     measured in pixels
//
// The Orchestrator selects among them with the fixed precedence
// direct > height > spatial > reference and attaches a per-method confidence.
//
// # Failure Policy
//
// The spatial path never hard-fails a request: any failure inside it (a
// missing inference backend, a build error, unusable layout text) degrades
// into a fixed-factor fallback Result with Fallback set. All other strategy
// failures propagate to the caller as an *Error naming the method.
package calibration
