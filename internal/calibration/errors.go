package calibration

import (
	"errors"
	"fmt"
)

// Sentinel errors for the calibration failure taxonomy. Match with
// errors.Is; user-facing errors are wrapped in *Error so they also carry
// the originating method.
var (
	// ErrPersonNotDetected indicates the person detector found no usable
	// landmarks or contour in the image.
	ErrPersonNotDetected = errors.New("could not detect a full person in the image")

	// ErrUnknownReferenceObject indicates a reference-object name outside
	// the known-dimensions table, with no custom dimensions supplied.
	ErrUnknownReferenceObject = errors.New("unknown reference object type")

	// ErrNoCalibrationInputs indicates a request that no strategy can
	// serve.
	ErrNoCalibrationInputs = errors.New("no calibration inputs provided: supply a factor, person height, spatial data, or reference object")

	// ErrSpatialUnavailable indicates the layout-inference backend is not
	// configured. It is always recovered into a fallback Result, never
	// surfaced to callers.
	ErrSpatialUnavailable = errors.New("spatial inference backend unavailable")
)

// Error is a calibration failure tagged with the strategy that produced it.
type Error struct {
	Method Method
	Err    error
}

func (e *Error) Error() string {
	if e.Method == "" {
		return fmt.Sprintf("calibration: %v", e.Err)
	}
	return fmt.Sprintf("%s calibration: %v", e.Method, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// methodError wraps err with the originating method.
func methodError(m Method, err error) *Error {
	return &Error{Method: m, Err: err}
}
