// Package measure converts pixel-space body measurements into physical
// units using a calibration factor.
//
// The measurement pipeline itself (keypoint extraction and pixel-space
// measurement) is an external collaborator; this package owns only the
// narrow produced contract: a named set of pixel baselines scaled by
// cm/pixel and rounded for presentation.
package measure

import (
	"fmt"
	"math"
)

// Baselines is a named set of pixel-space measurements for one capture.
type Baselines map[string]float64

// Measurements maps measurement names to centimeters.
type Measurements map[string]float64

// DefaultBaselines approximates a full-body frontal capture of an average
// adult. Development and demo setups use these when no measurement
// collaborator is wired in.
func DefaultBaselines() Baselines {
	return Baselines{
		"height":              1755,
		"shoulder_width":      457,
		"chest_circumference": 982,
		"waist_circumference": 846,
		"hip_circumference":   1023,
		"inseam":              815,
		"arm_length":          658,
		"neck_circumference":  389,
		"shoulder_to_waist":   432,
		"waist_to_hip":        221,
		"thigh_circumference": 587,
		"calf_circumference":  364,
		"bicep_circumference": 328,
		"wrist_circumference": 165,
	}
}

// Scale converts pixel baselines to centimeters with the given calibration
// factor, rounding to one decimal place.
func Scale(baselines Baselines, factor float64) (Measurements, error) {
	if factor <= 0 {
		return nil, fmt.Errorf("calibration factor must be positive, got %g", factor)
	}

	out := make(Measurements, len(baselines))
	for name, px := range baselines {
		out[name] = math.Round(px*factor*10) / 10
	}
	return out, nil
}
