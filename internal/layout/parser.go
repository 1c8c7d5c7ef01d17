// Package layout parses line-oriented scene-layout text produced by spatial
// inference into walls and detected objects.
//
// The grammar is one directive per line:
//
//	WALL x1 y1 z1 x2 y2 z2
//	OBJECT label x y z length width height theta phi psi [confidence]
//
// Linear coordinates and extents are in meters; object extents are converted
// to centimeters on parse. Inference output is noisy, so parsing is
// deliberately conservative: lines that match neither directive, carry too
// few fields, or contain non-numeric fields are skipped, never fatal. Only
// an entirely empty input is an error.
package layout

import (
	"errors"
	"strconv"
	"strings"

	"github.com/golang/geo/r3"

	"github.com/evenwalser/ai-measurement/internal/geometry"
)

// ErrEmptyLayout indicates layout text with no content at all.
var ErrEmptyLayout = errors.New("empty layout text")

// defaultObjectConfidence is assumed when an OBJECT directive omits its
// trailing confidence field.
const defaultObjectConfidence = 0.9

// metersToCm converts the layout's source unit to centimeters.
const metersToCm = 100

// Parse extracts walls and objects from layout text, skipping anything
// malformed.
func Parse(text string) ([]geometry.Wall, []geometry.DetectedObject, error) {
	if strings.TrimSpace(text) == "" {
		return nil, nil, ErrEmptyLayout
	}

	var walls []geometry.Wall
	var objects []geometry.DetectedObject

	for _, line := range strings.Split(text, "\n") {
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		switch fields[0] {
		case "WALL":
			if w, ok := parseWall(fields[1:]); ok {
				walls = append(walls, w)
			}
		case "OBJECT":
			if o, ok := parseObject(fields[1:]); ok {
				objects = append(objects, o)
			}
		}
	}
	return walls, objects, nil
}

// parseWall reads x1 y1 z1 x2 y2 z2 from the fields after the WALL token.
func parseWall(fields []string) (geometry.Wall, bool) {
	nums, ok := parseFloats(fields, 6)
	if !ok {
		return geometry.Wall{}, false
	}
	return geometry.Wall{
		Start: r3.Vector{X: nums[0], Y: nums[1], Z: nums[2]},
		End:   r3.Vector{X: nums[3], Y: nums[4], Z: nums[5]},
	}, true
}

// parseObject reads label x y z length width height theta phi psi
// [confidence] from the fields after the OBJECT token.
func parseObject(fields []string) (geometry.DetectedObject, bool) {
	if len(fields) < 10 {
		return geometry.DetectedObject{}, false
	}
	label := fields[0]
	nums, ok := parseFloats(fields[1:], 9)
	if !ok {
		return geometry.DetectedObject{}, false
	}

	confidence := defaultObjectConfidence
	if len(fields) > 10 {
		c, err := strconv.ParseFloat(fields[10], 64)
		if err != nil {
			return geometry.DetectedObject{}, false
		}
		// Inference output can carry scores outside [0,1]; clamp so the
		// aggregator's weights stay within the documented range.
		switch {
		case c < 0:
			confidence = 0
		case c > 1:
			confidence = 1
		default:
			confidence = c
		}
	}

	return geometry.DetectedObject{
		Label:       label,
		Position:    r3.Vector{X: nums[0], Y: nums[1], Z: nums[2]},
		LengthCm:    nums[3] * metersToCm,
		WidthCm:     nums[4] * metersToCm,
		HeightCm:    nums[5] * metersToCm,
		Orientation: geometry.Orientation{Theta: nums[6], Phi: nums[7], Psi: nums[8]},
		Confidence:  confidence,
	}, true
}

// parseFloats parses exactly n leading fields as floats.
func parseFloats(fields []string, n int) ([]float64, bool) {
	if len(fields) < n {
		return nil, false
	}
	nums := make([]float64, n)
	for i := 0; i < n; i++ {
		f, err := strconv.ParseFloat(fields[i], 64)
		if err != nil {
			return nil, false
		}
		nums[i] = f
	}
	return nums, true
}
