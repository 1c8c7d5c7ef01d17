package calibration

import (
	"strings"

	"gonum.org/v1/gonum/stat"

	"github.com/evenwalser/ai-measurement/internal/geometry"
)

// Dimensions is a physical width × height in centimeters.
type Dimensions struct {
	WidthCm  float64 `json:"width_cm"`
	HeightCm float64 `json:"height_cm"`
}

// StandardDimensions maps recognized object labels to typical real-world
// sizes. Detected objects outside this table contribute nothing to the
// aggregate.
var StandardDimensions = map[string]Dimensions{
	"door":         {WidthCm: 90, HeightCm: 210},
	"chair":        {WidthCm: 45, HeightCm: 85},
	"table":        {WidthCm: 120, HeightCm: 75},
	"sofa":         {WidthCm: 180, HeightCm: 85},
	"bed":          {WidthCm: 160, HeightCm: 50},
	"desk":         {WidthCm: 120, HeightCm: 75},
	"refrigerator": {WidthCm: 75, HeightCm: 180},
	"toilet":       {WidthCm: 40, HeightCm: 40},
	"sink":         {WidthCm: 60, HeightCm: 30},
	"bathtub":      {WidthCm: 170, HeightCm: 55},
}

// StandardWallHeightCm is the assumed ceiling height when only walls are
// available as evidence.
const StandardWallHeightCm = 250.0

// wallRatioWeight discounts the wall fallback: wall-based estimates are
// inherently less reliable than object-based ones.
const wallRatioWeight = 0.7

// DefaultAggregateFactor is returned when neither objects nor walls yield a
// single ratio. Callers must treat zero-ratio results as low confidence.
const DefaultAggregateFactor = 0.1

// AggregateDimensions computes a calibration factor from detected objects
// and walls.
//
// Every recognized object contributes a width ratio (standard width over
// detected width) and a height ratio, each weighted by the object's
// detection confidence; dimensions that are not strictly positive are
// skipped. When no object contributes, the mean wall length stands in for
// the standard wall height at reduced weight. The factor is the weighted
// mean of all ratios; ratios reports how many contributed, with 0 marking
// the documented default.
func AggregateDimensions(objects []geometry.DetectedObject, walls []geometry.Wall) (factor float64, ratios int) {
	var values, weights []float64

	for _, obj := range objects {
		std, ok := StandardDimensions[strings.ToLower(obj.Label)]
		if !ok {
			continue
		}
		if obj.WidthCm > 0 {
			values = append(values, std.WidthCm/obj.WidthCm)
			weights = append(weights, obj.Confidence)
		}
		if obj.HeightCm > 0 {
			values = append(values, std.HeightCm/obj.HeightCm)
			weights = append(weights, obj.Confidence)
		}
	}

	if len(values) == 0 && len(walls) > 0 {
		var total float64
		for _, w := range walls {
			total += w.Length()
		}
		// Degenerate walls (all endpoints coincident) carry no scale
		// information; without the guard the ratio would be non-finite.
		avgLengthCm := total / float64(len(walls)) * 100
		if avgLengthCm > 0 {
			values = append(values, StandardWallHeightCm/avgLengthCm)
			weights = append(weights, wallRatioWeight)
		}
	}

	if len(values) == 0 {
		return DefaultAggregateFactor, 0
	}
	return stat.Mean(values, weights), len(values)
}
