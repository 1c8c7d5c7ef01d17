package calibration

import "fmt"

// ReferenceObjects maps well-known reference object names to their physical
// dimensions. Callers with an object outside this table supply custom
// dimensions instead.
var ReferenceObjects = map[string]Dimensions{
	"a4_paper":     {WidthCm: 21.0, HeightCm: 29.7},
	"letter_paper": {WidthCm: 21.59, HeightCm: 27.94},
	"credit_card":  {WidthCm: 8.56, HeightCm: 5.398},
	"dollar_bill":  {WidthCm: 15.6, HeightCm: 6.6},
	"euro_bill":    {WidthCm: 12.0, HeightCm: 6.2},
	"30cm_ruler":   {WidthCm: 30.0, HeightCm: 3.0},
}

// ReferenceDimensions looks up the physical dimensions of a named reference
// object.
func ReferenceDimensions(name string) (Dimensions, error) {
	dims, ok := ReferenceObjects[name]
	if !ok {
		return Dimensions{}, methodError(MethodReference,
			fmt.Errorf("%w: %q", ErrUnknownReferenceObject, name))
	}
	return dims, nil
}

// ReferenceFactor derives a calibration factor from a reference object's
// known physical dimensions and its detected pixel dimensions. The width and
// height factors are averaged for robustness against slight perspective
// skew.
func ReferenceFactor(dims Dimensions, widthPx, heightPx float64) (float64, error) {
	if dims.WidthCm <= 0 || dims.HeightCm <= 0 {
		return 0, methodError(MethodReference,
			fmt.Errorf("reference dimensions must be positive, got %gx%g cm", dims.WidthCm, dims.HeightCm))
	}
	if widthPx <= 0 || heightPx <= 0 {
		return 0, methodError(MethodReference,
			fmt.Errorf("detected pixel dimensions must be positive, got %gx%g px", widthPx, heightPx))
	}
	return (dims.WidthCm/widthPx + dims.HeightCm/heightPx) / 2, nil
}
