package calibration

import "fmt"

// HeightFactor converts a person's known physical height and detected pixel
// height into a calibration factor.
//
// heightPx comes from a person-detection collaborator; a non-positive value
// means the detector produced nothing usable and yields ErrPersonNotDetected.
func HeightFactor(heightCm, heightPx float64) (float64, error) {
	if heightCm <= 0 {
		return 0, methodError(MethodHeight, fmt.Errorf("person height must be positive, got %g cm", heightCm))
	}
	if heightPx <= 0 {
		return 0, methodError(MethodHeight, ErrPersonNotDetected)
	}
	return heightCm / heightPx, nil
}
