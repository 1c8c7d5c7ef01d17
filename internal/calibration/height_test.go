package calibration

import (
	"errors"
	"math"
	"testing"
)

func TestHeightFactor(t *testing.T) {
	factor, err := HeightFactor(175, 500)
	if err != nil {
		t.Fatalf("HeightFactor failed: %v", err)
	}
	if math.Abs(factor-0.35) > 1e-9 {
		t.Errorf("factor = %g, want 0.35", factor)
	}
}

func TestHeightFactorMonotonic(t *testing.T) {
	const heightPx = 500.0

	prev := 0.0
	for _, cm := range []float64{150, 160, 175, 190, 210} {
		factor, err := HeightFactor(cm, heightPx)
		if err != nil {
			t.Fatalf("HeightFactor(%g) failed: %v", cm, err)
		}
		if factor <= prev {
			t.Errorf("factor %g for %g cm not greater than previous %g", factor, cm, prev)
		}
		// Linear in heightCm for fixed pixel height.
		if math.Abs(factor-cm/heightPx) > 1e-12 {
			t.Errorf("factor = %g, want %g", factor, cm/heightPx)
		}
		prev = factor
	}
}

func TestHeightFactorErrors(t *testing.T) {
	tests := []struct {
		name               string
		heightCm, heightPx float64
		wantNotDetected    bool
	}{
		{"zero pixels", 175, 0, true},
		{"negative pixels", 175, -10, true},
		{"zero cm", 0, 500, false},
		{"negative cm", -175, 500, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := HeightFactor(tt.heightCm, tt.heightPx)
			if err == nil {
				t.Fatal("expected error")
			}
			if errors.Is(err, ErrPersonNotDetected) != tt.wantNotDetected {
				t.Errorf("errors.Is(err, ErrPersonNotDetected) = %v, want %v", !tt.wantNotDetected, tt.wantNotDetected)
			}

			var calErr *Error
			if !errors.As(err, &calErr) {
				t.Fatalf("error %v is not a *calibration.Error", err)
			}
			if calErr.Method != MethodHeight {
				t.Errorf("error method = %q, want height", calErr.Method)
			}
		})
	}
}
