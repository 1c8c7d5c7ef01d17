package measure

import (
	"math"
	"testing"
)

func TestScale(t *testing.T) {
	baselines := Baselines{
		"height":         1755,
		"shoulder_width": 457,
	}

	got, err := Scale(baselines, 0.1)
	if err != nil {
		t.Fatalf("Scale failed: %v", err)
	}
	if got["height"] != 175.5 {
		t.Errorf("height = %g, want 175.5", got["height"])
	}
	if got["shoulder_width"] != 45.7 {
		t.Errorf("shoulder_width = %g, want 45.7", got["shoulder_width"])
	}
}

func TestScaleRounding(t *testing.T) {
	got, err := Scale(Baselines{"m": 333}, 0.123)
	if err != nil {
		t.Fatalf("Scale failed: %v", err)
	}
	// 333 * 0.123 = 40.959, rounded to one decimal.
	if math.Abs(got["m"]-41.0) > 1e-9 {
		t.Errorf("m = %g, want 41.0", got["m"])
	}
}

func TestScaleInvalidFactor(t *testing.T) {
	for _, factor := range []float64{0, -0.5} {
		if _, err := Scale(DefaultBaselines(), factor); err == nil {
			t.Errorf("Scale(factor=%g) should fail", factor)
		}
	}
}

func TestDefaultBaselinesComplete(t *testing.T) {
	baselines := DefaultBaselines()
	if len(baselines) != 14 {
		t.Errorf("got %d baselines, want 14", len(baselines))
	}
	for name, px := range baselines {
		if px <= 0 {
			t.Errorf("baseline %q = %g, want positive", name, px)
		}
	}
}
