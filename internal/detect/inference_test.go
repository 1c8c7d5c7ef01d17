package detect

import (
	"context"
	"math"
	"testing"

	"github.com/golang/geo/r3"

	"github.com/evenwalser/ai-measurement/internal/geometry"
	"github.com/evenwalser/ai-measurement/internal/layout"
)

func TestStaticLayoutInferencer(t *testing.T) {
	inf := StaticLayoutInferencer{Text: "WALL 0 0 0 1 0 0"}

	text, err := inf.InferLayout(context.Background(), nil)
	if err != nil {
		t.Fatalf("InferLayout failed: %v", err)
	}
	if text != "WALL 0 0 0 1 0 0" {
		t.Errorf("text = %q", text)
	}
}

func TestBoundsLayoutInferencer(t *testing.T) {
	// Cloud spanning a 4m x 3m floor plan.
	cloud := geometry.PointCloud{
		{Position: r3.Vector{X: 0, Y: 1.2, Z: 0}},
		{Position: r3.Vector{X: 4, Y: 0.5, Z: 3}},
		{Position: r3.Vector{X: 2, Y: 1.5, Z: 1}},
	}

	text, err := BoundsLayoutInferencer{}.InferLayout(context.Background(), cloud)
	if err != nil {
		t.Fatalf("InferLayout failed: %v", err)
	}

	walls, objects, err := layout.Parse(text)
	if err != nil {
		t.Fatalf("inferred layout does not parse: %v", err)
	}
	if len(objects) != 0 {
		t.Errorf("got %d objects, want 0", len(objects))
	}
	if len(walls) != 4 {
		t.Fatalf("got %d walls, want 4", len(walls))
	}

	// Perimeter of a 4x3 plan: two 4m walls and two 3m walls.
	var total float64
	for _, w := range walls {
		total += w.Length()
	}
	if math.Abs(total-14) > 1e-9 {
		t.Errorf("perimeter = %g, want 14", total)
	}
}

func TestBoundsLayoutInferencerEmptyCloud(t *testing.T) {
	if _, err := (BoundsLayoutInferencer{}).InferLayout(context.Background(), nil); err == nil {
		t.Error("expected error for empty cloud")
	}
}

func TestBoundsLayoutInferencerCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	cloud := geometry.PointCloud{{Position: r3.Vector{X: 1}}}
	if _, err := (BoundsLayoutInferencer{}).InferLayout(ctx, cloud); err == nil {
		t.Error("expected context error")
	}
}
