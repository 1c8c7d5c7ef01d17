package detect

import (
	"context"
	"fmt"
	"strings"

	"github.com/evenwalser/ai-measurement/internal/calibration"
	"github.com/evenwalser/ai-measurement/internal/geometry"
)

// StaticLayoutInferencer returns canned layout text regardless of input.
// Useful for development and tests.
type StaticLayoutInferencer struct {
	Text string
}

var _ calibration.LayoutInferencer = StaticLayoutInferencer{}

func (s StaticLayoutInferencer) InferLayout(context.Context, geometry.PointCloud) (string, error) {
	return s.Text, nil
}

// BoundsLayoutInferencer is a geometric stand-in for a learned spatial
// model: it reads the cloud's bounding box as a room and emits the four
// perimeter walls at floor level. The wall lengths feed the aggregator's
// wall fallback, giving development setups a working spatial path without a
// model backend.
type BoundsLayoutInferencer struct{}

var _ calibration.LayoutInferencer = BoundsLayoutInferencer{}

// InferLayout emits WALL directives for the cloud's floor-plan perimeter.
func (BoundsLayoutInferencer) InferLayout(ctx context.Context, cloud geometry.PointCloud) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	min, max, ok := cloud.Bounds()
	if !ok {
		return "", fmt.Errorf("cannot infer layout from an empty point cloud")
	}

	// Floor plane at max Y (Y grows downward in camera space); walls trace
	// the X/Z extent of the cloud.
	y := max.Y
	corners := [4][2]float64{
		{min.X, min.Z},
		{max.X, min.Z},
		{max.X, max.Z},
		{min.X, max.Z},
	}

	var sb strings.Builder
	for i := range corners {
		a := corners[i]
		b := corners[(i+1)%4]
		fmt.Fprintf(&sb, "WALL %g %g %g %g %g %g\n", a[0], y, a[1], b[0], y, b[1])
	}
	return sb.String(), nil
}
