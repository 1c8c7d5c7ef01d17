package detect

import (
	"fmt"
	"image"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/evenwalser/ai-measurement/internal/calibration"
)

// RectangleReferenceDetector locates a flat reference object (sheet of
// paper, card, ruler) by finding the edge contour whose bounding box best
// matches the object's aspect ratio and color uniformity. When nothing
// plausible is found it falls back to a fixed-fraction estimate so purely
// synthetic inputs still calibrate.
type RectangleReferenceDetector struct {
	// EdgeThreshold is the luminance gradient that counts as an edge.
	EdgeThreshold float64
	// MinContour discards edge fragments below this pixel count.
	MinContour int
	// MaxAspectError rejects candidates whose width/height ratio deviates
	// from the reference object's by more than this fraction.
	MaxAspectError float64
	// WidthFraction sizes the fallback estimate relative to image width.
	WidthFraction float64
}

var _ calibration.ReferenceDetector = (*RectangleReferenceDetector)(nil)

// NewRectangleReferenceDetector returns a detector with defaults that work
// for a reference object photographed face-on filling a reasonable share of
// the frame.
func NewRectangleReferenceDetector() *RectangleReferenceDetector {
	return &RectangleReferenceDetector{
		EdgeThreshold:  30,
		MinContour:     40,
		MaxAspectError: 0.35,
		WidthFraction:  0.3,
	}
}

// DetectReference reports the pixel extents of the reference object with
// physical dimensions dims.
func (d *RectangleReferenceDetector) DetectReference(img image.Image, dims calibration.Dimensions) (float64, float64, error) {
	if dims.WidthCm <= 0 || dims.HeightCm <= 0 {
		return 0, 0, fmt.Errorf("reference dimensions must be positive, got %gx%g cm", dims.WidthCm, dims.HeightCm)
	}
	wantAspect := dims.WidthCm / dims.HeightCm

	if best, ok := d.bestCandidate(img, wantAspect); ok {
		return float64(best.width()), float64(best.height()), nil
	}

	// Nothing plausible in the frame: assume the object occupies a fixed
	// fraction of the width at its true aspect ratio.
	bounds := img.Bounds()
	widthPx := float64(bounds.Dx()) * d.WidthFraction
	heightPx := widthPx / wantAspect
	return widthPx, heightPx, nil
}

// bestCandidate scores edge components against the wanted aspect ratio and
// interior color uniformity, returning the best match.
func (d *RectangleReferenceDetector) bestCandidate(img image.Image, wantAspect float64) (component, bool) {
	mask := edgeMask(img, d.EdgeThreshold)
	components := findComponents(mask, d.MinContour)

	var best component
	bestScore := 0.0
	for _, c := range components {
		if c.width() < 4 || c.height() < 4 {
			continue
		}
		aspect := float64(c.width()) / float64(c.height())
		aspectErr := abs(aspect-wantAspect) / wantAspect
		if aspectErr > d.MaxAspectError {
			continue
		}

		// A flat reference object has a near-uniform interior; score color
		// spread perceptually so lighting gradients are tolerated.
		score := (1 - aspectErr) * colorUniformity(img, c)
		if score > bestScore {
			best = c
			bestScore = score
		}
	}
	return best, bestScore > 0
}

// colorUniformity samples a 3x3 grid inside the component's bounding box and
// returns 1 minus the mean Lab distance to the grid's center sample, clamped
// to [0,1]. Uniform regions score near 1.
func colorUniformity(img image.Image, c component) float64 {
	b := img.Bounds()
	sample := func(fx, fy float64) (colorful.Color, bool) {
		x := b.Min.X + c.minX + int(fx*float64(c.width()-1))
		y := b.Min.Y + c.minY + int(fy*float64(c.height()-1))
		return colorful.MakeColor(img.At(x, y))
	}

	center, ok := sample(0.5, 0.5)
	if !ok {
		return 0
	}

	var total float64
	var n int
	for _, fy := range []float64{0.25, 0.5, 0.75} {
		for _, fx := range []float64{0.25, 0.5, 0.75} {
			if fx == 0.5 && fy == 0.5 {
				continue
			}
			col, ok := sample(fx, fy)
			if !ok {
				continue
			}
			total += center.DistanceLab(col)
			n++
		}
	}
	if n == 0 {
		return 0
	}

	uniformity := 1 - total/float64(n)
	if uniformity < 0 {
		return 0
	}
	return uniformity
}
