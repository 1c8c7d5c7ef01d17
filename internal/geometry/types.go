package geometry

import (
	"errors"
	"fmt"

	"github.com/golang/geo/r3"
)

// ErrInvalidDepthFormat indicates a depth map whose sample buffer does not
// match its declared dimensions, or a depth payload that cannot be decoded.
var ErrInvalidDepthFormat = errors.New("invalid depth map format")

// Intrinsics holds pinhole camera parameters in pixel units.
type Intrinsics struct {
	Fx float64 `json:"fx"` // Focal length, horizontal
	Fy float64 `json:"fy"` // Focal length, vertical
	Cx float64 `json:"cx"` // Principal point, horizontal
	Cy float64 `json:"cy"` // Principal point, vertical
}

// DefaultIntrinsics approximates intrinsics for a sensor of the given pixel
// dimensions when none were supplied: focal length 0.8×width, principal
// point at the image center.
func DefaultIntrinsics(width, height int) Intrinsics {
	f := 0.8 * float64(width)
	return Intrinsics{
		Fx: f,
		Fy: f,
		Cx: float64(width) / 2,
		Cy: float64(height) / 2,
	}
}

// Validate checks the focal length invariant (Fx > 0, Fy > 0).
func (in Intrinsics) Validate() error {
	if in.Fx <= 0 || in.Fy <= 0 {
		return fmt.Errorf("intrinsics focal lengths must be positive, got fx=%g fy=%g", in.Fx, in.Fy)
	}
	return nil
}

// BackProject lifts pixel (u,v) at the given depth into 3-D camera space
// using the pinhole model.
func (in Intrinsics) BackProject(u, v int, depth float64) r3.Vector {
	return r3.Vector{
		X: (float64(u) - in.Cx) * depth / in.Fx,
		Y: (float64(v) - in.Cy) * depth / in.Fy,
		Z: depth,
	}
}

// Project maps a 3-D camera-space point back onto the image plane. The
// inverse of BackProject for points with positive Z.
func (in Intrinsics) Project(p r3.Vector) (u, v float64) {
	return p.X*in.Fx/p.Z + in.Cx, p.Y*in.Fy/p.Z + in.Cy
}

// DepthMap is a row-major grid of depth samples.
type DepthMap struct {
	Width   int       `json:"width"`
	Height  int       `json:"height"`
	Samples []float64 `json:"data"`
}

// Validate checks that the sample buffer matches the declared dimensions.
func (d *DepthMap) Validate() error {
	if d.Width <= 0 || d.Height <= 0 {
		return fmt.Errorf("%w: dimensions %dx%d", ErrInvalidDepthFormat, d.Width, d.Height)
	}
	if len(d.Samples) != d.Width*d.Height {
		return fmt.Errorf("%w: %d samples for %dx%d map, want %d",
			ErrInvalidDepthFormat, len(d.Samples), d.Width, d.Height, d.Width*d.Height)
	}
	return nil
}

// At returns the depth sample at pixel (u,v). No bounds checking is
// performed; caller must ensure coordinates are valid.
func (d *DepthMap) At(u, v int) float64 {
	return d.Samples[v*d.Width+u]
}

// ValidCount returns the number of strictly-positive samples, which is the
// exact size of the point cloud a builder will produce from this map.
func (d *DepthMap) ValidCount() int {
	n := 0
	for _, s := range d.Samples {
		if s > 0 {
			n++
		}
	}
	return n
}

// Color is an 8-bit RGB triple.
type Color struct {
	R uint8 `json:"r"`
	G uint8 `json:"g"`
	B uint8 `json:"b"`
}

// DefaultPointColor is assigned to points with no corresponding image pixel.
var DefaultPointColor = Color{R: 128, G: 128, B: 128}

// Point3D is a colored point in camera space.
type Point3D struct {
	Position r3.Vector `json:"position"`
	Color    Color     `json:"color"`
}

// PointCloud is an ordered point set. Builders emit points in row-major
// pixel scan order; downstream consumers depend on that ordering.
type PointCloud []Point3D

// Bounds returns the axis-aligned bounding box of the cloud. ok is false
// for an empty cloud.
func (pc PointCloud) Bounds() (min, max r3.Vector, ok bool) {
	if len(pc) == 0 {
		return r3.Vector{}, r3.Vector{}, false
	}
	min = pc[0].Position
	max = pc[0].Position
	for _, p := range pc[1:] {
		if p.Position.X < min.X {
			min.X = p.Position.X
		}
		if p.Position.Y < min.Y {
			min.Y = p.Position.Y
		}
		if p.Position.Z < min.Z {
			min.Z = p.Position.Z
		}
		if p.Position.X > max.X {
			max.X = p.Position.X
		}
		if p.Position.Y > max.Y {
			max.Y = p.Position.Y
		}
		if p.Position.Z > max.Z {
			max.Z = p.Position.Z
		}
	}
	return min, max, true
}

// Wall is a planar scene element described by its two endpoints.
type Wall struct {
	Start r3.Vector `json:"start"`
	End   r3.Vector `json:"end"`
}

// Length returns the Euclidean distance between the wall endpoints.
func (w Wall) Length() float64 {
	return w.End.Sub(w.Start).Norm()
}

// Orientation holds Euler angles in the order emitted by layout directives.
type Orientation struct {
	Theta float64 `json:"theta"`
	Phi   float64 `json:"phi"`
	Psi   float64 `json:"psi"`
}

// DetectedObject is a labeled scene object with physical extents in
// centimeters and a detection confidence in [0,1].
type DetectedObject struct {
	Label       string      `json:"type"`
	Position    r3.Vector   `json:"position"`
	LengthCm    float64     `json:"length"`
	WidthCm     float64     `json:"width"`
	HeightCm    float64     `json:"height"`
	Orientation Orientation `json:"orientation"`
	Confidence  float64     `json:"confidence"`
}
