package calibration

import (
	"context"
	"fmt"
	"image"
	"strings"

	"github.com/evenwalser/ai-measurement/internal/geometry"
	"github.com/evenwalser/ai-measurement/internal/layout"
	"github.com/evenwalser/ai-measurement/internal/pointcloud"
)

// PersonDetector reports a person's height in pixels. detected is false when
// the image contains no usable person. Implementations own the landmark
// policy (head-to-ankle with visibility thresholds, or contour bounding
// boxes as a fallback).
type PersonDetector interface {
	DetectPersonHeight(img image.Image) (heightPx float64, detected bool, err error)
}

// ReferenceDetector locates a reference object of the given physical
// dimensions in an image and reports its pixel extents.
type ReferenceDetector interface {
	DetectReference(img image.Image, dims Dimensions) (widthPx, heightPx float64, err error)
}

// LayoutInferencer turns a point cloud into layout text in the WALL/OBJECT
// grammar. Inference may be slow; implementations honor ctx for
// cancellation.
type LayoutInferencer interface {
	InferLayout(ctx context.Context, cloud geometry.PointCloud) (string, error)
}

// Request carries every input a calibration strategy might need. Strategy
// selection looks only at which fields are populated.
type Request struct {
	// Image is the photograph being calibrated; required by the height and
	// reference strategies (unless pixel values are supplied directly) and
	// used for point coloring by the spatial strategy.
	Image image.Image

	// Factor engages the direct strategy when positive.
	Factor float64

	// PersonHeightCm engages the height strategy when positive.
	// PersonHeightPx optionally bypasses the person detector.
	PersonHeightCm float64
	PersonHeightPx float64

	// Depth, Cloud, or LayoutText engage the spatial strategy. Intrinsics
	// are optional; absent ones default from the depth dimensions.
	Depth      *geometry.DepthMap
	Intrinsics *geometry.Intrinsics
	Cloud      geometry.PointCloud
	LayoutText string

	// ReferenceObject names an entry in ReferenceObjects; RefDimensions
	// supplies custom dimensions instead. Either engages the reference
	// strategy.
	ReferenceObject string
	RefDimensions   *Dimensions
}

// Orchestrator selects and runs a calibration strategy. It holds no mutable
// state; Calibrate is a pure function of its inputs and the injected
// collaborators, so one Orchestrator may serve concurrent requests.
type Orchestrator struct {
	person    PersonDetector
	reference ReferenceDetector
	spatial   LayoutInferencer // nil means the backend is unavailable
}

// NewOrchestrator wires an orchestrator with its detector collaborators.
// Any of them may be nil; a strategy whose collaborator is missing fails
// per the error policy (or, for spatial, degrades to the fallback result).
func NewOrchestrator(person PersonDetector, reference ReferenceDetector, spatial LayoutInferencer) *Orchestrator {
	return &Orchestrator{person: person, reference: reference, spatial: spatial}
}

// Calibrate runs the highest-precedence strategy the request's inputs
// allow: direct > height > spatial > reference.
func (o *Orchestrator) Calibrate(ctx context.Context, req Request) (*Result, error) {
	switch {
	case req.Factor > 0:
		return &Result{
			Method:     MethodDirect,
			Factor:     req.Factor,
			Confidence: directConfidence,
			Unit:       Unit,
		}, nil

	case req.PersonHeightCm > 0:
		return o.calibrateHeight(req)

	case req.Depth != nil || len(req.Cloud) > 0 || strings.TrimSpace(req.LayoutText) != "":
		return o.calibrateSpatial(ctx, req), nil

	case req.ReferenceObject != "" || req.RefDimensions != nil:
		return o.calibrateReference(req)

	default:
		return nil, &Error{Err: ErrNoCalibrationInputs}
	}
}

func (o *Orchestrator) calibrateHeight(req Request) (*Result, error) {
	heightPx := req.PersonHeightPx
	if heightPx <= 0 {
		if o.person == nil || req.Image == nil {
			return nil, methodError(MethodHeight, ErrPersonNotDetected)
		}
		px, detected, err := o.person.DetectPersonHeight(req.Image)
		if err != nil {
			return nil, methodError(MethodHeight, err)
		}
		if !detected {
			return nil, methodError(MethodHeight, ErrPersonNotDetected)
		}
		heightPx = px
	}

	factor, err := HeightFactor(req.PersonHeightCm, heightPx)
	if err != nil {
		return nil, err
	}
	return &Result{
		Method:         MethodHeight,
		Factor:         factor,
		Confidence:     heightConfidence,
		Unit:           Unit,
		PersonHeightCm: req.PersonHeightCm,
		PersonHeightPx: heightPx,
	}, nil
}

// calibrateSpatial never returns an error: any failure in the pipeline
// degrades into the documented fixed-factor fallback.
func (o *Orchestrator) calibrateSpatial(ctx context.Context, req Request) *Result {
	result, err := o.runSpatialPipeline(ctx, req)
	if err != nil {
		return &Result{
			Method:     MethodSpatial,
			Factor:     SpatialFallbackFactor,
			Confidence: SpatialFallbackConfidence,
			Unit:       Unit,
			Fallback:   true,
		}
	}
	return result
}

func (o *Orchestrator) runSpatialPipeline(ctx context.Context, req Request) (*Result, error) {
	text := req.LayoutText
	if strings.TrimSpace(text) == "" {
		if o.spatial == nil {
			return nil, ErrSpatialUnavailable
		}
		cloud := req.Cloud
		if len(cloud) == 0 {
			if req.Depth == nil {
				return nil, fmt.Errorf("spatial calibration requires a depth map, point cloud, or layout text")
			}
			in := geometry.DefaultIntrinsics(req.Depth.Width, req.Depth.Height)
			if req.Intrinsics != nil {
				in = *req.Intrinsics
			}
			built, err := pointcloud.Build(req.Depth, in, req.Image)
			if err != nil {
				return nil, err
			}
			cloud = built
		}
		inferred, err := o.spatial.InferLayout(ctx, cloud)
		if err != nil {
			return nil, err
		}
		text = inferred
	}

	walls, objects, err := layout.Parse(text)
	if err != nil {
		return nil, err
	}

	factor, ratios := AggregateDimensions(objects, walls)
	confidence := spatialConfidence
	if ratios == 0 {
		confidence = lowSpatialConfidence
	}
	return &Result{
		Method:     MethodSpatial,
		Factor:     factor,
		Confidence: confidence,
		Unit:       Unit,
		Objects:    objects,
		Walls:      walls,
	}, nil
}

func (o *Orchestrator) calibrateReference(req Request) (*Result, error) {
	var dims Dimensions
	name := req.ReferenceObject
	switch {
	case req.RefDimensions != nil:
		dims = *req.RefDimensions
		if name == "" {
			name = "custom"
		}
	default:
		d, err := ReferenceDimensions(name)
		if err != nil {
			return nil, err
		}
		dims = d
	}

	if o.reference == nil || req.Image == nil {
		return nil, methodError(MethodReference,
			fmt.Errorf("reference calibration requires an image and a reference detector"))
	}
	widthPx, heightPx, err := o.reference.DetectReference(req.Image, dims)
	if err != nil {
		return nil, methodError(MethodReference, err)
	}

	factor, err := ReferenceFactor(dims, widthPx, heightPx)
	if err != nil {
		return nil, err
	}
	return &Result{
		Method:          MethodReference,
		Factor:          factor,
		Confidence:      referenceConfidence,
		Unit:            Unit,
		ReferenceObject: name,
		WidthCm:         dims.WidthCm,
		HeightCm:        dims.HeightCm,
		WidthPx:         widthPx,
		HeightPx:        heightPx,
	}, nil
}
