package calibration

import (
	"github.com/evenwalser/ai-measurement/internal/geometry"
)

// Method identifies a calibration strategy.
type Method string

const (
	MethodDirect    Method = "direct"
	MethodHeight    Method = "height"
	MethodReference Method = "reference"
	MethodSpatial   Method = "spatial"
)

// Unit is the unit of every calibration factor this package produces.
const Unit = "cm/pixel"

// Per-method confidence policy. Direct factors are taken at face value;
// the others reflect how much each evidence source is trusted.
const (
	directConfidence    = 1.0
	heightConfidence    = 0.9
	spatialConfidence   = 0.9
	referenceConfidence = 0.85

	// lowSpatialConfidence applies when the aggregator matched nothing and
	// fell back to its default factor.
	lowSpatialConfidence = 0.5
)

// Spatial fallback policy: when layout inference is unavailable or fails,
// the orchestrator degrades to this fixed factor and confidence instead of
// failing the request. Callers distinguish the degraded path via
// Result.Fallback.
const (
	SpatialFallbackFactor     = 0.05
	SpatialFallbackConfidence = 0.75
)

// Result is the uniform output of every calibration strategy.
type Result struct {
	Method     Method  `json:"method"`
	Factor     float64 `json:"factor"` // cm/pixel, > 0
	Confidence float64 `json:"confidence"`
	Unit       string  `json:"unit"`

	// Fallback marks a spatial result that came from the degraded fixed
	// factor rather than real inference.
	Fallback bool `json:"is_fallback,omitempty"`

	// Height strategy.
	PersonHeightCm float64 `json:"person_height_cm,omitempty"`
	PersonHeightPx float64 `json:"person_height_px,omitempty"`

	// Reference strategy.
	ReferenceObject string  `json:"reference_object,omitempty"`
	WidthCm         float64 `json:"width_cm,omitempty"`
	HeightCm        float64 `json:"height_cm,omitempty"`
	WidthPx         float64 `json:"width_px,omitempty"`
	HeightPx        float64 `json:"height_px,omitempty"`

	// Spatial strategy.
	Objects []geometry.DetectedObject `json:"objects,omitempty"`
	Walls   []geometry.Wall           `json:"walls,omitempty"`
}
