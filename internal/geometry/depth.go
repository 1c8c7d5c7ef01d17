package geometry

import (
	"encoding/json"
	"fmt"
)

// depthEnvelope mirrors the depth-map JSON produced by LiDAR capture tools:
//
//	{"width": 320, "height": 240, "data": [...], "intrinsics": ..., "timestamp": ...}
//
// data is row-major, one float per pixel; non-positive values mean "no
// depth". intrinsics is optional and comes in two shapes: a 3x3 row-major
// camera matrix, or an {fx,fy,cx,cy} object. timestamp is carried by some
// producers and ignored here.
type depthEnvelope struct {
	Width      int             `json:"width"`
	Height     int             `json:"height"`
	Data       []float64       `json:"data"`
	Intrinsics json.RawMessage `json:"intrinsics,omitempty"`
	Timestamp  json.RawMessage `json:"timestamp,omitempty"`
}

// DecodeDepthJSON parses a depth-map JSON document. The returned intrinsics
// are nil when the document carries none; callers fall back to
// DefaultIntrinsics.
func DecodeDepthJSON(data []byte) (*DepthMap, *Intrinsics, error) {
	var env depthEnvelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrInvalidDepthFormat, err)
	}

	depth := &DepthMap{
		Width:   env.Width,
		Height:  env.Height,
		Samples: env.Data,
	}
	if err := depth.Validate(); err != nil {
		return nil, nil, err
	}

	if len(env.Intrinsics) == 0 {
		return depth, nil, nil
	}
	in, err := decodeIntrinsics(env.Intrinsics)
	if err != nil {
		return nil, nil, err
	}
	return depth, in, nil
}

// decodeIntrinsics accepts either a 3x3 row-major camera matrix
// [[fx 0 cx] [0 fy cy] [0 0 1]] or an {fx,fy,cx,cy} object.
func decodeIntrinsics(raw json.RawMessage) (*Intrinsics, error) {
	var matrix [][]float64
	if err := json.Unmarshal(raw, &matrix); err == nil {
		if len(matrix) != 3 || len(matrix[0]) < 3 || len(matrix[1]) < 3 {
			return nil, fmt.Errorf("%w: intrinsics matrix must be 3x3", ErrInvalidDepthFormat)
		}
		in := &Intrinsics{
			Fx: matrix[0][0],
			Fy: matrix[1][1],
			Cx: matrix[0][2],
			Cy: matrix[1][2],
		}
		if err := in.Validate(); err != nil {
			return nil, err
		}
		return in, nil
	}

	var in Intrinsics
	if err := json.Unmarshal(raw, &in); err != nil {
		return nil, fmt.Errorf("%w: unsupported intrinsics encoding: %v", ErrInvalidDepthFormat, err)
	}
	if err := in.Validate(); err != nil {
		return nil, err
	}
	return &in, nil
}
