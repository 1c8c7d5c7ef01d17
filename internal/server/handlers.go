package server

import (
	"context"
	"encoding/json"
	"fmt"
	"image"
	"os"

	"github.com/evenwalser/ai-measurement/internal/calibration"
	"github.com/evenwalser/ai-measurement/internal/geometry"
	"github.com/evenwalser/ai-measurement/internal/layout"
	"github.com/evenwalser/ai-measurement/internal/measure"
	"github.com/evenwalser/ai-measurement/internal/pointcloud"
)

// ToolCallParams represents the parameters for a tools/call MCP request.
type ToolCallParams struct {
	// Name is the tool to invoke (e.g., "calibrate").
	Name string `json:"name"`

	// Arguments contains the tool-specific parameters as JSON.
	Arguments json.RawMessage `json:"arguments"`
}

// handleToolsCall processes a tools/call request and executes the specified tool.
//
// The response wraps the tool result in MCP's content format:
//
//	{
//	  "content": [{"type": "text", "text": "<JSON result>"}]
//	}
//
// Tool execution errors return a JSON-RPC error response with code -32000.
func (s *Server) handleToolsCall(req *MCPRequest) *MCPResponse {
	var params ToolCallParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return s.errorResponse(req.ID, -32602, "Invalid params", err.Error())
	}

	result, err := s.executeTool(params.Name, params.Arguments)
	if err != nil {
		return s.errorResponse(req.ID, -32000, "Tool execution failed", err.Error())
	}

	payload, err := marshalJSON(result)
	if err != nil {
		return s.errorResponse(req.ID, -32000, "Tool execution failed", err.Error())
	}

	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"content": []map[string]interface{}{
				{
					"type": "text",
					"text": payload,
				},
			},
		},
	}
}

// executeTool dispatches tool execution to the appropriate handler function.
func (s *Server) executeTool(name string, args json.RawMessage) (interface{}, error) {
	switch name {
	case "calibrate":
		return s.handleCalibrate(args)
	case "point_cloud_build":
		return s.handlePointCloudBuild(args)
	case "point_cloud_export":
		return s.handlePointCloudExport(args)
	case "layout_parse":
		return s.handleLayoutParse(args)
	case "measure_body":
		return s.handleMeasureBody(args)
	default:
		return nil, fmt.Errorf("unknown tool: %s", name)
	}
}

// errorResponse creates a JSON-RPC error response with the given details.
func (s *Server) errorResponse(id interface{}, code int, message, data string) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      id,
		Error: &MCPError{
			Code:    code,
			Message: message,
			Data:    data,
		},
	}
}

// marshalJSON converts a tool result to a pretty-printed JSON string.
func marshalJSON(v interface{}) (string, error) {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "", fmt.Errorf("could not encode tool result: %w", err)
	}
	return string(b), nil
}

// === Calibration ===

type calibrateArgs struct {
	ImagePath       string  `json:"image_path"`
	Factor          float64 `json:"calibration_factor"`
	PersonHeightCm  float64 `json:"person_height"`
	PersonHeightPx  float64 `json:"person_height_px"`
	DepthMapPath    string  `json:"depth_map_path"`
	PointCloudPath  string  `json:"point_cloud_path"`
	LayoutText      string  `json:"layout_text"`
	ReferenceObject string  `json:"reference_object"`
	RefWidth        float64 `json:"ref_width"`
	RefHeight       float64 `json:"ref_height"`
}

func (s *Server) handleCalibrate(args json.RawMessage) (interface{}, error) {
	var a calibrateArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}

	req := calibration.Request{
		Factor:          a.Factor,
		PersonHeightCm:  a.PersonHeightCm,
		PersonHeightPx:  a.PersonHeightPx,
		LayoutText:      a.LayoutText,
		ReferenceObject: a.ReferenceObject,
	}
	if a.RefWidth > 0 && a.RefHeight > 0 {
		req.RefDimensions = &calibration.Dimensions{WidthCm: a.RefWidth, HeightCm: a.RefHeight}
	}

	if a.ImagePath != "" {
		img, err := s.cache.Load(a.ImagePath)
		if err != nil {
			return nil, err
		}
		req.Image = img
	}
	if a.DepthMapPath != "" {
		depth, intr, err := readDepthFile(a.DepthMapPath)
		if err != nil {
			return nil, err
		}
		req.Depth = depth
		req.Intrinsics = intr
	}
	if a.PointCloudPath != "" {
		cloud, err := pointcloud.ReadFile(a.PointCloudPath)
		if err != nil {
			return nil, err
		}
		req.Cloud = cloud
	}

	return s.orch.Calibrate(context.Background(), req)
}

// === Point Cloud ===

type pointCloudBuildArgs struct {
	DepthMapPath string `json:"depth_map_path"`
	ImagePath    string `json:"image_path"`
	OutputPath   string `json:"output_path"`
	Workers      int    `json:"workers"`
}

type pointCloudBuildResult struct {
	Points     int    `json:"points"`
	Width      int    `json:"width"`
	Height     int    `json:"height"`
	OutputPath string `json:"output_path,omitempty"`
}

func (s *Server) handlePointCloudBuild(args json.RawMessage) (interface{}, error) {
	var a pointCloudBuildArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}

	depth, intr, err := readDepthFile(a.DepthMapPath)
	if err != nil {
		return nil, err
	}
	in := geometry.DefaultIntrinsics(depth.Width, depth.Height)
	if intr != nil {
		in = *intr
	}

	var img image.Image
	if a.ImagePath != "" {
		loaded, err := s.cache.Load(a.ImagePath)
		if err != nil {
			return nil, err
		}
		img = loaded
	}

	cloud, err := pointcloud.BuildParallel(depth, in, img, a.Workers)
	if err != nil {
		return nil, err
	}

	result := pointCloudBuildResult{
		Points: len(cloud),
		Width:  depth.Width,
		Height: depth.Height,
	}
	if a.OutputPath != "" {
		if err := pointcloud.WriteFile(a.OutputPath, cloud); err != nil {
			return nil, err
		}
		result.OutputPath = a.OutputPath
	}
	return result, nil
}

type pointCloudExportArgs struct {
	DepthMapPath string `json:"depth_map_path"`
	ImagePath    string `json:"image_path"`
	OutputPath   string `json:"output_path"`
}

// handlePointCloudExport is point_cloud_build with a mandatory PLY
// destination, for callers that only want the file side effect.
func (s *Server) handlePointCloudExport(args json.RawMessage) (interface{}, error) {
	var a pointCloudExportArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.OutputPath == "" {
		return nil, fmt.Errorf("point_cloud_export requires an output_path")
	}

	buildArgs, err := json.Marshal(pointCloudBuildArgs{
		DepthMapPath: a.DepthMapPath,
		ImagePath:    a.ImagePath,
		OutputPath:   a.OutputPath,
	})
	if err != nil {
		return nil, err
	}
	return s.handlePointCloudBuild(buildArgs)
}

// === Layout ===

type layoutParseArgs struct {
	Text string `json:"text"`
}

type layoutWall struct {
	Wall   geometry.Wall `json:"wall"`
	Length float64       `json:"length"`
}

type layoutParseResult struct {
	Walls   []layoutWall              `json:"walls"`
	Objects []geometry.DetectedObject `json:"objects"`
}

func (s *Server) handleLayoutParse(args json.RawMessage) (interface{}, error) {
	var a layoutParseArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}

	walls, objects, err := layout.Parse(a.Text)
	if err != nil {
		return nil, err
	}

	result := layoutParseResult{
		Walls:   make([]layoutWall, 0, len(walls)),
		Objects: objects,
	}
	for _, w := range walls {
		result.Walls = append(result.Walls, layoutWall{Wall: w, Length: w.Length()})
	}
	return result, nil
}

// === Measurements ===

type measureBodyArgs struct {
	Factor float64 `json:"factor"`
}

type measureBodyResult struct {
	Measurements measure.Measurements `json:"measurements"`
	Unit         string               `json:"unit"`
}

func (s *Server) handleMeasureBody(args json.RawMessage) (interface{}, error) {
	var a measureBodyArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}

	measurements, err := measure.Scale(measure.DefaultBaselines(), a.Factor)
	if err != nil {
		return nil, err
	}
	return measureBodyResult{Measurements: measurements, Unit: "cm"}, nil
}

// readDepthFile loads and decodes a depth-map JSON file.
func readDepthFile(path string) (*geometry.DepthMap, *geometry.Intrinsics, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("could not read depth map %q: %w", path, err)
	}
	return geometry.DecodeDepthJSON(data)
}
