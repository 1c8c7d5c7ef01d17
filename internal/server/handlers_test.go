package server

import (
	"encoding/json"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/evenwalser/ai-measurement/internal/calibration"
	"github.com/evenwalser/ai-measurement/internal/detect"
)

// writeFile writes content to a temp file and returns its path.
func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func depthJSON(t *testing.T) string {
	t.Helper()
	return writeFile(t, "depth.json",
		`{"width": 2, "height": 2, "data": [1.0, 2.0, 0.0, 2.5]}`)
}

func callTool(t *testing.T, s *Server, name string, args string) interface{} {
	t.Helper()
	result, err := s.executeTool(name, json.RawMessage(args))
	if err != nil {
		t.Fatalf("%s failed: %v", name, err)
	}
	return result
}

func TestCalibrateDirect(t *testing.T) {
	s := New()

	result := callTool(t, s, "calibrate", `{"calibration_factor": 0.25}`)
	res, ok := result.(*calibration.Result)
	if !ok {
		t.Fatalf("result has type %T", result)
	}
	if res.Method != calibration.MethodDirect || res.Factor != 0.25 {
		t.Errorf("result = %+v", res)
	}
}

func TestCalibrateHeightWithExplicitPixels(t *testing.T) {
	s := New()

	result := callTool(t, s, "calibrate", `{"person_height": 175, "person_height_px": 500}`)
	res := result.(*calibration.Result)
	if res.Method != calibration.MethodHeight {
		t.Errorf("method = %q, want height", res.Method)
	}
	if math.Abs(res.Factor-0.35) > 1e-9 {
		t.Errorf("factor = %g, want 0.35", res.Factor)
	}
}

func TestCalibrateSpatialFromDepthFile(t *testing.T) {
	orch := calibration.NewOrchestrator(nil, nil,
		detect.StaticLayoutInferencer{Text: "WALL 0 0 0 2.5 0 0"})
	s := NewWithOrchestrator(orch)

	args := fmt.Sprintf(`{"depth_map_path": %q}`, depthJSON(t))
	res := callTool(t, s, "calibrate", args).(*calibration.Result)

	if res.Method != calibration.MethodSpatial {
		t.Errorf("method = %q, want spatial", res.Method)
	}
	if math.Abs(res.Factor-1.0) > 1e-9 {
		t.Errorf("factor = %g, want 1.0", res.Factor)
	}
	if res.Fallback {
		t.Error("result should not be a fallback")
	}
}

func TestCalibrateSpatialFallbackWithoutBackend(t *testing.T) {
	s := New() // MEASURE_MCP_SPATIAL unset: no spatial backend

	args := fmt.Sprintf(`{"depth_map_path": %q}`, depthJSON(t))
	res := callTool(t, s, "calibrate", args).(*calibration.Result)

	if !res.Fallback {
		t.Error("expected the documented spatial fallback")
	}
	if res.Factor != calibration.SpatialFallbackFactor {
		t.Errorf("factor = %g, want %g", res.Factor, calibration.SpatialFallbackFactor)
	}
}

func TestCalibrateNoInputs(t *testing.T) {
	s := New()

	_, err := s.executeTool("calibrate", json.RawMessage(`{}`))
	if err == nil {
		t.Fatal("expected NoCalibrationInputs error")
	}
}

func TestCalibrateBadImagePath(t *testing.T) {
	s := New()

	_, err := s.executeTool("calibrate",
		json.RawMessage(`{"image_path": "/does/not/exist.png", "person_height": 175}`))
	if err == nil {
		t.Fatal("expected image load error")
	}
}

func TestPointCloudBuildAndExport(t *testing.T) {
	s := New()
	out := filepath.Join(t.TempDir(), "cloud.ply")

	args := fmt.Sprintf(`{"depth_map_path": %q, "output_path": %q}`, depthJSON(t), out)
	result := callTool(t, s, "point_cloud_build", args).(pointCloudBuildResult)

	if result.Points != 3 {
		t.Errorf("points = %d, want 3 (one invalid sample)", result.Points)
	}
	if result.Width != 2 || result.Height != 2 {
		t.Errorf("dimensions = %dx%d, want 2x2", result.Width, result.Height)
	}
	if _, err := os.Stat(out); err != nil {
		t.Errorf("PLY file missing: %v", err)
	}
}

func TestPointCloudBuildWithImageColors(t *testing.T) {
	s := New()

	imgPath := filepath.Join(t.TempDir(), "colors.png")
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	img.Set(0, 0, color.RGBA{R: 10, G: 20, B: 30, A: 255})
	f, err := os.Create(imgPath)
	if err != nil {
		t.Fatal(err)
	}
	if err := png.Encode(f, img); err != nil {
		t.Fatal(err)
	}
	f.Close()

	args := fmt.Sprintf(`{"depth_map_path": %q, "image_path": %q}`, depthJSON(t), imgPath)
	result := callTool(t, s, "point_cloud_build", args).(pointCloudBuildResult)
	if result.Points != 3 {
		t.Errorf("points = %d, want 3", result.Points)
	}
}

func TestPointCloudExport(t *testing.T) {
	s := New()
	out := filepath.Join(t.TempDir(), "cloud.ply")

	args := fmt.Sprintf(`{"depth_map_path": %q, "output_path": %q}`, depthJSON(t), out)
	result := callTool(t, s, "point_cloud_export", args).(pointCloudBuildResult)

	if result.OutputPath != out {
		t.Errorf("output path = %q, want %q", result.OutputPath, out)
	}
	if _, err := os.Stat(out); err != nil {
		t.Errorf("PLY file missing: %v", err)
	}
}

func TestPointCloudExportRequiresOutput(t *testing.T) {
	s := New()

	args := fmt.Sprintf(`{"depth_map_path": %q}`, depthJSON(t))
	if _, err := s.executeTool("point_cloud_export", json.RawMessage(args)); err == nil {
		t.Error("expected error without output_path")
	}
}

func TestLayoutParseTool(t *testing.T) {
	s := New()

	result := callTool(t, s, "layout_parse",
		`{"text": "WALL 0 0 0 1 0 0\nOBJECT door 0 0 0 0.9 0.5 2.1 0 0 0 0.95"}`)
	parsed := result.(layoutParseResult)

	if len(parsed.Walls) != 1 || len(parsed.Objects) != 1 {
		t.Fatalf("got %d walls, %d objects", len(parsed.Walls), len(parsed.Objects))
	}
	if parsed.Walls[0].Length != 1.0 {
		t.Errorf("wall length = %g, want 1.0", parsed.Walls[0].Length)
	}
	if parsed.Objects[0].Label != "door" {
		t.Errorf("object label = %q, want door", parsed.Objects[0].Label)
	}
}

func TestLayoutParseEmptyText(t *testing.T) {
	s := New()

	if _, err := s.executeTool("layout_parse", json.RawMessage(`{"text": ""}`)); err == nil {
		t.Error("expected EmptyLayout error")
	}
}

func TestMeasureBodyTool(t *testing.T) {
	s := New()

	result := callTool(t, s, "measure_body", `{"factor": 0.1}`)
	body := result.(measureBodyResult)

	if body.Unit != "cm" {
		t.Errorf("unit = %q, want cm", body.Unit)
	}
	if body.Measurements["height"] != 175.5 {
		t.Errorf("height = %g, want 175.5", body.Measurements["height"])
	}
}

func TestMeasureBodyRejectsBadFactor(t *testing.T) {
	s := New()

	if _, err := s.executeTool("measure_body", json.RawMessage(`{"factor": 0}`)); err == nil {
		t.Error("expected error for non-positive factor")
	}
}

func TestMarshalJSON(t *testing.T) {
	got, err := marshalJSON(map[string]int{"points": 3})
	if err != nil {
		t.Fatalf("marshalJSON failed: %v", err)
	}
	if !strings.Contains(got, `"points": 3`) {
		t.Errorf("payload = %q", got)
	}

	// Non-finite floats are not representable in JSON; the failure must
	// surface instead of producing an empty payload.
	if _, err := marshalJSON(map[string]float64{"factor": math.Inf(1)}); err == nil {
		t.Error("expected error for non-finite value")
	}
}

func TestHandleToolsCallErrorMapping(t *testing.T) {
	s := New()

	params, _ := json.Marshal(ToolCallParams{Name: "calibrate", Arguments: json.RawMessage(`{}`)})
	resp := s.handleToolsCall(&MCPRequest{JSONRPC: "2.0", ID: 7, Params: params})

	if resp.Error == nil {
		t.Fatal("expected an error response")
	}
	if resp.Error.Code != -32000 {
		t.Errorf("error code = %d, want -32000", resp.Error.Code)
	}
}

func TestUnknownTool(t *testing.T) {
	s := New()

	if _, err := s.executeTool("image_crop", json.RawMessage(`{}`)); err == nil {
		t.Error("expected unknown tool error")
	}
}
