package server

// Tool represents an MCP tool definition
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

// GetToolDefinitions returns all available tools
func GetToolDefinitions() []Tool {
	return []Tool{
		{
			Name: "calibrate",
			Description: "Estimate a cm/pixel calibration factor for an image. Supply any one evidence " +
				"source: a pre-computed factor, a person's height, depth/point-cloud data, or a " +
				"reference object. Strategy precedence is direct > height > spatial > reference.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"image_path": map[string]interface{}{
						"type":        "string",
						"description": "Path to the image being calibrated (required for height and reference strategies)",
					},
					"calibration_factor": map[string]interface{}{
						"type":        "number",
						"description": "Pre-computed calibration factor in cm/pixel (direct strategy)",
					},
					"person_height": map[string]interface{}{
						"type":        "number",
						"description": "Person's physical height in cm (height strategy)",
					},
					"person_height_px": map[string]interface{}{
						"type":        "number",
						"description": "Person's detected pixel height, bypassing the built-in detector",
					},
					"depth_map_path": map[string]interface{}{
						"type":        "string",
						"description": "Path to a depth-map JSON file (spatial strategy)",
					},
					"point_cloud_path": map[string]interface{}{
						"type":        "string",
						"description": "Path to an ASCII PLY point cloud (spatial strategy)",
					},
					"layout_text": map[string]interface{}{
						"type":        "string",
						"description": "Pre-computed WALL/OBJECT layout text (spatial strategy)",
					},
					"reference_object": map[string]interface{}{
						"type":        "string",
						"description": "Known reference object name: a4_paper, letter_paper, credit_card, dollar_bill, euro_bill, 30cm_ruler",
					},
					"ref_width": map[string]interface{}{
						"type":        "number",
						"description": "Custom reference object width in cm",
					},
					"ref_height": map[string]interface{}{
						"type":        "number",
						"description": "Custom reference object height in cm",
					},
				},
			},
		},
		{
			Name: "point_cloud_build",
			Description: "Back-project a depth-map JSON file into a colored 3D point cloud. " +
				"Optionally colors points from an image and writes the cloud as ASCII PLY.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"depth_map_path": map[string]interface{}{
						"type":        "string",
						"description": "Path to the depth-map JSON file",
					},
					"image_path": map[string]interface{}{
						"type":        "string",
						"description": "Optional image for point colors",
					},
					"output_path": map[string]interface{}{
						"type":        "string",
						"description": "Optional path to write the cloud as ASCII PLY",
					},
					"workers": map[string]interface{}{
						"type":        "integer",
						"description": "Worker count for parallel build (0 = number of CPUs)",
					},
				},
				"required": []string{"depth_map_path"},
			},
		},
		{
			Name: "point_cloud_export",
			Description: "Back-project a depth-map JSON file and write the resulting point cloud " +
				"as ASCII PLY. Like point_cloud_build but the output file is required.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"depth_map_path": map[string]interface{}{
						"type":        "string",
						"description": "Path to the depth-map JSON file",
					},
					"image_path": map[string]interface{}{
						"type":        "string",
						"description": "Optional image for point colors",
					},
					"output_path": map[string]interface{}{
						"type":        "string",
						"description": "Path to write the ASCII PLY file",
					},
				},
				"required": []string{"depth_map_path", "output_path"},
			},
		},
		{
			Name:        "layout_parse",
			Description: "Parse WALL/OBJECT scene-layout text into walls (lengths in meters) and detected objects (extents in cm).",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"text": map[string]interface{}{
						"type":        "string",
						"description": "Layout text, one WALL or OBJECT directive per line",
					},
				},
				"required": []string{"text"},
			},
		},
		{
			Name:        "measure_body",
			Description: "Scale pixel-space body measurement baselines by a calibration factor, returning measurements in cm.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"factor": map[string]interface{}{
						"type":        "number",
						"description": "Calibration factor in cm/pixel",
					},
				},
				"required": []string{"factor"},
			},
		},
	}
}
