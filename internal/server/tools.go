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
			Name:        "plan_image_info",
			Description: "Load a floor-plan image and return its dimensions and detected wall-fill luminance range. Supports PNG, JPEG, GIF, TIFF, and BMP.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the plan image file",
					},
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "plan_detect_room",
			Description: "Detect the room containing a seed pixel. Returns the room outline polygon, wall thickness estimate, and door openings, all in pixel coordinates.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the plan image file",
					},
					"x": map[string]interface{}{
						"type":        "integer",
						"description": "Seed pixel X coordinate inside the room (0-based)",
					},
					"y": map[string]interface{}{
						"type":        "integer",
						"description": "Seed pixel Y coordinate inside the room (0-based)",
					},
					"pixels_per_unit": map[string]interface{}{
						"type":        "number",
						"description": "Scale in pixels per length unit (default 0.1, i.e. 10 units per pixel)",
						"default":     0.1,
					},
				},
				"required": []string{"path", "x", "y"},
			},
		},
		{
			Name:        "plan_detect_envelope",
			Description: "Detect the building outline of a floor plan. Returns the footprint polygon, exterior wall thickness, and interior walls spanning the full footprint.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the plan image file",
					},
					"pixels_per_unit": map[string]interface{}{
						"type":        "number",
						"description": "Scale in pixels per length unit (default 0.1)",
						"default":     0.1,
					},
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "plan_render_overlay",
			Description: "Run room or envelope detection and write an annotated copy of the plan with the detected geometry drawn on top.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the plan image file",
					},
					"output_path": map[string]interface{}{
						"type":        "string",
						"description": "Path to write the overlay image (format follows the extension)",
					},
					"mode": map[string]interface{}{
						"type":        "string",
						"enum":        []string{"room", "envelope"},
						"description": "Which detection to visualize",
					},
					"x": map[string]interface{}{
						"type":        "integer",
						"description": "Seed pixel X coordinate (room mode only)",
					},
					"y": map[string]interface{}{
						"type":        "integer",
						"description": "Seed pixel Y coordinate (room mode only)",
					},
					"pixels_per_unit": map[string]interface{}{
						"type":        "number",
						"description": "Scale in pixels per length unit (default 0.1)",
						"default":     0.1,
					},
					"max_dimension": map[string]interface{}{
						"type":        "integer",
						"description": "Downscale so the longest side does not exceed this (default 0, disabled)",
						"default":     0,
					},
				},
				"required": []string{"path", "output_path", "mode"},
			},
		},
	}
}

// handleToolsList returns the list of available tools
func (s *Server) handleToolsList(req *MCPRequest) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"tools": GetToolDefinitions(),
		},
	}
}
