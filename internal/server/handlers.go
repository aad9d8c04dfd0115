package server

import (
	"encoding/json"
	"fmt"

	"planscan/internal/detect"
	"planscan/internal/raster"
	"planscan/internal/render"
)

// ToolCallParams represents the parameters for a tools/call MCP request.
type ToolCallParams struct {
	// Name is the tool to invoke (e.g., "plan_detect_room").
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

	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"content": []map[string]interface{}{
				{
					"type": "text",
					"text": mustMarshalJSON(result),
				},
			},
		},
	}
}

// executeTool dispatches tool execution to the appropriate handler function.
//
// Each tool handler:
//  1. Unmarshals arguments from JSON
//  2. Applies default values for optional parameters
//  3. Loads the plan buffer from cache
//  4. Runs the detection pipeline
//  5. Returns the result or error
func (s *Server) executeTool(name string, args json.RawMessage) (interface{}, error) {
	switch name {
	case "plan_image_info":
		return s.handlePlanImageInfo(args)
	case "plan_detect_room":
		return s.handlePlanDetectRoom(args)
	case "plan_detect_envelope":
		return s.handlePlanDetectEnvelope(args)
	case "plan_render_overlay":
		return s.handlePlanRenderOverlay(args)
	default:
		return nil, fmt.Errorf("unknown tool: %s", name)
	}
}

// errorResponse creates a JSON-RPC error response with the given details.
func (s *Server) errorResponse(id interface{}, code int, message string, data interface{}) *MCPResponse {
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

// mustMarshalJSON marshals a value to JSON, panicking on failure.
// Only used for result types known to marshal cleanly.
func mustMarshalJSON(v interface{}) string {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		panic(fmt.Sprintf("failed to marshal result: %v", err))
	}
	return string(data)
}

// PlanInfoResult describes a loaded plan image.
type PlanInfoResult struct {
	Path      string `json:"path"`
	Width     int    `json:"width"`
	Height    int    `json:"height"`
	WallRange *struct {
		Low  uint8 `json:"low"`
		High uint8 `json:"high"`
	} `json:"wall_range,omitempty"`
}

func (s *Server) handlePlanImageInfo(args json.RawMessage) (interface{}, error) {
	var params struct {
		Path string `json:"path"`
	}
	if err := json.Unmarshal(args, &params); err != nil {
		return nil, fmt.Errorf("invalid arguments: %w", err)
	}

	b, err := s.cache.Load(params.Path)
	if err != nil {
		return nil, err
	}

	result := PlanInfoResult{
		Path:   params.Path,
		Width:  b.Width,
		Height: b.Height,
	}
	if r := raster.AutoDetectWallRange(b); r != nil {
		result.WallRange = &struct {
			Low  uint8 `json:"low"`
			High uint8 `json:"high"`
		}{Low: r.Low, High: r.High}
	}
	return result, nil
}

func (s *Server) handlePlanDetectRoom(args json.RawMessage) (interface{}, error) {
	var params struct {
		Path          string  `json:"path"`
		X             int     `json:"x"`
		Y             int     `json:"y"`
		PixelsPerUnit float64 `json:"pixels_per_unit"`
	}
	if err := json.Unmarshal(args, &params); err != nil {
		return nil, fmt.Errorf("invalid arguments: %w", err)
	}
	if params.PixelsPerUnit <= 0 {
		params.PixelsPerUnit = 0.1
	}

	b, err := s.cache.Load(params.Path)
	if err != nil {
		return nil, err
	}

	result := detect.DetectRoomAtPixel(b, params.X, params.Y, detect.DefaultRoomOptions(params.PixelsPerUnit))
	if result == nil {
		return nil, fmt.Errorf("no room found at (%d, %d)", params.X, params.Y)
	}
	return result, nil
}

func (s *Server) handlePlanDetectEnvelope(args json.RawMessage) (interface{}, error) {
	var params struct {
		Path          string  `json:"path"`
		PixelsPerUnit float64 `json:"pixels_per_unit"`
	}
	if err := json.Unmarshal(args, &params); err != nil {
		return nil, fmt.Errorf("invalid arguments: %w", err)
	}
	if params.PixelsPerUnit <= 0 {
		params.PixelsPerUnit = 0.1
	}

	b, err := s.cache.Load(params.Path)
	if err != nil {
		return nil, err
	}

	result := detect.DetectEnvelope(b, detect.DefaultEnvelopeOptions(params.PixelsPerUnit))
	if result == nil {
		return nil, fmt.Errorf("no building outline found in %s", params.Path)
	}
	return result, nil
}

// OverlayResult reports where a rendered overlay was written.
type OverlayResult struct {
	OutputPath string `json:"output_path"`
	Mode       string `json:"mode"`
	Vertices   int    `json:"vertices"`
}

func (s *Server) handlePlanRenderOverlay(args json.RawMessage) (interface{}, error) {
	var params struct {
		Path          string  `json:"path"`
		OutputPath    string  `json:"output_path"`
		Mode          string  `json:"mode"`
		X             int     `json:"x"`
		Y             int     `json:"y"`
		PixelsPerUnit float64 `json:"pixels_per_unit"`
		MaxDimension  int     `json:"max_dimension"`
	}
	if err := json.Unmarshal(args, &params); err != nil {
		return nil, fmt.Errorf("invalid arguments: %w", err)
	}
	if params.PixelsPerUnit <= 0 {
		params.PixelsPerUnit = 0.1
	}

	b, err := s.cache.Load(params.Path)
	if err != nil {
		return nil, err
	}

	style := render.DefaultStyle()
	style.MaxDimension = params.MaxDimension
	overlay := render.NewOverlay(b.ToImage(), style)

	var vertices int
	switch params.Mode {
	case "room":
		room := detect.DetectRoomAtPixel(b, params.X, params.Y, detect.DefaultRoomOptions(params.PixelsPerUnit))
		if room == nil {
			return nil, fmt.Errorf("no room found at (%d, %d)", params.X, params.Y)
		}
		overlay.DrawRoom(room, "room")
		vertices = len(room.Polygon)
	case "envelope":
		env := detect.DetectEnvelope(b, detect.DefaultEnvelopeOptions(params.PixelsPerUnit))
		if env == nil {
			return nil, fmt.Errorf("no building outline found in %s", params.Path)
		}
		overlay.DrawEnvelope(env)
		vertices = len(env.Polygon)
	default:
		return nil, fmt.Errorf("unknown overlay mode: %q", params.Mode)
	}

	if err := overlay.Save(params.OutputPath); err != nil {
		return nil, err
	}
	return OverlayResult{
		OutputPath: params.OutputPath,
		Mode:       params.Mode,
		Vertices:   vertices,
	}, nil
}
