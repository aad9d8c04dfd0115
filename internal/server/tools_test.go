package server

import (
	"testing"
)

func TestGetToolDefinitions(t *testing.T) {
	tools := GetToolDefinitions()

	if len(tools) == 0 {
		t.Fatal("GetToolDefinitions returned empty slice")
	}

	expectedTools := []string{
		"plan_image_info",
		"plan_detect_room",
		"plan_detect_envelope",
		"plan_render_overlay",
	}

	toolMap := make(map[string]Tool)
	for _, tool := range tools {
		toolMap[tool.Name] = tool
	}

	for _, name := range expectedTools {
		if _, ok := toolMap[name]; !ok {
			t.Errorf("Expected tool %s not found", name)
		}
	}
}

func TestToolDefinitions_Structure(t *testing.T) {
	tools := GetToolDefinitions()

	for _, tool := range tools {
		t.Run(tool.Name, func(t *testing.T) {
			if tool.Name == "" {
				t.Error("Tool name is empty")
			}
			if tool.Description == "" {
				t.Error("Tool description is empty")
			}
			if tool.InputSchema == nil {
				t.Error("Tool InputSchema is nil")
			}

			schemaType, ok := tool.InputSchema["type"]
			if !ok {
				t.Error("InputSchema missing 'type' field")
			}
			if schemaType != "object" {
				t.Errorf("InputSchema type: got %v, want 'object'", schemaType)
			}

			props, ok := tool.InputSchema["properties"]
			if !ok {
				t.Error("InputSchema missing 'properties' field")
			}
			if props == nil {
				t.Error("InputSchema properties is nil")
			}
		})
	}
}

func TestToolDefinitions_RequiredPath(t *testing.T) {
	// Every tool operates on a plan image and must require its path.
	tools := GetToolDefinitions()

	for _, tool := range tools {
		t.Run(tool.Name, func(t *testing.T) {
			required, ok := tool.InputSchema["required"]
			if !ok {
				t.Fatal("InputSchema missing 'required' field")
			}

			requiredList, ok := required.([]string)
			if !ok {
				t.Fatal("'required' should be a string slice")
			}

			hasPath := false
			for _, r := range requiredList {
				if r == "path" {
					hasPath = true
					break
				}
			}

			if !hasPath {
				t.Error("Tool should require 'path' parameter")
			}
		})
	}
}

func TestToolDefinitions_DetectRoomSeed(t *testing.T) {
	tools := GetToolDefinitions()

	var roomTool Tool
	for _, tool := range tools {
		if tool.Name == "plan_detect_room" {
			roomTool = tool
			break
		}
	}

	if roomTool.Name == "" {
		t.Fatal("plan_detect_room tool not found")
	}

	required, ok := roomTool.InputSchema["required"].([]string)
	if !ok {
		t.Fatal("required should be a string slice")
	}

	// Room detection needs a seed pixel besides the path.
	expectedRequired := map[string]bool{
		"path": true,
		"x":    true,
		"y":    true,
	}

	for _, r := range required {
		delete(expectedRequired, r)
	}
	for missing := range expectedRequired {
		t.Errorf("plan_detect_room should require '%s' parameter", missing)
	}
}

func TestToolDefinitions_OverlayModes(t *testing.T) {
	tools := GetToolDefinitions()

	var tool Tool
	for _, tt := range tools {
		if tt.Name == "plan_render_overlay" {
			tool = tt
			break
		}
	}

	if tool.Name == "" {
		t.Fatal("plan_render_overlay tool not found")
	}

	props, ok := tool.InputSchema["properties"].(map[string]interface{})
	if !ok {
		t.Fatal("properties should be a map")
	}

	modeProp, ok := props["mode"].(map[string]interface{})
	if !ok {
		t.Fatal("mode property should exist and be a map")
	}

	enum, ok := modeProp["enum"].([]string)
	if !ok {
		t.Fatal("mode should have enum")
	}

	enumMap := make(map[string]bool)
	for _, e := range enum {
		enumMap[e] = true
	}
	for _, mode := range []string{"room", "envelope"} {
		if !enumMap[mode] {
			t.Errorf("Expected mode '%s' not in enum", mode)
		}
	}
}

func TestHandleToolsList(t *testing.T) {
	s := New()
	req := &MCPRequest{
		JSONRPC: "2.0",
		ID:      1,
	}

	resp := s.handleToolsList(req)

	if resp == nil {
		t.Fatal("handleToolsList returned nil")
	}
	if resp.Error != nil {
		t.Fatalf("Unexpected error: %v", resp.Error)
	}

	result, ok := resp.Result.(map[string]interface{})
	if !ok {
		t.Fatal("Result should be a map")
	}

	tools, ok := result["tools"]
	if !ok {
		t.Fatal("Result should contain 'tools' key")
	}

	toolsList, ok := tools.([]Tool)
	if !ok {
		t.Fatal("tools should be a slice of Tool")
	}

	expected := GetToolDefinitions()
	if len(toolsList) != len(expected) {
		t.Errorf("Tool count: got %d, want %d", len(toolsList), len(expected))
	}
}
