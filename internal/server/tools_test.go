package server

import (
	"encoding/json"
	"testing"

	"github.com/ironsheep/image-transform-mcp/internal/ops"
)

func TestGetToolDefinitions(t *testing.T) {
	tools := GetToolDefinitions()

	expectedTools := []string{
		"image_info",
		"image_get_pixel",
		"image_find_contours",
		"image_list_operations",
		"image_transform",
		"image_convert_format",
		"image_overlay",
		"image_create_blank",
	}

	if len(tools) != len(expectedTools) {
		t.Errorf("Expected %d tools, got %d", len(expectedTools), len(tools))
	}

	toolMap := make(map[string]Tool)
	for _, tool := range tools {
		toolMap[tool.Name] = tool
	}

	for _, name := range expectedTools {
		if _, ok := toolMap[name]; !ok {
			t.Errorf("Missing tool: %s", name)
		}
	}
}

func TestToolDefinitions_Structure(t *testing.T) {
	for _, tool := range GetToolDefinitions() {
		t.Run(tool.Name, func(t *testing.T) {
			if tool.Description == "" {
				t.Error("Description should not be empty")
			}
			if tool.InputSchema["type"] != "object" {
				t.Errorf("InputSchema type: got %v, want object", tool.InputSchema["type"])
			}
			props, ok := tool.InputSchema["properties"].(map[string]interface{})
			if !ok {
				t.Fatal("properties should be a map")
			}
			if required, ok := tool.InputSchema["required"].([]string); ok {
				for _, r := range required {
					if _, ok := props[r]; !ok {
						t.Errorf("required property %q is not defined", r)
					}
				}
			}
		})
	}
}

func TestToolDefinitions_ImageSources(t *testing.T) {
	withSource := map[string]bool{
		"image_info":           true,
		"image_get_pixel":      true,
		"image_find_contours":  true,
		"image_transform":      true,
		"image_convert_format": true,
		"image_overlay":        true,
	}

	for _, tool := range GetToolDefinitions() {
		props := tool.InputSchema["properties"].(map[string]interface{})
		_, hasPath := props["path"]
		_, hasB64 := props["image_base64"]
		if withSource[tool.Name] != (hasPath && hasB64) {
			t.Errorf("%s: path=%v image_base64=%v", tool.Name, hasPath, hasB64)
		}
	}
}

func TestToolDefinitions_TransformEnum(t *testing.T) {
	for _, tool := range GetToolDefinitions() {
		if tool.Name != "image_transform" {
			continue
		}
		props := tool.InputSchema["properties"].(map[string]interface{})
		enum := props["operation"].(map[string]interface{})["enum"].([]string)
		if len(enum) != len(ops.Names()) {
			t.Errorf("operation enum: got %d names, want %d", len(enum), len(ops.Names()))
		}
		return
	}
	t.Fatal("image_transform not defined")
}

func TestHandleToolsList(t *testing.T) {
	s := New()
	resp := s.handleToolsList(&MCPRequest{JSONRPC: "2.0", ID: "list-1"})

	if resp.ID != "list-1" {
		t.Errorf("ID: got %v, want list-1", resp.ID)
	}

	data, err := json.Marshal(resp)
	if err != nil {
		t.Fatalf("Failed to marshal: %v", err)
	}
	var decoded struct {
		Result struct {
			Tools []Tool `json:"tools"`
		} `json:"result"`
	}
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Failed to unmarshal: %v", err)
	}
	if len(decoded.Result.Tools) != len(GetToolDefinitions()) {
		t.Errorf("tools: got %d", len(decoded.Result.Tools))
	}
}
