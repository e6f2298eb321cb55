package server

import (
	"strings"

	"github.com/ironsheep/image-transform-mcp/internal/codec"
	"github.com/ironsheep/image-transform-mcp/internal/ops"
)

// Tool represents an MCP tool definition
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

func property(typ, description string) map[string]interface{} {
	return map[string]interface{}{
		"type":        typ,
		"description": description,
	}
}

// sourceProperties returns the two ways of supplying an input image plus any extra properties.
func sourceProperties(extra map[string]interface{}) map[string]interface{} {
	props := map[string]interface{}{
		"path":         property("string", "Absolute path to the input image file"),
		"image_base64": property("string", "Input image as base64 (a data: URI is also accepted). Use instead of path"),
	}
	for k, v := range extra {
		props[k] = v
	}
	return props
}

var outputPathProperty = property("string", "Optional file to write the result to. When omitted the result is returned as image_base64")

func formatNames() []string {
	formats := codec.Formats()
	names := make([]string, len(formats))
	for i, f := range formats {
		names[i] = f.String()
	}
	return names
}

// GetToolDefinitions returns all available tools
func GetToolDefinitions() []Tool {
	return []Tool{
		// Inspection
		{
			Name:        "image_info",
			Description: "Get the width, height, container format and encoded size of an image without decoding its pixels.",
			InputSchema: map[string]interface{}{
				"type":       "object",
				"properties": sourceProperties(nil),
			},
		},
		{
			Name:        "image_get_pixel",
			Description: "Get the exact RGBA colour at a pixel coordinate, with its hex and HSL forms.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": sourceProperties(map[string]interface{}{
					"x": property("integer", "X coordinate (0-based, from left)"),
					"y": property("integer", "Y coordinate (0-based, from top)"),
				}),
				"required": []string{"x", "y"},
			},
		},
		{
			Name:        "image_find_contours",
			Description: "Trace the borders of the non-black regions of an image. Each contour lists its points, whether it is an outer border or a hole, and the index of its enclosing contour (-1 for none).",
			InputSchema: map[string]interface{}{
				"type":       "object",
				"properties": sourceProperties(nil),
			},
		},
		{
			Name:        "image_list_operations",
			Description: "List every operation accepted by image_transform with a short description of its parameters.",
			InputSchema: map[string]interface{}{
				"type":       "object",
				"properties": map[string]interface{}{},
			},
		},

		// Producing images
		{
			Name:        "image_transform",
			Description: "Apply one operation (resize, crop, rotate, blur, threshold, seam_carve_width, draw_line, ...) to an image. The result keeps the input's format. Call image_list_operations for the full catalog.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": sourceProperties(map[string]interface{}{
					"operation": map[string]interface{}{
						"type":        "string",
						"enum":        ops.Names(),
						"description": "Operation name",
					},
					"params": map[string]interface{}{
						"type":        "object",
						"description": "Operation parameters, e.g. {\"width\": 200, \"height\": 100} for resize. Omitted parameters take their defaults",
					},
					"output_path": outputPathProperty,
				}),
				"required": []string{"operation"},
			},
		},
		{
			Name:        "image_convert_format",
			Description: "Re-encode an image in another container format.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": sourceProperties(map[string]interface{}{
					"format": property("string", "Target format: "+strings.Join(formatNames(), ", ")+" (jpg and tif are accepted as aliases)"),
					"output_path": outputPathProperty,
				}),
				"required": []string{"format"},
			},
		},
		{
			Name:        "image_overlay",
			Description: "Alpha-composite a second image onto the input with its top-left corner at (x, y). The result keeps the base image's size and format.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": sourceProperties(map[string]interface{}{
					"overlay_path":   property("string", "Absolute path to the image placed on top"),
					"overlay_base64": property("string", "Image placed on top, as base64. Use instead of overlay_path"),
					"x":              property("integer", "Left offset of the overlay; may be negative"),
					"y":              property("integer", "Top offset of the overlay; may be negative"),
					"output_path":    outputPathProperty,
				}),
				"required": []string{"x", "y"},
			},
		},
		{
			Name:        "image_create_blank",
			Description: "Create a PNG canvas filled with one colour.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"width":  property("integer", "Canvas width in pixels"),
					"height": property("integer", "Canvas height in pixels"),
					"color": map[string]interface{}{
						"type":        []string{"string", "object"},
						"description": "Fill colour as \"#RRGGBB[AA]\" or {\"r\",\"g\",\"b\",\"a\"}. Default opaque white",
					},
					"output_path": outputPathProperty,
				},
				"required": []string{"width", "height"},
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
