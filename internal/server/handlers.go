package server

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/ironsheep/image-transform-mcp/internal/imaging"
	"github.com/ironsheep/image-transform-mcp/internal/ops"
)

// errInvalidArguments marks tool calls rejected before any image work.
var errInvalidArguments = errors.New("invalid arguments")

// ToolCallParams represents the parameters for a tools/call MCP request.
type ToolCallParams struct {
	// Name is the tool to invoke (e.g., "image_transform").
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
// Bad arguments, unknown operations and out-of-range parameters return
// -32602; any other failure returns -32000 with the error string as data.
func (s *Server) handleToolsCall(req *MCPRequest) *MCPResponse {
	var params ToolCallParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return s.errorResponse(req.ID, codeInvalidParams, "Invalid params", err.Error())
	}

	result, err := s.executeTool(params.Name, params.Arguments)
	if err != nil {
		s.logger.Warn("tool failed", "tool", params.Name, "error", err)
		if isInvalidParams(err) {
			return s.errorResponse(req.ID, codeInvalidParams, "Invalid params", err.Error())
		}
		return s.errorResponse(req.ID, codeToolFailed, "Tool execution failed", err.Error())
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

func isInvalidParams(err error) bool {
	return errors.Is(err, errInvalidArguments) ||
		errors.Is(err, ops.ErrUnknownOperation) ||
		errors.Is(err, imaging.ErrInvalidParameter)
}

// executeTool dispatches tool execution to the appropriate handler function.
//
// Each tool handler:
//  1. Unmarshals arguments from JSON
//  2. Applies default values for optional parameters
//  3. Reads the input image from a path or base64 payload
//  4. Calls the runner
//  5. Returns the result or error
func (s *Server) executeTool(name string, args json.RawMessage) (interface{}, error) {
	switch name {
	// Inspection
	case "image_info":
		return s.handleImageInfo(args)
	case "image_get_pixel":
		return s.handleImageGetPixel(args)
	case "image_find_contours":
		return s.handleImageFindContours(args)
	case "image_list_operations":
		return s.handleImageListOperations(args)

	// Producing images
	case "image_transform":
		return s.handleImageTransform(args)
	case "image_convert_format":
		return s.handleImageConvertFormat(args)
	case "image_overlay":
		return s.handleImageOverlay(args)
	case "image_create_blank":
		return s.handleImageCreateBlank(args)

	default:
		return nil, fmt.Errorf("%w: unknown tool: %s", errInvalidArguments, name)
	}
}

// errorResponse creates a JSON-RPC error response with the given details.
func (s *Server) errorResponse(id interface{}, code int, message, data string) *MCPResponse {
	e := &MCPError{
		Code:    code,
		Message: message,
	}
	if data != "" {
		e.Data = data
	}
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      id,
		Error:   e,
	}
}

// mustMarshalJSON converts a value to pretty-printed JSON string.
// Panics are suppressed; on marshal failure, returns an empty string.
func mustMarshalJSON(v interface{}) string {
	b, _ := json.MarshalIndent(v, "", "  ")
	return string(b)
}

func unmarshalArgs(args json.RawMessage, v interface{}) error {
	if len(args) == 0 {
		args = json.RawMessage("{}")
	}
	if err := json.Unmarshal(args, v); err != nil {
		return fmt.Errorf("%w: %w", errInvalidArguments, err)
	}
	return nil
}

// === Input and output ===

// imageSource names an input image by file path or inline base64.
type imageSource struct {
	Path        string `json:"path"`
	ImageBase64 string `json:"image_base64"`
}

func (src imageSource) load() ([]byte, error) {
	return loadImage(src.Path, src.ImageBase64, "path", "image_base64")
}

func loadImage(path, b64, pathKey, b64Key string) ([]byte, error) {
	switch {
	case path != "" && b64 != "":
		return nil, fmt.Errorf("%w: give either %s or %s, not both", errInvalidArguments, pathKey, b64Key)
	case path != "":
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read image: %w", err)
		}
		return data, nil
	case b64 != "":
		// Accept data URIs as well as bare payloads.
		if i := strings.Index(b64, ";base64,"); i >= 0 && strings.HasPrefix(b64, "data:") {
			b64 = b64[i+len(";base64,"):]
		}
		data, err := base64.StdEncoding.DecodeString(b64)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %w", errInvalidArguments, b64Key, err)
		}
		return data, nil
	default:
		return nil, fmt.Errorf("%w: %s or %s is required", errInvalidArguments, pathKey, b64Key)
	}
}

// imageResult describes an encoded image produced by a tool. Exactly one of
// ImageBase64 and OutputPath is set.
type imageResult struct {
	Width       int    `json:"width"`
	Height      int    `json:"height"`
	Format      string `json:"format"`
	MIMEType    string `json:"mime_type"`
	SizeBytes   int    `json:"size_bytes"`
	ImageBase64 string `json:"image_base64,omitempty"`
	OutputPath  string `json:"output_path,omitempty"`
}

func (s *Server) imageResult(data []byte, outputPath string) (*imageResult, error) {
	info, err := s.runner.Info(data)
	if err != nil {
		return nil, err
	}
	res := &imageResult{
		Width:     info.Width,
		Height:    info.Height,
		Format:    info.Format,
		MIMEType:  info.MIMEType,
		SizeBytes: info.SizeBytes,
	}
	if outputPath != "" {
		if err := os.WriteFile(outputPath, data, 0o644); err != nil {
			return nil, fmt.Errorf("failed to write output: %w", err)
		}
		res.OutputPath = outputPath
		return res, nil
	}
	res.ImageBase64 = base64.StdEncoding.EncodeToString(data)
	return res, nil
}

// === Inspection Handlers ===

func (s *Server) handleImageInfo(args json.RawMessage) (interface{}, error) {
	var a imageSource
	if err := unmarshalArgs(args, &a); err != nil {
		return nil, err
	}
	data, err := a.load()
	if err != nil {
		return nil, err
	}
	return s.runner.Info(data)
}

type imageGetPixelArgs struct {
	imageSource
	X int `json:"x"`
	Y int `json:"y"`
}

type pixelResult struct {
	X     int              `json:"x"`
	Y     int              `json:"y"`
	Color imaging.Color    `json:"color"`
	Hex   string           `json:"hex"`
	HSL   imaging.HSLColor `json:"hsl"`
}

func (s *Server) handleImageGetPixel(args json.RawMessage) (interface{}, error) {
	var a imageGetPixelArgs
	if err := unmarshalArgs(args, &a); err != nil {
		return nil, err
	}
	data, err := a.load()
	if err != nil {
		return nil, err
	}
	c, err := s.runner.Pixel(data, a.X, a.Y)
	if err != nil {
		return nil, err
	}
	return &pixelResult{X: a.X, Y: a.Y, Color: c, Hex: c.Hex(), HSL: c.HSL()}, nil
}

type contoursResult struct {
	Count    int               `json:"count"`
	Contours []imaging.Contour `json:"contours"`
}

func (s *Server) handleImageFindContours(args json.RawMessage) (interface{}, error) {
	var a imageSource
	if err := unmarshalArgs(args, &a); err != nil {
		return nil, err
	}
	data, err := a.load()
	if err != nil {
		return nil, err
	}
	contours, err := s.runner.Contours(data)
	if err != nil {
		return nil, err
	}
	if contours == nil {
		contours = []imaging.Contour{}
	}
	return &contoursResult{Count: len(contours), Contours: contours}, nil
}

type operationInfo struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

func (s *Server) handleImageListOperations(json.RawMessage) (interface{}, error) {
	names := ops.Names()
	list := make([]operationInfo, len(names))
	for i, name := range names {
		list[i] = operationInfo{Name: name, Description: ops.Describe(name)}
	}
	return map[string]interface{}{"count": len(list), "operations": list}, nil
}

// === Image Producing Handlers ===

type imageTransformArgs struct {
	imageSource
	Operation  string          `json:"operation"`
	Params     json.RawMessage `json:"params"`
	OutputPath string          `json:"output_path"`
}

func (s *Server) handleImageTransform(args json.RawMessage) (interface{}, error) {
	var a imageTransformArgs
	if err := unmarshalArgs(args, &a); err != nil {
		return nil, err
	}
	if a.Operation == "" {
		return nil, fmt.Errorf("%w: operation is required", errInvalidArguments)
	}
	// Validate the operation before touching the file system.
	op, err := ops.Decode(a.Operation, a.Params)
	if err != nil {
		return nil, err
	}
	data, err := a.load()
	if err != nil {
		return nil, err
	}
	out, err := s.runner.Apply(data, op)
	if err != nil {
		return nil, err
	}
	return s.imageResult(out, a.OutputPath)
}

type imageConvertFormatArgs struct {
	imageSource
	Format     string `json:"format"`
	OutputPath string `json:"output_path"`
}

func (s *Server) handleImageConvertFormat(args json.RawMessage) (interface{}, error) {
	var a imageConvertFormatArgs
	if err := unmarshalArgs(args, &a); err != nil {
		return nil, err
	}
	if a.Format == "" {
		return nil, fmt.Errorf("%w: format is required", errInvalidArguments)
	}
	data, err := a.load()
	if err != nil {
		return nil, err
	}
	out, err := s.runner.Convert(data, a.Format)
	if err != nil {
		return nil, err
	}
	return s.imageResult(out, a.OutputPath)
}

type imageOverlayArgs struct {
	imageSource
	OverlayPath   string `json:"overlay_path"`
	OverlayBase64 string `json:"overlay_base64"`
	X             int    `json:"x"`
	Y             int    `json:"y"`
	OutputPath    string `json:"output_path"`
}

func (s *Server) handleImageOverlay(args json.RawMessage) (interface{}, error) {
	var a imageOverlayArgs
	if err := unmarshalArgs(args, &a); err != nil {
		return nil, err
	}
	base, err := a.load()
	if err != nil {
		return nil, err
	}
	top, err := loadImage(a.OverlayPath, a.OverlayBase64, "overlay_path", "overlay_base64")
	if err != nil {
		return nil, err
	}
	out, err := s.runner.Overlay(base, top, a.X, a.Y)
	if err != nil {
		return nil, err
	}
	return s.imageResult(out, a.OutputPath)
}

type imageCreateBlankArgs struct {
	Width      int            `json:"width"`
	Height     int            `json:"height"`
	Color      *imaging.Color `json:"color"`
	OutputPath string         `json:"output_path"`
}

func (s *Server) handleImageCreateBlank(args json.RawMessage) (interface{}, error) {
	var a imageCreateBlankArgs
	if err := unmarshalArgs(args, &a); err != nil {
		return nil, err
	}
	c := imaging.Color{R: 255, G: 255, B: 255, A: 255}
	if a.Color != nil {
		c = *a.Color
	}
	out, err := s.runner.Blank(a.Width, a.Height, c)
	if err != nil {
		return nil, err
	}
	return s.imageResult(out, a.OutputPath)
}
