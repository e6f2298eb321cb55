// Package server implements the MCP (Model Context Protocol) server that
// exposes the image transformation catalog.
//
// # Protocol
//
// The server communicates over stdio using JSON-RPC 2.0:
//   - Input: JSON-RPC requests on stdin (one per line)
//   - Output: JSON-RPC responses on stdout
//
// Supported MCP methods:
//   - initialize: Protocol handshake
//   - tools/list: Enumerate available tools
//   - tools/call: Execute a tool with arguments
//   - ping: Health check
//
// # Available Tools
//
// Inspection:
//   - image_info: Dimensions, format and size from the header
//   - image_get_pixel: RGBA, hex and HSL at one pixel
//   - image_find_contours: Border tracing with hole hierarchy
//   - image_list_operations: The image_transform catalog
//
// Producing images:
//   - image_transform: Run one catalog operation, keeping the input format
//   - image_convert_format: Re-encode as png, jpeg, gif, webp, bmp, tiff or ico
//   - image_overlay: Alpha-composite a second image
//   - image_create_blank: Solid PNG canvas
//
// Every tool that reads an image accepts either "path" or "image_base64".
// Tools that produce an image return its width, height, format, mime_type
// and size_bytes, plus either the encoded bytes as "image_base64" or the
// "output_path" the bytes were written to.
//
// # Statelessness
//
// Nothing is cached between calls. Each call reads its input, runs the
// operation and returns or writes the result.
//
// # Error Handling
//
// Tool execution errors are returned as JSON-RPC error responses with:
//   - code: -32602 for malformed arguments, unknown operations and rejected
//     parameters; -32000 for any other failure
//   - message: Human-readable error description
//   - data: The Go error string
//
// # Usage
//
//	srv := server.New(server.WithRunner(runner), server.WithLogger(logger))
//	if err := srv.Run(os.Stdin, os.Stdout); err != nil {
//	    log.Fatal(err)
//	}
package server
