package server

import (
	"bufio"
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

// runLines feeds each line to a fresh server and returns the decoded responses.
func runLines(t *testing.T, s *Server, lines ...string) []MCPResponse {
	t.Helper()

	var out bytes.Buffer
	if err := s.Run(strings.NewReader(strings.Join(lines, "\n")+"\n"), &out); err != nil {
		t.Fatalf("Run: %v", err)
	}

	var responses []MCPResponse
	scanner := bufio.NewScanner(&out)
	scanner.Buffer(make([]byte, 0, 64*1024), 16<<20)
	for scanner.Scan() {
		var resp MCPResponse
		if err := json.Unmarshal(scanner.Bytes(), &resp); err != nil {
			t.Fatalf("response is not JSON: %v: %s", err, scanner.Text())
		}
		responses = append(responses, resp)
	}
	return responses
}

func TestNew(t *testing.T) {
	s := New()
	if s == nil {
		t.Fatal("New() returned nil")
	}
	if s.runner == nil {
		t.Fatal("New() did not create a runner")
	}
	if s.maxRequestBytes != DefaultMaxRequestBytes {
		t.Errorf("maxRequestBytes: got %d, want %d", s.maxRequestBytes, DefaultMaxRequestBytes)
	}
}

func TestNew_Options(t *testing.T) {
	s := New(WithVersion("1.2.3"), WithMaxRequestBytes(1024), WithMaxRequestBytes(0))
	if s.version != "1.2.3" {
		t.Errorf("version: got %s", s.version)
	}
	if s.maxRequestBytes != 1024 {
		t.Errorf("maxRequestBytes: got %d, want 1024", s.maxRequestBytes)
	}
}

func TestMCPRequest_Unmarshal(t *testing.T) {
	tests := []struct {
		name       string
		json       string
		wantID     interface{}
		wantMethod string
	}{
		{"string id", `{"jsonrpc":"2.0","id":"test-1","method":"tools/list"}`, "test-1", "tools/list"},
		{"number id", `{"jsonrpc":"2.0","id":42,"method":"ping"}`, float64(42), "ping"},
		{"null id", `{"jsonrpc":"2.0","id":null,"method":"initialize"}`, nil, "initialize"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var req MCPRequest
			if err := json.Unmarshal([]byte(tt.json), &req); err != nil {
				t.Fatalf("Failed to unmarshal: %v", err)
			}
			if req.ID != tt.wantID {
				t.Errorf("ID: got %v (%T), want %v (%T)", req.ID, req.ID, tt.wantID, tt.wantID)
			}
			if req.Method != tt.wantMethod {
				t.Errorf("Method: got %s, want %s", req.Method, tt.wantMethod)
			}
		})
	}
}

func TestErrorResponse_OmitsEmptyData(t *testing.T) {
	s := New()
	data, err := json.Marshal(s.errorResponse(1, codeMethodNotFound, "Method not found: x", ""))
	if err != nil {
		t.Fatalf("Failed to marshal: %v", err)
	}
	if strings.Contains(string(data), `"data"`) {
		t.Errorf("data should be omitted: %s", data)
	}
	if strings.Contains(string(data), `"result"`) {
		t.Errorf("result should be omitted: %s", data)
	}
}

func TestRun_Session(t *testing.T) {
	s := New(WithVersion("0.3.0"))
	responses := runLines(t, s,
		`{"jsonrpc":"2.0","id":1,"method":"initialize","params":{}}`,
		`{"jsonrpc":"2.0","method":"notifications/initialized"}`,
		``,
		`{"jsonrpc":"2.0","id":2,"method":"ping"}`,
		`{"jsonrpc":"2.0","id":3,"method":"tools/list"}`,
	)

	// The notification and the blank line produce no output.
	if len(responses) != 3 {
		t.Fatalf("got %d responses, want 3", len(responses))
	}

	result, ok := responses[0].Result.(map[string]interface{})
	if !ok {
		t.Fatal("initialize result should be an object")
	}
	if result["protocolVersion"] != "2024-11-05" {
		t.Errorf("protocolVersion: got %v", result["protocolVersion"])
	}
	info := result["serverInfo"].(map[string]interface{})
	if info["name"] != "image-transform-mcp" || info["version"] != "0.3.0" {
		t.Errorf("serverInfo: got %v", info)
	}

	if responses[1].ID != float64(2) || responses[1].Error != nil {
		t.Errorf("ping: got %+v", responses[1])
	}

	tools := responses[2].Result.(map[string]interface{})["tools"].([]interface{})
	if len(tools) != len(GetToolDefinitions()) {
		t.Errorf("tools/list: got %d tools, want %d", len(tools), len(GetToolDefinitions()))
	}
}

func TestRun_ParseError(t *testing.T) {
	responses := runLines(t, New(), `{not json`, `{"jsonrpc":"2.0","id":7,"method":"ping"}`)

	if len(responses) != 2 {
		t.Fatalf("got %d responses, want 2", len(responses))
	}
	if responses[0].Error == nil || responses[0].Error.Code != codeParseError {
		t.Errorf("want parse error, got %+v", responses[0])
	}
	if responses[0].ID != nil {
		t.Errorf("parse error ID: got %v, want null", responses[0].ID)
	}
	if responses[1].Error != nil {
		t.Errorf("server should keep serving after a parse error: %+v", responses[1].Error)
	}
}

func TestRun_LineTooLong(t *testing.T) {
	s := New(WithMaxRequestBytes(32))
	var out bytes.Buffer
	err := s.Run(strings.NewReader(`{"jsonrpc":"2.0","id":1,"method":"ping","params":{"padding":"xxxxxxxx"}}`+"\n"), &out)
	if err == nil {
		t.Fatal("expected an error for an oversized request")
	}
}

func TestHandleRequest_MethodNotFound(t *testing.T) {
	s := New()
	resp := s.handleRequest(&MCPRequest{JSONRPC: "2.0", ID: 1, Method: "resources/list"})

	if resp == nil || resp.Error == nil {
		t.Fatal("Expected error for unknown method")
	}
	if resp.Error.Code != codeMethodNotFound {
		t.Errorf("Error code: got %d, want %d", resp.Error.Code, codeMethodNotFound)
	}
}
