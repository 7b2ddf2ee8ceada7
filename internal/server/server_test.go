package server

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

func request(t *testing.T, method string, params interface{}) *MCPRequest {
	t.Helper()
	req := &MCPRequest{JSONRPC: "2.0", ID: 1, Method: method}
	if params != nil {
		raw, err := json.Marshal(params)
		if err != nil {
			t.Fatal(err)
		}
		req.Params = raw
	}
	return req
}

func TestHandleInitialize(t *testing.T) {
	s := New()
	resp := s.handleRequest(request(t, "initialize", nil))
	if resp == nil || resp.Error != nil {
		t.Fatalf("initialize failed: %+v", resp)
	}

	result, ok := resp.Result.(map[string]interface{})
	if !ok {
		t.Fatalf("initialize result type %T", resp.Result)
	}
	if result["protocolVersion"] != "2024-11-05" {
		t.Errorf("protocolVersion = %v", result["protocolVersion"])
	}
	info, ok := result["serverInfo"].(map[string]interface{})
	if !ok || info["name"] != "claude-screenshot-mcp" {
		t.Errorf("serverInfo = %v", result["serverInfo"])
	}
}

func TestHandleToolsList(t *testing.T) {
	s := New()
	resp := s.handleRequest(request(t, "tools/list", nil))
	if resp == nil || resp.Error != nil {
		t.Fatalf("tools/list failed: %+v", resp)
	}

	tools := resp.Result.(map[string]interface{})["tools"].([]Tool)
	want := map[string]bool{
		"screenshot_capture_region":      true,
		"screenshot_capture_recapture":   true,
		"screenshot_capture_fullscreen":  true,
		"screenshot_capture_coordinates": true,
		"screenshot_get_latest":          true,
		"screenshot_get_config":          true,
		"screenshot_update_config":       true,
	}
	if len(tools) != len(want) {
		t.Fatalf("tools/list returned %d tools, want %d", len(tools), len(want))
	}
	for _, tool := range tools {
		if !want[tool.Name] {
			t.Errorf("unexpected tool %q", tool.Name)
		}
		if tool.Description == "" {
			t.Errorf("tool %q has no description", tool.Name)
		}
	}
}

func TestHandlePing(t *testing.T) {
	s := New()
	resp := s.handleRequest(request(t, "ping", nil))
	if resp == nil || resp.Error != nil {
		t.Fatalf("ping failed: %+v", resp)
	}
}

func TestInitializedNotificationHasNoResponse(t *testing.T) {
	s := New()
	if resp := s.handleRequest(request(t, "notifications/initialized", nil)); resp != nil {
		t.Errorf("notification produced a response: %+v", resp)
	}
}

func TestUnknownMethod(t *testing.T) {
	s := New()
	resp := s.handleRequest(request(t, "resources/list", nil))
	if resp == nil || resp.Error == nil {
		t.Fatal("unknown method did not produce an error")
	}
	if resp.Error.Code != -32601 {
		t.Errorf("error code = %d, want -32601", resp.Error.Code)
	}
}

func TestToolsCallInvalidParams(t *testing.T) {
	s := New()
	req := &MCPRequest{JSONRPC: "2.0", ID: 1, Method: "tools/call", Params: json.RawMessage(`42`)}
	resp := s.handleRequest(req)
	if resp == nil || resp.Error == nil || resp.Error.Code != -32602 {
		t.Fatalf("invalid params response = %+v, want -32602", resp)
	}
}

func TestToolsCallUnknownTool(t *testing.T) {
	s := New()
	resp := s.handleRequest(request(t, "tools/call", ToolCallParams{Name: "screenshot_nuke"}))
	if resp == nil || resp.Error == nil || resp.Error.Code != -32000 {
		t.Fatalf("unknown tool response = %+v, want -32000", resp)
	}
}

func TestRunLoop(t *testing.T) {
	input := strings.Join([]string{
		`{"jsonrpc":"2.0","id":1,"method":"initialize"}`,
		``,
		`this is not json`,
		`{"jsonrpc":"2.0","method":"notifications/initialized"}`,
		`{"jsonrpc":"2.0","id":2,"method":"ping"}`,
	}, "\n") + "\n"

	var out bytes.Buffer
	s := New()
	if err := s.Run(strings.NewReader(input), &out); err != nil {
		t.Fatalf("Run() error: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("Run() produced %d responses, want 2 (init, ping):\n%s", len(lines), out.String())
	}
	for _, line := range lines {
		var resp MCPResponse
		if err := json.Unmarshal([]byte(line), &resp); err != nil {
			t.Errorf("response is not valid JSON: %v\n%s", err, line)
		}
	}
}
