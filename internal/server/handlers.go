package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"image"

	log "github.com/sirupsen/logrus"

	"github.com/raphaelbgr/claude-screenshot-mcp/internal/capture"
	"github.com/raphaelbgr/claude-screenshot-mcp/internal/clipboard"
	"github.com/raphaelbgr/claude-screenshot-mcp/internal/config"
	"github.com/raphaelbgr/claude-screenshot-mcp/internal/overlay"
)

// ToolCallParams represents the parameters for a tools/call request.
type ToolCallParams struct {
	Name      string          `json:"name"`
	Arguments json.RawMessage `json:"arguments"`
}

// toolResult is the JSON payload returned inside MCP text content.
// Status is "ok", "cancelled" or "error"; cancelled selections are a
// normal outcome, not a protocol error.
type toolResult struct {
	Status      string         `json:"status"`
	Path        string         `json:"path,omitempty"`
	Screenshots []string       `json:"screenshots,omitempty"`
	Config      *config.Config `json:"config,omitempty"`
	Message     string         `json:"message,omitempty"`
}

func okResult(path, message string) *toolResult {
	return &toolResult{Status: "ok", Path: path, Message: message}
}

func errResult(format string, args ...interface{}) *toolResult {
	return &toolResult{Status: "error", Message: fmt.Sprintf(format, args...)}
}

var cancelledResult = &toolResult{
	Status:  "cancelled",
	Message: "Selection was cancelled by the user.",
}

// handleToolsCall processes a tools/call request. Transport problems
// (bad params, unknown tool) become JSON-RPC errors; tool outcomes are
// reported in the result payload.
func (s *Server) handleToolsCall(req *MCPRequest) *MCPResponse {
	var params ToolCallParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return s.errorResponse(req.ID, -32602, "Invalid params", err.Error())
	}

	result, err := s.executeTool(params.Name, params.Arguments)
	if err != nil {
		return s.errorResponse(req.ID, -32000, "Tool execution failed", err.Error())
	}

	text, _ := json.MarshalIndent(result, "", "  ")
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"content": []map[string]interface{}{
				{"type": "text", "text": string(text)},
			},
		},
	}
}

func (s *Server) executeTool(name string, args json.RawMessage) (*toolResult, error) {
	switch name {
	case "screenshot_capture_region":
		return s.handleCaptureRegion(args)
	case "screenshot_capture_recapture":
		return s.handleCaptureRecapture(args)
	case "screenshot_capture_fullscreen":
		return s.handleCaptureFullscreen(args)
	case "screenshot_capture_coordinates":
		return s.handleCaptureCoordinates(args)
	case "screenshot_get_latest":
		return s.handleGetLatest(args)
	case "screenshot_get_config":
		return s.handleGetConfig(args)
	case "screenshot_update_config":
		return s.handleUpdateConfig(args)
	default:
		return nil, fmt.Errorf("unknown tool: %s", name)
	}
}

type saveArgs struct {
	SaveDirectory string `json:"save_directory"`
	Filename      string `json:"filename"`
}

func (s *Server) handleCaptureRegion(args json.RawMessage) (*toolResult, error) {
	var a saveArgs
	if len(args) > 0 {
		if err := json.Unmarshal(args, &a); err != nil {
			return nil, err
		}
	}

	cfg := loadConfig()

	path, err := s.interactive(cfg, a.SaveDirectory, a.Filename)
	if errors.Is(err, overlay.ErrCancelled) {
		return cancelledResult, nil
	}
	if err != nil {
		return errResult("Capture failed: %v", err), nil
	}

	s.copyPath(cfg, path)
	return okResult(path, fmt.Sprintf("Screenshot saved! You can reference it at: %s", path)), nil
}

func (s *Server) handleCaptureRecapture(args json.RawMessage) (*toolResult, error) {
	var a saveArgs
	if len(args) > 0 {
		if err := json.Unmarshal(args, &a); err != nil {
			return nil, err
		}
	}

	cfg := loadConfig()

	path, replayed, err := s.recapture(cfg, a.SaveDirectory, a.Filename)
	if errors.Is(err, overlay.ErrCancelled) {
		return cancelledResult, nil
	}
	if err != nil {
		return errResult("Capture failed: %v", err), nil
	}

	s.copyPath(cfg, path)
	message := fmt.Sprintf("Recaptured last region! Path: %s", path)
	if !replayed {
		message = fmt.Sprintf("No region was remembered; captured interactively. Path: %s", path)
	}
	return okResult(path, message), nil
}

func (s *Server) handleCaptureFullscreen(args json.RawMessage) (*toolResult, error) {
	var a saveArgs
	if len(args) > 0 {
		if err := json.Unmarshal(args, &a); err != nil {
			return nil, err
		}
	}

	cfg := loadConfig()

	path, err := capture.Fullscreen(cfg, a.SaveDirectory, a.Filename)
	if err != nil {
		return errResult("Capture failed: %v", err), nil
	}

	s.copyPath(cfg, path)
	return okResult(path, fmt.Sprintf("Full screen captured! Path: %s", path)), nil
}

type coordinatesArgs struct {
	X      int `json:"x"`
	Y      int `json:"y"`
	Width  int `json:"width"`
	Height int `json:"height"`
	saveArgs
}

func (s *Server) handleCaptureCoordinates(args json.RawMessage) (*toolResult, error) {
	var a coordinatesArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.X < 0 || a.Y < 0 {
		return nil, fmt.Errorf("x and y must be non-negative, got (%d, %d)", a.X, a.Y)
	}
	if a.Width < 1 || a.Height < 1 {
		return nil, fmt.Errorf("width and height must be at least 1, got %dx%d", a.Width, a.Height)
	}

	cfg := loadConfig()

	rect := image.Rect(a.X, a.Y, a.X+a.Width, a.Y+a.Height)
	path, err := capture.Coordinates(cfg, rect, a.SaveDirectory, a.Filename)
	if err != nil {
		return errResult("Capture failed: %v", err), nil
	}

	s.copyPath(cfg, path)
	return okResult(path, fmt.Sprintf("Region captured! Path: %s", path)), nil
}

type getLatestArgs struct {
	Count int `json:"count"`
}

func (s *Server) handleGetLatest(args json.RawMessage) (*toolResult, error) {
	a := getLatestArgs{Count: 1}
	if len(args) > 0 {
		if err := json.Unmarshal(args, &a); err != nil {
			return nil, err
		}
	}
	if a.Count < 1 || a.Count > 20 {
		return nil, fmt.Errorf("count must be between 1 and 20, got %d", a.Count)
	}

	cfg := loadConfig()

	paths, err := capture.Latest(cfg.SaveDir(), a.Count)
	if err != nil {
		return nil, err
	}

	message := fmt.Sprintf("Found %d recent screenshot(s).", len(paths))
	if len(paths) == 0 {
		message = "No screenshots found in the screenshots directory."
	}
	return &toolResult{Status: "ok", Screenshots: paths, Message: message}, nil
}

func (s *Server) handleGetConfig(json.RawMessage) (*toolResult, error) {
	return &toolResult{Status: "ok", Config: loadConfig()}, nil
}

type updateConfigArgs struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

func (s *Server) handleUpdateConfig(args json.RawMessage) (*toolResult, error) {
	var a updateConfigArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}

	cfg, err := config.Update(a.Key, a.Value)
	if err != nil {
		return errResult("%v", err), nil
	}
	return &toolResult{
		Status:  "ok",
		Config:  cfg,
		Message: fmt.Sprintf("Updated %q to %q.", a.Key, a.Value),
	}, nil
}

// loadConfig falls back to defaults on a broken config file, same as
// the daemon; one bad file must not take down every tool.
func loadConfig() *config.Config {
	cfg, err := config.Load()
	if err != nil {
		log.Warnf("Failed to load config: %v, using defaults", err)
		return config.Defaults()
	}
	return cfg
}

func (s *Server) copyPath(cfg *config.Config, path string) {
	if !cfg.CopyPathToClipboard {
		return
	}
	if err := clipboard.CopyText(path); err != nil {
		log.Warnf("Failed to copy path to clipboard: %v", err)
	}
}
