package server

import (
	"fmt"
	"strings"

	"github.com/raphaelbgr/claude-screenshot-mcp/internal/config"
)

// Tool represents an MCP tool definition.
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

func saveProperties() map[string]interface{} {
	return map[string]interface{}{
		"save_directory": map[string]interface{}{
			"type":        "string",
			"description": "Directory to save the screenshot. If not specified, uses the configured default directory.",
		},
		"filename": map[string]interface{}{
			"type":        "string",
			"description": "Custom filename for the screenshot (e.g., 'my_capture.png'). If not specified, a timestamp-based name is generated.",
		},
	}
}

// GetToolDefinitions returns all available tools.
func GetToolDefinitions() []Tool {
	return []Tool{
		{
			Name: "screenshot_capture_region",
			Description: "Launch an interactive screen region selector and capture the selected area. " +
				"Opens a fullscreen overlay where the user clicks and drags to select a rectangle; " +
				"the selection is remembered for later recapture. Press Escape or right-click to cancel.",
			InputSchema: map[string]interface{}{
				"type":       "object",
				"properties": saveProperties(),
			},
		},
		{
			Name: "screenshot_capture_recapture",
			Description: "Capture the same region as the last interactive selection, without prompting. " +
				"Falls back to the interactive selector when no region has been selected yet.",
			InputSchema: map[string]interface{}{
				"type":       "object",
				"properties": saveProperties(),
			},
		},
		{
			Name:        "screenshot_capture_fullscreen",
			Description: "Capture the entire screen (all monitors) and save as an image.",
			InputSchema: map[string]interface{}{
				"type":       "object",
				"properties": saveProperties(),
			},
		},
		{
			Name:        "screenshot_capture_coordinates",
			Description: "Capture a specific rectangular region of the screen by coordinates. Useful when the exact coordinates are already known.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": mergeProperties(saveProperties(), map[string]interface{}{
					"x": map[string]interface{}{
						"type":        "integer",
						"description": "Left coordinate of the region (pixels)",
					},
					"y": map[string]interface{}{
						"type":        "integer",
						"description": "Top coordinate of the region (pixels)",
					},
					"width": map[string]interface{}{
						"type":        "integer",
						"description": "Width of the region (pixels)",
					},
					"height": map[string]interface{}{
						"type":        "integer",
						"description": "Height of the region (pixels)",
					},
				}),
				"required": []string{"x", "y", "width", "height"},
			},
		},
		{
			Name:        "screenshot_get_latest",
			Description: "Get the file path(s) of the most recently captured screenshot(s), newest first.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"count": map[string]interface{}{
						"type":        "integer",
						"description": "Number of recent screenshots to list (1-20). Default 1.",
						"default":     1,
					},
				},
			},
		},
		{
			Name:        "screenshot_get_config",
			Description: "Get the current screenshot configuration: hotkeys, save directory, image format and overlay appearance.",
			InputSchema: map[string]interface{}{
				"type":       "object",
				"properties": map[string]interface{}{},
			},
		},
		{
			Name: "screenshot_update_config",
			Description: fmt.Sprintf("Update a configuration setting. Valid keys: %s. "+
				"Booleans as 'true'/'false'; the change is persisted immediately.",
				strings.Join(config.ValidKeys(), ", ")),
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"key": map[string]interface{}{
						"type":        "string",
						"description": "Configuration key to update",
						"enum":        config.ValidKeys(),
					},
					"value": map[string]interface{}{
						"type":        "string",
						"description": "New value for the configuration key",
					},
				},
				"required": []string{"key", "value"},
			},
		},
	}
}

func mergeProperties(maps ...map[string]interface{}) map[string]interface{} {
	out := map[string]interface{}{}
	for _, m := range maps {
		for k, v := range m {
			out[k] = v
		}
	}
	return out
}
