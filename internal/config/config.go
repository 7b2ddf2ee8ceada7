package config

import (
	"encoding/json"
	"fmt"
	"image/color"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"

	"github.com/raphaelbgr/claude-screenshot-mcp/internal/hotkey"
)

// EnvDir overrides the config directory when set. Used by tests and
// portable installs.
const EnvDir = "CLAUDE_SCREENSHOT_CONFIG_DIR"

const appDirName = "claude-screenshot-mcp"

type Config struct {
	Hotkey              string  `json:"hotkey"`
	RecaptureHotkey     string  `json:"recapture_hotkey"`
	SaveDirectory       string  `json:"save_directory"`
	ImageFormat         string  `json:"image_format"`
	ShowNotification    bool    `json:"show_notification"`
	CopyPathToClipboard bool    `json:"copy_path_to_clipboard"`
	ShowTray            bool    `json:"show_tray"`
	EnablePreview       bool    `json:"enable_preview"`
	OverlayColor        string  `json:"overlay_color"`
	OverlayOpacity      float64 `json:"overlay_opacity"`
}

// Defaults returns the built-in configuration. An empty SaveDirectory
// means "use the system temp directory"; see SaveDir.
func Defaults() *Config {
	return &Config{
		Hotkey:              "ctrl+alt+shift+s",
		RecaptureHotkey:     "ctrl+alt+shift+r",
		SaveDirectory:       "",
		ImageFormat:         "png",
		ShowNotification:    true,
		CopyPathToClipboard: true,
		ShowTray:            true,
		EnablePreview:       false,
		OverlayColor:        "#00aaff",
		OverlayOpacity:      0.3,
	}
}

// Dir returns the per-user configuration directory.
func Dir() string {
	if d := os.Getenv(EnvDir); d != "" {
		return d
	}

	var base string
	switch runtime.GOOS {
	case "windows":
		base = os.Getenv("APPDATA")
		if base == "" {
			home, _ := os.UserHomeDir()
			base = filepath.Join(home, "AppData", "Roaming")
		}
	case "darwin":
		home, _ := os.UserHomeDir()
		base = filepath.Join(home, "Library", "Application Support")
	default:
		base = os.Getenv("XDG_CONFIG_HOME")
		if base == "" {
			home, _ := os.UserHomeDir()
			base = filepath.Join(home, ".config")
		}
	}
	return filepath.Join(base, appDirName)
}

// Path returns the config file location.
func Path() string {
	return filepath.Join(Dir(), "config.json")
}

// Load reads the config file, merging it over the defaults. A missing
// file is not an error; the defaults are returned untouched.
func Load() (*Config, error) {
	cfg := Defaults()

	data, err := os.ReadFile(Path())
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", Path(), err)
	}
	return cfg, nil
}

// Save writes the config to disk immediately.
func Save(cfg *Config) error {
	if err := os.MkdirAll(Dir(), 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(Path(), data, 0644)
}

// SaveDir resolves the screenshot output directory, falling back to
// the system temp directory when none is configured.
func (c *Config) SaveDir() string {
	if c.SaveDirectory != "" {
		return c.SaveDirectory
	}
	return os.TempDir()
}

// Update validates and applies a single key, then persists the config.
// Values arrive as strings (the tool façade passes them through
// verbatim); booleans and numbers are coerced here.
func Update(key, value string) (*Config, error) {
	cfg, err := Load()
	if err != nil {
		return nil, err
	}
	if err := cfg.Set(key, value); err != nil {
		return nil, err
	}
	if err := Save(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Set applies a single key to the in-memory config without saving.
func (c *Config) Set(key, value string) error {
	switch key {
	case "hotkey":
		if _, err := hotkey.ParseCombo(value); err != nil {
			return err
		}
		c.Hotkey = value
	case "recapture_hotkey":
		if _, err := hotkey.ParseCombo(value); err != nil {
			return err
		}
		c.RecaptureHotkey = value
	case "save_directory":
		c.SaveDirectory = value
	case "image_format":
		if err := validateFormat(value); err != nil {
			return err
		}
		c.ImageFormat = strings.ToLower(value)
	case "show_notification", "copy_path_to_clipboard", "show_tray", "enable_preview":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid boolean for %s: %q", key, value)
		}
		switch key {
		case "show_notification":
			c.ShowNotification = b
		case "copy_path_to_clipboard":
			c.CopyPathToClipboard = b
		case "show_tray":
			c.ShowTray = b
		case "enable_preview":
			c.EnablePreview = b
		}
	case "overlay_color":
		if _, err := ParseHexColor(value); err != nil {
			return err
		}
		c.OverlayColor = value
	case "overlay_opacity":
		f, err := strconv.ParseFloat(value, 64)
		if err != nil || f < 0 || f > 1 {
			return fmt.Errorf("overlay_opacity must be a number between 0 and 1, got %q", value)
		}
		c.OverlayOpacity = f
	default:
		return fmt.Errorf("unknown config key %q (valid keys: %s)", key, strings.Join(ValidKeys(), ", "))
	}
	return nil
}

// ValidKeys lists the settable configuration keys.
func ValidKeys() []string {
	return []string{
		"hotkey",
		"recapture_hotkey",
		"save_directory",
		"image_format",
		"show_notification",
		"copy_path_to_clipboard",
		"show_tray",
		"enable_preview",
		"overlay_color",
		"overlay_opacity",
	}
}

var validFormats = map[string]bool{
	"png": true, "jpg": true, "jpeg": true, "bmp": true, "gif": true, "tif": true, "tiff": true,
}

func validateFormat(format string) error {
	if !validFormats[strings.ToLower(format)] {
		return fmt.Errorf("unsupported image format %q (use png, jpg, jpeg, bmp, gif or tiff)", format)
	}
	return nil
}

// ParseHexColor parses "#rrggbb" into an opaque color.
func ParseHexColor(s string) (color.RGBA, error) {
	if len(s) != 7 || s[0] != '#' {
		return color.RGBA{}, fmt.Errorf("invalid color %q (expected #rrggbb)", s)
	}
	v, err := strconv.ParseUint(s[1:], 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("invalid color %q (expected #rrggbb)", s)
	}
	return color.RGBA{
		R: uint8(v >> 16),
		G: uint8(v >> 8),
		B: uint8(v),
		A: 0xff,
	}, nil
}
