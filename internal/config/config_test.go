package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadWithoutFileReturnsDefaults(t *testing.T) {
	t.Setenv(EnvDir, t.TempDir())

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	want := Defaults()
	if *cfg != *want {
		t.Errorf("Load() = %+v, want defaults %+v", cfg, want)
	}
}

func TestSaveLoadRoundtrip(t *testing.T) {
	t.Setenv(EnvDir, t.TempDir())

	cfg := Defaults()
	cfg.Hotkey = "ctrl+alt+p"
	cfg.SaveDirectory = "/tmp/shots"
	cfg.ImageFormat = "jpg"
	cfg.OverlayOpacity = 0.5

	if err := Save(cfg); err != nil {
		t.Fatalf("Save() error: %v", err)
	}

	loaded, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if *loaded != *cfg {
		t.Errorf("roundtrip: got %+v, want %+v", loaded, cfg)
	}
}

func TestUpdatePersistsAcrossReload(t *testing.T) {
	t.Setenv(EnvDir, t.TempDir())

	if _, err := Update("hotkey", "ctrl+alt+s"); err != nil {
		t.Fatalf("Update() error: %v", err)
	}

	// A fresh Load simulates a process restart.
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Hotkey != "ctrl+alt+s" {
		t.Errorf("Hotkey after reload = %q, want %q", cfg.Hotkey, "ctrl+alt+s")
	}
}

func TestUpdateRejects(t *testing.T) {
	t.Setenv(EnvDir, t.TempDir())

	tests := []struct {
		name  string
		key   string
		value string
	}{
		{"unknown key", "no_such_key", "x"},
		{"invalid hotkey", "hotkey", "ctrl+"},
		{"invalid hotkey key name", "recapture_hotkey", "ctrl+meta+s"},
		{"invalid format", "image_format", "webp2"},
		{"invalid bool", "show_notification", "yes please"},
		{"opacity above one", "overlay_opacity", "1.5"},
		{"opacity not a number", "overlay_opacity", "dim"},
		{"invalid color", "overlay_color", "blue"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Update(tt.key, tt.value); err == nil {
				t.Errorf("Update(%q, %q) succeeded, want error", tt.key, tt.value)
			}
		})
	}

	// None of the rejected updates may have written a file.
	if _, err := os.Stat(Path()); !os.IsNotExist(err) {
		t.Errorf("config file written despite rejected updates")
	}
}

func TestUpdateCoercesValues(t *testing.T) {
	t.Setenv(EnvDir, t.TempDir())

	if _, err := Update("show_notification", "false"); err != nil {
		t.Fatalf("Update() error: %v", err)
	}
	if _, err := Update("overlay_opacity", "0.75"); err != nil {
		t.Fatalf("Update() error: %v", err)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.ShowNotification {
		t.Error("ShowNotification still true after updating to false")
	}
	if cfg.OverlayOpacity != 0.75 {
		t.Errorf("OverlayOpacity = %v, want 0.75", cfg.OverlayOpacity)
	}
}

func TestSaveDirFallsBackToTemp(t *testing.T) {
	cfg := Defaults()
	if got := cfg.SaveDir(); got != os.TempDir() {
		t.Errorf("SaveDir() = %q, want temp dir %q", got, os.TempDir())
	}

	cfg.SaveDirectory = "/data/shots"
	if got := cfg.SaveDir(); got != "/data/shots" {
		t.Errorf("SaveDir() = %q, want configured directory", got)
	}
}

func TestDirHonorsEnvOverride(t *testing.T) {
	dir := t.TempDir()
	t.Setenv(EnvDir, dir)

	if got := Dir(); got != dir {
		t.Errorf("Dir() = %q, want %q", got, dir)
	}
	if got := Path(); got != filepath.Join(dir, "config.json") {
		t.Errorf("Path() = %q", got)
	}
}

func TestParseHexColor(t *testing.T) {
	tests := []struct {
		in      string
		r, g, b uint8
		wantErr bool
	}{
		{in: "#00aaff", r: 0x00, g: 0xaa, b: 0xff},
		{in: "#FF0000", r: 0xff},
		{in: "00aaff", wantErr: true},
		{in: "#00aaf", wantErr: true},
		{in: "#zzzzzz", wantErr: true},
	}

	for _, tt := range tests {
		c, err := ParseHexColor(tt.in)
		if tt.wantErr {
			if err == nil {
				t.Errorf("ParseHexColor(%q) succeeded, want error", tt.in)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseHexColor(%q) error: %v", tt.in, err)
			continue
		}
		if c.R != tt.r || c.G != tt.g || c.B != tt.b || c.A != 0xff {
			t.Errorf("ParseHexColor(%q) = %+v", tt.in, c)
		}
	}
}

func TestValidKeysCoverEveryField(t *testing.T) {
	cfg := Defaults()
	for _, key := range ValidKeys() {
		var value string
		switch key {
		case "hotkey", "recapture_hotkey":
			value = "ctrl+shift+x"
		case "save_directory":
			value = "/tmp"
		case "image_format":
			value = "png"
		case "overlay_color":
			value = "#123456"
		case "overlay_opacity":
			value = "0.4"
		default:
			value = "true"
		}
		if err := cfg.Set(key, value); err != nil {
			t.Errorf("Set(%q, %q) error: %v", key, value, err)
		}
	}
}

func TestUnknownKeyErrorListsValidKeys(t *testing.T) {
	err := Defaults().Set("bogus", "1")
	if err == nil {
		t.Fatal("Set with unknown key succeeded")
	}
	if !strings.Contains(err.Error(), "hotkey") {
		t.Errorf("error %q does not list valid keys", err)
	}
}
