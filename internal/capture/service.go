package capture

import (
	"errors"
	"image"

	log "github.com/sirupsen/logrus"

	"github.com/raphaelbgr/claude-screenshot-mcp/internal/config"
	"github.com/raphaelbgr/claude-screenshot-mcp/internal/overlay"
	"github.com/raphaelbgr/claude-screenshot-mcp/internal/region"
)

// SelectFunc matches overlay.Select. Injectable so the daemon and the
// tool façade can be tested without a display.
type SelectFunc func(bounds image.Rectangle, opts overlay.Options) (image.Rectangle, error)

// Screen access goes through these so tests can substitute synthetic
// frames for a real display.
var (
	virtualBounds = VirtualBounds
	grabRect      = Rect
)

// Interactive performs the full interactive capture: freeze the
// virtual screen, run the selector over it, persist the chosen
// rectangle to region memory, then crop and save from the frozen
// frame. Returns overlay.ErrCancelled when the user backs out.
//
// saveDir and filename are optional overrides; empty values fall back
// to the configured directory and a timestamped name.
func Interactive(cfg *config.Config, sel SelectFunc, saveDir, filename string) (string, region.Region, error) {
	if sel == nil {
		sel = overlay.Select
	}

	bounds, err := virtualBounds()
	if err != nil {
		return "", region.Region{}, err
	}

	// Grab the frame before the overlay exists so the overlay can
	// never appear in the output.
	frame, err := grabRect(bounds)
	if err != nil {
		return "", region.Region{}, err
	}

	col, err := config.ParseHexColor(cfg.OverlayColor)
	if err != nil {
		col, _ = config.ParseHexColor(config.Defaults().OverlayColor)
	}

	rect, err := sel(bounds, overlay.Options{Color: col, Opacity: cfg.OverlayOpacity})
	if err != nil {
		return "", region.Region{}, err
	}

	r := region.FromRect(rect, DisplayAt(rect.Min.X, rect.Min.Y))
	if err := region.Save(r); err != nil {
		log.Warnf("Failed to persist region memory: %v", err)
	}

	// The frame's own coordinates start at (0,0); translate before
	// cropping.
	cropped := Crop(frame, rect.Sub(bounds.Min))

	path, err := saveTo(cfg, cropped, saveDir, filename)
	return path, r, err
}

// Recapture replays the remembered region without any interactive
// step. With empty region memory it falls back to the full interactive
// path; replayed reports which of the two happened.
func Recapture(cfg *config.Config, sel SelectFunc, saveDir, filename string) (path string, replayed bool, err error) {
	r, err := region.Load()
	if errors.Is(err, region.ErrNoRegion) {
		log.Info("No remembered region, falling back to interactive capture")
		path, _, err := Interactive(cfg, sel, saveDir, filename)
		return path, false, err
	}
	if err != nil {
		return "", false, err
	}

	img, err := grabRect(r.Rect())
	if err != nil {
		return "", false, err
	}

	path, err = saveTo(cfg, img, saveDir, filename)
	return path, true, err
}

// Fullscreen captures the entire virtual screen and saves it.
func Fullscreen(cfg *config.Config, saveDir, filename string) (string, error) {
	bounds, err := virtualBounds()
	if err != nil {
		return "", err
	}
	img, err := grabRect(bounds)
	if err != nil {
		return "", err
	}
	return saveTo(cfg, img, saveDir, filename)
}

// Coordinates captures an explicit rectangle and saves it.
func Coordinates(cfg *config.Config, r image.Rectangle, saveDir, filename string) (string, error) {
	img, err := grabRect(r)
	if err != nil {
		return "", err
	}
	return saveTo(cfg, img, saveDir, filename)
}

func saveTo(cfg *config.Config, img image.Image, saveDir, filename string) (string, error) {
	if saveDir == "" {
		saveDir = cfg.SaveDir()
	}
	return SaveImage(img, saveDir, filename, cfg.ImageFormat)
}
