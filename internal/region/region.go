// Package region persists the most recent interactively selected
// screen rectangle so it can be replayed without prompting. A single
// slot is kept; each new selection overwrites the previous one.
package region

import (
	"encoding/json"
	"errors"
	"fmt"
	"image"
	"os"
	"path/filepath"

	"github.com/raphaelbgr/claude-screenshot-mcp/internal/config"
)

// ErrNoRegion is returned when no region has been remembered yet.
var ErrNoRegion = errors.New("no region captured yet")

// Region is a screen rectangle in virtual-screen coordinates plus the
// display it was selected on (informational; the coordinates alone
// identify the pixels).
type Region struct {
	X       int `json:"x"`
	Y       int `json:"y"`
	Width   int `json:"width"`
	Height  int `json:"height"`
	Display int `json:"display"`
}

// Rect converts the region to an image.Rectangle.
func (r Region) Rect() image.Rectangle {
	return image.Rect(r.X, r.Y, r.X+r.Width, r.Y+r.Height)
}

// FromRect builds a Region from an image.Rectangle.
func FromRect(rect image.Rectangle, display int) Region {
	rect = rect.Canon()
	return Region{
		X:       rect.Min.X,
		Y:       rect.Min.Y,
		Width:   rect.Dx(),
		Height:  rect.Dy(),
		Display: display,
	}
}

func (r Region) String() string {
	return fmt.Sprintf("%dx%d at (%d,%d)", r.Width, r.Height, r.X, r.Y)
}

func path() string {
	return filepath.Join(config.Dir(), "region.json")
}

// Load returns the remembered region, or ErrNoRegion when the slot is
// empty or unreadable.
func Load() (Region, error) {
	data, err := os.ReadFile(path())
	if os.IsNotExist(err) {
		return Region{}, ErrNoRegion
	}
	if err != nil {
		return Region{}, err
	}

	var r Region
	if err := json.Unmarshal(data, &r); err != nil {
		return Region{}, ErrNoRegion
	}
	if r.Width <= 0 || r.Height <= 0 {
		return Region{}, ErrNoRegion
	}
	return r, nil
}

// Save overwrites the slot with the given region.
func Save(r Region) error {
	if r.Width <= 0 || r.Height <= 0 {
		return fmt.Errorf("refusing to save empty region %s", r)
	}
	if err := os.MkdirAll(config.Dir(), 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path(), data, 0644)
}

// Clear forgets the remembered region. Missing slot is not an error.
func Clear() error {
	err := os.Remove(path())
	if os.IsNotExist(err) {
		return nil
	}
	return err
}
