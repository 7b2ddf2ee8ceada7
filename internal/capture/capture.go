// Package capture grabs screen pixels and writes them to disk. The
// interactive selection path lives in internal/overlay; this package
// only deals in rectangles and files.
package capture

import (
	"fmt"
	"image"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/disintegration/imaging"
	"github.com/kbinani/screenshot"
)

// VirtualBounds returns the union of all active display bounds, i.e.
// the entire virtual screen.
func VirtualBounds() (image.Rectangle, error) {
	n := screenshot.NumActiveDisplays()
	if n == 0 {
		return image.Rectangle{}, fmt.Errorf("no active displays found")
	}

	bounds := screenshot.GetDisplayBounds(0)
	for i := 1; i < n; i++ {
		bounds = bounds.Union(screenshot.GetDisplayBounds(i))
	}
	return bounds, nil
}

// DisplayAt returns the index of the display containing the point, or
// 0 when the point is outside every display.
func DisplayAt(x, y int) int {
	n := screenshot.NumActiveDisplays()
	for i := 0; i < n; i++ {
		b := screenshot.GetDisplayBounds(i)
		if x >= b.Min.X && x < b.Max.X && y >= b.Min.Y && y < b.Max.Y {
			return i
		}
	}
	return 0
}

// FullScreen captures the entire virtual screen across all displays.
func FullScreen() (*image.RGBA, error) {
	bounds, err := VirtualBounds()
	if err != nil {
		return nil, err
	}
	img, err := screenshot.CaptureRect(bounds)
	if err != nil {
		return nil, fmt.Errorf("screenshot capture failed: %w", err)
	}
	return img, nil
}

// Display captures a single display by index.
func Display(i int) (*image.RGBA, error) {
	if i < 0 || i >= screenshot.NumActiveDisplays() {
		return nil, fmt.Errorf("no display %d", i)
	}
	img, err := screenshot.CaptureRect(screenshot.GetDisplayBounds(i))
	if err != nil {
		return nil, fmt.Errorf("screenshot capture failed: %w", err)
	}
	return img, nil
}

// Rect captures an arbitrary rectangle in virtual-screen coordinates.
func Rect(r image.Rectangle) (*image.RGBA, error) {
	r = r.Canon()
	if r.Dx() <= 0 || r.Dy() <= 0 {
		return nil, fmt.Errorf("invalid region dimensions: width=%d, height=%d", r.Dx(), r.Dy())
	}
	img, err := screenshot.CaptureRect(r)
	if err != nil {
		return nil, fmt.Errorf("screenshot capture failed: %w", err)
	}
	return img, nil
}

// Crop cuts a rectangle out of an already captured frame. The
// rectangle is in the frame's own coordinate space.
func Crop(frame image.Image, r image.Rectangle) image.Image {
	return imaging.Crop(frame, r.Canon())
}

// Filename generates a timestamped screenshot name, millisecond
// precision, in the configured format.
func Filename(format string) string {
	now := time.Now()
	return fmt.Sprintf("claude_screenshot_%s_%03d.%s",
		now.Format("20060102_150405"), now.Nanosecond()/1e6, format)
}

// SaveImage writes the image into dir. An empty filename gets a
// timestamped one; the extension always follows format. Returns the
// absolute path of the written file.
func SaveImage(img image.Image, dir, filename, format string) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("create save directory: %w", err)
	}

	if filename == "" {
		filename = Filename(format)
	} else if filepath.Ext(filename) == "" {
		filename += "." + format
	}

	path := filepath.Join(dir, filename)
	if err := imaging.Save(img, path); err != nil {
		return "", fmt.Errorf("save screenshot: %w", err)
	}
	return filepath.Abs(path)
}

var imageExts = map[string]bool{
	".png": true, ".jpg": true, ".jpeg": true, ".webp": true,
	".bmp": true, ".gif": true, ".tif": true, ".tiff": true,
}

// Latest returns up to count screenshot paths from dir, newest first
// by modification time. A missing directory yields an empty list.
func Latest(dir string, count int) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	type candidate struct {
		path  string
		mtime time.Time
	}
	var found []candidate
	for _, e := range entries {
		if e.IsDir() || !imageExts[strings.ToLower(filepath.Ext(e.Name()))] {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		found = append(found, candidate{filepath.Join(dir, e.Name()), info.ModTime()})
	}

	sort.Slice(found, func(i, j int) bool { return found[i].mtime.After(found[j].mtime) })
	if count < len(found) {
		found = found[:count]
	}

	paths := make([]string, 0, len(found))
	for _, c := range found {
		abs, err := filepath.Abs(c.path)
		if err != nil {
			abs = c.path
		}
		paths = append(paths, abs)
	}
	return paths, nil
}
