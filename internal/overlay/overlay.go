// Package overlay implements the interactive region selector: a
// fullscreen dimmed window where the user drags out a rectangle.
// Confirm by releasing the mouse button; cancel with ESC or
// right-click. The call blocks until the user decides.
//
// The overlay is presented over the live screen, so callers must grab
// the frame BEFORE calling Select and crop that frame afterwards; the
// overlay itself must never end up in the saved pixels.
package overlay

import (
	"errors"
	"image"
	"image/color"
)

// ErrCancelled is returned when the user dismisses the selector, or
// when the dragged rectangle is too small to be a deliberate choice.
var ErrCancelled = errors.New("selection cancelled")

// Selections under this many pixels in either dimension count as
// accidental clicks and cancel the capture.
const minSelection = 5

// Options controls the selector's appearance.
type Options struct {
	Color   color.RGBA
	Opacity float64
}

// Select presents the selector across the given virtual-screen bounds
// and returns the chosen rectangle in virtual-screen coordinates.
func Select(bounds image.Rectangle, opts Options) (image.Rectangle, error) {
	return selectRegion(bounds, opts)
}
