//go:build !windows

package overlay

import (
	"fmt"
	"image"
	"runtime"
)

func selectRegion(bounds image.Rectangle, opts Options) (image.Rectangle, error) {
	return image.Rectangle{}, fmt.Errorf("interactive region selection is not implemented on %s; use coordinate capture instead", runtime.GOOS)
}
