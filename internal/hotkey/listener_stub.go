//go:build !windows

package hotkey

import (
	"context"
	"errors"
)

// ErrUnsupported is returned where the global keyboard hook is not
// available. Combo parsing and the tool façade still work; only the
// background hotkey daemon needs the hook.
var ErrUnsupported = errors.New("global hotkey listening is only supported on Windows")

func listen(ctx context.Context, events chan<- Event) error {
	return ErrUnsupported
}
