package hotkey

import "context"

// Event is a single normalized key transition from the global hook.
type Event struct {
	Key  string
	Down bool
}

// Listen installs the global keyboard hook and streams normalized key
// events until the context is cancelled. It blocks; run it in its own
// goroutine. The hook sees every key system-wide, so callers track the
// held set themselves and match combos with Combo.PressedIn.
func Listen(ctx context.Context, events chan<- Event) error {
	return listen(ctx, events)
}
