//go:build windows

package hotkey

import (
	"context"
	"fmt"

	"github.com/moutend/go-hook/pkg/keyboard"
	"github.com/moutend/go-hook/pkg/types"
)

func listen(ctx context.Context, events chan<- Event) error {
	raw := make(chan types.KeyboardEvent, 100)
	if err := keyboard.Install(nil, raw); err != nil {
		return fmt.Errorf("install keyboard hook: %w", err)
	}
	defer keyboard.Uninstall()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev := <-raw:
			name := normalizeVK(uint32(ev.VKCode))
			if name == "" {
				continue
			}
			switch ev.Message {
			case types.WM_KEYDOWN, types.WM_SYSKEYDOWN:
				events <- Event{Key: name, Down: true}
			case types.WM_KEYUP, types.WM_SYSKEYUP:
				events <- Event{Key: name, Down: false}
			}
		}
	}
}

// normalizeVK maps a Windows virtual-key code to the normalized key
// name used in combos. Left/right modifier variants collapse to one
// name. Unmapped keys return "".
func normalizeVK(vk uint32) string {
	switch {
	case vk >= 0x41 && vk <= 0x5A: // A-Z
		return string(rune('a' + vk - 0x41))
	case vk >= 0x30 && vk <= 0x39: // 0-9
		return string(rune('0' + vk - 0x30))
	case vk >= 0x70 && vk <= 0x87: // F1-F24
		return fmt.Sprintf("f%d", vk-0x70+1)
	}

	switch vk {
	case 0x11, 0xA2, 0xA3: // VK_CONTROL, VK_LCONTROL, VK_RCONTROL
		return "ctrl"
	case 0x10, 0xA0, 0xA1: // VK_SHIFT, VK_LSHIFT, VK_RSHIFT
		return "shift"
	case 0x12, 0xA4, 0xA5: // VK_MENU, VK_LMENU, VK_RMENU
		return "alt"
	case 0x5B, 0x5C: // VK_LWIN, VK_RWIN
		return "cmd"
	case 0x1B:
		return "esc"
	case 0x0D:
		return "enter"
	case 0x20:
		return "space"
	case 0x09:
		return "tab"
	case 0x08:
		return "backspace"
	case 0x2E:
		return "delete"
	case 0x2C:
		return "print_screen"
	}
	return ""
}
