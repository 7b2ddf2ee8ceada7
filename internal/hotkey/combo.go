package hotkey

import (
	"fmt"
	"sort"
	"strings"
)

// Combo is a set of normalized key names that must be held together,
// e.g. {"ctrl", "shift", "s"}. Left/right modifier variants are
// collapsed before matching.
type Combo map[string]bool

var aliases = map[string]string{
	"ctrl":         "ctrl",
	"control":      "ctrl",
	"shift":        "shift",
	"alt":          "alt",
	"cmd":          "cmd",
	"win":          "cmd",
	"super":        "cmd",
	"esc":          "esc",
	"escape":       "esc",
	"enter":        "enter",
	"return":       "enter",
	"space":        "space",
	"tab":          "tab",
	"backspace":    "backspace",
	"delete":       "delete",
	"print_screen": "print_screen",
	"printscreen":  "print_screen",
}

// ParseCombo parses a combo string like "ctrl+alt+shift+s" into a
// normalized key set. Besides the named keys it accepts single
// letters, digits and f1-f24.
func ParseCombo(s string) (Combo, error) {
	combo := Combo{}
	for _, part := range strings.Split(s, "+") {
		part = strings.ToLower(strings.TrimSpace(part))
		if part == "" {
			return nil, fmt.Errorf("invalid hotkey combo %q", s)
		}
		if name, ok := aliases[part]; ok {
			combo[name] = true
			continue
		}
		if !validPlainKey(part) {
			return nil, fmt.Errorf("invalid hotkey combo %q: unknown key %q", s, part)
		}
		combo[part] = true
	}
	if len(combo) == 0 {
		return nil, fmt.Errorf("invalid hotkey combo %q", s)
	}
	return combo, nil
}

func validPlainKey(k string) bool {
	if len(k) == 1 {
		c := k[0]
		return (c >= 'a' && c <= 'z') || (c >= '0' && c <= '9')
	}
	if strings.HasPrefix(k, "f") && len(k) <= 3 {
		n := 0
		for _, c := range k[1:] {
			if c < '0' || c > '9' {
				return false
			}
			n = n*10 + int(c-'0')
		}
		return n >= 1 && n <= 24
	}
	return false
}

// PressedIn reports whether every key of the combo is in the held set.
func (c Combo) PressedIn(held map[string]bool) bool {
	for k := range c {
		if !held[k] {
			return false
		}
	}
	return len(c) > 0
}

func (c Combo) String() string {
	keys := make([]string, 0, len(c))
	for k := range c {
		keys = append(keys, k)
	}
	// Modifiers first, then the rest alphabetically.
	order := map[string]int{"ctrl": 0, "alt": 1, "shift": 2, "cmd": 3}
	sort.Slice(keys, func(i, j int) bool {
		oi, iok := order[keys[i]]
		oj, jok := order[keys[j]]
		if iok != jok {
			return iok
		}
		if iok && jok {
			return oi < oj
		}
		return keys[i] < keys[j]
	})
	return strings.Join(keys, "+")
}
