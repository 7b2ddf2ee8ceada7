//go:build !windows && !darwin

package clipboard

import (
	"errors"
	"os/exec"
	"strings"
)

// X11/Wayland have no single clipboard API; try the usual helpers in
// order.
func copyText(text string) error {
	candidates := [][]string{
		{"wl-copy"},
		{"xclip", "-selection", "clipboard"},
		{"xsel", "--clipboard", "--input"},
	}

	for _, c := range candidates {
		if _, err := exec.LookPath(c[0]); err != nil {
			continue
		}
		cmd := exec.Command(c[0], c[1:]...)
		cmd.Stdin = strings.NewReader(text)
		if err := cmd.Run(); err == nil {
			return nil
		}
	}
	return errors.New("no clipboard helper found (install wl-copy, xclip or xsel)")
}
