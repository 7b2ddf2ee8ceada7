//go:build !windows

// Package startup manages launching the daemon at login. Only Windows
// is wired up today; other platforms have their own autostart
// mechanisms the user configures directly.
package startup

import "errors"

var errUnsupported = errors.New("start-at-login is only supported on Windows")

func IsEnabled() bool { return false }

func Enable() error { return errUnsupported }

func Disable() error { return errUnsupported }
