//go:build !windows

package assets

var TrayIcon = IconPNG
