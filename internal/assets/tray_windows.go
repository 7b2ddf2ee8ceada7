//go:build windows

package assets

// Windows tray icons must be ICO.
var TrayIcon = IconICO
