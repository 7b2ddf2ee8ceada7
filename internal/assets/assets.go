// Package assets embeds the application icon used by the tray and
// desktop notifications.
package assets

import _ "embed"

//go:embed icon.png
var IconPNG []byte

//go:embed icon.ico
var IconICO []byte
