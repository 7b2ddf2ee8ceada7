// Package notify sends best-effort desktop notifications.
package notify

import (
	"github.com/gen2brain/beeep"
	log "github.com/sirupsen/logrus"

	"github.com/raphaelbgr/claude-screenshot-mcp/internal/assets"
)

// Send shows a desktop notification when enabled. Failures are logged
// and otherwise ignored; a missing notification never blocks a capture.
func Send(enabled bool, title, message string) {
	if !enabled {
		return
	}
	if err := beeep.Notify(title, message, assets.IconPNG); err != nil {
		log.Warnf("Notification failed: %v", err)
	}
}
