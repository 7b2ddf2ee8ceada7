// Package tray puts the daemon in the system tray: current hotkeys,
// quick toggles for the common settings and a quit item.
package tray

import (
	"sync"

	"github.com/getlantern/systray"
	log "github.com/sirupsen/logrus"

	"github.com/raphaelbgr/claude-screenshot-mcp/internal/assets"
	"github.com/raphaelbgr/claude-screenshot-mcp/internal/config"
	"github.com/raphaelbgr/claude-screenshot-mcp/internal/preview"
	"github.com/raphaelbgr/claude-screenshot-mcp/internal/startup"
)

// Hooks connects tray actions to the daemon.
type Hooks struct {
	// CaptureNow triggers an interactive capture, same as the hotkey.
	CaptureNow func()

	// OnQuit is called when the user picks Quit, before the process
	// winds down.
	OnQuit func()
}

var configMutex sync.Mutex

// Run starts the tray and blocks until Quit. Must be called from the
// main goroutine; the daemon loop runs alongside it.
func Run(cfg *config.Config, hooks Hooks) {
	systray.Run(func() { onReady(cfg, hooks) }, func() { onExit(hooks) })
}

// Quit closes the tray loop from outside, e.g. when the daemon dies.
func Quit() {
	systray.Quit()
}

func onReady(cfg *config.Config, hooks Hooks) {
	systray.SetIcon(assets.TrayIcon)
	systray.SetTitle("Claude Screenshot")
	systray.SetTooltip("Claude Screenshot - press " + cfg.Hotkey + " to capture")

	mHotkey := systray.AddMenuItem("Capture: "+cfg.Hotkey, "Current capture hotkey")
	mHotkey.Disable()
	mRecapture := systray.AddMenuItem("Recapture: "+cfg.RecaptureHotkey, "Current recapture hotkey")
	mRecapture.Disable()
	systray.AddSeparator()

	mCaptureNow := systray.AddMenuItem("Capture Now", "Open the region selector")
	systray.AddSeparator()

	mViewPreview := systray.AddMenuItem("View Preview", "Open preview page in browser")
	mEnablePreview := systray.AddMenuItemCheckbox("Enable Preview", "Show captures on a localhost preview page", cfg.EnablePreview)
	systray.AddSeparator()

	mCopyPath := systray.AddMenuItemCheckbox("Copy Path to Clipboard", "Copy the saved path after each capture", cfg.CopyPathToClipboard)
	mNotify := systray.AddMenuItemCheckbox("Notifications", "Show a desktop notification after each capture", cfg.ShowNotification)
	systray.AddSeparator()

	mStartup := systray.AddMenuItemCheckbox("Start at Login", "Start the daemon when you log in", startup.IsEnabled())
	systray.AddSeparator()

	mQuit := systray.AddMenuItem("Quit", "Stop the screenshot daemon")

	if cfg.EnablePreview {
		preview.Start()
	} else {
		mViewPreview.Disable()
	}

	go func() {
		for {
			select {
			case <-mCaptureNow.ClickedCh:
				if hooks.CaptureNow != nil {
					hooks.CaptureNow()
				}
			case <-mViewPreview.ClickedCh:
				preview.OpenBrowser()
			case <-mEnablePreview.ClickedCh:
				toggle(mEnablePreview, func(cfg *config.Config, on bool) {
					cfg.EnablePreview = on
					if on {
						preview.Start()
						mViewPreview.Enable()
					} else {
						preview.Shutdown()
						mViewPreview.Disable()
					}
				})
			case <-mCopyPath.ClickedCh:
				toggle(mCopyPath, func(cfg *config.Config, on bool) {
					cfg.CopyPathToClipboard = on
				})
			case <-mNotify.ClickedCh:
				toggle(mNotify, func(cfg *config.Config, on bool) {
					cfg.ShowNotification = on
				})
			case <-mStartup.ClickedCh:
				if mStartup.Checked() {
					if err := startup.Disable(); err != nil {
						log.Warnf("Failed to disable startup: %v", err)
					} else {
						mStartup.Uncheck()
					}
				} else {
					if err := startup.Enable(); err != nil {
						log.Warnf("Failed to enable startup: %v", err)
					} else {
						mStartup.Check()
					}
				}
			case <-mQuit.ClickedCh:
				systray.Quit()
				return
			}
		}
	}()
}

// toggle flips a checkbox item, applies the change to a freshly loaded
// config and persists it immediately.
func toggle(item *systray.MenuItem, apply func(cfg *config.Config, on bool)) {
	configMutex.Lock()
	defer configMutex.Unlock()

	cfg, err := config.Load()
	if err != nil {
		log.Warnf("Failed to load config: %v", err)
		return
	}

	on := !item.Checked()
	apply(cfg, on)
	if on {
		item.Check()
	} else {
		item.Uncheck()
	}

	if err := config.Save(cfg); err != nil {
		log.Warnf("Failed to save config: %v", err)
	}
}

func onExit(hooks Hooks) {
	preview.Shutdown()
	if hooks.OnQuit != nil {
		hooks.OnQuit()
	}
}
