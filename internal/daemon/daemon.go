// Package daemon runs the long-lived hotkey listener process. One
// Daemon value owns all process-wide state: the instance lock, the
// trigger combos and the in-flight capture flag.
package daemon

import (
	"context"
	"errors"
	"path/filepath"
	"sync"

	log "github.com/sirupsen/logrus"

	"github.com/raphaelbgr/claude-screenshot-mcp/internal/capture"
	"github.com/raphaelbgr/claude-screenshot-mcp/internal/clipboard"
	"github.com/raphaelbgr/claude-screenshot-mcp/internal/config"
	"github.com/raphaelbgr/claude-screenshot-mcp/internal/hotkey"
	"github.com/raphaelbgr/claude-screenshot-mcp/internal/lockfile"
	"github.com/raphaelbgr/claude-screenshot-mcp/internal/notify"
	"github.com/raphaelbgr/claude-screenshot-mcp/internal/overlay"
)

const notifyTitle = "Claude Screenshot"

// Options configures a daemon instance at start.
type Options struct {
	// HotkeyOverride replaces the configured capture combo for this
	// session only; the config file is not touched.
	HotkeyOverride string

	// Debug logs every normalized key event.
	Debug bool

	// Force reclaims the instance lock even from a live process.
	Force bool

	// Preview receives the path of each capture when the browser
	// preview is enabled. Optional.
	Preview func(path string)
}

// Daemon is the hotkey daemon state. The function fields default to
// the real implementations; tests swap them out.
type Daemon struct {
	captureCombo   hotkey.Combo
	recaptureCombo hotkey.Combo
	debug          bool
	force          bool

	loadConfig  func() (*config.Config, error)
	listen      func(context.Context, chan<- hotkey.Event) error
	interactive func(*config.Config) (string, error)
	recapture   func(*config.Config) (string, bool, error)
	copyPath    func(string) error
	notifyFn    func(enabled bool, title, message string)
	preview     func(string)

	held      map[string]bool
	mu        sync.Mutex
	capturing bool
	wg        sync.WaitGroup
}

// New builds a daemon from the loaded config. Combo strings are
// validated here so a bad config fails fast, before the lock is taken.
func New(cfg *config.Config, opts Options) (*Daemon, error) {
	captureStr := cfg.Hotkey
	if opts.HotkeyOverride != "" {
		captureStr = opts.HotkeyOverride
	}

	captureCombo, err := hotkey.ParseCombo(captureStr)
	if err != nil {
		return nil, err
	}
	recaptureCombo, err := hotkey.ParseCombo(cfg.RecaptureHotkey)
	if err != nil {
		return nil, err
	}

	return &Daemon{
		captureCombo:   captureCombo,
		recaptureCombo: recaptureCombo,
		debug:          opts.Debug,
		force:          opts.Force,
		loadConfig:     config.Load,
		listen:         hotkey.Listen,
		interactive: func(cfg *config.Config) (string, error) {
			path, _, err := capture.Interactive(cfg, nil, "", "")
			return path, err
		},
		recapture: func(cfg *config.Config) (string, bool, error) {
			return capture.Recapture(cfg, nil, "", "")
		},
		copyPath: clipboard.CopyText,
		notifyFn: notify.Send,
		preview:  opts.Preview,
		held:     make(map[string]bool),
	}, nil
}

// Run acquires the instance lock, starts the global keyboard hook and
// blocks until the context is cancelled or the hook fails. The lock is
// released on the way out.
func (d *Daemon) Run(ctx context.Context) error {
	if err := lockfile.Acquire(d.force); err != nil {
		return err
	}
	defer lockfile.Release()

	log.Infof("Hotkey:    %s (capture)", d.captureCombo)
	log.Infof("Hotkey:    %s (recapture last region)", d.recaptureCombo)
	log.Infof("Config:    %s", config.Path())
	log.Infof("Lock:      %s", lockfile.Path())
	if d.debug {
		log.Info("Mode:      debug (logging all key events)")
	}
	log.Info("Listening... press the hotkey to capture, ESC or right-click to cancel a selection")

	events := make(chan hotkey.Event, 64)
	listenErr := make(chan error, 1)
	go func() {
		listenErr <- d.listen(ctx, events)
	}()

	for {
		select {
		case <-ctx.Done():
			d.wg.Wait()
			return nil
		case err := <-listenErr:
			if err != nil && !errors.Is(err, context.Canceled) {
				return err
			}
			d.wg.Wait()
			return nil
		case ev := <-events:
			d.handleEvent(ev)
		}
	}
}

// CaptureNow starts an interactive capture as if the hotkey had been
// pressed. Used by the tray menu.
func (d *Daemon) CaptureNow() {
	d.trigger(d.doCapture)
}

func (d *Daemon) handleEvent(ev hotkey.Event) {
	if !ev.Down {
		delete(d.held, ev.Key)
		if d.debug {
			log.Debugf("released: %s", ev.Key)
		}
		return
	}

	d.held[ev.Key] = true
	if d.debug {
		log.Debugf("pressed: %s | held: %s", ev.Key, heldKeys(d.held))
	}

	if d.isCapturing() {
		// The overlay is up; further triggers wait for it.
		return
	}

	switch {
	case d.captureCombo.PressedIn(d.held):
		d.held = make(map[string]bool)
		d.trigger(d.doCapture)
	case d.recaptureCombo.PressedIn(d.held):
		d.held = make(map[string]bool)
		d.trigger(d.doRecapture)
	}
}

// trigger runs one capture flow off the event loop so the hook channel
// keeps draining; the capturing flag swallows re-triggers meanwhile.
func (d *Daemon) trigger(fn func()) {
	d.mu.Lock()
	if d.capturing {
		d.mu.Unlock()
		return
	}
	d.capturing = true
	d.mu.Unlock()

	d.wg.Add(1)
	go func() {
		defer d.wg.Done()
		defer func() {
			d.mu.Lock()
			d.capturing = false
			d.mu.Unlock()
		}()
		fn()
	}()
}

func (d *Daemon) isCapturing() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.capturing
}

func (d *Daemon) config() *config.Config {
	// Reload on every trigger so edits made through the tool façade
	// take effect without a restart.
	cfg, err := d.loadConfig()
	if err != nil {
		log.Warnf("Failed to load config: %v, using defaults", err)
		return config.Defaults()
	}
	return cfg
}

func (d *Daemon) doCapture() {
	log.Info("Hotkey triggered, opening region selector")
	cfg := d.config()

	path, err := d.interactive(cfg)
	if errors.Is(err, overlay.ErrCancelled) {
		log.Info("Capture cancelled (ESC / right-click / region too small)")
		return
	}
	if err != nil {
		log.Errorf("Capture failed: %v", err)
		d.notifyFn(cfg.ShowNotification, notifyTitle, "Capture failed: "+err.Error())
		return
	}
	d.finish(cfg, path)
}

func (d *Daemon) doRecapture() {
	cfg := d.config()

	path, replayed, err := d.recapture(cfg)
	if errors.Is(err, overlay.ErrCancelled) {
		log.Info("Capture cancelled (ESC / right-click / region too small)")
		return
	}
	if err != nil {
		log.Errorf("Recapture failed: %v", err)
		d.notifyFn(cfg.ShowNotification, notifyTitle, "Capture failed: "+err.Error())
		return
	}
	if replayed {
		log.Info("Recaptured remembered region")
	}
	d.finish(cfg, path)
}

func (d *Daemon) finish(cfg *config.Config, path string) {
	log.Infof("Captured: %s", path)

	message := "Saved! " + filepath.Base(path)
	if cfg.CopyPathToClipboard {
		if err := d.copyPath(path); err != nil {
			log.Warnf("Failed to copy path to clipboard: %v", err)
		} else {
			log.Info("Path copied to clipboard, paste into the assistant prompt")
			message = "Saved! Path copied to clipboard.\n" + filepath.Base(path)
		}
	}

	d.notifyFn(cfg.ShowNotification, notifyTitle, message)

	if cfg.EnablePreview && d.preview != nil {
		d.preview(path)
	}
}

func heldKeys(held map[string]bool) string {
	c := hotkey.Combo{}
	for k := range held {
		c[k] = true
	}
	return c.String()
}
