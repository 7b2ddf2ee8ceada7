// Package lockfile enforces single-instance execution of the hotkey
// daemon through a PID file in the config directory. Existence plus
// liveness of the recorded process is the sole uniqueness invariant;
// stale files left by dead processes are reclaimed transparently.
package lockfile

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/raphaelbgr/claude-screenshot-mcp/internal/config"
)

// ErrLocked is returned by Acquire while another live daemon holds the
// lock.
var ErrLocked = errors.New("another daemon instance is already running")

// Lock is the record written to the PID file.
type Lock struct {
	PID       int       `json:"pid"`
	StartedAt time.Time `json:"started_at"`
}

// Path returns the PID file location.
func Path() string {
	return filepath.Join(config.Dir(), "daemon.pid")
}

// Running reports whether a live daemon currently holds the lock and,
// if so, its record. Stale and corrupt PID files are removed on the
// way through.
func Running() (Lock, bool) {
	data, err := os.ReadFile(Path())
	if err != nil {
		return Lock{}, false
	}

	var l Lock
	if err := json.Unmarshal(data, &l); err != nil || l.PID <= 0 {
		os.Remove(Path())
		return Lock{}, false
	}

	if !pidAlive(l.PID) {
		os.Remove(Path())
		return Lock{}, false
	}
	return l, true
}

// Acquire takes the lock for the current process. It fails with
// ErrLocked while another live process holds it, unless force is set,
// in which case the lock is reclaimed unconditionally.
func Acquire(force bool) error {
	if !force {
		if l, ok := Running(); ok && l.PID != os.Getpid() {
			return fmt.Errorf("%w (pid %d, lock file %s)", ErrLocked, l.PID, Path())
		}
	}

	if err := os.MkdirAll(config.Dir(), 0755); err != nil {
		return err
	}

	data, err := json.Marshal(Lock{PID: os.Getpid(), StartedAt: time.Now()})
	if err != nil {
		return err
	}
	return os.WriteFile(Path(), data, 0644)
}

// Release removes the PID file, but only when it still records the
// current process. A lock reclaimed by a forced instance stays put.
func Release() error {
	data, err := os.ReadFile(Path())
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return err
	}

	var l Lock
	if err := json.Unmarshal(data, &l); err != nil || l.PID == os.Getpid() {
		return os.Remove(Path())
	}
	return nil
}
