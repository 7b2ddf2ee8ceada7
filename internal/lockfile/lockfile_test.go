package lockfile

import (
	"encoding/json"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/raphaelbgr/claude-screenshot-mcp/internal/config"
)

func writeLock(t *testing.T, pid int) {
	t.Helper()
	data, err := json.Marshal(Lock{PID: pid, StartedAt: time.Now()})
	if err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(Path(), data, 0644); err != nil {
		t.Fatal(err)
	}
}

func TestRunningNoFile(t *testing.T) {
	t.Setenv(config.EnvDir, t.TempDir())

	if _, ok := Running(); ok {
		t.Error("Running() = true without a PID file")
	}
}

func TestAcquireAndRunning(t *testing.T) {
	t.Setenv(config.EnvDir, t.TempDir())

	if err := Acquire(false); err != nil {
		t.Fatalf("Acquire() error: %v", err)
	}

	l, ok := Running()
	if !ok {
		t.Fatal("Running() = false after Acquire")
	}
	if l.PID != os.Getpid() {
		t.Errorf("lock PID = %d, want %d", l.PID, os.Getpid())
	}
}

func TestAcquireHeldByLiveProcess(t *testing.T) {
	t.Setenv(config.EnvDir, t.TempDir())

	// The parent process stands in for a foreign live daemon.
	writeLock(t, os.Getppid())

	err := Acquire(false)
	if !errors.Is(err, ErrLocked) {
		t.Fatalf("Acquire() err = %v, want ErrLocked", err)
	}
}

func TestAcquireForceReclaims(t *testing.T) {
	t.Setenv(config.EnvDir, t.TempDir())

	writeLock(t, os.Getppid())

	if err := Acquire(true); err != nil {
		t.Fatalf("Acquire(force) error: %v", err)
	}
	l, ok := Running()
	if !ok || l.PID != os.Getpid() {
		t.Errorf("lock after force = %+v (running=%v), want own PID", l, ok)
	}
}

func TestAcquireReclaimsStaleLock(t *testing.T) {
	t.Setenv(config.EnvDir, t.TempDir())

	// A PID far beyond pid_max cannot belong to a live process.
	writeLock(t, 999999999)

	if err := Acquire(false); err != nil {
		t.Fatalf("Acquire() over stale lock: %v", err)
	}
}

func TestRunningRemovesCorruptFile(t *testing.T) {
	t.Setenv(config.EnvDir, t.TempDir())

	if err := os.WriteFile(Path(), []byte("garbage"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, ok := Running(); ok {
		t.Error("Running() = true for corrupt PID file")
	}
	if _, err := os.Stat(Path()); !os.IsNotExist(err) {
		t.Error("corrupt PID file not removed")
	}
}

func TestReacquireByOwner(t *testing.T) {
	t.Setenv(config.EnvDir, t.TempDir())

	if err := Acquire(false); err != nil {
		t.Fatal(err)
	}
	if err := Acquire(false); err != nil {
		t.Errorf("re-Acquire by lock owner failed: %v", err)
	}
}

func TestRelease(t *testing.T) {
	t.Setenv(config.EnvDir, t.TempDir())

	if err := Release(); err != nil {
		t.Errorf("Release() without file: %v", err)
	}

	if err := Acquire(false); err != nil {
		t.Fatal(err)
	}
	if err := Release(); err != nil {
		t.Fatalf("Release() error: %v", err)
	}
	if _, err := os.Stat(Path()); !os.IsNotExist(err) {
		t.Error("PID file present after Release")
	}
}

func TestReleaseLeavesForeignLock(t *testing.T) {
	t.Setenv(config.EnvDir, t.TempDir())

	writeLock(t, os.Getppid())

	if err := Release(); err != nil {
		t.Fatalf("Release() error: %v", err)
	}
	if _, err := os.Stat(Path()); err != nil {
		t.Error("foreign lock removed by Release")
	}
}
