package preview

import (
	"os"
	"path/filepath"
	"sync"
	"testing"
)

func TestStartShutdownConcurrent(t *testing.T) {
	// The tray toggles the server while the daemon publishes captures;
	// cycling from several goroutines must not race or double-start.
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			Start()
			Shutdown()
		}()
	}
	wg.Wait()
	Shutdown()

	if serverStarted {
		t.Error("server still marked started after final Shutdown")
	}
}

func TestShowPublishesStamp(t *testing.T) {
	path := filepath.Join(t.TempDir(), "shot.png")
	if err := os.WriteFile(path, []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}

	imageMutex.RLock()
	before := latestStamp
	imageMutex.RUnlock()

	Show(path)

	imageMutex.RLock()
	defer imageMutex.RUnlock()
	if latestImage != path {
		t.Errorf("latestImage = %q, want %q", latestImage, path)
	}
	if latestStamp == before {
		t.Error("stamp did not advance")
	}
}

func TestShowIgnoresMissingFile(t *testing.T) {
	imageMutex.RLock()
	before := latestImage
	imageMutex.RUnlock()

	Show(filepath.Join(t.TempDir(), "nope.png"))

	imageMutex.RLock()
	defer imageMutex.RUnlock()
	if latestImage != before {
		t.Errorf("latestImage changed to %q for unreadable file", latestImage)
	}
}
