package capture

import (
	"image"
	"image/color"
	"os"
	"path/filepath"
	"regexp"
	"testing"
	"time"
)

func TestFilename(t *testing.T) {
	name := Filename("png")
	pattern := `^claude_screenshot_\d{8}_\d{6}_\d{3}\.png$`
	if ok, _ := regexp.MatchString(pattern, name); !ok {
		t.Errorf("Filename() = %q, want match for %q", name, pattern)
	}
}

func TestSaveImage(t *testing.T) {
	dir := t.TempDir()
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))

	path, err := SaveImage(img, dir, "shot", "png")
	if err != nil {
		t.Fatalf("SaveImage() error: %v", err)
	}
	if !filepath.IsAbs(path) {
		t.Errorf("SaveImage() returned relative path %q", path)
	}
	if filepath.Base(path) != "shot.png" {
		t.Errorf("SaveImage() path = %q, want extension appended", path)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("saved file missing: %v", err)
	}
}

func TestSaveImageGeneratesName(t *testing.T) {
	dir := t.TempDir()
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))

	path, err := SaveImage(img, dir, "", "png")
	if err != nil {
		t.Fatalf("SaveImage() error: %v", err)
	}
	pattern := `^claude_screenshot_\d{8}_\d{6}_\d{3}\.png$`
	if ok, _ := regexp.MatchString(pattern, filepath.Base(path)); !ok {
		t.Errorf("generated name %q does not match %q", filepath.Base(path), pattern)
	}
}

func TestSaveImageCreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "shots")
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))

	if _, err := SaveImage(img, dir, "a.png", "png"); err != nil {
		t.Fatalf("SaveImage() into missing directory: %v", err)
	}
}

func TestLatest(t *testing.T) {
	dir := t.TempDir()
	base := time.Now().Add(-time.Hour)
	files := []string{"old.png", "mid.jpg", "new.png"}
	for i, name := range files {
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, []byte("x"), 0644); err != nil {
			t.Fatal(err)
		}
		mtime := base.Add(time.Duration(i) * time.Minute)
		if err := os.Chtimes(path, mtime, mtime); err != nil {
			t.Fatal(err)
		}
	}
	// Non-image files and directories are skipped.
	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.Mkdir(filepath.Join(dir, "sub.png"), 0755); err != nil {
		t.Fatal(err)
	}

	got, err := Latest(dir, 2)
	if err != nil {
		t.Fatalf("Latest() error: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("Latest() returned %d paths, want 2", len(got))
	}
	if filepath.Base(got[0]) != "new.png" || filepath.Base(got[1]) != "mid.jpg" {
		t.Errorf("Latest() order = %v, want newest first", got)
	}
}

func TestLatestMissingDir(t *testing.T) {
	got, err := Latest(filepath.Join(t.TempDir(), "nope"), 5)
	if err != nil {
		t.Fatalf("Latest() on missing dir: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("Latest() on missing dir = %v, want empty", got)
	}
}

func TestRect(t *testing.T) {
	if _, err := Rect(image.Rect(0, 0, 0, 100)); err == nil {
		t.Error("Rect() with zero width succeeded, want error")
	}
}

func TestCrop(t *testing.T) {
	frame := image.NewRGBA(image.Rect(0, 0, 10, 10))
	frame.Set(3, 4, color.RGBA{R: 200, A: 255})

	out := Crop(frame, image.Rect(2, 3, 8, 9))
	if out.Bounds().Dx() != 6 || out.Bounds().Dy() != 6 {
		t.Fatalf("Crop() bounds = %v, want 6x6", out.Bounds())
	}
	r, _, _, _ := out.At(out.Bounds().Min.X+1, out.Bounds().Min.Y+1).RGBA()
	if r>>8 != 200 {
		t.Errorf("Crop() lost marked pixel, got r=%d", r>>8)
	}

	// Inverted rectangles are canonicalized.
	inv := Crop(frame, image.Rect(8, 9, 2, 3))
	if inv.Bounds().Dx() != 6 || inv.Bounds().Dy() != 6 {
		t.Errorf("Crop() of inverted rect bounds = %v, want 6x6", inv.Bounds())
	}
}
