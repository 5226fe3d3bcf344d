package ui

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
	"time"

	"gioui.org/op/paint"
)

func writeTestPNG(t *testing.T, path string, w, h int) {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.NRGBA{R: uint8(x), G: uint8(y), A: 255})
		}
	}
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatal(err)
	}
}

func TestIconCacheBackgroundLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "icon.png")
	writeTestPNG(t, path, 64, 48)

	loaded := make(chan struct{}, 1)
	ic := NewIconCache(4, 32, func() { loaded <- struct{}{} })
	t.Cleanup(ic.Stop)

	if _, _, ok := ic.Get(path); ok {
		t.Fatal("Get before load succeeded")
	}

	ic.RequestLoad(path)
	select {
	case <-loaded:
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for icon load")
	}

	_, size, ok := ic.Get(path)
	if !ok {
		t.Fatal("Get after load failed")
	}
	if size != image.Pt(64, 48) {
		t.Errorf("original size = %v, want 64x48", size)
	}
	if ic.Size() != 1 {
		t.Errorf("Size() = %d, want 1", ic.Size())
	}
}

func TestIconCacheLoadMissingFile(t *testing.T) {
	ic := NewIconCache(4, 32, nil)
	t.Cleanup(ic.Stop)

	// Synchronous path: loadIcon must not add an entry for a missing file.
	ic.loadIcon(filepath.Join(t.TempDir(), "nope.png"))
	if ic.Size() != 0 {
		t.Errorf("Size() = %d after failed load, want 0", ic.Size())
	}
}

func TestIconCacheEvictsLRU(t *testing.T) {
	ic := NewIconCache(2, 32, nil)
	t.Cleanup(ic.Stop)

	ic.put("a", paint.ImageOp{}, image.Pt(1, 1))
	ic.put("b", paint.ImageOp{}, image.Pt(2, 2))

	// Touch "a" so "b" becomes the eviction candidate.
	if _, _, ok := ic.Get("a"); !ok {
		t.Fatal("Get(a) failed")
	}

	ic.put("c", paint.ImageOp{}, image.Pt(3, 3))

	if _, _, ok := ic.Get("b"); ok {
		t.Error("b still cached, want evicted")
	}
	if _, _, ok := ic.Get("a"); !ok {
		t.Error("a evicted, want kept")
	}
	if _, _, ok := ic.Get("c"); !ok {
		t.Error("c missing")
	}
}

func TestIconCacheScaleIcon(t *testing.T) {
	ic := NewIconCache(2, 32, nil)
	t.Cleanup(ic.Stop)

	big := image.NewRGBA(image.Rect(0, 0, 128, 64))
	scaled := ic.scaleIcon(big)
	if got := scaled.Bounds().Size(); got != image.Pt(32, 16) {
		t.Errorf("scaled size = %v, want 32x16", got)
	}

	small := image.NewRGBA(image.Rect(0, 0, 16, 16))
	if ic.scaleIcon(small) != small {
		t.Error("small image was rescaled, want passthrough")
	}
}

func TestIconCacheClear(t *testing.T) {
	ic := NewIconCache(4, 32, nil)
	t.Cleanup(ic.Stop)

	ic.put("a", paint.ImageOp{}, image.Pt(1, 1))
	ic.Clear()
	if ic.Size() != 0 {
		t.Errorf("Size() after Clear = %d, want 0", ic.Size())
	}
}
