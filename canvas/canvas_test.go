package canvas

import (
	"bytes"
	"errors"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/gogpu/gg"

	"github.com/pthm-cable/pixelfield/trail"
)

func newCanvas(t *testing.T, w, h int) *Canvas {
	t.Helper()
	c, err := New(w, h, DefaultOptions())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return c
}

// red returns the red channel at (x, y).
func red(c *Canvas, x, y int) uint8 {
	tex := c.Texture()
	return tex.Pix[(y*tex.Width+x)*4]
}

func isBackground(tex Texture) bool {
	for i := 0; i < len(tex.Pix); i += 4 {
		if tex.Pix[i] != 0 || tex.Pix[i+1] != 0 || tex.Pix[i+2] != 0 || tex.Pix[i+3] != 255 {
			return false
		}
	}
	return true
}

func TestNewRejectsEmpty(t *testing.T) {
	for _, dims := range [][2]int{{0, 4}, {4, 0}, {-1, -1}} {
		if _, err := New(dims[0], dims[1], DefaultOptions()); !errors.Is(err, ErrSize) {
			t.Errorf("New(%d,%d): expected ErrSize, got %v", dims[0], dims[1], err)
		}
	}
}

func TestEmptySnapshotIsBackground(t *testing.T) {
	c := newCanvas(t, 16, 16)

	for i := 0; i < 3; i++ {
		c.Draw(nil)
		if !isBackground(c.Texture()) {
			t.Fatalf("draw %d: expected opaque black canvas", i)
		}
	}

	// Drawing a point then an empty snapshot returns to background
	c.Draw([]trail.Sample{{U: 0.5, V: 0.5, Radius: 6}})
	if isBackground(c.Texture()) {
		t.Fatal("expected disc to change the canvas")
	}
	c.Draw([]trail.Sample{})
	if !isBackground(c.Texture()) {
		t.Error("expected empty snapshot to clear the disc")
	}
}

func TestGenerationBumpsEveryDraw(t *testing.T) {
	c := newCanvas(t, 4, 4)
	if c.Generation() != 0 {
		t.Fatalf("expected generation 0, got %d", c.Generation())
	}
	c.Draw(nil)
	c.Draw(nil)
	if got := c.Texture().Generation; got != 2 {
		t.Errorf("expected generation 2, got %d", got)
	}
}

func TestDiscProfile(t *testing.T) {
	c := newCanvas(t, 16, 16)
	c.Draw([]trail.Sample{{U: 0.5, V: 0.5, Radius: 6}})

	// Center (8,8): inside half radius, flat inner alpha 0.2 over black
	if got := red(c, 8, 8); got < 50 || got > 52 {
		t.Errorf("expected center ~51, got %d", got)
	}
	// Falls off toward the edge
	if mid, edge := red(c, 11, 8), red(c, 13, 8); !(mid > edge && mid < red(c, 8, 8)) {
		t.Errorf("expected falloff, got center %d mid %d edge %d", red(c, 8, 8), mid, edge)
	}
	// Outside the radius untouched
	if got := red(c, 0, 0); got != 0 {
		t.Errorf("expected corner untouched, got %d", got)
	}
}

func TestVerticalFlip(t *testing.T) {
	c := newCanvas(t, 16, 16)
	// v=0.75 sits near the top of the canvas (row 4)
	c.Draw([]trail.Sample{{U: 0.25, V: 0.75, Radius: 3}})

	if red(c, 4, 4) == 0 {
		t.Error("expected disc near the top left")
	}
	if red(c, 4, 12) != 0 {
		t.Error("expected bottom left untouched")
	}
}

func TestOverlappingDiscsAccumulate(t *testing.T) {
	c := newCanvas(t, 16, 16)
	c.Draw([]trail.Sample{{U: 0.5, V: 0.5, Radius: 6}})
	single := red(c, 8, 8)

	c.Draw([]trail.Sample{
		{U: 0.5, V: 0.5, Radius: 6},
		{U: 0.5, V: 0.5, Radius: 6},
	})
	double := red(c, 8, 8)

	// 0.2 + 0.8*0.2 = 0.36
	if double <= single || double < 90 || double > 93 {
		t.Errorf("expected stacked discs ~92 above single %d, got %d", single, double)
	}
}

func TestZeroRadiusDrawsNothing(t *testing.T) {
	c := newCanvas(t, 8, 8)
	c.Draw([]trail.Sample{{U: 0.5, V: 0.5, Radius: 0}, {U: 0.5, V: 0.5, Radius: -3}})
	if !isBackground(c.Texture()) {
		t.Error("expected no change for non-positive radius")
	}
}

func TestBackgroundForcedOpaque(t *testing.T) {
	opts := DefaultOptions()
	opts.Background = gg.RGBA{R: 1, G: 0, B: 0, A: 0}
	c, err := New(2, 2, opts)
	if err != nil {
		t.Fatal(err)
	}
	c.Draw(nil)
	px := c.Pixmap().GetPixel(1, 1)
	if px.R != 1 || px.A != 1 {
		t.Errorf("expected opaque red background, got %+v", px)
	}
}

func TestSavePNG(t *testing.T) {
	c := newCanvas(t, 12, 6)
	c.Draw([]trail.Sample{{U: 0.5, V: 0.5, Radius: 3}})

	path := filepath.Join(t.TempDir(), "trail.png")
	if err := c.SavePNG(path); err != nil {
		t.Fatalf("SavePNG: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("decoding saved PNG: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 12 || b.Dy() != 6 {
		t.Errorf("expected 12x6, got %dx%d", b.Dx(), b.Dy())
	}

	if err := c.SavePNG(filepath.Join(t.TempDir(), "missing", "trail.png")); err == nil {
		t.Error("expected error for missing directory")
	}
}
