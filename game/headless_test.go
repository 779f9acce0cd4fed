package game

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/pthm-cable/pixelfield/config"
)

func headlessConfig() *config.Config {
	cfg := config.Default()
	cfg.Screen.Width = 320
	cfg.Screen.Height = 240
	cfg.Screen.TargetFPS = 60
	cfg.Camera.Damping = 0
	cfg.Telemetry.LogInterval = 0
	return cfg
}

func TestHeadlessPointerSweep(t *testing.T) {
	h, err := NewHeadless(headlessConfig(), Options{Seed: 1})
	if err != nil {
		t.Fatalf("NewHeadless: %v", err)
	}
	defer h.Unload()

	x, y := h.Pointer(0)
	if x != 160 || y != 120 {
		t.Errorf("Pointer(0) = (%v, %v), want viewport center", x, y)
	}

	// The sweep stays inside the viewport for a whole loop
	for i := 0; i <= 100; i++ {
		x, y := h.Pointer(sweepPeriod * float64(i) / 100)
		if x < 0 || x > 320 || y < 0 || y > 240 {
			t.Fatalf("Pointer left the viewport: (%v, %v)", x, y)
		}
	}

	// Periodic
	x1, y1 := h.Pointer(0.3)
	x2, y2 := h.Pointer(0.3 + sweepPeriod)
	if math.Abs(x1-x2) > 1e-9 || math.Abs(y1-y2) > 1e-9 {
		t.Errorf("sweep not periodic: (%v, %v) vs (%v, %v)", x1, y1, x2, y2)
	}
}

func TestHeadlessStepBuildsTrail(t *testing.T) {
	h, err := NewHeadless(headlessConfig(), Options{Seed: 1})
	if err != nil {
		t.Fatalf("NewHeadless: %v", err)
	}
	defer h.Unload()

	if h.Demo().Field() == nil {
		t.Fatal("placeholder field should be loaded synchronously")
	}

	for i := 0; i < 30; i++ {
		if err := h.Step(); err != nil {
			t.Fatalf("Step %d: %v", i, err)
		}
	}

	if got := h.Frames(); got != 30 {
		t.Errorf("Frames() = %d, want 30", got)
	}
	rec := h.Recorder()
	if rec.Frames != 30 {
		t.Errorf("recorder saw %d frames, want 30", rec.Frames)
	}
	if rec.Last.Field == nil {
		t.Error("last frame should carry the field")
	}
	if h.Demo().Tracker().Len() == 0 {
		t.Error("pointer sweep over the image should leave trail points")
	}
	if rec.Last.Elapsed <= 0 {
		t.Errorf("elapsed = %v, want > 0", rec.Last.Elapsed)
	}
}

func TestHeadlessDumpTrail(t *testing.T) {
	path := filepath.Join(t.TempDir(), "trail.png")
	h, err := NewHeadless(headlessConfig(), Options{Seed: 1, DumpTrail: path})
	if err != nil {
		t.Fatalf("NewHeadless: %v", err)
	}
	for i := 0; i < 5; i++ {
		if err := h.Step(); err != nil {
			t.Fatalf("Step: %v", err)
		}
	}
	h.Unload()

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("trail PNG not written: %v", err)
	}
	if info.Size() == 0 {
		t.Error("trail PNG is empty")
	}
}

func TestHeadlessMissingImageRendersEmptyScene(t *testing.T) {
	cfg := headlessConfig()
	cfg.Image.Path = filepath.Join(t.TempDir(), "missing.png")

	h, err := NewHeadless(cfg, Options{Seed: 1})
	if err != nil {
		t.Fatalf("NewHeadless should not fail on a bad image: %v", err)
	}
	defer h.Unload()

	if h.Demo().Field() != nil {
		t.Fatal("no field should be built from a missing image")
	}
	for i := 0; i < 10; i++ {
		if err := h.Step(); err != nil {
			t.Fatalf("Step %d: %v", i, err)
		}
	}

	rec := h.Recorder()
	if rec.Frames != 10 {
		t.Errorf("recorder saw %d frames, want 10", rec.Frames)
	}
	if rec.Last.Field != nil {
		t.Error("frames should carry no field")
	}
	if h.Demo().Tracker().Len() != 0 {
		t.Errorf("expected no trail points without a field, got %d", h.Demo().Tracker().Len())
	}
}

func TestHeadlessUndecodableImage(t *testing.T) {
	cfg := headlessConfig()
	cfg.Image.Path = filepath.Join(t.TempDir(), "garbage.png")
	if err := os.WriteFile(cfg.Image.Path, []byte("not an image"), 0o644); err != nil {
		t.Fatal(err)
	}

	h, err := NewHeadless(cfg, Options{Seed: 1})
	if err != nil {
		t.Fatalf("NewHeadless should not fail on an undecodable image: %v", err)
	}
	defer h.Unload()

	if err := h.Step(); err != nil {
		t.Fatalf("Step: %v", err)
	}
	if h.Demo().Field() != nil {
		t.Error("no field should be built from an undecodable image")
	}
}
