package game

import (
	"errors"
	"log/slog"
	"math"

	"github.com/pthm-cable/pixelfield/config"
	"github.com/pthm-cable/pixelfield/demo"
	"github.com/pthm-cable/pixelfield/field"
	"github.com/pthm-cable/pixelfield/source"
)

// sweepPeriod is the seconds taken by one loop of the scripted pointer.
const sweepPeriod = 4.0

// Headless runs the demo without a window. Frames advance on a fixed
// timestep and the pointer traces a figure eight over the viewport.
type Headless struct {
	demo      *demo.Context
	recorder  *demo.Recorder
	width     float64
	height    float64
	dt        float64
	frames    int64
	dumpTrail string
}

// NewHeadless loads the configured image synchronously and returns a
// runner ready to step. An image that cannot be decoded or is empty is
// logged and the runner steps without a field, like the windowed host.
func NewHeadless(cfg *config.Config, opts Options) (*Headless, error) {
	rec := &demo.Recorder{}
	d, err := demo.New(cfg, rec, demo.Options{
		Seed:      opts.Seed,
		LogStats:  opts.LogStats,
		OutputDir: opts.OutputDir,
	})
	if err != nil {
		return nil, err
	}

	if cfg.Image.Path == "" {
		err = d.LoadPlaceholder()
	} else {
		err = d.LoadImageFile(cfg.Image.Path)
	}
	switch {
	case errors.Is(err, source.ErrImageDecode), errors.Is(err, field.ErrEmptyField):
		slog.Warn("image load failed", "path", cfg.Image.Path, "error", err)
	case err != nil:
		d.Close()
		return nil, err
	}

	fps := cfg.Screen.TargetFPS
	if fps <= 0 {
		fps = 60
	}

	return &Headless{
		demo:      d,
		recorder:  rec,
		width:     float64(cfg.Screen.Width),
		height:    float64(cfg.Screen.Height),
		dt:        1 / float64(fps),
		dumpTrail: opts.DumpTrail,
	}, nil
}

// Pointer returns the scripted pointer position at elapsed seconds.
func (h *Headless) Pointer(elapsed float64) (float64, float64) {
	phase := 2 * math.Pi * elapsed / sweepPeriod
	x := h.width/2 + 0.3*h.width*math.Sin(phase)
	y := h.height/2 + 0.3*h.height*math.Sin(2*phase)
	return x, y
}

// Step moves the pointer and advances one frame.
func (h *Headless) Step() error {
	elapsed := float64(h.frames) * h.dt
	h.demo.PointerMoved(h.Pointer(elapsed))
	err := h.demo.Frame(elapsed)
	h.frames++
	return err
}

// Frames returns the number of frames stepped.
func (h *Headless) Frames() int64 {
	return h.frames
}

// Demo exposes the underlying context.
func (h *Headless) Demo() *demo.Context {
	return h.demo
}

// Recorder exposes what the headless renderer received.
func (h *Headless) Recorder() *demo.Recorder {
	return h.recorder
}

// Unload writes the final trail if requested and closes output files.
func (h *Headless) Unload() {
	if h.dumpTrail != "" {
		if cv := h.demo.Canvas(); cv != nil {
			if err := cv.SavePNG(h.dumpTrail); err != nil {
				slog.Error("failed to write trail", "path", h.dumpTrail, "error", err)
			} else {
				slog.Info("trail saved", "path", h.dumpTrail, "generation", cv.Generation())
			}
		}
	}
	if err := h.demo.Close(); err != nil {
		slog.Error("failed to close output", "error", err)
	}
}
