// Package game hosts the pixel field demo in a raylib window.
package game

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/pixelfield/config"
	"github.com/pthm-cable/pixelfield/demo"
	"github.com/pthm-cable/pixelfield/renderer"
	"github.com/pthm-cable/pixelfield/ui"
)

// Options configures a Game.
type Options struct {
	Seed      int64  // RNG seed (0 = time-based)
	LogStats  bool   // Log stats windows via slog
	OutputDir string // Directory for CSV logs, config snapshot and trail PNGs
	DumpTrail string // Write the final trail canvas here on Unload (empty = skip)
}

// Game holds the windowed demo state.
type Game struct {
	cfg    *config.Config
	demo   *demo.Context
	field  *renderer.FieldRenderer
	cancel context.CancelFunc

	// UI
	hud       *ui.HUD
	perfPanel *ui.PerfPanel
	controls  *ui.ControlsPanel
	overlays  *ui.OverlayRegistry

	screenWidth  int
	screenHeight int

	// Pointer state
	mouse    rl.Vector2
	hasMouse bool
	dragging bool

	outputDir string
	dumpTrail string
	frames    int64
	saves     int
}

// NewGame creates the renderer and demo context and starts loading the
// configured image. The window must already be open.
func NewGame(cfg *config.Config, opts Options) (*Game, error) {
	fr, err := renderer.NewFieldRenderer()
	if err != nil {
		return nil, err
	}

	d, err := demo.New(cfg, fr, demo.Options{
		Seed:      opts.Seed,
		LogStats:  opts.LogStats,
		OutputDir: opts.OutputDir,
	})
	if err != nil {
		fr.Unload()
		return nil, err
	}

	loadCtx, cancel := context.WithCancel(context.Background())
	if err := d.LoadConfigured(loadCtx); err != nil {
		cancel()
		d.Close()
		fr.Unload()
		return nil, err
	}

	g := &Game{
		cfg:          cfg,
		demo:         d,
		field:        fr,
		cancel:       cancel,
		hud:          ui.NewHUD(),
		perfPanel:    ui.NewPerfPanel(10, 70),
		controls:     ui.NewControlsPanel(10, 70, 260),
		overlays:     ui.NewOverlayRegistry(),
		screenWidth:  cfg.Screen.Width,
		screenHeight: cfg.Screen.Height,
		outputDir:    opts.OutputDir,
		dumpTrail:    opts.DumpTrail,
	}
	return g, nil
}

// Update processes input for the next frame.
func (g *Game) Update() {
	g.handleInput()
}

// Draw advances the demo one frame and renders it with the UI on top.
func (g *Game) Draw() error {
	rl.BeginDrawing()
	err := g.demo.Frame(rl.GetTime())
	g.drawUI()
	rl.EndDrawing()

	g.frames++
	return err
}

// Frames returns the number of frames drawn.
func (g *Game) Frames() int64 {
	return g.frames
}

// saveTrail writes the current trail canvas to path.
func (g *Game) saveTrail(path string) {
	cv := g.demo.Canvas()
	if cv == nil {
		slog.Warn("no trail to save", "path", path)
		return
	}
	if err := cv.SavePNG(path); err != nil {
		slog.Error("failed to write trail", "path", path, "error", err)
		return
	}
	slog.Info("trail saved", "path", path, "generation", cv.Generation())
}

// nextTrailPath names the PNG written by the tuning panel's save button.
func (g *Game) nextTrailPath() string {
	g.saves++
	return filepath.Join(g.outputDir, fmt.Sprintf("trail_%03d.png", g.saves))
}

// Unload cancels pending loads and releases resources.
func (g *Game) Unload() {
	g.cancel()
	if g.dumpTrail != "" {
		g.saveTrail(g.dumpTrail)
	}
	if err := g.demo.Close(); err != nil {
		slog.Error("failed to close output", "error", err)
	}
	g.field.Unload()
}
