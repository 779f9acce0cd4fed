package main

import (
	"flag"
	"log/slog"
	"os"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/gogpu/gg"

	"github.com/pthm-cable/pixelfield/config"
	"github.com/pthm-cable/pixelfield/game"
)

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	imagePath := flag.String("image", "", "Image to render (overrides config; empty = config or placeholder)")
	headless := flag.Bool("headless", false, "Run without graphics using a scripted pointer")
	logStats := flag.Bool("log-stats", false, "Output stats via slog")
	outputDir := flag.String("output-dir", "", "Output directory for CSV logs, config snapshot and trail PNGs")
	dumpTrail := flag.String("dump-trail", "", "Write the final trail canvas to this PNG on exit")
	seed := flag.Int64("seed", 0, "RNG seed (0 = time-based)")
	maxFrames := flag.Int("max-frames", 0, "Stop after N frames (0 = unlimited)")

	flag.Parse()

	// Set up slog (JSON to stdout for structured logging)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)
	gg.SetLogger(logger)

	if err := config.Init(*configPath); err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	cfg := config.Cfg()
	if *imagePath != "" {
		cfg.Image.Path = *imagePath
	}

	rngSeed := *seed
	if rngSeed == 0 {
		rngSeed = time.Now().UnixNano()
	}

	opts := game.Options{
		Seed:      rngSeed,
		LogStats:  *logStats,
		OutputDir: *outputDir,
		DumpTrail: *dumpTrail,
	}

	if *headless {
		if *maxFrames <= 0 {
			slog.Error("headless mode needs -max-frames")
			os.Exit(1)
		}

		h, err := game.NewHeadless(cfg, opts)
		if err != nil {
			slog.Error("failed to start", "error", err)
			os.Exit(1)
		}
		defer h.Unload()

		slog.Info("starting headless run",
			"seed", rngSeed,
			"image", cfg.Image.Path,
			"max_frames", *maxFrames,
		)

		for int(h.Frames()) < *maxFrames {
			if err := h.Step(); err != nil {
				slog.Error("frame failed", "frame", h.Frames(), "error", err)
				return
			}
		}
		slog.Info("max frames reached", "frame", h.Frames(), "trail_points", h.Demo().Tracker().Len())
		return
	}

	// Graphical mode
	rl.SetConfigFlags(rl.FlagWindowResizable | rl.FlagMsaa4xHint)
	rl.InitWindow(int32(cfg.Screen.Width), int32(cfg.Screen.Height), cfg.Screen.Title)
	defer rl.CloseWindow()

	rl.SetTargetFPS(int32(cfg.Screen.TargetFPS))

	g, err := game.NewGame(cfg, opts)
	if err != nil {
		slog.Error("failed to start", "error", err)
		return
	}
	defer g.Unload()

	for !rl.WindowShouldClose() {
		g.Update()
		if err := g.Draw(); err != nil {
			slog.Error("frame failed", "error", err)
			break
		}

		if *maxFrames > 0 && int(g.Frames()) >= *maxFrames {
			break
		}
	}
}
