package game

import (
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/pixelfield/config"
	"github.com/pthm-cable/pixelfield/ui"
)

// drawUI draws the overlays enabled in the registry.
func (g *Game) drawUI() {
	stats := g.demo.Stats()

	if g.overlays.IsEnabled(ui.OverlayHUD) {
		g.hud.Draw(ui.HUDData{
			Title:        g.cfg.Screen.Title,
			FPS:          rl.GetFPS(),
			Stats:        stats,
			ScreenWidth:  int32(g.screenWidth),
			ScreenHeight: int32(g.screenHeight),
		})
	}

	if g.overlays.IsEnabled(ui.OverlayTrailPreview) {
		g.drawTrailPreview()
	}

	if g.controls.IsVisible() {
		g.drawTuning()
	} else if g.overlays.IsEnabled(ui.OverlayPerf) {
		g.perfPanel.Draw(stats.Perf)
	}

	g.hud.DrawControls(int32(g.screenWidth), int32(g.screenHeight),
		"Drag: orbit  Wheel: zoom  [R] reset  [F] pick mode  [F11] fullscreen  "+g.overlays.Legend())
}

// drawTuning draws the tuning panel and applies any edits.
func (g *Game) drawTuning() {
	cam := g.demo.Camera()
	before := ui.TuningState{
		TrailRadius: float32(g.demo.Tracker().Timing().MaxRadius),
		TrailAlpha:  float32(g.demo.TrailAlpha()),
		Damping:     float32(cam.Damping),
		EveryFrame:  g.demo.Policy() == config.PickEveryFrame,
	}

	maxRadius := float32(math.Max(4*g.cfg.Trail.MaxRadius, 40))
	after, actions := g.controls.Draw(before, maxRadius)

	if after.TrailRadius != before.TrailRadius {
		g.demo.SetTrailRadius(float64(after.TrailRadius))
	}
	if after.TrailAlpha != before.TrailAlpha {
		g.demo.SetTrailAlpha(float64(after.TrailAlpha))
	}
	if after.Damping != before.Damping {
		cam.Damping = float64(after.Damping)
	}
	if after.EveryFrame != before.EveryFrame {
		g.togglePolicy()
	}

	if actions.ResetView {
		g.demo.ResetView()
	}
	if actions.SaveTrail {
		g.saveTrail(g.nextTrailPath())
	}
}

// drawTrailPreview shows the uploaded trail texture in the bottom-right,
// with a marker at each tracked point.
func (g *Game) drawTrailPreview() {
	tex, ok := g.field.TrailTexture()
	if !ok {
		return
	}

	const maxSide = 200
	scale := float32(maxSide) / float32(max(tex.Width, tex.Height))
	w := float32(tex.Width) * scale
	h := float32(tex.Height) * scale
	x := float32(g.screenWidth) - w - 10
	y := float32(g.screenHeight) - h - 40

	rl.DrawTexturePro(
		tex,
		rl.Rectangle{X: 0, Y: 0, Width: float32(tex.Width), Height: float32(tex.Height)},
		rl.Rectangle{X: x, Y: y, Width: w, Height: h},
		rl.Vector2{X: 0, Y: 0},
		0,
		rl.White,
	)
	rl.DrawRectangleLines(int32(x), int32(y), int32(w), int32(h), rl.DarkGray)

	// Mark where each live point was picked; UV origin is bottom left
	for _, p := range g.demo.Tracker().Points() {
		px := x + float32(p.U)*w
		py := y + float32(1-p.V)*h
		rl.DrawCircleV(rl.Vector2{X: px, Y: py}, 2, rl.Red)
	}
}
