package game

import (
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/pixelfield/config"
	"github.com/pthm-cable/pixelfield/ui"
)

// handleInput processes keyboard and mouse input.
func (g *Game) handleInput() {
	// Window resize propagation
	g.handleResize()

	// Fullscreen toggle
	if rl.IsKeyPressed(rl.KeyF11) {
		rl.ToggleFullscreen()
	}

	for key := rl.GetKeyPressed(); key != 0; key = rl.GetKeyPressed() {
		g.overlays.HandleKeyPress(key)
	}
	g.controls.SetVisible(g.overlays.IsEnabled(ui.OverlayTuning))

	if rl.IsKeyPressed(rl.KeyF) {
		g.togglePolicy()
	}

	g.handlePointer()
	g.handleCameraInput()
}

// handleResize checks for window resize and propagates new dimensions.
func (g *Game) handleResize() {
	if !rl.IsWindowResized() {
		return
	}
	w := rl.GetScreenWidth()
	h := rl.GetScreenHeight()
	if w == g.screenWidth && h == g.screenHeight {
		return
	}
	g.screenWidth = w
	g.screenHeight = h
	g.demo.Resize(w, h)
}

// handlePointer forwards pointer moves to the demo. Unchanged positions
// are not queued.
func (g *Game) handlePointer() {
	pos := rl.GetMousePosition()
	if g.hasMouse && pos == g.mouse {
		return
	}
	g.mouse = pos
	g.hasMouse = true
	g.demo.PointerMoved(float64(pos.X), float64(pos.Y))
}

// handleCameraInput maps drag, wheel and keys to orbit controls.
func (g *Game) handleCameraInput() {
	pos := rl.GetMousePosition()

	// Drag to orbit, unless the drag started over the tuning panel
	if rl.IsMouseButtonPressed(rl.MouseButtonLeft) {
		g.dragging = !g.controls.Contains(pos.X, pos.Y)
	}
	if rl.IsMouseButtonReleased(rl.MouseButtonLeft) {
		g.dragging = false
	}
	if g.dragging && rl.IsMouseButtonDown(rl.MouseButtonLeft) {
		d := rl.GetMouseDelta()
		if d.X != 0 || d.Y != 0 {
			g.demo.Orbit(float64(d.X), float64(d.Y))
		}
	}

	// Zoom controls: mouse wheel or +/- keys
	zoomSpeed := g.cfg.Camera.ZoomSpeed
	if wheel := rl.GetMouseWheelMove(); wheel != 0 {
		g.demo.Zoom(math.Pow(zoomSpeed, float64(wheel)))
	}
	if rl.IsKeyPressed(rl.KeyEqual) || rl.IsKeyPressed(rl.KeyKpAdd) {
		g.demo.Zoom(zoomSpeed)
	}
	if rl.IsKeyPressed(rl.KeyMinus) || rl.IsKeyPressed(rl.KeyKpSubtract) {
		g.demo.Zoom(1 / zoomSpeed)
	}

	if rl.IsKeyPressed(rl.KeyR) || rl.IsKeyPressed(rl.KeyHome) {
		g.demo.ResetView()
	}
}

// togglePolicy flips between picking on events and every frame.
func (g *Game) togglePolicy() {
	if g.demo.Policy() == config.PickOnEvent {
		g.demo.SetPolicy(config.PickEveryFrame)
	} else {
		g.demo.SetPolicy(config.PickOnEvent)
	}
}
