package ui

import (
	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"
)

// TuningState is the set of live-tunable values shown in the panel.
type TuningState struct {
	TrailRadius float32
	TrailAlpha  float32
	Damping     float32
	EveryFrame  bool
}

// TuningActions reports buttons pressed during a Draw.
type TuningActions struct {
	ResetView bool
	SaveTrail bool
}

// ControlsPanel renders the left-side tuning panel.
type ControlsPanel struct {
	renderer *Renderer
	x, y     int32
	width    int32
	height   int32
	visible  bool
}

// NewControlsPanel creates a new controls panel.
func NewControlsPanel(x, y, width int32) *ControlsPanel {
	return &ControlsPanel{
		renderer: NewRenderer(),
		x:        x,
		y:        y,
		width:    width,
	}
}

// SetVisible shows or hides the panel.
func (c *ControlsPanel) SetVisible(visible bool) {
	c.visible = visible
}

// IsVisible returns whether the panel is shown.
func (c *ControlsPanel) IsVisible() bool {
	return c.visible
}

// Toggle switches panel visibility.
func (c *ControlsPanel) Toggle() bool {
	c.visible = !c.visible
	return c.visible
}

// Contains reports whether a screen point is over the visible panel, so
// drags there do not orbit the camera.
func (c *ControlsPanel) Contains(x, y float32) bool {
	if !c.visible {
		return false
	}
	bounds := rl.Rectangle{X: float32(c.x), Y: float32(c.y), Width: float32(c.width), Height: float32(c.height)}
	return rl.CheckCollisionPointRec(rl.Vector2{X: x, Y: y}, bounds)
}

// Draw renders the panel and returns the edited state.
func (c *ControlsPanel) Draw(state TuningState, maxRadius float32) (TuningState, TuningActions) {
	var actions TuningActions
	if !c.visible {
		return state, actions
	}

	r := c.renderer
	padding := r.Theme.Padding
	inner := c.width - padding*2

	// Sliders take two lines each, then the checkbox and button row
	c.height = padding*3 + r.Theme.LineHeight + 4 + 3*(r.Theme.LineHeight+22) + 24 + 34
	r.DrawPanel(c.x, c.y, c.width, c.height)

	x := c.x + padding
	y := c.y + padding

	rl.DrawText("Tuning", x, y, 16, rl.White)
	y += r.Theme.LineHeight + 4

	state.TrailRadius, y = r.Slider(x, y, "Trail radius (px)", state.TrailRadius, 0, maxRadius, inner)
	state.TrailAlpha, y = r.Slider(x, y, "Trail inner alpha", state.TrailAlpha, 0, 1, inner)
	state.Damping, y = r.Slider(x, y, "Orbit damping", state.Damping, 0, 1, inner)

	state.EveryFrame = gui.CheckBox(
		rl.Rectangle{X: float32(x), Y: float32(y), Width: 14, Height: 14},
		"Pick every frame", state.EveryFrame,
	)
	y += 24

	half := float32(inner-10) / 2
	if gui.Button(rl.Rectangle{X: float32(x), Y: float32(y), Width: half, Height: 26}, "Reset View") {
		actions.ResetView = true
	}
	if gui.Button(rl.Rectangle{X: float32(x) + half + 10, Y: float32(y), Width: half, Height: 26}, "Save Trail") {
		actions.SaveTrail = true
	}

	return state, actions
}
