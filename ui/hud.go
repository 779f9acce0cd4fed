package ui

import (
	"fmt"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/pixelfield/demo"
	"github.com/pthm-cable/pixelfield/telemetry"
)

// HUDData holds all the data needed to render the main HUD.
type HUDData struct {
	Title        string
	FPS          int32
	Stats        demo.Stats
	ScreenWidth  int32
	ScreenHeight int32
}

// HUD renders the main heads-up display.
type HUD struct {
	renderer *Renderer
	stats    PanelDescriptor
}

// NewHUD creates a new HUD renderer.
func NewHUD() *HUD {
	return &HUD{
		renderer: NewRenderer(),
		stats:    statsPanel(),
	}
}

// statsPanel lays out demo.Stats.
func statsPanel() PanelDescriptor {
	stat := func(data any) demo.Stats { return data.(demo.Stats) }

	return PanelDescriptor{
		ID:     "stats",
		Title:  "Field",
		Width:  240,
		Anchor: AnchorTopRight,
		Sections: []SectionDescriptor{
			{
				ID: "field",
				Fields: []FieldDescriptor{
					{ID: "instances", Label: "Instances", Widget: WidgetText, Format: "%.0f",
						Getter: func(d any) float32 { return float32(stat(d).Instances) }},
					{ID: "randomness", Label: "Randomness", Widget: WidgetText, Format: "%.2f",
						Getter: func(d any) float32 { return float32(stat(d).Randomness) }},
					{ID: "loading", Label: "Status", Widget: WidgetText,
						TextGetter: func(d any) string {
							switch s := stat(d); {
							case s.Loading:
								return "loading"
							case s.Instances == 0:
								return "no image"
							case s.Settling:
								return "settling"
							}
							return "ready"
						}},
					{ID: "camera", Label: "Camera", Widget: WidgetText,
						TextGetter: func(d any) string {
							if stat(d).CameraMoving {
								return "orbiting"
							}
							return "still"
						}},
				},
			},
			{
				ID:    "trail",
				Title: "Trail",
				Fields: []FieldDescriptor{
					{ID: "points", Label: "Points", Widget: WidgetText, Format: "%.0f",
						Getter: func(d any) float32 { return float32(stat(d).TrailPoints) }},
					{ID: "policy", Label: "Picking", Widget: WidgetText,
						TextGetter: func(d any) string { return stat(d).Policy.String() }},
					{ID: "queued", Label: "Queued", Widget: WidgetText,
						TextGetter: func(d any) string {
							s := stat(d)
							return fmt.Sprintf("%d/%d", s.Pending, s.QueueCap)
						}},
					{ID: "dropped", Label: "Dropped", Widget: WidgetText, Format: "%.0f",
						Getter: func(d any) float32 { return float32(stat(d).Dropped) },
						Visible: func(d any) bool { return stat(d).Dropped > 0 }},
				},
			},
		},
	}
}

// Draw renders the HUD.
func (h *HUD) Draw(data HUDData) {
	rl.DrawText(data.Title, 10, 10, 20, rl.White)
	rl.DrawText(
		fmt.Sprintf("Frame: %d | FPS: %d | Time: %.1fs", data.Stats.Frame, data.FPS, data.Stats.Elapsed),
		10, 35, 16, rl.LightGray,
	)

	h.renderer.DrawPanelDescriptor(h.stats, data.Stats, data.ScreenWidth, data.ScreenHeight)
}

// DrawControls renders the control legend at the bottom of the screen.
func (h *HUD) DrawControls(screenWidth, screenHeight int32, controls string) {
	rl.DrawText(controls, 10, screenHeight-25, 14, rl.Gray)
}

// PerfPanel renders the frame phase breakdown.
type PerfPanel struct {
	renderer *Renderer
	x, y     int32
}

// NewPerfPanel creates a new performance panel.
func NewPerfPanel(x, y int32) *PerfPanel {
	return &PerfPanel{
		renderer: NewRenderer(),
		x:        x,
		y:        y,
	}
}

// SetPosition updates the panel position.
func (p *PerfPanel) SetPosition(x, y int32) {
	p.x = x
	p.y = y
}

// Draw renders the performance panel.
func (p *PerfPanel) Draw(stats telemetry.PerfStats) {
	x := p.x
	y := p.y

	r := p.renderer
	height := int32(len(telemetry.Phases))*14 + 60
	r.DrawPanel(x-6, y-6, 260, height)

	rl.DrawText("Frame Performance", x, y, 16, rl.White)
	y += 20

	rl.DrawText(fmt.Sprintf("Avg: %s  Max: %s", stats.AvgFrame.Round(time.Microsecond), stats.MaxFrame.Round(time.Microsecond)), x, y, 14, rl.Yellow)
	y += 16

	for _, name := range telemetry.Phases {
		avg := stats.PhaseAvg[name]
		pct := stats.PhasePct[name]

		color := rl.LightGray
		if pct > 50 {
			color = rl.Red
		} else if pct > 25 {
			color = rl.Orange
		}

		rl.DrawText(
			fmt.Sprintf("%-10s %8s %5.1f%%", name, avg.Round(time.Microsecond), pct),
			x, y, 12, color,
		)
		y += 14
	}
}
