// Trail preview tool - paint the trail canvas with the mouse and tune the
// radius law with sliders.
//
// Usage: go run ./cmd/trailpreview
package main

import (
	"fmt"
	"image/color"
	"log/slog"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/pixelfield/canvas"
	"github.com/pthm-cable/pixelfield/trail"
)

const (
	windowWidth  = 1000
	windowHeight = 720
	previewSize  = 512
	canvasSize   = 256
	panelWidth   = windowWidth - previewSize - 30
)

// TrailParams holds the tunable trail settings.
type TrailParams struct {
	MaxRadius  float32
	Rise       float32
	Fall       float32
	InnerAlpha float32
}

func defaultParams() TrailParams {
	return TrailParams{
		MaxRadius:  15,
		Rise:       1,
		Fall:       1,
		InnerAlpha: 0.2,
	}
}

func (p TrailParams) timing() trail.Timing {
	return trail.Timing{
		MaxRadius: float64(p.MaxRadius),
		Rise:      float64(p.Rise),
		Fall:      float64(p.Fall),
	}
}

func main() {
	rl.InitWindow(windowWidth, windowHeight, "Trail Preview")
	defer rl.CloseWindow()
	rl.SetTargetFPS(60)

	params := defaultParams()
	tracker := trail.New(params.timing())

	opts := canvas.DefaultOptions()
	opts.InnerAlpha = float64(params.InnerAlpha)
	cv, err := canvas.New(canvasSize, canvasSize, opts)
	if err != nil {
		slog.Error("failed to create canvas", "error", err)
		return
	}

	img := rl.GenImageColor(canvasSize, canvasSize, rl.Black)
	texture := rl.LoadTextureFromImage(img)
	rl.UnloadImage(img)
	defer rl.UnloadTexture(texture)

	pixels := make([]color.RGBA, canvasSize*canvasSize)
	var samples []trail.Sample
	saves := 0

	previewRect := rl.Rectangle{X: 10, Y: 10, Width: previewSize, Height: previewSize}

	for !rl.WindowShouldClose() {
		now := rl.GetTime()

		// Paint while the mouse is over the preview
		mouse := rl.GetMousePosition()
		if rl.CheckCollisionPointRec(mouse, previewRect) {
			u := float64(mouse.X-previewRect.X) / previewSize
			v := 1 - float64(mouse.Y-previewRect.Y)/previewSize
			tracker.Add(u, v, now)
		}

		tracker.Advance(now)
		samples = tracker.AppendSnapshot(samples[:0], now)
		cv.Draw(samples)

		tex := cv.Texture()
		for i := range pixels {
			pixels[i] = color.RGBA{R: tex.Pix[i*4], G: tex.Pix[i*4+1], B: tex.Pix[i*4+2], A: tex.Pix[i*4+3]}
		}
		rl.UpdateTexture(texture, pixels)

		rl.BeginDrawing()
		rl.ClearBackground(rl.RayWhite)

		rl.DrawTexturePro(
			texture,
			rl.Rectangle{X: 0, Y: 0, Width: canvasSize, Height: canvasSize},
			previewRect,
			rl.Vector2{X: 0, Y: 0},
			0,
			rl.White,
		)
		rl.DrawRectangleLines(10, 10, previewSize, previewSize, rl.DarkGray)

		// Stats
		rising, falling := 0, 0
		for _, s := range samples {
			if s.Phase == trail.Rising {
				rising++
			} else {
				falling++
			}
		}
		statsY := int32(previewSize + 25)
		rl.DrawText(fmt.Sprintf("Points: %d  Rising: %d  Falling: %d", tracker.Len(), rising, falling), 15, statsY, 16, rl.DarkGray)
		rl.DrawText(fmt.Sprintf("Generation: %d  Lifetime: %.2fs", cv.Generation(), params.timing().Lifetime()), 15, statsY+20, 16, rl.DarkGray)

		// Control panel
		panelX := float32(previewSize + 20)
		panelY := float32(10)

		rl.DrawText("Trail Parameters", int32(panelX), int32(panelY), 20, rl.DarkGray)
		panelY += 35

		timingChanged := false

		rl.DrawText("Max radius (canvas pixels)", int32(panelX), int32(panelY), 14, rl.Gray)
		panelY += 18
		newRadius := gui.SliderBar(
			rl.Rectangle{X: panelX, Y: panelY, Width: float32(panelWidth - 80), Height: 20},
			"0", "60",
			params.MaxRadius, 0, 60,
		)
		rl.DrawText(fmt.Sprintf("%.1f", params.MaxRadius), int32(panelX+float32(panelWidth-70)), int32(panelY+2), 16, rl.DarkGray)
		if newRadius != params.MaxRadius {
			params.MaxRadius = newRadius
			tracker.SetMaxRadius(float64(newRadius))
		}
		panelY += 35

		rl.DrawText("Rise (seconds to peak)", int32(panelX), int32(panelY), 14, rl.Gray)
		panelY += 18
		newRise := gui.SliderBar(
			rl.Rectangle{X: panelX, Y: panelY, Width: float32(panelWidth - 80), Height: 20},
			"0.05", "3",
			params.Rise, 0.05, 3,
		)
		rl.DrawText(fmt.Sprintf("%.2f", params.Rise), int32(panelX+float32(panelWidth-70)), int32(panelY+2), 16, rl.DarkGray)
		if newRise != params.Rise {
			params.Rise = newRise
			timingChanged = true
		}
		panelY += 35

		rl.DrawText("Fall (seconds back to zero)", int32(panelX), int32(panelY), 14, rl.Gray)
		panelY += 18
		newFall := gui.SliderBar(
			rl.Rectangle{X: panelX, Y: panelY, Width: float32(panelWidth - 80), Height: 20},
			"0.05", "3",
			params.Fall, 0.05, 3,
		)
		rl.DrawText(fmt.Sprintf("%.2f", params.Fall), int32(panelX+float32(panelWidth-70)), int32(panelY+2), 16, rl.DarkGray)
		if newFall != params.Fall {
			params.Fall = newFall
			timingChanged = true
		}
		panelY += 35

		rl.DrawText("Inner alpha (inside half radius)", int32(panelX), int32(panelY), 14, rl.Gray)
		panelY += 18
		newAlpha := gui.SliderBar(
			rl.Rectangle{X: panelX, Y: panelY, Width: float32(panelWidth - 80), Height: 20},
			"0", "1",
			params.InnerAlpha, 0, 1,
		)
		rl.DrawText(fmt.Sprintf("%.2f", params.InnerAlpha), int32(panelX+float32(panelWidth-70)), int32(panelY+2), 16, rl.DarkGray)
		if newAlpha != params.InnerAlpha {
			params.InnerAlpha = newAlpha
			cv.SetInnerAlpha(float64(newAlpha))
		}
		panelY += 45

		// Rise and fall only apply to a fresh tracker
		if timingChanged {
			tracker = trail.New(params.timing())
		}

		if gui.Button(rl.Rectangle{X: panelX, Y: panelY, Width: 120, Height: 30}, "Clear") {
			tracker.Reset()
		}

		if gui.Button(rl.Rectangle{X: panelX + 130, Y: panelY, Width: 120, Height: 30}, "Reset All") {
			params = defaultParams()
			tracker = trail.New(params.timing())
			cv.SetInnerAlpha(float64(params.InnerAlpha))
		}
		panelY += 45

		if gui.Button(rl.Rectangle{X: panelX, Y: panelY, Width: 120, Height: 30}, "Save PNG") {
			saves++
			path := fmt.Sprintf("trail_preview_%03d.png", saves)
			if err := cv.SavePNG(path); err != nil {
				slog.Error("failed to write trail", "path", path, "error", err)
			} else {
				slog.Info("trail saved", "path", path)
			}
		}
		panelY += 55

		// Output YAML
		rl.DrawText("YAML Config:", int32(panelX), int32(panelY), 16, rl.DarkGray)
		panelY += 25
		for _, line := range yamlLines(params) {
			rl.DrawText(line, int32(panelX), int32(panelY), 14, rl.Gray)
			panelY += 16
		}

		rl.DrawText("Move the mouse over the preview to paint. Press C to copy YAML", int32(panelX), int32(windowHeight-30), 12, rl.LightGray)

		if rl.IsKeyPressed(rl.KeyC) {
			var yaml string
			for _, line := range yamlLines(params) {
				yaml += line + "\n"
			}
			rl.SetClipboardText(yaml)
		}

		rl.EndDrawing()
	}
}

func yamlLines(p TrailParams) []string {
	return []string{
		"trail:",
		fmt.Sprintf("  max_radius: %.1f", p.MaxRadius),
		fmt.Sprintf("  rise: %.2f", p.Rise),
		fmt.Sprintf("  fall: %.2f", p.Fall),
		fmt.Sprintf("  inner_alpha: %.2f", p.InnerAlpha),
	}
}
