package demo

import (
	"context"
	"fmt"
	"image"
	"log/slog"

	"github.com/gogpu/gg"

	"github.com/pthm-cable/pixelfield/canvas"
	"github.com/pthm-cable/pixelfield/components"
	"github.com/pthm-cable/pixelfield/field"
	"github.com/pthm-cable/pixelfield/picker"
	"github.com/pthm-cable/pixelfield/source"
	"github.com/pthm-cable/pixelfield/tween"
)

// loadResult carries an asynchronously decoded image back to the frame loop.
type loadResult struct {
	path string
	img  image.Image
	err  error
}

// LoadImage builds the field for img and hands it to the renderer.
// Only one field is ever built.
func (c *Context) LoadImage(img image.Image) error {
	if c.field != nil {
		return ErrFieldLoaded
	}

	col := c.cfg.Derived.FieldColor
	f, err := field.FromImage(img, field.Options{
		Color: components.Tint{R: float32(col.R), G: float32(col.G), B: float32(col.B)},
		Rand:  c.rng,
	})
	if err != nil {
		return err
	}

	w, h := f.Size()
	cv, err := canvas.New(w, h, canvas.Options{
		Background: c.cfg.Derived.TrailBackground,
		Color:      gg.White,
		InnerAlpha: c.trailAlpha,
	})
	if err != nil {
		return err
	}

	if err := c.renderer.Load(f); err != nil {
		return fmt.Errorf("loading field into renderer: %w", err)
	}

	c.field = f
	c.canvas = cv
	c.plane = picker.NewPlane(float64(w), float64(h))
	c.camera.Fit(float64(w), float64(h), c.cfg.Camera.FitMargin, c.cfg.Camera.Near, c.cfg.Camera.Far)

	fc := c.cfg.Field
	c.randomness = tween.New(fc.RandomnessStart, fc.RandomnessEnd, c.elapsed, fc.RandomnessDuration, c.cfg.Derived.RandomnessEase)
	f.SetRandomness(c.randomness.Value(c.elapsed))

	slog.Info("field loaded", "width", w, "height", h, "instances", f.Count())
	return nil
}

// LoadImageFile decodes path and loads it synchronously.
func (c *Context) LoadImageFile(path string) error {
	img, _, err := source.Load(path)
	if err != nil {
		return err
	}
	return c.LoadImage(img)
}

// LoadPlaceholder loads the generated placeholder image.
func (c *Context) LoadPlaceholder() error {
	img, err := source.Placeholder(c.cfg.Image.PlaceholderWidth, c.cfg.Image.PlaceholderHeight)
	if err != nil {
		return err
	}
	return c.LoadImage(img)
}

// LoadAsync decodes path on a goroutine. The result is adopted by the next
// Frame after it arrives; until then frames render without a field.
// Cancelling ctx turns the result into ctx.Err(), which the frame logs as a
// failed load.
func (c *Context) LoadAsync(ctx context.Context, path string) {
	done := make(chan loadResult, 1)
	c.loads = append(c.loads, done)
	go func() {
		res := loadResult{path: path}
		if err := ctx.Err(); err == nil {
			res.img, _, res.err = source.Load(path)
		}
		if err := ctx.Err(); err != nil {
			res.img, res.err = nil, err
		}
		// Never blocks: the channel has room for exactly this result
		done <- res
	}()
}

// LoadConfigured loads cfg.Image.Path asynchronously, or the placeholder
// synchronously when no path is configured.
func (c *Context) LoadConfigured(ctx context.Context) error {
	if c.cfg.Image.Path == "" {
		return c.LoadPlaceholder()
	}
	c.LoadAsync(ctx, c.cfg.Image.Path)
	return nil
}

// adoptPending takes finished async loads, if any, without blocking.
// Loads are adopted in the order they were started.
func (c *Context) adoptPending() {
	for len(c.loads) > 0 {
		var res loadResult
		select {
		case res = <-c.loads[0]:
		default:
			return
		}
		c.loads[0] = nil
		c.loads = c.loads[1:]

		if res.err != nil {
			slog.Warn("image load failed", "path", res.path, "error", res.err)
			continue
		}
		if err := c.LoadImage(res.img); err != nil {
			slog.Warn("image rejected", "path", res.path, "error", err)
		}
	}
}
