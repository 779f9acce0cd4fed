// Package canvas rasterizes the pointer trail into an offscreen RGBA buffer
// that the particle shader samples as a texture.
package canvas

import (
	"errors"
	"fmt"
	"math"

	"github.com/gogpu/gg"

	"github.com/pthm-cable/pixelfield/trail"
)

// ErrSize is returned for a canvas with zero area.
var ErrSize = errors.New("invalid canvas size")

// Options controls trail appearance.
type Options struct {
	// Background is the clear color. Alpha is forced opaque.
	Background gg.RGBA
	// Color of the soft discs.
	Color gg.RGBA
	// InnerAlpha is the disc opacity inside half its radius.
	InnerAlpha float64
}

// DefaultOptions returns white discs on black.
func DefaultOptions() Options {
	return Options{
		Background: gg.Black,
		Color:      gg.White,
		InnerAlpha: 0.2,
	}
}

// Texture is a view of the canvas pixels ready for upload.
// Pix is row-major RGBA, top row first, and is only valid until the next Draw.
type Texture struct {
	Width, Height int
	Pix           []uint8
	Generation    uint64
}

// Canvas is a trail raster sized to the source image.
type Canvas struct {
	pm         *gg.Pixmap
	opts       Options
	generation uint64
}

// New creates a w x h canvas cleared to the background.
func New(w, h int, opts Options) (*Canvas, error) {
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("creating %dx%d canvas: %w", w, h, ErrSize)
	}
	opts.Background.A = 1
	c := &Canvas{pm: gg.NewPixmap(w, h), opts: opts}
	c.pm.Clear(opts.Background)
	return c, nil
}

// Size returns the canvas dimensions.
func (c *Canvas) Size() (w, h int) {
	return c.pm.Width(), c.pm.Height()
}

// SetInnerAlpha changes disc opacity for subsequent draws.
func (c *Canvas) SetInnerAlpha(a float64) {
	c.opts.InnerAlpha = math.Max(0, math.Min(1, a))
}

// Draw clears the canvas and paints one soft disc per sample, in order.
// Samples use UV with the origin at the bottom left; the canvas origin is top left.
func (c *Canvas) Draw(samples []trail.Sample) {
	c.pm.Clear(c.opts.Background)

	w, h := c.Size()
	for _, s := range samples {
		if s.Radius <= 0 {
			continue
		}
		c.disc(s.U*float64(w), float64(h)-s.V*float64(h), s.Radius)
	}

	// Always dirty: animating discs change every frame
	c.generation++
}

// disc composites a radial gradient source-over the current pixels.
func (c *Canvas) disc(cx, cy, r float64) {
	inner := c.opts.Color
	inner.A = c.opts.InnerAlpha
	outer := c.opts.Color
	outer.A = 0

	brush := gg.NewRadialGradientBrush(cx, cy, r/2, r).
		AddColorStop(0, inner).
		AddColorStop(1, outer)

	w, h := c.Size()
	x0 := max(0, int(math.Floor(cx-r)))
	x1 := min(w-1, int(math.Ceil(cx+r)))
	y0 := max(0, int(math.Floor(cy-r)))
	y1 := min(h-1, int(math.Ceil(cy+r)))

	r2 := r * r
	for y := y0; y <= y1; y++ {
		py := float64(y) + 0.5
		for x := x0; x <= x1; x++ {
			px := float64(x) + 0.5
			dx, dy := px-cx, py-cy
			if dx*dx+dy*dy >= r2 {
				continue
			}
			src := brush.ColorAt(px, py)
			if src.A <= 0 {
				continue
			}
			c.pm.SetPixel(x, y, over(src, c.pm.GetPixel(x, y)))
		}
	}
}

// over composites straight-alpha src on dst.
func over(src, dst gg.RGBA) gg.RGBA {
	a := src.A
	inv := 1 - a
	return gg.RGBA{
		R: src.R*a + dst.R*inv,
		G: src.G*a + dst.G*inv,
		B: src.B*a + dst.B*inv,
		A: a + dst.A*inv,
	}
}

// Texture returns the current pixels and generation.
func (c *Canvas) Texture() Texture {
	w, h := c.Size()
	return Texture{
		Width:      w,
		Height:     h,
		Pix:        c.pm.Data(),
		Generation: c.generation,
	}
}

// Generation counts Draw calls.
func (c *Canvas) Generation() uint64 {
	return c.generation
}

// Pixmap exposes the backing buffer.
func (c *Canvas) Pixmap() *gg.Pixmap {
	return c.pm
}

// SavePNG writes the current canvas to path.
func (c *Canvas) SavePNG(path string) error {
	if err := c.pm.SavePNG(path); err != nil {
		return fmt.Errorf("saving trail canvas: %w", err)
	}
	return nil
}
