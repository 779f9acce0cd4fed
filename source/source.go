// Package source loads the raster image a pixel field is built from.
package source

import (
	"bufio"
	"errors"
	"fmt"
	"image"
	"io"
	"os"

	// Registered decoders. JPEG is the primary format; the rest come along for free.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/gogpu/gg"
)

// ErrImageDecode is returned when an image cannot be read or decoded.
var ErrImageDecode = errors.New("image decode failed")

// Load opens and decodes the image at path.
func Load(path string) (image.Image, string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, "", fmt.Errorf("%w: opening %s: %v", ErrImageDecode, path, err)
	}
	defer f.Close()

	img, format, err := Decode(f)
	if err != nil {
		return nil, "", fmt.Errorf("%s: %w", path, err)
	}
	return img, format, nil
}

// Decode decodes an image from r using any registered format.
func Decode(r io.Reader) (image.Image, string, error) {
	img, format, err := image.Decode(bufio.NewReader(r))
	if err != nil {
		return nil, "", fmt.Errorf("%w: %v", ErrImageDecode, err)
	}
	return img, format, nil
}

// Placeholder draws a w x h test card: a dark background with three
// overlapping discs, so the field has visible structure without an asset.
func Placeholder(w, h int) (image.Image, error) {
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("%w: placeholder size %dx%d", ErrImageDecode, w, h)
	}

	dc := gg.NewContext(w, h)
	defer dc.Close()

	dc.ClearWithColor(gg.Hex("#101820"))

	fw, fh := float64(w), float64(h)
	r := fh * 0.3
	discs := []struct {
		x, y  float64
		color gg.RGBA
	}{
		{fw * 0.38, fh * 0.42, gg.Hex("#e63946")},
		{fw * 0.62, fh * 0.42, gg.Hex("#2a9d8f")},
		{fw * 0.50, fh * 0.64, gg.Hex("#e9c46a")},
	}
	for _, d := range discs {
		c := d.color
		c.A = 0.8
		dc.SetFillBrush(gg.Solid(c))
		dc.DrawCircle(d.x, d.y, r)
		if err := dc.Fill(); err != nil {
			return nil, fmt.Errorf("drawing placeholder: %w", err)
		}
	}

	return dc.Image(), nil
}
