package source

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

func writeImage(t *testing.T, name string, encode func(*bytes.Buffer, image.Image) error, img image.Image) string {
	t.Helper()
	var buf bytes.Buffer
	if err := encode(&buf, img); err != nil {
		t.Fatalf("encoding %s: %v", name, err)
	}
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func testImage(w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{R: uint8(x * 40), G: uint8(y * 40), B: 128, A: 255})
		}
	}
	return img
}

func TestLoadPNG(t *testing.T) {
	path := writeImage(t, "img.png", func(b *bytes.Buffer, i image.Image) error { return png.Encode(b, i) }, testImage(3, 2))

	img, format, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if format != "png" {
		t.Errorf("expected format png, got %q", format)
	}
	if b := img.Bounds(); b.Dx() != 3 || b.Dy() != 2 {
		t.Errorf("expected 3x2, got %dx%d", b.Dx(), b.Dy())
	}
}

func TestLoadJPEG(t *testing.T) {
	path := writeImage(t, "img.jpg", func(b *bytes.Buffer, i image.Image) error {
		return jpeg.Encode(b, i, &jpeg.Options{Quality: 90})
	}, testImage(4, 4))

	img, format, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if format != "jpeg" {
		t.Errorf("expected format jpeg, got %q", format)
	}
	if b := img.Bounds(); b.Dx() != 4 || b.Dy() != 4 {
		t.Errorf("expected 4x4, got %dx%d", b.Dx(), b.Dy())
	}
}

func TestLoadFailures(t *testing.T) {
	dir := t.TempDir()
	corrupt := filepath.Join(dir, "corrupt.jpg")
	if err := os.WriteFile(corrupt, []byte("not an image"), 0644); err != nil {
		t.Fatal(err)
	}

	cases := []struct {
		name string
		path string
	}{
		{"missing", filepath.Join(dir, "missing.jpg")},
		{"corrupt", corrupt},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			img, _, err := Load(tc.path)
			if !errors.Is(err, ErrImageDecode) {
				t.Errorf("expected ErrImageDecode, got %v", err)
			}
			if img != nil {
				t.Error("expected nil image on failure")
			}
		})
	}
}

func TestDecodeTruncated(t *testing.T) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, testImage(8, 8)); err != nil {
		t.Fatal(err)
	}
	truncated := buf.Bytes()[:buf.Len()/2]

	if _, _, err := Decode(bytes.NewReader(truncated)); !errors.Is(err, ErrImageDecode) {
		t.Errorf("expected ErrImageDecode for truncated png, got %v", err)
	}
}

func TestPlaceholder(t *testing.T) {
	img, err := Placeholder(64, 48)
	if err != nil {
		t.Fatalf("Placeholder: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 64 || b.Dy() != 48 {
		t.Fatalf("expected 64x48, got %dx%d", b.Dx(), b.Dy())
	}

	corner := color.RGBAModel.Convert(img.At(0, 0))
	varied := false
	for y := 0; y < 48 && !varied; y++ {
		for x := 0; x < 64; x++ {
			if color.RGBAModel.Convert(img.At(x, y)) != corner {
				varied = true
				break
			}
		}
	}
	if !varied {
		t.Error("expected placeholder to contain more than the background color")
	}

	if _, err := Placeholder(0, 10); !errors.Is(err, ErrImageDecode) {
		t.Errorf("expected ErrImageDecode for empty placeholder, got %v", err)
	}
}
