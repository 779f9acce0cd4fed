package field

import (
	"errors"
	"image"
	"math/rand"
	"testing"

	"github.com/pthm-cable/pixelfield/components"
)

func TestBuildCountAndBijection(t *testing.T) {
	sizes := []struct{ w, h int }{
		{1, 1},
		{4, 4},
		{7, 3},
		{1, 9},
		{16, 1},
	}

	for _, sz := range sizes {
		f, err := Build(sz.w, sz.h, Options{Color: White, Rand: rand.New(rand.NewSource(1))})
		if err != nil {
			t.Fatalf("Build(%d,%d): %v", sz.w, sz.h, err)
		}
		if f.Count() != sz.w*sz.h {
			t.Errorf("Build(%d,%d): expected %d instances, got %d", sz.w, sz.h, sz.w*sz.h, f.Count())
		}

		seen := make(map[[2]int32]bool)
		n := 0
		f.Each(func(inst Instance) {
			n++
			if inst.X < 0 || int(inst.X) >= sz.w || inst.Y < 0 || int(inst.Y) >= sz.h {
				t.Errorf("offset (%d,%d) outside %dx%d", inst.X, inst.Y, sz.w, sz.h)
			}
			if inst.Z != 0 {
				t.Errorf("expected z=0, got %d", inst.Z)
			}
			key := [2]int32{inst.X, inst.Y}
			if seen[key] {
				t.Errorf("duplicate offset (%d,%d)", inst.X, inst.Y)
			}
			seen[key] = true
		})
		if n != sz.w*sz.h || len(seen) != sz.w*sz.h {
			t.Errorf("Build(%d,%d): iterated %d instances with %d unique offsets", sz.w, sz.h, n, len(seen))
		}
	}
}

func TestInstancesFollowIndexLayout(t *testing.T) {
	f, err := Build(5, 3, DefaultOptions())
	if err != nil {
		t.Fatal(err)
	}

	for i, inst := range f.Instances() {
		if int(inst.Index) != i {
			t.Fatalf("instance %d has index %d", i, inst.Index)
		}
		if int(inst.X) != i%5 || int(inst.Y) != i/5 {
			t.Errorf("instance %d: expected offset (%d,%d), got (%d,%d)", i, i%5, i/5, inst.X, inst.Y)
		}
	}
}

func TestBuildColorAndScale(t *testing.T) {
	red := components.Tint{R: 1}
	f, err := Build(8, 8, Options{Color: red, Rand: rand.New(rand.NewSource(7))})
	if err != nil {
		t.Fatal(err)
	}

	f.Each(func(inst Instance) {
		if inst.Color != red {
			t.Errorf("expected uniform color %+v, got %+v", red, inst.Color)
		}
		if inst.Scale < 0 || inst.Scale >= 1 {
			t.Errorf("scale seed %v outside [0,1)", inst.Scale)
		}
	})
	if f.Color() != red {
		t.Errorf("expected field color %+v, got %+v", red, f.Color())
	}
}

func TestBuildEmpty(t *testing.T) {
	cases := []struct{ w, h int }{{0, 0}, {0, 5}, {5, 0}, {-1, 3}}
	for _, tc := range cases {
		f, err := Build(tc.w, tc.h, DefaultOptions())
		if !errors.Is(err, ErrEmptyField) {
			t.Errorf("Build(%d,%d): expected ErrEmptyField, got %v", tc.w, tc.h, err)
		}
		if f != nil {
			t.Errorf("Build(%d,%d): expected nil field", tc.w, tc.h)
		}
	}
}

func TestFromImage(t *testing.T) {
	img := image.NewRGBA(image.Rect(10, 20, 14, 24)) // 4x4 with non-zero origin
	f, err := FromImage(img, DefaultOptions())
	if err != nil {
		t.Fatal(err)
	}
	if w, h := f.Size(); w != 4 || h != 4 {
		t.Errorf("expected 4x4 field, got %dx%d", w, h)
	}
	if f.Source() != img {
		t.Error("expected field to keep its source image")
	}

	u := f.Uniforms()
	if u.TextureSize != [2]float32{4, 4} {
		t.Errorf("expected texture size (4,4), got %v", u.TextureSize)
	}

	if _, err := FromImage(image.NewRGBA(image.Rect(0, 0, 0, 3)), DefaultOptions()); !errors.Is(err, ErrEmptyField) {
		t.Errorf("expected ErrEmptyField for zero-width image, got %v", err)
	}
	if _, err := FromImage(nil, DefaultOptions()); !errors.Is(err, ErrEmptyField) {
		t.Errorf("expected ErrEmptyField for nil image, got %v", err)
	}
}

func TestUniformSetters(t *testing.T) {
	f, err := Build(2, 2, DefaultOptions())
	if err != nil {
		t.Fatal(err)
	}
	if f.Uniforms().Randomness != 1 {
		t.Errorf("expected resting randomness 1, got %v", f.Uniforms().Randomness)
	}

	f.SetTime(2.5)
	f.SetRandomness(12)
	u := f.Uniforms()
	if u.Time != 2.5 || u.Randomness != 12 {
		t.Errorf("expected time 2.5 randomness 12, got %v %v", u.Time, u.Randomness)
	}
}

func TestEachVisitsIndexOrder(t *testing.T) {
	f, err := Build(6, 4, DefaultOptions())
	if err != nil {
		t.Fatal(err)
	}

	next := uint32(0)
	f.Each(func(inst Instance) {
		if inst.Index != next {
			t.Fatalf("Each visited index %d, want %d", inst.Index, next)
		}
		next++
	})
	if int(next) != f.Count() {
		t.Errorf("Each visited %d instances, want %d", next, f.Count())
	}
}
