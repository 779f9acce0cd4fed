// Package field builds the pixel field: one camera-facing quad instance per source pixel.
//
// Instances live as entities in an ECS world. The field is built once per
// loaded image and never resized; only its shared uniforms change per frame.
package field

import (
	"errors"
	"fmt"
	"image"
	"math"
	"math/rand"
	"time"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/pixelfield/components"
)

// ErrEmptyField is returned when the source has zero area.
var ErrEmptyField = errors.New("empty field")

// White is the default instance color.
var White = components.Tint{R: 1, G: 1, B: 1}

// Options controls field construction.
type Options struct {
	// Color is the uniform base color given to every instance.
	Color components.Tint
	// Rand draws the per-instance scale seeds. Nil uses a time-seeded source.
	Rand *rand.Rand
}

// DefaultOptions returns white instances with a time-seeded RNG.
func DefaultOptions() Options {
	return Options{Color: White}
}

// Instance is a flattened, read-only view of one field entity.
type Instance struct {
	X, Y, Z int32
	Index   uint32
	Color   components.Tint
	Scale   float32
}

// Uniforms is the state shared by every instance in the draw call.
type Uniforms struct {
	Time        float32
	Randomness  float32
	TextureSize [2]float32
}

// Field is the set of pixel instances plus their shared uniforms.
type Field struct {
	width, height int
	count         int
	color         components.Tint
	source        image.Image

	world  *ecs.World
	mapper *ecs.Map4[components.GridOffset, components.PixelIndex, components.Tint, components.ScaleSeed]
	filter *ecs.Filter4[components.GridOffset, components.PixelIndex, components.Tint, components.ScaleSeed]

	uniforms Uniforms
}

// Build creates a field of w*h instances. Instance i sits at (i mod w, i / w, 0).
func Build(w, h int, opts Options) (*Field, error) {
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("building %dx%d field: %w", w, h, ErrEmptyField)
	}
	count := w * h
	if uint64(count) > math.MaxUint32 {
		return nil, fmt.Errorf("building %dx%d field: too many instances", w, h)
	}

	rng := opts.Rand
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	world := ecs.NewWorld()
	f := &Field{
		width:  w,
		height: h,
		count:  count,
		color:  opts.Color,
		world:  world,
		mapper: ecs.NewMap4[components.GridOffset, components.PixelIndex, components.Tint, components.ScaleSeed](world),
		filter: ecs.NewFilter4[components.GridOffset, components.PixelIndex, components.Tint, components.ScaleSeed](world),
		uniforms: Uniforms{
			Randomness:  1,
			TextureSize: [2]float32{float32(w), float32(h)},
		},
	}

	for i := 0; i < count; i++ {
		offset := components.GridOffset{X: int32(i % w), Y: int32(i / w)}
		index := components.PixelIndex{I: uint32(i)}
		tint := opts.Color
		seed := components.ScaleSeed{Value: rng.Float32()}
		f.mapper.NewEntity(&offset, &index, &tint, &seed)
	}

	return f, nil
}

// FromImage builds a field sized to img and keeps img as the sampled texture source.
func FromImage(img image.Image, opts Options) (*Field, error) {
	if img == nil {
		return nil, fmt.Errorf("building field from nil image: %w", ErrEmptyField)
	}
	b := img.Bounds()
	f, err := Build(b.Dx(), b.Dy(), opts)
	if err != nil {
		return nil, err
	}
	f.source = img
	return f, nil
}

// Count returns the number of instances.
func (f *Field) Count() int {
	return f.count
}

// Size returns the source dimensions.
func (f *Field) Size() (w, h int) {
	return f.width, f.height
}

// Color returns the uniform base color the field was built with.
func (f *Field) Color() components.Tint {
	return f.color
}

// Source returns the image the field samples, or nil for synthetic builds.
func (f *Field) Source() image.Image {
	return f.source
}

// Each calls fn for every instance in linear index order.
func (f *Field) Each(fn func(Instance)) {
	for _, inst := range f.Instances() {
		fn(inst)
	}
}

// Instances returns all instances ordered by linear index.
func (f *Field) Instances() []Instance {
	out := make([]Instance, f.count)
	query := f.filter.Query()
	for query.Next() {
		offset, index, tint, seed := query.Get()
		out[index.I] = Instance{
			X:     offset.X,
			Y:     offset.Y,
			Z:     offset.Z,
			Index: index.I,
			Color: *tint,
			Scale: seed.Value,
		}
	}
	return out
}

// Uniforms returns the current shared uniform state.
func (f *Field) Uniforms() Uniforms {
	return f.uniforms
}

// SetTime sets the elapsed-time uniform in seconds.
func (f *Field) SetTime(t float64) {
	f.uniforms.Time = float32(t)
}

// SetRandomness sets the randomness coefficient uniform.
func (f *Field) SetRandomness(r float64) {
	f.uniforms.Randomness = float32(r)
}
