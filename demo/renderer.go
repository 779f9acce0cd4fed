package demo

import (
	"github.com/pthm-cable/pixelfield/camera"
	"github.com/pthm-cable/pixelfield/canvas"
	"github.com/pthm-cable/pixelfield/field"
)

// Frame is everything a renderer needs to draw one frame.
type Frame struct {
	Index   int64
	Elapsed float64
	Delta   float64

	Camera         camera.Pose
	ViewportWidth  int
	ViewportHeight int

	// Field is nil until an image has been adopted; the renderer then draws
	// only the background.
	Field     *field.Field
	Uniforms  field.Uniforms
	Trail     canvas.Texture
	PointSize float64
}

// Renderer draws frames. Load is called once per field, before any frame
// that carries it.
type Renderer interface {
	Load(f *field.Field) error
	Render(fr Frame) error
	Resize(w, h int)
}

// Recorder is a Renderer that keeps what it was given. Used by headless
// runs and tests.
type Recorder struct {
	Loaded   []*field.Field
	Frames   int
	Last     Frame
	TrailPix []uint8 // copy of the last frame's trail pixels
	Width    int
	Height   int

	// Err, when set, is returned from Render.
	Err error
	// OnRender runs inside Render, after the frame is recorded.
	OnRender func(fr Frame)
}

// Load records the field.
func (r *Recorder) Load(f *field.Field) error {
	r.Loaded = append(r.Loaded, f)
	return nil
}

// Render records the frame.
func (r *Recorder) Render(fr Frame) error {
	r.Frames++
	r.Last = fr
	r.TrailPix = append(r.TrailPix[:0], fr.Trail.Pix...)
	if r.OnRender != nil {
		r.OnRender(fr)
	}
	return r.Err
}

// Resize records the viewport size.
func (r *Recorder) Resize(w, h int) {
	r.Width = w
	r.Height = h
}
