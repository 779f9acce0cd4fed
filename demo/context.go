// Package demo wires the pixel field, pointer trail and camera into a
// frame-driven demo. A Context owns all mutable state; the host feeds it
// input and calls Frame once per display refresh.
package demo

import (
	"errors"
	"fmt"
	"log/slog"
	"math"
	"math/rand"
	"time"

	"github.com/pthm-cable/pixelfield/camera"
	"github.com/pthm-cable/pixelfield/canvas"
	"github.com/pthm-cable/pixelfield/config"
	"github.com/pthm-cable/pixelfield/events"
	"github.com/pthm-cable/pixelfield/field"
	"github.com/pthm-cable/pixelfield/picker"
	"github.com/pthm-cable/pixelfield/telemetry"
	"github.com/pthm-cable/pixelfield/trail"
	"github.com/pthm-cable/pixelfield/tween"
)

var (
	// ErrReentrantFrame is returned when Frame is called while a frame is running.
	ErrReentrantFrame = errors.New("frame already in progress")
	// ErrFieldLoaded is returned when a second image is offered.
	ErrFieldLoaded = errors.New("field already loaded")
)

// Options configures a Context.
type Options struct {
	Seed      int64  // RNG seed for instance scale seeds (0 = time-based)
	LogStats  bool   // Log trail and perf windows via slog
	OutputDir string // Directory for CSV output (empty = disabled)
}

// Context holds the demo state.
type Context struct {
	cfg      *config.Config
	renderer Renderer
	rng      *rand.Rand

	field      *field.Field
	canvas     *canvas.Canvas
	plane      picker.Plane
	randomness tween.Tween

	tracker    *trail.Tracker
	trailAlpha float64
	queue      *events.Queue
	camera     *camera.Orbit
	policy     config.PickPolicy

	pointer    events.PointerMove
	hasPointer bool

	// One single-slot channel per outstanding async load
	loads []chan loadResult

	perf          *telemetry.PerfCollector
	outputManager *telemetry.OutputManager
	logStats      bool
	window        telemetry.WindowStats
	lastFlush     float64

	frame   int64
	elapsed float64
	inFrame bool

	// Per-frame scratch
	moves   []events.PointerMove
	samples []trail.Sample
}

// New creates a Context for the viewport described by cfg.Screen.
func New(cfg *config.Config, r Renderer, opts Options) (*Context, error) {
	seed := opts.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	om, err := telemetry.NewOutputManager(opts.OutputDir)
	if err != nil {
		return nil, err
	}
	if err := om.WriteConfig(cfg); err != nil {
		om.Close()
		return nil, err
	}

	cam := camera.New(float64(cfg.Screen.Width), float64(cfg.Screen.Height), cfg.Camera.Fov)
	cam.Damping = cfg.Camera.Damping
	cam.RotateSpeed = cfg.Camera.RotateSpeed
	cam.MinPitch = cfg.Camera.MinPolar * math.Pi / 180
	cam.MaxPitch = cfg.Camera.MaxPolar * math.Pi / 180

	c := &Context{
		cfg:      cfg,
		renderer: r,
		rng:      rand.New(rand.NewSource(seed)),
		tracker: trail.New(trail.Timing{
			MaxRadius: cfg.Trail.MaxRadius,
			Rise:      cfg.Trail.Rise,
			Fall:      cfg.Trail.Fall,
		}),
		trailAlpha:    cfg.Trail.InnerAlpha,
		queue:         events.NewQueue(cfg.Trail.QueueSize),
		camera:        cam,
		policy:        cfg.Derived.Policy,
		perf:          telemetry.NewPerfCollector(cfg.Telemetry.PerfWindow),
		outputManager: om,
		logStats:      opts.LogStats,
	}
	r.Resize(cfg.Screen.Width, cfg.Screen.Height)
	return c, nil
}

// Close releases output files.
func (c *Context) Close() error {
	return c.outputManager.Close()
}

// PointerMoved queues a pointer position in viewport pixels.
func (c *Context) PointerMoved(x, y float64) {
	c.queue.Push(events.PointerMove{X: x, Y: y})
}

// Resize updates the viewport. The field and trail canvas keep the image size.
func (c *Context) Resize(w, h int) {
	if w <= 0 || h <= 0 {
		return
	}
	c.camera.Resize(float64(w), float64(h))
	c.renderer.Resize(w, h)
}

// Orbit queues a camera rotation for a drag of (dx, dy) pixels.
func (c *Context) Orbit(dx, dy float64) {
	c.camera.Rotate(dx, dy)
}

// Zoom moves the camera toward the target by factor (> 1 closer).
func (c *Context) Zoom(factor float64) {
	c.camera.ZoomBy(factor)
}

// ResetView returns the camera to the fitted front view.
func (c *Context) ResetView() {
	c.camera.Reset()
}

// SetTrailRadius changes the peak radius of points added from now on.
func (c *Context) SetTrailRadius(r float64) {
	c.tracker.SetMaxRadius(r)
}

// SetTrailAlpha changes the disc opacity inside half the radius.
// The loaded config is left untouched.
func (c *Context) SetTrailAlpha(a float64) {
	c.trailAlpha = math.Max(0, math.Min(1, a))
	if c.canvas != nil {
		c.canvas.SetInnerAlpha(c.trailAlpha)
	}
}

// TrailAlpha returns the current disc opacity inside half the radius.
func (c *Context) TrailAlpha() float64 {
	return c.trailAlpha
}

// SetPolicy selects when the pointer is picked.
func (c *Context) SetPolicy(p config.PickPolicy) {
	c.policy = p
}

// Policy returns the current picking policy.
func (c *Context) Policy() config.PickPolicy {
	return c.policy
}

// Field returns the active field, or nil before an image is adopted.
func (c *Context) Field() *field.Field {
	return c.field
}

// Canvas returns the trail canvas, or nil before an image is adopted.
func (c *Context) Canvas() *canvas.Canvas {
	return c.canvas
}

// Tracker returns the trail tracker.
func (c *Context) Tracker() *trail.Tracker {
	return c.tracker
}

// Camera returns the orbit camera.
func (c *Context) Camera() *camera.Orbit {
	return c.camera
}

// Stats is a snapshot of the demo for overlays.
type Stats struct {
	Frame        int64
	Elapsed      float64
	Instances    int
	TrailPoints  int
	Pending      int
	QueueCap     int
	Dropped      uint64
	Randomness   float64
	Settling     bool // Randomness still decaying toward its resting value
	CameraMoving bool // Orbit rotation still being damped out
	Policy       config.PickPolicy
	Loading      bool
	Perf         telemetry.PerfStats
}

// Stats returns current counters and the rolling perf window.
func (c *Context) Stats() Stats {
	s := Stats{
		Frame:        c.frame,
		Elapsed:      c.elapsed,
		TrailPoints:  c.tracker.Len(),
		Pending:      c.queue.Len(),
		QueueCap:     c.queue.Cap(),
		Dropped:      c.queue.Dropped(),
		CameraMoving: !c.camera.Settled(),
		Policy:       c.policy,
		Loading:      len(c.loads) > 0,
		Perf:         c.perf.Stats(),
	}
	if c.field != nil {
		s.Instances = c.field.Count()
		s.Randomness = float64(c.field.Uniforms().Randomness)
		s.Settling = !c.randomness.Done(c.elapsed)
	}
	return s
}

// flushTelemetry emits a stats window when the log interval has elapsed.
func (c *Context) flushTelemetry(now float64) {
	interval := c.cfg.Telemetry.LogInterval
	if interval <= 0 || now-c.lastFlush < interval {
		return
	}

	ws := c.window
	ws.WindowEnd = c.frame
	ws.Elapsed = now
	ws.Dropped = c.queue.Dropped()
	if ws.Picks > 0 {
		ws.HitRate = float64(ws.Hits) / float64(ws.Picks)
	}

	radii := make([]float64, 0, len(c.samples))
	for _, s := range c.samples {
		radii = append(radii, s.Radius)
		if s.Phase == trail.Rising {
			ws.Rising++
		} else {
			ws.Falling++
		}
	}
	ws.Points = len(c.samples)
	rs := telemetry.ComputeRadiusStats(radii)
	ws.RadiusMean, ws.RadiusStd, ws.RadiusP50, ws.RadiusP90 = rs.Mean, rs.Std, rs.P50, rs.P90

	if c.field != nil {
		ws.Instances = c.field.Count()
		ws.Randomness = float64(c.field.Uniforms().Randomness)
		ws.Generation = c.canvas.Generation()
	}

	perfStats := c.perf.Stats()
	if c.logStats {
		slog.Info("trail", "stats", ws)
		slog.Info("perf", "stats", perfStats)
	}
	if err := c.outputManager.WriteTrail(ws); err != nil {
		slog.Error("failed to write trail stats", "error", err)
	}
	if err := c.outputManager.WritePerf(perfStats, c.frame); err != nil {
		slog.Error("failed to write perf", "error", err)
	}

	c.window = telemetry.WindowStats{WindowStart: c.frame}
	c.lastFlush = now
}

// wrapRender annotates a renderer error with the frame index.
func wrapRender(frame int64, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("rendering frame %d: %w", frame, err)
}
