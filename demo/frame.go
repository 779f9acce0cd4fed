package demo

import (
	"github.com/pthm-cable/pixelfield/config"
	"github.com/pthm-cable/pixelfield/events"
	"github.com/pthm-cable/pixelfield/picker"
	"github.com/pthm-cable/pixelfield/telemetry"
)

// Frame advances the demo to elapsed seconds since start and renders.
// Elapsed never runs backwards; an earlier value is treated as no time passing.
func (c *Context) Frame(elapsed float64) error {
	if c.inFrame {
		return ErrReentrantFrame
	}
	c.inFrame = true
	defer func() { c.inFrame = false }()

	if elapsed < c.elapsed {
		elapsed = c.elapsed
	}
	delta := elapsed - c.elapsed
	c.elapsed = elapsed

	c.perf.StartFrame()

	c.perf.StartPhase(telemetry.PhaseLoad)
	c.adoptPending()

	c.perf.StartPhase(telemetry.PhaseCamera)
	c.camera.Update(delta)

	c.perf.StartPhase(telemetry.PhaseInput)
	c.drainPointer(elapsed)

	c.perf.StartPhase(telemetry.PhaseTrail)
	c.tracker.Advance(elapsed)

	fr := Frame{
		Index:          c.frame,
		Elapsed:        elapsed,
		Delta:          delta,
		Camera:         c.camera.Pose(),
		ViewportWidth:  int(c.camera.ViewportW),
		ViewportHeight: int(c.camera.ViewportH),
		PointSize:      c.cfg.Field.PointSize,
	}

	if c.field != nil {
		c.perf.StartPhase(telemetry.PhaseRasterize)
		c.samples = c.tracker.AppendSnapshot(c.samples[:0], elapsed)
		c.canvas.Draw(c.samples)

		c.perf.StartPhase(telemetry.PhaseUniforms)
		c.field.SetTime(elapsed)
		c.field.SetRandomness(c.randomness.Value(elapsed))

		fr.Field = c.field
		fr.Uniforms = c.field.Uniforms()
		fr.Trail = c.canvas.Texture()
	}

	c.perf.StartPhase(telemetry.PhaseRender)
	err := c.renderer.Render(fr)
	c.perf.EndFrame()

	c.frame++
	c.flushTelemetry(elapsed)

	return wrapRender(fr.Index, err)
}

// drainPointer turns queued pointer moves into trail points.
func (c *Context) drainPointer(now float64) {
	c.moves = c.queue.Drain(c.moves[:0])
	for _, m := range c.moves {
		c.pointer = m
		c.hasPointer = true
		c.window.PointerMoves++
		c.pick(m, now)
	}

	if c.policy == config.PickEveryFrame && c.hasPointer {
		c.pick(c.pointer, now)
	}
}

// pick casts the pointer onto the image plane and records a hit.
func (c *Context) pick(m events.PointerMove, now float64) {
	if c.field == nil {
		return
	}
	c.window.Picks++
	uv, ok := picker.Pick(m.X, m.Y, c.camera.ViewportW, c.camera.ViewportH, c.camera.Pose(), c.plane)
	if !ok {
		return
	}
	c.window.Hits++
	c.tracker.Add(uv.U, uv.V, now)
}
