// Package camera provides a perspective orbit camera with damped controls.
package camera

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// Pose is a camera snapshot: everything needed to project or unproject a point.
type Pose struct {
	Position r3.Vec
	Target   r3.Vec
	Up       r3.Vec

	// Vertical field of view in degrees
	FovY float64

	// Viewport width / height
	Aspect float64

	Near, Far float64
}

// Forward returns the unit view direction.
func (p Pose) Forward() r3.Vec {
	return r3.Unit(r3.Sub(p.Target, p.Position))
}

// Basis returns the unit view direction and the screen right and up axes
// in world space. ok is false when the position sits on the target or the
// view direction is parallel to Up.
func (p Pose) Basis() (forward, right, up r3.Vec, ok bool) {
	if r3.Norm(r3.Sub(p.Target, p.Position)) < 1e-12 {
		return r3.Vec{}, r3.Vec{}, r3.Vec{}, false
	}
	forward = p.Forward()

	right = r3.Cross(forward, p.Up)
	if r3.Norm(right) < 1e-12 {
		return r3.Vec{}, r3.Vec{}, r3.Vec{}, false
	}
	right = r3.Unit(right)
	up = r3.Cross(right, forward)
	return forward, right, up, true
}

// Orbit controls a camera circling a target point.
// Drag input accumulates into a pending rotation that Update applies
// gradually, so motion eases out after the pointer stops.
type Orbit struct {
	// Target is the point the camera looks at
	Target r3.Vec

	// Distance from target
	Distance float64

	// Yaw around +Y and pitch above the XZ plane, radians.
	// Yaw=0, Pitch=0 puts the camera on +Z looking toward -Z.
	Yaw, Pitch float64

	// Vertical field of view in degrees
	FovY float64

	// Viewport dimensions (screen size)
	ViewportW, ViewportH float64

	// Clip planes
	Near, Far float64

	// Constraints
	MinDistance, MaxDistance float64
	MinPitch, MaxPitch       float64

	// Damping is the fraction of pending rotation withheld per 1/60 s. 0 = immediate.
	Damping float64

	// RotateSpeed is radians of rotation per viewport height of drag
	RotateSpeed float64

	pendingYaw, pendingPitch float64

	homeDistance float64
}

// New creates a camera on +Z at unit distance from the origin.
func New(viewportW, viewportH, fovY float64) *Orbit {
	return &Orbit{
		Distance:     1,
		FovY:         fovY,
		ViewportW:    viewportW,
		ViewportH:    viewportH,
		Near:         0.1,
		Far:          100,
		MinDistance:  0.01,
		MaxDistance:  math.Inf(1),
		MinPitch:     -math.Pi / 2 * 0.99,
		MaxPitch:     math.Pi / 2 * 0.99,
		RotateSpeed:  math.Pi,
		homeDistance: 1,
	}
}

// Aspect returns viewport width / height (1 for a degenerate viewport).
func (c *Orbit) Aspect() float64 {
	if c.ViewportW <= 0 || c.ViewportH <= 0 {
		return 1
	}
	return c.ViewportW / c.ViewportH
}

// Fit places the camera so a w x h rectangle centered on the target fills the
// viewport, scaled by margin. near and far are fractions/multiples of the
// fitted distance. The fitted distance becomes the Reset distance.
func (c *Orbit) Fit(w, h, margin, near, far float64) {
	halfFov := c.FovY * math.Pi / 360
	tanHalf := math.Tan(halfFov)

	// Distance needed in each axis
	dy := (h / 2) / tanHalf
	dx := (w / 2) / (tanHalf * c.Aspect())
	d := math.Max(dx, dy) * margin
	if d <= 0 {
		d = 1
	}

	c.Distance = d
	c.homeDistance = d
	c.MinDistance = d * 0.05
	c.MaxDistance = d * 10
	c.Near = d * near
	c.Far = d * far
}

// Position returns the camera position in world coordinates.
func (c *Orbit) Position() r3.Vec {
	cp := math.Cos(c.Pitch)
	dir := r3.Vec{
		X: cp * math.Sin(c.Yaw),
		Y: math.Sin(c.Pitch),
		Z: cp * math.Cos(c.Yaw),
	}
	return r3.Add(c.Target, r3.Scale(c.Distance, dir))
}

// Pose returns the current camera snapshot.
func (c *Orbit) Pose() Pose {
	return Pose{
		Position: c.Position(),
		Target:   c.Target,
		Up:       r3.Vec{Y: 1},
		FovY:     c.FovY,
		Aspect:   c.Aspect(),
		Near:     c.Near,
		Far:      c.Far,
	}
}

// Rotate queues a rotation for a pointer drag of (dx, dy) screen pixels.
// Dragging right orbits the camera to the left, dragging down tilts it up.
func (c *Orbit) Rotate(dx, dy float64) {
	if c.ViewportH <= 0 {
		return
	}
	c.pendingYaw -= dx / c.ViewportH * c.RotateSpeed
	c.pendingPitch += dy / c.ViewportH * c.RotateSpeed
}

// Update applies pending rotation for a frame of dt seconds.
func (c *Orbit) Update(dt float64) {
	if dt <= 0 {
		return
	}
	k := 1.0
	if c.Damping > 0 {
		k = 1 - math.Pow(1-clamp(c.Damping, 0, 1), dt*60)
	}

	stepYaw := c.pendingYaw * k
	stepPitch := c.pendingPitch * k
	c.pendingYaw -= stepYaw
	c.pendingPitch -= stepPitch

	c.Yaw += stepYaw
	c.Pitch = clamp(c.Pitch+stepPitch, c.MinPitch, c.MaxPitch)
}

// Settled reports whether no rotation is pending.
func (c *Orbit) Settled() bool {
	return math.Abs(c.pendingYaw) < 1e-6 && math.Abs(c.pendingPitch) < 1e-6
}

// ZoomBy divides the distance by factor, so factor > 1 moves closer.
func (c *Orbit) ZoomBy(factor float64) {
	if factor <= 0 {
		return
	}
	c.Distance = clamp(c.Distance/factor, c.MinDistance, c.MaxDistance)
}

// Resize updates viewport dimensions.
func (c *Orbit) Resize(viewportW, viewportH float64) {
	c.ViewportW = viewportW
	c.ViewportH = viewportH
}

// Reset returns the camera to the fitted front view.
func (c *Orbit) Reset() {
	c.Yaw = 0
	c.Pitch = 0
	c.Distance = c.homeDistance
	c.pendingYaw = 0
	c.pendingPitch = 0
}

// clamp restricts a value to a range.
func clamp(x, min, max float64) float64 {
	if x < min {
		return min
	}
	if x > max {
		return max
	}
	return x
}
