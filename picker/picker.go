// Package picker maps viewport pointer positions to UV coordinates on a reference plane.
package picker

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/pixelfield/camera"
)

const epsilon = 1e-12

// UV is a normalized plane coordinate. U grows right, V grows up; both in [0,1] on a hit.
type UV struct {
	U, V float64
}

// Plane is a bounded rectangle in world space.
type Plane struct {
	Center r3.Vec
	// Right and Up are unit axes spanning the plane; their cross product is the normal.
	Right, Up     r3.Vec
	Width, Height float64
}

// NewPlane returns a w x h plane centered on the origin, facing +Z.
func NewPlane(w, h float64) Plane {
	return Plane{
		Right:  r3.Vec{X: 1},
		Up:     r3.Vec{Y: 1},
		Width:  w,
		Height: h,
	}
}

// Normal returns the plane's unit normal.
func (p Plane) Normal() r3.Vec {
	return r3.Cross(p.Right, p.Up)
}

// Intersect casts a ray against the plane. Hits behind the origin, on a
// parallel ray, or outside the rectangle report false.
func (p Plane) Intersect(origin, dir r3.Vec) (UV, bool) {
	if p.Width <= 0 || p.Height <= 0 {
		return UV{}, false
	}
	n := p.Normal()
	denom := r3.Dot(dir, n)
	if math.Abs(denom) < epsilon {
		return UV{}, false
	}
	t := r3.Dot(r3.Sub(p.Center, origin), n) / denom
	if t <= 0 {
		return UV{}, false
	}

	hit := r3.Add(origin, r3.Scale(t, dir))
	local := r3.Sub(hit, p.Center)
	uv := UV{
		U: r3.Dot(local, p.Right)/p.Width + 0.5,
		V: r3.Dot(local, p.Up)/p.Height + 0.5,
	}
	if uv.U < 0 || uv.U > 1 || uv.V < 0 || uv.V > 1 {
		return UV{}, false
	}
	return uv, true
}

// NDC converts viewport pixels to normalized device coordinates, +Y up.
func NDC(px, py, viewportW, viewportH float64) (x, y float64, ok bool) {
	if viewportW <= 0 || viewportH <= 0 {
		return 0, 0, false
	}
	x = (px/viewportW)*2 - 1
	y = -(py/viewportH)*2 + 1
	return x, y, true
}

// Ray returns the world-space ray through an NDC point for a perspective pose.
func Ray(pose camera.Pose, ndcX, ndcY float64) (origin, dir r3.Vec, ok bool) {
	fwd, right, up, ok := pose.Basis()
	if !ok {
		return r3.Vec{}, r3.Vec{}, false
	}

	tanHalf := math.Tan(pose.FovY * math.Pi / 360)
	aspect := pose.Aspect
	if aspect <= 0 {
		aspect = 1
	}

	dir = r3.Add(fwd, r3.Add(
		r3.Scale(ndcX*tanHalf*aspect, right),
		r3.Scale(ndcY*tanHalf, up),
	))
	return pose.Position, r3.Unit(dir), true
}

// Pick projects a pointer position through the camera onto the plane.
func Pick(px, py, viewportW, viewportH float64, pose camera.Pose, plane Plane) (UV, bool) {
	x, y, ok := NDC(px, py, viewportW, viewportH)
	if !ok {
		return UV{}, false
	}
	origin, dir, ok := Ray(pose, x, y)
	if !ok {
		return UV{}, false
	}
	return plane.Intersect(origin, dir)
}
