// Package trail tracks the short-lived pointer trail.
//
// Each point rises to its peak radius, falls back to zero and is then evicted.
// A point's radius is a pure function of its age, so the tracker holds no
// animation state beyond birth times.
package trail

import (
	"github.com/pthm-cable/pixelfield/tween"
)

// Phase is the lifecycle stage of a trail point.
type Phase uint8

const (
	Rising Phase = iota
	Falling
	Removed
)

func (p Phase) String() string {
	switch p {
	case Rising:
		return "rising"
	case Falling:
		return "falling"
	default:
		return "removed"
	}
}

// Timing holds the radius envelope shared by all points.
type Timing struct {
	MaxRadius float64 // peak radius in canvas pixels
	Rise      float64 // seconds from 0 to peak
	Fall      float64 // seconds from peak back to 0
}

// Lifetime is the total time a point stays in the tracker.
func (tm Timing) Lifetime() float64 {
	return tm.Rise + tm.Fall
}

// Phase returns the stage a point of the given age is in.
func (tm Timing) Phase(age float64) Phase {
	switch {
	case age < tm.Rise:
		return Rising
	case age < tm.Lifetime():
		return Falling
	default:
		return Removed
	}
}

// Radius returns the radius of a point of the given age and peak.
func (tm Timing) Radius(age, peak float64) float64 {
	if age <= 0 {
		return 0
	}
	switch tm.Phase(age) {
	case Rising:
		return peak * tween.OutQuad(age/tm.Rise)
	case Falling:
		return peak * (1 - tween.OutQuad((age-tm.Rise)/tm.Fall))
	default:
		return 0
	}
}

// Point is one recorded pointer hit.
type Point struct {
	U, V float64
	Born float64
	Peak float64
}

// Sample is a point evaluated at a moment in time.
type Sample struct {
	U, V   float64
	Radius float64
	Phase  Phase
}

// Tracker holds active points oldest first.
type Tracker struct {
	timing Timing
	points []Point
	last   float64
}

// New creates an empty tracker.
func New(timing Timing) *Tracker {
	return &Tracker{timing: timing}
}

// Timing returns the current envelope.
func (t *Tracker) Timing() Timing {
	return t.timing
}

// SetMaxRadius changes the peak for points added from now on.
func (t *Tracker) SetMaxRadius(r float64) {
	if r < 0 {
		r = 0
	}
	t.timing.MaxRadius = r
}

// Add appends a point born at now. Birth times never go backwards, which
// keeps eviction strictly FIFO.
func (t *Tracker) Add(u, v, now float64) {
	if len(t.points) > 0 && now < t.last {
		now = t.last
	}
	t.last = now
	t.points = append(t.points, Point{U: u, V: v, Born: now, Peak: t.timing.MaxRadius})
}

// Advance evicts points whose fall has completed and returns how many were removed.
func (t *Tracker) Advance(now float64) int {
	life := t.timing.Lifetime()
	n := 0
	for n < len(t.points) && now-t.points[n].Born >= life {
		n++
	}
	if n == 0 {
		return 0
	}
	remaining := copy(t.points, t.points[n:])
	clear(t.points[remaining:])
	t.points = t.points[:remaining]
	return n
}

// Snapshot returns every live point evaluated at now, oldest first.
// It does not evict.
func (t *Tracker) Snapshot(now float64) []Sample {
	return t.AppendSnapshot(nil, now)
}

// AppendSnapshot is Snapshot appending to dst, for per-frame buffer reuse.
func (t *Tracker) AppendSnapshot(dst []Sample, now float64) []Sample {
	for _, p := range t.points {
		age := now - p.Born
		phase := t.timing.Phase(age)
		if phase == Removed {
			continue
		}
		dst = append(dst, Sample{
			U:      p.U,
			V:      p.V,
			Radius: t.timing.Radius(age, p.Peak),
			Phase:  phase,
		})
	}
	return dst
}

// Points returns a copy of the raw points, oldest first.
func (t *Tracker) Points() []Point {
	out := make([]Point, len(t.points))
	copy(out, t.points)
	return out
}

// Len returns the number of tracked points, including any not yet evicted.
func (t *Tracker) Len() int {
	return len(t.points)
}

// Reset drops every point.
func (t *Tracker) Reset() {
	t.points = t.points[:0]
	t.last = 0
}
