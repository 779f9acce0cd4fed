// Package tween provides easing curves and time-sampled one-shot interpolations.
//
// A Tween holds no clock. Callers sample it with the current elapsed time,
// which keeps every animated value a pure function of time.
package tween

// Ease maps normalized progress in [0,1] to eased progress, with Ease(0)=0 and Ease(1)=1.
type Ease func(t float64) float64

// Linear is the identity curve.
func Linear(t float64) float64 {
	return clamp01(t)
}

// OutQuad decelerates toward the end.
func OutQuad(t float64) float64 {
	t = clamp01(t)
	return 1 - (1-t)*(1-t)
}

// OutCubic decelerates harder than OutQuad.
func OutCubic(t float64) float64 {
	t = clamp01(t)
	u := 1 - t
	return 1 - u*u*u
}

// Named returns the curve registered under name: "linear", "out_quad" or "out_cubic".
func Named(name string) (Ease, bool) {
	switch name {
	case "linear":
		return Linear, true
	case "out_quad":
		return OutQuad, true
	case "out_cubic":
		return OutCubic, true
	}
	return nil, false
}

// Lerp interpolates between a and b.
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// Tween interpolates From to To over Duration seconds starting at Start.
type Tween struct {
	From, To        float64
	Start, Duration float64
	Ease            Ease
}

// New creates a tween. A nil ease means OutQuad.
func New(from, to, start, duration float64, ease Ease) Tween {
	if ease == nil {
		ease = OutQuad
	}
	return Tween{From: from, To: to, Start: start, Duration: duration, Ease: ease}
}

// Progress returns normalized progress at now, clamped to [0,1].
func (tw Tween) Progress(now float64) float64 {
	if tw.Duration <= 0 {
		return 1
	}
	return clamp01((now - tw.Start) / tw.Duration)
}

// Value samples the tween at now. Before Start it holds From; after the end it holds To.
func (tw Tween) Value(now float64) float64 {
	ease := tw.Ease
	if ease == nil {
		ease = OutQuad
	}
	p := tw.Progress(now)
	if p >= 1 {
		return tw.To
	}
	return Lerp(tw.From, tw.To, ease(p))
}

// Done reports whether the tween has reached To.
func (tw Tween) Done(now float64) bool {
	return tw.Progress(now) >= 1
}

// clamp01 restricts t to [0,1].
func clamp01(t float64) float64 {
	if t < 0 {
		return 0
	}
	if t > 1 {
		return 1
	}
	return t
}
