package tween

import (
	"math"
	"testing"
)

func TestEaseEndpoints(t *testing.T) {
	eases := map[string]Ease{
		"linear":   Linear,
		"outQuad":  OutQuad,
		"outCubic": OutCubic,
	}
	for name, e := range eases {
		if e(0) != 0 {
			t.Errorf("%s(0) = %v, want 0", name, e(0))
		}
		if e(1) != 1 {
			t.Errorf("%s(1) = %v, want 1", name, e(1))
		}
		if e(-1) != 0 || e(2) != 1 {
			t.Errorf("%s should clamp out-of-range input, got %v and %v", name, e(-1), e(2))
		}
	}
}

func TestEaseOutIsMonotonicAndDecelerating(t *testing.T) {
	for _, e := range []Ease{OutQuad, OutCubic} {
		prev := 0.0
		prevStep := math.Inf(1)
		for i := 1; i <= 100; i++ {
			v := e(float64(i) / 100)
			if v < prev {
				t.Fatalf("ease decreased at step %d: %v < %v", i, v, prev)
			}
			step := v - prev
			if step > prevStep+1e-12 {
				t.Fatalf("ease accelerated at step %d", i)
			}
			prev, prevStep = v, step
		}
		// Ease-out runs ahead of linear at the midpoint
		if e(0.5) <= 0.5 {
			t.Errorf("expected ease-out above linear at 0.5, got %v", e(0.5))
		}
	}
}

func TestTweenValue(t *testing.T) {
	tw := New(40, 1, 2, 3, nil)

	cases := []struct {
		now  float64
		want float64
	}{
		{0, 40},  // before start
		{2, 40},  // at start
		{5, 1},   // at end
		{100, 1}, // long after
	}
	for _, tc := range cases {
		if got := tw.Value(tc.now); math.Abs(got-tc.want) > 1e-9 {
			t.Errorf("Value(%v) = %v, want %v", tc.now, got, tc.want)
		}
	}

	mid := tw.Value(3.5)
	if mid >= 40 || mid <= 1 {
		t.Errorf("expected midway value strictly between 1 and 40, got %v", mid)
	}
	if tw.Done(4.9) || !tw.Done(5) {
		t.Error("expected Done to flip exactly at the end")
	}
}

func TestTweenZeroDuration(t *testing.T) {
	tw := New(10, 2, 0, 0, Linear)
	if tw.Value(0) != 2 {
		t.Errorf("expected zero-duration tween to sit at To, got %v", tw.Value(0))
	}
	if !tw.Done(-1) {
		t.Error("expected zero-duration tween to be done immediately")
	}
}

func TestNamed(t *testing.T) {
	for _, name := range []string{"linear", "out_quad", "out_cubic"} {
		e, ok := Named(name)
		if !ok || e == nil {
			t.Fatalf("Named(%q) not found", name)
		}
		if e(0) != 0 || e(1) != 1 {
			t.Errorf("Named(%q) endpoints = %v, %v", name, e(0), e(1))
		}
	}

	lin, _ := Named("linear")
	if got := lin(0.25); got != 0.25 {
		t.Errorf("linear(0.25) = %v", got)
	}
	cubic, _ := Named("out_cubic")
	quad, _ := Named("out_quad")
	if cubic(0.25) <= quad(0.25) {
		t.Errorf("out_cubic(0.25)=%v should lead out_quad(0.25)=%v", cubic(0.25), quad(0.25))
	}

	if _, ok := Named("bounce"); ok {
		t.Error("unknown curve should not resolve")
	}
}

func TestTweenDone(t *testing.T) {
	tw := New(40, 1, 2, 3, Linear)
	if tw.Done(2) || tw.Done(4.9) {
		t.Error("tween should still run before its end")
	}
	if !tw.Done(5) || !tw.Done(100) {
		t.Error("tween should be done at and after its end")
	}
	if !New(1, 2, 0, 0, nil).Done(0) {
		t.Error("zero-duration tween should be done immediately")
	}
}
