package ui

import (
	"testing"

	"github.com/pthm-cable/pixelfield/demo"
)

// statText finds a text field in the stats panel and evaluates it.
func statText(t *testing.T, id string, s demo.Stats) string {
	t.Helper()
	for _, sec := range statsPanel().Sections {
		for _, f := range sec.Fields {
			if f.ID == id {
				if f.TextGetter == nil {
					t.Fatalf("field %q has no text getter", id)
				}
				return f.TextGetter(s)
			}
		}
	}
	t.Fatalf("no stats field %q", id)
	return ""
}

func TestStatsPanelStatus(t *testing.T) {
	cases := []struct {
		name  string
		stats demo.Stats
		want  string
	}{
		{"loading", demo.Stats{Loading: true}, "loading"},
		{"no image", demo.Stats{}, "no image"},
		{"settling", demo.Stats{Instances: 16, Settling: true}, "settling"},
		{"ready", demo.Stats{Instances: 16}, "ready"},
	}
	for _, tc := range cases {
		if got := statText(t, "loading", tc.stats); got != tc.want {
			t.Errorf("%s: status = %q, want %q", tc.name, got, tc.want)
		}
	}
}

func TestStatsPanelCameraAndQueue(t *testing.T) {
	if got := statText(t, "camera", demo.Stats{CameraMoving: true}); got != "orbiting" {
		t.Errorf("camera = %q, want orbiting", got)
	}
	if got := statText(t, "camera", demo.Stats{}); got != "still" {
		t.Errorf("camera = %q, want still", got)
	}
	if got := statText(t, "queued", demo.Stats{Pending: 3, QueueCap: 256}); got != "3/256" {
		t.Errorf("queued = %q, want 3/256", got)
	}
}
