package config

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("loading defaults: %v", err)
	}

	if cfg.Trail.MaxRadius != 15 {
		t.Errorf("expected max_radius 15, got %v", cfg.Trail.MaxRadius)
	}
	if cfg.Trail.Rise != 1 || cfg.Trail.Fall != 1 {
		t.Errorf("expected rise/fall 1/1, got %v/%v", cfg.Trail.Rise, cfg.Trail.Fall)
	}
	if cfg.Derived.Policy != PickOnEvent {
		t.Errorf("expected event policy by default, got %v", cfg.Derived.Policy)
	}

	c := cfg.Derived.FieldColor
	if math.Abs(c.R-1) > 0.001 || math.Abs(c.G-1) > 0.001 || math.Abs(c.B-1) > 0.001 {
		t.Errorf("expected white field color, got %+v", c)
	}
	if cfg.Derived.TrailBackground.A != 1 {
		t.Errorf("expected opaque trail background, got alpha %v", cfg.Derived.TrailBackground.A)
	}
}

func TestLoadOverlay(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	overlay := []byte("trail:\n  max_radius: 30\npicker:\n  policy: frame\n")
	if err := os.WriteFile(path, overlay, 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("loading overlay: %v", err)
	}
	if cfg.Trail.MaxRadius != 30 {
		t.Errorf("expected overridden max_radius 30, got %v", cfg.Trail.MaxRadius)
	}
	// Fields absent from the overlay keep their defaults
	if cfg.Trail.Rise != 1 {
		t.Errorf("expected default rise 1, got %v", cfg.Trail.Rise)
	}
	if cfg.Derived.Policy != PickEveryFrame {
		t.Errorf("expected frame policy, got %v", cfg.Derived.Policy)
	}
}

func TestRandomnessEase(t *testing.T) {
	cfg := Default()
	if cfg.Field.RandomnessEase != "out_quad" || cfg.Derived.RandomnessEase == nil {
		t.Fatalf("expected out_quad default, got %q", cfg.Field.RandomnessEase)
	}

	path := filepath.Join(t.TempDir(), "ease.yaml")
	if err := os.WriteFile(path, []byte("field:\n  randomness_ease: linear\n"), 0644); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got := cfg.Derived.RandomnessEase(0.25); got != 0.25 {
		t.Errorf("linear ease(0.25) = %v, want 0.25", got)
	}
}

func TestLoadRejectsInvalid(t *testing.T) {
	cases := []struct {
		name string
		yaml string
	}{
		{"zero rise", "trail:\n  rise: 0\n"},
		{"negative fall", "trail:\n  fall: -1\n"},
		{"negative radius", "trail:\n  max_radius: -5\n"},
		{"alpha above one", "trail:\n  inner_alpha: 1.5\n"},
		{"bad fov", "camera:\n  fov: 0\n"},
		{"unknown policy", "picker:\n  policy: sometimes\n"},
		{"unknown ease", "field:\n  randomness_ease: bounce\n"},
	}

	dir := t.TempDir()
	for i, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			path := filepath.Join(dir, "c"+string(rune('a'+i))+".yaml")
			if err := os.WriteFile(path, []byte(tc.yaml), 0644); err != nil {
				t.Fatal(err)
			}
			_, err := Load(path)
			if !errors.Is(err, ErrInvalid) {
				t.Errorf("expected ErrInvalid, got %v", err)
			}
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing config file")
	}
}

func TestWriteYAMLRoundtrip(t *testing.T) {
	cfg := Default()
	cfg.Trail.MaxRadius = 22

	path := filepath.Join(t.TempDir(), "out.yaml")
	if err := cfg.WriteYAML(path); err != nil {
		t.Fatalf("writing yaml: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("reloading yaml: %v", err)
	}
	if loaded.Trail.MaxRadius != 22 {
		t.Errorf("expected max_radius 22 after roundtrip, got %v", loaded.Trail.MaxRadius)
	}
}

func TestParsePickPolicy(t *testing.T) {
	cases := []struct {
		in   string
		want PickPolicy
	}{
		{"", PickOnEvent},
		{"event", PickOnEvent},
		{"FRAME", PickEveryFrame},
		{" frame ", PickEveryFrame},
	}
	for _, tc := range cases {
		got, err := ParsePickPolicy(tc.in)
		if err != nil {
			t.Errorf("ParsePickPolicy(%q): unexpected error %v", tc.in, err)
			continue
		}
		if got != tc.want {
			t.Errorf("ParsePickPolicy(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestCfgPanicsBeforeInit(t *testing.T) {
	saved := global
	global = nil
	defer func() {
		global = saved
		if recover() == nil {
			t.Error("expected panic from Cfg before Init")
		}
	}()
	Cfg()
}
