// Package config provides configuration loading and access for the demo.
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/gogpu/gg"
	"gopkg.in/yaml.v3"

	"github.com/pthm-cable/pixelfield/tween"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// ErrInvalid is wrapped by every validation failure returned from Load.
var ErrInvalid = errors.New("invalid config")

// Config holds all demo configuration parameters.
type Config struct {
	Screen    ScreenConfig    `yaml:"screen"`
	Image     ImageConfig     `yaml:"image"`
	Field     FieldConfig     `yaml:"field"`
	Trail     TrailConfig     `yaml:"trail"`
	Picker    PickerConfig    `yaml:"picker"`
	Camera    CameraConfig    `yaml:"camera"`
	Telemetry TelemetryConfig `yaml:"telemetry"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// ScreenConfig holds window settings.
type ScreenConfig struct {
	Width     int    `yaml:"width"`
	Height    int    `yaml:"height"`
	TargetFPS int    `yaml:"target_fps"`
	Title     string `yaml:"title"`
}

// ImageConfig selects the source raster.
type ImageConfig struct {
	Path              string `yaml:"path"`               // Empty = generated placeholder
	PlaceholderWidth  int    `yaml:"placeholder_width"`  // Placeholder raster width in pixels
	PlaceholderHeight int    `yaml:"placeholder_height"` // Placeholder raster height in pixels
}

// FieldConfig holds particle field parameters.
type FieldConfig struct {
	Color              string  `yaml:"color"`               // Uniform base color, hex
	PointSize          float64 `yaml:"point_size"`          // Quad edge length in pixel units at scale 1
	RandomnessStart    float64 `yaml:"randomness_start"`    // Randomness coefficient when the field appears
	RandomnessEnd      float64 `yaml:"randomness_end"`      // Resting randomness coefficient
	RandomnessDuration float64 `yaml:"randomness_duration"` // Seconds for the start->end decay
	RandomnessEase     string  `yaml:"randomness_ease"`     // linear, out_quad or out_cubic
}

// TrailConfig holds mouse trail parameters.
type TrailConfig struct {
	MaxRadius  float64 `yaml:"max_radius"`  // Peak radius in canvas pixels
	Rise       float64 `yaml:"rise"`        // Seconds from 0 to peak
	Fall       float64 `yaml:"fall"`        // Seconds from peak back to 0
	InnerAlpha float64 `yaml:"inner_alpha"` // Gradient alpha inside radius/2
	Background string  `yaml:"background"`  // Canvas clear color, hex
	QueueSize  int     `yaml:"queue_size"`  // Pending pointer events kept between frames
}

// PickerConfig holds pointer picking parameters.
type PickerConfig struct {
	Policy string `yaml:"policy"` // "event" or "frame"
}

// CameraConfig holds perspective camera and orbit control parameters.
type CameraConfig struct {
	Fov         float64 `yaml:"fov"`          // Vertical field of view in degrees
	Near        float64 `yaml:"near"`         // Near plane as a fraction of the fitted distance
	Far         float64 `yaml:"far"`          // Far plane as a multiple of the fitted distance
	FitMargin   float64 `yaml:"fit_margin"`   // Distance multiplier so the image does not touch the viewport edge
	Damping     float64 `yaml:"damping"`      // Fraction of orbit velocity removed per 1/60 s
	RotateSpeed float64 `yaml:"rotate_speed"` // Radians per viewport height of drag
	ZoomSpeed   float64 `yaml:"zoom_speed"`   // Zoom factor per wheel notch
	MinPolar    float64 `yaml:"min_polar"`    // Lower pitch bound in degrees
	MaxPolar    float64 `yaml:"max_polar"`    // Upper pitch bound in degrees
}

// TelemetryConfig holds telemetry parameters.
type TelemetryConfig struct {
	PerfWindow  int     `yaml:"perf_window"`  // Frames per rolling window
	LogInterval float64 `yaml:"log_interval"` // Seconds between perf log lines (0 = never)
}

// PickPolicy selects when the pointer is re-picked.
type PickPolicy uint8

const (
	// PickOnEvent picks once per pointer move.
	PickOnEvent PickPolicy = iota
	// PickEveryFrame also picks once per frame at the last pointer position.
	PickEveryFrame
)

func (p PickPolicy) String() string {
	switch p {
	case PickOnEvent:
		return "event"
	case PickEveryFrame:
		return "frame"
	}
	return fmt.Sprintf("PickPolicy(%d)", uint8(p))
}

// ParsePickPolicy maps a config string to a PickPolicy.
func ParsePickPolicy(s string) (PickPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "event":
		return PickOnEvent, nil
	case "frame":
		return PickEveryFrame, nil
	}
	return PickOnEvent, fmt.Errorf("%w: unknown picker policy %q", ErrInvalid, s)
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	FieldColor      gg.RGBA    // Field.Color parsed
	TrailBackground gg.RGBA    // Trail.Background parsed, forced opaque
	Policy          PickPolicy // Picker.Policy parsed
	RandomnessEase  tween.Ease // Field.RandomnessEase resolved
}

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path, or uses embedded defaults if path is empty.
// Must be called before Cfg().
func Init(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// MustInit is like Init but panics on error.
func MustInit(path string) {
	if err := Init(path); err != nil {
		panic(fmt.Sprintf("config: failed to initialize: %v", err))
	}
}

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Default returns a fresh copy of the embedded defaults.
func Default() *Config {
	cfg, err := Load("")
	if err != nil {
		panic(fmt.Sprintf("config: embedded defaults: %v", err))
	}
	return cfg
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Unmarshal into same struct - only overwrites fields present in file
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	if err := cfg.computeDerived(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// validate rejects values the trail and camera math cannot work with.
func (c *Config) validate() error {
	switch {
	case c.Trail.Rise <= 0 || c.Trail.Fall <= 0:
		return fmt.Errorf("%w: trail phase durations must be positive (rise=%v fall=%v)", ErrInvalid, c.Trail.Rise, c.Trail.Fall)
	case c.Trail.MaxRadius < 0:
		return fmt.Errorf("%w: trail max_radius must not be negative", ErrInvalid)
	case c.Trail.InnerAlpha < 0 || c.Trail.InnerAlpha > 1:
		return fmt.Errorf("%w: trail inner_alpha must be in [0,1]", ErrInvalid)
	case c.Camera.Fov <= 0 || c.Camera.Fov >= 180:
		return fmt.Errorf("%w: camera fov must be in (0,180)", ErrInvalid)
	case c.Field.RandomnessDuration < 0:
		return fmt.Errorf("%w: field randomness_duration must not be negative", ErrInvalid)
	}
	return nil
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() error {
	policy, err := ParsePickPolicy(c.Picker.Policy)
	if err != nil {
		return err
	}
	c.Derived.Policy = policy

	if c.Field.RandomnessEase == "" {
		c.Field.RandomnessEase = "out_quad"
	}
	ease, ok := tween.Named(c.Field.RandomnessEase)
	if !ok {
		return fmt.Errorf("%w: unknown randomness ease %q", ErrInvalid, c.Field.RandomnessEase)
	}
	c.Derived.RandomnessEase = ease

	if c.Field.Color == "" {
		c.Field.Color = "#ffffff"
	}
	c.Derived.FieldColor = gg.Hex(c.Field.Color)

	if c.Trail.Background == "" {
		c.Trail.Background = "#000000"
	}
	bg := gg.Hex(c.Trail.Background)
	bg.A = 1
	c.Derived.TrailBackground = bg

	if c.Trail.QueueSize <= 0 {
		c.Trail.QueueSize = 256
	}
	if c.Telemetry.PerfWindow <= 0 {
		c.Telemetry.PerfWindow = 60
	}
	if c.Camera.FitMargin <= 0 {
		c.Camera.FitMargin = 1
	}
	return nil
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
