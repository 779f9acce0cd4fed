package telemetry

import (
	"log/slog"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// WindowStats summarizes trail activity over a logging window.
type WindowStats struct {
	WindowStart int64   `csv:"-"`
	WindowEnd   int64   `csv:"frame"`
	Elapsed     float64 `csv:"elapsed"`

	// Input during the window
	PointerMoves int     `csv:"pointer_moves"`
	Picks        int     `csv:"picks"`
	Hits         int     `csv:"hits"`
	Dropped      uint64  `csv:"dropped"`
	HitRate      float64 `csv:"hit_rate"`

	// Trail state at window end
	Points     int     `csv:"points"`
	Rising     int     `csv:"rising"`
	Falling    int     `csv:"falling"`
	RadiusMean float64 `csv:"radius_mean"`
	RadiusStd  float64 `csv:"radius_std"`
	RadiusP50  float64 `csv:"radius_p50"`
	RadiusP90  float64 `csv:"radius_p90"`

	// Field state at window end
	Instances  int     `csv:"instances"`
	Randomness float64 `csv:"randomness"`
	Generation uint64  `csv:"canvas_generation"`
}

// RadiusStats holds the distribution of live trail radii.
type RadiusStats struct {
	Mean, Std, P50, P90 float64
}

// ComputeRadiusStats summarizes radii. values is not modified.
func ComputeRadiusStats(values []float64) RadiusStats {
	n := len(values)
	if n == 0 {
		return RadiusStats{}
	}

	sorted := make([]float64, n)
	copy(sorted, values)
	sort.Float64s(sorted)

	rs := RadiusStats{
		Mean: stat.Mean(sorted, nil),
		P50:  stat.Quantile(0.5, stat.Empirical, sorted, nil),
		P90:  stat.Quantile(0.9, stat.Empirical, sorted, nil),
	}
	if n > 1 {
		rs.Std = stat.StdDev(sorted, nil)
	}
	return rs
}

// LogValue implements slog.LogValuer for structured logging.
func (s WindowStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int64("window_start", s.WindowStart),
		slog.Int64("window_end", s.WindowEnd),
		slog.Float64("elapsed", s.Elapsed),
		slog.Int("pointer_moves", s.PointerMoves),
		slog.Int("picks", s.Picks),
		slog.Int("hits", s.Hits),
		slog.Uint64("dropped", s.Dropped),
		slog.Float64("hit_rate", s.HitRate),
		slog.Int("points", s.Points),
		slog.Int("rising", s.Rising),
		slog.Int("falling", s.Falling),
		slog.Float64("radius_mean", s.RadiusMean),
		slog.Float64("radius_p90", s.RadiusP90),
		slog.Int("instances", s.Instances),
		slog.Float64("randomness", s.Randomness),
		slog.Uint64("canvas_generation", s.Generation),
	)
}
