// Package components defines ECS components for pixel-field instances.
package components

// PixelIndex is the linear index of an instance in row-major source order.
type PixelIndex struct {
	I uint32
}

// Tint is an instance's base color, each channel in [0,1].
type Tint struct {
	R, G, B float32
}

// ScaleSeed is the per-instance random scale factor in [0,1).
// Written once at build time and never mutated.
type ScaleSeed struct {
	Value float32
}
