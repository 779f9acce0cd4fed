package components

// GridOffset is an instance's integer grid position in source pixels.
// Z is always zero; it is kept so the offset maps directly onto a vec3 attribute.
type GridOffset struct {
	X, Y, Z int32
}
