// Package math provides the vector and matrix types used by the scene,
// camera and picking code.
package math

// Vec2 is a 2D vector.
type Vec2 struct {
	X, Y float32
}

// Set overwrites both components in place.
func (v *Vec2) Set(x, y float32) {
	v.X = x
	v.Y = y
}
