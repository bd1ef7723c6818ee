// Package picking provides ray casting against flat hit targets.
package picking

import (
	gomath "math"

	"github.com/Faultbox/midgard-gallery/pkg/math"
)

// Ray represents a ray in 3D space with origin and direction.
type Ray struct {
	Origin    math.Vec3
	Direction math.Vec3 // Normalized direction
}

// PointerToNDC converts pixel coordinates inside a viewport to normalized
// device coordinates, Y pointing up.
func PointerToNDC(x, y, viewportW, viewportH float32) math.Vec2 {
	return math.Vec2{
		X: x/viewportW*2 - 1,
		Y: -(y/viewportH)*2 + 1,
	}
}

// FromCamera builds a ray starting at the camera position and passing
// through the given NDC point.
// invViewProj is the inverse of the camera's view-projection matrix.
func FromCamera(ndc math.Vec2, origin math.Vec3, invViewProj math.Mat4) Ray {
	p := invViewProj.TransformPoint([3]float32{ndc.X, ndc.Y, 0.5})
	through := math.Vec3{X: p[0], Y: p[1], Z: p[2]}
	return Ray{Origin: origin, Direction: through.Sub(origin).Normalize()}
}

// At returns the point at distance t along the ray.
func (r Ray) At(t float32) math.Vec3 {
	return r.Origin.Add(r.Direction.Scale(t))
}

// Rect is a one-sided rectangle lying in a plane of constant Z, facing +Z.
type Rect struct {
	Center        math.Vec3
	Width, Height float32
}

// NewSquare returns a square of the given side centred on the origin.
func NewSquare(side float32) Rect {
	return Rect{Width: side, Height: side}
}

// IntersectRect intersects the ray with the front face of rect.
// Returns the world-space hit point and whether the ray hit.
func (r Ray) IntersectRect(rect Rect) (math.Vec3, bool) {
	t, ok := r.intersectPlaneZ(rect.Center.Z)
	if !ok {
		return math.Vec3{}, false
	}

	p := r.At(t)
	if gomath.Abs(float64(p.X-rect.Center.X)) > float64(rect.Width/2) ||
		gomath.Abs(float64(p.Y-rect.Center.Y)) > float64(rect.Height/2) {
		return math.Vec3{}, false
	}
	return p, true
}

// intersectPlaneZ intersects the ray with the plane Z = planeZ, front face only.
func (r Ray) intersectPlaneZ(planeZ float32) (t float32, ok bool) {
	// back-facing or parallel
	if r.Direction.Z >= -0.000001 {
		return 0, false
	}

	t = (planeZ - r.Origin.Z) / r.Direction.Z
	if t < 0 {
		return 0, false // Intersection behind ray origin
	}
	return t, true
}
