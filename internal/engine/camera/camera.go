// Package camera provides camera implementations for 3D rendering.
package camera

import (
	gomath "math"

	"github.com/Faultbox/midgard-gallery/pkg/math"
)

// Perspective is a perspective camera looking down its local -Z axis.
type Perspective struct {
	FOV    float32 // Vertical field of view, degrees
	Aspect float32 // Viewport width / height
	Near   float32
	Far    float32

	Position math.Vec3
}

// NewPerspective creates a camera at the origin with the given vertical
// field of view in degrees.
func NewPerspective(fov, aspect float32) *Perspective {
	return &Perspective{
		FOV:    fov,
		Aspect: aspect,
		Near:   0.01,
		Far:    100.0,
	}
}

// ViewMatrix returns the view matrix for this camera.
func (c *Perspective) ViewMatrix() math.Mat4 {
	forward := c.Position.Add(math.Vec3{Z: -1})
	up := math.Vec3{X: 0, Y: 1, Z: 0}
	return math.LookAt(c.Position, forward, up)
}

// ProjectionMatrix returns the projection matrix for the current aspect.
func (c *Perspective) ProjectionMatrix() math.Mat4 {
	return math.Perspective(c.fovRadians(), c.Aspect, c.Near, c.Far)
}

// ViewProjection returns projection * view.
func (c *Perspective) ViewProjection() math.Mat4 {
	return c.ProjectionMatrix().Mul(c.ViewMatrix())
}

// FrustumSize returns the width and height of the visible region on the
// plane at depth z (world space, in front of the camera).
func (c *Perspective) FrustumSize(z float32) (width, height float32) {
	theta := float64(c.fovRadians()) / 2
	height = 2 * (c.Position.Z - z) * float32(gomath.Tan(theta))
	return height * c.Aspect, height
}

func (c *Perspective) fovRadians() float32 {
	return c.FOV * gomath.Pi / 180
}
