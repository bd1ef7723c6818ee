package picking

import (
	gomath "math"
	"testing"

	"github.com/Faultbox/midgard-gallery/internal/engine/camera"
	"github.com/Faultbox/midgard-gallery/pkg/math"
)

func newCamera() *camera.Perspective {
	c := camera.NewPerspective(50, 1)
	c.Position.Z = 1
	return c
}

func TestPointerToNDC(t *testing.T) {
	tests := []struct {
		x, y float32
		want math.Vec2
	}{
		{0, 0, math.Vec2{X: -1, Y: 1}},
		{800, 600, math.Vec2{X: 1, Y: -1}},
		{400, 300, math.Vec2{X: 0, Y: 0}},
	}
	for _, tt := range tests {
		if got := PointerToNDC(tt.x, tt.y, 800, 600); got != tt.want {
			t.Errorf("PointerToNDC(%v, %v) = %v, want %v", tt.x, tt.y, got, tt.want)
		}
	}
}

func TestCenterRayHitsOrigin(t *testing.T) {
	c := newCamera()
	ray := FromCamera(math.Vec2{}, c.Position, c.ViewProjection().Inverse())

	p, ok := ray.IntersectRect(NewSquare(3))
	if !ok {
		t.Fatal("expected a hit through the viewport centre")
	}
	if p.Length() > 1e-4 {
		t.Errorf("hit point = %v, want origin", p)
	}
}

func TestEdgeRayHitsFrustumEdge(t *testing.T) {
	c := newCamera()
	ray := FromCamera(math.Vec2{X: 1, Y: 0}, c.Position, c.ViewProjection().Inverse())

	w, _ := c.FrustumSize(0)
	p, ok := ray.IntersectRect(NewSquare(10))
	if !ok {
		t.Fatal("expected a hit")
	}
	if gomath.Abs(float64(p.X-w/2)) > 1e-3 {
		t.Errorf("hit x = %f, want %f", p.X, w/2)
	}
}

func TestMissOutsideRect(t *testing.T) {
	c := newCamera()
	ray := FromCamera(math.Vec2{X: 1, Y: 1}, c.Position, c.ViewProjection().Inverse())

	if _, ok := ray.IntersectRect(NewSquare(0.1)); ok {
		t.Error("expected corner ray to miss a small square")
	}
}

func TestMissBackFace(t *testing.T) {
	ray := Ray{Origin: math.Vec3{Z: -1}, Direction: math.Vec3{Z: 1}}
	if _, ok := ray.IntersectRect(NewSquare(3)); ok {
		t.Error("expected back-facing ray to miss")
	}
}
