// Package scene provides a GPU-free scene graph: meshes with geometry and
// shader materials, a lookup registry by name, and a root transform that
// applies to everything in the scene.
package scene

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/Faultbox/midgard-gallery/pkg/math"
)

// Color is a linear RGB colour.
type Color struct {
	R, G, B float32
}

// ParseHexColor parses "#rgb" or "#rrggbb".
func ParseHexColor(s string) (Color, error) {
	hex := strings.TrimPrefix(s, "#")
	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	if len(hex) != 6 {
		return Color{}, fmt.Errorf("invalid color %q", s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return Color{}, fmt.Errorf("invalid color %q: %w", s, err)
	}
	return Color{
		R: float32(v>>16&0xff) / 255,
		G: float32(v>>8&0xff) / 255,
		B: float32(v&0xff) / 255,
	}, nil
}

// Scene is the root of everything drawn in a frame.
type Scene struct {
	Background Color

	// Root transform, applied on top of every mesh's own transform.
	Position math.Vec3
	Scale    math.Vec3
	Rotation math.Mat4

	meshes []*Mesh
	byName map[string]*Mesh
}

// New creates an empty scene with an identity root transform.
func New() *Scene {
	return &Scene{
		Scale:    math.Vec3{X: 1, Y: 1, Z: 1},
		Rotation: math.Identity(),
		byName:   make(map[string]*Mesh),
	}
}

// Add appends a mesh to the draw list. Named meshes become retrievable
// through Mesh; a later mesh with the same name replaces the lookup entry.
func (s *Scene) Add(m *Mesh) {
	s.meshes = append(s.meshes, m)
	if m.Name != "" {
		s.byName[m.Name] = m
	}
}

// Mesh returns the mesh registered under name.
func (s *Scene) Mesh(name string) (*Mesh, bool) {
	m, ok := s.byName[name]
	return m, ok
}

// Meshes returns all meshes in insertion (draw) order.
func (s *Scene) Meshes() []*Mesh {
	return s.meshes
}

// SetScale applies a uniform scale to the whole scene.
func (s *Scene) SetScale(v float32) {
	s.Scale = math.Vec3{X: v, Y: v, Z: v}
}

// LookAt rotates the scene so its +Z axis points at target.
func (s *Scene) LookAt(target math.Vec3) {
	s.Rotation = math.LookRotation(target.Sub(s.Position), math.Vec3{Y: 1})
}

// Matrix returns the root model matrix.
func (s *Scene) Matrix() math.Mat4 {
	return math.Compose(s.Position, s.Rotation, s.Scale)
}
