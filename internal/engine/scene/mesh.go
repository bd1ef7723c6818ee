package scene

import (
	"github.com/Faultbox/midgard-gallery/internal/engine/texture"
	"github.com/Faultbox/midgard-gallery/pkg/math"
)

// Kind selects how a mesh's geometry is drawn.
type Kind int

const (
	KindTriangles Kind = iota
	KindInstanced
	KindPoints
	KindLines
)

func (k Kind) String() string {
	switch k {
	case KindTriangles:
		return "triangles"
	case KindInstanced:
		return "instanced"
	case KindPoints:
		return "points"
	case KindLines:
		return "lines"
	}
	return "unknown"
}

// Geometry holds per-vertex data: xyz positions and optional uv pairs.
type Geometry struct {
	Positions []float32
	UVs       []float32
}

// VertexCount returns the number of vertices.
func (g *Geometry) VertexCount() int {
	return len(g.Positions) / 3
}

// NewPlane returns a width x height quad in the XY plane, centred on the
// origin and facing +Z, as two triangles.
func NewPlane(width, height float32) *Geometry {
	x, y := width/2, height/2
	return &Geometry{
		Positions: []float32{
			-x, -y, 0,
			x, -y, 0,
			x, y, 0,
			-x, -y, 0,
			x, y, 0,
			-x, y, 0,
		},
		UVs: []float32{
			0, 0,
			1, 0,
			1, 1,
			0, 0,
			1, 1,
			0, 1,
		},
	}
}

// NewPoints returns a geometry of loose points.
func NewPoints(points []math.Vec3) *Geometry {
	pos := make([]float32, 0, len(points)*3)
	for _, p := range points {
		pos = append(pos, p.X, p.Y, p.Z)
	}
	return &Geometry{Positions: pos}
}

// ShaderSource is a paired vertex/fragment program text.
type ShaderSource struct {
	Vertex   string
	Fragment string
}

// ImageUniform is a texture sampled with a centred uv scale.
// Shaders declare it as a struct with "tex" and "uvScale" members.
type ImageUniform struct {
	Texture *texture.Texture
	UVScale math.Vec2
}

// Uniforms maps shader uniform names to pointers into host state, so the
// renderer always uploads current values. Supported value types:
// *float32, *math.Vec2, *math.Vec3, *ImageUniform.
type Uniforms map[string]any

// Material describes how a mesh is shaded.
type Material struct {
	// Shader is nil for the renderer's built-in flat colour shader.
	Shader   *ShaderSource
	Uniforms Uniforms

	// Used by the built-in shader only.
	Color   Color
	Opacity float32

	Transparent bool
	DepthTest   bool
}

// NewShaderMaterial returns an opaque, depth-tested material.
func NewShaderMaterial(src *ShaderSource, uniforms Uniforms) *Material {
	return &Material{
		Shader:    src,
		Uniforms:  uniforms,
		Opacity:   1,
		DepthTest: true,
	}
}

// NewBasicMaterial returns a flat colour material for the built-in shader.
func NewBasicMaterial(c Color, opacity float32) *Material {
	return &Material{
		Color:       c,
		Opacity:     opacity,
		Transparent: opacity < 1,
		DepthTest:   true,
	}
}

// Mesh is one drawable object.
type Mesh struct {
	Name     string
	Kind     Kind
	Geometry *Geometry
	Material *Material

	Position math.Vec3
	Scale    math.Vec3

	// Instances holds one model matrix per copy for KindInstanced.
	Instances []math.Mat4

	// Visible meshes are drawn; hidden ones stay registered.
	Visible bool
}

// NewMesh creates a visible mesh with unit scale.
func NewMesh(name string, kind Kind, g *Geometry, m *Material) *Mesh {
	return &Mesh{
		Name:     name,
		Kind:     kind,
		Geometry: g,
		Material: m,
		Scale:    math.Vec3{X: 1, Y: 1, Z: 1},
		Visible:  true,
	}
}

// SetScale sets the mesh scale.
func (m *Mesh) SetScale(x, y, z float32) {
	m.Scale = math.Vec3{X: x, Y: y, Z: z}
}

// Matrix returns the mesh's local model matrix.
func (m *Mesh) Matrix() math.Mat4 {
	return math.Compose(m.Position, math.Identity(), m.Scale)
}
