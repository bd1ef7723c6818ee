package gallery

import (
	"github.com/Faultbox/midgard-gallery/internal/engine/picking"
	"github.com/Faultbox/midgard-gallery/internal/engine/scene"
	"github.com/Faultbox/midgard-gallery/internal/gallery/shaders"
	"github.com/Faultbox/midgard-gallery/pkg/math"
)

// Mesh names registered with the scene.
const (
	MeshScreen = "screen"
	MeshTiles  = "tiles"
	MeshDots   = "dots"
)

// ScreenUniforms feed the full-screen crossfade shader.
type ScreenUniforms struct {
	Image     scene.ImageUniform
	NextImage scene.ImageUniform
	Seed      float32
	Aspect    float32
	Progress  float32
}

func (u *ScreenUniforms) bind() scene.Uniforms {
	return scene.Uniforms{
		"uImage":     &u.Image,
		"uNextImage": &u.NextImage,
		"uSeed":      &u.Seed,
		"uAspect":    &u.Aspect,
		"uProgress":  &u.Progress,
	}
}

func (g *Gallery) init() {
	s := g.rc.Scene()
	s.Background = g.opts.Background
	s.SetScale(g.opts.SceneScale)
	g.rc.Camera().Position.Z = g.opts.CameraDistance
}

// fillSize is the size of the plane at depth z that exactly fills the view.
func (g *Gallery) fillSize(z float32) (width, height float32) {
	return g.rc.Camera().FrustumSize(z)
}

func (g *Gallery) createScreen() {
	aspect := g.rc.Aspect()
	current := g.images[0]
	next := g.images[1%len(g.images)]

	u := &ScreenUniforms{
		Image:     scene.ImageUniform{Texture: current, UVScale: CoverScale(current.Ratio(), aspect)},
		NextImage: scene.ImageUniform{Texture: next, UVScale: CoverScale(next.Ratio(), aspect)},
		Seed:      g.opts.Seed(),
		Aspect:    aspect,
	}

	mesh := scene.NewMesh(MeshScreen, scene.KindTriangles, scene.NewPlane(1, 1),
		scene.NewShaderMaterial(&shaders.Screen, u.bind()))

	w, h := g.fillSize(mesh.Position.Z)
	mesh.SetScale(w, h, 1)

	g.rc.Scene().Add(mesh)
}

func (g *Gallery) createTiles() {
	mouse := farAway
	var elapsed float32

	material := scene.NewShaderMaterial(&shaders.Tile, scene.Uniforms{
		"uMouse": &mouse,
		"uTime":  &elapsed,
	})
	material.Transparent = true
	material.DepthTest = false

	mesh := scene.NewMesh(MeshTiles, scene.KindInstanced, scene.NewPlane(1, 1), material)
	layout := TileLayout(g.opts.Tiles)
	mesh.Instances = make([]math.Mat4, len(layout))
	for i, p := range layout {
		mesh.Instances[i] = p.Matrix()
	}

	g.rc.Scene().Add(mesh)
}

func (g *Gallery) createDots() {
	var elapsed float32

	material := scene.NewShaderMaterial(&shaders.Dot, scene.Uniforms{
		"uTime": &elapsed,
	})
	material.Transparent = true

	mesh := scene.NewMesh(MeshDots, scene.KindPoints, scene.NewPoints(DotLayout(g.opts.Tiles)), material)
	g.rc.Scene().Add(mesh)
}

func (g *Gallery) createLines() {
	white := scene.Color{R: 1, G: 1, B: 1}
	mesh := scene.NewMesh("", scene.KindLines, scene.NewPoints(GridLines(g.opts.Tiles)),
		scene.NewBasicMaterial(white, g.opts.LineOpacity))
	mesh.Position.Z = surfaceDepth

	g.rc.Scene().Add(mesh)
}

// createHitTarget sets up the invisible pointer target. It stays out of the
// scene so the scene orientation never moves it.
func (g *Gallery) createHitTarget() {
	g.hitTarget = picking.NewSquare(g.opts.Tiles.Extent())
}
