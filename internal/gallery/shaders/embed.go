// Package shaders provides embedded GLSL shader sources for the gallery.
package shaders

import (
	_ "embed"

	"github.com/Faultbox/midgard-gallery/internal/engine/scene"
)

var (
	//go:embed screen.vert
	screenVert string
	//go:embed screen.frag
	screenFrag string

	//go:embed tile.vert
	tileVert string
	//go:embed tile.frag
	tileFrag string

	//go:embed dot.vert
	dotVert string
	//go:embed dot.frag
	dotFrag string
)

// Screen crossfades between two cover-scaled images with a seeded cell wipe.
var Screen = scene.ShaderSource{Vertex: screenVert, Fragment: screenFrag}

// Tile draws the instanced grid, lit up near uMouse.
var Tile = scene.ShaderSource{Vertex: tileVert, Fragment: tileFrag}

// Dot draws the pulsing grid corner points.
var Dot = scene.ShaderSource{Vertex: dotVert, Fragment: dotFrag}
