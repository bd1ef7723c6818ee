package gallery

import "github.com/Faultbox/midgard-gallery/pkg/math"

// lookDepth is how far in front of the scene the pointer target sits.
const lookDepth = 20

// Frame advances the scene by dt seconds and renders it. All uniform
// updates happen before the render call.
func (g *Gallery) Frame(dt float32) {
	*mustUniform[float32](g.mesh(MeshTiles), "uTime") += dt
	*mustUniform[float32](g.mesh(MeshDots), "uTime") += dt

	g.stepTransition(dt)

	g.rc.Scene().LookAt(math.Vec3{X: g.pointer.X, Y: g.pointer.Y, Z: lookDepth})
	g.rc.Render()
}
