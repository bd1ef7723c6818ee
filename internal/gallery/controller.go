package gallery

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
	"go.uber.org/zap"

	"github.com/Faultbox/midgard-gallery/internal/engine/picking"
	"github.com/Faultbox/midgard-gallery/internal/engine/scene"
	"github.com/Faultbox/midgard-gallery/internal/logger"
	"github.com/Faultbox/midgard-gallery/pkg/math"
)

// HandlePointerMove records the pointer and, when it is over the grid,
// moves the tiles' mouse uniform to the hit point. A miss keeps the last
// hit. x and y are viewport coordinates; it reports whether the grid was hit.
func (g *Gallery) HandlePointerMove(x, y float32) bool {
	w, h := g.rc.Size()
	g.pointer = picking.PointerToNDC(x, y, float32(w), float32(h))

	cam := g.rc.Camera()
	ray := picking.FromCamera(g.pointer, cam.Position, cam.ViewProjection().Inverse())

	p, ok := ray.IntersectRect(g.hitTarget)
	if !ok {
		return false
	}
	*mustUniform[math.Vec3](g.mesh(MeshTiles), "uMouse") = p
	return true
}

// HandleWheel starts a transition to the next image (deltaY > 0) or the
// previous one (deltaY < 0), wrapping around. Input is dropped while a
// transition is running or when deltaY is zero. Reports whether a
// transition started.
func (g *Gallery) HandleWheel(deltaY float32) bool {
	if g.animating {
		logger.Debug("wheel ignored during transition", zap.Int("index", g.index))
		return false
	}
	if deltaY == 0 {
		return false
	}
	g.animating = true

	n := len(g.images)
	if deltaY > 0 {
		g.index = (g.index + 1) % n
	} else {
		g.index = (g.index - 1 + n) % n
	}

	screen := g.mesh(MeshScreen)
	next := mustUniform[scene.ImageUniform](screen, "uNextImage")
	next.Texture = g.images[g.index]
	CoverScaleInto(&next.UVScale, next.Texture.Ratio(), g.rc.Aspect())
	*mustUniform[float32](screen, "uSeed") = g.opts.Seed()
	*mustUniform[float32](screen, "uProgress") = 0

	g.tween = gween.New(0, 1, float32(g.opts.TransitionDuration.Seconds()), ease.OutQuad)

	logger.Debug("transition started",
		zap.Int("index", g.index),
		zap.Duration("duration", g.opts.TransitionDuration),
	)
	return true
}

// HandleResize refits the screen quad to the view and recomputes both
// cover scales in place for the new aspect.
func (g *Gallery) HandleResize() {
	screen := g.mesh(MeshScreen)
	w, h := g.fillSize(screen.Position.Z)
	screen.SetScale(w, h, 1)

	aspect := g.rc.Aspect()
	*mustUniform[float32](screen, "uAspect") = aspect

	current := mustUniform[scene.ImageUniform](screen, "uImage")
	CoverScaleInto(&current.UVScale, current.Texture.Ratio(), aspect)

	next := mustUniform[scene.ImageUniform](screen, "uNextImage")
	CoverScaleInto(&next.UVScale, next.Texture.Ratio(), aspect)

	logger.Debug("gallery resized",
		zap.Float32("aspect", aspect),
		zap.Float32("width", w),
		zap.Float32("height", h),
	)
}

// stepTransition advances the running tween. Reaching the end swaps the
// next image into the current slot and reopens wheel input.
func (g *Gallery) stepTransition(dt float32) {
	if g.tween == nil {
		return
	}

	screen := g.mesh(MeshScreen)
	progress := mustUniform[float32](screen, "uProgress")

	value, finished := g.tween.Update(dt)
	*progress = value
	if !finished {
		return
	}

	*progress = 0
	current := mustUniform[scene.ImageUniform](screen, "uImage")
	current.Texture = mustUniform[scene.ImageUniform](screen, "uNextImage").Texture
	CoverScaleInto(&current.UVScale, current.Texture.Ratio(), g.rc.Aspect())

	g.tween = nil
	g.animating = false
	logger.Debug("transition finished", zap.Int("index", g.index))
}
