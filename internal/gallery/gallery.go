// Package gallery composes the image gallery scene: a full-screen image
// that crossfades on scroll, overlaid with an instanced tile grid, a dot
// grid and grid lines that react to the pointer.
package gallery

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/tanema/gween"
	"go.uber.org/zap"

	"github.com/Faultbox/midgard-gallery/internal/assets"
	"github.com/Faultbox/midgard-gallery/internal/engine/camera"
	"github.com/Faultbox/midgard-gallery/internal/engine/picking"
	"github.com/Faultbox/midgard-gallery/internal/engine/scene"
	"github.com/Faultbox/midgard-gallery/internal/engine/texture"
	"github.com/Faultbox/midgard-gallery/internal/logger"
	"github.com/Faultbox/midgard-gallery/pkg/math"
)

var (
	// ErrNoImages is returned when the assets contain no image entries.
	ErrNoImages = errors.New("gallery: no images")

	// ErrInvalidTiles is returned for a non-positive tile amount or size.
	ErrInvalidTiles = errors.New("gallery: invalid tile parameters")
)

// Context is the render context the gallery draws into.
type Context interface {
	Scene() *scene.Scene
	Camera() *camera.Perspective

	// Size is the viewport size in the units pointer events use.
	Size() (width, height int)
	Aspect() float32

	SetResizeCallback(fn func())
	OnWheel(fn func(deltaY float32))
	OnPointerMove(fn func(x, y float32))

	// RequestAnimationFrame registers the per-frame callback; dt is in seconds.
	RequestAnimationFrame(fn func(dt float32))
	Render()
	Dispose()
}

// Loader resolves every asset to an uploaded texture.
type Loader interface {
	Load(ctx context.Context, a assets.Assets) error
}

// Options configures the scene.
type Options struct {
	Tiles              TileParams
	SceneScale         float32
	Background         scene.Color
	CameraDistance     float32
	TransitionDuration time.Duration
	LineOpacity        float32

	// Seed returns the random seed for each transition pattern.
	Seed func() float32
}

// DefaultOptions returns the stock gallery look.
func DefaultOptions() Options {
	return Options{
		Tiles:              TileParams{Amount: 30, Size: 0.1},
		SceneScale:         1.1,
		CameraDistance:     1,
		TransitionDuration: 2 * time.Second,
		LineOpacity:        0.15,
		Seed:               rand.Float32,
	}
}

// farAway is the initial pointer position, so no tile starts highlighted.
var farAway = math.Vec3{X: 99999, Y: 99999}

// Gallery owns the composed scene and reacts to input.
type Gallery struct {
	rc     Context
	opts   Options
	images []*texture.Texture

	index     int
	pointer   math.Vec2
	hitTarget picking.Rect

	// animating gates wheel input; tween drives uProgress while it is set.
	animating bool
	tween     *gween.Tween
}

// New loads the assets, composes the scene and registers the input,
// resize and frame handlers. Nothing is registered if loading fails.
func New(ctx context.Context, rc Context, a assets.Assets, l Loader, opts Options) (*Gallery, error) {
	if opts.Tiles.Amount <= 0 || opts.Tiles.Size <= 0 {
		return nil, fmt.Errorf("%w: amount=%d size=%g", ErrInvalidTiles, opts.Tiles.Amount, opts.Tiles.Size)
	}
	if opts.Seed == nil {
		opts.Seed = rand.Float32
	}

	if err := l.Load(ctx, a); err != nil {
		return nil, fmt.Errorf("loading assets: %w", err)
	}

	g := &Gallery{
		rc:     rc,
		opts:   opts,
		images: a.Images(),
	}
	if len(g.images) == 0 {
		return nil, ErrNoImages
	}

	g.init()
	g.createScreen()
	g.createTiles()
	g.createDots()
	g.createLines()
	g.createHitTarget()
	g.addEvents()
	rc.RequestAnimationFrame(g.Frame)

	logger.Info("gallery composed",
		zap.Int("images", len(g.images)),
		zap.Int("tiles", opts.Tiles.Amount*opts.Tiles.Amount),
		zap.Float32("aspect", rc.Aspect()),
	)
	return g, nil
}

// Index returns the current image index.
func (g *Gallery) Index() int {
	return g.index
}

// Animating reports whether a transition is in flight.
func (g *Gallery) Animating() bool {
	return g.animating
}

// Pointer returns the last pointer position in normalized device coordinates.
func (g *Gallery) Pointer() math.Vec2 {
	return g.pointer
}

// Dispose tears down the render context. An in-flight transition is dropped.
func (g *Gallery) Dispose() {
	g.tween = nil
	g.animating = false
	g.rc.Dispose()
}

func (g *Gallery) addEvents() {
	g.rc.SetResizeCallback(g.HandleResize)
	g.rc.OnWheel(func(deltaY float32) { g.HandleWheel(deltaY) })
	g.rc.OnPointerMove(func(x, y float32) { g.HandlePointerMove(x, y) })
}

// mesh returns a registered mesh. The gallery registers all names it looks
// up, so a miss is a programming error.
func (g *Gallery) mesh(name string) *scene.Mesh {
	m, ok := g.rc.Scene().Mesh(name)
	if !ok {
		panic(fmt.Sprintf("gallery: mesh %q not registered", name))
	}
	return m
}

// mustUniform returns the typed uniform value of m.
func mustUniform[T any](m *scene.Mesh, name string) *T {
	v, ok := m.Material.Uniforms[name].(*T)
	if !ok {
		panic(fmt.Sprintf("gallery: mesh %q uniform %q is not %T", m.Name, name, v))
	}
	return v
}
