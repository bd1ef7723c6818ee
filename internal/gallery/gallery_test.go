package gallery

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Faultbox/midgard-gallery/internal/assets"
	"github.com/Faultbox/midgard-gallery/internal/engine/camera"
	"github.com/Faultbox/midgard-gallery/internal/engine/scene"
	"github.com/Faultbox/midgard-gallery/internal/engine/texture"
	"github.com/Faultbox/midgard-gallery/pkg/math"
)

// fakeContext records what the gallery registers and draws.
type fakeContext struct {
	scene  *scene.Scene
	camera *camera.Perspective
	width  int
	height int

	resize  func()
	wheel   func(float32)
	pointer func(x, y float32)
	frame   func(float32)

	renders  int
	disposed bool
}

func newFakeContext(width, height int) *fakeContext {
	return &fakeContext{
		scene:  scene.New(),
		camera: camera.NewPerspective(50, float32(width)/float32(height)),
		width:  width,
		height: height,
	}
}

func (f *fakeContext) Scene() *scene.Scene                    { return f.scene }
func (f *fakeContext) Camera() *camera.Perspective            { return f.camera }
func (f *fakeContext) Size() (int, int)                       { return f.width, f.height }
func (f *fakeContext) Aspect() float32                        { return f.camera.Aspect }
func (f *fakeContext) SetResizeCallback(fn func())            { f.resize = fn }
func (f *fakeContext) OnWheel(fn func(float32))               { f.wheel = fn }
func (f *fakeContext) OnPointerMove(fn func(x, y float32))    { f.pointer = fn }
func (f *fakeContext) RequestAnimationFrame(fn func(float32)) { f.frame = fn }
func (f *fakeContext) Render()                                { f.renders++ }
func (f *fakeContext) Dispose()                               { f.disposed = true }

func (f *fakeContext) resizeTo(width, height int) {
	f.width, f.height = width, height
	f.camera.Aspect = float32(width) / float32(height)
	f.resize()
}

// fakeLoader resolves assets to textures of fixed sizes without touching disk.
type fakeLoader struct {
	sizes map[string][2]int
	err   error
}

func (l *fakeLoader) Load(_ context.Context, a assets.Assets) error {
	if l.err != nil {
		return l.err
	}
	for i, key := range a.Keys() {
		size := l.sizes[key]
		a[key].Data = &texture.Texture{ID: uint32(i + 1), Width: size[0], Height: size[1]}
	}
	return nil
}

func fourImages() (assets.Assets, *fakeLoader) {
	a := assets.Assets{
		"image1": {Path: "resources/wlop1.jpg"},
		"image2": {Path: "resources/wlop2.jpg"},
		"image3": {Path: "resources/wlop3.jpg"},
		"image4": {Path: "resources/wlop4.jpg"},
	}
	l := &fakeLoader{sizes: map[string][2]int{
		"image1": {1920, 1080},
		"image2": {1080, 1920},
		"image3": {1000, 1000},
		"image4": {2400, 1000},
	}}
	return a, l
}

func testOptions() Options {
	opts := DefaultOptions()
	seed := float32(0)
	opts.Seed = func() float32 {
		seed += 0.25
		return seed
	}
	return opts
}

func newTestGallery(t *testing.T) (*Gallery, *fakeContext) {
	t.Helper()
	rc := newFakeContext(1600, 900)
	a, l := fourImages()
	g, err := New(context.Background(), rc, a, l, testOptions())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return g, rc
}

func screenUniforms(t *testing.T, rc *fakeContext) (current, next *scene.ImageUniform, progress *float32) {
	t.Helper()
	screen, ok := rc.scene.Mesh(MeshScreen)
	if !ok {
		t.Fatal("screen not registered")
	}
	return mustUniform[scene.ImageUniform](screen, "uImage"),
		mustUniform[scene.ImageUniform](screen, "uNextImage"),
		mustUniform[float32](screen, "uProgress")
}

// finish runs the frame loop past the transition duration.
func finish(rc *fakeContext) {
	for i := 0; i < 3; i++ {
		rc.frame(1)
	}
}

func TestNewComposesScene(t *testing.T) {
	g, rc := newTestGallery(t)

	for _, name := range []string{MeshScreen, MeshTiles, MeshDots} {
		if _, ok := rc.scene.Mesh(name); !ok {
			t.Errorf("mesh %q not registered", name)
		}
	}
	if n := len(rc.scene.Meshes()); n != 4 {
		t.Errorf("scene has %d meshes, want 4 (screen, tiles, dots, lines)", n)
	}

	tiles, _ := rc.scene.Mesh(MeshTiles)
	if got := *mustUniform[math.Vec3](tiles, "uMouse"); got != farAway {
		t.Errorf("uMouse = %v, want far-away sentinel %v", got, farAway)
	}
	if len(tiles.Instances) != 900 {
		t.Errorf("tiles have %d instances, want 900", len(tiles.Instances))
	}
	if tiles.Material.DepthTest || !tiles.Material.Transparent {
		t.Error("tiles should be transparent without depth test")
	}

	lines := rc.scene.Meshes()[3]
	if lines.Kind != scene.KindLines || lines.Name != "" || lines.Position.Z <= 0 {
		t.Errorf("lines mesh = %+v, want unnamed lines lifted off the screen", lines)
	}
	if lines.Material.Opacity != 0.15 {
		t.Errorf("lines opacity = %v, want 0.15", lines.Material.Opacity)
	}

	if rc.camera.Position.Z != 1 {
		t.Errorf("camera z = %v, want 1", rc.camera.Position.Z)
	}
	if rc.scene.Scale.X != 1.1 {
		t.Errorf("scene scale = %v, want 1.1", rc.scene.Scale)
	}
	if rc.frame == nil || rc.resize == nil || rc.wheel == nil || rc.pointer == nil {
		t.Error("handlers not registered")
	}

	current, next, progress := screenUniforms(t, rc)
	if current.Texture.ID != 1 || next.Texture.ID != 2 {
		t.Errorf("screen textures = %d, %d, want 1, 2", current.Texture.ID, next.Texture.ID)
	}
	if *progress != 0 || g.Animating() || g.Index() != 0 {
		t.Error("gallery should start idle at image 0")
	}
}

func TestScreenFillsView(t *testing.T) {
	_, rc := newTestGallery(t)

	screen, _ := rc.scene.Mesh(MeshScreen)
	w, h := rc.camera.FrustumSize(0)
	if !near(screen.Scale.X, w) || !near(screen.Scale.Y, h) {
		t.Errorf("screen scale = %v, want %v x %v", screen.Scale, w, h)
	}
}

func TestNewLoadFailure(t *testing.T) {
	rc := newFakeContext(800, 600)
	a, l := fourImages()
	l.err = errors.New("disk on fire")

	_, err := New(context.Background(), rc, a, l, testOptions())
	if err == nil {
		t.Fatal("expected error")
	}
	if !errors.Is(err, l.err) {
		t.Errorf("error %v does not wrap the loader error", err)
	}
	if len(rc.scene.Meshes()) != 0 || rc.frame != nil || rc.wheel != nil {
		t.Error("nothing should be composed or registered after a failed load")
	}
}

func TestNewRejectsBadInput(t *testing.T) {
	tests := []struct {
		name   string
		tiles  TileParams
		assets assets.Assets
		want   error
	}{
		{"zero amount", TileParams{Amount: 0, Size: 0.1}, nil, ErrInvalidTiles},
		{"negative size", TileParams{Amount: 3, Size: -1}, nil, ErrInvalidTiles},
		{"no images", TileParams{Amount: 3, Size: 0.1}, assets.Assets{"logo": {Path: "logo.png"}}, ErrNoImages},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := testOptions()
			opts.Tiles = tt.tiles
			a := tt.assets
			if a == nil {
				a, _ = fourImages()
			}
			_, err := New(context.Background(), newFakeContext(800, 600), a, &fakeLoader{}, opts)
			if !errors.Is(err, tt.want) {
				t.Errorf("New error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestWheelIndexWraps(t *testing.T) {
	tests := []struct {
		name  string
		delta float32
		want  []int
	}{
		{"forward", 100, []int{1, 2, 3, 0, 1}},
		{"backward", -100, []int{3, 2, 1, 0, 3}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, rc := newTestGallery(t)
			for i, want := range tt.want {
				rc.wheel(tt.delta)
				if g.Index() != want {
					t.Fatalf("step %d: index = %d, want %d", i, g.Index(), want)
				}
				finish(rc)
			}
		})
	}
}

func TestWheelStartsTransition(t *testing.T) {
	g, rc := newTestGallery(t)
	screen, _ := rc.scene.Mesh(MeshScreen)
	seedBefore := *mustUniform[float32](screen, "uSeed")

	if !g.HandleWheel(1) {
		t.Fatal("wheel should be accepted when idle")
	}

	_, next, _ := screenUniforms(t, rc)
	if next.Texture != g.images[1] {
		t.Errorf("next texture = %v, want image 1", next.Texture)
	}
	if want := CoverScale(g.images[1].Ratio(), rc.Aspect()); next.UVScale != want {
		t.Errorf("next uv scale = %v, want %v", next.UVScale, want)
	}
	if *mustUniform[float32](screen, "uSeed") == seedBefore {
		t.Error("seed should change for every transition")
	}
	if !g.Animating() {
		t.Error("gallery should be animating")
	}
}

func TestWheelIgnoresZeroDelta(t *testing.T) {
	g, _ := newTestGallery(t)
	if g.HandleWheel(0) || g.Animating() || g.Index() != 0 {
		t.Error("zero delta should be ignored")
	}
}

func TestWheelDroppedDuringTransition(t *testing.T) {
	g, rc := newTestGallery(t)
	screen, _ := rc.scene.Mesh(MeshScreen)

	rc.wheel(1)
	rc.frame(0.5)

	_, next, progress := screenUniforms(t, rc)
	if *progress <= 0 || *progress >= 1 {
		t.Fatalf("progress = %v, want mid-transition", *progress)
	}

	nextBefore := *next
	seedBefore := *mustUniform[float32](screen, "uSeed")
	tweenBefore := g.tween

	for _, delta := range []float32{1, -1, 5} {
		if g.HandleWheel(delta) {
			t.Errorf("wheel %v accepted during transition", delta)
		}
	}

	if g.Index() != 1 {
		t.Errorf("index = %d, want 1", g.Index())
	}
	if *next != nextBefore {
		t.Errorf("next image changed to %v", *next)
	}
	if *mustUniform[float32](screen, "uSeed") != seedBefore {
		t.Error("seed changed during transition")
	}
	if g.tween != tweenBefore {
		t.Error("a second tween was started")
	}
}

func TestTransitionLifecycle(t *testing.T) {
	g, rc := newTestGallery(t)
	current, _, progress := screenUniforms(t, rc)

	rc.wheel(1)

	// ease-out: progress rises monotonically towards 1
	last := float32(0)
	for i := 0; i < 19; i++ {
		rc.frame(0.1)
		if *progress < last || *progress >= 1 {
			t.Fatalf("frame %d: progress %v after %v", i, *progress, last)
		}
		last = *progress
	}
	if !g.Animating() {
		t.Fatal("transition finished early")
	}

	rc.frame(0.2)

	if g.Animating() {
		t.Fatal("transition should be finished after its duration")
	}
	if *progress != 0 {
		t.Errorf("progress = %v, want reset to 0", *progress)
	}
	if current.Texture != g.images[1] {
		t.Errorf("current texture = %v, want image 1", current.Texture)
	}
	if want := CoverScale(g.images[1].Ratio(), rc.Aspect()); current.UVScale != want {
		t.Errorf("current uv scale = %v, want %v", current.UVScale, want)
	}

	if !g.HandleWheel(1) {
		t.Error("wheel should be accepted again once idle")
	}
}

func TestTransitionDurationOption(t *testing.T) {
	rc := newFakeContext(800, 600)
	a, l := fourImages()
	opts := testOptions()
	opts.TransitionDuration = 500 * time.Millisecond

	g, err := New(context.Background(), rc, a, l, opts)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	g.HandleWheel(1)
	rc.frame(0.5)
	if g.Animating() {
		t.Error("transition should finish after 0.5s")
	}
}

func TestPointerMove(t *testing.T) {
	g, rc := newTestGallery(t)
	tiles, _ := rc.scene.Mesh(MeshTiles)
	mouse := mustUniform[math.Vec3](tiles, "uMouse")

	if !g.HandlePointerMove(800, 450) {
		t.Fatal("viewport centre should hit the grid")
	}
	if mouse.Length() > 1e-4 {
		t.Errorf("uMouse = %v, want origin", *mouse)
	}
	if p := g.Pointer(); p != (math.Vec2{}) {
		t.Errorf("pointer = %v, want (0, 0)", p)
	}

	rc.pointer(1200, 450)
	if mouse.X <= 0 || !near(mouse.Y, 0) || !near(mouse.Z, 0) {
		t.Errorf("uMouse = %v, want on +X axis in the z=0 plane", *mouse)
	}
}

func TestPointerMissKeepsLastHit(t *testing.T) {
	rc := newFakeContext(800, 600)
	a, l := fourImages()
	opts := testOptions()
	opts.Tiles = TileParams{Amount: 2, Size: 0.1}

	g, err := New(context.Background(), rc, a, l, opts)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	tiles, _ := rc.scene.Mesh(MeshTiles)
	mouse := mustUniform[math.Vec3](tiles, "uMouse")

	if g.HandlePointerMove(0, 0) {
		t.Fatal("corner should miss a small grid")
	}
	if *mouse != farAway {
		t.Errorf("uMouse = %v, want untouched sentinel", *mouse)
	}

	g.HandlePointerMove(400, 300)
	hit := *mouse

	g.HandlePointerMove(800, 600)
	if *mouse != hit {
		t.Errorf("miss moved uMouse from %v to %v", hit, *mouse)
	}
	if g.Pointer() != (math.Vec2{X: 1, Y: -1}) {
		t.Errorf("pointer = %v, want (1, -1) even on a miss", g.Pointer())
	}
}

func TestResize(t *testing.T) {
	g, rc := newTestGallery(t)
	g.HandleWheel(1)
	rc.frame(0.5)

	current, next, _ := screenUniforms(t, rc)
	currentTex, nextTex := current.Texture, next.Texture

	rc.resizeTo(600, 1200)

	screen, _ := rc.scene.Mesh(MeshScreen)
	if got := *mustUniform[float32](screen, "uAspect"); got != 0.5 {
		t.Errorf("uAspect = %v, want 0.5", got)
	}
	if current.Texture != currentTex || next.Texture != nextTex {
		t.Error("resize must not change texture handles")
	}
	if want := CoverScale(currentTex.Ratio(), 0.5); current.UVScale != want {
		t.Errorf("current uv scale = %v, want %v", current.UVScale, want)
	}
	if want := CoverScale(nextTex.Ratio(), 0.5); next.UVScale != want {
		t.Errorf("next uv scale = %v, want %v", next.UVScale, want)
	}

	w, h := rc.camera.FrustumSize(0)
	if !near(screen.Scale.X, w) || !near(screen.Scale.Y, h) {
		t.Errorf("screen scale = %v, want %v x %v", screen.Scale, w, h)
	}
}

func TestFrame(t *testing.T) {
	g, rc := newTestGallery(t)
	tiles, _ := rc.scene.Mesh(MeshTiles)
	dots, _ := rc.scene.Mesh(MeshDots)

	for i := 0; i < 4; i++ {
		rc.frame(0.25)
	}

	if got := *mustUniform[float32](tiles, "uTime"); !near(got, 1) {
		t.Errorf("tiles uTime = %v, want 1", got)
	}
	if got := *mustUniform[float32](dots, "uTime"); !near(got, 1) {
		t.Errorf("dots uTime = %v, want 1", got)
	}
	if rc.renders != 4 {
		t.Errorf("renders = %d, want 4", rc.renders)
	}

	// the scene turns its +Z axis towards the pointer
	g.HandlePointerMove(1600, 0)
	rc.frame(0)

	z := rc.scene.Rotation.TransformPoint([3]float32{0, 0, 1})
	want := math.Vec3{X: 1, Y: 1, Z: lookDepth}.Normalize()
	if !near(z[0], want.X) || !near(z[1], want.Y) || !near(z[2], want.Z) {
		t.Errorf("scene forward = %v, want %v", z, want)
	}
}

func TestDispose(t *testing.T) {
	g, rc := newTestGallery(t)
	g.HandleWheel(1)
	g.Dispose()

	if !rc.disposed {
		t.Error("render context not disposed")
	}
	if g.Animating() {
		t.Error("dispose should drop the transition")
	}
}
