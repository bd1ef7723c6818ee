// Package renderer implements the gallery render context on OpenGL: it
// owns the window, camera and scene, uploads textures, draws the scene
// graph and drives the frame loop.
package renderer

import (
	"errors"
	"fmt"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/midgard-gallery/internal/engine/camera"
	"github.com/Faultbox/midgard-gallery/internal/engine/input"
	"github.com/Faultbox/midgard-gallery/internal/engine/scene"
	"github.com/Faultbox/midgard-gallery/internal/engine/screenshot"
	"github.com/Faultbox/midgard-gallery/internal/engine/shader"
	"github.com/Faultbox/midgard-gallery/internal/engine/texture"
	"github.com/Faultbox/midgard-gallery/internal/engine/window"
	"github.com/Faultbox/midgard-gallery/internal/logger"
)

// Config holds renderer configuration.
type Config struct {
	Window window.Config
	FOV    float32 // vertical, degrees

	// ScreenshotDir receives F12 captures.
	ScreenshotDir string
}

// Context is the render context: one window, one camera, one scene.
type Context struct {
	window *window.Window
	input  *input.Input
	shots  *screenshot.Capture
	camera *camera.Perspective
	scene  *scene.Scene

	basic    *shader.Program
	programs map[*scene.ShaderSource]*shader.Program
	meshes   map[*scene.Mesh]*gpuMesh
	textures []*texture.Texture

	// unknownUniforms remembers uniforms of unsupported type, so each is
	// reported once.
	unknownUniforms map[string]bool

	onResize  func()
	onWheel   func(deltaY float32)
	onPointer func(x, y float32)
	onFrame   func(dt float32)

	disposed bool
}

// New opens the window, initializes OpenGL and creates the camera and an
// empty scene.
func New(cfg Config) (*Context, error) {
	win, err := window.New(cfg.Window)
	if err != nil {
		return nil, err
	}

	// Initialize OpenGL
	if err := gl.Init(); err != nil {
		win.Close()
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}

	logger.Info("OpenGL initialized",
		zap.String("version", gl.GoStr(gl.GetString(gl.VERSION))),
		zap.String("renderer", gl.GoStr(gl.GetString(gl.RENDERER))),
	)

	c := &Context{
		window:          win,
		input:           input.New(),
		shots:           screenshot.New(cfg.ScreenshotDir, "gallery"),
		scene:           scene.New(),
		programs:        make(map[*scene.ShaderSource]*shader.Program),
		meshes:          make(map[*scene.Mesh]*gpuMesh),
		unknownUniforms: make(map[string]bool),
	}

	w, h := win.Size()
	c.camera = camera.NewPerspective(cfg.FOV, float32(w)/float32(h))

	c.basic, err = shader.NewProgram(basicVertexShader, basicFragmentShader)
	if err != nil {
		win.Close()
		return nil, fmt.Errorf("failed to create basic shader: %w", err)
	}

	gl.Enable(gl.PROGRAM_POINT_SIZE)
	gl.DepthFunc(gl.LEQUAL)
	c.setViewport()

	return c, nil
}

// Scene returns the scene graph root.
func (c *Context) Scene() *scene.Scene {
	return c.scene
}

// Camera returns the camera.
func (c *Context) Camera() *camera.Perspective {
	return c.camera
}

// Size returns the window size in points, matching pointer coordinates.
func (c *Context) Size() (width, height int) {
	return c.window.Size()
}

// Aspect returns the viewport width / height.
func (c *Context) Aspect() float32 {
	return c.camera.Aspect
}

// SetResizeCallback sets the function called after the viewport and camera
// have adapted to a new window size.
func (c *Context) SetResizeCallback(fn func()) {
	c.onResize = fn
}

// OnWheel sets the wheel listener. deltaY is positive when scrolling down.
func (c *Context) OnWheel(fn func(deltaY float32)) {
	c.onWheel = fn
}

// OnPointerMove sets the pointer listener, in window points.
func (c *Context) OnPointerMove(fn func(x, y float32)) {
	c.onPointer = fn
}

// RequestAnimationFrame sets the per-frame callback. Without one, Run
// renders the scene as is.
func (c *Context) RequestAnimationFrame(fn func(dt float32)) {
	c.onFrame = fn
}

// Upload copies the decoded pixels to a new GL texture and releases them.
func (c *Context) Upload(tex *texture.Texture) error {
	if tex.Pixels == nil {
		return errors.New("texture has no pixels")
	}
	img := tex.Pixels

	// GL expects the bottom row first
	texture.FlipVertical(img)

	var id uint32
	gl.GenTextures(1, &id)
	gl.BindTexture(gl.TEXTURE_2D, id)
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA, int32(img.Bounds().Dx()), int32(img.Bounds().Dy()), 0, gl.RGBA, gl.UNSIGNED_BYTE, unsafe.Pointer(&img.Pix[0]))
	gl.GenerateMipmap(gl.TEXTURE_2D)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR_MIPMAP_LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	gl.BindTexture(gl.TEXTURE_2D, 0)

	if e := gl.GetError(); e != gl.NO_ERROR {
		gl.DeleteTextures(1, &id)
		return fmt.Errorf("uploading texture: GL error 0x%x", e)
	}

	tex.ID = id
	tex.Pixels = nil
	c.textures = append(c.textures, tex)

	logger.Debug("texture uploaded",
		zap.Uint32("id", id),
		zap.Int("width", tex.Width),
		zap.Int("height", tex.Height),
	)
	return nil
}

// Dispose frees every GL resource and closes the window. It is safe to
// call more than once.
func (c *Context) Dispose() {
	if c.disposed {
		return
	}
	c.disposed = true
	logger.Info("closing renderer")

	for m, gm := range c.meshes {
		gm.delete()
		delete(c.meshes, m)
	}
	for src, p := range c.programs {
		p.Delete()
		delete(c.programs, src)
	}
	c.basic.Delete()
	for _, tex := range c.textures {
		gl.DeleteTextures(1, &tex.ID)
		tex.ID = 0
	}
	c.textures = nil

	c.window.Close()
}

// captureFrame saves the back buffer as a PNG.
func (c *Context) captureFrame() {
	w, h := c.window.DrawableSize()
	pixels := make([]byte, w*h*4)
	gl.PixelStorei(gl.PACK_ALIGNMENT, 1)
	gl.ReadPixels(0, 0, int32(w), int32(h), gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(pixels))

	path, err := c.shots.SaveBottomUp(pixels, w, h)
	if err != nil {
		logger.Warn("screenshot failed", zap.Error(err))
		return
	}
	logger.Info("screenshot saved", zap.String("path", path))
}

// setViewport matches the GL viewport to the drawable and the camera
// aspect to the window.
func (c *Context) setViewport() {
	dw, dh := c.window.DrawableSize()
	gl.Viewport(0, 0, int32(dw), int32(dh))

	w, h := c.window.Size()
	if h > 0 {
		c.camera.Aspect = float32(w) / float32(h)
	}
}
