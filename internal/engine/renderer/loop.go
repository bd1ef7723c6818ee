package renderer

import (
	"context"
	"time"

	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"

	"github.com/Faultbox/midgard-gallery/internal/engine/input"
	"github.com/Faultbox/midgard-gallery/internal/logger"
)

// Run drives the frame loop until the window is closed, Escape is pressed
// or ctx is done. Each frame dispatches input to the registered listeners,
// then calls the frame callback with the elapsed seconds. F12 saves the
// frame as a screenshot.
func (c *Context) Run(ctx context.Context) error {
	last := time.Now()
	fpsStart, frames := last, 0

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if c.input.Update() {
			logger.Info("window closed")
			return nil
		}
		if c.input.IsKeyPressed(sdl.SCANCODE_ESCAPE) {
			logger.Info("escape pressed")
			return nil
		}
		for _, e := range c.input.Events() {
			c.dispatch(e)
		}
		capture := c.input.IsKeyPressed(sdl.SCANCODE_F12)

		now := time.Now()
		dt := float32(now.Sub(last).Seconds())
		last = now

		if c.onFrame != nil {
			c.onFrame(dt)
		} else {
			c.Render()
		}
		if capture {
			c.captureFrame()
		}
		c.window.SwapBuffers()

		frames++
		if elapsed := now.Sub(fpsStart); elapsed >= time.Second {
			logger.Debug("fps", zap.Float64("fps", float64(frames)/elapsed.Seconds()))
			fpsStart, frames = now, 0
		}
	}
}

func (c *Context) dispatch(e input.Event) {
	switch e.Type {
	case input.EventWindowResize:
		c.setViewport()
		if c.onResize != nil {
			c.onResize()
		}
	case input.EventMouseMove:
		if c.onPointer != nil {
			c.onPointer(float32(e.MouseX), float32(e.MouseY))
		}
	case input.EventWheel:
		if c.onWheel != nil {
			c.onWheel(e.WheelY)
		}
	}
}
