package renderer

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/midgard-gallery/internal/engine/scene"
	"github.com/Faultbox/midgard-gallery/internal/engine/shader"
	"github.com/Faultbox/midgard-gallery/internal/logger"
	"github.com/Faultbox/midgard-gallery/pkg/math"
)

// Attribute locations shared by every program.
const (
	attrPosition = 0
	attrUV       = 1
	attrInstance = 2 // mat4, occupies 2..5
)

// gpuMesh holds the buffers of one uploaded mesh.
type gpuMesh struct {
	vao         uint32
	vbo         uint32
	uvVBO       uint32
	instanceVBO uint32
	count       int32
	instances   int32
}

func (g *gpuMesh) delete() {
	for _, b := range []*uint32{&g.vbo, &g.uvVBO, &g.instanceVBO} {
		if *b != 0 {
			gl.DeleteBuffers(1, b)
			*b = 0
		}
	}
	if g.vao != 0 {
		gl.DeleteVertexArrays(1, &g.vao)
		g.vao = 0
	}
}

// Render clears to the scene background and draws every visible mesh in
// insertion order.
func (c *Context) Render() {
	bg := c.scene.Background
	gl.ClearColor(bg.R, bg.G, bg.B, 1.0)
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)

	view := c.camera.ViewMatrix()
	proj := c.camera.ProjectionMatrix()
	root := c.scene.Matrix()

	for _, m := range c.scene.Meshes() {
		if !m.Visible || m.Geometry == nil || m.Geometry.VertexCount() == 0 {
			continue
		}
		if err := c.drawMesh(m, root, view, proj); err != nil {
			// Hide it so a broken shader does not log every frame.
			m.Visible = false
			logger.Error("mesh hidden after draw failure",
				zap.String("mesh", m.Name),
				zap.Stringer("kind", m.Kind),
				zap.Error(err),
			)
		}
	}
}

func (c *Context) drawMesh(m *scene.Mesh, root, view, proj math.Mat4) error {
	p, err := c.program(m.Material)
	if err != nil {
		return err
	}
	gm := c.gpuMesh(m)

	setCapability(gl.BLEND, m.Material.Transparent)
	if m.Material.Transparent {
		gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
	}
	setCapability(gl.DEPTH_TEST, m.Material.DepthTest)

	p.Use()
	model := root.Mul(m.Matrix())
	gl.UniformMatrix4fv(p.Uniform("uProjectionMatrix"), 1, false, proj.Ptr())
	gl.UniformMatrix4fv(p.Uniform("uViewMatrix"), 1, false, view.Ptr())
	gl.UniformMatrix4fv(p.Uniform("uModelMatrix"), 1, false, model.Ptr())

	if m.Material.Shader == nil {
		col := m.Material.Color
		gl.Uniform3f(p.Uniform("uColor"), col.R, col.G, col.B)
		gl.Uniform1f(p.Uniform("uOpacity"), m.Material.Opacity)
	}
	c.setUniforms(m, p)

	gl.BindVertexArray(gm.vao)
	switch m.Kind {
	case scene.KindTriangles:
		gl.DrawArrays(gl.TRIANGLES, 0, gm.count)
	case scene.KindInstanced:
		gl.DrawArraysInstanced(gl.TRIANGLES, 0, gm.count, gm.instances)
	case scene.KindPoints:
		gl.DrawArrays(gl.POINTS, 0, gm.count)
	case scene.KindLines:
		gl.DrawArrays(gl.LINES, 0, gm.count)
	default:
		gl.BindVertexArray(0)
		return fmt.Errorf("unsupported mesh kind %v", m.Kind)
	}
	gl.BindVertexArray(0)
	return nil
}

// program returns the compiled program of a material, compiling it on
// first use.
func (c *Context) program(mat *scene.Material) (*shader.Program, error) {
	if mat.Shader == nil {
		return c.basic, nil
	}
	if p, ok := c.programs[mat.Shader]; ok {
		return p, nil
	}
	p, err := shader.NewProgram(mat.Shader.Vertex, mat.Shader.Fragment)
	if err != nil {
		return nil, err
	}
	c.programs[mat.Shader] = p
	logger.Debug("shader program created", zap.Uint32("program", p.ID))
	return p, nil
}

// setUniforms uploads the current value of every material uniform.
// Image uniforms take consecutive texture units.
func (c *Context) setUniforms(m *scene.Mesh, p *shader.Program) {
	var unit int32
	for name, v := range m.Material.Uniforms {
		switch v := v.(type) {
		case *float32:
			gl.Uniform1f(p.Uniform(name), *v)
		case *math.Vec2:
			gl.Uniform2f(p.Uniform(name), v.X, v.Y)
		case *math.Vec3:
			gl.Uniform3f(p.Uniform(name), v.X, v.Y, v.Z)
		case *scene.ImageUniform:
			var id uint32
			if v.Texture != nil {
				id = v.Texture.ID
			}
			gl.ActiveTexture(gl.TEXTURE0 + uint32(unit))
			gl.BindTexture(gl.TEXTURE_2D, id)
			gl.Uniform1i(p.Uniform(name+".tex"), unit)
			gl.Uniform2f(p.Uniform(name+".uvScale"), v.UVScale.X, v.UVScale.Y)
			unit++
		default:
			key := m.Name + "." + name
			if !c.unknownUniforms[key] {
				c.unknownUniforms[key] = true
				logger.Warn("unsupported uniform type",
					zap.String("mesh", m.Name),
					zap.String("uniform", name),
					zap.String("type", fmt.Sprintf("%T", v)),
				)
			}
		}
	}
}

// gpuMesh returns the buffers of m, uploading its geometry and instance
// matrices on first use. Both are treated as static afterwards.
func (c *Context) gpuMesh(m *scene.Mesh) *gpuMesh {
	if gm, ok := c.meshes[m]; ok {
		return gm
	}

	g := m.Geometry
	gm := &gpuMesh{count: int32(g.VertexCount())}

	gl.GenVertexArrays(1, &gm.vao)
	gl.BindVertexArray(gm.vao)

	gl.GenBuffers(1, &gm.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, gm.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(g.Positions)*4, gl.Ptr(g.Positions), gl.STATIC_DRAW)
	gl.EnableVertexAttribArray(attrPosition)
	gl.VertexAttribPointer(attrPosition, 3, gl.FLOAT, false, 3*4, gl.PtrOffset(0))

	if len(g.UVs) > 0 {
		gl.GenBuffers(1, &gm.uvVBO)
		gl.BindBuffer(gl.ARRAY_BUFFER, gm.uvVBO)
		gl.BufferData(gl.ARRAY_BUFFER, len(g.UVs)*4, gl.Ptr(g.UVs), gl.STATIC_DRAW)
		gl.EnableVertexAttribArray(attrUV)
		gl.VertexAttribPointer(attrUV, 2, gl.FLOAT, false, 2*4, gl.PtrOffset(0))
	}

	if m.Kind == scene.KindInstanced && len(m.Instances) > 0 {
		gm.instances = int32(len(m.Instances))
		gl.GenBuffers(1, &gm.instanceVBO)
		gl.BindBuffer(gl.ARRAY_BUFFER, gm.instanceVBO)
		gl.BufferData(gl.ARRAY_BUFFER, len(m.Instances)*16*4, gl.Ptr(&m.Instances[0][0]), gl.STATIC_DRAW)

		// One vec4 column per attribute slot
		stride := int32(16 * 4)
		for col := uint32(0); col < 4; col++ {
			loc := attrInstance + col
			gl.EnableVertexAttribArray(loc)
			gl.VertexAttribPointer(loc, 4, gl.FLOAT, false, stride, gl.PtrOffset(int(col*4*4)))
			gl.VertexAttribDivisor(loc, 1)
		}
	}

	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	gl.BindVertexArray(0)

	c.meshes[m] = gm
	logger.Debug("mesh uploaded",
		zap.String("mesh", m.Name),
		zap.Stringer("kind", m.Kind),
		zap.Int32("vertices", gm.count),
		zap.Int32("instances", gm.instances),
	)
	return gm
}

func setCapability(capability uint32, on bool) {
	if on {
		gl.Enable(capability)
	} else {
		gl.Disable(capability)
	}
}
