package renderer

import (
	"fmt"

	gl "github.com/go-gl/gl/v4.1-core/gl"
	"github.com/richinsley/gosketch/logger"
	"github.com/richinsley/gosketch/scene"
	"go.uber.org/zap"
)

// Composer runs a chain of passes. Every pass but the last renders into a
// double-buffered target; the last renders to the output framebuffer.
type Composer struct {
	r      *Renderer
	passes []scene.Pass
	buffer *Buffer
}

func NewComposer(r *Renderer, passes ...scene.Pass) (*Composer, error) {
	if len(passes) == 0 {
		return nil, fmt.Errorf("composer needs at least one pass")
	}
	names := make([]string, len(passes))
	for i, p := range passes {
		names[i] = scene.PassName(p)
	}

	w, h := r.DrawingBufferSize()
	buffer, err := NewBuffer(max(w, 1), max(h, 1))
	if err != nil {
		return nil, fmt.Errorf("failed to create composer buffer: %w", err)
	}
	logger.Log.Debug("composer created", zap.Strings("passes", names))
	return &Composer{r: r, passes: passes, buffer: buffer}, nil
}

// SetSize resizes the intermediate buffers to the renderer's drawing buffer
// for a width x height output.
func (c *Composer) SetSize(width, height int) {
	w, h := scaleSize(width, height, c.r.pixelRatio)
	if w <= 0 || h <= 0 {
		return
	}
	c.buffer.Resize(w, h)
}

func (c *Composer) Render() error {
	w, h := c.buffer.Size()
	for i, p := range c.passes {
		last := i == len(c.passes)-1
		fbo := c.buffer.WriteFramebuffer()
		if last {
			fbo = c.r.outputFramebuffer()
			w, h = c.r.DrawingBufferSize()
		}

		var err error
		switch pass := p.(type) {
		case scene.ScenePass:
			err = c.r.drawScene(fbo, w, h, last, pass.Scene, eyeFromCamera(pass.Camera))
		case scene.ShaderPass:
			err = c.drawShaderPass(fbo, w, h, last, pass)
		default:
			err = fmt.Errorf("unsupported pass %T", p)
		}
		if err != nil {
			return fmt.Errorf("pass %s: %w", scene.PassName(p), err)
		}
		if !last {
			c.buffer.SwapBuffers()
		}
	}
	return nil
}

// drawShaderPass draws a full-screen quad with the pass material, sampling
// the previous pass through the pass's input uniform.
func (c *Composer) drawShaderPass(fbo uint32, width, height int, output bool, pass scene.ShaderPass) error {
	p, err := c.r.program(pass.Material)
	if err != nil {
		return err
	}

	gl.BindFramebuffer(gl.FRAMEBUFFER, fbo)
	gl.Viewport(0, 0, int32(width), int32(height))
	c.r.setOutputEncoding(output)
	gl.Disable(gl.DEPTH_TEST)
	gl.Disable(gl.CULL_FACE)

	gl.UseProgram(p.id)
	setter := &uniformSetter{program: p}
	setter.Texture2D(pass.Input, c.buffer.GetTextureID())
	if pass.Material.Uniforms != nil {
		pass.Material.Uniforms.Apply(setter)
	}

	gl.BindVertexArray(c.r.quadVAO)
	gl.DrawArrays(gl.TRIANGLES, 0, int32(len(quadVertices)/2))
	setter.unbind()

	gl.BindVertexArray(0)
	gl.UseProgram(0)
	gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
	return nil
}

func (c *Composer) Dispose() {
	for _, p := range c.passes {
		sp, ok := p.(scene.ShaderPass)
		if !ok {
			continue
		}
		if prog, ok := c.r.programs[sp.Material]; ok {
			prog.delete()
			delete(c.r.programs, sp.Material)
		}
	}
	if c.buffer != nil {
		c.buffer.Destroy()
		c.buffer = nil
	}
}
