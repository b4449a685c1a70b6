package renderer

import (
	"math"

	gl "github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/richinsley/gosketch/graphics"
	"github.com/richinsley/gosketch/scene"
)

// eye is the view a scene is drawn from.
type eye struct {
	projection mgl32.Mat4
	view       mgl32.Mat4
	position   mgl32.Vec3
}

func eyeFromCamera(cam *scene.PerspectiveCamera) eye {
	return eye{
		projection: cam.ProjectionMatrix(),
		view:       cam.ViewMatrix(),
		position:   cam.Position,
	}
}

// drawScene clears fbo and draws every visible mesh of s. output selects
// sRGB encoding when the output color space asks for it.
func (r *Renderer) drawScene(fbo uint32, width, height int, output bool, s *scene.Scene, e eye) error {
	gl.BindFramebuffer(gl.FRAMEBUFFER, fbo)
	gl.Viewport(0, 0, int32(width), int32(height))
	r.setOutputEncoding(output)

	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LEQUAL)
	gl.DepthMask(true)
	gl.ClearColor(r.clear[0], r.clear[1], r.clear[2], r.clear[3])
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)

	for _, m := range s.Meshes() {
		if !m.Visible {
			continue
		}
		if err := r.drawMesh(m, e); err != nil {
			gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
			return err
		}
	}

	gl.BindVertexArray(0)
	gl.UseProgram(0)
	gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
	return nil
}

func (r *Renderer) drawMesh(m *scene.Mesh, e eye) error {
	p, err := r.program(m.Material)
	if err != nil {
		return err
	}
	g := r.geometry(m.Geometry)

	model := m.ModelMatrix()
	modelView := e.view.Mul4(model)

	gl.UseProgram(p.id)
	p.setMat4("projectionMatrix", e.projection)
	p.setMat4("viewMatrix", e.view)
	p.setMat4("modelMatrix", model)
	p.setMat4("modelViewMatrix", modelView)
	p.setVec3("cameraPosition", e.position)

	setter := &uniformSetter{program: p}
	if m.Material.Uniforms != nil {
		m.Material.Uniforms.Apply(setter)
	}

	setCulling(m.Material.Side)
	gl.BindVertexArray(g.vao)
	gl.DrawElements(gl.TRIANGLES, g.count, gl.UNSIGNED_INT, nil)
	setter.unbind()
	return nil
}

func setCulling(side scene.Side) {
	switch side {
	case scene.DoubleSide:
		gl.Disable(gl.CULL_FACE)
	case scene.BackSide:
		gl.Enable(gl.CULL_FACE)
		gl.CullFace(gl.FRONT)
	default:
		gl.Enable(gl.CULL_FACE)
		gl.CullFace(gl.BACK)
	}
}

// setOutputEncoding enables linear to sRGB conversion on writes to the
// output framebuffer. Intermediate targets stay linear.
func (r *Renderer) setOutputEncoding(output bool) {
	if output && r.colorSpace == graphics.SRGBColorSpace {
		gl.Enable(gl.FRAMEBUFFER_SRGB)
	} else {
		gl.Disable(gl.FRAMEBUFFER_SRGB)
	}
}

// uniformSetter writes a material's uniforms into the bound program. Each
// sampler takes the next free texture unit.
type uniformSetter struct {
	program *program
	units   []uint32
}

func (u *uniformSetter) Float(name string, v float32) {
	if loc := u.program.location(name); loc != -1 {
		gl.Uniform1f(loc, v)
	}
}

func (u *uniformSetter) Vec2(name string, v mgl32.Vec2) {
	if loc := u.program.location(name); loc != -1 {
		gl.Uniform2f(loc, v[0], v[1])
	}
}

func (u *uniformSetter) Vec4(name string, v mgl32.Vec4) {
	if loc := u.program.location(name); loc != -1 {
		gl.Uniform4f(loc, v[0], v[1], v[2], v[3])
	}
}

func (u *uniformSetter) Cube(name string, tex scene.Texture) {
	u.texture(name, gl.TEXTURE_CUBE_MAP, tex.TextureID())
}

func (u *uniformSetter) Texture2D(name string, id uint32) {
	u.texture(name, gl.TEXTURE_2D, id)
}

func (u *uniformSetter) texture(name string, target, id uint32) {
	loc := u.program.location(name)
	if loc == -1 {
		return
	}
	unit := uint32(len(u.units))
	gl.ActiveTexture(gl.TEXTURE0 + unit)
	gl.BindTexture(target, id)
	gl.Uniform1i(loc, int32(unit))
	u.units = append(u.units, target)
}

func (u *uniformSetter) unbind() {
	for unit, target := range u.units {
		gl.ActiveTexture(gl.TEXTURE0 + uint32(unit))
		gl.BindTexture(target, 0)
	}
	gl.ActiveTexture(gl.TEXTURE0)
	u.units = u.units[:0]
}

// clearColor converts a 0xRRGGBB sRGB color into the clear value for the
// given output space. With sRGB output the framebuffer re-encodes on write,
// so the clear value must be linear.
func clearColor(hex uint32, alpha float32, cs graphics.ColorSpace) [4]float32 {
	rgb := [3]float32{
		float32((hex>>16)&0xff) / 255,
		float32((hex>>8)&0xff) / 255,
		float32(hex&0xff) / 255,
	}
	if cs == graphics.SRGBColorSpace {
		for i, c := range rgb {
			rgb[i] = srgbToLinear(c)
		}
	}
	return [4]float32{rgb[0], rgb[1], rgb[2], alpha}
}

func srgbToLinear(c float32) float32 {
	if c <= 0.04045 {
		return c / 12.92
	}
	return float32(math.Pow((float64(c)+0.055)/1.055, 2.4))
}
