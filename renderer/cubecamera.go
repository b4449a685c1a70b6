package renderer

import (
	"fmt"

	gl "github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/richinsley/gosketch/scene"
)

// cubeFace is one of the six views a cube camera renders, in
// GL_TEXTURE_CUBE_MAP_POSITIVE_X order.
type cubeFace struct {
	target uint32
	look   mgl32.Vec3
	up     mgl32.Vec3
}

// Cube map faces are stored with their rows flipped, hence the negative up
// vectors on the side faces.
var cubeFaces = [6]cubeFace{
	{gl.TEXTURE_CUBE_MAP_POSITIVE_X, mgl32.Vec3{1, 0, 0}, mgl32.Vec3{0, -1, 0}},
	{gl.TEXTURE_CUBE_MAP_NEGATIVE_X, mgl32.Vec3{-1, 0, 0}, mgl32.Vec3{0, -1, 0}},
	{gl.TEXTURE_CUBE_MAP_POSITIVE_Y, mgl32.Vec3{0, 1, 0}, mgl32.Vec3{0, 0, 1}},
	{gl.TEXTURE_CUBE_MAP_NEGATIVE_Y, mgl32.Vec3{0, -1, 0}, mgl32.Vec3{0, 0, -1}},
	{gl.TEXTURE_CUBE_MAP_POSITIVE_Z, mgl32.Vec3{0, 0, 1}, mgl32.Vec3{0, -1, 0}},
	{gl.TEXTURE_CUBE_MAP_NEGATIVE_Z, mgl32.Vec3{0, 0, -1}, mgl32.Vec3{0, -1, 0}},
}

func (f cubeFace) view(position mgl32.Vec3) mgl32.Mat4 {
	return mgl32.LookAtV(position, position.Add(f.look), f.up)
}

// cubeTexture exposes a cube map to material uniforms.
type cubeTexture uint32

func (t cubeTexture) TextureID() uint32 { return uint32(t) }

// CubeCamera renders a scene into the six faces of a cube map from a single
// point, for environment reflections.
type CubeCamera struct {
	r          *Renderer
	Position   mgl32.Vec3
	resolution int
	projection mgl32.Mat4

	fbo       uint32
	textureID uint32
	depth     uint32
}

// NewCubeCamera allocates a resolution x resolution cube render target with
// mipmaps and a shared depth buffer.
func NewCubeCamera(r *Renderer, resolution int, near, far float32) (*CubeCamera, error) {
	if resolution <= 0 {
		return nil, fmt.Errorf("invalid cube resolution %d", resolution)
	}
	c := &CubeCamera{
		r:          r,
		resolution: resolution,
		projection: mgl32.Perspective(mgl32.DegToRad(90), 1, near, far),
	}

	gl.GenTextures(1, &c.textureID)
	gl.BindTexture(gl.TEXTURE_CUBE_MAP, c.textureID)
	for _, f := range cubeFaces {
		gl.TexImage2D(f.target, 0, gl.RGBA8, int32(resolution), int32(resolution), 0, gl.RGBA, gl.UNSIGNED_BYTE, nil)
	}
	gl.TexParameteri(gl.TEXTURE_CUBE_MAP, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_CUBE_MAP, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_CUBE_MAP, gl.TEXTURE_WRAP_R, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_CUBE_MAP, gl.TEXTURE_MIN_FILTER, gl.LINEAR_MIPMAP_LINEAR)
	gl.TexParameteri(gl.TEXTURE_CUBE_MAP, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.GenerateMipmap(gl.TEXTURE_CUBE_MAP)
	gl.BindTexture(gl.TEXTURE_CUBE_MAP, 0)

	gl.GenRenderbuffers(1, &c.depth)
	gl.BindRenderbuffer(gl.RENDERBUFFER, c.depth)
	gl.RenderbufferStorage(gl.RENDERBUFFER, gl.DEPTH_COMPONENT24, int32(resolution), int32(resolution))
	gl.BindRenderbuffer(gl.RENDERBUFFER, 0)

	gl.GenFramebuffers(1, &c.fbo)
	gl.BindFramebuffer(gl.FRAMEBUFFER, c.fbo)
	gl.FramebufferRenderbuffer(gl.FRAMEBUFFER, gl.DEPTH_ATTACHMENT, gl.RENDERBUFFER, c.depth)
	gl.FramebufferTexture2D(gl.FRAMEBUFFER, gl.COLOR_ATTACHMENT0, cubeFaces[0].target, c.textureID, 0)
	status := gl.CheckFramebufferStatus(gl.FRAMEBUFFER)
	gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
	if status != gl.FRAMEBUFFER_COMPLETE {
		c.Dispose()
		return nil, fmt.Errorf("cube framebuffer is not complete: 0x%x", status)
	}
	return c, nil
}

// Update renders s into every face and regenerates the mipmaps.
func (c *CubeCamera) Update(s *scene.Scene) error {
	for i, f := range cubeFaces {
		gl.BindFramebuffer(gl.FRAMEBUFFER, c.fbo)
		gl.FramebufferTexture2D(gl.FRAMEBUFFER, gl.COLOR_ATTACHMENT0, f.target, c.textureID, 0)
		e := eye{projection: c.projection, view: f.view(c.Position), position: c.Position}
		if err := c.r.drawScene(c.fbo, c.resolution, c.resolution, false, s, e); err != nil {
			return fmt.Errorf("cube face %d: %w", i, err)
		}
	}
	gl.BindTexture(gl.TEXTURE_CUBE_MAP, c.textureID)
	gl.GenerateMipmap(gl.TEXTURE_CUBE_MAP)
	gl.BindTexture(gl.TEXTURE_CUBE_MAP, 0)
	return nil
}

func (c *CubeCamera) Texture() scene.Texture {
	return cubeTexture(c.textureID)
}

func (c *CubeCamera) Dispose() {
	if c.fbo != 0 {
		gl.DeleteFramebuffers(1, &c.fbo)
	}
	if c.depth != 0 {
		gl.DeleteRenderbuffers(1, &c.depth)
	}
	if c.textureID != 0 {
		gl.DeleteTextures(1, &c.textureID)
	}
	c.fbo, c.depth, c.textureID = 0, 0, 0
}
