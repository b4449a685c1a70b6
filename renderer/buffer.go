package renderer

import (
	"fmt"

	gl "github.com/go-gl/gl/v4.1-core/gl"
)

// Buffer manages two FBOs with color textures and depth attachments so a
// pass can read the previous pass's output while writing the next one.
type Buffer struct {
	fbo        [2]uint32
	textureID  [2]uint32
	depth      [2]uint32
	readIndex  int // Index of the texture holding the last completed pass
	writeIndex int // Index of the FBO the current pass writes to

	width, height int
}

// NewBuffer creates two framebuffers of width x height.
func NewBuffer(width, height int) (*Buffer, error) {
	b := &Buffer{
		readIndex:  0,
		writeIndex: 1,
		width:      width,
		height:     height,
	}

	for i := 0; i < 2; i++ {
		gl.GenTextures(1, &b.textureID[i])
		gl.BindTexture(gl.TEXTURE_2D, b.textureID[i])
		gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA16F, int32(width), int32(height), 0, gl.RGBA, gl.HALF_FLOAT, nil)
		gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
		gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
		gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
		gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)

		gl.GenRenderbuffers(1, &b.depth[i])
		gl.BindRenderbuffer(gl.RENDERBUFFER, b.depth[i])
		gl.RenderbufferStorage(gl.RENDERBUFFER, gl.DEPTH_COMPONENT24, int32(width), int32(height))

		gl.GenFramebuffers(1, &b.fbo[i])
		gl.BindFramebuffer(gl.FRAMEBUFFER, b.fbo[i])
		gl.FramebufferTexture2D(gl.FRAMEBUFFER, gl.COLOR_ATTACHMENT0, gl.TEXTURE_2D, b.textureID[i], 0)
		gl.FramebufferRenderbuffer(gl.FRAMEBUFFER, gl.DEPTH_ATTACHMENT, gl.RENDERBUFFER, b.depth[i])

		if gl.CheckFramebufferStatus(gl.FRAMEBUFFER) != gl.FRAMEBUFFER_COMPLETE {
			gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
			b.Destroy()
			return nil, fmt.Errorf("framebuffer %d for buffer is not complete", i)
		}
	}

	// Unbind to avoid accidental modifications
	gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
	gl.BindRenderbuffer(gl.RENDERBUFFER, 0)
	gl.BindTexture(gl.TEXTURE_2D, 0)
	return b, nil
}

// WriteFramebuffer returns the FBO the next pass should draw into.
func (b *Buffer) WriteFramebuffer() uint32 {
	return b.fbo[b.writeIndex]
}

// SwapBuffers toggles the read/write indices. This is called after the buffer has been rendered to.
func (b *Buffer) SwapBuffers() {
	b.readIndex, b.writeIndex = b.writeIndex, b.readIndex
}

// GetTextureID returns the texture holding the last completed pass.
func (b *Buffer) GetTextureID() uint32 {
	return b.textureID[b.readIndex]
}

func (b *Buffer) Size() (int, int) {
	return b.width, b.height
}

// Resize reallocates both textures and depth buffers.
func (b *Buffer) Resize(width, height int) {
	if width == b.width && height == b.height {
		return
	}
	b.width, b.height = width, height
	for i := 0; i < 2; i++ {
		gl.BindTexture(gl.TEXTURE_2D, b.textureID[i])
		gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA16F, int32(width), int32(height), 0, gl.RGBA, gl.HALF_FLOAT, nil)
		gl.BindRenderbuffer(gl.RENDERBUFFER, b.depth[i])
		gl.RenderbufferStorage(gl.RENDERBUFFER, gl.DEPTH_COMPONENT24, int32(width), int32(height))
	}
	gl.BindTexture(gl.TEXTURE_2D, 0)
	gl.BindRenderbuffer(gl.RENDERBUFFER, 0)
}

func (b *Buffer) Destroy() {
	gl.DeleteFramebuffers(2, &b.fbo[0])
	gl.DeleteRenderbuffers(2, &b.depth[0])
	gl.DeleteTextures(2, &b.textureID[0])
}
