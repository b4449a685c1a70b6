package renderer

import (
	"fmt"

	gl "github.com/go-gl/gl/v4.1-core/gl"
	"github.com/richinsley/gosketch/logger"
	"go.uber.org/zap"
)

const bytesPerPixel = 4

// Offscreen is an sRGB color + depth framebuffer used as the output in
// record mode.
type Offscreen struct {
	fbo               uint32
	textureID         uint32
	depthRenderbuffer uint32
	width             int
	height            int
	pixels            []byte
}

func NewOffscreen(width, height int) (*Offscreen, error) {
	o := &Offscreen{}
	gl.GenFramebuffers(1, &o.fbo)
	gl.GenTextures(1, &o.textureID)
	gl.GenRenderbuffers(1, &o.depthRenderbuffer)
	if err := o.allocate(width, height); err != nil {
		o.Destroy()
		return nil, err
	}
	logger.Log.Debug("offscreen target created", zap.Int("width", width), zap.Int("height", height))
	return o, nil
}

func (o *Offscreen) allocate(width, height int) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("invalid offscreen size %dx%d", width, height)
	}
	o.width, o.height = width, height
	o.pixels = make([]byte, width*height*bytesPerPixel)

	gl.BindTexture(gl.TEXTURE_2D, o.textureID)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.SRGB8_ALPHA8, int32(width), int32(height), 0, gl.RGBA, gl.UNSIGNED_BYTE, nil)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.BindTexture(gl.TEXTURE_2D, 0)

	gl.BindRenderbuffer(gl.RENDERBUFFER, o.depthRenderbuffer)
	gl.RenderbufferStorage(gl.RENDERBUFFER, gl.DEPTH_COMPONENT24, int32(width), int32(height))
	gl.BindRenderbuffer(gl.RENDERBUFFER, 0)

	gl.BindFramebuffer(gl.FRAMEBUFFER, o.fbo)
	gl.FramebufferTexture2D(gl.FRAMEBUFFER, gl.COLOR_ATTACHMENT0, gl.TEXTURE_2D, o.textureID, 0)
	gl.FramebufferRenderbuffer(gl.FRAMEBUFFER, gl.DEPTH_ATTACHMENT, gl.RENDERBUFFER, o.depthRenderbuffer)
	status := gl.CheckFramebufferStatus(gl.FRAMEBUFFER)
	gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
	if status != gl.FRAMEBUFFER_COMPLETE {
		return fmt.Errorf("offscreen fbo is not complete: 0x%x", status)
	}
	return nil
}

// Resize reallocates the target when the size changes.
func (o *Offscreen) Resize(width, height int) error {
	if width == o.width && height == o.height {
		return nil
	}
	return o.allocate(width, height)
}

func (o *Offscreen) Size() (int, int) {
	return o.width, o.height
}

// ReadPixels reads the target back as RGBA with the first row at the top.
// The returned slice is reused by the next call.
func (o *Offscreen) ReadPixels() []byte {
	gl.BindFramebuffer(gl.READ_FRAMEBUFFER, o.fbo)
	gl.PixelStorei(gl.PACK_ALIGNMENT, 1)
	gl.ReadPixels(0, 0, int32(o.width), int32(o.height), gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(o.pixels))
	gl.BindFramebuffer(gl.READ_FRAMEBUFFER, 0)
	flipRows(o.pixels, o.width*bytesPerPixel, o.height)
	return o.pixels
}

func (o *Offscreen) Destroy() {
	gl.DeleteFramebuffers(1, &o.fbo)
	gl.DeleteTextures(1, &o.textureID)
	gl.DeleteRenderbuffers(1, &o.depthRenderbuffer)
}

// flipRows reverses the row order of pix in place. GL reads bottom-up.
func flipRows(pix []byte, stride, rows int) {
	tmp := make([]byte, stride)
	for top, bottom := 0, rows-1; top < bottom; top, bottom = top+1, bottom-1 {
		a := pix[top*stride : (top+1)*stride]
		b := pix[bottom*stride : (bottom+1)*stride]
		copy(tmp, a)
		copy(a, b)
		copy(b, tmp)
	}
}
