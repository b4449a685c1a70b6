package renderer

import (
	"fmt"
	"sync"

	gl "github.com/go-gl/gl/v4.1-core/gl"
	"github.com/richinsley/gosketch/graphics"
	"github.com/richinsley/gosketch/logger"
	"github.com/richinsley/gosketch/scene"
	"go.uber.org/zap"
)

var glInitOnce sync.Once

// Renderer draws scenes with OpenGL 4.1. It implements graphics.Engine and
// must be used on the thread that owns the GL context.
type Renderer struct {
	context graphics.Context
	opts    Options

	width, height int
	pixelRatio    float32
	clear         [4]float32
	clearHex      uint32
	clearAlpha    float32
	colorSpace    graphics.ColorSpace

	programs   map[*scene.Material]*program
	geometries map[*scene.Geometry]*geometryBuffers
	quadVAO    uint32
	quadVBO    uint32

	offscreen *Offscreen
}

// New creates a renderer on ctx. The context is made current on the
// calling thread.
func New(ctx graphics.Context, opts Options) (*Renderer, error) {
	r := &Renderer{
		context:    ctx,
		opts:       opts,
		pixelRatio: 1,
		colorSpace: graphics.LinearColorSpace,
		programs:   make(map[*scene.Material]*program),
		geometries: make(map[*scene.Geometry]*geometryBuffers),
	}

	r.context.MakeCurrent()

	var initErr error
	glInitOnce.Do(func() {
		initErr = gl.Init()
	})
	if initErr != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", initErr)
	}
	logger.Log.Info("OpenGL initialized",
		zap.String("version", gl.GoStr(gl.GetString(gl.VERSION))),
		zap.String("renderer", gl.GoStr(gl.GetString(gl.RENDERER))))

	r.quadVAO, r.quadVBO = newQuad()
	r.width, r.height = ctx.Size()

	if opts.Offscreen {
		w, h := r.DrawingBufferSize()
		var err error
		r.offscreen, err = NewOffscreen(w, h)
		if err != nil {
			r.Shutdown()
			return nil, fmt.Errorf("failed to create offscreen target: %w", err)
		}
	}
	return r, nil
}

func (r *Renderer) SetPixelRatio(ratio float32) {
	if ratio <= 0 {
		ratio = 1
	}
	r.pixelRatio = ratio
	r.resizeOutput()
}

// SetSize sets the output size in screen coordinates. The drawing buffer is
// that size scaled by the pixel ratio.
func (r *Renderer) SetSize(width, height int) {
	r.width, r.height = width, height
	r.resizeOutput()
}

func (r *Renderer) Size() (int, int) {
	return r.width, r.height
}

// DrawingBufferSize returns the output size in pixels.
func (r *Renderer) DrawingBufferSize() (int, int) {
	return scaleSize(r.width, r.height, r.pixelRatio)
}

func (r *Renderer) resizeOutput() {
	if r.offscreen == nil {
		return
	}
	w, h := r.DrawingBufferSize()
	if err := r.offscreen.Resize(w, h); err != nil {
		logger.Log.Error("failed to resize offscreen target", zap.Error(err))
	}
}

// SetClearColor sets the background as a 0xRRGGBB color in the sRGB space.
func (r *Renderer) SetClearColor(hex uint32, alpha float32) {
	r.clearHex, r.clearAlpha = hex, alpha
	r.clear = clearColor(hex, alpha, r.colorSpace)
}

func (r *Renderer) SetOutputColorSpace(cs graphics.ColorSpace) {
	r.colorSpace = cs
	r.clear = clearColor(r.clearHex, r.clearAlpha, cs)
}

// Render draws s from cam into the output framebuffer.
func (r *Renderer) Render(s *scene.Scene, cam *scene.PerspectiveCamera) error {
	w, h := r.DrawingBufferSize()
	return r.drawScene(r.outputFramebuffer(), w, h, true, s, eyeFromCamera(cam))
}

// Release frees the programs and vertex buffers created for s.
func (r *Renderer) Release(s *scene.Scene) {
	for _, m := range s.Meshes() {
		if p, ok := r.programs[m.Material]; ok {
			p.delete()
			delete(r.programs, m.Material)
		}
		if g, ok := r.geometries[m.Geometry]; ok {
			g.delete()
			delete(r.geometries, m.Geometry)
		}
	}
}

func (r *Renderer) NewCubeCapture(resolution int, near, far float32) (graphics.CubeCapture, error) {
	c, err := NewCubeCamera(r, resolution, near, far)
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (r *Renderer) NewComposer(passes ...scene.Pass) (graphics.Composer, error) {
	c, err := NewComposer(r, passes...)
	if err != nil {
		return nil, err
	}
	return c, nil
}

// ReadPixels returns the offscreen target as top-down RGBA rows.
func (r *Renderer) ReadPixels() ([]byte, error) {
	if r.offscreen == nil {
		return nil, fmt.Errorf("renderer has no offscreen target")
	}
	return r.offscreen.ReadPixels(), nil
}

func (r *Renderer) outputFramebuffer() uint32 {
	if r.offscreen != nil {
		return r.offscreen.fbo
	}
	return 0
}

// Shutdown releases everything the renderer still owns. The context itself
// is shut down by its owner.
func (r *Renderer) Shutdown() {
	for m, p := range r.programs {
		p.delete()
		delete(r.programs, m)
	}
	for g, b := range r.geometries {
		b.delete()
		delete(r.geometries, g)
	}
	if r.offscreen != nil {
		r.offscreen.Destroy()
		r.offscreen = nil
	}
	gl.DeleteBuffers(1, &r.quadVBO)
	gl.DeleteVertexArrays(1, &r.quadVAO)
}

func scaleSize(width, height int, ratio float32) (int, int) {
	return int(float32(width)*ratio + 0.5), int(float32(height)*ratio + 0.5)
}
