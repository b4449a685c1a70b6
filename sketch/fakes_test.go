package sketch

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/richinsley/gosketch/graphics"
	"github.com/richinsley/gosketch/scene"
)

type fakeHost struct {
	graphics.FrameQueue
	width, height int
	ratio         float32
	resize        map[int]func()
	pointer       map[int]func(graphics.PointerEvent)
	nextID        int
}

func newFakeHost(w, h int) *fakeHost {
	return &fakeHost{
		width:   w,
		height:  h,
		ratio:   1,
		resize:  map[int]func(){},
		pointer: map[int]func(graphics.PointerEvent){},
	}
}

func (h *fakeHost) Size() (int, int)    { return h.width, h.height }
func (h *fakeHost) PixelRatio() float32 { return h.ratio }

func (h *fakeHost) OnResize(fn func()) func() {
	id := h.nextID
	h.nextID++
	h.resize[id] = fn
	return func() { delete(h.resize, id) }
}

func (h *fakeHost) OnPointer(fn func(graphics.PointerEvent)) func() {
	id := h.nextID
	h.nextID++
	h.pointer[id] = fn
	return func() { delete(h.pointer, id) }
}

func (h *fakeHost) setSize(w, ht int) {
	h.width, h.height = w, ht
	for _, fn := range h.resize {
		fn()
	}
}

// frames runs n display refreshes.
func (h *fakeHost) frames(n int) {
	for i := 0; i < n; i++ {
		h.RunFrame()
	}
}

type recorder map[string]any

func (r recorder) Float(name string, v float32)        { r[name] = v }
func (r recorder) Vec2(name string, v mgl32.Vec2)      { r[name] = v }
func (r recorder) Vec4(name string, v mgl32.Vec4)      { r[name] = v }
func (r recorder) Cube(name string, tex scene.Texture) { r[name] = tex }

type fakeTexture uint32

func (t fakeTexture) TextureID() uint32 { return uint32(t) }

type fakeEngine struct {
	ratio       float32
	width       int
	height      int
	clear       uint32
	clearAlpha  float32
	colorSpace  graphics.ColorSpace
	events      []string
	uniforms    map[string]recorder
	released    int
	renderErr   error
	captureErr  error
	cubeErr     error
	composerErr error
	cube        *fakeCube
	composer    *fakeComposer
	composerIn  []scene.Pass
	visibleDraw map[string]int
}

func newFakeEngine() *fakeEngine {
	return &fakeEngine{
		uniforms:    map[string]recorder{},
		visibleDraw: map[string]int{},
	}
}

func (e *fakeEngine) SetPixelRatio(r float32)                 { e.ratio = r }
func (e *fakeEngine) SetSize(w, h int)                        { e.width, e.height = w, h }
func (e *fakeEngine) Size() (int, int)                        { return e.width, e.height }
func (e *fakeEngine) SetClearColor(hex uint32, alpha float32) { e.clear, e.clearAlpha = hex, alpha }
func (e *fakeEngine) SetOutputColorSpace(cs graphics.ColorSpace) {
	e.colorSpace = cs
}

func (e *fakeEngine) Render(s *scene.Scene, cam *scene.PerspectiveCamera) error {
	if e.renderErr != nil {
		return e.renderErr
	}
	e.events = append(e.events, "render"+visibility(s))
	for _, m := range s.Meshes() {
		if !m.Visible {
			continue
		}
		e.visibleDraw[m.Name]++
		rec := recorder{}
		m.Material.Uniforms.Apply(rec)
		e.uniforms[m.Material.Name] = rec
	}
	return nil
}

func (e *fakeEngine) Release(*scene.Scene) { e.released++ }

// NewCubeCapture and NewComposer fail with a typed nil pointer inside the
// interface.
func (e *fakeEngine) NewCubeCapture(resolution int, near, far float32) (graphics.CubeCapture, error) {
	if e.cubeErr != nil {
		var c *fakeCube
		return c, e.cubeErr
	}
	e.cube = &fakeCube{engine: e, texture: fakeTexture(resolution)}
	return e.cube, nil
}

func (e *fakeEngine) NewComposer(passes ...scene.Pass) (graphics.Composer, error) {
	if e.composerErr != nil {
		var c *fakeComposer
		return c, e.composerErr
	}
	e.composerIn = passes
	e.composer = &fakeComposer{engine: e}
	return e.composer, nil
}

// visibility renders the foreground mesh's visibility as seen by a draw.
func visibility(s *scene.Scene) string {
	for _, m := range s.Meshes() {
		if m.Name == "foreground" {
			return fmt.Sprintf("(fg=%v)", m.Visible)
		}
	}
	return ""
}

type fakeCube struct {
	engine   *fakeEngine
	texture  fakeTexture
	disposed bool
}

func (c *fakeCube) Update(s *scene.Scene) error {
	if c.engine.captureErr != nil {
		return c.engine.captureErr
	}
	c.engine.events = append(c.engine.events, "capture"+visibility(s))
	return nil
}

func (c *fakeCube) Texture() scene.Texture { return c.texture }
func (c *fakeCube) Dispose()               { c.disposed = true }

type fakeComposer struct {
	engine        *fakeEngine
	width, height int
	disposed      bool
}

func (c *fakeComposer) SetSize(w, h int) { c.width, c.height = w, h }
func (c *fakeComposer) Render() error {
	c.engine.events = append(c.engine.events, "post")
	return nil
}
func (c *fakeComposer) Dispose() { c.disposed = true }
