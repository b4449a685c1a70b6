package glfwcontext

import (
	"runtime"

	glfw "github.com/go-gl/glfw/v3.3/glfw"
	"github.com/richinsley/gosketch/graphics"
	"github.com/richinsley/gosketch/logger"
	"go.uber.org/zap"
)

// Context is a GLFW window that hosts a sketch. It drives the frame queue
// once per refresh and fans window events out to subscribers.
type Context struct {
	graphics.FrameQueue

	window *glfw.Window
	title  string

	resize  listeners[func()]
	pointer listeners[func(graphics.PointerEvent)]
	surface surfaceSize
	// A map to store functions to be called on key presses.
	keyCallbacks map[glfw.Key]func(mods glfw.ModifierKey)
}

// New creates a window of width x height. Hidden windows are used for
// offscreen recording.
func New(width, height int, title string, visible bool) (*Context, error) {
	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	glfw.WindowHint(glfw.SRGBCapable, glfw.True)

	if visible {
		glfw.WindowHint(glfw.Resizable, glfw.True)
	} else {
		glfw.WindowHint(glfw.Visible, glfw.False)
	}

	win, err := glfw.CreateWindow(width, height, title, nil, nil)
	if err != nil {
		return nil, err
	}

	c := &Context{
		window:       win,
		title:        title,
		keyCallbacks: make(map[glfw.Key]func(glfw.ModifierKey)),
	}

	win.SetKeyCallback(c.glfwKeyCallback)
	c.sampleSurface()
	win.SetSizeCallback(func(*glfw.Window, int, int) { c.surfaceChanged() })
	// Moving to a monitor with another content scale changes only the
	// framebuffer.
	win.SetFramebufferSizeCallback(func(*glfw.Window, int, int) { c.surfaceChanged() })
	win.SetCursorPosCallback(func(_ *glfw.Window, x, y float64) {
		c.emit(graphics.PointerEvent{Kind: graphics.PointerMove, X: x, Y: y})
	})
	win.SetMouseButtonCallback(func(w *glfw.Window, button glfw.MouseButton, action glfw.Action, _ glfw.ModifierKey) {
		x, y := w.GetCursorPos()
		kind := graphics.PointerDown
		if action == glfw.Release {
			kind = graphics.PointerUp
		}
		c.emit(graphics.PointerEvent{Kind: kind, X: x, Y: y, Button: int(button)})
	})
	win.SetScrollCallback(func(w *glfw.Window, dx, dy float64) {
		x, y := w.GetCursorPos()
		c.emit(graphics.PointerEvent{Kind: graphics.PointerScroll, X: x, Y: y, ScrollX: dx, ScrollY: dy})
	})

	return c, nil
}

func (c *Context) sampleSurface() bool {
	w, h := c.window.GetSize()
	fbw, fbh := c.window.GetFramebufferSize()
	return c.surface.update(w, h, fbw, fbh)
}

// surfaceChanged notifies resize subscribers once per distinct window and
// framebuffer size pair.
func (c *Context) surfaceChanged() {
	if !c.sampleSurface() {
		return
	}
	logger.Log.Debug("surface resized",
		zap.Int("width", c.surface.width),
		zap.Int("height", c.surface.height),
		zap.Int("framebufferWidth", c.surface.fbWidth),
		zap.Int("framebufferHeight", c.surface.fbHeight))
	c.resize.each(func(fn func()) { fn() })
}

func (c *Context) emit(ev graphics.PointerEvent) {
	c.pointer.each(func(fn func(graphics.PointerEvent)) { fn(ev) })
}

// RegisterKeyCallback allows the main application to register a function to be
// called when a specific key is pressed or auto-repeats.
func (c *Context) RegisterKeyCallback(key glfw.Key, f func(mods glfw.ModifierKey)) {
	c.keyCallbacks[key] = f
}

func (c *Context) glfwKeyCallback(w *glfw.Window, key glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey) {
	if key == glfw.KeyEscape && action == glfw.Press {
		w.SetShouldClose(true)
	}
	if action == glfw.Press || action == glfw.Repeat {
		if callback, ok := c.keyCallbacks[key]; ok {
			callback(mods)
		}
	}
}

// Size returns the window size in screen coordinates.
func (c *Context) Size() (int, int) {
	return c.window.GetSize()
}

// PixelRatio is the framebuffer to window size ratio, 2 on most HiDPI
// displays.
func (c *Context) PixelRatio() float32 {
	fbWidth, _ := c.window.GetFramebufferSize()
	winWidth, _ := c.window.GetSize()
	if winWidth <= 0 || fbWidth <= 0 {
		return 1
	}
	return float32(fbWidth) / float32(winWidth)
}

func (c *Context) OnResize(fn func()) func() {
	return c.resize.add(fn)
}

func (c *Context) OnPointer(fn func(graphics.PointerEvent)) func() {
	return c.pointer.add(fn)
}

// SetStatus shows status after the window title. An empty status restores
// the plain title.
func (c *Context) SetStatus(status string) {
	if status == "" {
		c.window.SetTitle(c.title)
		return
	}
	c.window.SetTitle(c.title + " | " + status)
}

// Run drives one frame per display refresh until the window is closed.
// idle runs after each frame's callbacks and before the buffer swap.
func (c *Context) Run(idle func()) {
	glfw.SwapInterval(1)
	for !c.ShouldClose() {
		c.RunFrame()
		if idle != nil {
			idle()
		}
		c.EndFrame()
	}
}

func (c *Context) RequestClose() {
	c.window.SetShouldClose(true)
}

// MakeCurrent makes the context current for the calling goroutine.
func (c *Context) MakeCurrent() {
	c.window.MakeContextCurrent()
}

// Shutdown destroys the window.
func (c *Context) Shutdown() {
	c.window.Destroy()
}

func (c *Context) ShouldClose() bool {
	return c.window.ShouldClose()
}

func (c *Context) EndFrame() {
	c.window.SwapBuffers()
	glfw.PollEvents()
}

// InitGraphics initializes the main graphics subsystem (GLFW). Must be called from the main thread.
func InitGraphics() error {
	runtime.LockOSThread()
	if err := glfw.Init(); err != nil {
		return err
	}
	logger.Log.Info("GLFW initialized")
	return nil
}

// TerminateGraphics shuts down the graphics subsystem. Must be called from the main thread.
func TerminateGraphics() {
	glfw.Terminate()
	logger.Log.Info("GLFW terminated")
}
