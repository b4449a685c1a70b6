package graphics

// Surface is the display surface a sketch draws into.
type Surface interface {
	// Size returns the surface size in screen coordinates.
	Size() (int, int)
	// PixelRatio returns framebuffer pixels per screen coordinate.
	PixelRatio() float32
}

// Scheduler runs callbacks on the next display refresh.
type Scheduler interface {
	RequestFrame(fn func()) FrameID
	CancelFrame(id FrameID)
}

// Host is everything a sketch needs from its environment.
type Host interface {
	Surface
	Scheduler
	// OnResize registers fn to run synchronously on every resize
	// notification. The returned func removes the registration.
	OnResize(fn func()) (remove func())
}

// PointerKind identifies a pointer event.
type PointerKind int

const (
	PointerMove PointerKind = iota
	PointerDown
	PointerUp
	PointerScroll
)

// PointerEvent carries cursor position in screen coordinates, or scroll
// offsets for PointerScroll.
type PointerEvent struct {
	Kind    PointerKind
	X, Y    float64
	Button  int
	ScrollX float64
	ScrollY float64
}

// PointerSource delivers pointer input for a surface.
type PointerSource interface {
	Surface
	OnPointer(fn func(ev PointerEvent)) (remove func())
}

// Context defines the interface for an OpenGL context.
type Context interface {
	Host
	MakeCurrent()
	Shutdown()
	ShouldClose() bool
	EndFrame()
}
