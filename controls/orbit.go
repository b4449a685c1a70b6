// Package controls moves a camera in response to pointer input.
package controls

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/richinsley/gosketch/graphics"
	"github.com/richinsley/gosketch/scene"
)

const minPolarEpsilon = 1e-6

// Orbit rotates the camera around Target while the primary button is held
// and dollies toward or away from it on scroll.
type Orbit struct {
	Target      mgl32.Vec3
	RotateSpeed float32
	ZoomSpeed   float32
	MinDistance float32
	MaxDistance float32
	Enabled     bool

	camera  *scene.PerspectiveCamera
	surface graphics.Surface
	remove  func()

	dragging     bool
	lastX, lastY float64
}

// NewOrbit attaches a controller to camera and subscribes it to input.
func NewOrbit(camera *scene.PerspectiveCamera, input graphics.PointerSource) *Orbit {
	o := &Orbit{
		RotateSpeed: 1,
		ZoomSpeed:   1,
		MinDistance: 0,
		MaxDistance: float32(math.Inf(1)),
		Enabled:     true,
		camera:      camera,
		surface:     input,
	}
	o.Target = camera.Target
	o.remove = input.OnPointer(o.HandlePointer)
	return o
}

// HandlePointer applies one pointer event.
func (o *Orbit) HandlePointer(ev graphics.PointerEvent) {
	if !o.Enabled {
		return
	}
	switch ev.Kind {
	case graphics.PointerDown:
		if ev.Button == 0 {
			o.dragging = true
			o.lastX, o.lastY = ev.X, ev.Y
		}
	case graphics.PointerUp:
		if ev.Button == 0 {
			o.dragging = false
		}
	case graphics.PointerMove:
		if !o.dragging {
			return
		}
		dx, dy := ev.X-o.lastX, ev.Y-o.lastY
		o.lastX, o.lastY = ev.X, ev.Y

		_, h := o.surface.Size()
		if h <= 0 {
			return
		}
		// A drag across the full surface height is one full turn.
		left := float32(2*math.Pi*dx/float64(h)) * o.RotateSpeed
		up := float32(2*math.Pi*dy/float64(h)) * o.RotateSpeed
		o.Rotate(left, up)
	case graphics.PointerScroll:
		if ev.ScrollY == 0 {
			return
		}
		scale := float32(math.Pow(0.95, float64(o.ZoomSpeed)))
		if ev.ScrollY > 0 {
			o.Dolly(scale)
		} else {
			o.Dolly(1 / scale)
		}
	}
}

// Rotate turns the camera left and up around Target, in radians. The polar
// angle stays strictly between the poles.
func (o *Orbit) Rotate(left, up float32) {
	radius, theta, phi := o.spherical()
	theta -= float64(left)
	phi -= float64(up)
	phi = math.Max(minPolarEpsilon, math.Min(math.Pi-minPolarEpsilon, phi))
	o.place(radius, theta, phi)
}

// Dolly multiplies the camera distance by scale, within the distance limits.
func (o *Orbit) Dolly(scale float32) {
	radius, theta, phi := o.spherical()
	radius *= float64(scale)
	radius = math.Max(float64(o.MinDistance), math.Min(float64(o.MaxDistance), radius))
	o.place(radius, theta, phi)
}

// Update re-aims the camera at Target after Target was moved.
func (o *Orbit) Update() {
	o.camera.Target = o.Target
}

// Dispose stops listening for input.
func (o *Orbit) Dispose() {
	if o.remove != nil {
		o.remove()
		o.remove = nil
	}
	o.dragging = false
}

// spherical returns the camera offset from Target as radius, azimuth around
// +Y (measured from +Z) and polar angle from +Y.
func (o *Orbit) spherical() (radius, theta, phi float64) {
	off := o.camera.Position.Sub(o.Target)
	radius = float64(off.Len())
	if radius == 0 {
		return 0, 0, math.Pi / 2
	}
	theta = math.Atan2(float64(off.X()), float64(off.Z()))
	phi = math.Acos(math.Max(-1, math.Min(1, float64(off.Y())/radius)))
	return radius, theta, phi
}

func (o *Orbit) place(radius, theta, phi float64) {
	sinPhi := math.Sin(phi)
	off := mgl32.Vec3{
		float32(radius * sinPhi * math.Sin(theta)),
		float32(radius * math.Cos(phi)),
		float32(radius * sinPhi * math.Cos(theta)),
	}
	o.camera.Position = o.Target.Add(off)
	o.camera.Target = o.Target
}
