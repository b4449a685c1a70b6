package controls

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/richinsley/gosketch/graphics"
	"github.com/richinsley/gosketch/scene"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeInput struct {
	w, h     int
	handlers map[int]func(graphics.PointerEvent)
	next     int
}

func newFakeInput(w, h int) *fakeInput {
	return &fakeInput{w: w, h: h, handlers: map[int]func(graphics.PointerEvent){}}
}

func (f *fakeInput) Size() (int, int)    { return f.w, f.h }
func (f *fakeInput) PixelRatio() float32 { return 1 }

func (f *fakeInput) OnPointer(fn func(graphics.PointerEvent)) func() {
	id := f.next
	f.next++
	f.handlers[id] = fn
	return func() { delete(f.handlers, id) }
}

func (f *fakeInput) emit(ev graphics.PointerEvent) {
	for _, fn := range f.handlers {
		fn(ev)
	}
}

func newCamera() *scene.PerspectiveCamera {
	cam := scene.NewPerspectiveCamera(70, 1, 0.001, 1000)
	cam.Position = mgl32.Vec3{0, 0, 1.3}
	return cam
}

func TestDragRotatesAroundTarget(t *testing.T) {
	in := newFakeInput(600, 600)
	cam := newCamera()
	NewOrbit(cam, in)

	// A quarter of the surface height is a quarter turn.
	in.emit(graphics.PointerEvent{Kind: graphics.PointerDown, X: 300, Y: 300})
	in.emit(graphics.PointerEvent{Kind: graphics.PointerMove, X: 150, Y: 300})
	in.emit(graphics.PointerEvent{Kind: graphics.PointerUp, X: 150, Y: 300})

	assert.InDelta(t, 1.3, cam.Position.Len(), 1e-5)
	assert.InDelta(t, 1.3, cam.Position.X(), 1e-5)
	assert.InDelta(t, 0, cam.Position.Z(), 1e-5)

	// Moves without a held button do nothing.
	before := cam.Position
	in.emit(graphics.PointerEvent{Kind: graphics.PointerMove, X: 0, Y: 0})
	assert.Equal(t, before, cam.Position)
}

func TestRotateClampsPolarAngle(t *testing.T) {
	in := newFakeInput(600, 600)
	cam := newCamera()
	o := NewOrbit(cam, in)

	o.Rotate(0, -10)
	assert.InDelta(t, -1.3, cam.Position.Y(), 1e-4)
	assert.False(t, math.IsNaN(float64(cam.ViewMatrix()[0])))
}

func TestScrollDollies(t *testing.T) {
	in := newFakeInput(600, 600)
	cam := newCamera()
	o := NewOrbit(cam, in)
	o.MinDistance = 1

	in.emit(graphics.PointerEvent{Kind: graphics.PointerScroll, ScrollY: 1})
	assert.InDelta(t, 1.3*0.95, cam.Position.Len(), 1e-5)

	for i := 0; i < 50; i++ {
		in.emit(graphics.PointerEvent{Kind: graphics.PointerScroll, ScrollY: 1})
	}
	assert.InDelta(t, 1, cam.Position.Len(), 1e-5)

	in.emit(graphics.PointerEvent{Kind: graphics.PointerScroll, ScrollY: -1})
	assert.InDelta(t, 1/0.95, cam.Position.Len(), 1e-5)
}

func TestDisposeUnsubscribes(t *testing.T) {
	in := newFakeInput(600, 600)
	cam := newCamera()
	o := NewOrbit(cam, in)
	require.Len(t, in.handlers, 1)

	o.Dispose()
	o.Dispose()
	assert.Empty(t, in.handlers)
}

func TestDisabledIgnoresInput(t *testing.T) {
	in := newFakeInput(600, 600)
	cam := newCamera()
	o := NewOrbit(cam, in)
	o.Enabled = false

	in.emit(graphics.PointerEvent{Kind: graphics.PointerScroll, ScrollY: 1})
	assert.Equal(t, mgl32.Vec3{0, 0, 1.3}, cam.Position)
}
