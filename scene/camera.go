package scene

import "github.com/go-gl/mathgl/mgl32"

// PerspectiveCamera is a pinhole camera looking from Position at Target.
// FOV is the vertical field of view in degrees.
type PerspectiveCamera struct {
	FOV    float32
	Aspect float32
	Near   float32
	Far    float32

	Position mgl32.Vec3
	Target   mgl32.Vec3
	Up       mgl32.Vec3

	projection mgl32.Mat4
	dirty      bool
}

func NewPerspectiveCamera(fov, aspect, near, far float32) *PerspectiveCamera {
	return &PerspectiveCamera{
		FOV:    fov,
		Aspect: aspect,
		Near:   near,
		Far:    far,
		Up:     mgl32.Vec3{0, 1, 0},
		dirty:  true,
	}
}

// UpdateProjectionMatrix marks the projection stale after FOV, Aspect, Near
// or Far changed. The matrix is rebuilt by the next ProjectionMatrix call.
func (c *PerspectiveCamera) UpdateProjectionMatrix() {
	c.dirty = true
}

// ProjectionDirty reports whether the projection awaits recomputation.
func (c *PerspectiveCamera) ProjectionDirty() bool {
	return c.dirty
}

func (c *PerspectiveCamera) ProjectionMatrix() mgl32.Mat4 {
	if c.dirty {
		c.projection = mgl32.Perspective(mgl32.DegToRad(c.FOV), c.Aspect, c.Near, c.Far)
		c.dirty = false
	}
	return c.projection
}

func (c *PerspectiveCamera) ViewMatrix() mgl32.Mat4 {
	return mgl32.LookAtV(c.Position, c.Target, c.Up)
}
