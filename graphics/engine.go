package graphics

import "github.com/richinsley/gosketch/scene"

// ColorSpace is the output color encoding of a Device.
type ColorSpace int

const (
	LinearColorSpace ColorSpace = iota
	SRGBColorSpace
)

// Device draws scenes onto the host surface.
type Device interface {
	SetPixelRatio(ratio float32)
	SetSize(width, height int)
	Size() (int, int)
	SetClearColor(hex uint32, alpha float32)
	SetOutputColorSpace(cs ColorSpace)
	Render(s *scene.Scene, cam *scene.PerspectiveCamera) error
	// Release frees GPU resources held for the meshes of s.
	Release(s *scene.Scene)
}

// CubeCapture renders a scene into a cube map from a fixed point.
type CubeCapture interface {
	Update(s *scene.Scene) error
	Texture() scene.Texture
	Dispose()
}

// Composer runs an ordered chain of full-screen passes.
type Composer interface {
	SetSize(width, height int)
	Render() error
	Dispose()
}

// Engine is a Device that can also build capture targets and pass chains.
type Engine interface {
	Device
	NewCubeCapture(resolution int, near, far float32) (CubeCapture, error)
	NewComposer(passes ...scene.Pass) (Composer, error)
}
