package shader

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/richinsley/gosketch/scene"
)

// Default tunable values for the fresnel sketch.
const (
	DefaultRefractionRatio = 1.02
	DefaultFresnelBias     = 0.1
	DefaultFresnelScale    = 1.0
	DefaultFresnelPower    = 2.0
	DefaultZoom            = 0.5
	DefaultPostScale       = 4.0
)

// BasicUniforms feeds the animated sphere shaders.
type BasicUniforms struct {
	Time       float32
	Resolution mgl32.Vec4
	UVRate1    mgl32.Vec2
}

func NewBasicUniforms() *BasicUniforms {
	return &BasicUniforms{UVRate1: mgl32.Vec2{1, 1}}
}

func (u *BasicUniforms) Apply(s scene.UniformSetter) {
	s.Float("time", u.Time)
	s.Vec4("resolution", u.Resolution)
	s.Vec2("uvRate1", u.UVRate1)
}

// BackgroundUniforms is BasicUniforms plus the zoom used by the fresnel
// sketch's background.
type BackgroundUniforms struct {
	BasicUniforms
	Zoom float32
}

func NewBackgroundUniforms() *BackgroundUniforms {
	return &BackgroundUniforms{
		BasicUniforms: *NewBasicUniforms(),
		Zoom:          DefaultZoom,
	}
}

func (u *BackgroundUniforms) Apply(s scene.UniformSetter) {
	u.BasicUniforms.Apply(s)
	s.Float("uZoom", u.Zoom)
}

// FresnelUniforms drives the reflective/refractive foreground sphere. Cube
// is nil until the first environment capture.
type FresnelUniforms struct {
	Time            float32
	Resolution      mgl32.Vec4
	Cube            scene.Texture
	RefractionRatio float32
	FresnelBias     float32
	FresnelScale    float32
	FresnelPower    float32
}

func NewFresnelUniforms() *FresnelUniforms {
	return &FresnelUniforms{
		RefractionRatio: DefaultRefractionRatio,
		FresnelBias:     DefaultFresnelBias,
		FresnelScale:    DefaultFresnelScale,
		FresnelPower:    DefaultFresnelPower,
	}
}

func (u *FresnelUniforms) Apply(s scene.UniformSetter) {
	s.Float("time", u.Time)
	s.Vec4("resolution", u.Resolution)
	if u.Cube != nil {
		s.Cube("tCube", u.Cube)
	}
	s.Float("mRefractionRatio", u.RefractionRatio)
	s.Float("mFresnelBias", u.FresnelBias)
	s.Float("mFresnelScale", u.FresnelScale)
	s.Float("mFresnelPower", u.FresnelPower)
}

// PostUniforms feeds the dot-screen pass. Its input texture is bound by the
// composer.
type PostUniforms struct {
	Scale      float32
	Resolution mgl32.Vec4
}

func NewPostUniforms(scale float32) *PostUniforms {
	return &PostUniforms{Scale: scale}
}

func (u *PostUniforms) Apply(s scene.UniformSetter) {
	s.Float("scale", u.Scale)
	s.Vec4("resolution", u.Resolution)
}
