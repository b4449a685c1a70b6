package sketch

import (
	"fmt"

	"github.com/richinsley/gosketch/shader"
)

// Variant selects which of the two sketches is built.
type Variant int

const (
	// Basic draws two independently shaded spheres.
	Basic Variant = 1
	// Fresnel replaces the foreground with a cube-mapped fresnel sphere and
	// adds a dot-screen post pass.
	Fresnel Variant = 2
)

func (v Variant) String() string {
	switch v {
	case Basic:
		return "basic"
	case Fresnel:
		return "fresnel"
	}
	return fmt.Sprintf("Variant(%d)", int(v))
}

// Per-frame animation speed for each variant.
const (
	BasicIncrement   = 0.01
	FresnelIncrement = 0.005
)

const (
	DefaultClearColor uint32 = 0xeeeeee

	cameraFOV  = 70
	cameraNear = 0.001
	cameraFar  = 1000
	cameraZ    = 1.3

	backgroundRadius = 5
	foregroundRadius = 0.4
	sphereSegments   = 32

	DefaultCubeResolution = 256
	cubeNear              = 0.1
	cubeFar               = 100

	tunableStep = 0.01
)

// Tunables are the initial values of the fresnel sketch's panel controls.
type Tunables struct {
	RefractionRatio float32
	FresnelBias     float32
	FresnelScale    float32
	FresnelPower    float32
	Zoom            float32
}

func DefaultTunables() Tunables {
	return Tunables{
		RefractionRatio: shader.DefaultRefractionRatio,
		FresnelBias:     shader.DefaultFresnelBias,
		FresnelScale:    shader.DefaultFresnelScale,
		FresnelPower:    shader.DefaultFresnelPower,
		Zoom:            shader.DefaultZoom,
	}
}

// Config parameterizes a Sketch. Zero Increment, CubeResolution and Tunables
// select the defaults, and a nil Shaders uses the embedded sources.
// ClearColor is always used as given, so zero clears to black; start from
// DefaultConfig to get the stock background.
type Config struct {
	Variant        Variant
	Increment      float64
	ClearColor     uint32
	CubeResolution int
	Tunables       Tunables
	Shaders        *shader.Library
}

// DefaultConfig returns the stock configuration for v.
func DefaultConfig(v Variant) Config {
	return Config{
		Variant:        v,
		ClearColor:     DefaultClearColor,
		CubeResolution: DefaultCubeResolution,
		Tunables:       DefaultTunables(),
	}
}

func (c Config) withDefaults() (Config, error) {
	switch c.Variant {
	case Basic, Fresnel:
	default:
		return c, fmt.Errorf("unsupported sketch variant %d", int(c.Variant))
	}
	if c.Increment <= 0 {
		c.Increment = BasicIncrement
		if c.Variant == Fresnel {
			c.Increment = FresnelIncrement
		}
	}
	if c.CubeResolution <= 0 {
		c.CubeResolution = DefaultCubeResolution
	}
	if c.Tunables == (Tunables{}) {
		c.Tunables = DefaultTunables()
	}
	if c.Shaders == nil {
		c.Shaders = shader.NewLibrary("")
	}
	return c, nil
}
