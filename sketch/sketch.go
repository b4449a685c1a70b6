// Package sketch renders a shader-driven sphere scene with an animated time
// uniform, orbit camera controls and a tunable-parameter panel.
package sketch

import (
	"errors"
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/richinsley/gosketch/controls"
	"github.com/richinsley/gosketch/graphics"
	"github.com/richinsley/gosketch/logger"
	"github.com/richinsley/gosketch/panel"
	"github.com/richinsley/gosketch/scene"
	"github.com/richinsley/gosketch/shader"
	"go.uber.org/zap"
)

var ErrDisposed = errors.New("sketch disposed")

// materialSource remembers which library sources built a material so they
// can be reloaded.
type materialSource struct {
	material *scene.Material
	vertex   string
	fragment string
}

// Sketch owns one scene, one camera and the engine objects that draw them.
// All methods must be called from the thread that runs the host's frames.
type Sketch struct {
	cfg    Config
	host   graphics.Host
	engine graphics.Engine

	scene    *scene.Scene
	camera   *scene.PerspectiveCamera
	controls *controls.Orbit
	panel    *panel.Panel

	background *scene.Mesh
	foreground *scene.Mesh
	materials  []materialSource

	// Every schema's time and resolution fields, for the per-frame and
	// per-resize updates.
	clocks      []*float32
	resolutions []*mgl32.Vec4

	backgroundUniforms *shader.BackgroundUniforms
	basicForeground    *shader.BasicUniforms
	fresnelUniforms    *shader.FresnelUniforms
	postUniforms       *shader.PostUniforms

	cube     graphics.CubeCapture
	composer graphics.Composer

	time      float64
	increment float64
	playing   bool
	pending   graphics.FrameID

	width, height int
	removeResize  func()
	err           error
	disposed      bool
}

// New builds the sketch against host, draws through engine and starts the
// render loop. The first frame runs on the host's next refresh.
func New(host graphics.Host, engine graphics.Engine, cfg Config) (*Sketch, error) {
	cfg, err := cfg.withDefaults()
	if err != nil {
		return nil, err
	}

	s := &Sketch{
		cfg:       cfg,
		host:      host,
		engine:    engine,
		scene:     scene.NewScene(),
		increment: cfg.Increment,
		playing:   true,
	}

	width, height := host.Size()
	engine.SetPixelRatio(host.PixelRatio())
	engine.SetSize(width, height)
	engine.SetClearColor(cfg.ClearColor, 1)
	engine.SetOutputColorSpace(graphics.SRGBColorSpace)

	aspect := float32(1)
	if width > 0 && height > 0 {
		aspect = float32(width) / float32(height)
	}
	s.camera = scene.NewPerspectiveCamera(cameraFOV, aspect, cameraNear, cameraFar)
	s.camera.Position = mgl32.Vec3{0, 0, cameraZ}

	if input, ok := host.(graphics.PointerSource); ok {
		s.controls = controls.NewOrbit(s.camera, input)
	}

	if err := s.addObjects(); err != nil {
		s.Dispose()
		return nil, fmt.Errorf("failed to build %s scene: %w", cfg.Variant, err)
	}
	if cfg.Variant == Fresnel {
		if err := s.addPostProcessing(); err != nil {
			s.Dispose()
			return nil, fmt.Errorf("failed to build post-processing: %w", err)
		}
	}

	s.Resize()
	s.removeResize = host.OnResize(s.Resize)
	s.schedule()
	s.settings()

	logger.Log.Info("sketch ready",
		zap.Stringer("variant", cfg.Variant),
		zap.Int("width", width),
		zap.Int("height", height),
		zap.Int("meshes", s.scene.Len()))
	return s, nil
}

// Resize re-reads the surface size and propagates it to the device, the
// camera and every resolution uniform. Zero-sized surfaces are ignored.
func (s *Sketch) Resize() {
	if s.disposed {
		return
	}
	width, height := s.host.Size()
	if width <= 0 || height <= 0 {
		logger.Log.Debug("ignoring resize to empty surface", zap.Int("width", width), zap.Int("height", height))
		return
	}
	s.width, s.height = width, height

	s.engine.SetPixelRatio(s.host.PixelRatio())
	s.engine.SetSize(width, height)
	s.camera.Aspect = float32(width) / float32(height)
	s.camera.UpdateProjectionMatrix()

	res := mgl32.Vec4{float32(width), float32(height), 1, 1}
	for _, r := range s.resolutions {
		*r = res
	}
	if s.composer != nil {
		s.composer.SetSize(width, height)
	}
	logger.Log.Debug("resized", zap.Int("width", width), zap.Int("height", height))
}

// ReloadShaders re-reads every material's sources from the shader library.
// The engine rebuilds the programs before the next draw.
func (s *Sketch) ReloadShaders() error {
	if s.disposed {
		return ErrDisposed
	}
	for _, ms := range s.materials {
		vs, err := s.cfg.Shaders.Source(ms.vertex)
		if err != nil {
			return fmt.Errorf("reload %s: %w", ms.material.Name, err)
		}
		fs, err := s.cfg.Shaders.Source(ms.fragment)
		if err != nil {
			return fmt.Errorf("reload %s: %w", ms.material.Name, err)
		}
		ms.material.VertexShader = vs
		ms.material.FragmentShader = fs
		ms.material.NeedsUpdate()
	}
	logger.Log.Info("shaders reloaded", zap.Int("materials", len(s.materials)))
	return nil
}

// Dispose stops the loop, detaches every listener and releases engine
// resources. It is safe to call more than once.
func (s *Sketch) Dispose() {
	if s.disposed {
		return
	}
	s.disposed = true
	s.playing = false
	if s.pending != 0 {
		s.host.CancelFrame(s.pending)
		s.pending = 0
	}
	if s.removeResize != nil {
		s.removeResize()
		s.removeResize = nil
	}
	if s.controls != nil {
		s.controls.Dispose()
	}
	if s.composer != nil {
		s.composer.Dispose()
	}
	if s.cube != nil {
		s.cube.Dispose()
	}
	s.engine.Release(s.scene)
}

func (s *Sketch) Scene() *scene.Scene              { return s.scene }
func (s *Sketch) Camera() *scene.PerspectiveCamera { return s.camera }
func (s *Sketch) Controls() *controls.Orbit        { return s.controls }
func (s *Sketch) Panel() *panel.Panel              { return s.panel }
func (s *Sketch) Variant() Variant                 { return s.cfg.Variant }
func (s *Sketch) Time() float64                    { return s.time }
func (s *Sketch) Increment() float64               { return s.increment }
func (s *Sketch) Size() (int, int)                 { return s.width, s.height }

// Err returns the fault that stopped the loop, if any.
func (s *Sketch) Err() error {
	return s.err
}
