package scene

import "github.com/go-gl/mathgl/mgl32"

// Side selects which faces of a mesh are rasterized.
type Side int

const (
	FrontSide Side = iota
	BackSide
	DoubleSide
)

// Texture is an engine-owned texture that can be bound to a sampler uniform.
type Texture interface {
	TextureID() uint32
}

// UniformSetter receives uniform values by shader name. Engines resolve the
// name to a location; names the program does not use are ignored.
type UniformSetter interface {
	Float(name string, v float32)
	Vec2(name string, v mgl32.Vec2)
	Vec4(name string, v mgl32.Vec4)
	Cube(name string, tex Texture)
}

// Uniforms is a typed uniform schema for one shader program.
type Uniforms interface {
	Apply(s UniformSetter)
}

// Material is a vertex/fragment shader pair plus the uniforms fed to it.
type Material struct {
	Name           string
	VertexShader   string
	FragmentShader string
	Side           Side
	Uniforms       Uniforms

	version int
}

func NewMaterial(name, vertex, fragment string, u Uniforms) *Material {
	return &Material{
		Name:           name,
		VertexShader:   vertex,
		FragmentShader: fragment,
		Side:           FrontSide,
		Uniforms:       u,
	}
}

// NeedsUpdate tells engines that the shader sources changed and the program
// must be rebuilt before the next draw.
func (m *Material) NeedsUpdate() {
	m.version++
}

func (m *Material) Version() int {
	return m.version
}

// Pass is one step of a post-processing chain.
type Pass interface {
	passName() string
}

// ScenePass draws Scene from Camera into the chain's working buffer.
type ScenePass struct {
	Scene  *Scene
	Camera *PerspectiveCamera
}

// ShaderPass draws a full-screen quad with Material, reading the previous
// pass's output through the sampler named Input.
type ShaderPass struct {
	Material *Material
	Input    string
}

func (ScenePass) passName() string { return "scene" }

func (p ShaderPass) passName() string { return p.Material.Name }

// PassName returns a short label for logging.
func PassName(p Pass) string {
	return p.passName()
}
