// Package scene holds the engine-neutral description of what a sketch draws:
// meshes, their materials and geometry, and the camera they are seen from.
package scene

import "github.com/go-gl/mathgl/mgl32"

// Scene is an ordered set of meshes.
type Scene struct {
	meshes []*Mesh
}

func NewScene() *Scene {
	return &Scene{}
}

// Add appends m unless it is already part of the scene.
func (s *Scene) Add(m *Mesh) {
	for _, existing := range s.meshes {
		if existing == m {
			return
		}
	}
	s.meshes = append(s.meshes, m)
}

// Meshes returns the meshes in draw order. The slice must not be modified.
func (s *Scene) Meshes() []*Mesh {
	return s.meshes
}

func (s *Scene) Len() int {
	return len(s.meshes)
}

// Mesh is a drawable shape paired with the material that shades it.
type Mesh struct {
	Name     string
	Geometry *Geometry
	Material *Material
	Position mgl32.Vec3
	Visible  bool
}

// NewMesh returns a visible mesh at the origin.
func NewMesh(name string, g *Geometry, m *Material) *Mesh {
	return &Mesh{
		Name:     name,
		Geometry: g,
		Material: m,
		Visible:  true,
	}
}

func (m *Mesh) SetVisible(v bool) {
	m.Visible = v
}

// ModelMatrix returns the mesh's object-to-world transform.
func (m *Mesh) ModelMatrix() mgl32.Mat4 {
	return mgl32.Translate3D(m.Position.X(), m.Position.Y(), m.Position.Z())
}
