package scene

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSphereGeometryCounts(t *testing.T) {
	g := NewSphereGeometry(5, 32, 32)

	assert.Equal(t, 33*33, g.VertexCount())
	assert.Len(t, g.Normals, 33*33*3)
	assert.Len(t, g.UVs, 33*33*2)
	// Two triangles per quad, minus one per quad on the two pole rows.
	assert.Len(t, g.Indices, (32*30*2+32*2)*3)
}

func TestSphereGeometryRadius(t *testing.T) {
	g := NewSphereGeometry(0.4, 16, 8)
	for i := 0; i < g.VertexCount(); i++ {
		p := mgl32.Vec3{g.Positions[i*3], g.Positions[i*3+1], g.Positions[i*3+2]}
		assert.InDelta(t, 0.4, p.Len(), 1e-5)
	}

	// North pole first, south pole last.
	assert.InDelta(t, 0.4, g.Positions[1], 1e-6)
	assert.InDelta(t, -0.4, g.Positions[len(g.Positions)-2], 1e-6)

	for _, idx := range g.Indices {
		require.Less(t, int(idx), g.VertexCount())
	}
}

func TestInterleavedLayout(t *testing.T) {
	g := NewSphereGeometry(1, 4, 2)
	data := g.Interleaved()
	require.Len(t, data, g.VertexCount()*8)

	// Vertex 0 is the north pole: position (0,1,0), normal (0,1,0), uv (0.125, 1).
	assert.InDelta(t, 1, data[1], 1e-6)
	assert.InDelta(t, 1, data[4], 1e-6)
	assert.InDelta(t, 0.125, data[6], 1e-6)
	assert.InDelta(t, 1, data[7], 1e-6)
}

func TestCameraProjectionDirty(t *testing.T) {
	c := NewPerspectiveCamera(70, 800.0/600.0, 0.001, 1000)
	assert.True(t, c.ProjectionDirty())

	first := c.ProjectionMatrix()
	assert.False(t, c.ProjectionDirty())

	c.Aspect = 2
	c.UpdateProjectionMatrix()
	assert.True(t, c.ProjectionDirty())
	second := c.ProjectionMatrix()
	assert.NotEqual(t, first, second)
	assert.Equal(t, mgl32.Perspective(mgl32.DegToRad(70), 2, 0.001, 1000), second)
}

func TestSceneAddIsIdempotent(t *testing.T) {
	s := NewScene()
	m := NewMesh("a", NewSphereGeometry(1, 8, 8), nil)
	s.Add(m)
	s.Add(m)
	s.Add(NewMesh("b", nil, nil))

	assert.Equal(t, 2, s.Len())
	assert.Equal(t, "a", s.Meshes()[0].Name)
	assert.True(t, m.Visible)
}

func TestMaterialVersion(t *testing.T) {
	m := NewMaterial("bg", "v", "f", nil)
	assert.Equal(t, 0, m.Version())
	m.NeedsUpdate()
	m.NeedsUpdate()
	assert.Equal(t, 2, m.Version())
	assert.Equal(t, "bg", PassName(ShaderPass{Material: m}))
	assert.Equal(t, "scene", PassName(ScenePass{}))
}
