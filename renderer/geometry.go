package renderer

import (
	gl "github.com/go-gl/gl/v4.1-core/gl"
	"github.com/richinsley/gosketch/scene"
)

// Attribute locations shared by every mesh vertex shader.
const (
	positionLocation = 0
	normalLocation   = 1
	uvLocation       = 2

	floatSize    = 4
	vertexFloats = 8
)

type geometryBuffers struct {
	vao, vbo, ebo uint32
	count         int32
}

func (g *geometryBuffers) delete() {
	gl.DeleteBuffers(1, &g.vbo)
	gl.DeleteBuffers(1, &g.ebo)
	gl.DeleteVertexArrays(1, &g.vao)
}

// geometry uploads g on first use.
func (r *Renderer) geometry(g *scene.Geometry) *geometryBuffers {
	if b, ok := r.geometries[g]; ok {
		return b
	}
	b := uploadGeometry(g)
	r.geometries[g] = b
	return b
}

func uploadGeometry(g *scene.Geometry) *geometryBuffers {
	b := &geometryBuffers{count: int32(len(g.Indices))}
	vertices := g.Interleaved()

	gl.GenVertexArrays(1, &b.vao)
	gl.BindVertexArray(b.vao)

	gl.GenBuffers(1, &b.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, b.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(vertices)*floatSize, gl.Ptr(vertices), gl.STATIC_DRAW)

	gl.GenBuffers(1, &b.ebo)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, b.ebo)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(g.Indices)*4, gl.Ptr(g.Indices), gl.STATIC_DRAW)

	stride := int32(vertexFloats * floatSize)
	gl.EnableVertexAttribArray(positionLocation)
	gl.VertexAttribPointer(positionLocation, 3, gl.FLOAT, false, stride, gl.PtrOffset(0))
	gl.EnableVertexAttribArray(normalLocation)
	gl.VertexAttribPointer(normalLocation, 3, gl.FLOAT, false, stride, gl.PtrOffset(3*floatSize))
	gl.EnableVertexAttribArray(uvLocation)
	gl.VertexAttribPointer(uvLocation, 2, gl.FLOAT, false, stride, gl.PtrOffset(6*floatSize))

	gl.BindVertexArray(0)
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	return b
}

// Two triangles covering clip space.
var quadVertices = []float32{
	-1.0, 1.0, -1.0, -1.0, 1.0, -1.0,
	-1.0, 1.0, 1.0, -1.0, 1.0, 1.0,
}

func newQuad() (vao, vbo uint32) {
	gl.GenVertexArrays(1, &vao)
	gl.GenBuffers(1, &vbo)
	gl.BindVertexArray(vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(quadVertices)*floatSize, gl.Ptr(quadVertices), gl.STATIC_DRAW)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointer(0, 2, gl.FLOAT, false, 2*floatSize, gl.PtrOffset(0))
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	gl.BindVertexArray(0)
	return vao, vbo
}
