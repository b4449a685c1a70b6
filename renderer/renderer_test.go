package renderer

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/richinsley/gosketch/graphics"
	"github.com/stretchr/testify/assert"
)

func TestFlipRows(t *testing.T) {
	pix := []byte{
		1, 1, 1, 1,
		2, 2, 2, 2,
		3, 3, 3, 3,
	}
	flipRows(pix, 4, 3)
	assert.Equal(t, []byte{
		3, 3, 3, 3,
		2, 2, 2, 2,
		1, 1, 1, 1,
	}, pix)

	even := []byte{1, 2, 3, 4}
	flipRows(even, 2, 2)
	assert.Equal(t, []byte{3, 4, 1, 2}, even)
}

func TestCubeFacesAreOrthonormal(t *testing.T) {
	seen := map[uint32]bool{}
	for i, f := range cubeFaces {
		assert.False(t, seen[f.target], "face %d duplicated", i)
		seen[f.target] = true
		assert.InDelta(t, 1, f.look.Len(), 1e-6)
		assert.InDelta(t, 1, f.up.Len(), 1e-6)
		assert.InDelta(t, 0, f.look.Dot(f.up), 1e-6, "face %d", i)
	}
	assert.Len(t, seen, 6)
}

func TestCubeFaceViewLooksAlongAxis(t *testing.T) {
	origin := mgl32.Vec3{0, 0, 0}
	for i, f := range cubeFaces {
		// A point one unit along the face direction lands on the view axis.
		p := f.view(origin).Mul4x1(f.look.Vec4(1))
		assert.InDelta(t, 0, p.X(), 1e-5, "face %d", i)
		assert.InDelta(t, 0, p.Y(), 1e-5, "face %d", i)
		assert.InDelta(t, -1, p.Z(), 1e-5, "face %d", i)
	}
}

func TestQuadCoversClipSpace(t *testing.T) {
	assert.Len(t, quadVertices, 12)
	for _, v := range quadVertices {
		assert.True(t, v == 1 || v == -1)
	}
}

func TestClearColor(t *testing.T) {
	linear := clearColor(0xeeeeee, 1, graphics.LinearColorSpace)
	assert.InDelta(t, 0xee/255.0, linear[0], 1e-6)
	assert.Equal(t, float32(1), linear[3])

	srgb := clearColor(0xeeeeee, 1, graphics.SRGBColorSpace)
	assert.InDelta(t, 0.855, srgb[0], 1e-3)
	assert.Equal(t, srgb[0], srgb[1])
	assert.Equal(t, srgb[1], srgb[2])

	red := clearColor(0xff0000, 0.5, graphics.SRGBColorSpace)
	assert.InDelta(t, 1, red[0], 1e-6)
	assert.Equal(t, float32(0), red[1])
	assert.Equal(t, float32(0.5), red[3])
}

func TestScaleSize(t *testing.T) {
	w, h := scaleSize(800, 600, 2)
	assert.Equal(t, 1600, w)
	assert.Equal(t, 1200, h)

	w, h = scaleSize(801, 601, 1.5)
	assert.Equal(t, 1202, w)
	assert.Equal(t, 902, h)
}

func TestConstructorsReturnNilOnError(t *testing.T) {
	r := &Renderer{}

	cube, err := r.NewCubeCapture(0, 0.1, 100)
	assert.Error(t, err)
	assert.True(t, cube == nil, "cube capture must be a nil interface")

	composer, err := r.NewComposer()
	assert.Error(t, err)
	assert.True(t, composer == nil, "composer must be a nil interface")
}
