package shader

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/richinsley/gosketch/scene"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuiltinSourcesResolve(t *testing.T) {
	lib := NewLibrary("")
	for _, name := range []string{
		SphereVertex, BasicBackground, BasicForeground,
		FresnelBackground, FresnelVertex, FresnelFragment,
		QuadVertex, DotScreenFragment,
	} {
		src, err := lib.Source(name)
		require.NoError(t, err, name)
		assert.True(t, strings.HasPrefix(src, "#version 300 es"), name)
		assert.NotContains(t, src, "#include", name)
	}
}

func TestIncludeExpansion(t *testing.T) {
	src, err := NewLibrary("").Source(BasicBackground)
	require.NoError(t, err)
	assert.Contains(t, src, "float fbm(vec3 p)")
}

func TestOverrideDirShadowsBuiltin(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "post"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "post", "dots.frag"), []byte("custom\n"), 0o644))

	lib := NewLibrary(dir)
	src, err := lib.Source(DotScreenFragment)
	require.NoError(t, err)
	assert.Equal(t, "custom\n", src)

	// Names without an override still come from the embedded set.
	src, err = lib.Source(QuadVertex)
	require.NoError(t, err)
	assert.Contains(t, src, "in_vert")
}

func TestUnknownShader(t *testing.T) {
	_, err := NewLibrary("").Source("nope.frag")
	assert.Error(t, err)
}

func TestIncludeCycle(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.glsl"), []byte("#include \"a.glsl\"\n"), 0o644))
	_, err := NewLibrary(dir).Source("a.glsl")
	assert.Error(t, err)
}

func TestNames(t *testing.T) {
	names := Names()
	assert.Contains(t, names, FresnelFragment)
	assert.Contains(t, names, "noise.glsl")
}

type recorder map[string]any

func (r recorder) Float(name string, v float32)        { r[name] = v }
func (r recorder) Vec2(name string, v mgl32.Vec2)      { r[name] = v }
func (r recorder) Vec4(name string, v mgl32.Vec4)      { r[name] = v }
func (r recorder) Cube(name string, tex scene.Texture) { r[name] = tex }

type tex uint32

func (t tex) TextureID() uint32 { return uint32(t) }

func TestFresnelUniformsApply(t *testing.T) {
	u := NewFresnelUniforms()
	rec := recorder{}
	u.Apply(rec)
	assert.NotContains(t, rec, "tCube")
	assert.Equal(t, float32(DefaultRefractionRatio), rec["mRefractionRatio"])

	u.Cube = tex(7)
	u.Apply(rec)
	assert.Equal(t, tex(7), rec["tCube"])
}

func TestBackgroundUniformsApply(t *testing.T) {
	u := NewBackgroundUniforms()
	u.Time = 1.5
	rec := recorder{}
	u.Apply(rec)
	assert.Equal(t, float32(1.5), rec["time"])
	assert.Equal(t, mgl32.Vec2{1, 1}, rec["uvRate1"])
	assert.Equal(t, float32(DefaultZoom), rec["uZoom"])

	basic := recorder{}
	NewBasicUniforms().Apply(basic)
	assert.NotContains(t, basic, "uZoom")
}

func TestWatcherReportsChanges(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "fresnel"), 0o755))

	w, err := Watch(dir)
	require.NoError(t, err)
	defer w.Close()

	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "fresnel", "fresnel.frag"), []byte("x"), 0o644))

	select {
	case name := <-w.Changes():
		assert.Equal(t, FresnelFragment, name)
	case <-time.After(5 * time.Second):
		t.Fatal("no change reported")
	}
}
