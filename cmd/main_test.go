package main

import (
	"testing"

	glfw "github.com/go-gl/glfw/v3.3/glfw"
	"github.com/richinsley/gosketch/options"
	"github.com/richinsley/gosketch/shader"
	"github.com/richinsley/gosketch/sketch"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSketchConfigDefaults(t *testing.T) {
	lib := shader.NewLibrary("")
	cfg, err := sketchConfig(options.DefaultSettings(), 0, lib)
	require.NoError(t, err)

	assert.Equal(t, sketch.Fresnel, cfg.Variant)
	assert.Equal(t, sketch.DefaultClearColor, cfg.ClearColor)
	assert.Equal(t, sketch.DefaultTunables(), cfg.Tunables)
	assert.Equal(t, sketch.DefaultCubeResolution, cfg.CubeResolution)
	assert.Same(t, lib, cfg.Shaders)
}

func TestSketchConfigVariantFlagWins(t *testing.T) {
	s := options.DefaultSettings()
	s.Fresnel.Zoom = 0.8
	cfg, err := sketchConfig(s, 1, nil)
	require.NoError(t, err)
	assert.Equal(t, sketch.Basic, cfg.Variant)
	assert.Equal(t, float32(0.8), cfg.Tunables.Zoom)

	_, err = sketchConfig(s, 5, nil)
	assert.ErrorIs(t, err, options.ErrInvalidVariant)
}

func TestNudgeSteps(t *testing.T) {
	assert.Equal(t, 1, nudgeSteps(0))
	assert.Equal(t, 10, nudgeSteps(glfw.ModShift))
	assert.Equal(t, 10, nudgeSteps(glfw.ModShift|glfw.ModControl))
	assert.Equal(t, 1, nudgeSteps(glfw.ModControl))
}

func TestStatusLine(t *testing.T) {
	assert.Equal(t, "playing", statusLine(true, ""))
	assert.Equal(t, "stopped | (1/5) uZoom = 0.50 [0..1]", statusLine(false, "(1/5) uZoom = 0.50 [0..1]"))
}
