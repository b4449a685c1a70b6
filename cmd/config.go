package main

import (
	"fmt"

	"github.com/richinsley/gosketch/options"
	"github.com/richinsley/gosketch/shader"
	"github.com/richinsley/gosketch/sketch"
)

// sketchConfig merges the settings file with the -variant flag. A zero
// variant keeps the file's choice.
func sketchConfig(s options.Settings, variant int, lib *shader.Library) (sketch.Config, error) {
	if variant != 0 {
		s.Variant = variant
	}
	if err := s.Validate(); err != nil {
		return sketch.Config{}, err
	}
	clearColor, err := options.ParseColor(s.ClearColor)
	if err != nil {
		return sketch.Config{}, fmt.Errorf("clear_color: %w", err)
	}

	cfg := sketch.DefaultConfig(sketch.Variant(s.Variant))
	cfg.ClearColor = clearColor
	cfg.Increment = s.Increment
	cfg.CubeResolution = s.CubeResolution
	cfg.Tunables = sketch.Tunables{
		RefractionRatio: s.Fresnel.RefractionRatio,
		FresnelBias:     s.Fresnel.Bias,
		FresnelScale:    s.Fresnel.Scale,
		FresnelPower:    s.Fresnel.Power,
		Zoom:            s.Fresnel.Zoom,
	}
	cfg.Shaders = lib
	return cfg, nil
}
