package sketch

import (
	"github.com/richinsley/gosketch/panel"
	"github.com/richinsley/gosketch/scene"
	"github.com/richinsley/gosketch/shader"
)

func (s *Sketch) newMaterial(name, vertex, fragment string, u scene.Uniforms) (*scene.Material, error) {
	vs, err := s.cfg.Shaders.Source(vertex)
	if err != nil {
		return nil, err
	}
	fs, err := s.cfg.Shaders.Source(fragment)
	if err != nil {
		return nil, err
	}
	m := scene.NewMaterial(name, vs, fs, u)
	m.Side = scene.DoubleSide
	s.materials = append(s.materials, materialSource{material: m, vertex: vertex, fragment: fragment})
	return m, nil
}

func (s *Sketch) addObjects() error {
	var background scene.Uniforms
	backgroundFragment := shader.BasicBackground
	if s.cfg.Variant == Fresnel {
		u := shader.NewBackgroundUniforms()
		u.Zoom = s.cfg.Tunables.Zoom
		s.backgroundUniforms = u
		s.clocks = append(s.clocks, &u.Time)
		s.resolutions = append(s.resolutions, &u.Resolution)
		background = u
		backgroundFragment = shader.FresnelBackground
	} else {
		u := shader.NewBasicUniforms()
		s.clocks = append(s.clocks, &u.Time)
		s.resolutions = append(s.resolutions, &u.Resolution)
		background = u
	}

	bgMaterial, err := s.newMaterial("background", shader.SphereVertex, backgroundFragment, background)
	if err != nil {
		return err
	}
	s.background = scene.NewMesh("background", scene.NewSphereGeometry(backgroundRadius, sphereSegments, sphereSegments), bgMaterial)
	s.scene.Add(s.background)

	var fgMaterial *scene.Material
	if s.cfg.Variant == Fresnel {
		cube, cubeErr := s.engine.NewCubeCapture(s.cfg.CubeResolution, cubeNear, cubeFar)
		if cubeErr != nil {
			return cubeErr
		}
		s.cube = cube
		u := shader.NewFresnelUniforms()
		u.RefractionRatio = s.cfg.Tunables.RefractionRatio
		u.FresnelBias = s.cfg.Tunables.FresnelBias
		u.FresnelScale = s.cfg.Tunables.FresnelScale
		u.FresnelPower = s.cfg.Tunables.FresnelPower
		u.Cube = s.cube.Texture()
		s.fresnelUniforms = u
		s.clocks = append(s.clocks, &u.Time)
		s.resolutions = append(s.resolutions, &u.Resolution)
		fgMaterial, err = s.newMaterial("fresnel", shader.FresnelVertex, shader.FresnelFragment, u)
	} else {
		u := shader.NewBasicUniforms()
		s.basicForeground = u
		s.clocks = append(s.clocks, &u.Time)
		s.resolutions = append(s.resolutions, &u.Resolution)
		fgMaterial, err = s.newMaterial("foreground", shader.SphereVertex, shader.BasicForeground, u)
	}
	if err != nil {
		return err
	}
	s.foreground = scene.NewMesh("foreground", scene.NewSphereGeometry(foregroundRadius, sphereSegments, sphereSegments), fgMaterial)
	s.scene.Add(s.foreground)
	return nil
}

func (s *Sketch) addPostProcessing() error {
	s.postUniforms = shader.NewPostUniforms(shader.DefaultPostScale)
	s.resolutions = append(s.resolutions, &s.postUniforms.Resolution)

	m, err := s.newMaterial("dotscreen", shader.QuadVertex, shader.DotScreenFragment, s.postUniforms)
	if err != nil {
		return err
	}
	composer, err := s.engine.NewComposer(
		scene.ScenePass{Scene: s.scene, Camera: s.camera},
		scene.ShaderPass{Material: m, Input: "tDiffuse"},
	)
	if err != nil {
		return err
	}
	s.composer = composer
	return nil
}

// settings builds the tunable panel. Each control writes straight into its
// uniform field.
func (s *Sketch) settings() {
	s.panel = panel.New()
	if s.cfg.Variant != Fresnel {
		return
	}

	f := s.fresnelUniforms
	s.panel.Add("mRefractionRatio", f.RefractionRatio, 0, 3, tunableStep, func(v float32) { f.RefractionRatio = v })
	s.panel.Add("mFresnelBias", f.FresnelBias, 0, 3, tunableStep, func(v float32) { f.FresnelBias = v })
	s.panel.Add("mFresnelScale", f.FresnelScale, 0, 3, tunableStep, func(v float32) { f.FresnelScale = v })
	s.panel.Add("mFresnelPower", f.FresnelPower, 0, 3, tunableStep, func(v float32) { f.FresnelPower = v })

	bg := s.backgroundUniforms
	s.panel.Add("uZoom", bg.Zoom, 0, 1, tunableStep, func(v float32) { bg.Zoom = v })
}
