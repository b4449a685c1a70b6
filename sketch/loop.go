package sketch

import (
	"github.com/richinsley/gosketch/logger"
	"github.com/richinsley/gosketch/scene"
	"go.uber.org/zap"
)

// setVisible toggles the foreground around the cube capture.
var setVisible = (*scene.Mesh).SetVisible

// Playing reports whether frames are being scheduled.
func (s *Sketch) Playing() bool {
	return s.playing
}

// Stop halts the animation after the frame in flight, which runs as a
// no-op. The last drawn frame stays on screen.
func (s *Sketch) Stop() {
	s.playing = false
}

// Play resumes a stopped sketch. The next host refresh advances time by one
// increment. It does nothing while playing, after a fault or after Dispose.
func (s *Sketch) Play() {
	if s.playing || s.disposed || s.err != nil {
		return
	}
	s.playing = true
	s.schedule()
}

// schedule requests the next frame unless one is already pending, so a
// Stop/Play pair inside one refresh never starts a second frame chain.
func (s *Sketch) schedule() {
	if s.pending != 0 {
		return
	}
	s.pending = s.host.RequestFrame(s.frame)
}

func (s *Sketch) frame() {
	s.pending = 0
	if !s.playing {
		return
	}

	s.time += s.increment
	clock := float32(s.time)
	for _, t := range s.clocks {
		*t = clock
	}

	if s.cube != nil {
		setVisible(s.foreground, false)
		err := s.cube.Update(s.scene)
		setVisible(s.foreground, true)
		if err != nil {
			s.fail(err)
			return
		}
		s.fresnelUniforms.Cube = s.cube.Texture()
	}

	s.schedule()

	if s.controls != nil {
		s.controls.Update()
	}
	if err := s.engine.Render(s.scene, s.camera); err != nil {
		s.fail(err)
		return
	}
	if s.composer != nil {
		if err := s.composer.Render(); err != nil {
			s.fail(err)
		}
	}
}

// fail records a fault and stops the loop. The frame already scheduled
// becomes a no-op.
func (s *Sketch) fail(err error) {
	s.err = err
	s.playing = false
	logger.Log.Error("render loop stopped", zap.Error(err))
}
