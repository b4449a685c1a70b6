package renderer

// Options configures a Renderer.
type Options struct {
	// Offscreen renders into an internal framebuffer that can be read back
	// with ReadPixels instead of the window's default framebuffer.
	Offscreen bool
	// ES translates shaders to ESSL instead of desktop GLSL 4.10.
	ES bool
}
