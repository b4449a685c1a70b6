package glfwcontext

// surfaceSize is the last seen window and framebuffer size.
type surfaceSize struct {
	width, height     int
	fbWidth, fbHeight int
}

// update records a new sample and reports whether either size changed.
func (s *surfaceSize) update(w, h, fbw, fbh int) bool {
	next := surfaceSize{width: w, height: h, fbWidth: fbw, fbHeight: fbh}
	if *s == next {
		return false
	}
	*s = next
	return true
}
