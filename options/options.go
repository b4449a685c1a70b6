package options

type SketchOptions struct {
	Variant    *int
	Width      *int
	Height     *int
	ConfigFile *string
	ShaderDir  *string // Directory of .glsl/.vert/.frag files that override the embedded shaders
	Help       *bool
	Debug      *bool
	// Recording options
	Record     *bool
	Duration   *float64
	FPS        *int
	OutputFile *string
	FFmpegPath *string
	Codec      *string
}

// Frames returns how many frames a recording of Duration seconds at FPS
// contains.
func (o *SketchOptions) Frames() int {
	if o.Duration == nil || o.FPS == nil || *o.FPS <= 0 || *o.Duration <= 0 {
		return 0
	}
	return int(*o.Duration * float64(*o.FPS))
}
