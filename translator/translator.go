package translator

import (
	"context"
	"fmt"
	"sync"

	gst "github.com/richinsley/goshadertranslator"
)

var (
	translator *gst.ShaderTranslator
	initErr    error
	initOnce   sync.Once
)

// Get returns the shared translator, creating it on first use.
func Get() (*gst.ShaderTranslator, error) {
	initOnce.Do(func() {
		translator, initErr = gst.NewShaderTranslator(context.Background())
	})
	return translator, initErr
}

// Program is a vertex/fragment pair translated for the current GL profile.
type Program struct {
	Vertex   string
	Fragment string
	// Uniforms maps source uniform names to the names the translator emitted.
	Uniforms map[string]string
}

// MappedName returns the emitted name for a source uniform, or "" if the
// translator dropped it.
func (p *Program) MappedName(name string) string {
	return p.Uniforms[name]
}

// Translate converts GLSL ES 3.00 sources to desktop GLSL 4.10, or to ESSL
// when es is set.
func Translate(vertex, fragment string, es bool) (*Program, error) {
	t, err := Get()
	if err != nil {
		return nil, fmt.Errorf("shader translator unavailable: %w", err)
	}

	outputFormat := gst.OutputFormatGLSL410
	if es {
		outputFormat = gst.OutputFormatESSL
	}

	vs, err := t.TranslateShader(vertex, "vertex", gst.ShaderSpecWebGL2, outputFormat)
	if err != nil {
		return nil, fmt.Errorf("vertex shader translation failed: %w", err)
	}
	fs, err := t.TranslateShader(fragment, "fragment", gst.ShaderSpecWebGL2, outputFormat)
	if err != nil {
		return nil, fmt.Errorf("fragment shader translation failed: %w", err)
	}

	p := &Program{
		Vertex:   vs.Code,
		Fragment: fs.Code,
		Uniforms: make(map[string]string, len(vs.Variables)+len(fs.Variables)),
	}
	for name, v := range vs.Variables {
		p.Uniforms[name] = v.MappedName
	}
	for name, v := range fs.Variables {
		p.Uniforms[name] = v.MappedName
	}
	return p, nil
}
