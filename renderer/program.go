package renderer

import (
	"fmt"
	"strings"

	gl "github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/richinsley/gosketch/logger"
	"github.com/richinsley/gosketch/scene"
	xlate "github.com/richinsley/gosketch/translator"
	"go.uber.org/zap"
)

// program is a linked shader program built from one material version.
type program struct {
	id        uint32
	version   int
	source    *xlate.Program
	locations map[string]int32
}

// location resolves a source uniform name through the translator's name
// mapping. Unknown or optimized-out uniforms return -1.
func (p *program) location(name string) int32 {
	if loc, ok := p.locations[name]; ok {
		return loc
	}
	loc := int32(-1)
	if mapped := p.source.MappedName(name); mapped != "" {
		loc = gl.GetUniformLocation(p.id, gl.Str(mapped+"\x00"))
	}
	p.locations[name] = loc
	return loc
}

func (p *program) setMat4(name string, m mgl32.Mat4) {
	if loc := p.location(name); loc != -1 {
		gl.UniformMatrix4fv(loc, 1, false, &m[0])
	}
}

func (p *program) setVec3(name string, v mgl32.Vec3) {
	if loc := p.location(name); loc != -1 {
		gl.Uniform3f(loc, v[0], v[1], v[2])
	}
}

func (p *program) delete() {
	gl.DeleteProgram(p.id)
}

// program returns the compiled program for m, rebuilding it when the
// material's version changed. A failed rebuild keeps the previous program.
func (r *Renderer) program(m *scene.Material) (*program, error) {
	cached, ok := r.programs[m]
	if ok && cached.version == m.Version() {
		return cached, nil
	}

	p, err := r.buildProgram(m)
	if err != nil {
		if ok {
			logger.Log.Error("shader rebuild failed, keeping previous program",
				zap.String("material", m.Name), zap.Error(err))
			cached.version = m.Version()
			return cached, nil
		}
		return nil, fmt.Errorf("material %s: %w", m.Name, err)
	}
	if ok {
		cached.delete()
		logger.Log.Info("shader rebuilt", zap.String("material", m.Name), zap.Int("version", m.Version()))
	}
	r.programs[m] = p
	return p, nil
}

func (r *Renderer) buildProgram(m *scene.Material) (*program, error) {
	translated, err := xlate.Translate(m.VertexShader, m.FragmentShader, r.opts.ES)
	if err != nil {
		return nil, err
	}
	id, err := newProgram(translated.Vertex, translated.Fragment)
	if err != nil {
		return nil, fmt.Errorf("failed to create shader program: %w", err)
	}
	return &program{
		id:        id,
		version:   m.Version(),
		source:    translated,
		locations: make(map[string]int32),
	}, nil
}

func newProgram(vertexShaderSource, fragmentShaderSource string) (uint32, error) {
	vertexShader, err := compileShader(vertexShaderSource, gl.VERTEX_SHADER)
	if err != nil {
		return 0, err
	}
	fragmentShader, err := compileShader(fragmentShaderSource, gl.FRAGMENT_SHADER)
	if err != nil {
		gl.DeleteShader(vertexShader)
		return 0, err
	}

	prog := gl.CreateProgram()
	gl.AttachShader(prog, vertexShader)
	gl.AttachShader(prog, fragmentShader)
	gl.LinkProgram(prog)
	gl.DeleteShader(vertexShader)
	gl.DeleteShader(fragmentShader)

	var status int32
	gl.GetProgramiv(prog, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetProgramiv(prog, gl.INFO_LOG_LENGTH, &logLength)
		log := strings.Repeat("\x00", int(logLength+1))
		gl.GetProgramInfoLog(prog, logLength, nil, gl.Str(log))
		gl.DeleteProgram(prog)
		return 0, fmt.Errorf("failed to link program: %v", log)
	}
	return prog, nil
}

func compileShader(source string, shaderType uint32) (uint32, error) {
	shader := gl.CreateShader(shaderType)
	csources, free := gl.Strs(source + "\x00")
	gl.ShaderSource(shader, 1, csources, nil)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLength)
		logText := strings.Repeat("\x00", int(logLength+1))
		gl.GetShaderInfoLog(shader, logLength, nil, gl.Str(logText))
		gl.DeleteShader(shader)
		return 0, fmt.Errorf("failed to compile shader: %v", logText)
	}
	return shader, nil
}
