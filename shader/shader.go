package shader

import (
	"bufio"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"
)

//go:embed glsl
var builtin embed.FS

// Shader source names. Each is a path relative to the library root.
const (
	SphereVertex      = "basic/sphere.vert"
	BasicBackground   = "basic/background.frag"
	BasicForeground   = "basic/foreground.frag"
	FresnelBackground = "fresnel/background.frag"
	FresnelVertex     = "fresnel/fresnel.vert"
	FresnelFragment   = "fresnel/fresnel.frag"
	QuadVertex        = "post/quad.vert"
	DotScreenFragment = "post/dots.frag"
)

const (
	maxIncludeDepth    = 4
	includeDirective   = "#include"
	builtinRootPrefix  = "glsl"
	shaderFileSuffix   = ".glsl"
	vertexFileSuffix   = ".vert"
	fragmentFileSuffix = ".frag"
)

// Library resolves shader sources by name. Files under an optional override
// directory shadow the embedded sources of the same name.
type Library struct {
	dir string
}

// NewLibrary returns a library rooted at dir. An empty dir uses only the
// embedded sources.
func NewLibrary(dir string) *Library {
	return &Library{dir: dir}
}

// Dir returns the override directory, if any.
func (l *Library) Dir() string {
	return l.dir
}

// Source returns the named shader with #include "file" lines expanded.
func (l *Library) Source(name string) (string, error) {
	return l.expand(name, 0)
}

func (l *Library) expand(name string, depth int) (string, error) {
	if depth > maxIncludeDepth {
		return "", fmt.Errorf("include depth exceeded at %s", name)
	}
	raw, err := l.read(name)
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	scanner := bufio.NewScanner(strings.NewReader(raw))
	for scanner.Scan() {
		line := scanner.Text()
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, includeDirective) {
			target := strings.Trim(strings.TrimSpace(strings.TrimPrefix(trimmed, includeDirective)), `"<>`)
			body, err := l.expand(target, depth+1)
			if err != nil {
				return "", fmt.Errorf("%s: %w", name, err)
			}
			sb.WriteString(body)
			sb.WriteByte('\n')
			continue
		}
		sb.WriteString(line)
		sb.WriteByte('\n')
	}
	if err := scanner.Err(); err != nil {
		return "", err
	}
	return sb.String(), nil
}

func (l *Library) read(name string) (string, error) {
	if l.dir != "" {
		data, err := os.ReadFile(filepath.Join(l.dir, filepath.FromSlash(name)))
		if err == nil {
			return string(data), nil
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return "", fmt.Errorf("failed to read shader override %s: %w", name, err)
		}
	}
	data, err := builtin.ReadFile(path.Join(builtinRootPrefix, name))
	if err != nil {
		return "", fmt.Errorf("unknown shader %q: %w", name, err)
	}
	return string(data), nil
}

// Names lists every embedded shader source, sorted.
func Names() []string {
	var names []string
	_ = fs.WalkDir(builtin, builtinRootPrefix, func(p string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}
		names = append(names, strings.TrimPrefix(p, builtinRootPrefix+"/"))
		return nil
	})
	sort.Strings(names)
	return names
}

func isShaderFile(name string) bool {
	switch filepath.Ext(name) {
	case shaderFileSuffix, vertexFileSuffix, fragmentFileSuffix:
		return true
	}
	return false
}
