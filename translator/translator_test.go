package translator

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMappedName(t *testing.T) {
	p := &Program{Uniforms: map[string]string{
		"time":   "_utime",
		"unused": "",
		"tCube":  "_utCube",
	}}
	assert.Equal(t, "_utime", p.MappedName("time"))
	assert.Equal(t, "_utCube", p.MappedName("tCube"))
	assert.Empty(t, p.MappedName("unused"))
	assert.Empty(t, p.MappedName("missing"))
}
