package options

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

var ErrInvalidVariant = errors.New("invalid sketch variant")

// FresnelSettings holds the initial values of the fresnel panel controls.
type FresnelSettings struct {
	RefractionRatio float32 `toml:"refraction_ratio"`
	Bias            float32 `toml:"bias"`
	Scale           float32 `toml:"scale"`
	Power           float32 `toml:"power"`
	Zoom            float32 `toml:"zoom"`
}

// Settings is the optional TOML settings file. It is only ever read.
type Settings struct {
	Variant        int             `toml:"variant"`
	ClearColor     string          `toml:"clear_color"`
	Increment      float64         `toml:"increment"`
	CubeResolution int             `toml:"cube_resolution"`
	Fresnel        FresnelSettings `toml:"fresnel"`
}

func DefaultSettings() Settings {
	return Settings{
		Variant:        2,
		ClearColor:     "#eeeeee",
		CubeResolution: 256,
		Fresnel: FresnelSettings{
			RefractionRatio: 1.02,
			Bias:            0.1,
			Scale:           1.0,
			Power:           2.0,
			Zoom:            0.5,
		},
	}
}

// LoadSettings reads path over the defaults. An empty path returns the
// defaults unchanged.
func LoadSettings(path string) (Settings, error) {
	s := DefaultSettings()
	if path == "" {
		return s, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return s, fmt.Errorf("failed to read settings: %w", err)
	}
	if err := toml.Unmarshal(data, &s); err != nil {
		return s, fmt.Errorf("failed to parse settings %s: %w", path, err)
	}
	if err := s.Validate(); err != nil {
		return s, fmt.Errorf("invalid settings %s: %w", path, err)
	}
	return s, nil
}

// Validate rejects unknown variants and malformed colors, and clamps the
// tunables into their panel ranges.
func (s *Settings) Validate() error {
	if s.Variant != 1 && s.Variant != 2 {
		return fmt.Errorf("%w: %d", ErrInvalidVariant, s.Variant)
	}
	if _, err := ParseColor(s.ClearColor); err != nil {
		return err
	}
	if s.Increment < 0 {
		s.Increment = 0
	}
	if s.CubeResolution < 0 {
		s.CubeResolution = 0
	}
	f := &s.Fresnel
	f.RefractionRatio = clamp(f.RefractionRatio, 0, 3)
	f.Bias = clamp(f.Bias, 0, 3)
	f.Scale = clamp(f.Scale, 0, 3)
	f.Power = clamp(f.Power, 0, 3)
	f.Zoom = clamp(f.Zoom, 0, 1)
	return nil
}

// ParseColor accepts "#rrggbb", "0xrrggbb" or "rrggbb".
func ParseColor(s string) (uint32, error) {
	hex := strings.TrimSpace(s)
	hex = strings.TrimPrefix(hex, "#")
	hex = strings.TrimPrefix(strings.TrimPrefix(hex, "0x"), "0X")
	if len(hex) != 6 {
		return 0, fmt.Errorf("invalid color %q", s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid color %q: %w", s, err)
	}
	return uint32(v), nil
}

func clamp(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
