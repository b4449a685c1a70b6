// Package panel implements a small tunable-parameter panel. Controls are
// numeric sliders with a range and step. Changing one calls its handler with
// the new value.
package panel

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

var ErrUnknownControl = errors.New("unknown control")

// Control is one named numeric slider.
type Control struct {
	Name string
	Min  float32
	Max  float32
	Step float32

	value    float32
	onChange func(float32)
}

func (c *Control) Value() float32 {
	return c.value
}

// quantize clamps v to [Min, Max] and snaps it to the step grid that starts
// at Min.
func (c *Control) quantize(v float32) float32 {
	if c.Step > 0 {
		k := math.Round(float64(v-c.Min) / float64(c.Step))
		v = c.Min + float32(k)*c.Step
	}
	if v < c.Min {
		v = c.Min
	}
	if v > c.Max {
		v = c.Max
	}
	return v
}

func (c *Control) set(v float32) bool {
	v = c.quantize(v)
	if v == c.value {
		return false
	}
	c.value = v
	if c.onChange != nil {
		c.onChange(v)
	}
	return true
}

func (c *Control) String() string {
	return fmt.Sprintf("%s = %.2f [%g..%g]", c.Name, c.value, c.Min, c.Max)
}

// Panel is an ordered set of controls with one selected for keyboard input.
type Panel struct {
	controls []*Control
	byName   map[string]*Control
	selected int
	onUpdate func(p *Panel)
}

func New() *Panel {
	return &Panel{byName: make(map[string]*Control)}
}

// Add registers a control. The initial value is clamped but onChange is not
// called for it. Adding a name twice replaces the earlier control.
func (p *Panel) Add(name string, initial, min, max, step float32, onChange func(float32)) *Control {
	c := &Control{
		Name:     name,
		Min:      min,
		Max:      max,
		Step:     step,
		onChange: onChange,
	}
	c.value = c.quantize(initial)

	if old, ok := p.byName[name]; ok {
		for i, existing := range p.controls {
			if existing == old {
				p.controls[i] = c
			}
		}
	} else {
		p.controls = append(p.controls, c)
	}
	p.byName[name] = c
	return c
}

// Set moves the named control to v.
func (p *Panel) Set(name string, v float32) error {
	c, ok := p.byName[name]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownControl, name)
	}
	if c.set(v) {
		p.notify()
	}
	return nil
}

// Nudge moves the selected control by steps increments.
func (p *Panel) Nudge(steps int) {
	c := p.Selected()
	if c == nil {
		return
	}
	if c.set(c.value + float32(steps)*c.Step) {
		p.notify()
	}
}

func (p *Panel) Next() {
	if len(p.controls) == 0 {
		return
	}
	p.selected = (p.selected + 1) % len(p.controls)
	p.notify()
}

func (p *Panel) Prev() {
	if len(p.controls) == 0 {
		return
	}
	p.selected = (p.selected - 1 + len(p.controls)) % len(p.controls)
	p.notify()
}

// Selected returns the control that receives nudges, or nil for an empty
// panel.
func (p *Panel) Selected() *Control {
	if len(p.controls) == 0 {
		return nil
	}
	return p.controls[p.selected]
}

func (p *Panel) Controls() []*Control {
	return p.controls
}

// Lookup returns the named control.
func (p *Panel) Lookup(name string) (*Control, bool) {
	c, ok := p.byName[name]
	return c, ok
}

// Summary renders the selected control for a title bar.
func (p *Panel) Summary() string {
	c := p.Selected()
	if c == nil {
		return ""
	}
	return fmt.Sprintf("(%d/%d) %s", p.selected+1, len(p.controls), c)
}

// Values returns every control value keyed by name.
func (p *Panel) Values() map[string]float32 {
	out := make(map[string]float32, len(p.controls))
	for _, c := range p.controls {
		out[c.Name] = c.value
	}
	return out
}

// OnUpdate registers fn to run after the selection or a value changes.
func (p *Panel) OnUpdate(fn func(p *Panel)) {
	p.onUpdate = fn
}

func (p *Panel) notify() {
	if p.onUpdate != nil {
		p.onUpdate(p)
	}
}

func (p *Panel) String() string {
	var sb strings.Builder
	for i, c := range p.controls {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(c.String())
	}
	return sb.String()
}
