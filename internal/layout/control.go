package layout

import (
	"fmt"
	"image/color"
	"sort"
	"strconv"
	"strings"

	"gioui.org/f32"
)

// Fields is the raw field table of one control: lower-cased field name to the
// trimmed text after the colon. Values stay untyped until a consumer asks for them.
type Fields map[string]string

// Has reports whether the field is present with a non-empty value.
func (f Fields) Has(name string) bool {
	return strings.TrimSpace(f[name]) != ""
}

// Control is one block of a layout file.
type Control struct {
	Name   string `yaml:"name"   json:"name"`
	Kind   Kind   `yaml:"kind"   json:"kind"`
	Line   int    `yaml:"line"   json:"line"` // line of the block header
	Fields Fields `yaml:"fields" json:"fields"`
}

// String returns a field's raw value, or MissingFieldError if it was never set.
func (c Control) String(name string) (string, error) {
	v, ok := c.Fields[name]
	if !ok {
		return "", &MissingFieldError{Control: c.Name, Field: name}
	}
	return v, nil
}

// Float parses a scalar field.
func (c Control) Float(name string) (float32, error) {
	vals, err := c.floats(name, 1)
	if err != nil {
		return 0, err
	}
	return vals[0], nil
}

// Vec2 parses an "x;y" field.
func (c Control) Vec2(name string) (f32.Point, error) {
	vals, err := c.floats(name, 2)
	if err != nil {
		return f32.Point{}, err
	}
	return f32.Pt(vals[0], vals[1]), nil
}

// Vec3 parses an "x;y;z" field.
func (c Control) Vec3(name string) ([3]float32, error) {
	var out [3]float32
	vals, err := c.floats(name, 3)
	if err != nil {
		return out, err
	}
	copy(out[:], vals)
	return out, nil
}

// Vec4 parses an "x;y;z;w" field.
func (c Control) Vec4(name string) ([4]float32, error) {
	var out [4]float32
	vals, err := c.floats(name, 4)
	if err != nil {
		return out, err
	}
	copy(out[:], vals)
	return out, nil
}

// Color parses a color field; see ParseColor for the accepted encodings.
func (c Control) Color(name string) (color.NRGBA, error) {
	raw, err := c.String(name)
	if err != nil {
		return color.NRGBA{}, err
	}
	col, err := ParseColor(raw)
	if err != nil {
		return color.NRGBA{}, &NumericParseError{Control: c.Name, Field: name, Value: raw, Err: err}
	}
	return col, nil
}

// Vec2Or is Vec2 with a fallback for absent or empty fields.
func (c Control) Vec2Or(name string, def f32.Point) (f32.Point, error) {
	if !c.Fields.Has(name) {
		return def, nil
	}
	return c.Vec2(name)
}

// FloatOr is Float with a fallback for absent or empty fields.
func (c Control) FloatOr(name string, def float32) (float32, error) {
	if !c.Fields.Has(name) {
		return def, nil
	}
	return c.Float(name)
}

func (c Control) floats(name string, n int) ([]float32, error) {
	raw, err := c.String(name)
	if err != nil {
		return nil, err
	}
	vals, err := parseFloats(raw, n)
	if err != nil {
		return nil, &NumericParseError{Control: c.Name, Field: name, Value: raw, Err: err}
	}
	return vals, nil
}

// parseFloats splits a ';'-separated list of exactly n numbers.
func parseFloats(s string, n int) ([]float32, error) {
	parts := strings.Split(s, ";")
	if len(parts) != n {
		return nil, fmt.Errorf("expected %d ';'-separated values, got %d", n, len(parts))
	}
	out := make([]float32, n)
	for i, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 32)
		if err != nil {
			return nil, err
		}
		out[i] = float32(v)
	}
	return out, nil
}

// ControlSet maps control names to controls. It is not modified after parsing,
// so concurrent readers need no locking.
type ControlSet map[string]Control

// Get looks up a control by name.
func (cs ControlSet) Get(name string) (Control, error) {
	c, ok := cs[name]
	if !ok {
		return Control{}, &UnresolvedReferenceError{Name: name}
	}
	return c, nil
}

// Names returns the control names in sorted order.
func (cs ControlSet) Names() []string {
	names := make([]string, 0, len(cs))
	for name := range cs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
