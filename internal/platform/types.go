package platform

import (
	"fmt"
	"strconv"
	"strings"

	"gioui.org/f32"
)

// MouseButton represents a mouse button.
type MouseButton int

const (
	MouseLeft MouseButton = iota
	MouseRight
	MouseMiddle
)

// ParseMouseButton converts a string flag value to MouseButton.
func ParseMouseButton(s string) (MouseButton, error) {
	switch strings.ToLower(s) {
	case "left":
		return MouseLeft, nil
	case "right":
		return MouseRight, nil
	case "middle":
		return MouseMiddle, nil
	default:
		return MouseLeft, fmt.Errorf("unknown mouse button: %q (expected left, right, or middle)", s)
	}
}

// Size is a screen size in pixels.
type Size struct {
	Width, Height float32
}

// Point returns the size as a vector.
func (s Size) Point() f32.Point { return f32.Pt(s.Width, s.Height) }

func (s Size) String() string {
	return fmt.Sprintf("%gx%g", s.Width, s.Height)
}

// ParseSize parses "WxH" (e.g. "1920x1080"). Both dimensions must be positive.
func ParseSize(s string) (Size, error) {
	parts := strings.Split(strings.ToLower(strings.TrimSpace(s)), "x")
	if len(parts) != 2 {
		return Size{}, fmt.Errorf("invalid size %q: expected WxH", s)
	}
	var vals [2]float32
	for i, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 32)
		if err != nil {
			return Size{}, fmt.Errorf("invalid size %q: %w", s, err)
		}
		if v <= 0 {
			return Size{}, fmt.Errorf("invalid size %q: dimensions must be positive", s)
		}
		vals[i] = float32(v)
	}
	return Size{Width: vals[0], Height: vals[1]}, nil
}

// Bounds represents a rectangle in layout space: top-left corner plus extents.
type Bounds struct {
	X, Y, Width, Height float32
}

// ParseBBox parses a "x,y,w,h" string into a Bounds.
func ParseBBox(s string) (*Bounds, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 4 {
		return nil, fmt.Errorf("invalid bbox %q: expected x,y,w,h", s)
	}
	vals := make([]float32, 4)
	for i, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 32)
		if err != nil {
			return nil, fmt.Errorf("invalid bbox %q: %w", s, err)
		}
		vals[i] = float32(v)
	}
	return &Bounds{X: vals[0], Y: vals[1], Width: vals[2], Height: vals[3]}, nil
}
