// Package geom holds the hit-test primitives used for pointer interaction.
// All coordinates share the layout space: origin at the screen center, X right, Y up.
package geom

import "gioui.org/f32"

// Rect is an axis-aligned rectangle. Top is greater than Bottom.
type Rect struct {
	Left, Right, Top, Bottom float32
}

// RectFrom builds a rectangle of the given extents centered on translation+offset.
func RectFrom(offset f32.Point, width, height float32, translation f32.Point) Rect {
	c := translation.Add(offset)
	return Rect{
		Left:   c.X - width/2,
		Right:  c.X + width/2,
		Top:    c.Y + height/2,
		Bottom: c.Y - height/2,
	}
}

// Contains reports whether p lies inside r. All four edges are inclusive.
func (r Rect) Contains(p f32.Point) bool {
	return p.X >= r.Left && p.X <= r.Right && p.Y >= r.Bottom && p.Y <= r.Top
}

// Width returns Right-Left.
func (r Rect) Width() float32 { return r.Right - r.Left }

// Height returns Top-Bottom.
func (r Rect) Height() float32 { return r.Top - r.Bottom }

// Circle is a disc given by center and radius.
type Circle struct {
	Center f32.Point
	Radius float32
}

// CircleFrom builds a circle centered on translation+offset.
func CircleFrom(translation, offset f32.Point, radius float32) Circle {
	return Circle{Center: translation.Add(offset), Radius: radius}
}

// Contains reports whether p is within Radius of the center, boundary included.
func (c Circle) Contains(p f32.Point) bool {
	d := p.Sub(c.Center)
	return d.X*d.X+d.Y*d.Y <= c.Radius*c.Radius
}
