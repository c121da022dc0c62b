package spawn

import "gioui.org/f32"

// ToUISpace converts a layout point (origin at the screen center, Y up) to
// screen pixels (origin at the top-left corner, Y down).
func ToUISpace(p, screen f32.Point) f32.Point {
	return f32.Pt(p.X+screen.X/2, screen.Y/2-p.Y)
}

// FromUISpace is the inverse of ToUISpace.
func FromUISpace(p, screen f32.Point) f32.Point {
	return f32.Pt(p.X-screen.X/2, screen.Y/2-p.Y)
}
