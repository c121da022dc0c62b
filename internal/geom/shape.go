package geom

import (
	"fmt"

	"gioui.org/f32"
)

// ShapeKind selects which primitives a HitShape tests.
type ShapeKind int

const (
	// ShapeSprite tests the widget's render sprite rectangle with no offset.
	ShapeSprite ShapeKind = iota
	ShapeRect
	ShapeCircle
	// ShapeRectAndCircle hits only where both the rectangle and the circle do.
	ShapeRectAndCircle
)

func (k ShapeKind) String() string {
	switch k {
	case ShapeSprite:
		return "sprite"
	case ShapeRect:
		return "rect"
	case ShapeCircle:
		return "circle"
	case ShapeRectAndCircle:
		return "rect+circle"
	default:
		return fmt.Sprintf("ShapeKind(%d)", int(k))
	}
}

// HitShape describes the region of a widget that reacts to the pointer,
// relative to the widget's translation.
type HitShape struct {
	Kind         ShapeKind
	RectOffset   f32.Point
	RectSize     f32.Point
	CircleOffset f32.Point
	Radius       float32
}

// SpriteShape is the default: the sprite's own rectangle.
func SpriteShape() HitShape {
	return HitShape{Kind: ShapeSprite}
}

// RectShape hits inside a w*h rectangle centered at offset. box is (dx, dy, w, h).
func RectShape(box [4]float32) HitShape {
	return HitShape{
		Kind:       ShapeRect,
		RectOffset: f32.Pt(box[0], box[1]),
		RectSize:   f32.Pt(box[2], box[3]),
	}
}

// CircleShape hits inside a circle; circle is (dx, dy, r).
func CircleShape(circle [3]float32) HitShape {
	return HitShape{
		Kind:         ShapeCircle,
		CircleOffset: f32.Pt(circle[0], circle[1]),
		Radius:       circle[2],
	}
}

// RectAndCircleShape hits only where both primitives contain the point.
func RectAndCircleShape(box [4]float32, circle [3]float32) HitShape {
	s := RectShape(box)
	s.Kind = ShapeRectAndCircle
	s.CircleOffset = f32.Pt(circle[0], circle[1])
	s.Radius = circle[2]
	return s
}

// Hit reports whether p hits the shape of a widget drawn at translation with
// the given sprite size.
func (s HitShape) Hit(translation, spriteSize, p f32.Point) bool {
	switch s.Kind {
	case ShapeRect:
		return s.rect(translation).Contains(p)
	case ShapeCircle:
		return s.circle(translation).Contains(p)
	case ShapeRectAndCircle:
		return s.rect(translation).Contains(p) && s.circle(translation).Contains(p)
	default:
		return RectFrom(f32.Point{}, spriteSize.X, spriteSize.Y, translation).Contains(p)
	}
}

func (s HitShape) rect(translation f32.Point) Rect {
	return RectFrom(s.RectOffset, s.RectSize.X, s.RectSize.Y, translation)
}

func (s HitShape) circle(translation f32.Point) Circle {
	return CircleFrom(translation, s.CircleOffset, s.Radius)
}
