package layout

import (
	"strings"

	"gioui.org/f32"
)

// Anchor is one of the nine reference points of a box.
type Anchor int

const (
	TopLeft Anchor = iota
	TopMiddle
	TopRight
	CenterLeft
	CenterMiddle
	CenterRight
	BottomLeft
	BottomMiddle
	BottomRight
)

var anchorNames = [...]string{
	"top_left", "top_middle", "top_right",
	"center_left", "center_middle", "center_right",
	"bottom_left", "bottom_middle", "bottom_right",
}

func (a Anchor) String() string {
	if a < 0 || int(a) >= len(anchorNames) {
		return "invalid"
	}
	return anchorNames[a]
}

// ParseAnchor converts an anchor token such as "bottom_right".
func ParseAnchor(token string) (Anchor, error) {
	t := strings.ToLower(strings.TrimSpace(token))
	for i, name := range anchorNames {
		if name == t {
			return Anchor(i), nil
		}
	}
	return 0, &InvalidAnchorError{Token: token}
}

// Offset returns the anchor point relative to the top-left corner of a box of
// the given size. Y grows upward, so points lower on the box have negative Y.
func (a Anchor) Offset(size f32.Point) f32.Point {
	col := float32(int(a) % 3)
	row := float32(int(a) / 3)
	return f32.Pt(size.X*col/2, -size.Y*row/2)
}

// ScreenRef is the dock reference that names the screen instead of a control.
const ScreenRef = "screen"

// Dock is a parsed dock_with expression "<ref>.<anchor> <-> <self>.<anchor>".
type Dock struct {
	Ref        string
	RefAnchor  Anchor
	Self       string
	SelfAnchor Anchor
}

// ParseDock splits a dock expression on "<->" and then each side on its last ".".
// The self name is kept for display only; it is conventionally "this".
func ParseDock(expr string) (Dock, error) {
	sides := strings.Split(expr, "<->")
	if len(sides) != 2 {
		return Dock{}, &InvalidAnchorError{Token: expr}
	}
	ref, refAnchor, err := splitAnchored(sides[0])
	if err != nil {
		return Dock{}, err
	}
	self, selfAnchor, err := splitAnchored(sides[1])
	if err != nil {
		return Dock{}, err
	}
	return Dock{Ref: ref, RefAnchor: refAnchor, Self: self, SelfAnchor: selfAnchor}, nil
}

func splitAnchored(side string) (string, Anchor, error) {
	side = strings.TrimSpace(side)
	i := strings.LastIndex(side, ".")
	if i <= 0 {
		return "", 0, &InvalidAnchorError{Token: side}
	}
	a, err := ParseAnchor(side[i+1:])
	if err != nil {
		return "", 0, err
	}
	return side[:i], a, nil
}

func (d Dock) String() string {
	return d.Ref + "." + d.RefAnchor.String() + " <-> " + d.Self + "." + d.SelfAnchor.String()
}
