package layout

import (
	"gioui.org/f32"

	"github.com/mj1618/gergui/internal/geom"
)

// Resolver turns dock expressions into absolute positions. Coordinates are
// centered on the screen with X to the right and Y up.
//
// Resolution is recursive and unmemoized; a Resolver holds no mutable state, so
// one value may be shared between goroutines.
type Resolver struct {
	controls ControlSet
	screen   f32.Point
}

// NewResolver binds a control set to a screen size in pixels.
func NewResolver(controls ControlSet, screen f32.Point) *Resolver {
	return &Resolver{controls: controls, screen: screen}
}

// ResolvePosition returns the absolute top-left corner of the named control.
func ResolvePosition(name string, controls ControlSet, screen f32.Point) (f32.Point, error) {
	return NewResolver(controls, screen).Resolve(name)
}

// Screen returns the screen size the resolver was built with.
func (r *Resolver) Screen() f32.Point { return r.screen }

// Resolve returns the absolute top-left corner of the named control.
func (r *Resolver) Resolve(name string) (f32.Point, error) {
	return r.resolve(name, nil)
}

func (r *Resolver) resolve(name string, chain []string) (f32.Point, error) {
	for _, seen := range chain {
		if seen == name {
			cycle := make([]string, 0, len(chain)+1)
			cycle = append(cycle, chain...)
			return f32.Point{}, &CyclicDockError{Chain: append(cycle, name)}
		}
	}
	chain = append(chain, name)

	c, err := r.controls.Get(name)
	if err != nil {
		return f32.Point{}, err
	}
	size, err := c.Vec2("size")
	if err != nil {
		return f32.Point{}, err
	}
	offset, err := c.Vec2Or("offset", f32.Point{})
	if err != nil {
		return f32.Point{}, err
	}

	var topLeft f32.Point
	if !c.Fields.Has("dock_with") {
		topLeft, err = undockedTopLeft(c, size)
		if err != nil {
			return f32.Point{}, err
		}
		// offset nudges undocked controls too, same as docked ones.
		return topLeft.Add(offset), nil
	}

	dock, err := ParseDock(c.Fields["dock_with"])
	if err != nil {
		return f32.Point{}, err
	}

	var target f32.Point
	if dock.Ref == ScreenRef {
		screenTopLeft := f32.Pt(-r.screen.X/2, r.screen.Y/2)
		target = screenTopLeft.Add(dock.RefAnchor.Offset(r.screen))
	} else {
		ref, err := r.controls.Get(dock.Ref)
		if err != nil {
			return f32.Point{}, err
		}
		refTopLeft, err := r.resolve(dock.Ref, chain)
		if err != nil {
			return f32.Point{}, err
		}
		refSize, err := ref.Vec2("size")
		if err != nil {
			return f32.Point{}, err
		}
		target = refTopLeft.Add(dock.RefAnchor.Offset(refSize))
	}

	// The self anchor must land on target: subtract what Offset would add.
	topLeft = target.Sub(dock.SelfAnchor.Offset(size))
	return topLeft.Add(offset), nil
}

// undockedTopLeft places a control that has no dock_with: an explicit top-left
// wins, then a center position, then the control is centered on the origin.
func undockedTopLeft(c Control, size f32.Point) (f32.Point, error) {
	if c.Fields.Has("top_left_position") {
		return c.Vec2("top_left_position")
	}
	if c.Fields.Has("center_position") {
		center, err := c.Vec2("center_position")
		if err != nil {
			return f32.Point{}, err
		}
		return f32.Pt(center.X-size.X/2, center.Y+size.Y/2), nil
	}
	return f32.Pt(-size.X/2, size.Y/2), nil
}

// Chain returns the dock chain that positions name, root first. A chain that
// starts at the screen begins with ScreenRef; an undocked root begins with its
// own name.
func (r *Resolver) Chain(name string) ([]string, error) {
	var chain []string
	for current := name; ; {
		for _, seen := range chain {
			if seen == current {
				return nil, &CyclicDockError{Chain: reversed(append(chain, current))}
			}
		}
		chain = append(chain, current)

		c, err := r.controls.Get(current)
		if err != nil {
			return nil, err
		}
		if !c.Fields.Has("dock_with") {
			break
		}
		dock, err := ParseDock(c.Fields["dock_with"])
		if err != nil {
			return nil, err
		}
		if dock.Ref == ScreenRef {
			chain = append(chain, ScreenRef)
			break
		}
		current = dock.Ref
	}
	return reversed(chain), nil
}

func reversed(s []string) []string {
	out := make([]string, len(s))
	for i, v := range s {
		out[len(s)-1-i] = v
	}
	return out
}

// Placement is a fully resolved control.
type Placement struct {
	Name    string    `yaml:"name"     json:"name"`
	Kind    Kind      `yaml:"kind"     json:"kind"`
	TopLeft f32.Point `yaml:"top_left" json:"top_left"`
	Size    f32.Point `yaml:"size"     json:"size"`
}

// Center returns the center of the placed box.
func (p Placement) Center() f32.Point {
	return p.TopLeft.Add(f32.Pt(p.Size.X/2, -p.Size.Y/2))
}

// Rect returns the placed box as a hit-test rectangle.
func (p Placement) Rect() geom.Rect {
	return geom.Rect{
		Left:   p.TopLeft.X,
		Right:  p.TopLeft.X + p.Size.X,
		Top:    p.TopLeft.Y,
		Bottom: p.TopLeft.Y - p.Size.Y,
	}
}

// Place resolves a single control into a Placement.
func (r *Resolver) Place(name string) (Placement, error) {
	topLeft, err := r.Resolve(name)
	if err != nil {
		return Placement{}, err
	}
	c := r.controls[name]
	size, err := c.Vec2("size")
	if err != nil {
		return Placement{}, err
	}
	return Placement{Name: name, Kind: c.Kind, TopLeft: topLeft, Size: size}, nil
}

// Center returns the center of the named control.
func (r *Resolver) Center(name string) (f32.Point, error) {
	p, err := r.Place(name)
	if err != nil {
		return f32.Point{}, err
	}
	return p.Center(), nil
}

// Bounds returns the named control's box as a hit-test rectangle.
func (r *Resolver) Bounds(name string) (geom.Rect, error) {
	p, err := r.Place(name)
	if err != nil {
		return geom.Rect{}, err
	}
	return p.Rect(), nil
}

// ResolveAll resolves every control, in name order.
func (r *Resolver) ResolveAll() ([]Placement, error) {
	names := r.controls.Names()
	out := make([]Placement, 0, len(names))
	for _, name := range names {
		p, err := r.Place(name)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, nil
}
