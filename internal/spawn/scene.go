// Package spawn turns a parsed layout into things a host can draw and widgets
// the interaction system can drive.
package spawn

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"gioui.org/f32"

	"github.com/mj1618/gergui/internal/geom"
	"github.com/mj1618/gergui/internal/interaction"
	"github.com/mj1618/gergui/internal/layout"
	"github.com/mj1618/gergui/internal/model"
	"github.com/mj1618/gergui/internal/platform"
)

// Scene is a resolved screen: every control as a drawable plus one widget spec
// per button.
type Scene struct {
	Screen    f32.Point
	Drawables []platform.Drawable // back to front
	Widgets   []interaction.Spec  // name order

	paths map[string]string
}

// Build resolves every control and loads its assets. assets may be nil, in
// which case every handle is NoHandle.
func Build(controls layout.ControlSet, screen f32.Point, assets platform.AssetLoader) (*Scene, error) {
	r := layout.NewResolver(controls, screen)
	placements, err := r.ResolveAll()
	if err != nil {
		return nil, err
	}

	s := &Scene{Screen: screen, paths: make(map[string]string, len(placements))}
	for _, p := range placements {
		c := controls[p.Name]
		chain, err := r.Chain(p.Name)
		if err != nil {
			return nil, err
		}
		s.paths[p.Name] = model.JoinPath(chain)

		d, err := drawable(c, p, assets)
		if err != nil {
			return nil, err
		}
		s.Drawables = append(s.Drawables, d)

		if c.Kind == layout.KindButton {
			w, err := widget(c, p, assets)
			if err != nil {
				return nil, err
			}
			s.Widgets = append(s.Widgets, w)
		}
	}

	sort.SliceStable(s.Drawables, func(i, j int) bool {
		a, b := s.Drawables[i], s.Drawables[j]
		if a.DrawOrder != b.DrawOrder {
			return a.DrawOrder < b.DrawOrder
		}
		return kindRank(a.Kind) < kindRank(b.Kind)
	})
	return s, nil
}

// Labels draw over buttons, buttons over pictures, when draw orders tie.
func kindRank(kind string) int {
	switch kind {
	case layout.KindPictureBox.String():
		return 0
	case layout.KindButton.String():
		return 1
	default:
		return 2
	}
}

func drawable(c layout.Control, p layout.Placement, assets platform.AssetLoader) (platform.Drawable, error) {
	d := platform.Drawable{
		Name:    p.Name,
		Kind:    p.Kind.String(),
		TopLeft: p.TopLeft,
		Size:    p.Size,
	}

	var err error
	if d.DrawOrder, err = c.FloatOr("draw_order", 0); err != nil {
		return d, err
	}
	if c.Kind != layout.KindLabel {
		if d.Texture, err = loadTexture(assets, c.Fields["texture_name"]); err != nil {
			return d, fmt.Errorf("control %q: %w", c.Name, err)
		}
	}
	if c.Kind == layout.KindPictureBox {
		return d, nil
	}

	d.Text = c.Fields["text_string"]
	if d.Font, err = loadFont(assets, c.Fields["font_name"]); err != nil {
		return d, fmt.Errorf("control %q: %w", c.Name, err)
	}
	if d.FontSize, err = c.FloatOr("font_size", 0); err != nil {
		return d, err
	}
	if d.Color, err = c.Color("color"); err != nil {
		return d, err
	}
	if c.Kind == layout.KindButton {
		d.State = interaction.Normal.String()
	}
	return d, nil
}

func widget(c layout.Control, p layout.Placement, assets platform.AssetLoader) (interaction.Spec, error) {
	w := interaction.Spec{
		Name:        c.Name,
		Translation: p.Center(),
		Size:        p.Size,
		ClickSound:  c.Fields["on_click_sound"],
	}

	var err error
	if w.Shape, err = hitShape(c); err != nil {
		return w, err
	}

	textures := []struct {
		field string
		dst   *platform.Handle
	}{
		{"texture_name", &w.Visuals.Normal},
		{"texture_hover", &w.Visuals.Hover},
		{"texture_active", &w.Visuals.Active},
		{"texture_disabled", &w.Visuals.Disabled},
	}
	for _, t := range textures {
		if *t.dst, err = loadTexture(assets, c.Fields[t.field]); err != nil {
			return w, fmt.Errorf("control %q: %s: %w", c.Name, t.field, err)
		}
	}

	if c.Fields.Has("disabled") {
		disabled, err := strconv.ParseBool(strings.TrimSpace(c.Fields["disabled"]))
		if err != nil {
			return w, &layout.NumericParseError{Control: c.Name, Field: "disabled", Value: c.Fields["disabled"], Err: err}
		}
		if disabled {
			w.State = interaction.Disabled
		}
	}
	return w, nil
}

// hitShape reads bounding_box (dx;dy;w;h) and bounding_circle (dx;dy;r). A
// button with neither uses its sprite rectangle.
func hitShape(c layout.Control) (geom.HitShape, error) {
	hasBox := c.Fields.Has("bounding_box")
	hasCircle := c.Fields.Has("bounding_circle")

	var box [4]float32
	var circle [3]float32
	var err error
	if hasBox {
		if box, err = c.Vec4("bounding_box"); err != nil {
			return geom.HitShape{}, err
		}
	}
	if hasCircle {
		if circle, err = c.Vec3("bounding_circle"); err != nil {
			return geom.HitShape{}, err
		}
	}

	switch {
	case hasBox && hasCircle:
		return geom.RectAndCircleShape(box, circle), nil
	case hasBox:
		return geom.RectShape(box), nil
	case hasCircle:
		return geom.CircleShape(circle), nil
	default:
		return geom.SpriteShape(), nil
	}
}

func loadTexture(assets platform.AssetLoader, path string) (platform.Handle, error) {
	if assets == nil || path == "" {
		return platform.NoHandle, nil
	}
	return assets.LoadTexture(path)
}

func loadFont(assets platform.AssetLoader, path string) (platform.Handle, error) {
	if assets == nil || path == "" {
		return platform.NoHandle, nil
	}
	return assets.LoadFont(path)
}

// Populate spawns every button into sys.
func (s *Scene) Populate(sys *interaction.System) error {
	for _, w := range s.Widgets {
		if err := sys.Spawn(w); err != nil {
			return err
		}
	}
	return nil
}

// Frame returns the drawables with each button's texture and state taken from
// sys. sys may be nil before any widget has been spawned.
func (s *Scene) Frame(sys *interaction.System, pointer f32.Point) platform.Frame {
	states := make(map[string]interaction.WidgetState)
	if sys != nil {
		for _, ws := range sys.Snapshot() {
			states[ws.Name] = ws
		}
	}

	out := make([]platform.Drawable, len(s.Drawables))
	for i, d := range s.Drawables {
		if ws, ok := states[d.Name]; ok {
			d.Texture = ws.Visual
			d.State = ws.State.String()
		}
		out[i] = d
	}
	return platform.Frame{Screen: s.Screen, Pointer: pointer, Drawables: out}
}

// Elements returns the compact form of every control, in name order. Button
// state comes from sys when it is non-nil.
func (s *Scene) Elements(sys *interaction.System) []model.Element {
	states := make(map[string]interaction.WidgetState)
	if sys != nil {
		for _, ws := range sys.Snapshot() {
			states[ws.Name] = ws
		}
	}

	out := make([]model.Element, 0, len(s.Drawables))
	for _, d := range s.Drawables {
		el := model.Element{
			Name:   d.Name,
			Kind:   model.MapKind(d.Kind),
			Text:   d.Text,
			Bounds: bounds(d.TopLeft, d.Size),
			Order:  d.DrawOrder,
			State:  d.State,
			Path:   s.paths[d.Name],
		}
		if ws, ok := states[d.Name]; ok {
			el.State = ws.State.String()
			el.Cooldown = ws.Cooldown
		}
		out = append(out, el)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Drawable returns the drawable for name.
func (s *Scene) Drawable(name string) (platform.Drawable, bool) {
	for _, d := range s.Drawables {
		if d.Name == name {
			return d, true
		}
	}
	return platform.Drawable{}, false
}

func bounds(topLeft, size f32.Point) [4]int {
	return [4]int{
		int(math.Round(float64(topLeft.X))),
		int(math.Round(float64(topLeft.Y))),
		int(math.Round(float64(size.X))),
		int(math.Round(float64(size.Y))),
	}
}

// Summary describes the scene for list output.
func (s *Scene) Summary(file string) model.Screen {
	return model.Screen{
		File:     file,
		Size:     fmt.Sprintf("%gx%g", s.Screen.X, s.Screen.Y),
		Controls: len(s.Drawables),
		Buttons:  len(s.Widgets),
	}
}
