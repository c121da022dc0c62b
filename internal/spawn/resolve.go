package spawn

import (
	"gioui.org/f32"

	"github.com/mj1618/gergui/internal/layout"
	"github.com/mj1618/gergui/internal/model"
)

// Resolution is one control's resolved geometry.
type Resolution struct {
	Name    string     `yaml:"name"     json:"name"`
	Kind    string     `yaml:"kind"     json:"kind"`
	TopLeft [2]float32 `yaml:"top_left" json:"top_left"`
	Center  [2]float32 `yaml:"center"   json:"center"`
	Size    [2]float32 `yaml:"size"     json:"size"`
	Path    string     `yaml:"path"     json:"path"`
}

// Resolve places a single control without loading any assets.
func Resolve(controls layout.ControlSet, screen f32.Point, name string) (Resolution, error) {
	r := layout.NewResolver(controls, screen)
	p, err := r.Place(name)
	if err != nil {
		return Resolution{}, err
	}
	chain, err := r.Chain(name)
	if err != nil {
		return Resolution{}, err
	}
	return Resolution{
		Name:    p.Name,
		Kind:    p.Kind.String(),
		TopLeft: pair(p.TopLeft),
		Center:  pair(p.Center()),
		Size:    pair(p.Size),
		Path:    model.JoinPath(chain),
	}, nil
}

func pair(p f32.Point) [2]float32 { return [2]float32{p.X, p.Y} }
