package interaction

import (
	"gioui.org/f32"
	"github.com/yohamta/donburi"

	"github.com/mj1618/gergui/internal/geom"
	"github.com/mj1618/gergui/internal/platform"
)

// WidgetData is the per-button runtime record.
type WidgetData struct {
	Name       string
	State      State
	Visuals    Visuals
	ClickSound string
}

// TransformData is where the widget is drawn: the center of its sprite.
type TransformData struct {
	Translation f32.Point
}

// SpriteData is the rendered sprite: its size and the texture currently shown.
type SpriteData struct {
	Size     f32.Point
	Material platform.Handle
}

// HitAreaData is the region that reacts to the pointer.
type HitAreaData struct {
	Shape geom.HitShape
}

// CooldownData is attached while a click lockout runs and removed when it ends.
type CooldownData struct {
	Remaining float32 // seconds

	startedTick uint64
}

var (
	Widget    = donburi.NewComponentType[WidgetData]()
	Transform = donburi.NewComponentType[TransformData]()
	Sprite    = donburi.NewComponentType[SpriteData]()
	HitArea   = donburi.NewComponentType[HitAreaData]()
	Cooldown  = donburi.NewComponentType[CooldownData]()
)
