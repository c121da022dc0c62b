// Package interaction drives button state from pointer input. Each button is
// an entity in a donburi world; Tick runs the hover, click and cooldown passes
// over every button, in that order.
package interaction

import (
	"errors"
	"fmt"
	"sort"

	"gioui.org/f32"
	"github.com/sirupsen/logrus"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/filter"

	"github.com/mj1618/gergui/internal/geom"
	"github.com/mj1618/gergui/internal/platform"
)

var log = logrus.WithField("component", "interaction")

// DefaultCooldown is the click lockout in seconds.
const DefaultCooldown float32 = 0.5

// ErrUnknownWidget is returned for names that were never spawned.
var ErrUnknownWidget = errors.New("unknown widget")

// Spec describes a button to spawn.
type Spec struct {
	Name        string
	Translation f32.Point // sprite center
	Size        f32.Point // sprite size
	Shape       geom.HitShape
	Visuals     Visuals
	ClickSound  string
	State       State // initial state; Disabled pins the widget from the start
}

// Event is a state change produced by a tick or a command.
type Event struct {
	Widget string `yaml:"widget"          json:"widget"`
	From   State  `yaml:"from"            json:"from"`
	To     State  `yaml:"to"              json:"to"`
	Cause  string `yaml:"cause"           json:"cause"`
	Sound  bool   `yaml:"sound,omitempty" json:"sound,omitempty"`
}

// WidgetState is a read-only view of one widget.
type WidgetState struct {
	Name     string          `yaml:"name"               json:"name"`
	State    State           `yaml:"state"              json:"state"`
	Visual   platform.Handle `yaml:"visual"             json:"visual"`
	Cooldown float32         `yaml:"cooldown,omitempty" json:"cooldown,omitempty"`
}

// System owns the widget world. It is not safe for concurrent use; hosts that
// tick from several goroutines must serialize calls.
type System struct {
	world    donburi.World
	audio    platform.AudioPlayer
	cooldown float32
	tick     uint64
	byName   map[string]donburi.Entity

	widgets *donburi.Query
	cooling *donburi.Query
}

// NewSystem creates an empty world. audio may be nil to disable click sounds;
// cooldown <= 0 selects DefaultCooldown.
func NewSystem(audio platform.AudioPlayer, cooldown float32) *System {
	if cooldown <= 0 {
		cooldown = DefaultCooldown
	}
	return &System{
		world:    donburi.NewWorld(),
		audio:    audio,
		cooldown: cooldown,
		byName:   make(map[string]donburi.Entity),
		widgets:  donburi.NewQuery(filter.Contains(Widget, Transform, Sprite, HitArea)),
		cooling:  donburi.NewQuery(filter.Contains(Widget, Cooldown)),
	}
}

// Spawn adds a button to the world.
func (s *System) Spawn(spec Spec) error {
	if _, dup := s.byName[spec.Name]; dup {
		return fmt.Errorf("widget %q already spawned", spec.Name)
	}
	entity := s.world.Create(Widget, Transform, Sprite, HitArea)
	e := s.world.Entry(entity)
	Widget.SetValue(e, WidgetData{
		Name:       spec.Name,
		State:      spec.State,
		Visuals:    spec.Visuals,
		ClickSound: spec.ClickSound,
	})
	Transform.SetValue(e, TransformData{Translation: spec.Translation})
	Sprite.SetValue(e, SpriteData{Size: spec.Size, Material: spec.Visuals.For(spec.State)})
	HitArea.SetValue(e, HitAreaData{Shape: spec.Shape})
	s.byName[spec.Name] = entity
	return nil
}

// Len returns the number of spawned widgets.
func (s *System) Len() int { return len(s.byName) }

// Tick advances every widget by one input frame and returns the state changes.
func (s *System) Tick(in platform.InputFrame) []Event {
	s.tick++
	var events []Event
	events = s.hoverPass(in.Pointer, events)
	if in.JustPressed {
		events = s.clickPass(in.Pointer, events)
	}
	if in.Elapsed > 0 {
		events = s.cooldownPass(in.Elapsed, events)
	}
	return events
}

func (s *System) hoverPass(p f32.Point, events []Event) []Event {
	s.widgets.Each(s.world, func(e *donburi.Entry) {
		w := Widget.Get(e)
		over := hits(e, p)
		switch {
		case over && w.State == Normal:
			events = append(events, s.transition(e, Hover, "hover"))
		case !over && w.State == Hover:
			events = append(events, s.transition(e, Normal, "hover"))
		}
	})
	return events
}

func (s *System) clickPass(p f32.Point, events []Event) []Event {
	var clicked []donburi.Entity
	s.widgets.Each(s.world, func(e *donburi.Entry) {
		w := Widget.Get(e)
		if w.State != Hover || !hits(e, p) {
			return
		}
		ev := s.transition(e, Active, "click")
		if w.ClickSound != "" && s.audio != nil {
			if err := s.audio.Play(w.ClickSound); err != nil {
				log.WithError(err).WithField("widget", w.Name).Warn("click sound failed")
			} else {
				ev.Sound = true
			}
		}
		events = append(events, ev)
		clicked = append(clicked, e.Entity())
	})

	// Adding a component moves the entity between archetypes, so it happens
	// after the query has finished.
	for _, entity := range clicked {
		e := s.world.Entry(entity)
		if !e.HasComponent(Cooldown) {
			e.AddComponent(Cooldown)
		}
		Cooldown.SetValue(e, CooldownData{Remaining: s.cooldown, startedTick: s.tick})
	}
	return events
}

func (s *System) cooldownPass(elapsed float32, events []Event) []Event {
	var expired []donburi.Entity
	s.cooling.Each(s.world, func(e *donburi.Entry) {
		cd := Cooldown.Get(e)
		if cd.startedTick == s.tick {
			return
		}
		cd.Remaining -= elapsed
		if cd.Remaining <= 0 {
			expired = append(expired, e.Entity())
		}
	})

	for _, entity := range expired {
		e := s.world.Entry(entity)
		if Widget.Get(e).State != Normal {
			events = append(events, s.transition(e, Normal, "cooldown"))
		}
		e.RemoveComponent(Cooldown)
	}
	return events
}

// transition sets the widget state and swaps the displayed texture.
func (s *System) transition(e *donburi.Entry, to State, cause string) Event {
	w := Widget.Get(e)
	ev := Event{Widget: w.Name, From: w.State, To: to, Cause: cause}
	w.State = to
	Sprite.Get(e).Material = w.Visuals.For(to)
	log.WithFields(logrus.Fields{
		"widget": w.Name,
		"from":   ev.From,
		"to":     to,
		"cause":  cause,
	}).Debug("state change")
	return ev
}

func hits(e *donburi.Entry, p f32.Point) bool {
	return HitArea.Get(e).Shape.Hit(Transform.Get(e).Translation, Sprite.Get(e).Size, p)
}

// SetDisabled pins a widget in Disabled or releases it back to Normal. Pinning
// drops any running cooldown so its expiry cannot release the widget.
func (s *System) SetDisabled(name string, disabled bool) ([]Event, error) {
	entity, ok := s.byName[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownWidget, name)
	}
	e := s.world.Entry(entity)
	state := Widget.Get(e).State

	if !disabled {
		if state != Disabled {
			return nil, nil
		}
		return []Event{s.transition(e, Normal, "enable")}, nil
	}

	if state == Disabled {
		return nil, nil
	}
	if e.HasComponent(Cooldown) {
		e.RemoveComponent(Cooldown)
		e = s.world.Entry(entity)
	}
	return []Event{s.transition(e, Disabled, "disable")}, nil
}

// State returns the current state of the named widget.
func (s *System) State(name string) (State, error) {
	entity, ok := s.byName[name]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownWidget, name)
	}
	return Widget.Get(s.world.Entry(entity)).State, nil
}

// Snapshot returns every widget, sorted by name.
func (s *System) Snapshot() []WidgetState {
	names := make([]string, 0, len(s.byName))
	for name := range s.byName {
		names = append(names, name)
	}
	sort.Strings(names)

	out := make([]WidgetState, 0, len(names))
	for _, name := range names {
		e := s.world.Entry(s.byName[name])
		ws := WidgetState{
			Name:   name,
			State:  Widget.Get(e).State,
			Visual: Sprite.Get(e).Material,
		}
		if e.HasComponent(Cooldown) {
			ws.Cooldown = Cooldown.Get(e).Remaining
		}
		out = append(out, ws)
	}
	return out
}

// HitTest returns the names of widgets whose hit shape contains p, sorted.
func (s *System) HitTest(p f32.Point) []string {
	var names []string
	s.widgets.Each(s.world, func(e *donburi.Entry) {
		if hits(e, p) {
			names = append(names, Widget.Get(e).Name)
		}
	})
	sort.Strings(names)
	return names
}
