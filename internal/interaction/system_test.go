package interaction

import (
	"errors"
	"testing"

	"gioui.org/f32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mj1618/gergui/internal/geom"
	"github.com/mj1618/gergui/internal/platform"
)

type recordingPlayer struct {
	played []string
	err    error
}

func (p *recordingPlayer) Play(path string) error {
	p.played = append(p.played, path)
	return p.err
}

var (
	inside  = f32.Pt(0, 0)
	outside = f32.Pt(500, 500)
)

func newButton(t *testing.T, audio platform.AudioPlayer) *System {
	t.Helper()
	s := NewSystem(audio, 0)
	require.NoError(t, s.Spawn(Spec{
		Name:        "play",
		Translation: f32.Pt(0, 0),
		Size:        f32.Pt(100, 50),
		Shape:       geom.SpriteShape(),
		Visuals:     Visuals{Normal: 1, Hover: 2, Active: 3},
		ClickSound:  "click.wav",
	}))
	return s
}

func stateOf(t *testing.T, s *System, name string) State {
	t.Helper()
	st, err := s.State(name)
	require.NoError(t, err)
	return st
}

func TestTick_ClickScenario(t *testing.T) {
	audio := &recordingPlayer{}
	s := newButton(t, audio)

	// tick 1: pointer enters
	events := s.Tick(platform.InputFrame{Pointer: inside})
	require.Len(t, events, 1)
	assert.Equal(t, Event{Widget: "play", From: Normal, To: Hover, Cause: "hover"}, events[0])

	// press inside the area
	events = s.Tick(platform.InputFrame{Pointer: inside, JustPressed: true})
	require.Len(t, events, 1)
	assert.Equal(t, Active, events[0].To)
	assert.True(t, events[0].Sound)
	assert.Equal(t, []string{"click.wav"}, audio.played)

	snap := s.Snapshot()
	require.Len(t, snap, 1)
	assert.Equal(t, float32(0.5), snap[0].Cooldown)
	assert.Equal(t, platform.Handle(3), snap[0].Visual)

	// tick 2: pointer leaves, cooldown keeps it active
	events = s.Tick(platform.InputFrame{Pointer: outside, Elapsed: 0.25})
	assert.Empty(t, events)
	assert.Equal(t, Active, stateOf(t, s, "play"))

	// after 0.5s total the widget returns to normal even though the pointer is back over it
	events = s.Tick(platform.InputFrame{Pointer: inside, Elapsed: 0.25})
	require.Len(t, events, 1)
	assert.Equal(t, Event{Widget: "play", From: Active, To: Normal, Cause: "cooldown"}, events[0])
	assert.Equal(t, Normal, stateOf(t, s, "play"))
	assert.Zero(t, s.Snapshot()[0].Cooldown)

	// next tick re-promotes to hover
	events = s.Tick(platform.InputFrame{Pointer: inside})
	require.Len(t, events, 1)
	assert.Equal(t, Hover, events[0].To)
	assert.Len(t, audio.played, 1)
}

func TestTick_PressOnFirstHoverTickActivates(t *testing.T) {
	s := newButton(t, nil)

	// hover pass runs before the click pass, so one tick is enough
	events := s.Tick(platform.InputFrame{Pointer: inside, JustPressed: true})
	require.Len(t, events, 2)
	assert.Equal(t, Hover, events[0].To)
	assert.Equal(t, Active, events[1].To)
	assert.False(t, events[1].Sound)
}

func TestTick_CooldownNotDecrementedOnStartTick(t *testing.T) {
	s := newButton(t, nil)
	s.Tick(platform.InputFrame{Pointer: inside})

	s.Tick(platform.InputFrame{Pointer: inside, JustPressed: true, Elapsed: 10})
	assert.Equal(t, Active, stateOf(t, s, "play"))
	assert.Equal(t, float32(0.5), s.Snapshot()[0].Cooldown)
}

func TestTick_ZeroElapsedKeepsCooldown(t *testing.T) {
	s := newButton(t, nil)
	s.Tick(platform.InputFrame{Pointer: inside, JustPressed: true})
	for i := 0; i < 5; i++ {
		s.Tick(platform.InputFrame{Pointer: outside})
	}
	assert.Equal(t, Active, stateOf(t, s, "play"))
	assert.Equal(t, float32(0.5), s.Snapshot()[0].Cooldown)
}

func TestTick_ClickIgnoredOutsideHover(t *testing.T) {
	audio := &recordingPlayer{}
	s := newButton(t, audio)

	// click outside: stays normal
	events := s.Tick(platform.InputFrame{Pointer: outside, JustPressed: true})
	assert.Empty(t, events)

	// click while active does not restart the cooldown or replay the sound
	s.Tick(platform.InputFrame{Pointer: inside, JustPressed: true})
	s.Tick(platform.InputFrame{Pointer: inside, Elapsed: 0.3})
	events = s.Tick(platform.InputFrame{Pointer: inside, JustPressed: true})
	assert.Empty(t, events)
	assert.InDelta(t, 0.2, s.Snapshot()[0].Cooldown, 1e-6)
	assert.Len(t, audio.played, 1)
}

func TestTick_HoverLeaveReturnsToNormal(t *testing.T) {
	s := newButton(t, nil)
	s.Tick(platform.InputFrame{Pointer: inside})
	events := s.Tick(platform.InputFrame{Pointer: outside})
	require.Len(t, events, 1)
	assert.Equal(t, Normal, events[0].To)
	assert.Equal(t, platform.Handle(1), s.Snapshot()[0].Visual)
}

func TestTick_Idempotent(t *testing.T) {
	s := newButton(t, nil)
	s.Tick(platform.InputFrame{Pointer: inside})
	for i := 0; i < 3; i++ {
		assert.Empty(t, s.Tick(platform.InputFrame{Pointer: inside}))
	}
	assert.Equal(t, Hover, stateOf(t, s, "play"))
}

func TestTick_SoundFailureStillActivates(t *testing.T) {
	audio := &recordingPlayer{err: errors.New("no device")}
	s := newButton(t, audio)
	events := s.Tick(platform.InputFrame{Pointer: inside, JustPressed: true})
	require.Len(t, events, 2)
	assert.Equal(t, Active, events[1].To)
	assert.False(t, events[1].Sound)
}

func TestTick_WidgetsIndependent(t *testing.T) {
	s := NewSystem(nil, 1)
	require.NoError(t, s.Spawn(Spec{Name: "a", Translation: f32.Pt(-100, 0), Size: f32.Pt(50, 50)}))
	require.NoError(t, s.Spawn(Spec{Name: "b", Translation: f32.Pt(100, 0), Size: f32.Pt(50, 50)}))

	s.Tick(platform.InputFrame{Pointer: f32.Pt(-100, 0), JustPressed: true})
	assert.Equal(t, Active, stateOf(t, s, "a"))
	assert.Equal(t, Normal, stateOf(t, s, "b"))

	s.Tick(platform.InputFrame{Pointer: f32.Pt(100, 0), Elapsed: 0.6})
	assert.Equal(t, Active, stateOf(t, s, "a"), "cooldown of 1s has not expired")
	assert.Equal(t, Hover, stateOf(t, s, "b"))

	s.Tick(platform.InputFrame{Pointer: f32.Pt(100, 0), Elapsed: 0.4})
	assert.Equal(t, Normal, stateOf(t, s, "a"))
}

func TestSetDisabled(t *testing.T) {
	s := newButton(t, nil)
	s.Tick(platform.InputFrame{Pointer: inside, JustPressed: true})

	events, err := s.SetDisabled("play", true)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, Event{Widget: "play", From: Active, To: Disabled, Cause: "disable"}, events[0])
	assert.Zero(t, s.Snapshot()[0].Cooldown)

	// inert: hover, click and time do nothing
	assert.Empty(t, s.Tick(platform.InputFrame{Pointer: inside, JustPressed: true, Elapsed: 1}))
	assert.Equal(t, Disabled, stateOf(t, s, "play"))
	// no disabled texture bound, so the normal one shows
	assert.Equal(t, platform.Handle(1), s.Snapshot()[0].Visual)

	events, err = s.SetDisabled("play", true)
	require.NoError(t, err)
	assert.Empty(t, events)

	events, err = s.SetDisabled("play", false)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, Normal, events[0].To)

	_, err = s.SetDisabled("missing", true)
	assert.ErrorIs(t, err, ErrUnknownWidget)
}

func TestSpawn_InitiallyDisabled(t *testing.T) {
	s := NewSystem(nil, 0)
	require.NoError(t, s.Spawn(Spec{
		Name:    "locked",
		Size:    f32.Pt(10, 10),
		State:   Disabled,
		Visuals: Visuals{Normal: 1, Disabled: 4},
	}))
	assert.Empty(t, s.Tick(platform.InputFrame{Pointer: inside, JustPressed: true}))
	assert.Equal(t, platform.Handle(4), s.Snapshot()[0].Visual)
}

func TestSpawn_Duplicate(t *testing.T) {
	s := newButton(t, nil)
	err := s.Spawn(Spec{Name: "play"})
	assert.Error(t, err)
	assert.Equal(t, 1, s.Len())
}

func TestHitTest_UsesCustomShape(t *testing.T) {
	s := NewSystem(nil, 0)
	require.NoError(t, s.Spawn(Spec{
		Name:  "icon",
		Size:  f32.Pt(100, 100),
		Shape: geom.RectAndCircleShape([4]float32{0, 0, 100, 100}, [3]float32{0, 0, 40}),
	}))
	assert.Equal(t, []string{"icon"}, s.HitTest(f32.Pt(10, 10)))
	assert.Empty(t, s.HitTest(f32.Pt(45, 45)), "inside rect corner but outside circle")

	events := s.Tick(platform.InputFrame{Pointer: f32.Pt(45, 45)})
	assert.Empty(t, events)
}

func TestVisuals_For(t *testing.T) {
	v := Visuals{Normal: 1, Active: 3}
	assert.Equal(t, platform.Handle(1), v.For(Normal))
	assert.Equal(t, platform.Handle(1), v.For(Hover))
	assert.Equal(t, platform.Handle(3), v.For(Active))
	assert.Equal(t, platform.Handle(1), v.For(Disabled))
}

func TestParseState(t *testing.T) {
	for _, name := range []string{"normal", "hover", "active", "disabled"} {
		st, err := ParseState(name)
		require.NoError(t, err)
		assert.Equal(t, name, st.String())
	}
	_, err := ParseState("pressed")
	assert.Error(t, err)
}
