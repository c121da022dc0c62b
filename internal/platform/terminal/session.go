// Package terminal runs an interactive screen in a tcell terminal. Layout
// units are scaled onto the character grid; the mouse drives the pointer.
package terminal

import (
	"context"
	"math"
	"sync"
	"time"

	"gioui.org/f32"
	"github.com/gdamore/tcell/v2"

	"github.com/mj1618/gergui/internal/platform"
	"github.com/mj1618/gergui/internal/spawn"
)

// DefaultTick is the frame interval of an interactive session.
const DefaultTick = time.Second / 30

// Session is a tcell screen acting as both the pointer source and the renderer.
type Session struct {
	screen tcell.Screen
	layout f32.Point
	button tcell.ButtonMask
	tick   time.Duration
	now    func() time.Time

	events chan tcell.Event
	done   chan struct{}
	once   sync.Once

	mu      sync.Mutex
	pointer f32.Point
	down    bool
	last    time.Time
}

// NewSession initializes screen and starts reading its events. layout is the
// screen size in layout units; tick <= 0 selects DefaultTick.
func NewSession(screen tcell.Screen, layout f32.Point, button platform.MouseButton, tick time.Duration) (*Session, error) {
	if err := screen.Init(); err != nil {
		return nil, err
	}
	screen.EnableMouse()
	screen.HideCursor()
	if tick <= 0 {
		tick = DefaultTick
	}

	s := &Session{
		screen: screen,
		layout: layout,
		button: buttonMask(button),
		tick:   tick,
		now:    time.Now,
		events: make(chan tcell.Event, 64),
		done:   make(chan struct{}),
	}
	go s.poll()
	return s, nil
}

func buttonMask(b platform.MouseButton) tcell.ButtonMask {
	switch b {
	case platform.MouseRight:
		return tcell.Button2
	case platform.MouseMiddle:
		return tcell.Button3
	default:
		return tcell.Button1
	}
}

func (s *Session) poll() {
	for {
		ev := s.screen.PollEvent()
		if ev == nil {
			return
		}
		select {
		case s.events <- ev:
		case <-s.done:
			return
		}
	}
}

// Close restores the terminal.
func (s *Session) Close() {
	s.once.Do(func() {
		close(s.done)
		s.screen.Fini()
	})
}

// Next waits for the next tick and folds every pending terminal event into one
// InputFrame.
func (s *Session) Next(ctx context.Context) (platform.InputFrame, error) {
	timer := time.NewTimer(s.tick)
	defer timer.Stop()

	var in platform.InputFrame
	for {
		select {
		case <-ctx.Done():
			return in, ctx.Err()
		case ev := <-s.events:
			s.apply(ev, &in)
			if in.Quit {
				return s.finish(in), nil
			}
		case <-timer.C:
			return s.finish(in), nil
		}
	}
}

func (s *Session) finish(in platform.InputFrame) platform.InputFrame {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	if !s.last.IsZero() {
		in.Elapsed = float32(now.Sub(s.last).Seconds())
	}
	s.last = now
	in.Pointer = s.pointer
	return in
}

func (s *Session) apply(ev tcell.Event, in *platform.InputFrame) {
	switch ev := ev.(type) {
	case *tcell.EventMouse:
		cx, cy := ev.Position()
		down := ev.Buttons()&s.button != 0

		s.mu.Lock()
		s.pointer = s.cellToLayout(cx, cy)
		if down && !s.down {
			in.JustPressed = true
		}
		s.down = down
		s.mu.Unlock()
	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyEscape, tcell.KeyCtrlC:
			in.Quit = true
		case tcell.KeyRune:
			if ev.Rune() == 'q' {
				in.Quit = true
			}
		}
	case *tcell.EventResize:
		s.screen.Sync()
	}
}

// cellSize returns the layout extent of one character cell.
func (s *Session) cellSize() (float32, float32) {
	cols, rows := s.screen.Size()
	if cols <= 0 || rows <= 0 {
		return 1, 1
	}
	return s.layout.X / float32(cols), s.layout.Y / float32(rows)
}

func (s *Session) cellToLayout(cx, cy int) f32.Point {
	cw, ch := s.cellSize()
	ui := f32.Pt((float32(cx)+0.5)*cw, (float32(cy)+0.5)*ch)
	return spawn.FromUISpace(ui, s.layout)
}

func (s *Session) layoutToCell(p f32.Point) (int, int) {
	cw, ch := s.cellSize()
	ui := spawn.ToUISpace(p, s.layout)
	return int(math.Floor(float64(ui.X / cw))), int(math.Floor(float64(ui.Y / ch)))
}
