package interaction

import (
	"fmt"

	"github.com/mj1618/gergui/internal/platform"
)

// State is the visual state of a button.
type State int

const (
	Normal State = iota
	Hover
	Active
	// Disabled is only entered through SetDisabled; the hover and click passes
	// never produce it and never leave it.
	Disabled
)

var stateNames = [...]string{"normal", "hover", "active", "disabled"}

func (s State) String() string {
	if s < 0 || int(s) >= len(stateNames) {
		return fmt.Sprintf("State(%d)", int(s))
	}
	return stateNames[s]
}

// ParseState converts "normal", "hover", "active" or "disabled".
func ParseState(s string) (State, error) {
	for i, name := range stateNames {
		if name == s {
			return State(i), nil
		}
	}
	return 0, fmt.Errorf("unknown state %q (expected normal, hover, active, or disabled)", s)
}

func (s State) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

func (s *State) UnmarshalText(text []byte) error {
	parsed, err := ParseState(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// Visuals binds one texture per state. Unset variants fall back to Normal.
type Visuals struct {
	Normal   platform.Handle
	Hover    platform.Handle
	Active   platform.Handle
	Disabled platform.Handle
}

// For returns the handle to display in state s.
func (v Visuals) For(s State) platform.Handle {
	var h platform.Handle
	switch s {
	case Hover:
		h = v.Hover
	case Active:
		h = v.Active
	case Disabled:
		h = v.Disabled
	}
	if h == platform.NoHandle {
		return v.Normal
	}
	return h
}
