// Package scenario drives an interaction world from a scripted list of
// steps. It backs the `do` command and the MCP simulate tool.
package scenario

import (
	"errors"
	"fmt"
	"io"

	"gioui.org/f32"
	"gopkg.in/yaml.v3"

	"github.com/mj1618/gergui/internal/interaction"
	"github.com/mj1618/gergui/internal/platform"
)

// Step is one scripted action: a single-key map such as `press: {x: 0, y: 0}`.
type Step map[string]Params

// Result is the outcome of a whole scenario.
type Result struct {
	OK        bool         `yaml:"ok"              json:"ok"`
	Steps     int          `yaml:"steps"           json:"steps"`
	Completed int          `yaml:"completed"       json:"completed"`
	Error     string       `yaml:"error,omitempty" json:"error,omitempty"`
	Results   []StepResult `yaml:"results"         json:"results"`
}

// StepResult is the outcome of a single step.
type StepResult struct {
	Step   int                          `yaml:"step"             json:"step"`
	OK     bool                         `yaml:"ok"               json:"ok"`
	Action string                       `yaml:"action"           json:"action"`
	Error  string                       `yaml:"error,omitempty"  json:"error,omitempty"`
	Events []interaction.Event          `yaml:"events,omitempty" json:"events,omitempty"`
	States map[string]interaction.State `yaml:"states,omitempty" json:"states,omitempty"`
}

// Actions lists the supported step types.
var Actions = []string{"move", "press", "wait", "tick", "disable", "enable", "assert"}

// ErrNoSteps is returned when the input holds no steps.
var ErrNoSteps = errors.New("no steps provided; expected a YAML list of actions")

// Parse decodes a YAML list of steps.
func Parse(data []byte) ([]Step, error) {
	if len(data) == 0 {
		return nil, ErrNoSteps
	}
	var steps []Step
	if err := yaml.Unmarshal(data, &steps); err != nil {
		return nil, fmt.Errorf("failed to parse YAML steps: %w", err)
	}
	if len(steps) == 0 {
		return nil, ErrNoSteps
	}
	return steps, nil
}

// Read decodes steps from r.
func Read(r io.Reader) ([]Step, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read steps: %w", err)
	}
	return Parse(data)
}

// Runner executes steps against a System. It remembers the pointer between
// steps so `wait` and `tick` without coordinates reuse the last position.
type Runner struct {
	sys         *interaction.System
	pointer     f32.Point
	StopOnError bool
}

func NewRunner(sys *interaction.System) *Runner {
	return &Runner{sys: sys, StopOnError: true}
}

// Pointer returns the last pointer position in layout coordinates.
func (r *Runner) Pointer() f32.Point { return r.pointer }

// Run executes steps in order.
func (r *Runner) Run(steps []Step) Result {
	results := make([]StepResult, 0, len(steps))
	completed := 0
	var lastErr string

	for i, step := range steps {
		n := i + 1
		res, err := r.runStep(step)
		res.Step = n
		if err != nil {
			res.Error = err.Error()
			results = append(results, res)
			if lastErr == "" {
				lastErr = fmt.Sprintf("step %d: %s", n, err)
			}
			if r.StopOnError {
				break
			}
			continue
		}
		res.OK = true
		res.States = r.states()
		completed++
		results = append(results, res)
	}

	return Result{
		OK:        lastErr == "",
		Steps:     len(steps),
		Completed: completed,
		Error:     lastErr,
		Results:   results,
	}
}

func (r *Runner) runStep(step Step) (StepResult, error) {
	if len(step) != 1 {
		return StepResult{}, fmt.Errorf("expected exactly one action key, got %d", len(step))
	}
	var (
		action string
		params Params
	)
	for action, params = range step {
	}
	if params == nil {
		params = Params{}
	}
	events, err := r.execute(action, params)
	return StepResult{Action: action, Events: events}, err
}

func (r *Runner) execute(action string, p Params) ([]interaction.Event, error) {
	switch action {
	case "move":
		pt, err := r.point(p, true)
		if err != nil {
			return nil, err
		}
		return r.Tick(platform.InputFrame{Pointer: pt}), nil
	case "press":
		pt, err := r.point(p, true)
		if err != nil {
			return nil, err
		}
		return r.Tick(platform.InputFrame{Pointer: pt, JustPressed: true}), nil
	case "wait":
		secs, ok, err := p.Float("seconds")
		if err != nil {
			return nil, err
		}
		if !ok || secs < 0 {
			return nil, fmt.Errorf("wait requires seconds >= 0")
		}
		return r.Tick(platform.InputFrame{Pointer: r.pointer, Elapsed: secs}), nil
	case "tick":
		pt, err := r.point(p, false)
		if err != nil {
			return nil, err
		}
		elapsed, _, err := p.Float("elapsed")
		if err != nil {
			return nil, err
		}
		if elapsed < 0 {
			return nil, fmt.Errorf("elapsed must not be negative")
		}
		return r.Tick(platform.InputFrame{
			Pointer:     pt,
			JustPressed: p.Bool("pressed", false),
			Elapsed:     elapsed,
		}), nil
	case "disable", "enable":
		name := p.String("name", "")
		if name == "" {
			return nil, fmt.Errorf("%s requires name", action)
		}
		return r.sys.SetDisabled(name, action == "disable")
	case "assert":
		return nil, r.assert(p)
	default:
		return nil, fmt.Errorf("unknown step type %q; supported: %v", action, Actions)
	}
}

// Tick advances the world and records the pointer.
func (r *Runner) Tick(in platform.InputFrame) []interaction.Event {
	r.pointer = in.Pointer
	return r.sys.Tick(in)
}

func (r *Runner) point(p Params, required bool) (f32.Point, error) {
	x, okX, err := p.Float("x")
	if err != nil {
		return f32.Point{}, err
	}
	y, okY, err := p.Float("y")
	if err != nil {
		return f32.Point{}, err
	}
	if required && (!okX || !okY) {
		return f32.Point{}, fmt.Errorf("x and y are required")
	}
	pt := r.pointer
	if okX {
		pt.X = x
	}
	if okY {
		pt.Y = y
	}
	return pt, nil
}

func (r *Runner) assert(p Params) error {
	name := p.String("name", "")
	if name == "" {
		return fmt.Errorf("assert requires name")
	}
	want, err := interaction.ParseState(p.String("state", ""))
	if err != nil {
		return err
	}
	got, err := r.sys.State(name)
	if err != nil {
		return err
	}
	if got != want {
		return fmt.Errorf("%s: state is %s, want %s", name, got, want)
	}
	return nil
}

func (r *Runner) states() map[string]interaction.State {
	snap := r.sys.Snapshot()
	if len(snap) == 0 {
		return nil
	}
	out := make(map[string]interaction.State, len(snap))
	for _, w := range snap {
		out[w.Name] = w.State
	}
	return out
}
