package cmd

import (
	"fmt"
	"strings"

	"gioui.org/f32"
	"github.com/spf13/cobra"

	"github.com/mj1618/gergui/internal/interaction"
	"github.com/mj1618/gergui/internal/layout"
	"github.com/mj1618/gergui/internal/model"
	"github.com/mj1618/gergui/internal/platform"
	"github.com/mj1618/gergui/internal/spawn"
)

// loadScene parses a layout file and resolves it against the configured
// screen. assets may be nil.
func loadScene(path string, assets platform.AssetLoader) (*spawn.Scene, error) {
	controls, err := layout.ParseFile(path)
	if err != nil {
		return nil, err
	}
	return spawn.Build(controls, screenSize().Point(), assets)
}

// newWorld spawns every button of scene into a fresh interaction world.
func newWorld(scene *spawn.Scene, audio platform.AudioPlayer) (*interaction.System, error) {
	sys := interaction.NewSystem(audio, cfg.CooldownSeconds)
	if err := scene.Populate(sys); err != nil {
		return nil, err
	}
	return sys, nil
}

// addTargetFlags adds --x/--y, --name, --text, --kinds and --exact for
// picking the point a command acts on.
func addTargetFlags(cmd *cobra.Command) {
	cmd.Flags().Float64("x", 0, "X in layout coordinates (origin at screen center, Y up)")
	cmd.Flags().Float64("y", 0, "Y in layout coordinates")
	cmd.Flags().String("name", "", "Target the center of the control with this name")
	cmd.Flags().String("text", "", "Target the control whose name or text contains this (case-insensitive)")
	cmd.Flags().String("kinds", "", "Filter by kind when using --text (e.g. \"btn\", \"interactive\")")
	cmd.Flags().Bool("exact", false, "Require exact match on name/text (default: substring)")
}

// resolveTarget returns the point selected by the target flags, plus the
// element it came from when the point was picked by name or text.
func resolveTarget(cmd *cobra.Command, elements []model.Element) (f32.Point, *model.Element, error) {
	name, _ := cmd.Flags().GetString("name")
	text, _ := cmd.Flags().GetString("text")
	hasCoords := cmd.Flags().Changed("x") || cmd.Flags().Changed("y")

	switch {
	case hasCoords:
		x, _ := cmd.Flags().GetFloat64("x")
		y, _ := cmd.Flags().GetFloat64("y")
		return f32.Pt(float32(x), float32(y)), nil, nil
	case name != "":
		el := findElementByName(elements, name)
		if el == nil {
			return f32.Point{}, nil, fmt.Errorf("no control named %q", name)
		}
		return elementCenter(*el), el, nil
	case text != "":
		kinds, _ := cmd.Flags().GetString("kinds")
		exact, _ := cmd.Flags().GetBool("exact")
		el, err := resolveElementByText(elements, text, kinds, exact)
		if err != nil {
			return f32.Point{}, nil, err
		}
		return elementCenter(*el), el, nil
	default:
		return f32.Point{}, nil, fmt.Errorf("specify --x/--y, --name, or --text")
	}
}

func findElementByName(elements []model.Element, name string) *model.Element {
	for i := range elements {
		if elements[i].Name == name {
			return &elements[i]
		}
	}
	return nil
}

// elementCenter returns the middle of el's bounds as a layout point.
func elementCenter(el model.Element) f32.Point {
	b := el.Bounds
	return f32.Pt(float32(b[0])+float32(b[2])/2, float32(b[1])-float32(b[3])/2)
}

// resolveElementByText finds a single element whose name or text matches.
// When both interactive and static elements match, the interactive ones win.
// Multiple remaining matches are an error listing the candidates.
func resolveElementByText(elements []model.Element, text, kinds string, exact bool) (*model.Element, error) {
	if kinds != "" {
		elements = model.FilterElements(elements, splitList(kinds), nil)
	}

	var matches []*model.Element
	for i := range elements {
		if textMatchesElement(elements[i], text, exact) {
			matches = append(matches, &elements[i])
		}
	}
	if len(matches) == 0 {
		return nil, fmt.Errorf("no control found matching text %q", text)
	}
	if kinds == "" {
		matches = preferInteractiveElements(matches)
	}
	if len(matches) == 1 {
		return matches[0], nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "multiple controls match text %q; use --name, --exact, or --kinds to narrow:\n", text)
	for _, m := range matches {
		fmt.Fprintf(&b, "  %s %s (%d,%d,%d,%d)", m.Name, m.Kind, m.Bounds[0], m.Bounds[1], m.Bounds[2], m.Bounds[3])
		if m.Text != "" {
			fmt.Fprintf(&b, " text=%q", m.Text)
		}
		if m.Path != "" {
			fmt.Fprintf(&b, " path=%q", m.Path)
		}
		fmt.Fprintln(&b)
	}
	return nil, fmt.Errorf("%s", b.String())
}

func textMatchesElement(el model.Element, text string, exact bool) bool {
	if exact {
		return strings.EqualFold(el.Name, text) || strings.EqualFold(el.Text, text)
	}
	lower := strings.ToLower(text)
	return strings.Contains(strings.ToLower(el.Name), lower) ||
		strings.Contains(strings.ToLower(el.Text), lower)
}

// preferInteractiveElements keeps only interactive matches when the set mixes
// buttons with pictures or labels. A title label reading "Play" next to a
// "Play" button resolves to the button.
func preferInteractiveElements(matches []*model.Element) []*model.Element {
	var interactive []*model.Element
	for _, m := range matches {
		if m.Interactive() {
			interactive = append(interactive, m)
		}
	}
	if len(interactive) > 0 && len(interactive) < len(matches) {
		return interactive
	}
	return matches
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// addPostReadFlags adds --post-read, which appends the resolved elements to
// the command's result.
func addPostReadFlags(cmd *cobra.Command) {
	cmd.Flags().Bool("post-read", false, "Include every element's state (compact form) in the response")
}
