package cmd

import (
	"github.com/spf13/cobra"

	"github.com/mj1618/gergui/internal/interaction"
	"github.com/mj1618/gergui/internal/model"
	"github.com/mj1618/gergui/internal/output"
	"github.com/mj1618/gergui/internal/platform"
)

// HoverResult is the output of hover: which buttons the point hits and what a
// single pointer move there would change.
type HoverResult struct {
	OK       bool                `yaml:"ok"                 json:"ok"`
	Action   string              `yaml:"action"             json:"action"`
	X        float32             `yaml:"x"                  json:"x"`
	Y        float32             `yaml:"y"                  json:"y"`
	Target   *model.Element      `yaml:"target,omitempty"   json:"target,omitempty"`
	Hits     []string            `yaml:"hits"               json:"hits"`
	Events   []interaction.Event `yaml:"events,omitempty"   json:"events,omitempty"`
	Elements []model.Element     `yaml:"elements,omitempty" json:"elements,omitempty"`
}

var hoverCmd = &cobra.Command{
	Use:   "hover <file.ui>",
	Short: "Hit-test a point against every button",
	Long: `Move the pointer to a point, a named control, or a control found by text, and
report the buttons whose hit shape contains it. The hover pass runs once, so
the events show which buttons would switch to hover.`,
	Args: cobra.ExactArgs(1),
	RunE: runHover,
}

func init() {
	rootCmd.AddCommand(hoverCmd)
	addTargetFlags(hoverCmd)
	hoverCmd.Flags().StringSlice("disable", nil, "Buttons to pin as disabled first")
	addPostReadFlags(hoverCmd)
}

func runHover(cmd *cobra.Command, args []string) error {
	scene, err := loadScene(args[0], nil)
	if err != nil {
		return err
	}
	sys, err := newWorld(scene, nil)
	if err != nil {
		return err
	}
	if err := disableFromFlag(cmd, sys); err != nil {
		return err
	}

	p, target, err := resolveTarget(cmd, scene.Elements(sys))
	if err != nil {
		return err
	}

	hits := sys.HitTest(p)
	if hits == nil {
		hits = []string{}
	}
	result := HoverResult{
		OK:     true,
		Action: "hover",
		X:      p.X,
		Y:      p.Y,
		Target: target,
		Hits:   hits,
		Events: sys.Tick(platform.InputFrame{Pointer: p}),
	}
	if postRead, _ := cmd.Flags().GetBool("post-read"); postRead {
		result.Elements = scene.Elements(sys)
	}
	return output.Print(result)
}

func disableFromFlag(cmd *cobra.Command, sys *interaction.System) error {
	names, _ := cmd.Flags().GetStringSlice("disable")
	for _, name := range names {
		if _, err := sys.SetDisabled(name, true); err != nil {
			return err
		}
	}
	return nil
}
