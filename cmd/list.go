package cmd

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/mj1618/gergui/internal/model"
	"github.com/mj1618/gergui/internal/output"
	"github.com/mj1618/gergui/internal/platform"
)

var listCmd = &cobra.Command{
	Use:   "list <file.ui>",
	Short: "Resolve every control and list the widgets",
	Long: `Resolve every control of a layout file and print one compact entry per control:
name, kind (img, txt, btn), bounds (x,y,w,h with x,y the top-left corner, origin at
the screen center, Y up), draw order, dock path and, for buttons, the initial state.`,
	Args: cobra.ExactArgs(1),
	RunE: runList,
}

func init() {
	rootCmd.AddCommand(listCmd)
	listCmd.Flags().String("kinds", "", "Comma-separated kinds: btn, img, txt, or interactive/visual")
	listCmd.Flags().String("text", "", "Filter by name or text substring (case-insensitive)")
	listCmd.Flags().String("bbox", "", "Only include controls intersecting x,y,w,h (top-left, Y up)")
	listCmd.Flags().String("state", "", "Only include buttons in this state")
	listCmd.Flags().String("under", "", "Only include controls docked (directly or through a chain) to this control")
}

func runList(cmd *cobra.Command, args []string) error {
	scene, err := loadScene(args[0], nil)
	if err != nil {
		return err
	}
	sys, err := newWorld(scene, nil)
	if err != nil {
		return err
	}

	kinds, _ := cmd.Flags().GetString("kinds")
	text, _ := cmd.Flags().GetString("text")
	bboxStr, _ := cmd.Flags().GetString("bbox")
	state, _ := cmd.Flags().GetString("state")
	under, _ := cmd.Flags().GetString("under")

	var bbox *[4]int
	if bboxStr != "" {
		b, err := platform.ParseBBox(bboxStr)
		if err != nil {
			return err
		}
		bbox = &[4]int{int(b.X), int(b.Y), int(b.Width), int(b.Height)}
	}

	elements := scene.Elements(sys)
	elements = model.FilterElements(elements, splitList(kinds), bbox)
	if text != "" {
		elements = model.FilterByText(elements, text)
	}
	if state != "" {
		elements = model.FilterByState(elements, state)
	}
	if under != "" {
		elements = model.FilterByAncestor(elements, under)
	}
	if elements == nil {
		elements = []model.Element{}
	}

	return output.Print(output.ListResult{
		Screen:   scene.Summary(args[0]),
		TS:       time.Now().Unix(),
		Elements: elements,
	})
}
