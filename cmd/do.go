package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mj1618/gergui/internal/model"
	"github.com/mj1618/gergui/internal/output"
	"github.com/mj1618/gergui/internal/scenario"
)

// DoResult is the output of a batch do command.
type DoResult struct {
	scenario.Result `yaml:",inline"`
	Action          string          `yaml:"action"             json:"action"`
	Elements        []model.Element `yaml:"elements,omitempty" json:"elements,omitempty"`
}

var doCmd = &cobra.Command{
	Use:   "do <file.ui>",
	Short: "Run a scripted interaction against a layout",
	Long: `Execute a sequence of steps from a YAML list on stdin (or --steps) against a
fresh world built from the layout. Steps execute sequentially, and by default
execution stops on the first error.

Supported step types: ` + strings.Join(scenario.Actions, ", ") + `

Example:
  gergui do menu.ui <<'EOF'
  - move: { x: 0, y: 0 }
  - assert: { name: play, state: hover }
  - press: { x: 0, y: 0 }
  - wait: { seconds: 0.6 }
  - assert: { name: play, state: normal }
  EOF`,
	Args: cobra.ExactArgs(1),
	RunE: runDo,
}

func init() {
	rootCmd.AddCommand(doCmd)
	doCmd.Flags().String("steps", "", "Read steps from this file instead of stdin")
	doCmd.Flags().Bool("stop-on-error", true, "Stop execution on first error")
	addPostReadFlags(doCmd)
}

func runDo(cmd *cobra.Command, args []string) error {
	var in io.Reader = os.Stdin
	if path, _ := cmd.Flags().GetString("steps"); path != "" {
		f, err := os.Open(path)
		if err != nil {
			return err
		}
		defer f.Close()
		in = f
	}
	steps, err := scenario.Read(in)
	if err != nil {
		return fmt.Errorf("%w (pipe a YAML list of steps on stdin)", err)
	}

	scene, err := loadScene(args[0], nil)
	if err != nil {
		return err
	}
	sys, err := newWorld(scene, nil)
	if err != nil {
		return err
	}

	runner := scenario.NewRunner(sys)
	runner.StopOnError, _ = cmd.Flags().GetBool("stop-on-error")

	result := DoResult{Result: runner.Run(steps), Action: "do"}
	if postRead, _ := cmd.Flags().GetBool("post-read"); postRead {
		result.Elements = scene.Elements(sys)
	}
	return output.Print(result)
}
