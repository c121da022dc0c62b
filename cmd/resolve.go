package cmd

import (
	"github.com/spf13/cobra"

	"github.com/mj1618/gergui/internal/layout"
	"github.com/mj1618/gergui/internal/output"
	"github.com/mj1618/gergui/internal/spawn"
)

var resolveCmd = &cobra.Command{
	Use:   "resolve <file.ui> <name>",
	Short: "Resolve one control's position",
	Long: `Resolve the top-left corner of a single control by following its dock chain
back to the screen, and print it with the derived center, size and chain.
Coordinates have their origin at the screen center with Y up.`,
	Args: cobra.ExactArgs(2),
	RunE: runResolve,
}

func init() {
	rootCmd.AddCommand(resolveCmd)
}

func runResolve(cmd *cobra.Command, args []string) error {
	controls, err := layout.ParseFile(args[0])
	if err != nil {
		return err
	}
	res, err := spawn.Resolve(controls, screenSize().Point(), args[1])
	if err != nil {
		return err
	}
	return output.Print(res)
}
