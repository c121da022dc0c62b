package cmd

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mj1618/gergui/internal/layout"
	"github.com/mj1618/gergui/internal/output"
)

// ReadResult is the output of the read command: every control as parsed,
// before any position is resolved.
type ReadResult struct {
	File     string           `yaml:"file"     json:"file"`
	Controls []layout.Control `yaml:"controls" json:"controls"`
}

// AgentString renders one line per control with its non-empty fields.
func (r ReadResult) AgentString() string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s controls=%d\n", r.File, len(r.Controls))
	for _, c := range r.Controls {
		fmt.Fprintf(&b, "%s %s line=%d", c.Name, c.Kind, c.Line)
		keys := make([]string, 0, len(c.Fields))
		for k := range c.Fields {
			if k != "name" && c.Fields.Has(k) {
				keys = append(keys, k)
			}
		}
		sort.Strings(keys)
		for _, k := range keys {
			fmt.Fprintf(&b, " %s=%q", k, c.Fields[k])
		}
		b.WriteByte('\n')
	}
	return b.String()
}

var readCmd = &cobra.Command{
	Use:   "read <file.ui>",
	Short: "Parse a layout file and print its controls",
	Long:  "Parse a layout file and print every control with its kind, header line and raw fields. Values are not interpreted; use list or resolve for positions.",
	Args:  cobra.ExactArgs(1),
	RunE:  runRead,
}

func init() {
	rootCmd.AddCommand(readCmd)
	readCmd.Flags().String("name", "", "Only print the control with this name")
	readCmd.Flags().String("kinds", "", "Comma-separated kinds to include: picture_box, label, button")
}

func runRead(cmd *cobra.Command, args []string) error {
	controls, err := layout.ParseFile(args[0])
	if err != nil {
		return err
	}
	name, _ := cmd.Flags().GetString("name")
	kindsStr, _ := cmd.Flags().GetString("kinds")

	kinds := make(map[layout.Kind]bool)
	for _, k := range splitList(kindsStr) {
		kind, err := layout.ParseKind(k)
		if err != nil {
			return err
		}
		kinds[kind] = true
	}

	result := ReadResult{File: args[0], Controls: []layout.Control{}}
	if name != "" {
		c, err := controls.Get(name)
		if err != nil {
			return err
		}
		result.Controls = append(result.Controls, c)
		return output.Print(result)
	}
	for _, n := range controls.Names() {
		c := controls[n]
		if len(kinds) > 0 && !kinds[c.Kind] {
			continue
		}
		result.Controls = append(result.Controls, c)
	}
	return output.Print(result)
}
