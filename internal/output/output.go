package output

import (
	"fmt"
	"os"

	"github.com/mj1618/gergui/internal/model"
)

// Format represents the output format.
type Format string

const (
	FormatYAML  Format = "yaml"
	FormatJSON  Format = "json"
	FormatAgent Format = "agent"
)

// ParseFormat validates a --format value.
func ParseFormat(s string) (Format, error) {
	switch f := Format(s); f {
	case FormatYAML, FormatJSON, FormatAgent:
		return f, nil
	default:
		return "", fmt.Errorf("unsupported format: %s (use yaml, json, or agent)", s)
	}
}

// OutputFormat is the current output format, set by the root command's --format flag.
var OutputFormat Format = FormatYAML

// PrettyOutput enables pretty-printing for JSON output.
var PrettyOutput bool

// AgentFormatter is implemented by results that have a compact line form.
// Results without one print as YAML in agent mode.
type AgentFormatter interface {
	AgentString() string
}

// ListResult is the top-level output of the `list` command.
type ListResult struct {
	Screen   model.Screen    `yaml:"screen"   json:"screen"`
	TS       int64           `yaml:"ts"       json:"ts"`
	Elements []model.Element `yaml:"elements" json:"elements"`
}

// AgentString renders the result as one line per element.
func (r ListResult) AgentString() string {
	return FormatAgentString(r.Screen, r.Elements)
}

// Print serializes v to stdout in the current output format.
func Print(v interface{}) error {
	switch OutputFormat {
	case FormatJSON:
		if PrettyOutput {
			return PrintPrettyJSON(v)
		}
		return PrintJSON(v)
	case FormatYAML:
		return PrintYAML(v)
	case FormatAgent:
		if af, ok := v.(AgentFormatter); ok {
			_, err := fmt.Fprint(os.Stdout, af.AgentString())
			return err
		}
		return PrintYAML(v)
	default:
		return fmt.Errorf("unsupported output format: %s", OutputFormat)
	}
}

// IsOutputPiped reports whether stdout is a pipe or file rather than a terminal.
func IsOutputPiped() bool {
	fi, err := os.Stdout.Stat()
	if err != nil {
		return false
	}
	return fi.Mode()&os.ModeCharDevice == 0
}
