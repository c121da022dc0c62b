package output

import (
	"fmt"
	"strings"

	"github.com/mj1618/gergui/internal/model"
)

// FormatAgentString renders a screen as one header line plus one line per
// element:
//
//	# menu.ui 1280x720 controls=3 buttons=1
//	play btn (-100,30,200,60) hover "Play"
func FormatAgentString(screen model.Screen, elements []model.Element) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s %s controls=%d buttons=%d\n", screen.File, screen.Size, screen.Controls, screen.Buttons)
	for _, el := range elements {
		b.WriteString(FormatAgentLine(el))
		b.WriteByte('\n')
	}
	return b.String()
}

// FormatAgentLine renders a single element.
func FormatAgentLine(el model.Element) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %s (%d,%d,%d,%d)", el.Name, el.Kind, el.Bounds[0], el.Bounds[1], el.Bounds[2], el.Bounds[3])
	if el.State != "" {
		b.WriteString(" " + el.State)
	}
	if el.Cooldown > 0 {
		fmt.Fprintf(&b, " cd=%.2f", el.Cooldown)
	}
	if el.Text != "" {
		fmt.Fprintf(&b, " %q", el.Text)
	}
	return b.String()
}
