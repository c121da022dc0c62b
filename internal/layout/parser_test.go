package layout

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const menuLayout = `
// main menu
--global_settings--
font_name: fonts/main.ttf
font_size: 24
color: 255;200;0
--end--

--picture_box--
name: background
size: 1280;720
texture_name: bg.png // full screen
dock_with: screen.center_middle <-> this.center_middle
--end--

--BUTTON--
name: play
size: 200;60
texture_name: play.png
texture_hover: play_hover.png
on_click_sound: click.wav
dock_with: background.center_middle <-> this.center_middle
--end--

--label--
name: title
size: 400;80
text_string: Hello: world
font_size: 48
dock_with: play.top_middle <-> this.bottom_middle
offset: 0;20
--end--
`

func parseString(t *testing.T, s string) ControlSet {
	t.Helper()
	cs, err := Parse(strings.NewReader(s))
	require.NoError(t, err)
	return cs
}

func TestParse_Menu(t *testing.T) {
	cs := parseString(t, menuLayout)
	assert.Equal(t, []string{"background", "play", "title"}, cs.Names())

	bg := cs["background"]
	assert.Equal(t, KindPictureBox, bg.Kind)
	assert.Equal(t, 9, bg.Line)
	assert.Equal(t, "bg.png", bg.Fields["texture_name"])
	assert.Equal(t, "0.0", bg.Fields["draw_order"])
	_, hasFont := bg.Fields["font_name"]
	assert.False(t, hasFont, "picture boxes do not take global font settings")

	play := cs["play"]
	assert.Equal(t, KindButton, play.Kind)
	assert.Equal(t, "fonts/main.ttf", play.Fields["font_name"])
	assert.Equal(t, "24", play.Fields["font_size"])
	assert.Equal(t, "255;200;0", play.Fields["color"])
	assert.Equal(t, "", play.Fields["texture_active"])
	assert.Equal(t, "0;0", play.Fields["offset"])

	title := cs["title"]
	assert.Equal(t, "Hello: world", title.Fields["text_string"], "only the first colon splits")
	assert.Equal(t, "48", title.Fields["font_size"], "explicit value overrides the global default")
	assert.Equal(t, "0;20", title.Fields["offset"])
}

func TestParse_Idempotent(t *testing.T) {
	a := parseString(t, menuLayout)
	b := parseString(t, menuLayout)
	assert.Equal(t, a, b)

	lines, err := ParseLines(strings.Split(menuLayout, "\n"))
	require.NoError(t, err)
	assert.Equal(t, a, lines)
}

func TestParse_GlobalSettingsPersistUntilReset(t *testing.T) {
	cs := parseString(t, `
--global_settings--
font_name: a.ttf
--end--
--label--
name: one
--end--
--label--
name: two
--end--
--global_settings--
color: red
--end--
--label--
name: three
--end--
`)
	assert.Equal(t, "a.ttf", cs["one"].Fields["font_name"])
	assert.Equal(t, "a.ttf", cs["two"].Fields["font_name"])
	assert.Equal(t, "", cs["three"].Fields["font_name"])
	assert.Equal(t, "red", cs["three"].Fields["color"])
	assert.Equal(t, "0", cs["three"].Fields["font_size"])
}

func TestParse_LastWriteWins(t *testing.T) {
	cs := parseString(t, `
--label--
name: a
Text_String: first
text_string: second
--end--
--label--
name: a
text_string: third
--end--
`)
	require.Len(t, cs, 1)
	assert.Equal(t, "third", cs["a"].Fields["text_string"])
	assert.Equal(t, 7, cs["a"].Line)
}

func TestParse_UnclosedControlDiscardedByNextHeader(t *testing.T) {
	cs := parseString(t, `
--label--
name: lost
--button--
name: kept
--end--
`)
	assert.Equal(t, []string{"kept"}, cs.Names())
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		line   int
		reason string
	}{
		{"end outside block", "\n\n--end--", 3, "outside of any block"},
		{"field outside block", "name: x", 1, "field outside"},
		{"unknown header", "--slider--", 1, "unrecognized block header"},
		{"missing separator", "--label--\nname x\n--end--", 2, "missing ':'"},
		{"empty field name", "--label--\n: x\n--end--", 2, "empty field name"},
		{"unknown global", "--global_settings--\nsize: 1;1\n--end--", 2, "unknown global setting"},
		{"unnamed control", "--label--\ntext_string: x\n--end--", 3, "has no name"},
		{"never closed", "// c\n--button--\nname: x\n", 2, "never closed"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(strings.NewReader(tt.input))
			var fe *FormatError
			require.True(t, errors.As(err, &fe), "got %v", err)
			assert.Equal(t, tt.line, fe.Line)
			assert.Contains(t, fe.Reason, tt.reason)
		})
	}
}

func TestParse_CommentsInsideBlocks(t *testing.T) {
	cs := parseString(t, `
--picture_box--
   // indented comment
name: pic

size: 10;10 // trailing
--end--
`)
	assert.Equal(t, "10;10", cs["pic"].Fields["size"])
}

func TestParseFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "menu.ui")
	require.NoError(t, os.WriteFile(path, []byte(menuLayout), 0o644))

	cs, err := ParseFile(path)
	require.NoError(t, err)
	assert.Len(t, cs, 3)

	require.NoError(t, os.WriteFile(path, []byte("--end--\n"), 0o644))
	_, err = ParseFile(path)
	var fe *FormatError
	require.ErrorAs(t, err, &fe)
	assert.Contains(t, err.Error(), path)

	_, err = ParseFile(filepath.Join(dir, "missing.ui"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}
