package cmd

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/mj1618/gergui/internal/output"
)

const menuLayout = `--global_settings--
font_size: 18
--end--

--picture_box--
name: bg
size: 800;600
draw_order: -1
dock_with: screen.center_middle <-> this.center_middle
--end--

--button--
name: play
size: 200;60
text_string: Play
on_click_sound: click.wav
dock_with: bg.center_middle <-> this.center_middle
--end--

--label--
name: title
size: 300;50
text_string: Play Now
dock_with: play.top_middle <-> this.bottom_middle
--end--
`

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

// resetFlags restores every flag of c and its subcommands to its default so
// one test's flags do not leak into the next.
func resetFlags(c *cobra.Command) {
	reset := func(f *pflag.Flag) {
		if sv, ok := f.Value.(pflag.SliceValue); ok {
			sv.Replace(nil)
		} else {
			f.Value.Set(f.DefValue)
		}
		f.Changed = false
	}
	c.Flags().VisitAll(reset)
	c.PersistentFlags().VisitAll(reset)
	for _, sub := range c.Commands() {
		resetFlags(sub)
	}
}

// run executes the CLI with args and returns what it wrote to stdout.
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	resetFlags(rootCmd)
	defer func() {
		output.OutputFormat = output.FormatYAML
		output.PrettyOutput = false
	}()

	old := os.Stdout
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatal(err)
	}
	os.Stdout = w

	done := make(chan []byte)
	go func() {
		var buf bytes.Buffer
		io.Copy(&buf, r)
		done <- buf.Bytes()
	}()

	rootCmd.SetArgs(args)
	runErr := rootCmd.Execute()

	w.Close()
	os.Stdout = old
	return string(<-done), runErr
}

func TestRootCommand_HasSubcommands(t *testing.T) {
	expected := []string{"read", "list", "resolve", "hover", "click", "do", "preview", "play", "feed", "serve"}
	found := make(map[string]bool)
	for _, c := range rootCmd.Commands() {
		found[c.Name()] = true
	}
	for _, name := range expected {
		if !found[name] {
			t.Errorf("expected subcommand %q not found", name)
		}
	}
}

func TestRootCommand_Version(t *testing.T) {
	if rootCmd.Version == "" {
		t.Error("root command version should be set")
	}
}

func TestRootCommand_PersistentFlags(t *testing.T) {
	for _, name := range []string{"format", "pretty", "config", "log-level", "screen"} {
		if rootCmd.PersistentFlags().Lookup(name) == nil {
			t.Errorf("expected persistent flag --%s", name)
		}
	}
}

func TestRootCommand_InvalidFormat(t *testing.T) {
	path := writeFile(t, "menu.ui", menuLayout)
	if _, err := run(t, "list", path, "--format", "screenshot"); err == nil {
		t.Error("expected error for unsupported format")
	}
}

func TestRootCommand_InvalidScreen(t *testing.T) {
	path := writeFile(t, "menu.ui", menuLayout)
	if _, err := run(t, "list", path, "--screen", "wide"); err == nil {
		t.Error("expected error for invalid --screen")
	}
}

func TestRootCommand_ConfigFile(t *testing.T) {
	path := writeFile(t, "menu.ui", menuLayout)
	conf := writeFile(t, "gergui.yaml", "screen:\n  width: 640\n  height: 480\n")
	out, err := run(t, "list", path, "--config", conf, "--format", "agent")
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Contains([]byte(out), []byte(" 640x480 ")) {
		t.Errorf("expected screen from config in header, got:\n%s", out)
	}
}
