package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/mj1618/gergui/internal/config"
	"github.com/mj1618/gergui/internal/output"
	"github.com/mj1618/gergui/internal/platform"
	"github.com/mj1618/gergui/internal/version"
)

// cfg is loaded once per invocation by the root pre-run hook.
var cfg = config.Default()

var rootCmd = &cobra.Command{
	Use:   "gergui",
	Short: "Parse, resolve and drive 2D UI layout files",
	Long: `A CLI for .ui layout files: parse control blocks, resolve docked positions,
hit-test points against buttons and drive the button state machine from scripts,
a terminal session, a websocket feed or an MCP client.`,
	SilenceUsage: true,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.Version = version.String()
	rootCmd.PersistentFlags().String("format", "", "Output format: yaml, json, agent (default: agent when piped, yaml otherwise)")
	rootCmd.PersistentFlags().Bool("pretty", false, "Pretty-print JSON output")
	rootCmd.PersistentFlags().String("config", "", "Path to a YAML config file")
	rootCmd.PersistentFlags().String("log-level", "", "Log level: debug, info, warn, error (overrides config)")
	rootCmd.PersistentFlags().String("screen", "", "Screen size WxH (overrides config, e.g. 1280x720)")
	rootCmd.PersistentPreRunE = setup
}

func setup(cmd *cobra.Command, args []string) error {
	configPath, _ := rootCmd.PersistentFlags().GetString("config")
	loaded, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if level, _ := rootCmd.PersistentFlags().GetString("log-level"); level != "" {
		loaded.Log.Level = level
	}
	if screen, _ := rootCmd.PersistentFlags().GetString("screen"); screen != "" {
		size, err := platform.ParseSize(screen)
		if err != nil {
			return err
		}
		loaded.Screen.Width, loaded.Screen.Height = size.Width, size.Height
	}
	if err := config.SetupLogging(loaded.Log); err != nil {
		return err
	}
	cfg = loaded

	// Use the root persistent flag directly to avoid conflicts with
	// subcommand local flags.
	format, _ := rootCmd.PersistentFlags().GetString("format")

	// Piped output (agent context) -> agent format.
	// Terminal output (human) -> yaml format.
	if format == "" {
		if output.IsOutputPiped() {
			format = string(output.FormatAgent)
		} else {
			format = string(output.FormatYAML)
		}
	}
	f, err := output.ParseFormat(format)
	if err != nil {
		return err
	}
	output.OutputFormat = f
	output.PrettyOutput, _ = rootCmd.PersistentFlags().GetBool("pretty")
	return nil
}

// screenSize returns the configured screen size.
func screenSize() platform.Size {
	return platform.Size{Width: cfg.Screen.Width, Height: cfg.Screen.Height}
}
