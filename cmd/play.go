package cmd

import (
	"context"
	"errors"
	"os"
	"os/signal"

	"gioui.org/f32"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/mj1618/gergui/internal/platform"
)

var playCmd = &cobra.Command{
	Use:   "play <file.ui>",
	Short: "Open an interactive terminal session for a layout",
	Long: `Draw the layout in the terminal and drive its buttons with the mouse. Moving
over a button hovers it, pressing clicks it (with its click sound unless
--mute) and it returns to normal after the cooldown. Quit with q, Esc or Ctrl-C.`,
	Args: cobra.ExactArgs(1),
	RunE: runPlay,
}

func init() {
	rootCmd.AddCommand(playCmd)
	playCmd.Flags().String("button", "left", "Mouse button that clicks: left, right, middle")
	playCmd.Flags().Bool("mute", false, "Disable click sounds")
}

func runPlay(cmd *cobra.Command, args []string) error {
	buttonStr, _ := cmd.Flags().GetString("button")
	button, err := platform.ParseMouseButton(buttonStr)
	if err != nil {
		return err
	}
	mute, _ := cmd.Flags().GetBool("mute")

	provider, err := platform.NewProvider(platform.Options{
		Screen:    screenSize(),
		AssetsDir: cfg.AssetsDir,
		Audio:     cfg.Audio.Enabled && !mute,
		Button:    button,
	})
	if err != nil {
		return err
	}
	if provider.Close != nil {
		defer provider.Close()
	}

	scene, err := loadScene(args[0], provider.Assets)
	if err != nil {
		return err
	}
	sys, err := newWorld(scene, provider.Audio)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	if err := provider.Renderer.Render(scene.Frame(sys, f32.Point{})); err != nil {
		return err
	}
	for {
		in, err := provider.Pointer.Next(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) {
				return nil
			}
			return err
		}
		if in.Quit {
			return nil
		}
		for _, ev := range sys.Tick(in) {
			logrus.WithFields(logrus.Fields{
				"widget": ev.Widget,
				"to":     ev.To,
				"cause":  ev.Cause,
			}).Debug("transition")
		}
		if err := provider.Renderer.Render(scene.Frame(sys, in.Pointer)); err != nil {
			return err
		}
	}
}
