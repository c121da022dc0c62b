package cmd

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/mj1618/gergui/internal/interaction"
	"github.com/mj1618/gergui/internal/model"
	"github.com/mj1618/gergui/internal/output"
	"github.com/mj1618/gergui/internal/platform"
	"github.com/mj1618/gergui/internal/platform/sound"
)

// ClickResult is the output of click.
type ClickResult struct {
	OK       bool                `yaml:"ok"                 json:"ok"`
	Action   string              `yaml:"action"             json:"action"`
	X        float32             `yaml:"x"                  json:"x"`
	Y        float32             `yaml:"y"                  json:"y"`
	Target   *model.Element      `yaml:"target,omitempty"   json:"target,omitempty"`
	Events   []interaction.Event `yaml:"events"             json:"events"`
	Elements []model.Element     `yaml:"elements,omitempty" json:"elements,omitempty"`
}

var clickCmd = &cobra.Command{
	Use:   "click <file.ui>",
	Short: "Press the pointer at a point and print the transitions",
	Long: `Run one tick with the pointer at the target and the button just pressed.
A button under the pointer goes Normal -> Hover -> Active in that tick and
starts its cooldown. With --sound the click sound is played through the
audio device.`,
	Args: cobra.ExactArgs(1),
	RunE: runClick,
}

func init() {
	rootCmd.AddCommand(clickCmd)
	addTargetFlags(clickCmd)
	clickCmd.Flags().StringSlice("disable", nil, "Buttons to pin as disabled first")
	clickCmd.Flags().Bool("sound", false, "Play the click sound")
	addPostReadFlags(clickCmd)
}

func runClick(cmd *cobra.Command, args []string) error {
	var (
		audio  platform.AudioPlayer
		player *sound.Player
	)
	if playSound, _ := cmd.Flags().GetBool("sound"); playSound && cfg.Audio.Enabled {
		player = sound.NewPlayer(cfg.AssetsDir)
		if err := player.Open(); err != nil {
			return err
		}
		defer player.Close()
		audio = player
	}

	scene, err := loadScene(args[0], nil)
	if err != nil {
		return err
	}
	sys, err := newWorld(scene, audio)
	if err != nil {
		return err
	}
	if err := disableFromFlag(cmd, sys); err != nil {
		return err
	}

	p, target, err := resolveTarget(cmd, scene.Elements(sys))
	if err != nil {
		return err
	}

	events := sys.Tick(platform.InputFrame{Pointer: p, JustPressed: true})
	if events == nil {
		events = []interaction.Event{}
	}
	if player != nil {
		waitForSound(player, 2*time.Second)
	}
	result := ClickResult{
		OK:     true,
		Action: "click",
		X:      p.X,
		Y:      p.Y,
		Target: target,
		Events: events,
	}
	if postRead, _ := cmd.Flags().GetBool("post-read"); postRead {
		result.Elements = scene.Elements(sys)
	}
	return output.Print(result)
}

// waitForSound lets queued sounds finish before the device is closed.
func waitForSound(p *sound.Player, limit time.Duration) {
	deadline := time.Now().Add(limit)
	for p.Playing() > 0 && time.Now().Before(deadline) {
		time.Sleep(20 * time.Millisecond)
	}
}
