package cmd

import (
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/mj1618/gergui/internal/remote"
)

var feedCmd = &cobra.Command{
	Use:   "feed <file.ui>",
	Short: "Serve a websocket feed that drives the layout's buttons",
	Long: `Start a websocket server on /ws. Each connection gets its own world built from
the layout. Clients send {"x":..,"y":..,"pressed":bool,"elapsed":secs} frames or
{"cmd":"disable"|"enable","name":..} commands and receive the tick's events and
every widget's state. Connect with ?diff=1 to also receive element changes.`,
	Args: cobra.ExactArgs(1),
	RunE: runFeed,
}

func init() {
	rootCmd.AddCommand(feedCmd)
	feedCmd.Flags().Int("port", 0, "Port to listen on (default from config, 8090)")
	feedCmd.Flags().String("origin", "*", "Allowed Origin header")
}

func runFeed(cmd *cobra.Command, args []string) error {
	port, _ := cmd.Flags().GetInt("port")
	if port == 0 {
		port = cfg.Feed.Port
	}
	origin, _ := cmd.Flags().GetString("origin")

	scene, err := loadScene(args[0], nil)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	feed := remote.NewFeed(scene, remote.Options{Cooldown: cfg.CooldownSeconds, AllowedOrigin: origin})
	return feed.ListenAndServe(ctx, fmt.Sprintf(":%d", port))
}
