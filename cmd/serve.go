package cmd

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/mj1618/gergui/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start an MCP server exposing gergui tools",
	Long: `Start a Model Context Protocol (MCP) server that exposes layout parsing,
control resolution, hit testing and scripted simulation as tools.

Supported transports:
  stdio             Standard I/O (default, for local MCP clients)
  streamable-http   Streamable HTTP transport (for remote agents)

Examples:
  gergui serve
  gergui serve --transport streamable-http --port 8080
  gergui serve --cache-ttl 0`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().String("transport", "stdio", "Transport: stdio, streamable-http")
	serveCmd.Flags().Int("port", 0, "HTTP port for streamable-http transport (default from config, 8080)")
	serveCmd.Flags().Int("cache-ttl", -1, "Layout cache TTL in milliseconds (0 to disable, default from config)")
}

func runServe(cmd *cobra.Command, args []string) error {
	transport, _ := cmd.Flags().GetString("transport")
	port, _ := cmd.Flags().GetInt("port")
	if port == 0 {
		port = cfg.Serve.Port
	}
	cacheTTLMs, _ := cmd.Flags().GetInt("cache-ttl")
	if cacheTTLMs < 0 {
		cacheTTLMs = cfg.CacheTTLMillis
	}

	srv := server.New(server.Config{
		Transport: transport,
		Port:      port,
		CacheTTL:  time.Duration(cacheTTLMs) * time.Millisecond,
		Screen:    screenSize().Point(),
		Cooldown:  cfg.CooldownSeconds,
	})
	return srv.Serve()
}
