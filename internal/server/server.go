// Package server exposes layout parsing, resolution, hit testing and scripted
// interaction as MCP tools.
package server

import (
	"fmt"
	"time"

	"gioui.org/f32"
	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"
	"github.com/sirupsen/logrus"

	"github.com/mj1618/gergui/internal/version"
)

var log = logrus.WithField("component", "server")

// Config holds MCP server configuration.
type Config struct {
	Transport string
	Port      int
	CacheTTL  time.Duration
	Screen    f32.Point // default screen size when a call gives none
	Cooldown  float32
}

// Server wraps the MCP server with the layout cache.
type Server struct {
	cfg   Config
	cache *ScreenCache
	mcp   *mcpserver.MCPServer
}

// New creates and configures an MCP server with all gergui tools.
func New(cfg Config) *Server {
	s := &Server{
		cfg:   cfg,
		cache: NewScreenCache(cfg.CacheTTL),
	}
	s.mcp = mcpserver.NewMCPServer("gergui", version.Version)
	s.registerTools()
	return s
}

// Serve starts the MCP server with the configured transport.
func (s *Server) Serve() error {
	log.WithFields(logrus.Fields{
		"transport": s.cfg.Transport,
		"port":      s.cfg.Port,
	}).Info("starting MCP server")

	switch s.cfg.Transport {
	case "stdio":
		return mcpserver.ServeStdio(s.mcp)
	case "streamable-http":
		httpServer := mcpserver.NewStreamableHTTPServer(s.mcp)
		return httpServer.Start(fmt.Sprintf(":%d", s.cfg.Port))
	default:
		return fmt.Errorf("unsupported transport: %s (use stdio or streamable-http)", s.cfg.Transport)
	}
}

func (s *Server) registerTools() {
	screenOpts := []mcp.ToolOption{
		mcp.WithString("file", mcp.Description("Path to the .ui layout file"), mcp.Required()),
		mcp.WithNumber("width", mcp.Description("Screen width in pixels (default from config)")),
		mcp.WithNumber("height", mcp.Description("Screen height in pixels (default from config)")),
	}
	with := func(extra ...mcp.ToolOption) []mcp.ToolOption {
		return append(append([]mcp.ToolOption{}, screenOpts...), extra...)
	}

	s.mcp.AddTool(
		mcp.NewTool("parse_screen", with(
			mcp.WithDescription("Parse a layout file and list every resolved control with kind, bounds (x,y,w,h; top-left, Y up, origin at screen center), draw order, dock path and button state."),
			mcp.WithString("kinds", mcp.Description("Comma-separated kinds: btn, img, txt, or interactive/visual")),
			mcp.WithString("text", mcp.Description("Filter by name or text substring")),
			mcp.WithString("state", mcp.Description("Filter buttons by state")),
			mcp.WithString("format", mcp.Description("yaml (default) or agent")),
		)...),
		s.handleParseScreen,
	)

	s.mcp.AddTool(
		mcp.NewTool("resolve_control", with(
			mcp.WithDescription("Resolve one control's top-left, center, bounds and dock chain"),
			mcp.WithString("name", mcp.Description("Control name"), mcp.Required()),
		)...),
		s.handleResolveControl,
	)

	s.mcp.AddTool(
		mcp.NewTool("hit_test", with(
			mcp.WithDescription("List the buttons whose hit shape contains a point, and every control whose box contains it"),
			mcp.WithNumber("x", mcp.Description("X in layout coordinates"), mcp.Required()),
			mcp.WithNumber("y", mcp.Description("Y in layout coordinates"), mcp.Required()),
		)...),
		s.handleHitTest,
	)

	s.mcp.AddTool(
		mcp.NewTool("simulate", with(
			mcp.WithDescription("Run a scripted interaction against a fresh world. Steps: move, press, wait, tick, disable, enable, assert"),
			mcp.WithArray("steps", mcp.Description("Array of single-key step objects, e.g. {\"press\": {\"x\": 0, \"y\": 0}}"), mcp.Required()),
			mcp.WithBoolean("stop-on-error", mcp.Description("Stop on first error (default: true)")),
		)...),
		s.handleSimulate,
	)
}
