package server

import (
	"context"
	"strings"

	"gioui.org/f32"
	"github.com/mark3labs/mcp-go/mcp"
	"gopkg.in/yaml.v3"

	"github.com/mj1618/gergui/internal/geom"
	"github.com/mj1618/gergui/internal/interaction"
	"github.com/mj1618/gergui/internal/layout"
	"github.com/mj1618/gergui/internal/model"
	"github.com/mj1618/gergui/internal/output"
	"github.com/mj1618/gergui/internal/scenario"
	"github.com/mj1618/gergui/internal/spawn"
)

// HitResult is the hit_test response.
type HitResult struct {
	Point    [2]float32 `yaml:"point"    json:"point"`
	Buttons  []string   `yaml:"buttons"  json:"buttons"`
	Controls []string   `yaml:"controls" json:"controls"` // back to front
}

func toText(v interface{}) *mcp.CallToolResult {
	b, err := yaml.Marshal(v)
	if err != nil {
		return mcp.NewToolResultError(err.Error())
	}
	return mcp.NewToolResultText(string(b))
}

func (s *Server) screen(request mcp.CallToolRequest) f32.Point {
	return f32.Pt(
		float32(request.GetFloat("width", float64(s.cfg.Screen.X))),
		float32(request.GetFloat("height", float64(s.cfg.Screen.Y))),
	)
}

func (s *Server) load(request mcp.CallToolRequest) (layout.ControlSet, string, error) {
	file, err := request.RequireString("file")
	if err != nil {
		return nil, "", err
	}
	controls, err := s.cache.Load(file)
	if err != nil {
		return nil, file, err
	}
	return controls, file, nil
}

// scene parses the file and builds a world with every button spawned.
func (s *Server) scene(request mcp.CallToolRequest) (*spawn.Scene, *interaction.System, string, error) {
	controls, file, err := s.load(request)
	if err != nil {
		return nil, nil, file, err
	}
	sc, err := spawn.Build(controls, s.screen(request), nil)
	if err != nil {
		return nil, nil, file, err
	}
	sys := interaction.NewSystem(nil, s.cfg.Cooldown)
	if err := sc.Populate(sys); err != nil {
		return nil, nil, file, err
	}
	return sc, sys, file, nil
}

func (s *Server) handleParseScreen(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sc, sys, file, err := s.scene(request)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	elements := sc.Elements(sys)
	if kinds := request.GetString("kinds", ""); kinds != "" {
		elements = model.FilterElements(elements, strings.Split(kinds, ","), nil)
	}
	if text := request.GetString("text", ""); text != "" {
		elements = model.FilterByText(elements, text)
	}
	if state := request.GetString("state", ""); state != "" {
		elements = model.FilterByState(elements, state)
	}

	if request.GetString("format", "yaml") == "agent" {
		return mcp.NewToolResultText(output.FormatAgentString(sc.Summary(file), elements)), nil
	}
	return toText(output.ListResult{Screen: sc.Summary(file), Elements: elements}), nil
}

func (s *Server) handleResolveControl(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	controls, _, err := s.load(request)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	name, err := request.RequireString("name")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	res, err := spawn.Resolve(controls, s.screen(request), name)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return toText(res), nil
}

func (s *Server) handleHitTest(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	x, err := request.RequireFloat("x")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	y, err := request.RequireFloat("y")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	sc, sys, _, err := s.scene(request)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	p := f32.Pt(float32(x), float32(y))
	res := HitResult{Point: [2]float32{p.X, p.Y}, Buttons: sys.HitTest(p), Controls: []string{}}
	if res.Buttons == nil {
		res.Buttons = []string{}
	}
	for _, d := range sc.Drawables {
		box := geom.Rect{Left: d.TopLeft.X, Right: d.TopLeft.X + d.Size.X, Top: d.TopLeft.Y, Bottom: d.TopLeft.Y - d.Size.Y}
		if box.Contains(p) {
			res.Controls = append(res.Controls, d.Name)
		}
	}
	return toText(res), nil
}

func (s *Server) handleSimulate(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	params := request.GetArguments()
	raw, ok := params["steps"]
	if !ok {
		return mcp.NewToolResultError("steps parameter is required"), nil
	}
	arr, ok := raw.([]interface{})
	if !ok {
		return mcp.NewToolResultError("steps must be an array"), nil
	}
	for _, item := range arr {
		if _, ok := item.(map[string]interface{}); !ok {
			return mcp.NewToolResultError("each step must be an object"), nil
		}
	}

	// Round-trip through YAML so steps decode exactly as they do for `do`.
	data, err := yaml.Marshal(arr)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	steps, err := scenario.Parse(data)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	_, sys, _, err := s.scene(request)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	runner := scenario.NewRunner(sys)
	runner.StopOnError = request.GetBool("stop-on-error", true)
	res := runner.Run(steps)
	if !res.OK {
		log.WithField("error", res.Error).Debug("simulation failed")
	}
	return toText(res), nil
}
