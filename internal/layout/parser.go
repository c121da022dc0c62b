package layout

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

var log = logrus.WithField("component", "layout")

const (
	headerGlobalSettings = "--global_settings--"
	headerPictureBox     = "--picture_box--"
	headerLabel          = "--label--"
	headerButton         = "--button--"
	headerEnd            = "--end--"
)

var headerKinds = map[string]Kind{
	headerPictureBox: KindPictureBox,
	headerLabel:      KindLabel,
	headerButton:     KindButton,
}

type readMode int

const (
	modeNone readMode = iota
	modeGlobalSettings
	modeControl
)

// globalSettings holds the font and color defaults declared by the most recent
// --global_settings-- block. Labels and buttons copy them when their block opens.
type globalSettings struct {
	FontName string
	FontSize string
	Color    string
}

func defaultGlobalSettings() globalSettings {
	return globalSettings{FontSize: "0"}
}

// seedFields returns the default field table for a newly opened control.
func seedFields(kind Kind, g globalSettings) Fields {
	f := Fields{
		"dock_with": "",
		"offset":    "0;0",
	}
	switch kind {
	case KindPictureBox:
		f["texture_name"] = ""
		f["draw_order"] = "0.0"
	case KindLabel:
		f["text_string"] = ""
		f["font_name"] = g.FontName
		f["font_size"] = g.FontSize
		f["color"] = g.Color
	case KindButton:
		f["texture_name"] = ""
		f["texture_hover"] = ""
		f["texture_active"] = ""
		f["texture_disabled"] = ""
		f["on_click_sound"] = ""
		f["draw_order"] = "0.0"
		f["text_string"] = ""
		f["font_name"] = g.FontName
		f["font_size"] = g.FontSize
		f["color"] = g.Color
	}
	return f
}

type parser struct {
	mode     readMode
	globals  globalSettings
	current  Control
	openLine int
	openText string
	controls ControlSet
}

func newParser() *parser {
	return &parser{
		globals:  defaultGlobalSettings(),
		controls: make(ControlSet),
	}
}

// ParseLines parses a layout held in memory, one element per line.
func ParseLines(lines []string) (ControlSet, error) {
	p := newParser()
	for i, line := range lines {
		if err := p.line(i+1, line); err != nil {
			return nil, err
		}
	}
	return p.finish()
}

// Parse reads a layout from r.
func Parse(r io.Reader) (ControlSet, error) {
	p := newParser()
	scanner := bufio.NewScanner(r)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		if err := p.line(lineNum, scanner.Text()); err != nil {
			return nil, err
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read layout: %w", err)
	}
	return p.finish()
}

// ParseFile parses the layout file at path.
func ParseFile(path string) (ControlSet, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open layout: %w", err)
	}
	defer f.Close()

	controls, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return controls, nil
}

func (p *parser) line(num int, raw string) error {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" || strings.HasPrefix(trimmed, "//") {
		return nil
	}
	if isHeader(trimmed) {
		return p.header(num, raw, strings.ToLower(trimmed))
	}
	return p.field(num, raw, trimmed)
}

func isHeader(s string) bool {
	return len(s) > 4 && strings.HasPrefix(s, "--") && strings.HasSuffix(s, "--")
}

func (p *parser) header(num int, raw, header string) error {
	switch header {
	case headerGlobalSettings:
		p.abandonOpenControl(num)
		p.mode = modeGlobalSettings
		p.globals = defaultGlobalSettings()
	case headerPictureBox, headerLabel, headerButton:
		p.abandonOpenControl(num)
		kind := headerKinds[header]
		p.mode = modeControl
		p.current = Control{Kind: kind, Line: num, Fields: seedFields(kind, p.globals)}
	case headerEnd:
		return p.end(num, raw)
	default:
		return &FormatError{Line: num, Text: raw, Reason: "unrecognized block header"}
	}
	p.openLine = num
	p.openText = raw
	return nil
}

// abandonOpenControl drops a control whose block was never closed before the next header.
func (p *parser) abandonOpenControl(num int) {
	if p.mode != modeControl {
		return
	}
	log.WithFields(logrus.Fields{
		"opened": p.openLine,
		"line":   num,
		"name":   p.current.Fields["name"],
	}).Warn("control block not closed before next header, discarded")
}

func (p *parser) end(num int, raw string) error {
	switch p.mode {
	case modeNone:
		return &FormatError{Line: num, Text: raw, Reason: "--end-- outside of any block"}
	case modeControl:
		name := p.current.Fields["name"]
		if name == "" {
			return &FormatError{Line: num, Text: raw, Reason: fmt.Sprintf("control opened at line %d has no name", p.openLine)}
		}
		if prev, dup := p.controls[name]; dup {
			log.WithFields(logrus.Fields{
				"name":     name,
				"previous": prev.Line,
				"line":     p.openLine,
			}).Warn("duplicate control name, later block wins")
		}
		p.current.Name = name
		p.controls[name] = p.current
	}
	// Global settings stay in effect after their block closes; only the next
	// --global_settings-- header resets them.
	p.mode = modeNone
	p.current = Control{}
	return nil
}

func (p *parser) field(num int, raw, trimmed string) error {
	if p.mode == modeNone {
		return &FormatError{Line: num, Text: raw, Reason: "field outside of any block"}
	}

	idx := strings.Index(trimmed, ":")
	if idx < 0 {
		return &FormatError{Line: num, Text: raw, Reason: "missing ':' separator"}
	}
	name := strings.ToLower(strings.TrimSpace(trimmed[:idx]))
	if name == "" {
		return &FormatError{Line: num, Text: raw, Reason: "empty field name"}
	}
	value := trimmed[idx+1:]
	if c := strings.Index(value, "//"); c >= 0 {
		value = value[:c]
	}
	value = strings.TrimSpace(value)

	if p.mode == modeGlobalSettings {
		switch name {
		case "font_name":
			p.globals.FontName = value
		case "font_size":
			p.globals.FontSize = value
		case "color":
			p.globals.Color = value
		default:
			return &FormatError{Line: num, Text: raw, Reason: fmt.Sprintf("unknown global setting %q", name)}
		}
		return nil
	}

	p.current.Fields[name] = value
	return nil
}

func (p *parser) finish() (ControlSet, error) {
	if p.mode != modeNone {
		return nil, &FormatError{Line: p.openLine, Text: p.openText, Reason: "block never closed with --end--"}
	}
	return p.controls, nil
}
