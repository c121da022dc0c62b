package layout

import (
	"encoding/hex"
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"golang.org/x/image/colornames"
)

var white = color.NRGBA{R: 255, G: 255, B: 255, A: 255}

// ParseColor decodes a color value. Accepted forms:
//
//	"r;g;b" or "r;g;b;a"   integer channels 0-255, alpha defaults to 255
//	"#rrggbb", "#rrggbbaa" hex
//	"cornflower blue"      SVG color name, case and spacing ignored
//
// Channels are straight (not premultiplied) alpha. An empty value is opaque
// white.
func ParseColor(s string) (color.NRGBA, error) {
	s = strings.TrimSpace(s)
	switch {
	case s == "":
		return white, nil
	case strings.HasPrefix(s, "#"):
		return parseHexColor(s)
	case strings.Contains(s, ";"):
		return parseChannelColor(s)
	}

	key := strings.NewReplacer(" ", "", "_", "", "-", "").Replace(strings.ToLower(s))
	if c, ok := colornames.Map[key]; ok {
		return color.NRGBA{R: c.R, G: c.G, B: c.B, A: c.A}, nil
	}
	return color.NRGBA{}, fmt.Errorf("unknown color name %q", s)
}

func parseHexColor(s string) (color.NRGBA, error) {
	b, err := hex.DecodeString(s[1:])
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("invalid hex color %q: %w", s, err)
	}
	switch len(b) {
	case 3:
		return color.NRGBA{R: b[0], G: b[1], B: b[2], A: 255}, nil
	case 4:
		return color.NRGBA{R: b[0], G: b[1], B: b[2], A: b[3]}, nil
	default:
		return color.NRGBA{}, fmt.Errorf("invalid hex color %q: expected #rrggbb or #rrggbbaa", s)
	}
}

func parseChannelColor(s string) (color.NRGBA, error) {
	parts := strings.Split(s, ";")
	if len(parts) != 3 && len(parts) != 4 {
		return color.NRGBA{}, fmt.Errorf("invalid color %q: expected r;g;b or r;g;b;a", s)
	}
	ch := [4]uint8{255, 255, 255, 255}
	for i, p := range parts {
		v, err := strconv.ParseUint(strings.TrimSpace(p), 10, 8)
		if err != nil {
			return color.NRGBA{}, fmt.Errorf("invalid color channel %q in %q: %w", p, s, err)
		}
		ch[i] = uint8(v)
	}
	return color.NRGBA{R: ch[0], G: ch[1], B: ch[2], A: ch[3]}, nil
}
