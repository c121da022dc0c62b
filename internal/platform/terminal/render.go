package terminal

import (
	"image/color"
	"math"

	"gioui.org/f32"
	"github.com/gdamore/tcell/v2"

	"github.com/mj1618/gergui/internal/platform"
	"github.com/mj1618/gergui/internal/spawn"
)

var stateColors = map[string]tcell.Color{
	"normal":   tcell.NewRGBColor(60, 120, 200),
	"hover":    tcell.NewRGBColor(90, 170, 255),
	"active":   tcell.NewRGBColor(255, 190, 40),
	"disabled": tcell.NewRGBColor(110, 110, 110),
}

var pictureColor = tcell.NewRGBColor(50, 50, 80)

// Render draws frame onto the terminal. Pictures are shaded blocks, buttons
// are colored by state, and text is centered in its box.
func (s *Session) Render(frame platform.Frame) error {
	s.screen.Clear()
	for _, d := range frame.Drawables {
		s.drawOne(d)
	}
	x, y := s.layoutToCell(frame.Pointer)
	s.screen.SetContent(x, y, '+', nil, tcell.StyleDefault.Foreground(tcell.ColorRed))
	s.screen.Show()
	return nil
}

func (s *Session) drawOne(d platform.Drawable) {
	x0, y0, x1, y1 := s.cellRect(d.TopLeft, d.Size)

	var bg tcell.Color
	switch {
	case d.State != "":
		bg = stateColors[d.State]
	case d.Kind == "picture_box":
		bg = pictureColor
	}
	if bg != tcell.ColorDefault {
		style := tcell.StyleDefault.Background(bg)
		for y := y0; y < y1; y++ {
			for x := x0; x < x1; x++ {
				s.screen.SetContent(x, y, ' ', nil, style)
			}
		}
	}

	if d.Text == "" {
		return
	}
	fg := rgb(d.Color)
	runes := []rune(d.Text)
	cy := (y0 + y1 - 1) / 2
	cx := (x0+x1)/2 - len(runes)/2
	for i, r := range runes {
		_, _, style, _ := s.screen.GetContent(cx+i, cy)
		s.screen.SetContent(cx+i, cy, r, nil, style.Foreground(fg))
	}
}

// cellRect returns the half-open cell range covered by a box. Every box covers
// at least one cell.
func (s *Session) cellRect(topLeft, size f32.Point) (x0, y0, x1, y1 int) {
	cw, ch := s.cellSize()
	ui := spawn.ToUISpace(topLeft, s.layout)
	x0 = int(math.Floor(float64(ui.X / cw)))
	y0 = int(math.Floor(float64(ui.Y / ch)))
	x1 = int(math.Ceil(float64((ui.X + size.X) / cw)))
	y1 = int(math.Ceil(float64((ui.Y + size.Y) / ch)))
	if x1 <= x0 {
		x1 = x0 + 1
	}
	if y1 <= y0 {
		y1 = y0 + 1
	}
	return x0, y0, x1, y1
}

func rgb(c color.NRGBA) tcell.Color {
	if c.A == 0 {
		return tcell.ColorWhite
	}
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}
