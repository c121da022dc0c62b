package raster

import (
	"image"
	"image/color"
	stddraw "image/draw"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

const (
	glyphWidth  = 7  // basicfont.Face7x13
	glyphHeight = 13
)

// fillRect blends c over the rectangle, clipped to the image.
func fillRect(img *image.RGBA, r image.Rectangle, c color.Color) {
	stddraw.Draw(img, r.Intersect(img.Bounds()), image.NewUniform(c), image.Point{}, stddraw.Over)
}

// strokeRect draws a one pixel outline of r.
func strokeRect(img *image.RGBA, r image.Rectangle, c color.Color) {
	r = r.Intersect(img.Bounds())
	if r.Empty() {
		return
	}
	for x := r.Min.X; x < r.Max.X; x++ {
		img.Set(x, r.Min.Y, c)
		img.Set(x, r.Max.Y-1, c)
	}
	for y := r.Min.Y; y < r.Max.Y; y++ {
		img.Set(r.Min.X, y, c)
		img.Set(r.Max.X-1, y, c)
	}
}

// drawTextWithOutline centers text on (x, y) with a dark halo for legibility.
func drawTextWithOutline(img *image.RGBA, text string, x, y int, textColor, outlineColor color.Color) {
	offsetX := x - len(text)*glyphWidth/2
	baseline := y + glyphHeight/2 - 2

	for dx := -1; dx <= 1; dx++ {
		for dy := -1; dy <= 1; dy++ {
			if dx == 0 && dy == 0 {
				continue
			}
			drawText(img, text, offsetX+dx, baseline+dy, outlineColor)
		}
	}
	drawText(img, text, offsetX, baseline, textColor)
}

func drawText(img *image.RGBA, text string, x, baseline int, c color.Color) {
	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(c),
		Face: basicfont.Face7x13,
		Dot:  fixed.P(x, baseline),
	}
	d.DrawString(text)
}

// drawCrosshair marks the pointer position.
func drawCrosshair(img *image.RGBA, x, y int, c color.Color) {
	for d := -6; d <= 6; d++ {
		img.Set(x+d, y, c)
		img.Set(x, y+d, c)
	}
}
