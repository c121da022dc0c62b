package raster

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"math"
	"os"
	"sync"

	xdraw "golang.org/x/image/draw"

	"github.com/mj1618/gergui/internal/platform"
	"github.com/mj1618/gergui/internal/spawn"
)

var (
	background   = color.RGBA{R: 24, G: 24, B: 32, A: 255}
	outlineColor = color.NRGBA{A: 200}
	pointerColor = color.RGBA{R: 255, G: 64, B: 64, A: 255}

	kindFill = map[string]color.NRGBA{
		"picture_box": {R: 80, G: 80, B: 120, A: 90},
		"label":       {R: 0, G: 0, B: 0, A: 0},
	}
	stateFill = map[string]color.NRGBA{
		"normal":   {R: 60, G: 120, B: 200, A: 160},
		"hover":    {R: 90, G: 170, B: 255, A: 180},
		"active":   {R: 255, G: 190, B: 40, A: 200},
		"disabled": {R: 110, G: 110, B: 110, A: 140},
	}
)

// Options tunes the preview.
type Options struct {
	Scale    float64 // output pixels per layout unit; <= 0 means 1
	Outlines bool    // draw each control's box and name
	Pointer  bool    // mark the frame's pointer
}

// Renderer draws frames into an RGBA image. It implements platform.Renderer.
type Renderer struct {
	mu     sync.Mutex
	assets *Registry
	opts   Options
	last   *image.RGBA
}

// NewRenderer returns a renderer that reads textures from assets. assets may be nil.
func NewRenderer(assets *Registry, opts Options) *Renderer {
	if opts.Scale <= 0 {
		opts.Scale = 1
	}
	return &Renderer{assets: assets, opts: opts}
}

// Render draws frame and keeps the result for Image and WritePNG.
func (r *Renderer) Render(frame platform.Frame) error {
	w := int(math.Ceil(float64(frame.Screen.X) * r.opts.Scale))
	h := int(math.Ceil(float64(frame.Screen.Y) * r.opts.Scale))
	if w <= 0 || h <= 0 {
		return fmt.Errorf("invalid screen size %gx%g", frame.Screen.X, frame.Screen.Y)
	}

	img := image.NewRGBA(image.Rect(0, 0, w, h))
	fillRect(img, img.Bounds(), background)

	for _, d := range frame.Drawables {
		r.drawOne(img, frame, d)
	}
	if r.opts.Pointer {
		p := spawn.ToUISpace(frame.Pointer, frame.Screen)
		drawCrosshair(img, r.px(p.X), r.px(p.Y), pointerColor)
	}

	r.mu.Lock()
	r.last = img
	r.mu.Unlock()
	return nil
}

func (r *Renderer) drawOne(img *image.RGBA, frame platform.Frame, d platform.Drawable) {
	tl := spawn.ToUISpace(d.TopLeft, frame.Screen)
	rect := image.Rect(r.px(tl.X), r.px(tl.Y), r.px(tl.X+d.Size.X), r.px(tl.Y+d.Size.Y))

	drewTexture := false
	if r.assets != nil && d.Texture != platform.NoHandle {
		if tex := r.assets.Image(d.Texture); tex != nil {
			xdraw.ApproxBiLinear.Scale(img, rect, tex, tex.Bounds(), xdraw.Over, nil)
			drewTexture = true
		}
	}
	if !drewTexture {
		fill, ok := stateFill[d.State]
		if !ok {
			fill = kindFill[d.Kind]
		}
		if fill.A > 0 {
			fillRect(img, rect, fill)
		}
	}

	if d.Text != "" {
		c := d.Color
		if c.A == 0 {
			c = color.NRGBA{R: 255, G: 255, B: 255, A: 255}
		}
		drawTextWithOutline(img, d.Text, (rect.Min.X+rect.Max.X)/2, (rect.Min.Y+rect.Max.Y)/2, c, outlineColor)
	}
	if r.opts.Outlines {
		strokeRect(img, rect, color.NRGBA{R: 255, A: 120})
		if d.Text == "" {
			drawTextWithOutline(img, d.Name, (rect.Min.X+rect.Max.X)/2, (rect.Min.Y+rect.Max.Y)/2, color.White, outlineColor)
		}
	}
}

func (r *Renderer) px(v float32) int {
	return int(math.Round(float64(v) * r.opts.Scale))
}

// Image returns the most recent frame, or nil before the first Render.
func (r *Renderer) Image() *image.RGBA {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.last
}

// WritePNG encodes the most recent frame.
func (r *Renderer) WritePNG(w io.Writer) error {
	img := r.Image()
	if img == nil {
		return fmt.Errorf("nothing rendered yet")
	}
	return png.Encode(w, img)
}

// SavePNG writes the most recent frame to path.
func (r *Renderer) SavePNG(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := r.WritePNG(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
