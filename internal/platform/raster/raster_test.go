package raster

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"gioui.org/f32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mj1618/gergui/internal/layout"
	"github.com/mj1618/gergui/internal/platform"
)

func writePNG(t *testing.T, path string, c color.RGBA) {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			img.Set(x, y, c)
		}
	}
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, png.Encode(f, img))
}

func TestRegistry(t *testing.T) {
	dir := t.TempDir()
	writePNG(t, filepath.Join(dir, "red.png"), color.RGBA{R: 255, A: 255})

	r := NewRegistry(dir, false)
	h, err := r.LoadTexture("red.png")
	require.NoError(t, err)
	again, err := r.LoadTexture("red.png")
	require.NoError(t, err)
	assert.Equal(t, h, again)

	missing, err := r.LoadTexture("missing.png")
	require.NoError(t, err, "lenient registry accepts missing files")
	font, err := r.LoadFont("main.ttf")
	require.NoError(t, err)
	none, err := r.LoadTexture("")
	require.NoError(t, err)

	assert.Equal(t, platform.NoHandle, none)
	assert.Equal(t, 3, r.Len())

	path, ok := r.Path(missing)
	assert.True(t, ok)
	assert.Equal(t, "missing.png", path)
	_, ok = r.Path(99)
	assert.False(t, ok)

	assert.NotNil(t, r.Image(h))
	assert.Nil(t, r.Image(missing))
	assert.Nil(t, r.Image(font))

	strict := NewRegistry(dir, true)
	_, err = strict.LoadTexture("missing.png")
	assert.ErrorIs(t, err, os.ErrNotExist)
	_, err = strict.LoadTexture("red.png")
	assert.NoError(t, err)
}

func TestRender(t *testing.T) {
	dir := t.TempDir()
	writePNG(t, filepath.Join(dir, "green.png"), color.RGBA{G: 255, A: 255})
	reg := NewRegistry(dir, false)
	green, err := reg.LoadTexture("green.png")
	require.NoError(t, err)

	rend := NewRenderer(reg, Options{Scale: 0.5, Outlines: true, Pointer: true})
	assert.Nil(t, rend.Image())
	assert.Error(t, rend.WritePNG(&bytes.Buffer{}))

	frame := platform.Frame{
		Screen: f32.Pt(200, 100),
		Drawables: []platform.Drawable{
			{Name: "bg", Kind: "picture_box", TopLeft: f32.Pt(-100, 50), Size: f32.Pt(100, 100), Texture: green},
			{Name: "ok", Kind: "button", TopLeft: f32.Pt(20, 20), Size: f32.Pt(60, 40), State: "active", Text: "OK"},
		},
	}
	require.NoError(t, rend.Render(frame))

	img := rend.Image()
	require.NotNil(t, img)
	assert.Equal(t, image.Rect(0, 0, 100, 50), img.Bounds())

	// texture scaled into the left half
	assert.Equal(t, color.RGBA{G: 255, A: 255}, img.RGBAAt(5, 45))
	// untouched background on the right
	assert.Equal(t, background, img.RGBAAt(95, 48))

	var buf bytes.Buffer
	require.NoError(t, rend.WritePNG(&buf))
	decoded, err := png.Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, img.Bounds(), decoded.Bounds())

	out := filepath.Join(dir, "out.png")
	require.NoError(t, rend.SavePNG(out))
	_, err = os.Stat(out)
	assert.NoError(t, err)
}

func TestRender_InvalidScreen(t *testing.T) {
	rend := NewRenderer(nil, Options{})
	assert.Error(t, rend.Render(platform.Frame{}))
}

func assertNear(t *testing.T, want, got color.RGBA) {
	t.Helper()
	near := func(a, b uint8) bool { return int(a)-int(b) <= 2 && int(b)-int(a) <= 2 }
	assert.True(t, near(want.R, got.R) && near(want.G, got.G) && near(want.B, got.B) && near(want.A, got.A),
		"want about %v, got %v", want, got)
}

func TestFillRect_BlendsTranslucentColors(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	fillRect(img, img.Bounds(), background)
	fillRect(img, img.Bounds(), stateFill["active"])
	// 200/255 of {255,190,40} over {24,24,32}
	assertNear(t, color.RGBA{R: 205, G: 154, B: 38, A: 255}, img.RGBAAt(0, 0))

	half, err := layout.ParseColor("255;0;0;128")
	require.NoError(t, err)
	fillRect(img, img.Bounds(), color.RGBA{B: 255, A: 255})
	fillRect(img, img.Bounds(), half)
	assertNear(t, color.RGBA{R: 128, G: 0, B: 127, A: 255}, img.RGBAAt(1, 1))
}

func TestRender_TranslucentTextColor(t *testing.T) {
	rend := NewRenderer(nil, Options{Scale: 1})
	frame := platform.Frame{
		Screen: f32.Pt(40, 20),
		Drawables: []platform.Drawable{
			{Name: "t", Kind: "label", TopLeft: f32.Pt(-20, 10), Size: f32.Pt(40, 20), Text: "I",
				Color: color.NRGBA{R: 255, A: 128}},
		},
	}
	require.NoError(t, rend.Render(frame))
	img := rend.Image()
	maxRed := 0
	for y := 0; y < 20; y++ {
		for x := 0; x < 40; x++ {
			c := img.RGBAAt(x, y)
			assert.LessOrEqual(t, int(c.R), 150, "text red should be about half strength at %d,%d", x, y)
			if int(c.R) > maxRed {
				maxRed = int(c.R)
			}
		}
	}
	assert.GreaterOrEqual(t, maxRed, 120, "glyph pixels should carry the blended red")
}
