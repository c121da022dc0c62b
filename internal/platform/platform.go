package platform

import (
	"context"
	"image/color"

	"gioui.org/f32"
)

// Handle is an opaque reference to a loaded texture or font. NoHandle means
// nothing is bound.
type Handle uint32

// NoHandle is the zero Handle.
const NoHandle Handle = 0

// AssetLoader resolves texture and font paths to handles.
type AssetLoader interface {
	// LoadTexture returns a handle for the texture at path. An empty path yields NoHandle.
	LoadTexture(path string) (Handle, error)

	// LoadFont returns a handle for the font at path. An empty path yields NoHandle.
	LoadFont(path string) (Handle, error)
}

// Renderer draws one frame of resolved widgets.
type Renderer interface {
	Render(frame Frame) error
}

// AudioPlayer plays short sound effects by path.
type AudioPlayer interface {
	Play(path string) error
}

// PointerSource delivers one InputFrame per tick.
type PointerSource interface {
	// Next blocks until the next tick is due or ctx is done.
	Next(ctx context.Context) (InputFrame, error)
}

// InputFrame is the runtime input for one tick, in layout coordinates
// (origin at screen center, Y up).
type InputFrame struct {
	Pointer     f32.Point
	JustPressed bool    // primary button went down since the previous frame
	Elapsed     float32 // seconds since the previous frame
	Quit        bool    // the user asked to leave the session
}

// Drawable is one renderable widget.
type Drawable struct {
	Name      string
	Kind      string
	TopLeft   f32.Point
	Size      f32.Point
	DrawOrder float32
	Texture   Handle
	Text      string
	Font      Handle
	FontSize  float32
	Color     color.NRGBA
	State     string // buttons only
}

// Frame is everything a Renderer needs for one tick.
type Frame struct {
	Screen    f32.Point
	Pointer   f32.Point
	Drawables []Drawable
}
