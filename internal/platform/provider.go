package platform

import (
	"errors"
)

// Provider bundles the collaborators an interactive session needs.
type Provider struct {
	Assets   AssetLoader
	Renderer Renderer
	Audio    AudioPlayer
	Pointer  PointerSource

	// Close releases the backends (terminal, audio device). May be nil.
	Close func()
}

// ErrUnsupported is returned when no interactive backend was linked in.
var ErrUnsupported = errors.New("no interactive platform registered; build with the terminal backend")

// NewProviderFunc is set by backend packages via init().
// See internal/platform/terminal/init.go for the tcell registration.
var NewProviderFunc func(opts Options) (*Provider, error)

// Options configures backend construction.
type Options struct {
	Screen    Size   // layout size in pixels
	AssetsDir string // root for texture, font and sound paths
	Audio     bool   // false selects a silent audio player
	Button    MouseButton
}

// NewProvider returns a Provider from the registered backend.
func NewProvider(opts Options) (*Provider, error) {
	if NewProviderFunc == nil {
		return nil, ErrUnsupported
	}
	return NewProviderFunc(opts)
}
