package terminal

import (
	"github.com/gdamore/tcell/v2"
	"github.com/sirupsen/logrus"

	"github.com/mj1618/gergui/internal/platform"
	"github.com/mj1618/gergui/internal/platform/raster"
	"github.com/mj1618/gergui/internal/platform/sound"
)

func init() {
	platform.NewProviderFunc = newProvider
}

func newProvider(opts platform.Options) (*platform.Provider, error) {
	scr, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	sess, err := NewSession(scr, opts.Screen.Point(), opts.Button, DefaultTick)
	if err != nil {
		return nil, err
	}

	var audio platform.AudioPlayer = sound.Silent{}
	closers := []func(){sess.Close}
	if opts.Audio {
		p := sound.NewPlayer(opts.AssetsDir)
		if err := p.Open(); err != nil {
			// Non-fatal, the session runs without sound.
			logrus.WithError(err).Warn("audio unavailable")
		} else {
			audio = p
			closers = append(closers, p.Close)
		}
	}

	return &platform.Provider{
		Assets:   raster.NewRegistry(opts.AssetsDir, false),
		Renderer: sess,
		Audio:    audio,
		Pointer:  sess,
		Close: func() {
			for i := len(closers) - 1; i >= 0; i-- {
				closers[i]()
			}
		},
	}, nil
}
