// Package sound plays button click sounds through the beep speaker. Sounds are
// either wav files under the assets directory or synthesized tones written as
// "tone:<hz>".
package sound

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
	"github.com/gopxl/beep/wav"
	"github.com/sirupsen/logrus"
)

var log = logrus.WithField("component", "sound")

// SampleRate is the speaker rate; decoded files are resampled to it.
const SampleRate = beep.SampleRate(44100)

// Player decodes click sounds once and mixes them onto the speaker.
type Player struct {
	mu     sync.Mutex
	root   string
	mixer  *beep.Mixer
	cache  map[string]*beep.Buffer
	opened bool
}

// NewPlayer returns a player resolving relative paths against root. The
// speaker is not touched until Open.
func NewPlayer(root string) *Player {
	return &Player{
		root:  root,
		mixer: &beep.Mixer{},
		cache: make(map[string]*beep.Buffer),
	}
}

// Open initializes the speaker and starts the mixer.
func (p *Player) Open() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.opened {
		return nil
	}
	if err := speaker.Init(SampleRate, SampleRate.N(time.Second/10)); err != nil {
		return fmt.Errorf("init speaker: %w", err)
	}
	speaker.Play(p.mixer)
	p.opened = true
	return nil
}

// Close stops every playing sound.
func (p *Player) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.opened {
		return
	}
	speaker.Lock()
	p.mixer.Clear()
	speaker.Unlock()
	p.opened = false
}

// Play starts the sound at path. It returns once the sound is queued.
func (p *Player) Play(path string) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	buf, err := p.load(path)
	if err != nil {
		return err
	}

	speaker.Lock()
	p.mixer.Add(buf.Streamer(0, buf.Len()))
	speaker.Unlock()

	log.WithField("sound", path).Debug("play")
	return nil
}

// Preload decodes the sounds at paths so the first click does not pay for it.
func (p *Player) Preload(paths ...string) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	for _, path := range paths {
		if path == "" {
			continue
		}
		if _, err := p.load(path); err != nil {
			return err
		}
	}
	return nil
}

// Playing returns the number of sounds still in the mixer.
func (p *Player) Playing() int {
	speaker.Lock()
	defer speaker.Unlock()
	return p.mixer.Len()
}

// load returns the decoded sound for path. The caller holds p.mu.
func (p *Player) load(path string) (*beep.Buffer, error) {
	if buf, ok := p.cache[path]; ok {
		return buf, nil
	}

	var (
		buf *beep.Buffer
		err error
	)
	if hz, ok, terr := parseTone(path); ok || terr != nil {
		if terr != nil {
			return nil, terr
		}
		buf, err = toneBuffer(hz)
	} else {
		buf, err = p.decodeFile(path)
	}
	if err != nil {
		return nil, err
	}
	p.cache[path] = buf
	return buf, nil
}

func (p *Player) decodeFile(path string) (*beep.Buffer, error) {
	full := path
	if !filepath.IsAbs(full) && p.root != "" {
		full = filepath.Join(p.root, path)
	}
	f, err := os.Open(full)
	if err != nil {
		return nil, fmt.Errorf("open sound: %w", err)
	}

	streamer, format, err := wav.Decode(f)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	defer streamer.Close()

	var src beep.Streamer = streamer
	if format.SampleRate != SampleRate {
		src = beep.Resample(4, format.SampleRate, SampleRate, streamer)
	}
	buf := beep.NewBuffer(beep.Format{SampleRate: SampleRate, NumChannels: 2, Precision: 2})
	buf.Append(src)
	return buf, nil
}

// Silent is an AudioPlayer that accepts every sound and plays nothing.
type Silent struct{}

func (Silent) Play(string) error { return nil }
