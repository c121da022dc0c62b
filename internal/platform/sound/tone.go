package sound

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"
)

const (
	tonePrefix   = "tone:"
	toneDuration = 80 * time.Millisecond
)

// parseTone recognizes "tone:<hz>". ok is false for anything else.
func parseTone(path string) (hz float64, ok bool, err error) {
	if !strings.HasPrefix(path, tonePrefix) {
		return 0, false, nil
	}
	hz, err = strconv.ParseFloat(strings.TrimSpace(strings.TrimPrefix(path, tonePrefix)), 64)
	if err != nil {
		return 0, true, fmt.Errorf("invalid tone %q: %w", path, err)
	}
	// SineTone rejects frequencies at or above half the sample rate.
	if hz <= 0 || hz >= float64(SampleRate)/2 {
		return 0, true, fmt.Errorf("invalid tone %q: frequency out of range", path)
	}
	return hz, true, nil
}

// toneBuffer renders a short, quiet sine blip.
func toneBuffer(hz float64) (*beep.Buffer, error) {
	sine, err := generators.SineTone(SampleRate, hz)
	if err != nil {
		return nil, err
	}
	quiet := &effects.Volume{
		Streamer: beep.Take(SampleRate.N(toneDuration), sine),
		Base:     2,
		Volume:   -2,
	}
	buf := beep.NewBuffer(beep.Format{SampleRate: SampleRate, NumChannels: 2, Precision: 2})
	buf.Append(quiet)
	return buf, nil
}
