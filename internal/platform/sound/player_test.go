package sound

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/wav"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeWav(t *testing.T, dir, name string, rate beep.SampleRate) string {
	t.Helper()
	sine, err := generators.SineTone(rate, 440)
	require.NoError(t, err)

	path := filepath.Join(dir, name)
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()

	format := beep.Format{SampleRate: rate, NumChannels: 2, Precision: 2}
	require.NoError(t, wav.Encode(f, beep.Take(rate.N(50*time.Millisecond), sine), format))
	return path
}

func TestParseTone(t *testing.T) {
	hz, ok, err := parseTone("tone:880")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 880.0, hz)

	_, ok, err = parseTone("click.wav")
	require.NoError(t, err)
	assert.False(t, ok)

	for _, bad := range []string{"tone:", "tone:abc", "tone:-5", "tone:30000"} {
		_, ok, err := parseTone(bad)
		assert.True(t, ok, bad)
		assert.Error(t, err, bad)
	}
}

func TestPreload(t *testing.T) {
	dir := t.TempDir()
	writeWav(t, dir, "click.wav", SampleRate)
	writeWav(t, dir, "slow.wav", beep.SampleRate(22050))

	p := NewPlayer(dir)
	require.NoError(t, p.Preload("click.wav", "slow.wav", "tone:440", ""))
	require.Len(t, p.cache, 3)

	click := p.cache["click.wav"]
	assert.Equal(t, SampleRate.N(50*time.Millisecond), click.Len())

	// resampled to the speaker rate
	slow := p.cache["slow.wav"]
	assert.InDelta(t, SampleRate.N(50*time.Millisecond), slow.Len(), 16)

	tone := p.cache["tone:440"]
	assert.Equal(t, SampleRate.N(toneDuration), tone.Len())
}

func TestPreload_Errors(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "junk.wav"), []byte("not a wav"), 0o644))

	p := NewPlayer(dir)
	err := p.Preload("missing.wav")
	assert.ErrorIs(t, err, os.ErrNotExist)

	assert.Error(t, p.Preload("junk.wav"))
	assert.Error(t, p.Preload("tone:nope"))
	assert.Empty(t, p.cache)
}

func TestPlayQueuesOnMixer(t *testing.T) {
	p := NewPlayer("")
	require.NoError(t, p.Play("tone:660"))
	require.NoError(t, p.Play("tone:660"))
	assert.Equal(t, 2, p.Playing())
	assert.Len(t, p.cache, 1, "decoded once")
}

func TestSilent(t *testing.T) {
	assert.NoError(t, Silent{}.Play("anything.wav"))
}
