package layout

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseColor(t *testing.T) {
	tests := []struct {
		in   string
		want color.NRGBA
	}{
		{"", color.NRGBA{255, 255, 255, 255}},
		{"10;20;30", color.NRGBA{10, 20, 30, 255}},
		{"10; 20; 30; 40", color.NRGBA{10, 20, 30, 40}},
		{"#336699", color.NRGBA{0x33, 0x66, 0x99, 0xff}},
		{"#33669900", color.NRGBA{0x33, 0x66, 0x99, 0x00}},
		{"Red", color.NRGBA{255, 0, 0, 255}},
		{"cornflower blue", color.NRGBA{100, 149, 237, 255}},
		{"dark_green", color.NRGBA{0, 100, 0, 255}},
	}
	for _, tt := range tests {
		got, err := ParseColor(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}

	for _, bad := range []string{"#12", "#zzzzzz", "1;2", "1;2;300", "blurple"} {
		_, err := ParseColor(bad)
		assert.Error(t, err, bad)
	}
}
