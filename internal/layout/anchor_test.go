package layout

import (
	"testing"

	"gioui.org/f32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnchorOffset(t *testing.T) {
	size := f32.Pt(100, 40)
	want := map[Anchor]f32.Point{
		TopLeft:      f32.Pt(0, 0),
		TopMiddle:    f32.Pt(50, 0),
		TopRight:     f32.Pt(100, 0),
		CenterLeft:   f32.Pt(0, -20),
		CenterMiddle: f32.Pt(50, -20),
		CenterRight:  f32.Pt(100, -20),
		BottomLeft:   f32.Pt(0, -40),
		BottomMiddle: f32.Pt(50, -40),
		BottomRight:  f32.Pt(100, -40),
	}
	for a, w := range want {
		assert.Equal(t, w, a.Offset(size), a.String())
	}
}

func TestParseAnchor(t *testing.T) {
	a, err := ParseAnchor(" Bottom_Right ")
	require.NoError(t, err)
	assert.Equal(t, BottomRight, a)

	_, err = ParseAnchor("middle_center")
	var iae *InvalidAnchorError
	require.ErrorAs(t, err, &iae)
	assert.Contains(t, err.Error(), "center_middle")
}

func TestParseDock(t *testing.T) {
	d, err := ParseDock("panel.top_right <-> this.top_left")
	require.NoError(t, err)
	assert.Equal(t, Dock{Ref: "panel", RefAnchor: TopRight, Self: "this", SelfAnchor: TopLeft}, d)
	assert.Equal(t, "panel.top_right <-> this.top_left", d.String())

	d, err = ParseDock("menu.v2.bottom_left<->this.top_left")
	require.NoError(t, err)
	assert.Equal(t, "menu.v2", d.Ref, "only the last dot separates the anchor")

	for _, bad := range []string{
		"panel.top_right",
		"panel.top_right <-> this.top_left <-> x.top_left",
		"panel <-> this.top_left",
		".top_left <-> this.top_left",
		"panel.top_right <-> this.sideways",
	} {
		_, err := ParseDock(bad)
		var iae *InvalidAnchorError
		assert.ErrorAs(t, err, &iae, bad)
	}
}
