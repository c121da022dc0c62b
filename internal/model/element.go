package model

// Element is a resolved widget in the compact form printed by list, the feed
// and the MCP tools.
type Element struct {
	Name     string  `yaml:"n"            json:"n"`            // Control name
	Kind     string  `yaml:"k"            json:"k"`            // Compact kind code
	Text     string  `yaml:"t,omitempty"  json:"t,omitempty"`  // Label or button text
	Bounds   [4]int  `yaml:"b"            json:"b"`            // [x, y, width, height]; x,y is the top-left, Y up
	Order    float32 `yaml:"o,omitempty"  json:"o,omitempty"`  // Draw order
	State    string  `yaml:"s,omitempty"  json:"s,omitempty"`  // Buttons only
	Cooldown float32 `yaml:"cd,omitempty" json:"cd,omitempty"` // Seconds left on the click lockout
	Path     string  `yaml:"p,omitempty"  json:"p,omitempty"`  // Dock chain, e.g. "screen > panel > ok"
}

// Interactive reports whether the element reacts to the pointer.
func (e Element) Interactive() bool {
	return e.Kind == "btn"
}

// Center returns the middle of the element's bounds.
func (e Element) Center() (x, y int) {
	return e.Bounds[0] + e.Bounds[2]/2, e.Bounds[1] - e.Bounds[3]/2
}
