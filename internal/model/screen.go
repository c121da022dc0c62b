package model

// Screen summarizes one parsed layout file.
type Screen struct {
	File     string `yaml:"file"     json:"file"`
	Size     string `yaml:"size"     json:"size"` // "WxH"
	Controls int    `yaml:"controls" json:"controls"`
	Buttons  int    `yaml:"buttons"  json:"buttons"`
}
