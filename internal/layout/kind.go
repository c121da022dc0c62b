package layout

import "fmt"

// Kind is the closed set of control types a layout file can declare.
type Kind int

const (
	KindPictureBox Kind = iota + 1
	KindLabel
	KindButton
)

var kindNames = map[Kind]string{
	KindPictureBox: "picture_box",
	KindLabel:      "label",
	KindButton:     "button",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "unknown"
}

// ParseKind converts a kind name ("picture_box", "label", "button") to a Kind.
func ParseKind(s string) (Kind, error) {
	for k, name := range kindNames {
		if name == s {
			return k, nil
		}
	}
	return 0, fmt.Errorf("unknown control kind: %q (expected picture_box, label, or button)", s)
}

// MarshalText encodes the kind by name so yaml and json output stay readable.
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText decodes a kind name.
func (k *Kind) UnmarshalText(text []byte) error {
	parsed, err := ParseKind(string(text))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}
