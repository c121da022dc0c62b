package layout

import (
	"fmt"
	"strings"
)

// FormatError reports a malformed line in a layout file.
type FormatError struct {
	Line   int    // 1-based line number
	Text   string // raw line as read
	Reason string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("line %d: %s: %q", e.Line, e.Reason, e.Text)
}

// UnresolvedReferenceError reports a control name that is not in the control set,
// either as a lookup target or as the reference side of a dock expression.
type UnresolvedReferenceError struct {
	Name string
}

func (e *UnresolvedReferenceError) Error() string {
	return fmt.Sprintf("control %q not found", e.Name)
}

// InvalidAnchorError reports an anchor token outside the nine-point set, or a
// dock expression that cannot be split into its two anchored sides.
type InvalidAnchorError struct {
	Token string
}

func (e *InvalidAnchorError) Error() string {
	return fmt.Sprintf("invalid anchor %q (expected one of %s)", e.Token, strings.Join(anchorNames[:], ", "))
}

// NumericParseError reports a field that should hold a number, vector or color
// but does not. It is raised when the field is consumed, not when it is parsed.
type NumericParseError struct {
	Control string
	Field   string
	Value   string
	Err     error
}

func (e *NumericParseError) Error() string {
	return fmt.Sprintf("control %q: field %s: cannot parse %q: %v", e.Control, e.Field, e.Value, e.Err)
}

func (e *NumericParseError) Unwrap() error { return e.Err }

// MissingFieldError reports a field that a consumer needs but the control never set.
type MissingFieldError struct {
	Control string
	Field   string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("control %q: missing field %s", e.Control, e.Field)
}

// CyclicDockError reports a dock chain that refers back to a control already
// being resolved. Chain lists the names in resolution order, ending with the repeat.
type CyclicDockError struct {
	Chain []string
}

func (e *CyclicDockError) Error() string {
	return fmt.Sprintf("cyclic dock chain: %s", strings.Join(e.Chain, " -> "))
}
