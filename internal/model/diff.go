package model

import (
	"fmt"
	"time"
)

// ChangeType represents the kind of change detected between two snapshots.
type ChangeType string

const (
	ChangeAdded   ChangeType = "added"
	ChangeRemoved ChangeType = "removed"
	ChangeChanged ChangeType = "changed"
)

// UIChange represents a single change between two snapshots.
type UIChange struct {
	Type    ChangeType           `yaml:"type"              json:"type"`
	TS      int64                `yaml:"ts"                json:"ts"`
	Name    string               `yaml:"n"                 json:"n"`
	Element *Element             `yaml:"el,omitempty"      json:"el,omitempty"`      // added only
	Changes map[string][2]string `yaml:"changes,omitempty" json:"changes,omitempty"` // changed only
}

// DiffElements compares two snapshots and returns the changes. Elements are
// matched by name. Added and changed entries follow curr's order, removed
// entries follow prev's.
func DiffElements(prev, curr []Element) []UIChange {
	prevMap := make(map[string]Element, len(prev))
	for _, el := range prev {
		prevMap[el.Name] = el
	}
	currMap := make(map[string]Element, len(curr))
	for _, el := range curr {
		currMap[el.Name] = el
	}

	var changes []UIChange
	now := time.Now().Unix()

	for _, el := range curr {
		prevEl, existed := prevMap[el.Name]
		if !existed {
			elCopy := el
			changes = append(changes, UIChange{
				Type:    ChangeAdded,
				TS:      now,
				Name:    el.Name,
				Element: &elCopy,
			})
			continue
		}
		if diffs := diffProperties(prevEl, el); len(diffs) > 0 {
			changes = append(changes, UIChange{
				Type:    ChangeChanged,
				TS:      now,
				Name:    el.Name,
				Changes: diffs,
			})
		}
	}

	for _, el := range prev {
		if _, exists := currMap[el.Name]; !exists {
			changes = append(changes, UIChange{
				Type: ChangeRemoved,
				TS:   now,
				Name: el.Name,
			})
		}
	}

	return changes
}

// diffProperties compares two elements and returns changed fields.
func diffProperties(prev, curr Element) map[string][2]string {
	diffs := make(map[string][2]string)

	if prev.Kind != curr.Kind {
		diffs["k"] = [2]string{prev.Kind, curr.Kind}
	}
	if prev.Text != curr.Text {
		diffs["t"] = [2]string{prev.Text, curr.Text}
	}
	if prev.State != curr.State {
		diffs["s"] = [2]string{prev.State, curr.State}
	}
	if prev.Bounds != curr.Bounds {
		diffs["b"] = [2]string{
			fmt.Sprintf("%v", prev.Bounds),
			fmt.Sprintf("%v", curr.Bounds),
		}
	}
	if prev.Order != curr.Order {
		diffs["o"] = [2]string{
			fmt.Sprintf("%g", prev.Order),
			fmt.Sprintf("%g", curr.Order),
		}
	}

	if len(diffs) == 0 {
		return nil
	}
	return diffs
}
