package model

import (
	"strings"
)

// FilterElements keeps elements whose kind is in kinds (codes or layout names)
// and whose bounds overlap bbox. A nil or empty filter matches everything.
func FilterElements(elements []Element, kinds []string, bbox *[4]int) []Element {
	if len(kinds) == 0 && bbox == nil {
		return elements
	}

	kindSet := make(map[string]bool, len(kinds))
	for _, k := range ExpandKinds(kinds) {
		kindSet[MapKind(k)] = true
	}

	var result []Element
	for _, el := range elements {
		kindMatch := len(kindSet) == 0 || kindSet[el.Kind]
		bboxMatch := bbox == nil || boundsIntersect(el.Bounds, *bbox)
		if kindMatch && bboxMatch {
			result = append(result, el)
		}
	}
	return result
}

// FilterByText keeps elements whose name or text contains text (case-insensitive).
func FilterByText(elements []Element, text string) []Element {
	if text == "" {
		return elements
	}
	textLower := strings.ToLower(text)
	var result []Element
	for _, el := range elements {
		if textMatchesElement(el, textLower) {
			result = append(result, el)
		}
	}
	return result
}

func textMatchesElement(el Element, textLower string) bool {
	return strings.Contains(strings.ToLower(el.Name), textLower) ||
		strings.Contains(strings.ToLower(el.Text), textLower)
}

// FilterByState keeps buttons in the given state.
func FilterByState(elements []Element, state string) []Element {
	if state == "" {
		return elements
	}
	var result []Element
	for _, el := range elements {
		if el.State == state {
			result = append(result, el)
		}
	}
	return result
}

// FilterByAncestor keeps elements docked, directly or through a chain, to
// the named control. The control itself is not included.
func FilterByAncestor(elements []Element, name string) []Element {
	if name == "" {
		return elements
	}
	var result []Element
	for _, el := range elements {
		chain := SplitPath(el.Path)
		for _, n := range chain[:max(len(chain)-1, 0)] {
			if n == name {
				result = append(result, el)
				break
			}
		}
	}
	return result
}

// boundsIntersect checks if two [x, y, width, height] rectangles overlap.
// x,y is the top-left corner and Y grows upward, so a box spans y-height..y.
func boundsIntersect(a, b [4]int) bool {
	ax1, ay1, ax2, ay2 := a[0], a[1]-a[3], a[0]+a[2], a[1]
	bx1, by1, bx2, by2 := b[0], b[1]-b[3], b[0]+b[2], b[1]
	return ax1 < bx2 && ax2 > bx1 && ay1 < by2 && ay2 > by1
}
