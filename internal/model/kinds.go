package model

// KindMap maps layout kind names to compact kind codes.
var KindMap = map[string]string{
	"picture_box": "img",
	"label":       "txt",
	"button":      "btn",
}

// MetaKinds maps meta-kind names to the concrete codes they expand to.
var MetaKinds = map[string][]string{
	"interactive": {"btn"},
	"visual":      {"img", "txt"},
}

// ExpandKinds expands any meta-kinds in the given list to their concrete codes.
// Other entries are passed through unchanged. Duplicates are removed.
func ExpandKinds(kinds []string) []string {
	seen := make(map[string]bool, len(kinds))
	var expanded []string
	for _, k := range kinds {
		if concrete, ok := MetaKinds[k]; ok {
			for _, c := range concrete {
				if !seen[c] {
					seen[c] = true
					expanded = append(expanded, c)
				}
			}
		} else if !seen[k] {
			seen[k] = true
			expanded = append(expanded, k)
		}
	}
	return expanded
}

// MapKind converts a layout kind name to its compact code. Codes pass through.
func MapKind(kind string) string {
	if short, ok := KindMap[kind]; ok {
		return short
	}
	for _, code := range KindMap {
		if code == kind {
			return code
		}
	}
	return "other"
}
