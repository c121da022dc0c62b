package model

import "strings"

// PathSeparator joins the names of a dock chain.
const PathSeparator = " > "

// JoinPath renders a dock chain root-first.
func JoinPath(chain []string) string {
	return strings.Join(chain, PathSeparator)
}

// SplitPath is the inverse of JoinPath.
func SplitPath(path string) []string {
	if path == "" {
		return nil
	}
	return strings.Split(path, PathSeparator)
}
