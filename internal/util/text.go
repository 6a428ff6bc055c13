package util

import (
	"regexp"
	"strings"
)

var reSpaces = regexp.MustCompile(`\s+`)

// CleanCell trims a table-cell text and collapses its inner whitespace.
// Statement documents pad cells with non-breaking spaces, which \s does
// not cover, so those are rewritten first.
func CleanCell(input string) string {
	s := strings.ReplaceAll(input, " ", " ")
	return strings.TrimSpace(reSpaces.ReplaceAllString(s, " "))
}
