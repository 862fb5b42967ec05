package format

import (
	"unicode/utf8"

	"golden/internal/golden"
)

// Truncate shortens s to maxLen runes, appending "..." if truncated.
// maxLen <= 0 disables truncation.
func Truncate(s string, maxLen int) string {
	if maxLen <= 0 || utf8.RuneCountInString(s) <= maxLen {
		return s
	}
	r := []rune(s)
	if maxLen <= 3 {
		return string(r[:maxLen])
	}
	return string(r[:maxLen-3]) + "..."
}

// KindMark returns a one-character marker for a change kind.
func KindMark(k golden.ChangeKind) string {
	switch k {
	case golden.Added:
		return "+"
	case golden.Removed:
		return "-"
	case golden.Changed:
		return "~"
	}
	return "?"
}
