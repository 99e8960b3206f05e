// Package utils provides shared utilities for text normalization and logging.
package utils

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Truncate returns s truncated to maxLen characters, with "..." appended if truncated.
// If maxLen is 0 or negative, returns s unchanged.
func Truncate(s string, maxLen int) string {
	if maxLen <= 0 || utf8.RuneCountInString(s) <= maxLen {
		return s
	}
	return string([]rune(s)[:maxLen]) + "..."
}

// CollapseWhitespace trims s and replaces every run of whitespace with a single space.
func CollapseWhitespace(s string) string {
	s = strings.TrimSpace(s)
	var b strings.Builder
	b.Grow(len(s))
	wasSpace := false
	for _, r := range s {
		if unicode.IsSpace(r) {
			if !wasSpace {
				b.WriteRune(' ')
				wasSpace = true
			}
			continue
		}
		b.WriteRune(r)
		wasSpace = false
	}
	return b.String()
}

// StripTrailingNumeral removes a bare number at the very end of s, the usual
// shape of a page footer left behind by text extraction. The number must
// start at a word boundary: "page 12" loses "12", "page12" is kept.
func StripTrailingNumeral(s string) string {
	trimmed := strings.TrimRightFunc(s, unicode.IsSpace)
	end := len(trimmed)
	start := end
	for start > 0 {
		r, size := utf8.DecodeLastRuneInString(trimmed[:start])
		if r < '0' || r > '9' {
			break
		}
		start -= size
	}
	if start == end {
		return s
	}
	if start > 0 {
		prev, _ := utf8.DecodeLastRuneInString(trimmed[:start])
		if isWordRune(prev) {
			return s
		}
	}
	return strings.TrimSpace(trimmed[:start])
}

// RuneLen returns the number of characters in s.
func RuneLen(s string) int {
	return utf8.RuneCountInString(s)
}

func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}
