package util

import (
	"strings"
	"unicode"
)

// SanitizeText trims whitespace and strips control characters. Lyric
// text passes through here before it lands on the timeline, so pasted
// input cannot smuggle newlines or escape codes into LRC output.
func SanitizeText(s string) string {
	s = strings.TrimSpace(s)
	return strings.Map(func(r rune) rune {
		if unicode.IsControl(r) {
			return -1
		}
		return r
	}, s)
}
