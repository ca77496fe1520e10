package timeline

import (
	"strconv"
	"strings"
)

// ParseClock converts a human-entered "minutes:seconds" string to seconds.
// Seconds may be fractional ("1:30.50" is 90.5). Parsing is deliberately
// lenient: an unparseable component counts as zero, so "abc" is 0 and
// "2:oops" is 120. A value with no colon is read as plain seconds. ParseClock
// never fails.
func ParseClock(s string) float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}

	parts := strings.SplitN(s, ":", 2)
	if len(parts) == 1 {
		return parseComponent(parts[0])
	}
	return parseComponent(parts[0])*60 + parseComponent(parts[1])
}

func parseComponent(s string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || v < 0 {
		return 0
	}
	return v
}

// FormatClock renders seconds as a "minutes:seconds" string suitable for an
// edit field. Fractional seconds use the shortest representation that parses
// back to the same value, so StartEdit followed by an unchanged CommitEdit
// reproduces the original times exactly.
func FormatClock(seconds float64) string {
	if seconds < 0 {
		seconds = 0
	}
	mins := int(seconds) / 60
	secs := seconds - float64(mins*60)

	s := strconv.FormatFloat(secs, 'f', -1, 64)
	// Zero-pad the integer part of the seconds to two digits.
	if secs < 10 {
		s = "0" + s
	}
	return strconv.Itoa(mins) + ":" + s
}
