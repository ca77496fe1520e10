package timeline

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Word is a sub-segment used for word-level rendering. Words never
// participate in active-line resolution.
type Word struct {
	// Text is the single word as transcribed.
	Text string `json:"word"`
	// Start is the word start time in seconds.
	Start float64 `json:"start"`
	// End is the word end time in seconds.
	End float64 `json:"end"`
}

// Segment is one timed lyric line.
//
// Start <= End is expected but not enforced: transcription output and manual
// edits may produce degenerate intervals, and every consumer must tolerate
// them. A segment with Start > End never matches by containment but still
// anchors the gap-fill rule by its Start.
type Segment struct {
	// Text is the displayed line. It may be empty after an edit.
	Text string `json:"text"`
	// Start is the segment start time in seconds.
	Start float64 `json:"start"`
	// End is the segment end time in seconds.
	End float64 `json:"end"`
	// Words carries optional word-level timing inside this line.
	// Line-level edits drop it, since they invalidate the alignment.
	Words []Word `json:"words,omitempty"`
	// Translation is a render-only translated form of Text, filled on demand.
	Translation string `json:"translation,omitempty"`
}

// Duration returns End - Start. It may be zero or negative for degenerate
// segments.
func (s Segment) Duration() float64 {
	return s.End - s.Start
}

// Contains reports whether t falls inside the segment's interval, bounds
// inclusive. Always false when Start > End.
func (s Segment) Contains(t float64) bool {
	return s.Start <= t && t <= s.End
}

// CoerceText converts an arbitrary decoded JSON value to its display string.
// Transcription services occasionally emit numbers or nulls where text is
// expected; those render as their string form instead of failing.
func CoerceText(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case json.Number:
		return t.String()
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(t)
	default:
		return fmt.Sprintf("%v", t)
	}
}

// DisplayText returns the segment text trimmed for rendering and export.
func (s Segment) DisplayText() string {
	return strings.TrimSpace(s.Text)
}
