package timeline

// DefaultInsertLength is the interval length, in seconds, given to a freshly
// inserted line before the user adjusts it.
const DefaultInsertLength = 5

// Timeline is an ordered list of lyric segments. Order is playback order and
// is semantically meaningful; the model never re-sorts it. Indices are stable
// only until the next structural edit.
type Timeline struct {
	segments []Segment
}

// New creates a timeline over the given segments. The slice is taken over by
// the timeline; callers must not mutate it afterwards.
func New(segments []Segment) *Timeline {
	return &Timeline{segments: segments}
}

// Len returns the number of segments.
func (tl *Timeline) Len() int {
	return len(tl.segments)
}

// Segments returns the backing segment slice in playback order. The slice is
// shared; treat it as read-only.
func (tl *Timeline) Segments() []Segment {
	return tl.segments
}

// Segment returns the segment at index i and whether the index is in range.
func (tl *Timeline) Segment(i int) (Segment, bool) {
	if i < 0 || i >= len(tl.segments) {
		return Segment{}, false
	}
	return tl.segments[i], true
}

// Replace swaps the entire segment list, discarding the previous one. Used
// when a new transcription result arrives.
func (tl *Timeline) Replace(segments []Segment) {
	tl.segments = segments
}

// SetSegment overwrites the segment at index i. Out-of-range indices are
// ignored.
func (tl *Timeline) SetSegment(i int, s Segment) {
	if i < 0 || i >= len(tl.segments) {
		return
	}
	tl.segments[i] = s
}

// SetTranslation attaches a translated form to the segment at index i.
// Out-of-range indices are ignored.
func (tl *Timeline) SetTranslation(i int, text string) {
	if i < 0 || i >= len(tl.segments) {
		return
	}
	tl.segments[i].Translation = text
}

// Delete removes the segment at index i, shifting later segments down.
// Out-of-range indices are ignored. Callers must not patch any previously
// resolved active index; the next resolution pass recomputes it against the
// new list.
func (tl *Timeline) Delete(i int) {
	if i < 0 || i >= len(tl.segments) {
		return
	}
	tl.segments = append(tl.segments[:i], tl.segments[i+1:]...)
}

// InsertAfter inserts a placeholder line immediately after index i, starting
// at the current playback time and running DefaultInsertLength seconds,
// clamped to the audio duration. When i is the last index the line is
// appended. Overlap with neighbours is permitted; resolution and export
// tolerate out-of-order intervals.
func (tl *Timeline) InsertAfter(i int, currentTime, duration float64) {
	if i < 0 || i >= len(tl.segments) {
		return
	}
	end := currentTime + DefaultInsertLength
	if duration > 0 && end > duration {
		end = duration
	}
	seg := Segment{
		Text:  "New lyric line",
		Start: currentTime,
		End:   end,
	}
	at := i + 1
	tl.segments = append(tl.segments[:at], append([]Segment{seg}, tl.segments[at:]...)...)
}
