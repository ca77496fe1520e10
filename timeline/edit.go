package timeline

// Draft holds the in-progress edit of a single line: its text plus the start
// and end times as the human-editable clock strings shown in the edit fields.
type Draft struct {
	// Index is the segment being edited.
	Index int `json:"index"`
	// Text is the draft line text.
	Text string `json:"text"`
	// Start is the draft start time, "minutes:seconds".
	Start string `json:"start"`
	// End is the draft end time, "minutes:seconds".
	End string `json:"end"`
}

// Editor manages the single edit buffer over a timeline. At most one line is
// being edited at a time; starting a new edit replaces any previous draft.
type Editor struct {
	draft *Draft
}

// NewEditor creates an Editor with no active draft.
func NewEditor() *Editor {
	return &Editor{}
}

// Draft returns the current draft, or nil when nothing is being edited.
func (e *Editor) Draft() *Draft {
	return e.draft
}

// Editing reports whether an edit is in progress.
func (e *Editor) Editing() bool {
	return e.draft != nil
}

// StartEdit opens an edit buffer for the segment at index i, copying its
// text and clock-formatted times. Out-of-range indices are a no-op.
func (e *Editor) StartEdit(tl *Timeline, i int) {
	seg, ok := tl.Segment(i)
	if !ok {
		return
	}
	e.draft = &Draft{
		Index: i,
		Text:  seg.Text,
		Start: FormatClock(seg.Start),
		End:   FormatClock(seg.End),
	}
}

// Update replaces the draft's editable fields. No-op when nothing is being
// edited.
func (e *Editor) Update(text, start, end string) {
	if e.draft == nil {
		return
	}
	e.draft.Text = text
	e.draft.Start = start
	e.draft.End = end
}

// CommitEdit parses the draft clock strings leniently (unparseable components
// become zero) and replaces the edited segment. Word-level timing is dropped:
// a line-level edit invalidates the word alignment, and any stored
// translation with it. The buffer is cleared whether or not the index is
// still in range.
func (e *Editor) CommitEdit(tl *Timeline) {
	if e.draft == nil {
		return
	}
	tl.SetSegment(e.draft.Index, Segment{
		Text:  e.draft.Text,
		Start: ParseClock(e.draft.Start),
		End:   ParseClock(e.draft.End),
	})
	e.draft = nil
}

// CancelEdit discards the draft without touching the timeline.
func (e *Editor) CancelEdit() {
	e.draft = nil
}
