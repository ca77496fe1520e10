package session

// IntentType identifies a session intent.
type IntentType string

const (
	// IntentTranscribe starts transcription of the loaded audio.
	IntentTranscribe IntentType = "transcribe"
	// IntentTick reports playback progress.
	IntentTick IntentType = "tick"
	// IntentSeek jumps playback to a new position.
	IntentSeek IntentType = "seek"
	// IntentSelectLine pins a line manually and seeks to its start.
	IntentSelectLine IntentType = "select_line"
	// IntentStartEdit opens the edit buffer for a line.
	IntentStartEdit IntentType = "start_edit"
	// IntentUpdateEdit replaces the edit buffer's fields.
	IntentUpdateEdit IntentType = "update_edit"
	// IntentCommitEdit applies the edit buffer to the timeline.
	IntentCommitEdit IntentType = "commit_edit"
	// IntentCancelEdit discards the edit buffer.
	IntentCancelEdit IntentType = "cancel_edit"
	// IntentDeleteLine removes a line from the timeline.
	IntentDeleteLine IntentType = "delete_line"
	// IntentInsertLine inserts a placeholder line after an existing one.
	IntentInsertLine IntentType = "insert_line"
	// IntentSetLoopA places the loop start marker.
	IntentSetLoopA IntentType = "set_loop_a"
	// IntentSetLoopB places the loop end marker.
	IntentSetLoopB IntentType = "set_loop_b"
	// IntentClearLoop removes both loop markers.
	IntentClearLoop IntentType = "clear_loop"
	// IntentTranslate requests a translation for a line.
	IntentTranslate IntentType = "translate"
)

// Intent is a single client-issued command against a session. Which
// fields are required depends on the type; handlers validate per intent.
type Intent struct {
	Type IntentType `json:"type" validate:"required"`

	// Time is the playback position for tick, seek and loop intents.
	Time *float64 `json:"time,omitempty"`
	// Index is the target line for line-scoped intents.
	Index *int `json:"index,omitempty"`

	// Text, Start and End are the edit buffer fields for update_edit.
	Text  *string `json:"text,omitempty"`
	Start *string `json:"start,omitempty"`
	End   *string `json:"end,omitempty"`

	// TargetLang overrides the configured translation target language.
	TargetLang string `json:"target_lang,omitempty"`
}
