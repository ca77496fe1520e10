package transcription

// Request holds parameters for a transcription call. Audio is passed as
// in-memory bytes because uploads arrive over HTTP, never from disk.
type Request struct {
	// Data is the raw audio content.
	Data []byte `json:"-"`
	// Filename is the original file name, forwarded to the backend.
	Filename string `json:"filename"`
	// ContentType is the audio MIME type (e.g. "audio/mpeg").
	ContentType string `json:"content_type"`
	// Language is the expected language of the audio (e.g. "en").
	Language string `json:"language,omitempty"`
}

// Result holds the outcome of a transcription call.
type Result struct {
	// Text is the full transcription text.
	Text string `json:"text"`
	// Segments contains time-aligned transcript segments.
	Segments []Segment `json:"segments,omitempty"`
}

// Segment represents a time-aligned portion of a transcript.
type Segment struct {
	// Text is the transcribed text for this segment.
	Text string `json:"text"`
	// Start is the segment start time in seconds.
	Start float64 `json:"start"`
	// End is the segment end time in seconds.
	End float64 `json:"end"`
	// Words holds optional word-level alignment within the segment.
	Words []Word `json:"words,omitempty"`
}

// Word is a word-level alignment entry within a segment.
type Word struct {
	Text  string  `json:"text"`
	Start float64 `json:"start"`
	End   float64 `json:"end"`
}

// Duration returns the end time of the last segment, or 0 when empty.
func (r *Result) Duration() float64 {
	if len(r.Segments) == 0 {
		return 0
	}
	return r.Segments[len(r.Segments)-1].End
}
