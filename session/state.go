package session

import "github.com/skillsenselab/lyricsync/timeline"

// Audio describes the loaded audio file. The raw bytes live on the
// session, not in the snapshot.
type Audio struct {
	Filename    string  `json:"filename"`
	ContentType string  `json:"content_type"`
	Size        int64   `json:"size"`
	Duration    float64 `json:"duration"`
}

// State is a read-only snapshot of a session, returned from every
// intent dispatch and from the timeline endpoint.
type State struct {
	ID           string             `json:"id"`
	Audio        *Audio             `json:"audio,omitempty"`
	Segments     []timeline.Segment `json:"segments"`
	ActiveIndex  int                `json:"active_index"`
	CurrentTime  float64            `json:"current_time"`
	Transcribing bool               `json:"transcribing"`
	Draft        *timeline.Draft    `json:"draft,omitempty"`
	Loop         LoopPayload        `json:"loop"`

	// SeekTo is set when the dispatched intent requires the player to
	// jump, either a manual line selection or an A/B loop wrap.
	SeekTo *float64 `json:"seek_to,omitempty"`
}
