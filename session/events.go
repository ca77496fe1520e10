package session

import "github.com/skillsenselab/lyricsync/timeline"

// EventType identifies a session event pushed to connected clients.
type EventType string

const (
	// EventTimeline carries the full segment list after any structural change.
	EventTimeline EventType = "timeline"
	// EventActive carries the active segment index when it changes.
	EventActive EventType = "active"
	// EventScroll asks clients to bring a segment into view.
	EventScroll EventType = "scroll"
	// EventStatus carries transcription and backend status changes.
	EventStatus EventType = "status"
	// EventDraft carries the edit buffer when an edit starts or ends.
	EventDraft EventType = "draft"
	// EventLoop carries the A/B loop markers when they change.
	EventLoop EventType = "loop"
	// EventError carries a user-facing error.
	EventError EventType = "error"
)

// Event is the envelope pushed to clients subscribed to a session.
type Event struct {
	Type      EventType `json:"type"`
	SessionID string    `json:"session_id"`
	Payload   any       `json:"payload,omitempty"`
}

// Publisher receives session events for fan-out to connected clients.
// Implementations must not block; events are fired while the session
// lock is held.
type Publisher interface {
	Publish(evt Event)
}

// PublisherFunc adapts a function to the Publisher interface.
type PublisherFunc func(evt Event)

// Publish calls f.
func (f PublisherFunc) Publish(evt Event) { f(evt) }

// TimelinePayload is the payload of an EventTimeline event.
type TimelinePayload struct {
	Segments []timeline.Segment `json:"segments"`
}

// ActivePayload is the payload of EventActive and EventScroll events.
type ActivePayload struct {
	Index int `json:"index"`
}

// StatusPayload is the payload of an EventStatus event.
type StatusPayload struct {
	Transcribing bool `json:"transcribing"`
}

// LoopPayload is the payload of an EventLoop event.
type LoopPayload struct {
	A      *float64 `json:"a,omitempty"`
	B      *float64 `json:"b,omitempty"`
	Active bool     `json:"active"`
}

// ErrorPayload is the payload of an EventError event.
type ErrorPayload struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	Retryable bool   `json:"retryable"`
}
