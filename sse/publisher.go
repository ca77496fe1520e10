package sse

import (
	"encoding/json"

	"github.com/skillsenselab/lyricsync/logger"
	"github.com/skillsenselab/lyricsync/session"
)

// Publisher bridges session events onto the hub. Events are JSON
// encoded and broadcast to every client watching the event's session.
type Publisher struct {
	b Broadcaster
}

// NewPublisher creates a session event publisher backed by a hub.
func NewPublisher(b Broadcaster) *Publisher {
	return &Publisher{b: b}
}

// Publish implements session.Publisher.
func (p *Publisher) Publish(evt session.Event) {
	data, err := json.Marshal(evt)
	if err != nil {
		logger.Error("sse event encode failed", map[string]interface{}{
			"type":  string(evt.Type),
			"error": err.Error(),
		})
		return
	}
	p.b.Broadcast(SessionPattern(evt.SessionID), data)
}

// SessionPattern returns the broadcast pattern reaching all clients of
// a session.
func SessionPattern(sessionID string) string {
	return "session:" + sessionID + ":*"
}

// ClientID builds a hub client ID for one viewer of a session.
func ClientID(sessionID, connID string) string {
	return "session:" + sessionID + ":" + connID
}

var _ session.Publisher = (*Publisher)(nil)
