package session

import (
	"sync"
	"time"

	"github.com/google/uuid"

	apperrors "github.com/skillsenselab/lyricsync/errors"
	"github.com/skillsenselab/lyricsync/logger"
	"github.com/skillsenselab/lyricsync/transcription"
	"github.com/skillsenselab/lyricsync/translation"
)

// Manager owns the live sessions, keyed by UUID.
type Manager struct {
	mu       sync.RWMutex
	sessions map[string]*Session

	transcriber transcription.Provider
	translator  translation.Provider
	publisher   Publisher
	log         *logger.Logger
}

// ManagerOption configures a Manager.
type ManagerOption func(*Manager)

// WithTranslator sets the translation provider for new sessions.
func WithTranslator(t translation.Provider) ManagerOption {
	return func(m *Manager) { m.translator = t }
}

// WithPublisher sets the event publisher for new sessions.
func WithPublisher(p Publisher) ManagerOption {
	return func(m *Manager) { m.publisher = p }
}

// NewManager creates a session manager backed by the given transcription
// provider.
func NewManager(transcriber transcription.Provider, log *logger.Logger, opts ...ManagerOption) *Manager {
	m := &Manager{
		sessions:    make(map[string]*Session),
		transcriber: transcriber,
		log:         log.WithComponent("session"),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Create starts a new empty session and returns it.
func (m *Manager) Create() *Session {
	s := newSession(uuid.NewString(), m.transcriber, m.translator, m.publisher, m.log)

	m.mu.Lock()
	m.sessions[s.ID()] = s
	m.mu.Unlock()

	m.log.Info("session created", map[string]interface{}{
		logger.FieldSessionID: s.ID(),
	})
	return s
}

// Get returns the session with the given ID.
func (m *Manager) Get(id string) (*Session, error) {
	m.mu.RLock()
	s, ok := m.sessions[id]
	m.mu.RUnlock()
	if !ok {
		return nil, apperrors.NotFound("session", id)
	}
	return s, nil
}

// Delete removes a session. An in-flight transcription result for the
// removed session is orphaned and will be discarded on arrival.
func (m *Manager) Delete(id string) error {
	m.mu.Lock()
	s, ok := m.sessions[id]
	if ok {
		delete(m.sessions, id)
	}
	m.mu.Unlock()
	if !ok {
		return apperrors.NotFound("session", id)
	}

	s.mu.Lock()
	s.requestID = ""
	s.translateID = ""
	s.transcribing = false
	s.mu.Unlock()

	m.log.Info("session deleted", map[string]interface{}{
		logger.FieldSessionID: id,
	})
	return nil
}

// Count returns the number of live sessions.
func (m *Manager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

// Sweep removes sessions idle for longer than maxIdle and returns how
// many were removed. Sessions with a transcription in flight are kept.
func (m *Manager) Sweep(maxIdle time.Duration) int {
	cutoff := time.Now().Add(-maxIdle)

	m.mu.Lock()
	var expired []*Session
	for id, s := range m.sessions {
		s.mu.Lock()
		idle := !s.transcribing && s.lastActive.Before(cutoff)
		s.mu.Unlock()
		if idle {
			expired = append(expired, s)
			delete(m.sessions, id)
		}
	}
	m.mu.Unlock()

	for _, s := range expired {
		s.mu.Lock()
		s.requestID = ""
		s.translateID = ""
		s.mu.Unlock()
		m.log.Info("idle session swept", map[string]interface{}{
			logger.FieldSessionID: s.ID(),
		})
	}
	return len(expired)
}
