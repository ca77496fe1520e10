package session

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	apperrors "github.com/skillsenselab/lyricsync/errors"
	"github.com/skillsenselab/lyricsync/logger"
	"github.com/skillsenselab/lyricsync/lrc"
	"github.com/skillsenselab/lyricsync/timeline"
	"github.com/skillsenselab/lyricsync/transcription"
	"github.com/skillsenselab/lyricsync/translation"
	"github.com/skillsenselab/lyricsync/util"
)

// backgroundTimeout bounds transcription and translation calls launched
// from an intent. Transcription of a full song can legitimately take a
// couple of minutes.
const backgroundTimeout = 5 * time.Minute

// Session holds the complete state for one audio file being synced.
// All exported methods are safe for concurrent use; intents are
// serialized under a single mutex and run to completion.
type Session struct {
	id string

	mu       sync.Mutex
	tl       *timeline.Timeline
	selector *timeline.Selector
	editor   *timeline.Editor
	loop     timeline.Loop

	audio     *Audio
	audioData []byte

	currentTime float64
	activeIndex int

	// requestID tags the in-flight transcription and translateID the
	// in-flight translations. Loading new audio rotates both, which
	// orphans any result still in flight.
	requestID    string
	translateID  string
	transcribing bool

	lastActive time.Time

	transcriber transcription.Provider
	translator  translation.Provider
	publisher   Publisher
	log         *logger.Logger
}

func newSession(id string, transcriber transcription.Provider, translator translation.Provider, pub Publisher, log *logger.Logger) *Session {
	return &Session{
		id:          id,
		lastActive:  time.Now(),
		tl:          timeline.New(nil),
		selector:    timeline.NewSelector(),
		editor:      timeline.NewEditor(),
		activeIndex: timeline.NoActive,
		transcriber: transcriber,
		translator:  translator,
		publisher:   pub,
		log:         log.WithFields(map[string]interface{}{logger.FieldSessionID: id}),
	}
}

// ID returns the session identifier.
func (s *Session) ID() string { return s.id }

// SetAudio loads a new audio file, discarding the previous timeline and
// any in-flight transcription result. Non-audio content types are
// rejected before any state changes.
func (s *Session) SetAudio(meta Audio, data []byte) (*State, error) {
	if !strings.HasPrefix(meta.ContentType, "audio/") {
		return nil, apperrors.InvalidAudio(meta.ContentType)
	}
	if len(data) == 0 {
		return nil, apperrors.MissingField("audio")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.lastActive = time.Now()
	s.requestID = ""
	s.translateID = ""
	s.transcribing = false
	s.audio = &meta
	s.audioData = data
	s.tl.Replace(nil)
	s.editor.CancelEdit()
	s.loop.Clear()
	s.selector.ClearOverride()
	s.currentTime = 0
	s.activeIndex = timeline.NoActive

	s.log.Info("audio loaded", map[string]interface{}{
		"filename": meta.Filename,
		"size":     meta.Size,
	})

	s.emit(EventTimeline, TimelinePayload{Segments: s.tl.Segments()})
	s.emit(EventStatus, StatusPayload{Transcribing: false})
	return s.snapshotLocked(), nil
}

// Dispatch executes one intent against the session and returns the
// resulting state snapshot.
func (s *Session) Dispatch(ctx context.Context, intent Intent) (*State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.lastActive = time.Now()

	var err error
	var seekTo *float64

	switch intent.Type {
	case IntentTranscribe:
		err = s.startTranscribeLocked(ctx)
	case IntentTick:
		seekTo, err = s.tickLocked(intent)
	case IntentSeek:
		err = s.seekLocked(intent)
	case IntentSelectLine:
		seekTo, err = s.selectLineLocked(intent)
	case IntentStartEdit:
		err = s.startEditLocked(intent)
	case IntentUpdateEdit:
		err = s.updateEditLocked(intent)
	case IntentCommitEdit:
		s.commitEditLocked()
	case IntentCancelEdit:
		s.editor.CancelEdit()
		s.emit(EventDraft, nil)
	case IntentDeleteLine:
		err = s.deleteLineLocked(intent)
	case IntentInsertLine:
		err = s.insertLineLocked(intent)
	case IntentSetLoopA:
		s.loop.SetA(s.timeOrCurrent(intent))
		s.emitLoopLocked()
	case IntentSetLoopB:
		s.loop.SetB(s.timeOrCurrent(intent))
		s.emitLoopLocked()
	case IntentClearLoop:
		s.loop.Clear()
		s.emitLoopLocked()
	case IntentTranslate:
		err = s.startTranslateLocked(ctx, intent)
	default:
		err = apperrors.InvalidInput("type", "unknown intent type")
	}

	if err != nil {
		return nil, err
	}

	state := s.snapshotLocked()
	state.SeekTo = seekTo
	return state, nil
}

// Snapshot returns the current session state.
func (s *Session) Snapshot() *State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

// ExportLRC renders the timeline as an LRC file and returns the content
// with the derived file name.
func (s *Session) ExportLRC() ([]byte, string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.tl.Len() == 0 {
		return nil, "", apperrors.Conflict("Nothing to export yet. Transcribe the audio first.")
	}

	meta := lrc.Metadata{Author: lrc.Generator}
	name := "lyrics.lrc"
	if s.audio != nil {
		meta.Title = titleFromFilename(s.audio.Filename)
		name = lrc.Filename(s.audio.Filename)
	}

	content := lrc.Marshal(s.tl.Segments(), meta)
	return []byte(content), name, nil
}

// --- intent handlers (all called with s.mu held) ---

func (s *Session) startTranscribeLocked(ctx context.Context) error {
	if s.audio == nil {
		return apperrors.MissingField("audio")
	}
	if s.transcribing {
		return apperrors.Conflict("A transcription is already in progress.")
	}

	reqID := uuid.NewString()
	s.requestID = reqID
	s.transcribing = true
	s.emit(EventStatus, StatusPayload{Transcribing: true})

	req := transcription.Request{
		Data:        s.audioData,
		Filename:    s.audio.Filename,
		ContentType: s.audio.ContentType,
	}

	s.log.Info("transcription started", map[string]interface{}{
		logger.FieldRequestID: reqID,
		"filename":            s.audio.Filename,
	})

	go s.runTranscribe(context.WithoutCancel(ctx), reqID, req)
	return nil
}

// runTranscribe performs the backend call off the lock and applies the
// result if the session still expects it.
func (s *Session) runTranscribe(ctx context.Context, reqID string, req transcription.Request) {
	ctx, cancel := context.WithTimeout(ctx, backgroundTimeout)
	defer cancel()

	result, err := s.transcriber.Transcribe(ctx, req)

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.requestID != reqID {
		s.log.Warn("discarding stale transcription result", map[string]interface{}{
			logger.FieldRequestID: reqID,
		})
		return
	}
	s.transcribing = false
	s.requestID = ""

	if err != nil {
		s.log.WithError(err).Error("transcription failed")
		s.emit(EventStatus, StatusPayload{Transcribing: false})
		s.emitErrorLocked(err)
		return
	}

	segments := make([]timeline.Segment, len(result.Segments))
	for i, seg := range result.Segments {
		segments[i] = timeline.Segment{
			Text:  seg.Text,
			Start: seg.Start,
			End:   seg.End,
			Words: toWords(seg.Words),
		}
	}
	s.tl.Replace(segments)
	if s.audio != nil && s.audio.Duration == 0 {
		s.audio.Duration = result.Duration()
	}
	s.selector.ClearOverride()
	s.activeIndex = s.selector.Resolve(s.currentTime, s.tl.Segments())

	s.log.Info("transcription complete", map[string]interface{}{
		"segments": len(segments),
	})

	s.emit(EventStatus, StatusPayload{Transcribing: false})
	s.emit(EventTimeline, TimelinePayload{Segments: s.tl.Segments()})
	s.emit(EventActive, ActivePayload{Index: s.activeIndex})
}

func (s *Session) tickLocked(intent Intent) (*float64, error) {
	if intent.Time == nil {
		return nil, apperrors.MissingField("time")
	}
	s.currentTime = *intent.Time

	var seekTo *float64
	if target, wrap := s.loop.Wrap(s.currentTime); wrap {
		s.currentTime = target
		seekTo = &target
	}

	s.resolveActiveLocked(true)
	return seekTo, nil
}

func (s *Session) seekLocked(intent Intent) error {
	if intent.Time == nil {
		return apperrors.MissingField("time")
	}
	s.currentTime = *intent.Time
	s.resolveActiveLocked(false)
	return nil
}

func (s *Session) selectLineLocked(intent Intent) (*float64, error) {
	if intent.Index == nil {
		return nil, apperrors.MissingField("index")
	}
	seg, ok := s.tl.Segment(*intent.Index)
	if !ok {
		return nil, apperrors.NotFound("line", "")
	}

	s.selector.Select(*intent.Index)
	s.currentTime = seg.Start
	s.activeIndex = *intent.Index
	s.emit(EventActive, ActivePayload{Index: s.activeIndex})
	s.emit(EventScroll, ActivePayload{Index: s.activeIndex})

	start := seg.Start
	return &start, nil
}

func (s *Session) startEditLocked(intent Intent) error {
	if intent.Index == nil {
		return apperrors.MissingField("index")
	}
	if _, ok := s.tl.Segment(*intent.Index); !ok {
		return apperrors.NotFound("line", "")
	}
	s.editor.StartEdit(s.tl, *intent.Index)
	s.emit(EventDraft, s.editor.Draft())
	return nil
}

func (s *Session) updateEditLocked(intent Intent) error {
	if !s.editor.Editing() {
		return apperrors.Conflict("No edit in progress.")
	}
	if intent.Text == nil || intent.Start == nil || intent.End == nil {
		return apperrors.MissingField("text, start, end")
	}
	s.editor.Update(util.SanitizeText(*intent.Text), *intent.Start, *intent.End)
	return nil
}

func (s *Session) commitEditLocked() {
	s.editor.CommitEdit(s.tl)
	s.resolveActiveLocked(false)
	s.emit(EventTimeline, TimelinePayload{Segments: s.tl.Segments()})
	s.emit(EventDraft, nil)
}

func (s *Session) deleteLineLocked(intent Intent) error {
	if intent.Index == nil {
		return apperrors.MissingField("index")
	}
	i := *intent.Index
	if _, ok := s.tl.Segment(i); !ok {
		return apperrors.NotFound("line", "")
	}

	// Indices shift; a pinned selection or draft for the old layout
	// would point at the wrong line.
	if d := s.editor.Draft(); d != nil && d.Index >= i {
		s.editor.CancelEdit()
		s.emit(EventDraft, nil)
	}
	s.selector.ClearOverride()
	s.tl.Delete(i)
	s.resolveActiveLocked(false)
	s.emit(EventTimeline, TimelinePayload{Segments: s.tl.Segments()})
	return nil
}

func (s *Session) insertLineLocked(intent Intent) error {
	if intent.Index == nil {
		return apperrors.MissingField("index")
	}
	if _, ok := s.tl.Segment(*intent.Index); !ok {
		return apperrors.NotFound("line", "")
	}

	var duration float64
	if s.audio != nil {
		duration = s.audio.Duration
	}
	s.tl.InsertAfter(*intent.Index, s.currentTime, duration)
	s.emit(EventTimeline, TimelinePayload{Segments: s.tl.Segments()})
	return nil
}

func (s *Session) startTranslateLocked(ctx context.Context, intent Intent) error {
	if s.translator == nil {
		return apperrors.ServiceUnavailable("translation")
	}
	if intent.Index == nil {
		return apperrors.MissingField("index")
	}
	i := *intent.Index
	seg, ok := s.tl.Segment(i)
	if !ok {
		return apperrors.NotFound("line", "")
	}
	text := seg.DisplayText()
	if text == "" {
		return apperrors.MissingField("text")
	}

	reqID := s.translateID
	if reqID == "" {
		reqID = uuid.NewString()
		s.translateID = reqID
	}

	go s.runTranslate(context.WithoutCancel(ctx), reqID, i, text, intent.TargetLang)
	return nil
}

// runTranslate performs the translation off the lock. The result is
// dropped when the audio changed underneath it or the line moved.
func (s *Session) runTranslate(ctx context.Context, reqID string, index int, text, targetLang string) {
	ctx, cancel := context.WithTimeout(ctx, backgroundTimeout)
	defer cancel()

	result, err := s.translator.Translate(ctx, translation.Request{
		Text:       text,
		TargetLang: targetLang,
	})

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.translateID != reqID {
		return
	}
	seg, ok := s.tl.Segment(index)
	if !ok || seg.DisplayText() != text {
		return
	}

	if err != nil {
		s.log.WithError(err).Error("translation failed", map[string]interface{}{"index": index})
		s.emitErrorLocked(err)
		return
	}

	s.tl.SetTranslation(index, result.TranslatedText)
	s.emit(EventTimeline, TimelinePayload{Segments: s.tl.Segments()})
}

// --- helpers (called with s.mu held) ---

// resolveActiveLocked recomputes the active index and emits change
// events. Callers pass scroll=false for structural edits so they do
// not yank the view around.
func (s *Session) resolveActiveLocked(scroll bool) {
	idx := s.selector.Resolve(s.currentTime, s.tl.Segments())
	if idx == s.activeIndex {
		return
	}
	s.activeIndex = idx
	s.emit(EventActive, ActivePayload{Index: idx})
	if scroll && idx != timeline.NoActive {
		s.emit(EventScroll, ActivePayload{Index: idx})
	}
}

func (s *Session) timeOrCurrent(intent Intent) float64 {
	if intent.Time != nil {
		return *intent.Time
	}
	return s.currentTime
}

func (s *Session) emitLoopLocked() {
	s.emit(EventLoop, s.loopPayloadLocked())
}

func (s *Session) loopPayloadLocked() LoopPayload {
	p := LoopPayload{Active: s.loop.Active()}
	if a, ok := s.loop.A(); ok {
		p.A = &a
	}
	if b, ok := s.loop.B(); ok {
		p.B = &b
	}
	return p
}

func (s *Session) snapshotLocked() *State {
	state := &State{
		ID:           s.id,
		Segments:     s.tl.Segments(),
		ActiveIndex:  s.activeIndex,
		CurrentTime:  s.currentTime,
		Transcribing: s.transcribing,
		Draft:        s.editor.Draft(),
		Loop:         s.loopPayloadLocked(),
	}
	if s.audio != nil {
		audio := *s.audio
		state.Audio = &audio
	}
	return state
}

func (s *Session) emit(t EventType, payload any) {
	if s.publisher == nil {
		return
	}
	s.publisher.Publish(Event{Type: t, SessionID: s.id, Payload: payload})
}

func (s *Session) emitErrorLocked(err error) {
	appErr, ok := apperrors.AsAppError(err)
	if !ok {
		appErr = apperrors.Internal(err)
	}
	s.emit(EventError, ErrorPayload{
		Code:      string(appErr.Code),
		Message:   appErr.Message,
		Retryable: appErr.Retryable,
	})
}

func toWords(words []transcription.Word) []timeline.Word {
	if len(words) == 0 {
		return nil
	}
	out := make([]timeline.Word, len(words))
	for i, w := range words {
		out[i] = timeline.Word{Text: w.Text, Start: w.Start, End: w.End}
	}
	return out
}

func titleFromFilename(name string) string {
	base := strings.TrimSpace(name)
	if i := strings.LastIndexByte(base, '.'); i > 0 {
		base = base[:i]
	}
	return base
}
