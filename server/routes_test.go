package server

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/skillsenselab/lyricsync/logger"
	"github.com/skillsenselab/lyricsync/session"
	"github.com/skillsenselab/lyricsync/sse"
	"github.com/skillsenselab/lyricsync/transcription"
)

type stubTranscriber struct {
	result *transcription.Result
	err    error
}

func (s *stubTranscriber) Name() string {
	return "stub"
}

func (s *stubTranscriber) IsAvailable(_ context.Context) bool {
	return true
}

func (s *stubTranscriber) Transcribe(_ context.Context, _ transcription.Request) (*transcription.Result, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.result, nil
}

func newTestAPI(t *testing.T, transcriber transcription.Provider) (*gin.Engine, *session.Manager) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	log := logger.New(&logger.Config{Level: "error", Format: "console"}, "test")
	hub := sse.NewHub()
	go hub.Run()
	t.Cleanup(hub.Stop)

	manager := session.NewManager(transcriber, log,
		session.WithPublisher(sse.NewPublisher(hub)))

	engine := gin.New()
	NewAPI(manager, hub, log).Register(engine)
	return engine, manager
}

func doRequest(t *testing.T, engine *gin.Engine, method, path string, body *bytes.Buffer, contentType string) *httptest.ResponseRecorder {
	t.Helper()
	if body == nil {
		body = &bytes.Buffer{}
	}
	req := httptest.NewRequest(method, path, body)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}

func createSession(t *testing.T, engine *gin.Engine) string {
	t.Helper()
	w := doRequest(t, engine, http.MethodPost, "/v1/sessions", nil, "")
	if w.Code != http.StatusCreated {
		t.Fatalf("create session status = %d, want 201", w.Code)
	}
	var resp struct {
		Data session.State `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode create response: %v", err)
	}
	if resp.Data.ID == "" {
		t.Fatal("create session returned empty id")
	}
	return resp.Data.ID
}

func uploadAudio(t *testing.T, engine *gin.Engine, sessionID string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	hdr := textproto.MIMEHeader{}
	hdr.Set("Content-Disposition", `form-data; name="audio"; filename="song.mp3"`)
	hdr.Set("Content-Type", "audio/mpeg")
	fw, err := mw.CreatePart(hdr)
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	if _, err := fw.Write([]byte("fake audio bytes")); err != nil {
		t.Fatalf("write form file: %v", err)
	}
	if err := mw.WriteField("duration", "30"); err != nil {
		t.Fatalf("write duration field: %v", err)
	}
	if err := mw.Close(); err != nil {
		t.Fatalf("close multipart writer: %v", err)
	}

	w := doRequest(t, engine, http.MethodPost, "/v1/sessions/"+sessionID+"/audio", &buf, mw.FormDataContentType())
	if w.Code != http.StatusOK {
		t.Fatalf("upload audio status = %d, body %s", w.Code, w.Body.String())
	}
}

func dispatchIntent(t *testing.T, engine *gin.Engine, sessionID string, intent map[string]any) *httptest.ResponseRecorder {
	t.Helper()
	body, err := json.Marshal(intent)
	if err != nil {
		t.Fatalf("marshal intent: %v", err)
	}
	return doRequest(t, engine, http.MethodPost, "/v1/sessions/"+sessionID+"/intents",
		bytes.NewBuffer(body), "application/json")
}

func waitForSegments(t *testing.T, manager *session.Manager, sessionID string, n int) {
	t.Helper()
	s, err := manager.Get(sessionID)
	if err != nil {
		t.Fatalf("get session: %v", err)
	}
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if len(s.Snapshot().Segments) == n {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("timeline never reached %d segments", n)
}

func stubResult() *transcription.Result {
	return &transcription.Result{
		Text: "hello world",
		Segments: []transcription.Segment{
			{Text: "hello", Start: 0, End: 5},
			{Text: "world", Start: 5, End: 10},
		},
	}
}

func TestSessionLifecycle(t *testing.T) {
	engine, _ := newTestAPI(t, &stubTranscriber{result: stubResult()})

	id := createSession(t, engine)

	w := doRequest(t, engine, http.MethodGet, "/v1/sessions/"+id+"/timeline", nil, "")
	if w.Code != http.StatusOK {
		t.Fatalf("timeline status = %d", w.Code)
	}

	w = doRequest(t, engine, http.MethodDelete, "/v1/sessions/"+id, nil, "")
	if w.Code != http.StatusNoContent {
		t.Fatalf("delete status = %d, want 204", w.Code)
	}

	w = doRequest(t, engine, http.MethodDelete, "/v1/sessions/"+id, nil, "")
	if w.Code != http.StatusNotFound {
		t.Fatalf("second delete status = %d, want 404", w.Code)
	}
}

func TestUnknownSession(t *testing.T) {
	engine, _ := newTestAPI(t, &stubTranscriber{result: stubResult()})

	for _, path := range []string{
		"/v1/sessions/nope/timeline",
		"/v1/sessions/nope/export",
	} {
		w := doRequest(t, engine, http.MethodGet, path, nil, "")
		if w.Code != http.StatusNotFound {
			t.Errorf("GET %s status = %d, want 404", path, w.Code)
		}
	}
}

func TestUploadAndTranscribe(t *testing.T) {
	engine, manager := newTestAPI(t, &stubTranscriber{result: stubResult()})

	id := createSession(t, engine)
	uploadAudio(t, engine, id)

	w := doRequest(t, engine, http.MethodPost, "/v1/sessions/"+id+"/transcribe", nil, "")
	if w.Code != http.StatusAccepted {
		t.Fatalf("transcribe status = %d, body %s", w.Code, w.Body.String())
	}

	waitForSegments(t, manager, id, 2)

	w = doRequest(t, engine, http.MethodGet, "/v1/sessions/"+id+"/timeline", nil, "")
	var resp struct {
		Data session.State `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode timeline: %v", err)
	}
	if got := len(resp.Data.Segments); got != 2 {
		t.Fatalf("segments = %d, want 2", got)
	}
	if resp.Data.Segments[0].Text != "hello" {
		t.Errorf("first segment text = %q", resp.Data.Segments[0].Text)
	}
	if resp.Data.Audio == nil || resp.Data.Audio.Duration != 30 {
		t.Errorf("audio duration not carried through upload: %+v", resp.Data.Audio)
	}
}

func TestUploadAudioMissingFile(t *testing.T) {
	engine, _ := newTestAPI(t, &stubTranscriber{result: stubResult()})
	id := createSession(t, engine)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	_ = mw.WriteField("duration", "30")
	_ = mw.Close()

	w := doRequest(t, engine, http.MethodPost, "/v1/sessions/"+id+"/audio", &buf, mw.FormDataContentType())
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
	if !strings.Contains(w.Body.String(), "MISSING_FIELD") {
		t.Errorf("body = %s, want MISSING_FIELD code", w.Body.String())
	}
}

func TestTranscribeWithoutAudio(t *testing.T) {
	engine, _ := newTestAPI(t, &stubTranscriber{result: stubResult()})
	id := createSession(t, engine)

	w := doRequest(t, engine, http.MethodPost, "/v1/sessions/"+id+"/transcribe", nil, "")
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400, body %s", w.Code, w.Body.String())
	}
}

func TestDispatchIntentValidation(t *testing.T) {
	engine, _ := newTestAPI(t, &stubTranscriber{result: stubResult()})
	id := createSession(t, engine)

	w := doRequest(t, engine, http.MethodPost, "/v1/sessions/"+id+"/intents",
		bytes.NewBufferString("{not json"), "application/json")
	if w.Code != http.StatusBadRequest {
		t.Errorf("malformed JSON status = %d, want 400", w.Code)
	}

	w = dispatchIntent(t, engine, id, map[string]any{"time": 1.0})
	if w.Code != http.StatusBadRequest {
		t.Errorf("missing type status = %d, want 400", w.Code)
	}

	w = dispatchIntent(t, engine, id, map[string]any{"type": "warp_speed"})
	if w.Code != http.StatusBadRequest {
		t.Errorf("unknown type status = %d, want 400", w.Code)
	}
}

func TestTickResolvesActiveLine(t *testing.T) {
	engine, manager := newTestAPI(t, &stubTranscriber{result: stubResult()})
	id := createSession(t, engine)
	uploadAudio(t, engine, id)
	doRequest(t, engine, http.MethodPost, "/v1/sessions/"+id+"/transcribe", nil, "")
	waitForSegments(t, manager, id, 2)

	w := dispatchIntent(t, engine, id, map[string]any{"type": "tick", "time": 6.0})
	if w.Code != http.StatusOK {
		t.Fatalf("tick status = %d, body %s", w.Code, w.Body.String())
	}
	var resp struct {
		Data session.State `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode tick response: %v", err)
	}
	if resp.Data.ActiveIndex != 1 {
		t.Errorf("active index = %d, want 1", resp.Data.ActiveIndex)
	}
}

func TestExportLRC(t *testing.T) {
	engine, manager := newTestAPI(t, &stubTranscriber{result: stubResult()})
	id := createSession(t, engine)
	uploadAudio(t, engine, id)
	doRequest(t, engine, http.MethodPost, "/v1/sessions/"+id+"/transcribe", nil, "")
	waitForSegments(t, manager, id, 2)

	w := doRequest(t, engine, http.MethodGet, "/v1/sessions/"+id+"/export", nil, "")
	if w.Code != http.StatusOK {
		t.Fatalf("export status = %d, body %s", w.Code, w.Body.String())
	}
	if got := w.Header().Get("Content-Disposition"); !strings.Contains(got, "song.lrc") {
		t.Errorf("Content-Disposition = %q, want song.lrc", got)
	}
	body := w.Body.String()
	if !strings.Contains(body, "[00:00.00]hello") {
		t.Errorf("export body missing first line:\n%s", body)
	}
	if !strings.Contains(body, "[ti:song]") {
		t.Errorf("export body missing title tag:\n%s", body)
	}
}

func TestExportWithoutTimeline(t *testing.T) {
	engine, _ := newTestAPI(t, &stubTranscriber{result: stubResult()})
	id := createSession(t, engine)

	w := doRequest(t, engine, http.MethodGet, "/v1/sessions/"+id+"/export", nil, "")
	if w.Code != http.StatusConflict {
		t.Fatalf("status = %d, want 409, body %s", w.Code, w.Body.String())
	}
}

func TestBackendStatusWithoutMonitor(t *testing.T) {
	engine, _ := newTestAPI(t, &stubTranscriber{result: stubResult()})

	w := doRequest(t, engine, http.MethodGet, "/v1/backend", nil, "")
	if w.Code != http.StatusServiceUnavailable {
		t.Fatalf("status = %d, want 503", w.Code)
	}
}

func TestEventStreamReceivesTimeline(t *testing.T) {
	engine, manager := newTestAPI(t, &stubTranscriber{result: stubResult()})
	id := createSession(t, engine)

	srv := httptest.NewServer(engine)
	defer srv.Close()

	resp, err := http.Get(fmt.Sprintf("%s/v1/sessions/%s/events", srv.URL, id))
	if err != nil {
		t.Fatalf("open event stream: %v", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if ct := resp.Header.Get("Content-Type"); !strings.Contains(ct, "text/event-stream") {
		t.Fatalf("Content-Type = %q, want text/event-stream", ct)
	}

	uploadAudio(t, engine, id)
	doRequest(t, engine, http.MethodPost, "/v1/sessions/"+id+"/transcribe", nil, "")
	waitForSegments(t, manager, id, 2)

	buf := make([]byte, 8192)
	found := false
	deadline := time.Now().Add(2 * time.Second)
	var stream strings.Builder
	for time.Now().Before(deadline) {
		n, readErr := resp.Body.Read(buf)
		if n > 0 {
			stream.Write(buf[:n])
			if strings.Contains(stream.String(), `"timeline"`) {
				found = true
				break
			}
		}
		if readErr != nil {
			break
		}
	}
	if !found {
		t.Fatalf("no timeline event on stream, got:\n%s", stream.String())
	}
}
