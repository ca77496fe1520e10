// Package whisperapi implements transcription.Provider against the HTTP
// speech-to-text service. Audio goes out as a multipart upload; the reply
// is a transcript with time-aligned chunks and optional word alignment.
package whisperapi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	apperrors "github.com/skillsenselab/lyricsync/errors"
	"github.com/skillsenselab/lyricsync/httpclient"
	"github.com/skillsenselab/lyricsync/provider"
	"github.com/skillsenselab/lyricsync/timeline"
	"github.com/skillsenselab/lyricsync/transcription"
)

const (
	// ProviderName is the registered name for this provider.
	ProviderName = "whisperapi"

	// ServiceName identifies the backend in error messages and logs.
	ServiceName = "transcription"

	transcribePath = "/ai/stt/"

	defaultBaseURL = "http://localhost:8000"
	defaultTimeout = 120 * time.Second
)

// Config holds configuration for the whisperapi transcription provider.
type Config struct {
	BaseURL  string        `json:"base_url" yaml:"base_url" mapstructure:"base_url"`
	Language string        `json:"language,omitempty" yaml:"language" mapstructure:"language"`
	Timeout  time.Duration `json:"timeout" yaml:"timeout" mapstructure:"timeout"`
}

// Provider implements transcription.Provider using the HTTP backend.
type Provider struct {
	cfg    Config
	client *httpclient.Client
}

// NewProvider creates a new whisperapi transcription provider.
func NewProvider(cfg Config) (*Provider, error) {
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultBaseURL
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = defaultTimeout
	}

	client, err := httpclient.New(httpclient.Config{
		BaseURL: cfg.BaseURL,
		Timeout: cfg.Timeout,
	})
	if err != nil {
		return nil, fmt.Errorf("whisperapi: %w", err)
	}

	return &Provider{cfg: cfg, client: client}, nil
}

// Factory returns a provider.Factory that creates whisperapi Provider
// instances from a generic config map.
func Factory() provider.Factory[transcription.Provider] {
	return func(cfg map[string]any) (transcription.Provider, error) {
		wc := Config{}
		if v, ok := cfg["base_url"].(string); ok {
			wc.BaseURL = v
		}
		if v, ok := cfg["language"].(string); ok {
			wc.Language = v
		}
		if v, ok := cfg["timeout"].(time.Duration); ok {
			wc.Timeout = v
		}
		return NewProvider(wc)
	}
}

// Name returns the provider name.
func (p *Provider) Name() string { return ProviderName }

// IsAvailable checks if the backend is reachable.
func (p *Provider) IsAvailable(ctx context.Context) bool {
	resp, err := p.client.Do(ctx, httpclient.Request{
		Method: http.MethodGet,
		Path:   "/health",
	})
	return err == nil && resp.IsSuccess()
}

// Transcribe uploads audio to the backend and returns the aligned transcript.
func (p *Provider) Transcribe(ctx context.Context, req transcription.Request) (*transcription.Result, error) {
	if !strings.HasPrefix(req.ContentType, "audio/") {
		return nil, apperrors.InvalidAudio(req.ContentType)
	}
	if len(req.Data) == 0 {
		return nil, apperrors.MissingField("audio")
	}

	lang := p.cfg.Language
	if req.Language != "" {
		lang = req.Language
	}

	body := &httpclient.MultipartBody{
		Files: []httpclient.FileField{{
			FieldName:   "audio",
			FileName:    req.Filename,
			ContentType: req.ContentType,
			Data:        req.Data,
		}},
	}
	if lang != "" {
		body.Fields = map[string]string{"language": lang}
	}

	resp, err := p.client.Do(ctx, httpclient.Request{
		Method: http.MethodPost,
		Path:   transcribePath,
		Body:   body,
	})
	if err != nil {
		return nil, mapTransportError(err)
	}

	return decodeResult(resp.Body)
}

// mapTransportError converts client-level failures into user-facing errors.
// A mid-transfer reset usually means the upload exceeded what the backend
// accepts, which deserves a distinct message.
func mapTransportError(err error) error {
	switch {
	case httpclient.IsTimeout(err):
		return apperrors.Timeout("transcription").WithCause(err)
	case httpclient.IsConnectionReset(err):
		return apperrors.ResponseTooLarge(ServiceName).WithCause(err)
	}
	if httpErr, ok := err.(*httpclient.Error); ok && httpErr.StatusCode == 0 {
		return apperrors.ConnectionFailed(ServiceName).WithCause(err)
	}
	return apperrors.TranscriptionFailed(err)
}

// --- backend response types ---

type sttResponse struct {
	Result *sttResult `json:"result"`
}

type sttResult struct {
	Text   json.RawMessage `json:"text"`
	Chunks []sttChunk      `json:"chunks"`
}

type sttChunk struct {
	Text      any       `json:"text"`
	Timestamp []float64 `json:"timestamp"`
	Words     []sttWord `json:"words"`
}

type sttWord struct {
	Text      any       `json:"text"`
	Timestamp []float64 `json:"timestamp"`
}

// decodeResult parses the backend reply, enforcing the expected shape.
// A reply without a result object or with malformed chunk timestamps is
// rejected outright rather than half-applied.
func decodeResult(body []byte) (*transcription.Result, error) {
	var resp sttResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, apperrors.MalformedResponse(ServiceName).WithCause(err)
	}
	if resp.Result == nil {
		return nil, apperrors.MalformedResponse(ServiceName).WithDetail("reason", "missing result object")
	}

	var text string
	if len(resp.Result.Text) > 0 {
		var raw any
		if err := json.Unmarshal(resp.Result.Text, &raw); err == nil {
			text = timeline.CoerceText(raw)
		}
	}

	segments := make([]transcription.Segment, 0, len(resp.Result.Chunks))
	for i, chunk := range resp.Result.Chunks {
		if len(chunk.Timestamp) < 2 {
			return nil, apperrors.MalformedResponse(ServiceName).
				WithDetail("reason", fmt.Sprintf("chunk %d has no timestamp pair", i))
		}
		seg := transcription.Segment{
			Text:  timeline.CoerceText(chunk.Text),
			Start: chunk.Timestamp[0],
			End:   chunk.Timestamp[1],
		}
		for _, w := range chunk.Words {
			if len(w.Timestamp) < 2 {
				continue
			}
			seg.Words = append(seg.Words, transcription.Word{
				Text:  timeline.CoerceText(w.Text),
				Start: w.Timestamp[0],
				End:   w.Timestamp[1],
			})
		}
		segments = append(segments, seg)
	}

	return &transcription.Result{Text: text, Segments: segments}, nil
}
