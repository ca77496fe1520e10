package httpapi

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	apperrors "github.com/skillsenselab/lyricsync/errors"
	"github.com/skillsenselab/lyricsync/translation"
)

func newTestProvider(t *testing.T, handler http.HandlerFunc) *Provider {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	p, err := NewProvider(Config{BaseURL: srv.URL, Timeout: 5 * time.Second})
	if err != nil {
		t.Fatalf("NewProvider: %v", err)
	}
	return p
}

func TestTranslate(t *testing.T) {
	p := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/ai/translate" {
			t.Errorf("path = %s, want /ai/translate", r.URL.Path)
		}
		if got := r.URL.Query().Get("text"); got != "hola mundo" {
			t.Errorf("text = %q, want %q", got, "hola mundo")
		}
		if got := r.URL.Query().Get("target_lang"); got != "en" {
			t.Errorf("target_lang = %q, want en", got)
		}
		_, _ = w.Write([]byte(`{"translated_text":"hello world"}`))
	})

	result, err := p.Translate(context.Background(), translation.Request{
		Text:       "hola mundo",
		TargetLang: "en",
	})
	if err != nil {
		t.Fatalf("Translate: %v", err)
	}
	if result.TranslatedText != "hello world" {
		t.Errorf("translated = %q", result.TranslatedText)
	}
}

func TestTranslateDefaultTargetLang(t *testing.T) {
	p := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("target_lang"); got != "en" {
			t.Errorf("target_lang = %q, want default en", got)
		}
		_, _ = w.Write([]byte(`{"translated_text":"ok"}`))
	})

	if _, err := p.Translate(context.Background(), translation.Request{Text: "hola"}); err != nil {
		t.Fatalf("Translate: %v", err)
	}
}

func TestTranslateRejectsEmptyText(t *testing.T) {
	p := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("request should not reach the backend")
	})

	_, err := p.Translate(context.Background(), translation.Request{Text: "   "})
	var appErr *apperrors.AppError
	if !errors.As(err, &appErr) || appErr.Code != apperrors.ErrCodeMissingField {
		t.Fatalf("err = %v, want MISSING_FIELD", err)
	}
}

func TestTranslateMalformedResponse(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"not json", `oops`},
		{"missing field", `{"status":"done"}`},
		{"empty field", `{"translated_text":""}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(tt.body))
			})

			_, err := p.Translate(context.Background(), translation.Request{Text: "hola"})
			var appErr *apperrors.AppError
			if !errors.As(err, &appErr) || appErr.Code != apperrors.ErrCodeMalformedResponse {
				t.Fatalf("err = %v, want MALFORMED_RESPONSE", err)
			}
		})
	}
}

func TestTranslateServerError(t *testing.T) {
	p := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	_, err := p.Translate(context.Background(), translation.Request{Text: "hola"})
	var appErr *apperrors.AppError
	if !errors.As(err, &appErr) || appErr.Code != apperrors.ErrCodeTranslationFailed {
		t.Fatalf("err = %v, want TRANSLATION_FAILED", err)
	}
	if !appErr.Retryable {
		t.Error("translation failure should be retryable")
	}
}
