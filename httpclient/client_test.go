package httpclient

import (
	"context"
	"encoding/json"
	"io"
	"mime"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestClientJSONRoundTrip(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method = %s, want POST", r.Method)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("content type = %s, want application/json", ct)
		}
		body, _ := io.ReadAll(r.Body)
		var payload map[string]string
		if err := json.Unmarshal(body, &payload); err != nil {
			t.Errorf("unmarshal body: %v", err)
		}
		if payload["text"] != "hello" {
			t.Errorf("payload text = %q, want hello", payload["text"])
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"ok":true}`))
	}))
	defer srv.Close()

	client, err := New(Config{BaseURL: srv.URL})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	resp, err := client.Do(context.Background(), Request{
		Method: http.MethodPost,
		Path:   "/echo",
		Body:   map[string]string{"text": "hello"},
	})
	if err != nil {
		t.Fatalf("Do: %v", err)
	}
	if !resp.IsSuccess() {
		t.Errorf("status = %d, want 2xx", resp.StatusCode)
	}
	if !strings.Contains(string(resp.Body), `"ok":true`) {
		t.Errorf("body = %s", resp.Body)
	}
}

func TestClientQueryParams(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("target_lang"); got != "en" {
			t.Errorf("target_lang = %q, want en", got)
		}
		if got := r.URL.Query().Get("text"); got != "hola mundo" {
			t.Errorf("text = %q, want %q", got, "hola mundo")
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	client, err := New(Config{BaseURL: srv.URL})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	_, err = client.Do(context.Background(), Request{
		Method: http.MethodPost,
		Path:   "/translate",
		Query:  map[string]string{"text": "hola mundo", "target_lang": "en"},
	})
	if err != nil {
		t.Fatalf("Do: %v", err)
	}
}

func TestClientMultipartUpload(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mediaType, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
		if err != nil || mediaType != "multipart/form-data" {
			t.Errorf("content type = %q, want multipart/form-data", r.Header.Get("Content-Type"))
		}
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Fatalf("parse multipart: %v", err)
		}
		file, header, err := r.FormFile("audio")
		if err != nil {
			t.Fatalf("form file: %v", err)
		}
		defer func() { _ = file.Close() }()
		if header.Filename != "song.wav" {
			t.Errorf("filename = %q, want song.wav", header.Filename)
		}
		if ct := header.Header.Get("Content-Type"); ct != "audio/wav" {
			t.Errorf("file content type = %q, want audio/wav", ct)
		}
		data, _ := io.ReadAll(file)
		if string(data) != "RIFFdata" {
			t.Errorf("file data = %q", data)
		}
		if lang := r.FormValue("language"); lang != "es" {
			t.Errorf("language = %q, want es", lang)
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	client, err := New(Config{BaseURL: srv.URL})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	_, err = client.Do(context.Background(), Request{
		Method: http.MethodPost,
		Path:   "/upload",
		Body: &MultipartBody{
			Fields: map[string]string{"language": "es"},
			Files: []FileField{{
				FieldName:   "audio",
				FileName:    "song.wav",
				ContentType: "audio/wav",
				Data:        []byte("RIFFdata"),
			}},
		},
	})
	if err != nil {
		t.Fatalf("Do: %v", err)
	}
}

func TestClientStatusClassification(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		wantCode ErrorCode
	}{
		{"not found", http.StatusNotFound, ErrCodeNotFound},
		{"bad request", http.StatusBadRequest, ErrCodeValidation},
		{"server error", http.StatusInternalServerError, ErrCodeServer},
		{"bad gateway", http.StatusBadGateway, ErrCodeServer},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte("details"))
			}))
			defer srv.Close()

			client, err := New(Config{BaseURL: srv.URL})
			if err != nil {
				t.Fatalf("New: %v", err)
			}

			resp, err := client.Do(context.Background(), Request{Method: http.MethodGet, Path: "/"})
			if err == nil {
				t.Fatal("expected error")
			}
			httpErr, ok := err.(*Error)
			if !ok {
				t.Fatalf("error type = %T, want *Error", err)
			}
			if httpErr.Code != tt.wantCode {
				t.Errorf("code = %s, want %s", httpErr.Code, tt.wantCode)
			}
			if httpErr.StatusCode != tt.status {
				t.Errorf("status = %d, want %d", httpErr.StatusCode, tt.status)
			}
			// Response is still returned so callers can inspect the body.
			if resp == nil || string(resp.Body) != "details" {
				t.Errorf("resp = %+v", resp)
			}
		})
	}
}

func TestClientTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer srv.Close()

	client, err := New(Config{BaseURL: srv.URL})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err = client.Do(ctx, Request{Method: http.MethodGet, Path: "/slow"})
	if err == nil {
		t.Fatal("expected timeout error")
	}
	if !IsTimeout(err) {
		t.Errorf("IsTimeout = false for %v", err)
	}
}

func TestClientConnectionRefused(t *testing.T) {
	// Port from a server that has already been closed.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	client, err := New(Config{BaseURL: url})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	_, err = client.Do(context.Background(), Request{Method: http.MethodGet, Path: "/"})
	if err == nil {
		t.Fatal("expected connection error")
	}
	httpErr, ok := err.(*Error)
	if !ok {
		t.Fatalf("error type = %T, want *Error", err)
	}
	if httpErr.Code != ErrCodeConnection && httpErr.Code != ErrCodeConnectionReset {
		t.Errorf("code = %s, want connection-level", httpErr.Code)
	}
}

func TestConfigDefaults(t *testing.T) {
	var cfg Config
	cfg.ApplyDefaults()
	if cfg.Timeout != defaultTimeout {
		t.Errorf("timeout = %v, want %v", cfg.Timeout, defaultTimeout)
	}
}
