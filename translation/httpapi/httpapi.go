// Package httpapi implements translation.Provider against the HTTP
// translation service.
package httpapi

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
	"github.com/skillsenselab/lyricsync/translation"
)

const (
	// ProviderName is the registered name for this provider.
	ProviderName = "httpapi"

	// ServiceName identifies the backend in error messages and logs.
	ServiceName = "translation"

	translatePath = "/ai/translate"

	defaultBaseURL    = "http://localhost:8000"
	defaultTargetLang = "en"
	defaultTimeout    = 30 * time.Second
)

// Config holds configuration for the HTTP translation provider.
type Config struct {
	BaseURL    string        `json:"base_url" yaml:"base_url" mapstructure:"base_url"`
	TargetLang string        `json:"target_lang" yaml:"target_lang" mapstructure:"target_lang"`
	Timeout    time.Duration `json:"timeout" yaml:"timeout" mapstructure:"timeout"`
}

// Provider implements translation.Provider using the HTTP backend.
type Provider struct {
	cfg    Config
	client *httpclient.Client
}

// NewProvider creates a new HTTP translation provider.
func NewProvider(cfg Config) (*Provider, error) {
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultBaseURL
	}
	if cfg.TargetLang == "" {
		cfg.TargetLang = defaultTargetLang
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = defaultTimeout
	}

	client, err := httpclient.New(httpclient.Config{
		BaseURL: cfg.BaseURL,
		Timeout: cfg.Timeout,
	})
	if err != nil {
		return nil, fmt.Errorf("translation httpapi: %w", err)
	}

	return &Provider{cfg: cfg, client: client}, nil
}

// Factory returns a provider.Factory that creates httpapi Provider
// instances from a generic config map.
func Factory() provider.Factory[translation.Provider] {
	return func(cfg map[string]any) (translation.Provider, error) {
		tc := Config{}
		if v, ok := cfg["base_url"].(string); ok {
			tc.BaseURL = v
		}
		if v, ok := cfg["target_lang"].(string); ok {
			tc.TargetLang = v
		}
		if v, ok := cfg["timeout"].(time.Duration); ok {
			tc.Timeout = v
		}
		return NewProvider(tc)
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

// Translate sends a line of text for translation.
func (p *Provider) Translate(ctx context.Context, req translation.Request) (*translation.Result, error) {
	if strings.TrimSpace(req.Text) == "" {
		return nil, apperrors.MissingField("text")
	}

	lang := p.cfg.TargetLang
	if req.TargetLang != "" {
		lang = req.TargetLang
	}

	resp, err := p.client.Do(ctx, httpclient.Request{
		Method: http.MethodPost,
		Path:   translatePath,
		Query: map[string]string{
			"text":        req.Text,
			"target_lang": lang,
		},
	})
	if err != nil {
		return nil, mapTransportError(err)
	}

	var result translation.Result
	if err := json.Unmarshal(resp.Body, &result); err != nil {
		return nil, apperrors.MalformedResponse(ServiceName).WithCause(err)
	}
	if result.TranslatedText == "" {
		return nil, apperrors.MalformedResponse(ServiceName).WithDetail("reason", "missing translated_text")
	}

	return &result, nil
}

func mapTransportError(err error) error {
	switch {
	case httpclient.IsTimeout(err):
		return apperrors.Timeout("translation").WithCause(err)
	case httpclient.IsConnectionReset(err):
		return apperrors.ResponseTooLarge(ServiceName).WithCause(err)
	}
	if httpErr, ok := err.(*httpclient.Error); ok && httpErr.StatusCode == 0 {
		return apperrors.ConnectionFailed(ServiceName).WithCause(err)
	}
	return apperrors.TranslationFailed(err)
}
