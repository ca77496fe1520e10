package translation

import (
	"context"

	"github.com/skillsenselab/lyricsync/provider"
)

// Provider is the interface that translation backends must implement.
type Provider interface {
	provider.Provider

	// Translate converts text into the target language.
	Translate(ctx context.Context, req Request) (*Result, error)
}

// Request holds parameters for a translation call.
type Request struct {
	// Text is the source text to translate.
	Text string `json:"text"`
	// TargetLang is the target language code (e.g. "en").
	TargetLang string `json:"target_lang"`
}

// Result holds the outcome of a translation call.
type Result struct {
	// TranslatedText is the translated text.
	TranslatedText string `json:"translated_text"`
}

// NewRegistry creates a new provider registry for translation providers.
func NewRegistry() *provider.Registry[Provider] {
	return provider.NewRegistry[Provider]()
}
