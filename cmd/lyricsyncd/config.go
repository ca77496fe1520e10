package main

import (
	"time"

	"github.com/skillsenselab/lyricsync/config"
	"github.com/skillsenselab/lyricsync/healthcheck"
	"github.com/skillsenselab/lyricsync/server"
	"github.com/skillsenselab/lyricsync/session"
)

// Config is the daemon configuration, loaded from config.yml, .env and
// the process environment.
type Config struct {
	config.ServiceConfig `yaml:",inline" mapstructure:",squash"`

	Server  server.Config `mapstructure:"server"`
	Backend BackendConfig `mapstructure:"backend"`
	Session SessionConfig `mapstructure:"session"`
}

// SessionConfig configures session housekeeping.
type SessionConfig struct {
	Janitor session.JanitorConfig `mapstructure:"janitor"`
}

// BackendConfig points at the speech service that does transcription
// and translation.
type BackendConfig struct {
	// BaseURL is the speech backend base URL.
	BaseURL string `mapstructure:"base_url"`
	// Language hints the transcription language. Empty lets the backend
	// auto-detect.
	Language string `mapstructure:"language"`
	// TargetLang is the default translation target language.
	TargetLang string `mapstructure:"target_lang"`
	// TranscribeTimeout bounds a single transcription call.
	TranscribeTimeout time.Duration `mapstructure:"transcribe_timeout"`
	// TranslateTimeout bounds a single translation call.
	TranslateTimeout time.Duration `mapstructure:"translate_timeout"`
	// Health configures reachability probing.
	Health healthcheck.Config `mapstructure:"health"`
}

// ApplyDefaults fills zero values.
func (c *Config) ApplyDefaults() {
	if c.Name == "" {
		c.Name = serviceName
	}
	c.ServiceConfig.ApplyDefaults()
	c.Server.ApplyDefaults()
	if c.Backend.BaseURL == "" {
		c.Backend.BaseURL = "http://localhost:8000"
	}
	if c.Backend.Health.BaseURL == "" {
		c.Backend.Health.BaseURL = c.Backend.BaseURL
	}
}

// Validate checks the configuration.
func (c *Config) Validate() error {
	if err := c.ServiceConfig.Validate(); err != nil {
		return err
	}
	return c.Server.Validate()
}
