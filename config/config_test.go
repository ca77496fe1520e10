package config

import (
	"os"
	"path/filepath"
	"testing"
)

type testConfig struct {
	ServiceConfig `yaml:",inline" mapstructure:",squash"`
	Backend       struct {
		BaseURL string `yaml:"base_url" mapstructure:"base_url"`
	} `yaml:"backend" mapstructure:"backend"`
}

func TestLoadConfigFromYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yml")
	yml := "name: lyricsyncd\nenvironment: production\nbackend:\n  base_url: http://stt:8000\n"
	if err := os.WriteFile(path, []byte(yml), 0o600); err != nil {
		t.Fatal(err)
	}

	var cfg testConfig
	if err := LoadConfig("lyricsyncd", &cfg, WithConfigFile(path)); err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if cfg.Name != "lyricsyncd" {
		t.Errorf("name = %q, want lyricsyncd", cfg.Name)
	}
	if cfg.Backend.BaseURL != "http://stt:8000" {
		t.Errorf("backend.base_url = %q", cfg.Backend.BaseURL)
	}
}

func TestLoadConfigEnvOverride(t *testing.T) {
	t.Setenv("BACKEND_BASE_URL", "http://override:9000")

	var cfg testConfig
	if err := LoadConfig("lyricsyncd", &cfg, WithConfigFile(filepath.Join(t.TempDir(), "missing.yml"))); err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.Backend.BaseURL != "http://override:9000" {
		t.Errorf("env override not applied: %q", cfg.Backend.BaseURL)
	}
}

func TestServiceConfigDefaults(t *testing.T) {
	cfg := &ServiceConfig{}
	cfg.ApplyDefaults()

	if cfg.Environment != "development" {
		t.Errorf("environment = %q, want development", cfg.Environment)
	}
	if !cfg.Debug {
		t.Error("development should enable debug")
	}
}

func TestServiceConfigValidate(t *testing.T) {
	cfg := &ServiceConfig{Environment: "development"}
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for missing name")
	}

	cfg.Name = "lyricsyncd"
	if err := cfg.Validate(); err != nil {
		t.Errorf("unexpected error: %v", err)
	}

	cfg.Environment = "qa"
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for unknown environment")
	}
}

func TestEnvKeyVariants(t *testing.T) {
	variants := envKeyVariants("SERVER_READ_TIMEOUT")

	want := map[string]bool{
		"server_read_timeout": false,
		"server.read.timeout": false,
		"server.read_timeout": false,
	}
	for _, v := range variants {
		if _, ok := want[v]; ok {
			want[v] = true
		}
	}
	for k, found := range want {
		if !found {
			t.Errorf("missing variant %q in %v", k, variants)
		}
	}
}
