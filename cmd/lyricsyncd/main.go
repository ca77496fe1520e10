// Command lyricsyncd serves the lyric synchronization API: audio
// upload, transcription through the speech backend, timeline editing
// intents, live events over SSE, and LRC export.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/skillsenselab/lyricsync/bootstrap"
	"github.com/skillsenselab/lyricsync/config"
	"github.com/skillsenselab/lyricsync/healthcheck"
	"github.com/skillsenselab/lyricsync/logger"
	"github.com/skillsenselab/lyricsync/server"
	"github.com/skillsenselab/lyricsync/session"
	"github.com/skillsenselab/lyricsync/sse"
	"github.com/skillsenselab/lyricsync/transcription"
	"github.com/skillsenselab/lyricsync/transcription/whisperapi"
	"github.com/skillsenselab/lyricsync/translation"
	"github.com/skillsenselab/lyricsync/translation/httpapi"
	"github.com/skillsenselab/lyricsync/version"
)

const serviceName = "lyricsyncd"

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", serviceName, err)
		os.Exit(1)
	}
}

func run() error {
	var cfg Config
	if err := config.LoadConfig(serviceName, &cfg); err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return err
	}

	log := logger.New(&cfg.Logging, cfg.Name)
	logger.SetGlobalLogger(log)

	log.Info("booting", map[string]interface{}{
		"version": version.GetShortVersion(),
		"backend": cfg.Backend.BaseURL,
	})

	transcriber, translator, err := buildProviders(cfg.Backend)
	if err != nil {
		return err
	}

	monitor, err := healthcheck.New(cfg.Backend.Health)
	if err != nil {
		return err
	}
	monitor.Subscribe(func(status healthcheck.Status) {
		log.Info("backend status changed", map[string]interface{}{
			logger.FieldComponent: "backend-monitor",
			logger.FieldStatus:    string(status),
		})
	})

	sseComp := sse.NewComponent()

	manager := session.NewManager(transcriber, log,
		session.WithTranslator(translator),
		session.WithPublisher(sse.NewPublisher(sseComp.Hub())))

	srv := server.New(cfg.Server, log)
	srv.ApplyMiddleware()

	app := bootstrap.NewApp(cfg.Name, version.GetShortVersion(), bootstrap.WithLogger(log))

	api := server.NewAPI(manager, sseComp.Hub(), log, server.WithMonitor(monitor))
	api.Register(srv.GinEngine())
	srv.RegisterDefaultEndpoints(cfg.Name, app.Components.HealthAll)

	if err := app.RegisterComponent(sseComp); err != nil {
		return err
	}
	if err := app.RegisterComponent(healthcheck.NewComponent(monitor)); err != nil {
		return err
	}
	if err := app.RegisterComponent(session.NewJanitor(manager, cfg.Session.Janitor)); err != nil {
		return err
	}
	if err := app.RegisterComponent(server.NewComponent(srv)); err != nil {
		return err
	}

	return app.Run(context.Background())
}

// buildProviders wires the speech backend providers through their
// registries so alternative implementations can be swapped in by name.
func buildProviders(cfg BackendConfig) (transcription.Provider, translation.Provider, error) {
	transcribers := transcription.NewRegistry()
	transcribers.RegisterFactory(whisperapi.ProviderName, whisperapi.Factory())
	transcriber, err := transcribers.Create(whisperapi.ProviderName, map[string]any{
		"base_url": cfg.BaseURL,
		"language": cfg.Language,
		"timeout":  cfg.TranscribeTimeout,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("transcription provider: %w", err)
	}

	translators := translation.NewRegistry()
	translators.RegisterFactory(httpapi.ProviderName, httpapi.Factory())
	translator, err := translators.Create(httpapi.ProviderName, map[string]any{
		"base_url":    cfg.BaseURL,
		"target_lang": cfg.TargetLang,
		"timeout":     cfg.TranslateTimeout,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("translation provider: %w", err)
	}

	return transcriber, translator, nil
}
