package bootstrap

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/skillsenselab/lyricsync/component"
	"github.com/skillsenselab/lyricsync/logger"
)

const defaultGracefulTimeout = 15 * time.Second

// App manages the daemon lifecycle around a component registry.
type App struct {
	Name       string
	Version    string
	Components *component.Registry
	Logger     *logger.Logger

	gracefulTimeout time.Duration

	onStart []Hook
	onReady []Hook
	onStop  []Hook
}

// NewApp creates an application instance.
func NewApp(name, version string, opts ...Option) *App {
	app := &App{
		Name:            name,
		Version:         version,
		Components:      component.NewRegistry(),
		gracefulTimeout: defaultGracefulTimeout,
	}

	o := resolveOptions(opts)
	if o.gracefulTimeout != nil {
		app.gracefulTimeout = *o.gracefulTimeout
	}
	if o.logger != nil {
		app.Logger = o.logger
	} else {
		app.Logger = logger.GetGlobalLogger()
	}

	return app
}

// RegisterComponent adds a component to the application's registry.
func (a *App) RegisterComponent(c component.Component) error {
	return a.Components.Register(c)
}

// ReadyCheck reports components that are not fully healthy. Degraded
// components are listed but, like unhealthy ones, only logged by the
// startup path; the daemon still comes up.
func (a *App) ReadyCheck(ctx context.Context) error {
	var notReady []string
	for _, h := range a.Components.HealthAll(ctx) {
		if h.Status != component.StatusHealthy {
			detail := h.Name + "=" + string(h.Status)
			if h.Message != "" {
				detail += " (" + h.Message + ")"
			}
			notReady = append(notReady, detail)
		}
	}
	if len(notReady) > 0 {
		return fmt.Errorf("components not ready: %v", notReady)
	}
	return nil
}

// Run executes the full lifecycle: start components, run OnStart hooks,
// ready check, OnReady hooks, block until a shutdown signal, then stop.
func (a *App) Run(ctx context.Context) error {
	if err := a.startup(ctx); err != nil {
		return err
	}

	a.Logger.Info("application ready, waiting for shutdown signal")
	a.WaitForSignal(ctx)

	return a.Shutdown(context.Background())
}

func (a *App) startup(ctx context.Context) error {
	a.Logger.Info("starting application", map[string]interface{}{
		"name":    a.Name,
		"version": a.Version,
	})

	if err := a.Components.StartAll(ctx); err != nil {
		return fmt.Errorf("failed to start components: %w", err)
	}

	if err := runHooks(ctx, a.onStart); err != nil {
		return fmt.Errorf("onStart hook failed: %w", err)
	}

	if err := a.ReadyCheck(ctx); err != nil {
		a.Logger.Warn("ready check reported issues", map[string]interface{}{
			"error": err.Error(),
		})
	}

	if err := runHooks(ctx, a.onReady); err != nil {
		return fmt.Errorf("onReady hook failed: %w", err)
	}

	return nil
}

// WaitForSignal blocks until SIGINT, SIGTERM or context cancellation.
func (a *App) WaitForSignal(ctx context.Context) os.Signal {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	select {
	case sig := <-sigCh:
		a.Logger.Info("received shutdown signal", map[string]interface{}{
			"signal": sig.String(),
		})
		return sig
	case <-ctx.Done():
		a.Logger.Info("context canceled, shutting down")
		return nil
	}
}

// Shutdown runs OnStop hooks and stops all components in reverse order
// within the graceful timeout.
func (a *App) Shutdown(ctx context.Context) error {
	a.Logger.Info("shutting down", map[string]interface{}{
		"timeout": a.gracefulTimeout.String(),
	})

	stopCtx, cancel := context.WithTimeout(ctx, a.gracefulTimeout)
	defer cancel()

	var shutdownErr error

	if err := runHooks(stopCtx, a.onStop); err != nil {
		a.Logger.Error("onStop hook error", map[string]interface{}{
			"error": err.Error(),
		})
		shutdownErr = err
	}

	if err := a.Components.StopAll(stopCtx); err != nil {
		a.Logger.Error("shutdown completed with errors", map[string]interface{}{
			"error": err.Error(),
		})
		if shutdownErr == nil {
			shutdownErr = err
		}
	}

	a.Logger.Info("shutdown complete")
	return shutdownErr
}
