package session

import (
	"context"
	"strconv"
	"time"

	"github.com/skillsenselab/lyricsync/component"
)

const (
	janitorName = "session-janitor"

	defaultSweepInterval = 5 * time.Minute
	defaultMaxIdle       = time.Hour
)

// JanitorConfig configures idle session cleanup.
type JanitorConfig struct {
	// Interval between sweeps. Defaults to 5m.
	Interval time.Duration `yaml:"interval" mapstructure:"interval"`
	// MaxIdle is how long a session may go without intents before it is
	// removed. Defaults to 1h.
	MaxIdle time.Duration `yaml:"max_idle" mapstructure:"max_idle"`
}

// Janitor periodically sweeps idle sessions from a Manager. The SPA
// deletes its session on unload, but abandoned tabs never do.
type Janitor struct {
	manager *Manager
	cfg     JanitorConfig

	stop chan struct{}
	done chan struct{}
}

// NewJanitor creates a janitor for the given manager.
func NewJanitor(manager *Manager, cfg JanitorConfig) *Janitor {
	if cfg.Interval <= 0 {
		cfg.Interval = defaultSweepInterval
	}
	if cfg.MaxIdle <= 0 {
		cfg.MaxIdle = defaultMaxIdle
	}
	return &Janitor{
		manager: manager,
		cfg:     cfg,
		stop:    make(chan struct{}),
		done:    make(chan struct{}),
	}
}

// Name returns the component name.
func (j *Janitor) Name() string { return janitorName }

// Start begins periodic sweeping.
func (j *Janitor) Start(_ context.Context) error {
	go func() {
		defer close(j.done)
		ticker := time.NewTicker(j.cfg.Interval)
		defer ticker.Stop()
		for {
			select {
			case <-j.stop:
				return
			case <-ticker.C:
				j.manager.Sweep(j.cfg.MaxIdle)
			}
		}
	}()
	return nil
}

// Stop halts sweeping.
func (j *Janitor) Stop(_ context.Context) error {
	close(j.stop)
	<-j.done
	return nil
}

// Health reports the live session count.
func (j *Janitor) Health(_ context.Context) component.Health {
	return component.Health{
		Name:    janitorName,
		Status:  component.StatusHealthy,
		Message: strconv.Itoa(j.manager.Count()) + " live sessions",
	}
}
