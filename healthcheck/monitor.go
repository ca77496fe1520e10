// Package healthcheck tracks reachability of the speech backend. The
// monitor starts in the checking state, probes the backend's health
// endpoint, and notifies subscribers whenever the state flips.
package healthcheck

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/skillsenselab/lyricsync/httpclient"
)

// Status is the reachability state of the monitored backend.
type Status string

const (
	// StatusChecking means no probe has completed yet.
	StatusChecking Status = "checking"
	// StatusReachable means the last probe succeeded.
	StatusReachable Status = "reachable"
	// StatusUnreachable means the last probe failed.
	StatusUnreachable Status = "unreachable"
)

const (
	defaultPath     = "/health"
	defaultTimeout  = 10 * time.Second
	defaultInterval = 30 * time.Second
)

// Config configures the backend health monitor.
type Config struct {
	// BaseURL is the backend base URL.
	BaseURL string `yaml:"base_url" mapstructure:"base_url"`
	// Path is the health endpoint path. Defaults to /health.
	Path string `yaml:"path" mapstructure:"path"`
	// Timeout bounds a single probe. Defaults to 10s.
	Timeout time.Duration `yaml:"timeout" mapstructure:"timeout"`
	// Interval is the periodic probe interval. Defaults to 30s.
	Interval time.Duration `yaml:"interval" mapstructure:"interval"`
}

// ApplyDefaults fills in zero-value fields with sensible defaults.
func (c *Config) ApplyDefaults() {
	if c.Path == "" {
		c.Path = defaultPath
	}
	if c.Timeout <= 0 {
		c.Timeout = defaultTimeout
	}
	if c.Interval <= 0 {
		c.Interval = defaultInterval
	}
}

// Subscriber receives status change notifications.
type Subscriber func(Status)

// Monitor probes the backend health endpoint and tracks its state.
type Monitor struct {
	cfg    Config
	client *httpclient.Client

	mu     sync.RWMutex
	status Status
	subs   []Subscriber

	stopOnce sync.Once
	stop     chan struct{}
	done     chan struct{}
}

// New creates a monitor in the checking state. It does not probe until
// CheckNow or Start is called.
func New(cfg Config) (*Monitor, error) {
	cfg.ApplyDefaults()
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("healthcheck: base_url is required")
	}

	client, err := httpclient.New(httpclient.Config{
		BaseURL: cfg.BaseURL,
		Timeout: cfg.Timeout,
	})
	if err != nil {
		return nil, fmt.Errorf("healthcheck: %w", err)
	}

	return &Monitor{
		cfg:    cfg,
		client: client,
		status: StatusChecking,
		stop:   make(chan struct{}),
		done:   make(chan struct{}),
	}, nil
}

// Status returns the current reachability state.
func (m *Monitor) Status() Status {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.status
}

// Subscribe registers a callback invoked whenever the state changes.
// Callbacks run on the probing goroutine and must not block.
func (m *Monitor) Subscribe(fn Subscriber) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.subs = append(m.subs, fn)
}

// CheckNow probes the backend once and returns the resulting state.
func (m *Monitor) CheckNow(ctx context.Context) Status {
	ctx, cancel := context.WithTimeout(ctx, m.cfg.Timeout)
	defer cancel()

	next := StatusUnreachable
	if m.probe(ctx) {
		next = StatusReachable
	}
	m.transition(next)
	return next
}

// Start begins periodic probing. An immediate probe runs first so the
// state leaves checking without waiting a full interval.
func (m *Monitor) Start(ctx context.Context) {
	go func() {
		defer close(m.done)

		m.CheckNow(ctx)

		ticker := time.NewTicker(m.cfg.Interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				m.CheckNow(ctx)
			case <-ctx.Done():
				return
			case <-m.stop:
				return
			}
		}
	}()
}

// Stop halts periodic probing and waits for the probe goroutine to exit.
func (m *Monitor) Stop() {
	m.stopOnce.Do(func() { close(m.stop) })
	<-m.done
}

// probe returns true when the health endpoint answers 2xx with status ok.
func (m *Monitor) probe(ctx context.Context) bool {
	resp, err := m.client.Do(ctx, httpclient.Request{
		Method: http.MethodGet,
		Path:   m.cfg.Path,
	})
	if err != nil || !resp.IsSuccess() {
		return false
	}

	var body struct {
		Status string `json:"status"`
	}
	if err := json.Unmarshal(resp.Body, &body); err != nil {
		return false
	}
	return body.Status == "ok"
}

func (m *Monitor) transition(next Status) {
	m.mu.Lock()
	changed := m.status != next
	m.status = next
	subs := make([]Subscriber, len(m.subs))
	copy(subs, m.subs)
	m.mu.Unlock()

	if !changed {
		return
	}
	for _, fn := range subs {
		fn(next)
	}
}
