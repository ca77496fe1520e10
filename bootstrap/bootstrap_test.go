package bootstrap

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/skillsenselab/lyricsync/component"
	"github.com/skillsenselab/lyricsync/logger"
)

type mockComponent struct {
	name    string
	started bool
	stopped bool
	health  component.HealthStatus
	failure error
}

func (m *mockComponent) Name() string { return m.name }

func (m *mockComponent) Start(_ context.Context) error {
	if m.failure != nil {
		return m.failure
	}
	m.started = true
	return nil
}

func (m *mockComponent) Stop(_ context.Context) error {
	m.stopped = true
	return nil
}

func (m *mockComponent) Health(_ context.Context) component.Health {
	status := m.health
	if status == "" {
		status = component.StatusHealthy
	}
	return component.Health{Name: m.name, Status: status}
}

func testLogger() *logger.Logger {
	return logger.New(&logger.Config{Level: "error", Format: "console"}, "test")
}

func TestNewAppDefaults(t *testing.T) {
	app := NewApp("lyricsyncd", "dev", WithLogger(testLogger()))

	if app.Name != "lyricsyncd" {
		t.Errorf("Name = %q", app.Name)
	}
	if app.gracefulTimeout != defaultGracefulTimeout {
		t.Errorf("gracefulTimeout = %v", app.gracefulTimeout)
	}
}

func TestWithGracefulTimeout(t *testing.T) {
	app := NewApp("lyricsyncd", "dev", WithLogger(testLogger()), WithGracefulTimeout(3*time.Second))
	if app.gracefulTimeout != 3*time.Second {
		t.Errorf("gracefulTimeout = %v, want 3s", app.gracefulTimeout)
	}
}

func TestStartupAndShutdown(t *testing.T) {
	app := NewApp("lyricsyncd", "dev", WithLogger(testLogger()))
	c1 := &mockComponent{name: "one"}
	c2 := &mockComponent{name: "two"}
	if err := app.RegisterComponent(c1); err != nil {
		t.Fatal(err)
	}
	if err := app.RegisterComponent(c2); err != nil {
		t.Fatal(err)
	}

	if err := app.startup(context.Background()); err != nil {
		t.Fatalf("startup: %v", err)
	}
	if !c1.started || !c2.started {
		t.Error("components not started")
	}

	if err := app.Shutdown(context.Background()); err != nil {
		t.Fatalf("shutdown: %v", err)
	}
	if !c1.stopped || !c2.stopped {
		t.Error("components not stopped")
	}
}

func TestStartupFailurePropagates(t *testing.T) {
	app := NewApp("lyricsyncd", "dev", WithLogger(testLogger()))
	boom := errors.New("boom")
	_ = app.RegisterComponent(&mockComponent{name: "bad", failure: boom})

	if err := app.startup(context.Background()); !errors.Is(err, boom) {
		t.Fatalf("startup err = %v, want wrapped boom", err)
	}
}

func TestHooksRunInOrder(t *testing.T) {
	app := NewApp("lyricsyncd", "dev", WithLogger(testLogger()))

	var order []string
	app.OnStart(func(context.Context) error {
		order = append(order, "start")
		return nil
	})
	app.OnReady(func(context.Context) error {
		order = append(order, "ready")
		return nil
	})
	app.OnStop(func(context.Context) error {
		order = append(order, "stop")
		return nil
	})

	if err := app.startup(context.Background()); err != nil {
		t.Fatalf("startup: %v", err)
	}
	if err := app.Shutdown(context.Background()); err != nil {
		t.Fatalf("shutdown: %v", err)
	}

	want := []string{"start", "ready", "stop"}
	if len(order) != len(want) {
		t.Fatalf("hook order = %v, want %v", order, want)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("hook order = %v, want %v", order, want)
		}
	}
}

func TestHookErrorAbortsStartup(t *testing.T) {
	app := NewApp("lyricsyncd", "dev", WithLogger(testLogger()))
	boom := errors.New("hook boom")
	app.OnStart(func(context.Context) error { return boom })

	if err := app.startup(context.Background()); !errors.Is(err, boom) {
		t.Fatalf("startup err = %v, want wrapped hook boom", err)
	}
}

func TestReadyCheckReportsDegraded(t *testing.T) {
	app := NewApp("lyricsyncd", "dev", WithLogger(testLogger()))
	_ = app.RegisterComponent(&mockComponent{name: "ok"})
	_ = app.RegisterComponent(&mockComponent{name: "meh", health: component.StatusDegraded})

	err := app.ReadyCheck(context.Background())
	if err == nil {
		t.Fatal("expected error for degraded component")
	}
}

func TestReadyCheckAllHealthy(t *testing.T) {
	app := NewApp("lyricsyncd", "dev", WithLogger(testLogger()))
	_ = app.RegisterComponent(&mockComponent{name: "ok"})

	if err := app.ReadyCheck(context.Background()); err != nil {
		t.Fatalf("ReadyCheck: %v", err)
	}
}
