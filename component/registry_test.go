package component

import (
	"context"
	"errors"
	"testing"
)

type stubComponent struct {
	name     string
	startErr error
	stopErr  error
	order    *[]string
}

func (s *stubComponent) Name() string { return s.name }

func (s *stubComponent) Start(ctx context.Context) error {
	*s.order = append(*s.order, "start:"+s.name)
	return s.startErr
}

func (s *stubComponent) Stop(ctx context.Context) error {
	*s.order = append(*s.order, "stop:"+s.name)
	return s.stopErr
}

func (s *stubComponent) Health(ctx context.Context) Health {
	return Health{Name: s.name, Status: StatusHealthy}
}

func TestRegistryStartStopOrder(t *testing.T) {
	var order []string
	r := NewRegistry()
	for _, name := range []string{"a", "b", "c"} {
		if err := r.Register(&stubComponent{name: name, order: &order}); err != nil {
			t.Fatalf("Register %s: %v", name, err)
		}
	}

	if err := r.StartAll(context.Background()); err != nil {
		t.Fatalf("StartAll: %v", err)
	}
	if err := r.StopAll(context.Background()); err != nil {
		t.Fatalf("StopAll: %v", err)
	}

	want := []string{"start:a", "start:b", "start:c", "stop:c", "stop:b", "stop:a"}
	if len(order) != len(want) {
		t.Fatalf("order = %v, want %v", order, want)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Errorf("order[%d] = %s, want %s", i, order[i], want[i])
		}
	}
}

func TestRegistryDuplicateName(t *testing.T) {
	var order []string
	r := NewRegistry()
	if err := r.Register(&stubComponent{name: "a", order: &order}); err != nil {
		t.Fatalf("Register: %v", err)
	}
	if err := r.Register(&stubComponent{name: "a", order: &order}); err == nil {
		t.Fatal("expected duplicate registration error")
	}
}

func TestRegistryStartFailureStopsStartedOnly(t *testing.T) {
	var order []string
	r := NewRegistry()
	_ = r.Register(&stubComponent{name: "a", order: &order})
	_ = r.Register(&stubComponent{name: "b", order: &order, startErr: errors.New("boom")})
	_ = r.Register(&stubComponent{name: "c", order: &order})

	if err := r.StartAll(context.Background()); err == nil {
		t.Fatal("expected start failure")
	}
	order = order[:0]

	if err := r.StopAll(context.Background()); err != nil {
		t.Fatalf("StopAll: %v", err)
	}
	// Only "a" reached the started state.
	if len(order) != 1 || order[0] != "stop:a" {
		t.Errorf("order = %v, want [stop:a]", order)
	}
}

func TestRegistryStopCollectsErrors(t *testing.T) {
	var order []string
	r := NewRegistry()
	_ = r.Register(&stubComponent{name: "a", order: &order})
	_ = r.Register(&stubComponent{name: "b", order: &order, stopErr: errors.New("boom")})

	if err := r.StartAll(context.Background()); err != nil {
		t.Fatalf("StartAll: %v", err)
	}
	if err := r.StopAll(context.Background()); err == nil {
		t.Fatal("expected stop error")
	}
	// Both components must still have been stopped.
	if order[len(order)-1] != "stop:a" {
		t.Errorf("final stop = %s, want stop:a", order[len(order)-1])
	}
}

func TestRegistryHealthAndGet(t *testing.T) {
	var order []string
	r := NewRegistry()
	_ = r.Register(&stubComponent{name: "a", order: &order})

	hs := r.HealthAll(context.Background())
	if len(hs) != 1 || hs[0].Status != StatusHealthy {
		t.Errorf("health = %+v", hs)
	}
	if r.Get("a") == nil {
		t.Error("Get(a) = nil")
	}
	if r.Get("missing") != nil {
		t.Error("Get(missing) != nil")
	}
}
