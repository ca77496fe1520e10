package provider

import (
	"fmt"
	"sort"
	"strings"
	"sync"
)

// Registry holds the adapter factories for one backend capability.
// The transcription and translation packages each keep their own,
// typed to their Provider interface, so a transcriber can never be
// registered where a translator is expected.
type Registry[T Provider] struct {
	mu        sync.RWMutex
	factories map[string]Factory[T]
}

// NewRegistry returns an empty registry.
func NewRegistry[T Provider]() *Registry[T] {
	return &Registry[T]{factories: make(map[string]Factory[T])}
}

// RegisterFactory makes an adapter buildable under the given name.
// Registering the same name again replaces the earlier factory.
func (r *Registry[T]) RegisterFactory(name string, factory Factory[T]) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.factories[name] = factory
}

// Create builds the named adapter from cfg.
func (r *Registry[T]) Create(name string, cfg map[string]any) (T, error) {
	r.mu.RLock()
	factory, ok := r.factories[name]
	r.mu.RUnlock()
	if !ok {
		var zero T
		return zero, fmt.Errorf("unknown adapter %q (registered: %s)", name, strings.Join(r.List(), ", "))
	}
	return factory(cfg)
}

// List returns the registered adapter names, sorted.
func (r *Registry[T]) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
