package provider

import "context"

// Provider is what every speech backend adapter exposes: a stable name
// used for registration and logging, and a reachability check against
// the backing service.
type Provider interface {
	// Name identifies the adapter, e.g. "whisper-api".
	Name() string
	// IsAvailable reports whether the backing service can take
	// requests right now.
	IsAvailable(ctx context.Context) bool
}

// Factory builds an adapter from its configuration map. The map keys
// mirror the backend section of the daemon config, so an alternative
// adapter can be wired in by name without code changes.
type Factory[T Provider] func(cfg map[string]any) (T, error)
