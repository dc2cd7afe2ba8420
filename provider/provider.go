package provider

import "context"

// Provider is the minimal contract a generation backend satisfies.
type Provider interface {
	// Name returns the backend's registered name.
	Name() string
	// IsAvailable reports whether the backend can take work right now.
	IsAvailable(ctx context.Context) bool
}

// Factory builds a backend instance from a generic config map.
type Factory[T Provider] func(cfg map[string]any) (T, error)
