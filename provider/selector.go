package provider

import (
	"context"
	"fmt"
	"sort"
)

// Selector picks one backend out of the initialized set.
type Selector[T Provider] interface {
	Select(ctx context.Context, backends map[string]T) (T, error)
}

// PrioritySelector walks a fixed name order and returns the first
// backend that reports available. This is the primary-then-fallback
// strategy: the engine first, the serverless queue when it is down.
type PrioritySelector[T Provider] struct {
	Priority []string
}

func (s *PrioritySelector[T]) Select(ctx context.Context, backends map[string]T) (T, error) {
	for _, name := range s.Priority {
		if b, ok := backends[name]; ok && b.IsAvailable(ctx) {
			return b, nil
		}
	}
	var zero T
	return zero, fmt.Errorf("no backend in priority list is available")
}

// HealthCheckSelector ignores configured priority and takes the first
// available backend in name order. Useful when every backend is
// interchangeable and only reachability matters.
type HealthCheckSelector[T Provider] struct{}

func (s *HealthCheckSelector[T]) Select(ctx context.Context, backends map[string]T) (T, error) {
	names := make([]string, 0, len(backends))
	for name := range backends {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		if b := backends[name]; b.IsAvailable(ctx) {
			return b, nil
		}
	}
	var zero T
	return zero, fmt.Errorf("no backend is available")
}
