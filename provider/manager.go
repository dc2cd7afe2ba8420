package provider

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/storyforge/renderkit/logger"
)

// Manager owns the set of named backends. Register records how to
// build each one, Initialize instantiates and caches it, and Get picks
// an initialized backend through the Selector unless a default is
// pinned with SetDefault.
type Manager[T Provider] struct {
	mu          sync.RWMutex
	factories   map[string]Factory[T]
	backends    map[string]T
	selector    Selector[T]
	defaultName string
	log         *logger.Logger
}

// NewManager creates an empty Manager using the given selection strategy.
func NewManager[T Provider](selector Selector[T]) *Manager[T] {
	return &Manager[T]{
		factories: make(map[string]Factory[T]),
		backends:  make(map[string]T),
		selector:  selector,
		log:       logger.Get("provider"),
	}
}

// Register records a factory under a backend name.
func (m *Manager[T]) Register(name string, factory Factory[T]) {
	m.mu.Lock()
	m.factories[name] = factory
	m.mu.Unlock()
	m.log.Info("backend registered", logger.Fields("backend", name))
}

// Initialize builds the named backend from its factory and caches the
// instance for selection.
func (m *Manager[T]) Initialize(name string, cfg map[string]any) error {
	m.mu.RLock()
	factory, ok := m.factories[name]
	m.mu.RUnlock()
	if !ok {
		return fmt.Errorf("backend %q not registered", name)
	}

	instance, err := factory(cfg)
	if err != nil {
		return fmt.Errorf("initialize backend %q: %w", name, err)
	}

	m.mu.Lock()
	m.backends[name] = instance
	m.mu.Unlock()
	m.log.Info("backend initialized", logger.Fields("backend", name))
	return nil
}

// Get returns the pinned default backend when one is set, otherwise
// the selector's pick among the initialized backends.
func (m *Manager[T]) Get(ctx context.Context) (T, error) {
	m.mu.RLock()
	defaultName := m.defaultName
	backends := make(map[string]T, len(m.backends))
	for name, b := range m.backends {
		backends[name] = b
	}
	m.mu.RUnlock()

	if defaultName != "" {
		if b, ok := backends[defaultName]; ok {
			return b, nil
		}
		var zero T
		return zero, fmt.Errorf("default backend %q not found", defaultName)
	}
	return m.selector.Select(ctx, backends)
}

// GetByName returns a specific initialized backend.
func (m *Manager[T]) GetByName(name string) (T, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if b, ok := m.backends[name]; ok {
		return b, nil
	}
	var zero T
	return zero, fmt.Errorf("backend %q not found", name)
}

// SetDefault pins the backend Get returns, bypassing the selector.
func (m *Manager[T]) SetDefault(name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.backends[name]; !ok {
		return fmt.Errorf("backend %q not initialized", name)
	}
	m.defaultName = name
	m.log.Info("default backend set", logger.Fields("backend", name))
	return nil
}

// Available returns the sorted names of all initialized backends.
func (m *Manager[T]) Available() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	names := make([]string, 0, len(m.backends))
	for name := range m.backends {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
