package render

import "github.com/storyforge/renderkit/provider"

// ManagerOption configures the generation backend manager.
type ManagerOption func(*managerConfig)

type managerConfig struct {
	selector provider.Selector[Provider]
}

// WithSelector sets the backend selection strategy for the manager.
func WithSelector(s provider.Selector[Provider]) ManagerOption {
	return func(c *managerConfig) {
		c.selector = s
	}
}

// NewManager creates a provider manager for generation backends.
// The default selector tries backends in primary-then-fallback order.
func NewManager(opts ...ManagerOption) *provider.Manager[Provider] {
	cfg := &managerConfig{
		selector: &provider.PrioritySelector[Provider]{
			Priority: []string{"comfy", "runpod"},
		},
	}
	for _, o := range opts {
		o(cfg)
	}
	return provider.NewManager(cfg.selector)
}
