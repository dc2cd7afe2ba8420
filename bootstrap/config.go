package bootstrap

import (
	"fmt"

	"github.com/storyforge/renderkit/config"
	"github.com/storyforge/renderkit/render/comfy"
	"github.com/storyforge/renderkit/render/runpod"
)

// Config is the full configuration of a generation service: the common
// service fields plus one section per backend and an optional telemetry
// section. A backend with an empty base URL is disabled.
type Config struct {
	config.ServiceConfig `yaml:",inline" mapstructure:",squash"`

	Telemetry TelemetryConfig `yaml:"telemetry" mapstructure:"telemetry"`
	Comfy     comfy.Config    `yaml:"comfy" mapstructure:"comfy"`
	Runpod    runpod.Config   `yaml:"runpod" mapstructure:"runpod"`

	// Selector chooses the backend selection strategy.
	Selector string `yaml:"selector" mapstructure:"selector"`
}

// Backend selection strategies.
const (
	// SelectorPriority prefers the engine and falls back to the queue.
	SelectorPriority = "priority"
	// SelectorHealth takes the first reachable backend in name order.
	SelectorHealth = "health"
)

// TelemetryConfig controls OTLP trace and metric export.
type TelemetryConfig struct {
	Enabled  bool   `yaml:"enabled" mapstructure:"enabled"`
	Endpoint string `yaml:"endpoint" mapstructure:"endpoint"`
	Insecure bool   `yaml:"insecure" mapstructure:"insecure"`
}

// ApplyDefaults applies default values to all sections.
func (c *Config) ApplyDefaults() {
	if c.Name == "" {
		c.Name = "renderkit"
	}
	if c.Selector == "" {
		c.Selector = SelectorPriority
	}
	c.ServiceConfig.ApplyDefaults()
	c.Comfy.ApplyDefaults()
	c.Runpod.ApplyDefaults()
}

// Validate checks the base fields and every enabled backend section.
func (c *Config) Validate() error {
	if err := c.ServiceConfig.Validate(); err != nil {
		return err
	}
	if !c.ComfyEnabled() && !c.RunpodEnabled() {
		return fmt.Errorf("bootstrap: at least one backend must be configured")
	}
	if c.Selector != SelectorPriority && c.Selector != SelectorHealth {
		return fmt.Errorf("bootstrap: unknown selector %q", c.Selector)
	}
	if c.ComfyEnabled() {
		if err := c.Comfy.Validate(); err != nil {
			return err
		}
	}
	if c.RunpodEnabled() {
		if err := c.Runpod.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// ComfyEnabled reports whether the primary backend is configured.
func (c *Config) ComfyEnabled() bool { return c.Comfy.BaseURL != "" }

// RunpodEnabled reports whether the serverless backend is configured.
func (c *Config) RunpodEnabled() bool { return c.Runpod.BaseURL != "" }

// Load reads the service configuration from config files and the
// environment using the standard resolution order.
func Load(opts ...config.LoaderOption) (*Config, error) {
	cfg := &Config{}
	if err := config.LoadConfig("renderkit", cfg, opts...); err != nil {
		return nil, err
	}
	return cfg, nil
}
