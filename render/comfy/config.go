package comfy

import (
	"time"

	"github.com/storyforge/renderkit/validation"
)

const (
	defaultPollInterval = 2 * time.Second
	defaultTimeout      = 1800 * time.Second
	defaultHTTPTimeout  = 60 * time.Second
)

// Config holds configuration for the ComfyUI backend.
type Config struct {
	// BaseURL is the engine endpoint, e.g. "http://localhost:8188".
	BaseURL string `json:"base_url" yaml:"base_url" mapstructure:"base_url"`
	// PollInterval is the delay between history polls. Defaults to 2s.
	PollInterval time.Duration `json:"poll_interval" yaml:"poll_interval" mapstructure:"poll_interval"`
	// Timeout bounds one invocation's total polling time. Defaults to 1800s.
	Timeout time.Duration `json:"timeout" yaml:"timeout" mapstructure:"timeout"`
	// HTTPTimeout bounds a single HTTP request. Defaults to 60s.
	HTTPTimeout time.Duration `json:"http_timeout" yaml:"http_timeout" mapstructure:"http_timeout"`
	// OutputDir is the default directory for persisted artifacts.
	OutputDir string `json:"output_dir" yaml:"output_dir" mapstructure:"output_dir"`
}

// ApplyDefaults fills in zero-value fields with sensible defaults.
func (c *Config) ApplyDefaults() {
	if c.PollInterval <= 0 {
		c.PollInterval = defaultPollInterval
	}
	if c.Timeout <= 0 {
		c.Timeout = defaultTimeout
	}
	if c.HTTPTimeout <= 0 {
		c.HTTPTimeout = defaultHTTPTimeout
	}
}

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	v := validation.New().
		Required("comfy.base_url", c.BaseURL).
		Custom(c.PollInterval < c.Timeout, "comfy.poll_interval", "must be smaller than timeout")
	if appErr := v.Validate(); appErr != nil {
		return appErr
	}
	return nil
}
