package runpod

import (
	"time"

	"github.com/storyforge/renderkit/validation"
)

const (
	defaultPollInterval = 3 * time.Second
	defaultTimeout      = 1800 * time.Second
	defaultHTTPTimeout  = 60 * time.Second
)

// Config holds configuration for the serverless backend.
type Config struct {
	// BaseURL is the API root, e.g. "https://api.runpod.ai/v2".
	BaseURL string `json:"base_url" yaml:"base_url" mapstructure:"base_url"`
	// EndpointID identifies the deployed serverless endpoint.
	EndpointID string `json:"endpoint_id" yaml:"endpoint_id" mapstructure:"endpoint_id"`
	// APIKey is the bearer token for the API.
	APIKey string `json:"api_key" yaml:"api_key" mapstructure:"api_key"`
	// PollInterval is the delay between status polls. Defaults to 3s.
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
		Required("runpod.base_url", c.BaseURL).
		Required("runpod.endpoint_id", c.EndpointID)
	if appErr := v.Validate(); appErr != nil {
		return appErr
	}
	return nil
}
