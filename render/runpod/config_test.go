package runpod

import (
	"testing"
	"time"
)

func TestConfigApplyDefaults(t *testing.T) {
	c := Config{BaseURL: "https://api.runpod.ai/v2", EndpointID: "ep-1"}
	c.ApplyDefaults()

	if c.PollInterval != 3*time.Second {
		t.Errorf("expected 3s poll interval, got %s", c.PollInterval)
	}
	if c.Timeout != 1800*time.Second {
		t.Errorf("expected 1800s timeout, got %s", c.Timeout)
	}
}

func TestConfigValidate(t *testing.T) {
	c := Config{}
	if err := c.Validate(); err == nil {
		t.Error("expected error for empty config")
	}

	c.BaseURL = "https://api.runpod.ai/v2"
	if err := c.Validate(); err == nil {
		t.Error("expected error for missing endpoint id")
	}

	c.EndpointID = "ep-1"
	if err := c.Validate(); err != nil {
		t.Errorf("expected valid config, got %v", err)
	}
}
