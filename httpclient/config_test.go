package httpclient

import (
	"testing"
	"time"
)

func TestConfig_ApplyDefaults(t *testing.T) {
	cfg := Config{}
	cfg.ApplyDefaults()
	if cfg.Timeout != defaultTimeout {
		t.Errorf("expected default timeout %v, got %v", defaultTimeout, cfg.Timeout)
	}

	cfg = Config{Timeout: 5 * time.Second}
	cfg.ApplyDefaults()
	if cfg.Timeout != 5*time.Second {
		t.Errorf("expected explicit timeout preserved, got %v", cfg.Timeout)
	}
}

func TestConfig_Validate(t *testing.T) {
	cfg := Config{Timeout: -1}
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for negative timeout")
	}

	cfg = Config{Timeout: time.Second}
	if err := cfg.Validate(); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestDefaultRetryConfig(t *testing.T) {
	cfg := DefaultRetryConfig()
	if cfg.RetryIf == nil {
		t.Fatal("expected RetryIf to be set")
	}
	if !cfg.RetryIf(NewServerError(503, nil)) {
		t.Error("expected server errors to be retryable")
	}
	if cfg.RetryIf(NewValidationError("bad request")) {
		t.Error("expected validation errors to not be retryable")
	}
}
