package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/storyforge/renderkit/logger"
)

type backendSection struct {
	BaseURL    string `yaml:"base_url" mapstructure:"base_url"`
	EndpointID string `yaml:"endpoint_id" mapstructure:"endpoint_id"`
}

type serviceFixture struct {
	ServiceConfig `yaml:",inline" mapstructure:",squash"`

	Comfy backendSection `yaml:"comfy" mapstructure:"comfy"`
}

func TestServiceConfigApplyDefaults(t *testing.T) {
	t.Run("empty environment defaults to development", func(t *testing.T) {
		cfg := ServiceConfig{Name: "renderd"}
		cfg.ApplyDefaults()
		if cfg.Environment != "development" {
			t.Errorf("expected 'development', got %q", cfg.Environment)
		}
		if !cfg.Debug {
			t.Error("expected debug=true for development")
		}
	})

	t.Run("production keeps debug false", func(t *testing.T) {
		cfg := ServiceConfig{Name: "renderd", Environment: "production"}
		cfg.ApplyDefaults()
		if cfg.Debug {
			t.Error("expected debug=false for production")
		}
	})

	t.Run("service name propagates to logging", func(t *testing.T) {
		cfg := ServiceConfig{Name: "renderd"}
		cfg.ApplyDefaults()
		if cfg.Logging.ServiceName != "renderd" {
			t.Errorf("expected logging tagged with service name, got %q", cfg.Logging.ServiceName)
		}
	})
}

func TestServiceConfigValidate(t *testing.T) {
	valid := func(env string) ServiceConfig {
		cfg := ServiceConfig{Name: "renderd", Environment: env, Logging: logger.Config{}}
		cfg.Logging.ApplyDefaults()
		return cfg
	}

	tests := []struct {
		name    string
		cfg     ServiceConfig
		wantErr string
	}{
		{"valid development", valid("development"), ""},
		{"valid staging", valid("staging"), ""},
		{"valid production", valid("production"), ""},
		{"missing name", ServiceConfig{Environment: "production"}, "config.name is required"},
		{"invalid environment", ServiceConfig{Name: "renderd", Environment: "prod"}, "config.environment must be one of"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.cfg.Validate()
			if tc.wantErr == "" {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
				return
			}
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tc.wantErr) {
				t.Errorf("expected error containing %q, got %q", tc.wantErr, err.Error())
			}
		})
	}
}

func TestLoadConfigWithYAML(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "config.yml")

	yamlContent := `
name: renderd
environment: staging
comfy:
  base_url: http://localhost:8188
`
	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	var cfg serviceFixture
	if err := LoadConfig("renderd", &cfg, WithConfigFile(configPath)); err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if cfg.Name != "renderd" {
		t.Errorf("expected name 'renderd', got %q", cfg.Name)
	}
	if cfg.Environment != "staging" {
		t.Errorf("expected environment 'staging', got %q", cfg.Environment)
	}
	if cfg.Comfy.BaseURL != "http://localhost:8188" {
		t.Errorf("expected comfy base url, got %q", cfg.Comfy.BaseURL)
	}
}

func TestLoadConfigEnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "config.yml")
	yamlContent := `
name: renderd
comfy:
  base_url: http://localhost:8188
`
	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("COMFY_BASE_URL", "http://engine:8188")

	var cfg serviceFixture
	if err := LoadConfig("renderd", &cfg, WithConfigFile(configPath)); err != nil {
		t.Fatal(err)
	}
	if cfg.Comfy.BaseURL != "http://engine:8188" {
		t.Errorf("expected env override, got %q", cfg.Comfy.BaseURL)
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	var cfg serviceFixture
	// A missing config file leaves the struct zero-valued but is not an error.
	if err := LoadConfig("renderd", &cfg, WithConfigFile("/nonexistent/path.yml")); err != nil {
		t.Fatalf("expected LoadConfig to succeed with missing file, got %v", err)
	}
}

func TestResolverWithMockFS(t *testing.T) {
	fs := &mockFS{files: map[string]bool{
		"./cmd/renderd/config.yml": true,
		".env.renderd":             true,
	}}
	resolver := &Resolver{FileSystem: fs}
	files := resolver.ResolveFiles("renderd", LoaderConfig{})
	if files.ConfigFile != "./cmd/renderd/config.yml" {
		t.Errorf("expected service config under cmd, got %q", files.ConfigFile)
	}
	if files.EnvFile != ".env.renderd" {
		t.Errorf("expected service env file, got %q", files.EnvFile)
	}
}

func TestResolverExplicitPathsWin(t *testing.T) {
	fs := &mockFS{files: map[string]bool{"./config.yml": true}}
	resolver := &Resolver{FileSystem: fs}
	files := resolver.ResolveFiles("renderd", LoaderConfig{ConfigFile: "/etc/renderd.yml", EnvFile: "/etc/renderd.env"})
	if files.ConfigFile != "/etc/renderd.yml" || files.EnvFile != "/etc/renderd.env" {
		t.Errorf("expected explicit paths untouched, got %+v", files)
	}
}

type mockFS struct {
	files map[string]bool
}

func (m *mockFS) Exists(path string) bool  { return m.files[path] }
func (m *mockFS) LoadEnv(path string) error { return nil }

func TestLoaderOptions(t *testing.T) {
	var lc LoaderConfig
	WithFileSystem(&mockFS{})(&lc)
	WithConfigFile("/path/to/config.yml")(&lc)
	WithEnvFile("/path/to/.env")(&lc)

	if lc.FileSystem == nil {
		t.Error("expected FileSystem to be set")
	}
	if lc.ConfigFile != "/path/to/config.yml" {
		t.Errorf("expected config file path, got %q", lc.ConfigFile)
	}
	if lc.EnvFile != "/path/to/.env" {
		t.Errorf("expected env file path, got %q", lc.EnvFile)
	}
}
