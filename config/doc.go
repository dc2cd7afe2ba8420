// Package config provides configuration loading and validation.
//
// It uses Viper to load configuration from YAML files and environment
// variables, with godotenv support for .env files. Config and env files
// are resolved from standard locations relative to the working directory,
// and environment variables override file values through automatic
// nested-key binding (e.g. COMFY_BASE_URL binds to comfy.base_url).
//
// # Usage
//
//	var cfg MyConfig
//	err := config.LoadConfig("renderd", &cfg)
//	cfg.ApplyDefaults()
//	err = cfg.Validate()
package config
