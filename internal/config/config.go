// Package config loads profilecheck settings from defaults, the user and
// project config files, and PROFILECHECK_* environment variables.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

const envPrefix = "PROFILECHECK_"

// Configuration represents the profilecheck CLI configuration
type Configuration struct {
	LooseTypeMatch   bool   `koanf:"loose_type_match" json:"loose_type_match" yaml:"loose_type_match"`
	OutputFormat     string `koanf:"output_format" json:"output_format" yaml:"output_format" validate:"oneof=text json yaml"`
	Color            string `koanf:"color" json:"color" yaml:"color" validate:"oneof=auto always never"`
	LogLevel         string `koanf:"log_level" json:"log_level" yaml:"log_level" validate:"oneof=debug info warn error"`
	FailOnFindings   bool   `koanf:"fail_on_findings" json:"fail_on_findings" yaml:"fail_on_findings"`
	MaxDocumentBytes int64  `koanf:"max_document_bytes" json:"max_document_bytes" yaml:"max_document_bytes" validate:"min=1"`
	WatchDebounceMs  int    `koanf:"watch_debounce_ms" json:"watch_debounce_ms" yaml:"watch_debounce_ms" validate:"min=0,max=60000"`
	ShowProgress     bool   `koanf:"show_progress" json:"show_progress" yaml:"show_progress"`
}

// Load loads configuration from the user config file, localConfigPath and
// the environment.
// Priority: Environment variables > Local config > User config > Defaults
func Load(localConfigPath string) (*Configuration, error) {
	userPath, err := UserConfigPath()
	if err != nil {
		userPath = ""
	}
	return LoadFrom(userPath, localConfigPath)
}

// LoadFrom is Load with an explicit user config path. Either path may be
// empty or name a missing file, in which case it is skipped.
func LoadFrom(userConfigPath, localConfigPath string) (*Configuration, error) {
	k := koanf.New(".")

	for key, value := range GetDefaults() {
		k.Set(key, value)
	}

	if err := loadFile(k, userConfigPath); err != nil {
		return nil, fmt.Errorf("failed to load user config: %w", err)
	}
	if err := loadFile(k, localConfigPath); err != nil {
		return nil, fmt.Errorf("failed to load local config: %w", err)
	}

	// Override with environment variables (highest priority)
	if err := k.Load(env.Provider(envPrefix, ".", envTransform), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment: %w", err)
	}

	var cfg Configuration
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return &cfg, nil
}

func loadFile(k *koanf.Koanf, path string) error {
	if path == "" {
		return nil
	}
	if _, err := os.Stat(path); err != nil {
		return nil
	}
	if err := k.Load(file.Provider(path), json.Parser()); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	return nil
}

// envTransform converts environment variable names to config keys
// Example: PROFILECHECK_LOG_LEVEL -> log_level
func envTransform(s string) string {
	return strings.ToLower(strings.TrimPrefix(s, envPrefix))
}
