// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

const (
	// DefaultModel is the Gemini model used when none is configured.
	DefaultModel = "gemini-2.5-flash-preview-04-17"

	// APIKeyEnv is the environment variable holding the API credential.
	APIKeyEnv = "GEMINI_API_KEY"

	dirName  = ".gemini-chat"
	fileName = "config.toml"
)

// =============================================================================
// CONFIG STRUCTURES
// =============================================================================

// Config represents the complete application configuration.
type Config struct {
	Gemini GeminiConfig `toml:"gemini"`
	UI     UIConfig     `toml:"ui"`
	Log    LogConfig    `toml:"log"`

	// envErrs holds environment values that could not be parsed. Validate
	// reports them.
	envErrs ValidateErrors
}

// GeminiConfig contains the endpoint settings.
type GeminiConfig struct {
	// APIKey is the API credential. Normally supplied through GEMINI_API_KEY.
	APIKey string `toml:"api_key"`
	// Model is the model identifier.
	Model string `toml:"model"`
	// RequestTimeoutSecs bounds a single request.
	RequestTimeoutSecs int `toml:"request_timeout_secs"`
	// SystemPrompt is an optional system instruction.
	SystemPrompt string `toml:"system_prompt"`
}

// UIConfig contains UI configuration.
type UIConfig struct {
	// Markdown renders assistant replies as Markdown.
	Markdown bool `toml:"markdown"`
	// SeparatorWidth is the width of the line drawn after each entry.
	SeparatorWidth int `toml:"separator_width"`
	// AltScreen runs the TUI in the alternate screen buffer.
	AltScreen bool `toml:"alt_screen"`
	// Mouse enables mouse wheel scrolling.
	Mouse bool `toml:"mouse"`
}

// LogConfig contains logging configuration.
type LogConfig struct {
	// Level is one of debug, info, warn, error.
	Level string `toml:"level"`
	// File is the log file path. Empty disables logging unless --debug is set.
	File string `toml:"file"`
	// JSON writes JSON records instead of key=value text.
	JSON bool `toml:"json"`
}

// RequestTimeout returns the request timeout as a duration.
func (g GeminiConfig) RequestTimeout() time.Duration {
	return time.Duration(g.RequestTimeoutSecs) * time.Second
}

// HasCredential reports whether a non-blank API key is configured.
func (c *Config) HasCredential() bool {
	return strings.TrimSpace(c.Gemini.APIKey) != ""
}

// =============================================================================
// DEFAULT CONFIGURATION
// =============================================================================

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Gemini: GeminiConfig{
			Model:              DefaultModel,
			RequestTimeoutSecs: 120,
		},
		UI: UIConfig{
			Markdown:       true,
			SeparatorWidth: 40,
			AltScreen:      true,
			Mouse:          true,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// =============================================================================
// CONFIG PATH HELPERS
// =============================================================================

// Dir returns the configuration directory path.
func Dir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, dirName), nil
}

// Path returns the path to the TOML config file.
func Path() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, fileName), nil
}

// =============================================================================
// LOAD FUNCTIONS
// =============================================================================

// Load loads configuration from the default config file if it exists.
// Environment overrides are applied last.
func Load() (*Config, error) {
	path, err := Path()
	if err != nil {
		// No home directory: defaults and environment only.
		return finish(Default())
	}
	if _, statErr := os.Stat(path); statErr != nil {
		return finish(Default())
	}
	return LoadFromPath(path)
}

// LoadFromPath loads configuration from a specific TOML file.
func LoadFromPath(path string) (*Config, error) {
	cfg := Default()
	md, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to decode config %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, fmt.Errorf("unknown keys in config %s: %s", path, strings.Join(keys, ", "))
	}
	return finish(cfg)
}

func finish(cfg *Config) (*Config, error) {
	cfg.ApplyEnvOverrides()
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// =============================================================================
// VALIDATION
// =============================================================================

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateErrors is a collection of validation errors.
type ValidateErrors []ValidationError

func (e ValidateErrors) Error() string {
	msgs := make([]string, len(e))
	for i, err := range e {
		msgs[i] = err.Error()
	}
	return strings.Join(msgs, "; ")
}

var validLevels = map[string]bool{"debug": true, "info": true, "warn": true, "error": true}

// Validate validates the configuration and returns any errors.
// A missing API key is not a validation error; it is reported at startup.
func (c *Config) Validate() error {
	errs := append(ValidateErrors(nil), c.envErrs...)

	if strings.TrimSpace(c.Gemini.Model) == "" {
		errs = append(errs, ValidationError{"gemini.model", "must not be empty"})
	} else if strings.ContainsAny(c.Gemini.Model, " \t\n") {
		errs = append(errs, ValidationError{"gemini.model", "must not contain whitespace"})
	}
	if c.Gemini.RequestTimeoutSecs < 1 || c.Gemini.RequestTimeoutSecs > 3600 {
		errs = append(errs, ValidationError{"gemini.request_timeout_secs", "must be between 1 and 3600"})
	}
	if c.UI.SeparatorWidth < 0 || c.UI.SeparatorWidth > 400 {
		errs = append(errs, ValidationError{"ui.separator_width", "must be between 0 and 400"})
	}
	if !validLevels[strings.ToLower(c.Log.Level)] {
		errs = append(errs, ValidationError{"log.level", fmt.Sprintf("unknown level %q", c.Log.Level)})
	}

	if len(errs) == 0 {
		return nil
	}
	return errs
}

// SetDefaults fills zero-value fields with defaults.
func (c *Config) SetDefaults() {
	def := Default()
	if c.Gemini.Model == "" {
		c.Gemini.Model = def.Gemini.Model
	}
	if c.Gemini.RequestTimeoutSecs == 0 {
		c.Gemini.RequestTimeoutSecs = def.Gemini.RequestTimeoutSecs
	}
	if c.Log.Level == "" {
		c.Log.Level = def.Log.Level
	}
	c.Gemini.APIKey = strings.TrimSpace(c.Gemini.APIKey)
}

// =============================================================================
// ENVIRONMENT OVERRIDES
// =============================================================================

// ApplyEnvOverrides applies environment variable overrides to the config.
//
// Supported environment variables:
//   - GEMINI_API_KEY: overrides gemini.api_key
//   - GEMINI_CHAT_MODEL: overrides gemini.model
//   - GEMINI_CHAT_TIMEOUT: overrides gemini.request_timeout_secs; a value
//     that is not a number fails Validate
//   - GEMINI_CHAT_NO_MARKDOWN: "1" or "true" disables Markdown rendering
//   - GEMINI_CHAT_LOG_LEVEL: overrides log.level
//   - GEMINI_CHAT_LOG_FILE: overrides log.file
func (c *Config) ApplyEnvOverrides() {
	if key := os.Getenv(APIKeyEnv); key != "" {
		c.Gemini.APIKey = key
	}

	if model := os.Getenv("GEMINI_CHAT_MODEL"); model != "" {
		c.Gemini.Model = model
	}

	if timeout := os.Getenv("GEMINI_CHAT_TIMEOUT"); timeout != "" {
		if secs, err := strconv.Atoi(timeout); err == nil {
			c.Gemini.RequestTimeoutSecs = secs
		} else {
			c.envErrs = append(c.envErrs, ValidationError{"GEMINI_CHAT_TIMEOUT", fmt.Sprintf("not a whole number of seconds: %q", timeout)})
		}
	}

	if noMD := os.Getenv("GEMINI_CHAT_NO_MARKDOWN"); noMD != "" {
		if parseBool(noMD) {
			c.UI.Markdown = false
		}
	}

	if level := os.Getenv("GEMINI_CHAT_LOG_LEVEL"); level != "" {
		c.Log.Level = level
	}

	if file := os.Getenv("GEMINI_CHAT_LOG_FILE"); file != "" {
		c.Log.File = file
	}
}

func parseBool(s string) bool {
	return s == "1" || strings.EqualFold(s, "true")
}

// Redacted returns a copy of the config safe to log.
func (c *Config) Redacted() Config {
	out := *c
	if out.Gemini.APIKey != "" {
		out.Gemini.APIKey = "[REDACTED]"
	}
	return out
}
