// Package config handles application configuration.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.dravis.dev/flow/formatter"
)

const (
	appName        = "flow"
	configFileName = "config.json"
)

// Recording modes.
const (
	ModeHold   = "hold"
	ModeToggle = "toggle"
)

// Formatting levels.
const (
	FormattingBasic = "basic"
	FormattingRaw   = "raw"
)

// General holds the core dictation settings.
type General struct {
	Language string `json:"language"`
	Hotkey   string `json:"hotkey"`
	Mode     string `json:"mode"`
}

// Formatting selects the transcript cleanup level.
type Formatting struct {
	Level string `json:"level"`
}

// Dictionary holds glossary words and word replacement rules.
type Dictionary struct {
	Words        []string                `json:"words"`
	Replacements []formatter.Replacement `json:"replacements"`
}

// PromptMode configures the optional prompt restructuring step.
type PromptMode struct {
	Enabled  bool   `json:"enabled"`
	Provider string `json:"provider"`
	Model    string `json:"model"`
	APIKey   string `json:"api_key"`
}

// Speech holds the transcription API credentials.
type Speech struct {
	APIKey  string `json:"api_key"`
	BaseURL string `json:"base_url,omitempty"`
	Model   string `json:"model"`
}

// Config represents the application configuration.
type Config struct {
	General    General    `json:"general"`
	Formatting Formatting `json:"formatting"`
	Dictionary Dictionary `json:"dictionary"`
	PromptMode PromptMode `json:"prompt_mode"`
	Speech     Speech     `json:"speech"`

	// DefaultLanguages maps a detected source language to its preferred
	// target for language previews.
	DefaultLanguages map[string]string `json:"default_languages,omitempty"`

	path string
}

// Load loads configuration from the default config file.
// Returns default config if the file doesn't exist.
func Load() (*Config, error) {
	path, err := configPath()
	if err != nil {
		return nil, fmt.Errorf("get config path: %w", err)
	}
	return LoadFrom(path)
}

// LoadFrom loads configuration from path, creating defaults if the file
// doesn't exist. The path is remembered for subsequent Save calls.
func LoadFrom(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			cfg := defaultConfig()
			cfg.path = path
			if err := cfg.Save(); err != nil {
				return nil, fmt.Errorf("write default config: %w", err)
			}
			return cfg, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	cfg.path = path
	cfg.sanitize()

	return &cfg, nil
}

// Save persists the configuration to disk.
func (c *Config) Save() error {
	path := c.path
	if path == "" {
		p, err := configPath()
		if err != nil {
			return fmt.Errorf("get config path: %w", err)
		}
		path = p
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}

	return nil
}

// SetRecordingMode switches between hold and toggle capture.
func (c *Config) SetRecordingMode(mode string) error {
	normalized, ok := NormalizeRecordingMode(mode)
	if !ok {
		return fmt.Errorf("mode must be %q or %q", ModeHold, ModeToggle)
	}
	c.General.Mode = normalized
	return c.Save()
}

// SetDictionaryWords replaces the glossary word list.
func (c *Config) SetDictionaryWords(words []string) error {
	c.Dictionary.Words = words
	return c.Save()
}

// SetDictionaryReplacements replaces the word replacement rules.
func (c *Config) SetDictionaryReplacements(replacements []formatter.Replacement) error {
	c.Dictionary.Replacements = replacements
	return c.Save()
}

// SetPromptMode updates the prompt restructuring settings. An empty model
// falls back to the provider's default.
func (c *Config) SetPromptMode(enabled bool, provider, model, apiKey string) error {
	normalized := NormalizePromptProvider(provider)
	trimmedModel := strings.TrimSpace(model)
	if trimmedModel == "" {
		trimmedModel = DefaultPromptModel(normalized)
	}

	c.PromptMode.Enabled = enabled
	c.PromptMode.Provider = normalized
	c.PromptMode.Model = trimmedModel
	c.PromptMode.APIKey = strings.TrimSpace(apiKey)
	return c.Save()
}

// SetDefaultLanguage sets the default target language for a source.
func (c *Config) SetDefaultLanguage(src, dst string) error {
	if c.DefaultLanguages == nil {
		c.DefaultLanguages = make(map[string]string)
	}
	c.DefaultLanguages[src] = dst
	return c.Save()
}

// NormalizeRecordingMode reports the canonical spelling of mode, or false if
// the mode is unknown.
func NormalizeRecordingMode(mode string) (string, bool) {
	normalized := strings.ToLower(strings.TrimSpace(mode))
	switch normalized {
	case ModeHold, ModeToggle:
		return normalized, true
	}
	return "", false
}

// SanitizeRecordingMode returns the canonical mode, falling back to hold.
func SanitizeRecordingMode(mode string) string {
	if normalized, ok := NormalizeRecordingMode(mode); ok {
		return normalized
	}
	return ModeHold
}

// NormalizePromptProvider maps a provider name to its canonical spelling,
// falling back to anthropic for unknown values.
func NormalizePromptProvider(provider string) string {
	normalized := strings.ToLower(strings.TrimSpace(provider))
	switch normalized {
	case "anthropic", "openai", "openrouter":
		return normalized
	}
	return "anthropic"
}

// DefaultPromptModel returns the default model for a prompt provider.
func DefaultPromptModel(provider string) string {
	switch provider {
	case "openai":
		return "gpt-4o-mini"
	case "openrouter":
		return "openai/gpt-4o-mini"
	default:
		return "claude-3-5-haiku-latest"
	}
}

func (c *Config) sanitize() {
	c.General.Mode = SanitizeRecordingMode(c.General.Mode)
	if c.General.Language == "" {
		c.General.Language = "en"
	}
	if c.General.Hotkey == "" {
		c.General.Hotkey = "ctrl+shift+space"
	}
	switch c.Formatting.Level {
	case FormattingBasic, FormattingRaw:
	default:
		c.Formatting.Level = FormattingBasic
	}
	if c.Speech.Model == "" {
		c.Speech.Model = "whisper-1"
	}
}

func configPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("get user config dir: %w", err)
	}
	return filepath.Join(dir, appName, configFileName), nil
}

func defaultConfig() *Config {
	return &Config{
		General: General{
			Language: "en",
			Hotkey:   "ctrl+shift+space",
			Mode:     ModeHold,
		},
		Formatting: Formatting{Level: FormattingBasic},
		Speech:     Speech{Model: "whisper-1"},
	}
}
