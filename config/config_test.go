package config

import (
	"os"
	"path/filepath"
	"testing"

	"go.dravis.dev/flow/formatter"
)

func TestLoadFromCreatesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "flow", "config.json")

	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom: %v", err)
	}
	if cfg.General.Mode != ModeHold {
		t.Errorf("default mode = %q, want %q", cfg.General.Mode, ModeHold)
	}
	if cfg.General.Hotkey != "ctrl+shift+space" {
		t.Errorf("default hotkey = %q", cfg.General.Hotkey)
	}
	if cfg.Formatting.Level != FormattingBasic {
		t.Errorf("default formatting level = %q", cfg.Formatting.Level)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("default config not written: %v", err)
	}
}

func TestLoadFromRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")

	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom: %v", err)
	}
	if err := cfg.SetDictionaryWords([]string{"kubernetes", "grpc"}); err != nil {
		t.Fatalf("SetDictionaryWords: %v", err)
	}
	if err := cfg.SetDictionaryReplacements([]formatter.Replacement{{From: "kube", To: "Kubernetes"}}); err != nil {
		t.Fatalf("SetDictionaryReplacements: %v", err)
	}
	if err := cfg.SetPromptMode(true, "OpenAI", "", "  sk-key  "); err != nil {
		t.Fatalf("SetPromptMode: %v", err)
	}

	reloaded, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if len(reloaded.Dictionary.Words) != 2 || reloaded.Dictionary.Words[0] != "kubernetes" {
		t.Errorf("words = %v", reloaded.Dictionary.Words)
	}
	if len(reloaded.Dictionary.Replacements) != 1 || reloaded.Dictionary.Replacements[0].To != "Kubernetes" {
		t.Errorf("replacements = %v", reloaded.Dictionary.Replacements)
	}
	if !reloaded.PromptMode.Enabled {
		t.Error("prompt mode should be enabled")
	}
	if reloaded.PromptMode.Provider != "openai" {
		t.Errorf("provider = %q, want openai", reloaded.PromptMode.Provider)
	}
	if reloaded.PromptMode.Model != "gpt-4o-mini" {
		t.Errorf("model = %q, want provider default", reloaded.PromptMode.Model)
	}
	if reloaded.PromptMode.APIKey != "sk-key" {
		t.Errorf("api key = %q, want trimmed", reloaded.PromptMode.APIKey)
	}
}

func TestSetRecordingMode(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom: %v", err)
	}

	if err := cfg.SetRecordingMode(" Toggle "); err != nil {
		t.Fatalf("SetRecordingMode: %v", err)
	}
	if cfg.General.Mode != ModeToggle {
		t.Errorf("mode = %q, want %q", cfg.General.Mode, ModeToggle)
	}

	if err := cfg.SetRecordingMode("push-to-talk"); err == nil {
		t.Error("unknown mode should error")
	}
	if cfg.General.Mode != ModeToggle {
		t.Errorf("failed set must not change mode, got %q", cfg.General.Mode)
	}
}

func TestNormalizeRecordingMode(t *testing.T) {
	tests := []struct {
		input string
		want  string
		ok    bool
	}{
		{"hold", ModeHold, true},
		{"TOGGLE", ModeToggle, true},
		{"  hold  ", ModeHold, true},
		{"tap", "", false},
		{"", "", false},
	}
	for _, tt := range tests {
		got, ok := NormalizeRecordingMode(tt.input)
		if got != tt.want || ok != tt.ok {
			t.Errorf("NormalizeRecordingMode(%q) = (%q, %v), want (%q, %v)", tt.input, got, ok, tt.want, tt.ok)
		}
	}
}

func TestLoadSanitizesUnknownValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	raw := `{"general":{"language":"","hotkey":"","mode":"banana"},"formatting":{"level":"fancy"}}`
	if err := os.WriteFile(path, []byte(raw), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom: %v", err)
	}
	if cfg.General.Mode != ModeHold {
		t.Errorf("mode = %q, want sanitized %q", cfg.General.Mode, ModeHold)
	}
	if cfg.Formatting.Level != FormattingBasic {
		t.Errorf("level = %q, want sanitized %q", cfg.Formatting.Level, FormattingBasic)
	}
	if cfg.General.Language != "en" || cfg.General.Hotkey == "" {
		t.Errorf("general not defaulted: %+v", cfg.General)
	}
}

func TestNormalizePromptProvider(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"anthropic", "anthropic"},
		{" OpenAI ", "openai"},
		{"openrouter", "openrouter"},
		{"gemini", "anthropic"},
		{"", "anthropic"},
	}
	for _, tt := range tests {
		if got := NormalizePromptProvider(tt.input); got != tt.want {
			t.Errorf("NormalizePromptProvider(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}
