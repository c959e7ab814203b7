// Package prompt restructures raw transcripts into clean first-person
// prompts using a cloud LLM.
package prompt

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"go.dravis.dev/flow/cache"
	"go.dravis.dev/flow/internal/types"
	"go.dravis.dev/flow/llm"
)

const systemPrompt = "You are a prompt structurer. Take my raw speech transcript and restructure it into a clean, first-person prompt ready to paste into an LLM. Write it as ME talking to the AI (use 'I want', 'I need', 'my project', etc — not 'the speaker' or 'the user'). Create relevant sections based on what I described (e.g. Context, Goal, Expected Output, Constraints, Tech Stack — adapt to the content, don't use the same sections every time). Do NOT add information I didn't mention. Output ONLY the structured prompt with ## markdown headers. Be concise but preserve all important details."

// ErrEmptyInput is returned when there is no transcript to structure.
var ErrEmptyInput = errors.New("empty transcript")

// Settings selects the provider used for a restructure call.
type Settings struct {
	Provider string
	Model    string
	APIKey   string
}

// Structurer turns a transcript into a sectioned prompt via an LLM,
// caching results keyed by provider, model and input text.
type Structurer struct {
	settings  func() Settings
	cache     *cache.Cache
	logger    *slog.Logger
	completer func(provider, apiKey, model string) llm.Completer
}

// New creates a Structurer. The cache may be nil, in which case every call
// hits the provider. settings is read on each call so config changes take
// effect without a restart.
func New(settings func() Settings, c *cache.Cache, logger *slog.Logger) *Structurer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Structurer{
		settings: settings,
		cache:    c,
		logger:   logger,
		completer: func(provider, apiKey, model string) llm.Completer {
			return llm.NewCompleter(provider, apiKey, "", model, llm.Options{
				MaxTokens:   types.DefaultMaxTokens,
				Temperature: types.DefaultTemperature,
			})
		},
	}
}

// Restructure sends text to the configured provider and returns the
// structured prompt. Callers are expected to fall back to the plain
// transcript on any error.
func (s *Structurer) Restructure(ctx context.Context, text string) (string, error) {
	transcript := strings.TrimSpace(text)
	if transcript == "" {
		return "", ErrEmptyInput
	}

	cfg := s.settings()
	provider := strings.ToLower(strings.TrimSpace(cfg.Provider))
	switch provider {
	case "anthropic", "openai", "openrouter":
	default:
		return "", fmt.Errorf("unsupported provider: %q", cfg.Provider)
	}

	key := cache.GenerateKey(provider, cfg.Model, transcript)
	if s.cache != nil {
		if entry, found := s.cache.Get(key); found {
			s.logger.Debug("prompt cache hit", "provider", provider, "model", cfg.Model)
			return entry.Text, nil
		}
	}

	completer := s.completer(provider, cfg.APIKey, cfg.Model)
	result, usage, err := completer.Complete(ctx, []llm.Message{
		{Role: "system", Content: systemPrompt},
		{Role: "user", Content: transcript},
	})
	if err != nil {
		return "", fmt.Errorf("structure prompt: %w", err)
	}

	result = strings.TrimSpace(result)
	if result == "" {
		return "", errors.New("provider returned empty result")
	}

	if s.cache != nil {
		entry := &cache.Entry{
			Text: result,
			Usage: cache.Usage{
				PromptTokens:     usage.PromptTokens,
				CompletionTokens: usage.CompletionTokens,
				TotalTokens:      usage.TotalTokens,
			},
			CreatedAt: time.Now(),
		}
		// Best effort, a failed write just means a future API call.
		_ = s.cache.Set(key, entry, cache.DefaultTTL)
	}

	return result, nil
}
