// Package llm provides HTTP clients for LLM API calls.
package llm

import (
	"context"
	"net/http"

	"go.dravis.dev/flow/internal/types"
)

// Message represents a chat message.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Options configures LLM completion behavior.
type Options struct {
	MaxTokens   int
	Temperature float64
}

// Completer performs chat completions.
type Completer interface {
	Complete(ctx context.Context, messages []Message) (string, types.Usage, error)
}

// completerConfig holds all parameters needed by completers.
type completerConfig struct {
	http        *http.Client
	apiKey      string
	baseURL     string
	model       string
	maxTokens   int
	temperature float64
}

// NewCompleter creates a Completer for the given provider type. Supported
// types are "anthropic", "openai" and "openrouter"; anything else falls back
// to the OpenAI wire format with the given base URL.
func NewCompleter(apiType, apiKey, baseURL, model string, opts Options) Completer {
	cfg := completerConfig{
		http:        &http.Client{},
		apiKey:      apiKey,
		baseURL:     baseURL,
		model:       model,
		maxTokens:   opts.MaxTokens,
		temperature: opts.Temperature,
	}

	switch apiType {
	case "anthropic":
		return &claudeCompleter{cfg: cfg}
	case "openrouter":
		if cfg.baseURL == "" {
			cfg.baseURL = openrouterBaseURL
		}
		return &openaiCompleter{cfg: cfg}
	default:
		return &openaiCompleter{cfg: cfg}
	}
}
