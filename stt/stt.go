// Package stt provides the speech-to-text provider interface and
// implementations.
package stt

import "context"

// TranscribeResult represents the result of a transcription.
type TranscribeResult struct {
	Text     string `json:"text"`     // Transcribed text
	Language string `json:"language"` // Detected language code
}

// Provider defines the interface for speech-to-text providers.
type Provider interface {
	// Name returns the provider identifier.
	Name() string

	// DisplayName returns the human-readable provider name.
	DisplayName() string

	// IsLocal returns true if the provider runs locally without API calls.
	IsLocal() bool

	// IsReady returns true if the provider is ready to use.
	IsReady() bool

	// Transcribe converts audio samples to text.
	// audio: PCM float32 samples at 16000 Hz sample rate
	// language: source language code (empty for auto-detect)
	// glossary: bias words fed to the model as a conditioning prompt
	Transcribe(ctx context.Context, audio []float32, language string, glossary []string) (*TranscribeResult, error)

	// Close releases resources held by the provider.
	Close() error
}

// Registry holds registered STT providers.
type Registry struct {
	providers map[string]Provider
}

// NewRegistry creates a new provider registry.
func NewRegistry() *Registry {
	return &Registry{
		providers: make(map[string]Provider),
	}
}

// Register adds a provider to the registry.
func (r *Registry) Register(p Provider) {
	r.providers[p.Name()] = p
}

// Get returns a provider by name.
func (r *Registry) Get(name string) Provider {
	return r.providers[name]
}

// List returns all registered providers.
func (r *Registry) List() []Provider {
	result := make([]Provider, 0, len(r.providers))
	for _, p := range r.providers {
		result = append(result, p)
	}
	return result
}

// Close releases all providers.
func (r *Registry) Close() error {
	for _, p := range r.providers {
		if err := p.Close(); err != nil {
			return err
		}
	}
	return nil
}
