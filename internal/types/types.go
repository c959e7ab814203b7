// Package types provides shared type definitions for the application.
package types

// DefaultMaxTokens is the default max tokens if not specified.
const DefaultMaxTokens = 1024

// DefaultTemperature is the default temperature if not specified.
const DefaultTemperature = 0.3

// Usage represents token usage statistics from LLM API calls.
type Usage struct {
	PromptTokens     int  `json:"promptTokens"`
	CompletionTokens int  `json:"completionTokens"`
	TotalTokens      int  `json:"totalTokens"`
	CacheHit         bool `json:"cacheHit"`
}

// StatusPayload is the payload of a session status event.
type StatusPayload struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

// DetectResult represents the result of language detection.
type DetectResult struct {
	Code          string `json:"code"`
	Name          string `json:"name"`
	DefaultTarget string `json:"defaultTarget"`
}

// SessionResult is the outcome of a completed dictation session.
type SessionResult struct {
	Text     string `json:"text"`
	Language string `json:"language,omitempty"` // detected language code, best effort
	Chars    int    `json:"chars"`
}

// TranscriberInfo describes a registered transcription provider.
type TranscriberInfo struct {
	Name        string `json:"name"`        // Provider identifier
	DisplayName string `json:"displayName"` // Human-readable name
	IsLocal     bool   `json:"isLocal"`     // Whether it runs locally
	IsReady     bool   `json:"isReady"`     // Whether the provider is ready to use
}
