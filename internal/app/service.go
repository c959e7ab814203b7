// Package app wires the dictation service: config, capture, transcription,
// formatting, prompt restructuring and the global hotkey listener.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"go.dravis.dev/flow/audiocapture"
	"go.dravis.dev/flow/cache"
	"go.dravis.dev/flow/config"
	"go.dravis.dev/flow/formatter"
	"go.dravis.dev/flow/hotkey"
	"go.dravis.dev/flow/internal/types"
	"go.dravis.dev/flow/langdetect"
	"go.dravis.dev/flow/prompt"
	"go.dravis.dev/flow/session"
	"go.dravis.dev/flow/stt"
)

const cacheDirName = "flow"

// Options configures a Service.
type Options struct {
	// ConfigPath overrides the default config location. Empty uses
	// os.UserConfigDir.
	ConfigPath string

	// Injector delivers final session text. Required.
	Injector session.Injector

	// Emit receives named events (status, audio_level, result, ...).
	// Optional.
	Emit func(event string, data any)

	Logger *slog.Logger
}

// Service orchestrates the dictation components. Business logic lives in the
// sub-packages; this struct only wires them together.
type Service struct {
	mu  sync.Mutex
	cfg *config.Config

	cache      *cache.Cache
	recorder   *audiocapture.Recorder
	registry   *stt.Registry
	controller *session.Controller
	listener   *hotkey.Listener

	emit    func(string, any)
	logger  *slog.Logger
	version string
}

// New builds a Service from opts. Call Start to begin listening for the
// hotkey and Shutdown to release everything.
func New(version string, opts Options) (*Service, error) {
	if opts.Injector == nil {
		return nil, errors.New("app: injector is required")
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	emit := opts.Emit
	if emit == nil {
		emit = func(string, any) {}
	}

	s := &Service{
		emit:    emit,
		logger:  logger,
		version: version,
	}

	var (
		cfg *config.Config
		err error
	)
	if opts.ConfigPath != "" {
		cfg, err = config.LoadFrom(opts.ConfigPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	s.cfg = cfg

	s.setupCache()

	recorder, err := audiocapture.NewRecorder(logger)
	if err != nil {
		return nil, fmt.Errorf("init recorder: %w", err)
	}
	s.recorder = recorder

	s.registry = stt.NewRegistry()
	s.registry.Register(stt.NewWhisperAPI(stt.WhisperAPIConfig{
		APIKey:  cfg.Speech.APIKey,
		BaseURL: cfg.Speech.BaseURL,
		Model:   cfg.Speech.Model,
	}))

	structurer := prompt.New(s.promptSettings, s.cache, logger)

	controller, err := session.New(session.Config{
		Recorder:    recorder,
		Transcriber: registryTranscriber{registry: s.registry},
		Injector: resultEmitter{
			next: opts.Injector,
			emit: emit,
		},
		Structurer: structurer,
		Settings:   s.sessionSettings,
		Emit:       emit,
		Logger:     logger,
	})
	if err != nil {
		return nil, err
	}
	s.controller = controller

	combo, err := hotkey.ParseCombo(cfg.General.Hotkey)
	if err != nil {
		return nil, fmt.Errorf("parse hotkey %q: %w", cfg.General.Hotkey, err)
	}
	s.listener = hotkey.NewListener(combo, controller.HandleGesture, logger)

	return s, nil
}

// Start installs the global hotkey hook.
func (s *Service) Start() error {
	if err := s.listener.Start(); err != nil {
		return fmt.Errorf("start hotkey listener: %w", err)
	}
	s.logger.Info("listening", "hotkey", s.cfg.General.Hotkey, "mode", s.cfg.General.Mode)
	return nil
}

// Shutdown releases all resources.
func (s *Service) Shutdown() {
	if s.listener != nil {
		s.listener.Stop()
	}
	if s.controller != nil {
		s.controller.Close()
	}
	if s.recorder != nil {
		if err := s.recorder.Close(); err != nil {
			s.logger.Error("close recorder", "error", err)
		}
	}
	if s.registry != nil {
		if err := s.registry.Close(); err != nil {
			s.logger.Error("close stt providers", "error", err)
		}
	}
	if s.cache != nil {
		if err := s.cache.Close(); err != nil {
			s.logger.Error("close cache", "error", err)
		}
	}
}

// GetVersion returns the application version.
func (s *Service) GetVersion() string {
	return s.version
}

func (s *Service) setupCache() {
	configDir, err := os.UserConfigDir()
	if err != nil {
		s.logger.Error("get config dir for cache", "error", err)
		return
	}

	cachePath := filepath.Join(configDir, cacheDirName, "cache")
	c, err := cache.New(cachePath)
	if err != nil {
		s.logger.Error("init cache", "error", err)
		return
	}
	s.cache = c
	s.logger.Info("cache initialized", "path", cachePath)
}

// sessionSettings snapshots the dictation settings for one stop pipeline.
func (s *Service) sessionSettings() session.Settings {
	s.mu.Lock()
	defer s.mu.Unlock()
	return session.Settings{
		Language:        s.cfg.General.Language,
		FormattingLevel: s.cfg.Formatting.Level,
		DictionaryWords: s.cfg.Dictionary.Words,
		Replacements:    s.cfg.Dictionary.Replacements,
		PromptEnabled:   s.cfg.PromptMode.Enabled && s.cfg.PromptMode.APIKey != "",
	}
}

func (s *Service) promptSettings() prompt.Settings {
	s.mu.Lock()
	defer s.mu.Unlock()
	return prompt.Settings{
		Provider: s.cfg.PromptMode.Provider,
		Model:    s.cfg.PromptMode.Model,
		APIKey:   s.cfg.PromptMode.APIKey,
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// Session control
// ─────────────────────────────────────────────────────────────────────────────

// StartSession begins a recording session.
func (s *Service) StartSession() error {
	return s.controller.Start()
}

// StopSession ends the active session and returns the final text.
func (s *Service) StopSession(ctx context.Context) (string, error) {
	return s.controller.Stop(ctx)
}

// CancelSession discards the active recording.
func (s *Service) CancelSession() error {
	return s.controller.Cancel()
}

// Status returns the current session status string.
func (s *Service) Status() string {
	return s.controller.Status().String()
}

// HandleGesture feeds a raw hotkey press or release into the session
// controller, for callers that bypass the global listener.
func (s *Service) HandleGesture(pressed bool) {
	s.controller.HandleGesture(pressed)
}

// RefreshDevice re-resolves the default capture device.
func (s *Service) RefreshDevice() error {
	return s.recorder.RefreshDevice()
}

// Transcribers returns metadata for all registered transcription providers.
func (s *Service) Transcribers() []types.TranscriberInfo {
	providers := s.registry.List()
	infos := make([]types.TranscriberInfo, 0, len(providers))
	for _, p := range providers {
		infos = append(infos, types.TranscriberInfo{
			Name:        p.Name(),
			DisplayName: p.DisplayName(),
			IsLocal:     p.IsLocal(),
			IsReady:     p.IsReady(),
		})
	}
	return infos
}

// ─────────────────────────────────────────────────────────────────────────────
// Configuration
// ─────────────────────────────────────────────────────────────────────────────

// GetConfig returns a snapshot of the current configuration.
func (s *Service) GetConfig() config.Config {
	s.mu.Lock()
	defer s.mu.Unlock()
	return *s.cfg
}

// SetRecordingMode switches between hold and toggle capture. The
// held-shortcut latch is cleared so a key held across the change is treated
// as a fresh gesture.
func (s *Service) SetRecordingMode(mode string) error {
	s.mu.Lock()
	err := s.cfg.SetRecordingMode(mode)
	s.mu.Unlock()
	if err != nil {
		return err
	}
	s.controller.ReleaseShortcut()
	return nil
}

// SetDictionaryWords replaces the glossary word list.
func (s *Service) SetDictionaryWords(words []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cfg.SetDictionaryWords(words)
}

// SetDictionaryReplacements replaces the word replacement rules.
func (s *Service) SetDictionaryReplacements(replacements []formatter.Replacement) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cfg.SetDictionaryReplacements(replacements)
}

// SetPromptMode updates the prompt restructuring settings.
func (s *Service) SetPromptMode(enabled bool, provider, model, apiKey string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cfg.SetPromptMode(enabled, provider, model, apiKey)
}

// SetDefaultLanguage sets the default target language for a source.
func (s *Service) SetDefaultLanguage(src, dst string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cfg.SetDefaultLanguage(src, dst)
}

// DetectLanguage detects the language of the given text.
func (s *Service) DetectLanguage(text string) types.DetectResult {
	code, name := langdetect.Detect(text)

	s.mu.Lock()
	target := "en"
	if code != "auto" && s.cfg.DefaultLanguages != nil {
		if t, ok := s.cfg.DefaultLanguages[code]; ok {
			target = t
		}
	}
	s.mu.Unlock()

	return types.DetectResult{
		Code:          code,
		Name:          name,
		DefaultTarget: target,
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// Adapters
// ─────────────────────────────────────────────────────────────────────────────

// registryTranscriber bridges the stt provider registry to the session
// controller's Transcriber contract, always using the Whisper API provider.
type registryTranscriber struct {
	registry *stt.Registry
}

func (t registryTranscriber) Ready() bool {
	p := t.registry.Get("whisper-api")
	return p != nil && p.IsReady()
}

func (t registryTranscriber) Transcribe(ctx context.Context, samples []float32, language string, glossary []string) (string, error) {
	p := t.registry.Get("whisper-api")
	if p == nil {
		return "", errors.New("no transcription provider registered")
	}
	result, err := p.Transcribe(ctx, samples, language, glossary)
	if err != nil {
		return "", err
	}
	return result.Text, nil
}

// resultEmitter wraps an injector and publishes every delivered text as a
// result event, with the detected language attached.
type resultEmitter struct {
	next session.Injector
	emit func(string, any)
}

func (r resultEmitter) Inject(ctx context.Context, text string) error {
	if err := r.next.Inject(ctx, text); err != nil {
		return err
	}
	code, _ := langdetect.Detect(text)
	r.emit(EventResult, types.SessionResult{
		Text:     text,
		Language: code,
		Chars:    len([]rune(text)),
	})
	return nil
}
