// Package session coordinates one hotkey-gated dictation session at a time:
// gesture handling, capture start/stop, and the stop pipeline that turns the
// recorded buffer into injected text.
package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"go.dravis.dev/flow/formatter"
	"go.dravis.dev/flow/internal/types"
)

// MinTranscribeSamples is the minimum trimmed buffer length worth
// transcribing, about one second at 16kHz.
const MinTranscribeSamples = 16000

// FormattingBasic selects the full cleanup pipeline; any other level only
// trims the transcript. Dictionary replacements run in both cases.
const FormattingBasic = "basic"

// Event names emitted through the controller's emit callback.
const (
	EventStatus     = "status"
	EventAudioLevel = "audio_level"
	EventToggleMode = "toggle_mode_active"
)

// ErrClosed is returned by operations on a shut-down controller.
var ErrClosed = errors.New("session controller closed")

// ErrNotReady is returned when a session is started before the
// transcription engine is usable.
var ErrNotReady = errors.New("transcription engine not ready")

// Recorder captures microphone audio and hands back one buffer per session.
type Recorder interface {
	Start(onLevel func(float32)) error
	Stop() ([]float32, error)
}

// Transcriber turns a sample buffer into raw text.
type Transcriber interface {
	Ready() bool
	Transcribe(ctx context.Context, samples []float32, language string, glossary []string) (string, error)
}

// Injector delivers final text to the user's focus target.
type Injector interface {
	Inject(ctx context.Context, text string) error
}

// Structurer optionally rewrites the formatted transcript into a structured
// prompt. Failures fall back to the formatted text.
type Structurer interface {
	Restructure(ctx context.Context, text string) (string, error)
}

// Settings is the per-session configuration snapshot, taken once when the
// stop pipeline begins so mid-pipeline config edits cannot tear it.
type Settings struct {
	Language        string
	FormattingLevel string
	DictionaryWords []string
	Replacements    []formatter.Replacement
	PromptEnabled   bool
}

// Config wires a Controller. Recorder, Transcriber, Injector and Settings
// are required; Structurer and Emit are optional.
type Config struct {
	Recorder    Recorder
	Transcriber Transcriber
	Injector    Injector
	Structurer  Structurer
	Settings    func() Settings
	Emit        func(event string, payload any)
	Logger      *slog.Logger
}

// Controller owns the session state machine. Status and the toggle flags
// live behind one mutex; the recorder guards its own sample buffer so the
// capture callback never contends with status reads.
type Controller struct {
	recorder    Recorder
	transcriber Transcriber
	injector    Injector
	structurer  Structurer
	settings    func() Settings
	emit        func(event string, payload any)
	logger      *slog.Logger

	mu                 sync.Mutex
	closed             bool
	status             Status
	toggleShortcutHeld bool
	toggleActive       bool
	pressInstant       time.Time
	pressKnown         bool
	sessionID          string
}

// New validates cfg and returns an idle controller.
func New(cfg Config) (*Controller, error) {
	if cfg.Recorder == nil {
		return nil, errors.New("session: recorder is required")
	}
	if cfg.Transcriber == nil {
		return nil, errors.New("session: transcriber is required")
	}
	if cfg.Injector == nil {
		return nil, errors.New("session: injector is required")
	}
	if cfg.Settings == nil {
		return nil, errors.New("session: settings snapshot func is required")
	}
	if cfg.Emit == nil {
		cfg.Emit = func(string, any) {}
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}

	return &Controller{
		recorder:    cfg.Recorder,
		transcriber: cfg.Transcriber,
		injector:    cfg.Injector,
		structurer:  cfg.Structurer,
		settings:    cfg.Settings,
		emit:        cfg.Emit,
		logger:      cfg.Logger,
	}, nil
}

// Status returns the current session status.
func (c *Controller) Status() Status {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.status
}

// Start begins a new recording session. Starting while not Idle is a
// no-op. The status transition commits before capture starts, so a second
// gesture arriving immediately after sees Recording and cannot start a
// duplicate capture.
func (c *Controller) Start() error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return ErrClosed
	}
	if c.status != StatusIdle {
		c.mu.Unlock()
		return nil
	}
	if !c.transcriber.Ready() {
		c.resetLocked()
		c.mu.Unlock()
		return ErrNotReady
	}
	c.status = StatusRecording
	c.sessionID = uuid.NewString()
	id := c.sessionID
	c.mu.Unlock()

	c.setStatus(StatusRecording.String(), "")

	err := c.recorder.Start(func(level float32) {
		c.emit(EventAudioLevel, level)
	})
	if err != nil {
		c.ForceReset()
		return fmt.Errorf("start capture: %w", err)
	}

	c.logger.Info("session started", "session", id)
	return nil
}

// Cancel discards the active recording without transcribing. Cancelling
// while Idle is a no-op; Processing is not cancellable and is left alone.
func (c *Controller) Cancel() error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return ErrClosed
	}
	if c.status != StatusRecording {
		c.mu.Unlock()
		return nil
	}
	if _, err := c.recorder.Stop(); err != nil {
		c.logger.Warn("stop capture on cancel", "error", err)
	}
	id := c.sessionID
	c.resetLocked()
	c.mu.Unlock()

	c.setStatus(StatusIdle.String(), "")
	c.logger.Info("session cancelled", "session", id)
	return nil
}

// Stop ends the active recording and runs the full pipeline: transcribe,
// format, optionally restructure, inject. Stopping while not Recording
// returns empty text without error. Pipeline failures force-reset to Idle
// before the error is returned.
func (c *Controller) Stop(ctx context.Context) (string, error) {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return "", ErrClosed
	}
	if c.status != StatusRecording {
		c.mu.Unlock()
		return "", nil
	}
	c.status = StatusProcessing
	audio, err := c.recorder.Stop()
	cfg := c.settings()
	id := c.sessionID
	c.mu.Unlock()

	if err != nil {
		c.ForceReset()
		return "", fmt.Errorf("stop capture: %w", err)
	}

	text, err := c.runPipeline(ctx, id, audio, cfg)
	if err != nil {
		c.ForceReset()
		return "", err
	}
	return text, nil
}

func (c *Controller) runPipeline(ctx context.Context, id string, audio []float32, cfg Settings) (string, error) {
	if len(audio) == 0 {
		c.resetIdle()
		return "", nil
	}
	if len(audio) < MinTranscribeSamples {
		c.logger.Info("recording too short, skipping transcription",
			"session", id, "samples", len(audio))
		c.resetIdle()
		return "", nil
	}

	c.setStatus(StatusProcessing.String(), "Transcribing...")
	c.logger.Info("transcribing", "session", id, "samples", len(audio))

	raw, err := c.transcriber.Transcribe(ctx, audio, cfg.Language, cfg.DictionaryWords)
	if err != nil {
		return "", fmt.Errorf("transcribe: %w", err)
	}

	var text string
	if cfg.FormattingLevel == FormattingBasic {
		text = formatter.Format(raw)
	} else {
		text = strings.TrimSpace(raw)
	}
	formatted := formatter.ApplyReplacements(text, cfg.Replacements)

	if strings.TrimSpace(formatted) == "" {
		c.logger.Info("empty transcript, skipping injection", "session", id)
		c.resetIdle()
		return "", nil
	}

	output := formatted
	if cfg.PromptEnabled && c.structurer != nil {
		c.setStatus("structuring", "Structuring prompt...")
		structured, err := c.structurer.Restructure(ctx, output)
		switch {
		case err != nil:
			c.logger.Warn("prompt structuring failed, falling back",
				"session", id, "error", err)
		case strings.TrimSpace(structured) == "":
			c.logger.Warn("prompt structuring returned empty text, falling back",
				"session", id)
		default:
			output = structured
		}
	}

	if err := c.injector.Inject(ctx, output); err != nil {
		return "", fmt.Errorf("inject: %w", err)
	}

	c.logger.Info("session complete", "session", id, "chars", len(output))
	c.resetIdle()
	return output, nil
}

// ForceReset returns the controller to Idle, clears the toggle flags and
// best-effort stops any lingering capture. Safe to call redundantly.
func (c *Controller) ForceReset() {
	c.mu.Lock()
	c.resetLocked()
	c.toggleShortcutHeld = false
	if _, err := c.recorder.Stop(); err != nil {
		c.logger.Warn("stop capture on reset", "error", err)
	}
	c.mu.Unlock()

	c.setStatus(StatusIdle.String(), "")
}

// Close marks the controller shut down. Further operations return ErrClosed.
func (c *Controller) Close() {
	c.mu.Lock()
	c.closed = true
	c.resetLocked()
	if _, err := c.recorder.Stop(); err != nil {
		c.logger.Warn("stop capture on close", "error", err)
	}
	c.mu.Unlock()
}

func (c *Controller) resetIdle() {
	c.mu.Lock()
	c.resetLocked()
	c.mu.Unlock()
	c.setStatus(StatusIdle.String(), "")
}

// resetLocked must be called with c.mu held.
func (c *Controller) resetLocked() {
	c.status = StatusIdle
	c.toggleActive = false
	c.pressKnown = false
}

func (c *Controller) setStatus(status, message string) {
	c.emit(EventStatus, types.StatusPayload{Status: status, Message: message})
}
