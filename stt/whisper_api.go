package stt

import (
	"bytes"
	"context"
	"fmt"
	"sync"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
)

// WhisperAPI implements the Provider interface using OpenAI's Whisper API.
type WhisperAPI struct {
	client openai.Client
	model  string

	mu    sync.RWMutex
	ready bool
}

// WhisperAPIConfig holds configuration for WhisperAPI.
type WhisperAPIConfig struct {
	APIKey  string
	BaseURL string // Optional, defaults to OpenAI's API
	Model   string // Optional, defaults to "whisper-1"
}

// NewWhisperAPI creates a new WhisperAPI provider.
func NewWhisperAPI(cfg WhisperAPIConfig) *WhisperAPI {
	model := cfg.Model
	if model == "" {
		model = string(openai.AudioModelWhisper1)
	}

	opts := []option.RequestOption{option.WithAPIKey(cfg.APIKey)}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}

	return &WhisperAPI{
		client: openai.NewClient(opts...),
		model:  model,
		ready:  cfg.APIKey != "",
	}
}

func (w *WhisperAPI) Name() string        { return "whisper-api" }
func (w *WhisperAPI) DisplayName() string { return "OpenAI Whisper API" }
func (w *WhisperAPI) IsLocal() bool       { return false }

func (w *WhisperAPI) IsReady() bool {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.ready
}

// Transcribe sends audio to the Whisper API for transcription.
// audio: PCM float32 samples at 16000 Hz
// language: source language code (empty for auto-detect)
func (w *WhisperAPI) Transcribe(ctx context.Context, audio []float32, language string, glossary []string) (*TranscribeResult, error) {
	if !w.IsReady() {
		return nil, fmt.Errorf("WhisperAPI is not ready: API key required")
	}

	wavData, err := float32ToWAV(audio, 16000)
	if err != nil {
		return nil, fmt.Errorf("convert to WAV: %w", err)
	}

	params := openai.AudioTranscriptionNewParams{
		File:   openai.File(bytes.NewReader(wavData), "audio.wav", "audio/wav"),
		Model:  openai.AudioModel(w.model),
		Prompt: openai.String(BuildInitialPrompt(glossary)),
	}

	// The API does not accept "auto"; an omitted language means auto-detect.
	if language != "" && language != "auto" {
		params.Language = openai.String(language)
	}

	resp, err := w.client.Audio.Transcriptions.New(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("transcription request: %w", err)
	}

	return &TranscribeResult{
		Text:     resp.Text,
		Language: language,
	}, nil
}

func (w *WhisperAPI) Close() error {
	return nil
}

// float32ToWAV converts float32 PCM samples to 16-bit mono WAV.
func float32ToWAV(samples []float32, sampleRate int) ([]byte, error) {
	numSamples := len(samples)
	dataSize := numSamples * 2 // 16-bit = 2 bytes per sample

	buf := bytes.NewBuffer(make([]byte, 0, 44+dataSize))

	// RIFF header
	buf.WriteString("RIFF")
	writeUint32LE(buf, uint32(36+dataSize)) // File size - 8
	buf.WriteString("WAVE")

	// fmt chunk
	buf.WriteString("fmt ")
	writeUint32LE(buf, 16)                   // Chunk size
	writeUint16LE(buf, 1)                    // Audio format (PCM)
	writeUint16LE(buf, 1)                    // Num channels (mono)
	writeUint32LE(buf, uint32(sampleRate))   // Sample rate
	writeUint32LE(buf, uint32(sampleRate*2)) // Byte rate
	writeUint16LE(buf, 2)                    // Block align
	writeUint16LE(buf, 16)                   // Bits per sample

	// data chunk
	buf.WriteString("data")
	writeUint32LE(buf, uint32(dataSize))

	for _, s := range samples {
		if s > 1.0 {
			s = 1.0
		} else if s < -1.0 {
			s = -1.0
		}
		writeInt16LE(buf, int16(s*32767))
	}

	return buf.Bytes(), nil
}

func writeUint16LE(w *bytes.Buffer, v uint16) {
	w.WriteByte(byte(v))
	w.WriteByte(byte(v >> 8))
}

func writeUint32LE(w *bytes.Buffer, v uint32) {
	w.WriteByte(byte(v))
	w.WriteByte(byte(v >> 8))
	w.WriteByte(byte(v >> 16))
	w.WriteByte(byte(v >> 24))
}

func writeInt16LE(w *bytes.Buffer, v int16) {
	w.WriteByte(byte(v))
	w.WriteByte(byte(v >> 8))
}
