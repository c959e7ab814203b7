// Package audiocapture records microphone audio and hands back a single
// bounded buffer of 16kHz mono float32 samples per capture.
package audiocapture

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/gen2brain/malgo"
)

// TargetSampleRate is the output rate every capture is resampled to.
const TargetSampleRate = 16000

// SilenceThreshold is the RMS level below which a window counts as silent.
const SilenceThreshold = 0.01

// levelInterval throttles level callbacks to at most one per 50ms.
const levelInterval = 50 * time.Millisecond

// ErrNoDevice is returned when no default input device is available.
var ErrNoDevice = errors.New("no default input device")

// ErrUnsupportedFormat is returned when the device offers a sample format
// the recorder cannot decode.
var ErrUnsupportedFormat = errors.New("unsupported sample format")

// Recorder captures from the default input device. The device and its native
// configuration are cached at construction and reused across captures;
// RefreshDevice re-queries them after the user switches audio inputs.
type Recorder struct {
	mu     sync.Mutex
	ctx    *malgo.AllocatedContext
	device *malgo.Device
	logger *slog.Logger

	cached    malgo.DeviceInfo
	hasCached bool

	// Capture format, written between device init and start. The data
	// callback only reads these after Start, so no lock is needed.
	captureFormat   malgo.FormatType
	captureChannels int
	captureRate     uint32

	samplesMu sync.Mutex
	samples   []float32

	levelMu  sync.Mutex
	lastEmit time.Time
}

// NewRecorder initializes the audio backend and caches the default input
// device. A missing device at construction time is logged, not fatal; Start
// retries the lookup.
func NewRecorder(logger *slog.Logger) (*Recorder, error) {
	if logger == nil {
		logger = slog.Default()
	}

	ctx, err := malgo.InitContext(nil, malgo.ContextConfig{}, nil)
	if err != nil {
		return nil, fmt.Errorf("init audio context: %w", err)
	}

	r := &Recorder{ctx: ctx, logger: logger}
	if err := r.refreshLocked(); err != nil {
		logger.Warn("cache input device", "error", err)
	}
	return r, nil
}

// RefreshDevice re-queries the default input device. Call when the user
// switches audio inputs; an active capture keeps its current device.
func (r *Recorder) RefreshDevice() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.refreshLocked()
}

func (r *Recorder) refreshLocked() error {
	r.hasCached = false

	infos, err := r.ctx.Devices(malgo.Capture)
	if err != nil {
		return fmt.Errorf("enumerate capture devices: %w", err)
	}
	if len(infos) == 0 {
		return ErrNoDevice
	}

	picked := infos[0]
	for _, info := range infos {
		if info.IsDefault != 0 {
			picked = info
			break
		}
	}

	r.cached = picked
	r.hasCached = true
	r.logger.Info("input device cached", "device", picked.Name())
	return nil
}

// Start opens the cached device in its native format and begins buffering
// samples. onLevel receives clamped RMS levels, at most one per 50ms.
// Starting while already capturing is a no-op.
func (r *Recorder) Start(onLevel func(float32)) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.device != nil {
		return nil
	}

	if !r.hasCached {
		if err := r.refreshLocked(); err != nil {
			return err
		}
	}

	// Zeroed format, channels and rate ask for the device's native
	// configuration; the real values are read back after init.
	cfg := malgo.DefaultDeviceConfig(malgo.Capture)
	cfg.Capture.DeviceID = r.cached.ID.Pointer()

	callbacks := malgo.DeviceCallbacks{
		Data: func(_, input []byte, _ uint32) {
			r.captureChunk(input, onLevel)
		},
	}

	device, err := malgo.InitDevice(r.ctx.Context, cfg, callbacks)
	if err != nil {
		return fmt.Errorf("init capture device: %w", err)
	}

	format := device.CaptureFormat()
	if !supportedFormat(format) {
		device.Uninit()
		return fmt.Errorf("%w: %v", ErrUnsupportedFormat, format)
	}
	r.captureFormat = format
	r.captureChannels = int(device.CaptureChannels())
	r.captureRate = device.SampleRate()

	r.samplesMu.Lock()
	r.samples = nil
	r.samplesMu.Unlock()

	if err := device.Start(); err != nil {
		device.Uninit()
		return fmt.Errorf("start capture device: %w", err)
	}

	r.device = device
	r.logger.Info("capture started",
		"format", format,
		"channels", r.captureChannels,
		"rate", r.captureRate)
	return nil
}

// Stop ends the capture and returns the recorded buffer, resampled to 16kHz
// and trimmed of leading and trailing silence. Stopping while not capturing
// returns an empty buffer.
func (r *Recorder) Stop() ([]float32, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.device == nil {
		return nil, nil
	}

	if err := r.device.Stop(); err != nil {
		r.logger.Warn("stop capture device", "error", err)
	}
	r.device.Uninit()
	r.device = nil

	r.samplesMu.Lock()
	recorded := r.samples
	r.samples = nil
	r.samplesMu.Unlock()

	resampled := ResampleLinear(recorded, r.captureRate, TargetSampleRate)
	return TrimSilence(resampled, SilenceThreshold), nil
}

// IsCapturing reports whether a capture is active.
func (r *Recorder) IsCapturing() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.device != nil
}

// Close releases the device and backend context.
func (r *Recorder) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.device != nil {
		r.device.Uninit()
		r.device = nil
	}
	if r.ctx != nil {
		if err := r.ctx.Uninit(); err != nil {
			return fmt.Errorf("uninit audio context: %w", err)
		}
		r.ctx.Free()
		r.ctx = nil
	}
	return nil
}

// captureChunk decodes one device callback worth of bytes, buffers the mono
// samples and reports a throttled level reading.
func (r *Recorder) captureChunk(input []byte, onLevel func(float32)) {
	mono := decodeMono(input, r.captureFormat, r.captureChannels)
	if len(mono) == 0 {
		return
	}

	r.samplesMu.Lock()
	r.samples = append(r.samples, mono...)
	r.samplesMu.Unlock()

	if onLevel == nil {
		return
	}

	level := rms(mono)
	if level > 1 {
		level = 1
	}

	r.levelMu.Lock()
	emit := time.Since(r.lastEmit) >= levelInterval
	if emit {
		r.lastEmit = time.Now()
	}
	r.levelMu.Unlock()

	if emit {
		onLevel(level)
	}
}
