package hotkey

import (
	"log/slog"
	"sync"

	hook "github.com/robotn/gohook"
)

// Listener watches one key combination system-wide and reports raw press and
// release gestures. It does no deduplication: OS key-repeat reaches the
// handler as repeated presses, which the resolver discards via the held flag.
// Handlers run on the event goroutine and must not block.
type Listener struct {
	combo   Combo
	handler func(pressed bool)
	logger  *slog.Logger

	mu      sync.Mutex
	running bool
	down    map[uint16]bool
	engaged bool
	done    chan struct{}
}

// NewListener creates a listener for combo. handler receives true on press
// and false on release of the primary key.
func NewListener(combo Combo, handler func(pressed bool), logger *slog.Logger) *Listener {
	if logger == nil {
		logger = slog.Default()
	}
	return &Listener{
		combo:   combo,
		handler: handler,
		logger:  logger,
		down:    make(map[uint16]bool),
	}
}

// Start installs the global keyboard hook and begins dispatching gestures.
// Calling Start on a running listener is a no-op.
func (l *Listener) Start() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.running {
		return nil
	}

	events := hook.Start()
	l.done = make(chan struct{})
	l.running = true

	go l.loop(events)

	l.logger.Info("hotkey listener started", "combo", l.combo.String())
	return nil
}

// Stop removes the keyboard hook and waits for the event loop to drain.
func (l *Listener) Stop() {
	l.mu.Lock()
	if !l.running {
		l.mu.Unlock()
		return
	}
	l.running = false
	done := l.done
	l.mu.Unlock()

	hook.End()
	<-done

	l.logger.Info("hotkey listener stopped")
}

func (l *Listener) loop(events chan hook.Event) {
	defer close(l.done)

	for ev := range events {
		switch ev.Kind {
		case hook.KeyDown, hook.KeyHold:
			l.keyDown(ev.Keycode)
		case hook.KeyUp:
			l.keyUp(ev.Keycode)
		}
	}
}

func (l *Listener) keyDown(code uint16) {
	l.mu.Lock()
	if !l.combo.contains(code) {
		l.mu.Unlock()
		return
	}
	l.down[code] = true
	satisfied := l.satisfiedLocked()
	if satisfied {
		l.engaged = true
	}
	l.mu.Unlock()

	if satisfied {
		l.handler(true)
	}
}

func (l *Listener) keyUp(code uint16) {
	l.mu.Lock()
	delete(l.down, code)
	release := code == l.combo.Primary && l.engaged
	if release {
		l.engaged = false
	}
	l.mu.Unlock()

	if release {
		l.handler(false)
	}
}

// satisfiedLocked reports whether every key of the combination is down.
func (l *Listener) satisfiedLocked() bool {
	if !l.down[l.combo.Primary] {
		return false
	}
	for _, m := range l.combo.Modifiers {
		if !l.down[m] {
			return false
		}
	}
	return true
}
