package session

import (
	"context"
	"time"

	"go.dravis.dev/flow/hotkey"
	"go.dravis.dev/flow/internal/types"
)

// HandleGesture feeds one press or release of the dictation hotkey through
// the resolver and spawns the resulting transition. It never blocks the
// caller: the decision and flag mutation happen under the session lock, the
// capture work runs on its own goroutine.
func (c *Controller) HandleGesture(pressed bool) {
	action, ok := c.resolveGesture(pressed)
	if !ok {
		return
	}

	if action == hotkey.ActionToggleActivated {
		c.emit(EventToggleMode, true)
		return
	}

	go func() {
		var err error
		switch action {
		case hotkey.ActionStart:
			err = c.Start()
		case hotkey.ActionStop:
			_, err = c.Stop(context.Background())
		}
		if err != nil {
			c.logger.Error("gesture pipeline failed", "error", err)
			c.emit(EventStatus, types.StatusPayload{Status: "error", Message: err.Error()})
			c.ForceReset()
		}
	}()
}

// ReleaseShortcut clears the held-shortcut latch so the next press is
// treated as a fresh gesture. Used when the recording-mode preference
// changes while the key is down.
func (c *Controller) ReleaseShortcut() {
	c.mu.Lock()
	c.toggleShortcutHeld = false
	c.mu.Unlock()
}

// resolveGesture runs the pure resolver and applies the flag mutations that
// must happen inside the same lock hold, so a concurrent gesture cannot
// observe a half-updated flag set.
func (c *Controller) resolveGesture(pressed bool) (hotkey.Action, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return 0, false
	}

	// Clear stale toggle state if recording ended externally, for example
	// via a direct Stop call.
	if c.toggleActive && c.status != StatusRecording {
		c.toggleActive = false
		c.pressKnown = false
	}

	isIdle := c.status == StatusIdle
	isRecording := c.status == StatusRecording

	var held time.Duration
	if c.pressKnown {
		held = time.Since(c.pressInstant)
	}

	action, ok := hotkey.Resolve(pressed, isIdle, isRecording,
		c.toggleShortcutHeld, c.toggleActive, held, c.pressKnown)

	if pressed {
		if !c.toggleShortcutHeld {
			c.toggleShortcutHeld = true
			if ok && action == hotkey.ActionStop && c.toggleActive {
				c.toggleActive = false
			} else if ok && action == hotkey.ActionStart {
				c.pressInstant = time.Now()
				c.pressKnown = true
			}
		}
	} else {
		c.toggleShortcutHeld = false
		if ok && action == hotkey.ActionToggleActivated {
			c.toggleActive = true
		}
	}

	return action, ok
}
