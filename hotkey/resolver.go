// Package hotkey turns global keyboard events into recording gestures.
//
// The package has two halves: a pure resolver that decides what a
// press/release means given the current session flags, and a listener that
// watches the configured key combination system-wide and feeds the resolver's
// caller. All flag mutation belongs to the caller, applied under the same
// lock that produced the resolver inputs.
package hotkey

import "time"

// Action is the decision produced for a single gesture event.
type Action int

const (
	// ActionStart begins a new recording session.
	ActionStart Action = iota + 1
	// ActionStop ends the active recording session.
	ActionStop
	// ActionToggleActivated switches the running session into toggle mode
	// without stopping capture; a later tap stops it.
	ActionToggleActivated
)

// HoldThreshold separates a quick tap from press-and-hold. Releases at or
// beyond this hold time are push-to-talk stops; shorter taps arm toggle mode.
const HoldThreshold = 300 * time.Millisecond

// Resolve maps one gesture event onto an optional action.
//
// pressed is true for key-down, false for key-up. held is how long the key
// has been down at release time; heldKnown is false when no press instant was
// recorded, in which case the release counts as exceeding the threshold (fail
// toward stopping, never toward recording forever).
//
// The second return value is false when the event means nothing (OS
// key-repeat, release outside a session, press while busy).
func Resolve(pressed, isIdle, isRecording, shortcutHeld, toggleActive bool, held time.Duration, heldKnown bool) (Action, bool) {
	if pressed {
		switch {
		case shortcutHeld:
			// OS key-repeat while the key is physically down.
			return 0, false
		case toggleActive:
			// Second tap ends a toggle-mode recording.
			return ActionStop, true
		case isIdle:
			return ActionStart, true
		default:
			return 0, false
		}
	}

	if isRecording && !toggleActive {
		if !heldKnown || held >= HoldThreshold {
			return ActionStop, true
		}
		return ActionToggleActivated, true
	}

	return 0, false
}
