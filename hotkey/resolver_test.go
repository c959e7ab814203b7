package hotkey

import (
	"testing"
	"time"
)

func TestResolvePress(t *testing.T) {
	tests := []struct {
		name         string
		isIdle       bool
		isRecording  bool
		shortcutHeld bool
		toggleActive bool
		want         Action
		wantOK       bool
	}{
		{name: "idle starts", isIdle: true, want: ActionStart, wantOK: true},
		{name: "repeat while held ignored", isIdle: true, shortcutHeld: true, wantOK: false},
		{name: "repeat wins over toggle", shortcutHeld: true, toggleActive: true, isRecording: true, wantOK: false},
		{name: "tap during toggle stops", isRecording: true, toggleActive: true, want: ActionStop, wantOK: true},
		{name: "press while processing ignored", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Resolve(true, tt.isIdle, tt.isRecording, tt.shortcutHeld, tt.toggleActive, 0, false)
			if ok != tt.wantOK {
				t.Fatalf("ok = %v, want %v", ok, tt.wantOK)
			}
			if ok && got != tt.want {
				t.Fatalf("action = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestResolveRelease(t *testing.T) {
	tests := []struct {
		name         string
		isRecording  bool
		toggleActive bool
		held         time.Duration
		heldKnown    bool
		want         Action
		wantOK       bool
	}{
		{name: "long hold stops", isRecording: true, held: 500 * time.Millisecond, heldKnown: true, want: ActionStop, wantOK: true},
		{name: "exact threshold stops", isRecording: true, held: HoldThreshold, heldKnown: true, want: ActionStop, wantOK: true},
		{name: "quick tap arms toggle", isRecording: true, held: 100 * time.Millisecond, heldKnown: true, want: ActionToggleActivated, wantOK: true},
		{name: "unknown hold stops", isRecording: true, want: ActionStop, wantOK: true},
		{name: "release while idle ignored", wantOK: false},
		{name: "release during toggle ignored", isRecording: true, toggleActive: true, held: time.Second, heldKnown: true, wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Resolve(false, !tt.isRecording, tt.isRecording, false, tt.toggleActive, tt.held, tt.heldKnown)
			if ok != tt.wantOK {
				t.Fatalf("ok = %v, want %v", ok, tt.wantOK)
			}
			if ok && got != tt.want {
				t.Fatalf("action = %v, want %v", got, tt.want)
			}
		})
	}
}
