package app

// Event names emitted by the service, beyond the session controller's
// status, audio_level and toggle_mode_active events.
const (
	// EventResult carries a types.SessionResult after each successful
	// injection.
	EventResult = "result"
)
