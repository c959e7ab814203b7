package session

// Status is the lifecycle state of the dictation session.
type Status int

const (
	// StatusIdle means no session is active.
	StatusIdle Status = iota
	// StatusRecording means audio capture is running.
	StatusRecording
	// StatusProcessing means the stop pipeline is transcribing, formatting
	// or injecting. Processing is not cancellable.
	StatusProcessing
)

func (s Status) String() string {
	switch s {
	case StatusIdle:
		return "idle"
	case StatusRecording:
		return "recording"
	case StatusProcessing:
		return "processing"
	default:
		return "unknown"
	}
}
