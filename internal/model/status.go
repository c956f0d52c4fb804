package model

// SequencerState is the state of the intro/loop sequencer
type SequencerState int

const (
	StateIdle SequencerState = iota
	StatePlayingIntroThenLoop
	StatePlayingLoopOnly
	StateStopped
)

// String returns the string representation of SequencerState
func (s SequencerState) String() string {
	switch s {
	case StateIdle:
		return "Idle"
	case StatePlayingIntroThenLoop:
		return "PlayingIntroThenLoop"
	case StatePlayingLoopOnly:
		return "PlayingLoopOnly"
	case StateStopped:
		return "Stopped"
	default:
		return "Unknown"
	}
}

// HasSession returns true if a playlist was built and not yet cleared
func (s SequencerState) HasSession() bool {
	return s == StatePlayingIntroThenLoop || s == StatePlayingLoopOnly || s == StateStopped
}

// IsActive returns true if the sequencer owns a playing (or paused) playlist
func (s SequencerState) IsActive() bool {
	return s == StatePlayingIntroThenLoop || s == StatePlayingLoopOnly
}
