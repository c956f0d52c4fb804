package model

import "testing"

func TestSequencerState_HasSession(t *testing.T) {
	tests := []struct {
		state    SequencerState
		expected bool
	}{
		{StateIdle, false},
		{StatePlayingIntroThenLoop, true},
		{StatePlayingLoopOnly, true},
		{StateStopped, true},
	}

	for _, test := range tests {
		result := test.state.HasSession()
		if result != test.expected {
			t.Errorf("SequencerState(%s).HasSession() = %v, expected %v", test.state, result, test.expected)
		}
	}
}

func TestSequencerState_IsActive(t *testing.T) {
	tests := []struct {
		state    SequencerState
		expected bool
	}{
		{StateIdle, false},
		{StatePlayingIntroThenLoop, true},
		{StatePlayingLoopOnly, true},
		{StateStopped, false},
	}

	for _, test := range tests {
		result := test.state.IsActive()
		if result != test.expected {
			t.Errorf("SequencerState(%s).IsActive() = %v, expected %v", test.state, result, test.expected)
		}
	}
}

func TestSequencerState_String(t *testing.T) {
	state := StatePlayingLoopOnly
	expected := "PlayingLoopOnly"
	result := state.String()

	if result != expected {
		t.Errorf("SequencerState.String() = %s, expected %s", result, expected)
	}
}

func TestRepeatMode_String(t *testing.T) {
	tests := []struct {
		mode     RepeatMode
		expected string
	}{
		{RepeatOff, "off"},
		{RepeatOne, "one"},
		{RepeatAll, "all"},
	}

	for _, test := range tests {
		if result := test.mode.String(); result != test.expected {
			t.Errorf("RepeatMode(%d).String() = %s, expected %s", test.mode, result, test.expected)
		}
	}
}
