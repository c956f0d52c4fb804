package engine

// Package engine implements the playback engine on top of beep
// (github.com/faiface/beep). It owns the playlist, the repeat mode and the
// output device, and reports item transitions to registered listeners.
