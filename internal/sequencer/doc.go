package sequencer

// Package sequencer decides what the engine plays for the selected intro and
// loop sources. Two sources become an intro+loop playlist that switches to
// single-item repeat once the loop starts; one source is repeated from the
// start. A Sequencer is owned by one thread (the UI or CLI dispatcher) and is
// not safe for concurrent use.
