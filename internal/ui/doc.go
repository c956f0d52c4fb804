package ui

// Package ui contains the Fyne user interface of the player. It maps the pick,
// play, pause, stop and clear affordances onto the sequencer, shows the state
// of both slots and keeps every sequencer call on the Fyne main thread. All UI
// strings are localized via Localization.
