package model

// Package model defines domain data structures shared across the app: track
// slots, media items handed to the playback engine, repeat modes and the
// sequencer state enum. Zero values mean "not selected" / "not set".
