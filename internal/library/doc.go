package library

// Package library owns the two track slots: it copies picked content into the
// data directory, validates the copies, and persists their display names in
// a two-line data.txt file.
