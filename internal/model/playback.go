package model

import (
	"time"

	"github.com/google/uuid"
)

// RepeatMode mirrors the repeat primitives of the playback engine
type RepeatMode int

const (
	// RepeatOff plays the playlist once and stops at the end
	RepeatOff RepeatMode = iota

	// RepeatOne repeats the current item forever
	RepeatOne

	// RepeatAll wraps to the first item after the last one
	RepeatAll
)

// String returns a human-readable representation of the repeat mode
func (m RepeatMode) String() string {
	switch m {
	case RepeatOne:
		return "one"
	case RepeatAll:
		return "all"
	default:
		return "off"
	}
}

// MediaItem is a single playlist entry handed to the engine
type MediaItem struct {
	ID   string
	URI  string
	Slot Slot
}

// NewMediaItem creates a media item with a fresh ID
func NewMediaItem(slot Slot, uri string) MediaItem {
	return MediaItem{
		ID:   uuid.NewString(),
		URI:  uri,
		Slot: slot,
	}
}

// Session describes the transient playback session
type Session struct {
	ID         string
	StartedAt  time.Time
	BGM        bool // 2-item intro+loop playlist is active
	StopCalled bool
}

// EngineStatus is a snapshot pushed by the engine on every change
type EngineStatus struct {
	Playing bool
	Index   int // -1 when nothing is loaded
	Items   int
	Repeat  RepeatMode
	Ended   bool // the prepared playlist ran out or failed
}
