package engine

import (
	"github.com/nduc/bgm-player/internal/model"
)

// Listener receives playback notifications. Listeners are compared by
// identity, so register pointer types.
type Listener interface {
	// OnMediaItemTransition is called when playback moves to another item
	OnMediaItemTransition(index int, item model.MediaItem)
}

// Engine defines the interface for the playback engine.
type Engine interface {
	SetUpdateCallback(func(model.EngineStatus))

	AddItem(item model.MediaItem)
	ClearItems()
	Items() []model.MediaItem
	CurrentIndex() int

	SetRepeatMode(mode model.RepeatMode)
	RepeatMode() model.RepeatMode

	AddListener(l Listener)
	RemoveListener(l Listener)

	// Prepare decodes the playlist and attaches it to the output paused
	Prepare() error
	Play()
	Pause()
	// Stop releases decoded media but keeps the playlist
	Stop()
	IsPlaying() bool
	// Ended reports whether the prepared playlist ran out or failed
	Ended() bool

	// SetVolume sets the output level in the range 0..1
	SetVolume(level float64)
	Release()
}
