package library

import (
	"io"

	"fyne.io/fyne/v2"

	"github.com/nduc/bgm-player/internal/model"
	"github.com/nduc/bgm-player/internal/platform"
)

// Resolver defines the interface for the slot source resolver.
type Resolver interface {
	SetUpdateCallback(func(model.TrackSlot))

	// ResolveDisplayName returns the user-facing name of a picked source
	ResolveDisplayName(uri fyne.URI) (string, bool)

	ImportURI(slot model.Slot, uri fyne.URI) error
	ImportFile(slot model.Slot, path string) error
	Import(slot model.Slot, src io.Reader, displayName string) error

	// Check reports whether the slot's backing copy exists and has a valid header
	Check(slot model.Slot) bool
	PlayableURI(slot model.Slot) (string, bool)
	TrackSlot(slot model.Slot) model.TrackSlot
	Info(slot model.Slot) (platform.WavInfo, error)

	LoadDisplayNames() error
	SaveDisplayNames() error
}
