package library

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/storage"

	"github.com/nduc/bgm-player/internal/model"
	"github.com/nduc/bgm-player/internal/platform"
)

var (
	// ErrSourceUnreadable is returned when picked content cannot be read or copied
	ErrSourceUnreadable = errors.New("source unreadable")

	// ErrInvalidWavHeader is returned when a copied source fails header validation
	ErrInvalidWavHeader = errors.New("invalid wav header")
)

// Library handles the intro and loop slots stored in a data directory
type Library struct {
	dir      string
	names    *NameStore
	slots    [2]model.TrackSlot
	mu       sync.RWMutex
	onUpdate func(model.TrackSlot) // callback for UI updates
}

// NewLibrary creates a library rooted at dir and picks up existing copies
func NewLibrary(dir string) *Library {
	l := &Library{
		dir:   dir,
		names: NewNameStore(filepath.Join(dir, DataFileName)),
	}

	for _, slot := range model.AllSlots {
		l.slots[slot].Slot = slot
		if platform.FileExists(l.path(slot)) {
			l.slots[slot].URI = storage.NewFileURI(l.path(slot)).String()
		}
	}

	return l
}

// Dir returns the data directory
func (l *Library) Dir() string {
	return l.dir
}

// SetUpdateCallback sets the callback function for slot updates
func (l *Library) SetUpdateCallback(callback func(model.TrackSlot)) {
	l.onUpdate = callback
}

// ResolveDisplayName returns the last path element of the picked URI
func (l *Library) ResolveDisplayName(uri fyne.URI) (string, bool) {
	if uri == nil {
		return "", false
	}
	name := uri.Name()
	if name == "" {
		return "", false
	}
	return name, true
}

// ImportURI copies the content behind uri into slot
func (l *Library) ImportURI(slot model.Slot, uri fyne.URI) error {
	if uri == nil {
		return fmt.Errorf("%w: no uri", ErrSourceUnreadable)
	}

	rc, err := storage.Reader(uri)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrSourceUnreadable, err)
	}
	defer rc.Close()

	name, ok := l.ResolveDisplayName(uri)
	if !ok {
		log.Printf("Could not resolve display name for %s", uri)
	}

	return l.Import(slot, rc, name)
}

// ImportFile copies a local file into slot, named after its base name
func (l *Library) ImportFile(slot model.Slot, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrSourceUnreadable, err)
	}
	defer f.Close()

	return l.Import(slot, f, filepath.Base(path))
}

// Import copies src into the slot's backing file, records displayName and
// rewrites the names file. The slot is left untouched if the copy fails.
func (l *Library) Import(slot model.Slot, src io.Reader, displayName string) error {
	path := l.path(slot)
	displayName = cleanDisplayName(displayName)

	n, err := platform.CopyToFile(path, src)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrSourceUnreadable, err)
	}
	log.Printf("Imported %s into %s slot (%d bytes)", displayName, slot, n)

	l.mu.Lock()
	l.slots[slot].URI = storage.NewFileURI(path).String()
	l.slots[slot].DisplayName = displayName
	updated := l.slots[slot]
	l.mu.Unlock()

	if err := l.SaveDisplayNames(); err != nil {
		log.Printf("Failed to save display names: %v", err)
	}

	l.notifyUpdate(updated)

	if !platform.IsValidWavFile(path) {
		return fmt.Errorf("%w: %s", ErrInvalidWavHeader, displayName)
	}
	return nil
}

// Check reports whether the slot's backing copy exists and has a valid header
func (l *Library) Check(slot model.Slot) bool {
	return platform.IsValidWavFile(l.path(slot))
}

// PlayableURI returns the slot's file URI when the copy passes Check
func (l *Library) PlayableURI(slot model.Slot) (string, bool) {
	if !l.Check(slot) {
		return "", false
	}
	return storage.NewFileURI(l.path(slot)).String(), true
}

// TrackSlot returns a snapshot of slot
func (l *Library) TrackSlot(slot model.Slot) model.TrackSlot {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.slots[slot]
}

// Info reads the PCM format of the slot's copy
func (l *Library) Info(slot model.Slot) (platform.WavInfo, error) {
	return platform.ReadWavInfo(l.path(slot))
}

// LoadDisplayNames applies persisted names to slots whose copies pass Check.
// Should only run at startup. A missing or malformed file leaves names empty.
func (l *Library) LoadDisplayNames() error {
	names, ok, err := l.names.Load()
	if errors.Is(err, ErrMalformedNames) {
		return nil
	}
	if err != nil {
		return err
	}
	if !ok {
		return nil
	}

	for _, slot := range model.AllSlots {
		if !l.Check(slot) {
			continue
		}

		l.mu.Lock()
		l.slots[slot].DisplayName = names.Get(slot)
		updated := l.slots[slot]
		l.mu.Unlock()

		l.notifyUpdate(updated)
	}

	return nil
}

// SaveDisplayNames overwrites the names file with the current slot names
func (l *Library) SaveDisplayNames() error {
	l.mu.RLock()
	var names model.DisplayNames
	for _, slot := range model.AllSlots {
		names.Set(slot, l.slots[slot].DisplayName)
	}
	l.mu.RUnlock()

	if err := platform.CreateDirectoryIfNotExists(l.dir); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}
	return l.names.Save(names)
}

// cleanDisplayName keeps names on a single line of the names file
func cleanDisplayName(name string) string {
	name = strings.ReplaceAll(name, "\r", "")
	name = strings.ReplaceAll(name, "\n", " ")
	return strings.TrimSpace(name)
}

// path returns the backing file path of slot
func (l *Library) path(slot model.Slot) string {
	return filepath.Join(l.dir, slot.FileName())
}

// notifyUpdate calls the update callback if set
func (l *Library) notifyUpdate(slot model.TrackSlot) {
	if l.onUpdate != nil {
		l.onUpdate(slot)
	}
}
