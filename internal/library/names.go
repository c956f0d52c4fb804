package library

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/nduc/bgm-player/internal/model"
	"github.com/nduc/bgm-player/internal/platform"
)

// DataFileName is the flat file holding both display names
const DataFileName = "data.txt"

// nameLines is the exact line count of a well-formed data file
const nameLines = 2

// ErrMalformedNames is returned when the data file does not have two lines
var ErrMalformedNames = errors.New("malformed display names file")

// NameStore persists the intro and loop display names as two lines
type NameStore struct {
	path string
}

// NewNameStore creates a store backed by path
func NewNameStore(path string) *NameStore {
	return &NameStore{path: path}
}

// Path returns the backing file path
func (s *NameStore) Path() string {
	return s.path
}

// Load reads both names. ok is false when the file is absent or malformed;
// in that case names is the zero value.
func (s *NameStore) Load() (names model.DisplayNames, ok bool, err error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return model.DisplayNames{}, false, nil
	}
	if err != nil {
		return model.DisplayNames{}, false, fmt.Errorf("failed to read %s: %w", s.path, err)
	}

	lines := strings.Split(string(data), "\n")
	if len(lines) != nameLines {
		log.Printf("Ignoring %s: expected %d lines, got %d", s.path, nameLines, len(lines))
		return model.DisplayNames{}, false, ErrMalformedNames
	}

	return model.DisplayNames{Intro: lines[0], Loop: lines[1]}, true, nil
}

// Save overwrites the file with both names
func (s *NameStore) Save(names model.DisplayNames) error {
	if strings.Contains(names.Intro, "\n") || strings.Contains(names.Loop, "\n") {
		return fmt.Errorf("display names must not contain newlines")
	}

	content := names.Intro + "\n" + names.Loop
	if err := os.WriteFile(s.path, []byte(content), platform.DefaultFilePermissions); err != nil {
		return fmt.Errorf("failed to write %s: %w", s.path, err)
	}
	return nil
}
