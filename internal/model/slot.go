package model

// Slot identifies one of the two user-selectable tracks
type Slot int

const (
	SlotIntro Slot = iota
	SlotLoop
)

// Backing file names for each slot inside the data directory
const (
	IntroFileName = "intro.wav"
	LoopFileName  = "loop.wav"
)

// AllSlots lists slots in playlist order
var AllSlots = []Slot{SlotIntro, SlotLoop}

// String returns the slot name used in logs and the CLI
func (s Slot) String() string {
	switch s {
	case SlotIntro:
		return "intro"
	case SlotLoop:
		return "loop"
	default:
		return "unknown"
	}
}

// FileName returns the name of the slot's backing copy
func (s Slot) FileName() string {
	if s == SlotIntro {
		return IntroFileName
	}
	return LoopFileName
}

// TrackSlot is the user's selection for one slot
type TrackSlot struct {
	Slot        Slot
	URI         string // file URI of the backing copy, empty if nothing was copied
	DisplayName string // name shown to the user, empty if unknown
}

// HasSource reports whether a source was copied into the slot
func (t TrackSlot) HasSource() bool {
	return t.URI != ""
}

// HasDisplayName reports whether the slot has a display name
func (t TrackSlot) HasDisplayName() bool {
	return t.DisplayName != ""
}

// DisplayNames is the pair persisted in data.txt
type DisplayNames struct {
	Intro string
	Loop  string
}

// Get returns the name stored for slot
func (n DisplayNames) Get(slot Slot) string {
	if slot == SlotIntro {
		return n.Intro
	}
	return n.Loop
}

// Set stores name for slot
func (n *DisplayNames) Set(slot Slot, name string) {
	if slot == SlotIntro {
		n.Intro = name
		return
	}
	n.Loop = name
}
