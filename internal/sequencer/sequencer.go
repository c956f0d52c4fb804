package sequencer

import (
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/nduc/bgm-player/internal/engine"
	"github.com/nduc/bgm-player/internal/model"
)

// ErrNoSourceSelected is returned by Play when neither slot is playable
var ErrNoSourceSelected = errors.New("no source selected")

// Sources answers whether a slot is playable and at which URI
type Sources interface {
	PlayableURI(slot model.Slot) (string, bool)
}

// Sequencer drives the playback engine through one BGM session at a time
type Sequencer struct {
	engine  engine.Engine
	sources Sources

	state      model.SequencerState
	session    model.Session
	transition *bgmTransition

	onUpdate func(model.SequencerState) // callback for UI updates
}

// NewSequencer creates an idle sequencer
func NewSequencer(e engine.Engine, sources Sources) *Sequencer {
	return &Sequencer{
		engine:  e,
		sources: sources,
		state:   model.StateIdle,
	}
}

// SetUpdateCallback sets the callback invoked after every state change
func (s *Sequencer) SetUpdateCallback(callback func(model.SequencerState)) {
	s.onUpdate = callback
}

// State returns the current state
func (s *Sequencer) State() model.SequencerState {
	return s.state
}

// Session returns a snapshot of the current session
func (s *Sequencer) Session() model.Session {
	return s.session
}

// Play starts a new session from the selected sources, or resumes a paused one
func (s *Sequencer) Play() error {
	if s.state.IsActive() && s.engine.Ended() {
		s.OnPlaybackEnded()
	}

	if s.state.IsActive() {
		if !s.engine.IsPlaying() {
			s.engine.Play()
			log.Printf("Session %s resumed", shortID(s.session.ID))
			s.notifyUpdate()
		}
		return nil
	}

	introURI, hasIntro := s.sources.PlayableURI(model.SlotIntro)
	loopURI, hasLoop := s.sources.PlayableURI(model.SlotLoop)
	if !hasIntro && !hasLoop {
		return ErrNoSourceSelected
	}

	// Leftover playlist from a stopped session
	if s.state == model.StateStopped {
		s.Clear()
	}

	s.session = model.Session{
		ID:        uuid.NewString(),
		StartedAt: time.Now(),
	}

	switch {
	case hasIntro && hasLoop:
		s.engine.AddItem(model.NewMediaItem(model.SlotIntro, introURI))
		s.engine.AddItem(model.NewMediaItem(model.SlotLoop, loopURI))
		s.engine.SetRepeatMode(model.RepeatOff)
		s.transition = &bgmTransition{engine: s.engine}
		s.engine.AddListener(s.transition)
		s.session.BGM = true
		s.state = model.StatePlayingIntroThenLoop
	case hasIntro:
		s.engine.AddItem(model.NewMediaItem(model.SlotIntro, introURI))
		s.engine.SetRepeatMode(model.RepeatOne)
		s.state = model.StatePlayingLoopOnly
	default:
		s.engine.AddItem(model.NewMediaItem(model.SlotLoop, loopURI))
		s.engine.SetRepeatMode(model.RepeatOne)
		s.state = model.StatePlayingLoopOnly
	}

	if err := s.engine.Prepare(); err != nil {
		s.Clear()
		return fmt.Errorf("failed to prepare playback: %w", err)
	}
	s.engine.Play()

	log.Printf("Session %s started: %s", shortID(s.session.ID), s.state)
	s.notifyUpdate()
	return nil
}

// Pause pauses an active session; it does nothing otherwise
func (s *Sequencer) Pause() {
	if !s.state.IsActive() || !s.engine.IsPlaying() {
		return
	}

	s.engine.Pause()
	s.notifyUpdate()
}

// Stop stops the engine but keeps the playlist until the next Clear or Play
func (s *Sequencer) Stop() {
	s.engine.Stop()
	s.session.StopCalled = true

	if s.state.HasSession() {
		s.state = model.StateStopped
	}
	s.notifyUpdate()
}

// OnPlaybackEnded moves an active session to Stopped once the engine ran
// out of items. The playlist is kept until the next Clear or Play.
func (s *Sequencer) OnPlaybackEnded() {
	if !s.state.IsActive() {
		return
	}

	s.state = model.StateStopped
	log.Printf("Session %s ended", shortID(s.session.ID))
	s.notifyUpdate()
}

// StopUsing stops an active session that plays the given slot, so its
// file is no longer held open. It reports whether the session was stopped.
func (s *Sequencer) StopUsing(slot model.Slot) bool {
	if !s.state.IsActive() {
		return false
	}

	for _, item := range s.engine.Items() {
		if item.Slot == slot {
			s.Stop()
			return true
		}
	}
	return false
}

// Clear tears the session down and returns to Idle. Calling it again is a no-op.
func (s *Sequencer) Clear() {
	if !s.session.StopCalled {
		s.engine.Stop()
		s.session.StopCalled = true
	}

	s.engine.ClearItems()
	if s.transition != nil {
		s.engine.RemoveListener(s.transition)
		s.transition = nil
	}
	s.engine.SetRepeatMode(model.RepeatOff)

	if s.session.ID != "" {
		log.Printf("Session %s cleared", shortID(s.session.ID))
	}
	s.session = model.Session{StopCalled: true}

	s.state = model.StateIdle
	s.notifyUpdate()
}

// notifyUpdate calls the update callback if set
func (s *Sequencer) notifyUpdate() {
	if s.onUpdate != nil {
		s.onUpdate(s.state)
	}
}

// bgmTransition switches to single-item repeat once the loop item starts
type bgmTransition struct {
	engine engine.Engine
}

// OnMediaItemTransition sets RepeatOne when playback reaches the loop item
func (t *bgmTransition) OnMediaItemTransition(index int, item model.MediaItem) {
	if index > 0 {
		t.engine.SetRepeatMode(model.RepeatOne)
	}
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
