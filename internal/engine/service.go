package engine

import (
	"errors"
	"fmt"
	"log"
	"math"
	"os"
	"sync"
	"time"

	"fyne.io/fyne/v2/storage"
	"github.com/faiface/beep"
	"github.com/faiface/beep/effects"
	"github.com/faiface/beep/wav"

	"github.com/nduc/bgm-player/internal/model"
)

// Engine defaults
const (
	DefaultSampleRate beep.SampleRate = 44100
	DefaultBufferSize                 = 100 * time.Millisecond

	// ResampleQuality is the beep resampler quality for foreign sample rates
	ResampleQuality = 4

	// volumeBase is the exponent base of effects.Volume
	volumeBase = 2
)

var (
	// ErrEmptyPlaylist is returned by Prepare when no items were added
	ErrEmptyPlaylist = errors.New("playlist is empty")

	// ErrReleased is returned after Release
	ErrReleased = errors.New("engine released")
)

// Opener decodes the media at uri
type Opener func(uri string) (beep.StreamSeekCloser, beep.Format, error)

// Options configures a Service
type Options struct {
	SampleRate beep.SampleRate
	BufferSize time.Duration
	Volume     float64 // 0..1

	Output Output // defaults to the beep speaker
	Opener Opener // defaults to OpenWav

	// Dispatch moves audio goroutine events onto the owner thread
	Dispatch func(func())
}

// Service is the beep-backed playback engine
type Service struct {
	mu        sync.Mutex
	items     []model.MediaItem
	listeners []Listener
	repeat    model.RepeatMode
	level     float64

	queue   *queue
	ctrl    *beep.Ctrl
	volume  *effects.Volume
	playing bool

	sampleRate beep.SampleRate
	bufferSize time.Duration
	output     Output
	opener     Opener
	dispatch   func(func())
	onUpdate   func(model.EngineStatus) // callback for UI updates
	released   bool
}

// NewService creates a new playback engine
func NewService(opts Options) *Service {
	s := &Service{
		sampleRate: opts.SampleRate,
		bufferSize: opts.BufferSize,
		output:     opts.Output,
		opener:     opts.Opener,
		dispatch:   opts.Dispatch,
		level:      clampLevel(opts.Volume),
	}

	if s.sampleRate <= 0 {
		s.sampleRate = DefaultSampleRate
	}
	if s.bufferSize <= 0 {
		s.bufferSize = DefaultBufferSize
	}
	if s.output == nil {
		s.output = NewSpeakerOutput()
	}
	if s.opener == nil {
		s.opener = OpenWav
	}
	if s.dispatch == nil {
		s.dispatch = func(f func()) { f() }
	}

	return s
}

// OpenWav decodes a WAV file referenced by a file URI
func OpenWav(uri string) (beep.StreamSeekCloser, beep.Format, error) {
	u, err := storage.ParseURI(uri)
	if err != nil {
		return nil, beep.Format{}, fmt.Errorf("invalid uri %s: %w", uri, err)
	}

	f, err := os.Open(u.Path())
	if err != nil {
		return nil, beep.Format{}, err
	}

	streamer, format, err := wav.Decode(f)
	if err != nil {
		f.Close()
		return nil, beep.Format{}, fmt.Errorf("failed to decode %s: %w", u.Name(), err)
	}

	return streamer, format, nil
}

// SetUpdateCallback sets the callback function for status updates
func (s *Service) SetUpdateCallback(callback func(model.EngineStatus)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onUpdate = callback
}

// AddItem appends item to the playlist. It takes effect on the next Prepare.
func (s *Service) AddItem(item model.MediaItem) {
	s.mu.Lock()
	s.items = append(s.items, item)
	s.mu.Unlock()

	s.notifyUpdate()
}

// ClearItems stops playback and empties the playlist
func (s *Service) ClearItems() {
	s.mu.Lock()
	s.stopLocked()
	s.items = nil
	s.mu.Unlock()

	s.notifyUpdate()
}

// Items returns a copy of the playlist
func (s *Service) Items() []model.MediaItem {
	s.mu.Lock()
	defer s.mu.Unlock()

	items := make([]model.MediaItem, len(s.items))
	copy(items, s.items)
	return items
}

// CurrentIndex returns the index of the playing item, or -1 when nothing is prepared
func (s *Service) CurrentIndex() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.currentIndexLocked()
}

// SetRepeatMode sets the repeat mode, applied at the next item end
func (s *Service) SetRepeatMode(mode model.RepeatMode) {
	s.mu.Lock()
	s.repeat = mode
	if s.queue != nil {
		s.queue.setRepeatMode(mode)
	}
	s.mu.Unlock()

	s.notifyUpdate()
}

// RepeatMode returns the current repeat mode
func (s *Service) RepeatMode() model.RepeatMode {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.repeat
}

// AddListener registers l; registering the same listener twice is a no-op
func (s *Service) AddListener(l Listener) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.listeners {
		if existing == l {
			return
		}
	}
	s.listeners = append(s.listeners, l)
}

// RemoveListener unregisters l
func (s *Service) RemoveListener(l Listener) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, existing := range s.listeners {
		if existing == l {
			s.listeners = append(s.listeners[:i], s.listeners[i+1:]...)
			return
		}
	}
}

// Listeners returns the number of registered listeners
func (s *Service) Listeners() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.listeners)
}

// Prepare decodes every item and attaches the playlist to the output, paused
func (s *Service) Prepare() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.released {
		return ErrReleased
	}
	if len(s.items) == 0 {
		return ErrEmptyPlaylist
	}

	s.stopLocked()

	if err := s.output.Init(s.sampleRate, s.sampleRate.N(s.bufferSize)); err != nil {
		return fmt.Errorf("failed to initialize audio output: %w", err)
	}

	tracks := make([]*track, 0, len(s.items))
	for _, item := range s.items {
		t, err := s.openTrack(item)
		if err != nil {
			for _, opened := range tracks {
				opened.Close()
			}
			return fmt.Errorf("failed to open %s item: %w", item.Slot, err)
		}
		tracks = append(tracks, t)
	}

	q := newQueue(tracks, s.repeat)
	q.onTransition = func(index int, item model.MediaItem) {
		go s.handleTransition(q, index, item)
	}
	q.onEnded = func() {
		go s.handleEnded(q)
	}

	s.queue = q
	s.ctrl = &beep.Ctrl{Streamer: q, Paused: true}
	s.volume = &effects.Volume{Streamer: s.ctrl, Base: volumeBase}
	applyLevel(s.volume, s.level)

	s.output.Play(s.volume)
	log.Printf("Prepared playlist with %d items (repeat %s)", len(tracks), s.repeat)
	return nil
}

// Play starts or resumes a prepared playlist
func (s *Service) Play() {
	s.mu.Lock()
	if s.ctrl == nil {
		s.mu.Unlock()
		log.Printf("Play ignored: nothing prepared")
		return
	}

	s.output.Lock()
	ended := s.queue.ended()
	if !ended {
		s.ctrl.Paused = false
	}
	s.output.Unlock()
	if ended {
		s.mu.Unlock()
		log.Printf("Play ignored: playlist ended")
		return
	}
	s.playing = true
	s.mu.Unlock()

	s.notifyUpdate()
}

// Pause pauses playback, keeping the position
func (s *Service) Pause() {
	s.mu.Lock()
	if s.ctrl == nil {
		s.mu.Unlock()
		return
	}

	s.output.Lock()
	s.ctrl.Paused = true
	s.output.Unlock()
	s.playing = false
	s.mu.Unlock()

	s.notifyUpdate()
}

// Stop detaches the playlist from the output and releases decoders
func (s *Service) Stop() {
	s.mu.Lock()
	s.stopLocked()
	s.mu.Unlock()

	s.notifyUpdate()
}

// Ended reports whether the prepared playlist ran out or failed while
// streaming. A stopped or unprepared engine has not ended.
func (s *Service) Ended() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.endedLocked()
}

// IsPlaying reports whether audio is being rendered
func (s *Service) IsPlaying() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.playing
}

// SetVolume sets the output level in the range 0..1
func (s *Service) SetVolume(level float64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.level = clampLevel(level)
	if s.volume != nil {
		s.output.Lock()
		applyLevel(s.volume, s.level)
		s.output.Unlock()
	}
}

// Release stops playback and drops listeners; the engine cannot be prepared again
func (s *Service) Release() {
	s.mu.Lock()
	s.stopLocked()
	s.listeners = nil
	s.released = true
	s.mu.Unlock()
}

// Status returns a snapshot of the engine state
func (s *Service) Status() model.EngineStatus {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.statusLocked()
}

// openTrack decodes item, resampling into memory when its rate differs
func (s *Service) openTrack(item model.MediaItem) (*track, error) {
	streamer, format, err := s.opener(item.URI)
	if err != nil {
		return nil, err
	}

	if format.SampleRate == s.sampleRate {
		return &track{item: item, streamer: streamer, closer: streamer}, nil
	}

	defer streamer.Close()
	buffer := beep.NewBuffer(beep.Format{
		SampleRate:  s.sampleRate,
		NumChannels: format.NumChannels,
		Precision:   format.Precision,
	})
	buffer.Append(beep.Resample(ResampleQuality, format.SampleRate, s.sampleRate, streamer))
	if err := streamer.Err(); err != nil {
		return nil, err
	}

	return &track{item: item, streamer: buffer.Streamer(0, buffer.Len())}, nil
}

// stopLocked tears down the prepared queue; s.mu must be held
func (s *Service) stopLocked() {
	if s.queue == nil {
		return
	}

	s.output.Clear()
	s.queue.close()
	s.queue = nil
	s.ctrl = nil
	s.volume = nil
	s.playing = false
}

// handleTransition forwards a queue transition to listeners on the owner thread
func (s *Service) handleTransition(q *queue, index int, item model.MediaItem) {
	s.dispatch(func() {
		s.mu.Lock()
		if s.queue != q {
			s.mu.Unlock()
			return
		}
		listeners := make([]Listener, len(s.listeners))
		copy(listeners, s.listeners)
		s.mu.Unlock()

		for _, l := range listeners {
			l.OnMediaItemTransition(index, item)
		}
		q.settleTransition()
		s.notifyUpdate()
	})
}

// handleEnded marks a finished queue as not playing
func (s *Service) handleEnded(q *queue) {
	s.dispatch(func() {
		s.mu.Lock()
		if s.queue != q {
			s.mu.Unlock()
			return
		}
		s.playing = false
		if err := q.Err(); err != nil {
			log.Printf("Playback ended with error: %v", err)
		}
		s.mu.Unlock()

		s.notifyUpdate()
	})
}

// notifyUpdate calls the update callback. Callers are on the owner thread;
// audio events reach it through dispatch first.
func (s *Service) notifyUpdate() {
	s.mu.Lock()
	callback := s.onUpdate
	status := s.statusLocked()
	s.mu.Unlock()

	if callback != nil {
		callback(status)
	}
}

func (s *Service) statusLocked() model.EngineStatus {
	return model.EngineStatus{
		Playing: s.playing,
		Index:   s.currentIndexLocked(),
		Items:   len(s.items),
		Repeat:  s.repeat,
		Ended:   s.endedLocked(),
	}
}

func (s *Service) endedLocked() bool {
	if s.queue == nil {
		return false
	}
	s.output.Lock()
	defer s.output.Unlock()
	return s.queue.ended()
}

func (s *Service) currentIndexLocked() int {
	if s.queue == nil {
		return -1
	}
	s.output.Lock()
	defer s.output.Unlock()
	if s.queue.ended() {
		return len(s.queue.tracks) - 1
	}
	return s.queue.index
}

// clampLevel keeps level within 0..1
func clampLevel(level float64) float64 {
	return math.Max(0, math.Min(1, level))
}

// applyLevel maps a linear 0..1 level onto effects.Volume
func applyLevel(v *effects.Volume, level float64) {
	if level <= 0 {
		v.Silent = true
		v.Volume = 0
		return
	}
	v.Silent = false
	v.Volume = math.Log2(level)
}
