package engine

import (
	"errors"
	"math"
	"sync"
	"testing"
	"time"

	"github.com/faiface/beep"

	"github.com/nduc/bgm-player/internal/model"
)

// fakeOutput records what the service renders without an audio device
type fakeOutput struct {
	mu       sync.Mutex
	initRate beep.SampleRate
	initBuf  int
	streamer beep.Streamer
	clears   int
}

func (o *fakeOutput) Init(sampleRate beep.SampleRate, bufferSize int) error {
	o.initRate = sampleRate
	o.initBuf = bufferSize
	return nil
}

func (o *fakeOutput) Play(s beep.Streamer) { o.streamer = s }

func (o *fakeOutput) Clear() {
	o.streamer = nil
	o.clears++
}

func (o *fakeOutput) Lock()   { o.mu.Lock() }
func (o *fakeOutput) Unlock() { o.mu.Unlock() }

// pull renders frames from the attached streamer the way the speaker does
func (o *fakeOutput) pull(frames int) int {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.streamer == nil {
		return 0
	}
	n, _ := o.streamer.Stream(make([][2]float64, frames))
	return n
}

type nopCloser struct {
	beep.StreamSeeker
}

func (nopCloser) Close() error { return nil }

// fakeOpener serves silent buffers of a fixed length per URI
func fakeOpener(rate beep.SampleRate, frames map[string]int) Opener {
	return func(uri string) (beep.StreamSeekCloser, beep.Format, error) {
		n, ok := frames[uri]
		if !ok {
			return nil, beep.Format{}, errors.New("not found")
		}
		format := beep.Format{SampleRate: rate, NumChannels: 2, Precision: 2}
		buffer := beep.NewBuffer(format)
		buffer.Append(beep.Silence(n))
		return nopCloser{buffer.Streamer(0, buffer.Len())}, format, nil
	}
}

type recordingListener struct {
	indexes chan int
}

func (l *recordingListener) OnMediaItemTransition(index int, item model.MediaItem) {
	l.indexes <- index
}

// loopListener switches to single-item repeat on the loop like the sequencer
type loopListener struct {
	service *Service
	done    chan struct{}
}

func (l *loopListener) OnMediaItemTransition(index int, item model.MediaItem) {
	if index > 0 {
		l.service.SetRepeatMode(model.RepeatOne)
		close(l.done)
	}
}

func newTestService(out *fakeOutput, frames map[string]int) *Service {
	return NewService(Options{
		SampleRate: testRate,
		BufferSize: 50 * time.Millisecond,
		Volume:     1,
		Output:     out,
		Opener:     fakeOpener(testRate, frames),
	})
}

func TestNewService_Defaults(t *testing.T) {
	s := NewService(Options{Output: &fakeOutput{}})

	if s.sampleRate != DefaultSampleRate {
		t.Errorf("Expected default sample rate %d, got %d", DefaultSampleRate, s.sampleRate)
	}
	if s.bufferSize != DefaultBufferSize {
		t.Errorf("Expected default buffer %v, got %v", DefaultBufferSize, s.bufferSize)
	}
	if s.CurrentIndex() != -1 {
		t.Errorf("Expected index -1 before prepare, got %d", s.CurrentIndex())
	}
}

func TestPrepare_EmptyPlaylist(t *testing.T) {
	s := newTestService(&fakeOutput{}, nil)

	if err := s.Prepare(); !errors.Is(err, ErrEmptyPlaylist) {
		t.Errorf("Expected ErrEmptyPlaylist, got %v", err)
	}
}

func TestPrepare_OpenFailure(t *testing.T) {
	out := &fakeOutput{}
	s := newTestService(out, map[string]int{"a": 10})
	s.AddItem(model.NewMediaItem(model.SlotIntro, "a"))
	s.AddItem(model.NewMediaItem(model.SlotLoop, "missing"))

	if err := s.Prepare(); err == nil {
		t.Fatal("Expected error for missing item, got nil")
	}
	if out.streamer != nil {
		t.Error("Expected nothing attached to the output")
	}
}

func TestPlayPauseStop(t *testing.T) {
	out := &fakeOutput{}
	s := newTestService(out, map[string]int{"a": 100})
	s.AddItem(model.NewMediaItem(model.SlotLoop, "a"))

	var updates []model.EngineStatus
	s.SetUpdateCallback(func(status model.EngineStatus) { updates = append(updates, status) })

	if err := s.Prepare(); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if out.initRate != testRate || out.initBuf != 400 {
		t.Errorf("Expected output init at %d/400, got %d/%d", testRate, out.initRate, out.initBuf)
	}
	if s.IsPlaying() {
		t.Error("Expected prepared engine to be paused")
	}

	s.Play()
	if !s.IsPlaying() {
		t.Error("Expected engine to be playing")
	}
	if n := out.pull(10); n != 10 {
		t.Errorf("Expected 10 frames, got %d", n)
	}

	s.Pause()
	if s.IsPlaying() {
		t.Error("Expected engine to be paused")
	}

	s.Stop()
	if out.streamer != nil || out.clears != 1 {
		t.Errorf("Expected output cleared once, got streamer=%v clears=%d", out.streamer, out.clears)
	}
	if s.CurrentIndex() != -1 {
		t.Errorf("Expected index -1 after stop, got %d", s.CurrentIndex())
	}
	if len(s.Items()) != 1 {
		t.Errorf("Expected stop to keep the playlist, got %d items", len(s.Items()))
	}
	if len(updates) == 0 || updates[len(updates)-1].Playing {
		t.Errorf("Expected a final not-playing update, got %v", updates)
	}
}

func TestPlay_WithoutPrepareIsIgnored(t *testing.T) {
	s := newTestService(&fakeOutput{}, nil)

	s.Play()
	if s.IsPlaying() {
		t.Error("Expected play without prepare to be ignored")
	}
}

func TestClearItems(t *testing.T) {
	out := &fakeOutput{}
	s := newTestService(out, map[string]int{"a": 10})
	s.AddItem(model.NewMediaItem(model.SlotLoop, "a"))
	if err := s.Prepare(); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	s.ClearItems()
	if len(s.Items()) != 0 {
		t.Errorf("Expected empty playlist, got %d items", len(s.Items()))
	}
	if out.streamer != nil {
		t.Error("Expected output to be cleared")
	}
}

func TestListeners_Identity(t *testing.T) {
	s := newTestService(&fakeOutput{}, nil)
	a := &recordingListener{}
	b := &recordingListener{}

	s.AddListener(a)
	s.AddListener(a)
	s.AddListener(b)
	if s.Listeners() != 2 {
		t.Errorf("Expected 2 listeners, got %d", s.Listeners())
	}

	s.RemoveListener(a)
	s.RemoveListener(a)
	if s.Listeners() != 1 {
		t.Errorf("Expected 1 listener, got %d", s.Listeners())
	}
}

func TestTransition_ReachesListener(t *testing.T) {
	out := &fakeOutput{}
	s := newTestService(out, map[string]int{"intro": 20, "loop": 20})
	s.AddItem(model.NewMediaItem(model.SlotIntro, "intro"))
	s.AddItem(model.NewMediaItem(model.SlotLoop, "loop"))

	listener := &recordingListener{indexes: make(chan int, 4)}
	s.AddListener(listener)

	if err := s.Prepare(); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	s.Play()
	out.pull(30)

	select {
	case index := <-listener.indexes:
		if index != 1 {
			t.Errorf("Expected transition to index 1, got %d", index)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Expected a transition notification")
	}

	if s.CurrentIndex() != 1 {
		t.Errorf("Expected current index 1, got %d", s.CurrentIndex())
	}
}

func TestTransition_ShortLoopSurvivesLongFill(t *testing.T) {
	out := &fakeOutput{}
	s := newTestService(out, map[string]int{"intro": 100, "loop": 2000})
	s.AddItem(model.NewMediaItem(model.SlotIntro, "intro"))
	s.AddItem(model.NewMediaItem(model.SlotLoop, "loop"))

	listener := &loopListener{service: s, done: make(chan struct{})}
	s.AddListener(listener)

	if err := s.Prepare(); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	s.Play()

	// A single output buffer covers the intro and more than one loop pass
	if n := out.pull(4410); n != 4410 {
		t.Fatalf("Expected 4410 frames, got %d", n)
	}

	select {
	case <-listener.done:
	case <-time.After(2 * time.Second):
		t.Fatal("Expected the loop transition to reach the listener")
	}

	if n := out.pull(10000); n != 10000 {
		t.Errorf("Expected the loop to keep repeating, got %d frames", n)
	}
	if s.Ended() {
		t.Error("Expected playback not to end")
	}
	if s.CurrentIndex() != 1 {
		t.Errorf("Expected current index 1, got %d", s.CurrentIndex())
	}
}

func TestEnded_AfterLastItem(t *testing.T) {
	out := &fakeOutput{}
	s := newTestService(out, map[string]int{"a": 10})
	s.AddItem(model.NewMediaItem(model.SlotLoop, "a"))

	updates := make(chan model.EngineStatus, 8)
	s.SetUpdateCallback(func(status model.EngineStatus) { updates <- status })

	if err := s.Prepare(); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	s.Play()
	if s.Ended() {
		t.Fatal("Expected a fresh queue not to be ended")
	}

	out.pull(20)
	out.pull(20)

	deadline := time.After(2 * time.Second)
	for {
		select {
		case status := <-updates:
			if status.Ended {
				if status.Playing {
					t.Error("Expected an ended engine not to be playing")
				}
				if !s.Ended() {
					t.Error("Expected Ended to report true")
				}
				return
			}
		case <-deadline:
			t.Fatal("Expected an update reporting the end of playback")
		}
	}
}

func TestSetRepeatMode_AppliesToPreparedQueue(t *testing.T) {
	out := &fakeOutput{}
	s := newTestService(out, map[string]int{"loop": 10})
	s.AddItem(model.NewMediaItem(model.SlotLoop, "loop"))
	if err := s.Prepare(); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	s.Play()

	s.SetRepeatMode(model.RepeatOne)
	if s.RepeatMode() != model.RepeatOne {
		t.Errorf("Expected repeat one, got %s", s.RepeatMode())
	}

	if n := out.pull(100); n != 100 {
		t.Errorf("Expected the single item to repeat, got %d frames", n)
	}
}

func TestPrepare_Resamples(t *testing.T) {
	out := &fakeOutput{}
	s := NewService(Options{
		SampleRate: testRate,
		Output:     out,
		Opener:     fakeOpener(testRate/2, map[string]int{"half": 100}),
	})
	s.AddItem(model.NewMediaItem(model.SlotLoop, "half"))

	if err := s.Prepare(); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if s.queue.tracks[0].closer != nil {
		t.Error("Expected resampled track to be held in memory")
	}
}

func TestSetVolume(t *testing.T) {
	out := &fakeOutput{}
	s := newTestService(out, map[string]int{"a": 10})
	s.AddItem(model.NewMediaItem(model.SlotLoop, "a"))
	if err := s.Prepare(); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	tests := []struct {
		level  float64
		silent bool
		volume float64
	}{
		{1, false, 0},
		{0.5, false, -1},
		{0, true, 0},
		{-3, true, 0},
		{7, false, 0},
	}

	for _, test := range tests {
		s.SetVolume(test.level)
		if s.volume.Silent != test.silent {
			t.Errorf("SetVolume(%v): Silent = %v, expected %v", test.level, s.volume.Silent, test.silent)
		}
		if math.Abs(s.volume.Volume-test.volume) > 1e-9 {
			t.Errorf("SetVolume(%v): Volume = %v, expected %v", test.level, s.volume.Volume, test.volume)
		}
	}
}

func TestRelease(t *testing.T) {
	s := newTestService(&fakeOutput{}, map[string]int{"a": 10})
	s.AddItem(model.NewMediaItem(model.SlotLoop, "a"))
	s.AddListener(&recordingListener{})

	s.Release()

	if s.Listeners() != 0 {
		t.Errorf("Expected no listeners after release, got %d", s.Listeners())
	}
	if err := s.Prepare(); !errors.Is(err, ErrReleased) {
		t.Errorf("Expected ErrReleased, got %v", err)
	}
}
