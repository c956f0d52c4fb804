package sequencer

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/faiface/beep"

	"github.com/nduc/bgm-player/internal/engine"
	"github.com/nduc/bgm-player/internal/model"
)

const testRate beep.SampleRate = 8000

// deviceOutput stands in for the speaker and renders on demand
type deviceOutput struct {
	mu       sync.Mutex
	streamer beep.Streamer
}

func (o *deviceOutput) Init(beep.SampleRate, int) error { return nil }
func (o *deviceOutput) Play(s beep.Streamer)            { o.streamer = s }
func (o *deviceOutput) Clear()                          { o.streamer = nil }
func (o *deviceOutput) Lock()                           { o.mu.Lock() }
func (o *deviceOutput) Unlock()                         { o.mu.Unlock() }

func (o *deviceOutput) pull(frames int) int {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.streamer == nil {
		return 0
	}
	n, _ := o.streamer.Stream(make([][2]float64, frames))
	return n
}

type bufferCloser struct {
	beep.StreamSeeker
}

func (bufferCloser) Close() error { return nil }

// silentFiles opens every known URI as silence of the given length
func silentFiles(frames map[string]int) engine.Opener {
	return func(uri string) (beep.StreamSeekCloser, beep.Format, error) {
		n, ok := frames[uri]
		if !ok {
			return nil, beep.Format{}, errors.New("not found")
		}
		format := beep.Format{SampleRate: testRate, NumChannels: 2, Precision: 2}
		buffer := beep.NewBuffer(format)
		buffer.Append(beep.Silence(n))
		return bufferCloser{buffer.Streamer(0, buffer.Len())}, format, nil
	}
}

func TestPlayback_IntroThenLoopOnEngine(t *testing.T) {
	out := &deviceOutput{}
	e := engine.NewService(engine.Options{
		SampleRate: testRate,
		Volume:     1,
		Output:     out,
		Opener:     silentFiles(map[string]int{"file:///a.wav": 300, "file:///b.wav": 200}),
	})
	defer e.Release()

	s := NewSequencer(e, fakeSources{model.SlotIntro: "file:///a.wav", model.SlotLoop: "file:///b.wav"})
	if err := s.Play(); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	items := e.Items()
	if len(items) != 2 || items[0].Slot != model.SlotIntro || items[1].Slot != model.SlotLoop {
		t.Fatalf("Expected [intro loop], got %v", items)
	}
	if e.RepeatMode() != model.RepeatOff {
		t.Errorf("Expected repeat off during the intro, got %s", e.RepeatMode())
	}
	if e.Listeners() != 1 {
		t.Errorf("Expected 1 listener, got %d", e.Listeners())
	}

	// Past the intro and the first loop pass in one buffer
	if n := out.pull(800); n != 800 {
		t.Fatalf("Expected 800 frames, got %d", n)
	}

	deadline := time.Now().Add(2 * time.Second)
	for e.RepeatMode() != model.RepeatOne {
		if time.Now().After(deadline) {
			t.Fatal("Expected repeat one after reaching the loop")
		}
		time.Sleep(5 * time.Millisecond)
	}

	for i := 0; i < 10; i++ {
		if n := out.pull(500); n != 500 {
			t.Fatalf("Expected the loop to keep playing, got %d frames on pull %d", n, i)
		}
	}
	if e.CurrentIndex() != 1 || e.Ended() {
		t.Errorf("Expected to stay on the loop, index=%d ended=%v", e.CurrentIndex(), e.Ended())
	}
	if s.State() != model.StatePlayingIntroThenLoop {
		t.Errorf("Expected state %s, got %s", model.StatePlayingIntroThenLoop, s.State())
	}

	s.Clear()

	if len(e.Items()) != 0 {
		t.Errorf("Expected an empty playlist, got %d items", len(e.Items()))
	}
	if e.RepeatMode() != model.RepeatOff {
		t.Errorf("Expected repeat off after clear, got %s", e.RepeatMode())
	}
	if e.Listeners() != 0 {
		t.Errorf("Expected no listeners after clear, got %d", e.Listeners())
	}
	if s.State() != model.StateIdle {
		t.Errorf("Expected state %s, got %s", model.StateIdle, s.State())
	}
}

func TestPlayback_EndedSessionRestarts(t *testing.T) {
	out := &deviceOutput{}
	e := engine.NewService(engine.Options{
		SampleRate: testRate,
		Volume:     1,
		Output:     out,
		Opener:     silentFiles(map[string]int{"file:///b.wav": 100}),
	})
	defer e.Release()

	s := NewSequencer(e, fakeSources{model.SlotLoop: "file:///b.wav"})
	if err := s.Play(); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	first := s.Session().ID

	// Run the single item out as if repeat were dropped by another listener
	e.SetRepeatMode(model.RepeatOff)
	out.pull(200)
	out.pull(200)

	if !e.Ended() {
		t.Fatal("Expected the engine to report the end of playback")
	}

	if err := s.Play(); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if s.Session().ID == first {
		t.Error("Expected a new session")
	}
	if !e.IsPlaying() || e.Ended() {
		t.Errorf("Expected the rebuilt playlist to play, playing=%v ended=%v", e.IsPlaying(), e.Ended())
	}
	if n := out.pull(300); n != 300 {
		t.Errorf("Expected the loop to repeat again, got %d frames", n)
	}
}
