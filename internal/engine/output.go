package engine

import (
	"sync"

	"github.com/faiface/beep"
	"github.com/faiface/beep/speaker"
)

// Output is the audio device the engine renders into
type Output interface {
	Init(sampleRate beep.SampleRate, bufferSize int) error
	Play(s beep.Streamer)
	Clear()
	Lock()
	Unlock()
}

// speakerOutput renders through the beep speaker, initialised once per process
type speakerOutput struct {
	once sync.Once
	err  error
}

// NewSpeakerOutput returns the default system output
func NewSpeakerOutput() Output {
	return &speakerOutput{}
}

func (o *speakerOutput) Init(sampleRate beep.SampleRate, bufferSize int) error {
	o.once.Do(func() {
		o.err = speaker.Init(sampleRate, bufferSize)
	})
	return o.err
}

func (o *speakerOutput) Play(s beep.Streamer) { speaker.Play(s) }
func (o *speakerOutput) Clear()               { speaker.Clear() }
func (o *speakerOutput) Lock()                { speaker.Lock() }
func (o *speakerOutput) Unlock()              { speaker.Unlock() }
