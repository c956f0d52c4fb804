package engine

import (
	"io"
	"sync/atomic"

	"github.com/faiface/beep"

	"github.com/nduc/bgm-player/internal/model"
)

// track is one decoded playlist entry
type track struct {
	item     model.MediaItem
	streamer beep.StreamSeeker
	closer   io.Closer
}

// Close releases the decoder of the track
func (t *track) Close() {
	if t.closer != nil {
		t.closer.Close()
	}
}

// queue streams tracks in order and applies the repeat mode at track ends.
// Stream runs on the audio goroutine; callbacks must not block on it.
type queue struct {
	tracks []*track
	index  int
	repeat atomic.Int32
	err    error

	// pending is set from a transition until its listeners have run
	pending atomic.Bool

	onTransition func(index int, item model.MediaItem)
	onEnded      func()
}

// newQueue creates a queue positioned at the first track
func newQueue(tracks []*track, mode model.RepeatMode) *queue {
	q := &queue{tracks: tracks}
	q.setRepeatMode(mode)
	return q
}

func (q *queue) setRepeatMode(mode model.RepeatMode) {
	q.repeat.Store(int32(mode))
}

func (q *queue) repeatMode() model.RepeatMode {
	return model.RepeatMode(q.repeat.Load())
}

// settleTransition marks the listeners of the last transition as done
func (q *queue) settleTransition() {
	q.pending.Store(false)
}

// ended reports whether the queue ran past its last track
func (q *queue) ended() bool {
	return q.index >= len(q.tracks)
}

// Stream implements beep.Streamer
func (q *queue) Stream(samples [][2]float64) (n int, ok bool) {
	// Tracks that restart without producing samples would spin forever
	idle := 0

	for len(samples) > 0 && !q.ended() {
		cur := q.tracks[q.index]
		sn, _ := cur.streamer.Stream(samples)
		n += sn
		if sn == len(samples) {
			break
		}
		samples = samples[sn:]

		if err := cur.streamer.Err(); err != nil {
			q.err = err
			q.finish()
			break
		}

		if sn == 0 {
			idle++
			if idle > len(q.tracks) {
				q.finish()
				break
			}
		} else {
			idle = 0
		}

		q.advance()
	}

	if n == 0 && q.ended() {
		return 0, false
	}
	return n, true
}

// Err implements beep.Streamer
func (q *queue) Err() error {
	return q.err
}

// advance moves past the end of the current track. Until listeners of a
// transition have run, the last track replays so a repeat mode set by them
// applies even when the fill already reached its end.
func (q *queue) advance() {
	mode := q.repeatMode()

	if mode == model.RepeatOne {
		q.seekStart(q.tracks[q.index])
		return
	}

	switch {
	case q.index+1 < len(q.tracks):
		q.index++
	case mode == model.RepeatAll:
		q.index = 0
	case q.pending.Load():
		q.seekStart(q.tracks[q.index])
		return
	default:
		q.finish()
		return
	}

	next := q.tracks[q.index]
	if !q.seekStart(next) {
		return
	}
	q.pending.Store(true)
	if q.onTransition != nil {
		q.onTransition(q.index, next.item)
	}
}

// seekStart rewinds t; a failed seek ends the queue
func (q *queue) seekStart(t *track) bool {
	if err := t.streamer.Seek(0); err != nil {
		q.err = err
		q.finish()
		return false
	}
	return true
}

func (q *queue) finish() {
	q.index = len(q.tracks)
	if q.onEnded != nil {
		q.onEnded()
	}
}

// close releases all decoders
func (q *queue) close() {
	for _, t := range q.tracks {
		t.Close()
	}
}
