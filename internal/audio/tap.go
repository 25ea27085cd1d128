package audio

import (
	"math"
	"sync"

	"github.com/faiface/beep"
)

// Tap records the last N samples that passed through it so the renderer
// can react to what is currently audible.
type Tap struct {
	mu        sync.RWMutex
	buffer    [][2]float64
	nextIndex int
}

// NewTap creates a tap holding ringSize samples.
func NewTap(ringSize int) *Tap {
	return &Tap{buffer: make([][2]float64, ringSize)}
}

// Wrap returns a streamer that plays src and records into the tap.
func (t *Tap) Wrap(src beep.Streamer) beep.Streamer {
	return &tapStreamer{tap: t, Source: src}
}

type tapStreamer struct {
	tap    *Tap
	Source beep.Streamer
}

func (s *tapStreamer) Stream(samples [][2]float64) (int, bool) {
	n, ok := s.Source.Stream(samples)
	if n > 0 {
		s.tap.record(samples[:n])
	}
	switch {
	case !ok:
		s.tap.Clear()
	case n < len(samples):
		s.tap.silence(len(samples) - n)
	}
	return n, ok
}

func (s *tapStreamer) Err() error { return s.Source.Err() }

func (t *Tap) record(samples [][2]float64) {
	t.mu.Lock()
	defer t.mu.Unlock()
	for _, smp := range samples {
		t.buffer[t.nextIndex] = smp
		t.nextIndex++
		if t.nextIndex >= len(t.buffer) {
			t.nextIndex = 0
		}
	}
}

// silence records n zero samples, so a finished stream stops counting
// towards Level.
func (t *Tap) silence(n int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	for i := 0; i < n; i++ {
		t.buffer[t.nextIndex] = [2]float64{}
		t.nextIndex++
		if t.nextIndex >= len(t.buffer) {
			t.nextIndex = 0
		}
	}
}

// Snapshot returns up to the last n samples, oldest first.
func (t *Tap) Snapshot(n int) [][2]float64 {
	t.mu.RLock()
	defer t.mu.RUnlock()

	if n > len(t.buffer) {
		n = len(t.buffer)
	}
	out := make([][2]float64, n)
	idx := t.nextIndex - n
	if idx < 0 {
		idx += len(t.buffer)
	}
	for i := range out {
		out[i] = t.buffer[idx]
		idx++
		if idx >= len(t.buffer) {
			idx = 0
		}
	}
	return out
}

// Level returns a compressed RMS of the last n samples in [0, 1].
func (t *Tap) Level(n int) float64 {
	samples := t.Snapshot(n)
	if len(samples) == 0 {
		return 0
	}
	var sumSquares float64
	for _, s := range samples {
		mono := (s[0] + s[1]) * 0.5
		sumSquares += mono * mono
	}
	rms := math.Sqrt(sumSquares / float64(len(samples)))
	return math.Min(1, math.Pow(rms, 0.3))
}

// Clear forgets recorded samples.
func (t *Tap) Clear() {
	t.mu.Lock()
	defer t.mu.Unlock()
	for i := range t.buffer {
		t.buffer[i] = [2]float64{}
	}
	t.nextIndex = 0
}
