package audio

import (
	"log"
	"sync"
	"sync/atomic"
	"time"

	"github.com/faiface/beep"
	"github.com/faiface/beep/effects"
	"github.com/faiface/beep/speaker"
	"github.com/pkg/errors"
)

const (
	// TapRingSize is how many recent samples the player keeps for Level.
	TapRingSize = 8192
	// LevelWindow is the number of samples Level averages over.
	LevelWindow = 2048
)

// Output is the device the chord is played on.
type Output interface {
	Init(rate beep.SampleRate, bufferSize int) error
	Play(s beep.Streamer)
}

type speakerOutput struct{}

func (speakerOutput) Init(rate beep.SampleRate, bufferSize int) error {
	return speaker.Init(rate, bufferSize)
}

func (speakerOutput) Play(s beep.Streamer) { speaker.Play(s) }

// SpeakerOutput plays through the system speaker.
func SpeakerOutput() Output { return speakerOutput{} }

// ChordSpec describes the arrival chord.
type ChordSpec struct {
	Notes    []string
	Sustain  time.Duration
	Release  time.Duration
	VolumeDB float64
}

// Player owns the output device and fires the chord on request. The device
// is initialised once, asynchronously; requests made before it is ready are
// dropped.
type Player struct {
	out   Output
	rate  beep.SampleRate
	freqs []float64
	spec  ChordSpec
	tap   *Tap

	// sample, when set, is played instead of the synthesised chord.
	sample *beep.Buffer

	initOnce sync.Once
	done     chan struct{}
	ready    atomic.Bool
	muted    atomic.Bool
	played   atomic.Int64
	initErr  error
}

// NewPlayer validates the chord notes. It does not touch the device.
func NewPlayer(out Output, sampleRate int, spec ChordSpec) (*Player, error) {
	if sampleRate <= 0 {
		return nil, errors.Errorf("invalid sample rate %d", sampleRate)
	}
	freqs, err := ParseNotes(spec.Notes)
	if err != nil {
		return nil, errors.Wrap(err, "chord")
	}
	return &Player{
		out:   out,
		rate:  beep.SampleRate(sampleRate),
		freqs: freqs,
		spec:  spec,
		tap:   NewTap(TapRingSize),
		done:  make(chan struct{}),
	}, nil
}

// Init starts device initialisation in the background. Only the first call
// has any effect.
func (p *Player) Init() {
	p.initOnce.Do(func() {
		go func() {
			defer close(p.done)
			bufferSize := p.rate.N(time.Second / 20)
			if err := p.out.Init(p.rate, bufferSize); err != nil {
				p.initErr = errors.Wrap(err, "init speaker")
				log.Printf("[Audio] %v", p.initErr)
				return
			}
			p.ready.Store(true)
			log.Printf("[Audio] speaker ready at %d Hz", p.rate)
		}()
	})
}

// Wait blocks until a started Init has finished and returns its error.
func (p *Player) Wait() error {
	<-p.done
	return p.initErr
}

// Ready reports whether the device accepted initialisation.
func (p *Player) Ready() bool { return p.ready.Load() }

// SetMuted toggles playback without tearing the device down.
func (p *Player) SetMuted(m bool) { p.muted.Store(m) }

// Muted reports the mute state.
func (p *Player) Muted() bool { return p.muted.Load() }

// Played returns how many chords reached the device.
func (p *Player) Played() int64 { return p.played.Load() }

// PlayChord fires the chord if the device is ready and not muted. The
// request is not queued otherwise.
func (p *Player) PlayChord() bool {
	if !p.ready.Load() || p.muted.Load() {
		return false
	}
	var s beep.Streamer
	if p.sample != nil {
		s = &effects.Volume{Streamer: p.sample.Streamer(0, p.sample.Len()), Base: 10, Volume: p.spec.VolumeDB / 20}
	} else {
		s = NewChord(p.freqs, p.spec.Sustain, p.spec.Release, p.spec.VolumeDB, p.rate)
	}
	p.out.Play(p.tap.Wrap(s))
	p.played.Add(1)
	return true
}

// Level returns how loud the chord currently is, in [0, 1].
func (p *Player) Level() float64 {
	return p.tap.Level(LevelWindow)
}
