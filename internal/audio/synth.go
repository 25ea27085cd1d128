package audio

import (
	"math"
	"time"

	"github.com/faiface/beep"
	"github.com/faiface/beep/effects"
)

// oscillator is a sine voice of fixed length.
type oscillator struct {
	freq     float64
	phase    float64
	position int
	length   int
	rate     beep.SampleRate
}

func newOscillator(freq float64, d time.Duration, rate beep.SampleRate) *oscillator {
	return &oscillator{
		freq:   freq,
		length: rate.N(d),
		rate:   rate,
	}
}

func (o *oscillator) Stream(samples [][2]float64) (int, bool) {
	for i := range samples {
		if o.position >= o.length {
			return i, i > 0
		}
		// A touch of second harmonic for a brassier hit.
		v := 0.8*math.Sin(2*math.Pi*o.phase) + 0.2*math.Sin(4*math.Pi*o.phase)
		samples[i][0] = v
		samples[i][1] = v

		o.phase += o.freq / float64(o.rate)
		o.phase -= math.Floor(o.phase)
		o.position++
	}
	return len(samples), true
}

func (o *oscillator) Err() error { return nil }

// envelope applies a linear attack and release.
type envelope struct {
	Source   beep.Streamer
	position int
	attack   int
	release  int
	total    int
}

func newEnvelope(src beep.Streamer, total, attack, release time.Duration, rate beep.SampleRate) *envelope {
	return &envelope{
		Source:  src,
		attack:  rate.N(attack),
		release: rate.N(release),
		total:   rate.N(total),
	}
}

func (e *envelope) Stream(samples [][2]float64) (int, bool) {
	n, ok := e.Source.Stream(samples)
	releaseStart := e.total - e.release
	for i := 0; i < n; i++ {
		if e.position >= e.total {
			return i, i > 0
		}
		gain := 1.0
		if e.attack > 0 && e.position < e.attack {
			gain = float64(e.position) / float64(e.attack)
		}
		if e.release > 0 && e.position >= releaseStart {
			gain = math.Min(gain, float64(e.total-e.position)/float64(e.release))
		}
		samples[i][0] *= gain
		samples[i][1] *= gain
		e.position++
	}
	return n, ok
}

func (e *envelope) Err() error { return e.Source.Err() }

// ChordAttack is the onset ramp of every voice.
const ChordAttack = 10 * time.Millisecond

// NewChord mixes one enveloped voice per frequency. The voices are
// normalised so the sum stays within [-1, 1]; volumeDB is applied on top.
func NewChord(freqs []float64, sustain, release time.Duration, volumeDB float64, rate beep.SampleRate) beep.Streamer {
	total := sustain + release
	voices := make([]beep.Streamer, 0, len(freqs))
	for _, f := range freqs {
		voices = append(voices, newEnvelope(newOscillator(f, total, rate), total, ChordAttack, release, rate))
	}

	norm := 1.0
	if len(voices) > 0 {
		norm = 1 / float64(len(voices))
	}
	mixed := &effects.Volume{
		Streamer: beep.Take(rate.N(total), beep.Mix(voices...)),
		Base:     2,
		Volume:   math.Log2(norm),
	}

	return &effects.Volume{
		Streamer: mixed,
		Base:     10,
		Volume:   volumeDB / 20,
	}
}
