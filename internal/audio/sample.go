package audio

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/faiface/beep"
	"github.com/faiface/beep/flac"
	"github.com/faiface/beep/mp3"
	"github.com/faiface/beep/wav"
	"github.com/pkg/errors"
)

// LoadSample decodes a wav, mp3 or flac file fully into memory, resampled
// to rate.
func LoadSample(path string, rate beep.SampleRate) (*beep.Buffer, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "open sample %s", path)
	}

	var (
		streamer beep.StreamSeekCloser
		format   beep.Format
	)
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".wav":
		streamer, format, err = wav.Decode(f)
	case ".mp3":
		streamer, format, err = mp3.Decode(f)
	case ".flac":
		streamer, format, err = flac.Decode(f)
	default:
		_ = f.Close()
		return nil, errors.New("unsupported sample type: " + ext)
	}
	if err != nil {
		_ = f.Close()
		return nil, errors.Wrapf(err, "decode sample %s", path)
	}
	defer streamer.Close()

	out := beep.Format{SampleRate: rate, NumChannels: 2, Precision: 2}
	buf := beep.NewBuffer(out)
	var src beep.Streamer = streamer
	if format.SampleRate != rate {
		src = beep.Resample(4, format.SampleRate, rate, streamer)
	}
	buf.Append(src)
	if err := streamer.Err(); err != nil {
		return nil, errors.Wrapf(err, "read sample %s", path)
	}
	return buf, nil
}

// UseSample replaces the synthesised chord with a recorded hit.
func (p *Player) UseSample(buf *beep.Buffer) {
	p.sample = buf
}
