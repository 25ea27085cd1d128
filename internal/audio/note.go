package audio

import (
	"math"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

var noteOffsets = map[byte]int{
	'C': 0, 'D': 2, 'E': 4, 'F': 5, 'G': 7, 'A': 9, 'B': 11,
}

// ParseNote converts scientific pitch notation ("C4", "F#3", "Bb2") to a
// frequency in Hz, equal temperament with A4 = 440 Hz.
func ParseNote(name string) (float64, error) {
	s := strings.TrimSpace(name)
	if len(s) < 2 {
		return 0, errors.Errorf("invalid note %q", name)
	}

	semitone, ok := noteOffsets[strings.ToUpper(s[:1])[0]]
	if !ok {
		return 0, errors.Errorf("invalid note letter in %q", name)
	}
	rest := s[1:]
	switch rest[0] {
	case '#':
		semitone++
		rest = rest[1:]
	case 'b':
		semitone--
		rest = rest[1:]
	}

	octave, err := strconv.Atoi(rest)
	if err != nil {
		return 0, errors.Wrapf(err, "invalid octave in %q", name)
	}

	midi := (octave+1)*12 + semitone
	return 440 * math.Pow(2, float64(midi-69)/12), nil
}

// ParseNotes parses every name or fails on the first bad one.
func ParseNotes(names []string) ([]float64, error) {
	out := make([]float64, 0, len(names))
	for _, n := range names {
		f, err := ParseNote(n)
		if err != nil {
			return nil, err
		}
		out = append(out, f)
	}
	return out, nil
}
