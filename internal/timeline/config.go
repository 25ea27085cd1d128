package timeline

import (
	"time"

	"github.com/pkg/errors"
)

// Config holds the sequencing constants of one cycle.
type Config struct {
	MoveDuration  time.Duration
	StillDuration time.Duration

	// Depth travelled during the moving phase.
	FarZ  float64
	NearZ float64

	// Uniform scale at the start of the moving phase; it grows to 1.
	StartScale float64

	// Peak x-rotation in radians of the single wobble.
	WobbleAmplitude float64
	// Full y-rotations over the moving phase.
	SpinTurns float64

	// HSL lightness of the banner face and of its complementary glow.
	PrimaryLightness float64
	GlowLightness    float64
}

// DefaultConfig returns the 12 s + 3 s sequence.
func DefaultConfig() Config {
	return Config{
		MoveDuration:     12000 * time.Millisecond,
		StillDuration:    3000 * time.Millisecond,
		FarZ:             -100,
		NearZ:            10,
		StartScale:       0.5,
		WobbleAmplitude:  0.5,
		SpinTurns:        2,
		PrimaryLightness: 0.6,
		GlowLightness:    0.3,
	}
}

// Total is the length of one full cycle.
func (c Config) Total() time.Duration {
	return c.MoveDuration + c.StillDuration
}

// Validate rejects configurations that would divide by zero or never wrap.
func (c Config) Validate() error {
	if c.MoveDuration <= 0 {
		return errors.Errorf("move duration must be positive, got %v", c.MoveDuration)
	}
	if c.StillDuration < 0 {
		return errors.Errorf("still duration must not be negative, got %v", c.StillDuration)
	}
	if c.StartScale <= 0 {
		return errors.Errorf("start scale must be positive, got %v", c.StartScale)
	}
	if c.PrimaryLightness < 0 || c.PrimaryLightness > 1 || c.GlowLightness < 0 || c.GlowLightness > 1 {
		return errors.New("lightness values must be within [0, 1]")
	}
	return nil
}

func (c Config) restPose() Pose {
	return Pose{
		Position: Vec3{Z: c.FarZ},
		Scale:    c.StartScale,
	}
}
