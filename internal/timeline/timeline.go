// Package timeline drives the fly-in/hold sequence of the banner.
//
// A Controller is a two-state machine: Moving for MoveDuration, then Still
// for StillDuration, then back to Moving. It is advanced by an external
// per-frame call and owns all of its timing state.
package timeline

import (
	"image/color"
	"math"
	"time"
)

// Phase of the current cycle.
type Phase int

const (
	PhaseMoving Phase = iota
	PhaseStill
)

func (p Phase) String() string {
	switch p {
	case PhaseMoving:
		return "moving"
	case PhaseStill:
		return "still"
	default:
		return "unknown"
	}
}

// Vec3 is a position or a set of Euler angles.
type Vec3 struct {
	X, Y, Z float64
}

// Pose is the transform and color of the animated object for one frame.
type Pose struct {
	Position Vec3
	Rotation Vec3
	Scale    float64
	// Hue in degrees, [0, 360).
	Hue float64
}

// Frame is the result of one Advance call.
type Frame struct {
	// Visible is false until the asset has been reported ready.
	Visible   bool
	Phase     Phase
	Pose      Pose
	Primary   color.RGBA
	Glow      color.RGBA
	Elapsed   time.Duration
	FireChord bool
}

// Controller computes the pose for a given wall-clock reading.
type Controller struct {
	cfg Config

	ready      bool
	cycleStart time.Time
	soundFired bool
	pose       Pose
}

// New creates a controller whose cycle starts at now. It stays invisible
// until Ready is called.
func New(cfg Config, now time.Time) *Controller {
	return &Controller{
		cfg:        cfg,
		cycleStart: now,
		pose:       cfg.restPose(),
	}
}

// Ready marks the animated asset as loaded and restarts the cycle at now.
func (c *Controller) Ready(now time.Time) {
	c.ready = true
	c.cycleStart = now
	c.soundFired = false
	c.pose.Position = Vec3{Z: c.cfg.FarZ}
	c.pose.Rotation = Vec3{}
	c.pose.Scale = c.cfg.StartScale
}

// IsReady reports whether Ready has been called.
func (c *Controller) IsReady() bool { return c.ready }

// SoundFired reports whether the chord has already fired in this cycle.
func (c *Controller) SoundFired() bool { return c.soundFired }

// CycleStart returns the start time of the current cycle.
func (c *Controller) CycleStart() time.Time { return c.cycleStart }

// Config returns the sequencing constants in use.
func (c *Controller) Config() Config { return c.cfg }

// Advance computes the frame at now. It is a no-op before Ready.
func (c *Controller) Advance(now time.Time) Frame {
	if !c.ready {
		return Frame{}
	}

	elapsed := now.Sub(c.cycleStart)
	progress := clamp01(float64(elapsed) / float64(c.cfg.MoveDuration))
	eased := EaseOutCubic(progress)

	f := Frame{Visible: true, Elapsed: elapsed}

	if progress < 1 {
		f.Phase = PhaseMoving
		c.pose.Position = Vec3{Z: c.cfg.FarZ + eased*(c.cfg.NearZ-c.cfg.FarZ)}
		c.pose.Rotation = Vec3{
			X: math.Sin(progress*2*math.Pi) * c.cfg.WobbleAmplitude,
			Y: progress * 2 * math.Pi * c.cfg.SpinTurns,
		}
		c.pose.Scale = c.cfg.StartScale + eased*(1-c.cfg.StartScale)
		c.pose.Hue = math.Mod(progress*360, 360)
	} else {
		// Color keeps the last moving-phase hue.
		f.Phase = PhaseStill
		c.pose.Position = Vec3{Z: c.cfg.NearZ}
		c.pose.Rotation = Vec3{}
		c.pose.Scale = 1
	}

	if elapsed >= c.cfg.MoveDuration && !c.soundFired {
		c.soundFired = true
		f.FireChord = true
	}

	if elapsed >= c.cfg.Total() {
		c.cycleStart = now
		c.soundFired = false
	}

	f.Pose = c.pose
	f.Primary, f.Glow = c.cfg.Colors(c.pose.Hue)
	return f
}

// EaseOutCubic maps linear progress in [0, 1] to a decelerating curve.
func EaseOutCubic(p float64) float64 {
	inv := 1 - p
	return 1 - inv*inv*inv
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
