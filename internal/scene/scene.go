package scene

import (
	"image/color"
	"math"
	"math/rand"
	"time"

	"github.com/iburimskiy/flying-logo/internal/config"
	"github.com/iburimskiy/flying-logo/internal/timeline"
)

// PointLight orbits in the XY plane.
type PointLight struct {
	Color    color.RGBA
	Position timeline.Vec3
}

// Segment is one wireframe edge.
type Segment struct {
	A, B timeline.Vec3
}

// Scene is the ambient part of the presentation. None of its motion depends
// on the banner timeline.
type Scene struct {
	Camera *Camera
	Fog    Fog

	Background color.RGBA

	particles []timeline.Vec3
	// Accumulated rotation of the particle field, unbounded.
	ParticleRotX float64
	ParticleRotY float64

	ground []Segment
	Lights [2]PointLight
}

// Options configure New.
type Options struct {
	Width, Height int
	ParticleCount int
	Seed          int64
}

// New builds the scene. A zero Seed uses the current time.
func New(opts Options) *Scene {
	seed := opts.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	particles := make([]timeline.Vec3, opts.ParticleCount)
	for i := range particles {
		particles[i] = timeline.Vec3{
			X: (rng.Float64() - 0.5) * config.ParticleSpread,
			Y: (rng.Float64() - 0.5) * config.ParticleSpread,
			Z: (rng.Float64() - 0.5) * config.ParticleSpread,
		}
	}

	s := &Scene{
		Camera:     NewCamera(config.CameraZ, config.CameraFOV, config.CameraNear, config.CameraFar, opts.Width, opts.Height),
		Fog:        Fog{Near: config.FogNear, Far: config.FogFar},
		Background: hexColor(config.BackgroundColorHex),
		particles:  particles,
		ground:     buildGround(config.GroundSize, config.GroundSegments, config.GroundY),
		Lights: [2]PointLight{
			{Color: hexColor(0xff00ff), Position: timeline.Vec3{X: -10, Y: 5, Z: config.LightZ}},
			{Color: hexColor(0x00ffff), Position: timeline.Vec3{X: 10, Y: -5, Z: config.LightZ}},
		},
	}
	return s
}

// Resize forwards a viewport change to the camera.
func (s *Scene) Resize(width, height int) {
	s.Camera.Resize(width, height)
}

// Step advances the ambient motion by one frame at wall-clock time now.
func (s *Scene) Step(now time.Time) {
	s.ParticleRotY += config.ParticleSpinY
	s.ParticleRotX += config.ParticleSpinX

	t := float64(now.UnixMilli()) * config.LightTimeScale
	s.Lights[0].Position.X = math.Sin(t) * config.LightOrbitRadiusX
	s.Lights[0].Position.Y = math.Cos(t) * config.LightOrbitRadiusY
	s.Lights[1].Position.X = math.Cos(t*config.SecondLightSpeed) * config.LightOrbitRadiusX
	s.Lights[1].Position.Y = math.Sin(t*config.SecondLightSpeed) * config.LightOrbitRadiusY
}

// Particles returns the particle positions with the field rotation applied.
func (s *Scene) Particles() []timeline.Vec3 {
	out := make([]timeline.Vec3, len(s.particles))
	rot := timeline.Vec3{X: s.ParticleRotX, Y: s.ParticleRotY}
	for i, p := range s.particles {
		out[i] = Rotate(p, rot)
	}
	return out
}

// Ground returns the wireframe edges of the ground plane.
func (s *Scene) Ground() []Segment { return s.ground }

// buildGround lays a size x size plane at height y, split into segs x segs
// cells.
func buildGround(size float64, segs int, y float64) []Segment {
	half := size / 2
	step := size / float64(segs)
	out := make([]Segment, 0, 2*(segs+1))
	for i := 0; i <= segs; i++ {
		v := -half + float64(i)*step
		out = append(out,
			Segment{A: timeline.Vec3{X: -half, Y: y, Z: v}, B: timeline.Vec3{X: half, Y: y, Z: v}},
			Segment{A: timeline.Vec3{X: v, Y: y, Z: -half}, B: timeline.Vec3{X: v, Y: y, Z: half}},
		)
	}
	return out
}

// Rotate applies an XYZ Euler rotation: the matrix is Rx*Ry*Rz, so the
// point turns about Z first, then Y, then X.
func Rotate(p, r timeline.Vec3) timeline.Vec3 {
	if r.Z != 0 {
		sin, cos := math.Sincos(r.Z)
		p.X, p.Y = p.X*cos-p.Y*sin, p.X*sin+p.Y*cos
	}
	if r.Y != 0 {
		sin, cos := math.Sincos(r.Y)
		p.X, p.Z = p.X*cos+p.Z*sin, -p.X*sin+p.Z*cos
	}
	if r.X != 0 {
		sin, cos := math.Sincos(r.X)
		p.Y, p.Z = p.Y*cos-p.Z*sin, p.Y*sin+p.Z*cos
	}
	return p
}

func hexColor(v uint32) color.RGBA {
	return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 0xff}
}
