// Package scene holds the backdrop of the banner: a perspective camera,
// a drifting particle field, a wireframe ground and two orbiting lights.
// It is pure geometry; drawing happens in the game package.
package scene

import (
	"math"

	"github.com/iburimskiy/flying-logo/internal/timeline"
)

// Camera is a perspective camera looking down -Z.
type Camera struct {
	Position timeline.Vec3
	FOV      float64 // vertical, degrees
	Near     float64
	Far      float64

	width, height int
	aspect        float64
	focal         float64 // pixels per unit at distance 1
}

// NewCamera creates a camera for a viewport of width x height pixels.
func NewCamera(z, fov, near, far float64, width, height int) *Camera {
	c := &Camera{
		Position: timeline.Vec3{Z: z},
		FOV:      fov,
		Near:     near,
		Far:      far,
	}
	c.Resize(width, height)
	return c
}

// Resize recomputes the projection for a new viewport.
func (c *Camera) Resize(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	c.width, c.height = width, height
	c.aspect = float64(width) / float64(height)
	c.focal = float64(height) / 2 / math.Tan(c.FOV*math.Pi/360)
}

// Aspect returns the viewport width over height.
func (c *Camera) Aspect() float64 { return c.aspect }

// Viewport returns the viewport size in pixels.
func (c *Camera) Viewport() (int, int) { return c.width, c.height }

// Project maps a world point to screen pixels. ok is false when the point
// is outside the near/far range. scale is pixels per world unit at that
// depth.
func (c *Camera) Project(p timeline.Vec3) (x, y, scale float64, ok bool) {
	depth := c.Position.Z - p.Z
	if depth < c.Near || depth > c.Far {
		return 0, 0, 0, false
	}
	scale = c.focal / depth
	x = float64(c.width)/2 + (p.X-c.Position.X)*scale
	y = float64(c.height)/2 - (p.Y-c.Position.Y)*scale
	return x, y, scale, true
}

// Depth returns the distance from the camera plane to p.
func (c *Camera) Depth(p timeline.Vec3) float64 {
	return c.Position.Z - p.Z
}

// Fog is linear distance fog.
type Fog struct {
	Near, Far float64
}

// Factor returns the fog amount in [0, 1] at the given distance.
func (f Fog) Factor(distance float64) float64 {
	if f.Far <= f.Near {
		return 0
	}
	v := (distance - f.Near) / (f.Far - f.Near)
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// Clip trims a segment to the part in front of the near plane.
func (c *Camera) Clip(s Segment) (Segment, bool) {
	limit := c.Position.Z - c.Near
	aIn, bIn := s.A.Z <= limit, s.B.Z <= limit
	switch {
	case aIn && bIn:
		return s, true
	case !aIn && !bIn:
		return s, false
	}
	t := (limit - s.A.Z) / (s.B.Z - s.A.Z)
	cut := timeline.Vec3{
		X: s.A.X + (s.B.X-s.A.X)*t,
		Y: s.A.Y + (s.B.Y-s.A.Y)*t,
		Z: limit,
	}
	if aIn {
		s.B = cut
	} else {
		s.A = cut
	}
	return s, true
}
