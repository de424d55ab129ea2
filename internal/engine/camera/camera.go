// Package camera provides the orbit camera that circles the cake.
package camera

import (
	gomath "math"

	"github.com/Faultbox/birthday-cake/pkg/math"
)

// OrbitCamera orbits a target on a sphere. Phi is the polar angle from +Y,
// Theta the azimuth from +Z toward +X.
type OrbitCamera struct {
	Target math.Vec3

	// Spherical coordinates
	Radius float32
	Theta  float32
	Phi    float32

	// Constraints
	MinDistance float32
	MaxDistance float32
	MinPolar    float32
	MaxPolar    float32

	// AutoRotateSpeed 1 is one full turn per minute.
	AutoRotate      bool
	AutoRotateSpeed float32

	// Sensitivity
	RotateSpeed float32
	ZoomSpeed   float32

	// Projection
	FovY float32 // radians
	Near float32
	Far  float32
}

// NewOrbitCamera creates the default cake camera: looking at (0,2,0) from
// (0,5,10), polar angle limited to 60-95 degrees, distance to 4-20.
func NewOrbitCamera() *OrbitCamera {
	c := &OrbitCamera{
		Target:          math.Vec3{Y: 2},
		MinDistance:     4,
		MaxDistance:     20,
		MinPolar:        degrees(60),
		MaxPolar:        degrees(95),
		AutoRotate:      true,
		AutoRotateSpeed: 1,
		RotateSpeed:     1,
		ZoomSpeed:       1,
		FovY:            degrees(60),
		Near:            1,
		Far:             1000,
	}
	c.SetPosition(math.Vec3{Y: 5, Z: 10})
	return c
}

// SetPosition places the camera at p, keeping the target.
func (c *OrbitCamera) SetPosition(p math.Vec3) {
	off := p.Sub(c.Target)
	c.Radius = off.Length()
	if c.Radius == 0 {
		c.Theta, c.Phi = 0, 0
	} else {
		c.Theta = float32(gomath.Atan2(float64(off.X), float64(off.Z)))
		c.Phi = float32(gomath.Acos(float64(clamp(off.Y/c.Radius, -1, 1))))
	}
	c.constrain()
}

// Position returns the camera position in world space.
func (c *OrbitCamera) Position() math.Vec3 {
	sinPhi := float32(gomath.Sin(float64(c.Phi)))
	return math.Vec3{
		X: c.Target.X + c.Radius*sinPhi*float32(gomath.Sin(float64(c.Theta))),
		Y: c.Target.Y + c.Radius*float32(gomath.Cos(float64(c.Phi))),
		Z: c.Target.Z + c.Radius*sinPhi*float32(gomath.Cos(float64(c.Theta))),
	}
}

// ViewMatrix returns the view matrix for this camera.
func (c *OrbitCamera) ViewMatrix() math.Mat4 {
	return math.LookAt(c.Position(), c.Target, math.Vec3{Y: 1})
}

// ProjectionMatrix returns the perspective projection for the given aspect.
func (c *OrbitCamera) ProjectionMatrix(aspect float32) math.Mat4 {
	if aspect <= 0 {
		aspect = 1
	}
	return math.Perspective(c.FovY, aspect, c.Near, c.Far)
}

// Update applies auto-rotation for dt seconds.
func (c *OrbitCamera) Update(dt float32) {
	if c.AutoRotate && dt > 0 {
		c.Theta -= 2 * gomath.Pi / 60 * c.AutoRotateSpeed * dt
	}
	c.constrain()
}

// HandleDrag rotates by a pointer drag of (dx, dy) pixels in a viewport of
// the given height. A drag across the full height turns one revolution.
func (c *OrbitCamera) HandleDrag(dx, dy, viewportHeight float32) {
	if viewportHeight <= 0 {
		return
	}
	c.Theta -= 2 * gomath.Pi * dx / viewportHeight * c.RotateSpeed
	c.Phi -= 2 * gomath.Pi * dy / viewportHeight * c.RotateSpeed
	c.constrain()
}

// HandleZoom dollies by wheel steps; positive moves closer.
func (c *OrbitCamera) HandleZoom(steps float32) {
	scale := float32(gomath.Pow(0.95, float64(c.ZoomSpeed*steps)))
	c.Radius *= scale
	c.constrain()
}

func (c *OrbitCamera) constrain() {
	c.Phi = clamp(c.Phi, c.MinPolar, c.MaxPolar)
	c.Radius = clamp(c.Radius, c.MinDistance, c.MaxDistance)
	// Keep theta bounded so long sessions do not lose precision.
	if c.Theta > gomath.Pi || c.Theta < -gomath.Pi {
		c.Theta = float32(gomath.Remainder(float64(c.Theta), 2*gomath.Pi))
	}
}

func degrees(d float32) float32 {
	return d * gomath.Pi / 180
}

func clamp(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
