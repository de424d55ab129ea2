package shadow

import (
	gomath "math"

	"github.com/Faultbox/birthday-cake/internal/geometry"
	"github.com/Faultbox/birthday-cake/pkg/math"
)

// AABB represents an axis-aligned bounding box.
type AABB struct {
	Min [3]float32
	Max [3]float32
}

// FromBounds converts mesh bounds into an AABB.
func FromBounds(b geometry.Bounds) AABB {
	return AABB{Min: b.Min.Arr(), Max: b.Max.Arr()}
}

// Center returns the center point of the AABB.
func (b AABB) Center() math.Vec3 {
	return math.Vec3{
		X: (b.Min[0] + b.Max[0]) / 2,
		Y: (b.Min[1] + b.Max[1]) / 2,
		Z: (b.Min[2] + b.Max[2]) / 2,
	}
}

// Radius returns the distance from center to corner (half-diagonal).
func (b AABB) Radius() float32 {
	dx := (b.Max[0] - b.Min[0]) / 2
	dy := (b.Max[1] - b.Min[1]) / 2
	dz := (b.Max[2] - b.Min[2]) / 2
	return sqrt32(dx*dx + dy*dy + dz*dz)
}

// MinRadius keeps the shadow frustum usable for degenerate bounds.
const MinRadius = 1

// CalculateDirectionalLightMatrix computes view-projection for shadow map.
// toLight is the normalized direction TO the light, i.e. the negated
// direction the light travels in. casters is the AABB of everything that
// casts a shadow; receivers outside it still sample the map but fall on the
// white border.
func CalculateDirectionalLightMatrix(toLight math.Vec3, casters AABB) math.Mat4 {
	center := casters.Center()
	radius := casters.Radius()
	if radius < MinRadius {
		radius = MinRadius
	}

	// Light far enough to see the whole box
	lightDistance := radius * 2.0
	lightPos := center.Add(toLight.Scale(lightDistance))

	up := math.Vec3{Y: 1}
	if abs32(toLight.Y) > 0.99 {
		up = math.Vec3{Z: 1}
	}

	view := math.LookAt(lightPos, center, up)

	padding := radius * 0.1
	halfSize := radius + padding
	near := float32(0.1)
	far := lightDistance + radius + padding

	proj := math.Ortho(-halfSize, halfSize, -halfSize, halfSize, near, far)

	return proj.Mul(view)
}

// sqrt32 returns the square root of a float32.
func sqrt32(x float32) float32 {
	return float32(gomath.Sqrt(float64(x)))
}

// abs32 returns the absolute value of a float32.
func abs32(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}
