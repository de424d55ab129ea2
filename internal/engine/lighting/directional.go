package lighting

import "github.com/Faultbox/birthday-cake/pkg/math"

// DirectionalLight shines from Position toward the origin.
type DirectionalLight struct {
	Position  math.Vec3
	Color     [3]float32
	Intensity float32
}

// Direction returns the normalized direction the light travels in.
func (l DirectionalLight) Direction() math.Vec3 {
	return l.Position.Neg().Normalize()
}

// AmbientLight lights every surface evenly.
type AmbientLight struct {
	Color     [3]float32
	Intensity float32
}

// Radiance returns color scaled by intensity.
func (l AmbientLight) Radiance() [3]float32 {
	return [3]float32{l.Color[0] * l.Intensity, l.Color[1] * l.Intensity, l.Color[2] * l.Intensity}
}
