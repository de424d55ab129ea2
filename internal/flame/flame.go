// Package flame provides the candle flame material: a time-driven vertex
// deformation and color ramp applied to a sphere, plus a pure Go mirror of
// both shader stages.
package flame

import (
	_ "embed"
	gomath "math"

	"github.com/Faultbox/birthday-cake/internal/geometry"
	"github.com/Faultbox/birthday-cake/pkg/math"
)

// Shader sources.
var (
	//go:embed shaders/flame.vert
	VertexSource string
	//go:embed shaders/flame.frag
	FragmentSource string
)

// Flame mesh placement relative to the candle origin (before the candle height
// is added to Y).
var (
	Offset   = math.Vec3{X: 0.06, Z: 0.06}
	Rotation = float32(-45 * gomath.Pi / 180)
)

// Side selects which faces a flame material draws.
type Side int

const (
	// Front draws front faces only.
	Front Side = iota
	// Back draws back faces only.
	Back
)

func (s Side) String() string {
	if s == Back {
		return "back"
	}
	return "front"
}

// Material is the shader state shared by every flame drawn with it.
type Material struct {
	Side Side
	Time float32
}

// NewMaterials returns the front and back materials. All candles share this
// pair, so every flame flickers in lockstep.
func NewMaterials() (front, back *Material) {
	return &Material{Side: Front}, &Material{Side: Back}
}

// SetTime updates the time uniform. A nil material is ignored.
func (m *Material) SetTime(t float32) {
	if m == nil {
		return
	}
	m.Time = t
}

// Flame is one drawn flame. Opacity, scale and visibility belong to the
// candle; the material is shared.
type Flame struct {
	Material *Material
	Opacity  float32
	Scale    float32
	Visible  bool
}

// New returns a fully lit flame using material m.
func New(m *Material) *Flame {
	return &Flame{Material: m, Opacity: 1, Scale: 1, Visible: true}
}

// NewMesh builds the flame base mesh: a radius 0.5 sphere resting on Y=0.
func NewMesh() (*geometry.Mesh, error) {
	m, err := geometry.Sphere(0.5, 32, 32)
	if err != nil {
		return nil, err
	}
	return m.Translate(0, 0.5, 0), nil
}
