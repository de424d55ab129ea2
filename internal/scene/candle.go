package scene

import (
	gomath "math"

	"github.com/Faultbox/birthday-cake/internal/engine/lighting"
	"github.com/Faultbox/birthday-cake/internal/extinguish"
	"github.com/Faultbox/birthday-cake/internal/flame"
	"github.com/Faultbox/birthday-cake/internal/geometry"
	"github.com/Faultbox/birthday-cake/pkg/math"
)

// Candle colors.
var (
	CandleColor = geometry.Hex(0xff4500)
	WickLow     = geometry.Hex(0xffff44)
	WickMid     = geometry.Hex(0x994411)
	WickHigh    = [3]float32{0, 0, 0}
	LightColor  = geometry.Hex(0xffaa33)
)

// CandleParams sizes a candle.
type CandleParams struct {
	BaseRadius float32
	Height     float32
	Segments   int
}

// DefaultCandleParams returns the standard candle.
func DefaultCandleParams() CandleParams {
	return CandleParams{BaseRadius: 0.4, Height: 4, Segments: 64}
}

// Template holds the meshes every candle shares.
type Template struct {
	Params CandleParams
	Body   *geometry.Mesh
	Cap    *geometry.Mesh
	Wick   *geometry.Mesh
	Flame  *geometry.Mesh
}

// NewTemplate builds the candle meshes.
func NewTemplate(p CandleParams) (*Template, error) {
	profile := geometry.NewPath().
		MoveTo(0, 0).
		AbsArc(0, 0, p.BaseRadius, gomath.Pi*1.5, gomath.Pi*2, false).
		LineTo(p.BaseRadius, p.Height).
		Points(12)
	body, err := geometry.Lathe(profile, p.Segments)
	if err != nil {
		return nil, err
	}
	body.SetColor(CandleColor)

	top, err := geometry.Cylinder(0.2, p.BaseRadius, 0.1, 32)
	if err != nil {
		return nil, err
	}
	top.SetColor(CandleColor)

	curve, err := geometry.NewCatmullRom(
		math.Vec3{Y: p.Height - 1},
		math.Vec3{Y: p.Height - 0.5, Z: -0.0625},
		math.Vec3{X: 0.25, Y: p.Height - 0.5, Z: 0.125},
	)
	if err != nil {
		return nil, err
	}
	wick, err := geometry.ExtrudeCircle(0.0625, geometry.DefaultRadialSegments, curve, 8)
	if err != nil {
		return nil, err
	}
	geometry.ColorBands(wick, p.Height-1, 0.15, 0.4, WickLow, WickMid, WickHigh)
	wick.Translate(0, 0.95, 0)

	fl, err := flame.NewMesh()
	if err != nil {
		return nil, err
	}

	return &Template{Params: p, Body: body, Cap: top, Wick: wick, Flame: fl}, nil
}

// Candle is one placed candle. It applies extinguish progress to its flames
// and lights.
type Candle struct {
	Node    *Node
	Body    *Node
	Wick    *Node
	Steady  *Node
	Flicker *Node
	Flames  [2]*Node
	Fade    *extinguish.Fade
}

// NewCandle builds a candle at angle (radians) on a ring of the given radius.
// Meshes come from t; front and back are the shared flame materials.
func NewCandle(t *Template, front, back *flame.Material, angle, radius float32) *Candle {
	h := t.Params.Height
	c := &Candle{}

	c.Node = NewNode("candle")
	c.Node.Position = math.Vec3{
		X: float32(gomath.Cos(float64(angle))) * radius,
		Z: float32(gomath.Sin(float64(angle))) * radius,
	}

	c.Body = NewNode("body")
	c.Body.Mesh = t.Body
	c.Body.Material = Material{Shading: Standard, Color: geometry.White, Roughness: 0.5, CastShadow: true}

	top := NewNode("cap")
	top.Mesh = t.Cap
	top.Position = math.Vec3{Y: h}
	top.Material = c.Body.Material
	c.Body.Add(top)

	c.Wick = NewNode("wick")
	c.Wick.Mesh = t.Wick
	c.Wick.Material = Material{Shading: Unlit, Color: geometry.White}
	c.Body.Add(c.Wick)

	steady := lighting.NewPointLight(LightColor, 1, 5, 2)
	c.Steady = NewNode("steady-light")
	c.Steady.Position = math.Vec3{Y: h}
	c.Steady.Light = &steady

	flicker := lighting.NewPointLight(LightColor, 1, 10, 2)
	c.Flicker = NewNode("flicker-light")
	c.Flicker.Position = math.Vec3{Y: h + 1}
	c.Flicker.Light = &flicker

	for i, m := range []*flame.Material{front, back} {
		f := NewNode("flame")
		f.Mesh = t.Flame
		f.Flame = flame.New(m)
		f.Position = math.Vec3{X: flame.Offset.X, Y: h, Z: flame.Offset.Z}
		f.RotationY = flame.Rotation
		c.Flames[i] = f
	}

	c.Node.Add(c.Body, c.Steady, c.Flicker, c.Flames[0], c.Flames[1])
	c.Fade = extinguish.New(c)
	return c
}

// Burning reports whether the candle has not started fading.
func (c *Candle) Burning() bool {
	if c == nil {
		return false
	}
	return c.Fade == nil || c.Fade.Burning()
}

// Extinguished reports whether the fade has finished.
func (c *Candle) Extinguished() bool {
	return c != nil && c.Fade != nil && c.Fade.State() == extinguish.Extinguished
}

// SetFlameOpacity implements extinguish.Target.
func (c *Candle) SetFlameOpacity(v float32) {
	for _, f := range c.Flames {
		if f != nil && f.Flame != nil {
			f.Flame.Opacity = v
		}
	}
}

// SetFlameScale implements extinguish.Target.
func (c *Candle) SetFlameScale(v float32) {
	for _, f := range c.Flames {
		if f == nil {
			continue
		}
		f.Scale = math.Vec3{X: v, Y: v, Z: v}
		if f.Flame != nil {
			f.Flame.Scale = v
		}
	}
}

// SetFlameVisible implements extinguish.Target.
func (c *Candle) SetFlameVisible(v bool) {
	for _, f := range c.Flames {
		if f == nil {
			continue
		}
		f.Visible = v
		if f.Flame != nil {
			f.Flame.Visible = v
		}
	}
}

// SetLightIntensity implements extinguish.Target.
func (c *Candle) SetLightIntensity(v float32) {
	for _, n := range []*Node{c.Steady, c.Flicker} {
		if n != nil && n.Light != nil {
			n.Light.Intensity = v
		}
	}
}

// CreateCandles places count candles evenly on a ring. Candle i sits at
// angle 2*pi*i/count.
func CreateCandles(t *Template, front, back *flame.Material, count int, radius float32) (*Node, []*Candle) {
	group := NewNode("candles")
	candles := make([]*Candle, 0, count)
	for i := 0; i < count; i++ {
		angle := float32(float64(i) / float64(count) * 2 * gomath.Pi)
		c := NewCandle(t, front, back, angle, radius)
		group.Add(c.Node)
		candles = append(candles, c)
	}
	return group, candles
}
