package scene

import (
	"fmt"
	"image"

	"github.com/Faultbox/birthday-cake/internal/engine/lighting"
	"github.com/Faultbox/birthday-cake/internal/flame"
	"github.com/Faultbox/birthday-cake/internal/geometry"
	"github.com/Faultbox/birthday-cake/pkg/math"
)

// Params controls scene composition.
type Params struct {
	Candle      CandleParams
	Tiers       []Tier
	CandleCount int
	RingRadius  float32
	CandleScale float32
	Ambient     float32
}

// DefaultParams returns the standard scene.
func DefaultParams() Params {
	return Params{
		Candle:      DefaultCandleParams(),
		Tiers:       DefaultTiers(),
		CandleCount: 10,
		RingRadius:  1,
		CandleScale: 0.3,
		Ambient:     0.05,
	}
}

// Floating text placement: height above the cake top, world width and
// extrusion depth.
const (
	TextHeight = 2
	TextWidth  = 4
	TextDepth  = 0.2
)

// TextMeshFromMask extrudes a rasterized text mask to TextWidth wide.
func TextMeshFromMask(mask *image.Alpha) (*geometry.Mesh, error) {
	if mask == nil || mask.Bounds().Dx() == 0 {
		return nil, geometry.ErrTooFewPoints
	}
	pixel := float32(TextWidth) / float32(mask.Bounds().Dx())
	return geometry.TextMesh(mask, pixel, TextDepth)
}

// Scene is the composed scene graph plus the handles the animation loop and
// the interaction controller work on.
type Scene struct {
	Root        *Node
	Table       *Node
	Cake        *Node
	CandleGroup *Node
	Text        *Node
	Candles     []*Candle

	FrontMaterial *flame.Material
	BackMaterial  *flame.Material

	Ambient lighting.AmbientLight
	Sun     lighting.DirectionalLight

	CakeTop float32
}

// Compose builds the whole scene. Geometry errors are returned wrapped.
func Compose(p Params) (*Scene, error) {
	tmpl, err := NewTemplate(p.Candle)
	if err != nil {
		return nil, fmt.Errorf("candle template: %w", err)
	}
	table, err := NewTable()
	if err != nil {
		return nil, fmt.Errorf("table: %w", err)
	}
	cake, top, err := NewCake(p.Tiers)
	if err != nil {
		return nil, fmt.Errorf("cake: %w", err)
	}

	s := &Scene{
		Root:    NewNode("root"),
		Table:   table,
		Cake:    cake,
		CakeTop: top,
		Ambient: lighting.AmbientLight{Color: geometry.White, Intensity: p.Ambient},
		Sun: lighting.DirectionalLight{
			Position:  math.Vec3{X: 10, Y: 10, Z: 10},
			Color:     geometry.White,
			Intensity: 0.025,
		},
	}
	s.FrontMaterial, s.BackMaterial = flame.NewMaterials()

	s.CandleGroup, s.Candles = CreateCandles(tmpl, s.FrontMaterial, s.BackMaterial, p.CandleCount, p.RingRadius)
	s.CandleGroup.Position = math.Vec3{Y: top}
	for _, c := range s.Candles {
		c.Node.Scale = math.Vec3{X: p.CandleScale, Y: p.CandleScale, Z: p.CandleScale}
	}

	s.Cake.Add(s.CandleGroup)
	s.Root.Add(s.Table, s.Cake)
	return s, nil
}

// SetText attaches the floating text mesh above the cake, replacing any
// previous text.
func (s *Scene) SetText(m *geometry.Mesh) {
	if s.Text != nil {
		s.Text.Mesh = m
		return
	}
	n := NewNode("text")
	n.Mesh = m
	n.Position = math.Vec3{Y: s.CakeTop + TextHeight}
	n.Material = Material{Shading: Standard, Color: geometry.Hex(0xffd700), Roughness: 0.4, CastShadow: true}
	s.Text = n
	s.Cake.Add(n)
}

// FlameMaterials returns the shared flame materials.
func (s *Scene) FlameMaterials() []*flame.Material {
	return []*flame.Material{s.FrontMaterial, s.BackMaterial}
}

// BurningCount returns the number of candles not yet triggered.
func (s *Scene) BurningCount() int {
	n := 0
	for _, c := range s.Candles {
		if c.Burning() {
			n++
		}
	}
	return n
}

// Bounds returns the world-space bounds of the cake and its candles.
func (s *Scene) Bounds() geometry.Bounds {
	acc := &geometry.Mesh{}
	s.Cake.Walk(func(n *Node, world math.Mat4) {
		if n.Mesh == nil || n.Flame != nil {
			return
		}
		b := n.Mesh.Bounds()
		for _, p := range [][3]float32{b.Min.Arr(), b.Max.Arr()} {
			acc.Vertices = append(acc.Vertices, geometry.Vertex{Position: world.TransformPoint(p)})
		}
	})
	return acc.Bounds()
}
