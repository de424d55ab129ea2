package scene

import (
	"github.com/Faultbox/birthday-cake/internal/geometry"
	"github.com/Faultbox/birthday-cake/pkg/math"
)

// Tier is one cylindrical cake layer.
type Tier struct {
	Radius float32
	Height float32
	Color  uint32
}

// DefaultTiers returns the base, middle and top layers.
func DefaultTiers() []Tier {
	return []Tier{
		{Radius: 2, Height: 0.75, Color: 0xf4a460},
		{Radius: 1.8, Height: 0.5, Color: 0xffdab9},
		{Radius: 1.5, Height: 0.5, Color: 0xffe4b5},
	}
}

// TierSegments is the angular resolution of every tier.
const TierSegments = 32

// NewCake stacks tiers bottom to top with no gaps, the first resting on Y=0.
// It returns the cake group and the height of its top surface.
func NewCake(tiers []Tier) (*Node, float32, error) {
	cake := NewNode("cake")
	var base float32
	for _, t := range tiers {
		m, err := geometry.Cylinder(t.Radius, t.Radius, t.Height, TierSegments)
		if err != nil {
			return nil, 0, err
		}
		n := NewNode("tier")
		n.Mesh = m
		n.Position = math.Vec3{Y: base + t.Height/2}
		n.Material = Material{
			Shading:       Standard,
			Color:         geometry.Hex(t.Color),
			Roughness:     0.6,
			CastShadow:    true,
			ReceiveShadow: true,
		}
		cake.Add(n)
		base += t.Height
	}
	return cake, base, nil
}

// Table dimensions.
const (
	TableRadius   = 14
	TableHeight   = 0.5
	TableSegments = 64
	// TableTexture is the asset slot of the table surface.
	TableTexture = "table"
)

// NewTable builds the table disc with its top surface at Y=0.
func NewTable() (*Node, error) {
	m, err := geometry.Cylinder(TableRadius, TableRadius, TableHeight, TableSegments)
	if err != nil {
		return nil, err
	}
	m.Translate(0, -TableHeight/2, 0)

	n := NewNode("table")
	n.Mesh = m
	n.Material = Material{
		Shading:       Standard,
		Color:         geometry.White,
		Roughness:     0.75,
		Texture:       TableTexture,
		ReceiveShadow: true,
	}
	return n, nil
}
