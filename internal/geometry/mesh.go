// Package geometry builds renderable meshes from parametric profiles.
//
// Conventions follow the usual right-handed, Y-up layout: front faces wind
// counter-clockwise, lathe and cylinder angles start on +Z and sweep toward +X.
package geometry

import (
	"errors"

	"github.com/Faultbox/birthday-cake/pkg/math"
)

var (
	// ErrTooFewSegments is returned when an angular resolution cannot form a solid.
	ErrTooFewSegments = errors.New("geometry: at least 3 segments required")
	// ErrSelfIntersecting is returned for profiles whose edges cross each other.
	ErrSelfIntersecting = errors.New("geometry: profile self-intersects")
	// ErrTooFewPoints is returned for profiles or curves without enough points.
	ErrTooFewPoints = errors.New("geometry: not enough points")
)

// White is the neutral vertex color; materials multiply it by their base color.
var White = [3]float32{1, 1, 1}

// Vertex is the interleaved vertex layout uploaded to the GPU.
type Vertex struct {
	Position [3]float32
	Normal   [3]float32
	UV       [2]float32
	Color    [3]float32
}

// Mesh is an indexed triangle list.
type Mesh struct {
	Vertices []Vertex
	Indices  []uint32
}

// Bounds is an axis-aligned bounding box.
type Bounds struct {
	Min, Max math.Vec3
}

// Size returns the extent along each axis.
func (b Bounds) Size() math.Vec3 {
	return b.Max.Sub(b.Min)
}

// TriangleCount returns the number of triangles in the mesh.
func (m *Mesh) TriangleCount() int {
	return len(m.Indices) / 3
}

// Translate moves every vertex by (x, y, z).
func (m *Mesh) Translate(x, y, z float32) *Mesh {
	for i := range m.Vertices {
		m.Vertices[i].Position[0] += x
		m.Vertices[i].Position[1] += y
		m.Vertices[i].Position[2] += z
	}
	return m
}

// SetColor assigns one color to every vertex.
func (m *Mesh) SetColor(c [3]float32) *Mesh {
	for i := range m.Vertices {
		m.Vertices[i].Color = c
	}
	return m
}

// Merge appends other into m, offsetting its indices.
func (m *Mesh) Merge(other *Mesh) *Mesh {
	base := uint32(len(m.Vertices))
	m.Vertices = append(m.Vertices, other.Vertices...)
	for _, idx := range other.Indices {
		m.Indices = append(m.Indices, base+idx)
	}
	return m
}

// Bounds returns the axis-aligned bounds of all vertices.
func (m *Mesh) Bounds() Bounds {
	if len(m.Vertices) == 0 {
		return Bounds{}
	}
	b := Bounds{
		Min: math.V3(m.Vertices[0].Position),
		Max: math.V3(m.Vertices[0].Position),
	}
	for _, v := range m.Vertices[1:] {
		p := v.Position
		b.Min.X = min(b.Min.X, p[0])
		b.Min.Y = min(b.Min.Y, p[1])
		b.Min.Z = min(b.Min.Z, p[2])
		b.Max.X = max(b.Max.X, p[0])
		b.Max.Y = max(b.Max.Y, p[1])
		b.Max.Z = max(b.Max.Z, p[2])
	}
	return b
}

// Hex converts a 0xRRGGBB color to float components.
func Hex(c uint32) [3]float32 {
	return [3]float32{
		float32((c>>16)&0xff) / 255,
		float32((c>>8)&0xff) / 255,
		float32(c&0xff) / 255,
	}
}

func vertex(p math.Vec3, n math.Vec3, u, v float32) Vertex {
	return Vertex{Position: p.Arr(), Normal: n.Arr(), UV: [2]float32{u, v}, Color: White}
}
