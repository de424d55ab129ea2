package geometry

import (
	gomath "math"

	"github.com/Faultbox/birthday-cake/pkg/math"
)

// Lathe revolves a profile around the Y axis. Profile X is the radius.
// Normals come from the profile's edge directions, averaged at shared points.
func Lathe(points []math.Vec2, segments int) (*Mesh, error) {
	if segments < 3 {
		return nil, ErrTooFewSegments
	}
	if err := ValidateProfile(points); err != nil {
		return nil, err
	}

	n := len(points)
	normals := profileNormals(points)

	m := &Mesh{
		Vertices: make([]Vertex, 0, (segments+1)*n),
		Indices:  make([]uint32, 0, segments*(n-1)*6),
	}

	for i := 0; i <= segments; i++ {
		phi := float64(i) / float64(segments) * 2 * gomath.Pi
		sin := float32(gomath.Sin(phi))
		cos := float32(gomath.Cos(phi))

		for j, p := range points {
			pos := math.Vec3{X: p.X * sin, Y: p.Y, Z: p.X * cos}
			nrm := math.Vec3{X: normals[j].X * sin, Y: normals[j].Y, Z: normals[j].X * cos}
			m.Vertices = append(m.Vertices, vertex(pos, nrm.Normalize(),
				float32(i)/float32(segments), float32(j)/float32(n-1)))
		}
	}

	for i := 0; i < segments; i++ {
		for j := 0; j < n-1; j++ {
			a := uint32(i*n + j)
			b := a + uint32(n)
			c := b + 1
			d := a + 1
			m.Indices = append(m.Indices, a, b, d, c, d, b)
		}
	}

	return m, nil
}

// profileNormals returns outward 2D normals (right-hand side of travel).
func profileNormals(points []math.Vec2) []math.Vec2 {
	n := len(points)
	edge := make([]math.Vec2, n-1)
	for j := 0; j < n-1; j++ {
		d := points[j+1].Sub(points[j])
		edge[j] = math.Vec2{X: d.Y, Y: -d.X}.Normalize()
	}

	out := make([]math.Vec2, n)
	out[0] = edge[0]
	out[n-1] = edge[n-2]
	for j := 1; j < n-1; j++ {
		out[j] = edge[j-1].Add(edge[j]).Normalize()
	}
	return out
}
