package geometry

import (
	gomath "math"

	"github.com/Faultbox/birthday-cake/pkg/math"
)

// Cylinder builds a capped (possibly tapered) cylinder centered on the origin
// with its axis along Y.
func Cylinder(radiusTop, radiusBottom, height float32, radialSegments int) (*Mesh, error) {
	if radialSegments < 3 {
		return nil, ErrTooFewSegments
	}

	m := &Mesh{}
	half := height / 2
	slope := (radiusBottom - radiusTop) / height

	// Side: row 0 is the top edge, row 1 the bottom edge.
	for row := 0; row <= 1; row++ {
		v := float32(row)
		radius := v*(radiusBottom-radiusTop) + radiusTop
		y := -v*height + half
		for x := 0; x <= radialSegments; x++ {
			u := float32(x) / float32(radialSegments)
			theta := float64(u) * 2 * gomath.Pi
			sin := float32(gomath.Sin(theta))
			cos := float32(gomath.Cos(theta))
			pos := math.Vec3{X: radius * sin, Y: y, Z: radius * cos}
			nrm := math.Vec3{X: sin, Y: slope, Z: cos}.Normalize()
			m.Vertices = append(m.Vertices, vertex(pos, nrm, u, 1-v))
		}
	}
	stride := uint32(radialSegments + 1)
	for x := uint32(0); x < uint32(radialSegments); x++ {
		a := x
		b := x + stride
		c := x + stride + 1
		d := x + 1
		m.Indices = append(m.Indices, a, b, d, b, c, d)
	}

	if radiusTop > 0 {
		m.Merge(disc(radiusTop, half, radialSegments, true))
	}
	if radiusBottom > 0 {
		m.Merge(disc(radiusBottom, -half, radialSegments, false))
	}
	return m, nil
}

// disc builds a flat cap at height y facing +Y (top) or -Y.
func disc(radius, y float32, segments int, top bool) *Mesh {
	m := &Mesh{}
	nrm := math.Vec3{Y: 1}
	if !top {
		nrm = math.Vec3{Y: -1}
	}

	m.Vertices = append(m.Vertices, vertex(math.Vec3{Y: y}, nrm, 0.5, 0.5))
	for x := 0; x <= segments; x++ {
		theta := float64(x) / float64(segments) * 2 * gomath.Pi
		sin := float32(gomath.Sin(theta))
		cos := float32(gomath.Cos(theta))
		pos := math.Vec3{X: radius * sin, Y: y, Z: radius * cos}
		m.Vertices = append(m.Vertices, vertex(pos, nrm, cos*0.5+0.5, sin*0.5+0.5))
	}
	for x := uint32(1); x <= uint32(segments); x++ {
		if top {
			m.Indices = append(m.Indices, 0, x, x+1)
		} else {
			m.Indices = append(m.Indices, 0, x+1, x)
		}
	}
	return m
}

// Sphere builds a UV sphere centered on the origin. V runs from 1 at the top
// pole to 0 at the bottom pole.
func Sphere(radius float32, widthSegments, heightSegments int) (*Mesh, error) {
	if widthSegments < 3 || heightSegments < 2 {
		return nil, ErrTooFewSegments
	}

	m := &Mesh{}
	grid := make([][]uint32, heightSegments+1)
	var idx uint32
	for iy := 0; iy <= heightSegments; iy++ {
		v := float64(iy) / float64(heightSegments)
		row := make([]uint32, widthSegments+1)
		for ix := 0; ix <= widthSegments; ix++ {
			u := float64(ix) / float64(widthSegments)
			pos := math.Vec3{
				X: -radius * float32(gomath.Cos(u*2*gomath.Pi)*gomath.Sin(v*gomath.Pi)),
				Y: radius * float32(gomath.Cos(v*gomath.Pi)),
				Z: radius * float32(gomath.Sin(u*2*gomath.Pi)*gomath.Sin(v*gomath.Pi)),
			}
			m.Vertices = append(m.Vertices, vertex(pos, pos.Normalize(), float32(u), float32(1-v)))
			row[ix] = idx
			idx++
		}
		grid[iy] = row
	}

	for iy := 0; iy < heightSegments; iy++ {
		for ix := 0; ix < widthSegments; ix++ {
			a := grid[iy][ix+1]
			b := grid[iy][ix]
			c := grid[iy+1][ix]
			d := grid[iy+1][ix+1]
			if iy != 0 {
				m.Indices = append(m.Indices, a, b, d)
			}
			if iy != heightSegments-1 {
				m.Indices = append(m.Indices, b, c, d)
			}
		}
	}
	return m, nil
}
