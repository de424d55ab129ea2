package geometry

import (
	gomath "math"

	"github.com/Faultbox/birthday-cake/pkg/math"
)

// DefaultRadialSegments is the ring resolution used by ExtrudeCircle callers
// that have no preference.
const DefaultRadialSegments = 24

// Frames holds the Frenet frame at each sample along a curve.
type Frames struct {
	Tangents  []math.Vec3
	Normals   []math.Vec3
	Binormals []math.Vec3
}

// FrenetFrames computes rotation-minimizing frames at steps+1 equally spaced
// samples of the curve.
func FrenetFrames(c *CatmullRom, steps int) Frames {
	f := Frames{
		Tangents:  make([]math.Vec3, steps+1),
		Normals:   make([]math.Vec3, steps+1),
		Binormals: make([]math.Vec3, steps+1),
	}
	for i := 0; i <= steps; i++ {
		f.Tangents[i] = c.Tangent(c.UToT(float32(i) / float32(steps)))
	}

	// Seed the first normal from the axis least aligned with the tangent.
	t0 := f.Tangents[0]
	ax, ay, az := abs32(t0.X), abs32(t0.Y), abs32(t0.Z)
	axis := math.Vec3{Z: 1}
	smallest := float32(gomath.MaxFloat32)
	if ax <= smallest {
		smallest = ax
		axis = math.Vec3{X: 1}
	}
	if ay <= smallest {
		smallest = ay
		axis = math.Vec3{Y: 1}
	}
	if az <= smallest {
		axis = math.Vec3{Z: 1}
	}
	v := t0.Cross(axis).Normalize()
	f.Normals[0] = t0.Cross(v)
	f.Binormals[0] = t0.Cross(f.Normals[0])

	for i := 1; i <= steps; i++ {
		n := f.Normals[i-1]
		axis := f.Tangents[i-1].Cross(f.Tangents[i])
		if axis.Length() > 1e-6 {
			axis = axis.Normalize()
			d := clamp(f.Tangents[i-1].Dot(f.Tangents[i]), -1, 1)
			n = rotateAround(n, axis, float32(gomath.Acos(float64(d))))
		}
		f.Normals[i] = n
		f.Binormals[i] = f.Tangents[i].Cross(n)
	}
	return f
}

// ExtrudeCircle sweeps a circle of the given radius along the curve and caps
// both ends. Ring vertices are P + N*cos(a)*r + B*sin(a)*r.
func ExtrudeCircle(radius float32, radialSegments int, c *CatmullRom, steps int) (*Mesh, error) {
	if radialSegments < 3 {
		return nil, ErrTooFewSegments
	}
	if steps < 1 {
		return nil, ErrTooFewPoints
	}

	frames := FrenetFrames(c, steps)
	m := &Mesh{}
	ring := radialSegments + 1

	centers := make([]math.Vec3, steps+1)
	for s := 0; s <= steps; s++ {
		p := c.Point(c.UToT(float32(s) / float32(steps)))
		centers[s] = p
		n, b := frames.Normals[s], frames.Binormals[s]
		for k := 0; k <= radialSegments; k++ {
			a := float64(k) / float64(radialSegments) * 2 * gomath.Pi
			cos := float32(gomath.Cos(a))
			sin := float32(gomath.Sin(a))
			dir := n.Scale(cos).Add(b.Scale(sin))
			m.Vertices = append(m.Vertices, vertex(p.Add(dir.Scale(radius)), dir.Normalize(),
				float32(k)/float32(radialSegments), float32(s)/float32(steps)))
		}
	}
	for s := 0; s < steps; s++ {
		for k := 0; k < radialSegments; k++ {
			a := uint32(s*ring + k)
			b := uint32((s+1)*ring + k)
			cc := b + 1
			d := a + 1
			m.Indices = append(m.Indices, a, d, b, b, d, cc)
		}
	}

	m.Merge(extrudeCap(m, centers[steps], frames.Tangents[steps], steps*ring, radialSegments, true))
	m.Merge(extrudeCap(m, centers[0], frames.Tangents[0].Neg(), 0, radialSegments, false))
	return m, nil
}

// extrudeCap builds a fan over the ring that starts at vertex offset in src.
func extrudeCap(src *Mesh, center, normal math.Vec3, offset, segments int, end bool) *Mesh {
	m := &Mesh{}
	m.Vertices = append(m.Vertices, vertex(center, normal, 0.5, 0.5))
	for k := 0; k <= segments; k++ {
		v := src.Vertices[offset+k]
		v.Normal = normal.Arr()
		m.Vertices = append(m.Vertices, v)
	}
	for k := uint32(1); k <= uint32(segments); k++ {
		if end {
			m.Indices = append(m.Indices, 0, k, k+1)
		} else {
			m.Indices = append(m.Indices, 0, k+1, k)
		}
	}
	return m
}

// rotateAround applies Rodrigues' rotation of v around a unit axis.
func rotateAround(v, axis math.Vec3, angle float32) math.Vec3 {
	cos := float32(gomath.Cos(float64(angle)))
	sin := float32(gomath.Sin(float64(angle)))
	return v.Scale(cos).
		Add(axis.Cross(v).Scale(sin)).
		Add(axis.Scale(axis.Dot(v) * (1 - cos)))
}

func abs32(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}

func clamp(x, lo, hi float32) float32 {
	return max(lo, min(hi, x))
}
