package geometry

import (
	gomath "math"

	"github.com/Faultbox/birthday-cake/pkg/math"
)

// CatmullRom is an open centripetal Catmull-Rom spline through its control points.
type CatmullRom struct {
	Control []math.Vec3

	lengths []float32
}

// NewCatmullRom returns a spline through points. At least two points are required.
func NewCatmullRom(points ...math.Vec3) (*CatmullRom, error) {
	if len(points) < 2 {
		return nil, ErrTooFewPoints
	}
	return &CatmullRom{Control: points}, nil
}

// Point returns the position at parameter t in [0, 1].
func (c *CatmullRom) Point(t float32) math.Vec3 {
	pts := c.Control
	l := len(pts)

	p := float32(l-1) * t
	seg := int(gomath.Floor(float64(p)))
	weight := p - float32(seg)
	if weight == 0 && seg == l-1 {
		seg = l - 2
		weight = 1
	}
	if seg < 0 {
		seg = 0
	}

	var p0, p3 math.Vec3
	if seg > 0 {
		p0 = pts[seg-1]
	} else {
		p0 = pts[0].Scale(2).Sub(pts[1])
	}
	p1 := pts[seg]
	p2 := pts[seg+1]
	if seg+2 < l {
		p3 = pts[seg+2]
	} else {
		p3 = pts[l-1].Scale(2).Sub(pts[l-2])
	}

	// Centripetal parameterization: knot spacing is the square root of distance.
	dt0 := float32(gomath.Pow(float64(distSq(p0, p1)), 0.25))
	dt1 := float32(gomath.Pow(float64(distSq(p1, p2)), 0.25))
	dt2 := float32(gomath.Pow(float64(distSq(p2, p3)), 0.25))
	if dt1 < 1e-4 {
		dt1 = 1
	}
	if dt0 < 1e-4 {
		dt0 = dt1
	}
	if dt2 < 1e-4 {
		dt2 = dt1
	}

	return math.Vec3{
		X: nonuniform(p0.X, p1.X, p2.X, p3.X, dt0, dt1, dt2, weight),
		Y: nonuniform(p0.Y, p1.Y, p2.Y, p3.Y, dt0, dt1, dt2, weight),
		Z: nonuniform(p0.Z, p1.Z, p2.Z, p3.Z, dt0, dt1, dt2, weight),
	}
}

// Tangent returns the unit tangent at t, estimated by central difference.
func (c *CatmullRom) Tangent(t float32) math.Vec3 {
	const delta = 1e-4
	t1 := max(t-delta, 0)
	t2 := min(t+delta, 1)
	return c.Point(t2).Sub(c.Point(t1)).Normalize()
}

// Length returns the approximate arc length.
func (c *CatmullRom) Length() float32 {
	l := c.arcLengths()
	return l[len(l)-1]
}

// UToT maps an arc-length fraction u to the curve parameter t.
func (c *CatmullRom) UToT(u float32) float32 {
	lengths := c.arcLengths()
	n := len(lengths)
	target := u * lengths[n-1]

	lo, hi := 0, n-1
	for lo <= hi {
		mid := (lo + hi) / 2
		switch d := lengths[mid] - target; {
		case d < 0:
			lo = mid + 1
		case d > 0:
			hi = mid - 1
		default:
			return float32(mid) / float32(n-1)
		}
	}
	i := max(hi, 0)
	if i >= n-1 {
		return 1
	}
	before, after := lengths[i], lengths[i+1]
	frac := (target - before) / (after - before)
	return (float32(i) + frac) / float32(n-1)
}

// SpacedPoints returns divisions+1 points equally spaced by arc length.
func (c *CatmullRom) SpacedPoints(divisions int) []math.Vec3 {
	out := make([]math.Vec3, divisions+1)
	for i := range out {
		out[i] = c.Point(c.UToT(float32(i) / float32(divisions)))
	}
	return out
}

func (c *CatmullRom) arcLengths() []float32 {
	if c.lengths != nil {
		return c.lengths
	}
	const divisions = 200
	c.lengths = make([]float32, divisions+1)
	last := c.Point(0)
	var sum float32
	for i := 1; i <= divisions; i++ {
		cur := c.Point(float32(i) / divisions)
		sum += cur.Distance(last)
		c.lengths[i] = sum
		last = cur
	}
	return c.lengths
}

func distSq(a, b math.Vec3) float32 {
	d := a.Sub(b)
	return d.Dot(d)
}

func nonuniform(x0, x1, x2, x3, dt0, dt1, dt2, t float32) float32 {
	t1 := (x1-x0)/dt0 - (x2-x0)/(dt0+dt1) + (x2-x1)/dt1
	t2 := (x2-x1)/dt1 - (x3-x1)/(dt1+dt2) + (x3-x2)/dt2
	t1 *= dt1
	t2 *= dt1

	c0 := x1
	c1 := t1
	c2 := -3*x1 + 3*x2 - 2*t1 - t2
	c3 := 2*x1 - 2*x2 + t1 + t2

	t2s := t * t
	return c0 + c1*t + c2*t2s + c3*t2s*t
}

// Points returns divisions+1 points sampled uniformly in t.
func (c *CatmullRom) Points(divisions int) []math.Vec3 {
	out := make([]math.Vec3, divisions+1)
	for i := range out {
		out[i] = c.Point(float32(i) / float32(divisions))
	}
	return out
}
