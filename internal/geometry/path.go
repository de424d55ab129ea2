package geometry

import (
	gomath "math"

	"github.com/Faultbox/birthday-cake/pkg/math"
)

type pathSegment struct {
	line bool

	// line
	to math.Vec2

	// arc
	center     math.Vec2
	radius     float32
	start, end float64
	clockwise  bool
}

func (s pathSegment) point(t float64) math.Vec2 {
	if s.line {
		return s.to
	}
	delta := s.end - s.start
	for delta < 0 {
		delta += 2 * gomath.Pi
	}
	for delta > 2*gomath.Pi {
		delta -= 2 * gomath.Pi
	}
	if s.clockwise {
		delta = -(2*gomath.Pi - delta)
	}
	a := s.start + delta*t
	return math.Vec2{
		X: s.center.X + s.radius*float32(gomath.Cos(a)),
		Y: s.center.Y + s.radius*float32(gomath.Sin(a)),
	}
}

// Path is a 2D outline made of straight lines and circular arcs. It is used
// as the profile of a lathe, where X is the radius and Y the height.
type Path struct {
	current  math.Vec2
	start    math.Vec2
	segments []pathSegment
}

// NewPath returns an empty path starting at the origin.
func NewPath() *Path {
	return &Path{}
}

// MoveTo sets the starting point. Only valid before any segment is added.
func (p *Path) MoveTo(x, y float32) *Path {
	p.current = math.Vec2{X: x, Y: y}
	p.start = p.current
	return p
}

// LineTo adds a straight segment from the current point.
func (p *Path) LineTo(x, y float32) *Path {
	to := math.Vec2{X: x, Y: y}
	p.segments = append(p.segments, pathSegment{line: true, to: to})
	p.current = to
	return p
}

// AbsArc adds an arc around an absolute center. Angles are in radians.
// A connecting line is inserted when the arc does not start at the current point.
func (p *Path) AbsArc(cx, cy, radius float32, startAngle, endAngle float64, clockwise bool) *Path {
	arc := pathSegment{
		center:    math.Vec2{X: cx, Y: cy},
		radius:    radius,
		start:     startAngle,
		end:       endAngle,
		clockwise: clockwise,
	}
	if from := arc.point(0); from.Distance(p.current) > 1e-6 {
		p.LineTo(from.X, from.Y)
	}
	p.segments = append(p.segments, arc)
	p.current = arc.point(1)
	return p
}

// Points samples the path. Arcs get 2*divisions samples, lines contribute
// their end point. Consecutive duplicates are dropped.
func (p *Path) Points(divisions int) []math.Vec2 {
	pts := []math.Vec2{p.start}
	push := func(v math.Vec2) {
		if v.Distance(pts[len(pts)-1]) > 1e-6 {
			pts = append(pts, v)
		}
	}
	for _, seg := range p.segments {
		if seg.line {
			push(seg.to)
			continue
		}
		res := divisions * 2
		for i := 1; i <= res; i++ {
			push(seg.point(float64(i) / float64(res)))
		}
	}
	return pts
}

// ValidateProfile checks that an open polyline has at least two points and
// that no two non-adjacent edges cross.
func ValidateProfile(points []math.Vec2) error {
	if len(points) < 2 {
		return ErrTooFewPoints
	}
	for i := 0; i+1 < len(points); i++ {
		for j := i + 2; j+1 < len(points); j++ {
			if math.SegmentsIntersect(points[i], points[i+1], points[j], points[j+1]) {
				return ErrSelfIntersecting
			}
		}
	}
	return nil
}
