package geometry

import (
	"errors"
	"image"
	"image/color"
	gomath "math"
	"testing"

	"github.com/Faultbox/birthday-cake/pkg/math"
)

func near(a, b, eps float32) bool {
	return float32(gomath.Abs(float64(a-b))) <= eps
}

func checkIndices(t *testing.T, m *Mesh) {
	t.Helper()
	if len(m.Indices)%3 != 0 {
		t.Fatalf("index count %d not a multiple of 3", len(m.Indices))
	}
	for _, idx := range m.Indices {
		if int(idx) >= len(m.Vertices) {
			t.Fatalf("index %d out of range (%d vertices)", idx, len(m.Vertices))
		}
	}
}

func candleProfile() []math.Vec2 {
	return NewPath().
		AbsArc(0, 0, 0.4, gomath.Pi*1.5, gomath.Pi*2, false).
		LineTo(0.4, 4).
		Points(12)
}

func TestPathPoints(t *testing.T) {
	pts := candleProfile()
	if len(pts) < 3 {
		t.Fatalf("got %d points", len(pts))
	}
	// Starts at the origin, arc begins at (0, -0.4) after the connecting line.
	if pts[0] != (math.Vec2{}) {
		t.Errorf("first point = %v, want origin", pts[0])
	}
	if !near(pts[1].X, 0, 1e-5) || !near(pts[1].Y, -0.4, 1e-5) {
		t.Errorf("arc start = %v, want (0,-0.4)", pts[1])
	}
	last := pts[len(pts)-1]
	if last != (math.Vec2{X: 0.4, Y: 4}) {
		t.Errorf("last point = %v, want (0.4,4)", last)
	}
	// 24 arc samples, plus start, arc start and line end.
	if len(pts) != 27 {
		t.Errorf("point count = %d, want 27", len(pts))
	}
}

func TestLatheTooFewSegments(t *testing.T) {
	for _, segments := range []int{-1, 0, 1, 2} {
		if _, err := Lathe(candleProfile(), segments); !errors.Is(err, ErrTooFewSegments) {
			t.Errorf("Lathe(segments=%d) error = %v, want ErrTooFewSegments", segments, err)
		}
	}
}

func TestLatheRejectsSelfIntersection(t *testing.T) {
	bowtie := []math.Vec2{{X: 0, Y: 0}, {X: 1, Y: 1}, {X: 1, Y: 0}, {X: 0, Y: 1}}
	if _, err := Lathe(bowtie, 16); !errors.Is(err, ErrSelfIntersecting) {
		t.Errorf("Lathe(bowtie) error = %v, want ErrSelfIntersecting", err)
	}
	if _, err := Lathe([]math.Vec2{{X: 1}}, 16); !errors.Is(err, ErrTooFewPoints) {
		t.Errorf("Lathe(single point) error = %v, want ErrTooFewPoints", err)
	}
}

func TestLatheCandleBody(t *testing.T) {
	pts := candleProfile()
	m, err := Lathe(pts, 64)
	if err != nil {
		t.Fatalf("Lathe() error = %v", err)
	}
	checkIndices(t, m)
	if got, want := len(m.Vertices), 65*len(pts); got != want {
		t.Errorf("vertex count = %d, want %d", got, want)
	}
	if got, want := m.TriangleCount(), 64*(len(pts)-1)*2; got != want {
		t.Errorf("triangle count = %d, want %d", got, want)
	}

	b := m.Bounds()
	if !near(b.Min.Y, -0.4, 1e-4) || !near(b.Max.Y, 4, 1e-4) {
		t.Errorf("Y bounds = [%v, %v], want [-0.4, 4]", b.Min.Y, b.Max.Y)
	}
	if !near(b.Max.X, 0.4, 1e-3) || !near(b.Min.Z, -0.4, 1e-3) {
		t.Errorf("radial bounds = %v, want radius 0.4", b)
	}

	// Side normals point away from the axis.
	for _, v := range m.Vertices {
		if v.Position[1] < 1 || v.Position[1] > 3 {
			continue
		}
		radial := v.Position[0]*v.Normal[0] + v.Position[2]*v.Normal[2]
		if radial <= 0 {
			t.Fatalf("normal %v at %v points inward", v.Normal, v.Position)
		}
	}
}

func TestCylinder(t *testing.T) {
	tests := []struct {
		name        string
		top, bottom float32
		height      float32
		segments    int
		wantErr     error
	}{
		{"table", 14, 14, 0.5, 64, nil},
		{"tier", 2, 2, 0.75, 32, nil},
		{"cap", 0.2, 0.4, 0.1, 32, nil},
		{"cone", 0, 1, 1, 8, nil},
		{"degenerate", 1, 1, 1, 2, ErrTooFewSegments},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := Cylinder(tt.top, tt.bottom, tt.height, tt.segments)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Cylinder() error = %v, want %v", err, tt.wantErr)
			}
			if err != nil {
				return
			}
			checkIndices(t, m)

			b := m.Bounds()
			if !near(b.Min.Y, -tt.height/2, 1e-5) || !near(b.Max.Y, tt.height/2, 1e-5) {
				t.Errorf("Y bounds = [%v, %v], want ±%v", b.Min.Y, b.Max.Y, tt.height/2)
			}
			r := max(tt.top, tt.bottom)
			if !near(b.Max.X, r, 1e-3) || !near(b.Max.Z, r, 1e-3) {
				t.Errorf("radius = (%v, %v), want %v", b.Max.X, b.Max.Z, r)
			}

			side := tt.segments * 2
			caps := 0
			if tt.top > 0 {
				caps += tt.segments
			}
			if tt.bottom > 0 {
				caps += tt.segments
			}
			if got := m.TriangleCount(); got != side+caps {
				t.Errorf("triangle count = %d, want %d", got, side+caps)
			}
		})
	}
}

func TestSphere(t *testing.T) {
	m, err := Sphere(0.5, 32, 32)
	if err != nil {
		t.Fatalf("Sphere() error = %v", err)
	}
	checkIndices(t, m)

	if got, want := len(m.Vertices), 33*33; got != want {
		t.Errorf("vertex count = %d, want %d", got, want)
	}
	// Pole rows contribute one triangle per quad.
	if got, want := m.TriangleCount(), 32*32*2-2*32; got != want {
		t.Errorf("triangle count = %d, want %d", got, want)
	}
	for _, v := range m.Vertices {
		l := math.V3(v.Position).Length()
		if !near(l, 0.5, 1e-4) {
			t.Fatalf("vertex %v at distance %v, want 0.5", v.Position, l)
		}
	}

	m.Translate(0, 0.5, 0)
	b := m.Bounds()
	if !near(b.Min.Y, 0, 1e-5) || !near(b.Max.Y, 1, 1e-5) {
		t.Errorf("translated Y bounds = [%v, %v], want [0, 1]", b.Min.Y, b.Max.Y)
	}

	if _, err := Sphere(1, 2, 8); !errors.Is(err, ErrTooFewSegments) {
		t.Errorf("Sphere(width=2) error = %v, want ErrTooFewSegments", err)
	}
}

func wickCurve(t *testing.T, h float32) *CatmullRom {
	t.Helper()
	c, err := NewCatmullRom(
		math.Vec3{Y: h - 1},
		math.Vec3{Y: h - 0.5, Z: -0.0625},
		math.Vec3{X: 0.25, Y: h - 0.5, Z: 0.125},
	)
	if err != nil {
		t.Fatalf("NewCatmullRom() error = %v", err)
	}
	return c
}

func TestCatmullRomEndpoints(t *testing.T) {
	c := wickCurve(t, 4)
	for _, tt := range []struct {
		t    float32
		want math.Vec3
	}{
		{0, c.Control[0]},
		{0.5, c.Control[1]},
		{1, c.Control[2]},
	} {
		got := c.Point(tt.t)
		if got.Distance(tt.want) > 1e-5 {
			t.Errorf("Point(%v) = %v, want %v", tt.t, got, tt.want)
		}
	}

	pts := c.SpacedPoints(8)
	if len(pts) != 9 {
		t.Fatalf("SpacedPoints(8) len = %d, want 9", len(pts))
	}
	step := c.Length() / 8
	for i := 1; i < len(pts); i++ {
		if d := pts[i].Distance(pts[i-1]); !near(d, step, step*0.1) {
			t.Errorf("segment %d length = %v, want ~%v", i, d, step)
		}
	}

	if _, err := NewCatmullRom(math.Vec3{}); !errors.Is(err, ErrTooFewPoints) {
		t.Errorf("NewCatmullRom(1 point) error = %v, want ErrTooFewPoints", err)
	}
}

func TestCatmullRomPoints(t *testing.T) {
	c := wickCurve(t, 4)
	pts := c.Points(4)
	if len(pts) != 5 {
		t.Fatalf("Points(4) len = %d, want 5", len(pts))
	}
	for i, p := range pts {
		want := c.Point(float32(i) / 4)
		if p.Distance(want) > 1e-6 {
			t.Errorf("Points(4)[%d] = %v, want %v", i, p, want)
		}
	}
	if pts[0].Distance(c.Control[0]) > 1e-5 || pts[4].Distance(c.Control[2]) > 1e-5 {
		t.Errorf("Points(4) ends = %v, %v; want the first and last control points", pts[0], pts[4])
	}
}

func TestFrenetFramesOrthonormal(t *testing.T) {
	f := FrenetFrames(wickCurve(t, 4), 8)
	for i := range f.Tangents {
		tn, n, b := f.Tangents[i], f.Normals[i], f.Binormals[i]
		for _, v := range []math.Vec3{tn, n, b} {
			if !near(v.Length(), 1, 1e-3) {
				t.Errorf("frame %d: vector %v not unit length", i, v)
			}
		}
		if !near(tn.Dot(n), 0, 1e-3) || !near(tn.Dot(b), 0, 1e-3) || !near(n.Dot(b), 0, 1e-3) {
			t.Errorf("frame %d not orthogonal: T=%v N=%v B=%v", i, tn, n, b)
		}
	}
}

func TestExtrudeCircle(t *testing.T) {
	c := wickCurve(t, 4)
	m, err := ExtrudeCircle(0.0625, 16, c, 8)
	if err != nil {
		t.Fatalf("ExtrudeCircle() error = %v", err)
	}
	checkIndices(t, m)

	// Side quads plus two fans.
	if got, want := m.TriangleCount(), 8*16*2+2*16; got != want {
		t.Errorf("triangle count = %d, want %d", got, want)
	}
	// First ring stays on the tube radius around the start point.
	for k := 0; k < 16; k++ {
		d := math.V3(m.Vertices[k].Position).Distance(c.Control[0])
		if !near(d, 0.0625, 1e-3) {
			t.Errorf("ring vertex %d at distance %v, want 0.0625", k, d)
		}
	}

	if _, err := ExtrudeCircle(0.1, 2, c, 8); !errors.Is(err, ErrTooFewSegments) {
		t.Errorf("ExtrudeCircle(segments=2) error = %v, want ErrTooFewSegments", err)
	}
}

func TestColorBands(t *testing.T) {
	low, mid, high := Hex(0xffff44), Hex(0x994411), [3]float32{}
	m := &Mesh{Vertices: []Vertex{
		{Position: [3]float32{0, 3.00, 0}},
		{Position: [3]float32{0, 3.10, 0}},
		{Position: [3]float32{0, 3.20, 0}},
		{Position: [3]float32{0, 3.39, 0}},
		{Position: [3]float32{0, 3.50, 0}},
	}}
	ColorBands(m, 3, 0.15, 0.4, low, mid, high)

	want := [][3]float32{low, low, mid, mid, high}
	for i, v := range m.Vertices {
		if v.Color != want[i] {
			t.Errorf("vertex %d (h=%v) color = %v, want %v", i, v.Position[1]-3, v.Color, want[i])
		}
	}
}

func TestHex(t *testing.T) {
	got := Hex(0xff4500)
	if got[0] != 1 || !near(got[1], 0x45/255.0, 1e-6) || got[2] != 0 {
		t.Errorf("Hex(0xff4500) = %v", got)
	}
}

func TestMergeOffsetsIndices(t *testing.T) {
	a, _ := Cylinder(1, 1, 1, 3)
	b, _ := Cylinder(1, 1, 1, 3)
	na := len(a.Vertices)
	a.Merge(b.Translate(0, 2, 0))
	checkIndices(t, a)
	if got := a.Bounds().Max.Y; !near(got, 2.5, 1e-5) {
		t.Errorf("merged max Y = %v, want 2.5", got)
	}
	if a.Indices[len(a.Indices)-1] < uint32(na) {
		t.Error("merged indices not offset")
	}
}

func TestTextMesh(t *testing.T) {
	mask := image.NewAlpha(image.Rect(0, 0, 2, 2))
	mask.SetAlpha(0, 0, color.Alpha{A: 255})
	mask.SetAlpha(1, 0, color.Alpha{A: 255})
	mask.SetAlpha(0, 1, color.Alpha{A: 40}) // below threshold

	m, err := TextMesh(mask, 0.5, 0.2)
	if err != nil {
		t.Fatalf("TextMesh() error = %v", err)
	}
	checkIndices(t, m)

	// Two adjacent voxels: 2 front, 2 back, 2 top, 2 bottom, 1 left, 1 right.
	if got := m.TriangleCount(); got != 10*2 {
		t.Errorf("triangle count = %d, want 20", got)
	}
	b := m.Bounds()
	if !near(b.Min.X, -0.5, 1e-6) || !near(b.Max.X, 0.5, 1e-6) {
		t.Errorf("X bounds = [%v, %v], want [-0.5, 0.5]", b.Min.X, b.Max.X)
	}
	// Row 0 is the top row.
	if !near(b.Min.Y, 0.5, 1e-6) || !near(b.Max.Y, 1, 1e-6) {
		t.Errorf("Y bounds = [%v, %v], want [0.5, 1]", b.Min.Y, b.Max.Y)
	}

	if _, err := TextMesh(image.NewAlpha(image.Rect(0, 0, 4, 4)), 1, 1); err == nil {
		t.Error("TextMesh(empty) expected error")
	}
}
