package flame

import (
	gomath "math"

	"github.com/Faultbox/birthday-cake/internal/geometry"
	"github.com/Faultbox/birthday-cake/pkg/math"
)

// Random is the shader's hash: fract(sin(dot(st, (12.9898, 78.233))) * 43758.5453123).
func Random(x, y float32) float32 {
	d := float64(x)*12.9898 + float64(y)*78.233
	return fract(float32(gomath.Sin(d) * 43758.5453123))
}

// Noise is 2D value noise over Random with cubic Hermite interpolation.
func Noise(x, y float32) float32 {
	ix, iy := floor(x), floor(y)
	fx, fy := x-ix, y-iy

	a := Random(ix, iy)
	b := Random(ix+1, iy)
	c := Random(ix, iy+1)
	d := Random(ix+1, iy+1)

	ux := fx * fx * (3 - 2*fx)
	uy := fy * fy * (3 - 2*fy)
	return mix(a, b, ux) + (c-a)*uy*(1-ux) + (d-b)*ux*uy
}

// Displace applies the vertex stage to a base mesh position at time t.
func Displace(p math.Vec3, t float32) math.Vec3 {
	pos := p.Mul(math.Vec3{X: 0.8, Y: 2, Z: 0.725})
	h := p.Y

	radial := p.XZ().Length()
	taper := float32(gomath.Cos(float64(radial+0.25)*3.1415926)) * 0.25
	pos.Y *= 1 + (taper+Noise(0, t)*0.125+Noise(p.X+t, p.Z+t)*0.5)*p.Y

	pos.X += Noise(t*2, (p.Y-t)*4) * h * 0.0312
	pos.Z += Noise((p.Y-t)*4, t*2) * h * 0.0312
	return pos
}

// Shade applies the fragment stage for base height h and texture coordinate v,
// returning color and alpha at full opacity.
func Shade(h, v float32) ([3]float32, float32) {
	bottom := gomath.Abs(float64(smoothstep(0, 0.4, h) - 1))
	alpha := (1 - float32(bottom)) * 0.99
	alpha -= 1 - smoothstep(1, 0.97, h)

	base := smoothstep(0, 0.3, h)
	heat := heatmap(base)
	tint := [3]float32{0.95, 0.95, 0.4}
	blue := [3]float32{0, 0, 1}
	tip := [3]float32{0.66, 0.32, 0.03}
	bias := [3]float32{1, 0.9, 0.5}
	edge := smoothstep(0.95, 1, h)

	var c [3]float32
	for i := range c {
		c[i] = mix(blue[i], heat[i]*tint[i], base)
		c[i] += bias[i] * (1.25 - v)
		c[i] = mix(c[i], tip[i], edge)
	}
	return c, alpha
}

// Bounds returns the extent of mesh after displacement at time t.
func Bounds(m *geometry.Mesh, t float32) geometry.Bounds {
	out := &geometry.Mesh{Vertices: make([]geometry.Vertex, len(m.Vertices))}
	for i, v := range m.Vertices {
		out.Vertices[i].Position = Displace(math.V3(v.Position), t).Arr()
	}
	return out.Bounds()
}

func heatmap(t float32) [3]float32 {
	k := float32(gomath.Pow(float64(t), 1.5))*0.8 + 0.2
	return [3]float32{
		clamp01(k * (smoothstep(0, 0.35, t) + t*0.5)),
		clamp01(k * smoothstep(0.5, 1, t)),
		clamp01(k * max(1-t*1.7, t*7-6)),
	}
}

func smoothstep(e0, e1, x float32) float32 {
	t := clamp01((x - e0) / (e1 - e0))
	return t * t * (3 - 2*t)
}

func mix(a, b, t float32) float32 {
	return a*(1-t) + b*t
}

func fract(x float32) float32 {
	return x - floor(x)
}

func floor(x float32) float32 {
	return float32(gomath.Floor(float64(x)))
}

func clamp01(x float32) float32 {
	return max(0, min(1, x))
}
