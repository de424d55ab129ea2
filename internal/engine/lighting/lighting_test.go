package lighting

import (
	gomath "math"
	"testing"

	"github.com/Faultbox/birthday-cake/pkg/math"
)

func TestAttenuation(t *testing.T) {
	l := NewPointLight([3]float32{1, 1, 1}, 1, 5, 2)
	tests := []struct {
		d, want float32
	}{
		{0, 1},
		{2.5, 0.25},
		{5, 0},
		{7, 0},
	}
	for _, tt := range tests {
		got := l.Attenuation(tt.d)
		if gomath.Abs(float64(got-tt.want)) > 1e-6 {
			t.Errorf("Attenuation(%v) = %v, want %v", tt.d, got, tt.want)
		}
	}

	unbounded := NewPointLight([3]float32{1, 1, 1}, 1, 0, 2)
	if got := unbounded.Attenuation(100); got != 1 {
		t.Errorf("unbounded Attenuation(100) = %v, want 1", got)
	}
}

func TestBufferSkipsDarkLights(t *testing.T) {
	b := NewPointLightBuffer()
	b.AddLight(PointLight{Intensity: 0})
	b.AddLight(PointLight{Intensity: 0.5, Color: [3]float32{1, 0.5, 0}, Range: 5, Decay: 2})
	if b.Count != 1 {
		t.Fatalf("Count = %d, want 1", b.Count)
	}
	colors := b.GetColors()
	if colors[0] != 0.5 || colors[1] != 0.25 || colors[2] != 0 {
		t.Errorf("colors = %v, want premultiplied", colors[:3])
	}
	if b.GetRanges()[0] != 5 || b.GetDecays()[0] != 2 {
		t.Error("range/decay not uploaded")
	}
}

func TestBufferFull(t *testing.T) {
	b := NewPointLightBuffer()
	for i := 0; i < MaxPointLights; i++ {
		if !b.AddLight(PointLight{Intensity: 1}) {
			t.Fatalf("AddLight(%d) = false", i)
		}
	}
	if b.AddLight(PointLight{Intensity: 1}) {
		t.Error("AddLight() past capacity = true")
	}
	b.Clear()
	if b.Count != 0 || len(b.Lights) != 0 {
		t.Error("Clear() left lights")
	}
}

func TestDirectionalLight(t *testing.T) {
	l := DirectionalLight{Position: math.Vec3{X: 10, Y: 10, Z: 10}, Intensity: 0.025}
	d := l.Direction()
	want := float32(-1 / gomath.Sqrt(3))
	if gomath.Abs(float64(d.X-want)) > 1e-6 || gomath.Abs(float64(d.Y-want)) > 1e-6 {
		t.Errorf("Direction() = %v", d)
	}
	a := AmbientLight{Color: [3]float32{1, 1, 1}, Intensity: 0.05}
	if a.Radiance()[0] != 0.05 {
		t.Errorf("Radiance() = %v", a.Radiance())
	}
}
