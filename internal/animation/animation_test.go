package animation

import (
	gomath "math"
	"testing"
	"time"

	"github.com/Faultbox/birthday-cake/internal/extinguish"
	"github.com/Faultbox/birthday-cake/internal/scene"
	"github.com/Faultbox/birthday-cake/internal/timer"
	"github.com/Faultbox/birthday-cake/pkg/math"
)

type fakeCamera struct {
	total float32
	calls int
}

func (c *fakeCamera) Update(dt float32) {
	c.total += dt
	c.calls++
}

func compose(t *testing.T) *scene.Scene {
	t.Helper()
	p := scene.DefaultParams()
	p.CandleCount = 3
	s, err := scene.Compose(p)
	if err != nil {
		t.Fatalf("Compose() error = %v", err)
	}
	return s
}

func TestClockMonotonic(t *testing.T) {
	var c Clock
	c.Advance(16 * time.Millisecond)
	c.Advance(-time.Second)
	c.Advance(4 * time.Millisecond)
	if c.Elapsed() != 20*time.Millisecond {
		t.Errorf("Elapsed() = %v, want 20ms", c.Elapsed())
	}
}

func TestFlicker(t *testing.T) {
	tests := []struct {
		t             float32
		x, z, intense float32
	}{
		{0, 0, 0.25, 2},
		{0.5, 0.25, float32(gomath.Cos(0.375*gomath.Pi)) * 0.25, 2},
		{1, 0, float32(gomath.Cos(0.75*gomath.Pi)) * 0.25, 2},
	}
	for _, tt := range tests {
		x, z, i := Flicker(tt.t)
		if gomath.Abs(float64(x-tt.x)) > 1e-6 || gomath.Abs(float64(z-tt.z)) > 1e-6 || gomath.Abs(float64(i-tt.intense)) > 1e-6 {
			t.Errorf("Flicker(%v) = (%v, %v, %v), want (%v, %v, %v)", tt.t, x, z, i, tt.x, tt.z, tt.intense)
		}
	}
	for tm := float32(0); tm < 10; tm += 0.13 {
		_, _, i := Flicker(tm)
		if i < 1.75 || i > 2.25 {
			t.Fatalf("Flicker(%v) intensity = %v, want [1.75, 2.25]", tm, i)
		}
	}
}

func TestStepPushesTimeAndFlicker(t *testing.T) {
	s := compose(t)
	cam := &fakeCamera{}
	l := NewLoop(s, nil, cam)

	l.Step(250 * time.Millisecond)
	l.Step(250 * time.Millisecond)

	if s.FrontMaterial.Time != 0.5 || s.BackMaterial.Time != 0.5 {
		t.Errorf("material time = %v/%v, want 0.5", s.FrontMaterial.Time, s.BackMaterial.Time)
	}
	x, z, intensity := Flicker(0.5)
	for i, c := range s.Candles {
		if c.Flicker.Position.X != x || c.Flicker.Position.Z != z || c.Flicker.Light.Intensity != intensity {
			t.Errorf("candle %d flicker = %v / %v", i, c.Flicker.Position, c.Flicker.Light.Intensity)
		}
		if c.Steady.Light.Intensity != 1 {
			t.Errorf("candle %d steady intensity changed to %v", i, c.Steady.Light.Intensity)
		}
	}
	if cam.calls != 2 || cam.total != 0.5 {
		t.Errorf("camera updated %d times, total %v", cam.calls, cam.total)
	}
	if l.Frames() != 2 {
		t.Errorf("Frames() = %d", l.Frames())
	}
}

func TestExtinguishWinsOverFlicker(t *testing.T) {
	s := compose(t)
	timers := timer.New()
	l := NewLoop(s, timers, nil)

	c := s.Candles[0]
	c.Fade.Trigger(1)
	var h *timer.Handle
	h = timers.Every(50*time.Millisecond, func() {
		if c.Fade.Tick() {
			h.Cancel()
		}
	})

	moved := 0
	var frozen math.Vec3
	done := false
	for i := 0; i < 400; i++ {
		before := c.Flicker.Position
		fading := c.Fade.State() == extinguish.Extinguishing
		l.Step(16 * time.Millisecond)
		if want := float32(1 - c.Fade.Progress()); c.Flicker.Light.Intensity != want {
			t.Fatalf("frame %d: intensity = %v, want fade level %v", i, c.Flicker.Light.Intensity, want)
		}
		if fading && c.Flicker.Position != before {
			moved++
		}
		if c.Fade.State() == extinguish.Extinguished && !done {
			frozen, done = c.Flicker.Position, true
		}
	}
	if moved == 0 {
		t.Error("flicker light stopped moving while the candle was fading")
	}
	if !done || c.Flicker.Position != frozen {
		t.Errorf("extinguished flicker light moved: %v -> %v", frozen, c.Flicker.Position)
	}
	if c.Flicker.Light.Intensity != 0 || h.Active() {
		t.Errorf("intensity = %v, timer active = %v", c.Flicker.Light.Intensity, h.Active())
	}
	// Other candles keep flickering.
	if s.Candles[1].Flicker.Light.Intensity < 1.75 {
		t.Errorf("burning candle intensity = %v", s.Candles[1].Flicker.Light.Intensity)
	}
}

func TestStepSkipsMissingParts(t *testing.T) {
	s := compose(t)
	s.Candles[0].Flicker = nil
	s.Candles = append(s.Candles, nil)
	s.BackMaterial = nil

	l := NewLoop(s, nil, nil)
	l.Step(time.Second)
	if s.FrontMaterial.Time != 1 {
		t.Errorf("front time = %v, want 1", s.FrontMaterial.Time)
	}

	empty := NewLoop(nil, nil, nil)
	empty.Step(time.Second)
}
