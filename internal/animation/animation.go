// Package animation advances the scene once per frame: the clock, the flame
// time uniform, candle light flicker, timers and the camera.
package animation

import (
	gomath "math"
	"time"

	"github.com/Faultbox/birthday-cake/internal/scene"
	"github.com/Faultbox/birthday-cake/internal/timer"
)

// Clock is the scene clock. It only moves forward.
type Clock struct {
	elapsed time.Duration
}

// Advance adds dt. Negative deltas are ignored.
func (c *Clock) Advance(dt time.Duration) {
	if dt > 0 {
		c.elapsed += dt
	}
}

// Elapsed returns elapsed time.
func (c *Clock) Elapsed() time.Duration {
	return c.elapsed
}

// Seconds returns elapsed time in seconds.
func (c *Clock) Seconds() float32 {
	return float32(c.elapsed.Seconds())
}

// Flicker returns the flicker light offset and intensity at time t seconds.
func Flicker(t float32) (x, z, intensity float32) {
	tt := float64(t)
	x = float32(gomath.Sin(tt*gomath.Pi)) * 0.25
	z = float32(gomath.Cos(tt*gomath.Pi*0.75)) * 0.25
	intensity = 2 + float32(gomath.Sin(tt*gomath.Pi*2)*gomath.Cos(tt*gomath.Pi*1.5))*0.25
	return x, z, intensity
}

// Updater is anything advanced once per frame, typically the orbit camera.
type Updater interface {
	Update(dt float32)
}

// Loop owns the per-frame update.
type Loop struct {
	Clock  Clock
	Scene  *scene.Scene
	Timers *timer.Scheduler
	Camera Updater

	frames uint64
}

// NewLoop returns a loop over s. timers and camera may be nil.
func NewLoop(s *scene.Scene, timers *timer.Scheduler, camera Updater) *Loop {
	if timers == nil {
		timers = timer.New()
	}
	return &Loop{Scene: s, Timers: timers, Camera: camera}
}

// Step runs one frame of updates. Rendering is left to the caller.
func (l *Loop) Step(dt time.Duration) {
	l.frames++
	l.Clock.Advance(dt)
	t := l.Clock.Seconds()

	if l.Scene != nil {
		for _, m := range l.Scene.FlameMaterials() {
			m.SetTime(t)
		}
		x, z, intensity := Flicker(t)
		for _, c := range l.Scene.Candles {
			if c == nil || c.Flicker == nil || c.Extinguished() {
				continue
			}
			c.Flicker.Position.X = x
			c.Flicker.Position.Z = z
			// A fading candle's intensity belongs to the fade.
			if c.Burning() && c.Flicker.Light != nil {
				c.Flicker.Light.Intensity = intensity
			}
		}
	}

	l.Timers.Advance(dt)

	if l.Camera != nil {
		l.Camera.Update(float32(dt.Seconds()))
	}
}

// Frames returns the number of steps run.
func (l *Loop) Frames() uint64 {
	return l.frames
}
