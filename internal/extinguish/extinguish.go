// Package extinguish implements the per-candle blow-out fade.
package extinguish

import (
	"math/rand/v2"
)

// Fade constants.
const (
	// Step is the progress added per tick at speed 1.
	Step = 0.02
	// MinSpeed and MaxSpeed bound the random speed drawn at trigger time.
	MinSpeed = 1
	MaxSpeed = 4
)

// State is the extinguish state of a candle.
type State int

const (
	Burning State = iota
	Extinguishing
	Extinguished
)

func (s State) String() string {
	switch s {
	case Burning:
		return "burning"
	case Extinguishing:
		return "extinguishing"
	case Extinguished:
		return "extinguished"
	}
	return "unknown"
}

// Target receives the visual state computed by a Fade.
type Target interface {
	SetFlameOpacity(opacity float32)
	SetFlameScale(scale float32)
	SetFlameVisible(visible bool)
	SetLightIntensity(intensity float32)
}

// Fade drives one candle from burning to extinguished. Progress never
// decreases and a finished fade cannot be restarted.
type Fade struct {
	target   Target
	state    State
	speed    float32
	progress float64
}

// New returns a burning fade for target.
func New(target Target) *Fade {
	return &Fade{target: target}
}

// RandomSpeed draws a speed uniformly from [MinSpeed, MaxSpeed).
func RandomSpeed(r *rand.Rand) float32 {
	return MinSpeed + r.Float32()*(MaxSpeed-MinSpeed)
}

// Trigger starts the fade. It returns false, and changes nothing, unless the
// candle is still burning. Speeds below MinSpeed are raised to it.
func (f *Fade) Trigger(speed float32) bool {
	if f.state != Burning {
		return false
	}
	f.speed = max(speed, MinSpeed)
	f.state = Extinguishing
	return true
}

// Tick advances progress by Step*speed and applies it to the target. It
// returns true once the fade is finished; the caller stops ticking then.
func (f *Fade) Tick() bool {
	switch f.state {
	case Burning:
		return false
	case Extinguished:
		return true
	}

	f.progress += Step * float64(f.speed)
	if f.progress >= 1 {
		f.progress = 1
		f.state = Extinguished
		if f.target != nil {
			f.target.SetFlameOpacity(0)
			f.target.SetFlameScale(0)
			f.target.SetFlameVisible(false)
			f.target.SetLightIntensity(0)
		}
		return true
	}

	if f.target != nil {
		level := float32(1 - f.progress)
		f.target.SetFlameOpacity(level)
		f.target.SetFlameScale(level)
		f.target.SetLightIntensity(level)
	}
	return false
}

// State returns the current state.
func (f *Fade) State() State { return f.state }

// Progress returns the fade progress in [0, 1].
func (f *Fade) Progress() float64 { return f.progress }

// Speed returns the speed chosen at trigger time, or 0 if not triggered.
func (f *Fade) Speed() float32 { return f.speed }

// Burning reports whether the fade has not been triggered.
func (f *Fade) Burning() bool { return f.state == Burning }
