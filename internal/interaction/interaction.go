// Package interaction turns a sustained press into the candle blowout and
// the reveal that follows it.
package interaction

import (
	"math/rand/v2"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/birthday-cake/internal/config"
	"github.com/Faultbox/birthday-cake/internal/extinguish"
	"github.com/Faultbox/birthday-cake/internal/logger"
	"github.com/Faultbox/birthday-cake/internal/scene"
	"github.com/Faultbox/birthday-cake/internal/timer"
)

// rampEpsilon absorbs float drift when the ambient ramp nears its ceiling.
const rampEpsilon = 1e-4

// Settings are the controller timings.
type Settings struct {
	HoldDelay      time.Duration
	FadeTick       time.Duration
	RampTick       time.Duration
	AmbientStart   float32
	AmbientStep    float32
	AmbientCeiling float32
	OverlayFade    time.Duration
}

// DefaultSettings returns the standard timings.
func DefaultSettings() Settings {
	return Settings{
		HoldDelay:      500 * time.Millisecond,
		FadeTick:       50 * time.Millisecond,
		RampTick:       100 * time.Millisecond,
		AmbientStart:   0.05,
		AmbientStep:    0.01,
		AmbientCeiling: 0.1,
		OverlayFade:    time.Second,
	}
}

// SettingsFrom converts the interaction config section.
func SettingsFrom(c config.InteractionConfig) Settings {
	return Settings{
		HoldDelay:      c.HoldDelay,
		FadeTick:       c.FadeTick,
		RampTick:       c.RampTick,
		AmbientStart:   float32(c.AmbientStart),
		AmbientStep:    float32(c.AmbientStep),
		AmbientCeiling: float32(c.AmbientCeiling),
		OverlayFade:    c.OverlayFade,
	}
}

// Controller gates the blowout on the audio cue, arms the hold timer on
// press, and runs the fades, ambient ramp and overlay reveal.
type Controller struct {
	settings Settings
	scene    *scene.Scene
	timers   *timer.Scheduler
	rng      *rand.Rand
	log      *zap.Logger

	allowBlowout bool
	triggered    bool
	hold         *timer.Handle
	ramp         *timer.Handle
	fades        []*timer.Handle

	reminderVisible bool
	overlayVisible  bool
	overlayOpacity  float32
}

// New returns a controller over s. Timers fire from sched; rng draws
// candle speeds.
func New(settings Settings, s *scene.Scene, sched *timer.Scheduler, rng *rand.Rand) *Controller {
	s.Ambient.Intensity = settings.AmbientStart
	return &Controller{
		settings: settings,
		scene:    s,
		timers:   sched,
		rng:      rng,
		log:      logger.Named("interaction"),
	}
}

// AudioEnded records that the cue finished. The hold reminder is shown
// and presses start to count.
func (c *Controller) AudioEnded() {
	if c.allowBlowout {
		return
	}
	c.allowBlowout = true
	if !c.triggered {
		c.reminderVisible = true
	}
	c.log.Info("blowout allowed")
}

// PointerDown arms the hold timer.
func (c *Controller) PointerDown() {
	if !c.allowBlowout || c.triggered || c.hold.Active() {
		return
	}
	c.hold = c.timers.After(c.settings.HoldDelay, c.trigger)
	c.log.Debug("hold armed", zap.Duration("delay", c.settings.HoldDelay))
}

// PointerUp cancels a pending hold.
func (c *Controller) PointerUp() {
	if c.hold.Active() {
		c.hold.Cancel()
		c.log.Debug("hold released early")
	}
}

// PointerCancel is PointerUp for interrupted gestures (focus lost, touch cancel).
func (c *Controller) PointerCancel() {
	c.PointerUp()
}

func (c *Controller) trigger() {
	if c.triggered {
		return
	}
	c.triggered = true
	c.hold = nil
	c.reminderVisible = false

	started := 0
	for _, candle := range c.scene.Candles {
		if candle == nil || candle.Fade == nil {
			continue
		}
		speed := extinguish.RandomSpeed(c.rng)
		if !candle.Fade.Trigger(speed) {
			continue
		}
		started++
		fade := candle.Fade
		var h *timer.Handle
		h = c.timers.Every(c.settings.FadeTick, func() {
			if fade.Tick() {
				h.Cancel()
			}
		})
		c.fades = append(c.fades, h)
	}

	c.ramp = c.timers.Every(c.settings.RampTick, c.rampStep)
	c.log.Info("blowout triggered", zap.Int("candles", started))
}

func (c *Controller) rampStep() {
	ambient := &c.scene.Ambient
	ceiling := c.settings.AmbientCeiling

	next := ambient.Intensity + c.settings.AmbientStep
	if next >= ceiling-rampEpsilon {
		next = ceiling
	}
	ambient.Intensity = next

	if next < ceiling {
		return
	}
	c.ramp.Cancel()
	c.revealOverlay()
}

func (c *Controller) revealOverlay() {
	c.overlayVisible = true
	c.timers.Tween(c.settings.OverlayFade, timer.Linear, func(v float32) {
		c.overlayOpacity = v
	})
	c.log.Info("overlay revealed")
}

// Allowed reports whether the audio cue has finished.
func (c *Controller) Allowed() bool { return c.allowBlowout }

// Triggered reports whether the blowout has fired.
func (c *Controller) Triggered() bool { return c.triggered }

// HoldPending reports whether a press is waiting on the hold delay.
func (c *Controller) HoldPending() bool { return c.hold.Active() }

// ReminderVisible reports whether the hold reminder should be drawn.
func (c *Controller) ReminderVisible() bool { return c.reminderVisible }

// OverlayVisible reports whether the congratulation overlay is shown and
// accepts input.
func (c *Controller) OverlayVisible() bool { return c.overlayVisible }

// OverlayOpacity returns the overlay fade in [0, 1].
func (c *Controller) OverlayOpacity() float32 { return c.overlayOpacity }

// RampActive reports whether the ambient ramp is still running.
func (c *Controller) RampActive() bool { return c.ramp.Active() }

// ActiveFades returns the number of candle fades still ticking.
func (c *Controller) ActiveFades() int {
	n := 0
	for _, h := range c.fades {
		if h.Active() {
			n++
		}
	}
	return n
}
