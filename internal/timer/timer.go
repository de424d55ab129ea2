// Package timer schedules periodic callbacks, one-shot callbacks and tweens
// against a clock advanced by the frame loop. Nothing runs on its own
// goroutine: callbacks fire inside Advance, in due-time order.
package timer

import (
	"time"
)

// Ease maps linear progress in [0, 1] to eased progress.
type Ease func(t float32) float32

// Linear is the identity ease.
func Linear(t float32) float32 { return t }

// EaseInOut is a quadratic ease-in-out.
func EaseInOut(t float32) float32 {
	if t < 0.5 {
		return 2 * t * t
	}
	return 1 - (-2*t+2)*(-2*t+2)/2
}

type kind int

const (
	kindAfter kind = iota
	kindEvery
	kindTween
)

// Handle refers to a scheduled entry.
type Handle struct {
	s      *Scheduler
	kind   kind
	seq    uint64
	due    time.Duration
	period time.Duration
	fn     func()

	start    time.Duration
	duration time.Duration
	ease     Ease
	apply    func(v float32)

	done bool
}

// Cancel stops the entry. Safe to call more than once, and from inside the
// entry's own callback.
func (h *Handle) Cancel() {
	if h == nil || h.done {
		return
	}
	h.done = true
	h.s.remove(h)
}

// Active reports whether the entry can still fire.
func (h *Handle) Active() bool {
	return h != nil && !h.done
}

// Scheduler owns timed entries.
type Scheduler struct {
	now     time.Duration
	seq     uint64
	entries []*Handle
}

// New returns an empty scheduler at time zero.
func New() *Scheduler {
	return &Scheduler{}
}

// Now returns the scheduler clock.
func (s *Scheduler) Now() time.Duration {
	return s.now
}

// Len returns the number of active entries.
func (s *Scheduler) Len() int {
	return len(s.entries)
}

// After calls fn once, delay after now.
func (s *Scheduler) After(delay time.Duration, fn func()) *Handle {
	return s.add(&Handle{kind: kindAfter, due: s.now + delay, fn: fn})
}

// Every calls fn every period, first one period after now. Periods that are
// not positive are treated as one nanosecond.
func (s *Scheduler) Every(period time.Duration, fn func()) *Handle {
	period = max(period, time.Nanosecond)
	return s.add(&Handle{kind: kindEvery, due: s.now + period, period: period, fn: fn})
}

// Tween calls apply with eased progress once per Advance until duration has
// elapsed; the final call always receives ease(1).
func (s *Scheduler) Tween(duration time.Duration, ease Ease, apply func(v float32)) *Handle {
	if ease == nil {
		ease = Linear
	}
	return s.add(&Handle{kind: kindTween, start: s.now, duration: duration, ease: ease, apply: apply})
}

// Advance moves the clock forward by dt, firing due timers in order and then
// sampling tweens at the new time.
func (s *Scheduler) Advance(dt time.Duration) {
	target := s.now + max(dt, 0)

	for {
		next := s.nextDue(target)
		if next == nil {
			break
		}
		s.now = next.due
		if next.kind == kindEvery {
			next.due += next.period
		} else {
			next.done = true
			s.remove(next)
		}
		if next.fn != nil {
			next.fn()
		}
	}
	s.now = target

	for _, h := range append([]*Handle(nil), s.entries...) {
		if h.kind != kindTween || h.done {
			continue
		}
		progress := float32(1)
		if h.duration > 0 {
			progress = min(float32(s.now-h.start)/float32(h.duration), 1)
		}
		if progress >= 1 {
			h.done = true
			s.remove(h)
		}
		if h.apply != nil {
			h.apply(h.ease(progress))
		}
	}
}

func (s *Scheduler) add(h *Handle) *Handle {
	h.s = s
	s.seq++
	h.seq = s.seq
	s.entries = append(s.entries, h)
	return h
}

func (s *Scheduler) remove(h *Handle) {
	for i, e := range s.entries {
		if e == h {
			s.entries = append(s.entries[:i], s.entries[i+1:]...)
			return
		}
	}
}

// nextDue returns the earliest timer due at or before target. Ties go to the
// entry scheduled first.
func (s *Scheduler) nextDue(target time.Duration) *Handle {
	var best *Handle
	for _, h := range s.entries {
		if h.kind == kindTween || h.done || h.due > target {
			continue
		}
		if best == nil || h.due < best.due || (h.due == best.due && h.seq < best.seq) {
			best = h
		}
	}
	return best
}
