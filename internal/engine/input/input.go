// Package input handles SDL2 input events.
package input

import (
	"github.com/veandco/go-sdl2/sdl"
)

// EventType identifies a processed event.
type EventType int

const (
	EventNone EventType = iota
	EventQuit
	EventWindowResize
	EventFocusLost
	EventKeyDown
	EventKeyUp
	EventPointerMove
	EventPointerDown
	EventPointerUp
	EventPointerCancel
	EventWheel
)

// touchMouseID is SDL_TOUCH_MOUSEID, the device id of mouse events
// synthesized from touches.
const touchMouseID = ^uint32(0)

// Event represents a processed input event. Mouse and touch both produce
// pointer events in window coordinates.
type Event struct {
	Type   EventType
	Key    sdl.Scancode
	Width  int
	Height int
	X, Y   float32
	DX, DY float32
	Button uint8
	Touch  bool
	Wheel  float32
}

// Input handles all input processing.
type Input struct {
	events []Event
	width  int
	height int
}

// New creates a new input handler for a window of the given size.
func New(width, height int) *Input {
	return &Input{
		events: make([]Event, 0, 16),
		width:  width,
		height: height,
	}
}

// Update polls SDL events and converts them.
// Returns true if the application should quit.
func (i *Input) Update() bool {
	i.events = i.events[:0]

	quit := false
	for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
		e, ok := i.Translate(event)
		if !ok {
			continue
		}
		i.events = append(i.events, e)
		if e.Type == EventQuit {
			quit = true
		}
	}
	return quit
}

// Translate converts one SDL event. The second result is false for events
// the application ignores.
func (i *Input) Translate(event sdl.Event) (Event, bool) {
	switch e := event.(type) {
	case *sdl.QuitEvent:
		return Event{Type: EventQuit}, true

	case *sdl.WindowEvent:
		switch e.Event {
		case sdl.WINDOWEVENT_RESIZED, sdl.WINDOWEVENT_SIZE_CHANGED:
			i.width, i.height = int(e.Data1), int(e.Data2)
			return Event{Type: EventWindowResize, Width: i.width, Height: i.height}, true
		case sdl.WINDOWEVENT_FOCUS_LOST:
			return Event{Type: EventFocusLost}, true
		}

	case *sdl.KeyboardEvent:
		if e.Repeat != 0 {
			return Event{}, false
		}
		switch e.Type {
		case sdl.KEYDOWN:
			return Event{Type: EventKeyDown, Key: e.Keysym.Scancode}, true
		case sdl.KEYUP:
			return Event{Type: EventKeyUp, Key: e.Keysym.Scancode}, true
		}

	case *sdl.MouseMotionEvent:
		if e.Which == touchMouseID {
			return Event{}, false
		}
		return Event{
			Type: EventPointerMove,
			X:    float32(e.X), Y: float32(e.Y),
			DX: float32(e.XRel), DY: float32(e.YRel),
			Button: uint8(e.State),
		}, true

	case *sdl.MouseButtonEvent:
		// Touches are reported again as synthetic mouse events; use the finger ones.
		if e.Which == touchMouseID {
			return Event{}, false
		}
		ev := Event{X: float32(e.X), Y: float32(e.Y), Button: e.Button}
		switch e.Type {
		case sdl.MOUSEBUTTONDOWN:
			ev.Type = EventPointerDown
		case sdl.MOUSEBUTTONUP:
			ev.Type = EventPointerUp
		default:
			return Event{}, false
		}
		return ev, true

	case *sdl.MouseWheelEvent:
		return Event{Type: EventWheel, Wheel: float32(e.Y)}, true

	case *sdl.TouchFingerEvent:
		ev := Event{
			X:     e.X * float32(i.width),
			Y:     e.Y * float32(i.height),
			DX:    e.DX * float32(i.width),
			DY:    e.DY * float32(i.height),
			Touch: true,
		}
		switch e.Type {
		case sdl.FINGERDOWN:
			ev.Type = EventPointerDown
		case sdl.FINGERUP:
			ev.Type = EventPointerUp
		case sdl.FINGERMOTION:
			ev.Type = EventPointerMove
		default:
			return Event{}, false
		}
		return ev, true
	}
	return Event{}, false
}

// Events returns the events from the last Update.
func (i *Input) Events() []Event {
	return i.events
}

// Size returns the last known window size.
func (i *Input) Size() (int, int) {
	return i.width, i.height
}

