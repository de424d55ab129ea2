package app

import (
	"github.com/veandco/go-sdl2/sdl"

	"github.com/Faultbox/birthday-cake/internal/engine/input"
)

// action is what the frame loop must do after routing an event.
type action int

const (
	actionNone action = iota
	actionQuit
	actionResize
	actionScreenshot
	actionToggleMute
)

// gesture receives the press-and-hold input.
type gesture interface {
	PointerDown()
	PointerUp()
	PointerCancel()
}

// orbiter receives camera drags and zoom.
type orbiter interface {
	HandleDrag(dx, dy, viewportHeight float32)
	HandleZoom(steps float32)
}

// router feeds input events to the blowout gesture and the orbit camera.
// A press is both: the camera drags while the same press arms the hold.
type router struct {
	gesture gesture
	camera  orbiter
	down    bool
}

// route applies ev. viewportHeight scales drags to rotation.
func (r *router) route(ev input.Event, viewportHeight float32) action {
	switch ev.Type {
	case input.EventQuit:
		return actionQuit

	case input.EventWindowResize:
		return actionResize

	case input.EventFocusLost:
		r.release(true)

	case input.EventKeyDown:
		switch ev.Key {
		case sdl.SCANCODE_ESCAPE:
			return actionQuit
		case sdl.SCANCODE_F12:
			return actionScreenshot
		case sdl.SCANCODE_M:
			return actionToggleMute
		}

	case input.EventPointerDown:
		if !ev.Touch && ev.Button != sdl.BUTTON_LEFT {
			return actionNone
		}
		r.down = true
		r.gesture.PointerDown()

	case input.EventPointerMove:
		if r.down {
			r.camera.HandleDrag(ev.DX, ev.DY, viewportHeight)
		}

	case input.EventPointerUp:
		if !ev.Touch && ev.Button != sdl.BUTTON_LEFT {
			return actionNone
		}
		r.release(false)

	case input.EventPointerCancel:
		r.release(true)

	case input.EventWheel:
		r.camera.HandleZoom(ev.Wheel)
	}
	return actionNone
}

func (r *router) release(cancel bool) {
	if !r.down {
		return
	}
	r.down = false
	if cancel {
		r.gesture.PointerCancel()
	} else {
		r.gesture.PointerUp()
	}
}
