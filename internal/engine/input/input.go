// Package input turns SDL2 events into viewer actions.
package input

import (
	"github.com/veandco/go-sdl2/sdl"
)

// Action is a viewer command bound to a key.
type Action int

const (
	ActionNone Action = iota
	ActionQuit
	ActionPause
	ActionNextAnimation
	ActionNextSkin
	ActionResetCamera
	ActionReload
	ActionSlower
	ActionFaster
	ActionScreenshot
	ActionOpen
)

// Bindings maps scancodes to actions.
var Bindings = map[sdl.Scancode]Action{
	sdl.SCANCODE_ESCAPE: ActionQuit,
	sdl.SCANCODE_SPACE:  ActionPause,
	sdl.SCANCODE_N:      ActionNextAnimation,
	sdl.SCANCODE_S:      ActionNextSkin,
	sdl.SCANCODE_HOME:   ActionResetCamera,
	sdl.SCANCODE_R:      ActionReload,
	sdl.SCANCODE_MINUS:  ActionSlower,
	sdl.SCANCODE_EQUALS: ActionFaster,
	sdl.SCANCODE_F12:    ActionScreenshot,
	sdl.SCANCODE_O:      ActionOpen,
}

// Frame is the input gathered by one Update call.
type Frame struct {
	Quit    bool
	Resized bool
	// DragX and DragY are mouse motion in pixels while the left button is held.
	DragX, DragY float32
	// Wheel is the scroll amount, positive away from the user.
	Wheel   float32
	Actions []Action
}

// Has reports whether a was triggered this frame.
func (f *Frame) Has(a Action) bool {
	for _, got := range f.Actions {
		if got == a {
			return true
		}
	}
	return false
}

// Input polls SDL events.
type Input struct {
	frame Frame
}

// New creates a new input handler.
func New() *Input {
	return &Input{frame: Frame{Actions: make([]Action, 0, 8)}}
}

// Update drains the SDL event queue. The returned frame is reused by the
// next call.
func (i *Input) Update() *Frame {
	f := &i.frame
	*f = Frame{Actions: f.Actions[:0]}

	for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
		switch e := event.(type) {
		case *sdl.QuitEvent:
			f.Quit = true

		case *sdl.WindowEvent:
			if e.Event == sdl.WINDOWEVENT_SIZE_CHANGED {
				f.Resized = true
			}

		case *sdl.KeyboardEvent:
			if e.Type != sdl.KEYDOWN || e.Repeat != 0 {
				continue
			}
			if a, ok := Bindings[e.Keysym.Scancode]; ok {
				if a == ActionQuit {
					f.Quit = true
				}
				f.Actions = append(f.Actions, a)
			}

		case *sdl.MouseMotionEvent:
			if e.State&sdl.ButtonLMask() != 0 {
				f.DragX += float32(e.XRel)
				f.DragY += float32(e.YRel)
			}

		case *sdl.MouseWheelEvent:
			f.Wheel += float32(e.Y)
		}
	}
	return f
}
