// Package window creates the OS window and its OpenGL context.
package window

import (
	"errors"
	"fmt"
	"runtime"
)

func init() {
	// OpenGL calls must be made from the main thread
	runtime.LockOSThread()
}

// ErrUnknownBackend is returned by New for an unsupported backend name.
var ErrUnknownBackend = errors.New("unknown window backend")

// Backend names accepted by New.
const (
	BackendSDL  = "sdl"
	BackendGLFW = "glfw"
)

// OpenGL context version requested from every backend.
const (
	GLMajor = 4
	GLMinor = 1
)

// Config holds window configuration.
type Config struct {
	Title      string
	Width      int
	Height     int
	Fullscreen bool
	VSync      bool
	Backend    string
	Debug      bool // request a debug GL context
}

// EventType identifies a window event.
type EventType int

const (
	EventNone EventType = iota
	EventQuit
	EventResize
)

// Event is a window event translated from the backend.
type Event struct {
	Type   EventType
	Width  int
	Height int
}

// Window is an OS window with a current OpenGL context.
//
// A Window owns its backend library: Close releases the context, the window
// and the library, in that order, and is safe to call more than once.
type Window interface {
	// PollEvents pumps the OS queue and returns the events since the last
	// call. The slice is only valid until the next call.
	PollEvents() []Event
	ShouldClose() bool
	SwapBuffers()
	// Size returns the drawable size in pixels.
	Size() (int, int)
	SetSize(width, height int)
	SetTitle(title string)
	Close()
}

// New creates a window using the configured backend.
func New(cfg Config) (Window, error) {
	var (
		w   Window
		err error
	)
	switch cfg.Backend {
	case BackendSDL, "":
		w, err = newSDL(cfg)
	case BackendGLFW:
		w, err = newGLFW(cfg)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, cfg.Backend)
	}
	if err != nil {
		return nil, err
	}
	return w, nil
}

// events is the per-frame event queue shared by the backends.
type events struct {
	queue       []Event
	closeWanted bool
}

func (e *events) push(ev Event) {
	if ev.Type == EventQuit {
		e.closeWanted = true
	}
	e.queue = append(e.queue, ev)
}

// drain returns the queued events and resets the queue, reusing its storage.
func (e *events) drain() []Event {
	out := e.queue
	e.queue = e.queue[:0]
	return out
}
