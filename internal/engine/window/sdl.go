package window

import (
	"fmt"

	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"

	"github.com/Faultbox/tetris-clone/internal/logger"
)

// sdlWindow wraps an SDL2 window and OpenGL context.
type sdlWindow struct {
	window    *sdl.Window
	glContext sdl.GLContext
	events    events
	closed    bool
}

func newSDL(cfg Config) (_ *sdlWindow, err error) {
	var v sdl.Version
	sdl.GetVersion(&v)
	logger.Info("initializing SDL2",
		zap.String("version", fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Patch)),
	)

	if err := sdl.Init(sdl.INIT_VIDEO | sdl.INIT_EVENTS); err != nil {
		return nil, fmt.Errorf("SDL_Init failed: %w", err)
	}

	w := &sdlWindow{}
	defer func() {
		if err != nil {
			w.Close()
		}
	}()

	// Attributes must be set before the window is created
	sdl.GLSetAttribute(sdl.GL_CONTEXT_MAJOR_VERSION, GLMajor)
	sdl.GLSetAttribute(sdl.GL_CONTEXT_MINOR_VERSION, GLMinor)
	sdl.GLSetAttribute(sdl.GL_CONTEXT_PROFILE_MASK, sdl.GL_CONTEXT_PROFILE_CORE)
	contextFlags := int(sdl.GL_CONTEXT_FORWARD_COMPATIBLE_FLAG)
	if cfg.Debug {
		contextFlags |= int(sdl.GL_CONTEXT_DEBUG_FLAG)
	}
	sdl.GLSetAttribute(sdl.GL_CONTEXT_FLAGS, contextFlags)
	sdl.GLSetAttribute(sdl.GL_DOUBLEBUFFER, 1)

	flags := uint32(sdl.WINDOW_OPENGL | sdl.WINDOW_RESIZABLE | sdl.WINDOW_ALLOW_HIGHDPI)
	if cfg.Fullscreen {
		flags |= sdl.WINDOW_FULLSCREEN
	}

	w.window, err = sdl.CreateWindow(
		cfg.Title,
		sdl.WINDOWPOS_CENTERED,
		sdl.WINDOWPOS_CENTERED,
		int32(cfg.Width),
		int32(cfg.Height),
		flags,
	)
	if err != nil {
		return nil, fmt.Errorf("SDL_CreateWindow failed: %w", err)
	}

	w.glContext, err = w.window.GLCreateContext()
	if err != nil {
		return nil, fmt.Errorf("SDL_GL_CreateContext failed: %w", err)
	}
	if err = w.window.GLMakeCurrent(w.glContext); err != nil {
		return nil, fmt.Errorf("SDL_GL_MakeCurrent failed: %w", err)
	}

	interval := 0
	if cfg.VSync {
		interval = 1
	}
	if err := sdl.GLSetSwapInterval(interval); err != nil {
		logger.Warn("failed to set swap interval", zap.Int("interval", interval), zap.Error(err))
	}

	logger.Info("window created",
		zap.String("backend", BackendSDL),
		zap.String("title", cfg.Title),
		zap.Int("width", cfg.Width),
		zap.Int("height", cfg.Height),
		zap.Bool("fullscreen", cfg.Fullscreen),
		zap.Bool("vsync", cfg.VSync),
	)
	return w, nil
}

func (w *sdlWindow) PollEvents() []Event {
	for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
		switch e := event.(type) {
		case *sdl.QuitEvent:
			w.events.push(Event{Type: EventQuit})
		case *sdl.WindowEvent:
			switch e.Event {
			case sdl.WINDOWEVENT_CLOSE:
				w.events.push(Event{Type: EventQuit})
			case sdl.WINDOWEVENT_SIZE_CHANGED:
				// Report the drawable size; it differs from the
				// window size on high-DPI displays.
				width, height := w.Size()
				w.events.push(Event{Type: EventResize, Width: width, Height: height})
			}
		}
	}
	return w.events.drain()
}

func (w *sdlWindow) ShouldClose() bool {
	return w.events.closeWanted
}

func (w *sdlWindow) SwapBuffers() {
	w.window.GLSwap()
}

func (w *sdlWindow) Size() (int, int) {
	width, height := w.window.GLGetDrawableSize()
	return int(width), int(height)
}

func (w *sdlWindow) SetSize(width, height int) {
	w.window.SetSize(int32(width), int32(height))
}

func (w *sdlWindow) SetTitle(title string) {
	w.window.SetTitle(title)
}

// Close destroys the context and window, then shuts SDL down.
func (w *sdlWindow) Close() {
	if w.closed {
		return
	}
	w.closed = true
	logger.Info("closing window", zap.String("backend", BackendSDL))

	if w.glContext != nil {
		sdl.GLDeleteContext(w.glContext)
		w.glContext = nil
	}
	if w.window != nil {
		w.window.Destroy()
		w.window = nil
	}
	sdl.Quit()
}
