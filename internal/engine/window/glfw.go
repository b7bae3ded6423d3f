package window

import (
	"fmt"

	"github.com/go-gl/glfw/v3.3/glfw"
	"go.uber.org/zap"

	"github.com/Faultbox/tetris-clone/internal/logger"
)

// glfwWindow wraps a GLFW window. GLFW reports events through callbacks,
// which are queued and handed out by PollEvents.
type glfwWindow struct {
	window *glfw.Window
	events events
	closed bool
}

func newGLFW(cfg Config) (_ *glfwWindow, err error) {
	logger.Info("initializing GLFW", zap.String("version", glfw.GetVersionString()))

	if err := glfw.Init(); err != nil {
		return nil, fmt.Errorf("glfwInit failed: %w", err)
	}

	w := &glfwWindow{}
	defer func() {
		if err != nil {
			w.Close()
		}
	}()

	glfw.WindowHint(glfw.ContextVersionMajor, GLMajor)
	glfw.WindowHint(glfw.ContextVersionMinor, GLMinor)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	glfw.WindowHint(glfw.DoubleBuffer, glfw.True)
	glfw.WindowHint(glfw.Resizable, glfw.True)
	if cfg.Debug {
		glfw.WindowHint(glfw.OpenGLDebugContext, glfw.True)
	}

	var monitor *glfw.Monitor
	if cfg.Fullscreen {
		monitor = glfw.GetPrimaryMonitor()
	}

	w.window, err = glfw.CreateWindow(cfg.Width, cfg.Height, cfg.Title, monitor, nil)
	if err != nil {
		return nil, fmt.Errorf("glfwCreateWindow failed: %w", err)
	}
	w.window.MakeContextCurrent()

	if cfg.VSync {
		glfw.SwapInterval(1)
	} else {
		glfw.SwapInterval(0)
	}

	w.window.SetCloseCallback(func(*glfw.Window) {
		w.events.push(Event{Type: EventQuit})
	})
	w.window.SetFramebufferSizeCallback(func(_ *glfw.Window, width, height int) {
		w.events.push(Event{Type: EventResize, Width: width, Height: height})
	})

	logger.Info("window created",
		zap.String("backend", BackendGLFW),
		zap.String("title", cfg.Title),
		zap.Int("width", cfg.Width),
		zap.Int("height", cfg.Height),
		zap.Bool("fullscreen", cfg.Fullscreen),
		zap.Bool("vsync", cfg.VSync),
	)
	return w, nil
}

func (w *glfwWindow) PollEvents() []Event {
	glfw.PollEvents()
	return w.events.drain()
}

func (w *glfwWindow) ShouldClose() bool {
	return w.events.closeWanted || w.window.ShouldClose()
}

func (w *glfwWindow) SwapBuffers() {
	w.window.SwapBuffers()
}

func (w *glfwWindow) Size() (int, int) {
	return w.window.GetFramebufferSize()
}

func (w *glfwWindow) SetSize(width, height int) {
	w.window.SetSize(width, height)
}

func (w *glfwWindow) SetTitle(title string) {
	w.window.SetTitle(title)
}

// Close destroys the window and terminates GLFW.
func (w *glfwWindow) Close() {
	if w.closed {
		return
	}
	w.closed = true
	logger.Info("closing window", zap.String("backend", BackendGLFW))

	if w.window != nil {
		w.window.Destroy()
		w.window = nil
	}
	glfw.Terminate()
}
