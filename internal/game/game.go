// Package game runs the window, renderer and main loop.
package game

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/tetris-clone/internal/config"
	"github.com/Faultbox/tetris-clone/internal/engine/renderer"
	"github.com/Faultbox/tetris-clone/internal/engine/window"
	"github.com/Faultbox/tetris-clone/internal/logger"
)

// scene is what the loop needs from the renderer.
type scene interface {
	Draw()
	Resize(width, height int)
	Close()
}

// Constructors, replaced in tests.
var (
	newWindow = window.New
	newScene  = func(cfg renderer.Config) (scene, error) {
		r, err := renderer.New(cfg)
		if err != nil {
			return nil, err
		}
		return r, nil
	}
)

// Game is the main application instance.
type Game struct {
	config   *config.Config
	window   window.Window
	renderer scene
	cleanup  teardown
}

// New creates the window and then the renderer. If any step fails, whatever
// was already created is released before the error is returned.
func New(cfg *config.Config) (_ *Game, err error) {
	logger.Info("initializing game",
		zap.String("title", cfg.Window.Title),
		zap.Int("width", cfg.Window.Width),
		zap.Int("height", cfg.Window.Height),
		zap.String("backend", cfg.Window.Backend),
	)

	g := &Game{config: cfg}
	defer func() {
		if err != nil {
			g.Close()
		}
	}()

	// Window first: it owns the OpenGL context the renderer needs
	g.window, err = newWindow(window.Config{
		Title:      cfg.Window.Title,
		Width:      cfg.Window.Width,
		Height:     cfg.Window.Height,
		Fullscreen: cfg.Window.Fullscreen,
		VSync:      cfg.Window.VSync,
		Backend:    cfg.Window.Backend,
		Debug:      cfg.Render.DebugGL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create window: %w", err)
	}
	g.cleanup.push("window", g.window.Close)

	width, height := g.window.Size()
	g.renderer, err = newScene(renderer.Config{
		Width:      width,
		Height:     height,
		ShaderPath: cfg.Render.ShaderPath,
		ClearColor: cfg.Render.ClearColor,
		QuadColor:  cfg.Render.QuadColor,
		Debug:      cfg.Render.DebugGL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create renderer: %w", err)
	}
	g.cleanup.push("renderer", g.renderer.Close)

	logger.Info("game initialized successfully")
	return g, nil
}

// Run runs the main loop until the window is asked to close.
func (g *Game) Run() error {
	frameCount := 0
	fpsTimer := time.Now()

	logger.Info("starting game loop")

	for !g.window.ShouldClose() {
		for _, event := range g.window.PollEvents() {
			switch event.Type {
			case window.EventResize:
				g.renderer.Resize(event.Width, event.Height)
			case window.EventQuit:
				logger.Debug("close requested")
			}
		}
		if g.window.ShouldClose() {
			break
		}

		g.renderer.Draw()
		g.window.SwapBuffers()

		frameCount++
		if elapsed := time.Since(fpsTimer); elapsed >= time.Second {
			logger.Debug("fps",
				zap.Int("count", frameCount),
				zap.Duration("frame", elapsed/time.Duration(frameCount)),
			)
			if g.config.Render.DebugGL {
				g.window.SetTitle(fmt.Sprintf("%s (%d FPS)", g.config.Window.Title, frameCount))
			}
			frameCount = 0
			fpsTimer = time.Now()
		}
	}

	return nil
}

// Close releases the renderer and then the window. Safe to call twice.
func (g *Game) Close() {
	if g.cleanup.len() == 0 {
		return
	}
	logger.Info("closing game")
	g.cleanup.run()
}
