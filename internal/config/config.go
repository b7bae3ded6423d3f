// Package config handles application configuration loading and management.
package config

import (
	"errors"
	"fmt"
)

// ErrInvalid is returned by Validate for settings the app cannot start with.
var ErrInvalid = errors.New("invalid config")

// Window backends.
const (
	BackendSDL  = "sdl"
	BackendGLFW = "glfw"
)

// Config holds all application settings.
type Config struct {
	Window  WindowConfig  `yaml:"window"`
	Render  RenderConfig  `yaml:"render"`
	Logging LoggingConfig `yaml:"logging"`
}

// WindowConfig holds display settings.
type WindowConfig struct {
	Title      string `yaml:"title"`
	Width      int    `yaml:"width"`
	Height     int    `yaml:"height"`
	Fullscreen bool   `yaml:"fullscreen"`
	VSync      bool   `yaml:"vsync"`
	Backend    string `yaml:"backend"` // "sdl" or "glfw"
}

// RenderConfig holds rendering settings.
type RenderConfig struct {
	// ShaderPath points at a combined "#shader" source file.
	// Empty means the embedded default shader.
	ShaderPath string     `yaml:"shader_path"`
	ClearColor [4]float32 `yaml:"clear_color"`
	QuadColor  [4]float32 `yaml:"quad_color"`
	DebugGL    bool       `yaml:"debug_gl"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Window: WindowConfig{
			Title:      "Tetris Clone",
			Width:      800,
			Height:     600,
			Fullscreen: false,
			VSync:      true,
			Backend:    BackendSDL,
		},
		Render: RenderConfig{
			ShaderPath: "",
			ClearColor: [4]float32{0.0, 0.0, 0.0, 1.0},
			QuadColor:  [4]float32{0.2, 0.3, 0.8, 1.0},
			DebugGL:    false,
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}

// Validate checks settings that would otherwise fail deep inside window setup.
func (c *Config) Validate() error {
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("%w: window size %dx%d", ErrInvalid, c.Window.Width, c.Window.Height)
	}
	switch c.Window.Backend {
	case BackendSDL, BackendGLFW:
	default:
		return fmt.Errorf("%w: unknown window backend %q", ErrInvalid, c.Window.Backend)
	}
	return nil
}
