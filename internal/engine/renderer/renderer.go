// Package renderer draws the quad scene with OpenGL.
package renderer

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/tetris-clone/internal/engine/buffer"
	"github.com/Faultbox/tetris-clone/internal/engine/shader"
	"github.com/Faultbox/tetris-clone/internal/engine/shader/shaders"
	"github.com/Faultbox/tetris-clone/internal/logger"
)

// Config holds renderer configuration.
type Config struct {
	Width      int
	Height     int
	ShaderPath string // empty uses the embedded default shader
	ClearColor [4]float32
	QuadColor  [4]float32
	Debug      bool // drain and log glGetError after setup and every frame
}

// Quad geometry in clip space: four corners, two triangles.
var (
	quadPositions = []float32{
		-0.5, -0.5,
		0.5, -0.5,
		0.5, 0.5,
		-0.5, 0.5,
	}
	quadIndices = []uint32{
		0, 1, 2,
		2, 3, 0,
	}
)

// Renderer owns the GL objects for the scene.
type Renderer struct {
	config Config

	program *shader.Program
	va      *buffer.VertexArray
	vb      *buffer.VertexBuffer
	ib      *buffer.IndexBuffer

	closed bool
}

// New creates the renderer.
// Must be called after the OpenGL context is current.
func New(cfg Config) (_ *Renderer, err error) {
	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}

	logger.Info("OpenGL initialized",
		zap.String("version", gl.GoStr(gl.GetString(gl.VERSION))),
		zap.String("renderer", gl.GoStr(gl.GetString(gl.RENDERER))),
		zap.String("glsl", gl.GoStr(gl.GetString(gl.SHADING_LANGUAGE_VERSION))),
	)

	r := &Renderer{config: cfg}
	defer func() {
		if err != nil {
			r.Close()
		}
	}()

	c := cfg.ClearColor
	gl.ClearColor(c[0], c[1], c[2], c[3])
	gl.Viewport(0, 0, int32(cfg.Width), int32(cfg.Height))

	r.createQuad()

	if cfg.ShaderPath != "" {
		r.program, err = shader.Load(cfg.ShaderPath)
	} else {
		r.program, err = shader.LoadFS(shaders.FS, shaders.Basic)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create shader program: %w", err)
	}

	// Leave nothing bound; Draw binds what it needs
	r.va.Unbind()
	r.vb.Unbind()
	r.ib.Unbind()
	r.program.Unbind()

	if cfg.Debug {
		if n := checkErrors("setup"); n > 0 {
			return nil, fmt.Errorf("%d GL errors during setup", n)
		}
	}
	return r, nil
}

// createQuad uploads the quad geometry. The index buffer is created while the
// vertex array is bound, so the array records it.
func (r *Renderer) createQuad() {
	r.va = buffer.NewVertexArray()
	r.vb = buffer.NewVertexBuffer(quadPositions)

	var layout buffer.Layout
	layout.PushFloat(2)
	r.va.AddBuffer(r.vb, &layout)

	r.ib = buffer.NewIndexBuffer(quadIndices)

	logger.Debug("quad created",
		zap.Int("vertices", len(quadPositions)/2),
		zap.Int32("indices", r.ib.Count()),
	)
}

// Close releases GL objects in reverse order of creation. Safe to call twice.
func (r *Renderer) Close() {
	if r.closed {
		return
	}
	r.closed = true
	logger.Info("closing renderer")

	if r.program != nil {
		r.program.Unbind()
		r.program.Close()
	}
	if r.ib != nil {
		r.ib.Unbind()
		r.ib.Delete()
	}
	if r.vb != nil {
		r.vb.Unbind()
		r.vb.Delete()
	}
	if r.va != nil {
		r.va.Unbind()
		r.va.Delete()
	}
}

// Resize handles window resize.
func (r *Renderer) Resize(width, height int) {
	r.config.Width = width
	r.config.Height = height
	gl.Viewport(0, 0, int32(width), int32(height))
	logger.Debug("renderer resized",
		zap.Int("width", width),
		zap.Int("height", height),
	)
}

// SetQuadColor changes the color the quad is drawn with.
func (r *Renderer) SetQuadColor(c [4]float32) {
	r.config.QuadColor = c
}

// Draw clears the frame and draws the quad.
func (r *Renderer) Draw() {
	gl.Clear(gl.COLOR_BUFFER_BIT)

	c := r.config.QuadColor
	r.program.Bind()
	r.program.SetUniform4f("u_Color", c[0], c[1], c[2], c[3])

	r.va.Bind()
	r.ib.Bind()
	gl.DrawElements(gl.TRIANGLES, r.ib.Count(), gl.UNSIGNED_INT, nil)

	if r.config.Debug {
		checkErrors("draw")
	}
}
