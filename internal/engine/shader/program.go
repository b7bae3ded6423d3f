// Package shader loads combined shader sources and builds OpenGL programs from them.
package shader

import (
	"fmt"
	"io/fs"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/tetris-clone/internal/logger"
)

// Program is an owned, linked OpenGL shader program.
type Program struct {
	id       uint32
	name     string
	uniforms map[string]int32
}

// Load reads the combined source at path and builds a program from it.
func Load(path string) (*Program, error) {
	src, err := LoadSource(path)
	if err != nil {
		return nil, err
	}
	return build(path, src)
}

// LoadFS is Load over a file system, e.g. the embedded default shaders.
func LoadFS(fsys fs.FS, name string) (*Program, error) {
	src, err := LoadSourceFS(fsys, name)
	if err != nil {
		return nil, err
	}
	return build(name, src)
}

func build(name string, src Source) (*Program, error) {
	if src.Dropped > 0 {
		logger.Warn("shader lines before first section marker were ignored",
			zap.String("shader", name),
			zap.Int("lines", src.Dropped),
		)
	}

	id, err := CompileProgram(src.Vertex, src.Fragment)
	if err != nil {
		return nil, fmt.Errorf("shader %s: %w", name, err)
	}

	logger.Debug("shader program created",
		zap.String("shader", name),
		zap.Uint32("program", id),
	)
	return &Program{
		id:       id,
		name:     name,
		uniforms: make(map[string]int32),
	}, nil
}

// ID returns the GL program handle, 0 after Close.
func (p *Program) ID() uint32 {
	return p.id
}

// Bind makes the program current.
func (p *Program) Bind() {
	gl.UseProgram(p.id)
}

// Unbind clears the current program.
func (p *Program) Unbind() {
	gl.UseProgram(0)
}

// SetUniform4f sets a vec4 uniform on the program. The program must be bound.
func (p *Program) SetUniform4f(name string, v0, v1, v2, v3 float32) {
	gl.Uniform4f(p.uniformLocation(name), v0, v1, v2, v3)
}

// uniformLocation caches lookups. A missing uniform is reported once and
// resolves to -1, which GL ignores on write.
func (p *Program) uniformLocation(name string) int32 {
	if loc, ok := p.uniforms[name]; ok {
		return loc
	}

	loc := gl.GetUniformLocation(p.id, gl.Str(name+"\x00"))
	if loc < 0 {
		logger.Warn("uniform does not exist",
			zap.String("shader", p.name),
			zap.String("uniform", name),
		)
	}
	p.uniforms[name] = loc
	return loc
}

// Close deletes the program. Calling it again is a no-op.
func (p *Program) Close() {
	if p.id == 0 {
		return
	}
	gl.DeleteProgram(p.id)
	p.id = 0
	clear(p.uniforms)
}

// CompileProgram compiles vertex and fragment shaders, links and validates them.
// Returns the program ID or an error carrying the GL info log.
func CompileProgram(vertexSrc, fragmentSrc string) (uint32, error) {
	vertShader, err := compileShader(vertexSrc, gl.VERTEX_SHADER, StageVertex)
	if err != nil {
		return 0, err
	}
	defer gl.DeleteShader(vertShader)

	fragShader, err := compileShader(fragmentSrc, gl.FRAGMENT_SHADER, StageFragment)
	if err != nil {
		return 0, err
	}
	defer gl.DeleteShader(fragShader)

	program := gl.CreateProgram()
	gl.AttachShader(program, vertShader)
	gl.AttachShader(program, fragShader)
	gl.LinkProgram(program)

	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		log := programLog(program)
		gl.DeleteProgram(program)
		return 0, fmt.Errorf("link: %s", log)
	}

	gl.ValidateProgram(program)
	gl.GetProgramiv(program, gl.VALIDATE_STATUS, &status)
	if status == gl.FALSE {
		// Validation depends on the bound state at call time, so a failure
		// here is informational only.
		logger.Debug("shader program validation failed", zap.String("log", programLog(program)))
	}

	gl.DetachShader(program, vertShader)
	gl.DetachShader(program, fragShader)
	return program, nil
}

// compileShader compiles a single shader stage.
func compileShader(source string, shaderType uint32, stage Stage) (uint32, error) {
	shader := gl.CreateShader(shaderType)
	csource, free := gl.Strs(source + "\x00")
	gl.ShaderSource(shader, 1, csource, nil)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLen int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLen)
		log := make([]byte, logLen+1)
		gl.GetShaderInfoLog(shader, logLen, nil, &log[0])
		gl.DeleteShader(shader)
		return 0, fmt.Errorf("%s shader: %s", stage, trimLog(log))
	}

	return shader, nil
}

func programLog(program uint32) string {
	var logLen int32
	gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logLen)
	log := make([]byte, logLen+1)
	gl.GetProgramInfoLog(program, logLen, nil, &log[0])
	return trimLog(log)
}

// trimLog drops the NUL terminator and trailing padding GL leaves in info logs.
func trimLog(log []byte) string {
	for i, b := range log {
		if b == 0 {
			return string(log[:i])
		}
	}
	return string(log)
}
