package renderer

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/tetris-clone/internal/logger"
)

// maxErrorDrain bounds checkErrors; a lost context can report errors forever.
const maxErrorDrain = 32

// checkErrors drains the GL error queue, logging each one, and returns how
// many were found.
func checkErrors(stage string) int {
	n := 0
	for ; n < maxErrorDrain; n++ {
		code := gl.GetError()
		if code == gl.NO_ERROR {
			break
		}
		logger.Error("OpenGL error",
			zap.String("stage", stage),
			zap.String("error", errorName(code)),
		)
	}
	return n
}

// errorName returns the GL enum name for an error code.
func errorName(code uint32) string {
	switch code {
	case gl.NO_ERROR:
		return "GL_NO_ERROR"
	case gl.INVALID_ENUM:
		return "GL_INVALID_ENUM"
	case gl.INVALID_VALUE:
		return "GL_INVALID_VALUE"
	case gl.INVALID_OPERATION:
		return "GL_INVALID_OPERATION"
	case gl.INVALID_FRAMEBUFFER_OPERATION:
		return "GL_INVALID_FRAMEBUFFER_OPERATION"
	case gl.OUT_OF_MEMORY:
		return "GL_OUT_OF_MEMORY"
	}
	return fmt.Sprintf("0x%04X", code)
}
