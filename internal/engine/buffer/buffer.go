package buffer

import (
	"github.com/go-gl/gl/v4.1-core/gl"
)

// VertexBuffer owns a GL array buffer.
type VertexBuffer struct {
	id uint32
}

// NewVertexBuffer uploads data into a new static array buffer and leaves it bound.
func NewVertexBuffer(data []float32) *VertexBuffer {
	vb := &VertexBuffer{}
	gl.GenBuffers(1, &vb.id)
	gl.BindBuffer(gl.ARRAY_BUFFER, vb.id)
	gl.BufferData(gl.ARRAY_BUFFER, len(data)*4, gl.Ptr(data), gl.STATIC_DRAW)
	return vb
}

// Bind binds the buffer to GL_ARRAY_BUFFER.
func (vb *VertexBuffer) Bind() {
	gl.BindBuffer(gl.ARRAY_BUFFER, vb.id)
}

// Unbind clears the GL_ARRAY_BUFFER binding.
func (vb *VertexBuffer) Unbind() {
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
}

// Delete frees the buffer. Calling it again is a no-op.
func (vb *VertexBuffer) Delete() {
	if vb.id != 0 {
		gl.DeleteBuffers(1, &vb.id)
		vb.id = 0
	}
}

// IndexBuffer owns a GL element array buffer of uint32 indices.
type IndexBuffer struct {
	id    uint32
	count int32
}

// NewIndexBuffer uploads indices into a new static element buffer and leaves it bound.
func NewIndexBuffer(indices []uint32) *IndexBuffer {
	ib := &IndexBuffer{count: int32(len(indices))}
	gl.GenBuffers(1, &ib.id)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, ib.id)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(indices)*4, gl.Ptr(indices), gl.STATIC_DRAW)
	return ib
}

// Count returns the number of indices.
func (ib *IndexBuffer) Count() int32 {
	return ib.count
}

func (ib *IndexBuffer) Bind() {
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, ib.id)
}

func (ib *IndexBuffer) Unbind() {
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, 0)
}

// Delete frees the buffer. Calling it again is a no-op.
func (ib *IndexBuffer) Delete() {
	if ib.id != 0 {
		gl.DeleteBuffers(1, &ib.id)
		ib.id = 0
	}
}

// VertexArray owns a GL vertex array object.
type VertexArray struct {
	id uint32
}

// NewVertexArray creates a vertex array and leaves it bound.
func NewVertexArray() *VertexArray {
	va := &VertexArray{}
	gl.GenVertexArrays(1, &va.id)
	gl.BindVertexArray(va.id)
	return va
}

// AddBuffer binds vb to the vertex array and enables one attribute per
// layout element, starting at location 0.
func (va *VertexArray) AddBuffer(vb *VertexBuffer, layout *Layout) {
	va.Bind()
	vb.Bind()

	offsets := layout.Offsets()
	for i, e := range layout.Elements() {
		gl.EnableVertexAttribArray(uint32(i))
		gl.VertexAttribPointerWithOffset(uint32(i), e.Count, e.Type, e.Normalized, layout.Stride(), offsets[i])
	}
}

func (va *VertexArray) Bind() {
	gl.BindVertexArray(va.id)
}

func (va *VertexArray) Unbind() {
	gl.BindVertexArray(0)
}

// Delete frees the vertex array. Calling it again is a no-op.
func (va *VertexArray) Delete() {
	if va.id != 0 {
		gl.DeleteVertexArrays(1, &va.id)
		va.id = 0
	}
}
