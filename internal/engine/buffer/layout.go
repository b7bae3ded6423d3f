// Package buffer wraps OpenGL vertex, index and vertex array objects.
package buffer

import "github.com/go-gl/gl/v4.1-core/gl"

// Element describes one vertex attribute in a Layout.
type Element struct {
	Type       uint32 // gl.FLOAT, gl.UNSIGNED_INT or gl.UNSIGNED_BYTE
	Count      int32
	Normalized bool
}

// Size returns the element's size in bytes.
func (e Element) Size() int32 {
	return SizeOfType(e.Type) * e.Count
}

// SizeOfType returns the byte size of a supported attribute type, 0 otherwise.
func SizeOfType(glType uint32) int32 {
	switch glType {
	case gl.FLOAT, gl.UNSIGNED_INT:
		return 4
	case gl.UNSIGNED_BYTE:
		return 1
	}
	return 0
}

// Layout is the interleaved attribute layout of a vertex buffer.
// Attribute i in the shader corresponds to the i-th pushed element.
type Layout struct {
	elements []Element
	stride   int32
}

// PushFloat appends count float32 components.
func (l *Layout) PushFloat(count int32) *Layout {
	return l.push(Element{Type: gl.FLOAT, Count: count})
}

// PushUint appends count uint32 components.
func (l *Layout) PushUint(count int32) *Layout {
	return l.push(Element{Type: gl.UNSIGNED_INT, Count: count})
}

// PushUByte appends count normalized uint8 components.
func (l *Layout) PushUByte(count int32) *Layout {
	return l.push(Element{Type: gl.UNSIGNED_BYTE, Count: count, Normalized: true})
}

func (l *Layout) push(e Element) *Layout {
	l.elements = append(l.elements, e)
	l.stride += e.Size()
	return l
}

// Elements returns the pushed elements in order.
func (l *Layout) Elements() []Element {
	return l.elements
}

// Stride returns the size of one vertex in bytes.
func (l *Layout) Stride() int32 {
	return l.stride
}

// Offsets returns the byte offset of each element within a vertex.
func (l *Layout) Offsets() []uintptr {
	offsets := make([]uintptr, len(l.elements))
	var off uintptr
	for i, e := range l.elements {
		offsets[i] = off
		off += uintptr(e.Size())
	}
	return offsets
}
