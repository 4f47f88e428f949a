// Package primitive generates vertex and index buffers for a small set of
// canonical solids: pyramid, ground plane, open cylinder (frustum), and
// torus. Generators are pure functions over their parameters: the same
// config always produces bit-identical buffers, there is no hidden state,
// and calls are safe from any goroutine.
//
// The emitted layout matches what an indexed draw call wants directly:
// interleaved float32 vertices with a stride of five (x, y, z position
// followed by s, t texture coordinates in [0,1]) and uint16 triangle
// indices. Normals are deliberately absent; consumers that light the
// meshes derive them from the triangle data.
package primitive

import (
	"errors"
	"fmt"
)

// Stride is the number of float32 values per vertex: 3 position + 2 UV.
const Stride = 5

// maxVertices is the ceiling imposed by the 16-bit index type.
const maxVertices = 1 << 16

// ErrTooManyVertices is returned when a tessellation would emit more
// vertices than a uint16 index can address.
var ErrTooManyVertices = errors.New("primitive: vertex count exceeds 16-bit index range")

// Mesh is an immutable triangle mesh: interleaved vertex data plus an
// index buffer referencing it. Regeneration means calling the generator
// again; a returned Mesh is never mutated.
type Mesh struct {
	// Vertices holds Stride float32 values per vertex.
	Vertices []float32
	// Indices groups into consecutive triples, one triangle each,
	// consistently wound across the mesh.
	Indices []uint16
}

// VertexCount returns the number of vertices in the buffer.
func (m Mesh) VertexCount() int {
	return len(m.Vertices) / Stride
}

// TriangleCount returns the number of triangles in the index buffer.
func (m Mesh) TriangleCount() int {
	return len(m.Indices) / 3
}

// Position returns the position of vertex i.
func (m Mesh) Position(i int) (x, y, z float32) {
	o := i * Stride
	return m.Vertices[o], m.Vertices[o+1], m.Vertices[o+2]
}

// UV returns the texture coordinate of vertex i.
func (m Mesh) UV(i int) (s, t float32) {
	o := i * Stride
	return m.Vertices[o+3], m.Vertices[o+4]
}

func positive(field string, v float32) error {
	if v <= 0 {
		return fmt.Errorf("primitive: %s must be positive, got %v", field, v)
	}
	return nil
}

func nonNegative(field string, v float32) error {
	if v < 0 {
		return fmt.Errorf("primitive: %s must not be negative, got %v", field, v)
	}
	return nil
}

func atLeast(field string, v, min int) error {
	if v < min {
		return fmt.Errorf("primitive: %s must be at least %d, got %d", field, min, v)
	}
	return nil
}
