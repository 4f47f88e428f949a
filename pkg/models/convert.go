package models

import (
	"fmt"

	"github.com/taigrr/mugshot/pkg/math3d"
)

// vertexStride is the float32 layout of generator buffers: three position
// components followed by two texture coordinates.
const vertexStride = 5

// FromBuffers builds a Mesh from flat generator output: interleaved
// position+UV float32 data and a triangle index buffer. The wire layout
// carries no normals, so they are computed here.
func FromBuffers(name string, vertices []float32, indices []uint16) (*Mesh, error) {
	if len(vertices)%vertexStride != 0 {
		return nil, fmt.Errorf("vertex buffer length %d is not a multiple of %d", len(vertices), vertexStride)
	}
	if len(indices)%3 != 0 {
		return nil, fmt.Errorf("index buffer length %d is not a multiple of 3", len(indices))
	}

	nVerts := len(vertices) / vertexStride
	mesh := NewMesh(name)
	mesh.Vertices = make([]Vertex, nVerts)
	for i := 0; i < nVerts; i++ {
		o := i * vertexStride
		mesh.Vertices[i] = Vertex{
			Position: math3d.V3(float64(vertices[o]), float64(vertices[o+1]), float64(vertices[o+2])),
			UV:       math3d.V2(float64(vertices[o+3]), float64(vertices[o+4])),
		}
	}

	mesh.Faces = make([]Face, 0, len(indices)/3)
	for i := 0; i+2 < len(indices); i += 3 {
		f := Face{
			V:        [3]int{int(indices[i]), int(indices[i+1]), int(indices[i+2])},
			Material: -1,
		}
		for _, vi := range f.V {
			if vi >= nVerts {
				return nil, fmt.Errorf("index %d out of range for %d vertices", vi, nVerts)
			}
		}
		mesh.Faces = append(mesh.Faces, f)
	}

	mesh.CalculateNormals()
	mesh.CalculateBounds()
	return mesh, nil
}
