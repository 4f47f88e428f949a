package models

import (
	"math"
	"testing"

	"github.com/taigrr/mugshot/pkg/math3d"
	"github.com/taigrr/mugshot/pkg/primitive"
)

func TestFromBuffersPyramid(t *testing.T) {
	pm, err := primitive.Pyramid{BaseSize: 2, Height: 1.5}.Generate()
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	mesh, err := FromBuffers("pyramid", pm.Vertices, pm.Indices)
	if err != nil {
		t.Fatalf("FromBuffers: %v", err)
	}

	if mesh.VertexCount() != 5 {
		t.Errorf("VertexCount = %d, want 5", mesh.VertexCount())
	}
	if mesh.TriangleCount() != 6 {
		t.Errorf("TriangleCount = %d, want 6", mesh.TriangleCount())
	}
	for i, f := range mesh.Faces {
		if f.Material != -1 {
			t.Errorf("face %d material = %d, want -1", i, f.Material)
		}
	}

	pos, _, uv := mesh.Vertex(4)
	if !almostEqual(pos, math3d.V3(0, 1.5, 0), 1e-6) {
		t.Errorf("apex position = %+v", pos)
	}
	if uv.X != 0.5 || uv.Y != 0.5 {
		t.Errorf("apex UV = %+v, want (0.5, 0.5)", uv)
	}

	min, max := mesh.Bounds()
	if !almostEqual(min, math3d.V3(-1, 0, -1), 1e-6) || !almostEqual(max, math3d.V3(1, 1.5, 1), 1e-6) {
		t.Errorf("bounds = %+v..%+v", min, max)
	}
}

func TestFromBuffersNormalsAreUnitOrZero(t *testing.T) {
	pm, err := primitive.Cylinder{
		BaseRadius: 0.5, TopRadius: 0.5, Height: 1,
		RadialSegments: 36, HeightSegments: 1,
	}.Generate()
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	mesh, err := FromBuffers("mug", pm.Vertices, pm.Indices)
	if err != nil {
		t.Fatalf("FromBuffers: %v", err)
	}

	for i, v := range mesh.Vertices {
		l := v.Normal.Len()
		if l > 1e-9 && math.Abs(l-1) > 1e-9 {
			t.Errorf("vertex %d normal length = %v", i, l)
		}
	}

	// A straight tube's normals stay horizontal away from the rim seam.
	_, n, _ := mesh.Vertex(1)
	if math.Abs(n.Y) > 0.3 {
		t.Errorf("side vertex normal unexpectedly vertical: %+v", n)
	}
}

func TestFromBuffersRejects(t *testing.T) {
	cases := []struct {
		name  string
		verts []float32
		idx   []uint16
	}{
		{"ragged vertex buffer", make([]float32, 7), nil},
		{"ragged index buffer", make([]float32, 5), []uint16{0, 0}},
		{"index out of range", make([]float32, 5), []uint16{0, 0, 1}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := FromBuffers("bad", tc.verts, tc.idx); err == nil {
				t.Fatal("expected error, got nil")
			}
		})
	}
}
