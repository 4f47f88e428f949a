package models

import (
	"math"
	"path/filepath"
	"testing"

	"github.com/taigrr/mugshot/pkg/math3d"
)

func TestLoadGLBInvalidPath(t *testing.T) {
	if _, err := LoadGLB("no-such-file.glb"); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestLoadGLBWithTextureInvalidPath(t *testing.T) {
	if _, _, err := LoadGLBWithTexture("no-such-file.glb"); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestExportGLBRejectsBadInput(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.glb")

	cases := []struct {
		name   string
		meshes []ExportMesh
	}{
		{"no meshes", nil},
		{"ragged vertices", []ExportMesh{{
			Name: "m", Vertices: make([]float32, 7), Indices: []uint16{0, 0, 0}, Transform: math3d.Identity(),
		}}},
		{"no indices", []ExportMesh{{
			Name: "m", Vertices: make([]float32, 15), Indices: nil, Transform: math3d.Identity(),
		}}},
		{"index out of range", []ExportMesh{{
			Name: "m", Vertices: make([]float32, 15), Indices: []uint16{0, 1, 3}, Transform: math3d.Identity(),
		}}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if err := ExportGLB(path, tc.meshes); err == nil {
				t.Fatal("expected error, got nil")
			}
		})
	}
}

func TestExportRoundtrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "scene.glb")

	tri := ExportMesh{
		Name: "tri",
		Vertices: []float32{
			0, 0, 0, 0, 0,
			1, 0, 0, 1, 0,
			0, 1, 0, 0, 1,
		},
		Indices:   []uint16{0, 1, 2},
		Transform: math3d.Translate(math3d.V3(1, 2, 3)),
	}
	quad := ExportMesh{
		Name: "quad",
		Vertices: []float32{
			-1, 0, -1, 0, 0,
			1, 0, -1, 1, 0,
			1, 0, 1, 1, 1,
			-1, 0, 1, 0, 1,
		},
		Indices:   []uint16{0, 1, 2, 2, 3, 0},
		Transform: math3d.Identity(),
	}
	if err := ExportGLB(path, []ExportMesh{tri, quad}); err != nil {
		t.Fatalf("export: %v", err)
	}

	mesh, err := LoadGLB(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if mesh.VertexCount() != 7 {
		t.Fatalf("VertexCount = %d, want 7", mesh.VertexCount())
	}
	if mesh.TriangleCount() != 3 {
		t.Fatalf("TriangleCount = %d, want 3", mesh.TriangleCount())
	}

	// The export bakes the transform into positions.
	pos, _, _ := mesh.Vertex(1)
	if !almostEqual(pos, math3d.V3(2, 2, 3), 1e-5) {
		t.Errorf("vertex 1 = %+v, want (2,2,3)", pos)
	}

	// The loader flips V, so an exported v=0 reads back as 1.
	_, _, uv := mesh.Vertex(0)
	if math.Abs(uv.X) > 1e-6 || math.Abs(uv.Y-1) > 1e-6 {
		t.Errorf("vertex 0 UV = %+v, want (0, 1)", uv)
	}

	// The loader swaps winding to match screen space.
	if got := mesh.Triangle(0); got != [3]int{0, 2, 1} {
		t.Errorf("triangle 0 = %v, want [0 2 1]", got)
	}
	// The second mesh's indices are rebased past the first mesh's vertices.
	if got := mesh.Triangle(1); got != [3]int{3, 5, 4} {
		t.Errorf("triangle 1 = %v, want [3 5 4]", got)
	}

	// The file carries no normals; the loader synthesizes them.
	_, n, _ := mesh.Vertex(0)
	if math.Abs(n.Len()-1) > 1e-9 {
		t.Errorf("vertex 0 normal length = %v, want 1", n.Len())
	}

	min, max := mesh.Bounds()
	if !almostEqual(min, math3d.V3(-1, 0, -1), 1e-5) {
		t.Errorf("bounds min = %+v", min)
	}
	if !almostEqual(max, math3d.V3(2, 3, 3), 1e-5) {
		t.Errorf("bounds max = %+v", max)
	}
}
