package primitive

import (
	"errors"
	"math"
	"testing"
)

func TestCylinderCounts(t *testing.T) {
	tests := []struct {
		name        string
		cfg         Cylinder
		wantVerts   int
		wantIndices int
	}{
		{
			name:        "mug body tessellation",
			cfg:         Cylinder{BaseRadius: 0.5, TopRadius: 0.5, Height: 1, RadialSegments: 36, HeightSegments: 1},
			wantVerts:   74,
			wantIndices: 216,
		},
		{
			name:        "minimum tessellation",
			cfg:         Cylinder{BaseRadius: 1, TopRadius: 1, Height: 1, RadialSegments: 3, HeightSegments: 1},
			wantVerts:   8,
			wantIndices: 18,
		},
		{
			name:        "tall frustum",
			cfg:         Cylinder{BaseRadius: 2, TopRadius: 0.5, Height: 4, RadialSegments: 16, HeightSegments: 8},
			wantVerts:   153,
			wantIndices: 768,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mesh, err := tt.cfg.Generate()
			if err != nil {
				t.Fatalf("Generate() error: %v", err)
			}
			if got := mesh.VertexCount(); got != tt.wantVerts {
				t.Errorf("vertex count = %d, want %d", got, tt.wantVerts)
			}
			if got := len(mesh.Indices); got != tt.wantIndices {
				t.Errorf("index count = %d, want %d", got, tt.wantIndices)
			}
		})
	}
}

func TestCylinderGeometry(t *testing.T) {
	cfg := Cylinder{BaseRadius: 0.5, TopRadius: 0.5, Height: 1, RadialSegments: 36, HeightSegments: 1}
	mesh, err := cfg.Generate()
	if err != nil {
		t.Fatalf("Generate() error: %v", err)
	}

	// Bottom ring at y=0, top ring at y=Height.
	ringLen := cfg.RadialSegments + 1
	for x := 0; x < ringLen; x++ {
		if _, y, _ := mesh.Position(x); y != 0 {
			t.Fatalf("bottom ring vertex %d has y=%v, want 0", x, y)
		}
		if _, y, _ := mesh.Position(ringLen + x); y != 1 {
			t.Fatalf("top ring vertex %d has y=%v, want 1", x, y)
		}
	}

	// Every ring vertex sits on the circle of its ring radius.
	for i := range mesh.VertexCount() {
		x, _, z := mesh.Position(i)
		r := math.Sqrt(float64(x)*float64(x) + float64(z)*float64(z))
		if math.Abs(r-0.5) > 1e-6 {
			t.Fatalf("vertex %d radius = %v, want 0.5", i, r)
		}
	}
}

func TestCylinderSeam(t *testing.T) {
	mesh, err := Cylinder{BaseRadius: 1, TopRadius: 1, Height: 2, RadialSegments: 8, HeightSegments: 2}.Generate()
	if err != nil {
		t.Fatalf("Generate() error: %v", err)
	}

	// The first and last vertex of each ring coincide in space but carry
	// u=0 and u=1 so the texture does not wrap across the seam.
	ringLen := 9
	for ring := 0; ring < 3; ring++ {
		first := ring * ringLen
		last := first + ringLen - 1

		fx, fy, fz := mesh.Position(first)
		lx, ly, lz := mesh.Position(last)
		if math.Abs(float64(fx-lx)) > 1e-6 || fy != ly || math.Abs(float64(fz-lz)) > 1e-6 {
			t.Errorf("ring %d seam positions differ: (%v %v %v) vs (%v %v %v)", ring, fx, fy, fz, lx, ly, lz)
		}

		if u, _ := mesh.UV(first); u != 0 {
			t.Errorf("ring %d first u = %v, want 0", ring, u)
		}
		if u, _ := mesh.UV(last); u != 1 {
			t.Errorf("ring %d last u = %v, want 1", ring, u)
		}
	}
}

func TestTorusCounts(t *testing.T) {
	mesh, err := Torus{InnerRadius: 0.1, OuterRadius: 0.2, RadialSegments: 36, TubularSegments: 100}.Generate()
	if err != nil {
		t.Fatalf("Generate() error: %v", err)
	}
	if got := mesh.VertexCount(); got != 3737 {
		t.Errorf("vertex count = %d, want 3737", got)
	}
	if got := len(mesh.Indices); got != 21600 {
		t.Errorf("index count = %d, want 21600", got)
	}
}

func TestTorusGeometry(t *testing.T) {
	cfg := Torus{InnerRadius: 0.1, OuterRadius: 0.2, RadialSegments: 12, TubularSegments: 24}
	mesh, err := cfg.Generate()
	if err != nil {
		t.Fatalf("Generate() error: %v", err)
	}

	// Each tube ring is a circle of radius OuterRadius around its center
	// on the centerline, which lies in the XY plane at radius InnerRadius.
	for i := 0; i <= cfg.TubularSegments; i++ {
		u := 2 * math.Pi * float64(i) / float64(cfg.TubularSegments)
		cx := math.Cos(u) * float64(cfg.InnerRadius)
		cy := math.Sin(u) * float64(cfg.InnerRadius)

		for j := 0; j <= cfg.RadialSegments; j++ {
			x, y, z := mesh.Position(i*(cfg.RadialSegments+1) + j)
			dx := float64(x) - cx
			dy := float64(y) - cy
			d := math.Sqrt(dx*dx + dy*dy + float64(z)*float64(z))
			if math.Abs(d-float64(cfg.OuterRadius)) > 1e-5 {
				t.Fatalf("vertex (%d,%d) is %v from its ring center, want %v", i, j, d, cfg.OuterRadius)
			}
		}
	}
}

func TestPyramidShape(t *testing.T) {
	tests := []struct {
		name     string
		baseSize float32
		height   float32
	}{
		{"unit", 1, 1},
		{"squat", 4, 0.5},
		{"needle", 0.1, 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mesh, err := Pyramid{BaseSize: tt.baseSize, Height: tt.height}.Generate()
			if err != nil {
				t.Fatalf("Generate() error: %v", err)
			}
			if got := mesh.VertexCount(); got != 5 {
				t.Fatalf("vertex count = %d, want 5", got)
			}
			if got := len(mesh.Indices); got != 18 {
				t.Fatalf("index count = %d, want 18", got)
			}

			// Apex is the last vertex, centered above the base.
			x, y, z := mesh.Position(4)
			if x != 0 || z != 0 || y != tt.height {
				t.Errorf("apex = (%v %v %v), want (0 %v 0)", x, y, z, tt.height)
			}
			if s, tc := mesh.UV(4); s != 0.5 || tc != 0.5 {
				t.Errorf("apex UV = (%v %v), want (0.5 0.5)", s, tc)
			}

			// Base corners at y=0, half the base size from the center.
			h := tt.baseSize / 2
			for i := range 4 {
				x, y, z := mesh.Position(i)
				if y != 0 {
					t.Errorf("base vertex %d has y=%v, want 0", i, y)
				}
				if ax, az := abs32(x), abs32(z); ax != h || az != h {
					t.Errorf("base vertex %d = (%v, %v), want |x|=|z|=%v", i, x, z, h)
				}
			}
		})
	}
}

func TestPlaneCorners(t *testing.T) {
	mesh, err := Plane{Size: 5, YLevel: -0.27}.Generate()
	if err != nil {
		t.Fatalf("Generate() error: %v", err)
	}
	if got := mesh.VertexCount(); got != 4 {
		t.Fatalf("vertex count = %d, want 4", got)
	}
	if got := len(mesh.Indices); got != 6 {
		t.Fatalf("index count = %d, want 6", got)
	}

	want := [4][3]float32{
		{-5, -0.27, -5},
		{5, -0.27, -5},
		{5, -0.27, 5},
		{-5, -0.27, 5},
	}
	for i, w := range want {
		x, y, z := mesh.Position(i)
		if x != w[0] || y != w[1] || z != w[2] {
			t.Errorf("corner %d = (%v %v %v), want (%v %v %v)", i, x, y, z, w[0], w[1], w[2])
		}
	}
}

// allShapes builds one valid instance of every shape for property tests.
func allShapes(t *testing.T) map[string]Mesh {
	t.Helper()

	shapes := map[string]Mesh{}
	add := func(name string, gen func() (Mesh, error)) {
		m, err := gen()
		if err != nil {
			t.Fatalf("%s: Generate() error: %v", name, err)
		}
		shapes[name] = m
	}

	add("pyramid", Pyramid{BaseSize: 1, Height: 1}.Generate)
	add("plane", Plane{Size: 5, YLevel: -0.27}.Generate)
	add("cylinder", Cylinder{BaseRadius: 0.5, TopRadius: 0.5, Height: 1, RadialSegments: 36, HeightSegments: 1}.Generate)
	add("torus", Torus{InnerRadius: 0.1, OuterRadius: 0.2, RadialSegments: 36, TubularSegments: 100}.Generate)
	return shapes
}

func TestMeshInvariants(t *testing.T) {
	for name, mesh := range allShapes(t) {
		t.Run(name, func(t *testing.T) {
			if len(mesh.Vertices)%Stride != 0 {
				t.Errorf("vertex buffer length %d is not a multiple of the stride", len(mesh.Vertices))
			}
			if len(mesh.Indices)%3 != 0 {
				t.Errorf("index count %d is not a multiple of 3", len(mesh.Indices))
			}

			n := mesh.VertexCount()
			for i, idx := range mesh.Indices {
				if int(idx) >= n {
					t.Fatalf("index %d references vertex %d, only %d vertices", i, idx, n)
				}
			}

			for i, f := range mesh.Vertices {
				if math.IsNaN(float64(f)) || math.IsInf(float64(f), 0) {
					t.Fatalf("vertex buffer element %d is %v", i, f)
				}
			}

			for s := 0; s < n; s++ {
				u, v := mesh.UV(s)
				if u < 0 || u > 1 || v < 0 || v > 1 {
					t.Fatalf("vertex %d UV (%v, %v) outside [0,1]", s, u, v)
				}
			}
		})
	}
}

func TestDeterministicOutput(t *testing.T) {
	type generator func() (Mesh, error)
	tests := []struct {
		name string
		gen  generator
	}{
		{"pyramid", Pyramid{BaseSize: 2, Height: 3}.Generate},
		{"plane", Plane{Size: 1.5, YLevel: 0.25}.Generate},
		{"cylinder", Cylinder{BaseRadius: 0.7, TopRadius: 0.3, Height: 2, RadialSegments: 17, HeightSegments: 4}.Generate},
		{"torus", Torus{InnerRadius: 1.2, OuterRadius: 0.4, RadialSegments: 9, TubularSegments: 21}.Generate},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, err := tt.gen()
			if err != nil {
				t.Fatalf("first Generate() error: %v", err)
			}
			b, err := tt.gen()
			if err != nil {
				t.Fatalf("second Generate() error: %v", err)
			}

			if len(a.Vertices) != len(b.Vertices) || len(a.Indices) != len(b.Indices) {
				t.Fatalf("repeat call changed buffer sizes")
			}
			for i := range a.Vertices {
				if a.Vertices[i] != b.Vertices[i] {
					t.Fatalf("vertex element %d differs between calls: %v vs %v", i, a.Vertices[i], b.Vertices[i])
				}
			}
			for i := range a.Indices {
				if a.Indices[i] != b.Indices[i] {
					t.Fatalf("index %d differs between calls: %d vs %d", i, a.Indices[i], b.Indices[i])
				}
			}
		})
	}
}

func TestInvalidParameters(t *testing.T) {
	tests := []struct {
		name string
		gen  func() (Mesh, error)
	}{
		{"pyramid zero base", Pyramid{BaseSize: 0, Height: 1}.Generate},
		{"pyramid negative height", Pyramid{BaseSize: 1, Height: -2}.Generate},
		{"plane zero size", Plane{Size: 0}.Generate},
		{"cylinder zero radial segments", Cylinder{BaseRadius: 0.5, TopRadius: 0.5, Height: 1, RadialSegments: 0, HeightSegments: 1}.Generate},
		{"cylinder two radial segments", Cylinder{BaseRadius: 0.5, TopRadius: 0.5, Height: 1, RadialSegments: 2, HeightSegments: 1}.Generate},
		{"cylinder zero height segments", Cylinder{BaseRadius: 0.5, TopRadius: 0.5, Height: 1, RadialSegments: 36, HeightSegments: 0}.Generate},
		{"cylinder negative radius", Cylinder{BaseRadius: -1, TopRadius: 0.5, Height: 1, RadialSegments: 36, HeightSegments: 1}.Generate},
		{"cylinder zero height", Cylinder{BaseRadius: 0.5, TopRadius: 0.5, Height: 0, RadialSegments: 36, HeightSegments: 1}.Generate},
		{"torus zero inner radius", Torus{InnerRadius: 0, OuterRadius: 0.2, RadialSegments: 36, TubularSegments: 100}.Generate},
		{"torus two tubular segments", Torus{InnerRadius: 0.1, OuterRadius: 0.2, RadialSegments: 36, TubularSegments: 2}.Generate},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mesh, err := tt.gen()
			if err == nil {
				t.Fatal("Generate() succeeded, want parameter error")
			}
			if len(mesh.Vertices) != 0 || len(mesh.Indices) != 0 {
				t.Error("failed Generate() should return an empty mesh")
			}
		})
	}
}

func TestIndexRangeCeiling(t *testing.T) {
	// 301*301 vertices would overflow the uint16 index space.
	_, err := Cylinder{BaseRadius: 1, TopRadius: 1, Height: 1, RadialSegments: 300, HeightSegments: 300}.Generate()
	if !errors.Is(err, ErrTooManyVertices) {
		t.Errorf("Generate() error = %v, want ErrTooManyVertices", err)
	}

	_, err = Torus{InnerRadius: 1, OuterRadius: 0.2, RadialSegments: 300, TubularSegments: 300}.Generate()
	if !errors.Is(err, ErrTooManyVertices) {
		t.Errorf("Generate() error = %v, want ErrTooManyVertices", err)
	}
}

func abs32(f float32) float32 {
	if f < 0 {
		return -f
	}
	return f
}

func BenchmarkCylinderGenerate(b *testing.B) {
	cfg := Cylinder{BaseRadius: 0.5, TopRadius: 0.5, Height: 1, RadialSegments: 36, HeightSegments: 1}
	for b.Loop() {
		_, _ = cfg.Generate()
	}
}

func BenchmarkTorusGenerate(b *testing.B) {
	cfg := Torus{InnerRadius: 0.1, OuterRadius: 0.2, RadialSegments: 36, TubularSegments: 100}
	for b.Loop() {
		_, _ = cfg.Generate()
	}
}
