package primitive

import (
	"github.com/chewxy/math32"
)

// Pyramid describes a square-based pyramid sitting on the XZ plane.
type Pyramid struct {
	BaseSize float32 // side length of the square base
	Height   float32 // apex height above the base
}

// Generate emits the pyramid's five vertices (four base corners at y=0
// and the apex at (0, Height, 0)) and six triangles: two for the base,
// four sides fanning from the apex. The base corners carry unit-square
// UVs and the apex sits at (0.5, 0.5); with the apex shared by all four
// sides there is no room for per-face normals, so flat shading of the
// sides shows interpolation artifacts. That is a property of the layout,
// not a defect.
func (p Pyramid) Generate() (Mesh, error) {
	if err := positive("baseSize", p.BaseSize); err != nil {
		return Mesh{}, err
	}
	if err := positive("height", p.Height); err != nil {
		return Mesh{}, err
	}

	h := p.BaseSize / 2
	return Mesh{
		Vertices: []float32{
			-h, 0, -h, 0, 0,
			h, 0, -h, 1, 0,
			h, 0, h, 1, 1,
			-h, 0, h, 0, 1,
			0, p.Height, 0, 0.5, 0.5,
		},
		Indices: []uint16{
			0, 1, 2, // base
			0, 2, 3,
			0, 1, 4, // sides
			1, 2, 4,
			2, 3, 4,
			3, 0, 4,
		},
	}, nil
}

// Plane describes a horizontal square centered on the origin.
type Plane struct {
	Size   float32 // half-extent: corners land at (±Size, YLevel, ±Size)
	YLevel float32 // height of the plane, any sign
}

// Generate emits the four corners and a quad split along one diagonal.
func (p Plane) Generate() (Mesh, error) {
	if err := positive("size", p.Size); err != nil {
		return Mesh{}, err
	}

	s, y := p.Size, p.YLevel
	return Mesh{
		Vertices: []float32{
			-s, y, -s, 0, 0,
			s, y, -s, 1, 0,
			s, y, s, 1, 1,
			-s, y, s, 0, 1,
		},
		Indices: []uint16{
			0, 1, 2,
			2, 3, 0,
		},
	}, nil
}

// Cylinder describes the lateral surface of a frustum: a tube whose
// radius interpolates linearly from BaseRadius at y=0 to TopRadius at
// y=Height. Equal radii give a straight cylinder, a zero TopRadius a
// cone. No cap disks are generated; the tube is open at both ends.
type Cylinder struct {
	BaseRadius     float32
	TopRadius      float32
	Height         float32
	RadialSegments int // around the circumference, minimum 3
	HeightSegments int // stacked rings, minimum 1
}

// Generate walks height rings bottom to top and radial steps around each
// ring. The seam vertex appears twice per ring, at the first and last
// radial step, so texture coordinates can run 0..1 around the tube
// without wrapping. Ring y step x sits at flat offset
// y*(RadialSegments+1)+x; each quad between adjacent rings splits into
// two triangles.
func (c Cylinder) Generate() (Mesh, error) {
	if err := nonNegative("baseRadius", c.BaseRadius); err != nil {
		return Mesh{}, err
	}
	if err := nonNegative("topRadius", c.TopRadius); err != nil {
		return Mesh{}, err
	}
	if err := positive("height", c.Height); err != nil {
		return Mesh{}, err
	}
	if err := atLeast("radialSegments", c.RadialSegments, 3); err != nil {
		return Mesh{}, err
	}
	if err := atLeast("heightSegments", c.HeightSegments, 1); err != nil {
		return Mesh{}, err
	}

	nVerts := (c.HeightSegments + 1) * (c.RadialSegments + 1)
	if nVerts > maxVertices {
		return Mesh{}, ErrTooManyVertices
	}

	verts := make([]float32, 0, nVerts*Stride)
	for y := 0; y <= c.HeightSegments; y++ {
		v := float32(y) / float32(c.HeightSegments)
		radius := c.BaseRadius + v*(c.TopRadius-c.BaseRadius)
		height := c.Height * v
		for x := 0; x <= c.RadialSegments; x++ {
			u := float32(x) / float32(c.RadialSegments)
			theta := 2 * math32.Pi * u
			verts = append(verts,
				radius*math32.Cos(theta),
				height,
				radius*math32.Sin(theta),
				u, v,
			)
		}
	}

	idx := make([]uint16, 0, c.HeightSegments*c.RadialSegments*6)
	for y := 0; y < c.HeightSegments; y++ {
		for x := 0; x < c.RadialSegments; x++ {
			base := uint16(y*(c.RadialSegments+1) + x)
			next := base + uint16(c.RadialSegments) + 1
			idx = append(idx,
				base, base+1, next,
				next, base+1, next+1,
			)
		}
	}

	return Mesh{Vertices: verts, Indices: idx}, nil
}

// Torus describes a ring of tube cross-sections. InnerRadius is the
// orbit radius of the tube centerline, OuterRadius the radius of the
// tube itself. The centerline circle lies in the XY plane and each
// cross-section sweeps in XZ, so the torus axis runs along Z rather
// than the more common Y; consumers wanting an upright ring rotate the
// result.
type Torus struct {
	InnerRadius     float32
	OuterRadius     float32
	RadialSegments  int // around the tube cross-section, minimum 3
	TubularSegments int // around the main ring, minimum 3
}

// Generate walks the main ring outer, the cross-section inner, with the
// same seam duplication as the cylinder in both directions. Tubular
// step i radial step j sits at flat offset i*(RadialSegments+1)+j.
func (t Torus) Generate() (Mesh, error) {
	if err := positive("innerRadius", t.InnerRadius); err != nil {
		return Mesh{}, err
	}
	if err := positive("outerRadius", t.OuterRadius); err != nil {
		return Mesh{}, err
	}
	if err := atLeast("radialSegments", t.RadialSegments, 3); err != nil {
		return Mesh{}, err
	}
	if err := atLeast("tubularSegments", t.TubularSegments, 3); err != nil {
		return Mesh{}, err
	}

	nVerts := (t.TubularSegments + 1) * (t.RadialSegments + 1)
	if nVerts > maxVertices {
		return Mesh{}, ErrTooManyVertices
	}

	verts := make([]float32, 0, nVerts*Stride)
	for i := 0; i <= t.TubularSegments; i++ {
		s := float32(i) / float32(t.TubularSegments)
		u := s * 2 * math32.Pi
		cx := math32.Cos(u) * t.InnerRadius
		cy := math32.Sin(u) * t.InnerRadius
		for j := 0; j <= t.RadialSegments; j++ {
			r := float32(j) / float32(t.RadialSegments)
			v := r * 2 * math32.Pi
			verts = append(verts,
				cx+t.OuterRadius*math32.Cos(v),
				cy,
				t.OuterRadius*math32.Sin(v),
				s, r,
			)
		}
	}

	idx := make([]uint16, 0, t.TubularSegments*t.RadialSegments*6)
	for i := 0; i < t.TubularSegments; i++ {
		for j := 0; j < t.RadialSegments; j++ {
			first := uint16(i*(t.RadialSegments+1) + j)
			second := first + uint16(t.RadialSegments) + 1
			idx = append(idx,
				first, second, first+1,
				second, second+1, first+1,
			)
		}
	}

	return Mesh{Vertices: verts, Indices: idx}, nil
}
