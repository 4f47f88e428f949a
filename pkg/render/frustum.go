package render

import (
	"github.com/taigrr/mugshot/pkg/math3d"
)

// Plane is the set of points p with Normal . p + D = 0. The normal points
// toward the half-space Distance reports as positive.
type Plane struct {
	Normal math3d.Vec3
	D      float64
}

// Normalize scales the plane equation so the normal has unit length.
func (p *Plane) Normalize() {
	l := p.Normal.Len()
	if l == 0 {
		return
	}
	p.Normal = p.Normal.Scale(1 / l)
	p.D /= l
}

// Distance returns the signed distance from a point to the plane.
// Positive means the point lies on the normal's side.
func (p Plane) Distance(point math3d.Vec3) float64 {
	return p.Normal.Dot(point) + p.D
}

// Frustum plane indices.
const (
	FrustumLeft = iota
	FrustumRight
	FrustumBottom
	FrustumTop
	FrustumNear
	FrustumFar
)

// Frustum is the view volume as six inward-facing planes.
type Frustum struct {
	Planes [6]Plane
}

// ExtractFrustum pulls the six planes out of a view-projection matrix
// using the Gribb/Hartmann row combinations. The matrix is column-major,
// so row i of the math sits at m[i], m[4+i], m[8+i], m[12+i].
func ExtractFrustum(m math3d.Mat4) Frustum {
	row := func(i int) [4]float64 {
		return [4]float64{m[i], m[4+i], m[8+i], m[12+i]}
	}
	r0, r1, r2, r3 := row(0), row(1), row(2), row(3)

	combine := func(a [4]float64, sign float64) Plane {
		p := Plane{
			Normal: math3d.V3(r3[0]+sign*a[0], r3[1]+sign*a[1], r3[2]+sign*a[2]),
			D:      r3[3] + sign*a[3],
		}
		p.Normalize()
		return p
	}

	var f Frustum
	f.Planes[FrustumLeft] = combine(r0, 1)
	f.Planes[FrustumRight] = combine(r0, -1)
	f.Planes[FrustumBottom] = combine(r1, 1)
	f.Planes[FrustumTop] = combine(r1, -1)
	f.Planes[FrustumNear] = combine(r2, 1)
	f.Planes[FrustumFar] = combine(r2, -1)
	return f
}

// ContainsPoint reports whether a point lies inside all six planes.
func (f *Frustum) ContainsPoint(p math3d.Vec3) bool {
	for i := range f.Planes {
		if f.Planes[i].Distance(p) < 0 {
			return false
		}
	}
	return true
}

// IntersectAABB reports whether a box touches the frustum. For each plane
// only the box corner furthest along the plane normal needs testing; if
// that corner is outside, the whole box is.
func (f *Frustum) IntersectAABB(box AABB) bool {
	for i := range f.Planes {
		n := f.Planes[i].Normal
		v := box.Min
		if n.X >= 0 {
			v.X = box.Max.X
		}
		if n.Y >= 0 {
			v.Y = box.Max.Y
		}
		if n.Z >= 0 {
			v.Z = box.Max.Z
		}
		if f.Planes[i].Distance(v) < 0 {
			return false
		}
	}
	return true
}

// IntersectsSphere reports whether a sphere touches the frustum.
func (f *Frustum) IntersectsSphere(center math3d.Vec3, radius float64) bool {
	for i := range f.Planes {
		if f.Planes[i].Distance(center) < -radius {
			return false
		}
	}
	return true
}

// AABB is an axis-aligned bounding box.
type AABB struct {
	Min math3d.Vec3
	Max math3d.Vec3
}

// Center returns the box midpoint.
func (b AABB) Center() math3d.Vec3 {
	return b.Min.Add(b.Max).Scale(0.5)
}

// Size returns the box extent along each axis.
func (b AABB) Size() math3d.Vec3 {
	return b.Max.Sub(b.Min)
}

// ContainsPoint reports whether a point lies inside the box, boundary
// included.
func (b AABB) ContainsPoint(p math3d.Vec3) bool {
	return p.X >= b.Min.X && p.X <= b.Max.X &&
		p.Y >= b.Min.Y && p.Y <= b.Max.Y &&
		p.Z >= b.Min.Z && p.Z <= b.Max.Z
}

// Transform returns the axis-aligned box around all eight transformed
// corners.
func (b AABB) Transform(m math3d.Mat4) AABB {
	corners := [8]math3d.Vec3{
		math3d.V3(b.Min.X, b.Min.Y, b.Min.Z),
		math3d.V3(b.Max.X, b.Min.Y, b.Min.Z),
		math3d.V3(b.Min.X, b.Max.Y, b.Min.Z),
		math3d.V3(b.Max.X, b.Max.Y, b.Min.Z),
		math3d.V3(b.Min.X, b.Min.Y, b.Max.Z),
		math3d.V3(b.Max.X, b.Min.Y, b.Max.Z),
		math3d.V3(b.Min.X, b.Max.Y, b.Max.Z),
		math3d.V3(b.Max.X, b.Max.Y, b.Max.Z),
	}
	out := AABB{Min: m.MulVec3(corners[0])}
	out.Max = out.Min
	for _, c := range corners[1:] {
		p := m.MulVec3(c)
		out.Min = out.Min.Min(p)
		out.Max = out.Max.Max(p)
	}
	return out
}
