// Package models holds the renderer-side mesh representation: indexed
// triangles carrying per-vertex normals and texture coordinates, plus
// conversion from flat generator buffers and glTF binary import/export.
package models

import (
	"image"

	"github.com/taigrr/mugshot/pkg/math3d"
)

// Vertex is one mesh vertex.
type Vertex struct {
	Position math3d.Vec3
	Normal   math3d.Vec3
	UV       math3d.Vec2
}

// Face is a triangle over the vertex list. Material indexes into
// Mesh.Materials; -1 means no material assigned.
type Face struct {
	V        [3]int
	Material int
}

// DefaultShininess is the specular exponent used when a material does not
// set its own.
const DefaultShininess = 32

// Material describes how faces are shaded: a base color, a specular
// exponent, and an optional texture image.
type Material struct {
	Name       string
	BaseColor  [4]float64
	Shininess  float64
	BaseMap    image.Image
	HasTexture bool
}

// Mesh is an indexed triangle mesh.
type Mesh struct {
	Name      string
	Vertices  []Vertex
	Faces     []Face
	Materials []Material

	boundsMin math3d.Vec3
	boundsMax math3d.Vec3
}

// NewMesh returns an empty named mesh.
func NewMesh(name string) *Mesh {
	return &Mesh{Name: name}
}

// VertexCount returns the number of vertices.
func (m *Mesh) VertexCount() int {
	return len(m.Vertices)
}

// TriangleCount returns the number of faces.
func (m *Mesh) TriangleCount() int {
	return len(m.Faces)
}

// Vertex returns the components of vertex i in the form the rasterizer
// consumes.
func (m *Mesh) Vertex(i int) (pos, normal math3d.Vec3, uv math3d.Vec2) {
	v := m.Vertices[i]
	return v.Position, v.Normal, v.UV
}

// Triangle returns the vertex indices of face i.
func (m *Mesh) Triangle(i int) [3]int {
	return m.Faces[i].V
}

// FaceMaterial returns the material assigned to face i, or nil when the
// face has none.
func (m *Mesh) FaceMaterial(i int) *Material {
	if i < 0 || i >= len(m.Faces) {
		return nil
	}
	mi := m.Faces[i].Material
	if mi < 0 || mi >= len(m.Materials) {
		return nil
	}
	return &m.Materials[mi]
}

// MaterialCount returns the number of materials.
func (m *Mesh) MaterialCount() int {
	return len(m.Materials)
}

// CalculateBounds refreshes the cached axis-aligned bounding box.
func (m *Mesh) CalculateBounds() {
	if len(m.Vertices) == 0 {
		m.boundsMin = math3d.Vec3{}
		m.boundsMax = math3d.Vec3{}
		return
	}
	min := m.Vertices[0].Position
	max := min
	for _, v := range m.Vertices[1:] {
		min = min.Min(v.Position)
		max = max.Max(v.Position)
	}
	m.boundsMin = min
	m.boundsMax = max
}

// Bounds returns the box computed by the last CalculateBounds call.
func (m *Mesh) Bounds() (min, max math3d.Vec3) {
	return m.boundsMin, m.boundsMax
}

// Center returns the midpoint of the bounding box.
func (m *Mesh) Center() math3d.Vec3 {
	return m.boundsMin.Add(m.boundsMax).Scale(0.5)
}

// Size returns the bounding box extent along each axis.
func (m *Mesh) Size() math3d.Vec3 {
	return m.boundsMax.Sub(m.boundsMin)
}

// CalculateNormals computes per-vertex normals by accumulating the
// area-weighted normal of every face around each vertex. A vertex whose
// face normals cancel out keeps the zero normal; the rasterizer shades
// such vertices with ambient light only.
func (m *Mesh) CalculateNormals() {
	for i := range m.Vertices {
		m.Vertices[i].Normal = math3d.Vec3{}
	}
	for _, f := range m.Faces {
		a := m.Vertices[f.V[0]].Position
		b := m.Vertices[f.V[1]].Position
		c := m.Vertices[f.V[2]].Position
		n := b.Sub(a).Cross(c.Sub(a))
		for _, vi := range f.V {
			m.Vertices[vi].Normal = m.Vertices[vi].Normal.Add(n)
		}
	}
	for i := range m.Vertices {
		m.Vertices[i].Normal = m.Vertices[i].Normal.Normalize()
	}
}

// Transform applies a model matrix to every vertex in place and refreshes
// the bounds. Normals go through the inverse transpose so non-uniform
// scaling keeps them perpendicular to the surface.
func (m *Mesh) Transform(mat math3d.Mat4) {
	normalMat := mat.Inverse().Transpose()
	for i := range m.Vertices {
		v := &m.Vertices[i]
		v.Position = mat.MulVec3(v.Position)
		v.Normal = normalMat.MulVec3Dir(v.Normal).Normalize()
	}
	m.CalculateBounds()
}

// Clone returns a deep copy that shares no slices with the original.
// Material images are shared; they are never mutated.
func (m *Mesh) Clone() *Mesh {
	return &Mesh{
		Name:      m.Name,
		Vertices:  append([]Vertex(nil), m.Vertices...),
		Faces:     append([]Face(nil), m.Faces...),
		Materials: append([]Material(nil), m.Materials...),
		boundsMin: m.boundsMin,
		boundsMax: m.boundsMax,
	}
}
