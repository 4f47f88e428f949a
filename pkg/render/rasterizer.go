package render

import (
	"math"

	"github.com/taigrr/mugshot/pkg/math3d"
)

// Mesh is the geometry source the rasterizer draws. *models.Mesh
// satisfies it without this package importing models.
type Mesh interface {
	VertexCount() int
	TriangleCount() int
	Vertex(i int) (pos, normal math3d.Vec3, uv math3d.Vec2)
	Triangle(i int) [3]int
}

// BoundedMesh is a Mesh with a local-space bounding box, which lets the
// rasterizer frustum-cull it before projecting a single vertex.
type BoundedMesh interface {
	Mesh
	Bounds() (min, max math3d.Vec3)
}

// PointLight is a positional light with no distance falloff.
type PointLight struct {
	Position  math3d.Vec3
	Color     [3]float64
	Intensity float64
}

// Lighting is the scene light rig: a key and a fill light, the ambient
// fraction each contributes unconditionally, the specular exponent, and
// the eye position the specular term reflects toward.
type Lighting struct {
	Key       PointLight
	Fill      PointLight
	Ambient   float64
	Shininess float64
	Eye       math3d.Vec3
}

const defaultShininess = 32

// shade evaluates both lights at a world-space point. Per light the
// contribution is ambient + diffuse + specular, scaled by intensity and
// color; channels may exceed 1 and clamp at the pixel. Meshes draw
// double-sided, so the normal is first flipped toward the eye. A zero
// normal leaves only the ambient term.
func (lt Lighting) shade(pos, normal math3d.Vec3) [3]float64 {
	lit := normal.LenSq() > 1e-12
	var n, viewDir math3d.Vec3
	if lit {
		n = normal.Normalize()
		viewDir = lt.Eye.Sub(pos).Normalize()
		if n.Dot(viewDir) < 0 {
			n = n.Negate()
		}
	}
	shin := lt.Shininess
	if shin <= 0 {
		shin = defaultShininess
	}

	var out [3]float64
	for _, l := range [...]PointLight{lt.Key, lt.Fill} {
		if l.Intensity == 0 {
			continue
		}
		s := lt.Ambient
		if lit {
			lightDir := l.Position.Sub(pos).Normalize()
			diff := math.Max(n.Dot(lightDir), 0)
			refl := reflect(lightDir.Negate(), n)
			spec := math.Pow(math.Max(viewDir.Dot(refl), 0), shin)
			s += diff + spec
		}
		for c := 0; c < 3; c++ {
			out[c] += s * l.Intensity * l.Color[c]
		}
	}
	return out
}

// reflect mirrors an incident vector about a unit normal.
func reflect(incident, n math3d.Vec3) math3d.Vec3 {
	return incident.Sub(n.Scale(2 * n.Dot(incident)))
}

// CullingStats counts whole-mesh frustum culling decisions.
type CullingStats struct {
	Tested int
	Culled int
}

// Rasterizer draws meshes into a framebuffer with a z-buffer. It has no
// polygon clipper; triangles with any vertex behind the camera plane are
// dropped whole.
type Rasterizer struct {
	camera  *Camera
	fb      *Framebuffer
	zbuffer []float64

	frustum      Frustum
	frustumDirty bool

	// DoubleSided draws triangles regardless of winding, the way the
	// source scene expects. Leave false to cull backfaces.
	DoubleSided bool

	CullingStats CullingStats
}

// NewRasterizer creates a rasterizer targeting the given framebuffer.
func NewRasterizer(camera *Camera, fb *Framebuffer) *Rasterizer {
	r := &Rasterizer{camera: camera, fb: fb, frustumDirty: true}
	r.allocDepth()
	r.ClearDepth()
	return r
}

// Resize points the rasterizer at a new framebuffer.
func (r *Rasterizer) Resize(fb *Framebuffer) {
	r.fb = fb
	r.allocDepth()
	r.ClearDepth()
}

func (r *Rasterizer) allocDepth() {
	need := r.fb.Width * r.fb.Height
	if cap(r.zbuffer) < need {
		r.zbuffer = make([]float64, need)
	}
	r.zbuffer = r.zbuffer[:need]
}

// Width returns the framebuffer width in pixels.
func (r *Rasterizer) Width() int { return r.fb.Width }

// Height returns the framebuffer height in pixels.
func (r *Rasterizer) Height() int { return r.fb.Height }

// ClearDepth resets every depth sample to the far distance.
func (r *Rasterizer) ClearDepth() {
	if len(r.zbuffer) == 0 {
		return
	}
	r.zbuffer[0] = math.MaxFloat64
	for filled := 1; filled < len(r.zbuffer); filled *= 2 {
		copy(r.zbuffer[filled:], r.zbuffer[:filled])
	}
}

// InvalidateFrustum forces plane re-extraction on the next visibility
// check. Call it after moving the camera.
func (r *Rasterizer) InvalidateFrustum() {
	r.frustumDirty = true
}

// ResetCullingStats zeroes the per-frame culling counters.
func (r *Rasterizer) ResetCullingStats() {
	r.CullingStats = CullingStats{}
}

func (r *Rasterizer) updateFrustum() {
	if r.frustumDirty {
		r.frustum = ExtractFrustum(r.camera.ViewProjectionMatrix())
		r.frustumDirty = false
	}
}

// Frustum returns the cached view frustum, extracting it if stale.
func (r *Rasterizer) Frustum() Frustum {
	r.updateFrustum()
	return r.frustum
}

// IsVisible reports whether a world-space box touches the view volume.
func (r *Rasterizer) IsVisible(box AABB) bool {
	r.updateFrustum()
	return r.frustum.IntersectAABB(box)
}

// IsVisibleTransformed reports whether a local-space box is visible under
// a model transform.
func (r *Rasterizer) IsVisibleTransformed(box AABB, transform math3d.Mat4) bool {
	r.updateFrustum()
	return r.frustum.IntersectAABB(box.Transform(transform))
}

// cullMesh culls bounded meshes against the frustum, tracking stats.
func (r *Rasterizer) cullMesh(mesh Mesh, transform math3d.Mat4) bool {
	bounded, ok := mesh.(BoundedMesh)
	if !ok {
		return false
	}
	min, max := bounded.Bounds()
	r.CullingStats.Tested++
	if r.IsVisibleTransformed(AABB{Min: min, Max: max}, transform) {
		return false
	}
	r.CullingStats.Culled++
	return true
}

// DrawMeshPhong renders a mesh with per-vertex Phong lighting. The
// texture may be nil, in which case the base color covers every face.
// Normals go through the transform's inverse transpose.
func (r *Rasterizer) DrawMeshPhong(mesh Mesh, transform math3d.Mat4, tex *Texture, base Color, lights Lighting) {
	if r.cullMesh(mesh, transform) {
		return
	}
	normalMat := transform.Inverse().Transpose()
	for i := 0; i < mesh.TriangleCount(); i++ {
		face := mesh.Triangle(i)
		var sv [3]shadedVertex
		visible := true
		for j, vi := range face {
			pos, normal, uv := mesh.Vertex(vi)
			world := transform.MulVec3(pos)
			sp, ok := r.toScreen(world)
			if !ok {
				visible = false
				break
			}
			sv[j] = shadedVertex{
				sp:    sp,
				light: lights.shade(world, normalMat.MulVec3Dir(normal)),
				uv:    uv,
			}
		}
		if visible {
			r.fillTriangle(sv[0], sv[1], sv[2], tex, base)
		}
	}
}

// screenPoint is a projected vertex: pixel coordinates, screen-affine NDC
// depth, and 1/W for perspective-correct attribute interpolation. An
// orthographic projection leaves invW at 1, collapsing the correction to
// plain affine interpolation.
type screenPoint struct {
	x, y float64
	z    float64
	invW float64
}

type shadedVertex struct {
	sp    screenPoint
	light [3]float64
	uv    math3d.Vec2
}

// toScreen projects a world point to pixel coordinates. ok is false for
// points on or behind the camera plane.
func (r *Rasterizer) toScreen(p math3d.Vec3) (screenPoint, bool) {
	clip := r.camera.ViewProjectionMatrix().MulVec4(math3d.V4FromV3(p, 1))
	if clip.W <= 1e-9 {
		return screenPoint{}, false
	}
	invW := 1 / clip.W
	return screenPoint{
		x:    (clip.X*invW + 1) * 0.5 * float64(r.fb.Width),
		y:    (1 - clip.Y*invW) * 0.5 * float64(r.fb.Height),
		z:    clip.Z * invW,
		invW: invW,
	}, true
}

// edgeCoeffs hold the edge function E(x,y) = a*x + b*y + c, positive on
// the triangle's interior side, letting the scanline step by addition.
type edgeCoeffs struct {
	a, b, c float64
}

func edge(x0, y0, x1, y1 float64) edgeCoeffs {
	return edgeCoeffs{a: y0 - y1, b: x1 - x0, c: x0*y1 - x1*y0}
}

func (e edgeCoeffs) at(x, y float64) float64 {
	return e.a*x + e.b*y + e.c
}

// fillTriangle rasterizes one projected triangle with perspective-correct
// lighting and texture interpolation. Triangles with negative signed area
// are backfaces: rejected, or re-wound when the rasterizer is
// double-sided.
func (r *Rasterizer) fillTriangle(v0, v1, v2 shadedVertex, tex *Texture, base Color) {
	area := (v1.sp.x-v0.sp.x)*(v2.sp.y-v0.sp.y) - (v1.sp.y-v0.sp.y)*(v2.sp.x-v0.sp.x)
	if area == 0 {
		return
	}
	if area < 0 {
		if !r.DoubleSided {
			return
		}
		v1, v2 = v2, v1
		area = -area
	}

	minX := int(math.Floor(min3(v0.sp.x, v1.sp.x, v2.sp.x)))
	maxX := int(math.Ceil(max3(v0.sp.x, v1.sp.x, v2.sp.x)))
	minY := int(math.Floor(min3(v0.sp.y, v1.sp.y, v2.sp.y)))
	maxY := int(math.Ceil(max3(v0.sp.y, v1.sp.y, v2.sp.y)))
	if minX < 0 {
		minX = 0
	}
	if minY < 0 {
		minY = 0
	}
	if maxX >= r.fb.Width {
		maxX = r.fb.Width - 1
	}
	if maxY >= r.fb.Height {
		maxY = r.fb.Height - 1
	}
	if minX > maxX || minY > maxY {
		return
	}

	// Each vertex weight comes from the edge opposite it.
	e12 := edge(v1.sp.x, v1.sp.y, v2.sp.x, v2.sp.y)
	e20 := edge(v2.sp.x, v2.sp.y, v0.sp.x, v0.sp.y)
	e01 := edge(v0.sp.x, v0.sp.y, v1.sp.x, v1.sp.y)

	invArea := 1 / area
	px := float64(minX) + 0.5
	py := float64(minY) + 0.5
	w0Row := e12.at(px, py)
	w1Row := e20.at(px, py)
	w2Row := e01.at(px, py)

	for y := minY; y <= maxY; y++ {
		w0, w1, w2 := w0Row, w1Row, w2Row
		for x := minX; x <= maxX; x++ {
			if w0 >= 0 && w1 >= 0 && w2 >= 0 {
				l0 := w0 * invArea
				l1 := w1 * invArea
				l2 := w2 * invArea

				z := l0*v0.sp.z + l1*v1.sp.z + l2*v2.sp.z
				idx := y*r.fb.Width + x
				if z >= -1 && z <= 1 && z < r.zbuffer[idx] {
					invW := l0*v0.sp.invW + l1*v1.sp.invW + l2*v2.sp.invW
					pw := 1 / invW

					var light [3]float64
					for c := 0; c < 3; c++ {
						light[c] = (l0*v0.light[c]*v0.sp.invW +
							l1*v1.light[c]*v1.sp.invW +
							l2*v2.light[c]*v2.sp.invW) * pw
					}

					c := base
					if tex != nil {
						u := (l0*v0.uv.X*v0.sp.invW + l1*v1.uv.X*v1.sp.invW + l2*v2.uv.X*v2.sp.invW) * pw
						v := (l0*v0.uv.Y*v0.sp.invW + l1*v1.uv.Y*v1.sp.invW + l2*v2.uv.Y*v2.sp.invW) * pw
						c = tex.Sample(u, v)
					}
					r.fb.Pixels[idx] = ModulateColor(c, light)
					r.zbuffer[idx] = z
				}
			}
			w0 += e12.a
			w1 += e20.a
			w2 += e01.a
		}
		w0Row += e12.b
		w1Row += e20.b
		w2Row += e01.b
	}
}

func min3(a, b, c float64) float64 {
	m := a
	if b < m {
		m = b
	}
	if c < m {
		m = c
	}
	return m
}

func max3(a, b, c float64) float64 {
	m := a
	if b > m {
		m = b
	}
	if c > m {
		m = c
	}
	return m
}
