package render

import (
	"github.com/taigrr/mugshot/pkg/math3d"
)

// DrawMeshWireframe draws every triangle edge of a mesh in a flat color.
// Depth is ignored, so back edges show through front faces.
func (r *Rasterizer) DrawMeshWireframe(mesh Mesh, transform math3d.Mat4, c Color) {
	if r.cullMesh(mesh, transform) {
		return
	}
	for i := 0; i < mesh.TriangleCount(); i++ {
		face := mesh.Triangle(i)
		var world [3]math3d.Vec3
		for j, vi := range face {
			pos, _, _ := mesh.Vertex(vi)
			world[j] = transform.MulVec3(pos)
		}
		r.drawLine3D(world[0], world[1], c)
		r.drawLine3D(world[1], world[2], c)
		r.drawLine3D(world[2], world[0], c)
	}
}

// DrawGrid draws a line grid on the XZ plane at y=0, centered on the
// origin.
func (r *Rasterizer) DrawGrid(size, step float64, c Color) {
	half := size / 2
	for x := -half; x <= half; x += step {
		r.drawLine3D(math3d.V3(x, 0, -half), math3d.V3(x, 0, half), c)
	}
	for z := -half; z <= half; z += step {
		r.drawLine3D(math3d.V3(-half, 0, z), math3d.V3(half, 0, z), c)
	}
}

// drawLine3D projects a world-space segment and draws it when at least
// one endpoint lands inside the view volume. Segments crossing the
// camera plane are dropped whole, same as filled triangles.
func (r *Rasterizer) drawLine3D(p1, p2 math3d.Vec3, c Color) {
	a, ok1 := r.toScreen(p1)
	b, ok2 := r.toScreen(p2)
	if !ok1 || !ok2 {
		return
	}
	if !r.onScreen(a) && !r.onScreen(b) {
		return
	}
	// Clip to the framebuffer so segments grazing the near plane do not
	// project to pixel runs far beyond it.
	x0, y0, x1, y1, ok := clipLine(a.x, a.y, b.x, b.y, float64(r.fb.Width-1), float64(r.fb.Height-1))
	if !ok {
		return
	}
	r.fb.DrawLine(int(x0), int(y0), int(x1), int(y1), c)
}

func (r *Rasterizer) onScreen(sp screenPoint) bool {
	return sp.x >= 0 && sp.x < float64(r.fb.Width) &&
		sp.y >= 0 && sp.y < float64(r.fb.Height) &&
		sp.z >= -1 && sp.z <= 1
}

// clipLine clips a segment to the rectangle [0,maxX]x[0,maxY] with the
// Liang-Barsky parametric test. ok is false when nothing remains.
func clipLine(x0, y0, x1, y1, maxX, maxY float64) (cx0, cy0, cx1, cy1 float64, ok bool) {
	t0, t1 := 0.0, 1.0
	dx := x1 - x0
	dy := y1 - y0
	for _, e := range [4][2]float64{
		{-dx, x0},
		{dx, maxX - x0},
		{-dy, y0},
		{dy, maxY - y0},
	} {
		p, q := e[0], e[1]
		if p == 0 {
			if q < 0 {
				return 0, 0, 0, 0, false
			}
			continue
		}
		t := q / p
		if p < 0 {
			if t > t1 {
				return 0, 0, 0, 0, false
			}
			if t > t0 {
				t0 = t
			}
		} else {
			if t < t0 {
				return 0, 0, 0, 0, false
			}
			if t < t1 {
				t1 = t
			}
		}
	}
	return x0 + t0*dx, y0 + t0*dy, x0 + t1*dx, y0 + t1*dy, true
}
