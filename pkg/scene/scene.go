// Package scene assembles the built-in coffee-mug still life: an open
// cylinder for the body, a torus handle, a pyramid beside the mug, and a
// ground plane, lit by a key and a fill light. Layout constants load
// from an optional TOML file over compiled-in defaults; once built, a
// Scene is read-only and the per-frame state (turntable transform, eye
// position) is passed into each draw call.
package scene

import (
	"fmt"
	"math"
	"path/filepath"

	"github.com/taigrr/mugshot/pkg/math3d"
	"github.com/taigrr/mugshot/pkg/models"
	"github.com/taigrr/mugshot/pkg/primitive"
	"github.com/taigrr/mugshot/pkg/render"
)

// tilt is the yaw applied to the pyramid and the handle.
const tilt = 20 * math.Pi / 180

// Object is one drawable of the scene: a decoded mesh, its placement,
// and its surface. A nil Texture renders with the flat Base color.
type Object struct {
	Name      string
	Mesh      *models.Mesh
	Transform math3d.Mat4
	Texture   *render.Texture
	Base      render.Color

	// generator output, kept for export
	verts []float32
	idx   []uint16
}

// Scene is the assembled still life. Objects are stored in draw order:
// pyramid, ground, mug body, handle.
type Scene struct {
	Objects    []Object
	Background render.Color

	key       render.PointLight
	fill      render.PointLight
	ambient   float64
	shininess float64
}

// Build generates the four meshes and places them: the mug centered on
// the origin and lowered by half its height, the handle on the +X side
// at mid-height, the pyramid past the handle, the ground plane below.
func Build(cfg Config) (*Scene, error) {
	pyr, err := primitive.Pyramid{
		BaseSize: cfg.Pyramid.BaseSize,
		Height:   cfg.Pyramid.Height,
	}.Generate()
	if err != nil {
		return nil, fmt.Errorf("pyramid: %w", err)
	}
	ground, err := primitive.Plane{
		Size:   cfg.Ground.Size,
		YLevel: cfg.Ground.Level,
	}.Generate()
	if err != nil {
		return nil, fmt.Errorf("ground: %w", err)
	}
	body, err := primitive.Cylinder{
		BaseRadius:     cfg.Mug.BaseRadius,
		TopRadius:      cfg.Mug.TopRadius,
		Height:         cfg.Mug.Height,
		RadialSegments: cfg.Mug.RadialSegments,
		HeightSegments: cfg.Mug.HeightSegments,
	}.Generate()
	if err != nil {
		return nil, fmt.Errorf("mug body: %w", err)
	}
	handle, err := primitive.Torus{
		InnerRadius:     cfg.Handle.InnerRadius,
		OuterRadius:     cfg.Handle.OuterRadius,
		RadialSegments:  cfg.Handle.RadialSegments,
		TubularSegments: cfg.Handle.TubularSegments,
	}.Generate()
	if err != nil {
		return nil, fmt.Errorf("handle: %w", err)
	}

	pyramidX := float64(cfg.Mug.BaseRadius) + float64(cfg.Pyramid.BaseSize)/2 + cfg.Pyramid.Gap
	handleX := float64(cfg.Mug.BaseRadius + cfg.Handle.OuterRadius - cfg.Handle.InnerRadius)

	s := &Scene{
		Background: rgbFromFloats(cfg.Background),
		key:        cfg.Key.point(),
		fill:       cfg.Fill.point(),
		ambient:    cfg.Ambient,
		shininess:  cfg.Shininess,
	}

	specs := []struct {
		name      string
		mesh      primitive.Mesh
		transform math3d.Mat4
		texture   *render.Texture
		base      render.Color
	}{
		{
			name:      "pyramid",
			mesh:      pyr,
			transform: math3d.Translate(math3d.V3(pyramidX, float64(cfg.Ground.Level), 0)).Mul(math3d.RotateY(tilt)),
			base:      render.RGB(205, 170, 110),
		},
		{
			// The ground mesh carries Level in its vertices and the
			// placement lowers it by Level again, so the floor renders
			// at twice Level.
			name:      "ground",
			mesh:      ground,
			transform: math3d.Translate(math3d.V3(0, float64(cfg.Ground.Level), 0)),
			texture:   loadTextureOr(cfg.AssetDir, "wood_image.jpg", groundFallback),
			base:      render.ColorWhite,
		},
		{
			name:      "body",
			mesh:      body,
			transform: math3d.Translate(math3d.V3(0, -float64(cfg.Mug.Height)/2, 0)),
			texture:   loadTextureOr(cfg.AssetDir, "cat.jpg", bodyFallback),
			base:      render.ColorWhite,
		},
		{
			name:      "handle",
			mesh:      handle,
			transform: math3d.Translate(math3d.V3(handleX, 0, 0)).Mul(math3d.RotateY(tilt)),
			texture:   loadTextureOr(cfg.AssetDir, "handle.jpg", handleFallback),
			base:      render.ColorWhite,
		},
	}

	s.Objects = make([]Object, 0, len(specs))
	for _, sp := range specs {
		mesh, err := models.FromBuffers(sp.name, sp.mesh.Vertices, sp.mesh.Indices)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", sp.name, err)
		}
		s.Objects = append(s.Objects, Object{
			Name:      sp.name,
			Mesh:      mesh,
			Transform: sp.transform,
			Texture:   sp.texture,
			Base:      sp.base,
			verts:     sp.mesh.Vertices,
			idx:       sp.mesh.Indices,
		})
	}
	return s, nil
}

// Lighting returns the frame's shading rig with eye as the specular
// reference point, normally the camera position.
func (s *Scene) Lighting(eye math3d.Vec3) render.Lighting {
	return render.Lighting{
		Key:       s.key,
		Fill:      s.fill,
		Ambient:   s.ambient,
		Shininess: s.shininess,
		Eye:       eye,
	}
}

// Draw renders every object, applying the turntable transform ahead of
// each object's own placement.
func (s *Scene) Draw(r *render.Rasterizer, turn math3d.Mat4, lights render.Lighting) {
	for i := range s.Objects {
		o := &s.Objects[i]
		r.DrawMeshPhong(o.Mesh, turn.Mul(o.Transform), o.Texture, o.Base, lights)
	}
}

// DrawWireframe renders every object's edges in a single color.
func (s *Scene) DrawWireframe(r *render.Rasterizer, turn math3d.Mat4, c render.Color) {
	for i := range s.Objects {
		o := &s.Objects[i]
		r.DrawMeshWireframe(o.Mesh, turn.Mul(o.Transform), c)
	}
}

// ExportMeshes returns the generated buffers in export form, one entry
// per object in draw order, placements carried in the Transform.
func (s *Scene) ExportMeshes() []models.ExportMesh {
	out := make([]models.ExportMesh, len(s.Objects))
	for i := range s.Objects {
		o := &s.Objects[i]
		out[i] = models.ExportMesh{
			Name:      o.Name,
			Vertices:  o.verts,
			Indices:   o.idx,
			Transform: o.Transform,
		}
	}
	return out
}

// loadTextureOr returns the image texture when the file exists and
// decodes, the procedural fallback otherwise.
func loadTextureOr(dir, name string, fallback func() *render.Texture) *render.Texture {
	tex, err := render.LoadTexture(filepath.Join(dir, name))
	if err != nil {
		return fallback()
	}
	return tex
}

func bodyFallback() *render.Texture {
	return render.NewCheckerTexture(64, 64, 8, render.RGB(236, 236, 232), render.RGB(188, 188, 182))
}

func handleFallback() *render.Texture {
	return render.NewGradientTexture(32, 32, render.RGB(153, 97, 26), render.RGB(97, 58, 10))
}

func groundFallback() *render.Texture {
	return render.NewCheckerTexture(64, 64, 16, render.RGB(133, 94, 66), render.RGB(109, 74, 48))
}

func (l Light) point() render.PointLight {
	return render.PointLight{
		Position:  math3d.V3(l.Position[0], l.Position[1], l.Position[2]),
		Color:     l.Color,
		Intensity: l.Intensity,
	}
}

func rgbFromFloats(c [3]float64) render.Color {
	return render.RGB(channelByte(c[0]), channelByte(c[1]), channelByte(c[2]))
}

func channelByte(v float64) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 1 {
		return 255
	}
	return uint8(v*255 + 0.5)
}
