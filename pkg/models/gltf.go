package models

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"math"
	"path/filepath"
	"strings"

	"github.com/qmuntal/gltf"

	"github.com/taigrr/mugshot/pkg/math3d"
)

// Loader reads binary glTF 2.0 files into meshes.
type Loader struct {
	// SmoothNormals accumulates face normals per vertex when the file
	// carries no NORMAL attribute. When false, missing normals stay zero
	// and the mesh renders with ambient light only.
	SmoothNormals bool
}

// NewLoader returns a loader with default options.
func NewLoader() *Loader {
	return &Loader{SmoothNormals: true}
}

// LoadGLB reads a .glb file with default options.
func LoadGLB(path string) (*Mesh, error) {
	return NewLoader().Load(path)
}

// Load reads a glTF or GLB file and merges its triangle primitives into a
// single mesh.
func (l *Loader) Load(path string) (*Mesh, error) {
	doc, err := gltf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open gltf: %w", err)
	}
	return l.loadDocument(doc, meshName(path))
}

// LoadGLBWithTexture loads a mesh along with the first embedded image that
// decodes. The image becomes the mesh's base texture; it is also returned
// so callers can hand it to the renderer directly. A file without a usable
// image yields a nil image and no material.
func LoadGLBWithTexture(path string) (*Mesh, image.Image, error) {
	doc, err := gltf.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("open gltf: %w", err)
	}
	mesh, err := NewLoader().loadDocument(doc, meshName(path))
	if err != nil {
		return nil, nil, err
	}
	img := firstEmbeddedImage(doc)
	if img != nil {
		mesh.Materials = append(mesh.Materials, Material{
			Name:       "embedded",
			BaseColor:  [4]float64{1, 1, 1, 1},
			Shininess:  DefaultShininess,
			BaseMap:    img,
			HasTexture: true,
		})
		for i := range mesh.Faces {
			mesh.Faces[i].Material = 0
		}
	}
	return mesh, img, nil
}

func meshName(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

func (l *Loader) loadDocument(doc *gltf.Document, name string) (*Mesh, error) {
	mesh := NewMesh(name)
	hadNormals := false
	for _, gm := range doc.Meshes {
		had, err := appendPrimitives(doc, gm, mesh)
		if err != nil {
			return nil, fmt.Errorf("mesh %q: %w", gm.Name, err)
		}
		hadNormals = hadNormals || had
	}
	if len(mesh.Vertices) == 0 {
		return nil, fmt.Errorf("no triangle data in document")
	}
	if !hadNormals && l.SmoothNormals {
		mesh.CalculateNormals()
	}
	mesh.CalculateBounds()
	return mesh, nil
}

// appendPrimitives decodes every triangle primitive of gm into dst and
// reports whether any primitive carried its own normals.
func appendPrimitives(doc *gltf.Document, gm *gltf.Mesh, dst *Mesh) (bool, error) {
	hadNormals := false
	for pi, prim := range gm.Primitives {
		// Mode 0 is what qmuntal leaves when the file omits the field;
		// the format's default is triangles.
		if prim.Mode != gltf.PrimitiveTriangles && prim.Mode != 0 {
			continue
		}

		posIdx, ok := prim.Attributes[gltf.POSITION]
		if !ok {
			return hadNormals, fmt.Errorf("primitive %d has no POSITION attribute", pi)
		}
		positions, err := readVec3(doc, posIdx)
		if err != nil {
			return hadNormals, fmt.Errorf("primitive %d positions: %w", pi, err)
		}

		var normals []math3d.Vec3
		if ni, ok := prim.Attributes[gltf.NORMAL]; ok {
			normals, err = readVec3(doc, ni)
			if err != nil {
				return hadNormals, fmt.Errorf("primitive %d normals: %w", pi, err)
			}
			hadNormals = true
		}

		var uvs []math3d.Vec2
		if ti, ok := prim.Attributes[gltf.TEXCOORD_0]; ok {
			uvs, err = readVec2(doc, ti)
			if err != nil {
				return hadNormals, fmt.Errorf("primitive %d uvs: %w", pi, err)
			}
		}

		base := len(dst.Vertices)
		for i, p := range positions {
			v := Vertex{Position: p}
			if i < len(normals) {
				v.Normal = normals[i]
			}
			if i < len(uvs) {
				// glTF puts texture origin at the top-left; the sampler
				// expects it bottom-left.
				v.UV = math3d.V2(uvs[i].X, 1-uvs[i].Y)
			}
			dst.Vertices = append(dst.Vertices, v)
		}

		var idx []int
		if prim.Indices != nil {
			idx, err = readIndices(doc, *prim.Indices)
			if err != nil {
				return hadNormals, fmt.Errorf("primitive %d indices: %w", pi, err)
			}
		} else {
			idx = make([]int, len(positions))
			for i := range idx {
				idx[i] = i
			}
		}

		// Screen space points Y-down in the rasterizer, which turns the
		// file's counter-clockwise faces clockwise. Swap two indices per
		// triangle so front faces stay front.
		for i := 0; i+2 < len(idx); i += 3 {
			dst.Faces = append(dst.Faces, Face{
				V:        [3]int{base + idx[i], base + idx[i+2], base + idx[i+1]},
				Material: -1,
			})
		}
	}
	return hadNormals, nil
}

// accessorBytes resolves an accessor to its backing bytes and element
// stride. elemSize is the tightly packed element size used when the view
// declares no stride.
func accessorBytes(doc *gltf.Document, acc *gltf.Accessor, elemSize int) ([]byte, int, error) {
	if acc.BufferView == nil {
		return nil, 0, fmt.Errorf("accessor has no buffer view")
	}
	view := doc.BufferViews[*acc.BufferView]
	buf := doc.Buffers[view.Buffer]
	if buf.URI != "" {
		return nil, 0, fmt.Errorf("external buffer %q not supported", buf.URI)
	}
	if buf.Data == nil {
		return nil, 0, fmt.Errorf("buffer %d has no data", view.Buffer)
	}
	stride := view.ByteStride
	if stride == 0 {
		stride = elemSize
	}
	start := view.ByteOffset + acc.ByteOffset
	need := start + (acc.Count-1)*stride + elemSize
	if acc.Count == 0 || need > len(buf.Data) {
		return nil, 0, fmt.Errorf("accessor wants %d bytes, buffer has %d", need, len(buf.Data))
	}
	return buf.Data[start:], stride, nil
}

func readVec3(doc *gltf.Document, idx int) ([]math3d.Vec3, error) {
	acc := doc.Accessors[idx]
	if acc.Type != gltf.AccessorVec3 || acc.ComponentType != gltf.ComponentFloat {
		return nil, fmt.Errorf("accessor %d: want float vec3, got %v/%v", idx, acc.Type, acc.ComponentType)
	}
	data, stride, err := accessorBytes(doc, acc, 12)
	if err != nil {
		return nil, err
	}
	out := make([]math3d.Vec3, acc.Count)
	for i := range out {
		o := i * stride
		out[i] = math3d.V3(
			float64(leFloat32(data[o:])),
			float64(leFloat32(data[o+4:])),
			float64(leFloat32(data[o+8:])),
		)
	}
	return out, nil
}

func readVec2(doc *gltf.Document, idx int) ([]math3d.Vec2, error) {
	acc := doc.Accessors[idx]
	if acc.Type != gltf.AccessorVec2 || acc.ComponentType != gltf.ComponentFloat {
		return nil, fmt.Errorf("accessor %d: want float vec2, got %v/%v", idx, acc.Type, acc.ComponentType)
	}
	data, stride, err := accessorBytes(doc, acc, 8)
	if err != nil {
		return nil, err
	}
	out := make([]math3d.Vec2, acc.Count)
	for i := range out {
		o := i * stride
		out[i] = math3d.V2(float64(leFloat32(data[o:])), float64(leFloat32(data[o+4:])))
	}
	return out, nil
}

func readIndices(doc *gltf.Document, idx int) ([]int, error) {
	acc := doc.Accessors[idx]
	if acc.Type != gltf.AccessorScalar {
		return nil, fmt.Errorf("accessor %d: want scalar indices, got %v", idx, acc.Type)
	}
	var size int
	switch acc.ComponentType {
	case gltf.ComponentUbyte:
		size = 1
	case gltf.ComponentUshort:
		size = 2
	case gltf.ComponentUint:
		size = 4
	default:
		return nil, fmt.Errorf("accessor %d: unsupported index component %v", idx, acc.ComponentType)
	}
	data, stride, err := accessorBytes(doc, acc, size)
	if err != nil {
		return nil, err
	}
	out := make([]int, acc.Count)
	for i := range out {
		o := i * stride
		switch size {
		case 1:
			out[i] = int(data[o])
		case 2:
			out[i] = int(binary.LittleEndian.Uint16(data[o:]))
		case 4:
			out[i] = int(binary.LittleEndian.Uint32(data[o:]))
		}
	}
	return out, nil
}

func leFloat32(b []byte) float32 {
	return math.Float32frombits(binary.LittleEndian.Uint32(b))
}

// firstEmbeddedImage returns the first image stored in the document's
// binary chunk that Go's decoders understand.
func firstEmbeddedImage(doc *gltf.Document) image.Image {
	for _, gi := range doc.Images {
		if gi.BufferView == nil {
			continue
		}
		view := doc.BufferViews[*gi.BufferView]
		buf := doc.Buffers[view.Buffer]
		if buf.Data == nil {
			continue
		}
		end := view.ByteOffset + view.ByteLength
		if end > len(buf.Data) {
			continue
		}
		img, _, err := image.Decode(bytes.NewReader(buf.Data[view.ByteOffset:end]))
		if err == nil {
			return img
		}
	}
	return nil
}
