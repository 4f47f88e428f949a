package models

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/qmuntal/gltf"

	"github.com/taigrr/mugshot/pkg/math3d"
)

// ExportMesh is one named, positioned mesh to serialize. Vertices follow
// the generator layout (vertexStride float32 per vertex); Transform is
// baked into the positions on write so the file carries world-space
// geometry under identity nodes.
type ExportMesh struct {
	Name      string
	Vertices  []float32
	Indices   []uint16
	Transform math3d.Mat4
}

// ExportGLB writes the meshes as a binary glTF 2.0 file. Each mesh becomes
// one node with POSITION and TEXCOORD_0 accessors plus a uint16 index
// accessor, all backed by a single buffer.
func ExportGLB(path string, meshes []ExportMesh) error {
	if len(meshes) == 0 {
		return fmt.Errorf("nothing to export")
	}

	doc := &gltf.Document{
		Asset: gltf.Asset{Version: "2.0", Generator: "mugshot"},
	}

	var bin []byte
	var rootNodes []int
	for _, em := range meshes {
		if len(em.Vertices)%vertexStride != 0 {
			return fmt.Errorf("mesh %q: vertex buffer length %d is not a multiple of %d", em.Name, len(em.Vertices), vertexStride)
		}
		nVerts := len(em.Vertices) / vertexStride
		if nVerts == 0 {
			return fmt.Errorf("mesh %q has no vertices", em.Name)
		}
		if len(em.Indices) == 0 || len(em.Indices)%3 != 0 {
			return fmt.Errorf("mesh %q: index count %d is not a positive multiple of 3", em.Name, len(em.Indices))
		}
		for _, ix := range em.Indices {
			if int(ix) >= nVerts {
				return fmt.Errorf("mesh %q: index %d out of range for %d vertices", em.Name, ix, nVerts)
			}
		}

		posOffset := len(bin)
		min := [3]float64{math.Inf(1), math.Inf(1), math.Inf(1)}
		max := [3]float64{math.Inf(-1), math.Inf(-1), math.Inf(-1)}
		for i := 0; i < nVerts; i++ {
			o := i * vertexStride
			p := em.Transform.MulVec3(math3d.V3(
				float64(em.Vertices[o]),
				float64(em.Vertices[o+1]),
				float64(em.Vertices[o+2]),
			))
			for c, val := range [3]float64{p.X, p.Y, p.Z} {
				f := float32(val)
				bin = binary.LittleEndian.AppendUint32(bin, math.Float32bits(f))
				if float64(f) < min[c] {
					min[c] = float64(f)
				}
				if float64(f) > max[c] {
					max[c] = float64(f)
				}
			}
		}

		uvOffset := len(bin)
		for i := 0; i < nVerts; i++ {
			o := i * vertexStride
			bin = binary.LittleEndian.AppendUint32(bin, math.Float32bits(em.Vertices[o+3]))
			bin = binary.LittleEndian.AppendUint32(bin, math.Float32bits(em.Vertices[o+4]))
		}

		idxOffset := len(bin)
		for _, ix := range em.Indices {
			bin = binary.LittleEndian.AppendUint16(bin, ix)
		}
		// Accessor offsets must stay 4-byte aligned.
		for len(bin)%4 != 0 {
			bin = append(bin, 0)
		}

		posView := addBufferView(doc, posOffset, nVerts*12, gltf.TargetArrayBuffer)
		uvView := addBufferView(doc, uvOffset, nVerts*8, gltf.TargetArrayBuffer)
		idxView := addBufferView(doc, idxOffset, len(em.Indices)*2, gltf.TargetElementArrayBuffer)

		posAcc := addAccessor(doc, &gltf.Accessor{
			BufferView:    &posView,
			ComponentType: gltf.ComponentFloat,
			Count:         nVerts,
			Type:          gltf.AccessorVec3,
			Min:           min[:],
			Max:           max[:],
		})
		uvAcc := addAccessor(doc, &gltf.Accessor{
			BufferView:    &uvView,
			ComponentType: gltf.ComponentFloat,
			Count:         nVerts,
			Type:          gltf.AccessorVec2,
		})
		idxAcc := addAccessor(doc, &gltf.Accessor{
			BufferView:    &idxView,
			ComponentType: gltf.ComponentUshort,
			Count:         len(em.Indices),
			Type:          gltf.AccessorScalar,
		})

		meshIdx := len(doc.Meshes)
		doc.Meshes = append(doc.Meshes, &gltf.Mesh{
			Name: em.Name,
			Primitives: []*gltf.Primitive{{
				Attributes: gltf.PrimitiveAttributes{
					gltf.POSITION:   posAcc,
					gltf.TEXCOORD_0: uvAcc,
				},
				Indices: &idxAcc,
				Mode:    gltf.PrimitiveTriangles,
			}},
		})

		nodeIdx := len(doc.Nodes)
		doc.Nodes = append(doc.Nodes, &gltf.Node{
			Name: em.Name,
			Mesh: &meshIdx,
			Matrix: [16]float64{
				1, 0, 0, 0,
				0, 1, 0, 0,
				0, 0, 1, 0,
				0, 0, 0, 1,
			},
			Rotation: [4]float64{0, 0, 0, 1},
			Scale:    [3]float64{1, 1, 1},
		})
		rootNodes = append(rootNodes, nodeIdx)
	}

	doc.Buffers = []*gltf.Buffer{{ByteLength: len(bin), Data: bin}}
	sceneIdx := 0
	doc.Scenes = []*gltf.Scene{{Name: "scene", Nodes: rootNodes}}
	doc.Scene = &sceneIdx

	if err := gltf.SaveBinary(doc, path); err != nil {
		return fmt.Errorf("save glb: %w", err)
	}
	return nil
}

func addBufferView(doc *gltf.Document, offset, length int, target gltf.Target) int {
	doc.BufferViews = append(doc.BufferViews, &gltf.BufferView{
		Buffer:     0,
		ByteOffset: offset,
		ByteLength: length,
		Target:     target,
	})
	return len(doc.BufferViews) - 1
}

func addAccessor(doc *gltf.Document, acc *gltf.Accessor) int {
	doc.Accessors = append(doc.Accessors, acc)
	return len(doc.Accessors) - 1
}
