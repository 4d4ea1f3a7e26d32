// Package gltfmodel loads triangle meshes from glTF / GLB files.
package gltfmodel

import (
	"bytes"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"math"
	"os"
	"path/filepath"

	"github.com/qmuntal/gltf"

	"cg-raster/internal/mathutil"
	"cg-raster/internal/render"
)

// Shape is a loaded glTF mesh flattened into renderer buffers.
type Shape struct {
	Points  []mathutil.Vec3
	UVs     []mathutil.Vec2
	Normals []mathutil.Vec3
	Faces   []render.Face
	// Texture is the first embedded or referenced base image, if any.
	Texture    *image.NRGBA
	HasUVs     bool
	HasNormals bool
}

// Load reads every triangle primitive of every mesh in the document.
func Load(path string) (Shape, error) {
	doc, err := gltf.Open(path)
	if err != nil {
		return Shape{}, fmt.Errorf("gltf: open %s: %w", path, err)
	}

	var shape Shape
	for _, m := range doc.Meshes {
		for _, prim := range m.Primitives {
			if prim.Mode != gltf.PrimitiveTriangles && prim.Mode != 0 {
				continue
			}
			if err := loadPrimitive(doc, prim, &shape); err != nil {
				return Shape{}, fmt.Errorf("gltf: mesh %q: %w", m.Name, err)
			}
		}
	}
	shape.Texture = firstTexture(doc, path)
	return shape, nil
}

func loadPrimitive(doc *gltf.Document, prim *gltf.Primitive, shape *Shape) error {
	posIdx, ok := prim.Attributes[gltf.POSITION]
	if !ok {
		return nil
	}
	positions, err := readVec3(doc, posIdx)
	if err != nil {
		return fmt.Errorf("positions: %w", err)
	}

	var normals []mathutil.Vec3
	if ni, ok := prim.Attributes[gltf.NORMAL]; ok {
		if normals, err = readVec3(doc, ni); err != nil {
			return fmt.Errorf("normals: %w", err)
		}
	}
	var uvs []mathutil.Vec2
	if ti, ok := prim.Attributes[gltf.TEXCOORD_0]; ok {
		if uvs, err = readVec2(doc, ti); err != nil {
			return fmt.Errorf("uvs: %w", err)
		}
	}

	base := uint32(len(shape.Points))
	for i, p := range positions {
		shape.Points = append(shape.Points, p)
		if i < len(normals) {
			shape.Normals = append(shape.Normals, normals[i])
			shape.HasNormals = true
		} else {
			shape.Normals = append(shape.Normals, mathutil.Vec3{})
		}
		if i < len(uvs) {
			// glTF UVs have a top-left origin; flip V.
			shape.UVs = append(shape.UVs, mathutil.Vec2{uvs[i][0], 1 - uvs[i][1]})
			shape.HasUVs = true
		} else {
			shape.UVs = append(shape.UVs, mathutil.Vec2{})
		}
	}

	if prim.Indices != nil {
		indices, err := readIndices(doc, *prim.Indices)
		if err != nil {
			return fmt.Errorf("indices: %w", err)
		}
		for i := 0; i+2 < len(indices); i += 3 {
			shape.Faces = append(shape.Faces, render.Face{
				A: base + indices[i],
				B: base + indices[i+1],
				C: base + indices[i+2],
			})
		}
	} else {
		for i := 0; i+2 < len(positions); i += 3 {
			shape.Faces = append(shape.Faces, render.Face{
				A: base + uint32(i),
				B: base + uint32(i+1),
				C: base + uint32(i+2),
			})
		}
	}
	return nil
}

func accessorBytes(doc *gltf.Document, a *gltf.Accessor) ([]byte, int, error) {
	if a.BufferView == nil {
		return nil, 0, fmt.Errorf("accessor has no buffer view")
	}
	bv := doc.BufferViews[*a.BufferView]
	buf := doc.Buffers[bv.Buffer]
	if buf.Data == nil {
		return nil, 0, fmt.Errorf("buffer has no embedded data")
	}
	return buf.Data, bv.ByteOffset + a.ByteOffset, nil
}

func readVec3(doc *gltf.Document, idx int) ([]mathutil.Vec3, error) {
	a := doc.Accessors[idx]
	if a.Type != gltf.AccessorVec3 || a.ComponentType != gltf.ComponentFloat {
		return nil, fmt.Errorf("expected float VEC3")
	}
	data, start, err := accessorBytes(doc, a)
	if err != nil {
		return nil, err
	}
	stride := doc.BufferViews[*a.BufferView].ByteStride
	if stride == 0 {
		stride = 12
	}
	out := make([]mathutil.Vec3, a.Count)
	for i := 0; i < a.Count; i++ {
		o := start + i*stride
		out[i] = mathutil.Vec3{
			float64(readFloat32(data[o:])),
			float64(readFloat32(data[o+4:])),
			float64(readFloat32(data[o+8:])),
		}
	}
	return out, nil
}

func readVec2(doc *gltf.Document, idx int) ([]mathutil.Vec2, error) {
	a := doc.Accessors[idx]
	if a.Type != gltf.AccessorVec2 || a.ComponentType != gltf.ComponentFloat {
		return nil, fmt.Errorf("expected float VEC2")
	}
	data, start, err := accessorBytes(doc, a)
	if err != nil {
		return nil, err
	}
	stride := doc.BufferViews[*a.BufferView].ByteStride
	if stride == 0 {
		stride = 8
	}
	out := make([]mathutil.Vec2, a.Count)
	for i := 0; i < a.Count; i++ {
		o := start + i*stride
		out[i] = mathutil.Vec2{
			float64(readFloat32(data[o:])),
			float64(readFloat32(data[o+4:])),
		}
	}
	return out, nil
}

func readIndices(doc *gltf.Document, idx int) ([]uint32, error) {
	a := doc.Accessors[idx]
	if a.Type != gltf.AccessorScalar {
		return nil, fmt.Errorf("expected SCALAR indices")
	}
	data, start, err := accessorBytes(doc, a)
	if err != nil {
		return nil, err
	}
	out := make([]uint32, a.Count)
	switch a.ComponentType {
	case gltf.ComponentUbyte:
		for i := 0; i < a.Count; i++ {
			out[i] = uint32(data[start+i])
		}
	case gltf.ComponentUshort:
		for i := 0; i < a.Count; i++ {
			o := start + i*2
			out[i] = uint32(data[o]) | uint32(data[o+1])<<8
		}
	case gltf.ComponentUint:
		for i := 0; i < a.Count; i++ {
			o := start + i*4
			out[i] = uint32(data[o]) | uint32(data[o+1])<<8 | uint32(data[o+2])<<16 | uint32(data[o+3])<<24
		}
	default:
		return nil, fmt.Errorf("unsupported index component type %v", a.ComponentType)
	}
	return out, nil
}

func readFloat32(b []byte) float32 {
	bits := uint32(b[0]) | uint32(b[1])<<8 | uint32(b[2])<<16 | uint32(b[3])<<24
	return math.Float32frombits(bits)
}

// firstTexture decodes the document's first image, embedded or external.
func firstTexture(doc *gltf.Document, path string) *image.NRGBA {
	for _, img := range doc.Images {
		var data []byte
		if img.BufferView != nil {
			bv := doc.BufferViews[*img.BufferView]
			buf := doc.Buffers[bv.Buffer]
			if buf.Data != nil {
				data = buf.Data[bv.ByteOffset : bv.ByteOffset+bv.ByteLength]
			}
		} else if img.URI != "" {
			data, _ = os.ReadFile(filepath.Join(filepath.Dir(path), img.URI))
		}
		if len(data) == 0 {
			continue
		}
		decoded, _, err := image.Decode(bytes.NewReader(data))
		if err != nil {
			continue
		}
		return toNRGBA(decoded)
	}
	return nil
}

func toNRGBA(src image.Image) *image.NRGBA {
	if n, ok := src.(*image.NRGBA); ok {
		return n
	}
	b := src.Bounds()
	dst := image.NewNRGBA(b)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			dst.Set(x, y, src.At(x, y))
		}
	}
	return dst
}
