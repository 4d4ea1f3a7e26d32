// Package shapes generates the built-in point/edge/face buffers consumed by
// the renderer. Shapes are centered on the origin in model space; transforms
// are applied by scene assembly.
package shapes

import (
	"math"

	"cg-raster/internal/mathutil"
	"cg-raster/internal/render"
)

// EdgeShape is the wireframe form of a shape.
type EdgeShape struct {
	Points []mathutil.Vec3
	Edges  []render.Edge
}

// FaceShape is the solid (triangulated) form of a shape.
type FaceShape struct {
	Points []mathutil.Vec3
	Faces  []render.Face
}

// circlePoints appends n points on the unit circle at height z.
func circlePoints(points []mathutil.Vec3, n int, z float64) []mathutil.Vec3 {
	d := 2 * math.Pi / float64(n)
	for i := 0; i < n; i++ {
		points = append(points, mathutil.Vec3{
			math.Sin(float64(i) * d),
			math.Cos(float64(i) * d),
			z,
		})
	}
	return points
}

// circleFaces appends a triangle fan over n consecutive points starting at
// index offset.
func circleFaces(faces []render.Face, n, offset uint32) []render.Face {
	if n < 3 {
		return faces
	}
	for i := uint32(0); i < n-2; i++ {
		faces = append(faces, render.Face{A: offset, B: offset + i + 1, C: offset + i + 2})
	}
	return faces
}

// edgeKey returns an order-independent key for an undirected edge.
func edgeKey(a, b uint32) [2]uint32 {
	if a > b {
		a, b = b, a
	}
	return [2]uint32{a, b}
}

// EdgesOf returns the wireframe of a solid shape: its points plus the unique
// undirected edges of its triangles.
func EdgesOf(shape FaceShape) EdgeShape {
	return EdgeShape{Points: shape.Points, Edges: edgesFromFaces(shape.Faces)}
}

// edgesFromFaces collects the unique undirected edges of a triangle list.
func edgesFromFaces(faces []render.Face) []render.Edge {
	seen := make(map[[2]uint32]bool, len(faces)*3/2)
	var edges []render.Edge
	add := func(a, b uint32) {
		k := edgeKey(a, b)
		if !seen[k] {
			seen[k] = true
			edges = append(edges, render.Edge{A: a, B: b})
		}
	}
	for _, f := range faces {
		add(f.A, f.B)
		add(f.B, f.C)
		add(f.C, f.A)
	}
	return edges
}
