package shapes

import (
	"cg-raster/internal/mathutil"
	"cg-raster/internal/render"
)

// Cone returns a solid cone with an n-sided base at z=0 and its apex at
// z=height.
func Cone(n int, height float64) FaceShape {
	var points []mathutil.Vec3
	points = circlePoints(points, n, 0)
	points = append(points, mathutil.Vec3{0, 0, height})

	var faces []render.Face
	faces = circleFaces(faces, uint32(n), 0)
	apex := uint32(n)
	for i := uint32(0); i < uint32(n); i++ {
		faces = append(faces, render.Face{A: apex, B: i, C: (i + 1) % uint32(n)})
	}
	return FaceShape{Points: points, Faces: faces}
}

// ConeEdges returns the cone wireframe: base rim plus spokes to the apex.
func ConeEdges(n int, height float64) EdgeShape {
	var points []mathutil.Vec3
	points = circlePoints(points, n, 0)
	points = append(points, mathutil.Vec3{0, 0, height})

	apex := uint32(n)
	edges := make([]render.Edge, 0, 2*n)
	for i := uint32(0); i < uint32(n); i++ {
		edges = append(edges,
			render.Edge{A: i, B: (i + 1) % uint32(n)},
			render.Edge{A: i, B: apex},
		)
	}
	return EdgeShape{Points: points, Edges: edges}
}
