package shapes

import (
	"cg-raster/internal/mathutil"
	"cg-raster/internal/render"
)

// Cylinder returns a solid cylinder with n side faces, its base circle at
// z=0 and its top at z=height.
func Cylinder(n int, height float64) FaceShape {
	var points []mathutil.Vec3
	points = circlePoints(points, n, 0)
	points = circlePoints(points, n, height)

	var faces []render.Face
	faces = circleFaces(faces, uint32(n), 0)
	faces = circleFaces(faces, uint32(n), uint32(n))
	faces = cylinderSideFaces(faces, uint32(n))

	return FaceShape{Points: points, Faces: faces}
}

func cylinderSideFaces(faces []render.Face, n uint32) []render.Face {
	for i := uint32(0); i < n; i++ {
		j := (i + 1) % n
		faces = append(faces,
			render.Face{A: i, B: j, C: n + i},
			render.Face{A: j, B: n + i, C: n + j},
		)
	}
	return faces
}

// CylinderEdges returns the cylinder wireframe: both rims plus the vertical
// side edges.
func CylinderEdges(n int, height float64) EdgeShape {
	var points []mathutil.Vec3
	points = circlePoints(points, n, 0)
	points = circlePoints(points, n, height)

	un := uint32(n)
	edges := make([]render.Edge, 0, 3*n)
	for i := uint32(0); i < un; i++ {
		j := (i + 1) % un
		edges = append(edges,
			render.Edge{A: i, B: j},
			render.Edge{A: un + i, B: un + j},
			render.Edge{A: i, B: un + i},
		)
	}
	return EdgeShape{Points: points, Edges: edges}
}

// cylinderSides returns an open cylinder (no caps) used by Thicken to wrap
// edges.
func cylinderSides(n int, height float64) FaceShape {
	var points []mathutil.Vec3
	points = circlePoints(points, n, 0)
	points = circlePoints(points, n, height)
	return FaceShape{Points: points, Faces: cylinderSideFaces(nil, uint32(n))}
}
