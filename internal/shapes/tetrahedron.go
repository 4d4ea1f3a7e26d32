package shapes

import (
	"cg-raster/internal/mathutil"
	"cg-raster/internal/render"
)

func tetrahedronPoints() []mathutil.Vec3 {
	return []mathutil.Vec3{
		{1, -1, -1},
		{-1, 1, -1},
		{1, 1, 1},
		{-1, -1, 1},
	}
}

func tetrahedronEdges() []render.Edge {
	return []render.Edge{
		{A: 0, B: 1}, {A: 0, B: 2}, {A: 0, B: 3},
		{A: 1, B: 2}, {A: 1, B: 3}, {A: 2, B: 3},
	}
}

func tetrahedronFaces() []render.Face {
	return []render.Face{
		{A: 0, B: 1, C: 2},
		{A: 0, B: 1, C: 3},
		{A: 0, B: 2, C: 3},
		{A: 1, B: 2, C: 3},
	}
}

// Tetrahedron returns the solid tetrahedron.
func Tetrahedron() FaceShape {
	return FaceShape{Points: tetrahedronPoints(), Faces: tetrahedronFaces()}
}

// TetrahedronEdges returns the tetrahedron wireframe.
func TetrahedronEdges() EdgeShape {
	return EdgeShape{Points: tetrahedronPoints(), Edges: tetrahedronEdges()}
}
