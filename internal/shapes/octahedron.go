package shapes

import (
	"cg-raster/internal/mathutil"
	"cg-raster/internal/render"
)

func octahedronPoints() []mathutil.Vec3 {
	return []mathutil.Vec3{
		{1, 0, 0},
		{-1, 0, 0},
		{0, 1, 0},
		{0, 0, 1},
		{0, -1, 0},
		{0, 0, -1},
	}
}

func octahedronEdges() []render.Edge {
	return []render.Edge{
		// Top
		{A: 0, B: 2}, {A: 0, B: 3}, {A: 0, B: 4}, {A: 0, B: 5},
		// Bottom
		{A: 1, B: 2}, {A: 1, B: 3}, {A: 1, B: 4}, {A: 1, B: 5},
		// Ring
		{A: 2, B: 3}, {A: 3, B: 4}, {A: 4, B: 5}, {A: 5, B: 2},
	}
}

func octahedronFaces() []render.Face {
	return []render.Face{
		// Top
		{A: 0, B: 2, C: 3}, {A: 0, B: 3, C: 4}, {A: 0, B: 4, C: 5}, {A: 0, B: 5, C: 2},
		// Bottom
		{A: 1, B: 2, C: 3}, {A: 1, B: 3, C: 4}, {A: 1, B: 4, C: 5}, {A: 1, B: 5, C: 2},
	}
}

// Octahedron returns the solid octahedron.
func Octahedron() FaceShape {
	return FaceShape{Points: octahedronPoints(), Faces: octahedronFaces()}
}

// OctahedronEdges returns the octahedron wireframe.
func OctahedronEdges() EdgeShape {
	return EdgeShape{Points: octahedronPoints(), Edges: octahedronEdges()}
}
