package shapes

import (
	"cg-raster/internal/mathutil"
	"cg-raster/internal/render"
)

func cubePoints() []mathutil.Vec3 {
	return []mathutil.Vec3{
		{1, 1, 1},
		{1, 1, -1},
		{1, -1, 1},
		{1, -1, -1},
		{-1, 1, 1},
		{-1, 1, -1},
		{-1, -1, 1},
		{-1, -1, -1},
	}
}

func cubeEdges() []render.Edge {
	return []render.Edge{
		// X
		{A: 0, B: 4}, {A: 1, B: 5}, {A: 2, B: 6}, {A: 3, B: 7},
		// Y
		{A: 0, B: 2}, {A: 1, B: 3}, {A: 4, B: 6}, {A: 5, B: 7},
		// Z
		{A: 0, B: 1}, {A: 2, B: 3}, {A: 4, B: 5}, {A: 6, B: 7},
	}
}

func cubeFaces() []render.Face {
	return []render.Face{
		// X
		{A: 0, B: 1, C: 2}, {A: 3, B: 1, C: 2},
		{A: 4, B: 5, C: 6}, {A: 7, B: 5, C: 6},
		// Y
		{A: 0, B: 1, C: 4}, {A: 5, B: 1, C: 4},
		{A: 2, B: 3, C: 6}, {A: 7, B: 3, C: 6},
		// Z
		{A: 0, B: 2, C: 4}, {A: 2, B: 6, C: 4},
		{A: 1, B: 3, C: 5}, {A: 3, B: 7, C: 5},
	}
}

// Cube returns the solid unit cube (side 2, centered on the origin).
func Cube() FaceShape {
	return FaceShape{Points: cubePoints(), Faces: cubeFaces()}
}

// CubeEdges returns the cube wireframe.
func CubeEdges() EdgeShape {
	return EdgeShape{Points: cubePoints(), Edges: cubeEdges()}
}
