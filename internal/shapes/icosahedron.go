package shapes

import (
	"math"

	"cg-raster/internal/mathutil"
	"cg-raster/internal/render"
)

// icosahedronPoints places the top and bottom vertices on the z axis and two
// staggered rings of five at z = ±0.5. All vertices lie at distance √5/2.
func icosahedronPoints() []mathutil.Vec3 {
	points := make([]mathutil.Vec3, 12)
	points[0] = mathutil.Vec3{0, 0, math.Sqrt(5) / 2}
	for i := 0; i < 5; i++ {
		a := 2 * math.Pi / 5 * float64(i)
		points[1+i] = mathutil.Vec3{math.Cos(a), math.Sin(a), 0.5}
		b := a + math.Pi/5
		points[6+i] = mathutil.Vec3{math.Cos(b), math.Sin(b), -0.5}
	}
	points[11] = mathutil.Vec3{0, 0, -math.Sqrt(5) / 2}
	return points
}

func icosahedronFaces() []render.Face {
	return []render.Face{
		// Top cap
		{A: 0, B: 1, C: 2}, {A: 0, B: 2, C: 3}, {A: 0, B: 3, C: 4}, {A: 0, B: 4, C: 5}, {A: 0, B: 5, C: 1},
		// Upper ring
		{A: 1, B: 6, C: 2}, {A: 2, B: 6, C: 7}, {A: 2, B: 7, C: 3}, {A: 3, B: 7, C: 8}, {A: 3, B: 8, C: 4},
		// Lower ring
		{A: 4, B: 8, C: 9}, {A: 4, B: 9, C: 5}, {A: 5, B: 9, C: 10}, {A: 5, B: 10, C: 1}, {A: 1, B: 10, C: 6},
		// Bottom cap
		{A: 11, B: 7, C: 6}, {A: 11, B: 8, C: 7}, {A: 11, B: 9, C: 8}, {A: 11, B: 10, C: 9}, {A: 11, B: 6, C: 10},
	}
}

func icosahedronEdges() []render.Edge {
	return edgesFromFaces(icosahedronFaces())
}

// Icosahedron returns the solid icosahedron.
func Icosahedron() FaceShape {
	return FaceShape{Points: icosahedronPoints(), Faces: icosahedronFaces()}
}

// IcosahedronEdges returns the icosahedron wireframe.
func IcosahedronEdges() EdgeShape {
	return EdgeShape{Points: icosahedronPoints(), Edges: icosahedronEdges()}
}
