package shapes

import (
	"math"

	"cg-raster/internal/mathutil"
	"cg-raster/internal/render"
)

// torusPoints sweeps a small circle of radius r at distance R around the z
// axis: m points per ring, n rings.
func torusPoints(bigR, smallR float64, n, m int) []mathutil.Vec3 {
	points := make([]mathutil.Vec3, n*m)
	d := 2 * math.Pi / float64(m)
	for i := 0; i < m; i++ {
		points[i] = mathutil.Vec3{
			0,
			bigR + math.Sin(float64(i)*d)*smallR,
			math.Cos(float64(i)*d) * smallR,
		}
	}
	rot := mathutil.RotateZ(2 * math.Pi / float64(n))
	for i := 1; i < n; i++ {
		for j := 0; j < m; j++ {
			points[i*m+j] = rot.MulPoint(points[(i-1)*m+j])
		}
	}
	return points
}

// Torus returns a solid torus with major radius R, minor radius r, n rings
// and m points per ring.
func Torus(bigR, smallR float64, n, m int) FaceShape {
	points := torusPoints(bigR, smallR, n, m)
	faces := make([]render.Face, 0, 2*n*m)
	for i := 0; i < n; i++ {
		for j := 0; j < m; j++ {
			k := (i + 1) % n
			l := (j + 1) % m
			faces = append(faces,
				render.Face{A: uint32(i*m + j), B: uint32(k*m + j), C: uint32(i*m + l)},
				render.Face{A: uint32(k*m + l), B: uint32(k*m + j), C: uint32(i*m + l)},
			)
		}
	}
	return FaceShape{Points: points, Faces: faces}
}

// TorusEdges returns the torus wireframe.
func TorusEdges(bigR, smallR float64, n, m int) EdgeShape {
	points := torusPoints(bigR, smallR, n, m)
	edges := make([]render.Edge, 0, 2*n*m)
	for i := 0; i < n; i++ {
		for j := 0; j < m; j++ {
			edges = append(edges,
				render.Edge{A: uint32(i*m + j), B: uint32(i*m + (j+1)%m)},
				render.Edge{A: uint32(i*m + j), B: uint32((i+1)%n*m + j)},
			)
		}
	}
	return EdgeShape{Points: points, Edges: edges}
}
