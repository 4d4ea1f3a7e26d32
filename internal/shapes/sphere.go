package shapes

import (
	"cg-raster/internal/mathutil"
	"cg-raster/internal/render"
)

// bisect splits every edge at its midpoint and every face into four,
// midpoints indexed through an edge map so shared edges share points.
func bisect(points []mathutil.Vec3, edges []render.Edge, faces []render.Face) ([]mathutil.Vec3, []render.Edge, []render.Face) {
	newEdges := make([]render.Edge, 0, len(edges)*2+len(faces)*3)
	newFaces := make([]render.Face, 0, len(faces)*4)
	mid := make(map[[2]uint32]uint32, len(edges))

	for _, e := range edges {
		i := uint32(len(points))
		points = append(points, points[e.A].Add(points[e.B]).Scale(0.5))
		newEdges = append(newEdges,
			render.Edge{A: e.A, B: i},
			render.Edge{A: i, B: e.B},
		)
		mid[edgeKey(e.A, e.B)] = i
	}

	for _, g := range faces {
		d := mid[edgeKey(g.A, g.B)]
		e := mid[edgeKey(g.B, g.C)]
		f := mid[edgeKey(g.C, g.A)]
		newFaces = append(newFaces,
			render.Face{A: d, B: e, C: f},
			render.Face{A: g.A, B: d, C: f},
			render.Face{A: d, B: g.B, C: e},
			render.Face{A: e, B: f, C: g.C},
		)
		newEdges = append(newEdges,
			render.Edge{A: d, B: e},
			render.Edge{A: e, B: f},
			render.Edge{A: f, B: d},
		)
	}

	return points, newEdges, newFaces
}

// spherePoints builds the sphere mesh by bisecting an icosahedron n times and
// normalizing all points onto the unit sphere.
func spherePoints(n int) ([]mathutil.Vec3, []render.Edge, []render.Face) {
	points := icosahedronPoints()
	edges := icosahedronEdges()
	faces := icosahedronFaces()
	for i := 0; i < n; i++ {
		points, edges, faces = bisect(points, edges, faces)
	}
	for i := range points {
		points[i] = points[i].Normalize()
	}
	return points, edges, faces
}

// Sphere returns a unit sphere from n icosahedron bisections.
func Sphere(n int) FaceShape {
	points, _, faces := spherePoints(n)
	return FaceShape{Points: points, Faces: faces}
}

// SphereEdges returns the sphere wireframe.
func SphereEdges(n int) EdgeShape {
	points, edges, _ := spherePoints(n)
	return EdgeShape{Points: points, Edges: edges}
}
