package shapes

import (
	"cg-raster/internal/mathutil"
	"cg-raster/internal/render"
)

// dodecahedronPoints takes the centroids of the icosahedron's faces: five
// around the top vertex, five around the bottom, and two interleaved rings.
func dodecahedronPoints() []mathutil.Vec3 {
	ico := icosahedronPoints()
	points := make([]mathutil.Vec3, 20)
	third := 1.0 / 3.0
	for i := 0; i < 5; i++ {
		j := (i + 1) % 5
		points[0+i] = ico[1+i].Add(ico[1+j]).Add(ico[0]).Scale(third)
		points[5+i] = ico[6+i].Add(ico[6+j]).Add(ico[11]).Scale(third)
		points[10+i] = ico[1+i].Add(ico[6+i]).Add(ico[6+(i+4)%5]).Scale(third)
		points[15+i] = ico[1+i].Add(ico[1+j]).Add(ico[6+i]).Scale(third)
	}
	return points
}

// Pentagons of the dodecahedron, each fanned into three triangles.
func dodecahedronPentagons() [][5]uint32 {
	var pents [][5]uint32
	for i := uint32(0); i < 5; i++ {
		j := (i + 1) % 5
		k := (i + 2) % 5
		// One pentagon around each upper-ring and lower-ring icosahedron
		// vertex, walking its five surrounding face centroids in order.
		pents = append(pents,
			[5]uint32{0 + i, 15 + i, 10 + j, 15 + j, 0 + j},
			[5]uint32{5 + i, 10 + j, 15 + j, 10 + k, 5 + j},
		)
	}
	pents = append(pents,
		[5]uint32{0, 1, 2, 3, 4},
		[5]uint32{5, 6, 7, 8, 9},
	)
	return pents
}

func dodecahedronEdges() []render.Edge {
	seen := make(map[[2]uint32]bool)
	var edges []render.Edge
	for _, p := range dodecahedronPentagons() {
		for i := 0; i < 5; i++ {
			a, b := p[i], p[(i+1)%5]
			k := edgeKey(a, b)
			if !seen[k] {
				seen[k] = true
				edges = append(edges, render.Edge{A: a, B: b})
			}
		}
	}
	return edges
}

func dodecahedronFaces() []render.Face {
	var faces []render.Face
	for _, p := range dodecahedronPentagons() {
		faces = append(faces,
			render.Face{A: p[0], B: p[1], C: p[2]},
			render.Face{A: p[0], B: p[2], C: p[3]},
			render.Face{A: p[0], B: p[3], C: p[4]},
		)
	}
	return faces
}

// Dodecahedron returns the solid dodecahedron (36 triangles from 12 pentagons).
func Dodecahedron() FaceShape {
	return FaceShape{Points: dodecahedronPoints(), Faces: dodecahedronFaces()}
}

// DodecahedronEdges returns the dodecahedron wireframe (30 edges).
func DodecahedronEdges() EdgeShape {
	return EdgeShape{Points: dodecahedronPoints(), Edges: dodecahedronEdges()}
}
