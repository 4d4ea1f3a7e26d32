package shapes

import (
	"math"
	"sort"

	"cg-raster/internal/mathutil"
	"cg-raster/internal/render"
)

// The buckyball is the icosahedron with every edge trisected: the two inner
// trisection points become its 60 vertices. Faces follow from the source
// solid: one pentagon per icosahedron vertex (its five nearest trisection
// points) and one hexagon per icosahedron face (the six trisection points on
// its boundary). 12 + 20 = 32 faces, 90 edges.

// buckyballPoints returns the 60 vertices. The two points of icosahedron
// edge i land at indices 2i (nearer B) and 2i+1 (nearer A).
func buckyballPoints() ([]mathutil.Vec3, []render.Edge) {
	ico := icosahedronPoints()
	icoEdges := icosahedronEdges()
	points := make([]mathutil.Vec3, len(icoEdges)*2)
	for i, e := range icoEdges {
		a, b := ico[e.A], ico[e.B]
		points[i*2] = a.Add(b.Scale(2)).Scale(1.0 / 3)
		points[i*2+1] = a.Scale(2).Add(b).Scale(1.0 / 3)
	}
	return points, icoEdges
}

// nearPoint returns the buckyball vertex on icosahedron edge ei nearest the
// icosahedron vertex v (which must be an endpoint of that edge).
func nearPoint(icoEdges []render.Edge, ei int, v uint32) uint32 {
	if icoEdges[ei].A == v {
		return uint32(ei*2 + 1)
	}
	return uint32(ei * 2)
}

// sortAround orders vertex indices cyclically around a center, measured in
// the plane perpendicular to axis.
func sortAround(points []mathutil.Vec3, idx []uint32, center, axis mathutil.Vec3) {
	n := axis.Normalize()
	// Any vector not parallel to n seeds the tangent basis.
	seed := mathutil.Vec3{1, 0, 0}
	if math.Abs(n[0]) > 0.9 {
		seed = mathutil.Vec3{0, 1, 0}
	}
	t1 := seed.Sub(n.Scale(seed.Dot(n))).Normalize()
	t2 := n.Cross(t1)
	sort.Slice(idx, func(i, j int) bool {
		pi := points[idx[i]].Sub(center)
		pj := points[idx[j]].Sub(center)
		return math.Atan2(pi.Dot(t2), pi.Dot(t1)) < math.Atan2(pj.Dot(t2), pj.Dot(t1))
	})
}

// buckyballPolygons derives the 12 pentagons and 20 hexagons.
func buckyballPolygons() ([]mathutil.Vec3, [][]uint32) {
	ico := icosahedronPoints()
	icoFaces := icosahedronFaces()
	points, icoEdges := buckyballPoints()

	edgeIndex := make(map[[2]uint32]int, len(icoEdges))
	for i, e := range icoEdges {
		edgeIndex[edgeKey(e.A, e.B)] = i
	}

	var polys [][]uint32

	// Pentagons: around each icosahedron vertex.
	for v := uint32(0); v < uint32(len(ico)); v++ {
		var pent []uint32
		for i, e := range icoEdges {
			if e.A == v || e.B == v {
				pent = append(pent, nearPoint(icoEdges, i, v))
			}
		}
		center := mathutil.Vec3{}
		for _, i := range pent {
			center = center.Add(points[i])
		}
		center = center.Scale(1 / float64(len(pent)))
		sortAround(points, pent, center, ico[v])
		polys = append(polys, pent)
	}

	// Hexagons: along each icosahedron face boundary.
	for _, f := range icoFaces {
		eab := edgeIndex[edgeKey(f.A, f.B)]
		ebc := edgeIndex[edgeKey(f.B, f.C)]
		eca := edgeIndex[edgeKey(f.C, f.A)]
		hex := []uint32{
			nearPoint(icoEdges, eab, f.A), nearPoint(icoEdges, eab, f.B),
			nearPoint(icoEdges, ebc, f.B), nearPoint(icoEdges, ebc, f.C),
			nearPoint(icoEdges, eca, f.C), nearPoint(icoEdges, eca, f.A),
		}
		center := ico[f.A].Add(ico[f.B]).Add(ico[f.C]).Scale(1.0 / 3)
		sortAround(points, hex, center, center)
		polys = append(polys, hex)
	}

	return points, polys
}

// Buckyball returns the solid truncated icosahedron; pentagons and hexagons
// are fan-triangulated.
func Buckyball() FaceShape {
	points, polys := buckyballPolygons()
	var faces []render.Face
	for _, p := range polys {
		for i := 1; i+1 < len(p); i++ {
			faces = append(faces, render.Face{A: p[0], B: p[i], C: p[i+1]})
		}
	}
	return FaceShape{Points: points, Faces: faces}
}

// BuckyballEdges returns the buckyball wireframe (90 edges).
func BuckyballEdges() EdgeShape {
	points, polys := buckyballPolygons()
	seen := make(map[[2]uint32]bool)
	var edges []render.Edge
	for _, p := range polys {
		for i := range p {
			a, b := p[i], p[(i+1)%len(p)]
			k := edgeKey(a, b)
			if !seen[k] {
				seen[k] = true
				edges = append(edges, render.Edge{A: a, B: b})
			}
		}
	}
	return EdgeShape{Points: points, Edges: edges}
}
