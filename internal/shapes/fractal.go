package shapes

import (
	"cg-raster/internal/mathutil"
	"cg-raster/internal/render"
)

// fractalPoints replaces every point by a scaled-down copy of the whole point
// set anchored at that point, repeated for the given number of iterations.
func fractalPoints(points []mathutil.Vec3, invScale float64, iterations int) []mathutil.Vec3 {
	// Per-anchor shift keeping each copy attached to its source corner.
	shift := make([]mathutil.Vec3, len(points))
	for i, p := range points {
		shift[i] = p.Scale(invScale)
	}

	template := make([]mathutil.Vec3, len(points))
	copy(template, points)
	cur := points

	for it := 0; it < iterations; it++ {
		for i := range template {
			template[i] = template[i].Scale(invScale)
		}
		next := make([]mathutil.Vec3, 0, len(cur)*len(template))
		for k, c := range cur {
			s := shift[k%len(shift)]
			for _, p := range template {
				next = append(next, p.Add(c).Sub(s))
			}
		}
		cur = next
		for i := range shift {
			shift[i] = shift[i].Scale(invScale)
		}
	}
	return cur
}

// FractalFaces expands a face shape into its fractal.
func FractalFaces(shape FaceShape, scale float64, iterations int) FaceShape {
	oldCount := uint32(len(shape.Points))
	shape.Points = fractalPoints(shape.Points, 1/scale, iterations)
	oldFaces := len(shape.Faces)
	for i := oldCount; i < uint32(len(shape.Points)); i += oldCount {
		for k := 0; k < oldFaces; k++ {
			f := shape.Faces[k]
			shape.Faces = append(shape.Faces, render.Face{A: f.A + i, B: f.B + i, C: f.C + i})
		}
	}
	return shape
}

// FractalEdges expands an edge shape into its fractal.
func FractalEdges(shape EdgeShape, scale float64, iterations int) EdgeShape {
	oldCount := uint32(len(shape.Points))
	shape.Points = fractalPoints(shape.Points, 1/scale, iterations)
	oldEdges := len(shape.Edges)
	for i := oldCount; i < uint32(len(shape.Points)); i += oldCount {
		for k := 0; k < oldEdges; k++ {
			e := shape.Edges[k]
			shape.Edges = append(shape.Edges, render.Edge{A: e.A + i, B: e.B + i})
		}
	}
	return shape
}
