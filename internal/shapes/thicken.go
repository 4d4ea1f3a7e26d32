package shapes

import (
	"math"

	"cg-raster/internal/mathutil"
	"cg-raster/internal/render"
)

// Thicken replaces a wireframe by solid geometry: a sphere of the given
// radius at every point and a cylinder along every edge. m controls sphere
// subdivision, n the cylinder side count.
func Thicken(shape EdgeShape, radius float64, n, m int) FaceShape {
	sphere := Sphere(m)
	for i := range sphere.Points {
		sphere.Points[i] = sphere.Points[i].Scale(radius)
	}
	cyl := cylinderSides(n, 1)
	for i := range cyl.Points {
		cyl.Points[i][0] *= radius
		cyl.Points[i][1] *= radius
	}

	var out FaceShape
	out.Points = make([]mathutil.Vec3, 0, len(shape.Points)*len(sphere.Points)+len(shape.Edges)*len(cyl.Points))
	out.Faces = make([]render.Face, 0, len(shape.Points)*len(sphere.Faces)+len(shape.Edges)*len(cyl.Faces))

	for _, p := range shape.Points {
		o := uint32(len(out.Points))
		for _, f := range sphere.Faces {
			out.Faces = append(out.Faces, render.Face{A: f.A + o, B: f.B + o, C: f.C + o})
		}
		for _, q := range sphere.Points {
			out.Points = append(out.Points, p.Add(q))
		}
	}

	for _, e := range shape.Edges {
		o := uint32(len(out.Points))
		for _, f := range cyl.Faces {
			out.Faces = append(out.Faces, render.Face{A: f.A + o, B: f.B + o, C: f.C + o})
		}
		placeCylinder(shape, e, cyl.Points, &out.Points)
	}
	return out
}

// ThickenEdges is the wireframe form of Thicken.
func ThickenEdges(shape EdgeShape, radius float64, n, m int) EdgeShape {
	sphere := SphereEdges(m)
	for i := range sphere.Points {
		sphere.Points[i] = sphere.Points[i].Scale(radius)
	}
	cyl := CylinderEdges(n, 1)
	for i := range cyl.Points {
		cyl.Points[i][0] *= radius
		cyl.Points[i][1] *= radius
	}

	var out EdgeShape
	for _, p := range shape.Points {
		o := uint32(len(out.Points))
		for _, e := range sphere.Edges {
			out.Edges = append(out.Edges, render.Edge{A: e.A + o, B: e.B + o})
		}
		for _, q := range sphere.Points {
			out.Points = append(out.Points, p.Add(q))
		}
	}
	for _, e := range shape.Edges {
		o := uint32(len(out.Points))
		for _, g := range cyl.Edges {
			out.Edges = append(out.Edges, render.Edge{A: g.A + o, B: g.B + o})
		}
		placeCylinder(shape, e, cyl.Points, &out.Points)
	}
	return out
}

// placeCylinder stretches the template cylinder (aligned with +z, height 1)
// along the edge and appends its rotated points.
func placeCylinder(shape EdgeShape, e render.Edge, cylPoints []mathutil.Vec3, out *[]mathutil.Vec3) {
	a := shape.Points[e.A]
	b := shape.Points[e.B]
	d := b.Sub(a)
	l := d.Len()
	lxy := math.Hypot(d[0], d[1])

	rot := mathutil.Mat4Mul(
		mathutil.RotateZ(math.Atan2(d[1], d[0])-math.Pi),
		mathutil.RotateY(math.Atan2(d[2], lxy)-math.Pi/2),
	)
	for _, q := range cylPoints {
		v := q
		v[2] *= l
		*out = append(*out, a.Add(rot.MulDir(v)))
	}
}
