package render

import (
	"cg-raster/internal/mathutil"
)

// Face indexes three points of a triangle figure.
type Face struct {
	A, B, C uint32
}

// Edge indexes an unordered point pair of a line figure.
type Edge struct {
	A, B uint32
}

// Flags carries per-figure rasterization state.
type Flags struct {
	// FaceNormals: one normal per face (flat shading) instead of one per point.
	FaceNormals bool
	// CanCull: back faces may be skipped. Cleared by near-plane clipping
	// because split triangles can end up with degenerate winding.
	CanCull bool
	// Clipped: some points may be orphaned; bounds must iterate faces.
	Clipped bool
	// SeparateUV: UV indices come from FacesUV instead of Faces.
	SeparateUV bool
}

// TriangleFigure is a triangle mesh with material, already in eye space when
// it reaches the pipeline.
type TriangleFigure struct {
	Points  []mathutil.Vec3
	UVs     []mathutil.Vec2
	Normals []mathutil.Vec3 // per face if Flags.FaceNormals, else per point; empty if unlit
	Faces   []Face
	FacesUV []Face // parallel to Faces when Flags.SeparateUV

	Texture *Texture

	Ambient  Color
	Diffuse  Color
	Specular Color
	// Reflection is the specular exponent. ReflectionInt, when nonzero, is the
	// same exponent as an integer and enables the fast power path.
	Reflection    float64
	ReflectionInt uint32

	Flags Flags
}

// BoundsProjected returns the 2D bounds of the projected figure. After
// clipping some points may no longer be referenced by any face, so the
// clipped path iterates faces instead of points.
func (f *TriangleFigure) BoundsProjected() Rect {
	r := EmptyRect()
	if f.Flags.Clipped {
		for _, t := range f.Faces {
			r = r.AddPoint(Project(f.Points[t.A]))
			r = r.AddPoint(Project(f.Points[t.B]))
			r = r.AddPoint(Project(f.Points[t.C]))
		}
	} else {
		for _, p := range f.Points {
			r = r.AddPoint(Project(p))
		}
	}
	return r
}

// LineFigure is a set of colored edges, already in eye space.
type LineFigure struct {
	Points []mathutil.Vec3
	Edges  []Edge
	Color  Color
}
