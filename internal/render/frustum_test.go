package render

import (
	"math"
	"testing"

	"cg-raster/internal/mathutil"
)

func testFrustum() Frustum {
	return Frustum{Near: 1, Far: 100, Fov: math.Pi / 2, Aspect: 1}
}

func singleTriangle(a, b, c mathutil.Vec3) TriangleFigure {
	return TriangleFigure{
		Points: []mathutil.Vec3{a, b, c},
		Faces:  []Face{{A: 0, B: 1, C: 2}},
		Flags:  Flags{CanCull: true, FaceNormals: true},
		Normals: []mathutil.Vec3{
			b.Sub(a).Cross(c.Sub(a)).Normalize(),
		},
	}
}

func TestClipAllInside(t *testing.T) {
	fr := testFrustum()
	f := singleTriangle(
		mathutil.Vec3{-1, -1, -10},
		mathutil.Vec3{1, -1, -10},
		mathutil.Vec3{0, 1, -10},
	)
	fr.Clip(&f)
	if len(f.Faces) != 1 {
		t.Fatalf("faces = %d, want 1", len(f.Faces))
	}
	if f.Flags.Clipped {
		t.Error("untouched figure should not be marked clipped")
	}
	if !f.Flags.CanCull {
		t.Error("untouched figure should keep culling enabled")
	}
}

func TestClipAllOutside(t *testing.T) {
	fr := testFrustum()
	// Entirely behind the camera.
	f := singleTriangle(
		mathutil.Vec3{-1, -1, 5},
		mathutil.Vec3{1, -1, 5},
		mathutil.Vec3{0, 1, 5},
	)
	fr.Clip(&f)
	if len(f.Faces) != 0 {
		t.Fatalf("faces = %d, want 0", len(f.Faces))
	}
	if !f.Flags.Clipped {
		t.Error("removal should mark the figure clipped")
	}
}

func TestClipOneVertexOutsideSplits(t *testing.T) {
	fr := testFrustum()
	// One vertex in front of the near plane, two well inside.
	f := singleTriangle(
		mathutil.Vec3{0, 0, -0.5},
		mathutil.Vec3{1, -1, -10},
		mathutil.Vec3{-1, 1, -10},
	)
	fr.Clip(&f)
	if len(f.Faces) != 2 {
		t.Fatalf("faces = %d, want 2 (split into a quad)", len(f.Faces))
	}
	if !f.Flags.Clipped {
		t.Error("split should mark the figure clipped")
	}
	if f.Flags.CanCull {
		t.Error("near-plane split should disable culling")
	}
	if len(f.Normals) != len(f.Faces) {
		t.Errorf("face normals out of sync: %d normals, %d faces", len(f.Normals), len(f.Faces))
	}
	// All surviving geometry lies behind the near plane.
	for _, face := range f.Faces {
		for _, i := range []uint32{face.A, face.B, face.C} {
			if -f.Points[i][2] < fr.Near-1e-9 {
				t.Errorf("point %v in front of near plane", f.Points[i])
			}
		}
	}
}

func TestClipTwoVerticesOutsideShrinks(t *testing.T) {
	fr := testFrustum()
	f := singleTriangle(
		mathutil.Vec3{0, 0, -10},
		mathutil.Vec3{1, -1, -0.2},
		mathutil.Vec3{-1, 1, -0.2},
	)
	fr.Clip(&f)
	if len(f.Faces) != 1 {
		t.Fatalf("faces = %d, want 1 (shrunk)", len(f.Faces))
	}
	for _, face := range f.Faces {
		for _, i := range []uint32{face.A, face.B, face.C} {
			if -f.Points[i][2] < fr.Near-1e-9 {
				t.Errorf("point %v in front of near plane", f.Points[i])
			}
		}
	}
}

// TestClipIdempotent clips twice and verifies the second pass is a no-op.
func TestClipIdempotent(t *testing.T) {
	fr := testFrustum()
	figs := []TriangleFigure{
		singleTriangle(
			mathutil.Vec3{0, 0, -0.5},
			mathutil.Vec3{3, -3, -20},
			mathutil.Vec3{-3, 3, -20},
		),
		singleTriangle(
			mathutil.Vec3{-8, -8, -6},
			mathutil.Vec3{8, -8, -6},
			mathutil.Vec3{0, 9, -6},
		),
	}
	for _, f := range figs {
		fr.Clip(&f)
		after := len(f.Faces)
		fr.Clip(&f)
		if len(f.Faces) != after {
			t.Errorf("second clip changed face count: %d -> %d", after, len(f.Faces))
		}
	}
}

// TestClipLateralPlanes pushes a triangle past the right plane and verifies
// the surviving geometry respects it.
func TestClipLateralPlanes(t *testing.T) {
	fr := testFrustum()
	f := singleTriangle(
		mathutil.Vec3{0, 0, -5},
		mathutil.Vec3{20, 0, -5},
		mathutil.Vec3{0, 1, -5},
	)
	fr.Clip(&f)
	if len(f.Faces) == 0 {
		t.Fatal("triangle should survive partially")
	}
	tan := math.Tan(fr.Fov / 2)
	for _, face := range f.Faces {
		for _, i := range []uint32{face.A, face.B, face.C} {
			p := f.Points[i]
			if p[0]*fr.Near > tan*fr.Near*-p[2]+1e-9 {
				t.Errorf("point %v outside right plane", p)
			}
		}
	}
}

// TestClipInterpolatesUV clips a textured triangle and verifies new vertices
// get interpolated UVs.
func TestClipInterpolatesUV(t *testing.T) {
	fr := testFrustum()
	f := TriangleFigure{
		Points: []mathutil.Vec3{
			{0, 0, -0.5},
			{1, 0, -10},
			{0, 1, -10},
		},
		UVs:   []mathutil.Vec2{{0, 0}, {1, 0}, {0, 1}},
		Faces: []Face{{A: 0, B: 1, C: 2}},
		Flags: Flags{FaceNormals: true},
		Normals: []mathutil.Vec3{
			{0, 0, 1},
		},
	}
	fr.Clip(&f)
	if len(f.UVs) != len(f.Points) {
		t.Fatalf("UVs out of sync: %d UVs, %d points", len(f.UVs), len(f.Points))
	}
	for i, uv := range f.UVs {
		if uv[0] < -1e-9 || uv[0] > 1+1e-9 || uv[1] < -1e-9 || uv[1] > 1+1e-9 {
			t.Errorf("UV %d = %v outside the triangle's UV range", i, uv)
		}
	}
}
