package render

import (
	"testing"

	"cg-raster/internal/canvas"
	"cg-raster/internal/mathutil"
)

// eyeCube builds the unit cube centered at worldCenter as seen from a camera
// at (0,0,5) looking at the origin, with the given material colors.
func eyeCube(t *testing.T, worldCenter mathutil.Vec3, ambient, diffuse Color) TriangleFigure {
	t.Helper()
	eye, _, err := LookDirection(mathutil.Vec3{0, 0, 5}, mathutil.Vec3{0, 0, -5})
	if err != nil {
		t.Fatal(err)
	}

	points := []mathutil.Vec3{
		{1, 1, 1}, {1, 1, -1}, {1, -1, 1}, {1, -1, -1},
		{-1, 1, 1}, {-1, 1, -1}, {-1, -1, 1}, {-1, -1, -1},
	}
	faces := []Face{
		{A: 0, B: 1, C: 2}, {A: 3, B: 1, C: 2},
		{A: 4, B: 5, C: 6}, {A: 7, B: 5, C: 6},
		{A: 0, B: 1, C: 4}, {A: 5, B: 1, C: 4},
		{A: 2, B: 3, C: 6}, {A: 7, B: 3, C: 6},
		{A: 0, B: 2, C: 4}, {A: 2, B: 6, C: 4},
		{A: 1, B: 3, C: 5}, {A: 3, B: 7, C: 5},
	}

	fig := TriangleFigure{
		Faces:   faces,
		Ambient: ambient,
		Diffuse: diffuse,
		Flags:   Flags{FaceNormals: true},
	}
	mat := mathutil.Mat4Mul(eye, mathutil.Translate(worldCenter))
	fig.Points = make([]mathutil.Vec3, len(points))
	for i, p := range points {
		fig.Points[i] = mat.MulPoint(p)
	}
	fig.Normals = make([]mathutil.Vec3, len(faces))
	for i, f := range faces {
		a, b, c := fig.Points[f.A], fig.Points[f.B], fig.Points[f.C]
		fig.Normals[i] = b.Sub(a).Cross(c.Sub(a)).Normalize()
	}
	return fig
}

func ambientLights() *Lights {
	return &Lights{Ambient: Color{R: 1, G: 1, B: 1}}
}

// TestDrawAmbientCube renders a solid red cube face-on: the center pixel is
// red and the image corner is background.
func TestDrawAmbientCube(t *testing.T) {
	fig := eyeCube(t, mathutil.Vec3{}, Color{R: 1}, Color{})
	img, err := Draw([]TriangleFigure{fig}, ambientLights(), 100, Color{})
	if err != nil {
		t.Fatal(err)
	}
	if img.Width() != 100 || img.Height() != 100 {
		t.Fatalf("image is %dx%d, want 100x100", img.Width(), img.Height())
	}
	if got := img.At(50, 50); got != (canvas.RGB{R: 255}) {
		t.Errorf("center pixel = %v, want pure red", got)
	}
	if got := img.At(0, 0); got != (canvas.RGB{}) {
		t.Errorf("corner pixel = %v, want background", got)
	}
}

// TestDrawDirectionalLight lights the cube head-on: the facing side renders
// full white.
func TestDrawDirectionalLight(t *testing.T) {
	fig := eyeCube(t, mathutil.Vec3{}, Color{}, Color{R: 1, G: 1, B: 1})
	lights := &Lights{
		Ambient: Color{R: 1, G: 1, B: 1}, // figure ambient is zero anyway
		Directional: []DirectionalLight{{
			Direction: mathutil.Vec3{0, 0, -1},
			Diffuse:   Color{R: 1, G: 1, B: 1},
		}},
	}
	img, err := Draw([]TriangleFigure{fig}, lights, 100, Color{})
	if err != nil {
		t.Fatal(err)
	}
	if got := img.At(50, 50); got != (canvas.RGB{R: 255, G: 255, B: 255}) {
		t.Errorf("center pixel = %v, want full white", got)
	}
	if got := img.At(0, 0); got != (canvas.RGB{}) {
		t.Errorf("corner pixel = %v, want background", got)
	}
}

// TestDrawOcclusion puts a red cube in front of a green one at the same
// screen position: only the red cube's material reaches the overlap.
func TestDrawOcclusion(t *testing.T) {
	near := eyeCube(t, mathutil.Vec3{0, 0, 2}, Color{R: 1}, Color{}) // eye z = -3
	far := eyeCube(t, mathutil.Vec3{0, 0, 0}, Color{G: 1}, Color{})  // eye z = -5
	img, err := Draw([]TriangleFigure{far, near}, ambientLights(), 100, Color{B: 1})
	if err != nil {
		t.Fatal(err)
	}
	cx, cy := img.Width()/2, img.Height()/2
	if got := img.At(cx, cy); got != (canvas.RGB{R: 255}) {
		t.Errorf("center pixel = %v, want the nearer cube's red", got)
	}
	// No pixel may be green in the overlap: scan the nearer cube's projected
	// square around the center.
	for y := cy - 10; y <= cy+10; y++ {
		for x := cx - 10; x <= cx+10; x++ {
			if got := img.At(x, y); got.G > 0 {
				t.Fatalf("pixel (%d,%d) = %v shows the occluded cube", x, y, got)
			}
		}
	}
}

// TestDrawEmpty draws nothing and expects an empty image, not an error.
func TestDrawEmpty(t *testing.T) {
	img, err := Draw(nil, ambientLights(), 100, Color{})
	if err != nil {
		t.Fatal(err)
	}
	if !img.Empty() {
		t.Errorf("empty scene gave a %dx%d image", img.Width(), img.Height())
	}
}

// TestDrawCullingEquivalence renders a closed convex mesh with and without
// back-face culling: the images must match.
func TestDrawCullingEquivalence(t *testing.T) {
	eye, _, err := LookDirection(mathutil.Vec3{0, 0, 5}, mathutil.Vec3{0, 0, -5})
	if err != nil {
		t.Fatal(err)
	}
	// Octahedron with consistent outward winding.
	points := []mathutil.Vec3{
		{1, 0, 0}, {-1, 0, 0}, {0, 1, 0}, {0, 0, 1}, {0, -1, 0}, {0, 0, -1},
	}
	faces := []Face{
		{A: 0, B: 2, C: 3}, {A: 0, B: 3, C: 4}, {A: 0, B: 4, C: 5}, {A: 0, B: 5, C: 2},
		{A: 1, B: 3, C: 2}, {A: 1, B: 4, C: 3}, {A: 1, B: 5, C: 4}, {A: 1, B: 2, C: 5},
	}
	build := func(canCull bool) TriangleFigure {
		fig := TriangleFigure{
			Faces:   faces,
			Ambient: Color{R: 0.2, G: 0.6, B: 0.9},
			Flags:   Flags{FaceNormals: true, CanCull: canCull},
		}
		fig.Points = make([]mathutil.Vec3, len(points))
		for i, p := range points {
			fig.Points[i] = eye.MulPoint(p)
		}
		fig.Normals = make([]mathutil.Vec3, len(faces))
		for i, f := range faces {
			a, b, c := fig.Points[f.A], fig.Points[f.B], fig.Points[f.C]
			fig.Normals[i] = b.Sub(a).Cross(c.Sub(a)).Normalize()
		}
		return fig
	}

	culled, err := Draw([]TriangleFigure{build(true)}, ambientLights(), 80, Color{})
	if err != nil {
		t.Fatal(err)
	}
	full, err := Draw([]TriangleFigure{build(false)}, ambientLights(), 80, Color{})
	if err != nil {
		t.Fatal(err)
	}
	if culled.Width() != full.Width() || culled.Height() != full.Height() {
		t.Fatalf("sizes differ: %dx%d vs %dx%d", culled.Width(), culled.Height(), full.Width(), full.Height())
	}
	diff := 0
	for y := 0; y < full.Height(); y++ {
		for x := 0; x < full.Width(); x++ {
			if culled.At(x, y) != full.At(x, y) {
				diff++
			}
		}
	}
	// Silhouette pixels may fall either way; the interior must agree.
	if diff > full.Width() {
		t.Errorf("%d pixels differ between culled and unculled renders", diff)
	}
}

// TestShadowSymmetry places the point light on the camera axis, between
// camera and cube: nothing visible can be shadowed.
func TestShadowSymmetry(t *testing.T) {
	eye, inv, err := LookDirection(mathutil.Vec3{0, 0, 5}, mathutil.Vec3{0, 0, -5})
	if err != nil {
		t.Fatal(err)
	}
	fig := eyeCube(t, mathutil.Vec3{}, Color{}, Color{R: 1, G: 1, B: 1})
	lights := &Lights{
		Point: []PointLight{{
			// World (0,0,4), between the camera at z=5 and the cube.
			Point:        eye.MulPoint(mathutil.Vec3{0, 0, 4}),
			Diffuse:      Color{R: 1, G: 1, B: 1},
			SpotAngleCos: 0,
		}},
		Shadows:    true,
		ShadowMask: 400,
		Eye:        eye,
		InvEye:     inv,
	}
	lights.ZFigures = NewZBufferFigures([]TriangleFigure{fig})

	img, err := Draw([]TriangleFigure{fig}, lights, 100, Color{B: 1})
	if err != nil {
		t.Fatal(err)
	}
	// The visible front face spans nearly the whole image; none of its
	// interior may be black (shadowed with zero ambient).
	for y := 10; y <= 90; y++ {
		for x := 10; x <= 90; x++ {
			if img.At(x, y) == (canvas.RGB{}) {
				t.Fatalf("pixel (%d,%d) is shadowed with the light at the camera", x, y)
			}
		}
	}
	if got := img.At(0, 0); got != (canvas.RGB{B: 255}) {
		t.Errorf("corner pixel = %v, want background", got)
	}
}

// TestShadowOccluder renders a small quad hovering over a large one with a
// point light above: the lower quad must show both lit and shadowed pixels.
func TestShadowOccluder(t *testing.T) {
	quad := func(pts [4]mathutil.Vec3, diffuse Color) TriangleFigure {
		fig := TriangleFigure{
			Points:  pts[:],
			Faces:   []Face{{A: 0, B: 1, C: 2}, {A: 0, B: 2, C: 3}},
			Diffuse: diffuse,
			Flags:   Flags{FaceNormals: true},
		}
		fig.Normals = make([]mathutil.Vec3, 2)
		for i, f := range fig.Faces {
			a, b, c := fig.Points[f.A], fig.Points[f.B], fig.Points[f.C]
			fig.Normals[i] = b.Sub(a).Cross(c.Sub(a)).Normalize()
		}
		return fig
	}

	// Directly in eye space: the camera at the origin looking down -z.
	lower := quad([4]mathutil.Vec3{
		{-3, -2, -2}, {3, -2, -2}, {3, -2, -8}, {-3, -2, -8},
	}, Color{R: 1, G: 1, B: 1})
	upper := quad([4]mathutil.Vec3{
		{-1, 0, -4}, {1, 0, -4}, {1, 0, -6}, {-1, 0, -6},
	}, Color{R: 1, G: 1, B: 1})

	figures := []TriangleFigure{lower, upper}
	lights := &Lights{
		Point: []PointLight{{
			Point:        mathutil.Vec3{0, 5, -5},
			Diffuse:      Color{R: 1, G: 1, B: 1},
			SpotAngleCos: 0,
		}},
		Shadows:    true,
		ShadowMask: 800,
		Eye:        mathutil.Mat4Identity(),
		InvEye:     mathutil.Mat4Identity(),
	}
	lights.ZFigures = NewZBufferFigures(figures)

	img, err := Draw(figures, lights, 200, Color{B: 1})
	if err != nil {
		t.Fatal(err)
	}

	shadowed, lit := 0, 0
	for y := 0; y < img.Height(); y++ {
		for x := 0; x < img.Width(); x++ {
			c := img.At(x, y)
			if c == (canvas.RGB{B: 255}) {
				continue // background
			}
			if c == (canvas.RGB{}) {
				shadowed++
			} else {
				lit++
			}
		}
	}
	if shadowed == 0 {
		t.Error("expected a shadow under the upper quad")
	}
	if lit == 0 {
		t.Error("expected lit surface outside the shadow")
	}
	if shadowed > lit {
		t.Errorf("shadow (%d px) should not dominate lit surface (%d px)", shadowed, lit)
	}
}
