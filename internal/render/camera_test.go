package render

import (
	"math"
	"testing"

	"cg-raster/internal/mathutil"
)

func vecNear(a, b mathutil.Vec3, eps float64) bool {
	return math.Abs(a[0]-b[0]) < eps && math.Abs(a[1]-b[1]) < eps && math.Abs(a[2]-b[2]) < eps
}

func TestLookDirection(t *testing.T) {
	tests := []struct {
		name string
		pos  mathutil.Vec3
		dir  mathutil.Vec3
	}{
		{"on +z looking at origin", mathutil.Vec3{0, 0, 5}, mathutil.Vec3{0, 0, -5}},
		{"diagonal", mathutil.Vec3{3, -2, 7}, mathutil.Vec3{-3, 2, -7}},
		{"off-center direction", mathutil.Vec3{1, 1, 1}, mathutil.Vec3{0.5, -2, -1}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			eye, inv, err := LookDirection(tc.pos, tc.dir)
			if err != nil {
				t.Fatal(err)
			}

			// Forward times inverse is the identity.
			if !mathutil.Mat4Mul(eye, inv).IsIdentity() {
				t.Error("eye * inv should be identity")
			}

			// The camera position maps to the eye-space origin.
			if got := eye.MulPoint(tc.pos); !vecNear(got, mathutil.Vec3{}, 1e-9) {
				t.Errorf("pos maps to %v, want origin", got)
			}

			// A point straight ahead lands on the -z axis at its distance.
			ahead := tc.pos.Add(tc.dir)
			want := mathutil.Vec3{0, 0, -tc.dir.Len()}
			if got := eye.MulPoint(ahead); !vecNear(got, want, 1e-9) {
				t.Errorf("pos+dir maps to %v, want %v", got, want)
			}
		})
	}
}

func TestLookDirectionZeroDir(t *testing.T) {
	if _, _, err := LookDirection(mathutil.Vec3{1, 2, 3}, mathutil.Vec3{}); err == nil {
		t.Error("zero direction should fail")
	}
}

func TestProjectionRoundTrip(t *testing.T) {
	d := 190.0
	offset := mathutil.Vec2{50, 40}
	points := []mathutil.Vec3{
		{0, 0, -1},
		{1, 2, -3},
		{-0.5, 0.25, -10},
	}
	for _, p := range points {
		px := ProjectTo(p, d, offset)
		// Invert: x = (x'-dx) * -z / d.
		back := mathutil.Vec3{
			(px[0] - offset[0]) * -p[2] / d,
			(px[1] - offset[1]) * -p[2] / d,
			p[2],
		}
		if !vecNear(back, p, 1e-9) {
			t.Errorf("round trip of %v gave %v", p, back)
		}
	}
}

func TestImageParams(t *testing.T) {
	r := Rect{Min: mathutil.Vec2{-1, -1}, Max: mathutil.Vec2{1, 1}}
	w, h, d, off := ImageParams(r, 100)
	if w != 100 || h != 100 {
		t.Fatalf("dims = %dx%d, want 100x100", w, h)
	}
	// All four corners scale into [0, w] x [0, h].
	for _, c := range []mathutil.Vec2{{-1, -1}, {1, -1}, {-1, 1}, {1, 1}} {
		px := c.Scale(d).Add(off)
		if px[0] < 0 || px[0] > float64(w) || px[1] < 0 || px[1] > float64(h) {
			t.Errorf("corner %v maps outside image: %v", c, px)
		}
	}

	// Degenerate bounds give an empty image.
	if w, h, _, _ := ImageParams(EmptyRect(), 100); w != 0 || h != 0 {
		t.Errorf("empty rect gave %dx%d", w, h)
	}
	point := Rect{Min: mathutil.Vec2{1, 1}, Max: mathutil.Vec2{1, 1}}
	if w, h, _, _ := ImageParams(point, 100); w != 0 || h != 0 {
		t.Errorf("degenerate rect gave %dx%d", w, h)
	}
}
