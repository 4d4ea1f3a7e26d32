package render

import (
	"math"
	"testing"

	"cg-raster/internal/mathutil"
)

func TestZBufferReplace(t *testing.T) {
	z, err := NewZBuffer(4, 4)
	if err != nil {
		t.Fatal(err)
	}
	if !math.IsInf(z.At(1, 1), 1) {
		t.Fatal("fresh buffer should be +Inf")
	}
	if !z.Replace(1, 1, -0.5) {
		t.Error("first write should replace")
	}
	if z.Replace(1, 1, -0.5) {
		t.Error("equal value should not replace (first writer wins)")
	}
	if z.Replace(1, 1, -0.4) {
		t.Error("larger 1/z (farther) should not replace")
	}
	if !z.Replace(1, 1, -0.6) {
		t.Error("smaller 1/z (closer) should replace")
	}
	if got := z.At(1, 1); got != -0.6 {
		t.Errorf("stored %v, want -0.6", got)
	}
	if !math.IsInf(z.At(-1, 0), 1) || !math.IsInf(z.At(0, 99), 1) {
		t.Error("out-of-bounds reads should be +Inf")
	}
}

// TestTriangleDepthInterpolation checks that every covered pixel stores the
// plane-interpolated 1/z at its center, within 1e-9 relative.
func TestTriangleDepthInterpolation(t *testing.T) {
	const size = 64
	z, err := NewZBuffer(size, size)
	if err != nil {
		t.Fatal(err)
	}

	// A tilted triangle well in front of the camera.
	a := mathutil.Vec3{-1, -1, -3}
	b := mathutil.Vec3{1.2, -0.8, -5}
	c := mathutil.Vec3{0, 1.1, -4}

	d := 20.0
	offset := mathutil.Vec2{32, 32}

	covered := 0
	z.Triangle(a, b, c, d, offset, 1, func(x, y int) { covered++ })
	if covered == 0 {
		t.Fatal("triangle covered no pixels")
	}

	// The plane through the three points: 1/z is affine in screen space.
	// Recover it independently from the plane equation n . p = n . a.
	n := b.Sub(a).Cross(c.Sub(a))
	nDotA := n.Dot(a)

	checked := 0
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			stored := z.At(x, y)
			if math.IsInf(stored, 1) {
				continue
			}
			// Unproject the pixel center onto the plane: the eye ray through
			// pixel (x, y) is (u, v, -1)*t with u = (x-ox)/d, v = (y-oy)/d.
			u := (float64(x) - offset[0]) / d
			v := (float64(y) - offset[1]) / d
			// n . (u, v, -1) * t = n . a  =>  t = nDotA / n.(u,v,-1)
			tScale := nDotA / (n[0]*u + n[1]*v - n[2])
			wantInvZ := 1 / (-tScale)
			if rel := math.Abs((stored - wantInvZ) / wantInvZ); rel > 1e-9 {
				t.Fatalf("pixel (%d,%d): 1/z = %v, want %v (rel err %g)", x, y, stored, wantInvZ, rel)
			}
			checked++
		}
	}
	if checked != covered {
		t.Errorf("checked %d pixels, callback reported %d", checked, covered)
	}
}

func TestTaggedZBuffer(t *testing.T) {
	z, err := NewTaggedZBuffer(32, 32)
	if err != nil {
		t.Fatal(err)
	}
	if _, _, _, ok := z.Get(5, 5); ok {
		t.Error("unwritten pixel should be invalid")
	}

	a := mathutil.Vec3{-1, -1, -4}
	b := mathutil.Vec3{1, -1, -4}
	c := mathutil.Vec3{0, 1, -4}
	z.Triangle(a, b, c, 10, mathutil.Vec2{16, 16}, 7, 42, ZBias)

	found := false
	for y := 0; y < 32 && !found; y++ {
		for x := 0; x < 32 && !found; x++ {
			if figID, triID, invZ, ok := z.Get(x, y); ok {
				found = true
				if figID != 7 || triID != 42 {
					t.Errorf("ids = (%d, %d), want (7, 42)", figID, triID)
				}
				if math.Abs(invZ-(-0.25*ZBias)) > 1e-9 {
					t.Errorf("1/z = %v, want %v", invZ, -0.25*ZBias)
				}
			}
		}
	}
	if !found {
		t.Fatal("no tagged pixels written")
	}
}

// TestTriangleNearerWins rasterizes two overlapping triangles and checks the
// nearer one owns the overlap.
func TestTriangleNearerWins(t *testing.T) {
	z, err := NewTaggedZBuffer(32, 32)
	if err != nil {
		t.Fatal(err)
	}
	d := 10.0
	off := mathutil.Vec2{16, 16}

	far := [3]mathutil.Vec3{{-2, -2, -8}, {2, -2, -8}, {0, 2, -8}}
	near := [3]mathutil.Vec3{{-1, -1, -4}, {1, -1, -4}, {0, 1, -4}}

	z.Triangle(far[0], far[1], far[2], d, off, 0, 0, ZBias)
	z.Triangle(near[0], near[1], near[2], d, off, 1, 0, ZBias)

	if figID, _, _, ok := z.Get(16, 16); !ok || figID != 1 {
		t.Errorf("center pixel owner = %v (ok=%v), want figure 1", figID, ok)
	}
}
