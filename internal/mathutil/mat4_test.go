package mathutil

import (
	"math"
	"testing"
)

func vecNear(a, b Vec3, eps float64) bool {
	return math.Abs(a[0]-b[0]) < eps && math.Abs(a[1]-b[1]) < eps && math.Abs(a[2]-b[2]) < eps
}

func TestMat4MulIdentity(t *testing.T) {
	m := Mat4Mul(RotateX(0.3), Translate(Vec3{1, 2, 3}))
	if got := Mat4Mul(m, Mat4Identity()); got != m {
		t.Errorf("m * I = %v, want %v", got, m)
	}
	if got := Mat4Mul(Mat4Identity(), m); got != m {
		t.Errorf("I * m = %v, want %v", got, m)
	}
}

func TestComposeOrder(t *testing.T) {
	// Compose applies the rightmost matrix first: translating then scaling
	// differs from scaling then translating.
	scaleThenTranslate := Compose(Translate(Vec3{1, 0, 0}), ScaleUniform(2))
	got := scaleThenTranslate.MulPoint(Vec3{1, 0, 0})
	if !vecNear(got, Vec3{3, 0, 0}, 1e-12) {
		t.Errorf("scale-then-translate (1,0,0) = %v, want (3,0,0)", got)
	}

	translateThenScale := Compose(ScaleUniform(2), Translate(Vec3{1, 0, 0}))
	got = translateThenScale.MulPoint(Vec3{1, 0, 0})
	if !vecNear(got, Vec3{4, 0, 0}, 1e-12) {
		t.Errorf("translate-then-scale (1,0,0) = %v, want (4,0,0)", got)
	}
}

func TestRotations(t *testing.T) {
	tests := []struct {
		name string
		m    Mat4
		in   Vec3
		want Vec3
	}{
		{"RotateZ 90 x->y", RotateZ(math.Pi / 2), Vec3{1, 0, 0}, Vec3{0, 1, 0}},
		{"RotateX 90 y->z", RotateX(math.Pi / 2), Vec3{0, 1, 0}, Vec3{0, 0, 1}},
		{"RotateY 90 z->x", RotateY(math.Pi / 2), Vec3{0, 0, 1}, Vec3{1, 0, 0}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.m.MulPoint(tc.in); !vecNear(got, tc.want, 1e-12) {
				t.Errorf("got %v, want %v", got, tc.want)
			}
		})
	}
}

func TestRotationTransposeIsInverse(t *testing.T) {
	r := Compose(RotateZ(0.7), RotateY(-1.2), RotateX(2.1))
	if !Mat4Mul(r, r.Transpose()).IsIdentity() {
		t.Error("r * r^T should be identity for a pure rotation")
	}
}

func TestMulDirIgnoresTranslation(t *testing.T) {
	m := Translate(Vec3{5, 6, 7})
	if got := m.MulDir(Vec3{1, 2, 3}); !vecNear(got, Vec3{1, 2, 3}, 1e-12) {
		t.Errorf("MulDir through translation = %v, want (1,2,3)", got)
	}
}

func TestVec3Ops(t *testing.T) {
	a := Vec3{1, 2, 3}
	b := Vec3{4, 5, 6}
	if got := a.Cross(b); !vecNear(got, Vec3{-3, 6, -3}, 1e-12) {
		t.Errorf("cross = %v", got)
	}
	if got := a.Dot(b); got != 32 {
		t.Errorf("dot = %v, want 32", got)
	}
	if got := (Vec3{3, 0, 4}).Len(); got != 5 {
		t.Errorf("len = %v, want 5", got)
	}
	if got := (Vec3{0, 0, 9}).Normalize(); !vecNear(got, Vec3{0, 0, 1}, 1e-12) {
		t.Errorf("normalize = %v", got)
	}
	if (Vec3{}).Normalize() != (Vec3{}) {
		t.Error("normalizing zero vector should stay zero")
	}
}
