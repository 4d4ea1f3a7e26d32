package lsystem

import (
	"math"
	"testing"
)

const kochRules = `
alphabet = F
draw = F
angle = 60
startingAngle = 0
initiator = F
iterations = 3

[Rules]
F = F+F--F+F
`

func TestKochCurve(t *testing.T) {
	sys, err := LoadString(kochRules)
	if err != nil {
		t.Fatal(err)
	}
	segments := sys.Expand2D()

	// Depth 3 of F -> F+F--F+F yields 4^3 unit segments.
	if len(segments) != 64 {
		t.Fatalf("%d segments, want 64", len(segments))
	}

	// The curve starts at the origin and ends at (3^3, 0).
	first := segments[0].A
	last := segments[len(segments)-1].B
	if math.Abs(first[0]) > 1e-9 || math.Abs(first[1]) > 1e-9 {
		t.Errorf("curve starts at %v, want origin", first)
	}
	if math.Abs(last[0]-27) > 1e-9 || math.Abs(last[1]) > 1e-9 {
		t.Errorf("curve ends at %v, want (27, 0)", last)
	}

	// The Koch bumps point up: no endpoint dips below the baseline and the
	// central bump reaches the analytic apex height 27*sqrt(3)/6.
	maxY := 0.0
	for _, s := range segments {
		for _, p := range [2][2]float64{s.A, s.B} {
			if p[1] < -1e-9 {
				t.Fatalf("segment endpoint %v below the baseline", p)
			}
			if p[1] > maxY {
				maxY = p[1]
			}
		}
	}
	apex := 27 * math.Sqrt(3) / 6
	if maxY < apex-1e-9 {
		t.Errorf("max height %v, want at least the apex %v", maxY, apex)
	}
}

func TestStackCommands(t *testing.T) {
	sys, err := LoadString(`
alphabet = F, X
draw = F
angle = 90
startingAngle = 0
initiator = F(+F)F
iterations = 0
`)
	if err != nil {
		t.Fatal(err)
	}
	segments := sys.Expand2D()
	if len(segments) != 3 {
		t.Fatalf("%d segments, want 3", len(segments))
	}
	// After the bracket, the turtle resumes from the saved state: the third
	// segment continues along +x from (1,0) to (2,0).
	last := segments[2]
	if math.Abs(last.A[0]-1) > 1e-9 || math.Abs(last.B[0]-2) > 1e-9 || math.Abs(last.B[1]) > 1e-9 {
		t.Errorf("post-bracket segment = %v -> %v, want (1,0) -> (2,0)", last.A, last.B)
	}
	// The bracketed segment went up.
	up := segments[1]
	if math.Abs(up.B[1]-1) > 1e-9 {
		t.Errorf("bracketed segment ends at %v, want y=1", up.B)
	}
}

func TestNonDrawingSymbol(t *testing.T) {
	sys, err := LoadString(`
alphabet = F, X
draw = F
angle = 90
startingAngle = 0
initiator = FXF
iterations = 0
`)
	if err != nil {
		t.Fatal(err)
	}
	segments := sys.Expand2D()
	// X neither draws nor moves.
	if len(segments) != 2 {
		t.Fatalf("%d segments, want 2", len(segments))
	}
	if math.Abs(segments[1].A[0]-1) > 1e-9 {
		t.Errorf("second segment starts at %v, want x=1", segments[1].A)
	}
}

func TestExpand3DPitch(t *testing.T) {
	sys, err := LoadString(`
alphabet = F
draw = F
angle = 90
startingAngle = 0
initiator = F^F
iterations = 0
`)
	if err != nil {
		t.Fatal(err)
	}
	segments := sys.Expand3D()
	if len(segments) != 2 {
		t.Fatalf("%d segments, want 2", len(segments))
	}
	// After pitching up 90 degrees the second segment runs along +z.
	b := segments[1].B.Sub(segments[1].A)
	if math.Abs(b[2]-1) > 1e-9 || math.Abs(b[0]) > 1e-9 {
		t.Errorf("pitched segment direction = %v, want (0,0,1)", b)
	}
}

func TestLoadErrors(t *testing.T) {
	cases := []struct {
		name string
		text string
	}{
		{"missing alphabet", "angle = 60\ninitiator = F\niterations = 1"},
		{"missing initiator", "alphabet = F\nangle = 60\niterations = 1"},
		{"rule outside alphabet", "alphabet = F\ndraw = F\nangle = 60\ninitiator = F\niterations = 1\n[Rules]\nX = F"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := LoadString(tc.text); err == nil {
				t.Error("expected an error")
			}
		})
	}
}
