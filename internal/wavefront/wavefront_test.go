package wavefront

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestParseOBJTriangles(t *testing.T) {
	obj := `
# simple quad
v 0 0 0
v 1 0 0
v 1 1 0
v 0 1 0
f 1 2 3 4
`
	shape, _, _, err := parseOBJ(strings.NewReader(obj))
	if err != nil {
		t.Fatal(err)
	}
	if len(shape.Points) != 4 {
		t.Errorf("%d points, want 4", len(shape.Points))
	}
	// A quad triangulates into a fan of two triangles.
	if len(shape.Faces) != 2 {
		t.Fatalf("%d faces, want 2", len(shape.Faces))
	}
	if shape.Faces[0].A != 0 || shape.Faces[0].B != 1 || shape.Faces[0].C != 2 {
		t.Errorf("first face = %v", shape.Faces[0])
	}
	if shape.Faces[1].A != 0 || shape.Faces[1].B != 2 || shape.Faces[1].C != 3 {
		t.Errorf("second face = %v", shape.Faces[1])
	}
	if shape.HasUVs || shape.HasNormals {
		t.Error("plain vertices should not report UVs or normals")
	}
}

func TestParseOBJTriplets(t *testing.T) {
	obj := `
v 0 0 0
v 1 0 0
v 0 1 0
vt 0 0
vt 1 0
vt 0 1
vn 0 0 1
f 1/1/1 2/2/1 3/3/1
f 1/1/1 2/2/1 3/3/1
`
	shape, _, _, err := parseOBJ(strings.NewReader(obj))
	if err != nil {
		t.Fatal(err)
	}
	// Identical triples are shared between faces.
	if len(shape.Points) != 3 {
		t.Errorf("%d points, want 3 (triples deduplicated)", len(shape.Points))
	}
	if !shape.HasUVs || !shape.HasNormals {
		t.Error("triplet faces should report UVs and normals")
	}
	if shape.UVs[1][0] != 1 {
		t.Errorf("uv[1] = %v, want (1,0)", shape.UVs[1])
	}
	if shape.Normals[0][2] != 1 {
		t.Errorf("normal[0] = %v, want (0,0,1)", shape.Normals[0])
	}
}

func TestParseOBJNormalOnly(t *testing.T) {
	obj := `
v 0 0 0
v 1 0 0
v 0 1 0
vn 0 0 1
f 1//1 2//1 3//1
`
	shape, _, _, err := parseOBJ(strings.NewReader(obj))
	if err != nil {
		t.Fatal(err)
	}
	if shape.HasUVs {
		t.Error("v//vn faces should not report UVs")
	}
	if !shape.HasNormals {
		t.Error("v//vn faces should report normals")
	}
}

// TestParseOBJNegativeIndices verifies relative (negative) indices count
// backwards from the current end of each list.
func TestParseOBJNegativeIndices(t *testing.T) {
	obj := `
v 0 0 0
v 1 0 0
v 0 1 0
f -3 -2 -1
`
	shape, _, _, err := parseOBJ(strings.NewReader(obj))
	if err != nil {
		t.Fatal(err)
	}
	if len(shape.Faces) != 1 {
		t.Fatalf("%d faces, want 1", len(shape.Faces))
	}
	if shape.Points[shape.Faces[0].C][1] != 1 {
		t.Errorf("last vertex = %v, want (0,1,0)", shape.Points[shape.Faces[0].C])
	}
}

func TestParseOBJErrors(t *testing.T) {
	cases := []struct {
		name string
		obj  string
	}{
		{"index zero", "v 0 0 0\nf 0 0 0"},
		{"index out of range", "v 0 0 0\nf 1 2 3"},
		{"short face", "v 0 0 0\nv 1 0 0\nf 1 2"},
		{"bad vertex", "v 0 zero 0"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, _, _, err := parseOBJ(strings.NewReader(tc.obj)); err == nil {
				t.Error("expected an error")
			}
		})
	}
}

func TestLoadWithMTL(t *testing.T) {
	dir := t.TempDir()
	mtl := `
newmtl shiny
Ka 0.1 0.2 0.3
Kd 0.4 0.5 0.6
Ks 0.7 0.8 0.9
Ns 25
`
	obj := `
mtllib mat.mtl
usemtl shiny
v 0 0 0
v 1 0 0
v 0 1 0
f 1 2 3
`
	if err := os.WriteFile(filepath.Join(dir, "mat.mtl"), []byte(mtl), 0644); err != nil {
		t.Fatal(err)
	}
	objPath := filepath.Join(dir, "model.obj")
	if err := os.WriteFile(objPath, []byte(obj), 0644); err != nil {
		t.Fatal(err)
	}

	shape, mat, err := Load(objPath)
	if err != nil {
		t.Fatal(err)
	}
	if len(shape.Faces) != 1 {
		t.Errorf("%d faces, want 1", len(shape.Faces))
	}
	if mat.Ambient.R != 0.1 {
		t.Errorf("ambient = %v", mat.Ambient)
	}
	if mat.Diffuse.G != 0.5 {
		t.Errorf("diffuse = %v", mat.Diffuse)
	}
	if mat.Specular.B != 0.9 {
		t.Errorf("specular = %v", mat.Specular)
	}
	if mat.Reflection != 25 {
		t.Errorf("reflection = %v, want 25", mat.Reflection)
	}
}
