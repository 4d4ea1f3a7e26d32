// Package wavefront parses Wavefront OBJ geometry and its MTL materials.
package wavefront

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"cg-raster/internal/mathutil"
	"cg-raster/internal/render"
)

// Material holds the subset of MTL the renderer consumes.
type Material struct {
	Ambient    render.Color
	Diffuse    render.Color
	Specular   render.Color
	Reflection float64
	// TexturePath is the first of map_Ka/map_Kd/map_Ks, resolved relative to
	// the MTL file. Empty if the material has no texture map.
	TexturePath string
}

// Shape is the parsed mesh: unique position/uv/normal triples indexed by
// triangulated faces.
type Shape struct {
	Points  []mathutil.Vec3
	UVs     []mathutil.Vec2
	Normals []mathutil.Vec3
	Faces   []render.Face
	// HasUVs / HasNormals report whether any face referenced vt / vn data.
	HasUVs     bool
	HasNormals bool
}

// Load reads an OBJ file and, if it names a material library and material,
// the material.
func Load(path string) (Shape, Material, error) {
	f, err := os.Open(path)
	if err != nil {
		return Shape{}, Material{}, fmt.Errorf("wavefront: open %s: %w", path, err)
	}
	defer f.Close()

	shape, mtllib, usemtl, err := parseOBJ(f)
	if err != nil {
		return Shape{}, Material{}, fmt.Errorf("wavefront: parse %s: %w", path, err)
	}

	var mat Material
	if mtllib != "" && usemtl != "" {
		mtlPath := filepath.Join(filepath.Dir(path), mtllib)
		mf, err := os.Open(mtlPath)
		if err != nil {
			return Shape{}, Material{}, fmt.Errorf("wavefront: open %s: %w", mtlPath, err)
		}
		defer mf.Close()
		mat, err = parseMTL(mf, usemtl)
		if err != nil {
			return Shape{}, Material{}, fmt.Errorf("wavefront: parse %s: %w", mtlPath, err)
		}
		if mat.TexturePath != "" {
			mat.TexturePath = filepath.Join(filepath.Dir(mtlPath), mat.TexturePath)
		}
	}
	return shape, mat, nil
}

// triple identifies a unique v/vt/vn combination (0-based, -1 = absent).
type triple struct {
	pi, ti, ni int
}

func parseOBJ(r io.Reader) (Shape, string, string, error) {
	var (
		positions []mathutil.Vec3
		uvs       []mathutil.Vec2
		normals   []mathutil.Vec3
		shape     Shape
		mtllib    string
		usemtl    string
	)
	triples := make(map[triple]uint32)

	// resolve turns a 1-based or negative (relative) OBJ index into 0-based.
	resolve := func(i, n int) (int, error) {
		switch {
		case i > 0:
			i--
		case i < 0:
			i = n + i
		default:
			return 0, fmt.Errorf("index 0 is invalid")
		}
		if i < 0 || i >= n {
			return 0, fmt.Errorf("index %d out of range (have %d)", i, n)
		}
		return i, nil
	}

	// intern adds the triple's attributes once and returns its point index.
	intern := func(t triple) uint32 {
		if i, ok := triples[t]; ok {
			return i
		}
		i := uint32(len(shape.Points))
		triples[t] = i
		shape.Points = append(shape.Points, positions[t.pi])
		if t.ti >= 0 {
			shape.UVs = append(shape.UVs, uvs[t.ti])
			shape.HasUVs = true
		} else {
			shape.UVs = append(shape.UVs, mathutil.Vec2{})
		}
		if t.ni >= 0 {
			shape.Normals = append(shape.Normals, normals[t.ni])
			shape.HasNormals = true
		} else {
			shape.Normals = append(shape.Normals, mathutil.Vec3{})
		}
		return i
	}

	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)
		switch fields[0] {
		case "v":
			p, err := parseVec3(fields[1:])
			if err != nil {
				return shape, "", "", fmt.Errorf("line %d: v: %w", lineNo, err)
			}
			positions = append(positions, p)
		case "vt":
			if len(fields) < 3 {
				return shape, "", "", fmt.Errorf("line %d: vt needs 2 components", lineNo)
			}
			u, err1 := strconv.ParseFloat(fields[1], 64)
			v, err2 := strconv.ParseFloat(fields[2], 64)
			if err1 != nil || err2 != nil {
				return shape, "", "", fmt.Errorf("line %d: bad vt", lineNo)
			}
			uvs = append(uvs, mathutil.Vec2{u, v})
		case "vn":
			n, err := parseVec3(fields[1:])
			if err != nil {
				return shape, "", "", fmt.Errorf("line %d: vn: %w", lineNo, err)
			}
			normals = append(normals, n)
		case "f":
			if len(fields) < 4 {
				return shape, "", "", fmt.Errorf("line %d: face needs at least 3 vertices", lineNo)
			}
			verts := make([]triple, 0, len(fields)-1)
			for _, spec := range fields[1:] {
				t, err := parseFaceVertex(spec, len(positions), len(uvs), len(normals), resolve)
				if err != nil {
					return shape, "", "", fmt.Errorf("line %d: %w", lineNo, err)
				}
				verts = append(verts, t)
			}
			// Triangulate the polygon as a fan.
			for i := 2; i < len(verts); i++ {
				shape.Faces = append(shape.Faces, render.Face{
					A: intern(verts[0]),
					B: intern(verts[i-1]),
					C: intern(verts[i]),
				})
			}
		case "mtllib":
			if len(fields) > 1 {
				mtllib = fields[1]
			}
		case "usemtl":
			if len(fields) > 1 {
				usemtl = fields[1]
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return shape, "", "", err
	}
	return shape, mtllib, usemtl, nil
}

// parseFaceVertex parses one of v, v/vt, v/vt/vn or v//vn.
func parseFaceVertex(spec string, np, nt, nn int, resolve func(int, int) (int, error)) (triple, error) {
	parts := strings.Split(spec, "/")
	t := triple{ti: -1, ni: -1}

	pi, err := strconv.Atoi(parts[0])
	if err != nil {
		return t, fmt.Errorf("bad vertex index %q", parts[0])
	}
	if t.pi, err = resolve(pi, np); err != nil {
		return t, err
	}

	if len(parts) > 1 && parts[1] != "" {
		ti, err := strconv.Atoi(parts[1])
		if err != nil {
			return t, fmt.Errorf("bad uv index %q", parts[1])
		}
		if t.ti, err = resolve(ti, nt); err != nil {
			return t, err
		}
	}
	if len(parts) > 2 && parts[2] != "" {
		ni, err := strconv.Atoi(parts[2])
		if err != nil {
			return t, fmt.Errorf("bad normal index %q", parts[2])
		}
		if t.ni, err = resolve(ni, nn); err != nil {
			return t, err
		}
	}
	return t, nil
}

func parseVec3(fields []string) (mathutil.Vec3, error) {
	if len(fields) < 3 {
		return mathutil.Vec3{}, fmt.Errorf("need 3 components")
	}
	var v mathutil.Vec3
	for i := 0; i < 3; i++ {
		f, err := strconv.ParseFloat(fields[i], 64)
		if err != nil {
			return v, fmt.Errorf("bad component %q", fields[i])
		}
		v[i] = f
	}
	return v, nil
}

func parseMTL(r io.Reader, name string) (Material, error) {
	var mat Material
	inTarget := false
	found := false

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)
		switch fields[0] {
		case "newmtl":
			inTarget = len(fields) > 1 && fields[1] == name
			if inTarget {
				found = true
			}
		case "Ka", "Kd", "Ks":
			if !inTarget {
				continue
			}
			c, err := parseVec3(fields[1:])
			if err != nil {
				return mat, fmt.Errorf("%s: %w", fields[0], err)
			}
			clr := render.Color{R: c[0], G: c[1], B: c[2]}
			switch fields[0] {
			case "Ka":
				mat.Ambient = clr
			case "Kd":
				mat.Diffuse = clr
			case "Ks":
				mat.Specular = clr
			}
		case "Ns":
			if !inTarget || len(fields) < 2 {
				continue
			}
			ns, err := strconv.ParseFloat(fields[1], 64)
			if err != nil {
				return mat, fmt.Errorf("Ns: %w", err)
			}
			mat.Reflection = ns
		case "map_Ka", "map_Kd", "map_Ks":
			if inTarget && mat.TexturePath == "" && len(fields) > 1 {
				mat.TexturePath = fields[len(fields)-1]
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return mat, err
	}
	if !found {
		return mat, fmt.Errorf("material %q not found", name)
	}
	return mat, nil
}
