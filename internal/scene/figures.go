package scene

import (
	"fmt"
	"math"
	"path/filepath"
	"strings"

	"cg-raster/internal/config"
	"cg-raster/internal/gltfmodel"
	"cg-raster/internal/lsystem"
	"cg-raster/internal/mathutil"
	"cg-raster/internal/render"
	"cg-raster/internal/shapes"
	"cg-raster/internal/texture"
	"cg-raster/internal/wavefront"
)

// figureTransform builds the model-to-eye matrix from the figure's keys:
// scale, then the three rotations, then the translation, then the view.
func figureTransform(sec *config.Section, cam camera) (mathutil.Mat4, error) {
	rotX, err := sec.Float("rotateX")
	if err != nil {
		return mathutil.Mat4{}, err
	}
	rotY, err := sec.Float("rotateY")
	if err != nil {
		return mathutil.Mat4{}, err
	}
	rotZ, err := sec.Float("rotateZ")
	if err != nil {
		return mathutil.Mat4{}, err
	}
	center, err := sec.Tuple("center", 3)
	if err != nil {
		return mathutil.Mat4{}, err
	}
	scale, err := sec.Float("scale")
	if err != nil {
		return mathutil.Mat4{}, err
	}
	deg := math.Pi / 180
	return mathutil.Compose(
		cam.eye,
		mathutil.Translate(mathutil.Vec3{center[0], center[1], center[2]}),
		mathutil.RotateZ(rotZ*deg),
		mathutil.RotateY(rotY*deg),
		mathutil.RotateX(rotX*deg),
		mathutil.ScaleUniform(scale),
	), nil
}

func sectionColor(sec *config.Section, key string) (render.Color, error) {
	t, err := sec.Tuple(key, 3)
	if err != nil {
		return render.Color{}, err
	}
	return render.Color{R: t[0], G: t[1], B: t[2]}, nil
}

// loadedShape is the solid form of a figure type. Wavefront and glTF
// figures come with UVs, normals and possibly a texture of their own.
type loadedShape struct {
	shapes.FaceShape
	uvs     []mathutil.Vec2
	normals []mathutil.Vec3
	texture *render.Texture
	mat     *wavefront.Material
}

// faceShape builds the solid form of a figure type.
func faceShape(sec *config.Section, typ string, texCache *texture.Cache, scenePath string) (loadedShape, error) {
	switch typ {
	case "Cube":
		return loadedShape{FaceShape: shapes.Cube()}, nil
	case "Tetrahedron":
		return loadedShape{FaceShape: shapes.Tetrahedron()}, nil
	case "Octahedron":
		return loadedShape{FaceShape: shapes.Octahedron()}, nil
	case "Icosahedron":
		return loadedShape{FaceShape: shapes.Icosahedron()}, nil
	case "Dodecahedron":
		return loadedShape{FaceShape: shapes.Dodecahedron()}, nil
	case "BuckyBall":
		return loadedShape{FaceShape: shapes.Buckyball()}, nil
	case "Cylinder":
		n, err := sec.Int("n")
		if err != nil {
			return loadedShape{}, err
		}
		height, err := sec.Float("height")
		if err != nil {
			return loadedShape{}, err
		}
		return loadedShape{FaceShape: shapes.Cylinder(n, height)}, nil
	case "Cone":
		n, err := sec.Int("n")
		if err != nil {
			return loadedShape{}, err
		}
		height, err := sec.Float("height")
		if err != nil {
			return loadedShape{}, err
		}
		return loadedShape{FaceShape: shapes.Cone(n, height)}, nil
	case "Sphere":
		n, err := sec.Int("n")
		if err != nil {
			return loadedShape{}, err
		}
		return loadedShape{FaceShape: shapes.Sphere(n)}, nil
	case "Torus":
		return torusShape(sec)
	case "MengerSponge":
		n, err := sec.Int("nrIterations")
		if err != nil {
			return loadedShape{}, err
		}
		return loadedShape{FaceShape: shapes.MengerSponge(n)}, nil
	case "Wavefront", "ObjFile":
		return wavefrontShape(sec, texCache, scenePath)
	case "GLTF":
		return gltfShape(sec, scenePath)
	}
	return loadedShape{}, fmt.Errorf("%w: unknown solid figure type %q", config.ErrConfig, typ)
}

func torusShape(sec *config.Section) (loadedShape, error) {
	bigR, err := sec.Float("R")
	if err != nil {
		return loadedShape{}, err
	}
	smallR, err := sec.Float("r")
	if err != nil {
		return loadedShape{}, err
	}
	n, err := sec.Int("n")
	if err != nil {
		return loadedShape{}, err
	}
	m, err := sec.Int("m")
	if err != nil {
		return loadedShape{}, err
	}
	return loadedShape{FaceShape: shapes.Torus(bigR, smallR, n, m)}, nil
}

func wavefrontShape(sec *config.Section, texCache *texture.Cache, scenePath string) (loadedShape, error) {
	file, err := sec.String("file")
	if err != nil {
		return loadedShape{}, err
	}
	shape, mat, err := wavefront.Load(resolvePath(scenePath, file))
	if err != nil {
		return loadedShape{}, err
	}
	out := loadedShape{
		FaceShape: shapes.FaceShape{Points: shape.Points, Faces: shape.Faces},
		mat:       &mat,
	}
	if shape.HasUVs {
		out.uvs = shape.UVs
	}
	if shape.HasNormals {
		out.normals = shape.Normals
	}
	if mat.TexturePath != "" {
		if img := texCache.Resolve(mat.TexturePath); img != nil {
			out.texture = render.NewTexture(img)
		}
	}
	return out, nil
}

func gltfShape(sec *config.Section, scenePath string) (loadedShape, error) {
	file, err := sec.String("file")
	if err != nil {
		return loadedShape{}, err
	}
	shape, err := gltfmodel.Load(resolvePath(scenePath, file))
	if err != nil {
		return loadedShape{}, err
	}
	out := loadedShape{
		FaceShape: shapes.FaceShape{Points: shape.Points, Faces: shape.Faces},
	}
	if shape.HasUVs {
		out.uvs = shape.UVs
	}
	if shape.HasNormals {
		out.normals = shape.Normals
	}
	if shape.Texture != nil {
		out.texture = render.NewTexture(shape.Texture)
	}
	return out, nil
}

// edgeShape builds the wireframe form of a figure type.
func edgeShape(sec *config.Section, typ string, scenePath string) (shapes.EdgeShape, error) {
	switch typ {
	case "Cube":
		return shapes.CubeEdges(), nil
	case "Tetrahedron":
		return shapes.TetrahedronEdges(), nil
	case "Octahedron":
		return shapes.OctahedronEdges(), nil
	case "Icosahedron":
		return shapes.IcosahedronEdges(), nil
	case "Dodecahedron":
		return shapes.DodecahedronEdges(), nil
	case "BuckyBall":
		return shapes.BuckyballEdges(), nil
	case "Cylinder":
		n, err := sec.Int("n")
		if err != nil {
			return shapes.EdgeShape{}, err
		}
		height, err := sec.Float("height")
		if err != nil {
			return shapes.EdgeShape{}, err
		}
		return shapes.CylinderEdges(n, height), nil
	case "Cone":
		n, err := sec.Int("n")
		if err != nil {
			return shapes.EdgeShape{}, err
		}
		height, err := sec.Float("height")
		if err != nil {
			return shapes.EdgeShape{}, err
		}
		return shapes.ConeEdges(n, height), nil
	case "Sphere":
		n, err := sec.Int("n")
		if err != nil {
			return shapes.EdgeShape{}, err
		}
		return shapes.SphereEdges(n), nil
	case "Torus":
		bigR, err := sec.Float("R")
		if err != nil {
			return shapes.EdgeShape{}, err
		}
		smallR, err := sec.Float("r")
		if err != nil {
			return shapes.EdgeShape{}, err
		}
		n, err := sec.Int("n")
		if err != nil {
			return shapes.EdgeShape{}, err
		}
		m, err := sec.Int("m")
		if err != nil {
			return shapes.EdgeShape{}, err
		}
		return shapes.TorusEdges(bigR, smallR, n, m), nil
	case "MengerSponge":
		n, err := sec.Int("nrIterations")
		if err != nil {
			return shapes.EdgeShape{}, err
		}
		return shapes.MengerSpongeEdges(n), nil
	case "3DLSystem":
		return lSystem3DEdges(sec, scenePath)
	case "Wavefront", "ObjFile", "GLTF":
		// Wireframe of a loaded model: the unique edges of its faces.
		ls, err := faceShape(sec, typ, texture.NewCache(), scenePath)
		if err != nil {
			return shapes.EdgeShape{}, err
		}
		return shapes.EdgesOf(ls.FaceShape), nil
	}
	return shapes.EdgeShape{}, fmt.Errorf("%w: unknown wireframe figure type %q", config.ErrConfig, typ)
}

func lSystem3DEdges(sec *config.Section, scenePath string) (shapes.EdgeShape, error) {
	file, err := sec.String("inputfile")
	if err != nil {
		return shapes.EdgeShape{}, err
	}
	sys, err := lsystem.Load(resolvePath(scenePath, file))
	if err != nil {
		return shapes.EdgeShape{}, err
	}
	segments := sys.Expand3D()
	shape := shapes.EdgeShape{}
	for _, s := range segments {
		i := uint32(len(shape.Points))
		shape.Points = append(shape.Points, s.A, s.B)
		shape.Edges = append(shape.Edges, render.Edge{A: i, B: i + 1})
	}
	return shape, nil
}

// lineFigure parses one [FigureN] section for the wireframe modes.
func lineFigure(sec *config.Section, cam camera, scenePath string) ([]render.LineFigure, error) {
	typ, err := sec.String("type")
	if err != nil {
		return nil, err
	}
	color, err := sectionColor(sec, "color")
	if err != nil {
		return nil, err
	}
	mat, err := figureTransform(sec, cam)
	if err != nil {
		return nil, err
	}

	var shape shapes.EdgeShape
	switch {
	case typ == "LineDrawing":
		shape, err = lineDrawing(sec)
	case strings.HasPrefix(typ, "Fractal"):
		shape, err = edgeShape(sec, strings.TrimPrefix(typ, "Fractal"), scenePath)
		if err == nil {
			shape, err = fractalEdges(sec, shape)
		}
	case strings.HasPrefix(typ, "Thick"):
		shape, err = edgeShape(sec, strings.TrimPrefix(typ, "Thick"), scenePath)
		if err == nil {
			shape, err = thickenEdges(sec, shape)
		}
	default:
		shape, err = edgeShape(sec, typ, scenePath)
	}
	if err != nil {
		return nil, err
	}

	fig := render.LineFigure{
		Points: make([]mathutil.Vec3, len(shape.Points)),
		Edges:  shape.Edges,
		Color:  color,
	}
	for i, p := range shape.Points {
		fig.Points[i] = mat.MulPoint(p)
	}
	return []render.LineFigure{fig}, nil
}

// lineDrawing reads a custom point/line list figure.
func lineDrawing(sec *config.Section) (shapes.EdgeShape, error) {
	nrPoints, err := sec.Int("nrPoints")
	if err != nil {
		return shapes.EdgeShape{}, err
	}
	nrLines, err := sec.Int("nrLines")
	if err != nil {
		return shapes.EdgeShape{}, err
	}
	var shape shapes.EdgeShape
	for i := 0; i < nrPoints; i++ {
		t, err := sec.Tuple(fmt.Sprintf("point%d", i), 3)
		if err != nil {
			return shapes.EdgeShape{}, err
		}
		shape.Points = append(shape.Points, mathutil.Vec3{t[0], t[1], t[2]})
	}
	for i := 0; i < nrLines; i++ {
		t, err := sec.IntTuple(fmt.Sprintf("line%d", i), 2)
		if err != nil {
			return shapes.EdgeShape{}, err
		}
		if t[0] < 0 || t[0] >= nrPoints || t[1] < 0 || t[1] >= nrPoints {
			return shapes.EdgeShape{}, fmt.Errorf("%w: line%d references missing point", config.ErrConfig, i)
		}
		shape.Edges = append(shape.Edges, render.Edge{A: uint32(t[0]), B: uint32(t[1])})
	}
	return shape, nil
}

func fractalEdges(sec *config.Section, shape shapes.EdgeShape) (shapes.EdgeShape, error) {
	scale, err := sec.Float("fractalScale")
	if err != nil {
		return shapes.EdgeShape{}, err
	}
	iterations, err := sec.Int("nrIterations")
	if err != nil {
		return shapes.EdgeShape{}, err
	}
	return shapes.FractalEdges(shape, scale, iterations), nil
}

func thickenEdges(sec *config.Section, shape shapes.EdgeShape) (shapes.EdgeShape, error) {
	radius, err := sec.Float("radius")
	if err != nil {
		return shapes.EdgeShape{}, err
	}
	n, err := sec.Int("n")
	if err != nil {
		return shapes.EdgeShape{}, err
	}
	m, err := sec.Int("m")
	if err != nil {
		return shapes.EdgeShape{}, err
	}
	return shapes.ThickenEdges(shape, radius, n, m), nil
}

// triangleFigure parses one [FigureN] section for the solid modes.
func triangleFigure(sec *config.Section, cam camera, lighted bool, texCache *texture.Cache, scenePath string) (render.TriangleFigure, error) {
	typ, err := sec.String("type")
	if err != nil {
		return render.TriangleFigure{}, err
	}
	mat, err := figureTransform(sec, cam)
	if err != nil {
		return render.TriangleFigure{}, err
	}

	var loaded loadedShape
	switch {
	case strings.HasPrefix(typ, "Fractal"):
		loaded, err = faceShape(sec, strings.TrimPrefix(typ, "Fractal"), texCache, scenePath)
		if err == nil {
			var scale float64
			var iterations int
			if scale, err = sec.Float("fractalScale"); err == nil {
				if iterations, err = sec.Int("nrIterations"); err == nil {
					loaded.FaceShape = shapes.FractalFaces(loaded.FaceShape, scale, iterations)
					loaded.uvs, loaded.normals = nil, nil
				}
			}
		}
	case strings.HasPrefix(typ, "Thick"):
		var edges shapes.EdgeShape
		edges, err = edgeShape(sec, strings.TrimPrefix(typ, "Thick"), scenePath)
		if err == nil {
			var radius float64
			var n, m int
			if radius, err = sec.Float("radius"); err == nil {
				if n, err = sec.Int("n"); err == nil {
					if m, err = sec.Int("m"); err == nil {
						loaded = loadedShape{FaceShape: shapes.Thicken(edges, radius, n, m)}
					}
				}
			}
		}
	default:
		loaded, err = faceShape(sec, typ, texCache, scenePath)
	}
	if err != nil {
		return render.TriangleFigure{}, err
	}

	fig := render.TriangleFigure{
		Faces: loaded.Faces,
		Flags: render.Flags{FaceNormals: true},
	}
	fig.Points = make([]mathutil.Vec3, len(loaded.Points))
	for i, p := range loaded.Points {
		fig.Points[i] = mat.MulPoint(p)
	}

	if err := figureMaterial(sec, &fig, loaded.mat, lighted); err != nil {
		return render.TriangleFigure{}, err
	}

	if lighted {
		if loaded.normals != nil {
			// Vertex normals transform by the rotation part only.
			fig.Flags.FaceNormals = false
			fig.Normals = make([]mathutil.Vec3, len(loaded.normals))
			for i, n := range loaded.normals {
				fig.Normals[i] = mat.MulDir(n).Normalize()
			}
		} else {
			fig.Normals = make([]mathutil.Vec3, len(fig.Faces))
			for i, t := range fig.Faces {
				a, b, c := fig.Points[t.A], fig.Points[t.B], fig.Points[t.C]
				fig.Normals[i] = b.Sub(a).Cross(c.Sub(a)).Normalize()
			}
		}
	}

	if loaded.uvs != nil {
		fig.UVs = loaded.uvs
		fig.Texture = loaded.texture
	}
	// A texture key on the figure overrides the model's own.
	if sec.Has("texture") && fig.UVs != nil {
		path, err := sec.String("texture")
		if err != nil {
			return render.TriangleFigure{}, err
		}
		if img := texCache.Resolve(resolvePath(scenePath, path)); img != nil {
			fig.Texture = render.NewTexture(img)
		}
	}

	if cam.frustum != nil {
		for _, p := range fig.Points {
			if !p.IsFinite() {
				return render.TriangleFigure{}, fmt.Errorf("%w: figure has non-finite geometry", config.ErrConfig)
			}
		}
		cam.frustum.Clip(&fig)
	}
	return fig, nil
}

// figureMaterial fills the figure's material from the section, falling back
// to a Wavefront material when the section doesn't specify one.
func figureMaterial(sec *config.Section, fig *render.TriangleFigure, mtl *wavefront.Material, lighted bool) error {
	if !lighted {
		c, err := sectionColor(sec, "color")
		if err != nil && mtl != nil {
			fig.Ambient = mtl.Ambient
			return nil
		}
		if err != nil {
			return err
		}
		fig.Ambient = c
		return nil
	}

	pick := func(key string, fallback render.Color) render.Color {
		if sec.Has(key) {
			if c, err := sectionColor(sec, key); err == nil {
				return c
			}
		}
		return fallback
	}
	var base wavefront.Material
	if mtl != nil {
		base = *mtl
	}
	// Some scenes give lighted figures a plain color; treat it as ambient.
	ambientFallback := base.Ambient
	if sec.Has("color") && !sec.Has("ambientReflection") {
		if c, err := sectionColor(sec, "color"); err == nil {
			ambientFallback = c
		}
	}
	fig.Ambient = pick("ambientReflection", ambientFallback)
	fig.Diffuse = pick("diffuseReflection", base.Diffuse)
	fig.Specular = pick("specularReflection", base.Specular)
	fig.Reflection = sec.FloatOr("reflectionCoefficient", base.Reflection)
	if fig.Reflection == math.Trunc(fig.Reflection) && fig.Reflection > 0 {
		fig.ReflectionInt = uint32(fig.Reflection)
	}
	return nil
}

func resolvePath(scenePath, file string) string {
	if filepath.IsAbs(file) || scenePath == "" || scenePath == "<string>" {
		return file
	}
	return filepath.Join(filepath.Dir(scenePath), file)
}
