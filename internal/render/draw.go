package render

import (
	"math"

	"cg-raster/internal/canvas"
	"cg-raster/internal/mathutil"
)

// ZShadowBias compensates depth quantization when comparing a surface against
// a shadow map.
const ZShadowBias = 1.5e-6

// Draw rasterizes the figures with depth buffering and shades every covered
// pixel. Figures and lights are in eye space; Draw consumes both (figure
// ambient is premultiplied, point light caches are filled).
//
// An empty figure set or degenerate projected bounds yield an empty image.
func Draw(figures []TriangleFigure, lights *Lights, size int, background Color) (*canvas.Image, error) {
	if len(figures) == 0 {
		return canvas.New(0, 0, background.RGB8())
	}

	if lights.Shadows {
		if err := shadowPrepass(lights); err != nil {
			return nil, err
		}
	}

	// Fold the global ambient into each figure once.
	for i := range figures {
		figures[i].Ambient = figures[i].Ambient.Mul(lights.Ambient)
	}

	bounds := EmptyRect()
	for i := range figures {
		bounds = bounds.Union(figures[i].BoundsProjected())
	}

	width, height, d, offset := ImageParams(bounds, size)
	img, err := canvas.New(width, height, background.RGB8())
	if err != nil {
		return nil, err
	}
	if img.Empty() {
		return img, nil
	}

	zbuf, err := NewTaggedZBuffer(width, height)
	if err != nil {
		return nil, err
	}

	// Fill the depth buffer, tagging pixels with (figure, triangle).
	for i := range figures {
		f := &figures[i]
		for k := range f.Faces {
			t := f.Faces[k]
			a, b, c := f.Points[t.A], f.Points[t.B], f.Points[t.C]
			if f.Flags.CanCull && faceNormal(f, k, a, b, c).Dot(a) > 0 {
				continue
			}
			zbuf.Triangle(a, b, c, d, offset, uint16(i), uint32(k), ZBias)
		}
	}

	// Shade every covered pixel.
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			figID, triID, invZ, ok := zbuf.Get(x, y)
			if !ok {
				continue
			}
			f := &figures[figID]

			// Invert the projection: x' = x/-z*d + dx, so x = (x'-dx)*-z/d.
			point := mathutil.Vec3{
				(float64(x) - offset[0]) / (d * -invZ),
				(float64(y) - offset[1]) / (d * -invZ),
				1 / invZ,
			}
			camDir := point.Normalize()

			n := shadingNormal(f, int(triID), point)
			if n.Dot(camDir) > 0 {
				n = n.Neg()
			}

			color := f.Ambient
			for l := range lights.Directional {
				color = color.Add(directionalLight(f, &lights.Directional[l], n, camDir))
			}
			for l := range lights.Point {
				color = color.Add(pointLight(f, &lights.Point[l], point, lights.Shadows, n, camDir))
			}

			if f.Texture != nil {
				color = color.Mul(textureColor(f, int(triID), point))
			}

			img.Set(x, y, color.RGB8())
		}
	}

	return img, nil
}

// faceNormal returns the normal used for culling: the stored face normal when
// the figure has them, else the geometric one.
func faceNormal(f *TriangleFigure, k int, a, b, c mathutil.Vec3) mathutil.Vec3 {
	if f.Flags.FaceNormals && k < len(f.Normals) {
		return f.Normals[k]
	}
	return b.Sub(a).Cross(c.Sub(a))
}

// shadingNormal returns the surface normal at an eye-space point of the given
// triangle: the face normal for flat shading, or the barycentric blend of the
// point normals for smooth shading.
func shadingNormal(f *TriangleFigure, tri int, point mathutil.Vec3) mathutil.Vec3 {
	if len(f.Normals) == 0 {
		return mathutil.Vec3{}
	}
	if f.Flags.FaceNormals {
		return f.Normals[tri]
	}
	t := f.Faces[tri]
	a, b, c := f.Points[t.A], f.Points[t.B], f.Points[t.C]
	u, v := barycentric(a, b, c, point)
	return interpolate3(f.Normals[t.A], f.Normals[t.B], f.Normals[t.C], u, v).Normalize()
}

// specular evaluates the reflected-ray specular term, or black if the ray
// points away from the camera.
func specular(f *TriangleFigure, light Color, dot float64, n, camDir, direction mathutil.Vec3) Color {
	r := n.Scale(2 * dot).Add(direction)
	rdot := r.Dot(camDir.Neg())
	if rdot <= 0 {
		return Color{}
	}
	var v float64
	if f.ReflectionInt != 0 {
		v = powUint(rdot, f.ReflectionInt)
	} else {
		v = math.Pow(rdot, f.Reflection)
	}
	return f.Specular.Mul(light).Scale(v)
}

func directionalLight(f *TriangleFigure, light *DirectionalLight, n, camDir mathutil.Vec3) Color {
	dot := n.Dot(light.Direction.Neg())
	if dot <= 0 {
		return Color{}
	}
	color := f.Diffuse.Mul(light.Diffuse).Scale(dot)
	return color.Add(specular(f, light.Specular, dot, n, camDir, light.Direction))
}

func pointLight(f *TriangleFigure, light *PointLight, point mathutil.Vec3, shadows bool, n, camDir mathutil.Vec3) Color {
	direction := point.Sub(light.Point).Normalize()
	dot := n.Dot(direction.Neg())
	if dot <= 0 {
		return Color{}
	}
	if shadows && shadowed(light, point) {
		return Color{}
	}
	falloff := math.Max(1-(1-dot)/(1-light.SpotAngleCos), 0)
	color := f.Diffuse.Mul(light.Diffuse).Scale(falloff)
	return color.Add(specular(f, light.Specular, dot, n, camDir, direction))
}

// shadowed transforms the surface point into the light's view, bilinearly
// samples the light's depth buffer and compares reciprocal depths with a
// small bias.
func shadowed(p *PointLight, point mathutil.Vec3) bool {
	l := p.cached.eye.MulPoint(point)
	lx := l[0]/-l[2]*p.cached.d + p.cached.offset[0]
	ly := l[1]/-l[2]*p.cached.d + p.cached.offset[1]

	fx, fy := math.Floor(lx), math.Floor(ly)
	cxa := lx - fx
	cya := ly - fy

	zb := p.cached.zbuf
	invZ := (zb.At(int(fx), int(fy))*(1-cxa)+zb.At(int(fx)+1, int(fy))*cxa)*(1-cya) +
		(zb.At(int(fx), int(fy)+1)*(1-cxa)+zb.At(int(fx)+1, int(fy)+1)*cxa)*cya

	return invZ+ZShadowBias < 1/l[2]
}

// textureColor samples the figure's texture at the eye-space point using
// barycentric interpolation of the triangle's UVs.
func textureColor(f *TriangleFigure, tri int, point mathutil.Vec3) Color {
	t := f.Faces[tri]
	tuv := t
	if f.Flags.SeparateUV {
		tuv = f.FacesUV[tri]
	}
	a, b, c := f.Points[t.A], f.Points[t.B], f.Points[t.C]
	u, v := barycentric(a, b, c, point)
	uv := interpolate2(f.UVs[tuv.A], f.UVs[tuv.B], f.UVs[tuv.C], u, v)
	return f.Texture.GetClamped(uv)
}

// shadowPrepass renders a light-space depth buffer for every point light.
func shadowPrepass(lights *Lights) error {
	for pi := range lights.Point {
		p := &lights.Point[pi]

		// Light position back in world space, then a view from the light
		// toward the world origin, composed so it maps eye space to light
		// space.
		pt := lights.InvEye.MulPoint(p.Point)
		look, _, err := LookDirection(pt, pt.Neg())
		if err != nil {
			return err
		}
		p.cached.eye = mathutil.Mat4Mul(look, lights.InvEye)

		// The last light may consume the snapshots.
		var zfigs []ZBufferFigure
		if pi < len(lights.Point)-1 {
			zfigs = make([]ZBufferFigure, len(lights.ZFigures))
			for i := range lights.ZFigures {
				src := &lights.ZFigures[i]
				pts := make([]mathutil.Vec3, len(src.Points))
				copy(pts, src.Points)
				zfigs[i] = ZBufferFigure{Points: pts, Faces: src.Faces, CanCull: src.CanCull}
			}
		} else {
			zfigs = lights.ZFigures
			lights.ZFigures = nil
		}

		bounds := EmptyRect()
		for i := range zfigs {
			f := &zfigs[i]
			for k, a := range f.Points {
				a = p.cached.eye.MulPoint(a)
				f.Points[k] = a
				bounds = bounds.AddPoint(Project(a))
			}
		}

		width, height, d, offset := ImageParams(bounds, lights.ShadowMask)
		zbuf, err := NewZBuffer(width, height)
		if err != nil {
			return err
		}
		p.cached.zbuf = zbuf
		p.cached.d = d
		p.cached.offset = offset
		if width == 0 || height == 0 {
			continue
		}

		for i := range zfigs {
			f := &zfigs[i]
			for _, t := range f.Faces {
				a, b, c := f.Points[t.A], f.Points[t.B], f.Points[t.C]
				if f.CanCull && b.Sub(a).Cross(c.Sub(a)).Dot(a) > 0 {
					continue
				}
				zbuf.Triangle(a, b, c, d, offset, 1, func(int, int) {})
			}
		}
	}
	return nil
}

// powUint is the integer-exponent fast path for specular highlights.
func powUint(base float64, exp uint32) float64 {
	r := 1.0
	for exp > 0 {
		if exp&1 != 0 {
			r *= base
		}
		base *= base
		exp >>= 1
	}
	return r
}
