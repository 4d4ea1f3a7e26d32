package render

import (
	"cg-raster/internal/mathutil"
)

// DirectionalLight shines along a fixed unit direction in eye space.
type DirectionalLight struct {
	Direction mathutil.Vec3
	Diffuse   Color
	Specular  Color
}

// PointLight is a point/spot light in eye space. The cached fields are filled
// by the shadow prepass and live for one render.
type PointLight struct {
	Point        mathutil.Vec3
	Diffuse      Color
	Specular     Color
	SpotAngleCos float64

	cached struct {
		eye    mathutil.Mat4 // eye space → light space
		zbuf   *ZBuffer
		d      float64
		offset mathutil.Vec2
	}
}

// ZBufferFigure is a triangle figure reduced to what a shadow pass needs:
// its own (light-space) point copy plus the source figure's faces by value.
type ZBufferFigure struct {
	Points  []mathutil.Vec3
	Faces   []Face
	CanCull bool
}

// NewZBufferFigures snapshots figures for the shadow prepass.
func NewZBufferFigures(figures []TriangleFigure) []ZBufferFigure {
	zfigs := make([]ZBufferFigure, 0, len(figures))
	for i := range figures {
		f := &figures[i]
		pts := make([]mathutil.Vec3, len(f.Points))
		copy(pts, f.Points)
		zfigs = append(zfigs, ZBufferFigure{
			Points:  pts,
			Faces:   f.Faces,
			CanCull: f.Flags.CanCull,
		})
	}
	return zfigs
}

// Lights is the full lighting environment of one render. All figures and
// light positions are in eye space on entry.
type Lights struct {
	Directional []DirectionalLight
	Point       []PointLight
	Ambient     Color

	Eye    mathutil.Mat4
	InvEye mathutil.Mat4

	// Shadows enables the shadow prepass; ZFigures are the caster snapshots
	// it consumes. ShadowMask is the shadow-map resolution hint.
	Shadows    bool
	ShadowMask int
	ZFigures   []ZBufferFigure

	// Cubemap is accepted for forward compatibility; sampling is not wired.
	Cubemap *Texture
}
