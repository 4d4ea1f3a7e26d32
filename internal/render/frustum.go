package render

import (
	"math"

	"cg-raster/internal/mathutil"
)

// Frustum describes the view volume in eye space. Fov is the full horizontal
// field of view in radians; Aspect is width/height.
type Frustum struct {
	Near, Far   float64
	Fov, Aspect float64
}

// PerspectiveFactor returns the scale d mapping normalized eye coordinates
// to pixels for a given image width. The bounds-driven computation in
// ImageParams supersedes it when geometry is available.
func (fr *Frustum) PerspectiveFactor(width float64) float64 {
	return 2 * math.Tan(fr.Fov/2) / width
}

// clipSlack is the relative tolerance of the outside tests. Intersection
// vertices land on a plane only up to rounding; the slack keeps them
// classified as inside, so re-clipping clipped geometry is a no-op.
const clipSlack = 1e-9

// Clip clips the figure's triangles against all six planes, in the order
// near, far, right, left, top, down. Triangles with one vertex outside are
// split in two, with two outside are shrunk, with all three outside removed.
// New vertices get interpolated UVs and (for point-normal figures) normals.
//
// The near pass disables back-face culling when it clips anything, because a
// split triangle's winding may degenerate.
func (fr *Frustum) Clip(f *TriangleFigure) {
	near, far := fr.Near, fr.Far

	// Near & far
	fr.apply(f,
		func(p mathutil.Vec3) bool { return -p[2] < near*(1-clipSlack) },
		func(from, to mathutil.Vec3) float64 {
			return (-near - to[2]) / (from[2] - to[2])
		},
		true,
	)
	fr.apply(f,
		func(p mathutil.Vec3) bool { return -p[2] > far*(1+clipSlack) },
		func(from, to mathutil.Vec3) float64 {
			return (-far - to[2]) / (from[2] - to[2])
		},
		false,
	)

	// Left & right
	right := near * math.Tan(fr.Fov/2)
	fr.apply(f,
		func(p mathutil.Vec3) bool { return p[0]*near > right*-p[2]*(1+clipSlack) },
		func(from, to mathutil.Vec3) float64 {
			return (to[0]*near + to[2]*right) /
				((to[0]-from[0])*near + (to[2]-from[2])*right)
		},
		false,
	)
	fr.apply(f,
		func(p mathutil.Vec3) bool { return p[0]*near < -right*-p[2]*(1+clipSlack) },
		func(from, to mathutil.Vec3) float64 {
			return (to[0]*near + to[2]*-right) /
				((to[0]-from[0])*near + (to[2]-from[2])*-right)
		},
		false,
	)

	// Top & down
	top := right / fr.Aspect
	fr.apply(f,
		func(p mathutil.Vec3) bool { return p[1]*near > top*-p[2]*(1+clipSlack) },
		func(from, to mathutil.Vec3) float64 {
			return (to[1]*near + to[2]*top) /
				((to[1]-from[1])*near + (to[2]-from[2])*top)
		},
		false,
	)
	fr.apply(f,
		func(p mathutil.Vec3) bool { return p[1]*near < -top*-p[2]*(1+clipSlack) },
		func(from, to mathutil.Vec3) float64 {
			return (to[1]*near + to[2]*-top) /
				((to[1]-from[1])*near + (to[2]-from[2])*-top)
		},
		false,
	)
}

// apply runs one clipping plane over all faces. outside classifies a point;
// isect gives the interpolation parameter t on a from→to segment such that
// to + t*(from-to) lies on the plane. disableCull marks the figure uncullable
// if anything is clipped.
func (fr *Frustum) apply(f *TriangleFigure, outside func(mathutil.Vec3) bool, isect func(from, to mathutil.Vec3) float64, disableCull bool) {
	pointNormals := len(f.Normals) > 0 && !f.Flags.FaceNormals
	faceNormals := len(f.Normals) > 0 && f.Flags.FaceNormals

	facesCount := len(f.Faces)
	var addedFaces []Face
	var addedNormals []mathutil.Vec3 // face normals for addedFaces

	markClipped := func() {
		if disableCull {
			f.Flags.CanCull = false
		}
		f.Flags.Clipped = true
	}

	// proj appends the intersection point of the edge from→to, interpolating
	// UV and point normals with barycentric weights taken in the triangle
	// (base, from, to). Returns the new point's index.
	proj := func(baseI, fromI, toI uint32) uint32 {
		base := f.Points[baseI]
		from := f.Points[fromI]
		to := f.Points[toI]
		t := isect(from, to)
		p := to.Lerp(from, t)
		u, v := barycentric(base, from, to, p)

		f.Points = append(f.Points, p)
		if pointNormals {
			n := interpolate3(f.Normals[baseI], f.Normals[fromI], f.Normals[toI], u, v)
			f.Normals = append(f.Normals, n.Normalize())
		}
		if len(f.UVs) > 0 {
			f.UVs = append(f.UVs, interpolate2(f.UVs[baseI], f.UVs[fromI], f.UVs[toI], u, v))
		}
		return uint32(len(f.Points) - 1)
	}

	swapRemove := func(i int) {
		if i < facesCount-1 {
			f.Faces[i] = f.Faces[facesCount-1]
			if faceNormals {
				f.Normals[i] = f.Normals[facesCount-1]
			}
		}
		facesCount--
		markClipped()
	}

	// split replaces the outside vertex with one intersection and appends a
	// second triangle covering the rest of the clipped quad.
	split := func(i int, out *uint32, inl, inr uint32) {
		p := proj(inr, *out, inl)
		q := proj(inl, *out, inr)
		*out = p
		addedFaces = append(addedFaces, Face{q, p, inr})
		if faceNormals {
			addedNormals = append(addedNormals, f.Normals[i])
		}
		markClipped()
	}

	for i := 0; i < facesCount; i++ {
		t := &f.Faces[i]
		var mask int
		if outside(f.Points[t.A]) {
			mask |= 0b100
		}
		if outside(f.Points[t.B]) {
			mask |= 0b010
		}
		if outside(f.Points[t.C]) {
			mask |= 0b001
		}
		switch mask {
		case 0b000:
			// Entirely inside.
		case 0b100:
			split(i, &t.A, t.B, t.C)
		case 0b010:
			split(i, &t.B, t.C, t.A)
		case 0b001:
			split(i, &t.C, t.A, t.B)
		case 0b011:
			t.B = proj(t.C, t.B, t.A)
			t.C = proj(t.B, t.C, t.A)
			markClipped()
		case 0b101:
			t.C = proj(t.A, t.C, t.B)
			t.A = proj(t.C, t.A, t.B)
			markClipped()
		case 0b110:
			t.A = proj(t.B, t.A, t.C)
			t.B = proj(t.A, t.B, t.C)
			markClipped()
		case 0b111:
			swapRemove(i)
			i--
		}
	}

	// Compact: surviving faces, then the ones added by splits.
	f.Faces = append(f.Faces[:facesCount], addedFaces...)
	if faceNormals {
		f.Normals = append(f.Normals[:facesCount], addedNormals...)
	}
}
