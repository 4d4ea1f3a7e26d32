package render

import (
	"errors"
	"math"

	"cg-raster/internal/mathutil"
)

// ErrZeroDirection is returned when a view direction has zero length.
var ErrZeroDirection = errors.New("render: camera direction has zero length")

// LookDirection builds the world-to-eye transform for a camera at pos looking
// along dir, with the camera looking down -z in eye space. The inverse is
// assembled from the transposed rotation and the negated translation, which
// is both faster and more precise than a general matrix inverse.
func LookDirection(pos, dir mathutil.Vec3) (eye, inv mathutil.Mat4, err error) {
	r := dir.Len()
	if r == 0 {
		return mathutil.Mat4{}, mathutil.Mat4{}, ErrZeroDirection
	}
	theta := math.Atan2(-dir[1], -dir[0])
	phi := math.Acos(-dir[2] / r)

	rot := mathutil.Mat4Mul(
		mathutil.RotateX(-phi),
		mathutil.RotateZ(-(theta + math.Pi/2)),
	)
	eye = mathutil.Mat4Mul(rot, mathutil.Translate(pos.Neg()))
	inv = mathutil.Mat4Mul(mathutil.Translate(pos), rot.Transpose())
	return eye, inv, nil
}

// Project performs the perspective division. Undefined for p.z == 0; callers
// must keep geometry in front of the near plane.
func Project(p mathutil.Vec3) mathutil.Vec2 {
	return mathutil.Vec2{p[0] / -p[2], p[1] / -p[2]}
}

// ProjectTo composes projection with the pixel-space scale and offset.
func ProjectTo(p mathutil.Vec3, d float64, offset mathutil.Vec2) mathutil.Vec2 {
	return Project(p).Scale(d).Add(offset)
}
