package render

import (
	"math"

	"cg-raster/internal/mathutil"
)

// barycentric solves p - a = u*(b-a) + v*(c-a) for (u, v). The 2×2 system is
// taken from whichever axis-pair projection of the triangle (XY, YZ or XZ)
// has the largest-magnitude determinant, for numerical stability.
func barycentric(a, b, c, p mathutil.Vec3) (u, v float64) {
	ba := b.Sub(a)
	ca := c.Sub(a)
	pa := p.Sub(a)

	dXY := ba[0]*ca[1] - ca[0]*ba[1]
	dYZ := ba[1]*ca[2] - ca[1]*ba[2]
	dXZ := ba[0]*ca[2] - ca[0]*ba[2]

	aXY, aYZ, aXZ := math.Abs(dXY), math.Abs(dYZ), math.Abs(dXZ)

	var i, j int
	var det float64
	switch {
	case aXY >= aYZ && aXY >= aXZ:
		i, j, det = 0, 1, dXY
	case aXZ >= aYZ:
		i, j, det = 0, 2, dXZ
	default:
		i, j, det = 1, 2, dYZ
	}

	// Cramer's rule on the chosen axis pair.
	u = (pa[i]*ca[j] - ca[i]*pa[j]) / det
	v = (ba[i]*pa[j] - pa[i]*ba[j]) / det
	return u, v
}

// interpolate3 blends three attributes with barycentric weights (1-u-v, u, v).
func interpolate3(a, b, c mathutil.Vec3, u, v float64) mathutil.Vec3 {
	return a.Scale(1 - u - v).Add(b.Scale(u)).Add(c.Scale(v))
}

func interpolate2(a, b, c mathutil.Vec2, u, v float64) mathutil.Vec2 {
	return a.Scale(1 - u - v).Add(b.Scale(u)).Add(c.Scale(v))
}
