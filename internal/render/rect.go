package render

import (
	"math"

	"cg-raster/internal/mathutil"
)

// Rect is a 2D bounding rectangle in projected (pre-pixel) coordinates.
type Rect struct {
	Min, Max mathutil.Vec2
}

// EmptyRect returns the identity for AddPoint/Union: min at +Inf, max at -Inf.
func EmptyRect() Rect {
	return Rect{
		Min: mathutil.Vec2{math.Inf(1), math.Inf(1)},
		Max: mathutil.Vec2{math.Inf(-1), math.Inf(-1)},
	}
}

func (r Rect) AddPoint(p mathutil.Vec2) Rect {
	return Rect{
		Min: mathutil.Vec2{math.Min(r.Min[0], p[0]), math.Min(r.Min[1], p[1])},
		Max: mathutil.Vec2{math.Max(r.Max[0], p[0]), math.Max(r.Max[1], p[1])},
	}
}

func (r Rect) Union(o Rect) Rect {
	return Rect{
		Min: mathutil.Vec2{math.Min(r.Min[0], o.Min[0]), math.Min(r.Min[1], o.Min[1])},
		Max: mathutil.Vec2{math.Max(r.Max[0], o.Max[0]), math.Max(r.Max[1], o.Max[1])},
	}
}

// ImageParams derives pixel dimensions, the perspective scale d, and the
// centering offset from projected bounds and the requested size. The larger
// axis is scaled to size and the geometry occupies 95% of the image.
// Degenerate bounds yield a 0×0 image.
func ImageParams(r Rect, size int) (width, height int, d float64, offset mathutil.Vec2) {
	sizeX := r.Max[0] - r.Min[0]
	sizeY := r.Max[1] - r.Min[1]
	if sizeX <= 0 || sizeY <= 0 || math.IsInf(sizeX, 0) || math.IsInf(sizeY, 0) {
		return 0, 0, 0, mathutil.Vec2{}
	}

	s := float64(size) / math.Max(sizeX, sizeY)
	imgX := sizeX * s
	imgY := sizeY * s

	d = imgX / sizeX * 0.95
	offset = mathutil.Vec2{
		(imgX - d*(r.Min[0]+r.Max[0])) / 2,
		(imgY - d*(r.Min[1]+r.Max[1])) / 2,
	}
	return int(roundUp(imgX)), int(roundUp(imgY)), d, offset
}

// roundUp rounds half toward +Inf, matching the rasterizer's pixel rounding.
func roundUp(x float64) float64 {
	return math.Floor(x + 0.5)
}
