package render

import (
	"math"

	"cg-raster/internal/canvas"
	"cg-raster/internal/mathutil"
)

// ZBias is the multiplicative depth bias applied when rasterizing, so that
// shading lookups reconstructed from stored 1/z stay on the visible side.
const ZBias = 1.00001

// ZBuffer stores reciprocal depth (1/z) per pixel, initialized to +Inf.
// The camera looks down -z, so a smaller 1/z is closer.
type ZBuffer struct {
	width  int
	height int
	buf    []float64
}

// NewZBuffer allocates a +Inf-initialized depth buffer.
func NewZBuffer(width, height int) (*ZBuffer, error) {
	if width < 0 || height < 0 || width*height > canvas.MaxPixels {
		return nil, canvas.ErrOutOfMemory
	}
	buf := make([]float64, width*height)
	for i := range buf {
		buf[i] = math.Inf(1)
	}
	return &ZBuffer{width: width, height: height, buf: buf}, nil
}

func (z *ZBuffer) Width() int  { return z.width }
func (z *ZBuffer) Height() int { return z.height }

// At returns the stored 1/z, or +Inf outside the buffer.
func (z *ZBuffer) At(x, y int) float64 {
	if x < 0 || x >= z.width || y < 0 || y >= z.height {
		return math.Inf(1)
	}
	return z.buf[x+y*z.width]
}

// Replace stores invZ if it is strictly smaller than the current value and
// reports whether it did. Ties keep the first writer.
func (z *ZBuffer) Replace(x, y int, invZ float64) bool {
	i := x + y*z.width
	if z.buf[i] > invZ {
		z.buf[i] = invZ
		return true
	}
	return false
}

// Triangle rasterizes a triangle given by unprojected eye-space points into
// the depth buffer, invoking cb for every pixel whose depth was replaced.
//
// 1/z is interpolated linearly in screen space from the centroid value and
// the screen gradients, so the inner loop has no divisions.
func (z *ZBuffer) Triangle(a, b, c mathutil.Vec3, d float64, offset mathutil.Vec2, bias float64, cb func(x, y int)) {
	// Reciprocal depth at the centroid; algebraically equal to
	// (1/az + 1/bz + 1/cz) / 3 without the three divisions.
	invGZ := (b[2]*c[2] + a[2]*c[2] + a[2]*b[2]) / (3 * a[2] * b[2] * c[2])

	w := b.Sub(a).Cross(c.Sub(a))
	dk := d * w.Dot(a)
	dzdx := -w[0] / dk
	dzdy := -w[1] / dk

	invGZ *= bias

	// Project to pixel coordinates; the unprojected z is folded into the
	// gradients above and not needed past this point.
	pa := ProjectTo(a, d, offset)
	pb := ProjectTo(b, d, offset)
	pc := ProjectTo(c, d, offset)

	gx := (pa[0] + pb[0] + pc[0]) / 3
	gy := (pa[1] + pb[1] + pc[1]) / 3

	// Sort by y so pa.y <= pb.y <= pc.y.
	if pb[1] < pa[1] {
		pa, pb = pb, pa
	}
	if pc[1] < pa[1] {
		pa, pc = pc, pa
	}
	if pc[1] < pb[1] {
		pb, pc = pc, pb
	}

	if pc[1] == pa[1] {
		return // degenerate: no scanline has interior pixels
	}

	// Whether b lies left of edge a-c decides which intersection bounds x.
	p := (pb[1] - pa[1]) / (pc[1] - pa[1])
	bLeft := pb[0] < pa[0]*(1-p)+pc[0]*p

	// x of the edge p-q at scanline y.
	edgeX := func(y float64, p, q mathutil.Vec2) float64 {
		return q[0] + (p[0]-q[0])*(y-q[1])/(p[1]-q[1])
	}

	span := func(fromY, toY int, edgeA, edgeB func(y float64) float64) {
		if fromY < 0 {
			fromY = 0
		}
		if toY >= z.height {
			toY = z.height - 1
		}
		for y := fromY; y <= toY; y++ {
			fy := float64(y)
			xa, xb := edgeA(fy), edgeB(fy)
			xMin, xMax := xb, xa
			if bLeft {
				xMin, xMax = xa, xb
			}
			fromX := int(math.Floor(xMin)) + 1
			toX := int(math.Floor(xMax))
			if fromX < 0 {
				fromX = 0
			}
			if toX >= z.width {
				toX = z.width - 1
			}
			dy := (fy - gy) * dzdy
			for x := fromX; x <= toX; x++ {
				invZ := invGZ + dy + (float64(x)-gx)*dzdx
				if z.Replace(x, y, invZ) {
					cb(x, y)
				}
			}
		}
	}

	// Bottom half: edges a-b and a-c.
	span(
		int(math.Floor(pa[1]))+1, int(math.Floor(pb[1])),
		func(y float64) float64 { return edgeX(y, pa, pb) },
		func(y float64) float64 { return edgeX(y, pa, pc) },
	)
	// Top half: edges b-c and a-c.
	span(
		int(math.Floor(pb[1]))+1, int(math.Floor(pc[1])),
		func(y float64) float64 { return edgeX(y, pb, pc) },
		func(y float64) float64 { return edgeX(y, pa, pc) },
	)
}

// Sentinel values marking a tagged pixel as never written.
const (
	InvalidFigureID   = math.MaxUint16
	InvalidTriangleID = math.MaxUint32
)

// TaggedZBuffer couples a depth buffer with per-pixel (figure, triangle) ids,
// so shading can be deferred until all rasterization is done.
type TaggedZBuffer struct {
	ZBuffer
	figureIDs   []uint16
	triangleIDs []uint32
}

// NewTaggedZBuffer allocates a tagged buffer with all ids invalid.
func NewTaggedZBuffer(width, height int) (*TaggedZBuffer, error) {
	zb, err := NewZBuffer(width, height)
	if err != nil {
		return nil, err
	}
	t := &TaggedZBuffer{
		ZBuffer:     *zb,
		figureIDs:   make([]uint16, width*height),
		triangleIDs: make([]uint32, width*height),
	}
	for i := range t.figureIDs {
		t.figureIDs[i] = InvalidFigureID
		t.triangleIDs[i] = InvalidTriangleID
	}
	return t, nil
}

// Triangle rasterizes into the depth buffer, tagging replaced pixels.
func (t *TaggedZBuffer) Triangle(a, b, c mathutil.Vec3, d float64, offset mathutil.Vec2, figureID uint16, triangleID uint32, bias float64) {
	t.ZBuffer.Triangle(a, b, c, d, offset, bias, func(x, y int) {
		i := x + y*t.width
		t.figureIDs[i] = figureID
		t.triangleIDs[i] = triangleID
	})
}

// Get returns the ids and 1/z at a pixel. ok is false if the pixel was
// never written.
func (t *TaggedZBuffer) Get(x, y int) (figureID uint16, triangleID uint32, invZ float64, ok bool) {
	i := x + y*t.width
	if t.figureIDs[i] == InvalidFigureID && t.triangleIDs[i] == InvalidTriangleID {
		return 0, 0, 0, false
	}
	return t.figureIDs[i], t.triangleIDs[i], t.buf[i], true
}
