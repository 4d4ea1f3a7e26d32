package render

import (
	"math"

	"cg-raster/internal/canvas"
	"cg-raster/internal/mathutil"
)

// Line2D is a screen-space segment used by the 2D output path.
type Line2D struct {
	A, B  mathutil.Vec2
	Color Color
}

// DrawLines2D scales and centers the segments into a size-bounded image and
// draws them. An empty list yields an empty image.
func DrawLines2D(lines []Line2D, size int, background Color) (*canvas.Image, error) {
	if len(lines) == 0 {
		return canvas.New(0, 0, background.RGB8())
	}

	bounds := EmptyRect()
	for _, l := range lines {
		bounds = bounds.AddPoint(l.A)
		bounds = bounds.AddPoint(l.B)
	}

	width, height, d, offset := ImageParams(bounds, size)
	img, err := canvas.New(width, height, background.RGB8())
	if err != nil || img.Empty() {
		return img, err
	}

	for _, l := range lines {
		a := l.A.Scale(d).Add(offset)
		b := l.B.Scale(d).Add(offset)
		drawLine(img, int(roundUp(a[0])), int(roundUp(a[1])), int(roundUp(b[0])), int(roundUp(b[1])), l.Color.RGB8())
	}
	return img, nil
}

// DrawLines projects the eye-space line figures and draws them, optionally
// with depth buffering so nearer lines win.
func DrawLines(figures []LineFigure, size int, background Color, withZ bool) (*canvas.Image, error) {
	if len(figures) == 0 {
		return canvas.New(0, 0, background.RGB8())
	}

	bounds := EmptyRect()
	for i := range figures {
		for _, p := range figures[i].Points {
			bounds = bounds.AddPoint(Project(p))
		}
	}

	width, height, d, offset := ImageParams(bounds, size)
	img, err := canvas.New(width, height, background.RGB8())
	if err != nil || img.Empty() {
		return img, err
	}

	if withZ {
		zbuf, err := NewZBuffer(width, height)
		if err != nil {
			return nil, err
		}
		for i := range figures {
			f := &figures[i]
			c := f.Color.RGB8()
			for _, e := range f.Edges {
				a := ProjectTo(f.Points[e.A], d, offset)
				b := ProjectTo(f.Points[e.B], d, offset)
				drawZBufLineClip(img, zbuf,
					a[0], a[1], f.Points[e.A][2],
					b[0], b[1], f.Points[e.B][2],
					c)
			}
		}
	} else {
		for i := range figures {
			f := &figures[i]
			c := f.Color.RGB8()
			for _, e := range f.Edges {
				a := ProjectTo(f.Points[e.A], d, offset)
				b := ProjectTo(f.Points[e.B], d, offset)
				drawLineClip(img, a[0], a[1], b[0], b[1], c)
			}
		}
	}
	return img, nil
}

// DrawLinePixels draws a plain line between integer pixel coordinates.
func DrawLinePixels(img *canvas.Image, x0, y0, x1, y1 int, c canvas.RGB) {
	drawLine(img, x0, y0, x1, y1, c)
}

// drawLine steps one pixel per major-axis unit, with slope cases |m|<=1,
// m>1 and m<-1, plus the axis-aligned special cases.
func drawLine(img *canvas.Image, x0, y0, x1, y1 int, c canvas.RGB) {
	switch {
	case x0 == x1:
		if y0 > y1 {
			y0, y1 = y1, y0
		}
		for y := y0; y <= y1; y++ {
			img.Set(x0, y, c)
		}
	case y0 == y1:
		if x0 > x1 {
			x0, x1 = x1, x0
		}
		for x := x0; x <= x1; x++ {
			img.Set(x, y0, c)
		}
	default:
		if x0 > x1 {
			x0, x1 = x1, x0
			y0, y1 = y1, y0
		}
		m := float64(y1-y0) / float64(x1-x0)
		switch {
		case -1 <= m && m <= 1:
			for i := 0; i <= x1-x0; i++ {
				img.Set(x0+i, int(roundUp(float64(y0)+m*float64(i))), c)
			}
		case m > 1:
			for i := 0; i <= y1-y0; i++ {
				img.Set(int(roundUp(float64(x0)+float64(i)/m)), y0+i, c)
			}
		default: // m < -1
			for i := 0; i <= y0-y1; i++ {
				img.Set(int(roundUp(float64(x0)-float64(i)/m)), y0-i, c)
			}
		}
	}
}

// drawZBufLine interpolates 1/z linearly along the longest axis and only
// writes pixels that win the depth test.
func drawZBufLine(img *canvas.Image, zbuf *ZBuffer, x0, y0 int, z0 float64, x1, y1 int, z1 float64, c canvas.RGB) {
	invZ0, invZ1 := 1/z0, 1/z1
	var steps float64
	set := func(x, y, i int) {
		if x < 0 || x >= zbuf.Width() || y < 0 || y >= zbuf.Height() {
			return
		}
		// i counts steps from p0.
		p := 0.0
		if steps > 0 {
			p = float64(i) / steps
		}
		invZ := (1-p)*invZ0 + p*invZ1
		if zbuf.Replace(x, y, invZ) {
			img.Set(x, y, c)
		}
	}

	switch {
	case x0 == x1:
		steps = math.Abs(float64(y1 - y0))
		lo, hi := y0, y1
		if lo > hi {
			lo, hi = hi, lo
		}
		for y := lo; y <= hi; y++ {
			set(x0, y, int(math.Abs(float64(y-y0))))
		}
	case y0 == y1:
		steps = math.Abs(float64(x1 - x0))
		lo, hi := x0, x1
		if lo > hi {
			lo, hi = hi, lo
		}
		for x := lo; x <= hi; x++ {
			set(x, y0, int(math.Abs(float64(x-x0))))
		}
	default:
		if x0 > x1 {
			x0, x1 = x1, x0
			y0, y1 = y1, y0
			invZ0, invZ1 = invZ1, invZ0
		}
		m := float64(y1-y0) / float64(x1-x0)
		switch {
		case -1 <= m && m <= 1:
			steps = float64(x1 - x0)
			for i := 0; i <= x1-x0; i++ {
				set(x0+i, int(roundUp(float64(y0)+m*float64(i))), i)
			}
		case m > 1:
			steps = float64(y1 - y0)
			for i := 0; i <= y1-y0; i++ {
				set(int(roundUp(float64(x0)+float64(i)/m)), y0+i, i)
			}
		default:
			steps = float64(y0 - y1)
			for i := 0; i <= y0-y1; i++ {
				set(int(roundUp(float64(x0)-float64(i)/m)), y0-i, i)
			}
		}
	}
}

// clipEndpoint pulls (x0,y0,z0) toward (x1,y1,z1) until it lies inside the
// [0,w-1]×[0,h-1] rectangle, interpolating z along the way. Reports whether
// any part of the segment remains visible.
func clipEndpoint(x0, y0, z0 *float64, x1, y1, z1, w, h float64) bool {
	w--
	h--

	p := 0.0
	if *x0 < 0 {
		p = -*x0 / (-*x0 + x1)
	} else if *x0 > w {
		p = (*x0 - w) / ((*x0 - w) + (w - x1))
	}
	p = math.Min(math.Max(p, 0), 1)
	*x0 = *x0*(1-p) + x1*p
	*y0 = *y0*(1-p) + y1*p
	*z0 = *z0*(1-p) + z1*p

	p = 0.0
	if *y0 < 0 {
		p = -*y0 / (-*y0 + y1)
	} else if *y0 > h {
		p = (*y0 - h) / ((*y0 - h) + (h - y1))
	}
	p = math.Min(math.Max(p, 0), 1)
	*x0 = *x0*(1-p) + x1*p
	*y0 = *y0*(1-p) + y1*p
	*z0 = *z0*(1-p) + z1*p

	return !((*x0 < 0 && x1 < 0) || (*y0 < 0 && y1 < 0) || (*x0 > w && x1 > w) || (*y0 > h && y1 > h))
}

func drawLineClip(img *canvas.Image, x0, y0, x1, y1 float64, c canvas.RGB) {
	var z0, z1 float64
	w, h := float64(img.Width()), float64(img.Height())
	if !clipEndpoint(&x0, &y0, &z0, x1, y1, z1, w, h) {
		return
	}
	if !clipEndpoint(&x1, &y1, &z1, x0, y0, z0, w, h) {
		return
	}
	drawLine(img, int(roundUp(x0)), int(roundUp(y0)), int(roundUp(x1)), int(roundUp(y1)), c)
}

func drawZBufLineClip(img *canvas.Image, zbuf *ZBuffer, x0, y0, z0, x1, y1, z1 float64, c canvas.RGB) {
	w, h := float64(img.Width()), float64(img.Height())
	if !clipEndpoint(&x0, &y0, &z0, x1, y1, z1, w, h) {
		return
	}
	if !clipEndpoint(&x1, &y1, &z1, x0, y0, z0, w, h) {
		return
	}
	drawZBufLine(img, zbuf,
		int(roundUp(x0)), int(roundUp(y0)), z0,
		int(roundUp(x1)), int(roundUp(y1)), z1,
		c)
}
