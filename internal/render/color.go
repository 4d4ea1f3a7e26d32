// Package render implements the software rendering pipeline: frustum
// clipping, z-buffered triangle rasterization, lighting with shadow maps,
// and line drawing.
package render

import (
	"cg-raster/internal/canvas"
)

// Color is a linear RGB triple with components nominally in [0,1].
// Values are only clamped at the final 8-bit conversion.
type Color struct {
	R, G, B float64
}

func (c Color) Add(o Color) Color {
	return Color{c.R + o.R, c.G + o.G, c.B + o.B}
}

func (c Color) Mul(o Color) Color {
	return Color{c.R * o.R, c.G * o.G, c.B * o.B}
}

func (c Color) Scale(f float64) Color {
	return Color{c.R * f, c.G * f, c.B * f}
}

func (c Color) Clamp() Color {
	return Color{clamp01(c.R), clamp01(c.G), clamp01(c.B)}
}

// RGB8 converts to 8-bit with rounding, clamping first.
func (c Color) RGB8() canvas.RGB {
	cc := c.Clamp()
	return canvas.RGB{
		R: uint8(cc.R*255 + 0.5),
		G: uint8(cc.G*255 + 0.5),
		B: uint8(cc.B*255 + 0.5),
	}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
