package render

import (
	"image"

	"cg-raster/internal/mathutil"
)

// Texture is an immutable, many-reader texture image. Figures share textures
// by pointer; mutation would require an explicit copy.
type Texture struct {
	img *image.NRGBA
}

// NewTexture wraps a decoded image.
func NewTexture(img *image.NRGBA) *Texture {
	return &Texture{img: img}
}

// GetClamped samples the nearest texel with clamped addressing; u and v are
// clamped to [0,1]. v = 0 is the bottom of the image, matching OBJ texture
// coordinates; decoded images store rows top-down.
func (t *Texture) GetClamped(uv mathutil.Vec2) Color {
	b := t.img.Bounds()
	w, h := b.Dx(), b.Dy()
	if w == 0 || h == 0 {
		return Color{}
	}
	u := int(clamp01(uv[0])*float64(w-1) + 0.5)
	v := (h - 1) - int(clamp01(uv[1])*float64(h-1)+0.5)
	i := t.img.PixOffset(b.Min.X+u, b.Min.Y+v)
	return Color{
		R: float64(t.img.Pix[i]) / 255,
		G: float64(t.img.Pix[i+1]) / 255,
		B: float64(t.img.Pix[i+2]) / 255,
	}
}
