package scene

import (
	"fmt"

	"cg-raster/internal/canvas"
	"cg-raster/internal/config"
	"cg-raster/internal/render"
)

func introImage(cfg *config.Scene) (*canvas.Image, error) {
	props := cfg.Section("ImageProperties")
	width, err := props.Int("width")
	if err != nil {
		return nil, err
	}
	height, err := props.Int("height")
	if err != nil {
		return nil, err
	}
	return canvas.New(width, height, canvas.RGB{})
}

func introColorRectangle(cfg *config.Scene) (*canvas.Image, error) {
	img, err := introImage(cfg)
	if err != nil {
		return nil, err
	}
	for x := 0; x < img.Width(); x++ {
		for y := 0; y < img.Height(); y++ {
			r := x * 256 / img.Width()
			g := y * 256 / img.Height()
			b := (r + g) % 256
			img.Set(x, y, canvas.RGB{R: uint8(r), G: uint8(g), B: uint8(b)})
		}
	}
	return img, nil
}

func introBlocks(cfg *config.Scene) (*canvas.Image, error) {
	img, err := introImage(cfg)
	if err != nil {
		return nil, err
	}
	props := cfg.Section("BlockProperties")
	colorA, err := sectionColor(props, "colorWhite")
	if err != nil {
		return nil, err
	}
	colorB, err := sectionColor(props, "colorBlack")
	if err != nil {
		return nil, err
	}
	nx, err := props.Int("nrXBlocks")
	if err != nil {
		return nil, err
	}
	ny, err := props.Int("nrYBlocks")
	if err != nil {
		return nil, err
	}
	if props.BoolOr("invertColors", false) {
		colorA, colorB = colorB, colorA
	}

	a, b := colorA.RGB8(), colorB.RGB8()
	for x := 0; x < img.Width(); x++ {
		for y := 0; y < img.Height(); y++ {
			if (x*nx/img.Width()+y*ny/img.Height())%2 == 0 {
				img.Set(x, y, a)
			} else {
				img.Set(x, y, b)
			}
		}
	}
	return img, nil
}

func introLines(cfg *config.Scene) (*canvas.Image, error) {
	img, err := introImage(cfg)
	if err != nil {
		return nil, err
	}
	props := cfg.Section("LineProperties")
	figure, err := props.String("figure")
	if err != nil {
		return nil, err
	}
	bg, err := sectionColor(props, "backgroundcolor")
	if err != nil {
		return nil, err
	}
	fg, err := sectionColor(props, "lineColor")
	if err != nil {
		return nil, err
	}
	n, err := props.Int("nrLines")
	if err != nil {
		return nil, err
	}

	img.Clear(bg.RGB8())
	c := fg.RGB8()
	w, h := img.Width(), img.Height()

	switch figure {
	case "QuarterCircle":
		linesPart(img, c, n, 0, 0, w, h, false, false)
	case "Diamond":
		x, y := w/2, h/2
		linesPart(img, c, n, 0, 0, x, y, true, false)
		// -1 to avoid 2px wide horizontal & vertical lines
		linesPart(img, c, n, x-1, y-1, x, y, false, true)
		linesPart(img, c, n, x-1, 0, x, y, false, false)
		linesPart(img, c, n, 0, y-1, x, y, true, true)
	case "Eye":
		linesPart(img, c, n, 0, 0, w, h, false, false)
		linesPart(img, c, n, 0, 0, w, h, true, true)
	default:
		return nil, fmt.Errorf("%w: [LineProperties] figure: unknown figure %q", config.ErrConfig, figure)
	}
	return img, nil
}

// linesPart draws one n-line fan across the rectangle at (ox,oy)..(ox+w,oy+h).
// Endpoint positions are computed in half-pixel integer math.
func linesPart(img *canvas.Image, fg canvas.RGB, n, ox, oy, w, h int, flipX, flipY bool) {
	if n < 2 {
		return
	}
	for i := 0; i < n; i++ {
		x := i * (w - 1) * 2 / (n - 1)
		y := i * (h - 1) * 2 / (n - 1)
		x = ((x + 1) &^ 1) / 2
		y = ((y + 1) &^ 1) / 2
		if flipX != flipY {
			y = h - 1 - y
		}
		ay := oy + h - 1
		if flipY {
			ay = oy
		}
		bx := ox
		if flipX {
			bx = ox + w - 1
		}
		render.DrawLinePixels(img, ox+x, ay, bx, oy+y, fg)
	}
}
