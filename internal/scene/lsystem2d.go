package scene

import (
	"cg-raster/internal/canvas"
	"cg-raster/internal/config"
	"cg-raster/internal/lsystem"
	"cg-raster/internal/render"
)

// lSystem2D expands the configured 2D L-system and draws its segments
// through the shared 2D line path.
func lSystem2D(cfg *config.Scene) (*canvas.Image, error) {
	general := cfg.Section("General")
	bg, err := sectionColor(general, "backgroundcolor")
	if err != nil {
		return nil, err
	}
	size, err := general.Int("size")
	if err != nil {
		return nil, err
	}

	sec := cfg.Section("2DLSystem")
	file, err := sec.String("inputfile")
	if err != nil {
		return nil, err
	}
	color, err := sectionColor(sec, "color")
	if err != nil {
		return nil, err
	}

	sys, err := lsystem.Load(resolvePath(cfg.Path(), file))
	if err != nil {
		return nil, err
	}

	segments := sys.Expand2D()
	lines := make([]render.Line2D, len(segments))
	for i, s := range segments {
		lines[i] = render.Line2D{A: s.A, B: s.B, Color: color}
	}
	return render.DrawLines2D(lines, size, bg)
}
