// Package scene assembles configured scenes into render inputs and runs the
// requested mode.
package scene

import (
	"fmt"
	"math"

	"cg-raster/internal/canvas"
	"cg-raster/internal/config"
	"cg-raster/internal/mathutil"
	"cg-raster/internal/render"
	"cg-raster/internal/texture"
)

// Render generates the image described by the scene configuration.
func Render(cfg *config.Scene) (*canvas.Image, error) {
	typ, err := cfg.Section("General").String("type")
	if err != nil {
		return nil, err
	}
	switch typ {
	case "IntroColorRectangle":
		return introColorRectangle(cfg)
	case "IntroBlocks":
		return introBlocks(cfg)
	case "IntroLines":
		return introLines(cfg)
	case "2DLSystem":
		return lSystem2D(cfg)
	case "Wireframe":
		return wireframe(cfg, false)
	case "ZBufferedWireframe":
		return wireframe(cfg, true)
	case "ZBuffering":
		return triangles(cfg, false)
	case "LightedZBuffering":
		return triangles(cfg, true)
	}
	return nil, fmt.Errorf("%w: [General] type: unknown type %q", config.ErrConfig, typ)
}

// camera holds the view derived from [General]: the eye transform pair and,
// when clipping is enabled, the frustum to clip against.
type camera struct {
	eye     mathutil.Mat4
	invEye  mathutil.Mat4
	frustum *render.Frustum
}

// commonConf reads the keys shared by all 3D modes.
func commonConf(cfg *config.Scene) (bg render.Color, size int, cam camera, nrFig int, err error) {
	general := cfg.Section("General")

	bgTuple, err := general.Tuple("backgroundcolor", 3)
	if err != nil {
		return bg, 0, cam, 0, err
	}
	bg = render.Color{R: bgTuple[0], G: bgTuple[1], B: bgTuple[2]}

	if size, err = general.Int("size"); err != nil {
		return bg, 0, cam, 0, err
	}
	eyeTuple, err := general.Tuple("eye", 3)
	if err != nil {
		return bg, 0, cam, 0, err
	}
	if nrFig, err = general.Int("nrFigures"); err != nil {
		return bg, 0, cam, 0, err
	}

	pos := mathutil.Vec3{eyeTuple[0], eyeTuple[1], eyeTuple[2]}
	dir := pos.Neg()

	// Clipping is an opt-in extension: a view direction plus explicit frustum
	// parameters. Without it the camera looks at the origin and no geometry
	// is clipped.
	if general.BoolOr("clipping", false) {
		dirTuple, err := general.Tuple("viewDirection", 3)
		if err != nil {
			return bg, 0, cam, 0, err
		}
		dir = mathutil.Vec3{dirTuple[0], dirTuple[1], dirTuple[2]}

		near, err := general.Float("dNear")
		if err != nil {
			return bg, 0, cam, 0, err
		}
		far, err := general.Float("dFar")
		if err != nil {
			return bg, 0, cam, 0, err
		}
		hfov, err := general.Float("hfov")
		if err != nil {
			return bg, 0, cam, 0, err
		}
		aspect, err := general.Float("aspectratio")
		if err != nil {
			return bg, 0, cam, 0, err
		}
		cam.frustum = &render.Frustum{
			Near:   near,
			Far:    far,
			Fov:    hfov * math.Pi / 180,
			Aspect: aspect,
		}
	}

	cam.eye, cam.invEye, err = render.LookDirection(pos, dir)
	if err != nil {
		return bg, 0, cam, 0, fmt.Errorf("%w: [General] eye: %v", config.ErrConfig, err)
	}
	return bg, size, cam, nrFig, nil
}

// wireframe renders every figure as edges, optionally depth-buffered.
func wireframe(cfg *config.Scene, withZ bool) (*canvas.Image, error) {
	bg, size, cam, nrFig, err := commonConf(cfg)
	if err != nil {
		return nil, err
	}
	var figures []render.LineFigure
	for i := 0; i < nrFig; i++ {
		fig, err := lineFigure(cfg.Section(fmt.Sprintf("Figure%d", i)), cam, cfg.Path())
		if err != nil {
			return nil, err
		}
		figures = append(figures, fig...)
	}
	return render.DrawLines(figures, size, bg, withZ)
}

// triangles renders every figure as z-buffered solid triangles, with full
// lighting in lighted mode.
func triangles(cfg *config.Scene, lighted bool) (*canvas.Image, error) {
	bg, size, cam, nrFig, err := commonConf(cfg)
	if err != nil {
		return nil, err
	}

	texCache := texture.NewCache()
	var figures []render.TriangleFigure
	for i := 0; i < nrFig; i++ {
		fig, err := triangleFigure(cfg.Section(fmt.Sprintf("Figure%d", i)), cam, lighted, texCache, cfg.Path())
		if err != nil {
			return nil, err
		}
		figures = append(figures, fig)
	}

	var lights *render.Lights
	if lighted {
		lights, err = parseLights(cfg, cam)
		if err != nil {
			return nil, err
		}
	} else {
		lights = &render.Lights{
			Ambient: render.Color{R: 1, G: 1, B: 1},
			Eye:     cam.eye,
			InvEye:  cam.invEye,
		}
	}

	if lights.Shadows {
		lights.ZFigures = render.NewZBufferFigures(figures)
	}

	return render.Draw(figures, lights, size, bg)
}
