package scene

import (
	"fmt"
	"math"

	"cg-raster/internal/config"
	"cg-raster/internal/mathutil"
	"cg-raster/internal/render"
)

// parseLights reads [LightN] sections into the lighting environment, with
// directions and positions transformed into eye space. The global ambient is
// the sum of every light's ambient component.
func parseLights(cfg *config.Scene, cam camera) (*render.Lights, error) {
	general := cfg.Section("General")
	nrLights, err := general.Int("nrLights")
	if err != nil {
		return nil, err
	}

	lights := &render.Lights{
		Eye:        cam.eye,
		InvEye:     cam.invEye,
		Shadows:    general.BoolOr("shadowEnabled", false),
		ShadowMask: general.IntOr("shadowMask", 0),
	}
	if lights.Shadows && lights.ShadowMask <= 0 {
		return nil, fmt.Errorf("%w: [General] shadowMask: required when shadowEnabled", config.ErrConfig)
	}

	for i := 0; i < nrLights; i++ {
		sec := cfg.Section(fmt.Sprintf("Light%d", i))

		if amb, err := sec.Tuple("ambientLight", 3); err == nil {
			lights.Ambient = lights.Ambient.Add(render.Color{R: amb[0], G: amb[1], B: amb[2]})
		}

		diffuse := render.Color{}
		if t, err := sec.Tuple("diffuseLight", 3); err == nil {
			diffuse = render.Color{R: t[0], G: t[1], B: t[2]}
		}
		specular := render.Color{}
		if t, err := sec.Tuple("specularLight", 3); err == nil {
			specular = render.Color{R: t[0], G: t[1], B: t[2]}
		}

		// Without an infinity key the light only contributes ambient.
		if !sec.Has("infinity") {
			continue
		}
		infinity, err := sec.Bool("infinity")
		if err != nil {
			return nil, err
		}
		if infinity {
			t, err := sec.Tuple("direction", 3)
			if err != nil {
				return nil, err
			}
			dir := cam.eye.MulDir(mathutil.Vec3{t[0], t[1], t[2]}).Normalize()
			lights.Directional = append(lights.Directional, render.DirectionalLight{
				Direction: dir,
				Diffuse:   diffuse,
				Specular:  specular,
			})
		} else {
			t, err := sec.Tuple("location", 3)
			if err != nil {
				return nil, err
			}
			spotAngle := sec.FloatOr("spotAngle", 90)
			lights.Point = append(lights.Point, render.PointLight{
				Point:        cam.eye.MulPoint(mathutil.Vec3{t[0], t[1], t[2]}),
				Diffuse:      diffuse,
				Specular:     specular,
				SpotAngleCos: math.Cos(spotAngle * math.Pi / 180),
			})
		}
	}

	if len(lights.Point) == 0 {
		lights.Shadows = false
	}
	return lights, nil
}
