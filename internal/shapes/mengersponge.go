package shapes

import (
	"cg-raster/internal/mathutil"
	"cg-raster/internal/render"
)

// mengerCubes recursively subdivides the unit cube into thirds, keeping the
// 20 sub-cubes that don't form the center cross, and calls f with the center
// and half-size of each leaf cube.
func mengerCubes(n int, base mathutil.Vec3, size float64, f func(center mathutil.Vec3, size float64)) {
	if n == 0 {
		f(base, size)
		return
	}
	size /= 3
	for x := -1; x <= 1; x++ {
		for y := -1; y <= 1; y++ {
			for z := -1; z <= 1; z++ {
				if (x == 0 && y == 0) || (x == 0 && z == 0) || (y == 0 && z == 0) {
					continue
				}
				off := mathutil.Vec3{float64(x), float64(y), float64(z)}.Scale(2 * size)
				mengerCubes(n-1, base.Add(off), size, f)
			}
		}
	}
}

// MengerSponge returns the solid sponge after n subdivisions.
func MengerSponge(n int) FaceShape {
	var shape FaceShape
	cp := cubePoints()
	cf := cubeFaces()
	mengerCubes(n, mathutil.Vec3{}, 1, func(center mathutil.Vec3, size float64) {
		o := uint32(len(shape.Points))
		for _, f := range cf {
			shape.Faces = append(shape.Faces, render.Face{A: o + f.A, B: o + f.B, C: o + f.C})
		}
		for _, p := range cp {
			shape.Points = append(shape.Points, center.Add(p.Scale(size)))
		}
	})
	return shape
}

// MengerSpongeEdges returns the sponge wireframe.
func MengerSpongeEdges(n int) EdgeShape {
	var shape EdgeShape
	cp := cubePoints()
	ce := cubeEdges()
	mengerCubes(n, mathutil.Vec3{}, 1, func(center mathutil.Vec3, size float64) {
		o := uint32(len(shape.Points))
		for _, e := range ce {
			shape.Edges = append(shape.Edges, render.Edge{A: o + e.A, B: o + e.B})
		}
		for _, p := range cp {
			shape.Points = append(shape.Points, center.Add(p.Scale(size)))
		}
	})
	return shape
}
