package scene

import (
	"math/rand"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/material"
	"github.com/df07/go-pathtracer/pkg/renderer"
	"github.com/df07/go-pathtracer/pkg/texture"
)

// frontCamera looks down -z from the origin with a 90 degree field of view
var frontCamera = renderer.CameraConfig{
	Center:      core.NewVec3(0, 0, 0),
	LookAt:      core.NewVec3(0, 0, -1),
	Up:          core.NewVec3(0, 1, 0),
	VFov:        90,
	AspectRatio: 2.0,
}

func newStaticScene(random *rand.Rand, opts Options) (*Scene, error) {
	glass := material.NewDielectric(1.5)

	return &Scene{
		Camera: newCamera(frontCamera, opts),
		Sky:    NewSkyGradient(),
		Shapes: []geometry.Shape{
			geometry.NewSphere(core.NewVec3(0, 0, -1), 0.5, material.NewLambertian(core.NewVec3(0.8, 0.3, 0.3))),
			geometry.NewSphere(core.NewVec3(0, -100.5, -1), 100, material.NewLambertian(core.NewVec3(0.8, 0.8, 0.0))),
			geometry.NewSphere(core.NewVec3(1, 0, -1), 0.5, material.NewMetal(core.NewVec3(0.8, 0.6, 0.2), 0.0)),
			geometry.NewSphere(core.NewVec3(-1, 0, -1), 0.5, glass),
			// Negative radius turns the glass ball into a thin shell
			geometry.NewSphere(core.NewVec3(-1, 0, -1), -0.45, glass),
		},
	}, nil
}

func newSingleScene(random *rand.Rand, opts Options) (*Scene, error) {
	return &Scene{
		Camera: newCamera(frontCamera, opts),
		Sky:    NewSkyGradient(),
		Shapes: []geometry.Shape{
			geometry.NewSphere(core.NewVec3(0, 0, -1), 0.5, material.NewLambertian(core.NewVec3(0.8, 0.1, 0.1))),
		},
	}, nil
}

// newRandomScene scatters small spheres on a 22x22 grid around three large ones.
// Diffuse spheres bounce upward during the shutter interval.
func newRandomScene(random *rand.Rand, opts Options) (*Scene, error) {
	const time0, time1 = 0.0, 1.0

	ground := material.NewTexturedLambertian(texture.NewCheckerColors(
		core.NewVec3(0.2, 0.3, 0.1),
		core.NewVec3(0.9, 0.9, 0.9),
	))
	shapes := []geometry.Shape{
		geometry.NewSphere(core.NewVec3(0, -1000, 0), 1000, ground),
	}

	avoid := core.NewVec3(4, 0.2, 0)
	for a := -11; a < 11; a++ {
		for b := -11; b < 11; b++ {
			chooseMat := random.Float64()
			center := core.NewVec3(float64(a)+0.9*random.Float64(), 0.2, float64(b)+0.9*random.Float64())
			if center.Subtract(avoid).Length() <= 0.9 {
				continue
			}

			switch {
			case chooseMat < 0.8:
				albedo := core.RandomVec3(random, 0, 1).MultiplyVec(core.RandomVec3(random, 0, 1))
				center1 := center.Add(core.NewVec3(0, 0.5*random.Float64(), 0))
				shapes = append(shapes, geometry.NewMovingSphere(center, center1, time0, time1, 0.2, material.NewLambertian(albedo)))
			case chooseMat < 0.95:
				albedo := core.RandomVec3(random, 0.5, 1)
				fuzz := 0.5 * random.Float64()
				shapes = append(shapes, geometry.NewSphere(center, 0.2, material.NewMetal(albedo, fuzz)))
			default:
				shapes = append(shapes, geometry.NewSphere(center, 0.2, material.NewDielectric(1.5)))
			}
		}
	}

	shapes = append(shapes,
		geometry.NewSphere(core.NewVec3(0, 1, 0), 1.0, material.NewDielectric(1.5)),
		geometry.NewSphere(core.NewVec3(-4, 1, 0), 1.0, material.NewLambertian(core.NewVec3(0.4, 0.2, 0.1))),
		geometry.NewSphere(core.NewVec3(4, 1, 0), 1.0, material.NewMetal(core.NewVec3(0.7, 0.6, 0.5), 0.0)),
	)

	camera := newCamera(renderer.CameraConfig{
		Center:        core.NewVec3(13, 2, 3),
		LookAt:        core.NewVec3(0, 0, 0),
		Up:            core.NewVec3(0, 1, 0),
		VFov:          20,
		AspectRatio:   16.0 / 9.0,
		Aperture:      0.1,
		FocusDistance: 10,
		Time0:         time0,
		Time1:         time1,
	}, opts)

	return &Scene{
		Camera:    camera,
		Sky:       NewSkyGradient(),
		Shapes:    shapes,
		TimeStart: time0,
		TimeEnd:   time1,
	}, nil
}
