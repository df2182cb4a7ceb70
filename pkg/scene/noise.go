package scene

import (
	"math/rand"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/material"
	"github.com/df07/go-pathtracer/pkg/renderer"
	"github.com/df07/go-pathtracer/pkg/texture"
)

func noiseSpheres(random *rand.Rand) []geometry.Shape {
	marble := material.NewTexturedLambertian(texture.NewNoise(random, 4))
	return []geometry.Shape{
		geometry.NewSphere(core.NewVec3(0, -1000, 0), 1000, marble),
		geometry.NewSphere(core.NewVec3(0, 2, 0), 2, marble),
	}
}

func newPerlinScene(random *rand.Rand, opts Options) (*Scene, error) {
	camera := newCamera(renderer.CameraConfig{
		Center:      core.NewVec3(13, 2, 3),
		LookAt:      core.NewVec3(0, 0, 0),
		Up:          core.NewVec3(0, 1, 0),
		VFov:        20,
		AspectRatio: 16.0 / 9.0,
	}, opts)

	return &Scene{
		Camera: camera,
		Sky:    NewSkyGradient(),
		Shapes: noiseSpheres(random),
	}, nil
}

// newSimpleLightScene is only lit by its emitters
func newSimpleLightScene(random *rand.Rand, opts Options) (*Scene, error) {
	light := material.NewDiffuseLight(core.NewVec3(4, 4, 4))

	shapes := noiseSpheres(random)
	shapes = append(shapes,
		geometry.NewRect(geometry.XY, 3, 5, 1, 3, -2, light),
		geometry.NewSphere(core.NewVec3(0, 7, 0), 2, light),
	)

	camera := newCamera(renderer.CameraConfig{
		Center:      core.NewVec3(26, 3, 6),
		LookAt:      core.NewVec3(0, 2, 0),
		Up:          core.NewVec3(0, 1, 0),
		VFov:        20,
		AspectRatio: 16.0 / 9.0,
	}, opts)

	return &Scene{
		Camera: camera,
		Sky:    &SolidBackground{},
		Shapes: shapes,
	}, nil
}
