package scene

import (
	"math/rand"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/material"
	"github.com/df07/go-pathtracer/pkg/renderer"
)

// cornellSize is the edge length of the standard Cornell box
const cornellSize = 555.0

// newCornellScene creates a classic Cornell box lit only by its ceiling light
func newCornellScene(random *rand.Rand, opts Options) (*Scene, error) {
	red := material.NewLambertian(core.NewVec3(0.65, 0.05, 0.05))
	white := material.NewLambertian(core.NewVec3(0.73, 0.73, 0.73))
	green := material.NewLambertian(core.NewVec3(0.12, 0.45, 0.15))
	light := material.NewDiffuseLight(core.NewVec3(15, 15, 15))

	shapes := []geometry.Shape{
		geometry.NewFlippedRect(geometry.YZ, 0, cornellSize, 0, cornellSize, cornellSize, green),
		geometry.NewRect(geometry.YZ, 0, cornellSize, 0, cornellSize, 0, red),
		geometry.NewFlippedRect(geometry.XZ, 213, 343, 227, 332, cornellSize-1, light),
		geometry.NewFlippedRect(geometry.XZ, 0, cornellSize, 0, cornellSize, cornellSize, white),
		geometry.NewRect(geometry.XZ, 0, cornellSize, 0, cornellSize, 0, white),
		geometry.NewFlippedRect(geometry.XY, 0, cornellSize, 0, cornellSize, cornellSize, white),

		geometry.NewBox(core.NewVec3(130, 0, 65), core.NewVec3(295, 165, 230), white),
		geometry.NewBox(core.NewVec3(265, 0, 295), core.NewVec3(430, 330, 460), white),
	}

	camera := newCamera(renderer.CameraConfig{
		Center:      core.NewVec3(278, 278, -800),
		LookAt:      core.NewVec3(278, 278, 0),
		Up:          core.NewVec3(0, 1, 0),
		VFov:        40,
		AspectRatio: 1.0,
	}, opts)

	return &Scene{
		Camera: camera,
		Sky:    &SolidBackground{},
		Shapes: shapes,
	}, nil
}
