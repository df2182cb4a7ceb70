package scene

import (
	"math/rand"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/loaders"
	"github.com/df07/go-pathtracer/pkg/material"
	"github.com/df07/go-pathtracer/pkg/renderer"
	"github.com/df07/go-pathtracer/pkg/texture"
)

func newTexturedScene(random *rand.Rand, opts Options) (*Scene, error) {
	var globe texture.Texture
	if opts.TexturePath != "" {
		img, err := loaders.LoadImageTexture(opts.TexturePath)
		if err != nil {
			return nil, err
		}
		globe = img
	} else {
		globe = uvGrid(64, 32)
	}

	floor := material.NewTexturedLambertian(texture.NewCheckerColors(
		core.NewVec3(0.1, 0.1, 0.1),
		core.NewVec3(0.8, 0.8, 0.8),
	))

	camera := newCamera(renderer.CameraConfig{
		Center:      core.NewVec3(0, 1, 5),
		LookAt:      core.NewVec3(0, 1, 0),
		Up:          core.NewVec3(0, 1, 0),
		VFov:        35,
		AspectRatio: 16.0 / 9.0,
	}, opts)

	return &Scene{
		Camera: camera,
		Sky:    NewSkyGradient(),
		Shapes: []geometry.Shape{
			geometry.NewRect(geometry.XZ, -20, 20, -20, 20, 0, floor),
			geometry.NewSphere(core.NewVec3(0, 1, 0), 1, material.NewTexturedLambertian(globe)),
		},
	}, nil
}

// uvGrid generates a texture of red-green UV ramps with white grid lines
func uvGrid(width, height int) *texture.Image {
	pixels := make([]core.Vec3, width*height)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			if x%8 == 0 || y%8 == 0 {
				pixels[y*width+x] = core.NewVec3(1, 1, 1)
				continue
			}
			pixels[y*width+x] = core.NewVec3(float64(x)/float64(width), float64(y)/float64(height), 0.3)
		}
	}
	// Dimensions and pixel count agree by construction
	img, _ := texture.NewImage(width, height, pixels)
	return img
}
