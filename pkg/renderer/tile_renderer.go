package renderer

import (
	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/integrator"
)

// TileRenderer renders whole tiles into a shared framebuffer. It holds no
// mutable state, so one instance serves every worker.
type TileRenderer struct {
	scene           Scene
	integrator      integrator.Integrator
	width, height   int
	samplesPerPixel int
}

// NewTileRenderer creates a tile renderer for an image of the given size
func NewTileRenderer(scene Scene, integratorInst integrator.Integrator, width, height, samplesPerPixel int) *TileRenderer {
	return &TileRenderer{
		scene:           scene,
		integrator:      integratorInst,
		width:           width,
		height:          height,
		samplesPerPixel: samplesPerPixel,
	}
}

// RenderTile samples every pixel of tile and writes the result to fb.
// Tiles never overlap, so concurrent calls touch disjoint parts of fb.
func (tr *TileRenderer) RenderTile(tile *Tile, fb *Framebuffer) TileStats {
	bounds := tile.Bounds
	stats := TileStats{Pixels: bounds.Dx() * bounds.Dy()}

	for j := bounds.Min.Y; j < bounds.Max.Y; j++ {
		for i := bounds.Min.X; i < bounds.Max.X; i++ {
			fb.Set(i, j, ToRGB8(tr.SamplePixel(tile, i, j)))
		}
	}

	stats.Samples = stats.Pixels * tr.samplesPerPixel
	return stats
}

// SamplePixel averages samplesPerPixel jittered rays through pixel (i, j),
// where j counts rows from the top of the image.
func (tr *TileRenderer) SamplePixel(tile *Tile, i, j int) core.Vec3 {
	camera := tr.scene.GetCamera()
	random := tile.Random

	// The camera measures t from the bottom edge
	jMath := tr.height - 1 - j

	var accum core.Vec3
	for sample := 0; sample < tr.samplesPerPixel; sample++ {
		s := (float64(i) + random.Float64()) / float64(tr.width)
		t := (float64(jMath) + random.Float64()) / float64(tr.height)

		ray := camera.GetRay(random, s, t)
		accum = accum.Add(tr.integrator.RayColor(ray, tr.scene, random))
	}

	return accum.Multiply(1.0 / float64(tr.samplesPerPixel))
}
