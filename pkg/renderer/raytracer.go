// Package renderer turns a scene into pixels: it maps pixels to camera rays,
// runs the integrator on a pool of workers and gamma-corrects the averages.
package renderer

import (
	"errors"
	"fmt"
	"time"

	"github.com/df07/go-pathtracer/pkg/integrator"
	"github.com/df07/go-pathtracer/pkg/log"
)

var logger = log.New("renderer")

// ErrInvalidConfig is returned for non-positive image sizes, sample counts or depths
var ErrInvalidConfig = errors.New("invalid render configuration")

// Scene is what the renderer needs from a scene: something to trace against
// and a camera to look through.
type Scene interface {
	integrator.World
	GetCamera() *Camera
}

// Config contains rendering configuration
type Config struct {
	Width           int
	Height          int
	SamplesPerPixel int   // Number of rays per pixel
	MaxDepth        int   // Maximum ray bounce depth
	TileSize        int   // Tile edge length in pixels
	NumWorkers      int   // 0 picks DefaultWorkers
	Seed            int64 // Base seed; tile n uses Seed+n
}

// DefaultConfig returns sensible default values
func DefaultConfig() Config {
	return Config{
		Width:           400,
		Height:          200,
		SamplesPerPixel: 100,
		MaxDepth:        50,
		TileSize:        32,
		NumWorkers:      0,
		Seed:            42,
	}
}

// Validate rejects configurations that cannot produce an image
func (c Config) Validate() error {
	switch {
	case c.Width <= 0 || c.Height <= 0:
		return fmt.Errorf("%w: image size %dx%d", ErrInvalidConfig, c.Width, c.Height)
	case c.SamplesPerPixel <= 0:
		return fmt.Errorf("%w: %d samples per pixel", ErrInvalidConfig, c.SamplesPerPixel)
	case c.MaxDepth < 0:
		return fmt.Errorf("%w: max depth %d", ErrInvalidConfig, c.MaxDepth)
	}
	return nil
}

// Raytracer renders a scene with the path tracing integrator
type Raytracer struct {
	scene      Scene
	config     Config
	integrator integrator.Integrator
}

// NewRaytracer creates a new raytracer
func NewRaytracer(scene Scene, config Config) *Raytracer {
	return &Raytracer{
		scene:      scene,
		config:     config,
		integrator: integrator.NewPathTracingIntegrator(config.MaxDepth),
	}
}

// Render renders every tile to completion. Output is identical for identical
// configs regardless of worker count.
func (rt *Raytracer) Render() (*Framebuffer, RenderStats, error) {
	if err := rt.config.Validate(); err != nil {
		return nil, RenderStats{}, err
	}

	width, height := rt.config.Width, rt.config.Height
	tiles := NewTileGrid(width, height, rt.config.TileSize, rt.config.Seed)
	fb := NewFramebuffer(width, height)

	tileRenderer := NewTileRenderer(rt.scene, rt.integrator, width, height, rt.config.SamplesPerPixel)
	pool := NewWorkerPool(tileRenderer, fb, rt.config.NumWorkers, len(tiles))

	logger.Infof("rendering %dx%d at %d spp, depth %d, %d tiles on %d workers",
		width, height, rt.config.SamplesPerPixel, rt.config.MaxDepth, len(tiles), pool.GetNumWorkers())

	start := time.Now()
	pool.Start()
	for i, tile := range tiles {
		pool.SubmitTask(TileTask{Tile: tile, TaskID: i})
	}

	stats := RenderStats{
		Width:           width,
		Height:          height,
		SamplesPerPixel: rt.config.SamplesPerPixel,
		MaxDepth:        rt.config.MaxDepth,
		Tiles:           len(tiles),
		Workers:         pool.GetNumWorkers(),
	}
	for i := 0; i < len(tiles); i++ {
		result, ok := pool.GetResult()
		if !ok {
			return nil, RenderStats{}, fmt.Errorf("worker pool closed after %d of %d tiles", i, len(tiles))
		}
		stats.TotalPixels += result.Stats.Pixels
		stats.TotalSamples += result.Stats.Samples
		logger.Debugf("tile %d done (%d/%d)", result.TaskID, i+1, len(tiles))
	}
	pool.Stop()
	stats.Duration = time.Since(start)

	logger.Infof("render finished in %s", stats.Duration)
	return fb, stats, nil
}
