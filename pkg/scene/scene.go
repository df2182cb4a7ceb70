// Package scene assembles shapes, a camera and a background into a renderable
// world and keeps a registry of the built-in worlds.
package scene

import (
	"fmt"
	"math/rand"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/log"
	"github.com/df07/go-pathtracer/pkg/material"
	"github.com/df07/go-pathtracer/pkg/renderer"
)

var logger = log.New("scene")

// Scene contains all the elements needed for rendering. Shapes and materials
// must not change after Preprocess.
type Scene struct {
	Name      string
	Camera    *renderer.Camera
	Shapes    []geometry.Shape
	Sky       Background
	TimeStart float64 // Shutter interval the BVH bounds cover
	TimeEnd   float64
	BVH       *geometry.BVH
}

// Preprocess builds the BVH over the scene's shapes
func (s *Scene) Preprocess(random *rand.Rand) error {
	bvh, err := geometry.NewBVH(random, s.Shapes, s.TimeStart, s.TimeEnd)
	if err != nil {
		return fmt.Errorf("building BVH for scene %q: %w", s.Name, err)
	}
	s.BVH = bvh

	stats := bvh.Stats()
	logger.Infof("scene %q: %d shapes, %d BVH nodes, max depth %d", s.Name, stats.Shapes, stats.Nodes, stats.MaxDepth)
	return nil
}

// Hit returns the nearest intersection; the scene must have been preprocessed
func (s *Scene) Hit(ray core.Ray, tMin, tMax float64) (material.HitRecord, bool) {
	if s.BVH == nil {
		return material.HitRecord{}, false
	}
	return s.BVH.Hit(ray, tMin, tMax)
}

// Background returns the radiance for rays that escape the scene
func (s *Scene) Background(ray core.Ray) core.Vec3 {
	if s.Sky == nil {
		return core.Vec3{}
	}
	return s.Sky.Color(ray)
}

// GetCamera returns the scene camera
func (s *Scene) GetCamera() *renderer.Camera {
	return s.Camera
}

// GetPrimitiveCount returns the number of top-level shapes
func (s *Scene) GetPrimitiveCount() int {
	return len(s.Shapes)
}
