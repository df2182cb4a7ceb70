// Package integrator estimates the radiance carried along a ray.
package integrator

import (
	"math/rand"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/material"
)

// World is the read-only view of a scene the integrator traces against
type World interface {
	// Hit returns the nearest intersection in [tMin, tMax]
	Hit(ray core.Ray, tMin, tMax float64) (material.HitRecord, bool)

	// Background returns the radiance arriving along a ray that hits nothing
	Background(ray core.Ray) core.Vec3
}

// Integrator defines the interface for light transport algorithms
type Integrator interface {
	RayColor(ray core.Ray, world World, random *rand.Rand) core.Vec3
}
