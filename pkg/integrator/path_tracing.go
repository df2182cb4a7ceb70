package integrator

import (
	"math"
	"math/rand"

	"github.com/df07/go-pathtracer/pkg/core"
)

// ShadowEpsilon is the minimum hit distance; it keeps scattered rays from
// re-hitting the surface they left.
const ShadowEpsilon = 0.001

// PathTracingIntegrator implements unidirectional path tracing
type PathTracingIntegrator struct {
	MaxDepth int
}

// NewPathTracingIntegrator creates a new path tracing integrator
func NewPathTracingIntegrator(maxDepth int) *PathTracingIntegrator {
	return &PathTracingIntegrator{MaxDepth: maxDepth}
}

// RayColor traces ray with the integrator's bounce limit
func (pt *PathTracingIntegrator) RayColor(ray core.Ray, world World, random *rand.Rand) core.Vec3 {
	return Radiance(ray, world, random, pt.MaxDepth)
}

// Radiance follows ray through at most depth bounces. A depth of zero or less
// contributes nothing, even if the ray would have missed everything.
func Radiance(ray core.Ray, world World, random *rand.Rand, depth int) core.Vec3 {
	if depth <= 0 {
		return core.Vec3{}
	}

	hit, isHit := world.Hit(ray, ShadowEpsilon, math.Inf(1))
	if !isHit {
		return world.Background(ray)
	}

	emitted := hit.Material.Emit(hit.U, hit.V, hit.Point)

	scatter, didScatter := hit.Material.Scatter(ray, hit, random)
	if !didScatter {
		return emitted
	}

	return emitted.Add(scatter.Attenuation.MultiplyVec(Radiance(scatter.Scattered, world, random, depth-1)))
}
