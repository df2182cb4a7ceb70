// Package material implements the scattering model: given a hit it yields
// a scattered ray and attenuation, an emission, or nothing.
package material

import (
	"math/rand"

	"github.com/df07/go-pathtracer/pkg/core"
)

// Material is the closed set *Lambertian, *Metal, *Dielectric and
// *DiffuseLight. The unexported marker keeps other packages from adding variants.
type Material interface {
	// Scatter returns the outgoing ray and its attenuation, or false when the
	// material absorbs the incoming ray.
	Scatter(rayIn core.Ray, hit HitRecord, random *rand.Rand) (ScatterResult, bool)

	// Emit returns emitted radiance at the hit's surface coordinates.
	Emit(u, v float64, point core.Vec3) core.Vec3

	sealed()
}

// ScatterResult contains the result of material scattering
type ScatterResult struct {
	Scattered   core.Ray  // The scattered ray
	Attenuation core.Vec3 // Color attenuation
}

// HitRecord contains information about a ray-object intersection.
// It is a plain value produced per query and never retained by the tracer.
type HitRecord struct {
	T         float64   // Parameter t along the ray
	Point     core.Vec3 // Point of intersection
	Normal    core.Vec3 // Unit normal, always opposing the incoming ray
	U, V      float64   // Surface coordinates
	FrontFace bool      // Whether the outward normal already opposed the ray
	Material  Material  // Material of the hit object
}

// SetFaceNormal sets the normal vector and determines front/back face
func (h *HitRecord) SetFaceNormal(ray core.Ray, outwardNormal core.Vec3) {
	h.FrontFace = ray.Direction.Dot(outwardNormal) < 0
	if h.FrontFace {
		h.Normal = outwardNormal
	} else {
		h.Normal = outwardNormal.Negate()
	}
}

var black = core.Vec3{}
