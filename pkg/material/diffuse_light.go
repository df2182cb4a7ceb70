package material

import (
	"math/rand"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/texture"
)

// DiffuseLight is an emitter; it absorbs every incoming ray
type DiffuseLight struct {
	Emission texture.Texture
}

// NewDiffuseLight creates a light emitting a uniform color
func NewDiffuseLight(emission core.Vec3) *DiffuseLight {
	return &DiffuseLight{Emission: texture.NewSolid(emission)}
}

// NewTexturedDiffuseLight creates a light whose emission varies over the surface
func NewTexturedDiffuseLight(emission texture.Texture) *DiffuseLight {
	return &DiffuseLight{Emission: emission}
}

// Scatter never scatters
func (l *DiffuseLight) Scatter(rayIn core.Ray, hit HitRecord, random *rand.Rand) (ScatterResult, bool) {
	return ScatterResult{}, false
}

// Emit returns the emission texture at (u, v, point)
func (l *DiffuseLight) Emit(u, v float64, point core.Vec3) core.Vec3 {
	return l.Emission.Value(u, v, point)
}

func (l *DiffuseLight) sealed() {}
