package scene

import "github.com/df07/go-pathtracer/pkg/core"

// Background colours rays that hit nothing
type Background interface {
	Color(ray core.Ray) core.Vec3
}

// SkyGradient blends from Bottom to Top by the ray's vertical direction
type SkyGradient struct {
	Bottom core.Vec3
	Top    core.Vec3
}

// NewSkyGradient returns the white to sky-blue gradient
func NewSkyGradient() *SkyGradient {
	return &SkyGradient{
		Bottom: core.NewVec3(1.0, 1.0, 1.0),
		Top:    core.NewVec3(0.5, 0.7, 1.0),
	}
}

// Color maps direction.y from [-1,1] to a blend factor in [0,1]
func (g *SkyGradient) Color(ray core.Ray) core.Vec3 {
	t := 0.5 * (ray.Direction.Normalize().Y + 1.0)
	return g.Bottom.Lerp(g.Top, t)
}

// SolidBackground returns the same colour in every direction
type SolidBackground struct {
	Value core.Vec3
}

// Color returns the fixed colour
func (b *SolidBackground) Color(ray core.Ray) core.Vec3 {
	return b.Value
}
