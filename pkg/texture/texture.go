// Package texture provides the colour sources materials sample at a hit.
package texture

import (
	"math"

	"github.com/df07/go-pathtracer/pkg/core"
)

// Texture provides spatially-varying colors for materials.
// Implementations are pure: the same (u, v, point) always yields the same color.
type Texture interface {
	Value(u, v float64, point core.Vec3) core.Vec3
}

// Solid provides a uniform color
type Solid struct {
	Color core.Vec3
}

// NewSolid creates a new solid color texture
func NewSolid(color core.Vec3) *Solid {
	return &Solid{Color: color}
}

// Value returns the solid color regardless of UV or position
func (s *Solid) Value(u, v float64, point core.Vec3) core.Vec3 {
	return s.Color
}

// Checker alternates between two textures in a 3D sine lattice
type Checker struct {
	Even  Texture
	Odd   Texture
	Scale float64 // Lattice frequency, 10 when zero
}

// NewChecker creates a checker texture from two textures
func NewChecker(even, odd Texture) *Checker {
	return &Checker{Even: even, Odd: odd, Scale: 10}
}

// NewCheckerColors creates a checker texture from two solid colors
func NewCheckerColors(even, odd core.Vec3) *Checker {
	return NewChecker(NewSolid(even), NewSolid(odd))
}

// Value picks the even or odd texture by the sign of sin(sx)·sin(sy)·sin(sz)
func (c *Checker) Value(u, v float64, point core.Vec3) core.Vec3 {
	scale := c.Scale
	if scale == 0 {
		scale = 10
	}
	sines := math.Sin(scale*point.X) * math.Sin(scale*point.Y) * math.Sin(scale*point.Z)
	if sines < 0 {
		return c.Odd.Value(u, v, point)
	}
	return c.Even.Value(u, v, point)
}
