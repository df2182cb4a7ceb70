// Package geometry holds the shape primitives and the BVH that accelerates
// nearest-hit queries over them.
package geometry

import (
	"errors"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/material"
)

// ErrUnboundedShape is returned when a shape cannot report a bounding box
var ErrUnboundedShape = errors.New("shape has no bounding box")

// ErrInvalidBounds is returned when a shape's box has min > max or NaN corners
var ErrInvalidBounds = errors.New("shape has an invalid bounding box")

// Shape is the closed set *Sphere, *MovingSphere, *Rect and *Box.
type Shape interface {
	// Hit returns the intersection with the smallest t in [tMin, tMax], if any.
	Hit(ray core.Ray, tMin, tMax float64) (material.HitRecord, bool)

	// BoundingBox returns a box enclosing the shape over the time interval [t0, t1].
	BoundingBox(t0, t1 float64) (core.AABB, bool)

	sealed()
}

// rectPadding thickens flat shapes so their boxes have volume
const rectPadding = 0.0001
