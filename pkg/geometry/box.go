package geometry

import (
	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/material"
)

// Box is an axis-aligned box made of six rectangles sharing one material
type Box struct {
	Min, Max core.Vec3
	Material material.Material
	sides    [6]*Rect
}

// NewBox creates a box spanning the two corners p0 and p1
func NewBox(p0, p1 core.Vec3, mat material.Material) *Box {
	lo, hi := p0.Min(p1), p0.Max(p1)
	b := &Box{Min: lo, Max: hi, Material: mat}

	b.sides[0] = NewRect(XY, lo.X, hi.X, lo.Y, hi.Y, hi.Z, mat)
	b.sides[1] = NewFlippedRect(XY, lo.X, hi.X, lo.Y, hi.Y, lo.Z, mat)
	b.sides[2] = NewRect(XZ, lo.X, hi.X, lo.Z, hi.Z, hi.Y, mat)
	b.sides[3] = NewFlippedRect(XZ, lo.X, hi.X, lo.Z, hi.Z, lo.Y, mat)
	b.sides[4] = NewRect(YZ, lo.Y, hi.Y, lo.Z, hi.Z, hi.X, mat)
	b.sides[5] = NewFlippedRect(YZ, lo.Y, hi.Y, lo.Z, hi.Z, lo.X, mat)

	return b
}

// Sides returns the six faces of the box
func (b *Box) Sides() []*Rect {
	return b.sides[:]
}

// Hit returns the nearest face hit
func (b *Box) Hit(ray core.Ray, tMin, tMax float64) (material.HitRecord, bool) {
	var closest material.HitRecord
	hitAnything := false
	closestSoFar := tMax

	for _, side := range b.sides {
		if hit, ok := side.Hit(ray, tMin, closestSoFar); ok {
			hitAnything = true
			closestSoFar = hit.T
			closest = hit
		}
	}

	return closest, hitAnything
}

// BoundingBox returns the union of the faces' boxes
func (b *Box) BoundingBox(t0, t1 float64) (core.AABB, bool) {
	box := core.Empty
	for _, side := range b.sides {
		sideBox, _ := side.BoundingBox(t0, t1)
		box = box.Union(sideBox)
	}
	return box, true
}

func (b *Box) sealed() {}
