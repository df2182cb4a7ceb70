package core

import "math"

// AABB represents an axis-aligned bounding box
type AABB struct {
	Min Vec3 // Minimum corner
	Max Vec3 // Maximum corner
}

// NewAABB creates a new AABB from two opposite corners, in any order
func NewAABB(a, b Vec3) AABB {
	return AABB{Min: a.Min(b), Max: a.Max(b)}
}

// Hit tests if a ray intersects with this AABB using the slab method.
//
// Zero direction components are not special-cased: 1/0 yields a signed
// infinity and the slab bounds collapse to ±Inf, which either keeps or empties
// the interval exactly as the limit case would. A NaN bound (origin lying on a
// slab plane of a parallel ray) never narrows the interval.
func (aabb AABB) Hit(ray Ray, tMin, tMax float64) bool {
	for axis := 0; axis < 3; axis++ {
		invDirection := 1.0 / ray.Direction.Axis(axis)
		origin := ray.Origin.Axis(axis)

		t0 := (aabb.Min.Axis(axis) - origin) * invDirection
		t1 := (aabb.Max.Axis(axis) - origin) * invDirection
		if invDirection < 0 {
			t0, t1 = t1, t0
		}

		if t0 > tMin {
			tMin = t0
		}
		if t1 < tMax {
			tMax = t1
		}

		if tMax <= tMin {
			return false
		}
	}

	return true
}

// Union returns an AABB that bounds both this AABB and another
func (aabb AABB) Union(other AABB) AABB {
	return AABB{
		Min: aabb.Min.Min(other.Min),
		Max: aabb.Max.Max(other.Max),
	}
}

// Contains reports whether other lies entirely inside this box
func (aabb AABB) Contains(other AABB) bool {
	return aabb.Min.X <= other.Min.X && aabb.Min.Y <= other.Min.Y && aabb.Min.Z <= other.Min.Z &&
		aabb.Max.X >= other.Max.X && aabb.Max.Y >= other.Max.Y && aabb.Max.Z >= other.Max.Z
}

// Center returns the center point of the AABB
func (aabb AABB) Center() Vec3 {
	return aabb.Min.Add(aabb.Max).Multiply(0.5)
}

// IsValid returns true if this is a valid AABB (min <= max for all axes)
func (aabb AABB) IsValid() bool {
	return aabb.Min.X <= aabb.Max.X &&
		aabb.Min.Y <= aabb.Max.Y &&
		aabb.Min.Z <= aabb.Max.Z
}

// Pad widens the box along axis so its thickness there is at least 2*delta
func (aabb AABB) Pad(axis int, delta float64) AABB {
	lo, hi := aabb.Min.Axis(axis), aabb.Max.Axis(axis)
	if hi-lo >= 2*delta {
		return aabb
	}
	mid := (lo + hi) * 0.5
	lo, hi = mid-delta, mid+delta
	switch axis {
	case 0:
		aabb.Min.X, aabb.Max.X = lo, hi
	case 1:
		aabb.Min.Y, aabb.Max.Y = lo, hi
	default:
		aabb.Min.Z, aabb.Max.Z = lo, hi
	}
	return aabb
}

// Empty is the identity element for Union
var Empty = AABB{
	Min: Vec3{math.Inf(1), math.Inf(1), math.Inf(1)},
	Max: Vec3{math.Inf(-1), math.Inf(-1), math.Inf(-1)},
}
