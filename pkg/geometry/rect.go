package geometry

import (
	"fmt"
	"math"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/material"
)

// Orientation names the plane an axis-aligned rectangle lies in
type Orientation int

const (
	XY Orientation = iota // fixed z, normal +z
	XZ                    // fixed y, normal +y
	YZ                    // fixed x, normal +x
)

func (o Orientation) String() string {
	switch o {
	case XY:
		return "xy"
	case XZ:
		return "xz"
	case YZ:
		return "yz"
	}
	return fmt.Sprintf("Orientation(%d)", int(o))
}

// axes returns the two free axes and the fixed axis
func (o Orientation) axes() (a, b, k int) {
	switch o {
	case XZ:
		return 0, 2, 1
	case YZ:
		return 1, 2, 0
	default:
		return 0, 1, 2
	}
}

// Rect is an axis-aligned rectangle spanning [A0,A1]×[B0,B1] on its free axes at
// K on the fixed axis. Flip points the outward normal down the fixed axis.
type Rect struct {
	Orientation Orientation
	A0, A1      float64
	B0, B1      float64
	K           float64
	Flip        bool
	Material    material.Material
}

// NewRect creates a rectangle facing the positive fixed axis
func NewRect(orientation Orientation, a0, a1, b0, b1, k float64, mat material.Material) *Rect {
	return &Rect{
		Orientation: orientation,
		A0:          math.Min(a0, a1),
		A1:          math.Max(a0, a1),
		B0:          math.Min(b0, b1),
		B1:          math.Max(b0, b1),
		K:           k,
		Material:    mat,
	}
}

// NewFlippedRect creates a rectangle facing the negative fixed axis
func NewFlippedRect(orientation Orientation, a0, a1, b0, b1, k float64, mat material.Material) *Rect {
	r := NewRect(orientation, a0, a1, b0, b1, k, mat)
	r.Flip = true
	return r
}

// Hit tests if a ray crosses the rectangle
func (r *Rect) Hit(ray core.Ray, tMin, tMax float64) (material.HitRecord, bool) {
	aAxis, bAxis, kAxis := r.Orientation.axes()

	// A ray parallel to the plane gives ±Inf or NaN here, both rejected
	t := (r.K - ray.Origin.Axis(kAxis)) / ray.Direction.Axis(kAxis)
	if math.IsInf(t, 0) || !(t >= tMin && t <= tMax) {
		return material.HitRecord{}, false
	}

	a := ray.Origin.Axis(aAxis) + t*ray.Direction.Axis(aAxis)
	b := ray.Origin.Axis(bAxis) + t*ray.Direction.Axis(bAxis)
	if !(a >= r.A0 && a <= r.A1 && b >= r.B0 && b <= r.B1) {
		return material.HitRecord{}, false
	}

	hit := material.HitRecord{
		T:        t,
		Point:    ray.At(t),
		U:        (a - r.A0) / (r.A1 - r.A0),
		V:        (b - r.B0) / (r.B1 - r.B0),
		Material: r.Material,
	}
	hit.SetFaceNormal(ray, r.outwardNormal())
	return hit, true
}

// BoundingBox returns the rectangle's extents padded along its normal axis
func (r *Rect) BoundingBox(t0, t1 float64) (core.AABB, bool) {
	aAxis, bAxis, kAxis := r.Orientation.axes()
	lo := fromAxes(aAxis, bAxis, kAxis, r.A0, r.B0, r.K)
	hi := fromAxes(aAxis, bAxis, kAxis, r.A1, r.B1, r.K)
	return core.NewAABB(lo, hi).Pad(kAxis, rectPadding), true
}

func (r *Rect) sealed() {}

func (r *Rect) outwardNormal() core.Vec3 {
	aAxis, bAxis, kAxis := r.Orientation.axes()
	if r.Flip {
		return fromAxes(aAxis, bAxis, kAxis, 0, 0, -1)
	}
	return fromAxes(aAxis, bAxis, kAxis, 0, 0, 1)
}

// fromAxes assembles a vector from values keyed by axis index
func fromAxes(aAxis, bAxis, kAxis int, a, b, k float64) core.Vec3 {
	var v core.Vec3
	setAxis(&v, aAxis, a)
	setAxis(&v, bAxis, b)
	setAxis(&v, kAxis, k)
	return v
}

func setAxis(v *core.Vec3, axis int, value float64) {
	switch axis {
	case 0:
		v.X = value
	case 1:
		v.Y = value
	default:
		v.Z = value
	}
}
