package geometry

import (
	"fmt"
	"math/rand"
	"sort"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/material"
)

// BVHNode is one entry of the BVH arena. A leaf stores a shape index and
// Left == Right == -1; an internal node stores the indices of its two children.
type BVHNode struct {
	Bounds core.AABB
	Left   int
	Right  int
	Shape  int
}

// IsLeaf reports whether the node references a shape directly
func (n BVHNode) IsLeaf() bool {
	return n.Left < 0
}

// BVH is a bounding volume hierarchy stored as a flat, append-only node slice.
// It is read-only once built and safe for concurrent queries.
type BVH struct {
	Shapes    []Shape
	Nodes     []BVHNode
	Root      int // -1 for an empty hierarchy
	TimeStart float64
	TimeEnd   float64
}

// NewBVH builds a hierarchy over shapes, whose bounds are taken over
// [timeStart, timeEnd]. Split axes are drawn from random. Every shape must
// report a bounding box; otherwise the build fails with ErrUnboundedShape.
func NewBVH(random *rand.Rand, shapes []Shape, timeStart, timeEnd float64) (*BVH, error) {
	b := &BVH{
		Shapes:    make([]Shape, len(shapes)),
		Root:      -1,
		TimeStart: timeStart,
		TimeEnd:   timeEnd,
	}
	copy(b.Shapes, shapes)

	if len(shapes) == 0 {
		return b, nil
	}

	boxes := make([]core.AABB, len(shapes))
	for i, shape := range shapes {
		box, ok := shape.BoundingBox(timeStart, timeEnd)
		if !ok {
			return nil, fmt.Errorf("shape %d (%T): %w", i, shape, ErrUnboundedShape)
		}
		if !box.IsValid() {
			return nil, fmt.Errorf("shape %d (%T) bounds %v: %w", i, shape, box, ErrInvalidBounds)
		}
		boxes[i] = box
	}

	indices := make([]int, len(shapes))
	for i := range indices {
		indices[i] = i
	}

	// n leaves plus n-1 internal nodes
	b.Nodes = make([]BVHNode, 0, 2*len(shapes)-1)
	b.Root = b.build(random, indices, boxes)
	return b, nil
}

// build reorders the index range and returns the index of its subtree root.
// Children are always appended before their parent.
func (b *BVH) build(random *rand.Rand, indices []int, boxes []core.AABB) int {
	axis := random.Intn(3)
	sort.SliceStable(indices, func(i, j int) bool {
		return boxes[indices[i]].Min.Axis(axis) < boxes[indices[j]].Min.Axis(axis)
	})

	switch len(indices) {
	case 1:
		return b.appendLeaf(indices[0], boxes)
	case 2:
		left := b.appendLeaf(indices[0], boxes)
		right := b.appendLeaf(indices[1], boxes)
		return b.appendInternal(left, right)
	}

	mid := len(indices) / 2
	left := b.build(random, indices[:mid], boxes)
	right := b.build(random, indices[mid:], boxes)
	return b.appendInternal(left, right)
}

func (b *BVH) appendLeaf(shape int, boxes []core.AABB) int {
	b.Nodes = append(b.Nodes, BVHNode{Bounds: boxes[shape], Left: -1, Right: -1, Shape: shape})
	return len(b.Nodes) - 1
}

func (b *BVH) appendInternal(left, right int) int {
	bounds := b.Nodes[left].Bounds.Union(b.Nodes[right].Bounds)
	b.Nodes = append(b.Nodes, BVHNode{Bounds: bounds, Left: left, Right: right, Shape: -1})
	return len(b.Nodes) - 1
}

// Hit returns the nearest intersection in [tMin, tMax]
func (b *BVH) Hit(ray core.Ray, tMin, tMax float64) (material.HitRecord, bool) {
	hit, _, ok := b.HitShape(ray, tMin, tMax)
	return hit, ok
}

// HitShape is Hit that also reports the index into Shapes of the shape hit
func (b *BVH) HitShape(ray core.Ray, tMin, tMax float64) (material.HitRecord, int, bool) {
	if b.Root < 0 {
		return material.HitRecord{}, -1, false
	}
	return b.hitNode(b.Root, ray, tMin, tMax)
}

func (b *BVH) hitNode(index int, ray core.Ray, tMin, tMax float64) (material.HitRecord, int, bool) {
	node := &b.Nodes[index]
	if node.IsLeaf() {
		hit, ok := b.Shapes[node.Shape].Hit(ray, tMin, tMax)
		return hit, node.Shape, ok
	}

	if !node.Bounds.Hit(ray, tMin, tMax) {
		return material.HitRecord{}, -1, false
	}

	// Both children are always visited; the right one only needs to beat the left
	leftHit, leftShape, hitLeft := b.hitNode(node.Left, ray, tMin, tMax)
	closest := tMax
	if hitLeft {
		closest = leftHit.T
	}

	rightHit, rightShape, hitRight := b.hitNode(node.Right, ray, tMin, closest)
	if hitRight {
		return rightHit, rightShape, true
	}
	if !hitLeft {
		return material.HitRecord{}, -1, false
	}
	return leftHit, leftShape, true
}

// HitLinear tests every shape in turn. It answers the same query as Hit and
// exists for verification and benchmarking.
func (b *BVH) HitLinear(ray core.Ray, tMin, tMax float64) (material.HitRecord, bool) {
	var closest material.HitRecord
	hitAnything := false
	closestSoFar := tMax

	for _, shape := range b.Shapes {
		if hit, ok := shape.Hit(ray, tMin, closestSoFar); ok {
			hitAnything = true
			closestSoFar = hit.T
			closest = hit
		}
	}

	return closest, hitAnything
}

// BoundingBox returns the root bounds
func (b *BVH) BoundingBox() (core.AABB, bool) {
	if b.Root < 0 {
		return core.AABB{}, false
	}
	return b.Nodes[b.Root].Bounds, true
}
