package geometry

import (
	"errors"
	"math"
	"math/rand"
	"reflect"
	"testing"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/material"
)

// randomShapes mixes every shape kind, each with its own material so hits can
// be attributed to a shape.
func randomShapes(random *rand.Rand, n int) []Shape {
	shapes := make([]Shape, 0, n)
	for i := 0; i < n; i++ {
		mat := material.NewLambertian(core.RandomVec3(random, 0, 1))
		center := core.RandomVec3(random, -10, 10)
		size := 0.2 + random.Float64()

		switch i % 5 {
		case 0, 1:
			shapes = append(shapes, NewSphere(center, size, mat))
		case 2:
			shapes = append(shapes, NewMovingSphere(center, center.Add(core.NewVec3(0, random.Float64(), 0)), 0, 1, size, mat))
		case 3:
			orientation := Orientation(random.Intn(3))
			shapes = append(shapes, NewRect(orientation, center.X, center.X+size, center.Y, center.Y+size, center.Z, mat))
		default:
			shapes = append(shapes, NewBox(center, center.Add(core.NewVec3(size, size, size)), mat))
		}
	}
	return shapes
}

func TestBVH_MatchesLinearScan(t *testing.T) {
	for _, n := range []int{1, 2, 3, 7, 64, 300} {
		random := rand.New(rand.NewSource(int64(n)))
		shapes := randomShapes(random, n)

		bvh, err := NewBVH(random, shapes, 0, 1)
		if err != nil {
			t.Fatalf("Unexpected error building BVH for %d shapes: %v", n, err)
		}

		hits := 0
		for i := 0; i < 2000; i++ {
			origin := core.RandomVec3(random, -15, 15)
			target := core.RandomVec3(random, -10, 10)
			if i%2 == 0 {
				// Aim half the rays at a shape so small scenes still get hits
				box, _ := shapes[random.Intn(n)].BoundingBox(0, 1)
				target = box.Center()
			}
			ray := core.NewRayAt(origin, target.Subtract(origin), random.Float64())

			fast, fastOK := bvh.Hit(ray, 0.001, math.Inf(1))
			slow, slowOK := bvh.HitLinear(ray, 0.001, math.Inf(1))

			if fastOK != slowOK {
				t.Fatalf("n=%d ray %d: expected hit=%v, got %v", n, i, slowOK, fastOK)
			}
			if !fastOK {
				continue
			}
			hits++
			if math.Abs(fast.T-slow.T) > 1e-9 {
				t.Errorf("n=%d ray %d: expected t=%f, got t=%f", n, i, slow.T, fast.T)
			}
			if fast.Material != slow.Material {
				t.Errorf("n=%d ray %d: expected the same shape to be hit", n, i)
			}
		}
		if hits == 0 {
			t.Errorf("n=%d: expected some rays to hit", n)
		}
	}
}

func TestBVH_HitShape(t *testing.T) {
	mat := material.NewLambertian(core.NewVec3(0.5, 0.5, 0.5))
	center := core.NewVec3(0, 0, -1)
	shapes := []Shape{
		NewSphere(core.NewVec3(5, 0, -1), 0.5, mat),
		NewSphere(center, 1.0, mat),
		NewSphere(center, 0.5, mat),
		NewSphere(core.NewVec3(-5, 0, -1), 0.5, mat),
	}
	bvh, err := NewBVH(rand.New(rand.NewSource(3)), shapes, 0, 1)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	tests := []struct {
		name     string
		origin   core.Vec3
		expected int
	}{
		{"outside the shared centre hits the outer sphere", core.NewVec3(0, 0, 5), 1},
		{"from the centre the inner sphere exits first", center, 2},
		{"side sphere", core.NewVec3(5, 0, 5), 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ray := core.NewRay(tt.origin, core.NewVec3(0, 0, -1))

			hit, index, ok := bvh.HitShape(ray, 0.001, math.Inf(1))
			if !ok {
				t.Fatal("Expected a hit")
			}
			if index != tt.expected {
				t.Errorf("Expected shape %d, got %d", tt.expected, index)
			}
			own, _ := bvh.Shapes[index].Hit(ray, 0.001, math.Inf(1))
			if own.T != hit.T {
				t.Errorf("Expected reported shape to own t=%f, got t=%f", hit.T, own.T)
			}
		})
	}

	if _, index, ok := bvh.HitShape(core.NewRay(core.NewVec3(0, 10, 0), core.NewVec3(0, 1, 0)), 0.001, math.Inf(1)); ok || index != -1 {
		t.Errorf("Expected a miss with index -1, got %d", index)
	}
}

func TestBVH_Structure(t *testing.T) {
	for _, n := range []int{1, 2, 5, 16, 101} {
		random := rand.New(rand.NewSource(42))
		bvh, err := NewBVH(random, randomShapes(random, n), 0, 1)
		if err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}

		if len(bvh.Nodes) != 2*n-1 {
			t.Errorf("n=%d: expected %d nodes, got %d", n, 2*n-1, len(bvh.Nodes))
		}
		if bvh.Root != len(bvh.Nodes)-1 {
			t.Errorf("n=%d: expected root to be the last node, got %d", n, bvh.Root)
		}

		seen := make(map[int]int)
		parents := make(map[int]int)
		for i, node := range bvh.Nodes {
			if node.IsLeaf() {
				if node.Right != -1 {
					t.Errorf("n=%d node %d: leaf with a right child", n, i)
				}
				seen[node.Shape]++
				continue
			}
			if node.Left < 0 || node.Right < 0 || node.Left == node.Right {
				t.Errorf("n=%d node %d: expected two distinct children, got %d and %d", n, i, node.Left, node.Right)
				continue
			}
			if node.Left >= i || node.Right >= i {
				t.Errorf("n=%d node %d: children must precede their parent", n, i)
			}
			parents[node.Left]++
			parents[node.Right]++
			if !node.Bounds.Contains(bvh.Nodes[node.Left].Bounds) || !node.Bounds.Contains(bvh.Nodes[node.Right].Bounds) {
				t.Errorf("n=%d node %d: bounds do not contain children", n, i)
			}
		}

		if len(seen) != n {
			t.Errorf("n=%d: expected %d distinct shapes in leaves, got %d", n, n, len(seen))
		}
		for shape, count := range seen {
			if count != 1 {
				t.Errorf("n=%d: shape %d appears in %d leaves", n, shape, count)
			}
		}
		for i := range bvh.Nodes {
			if i == bvh.Root {
				continue
			}
			if parents[i] != 1 {
				t.Errorf("n=%d node %d: expected exactly one parent, got %d", n, i, parents[i])
			}
		}
	}
}

func TestBVH_Empty(t *testing.T) {
	bvh, err := NewBVH(rand.New(rand.NewSource(1)), nil, 0, 1)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if bvh.Root != -1 {
		t.Errorf("Expected root -1, got %d", bvh.Root)
	}
	if _, ok := bvh.Hit(core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -1)), 0.001, math.Inf(1)); ok {
		t.Error("Expected no hit in an empty hierarchy")
	}
	if _, ok := bvh.BoundingBox(); ok {
		t.Error("Expected no bounds for an empty hierarchy")
	}
	if order := bvh.LevelOrder(); order != nil {
		t.Errorf("Expected nil level order, got %v", order)
	}
	if stats := bvh.Stats(); stats.Leaves != 0 || stats.Nodes != 0 {
		t.Errorf("Expected empty stats, got %+v", stats)
	}
}

type unboundedShape struct{}

func (unboundedShape) Hit(ray core.Ray, tMin, tMax float64) (material.HitRecord, bool) {
	return material.HitRecord{}, false
}

func (unboundedShape) BoundingBox(t0, t1 float64) (core.AABB, bool) {
	return core.AABB{}, false
}

func (unboundedShape) sealed() {}

func TestBVH_UnboundedShape(t *testing.T) {
	shapes := []Shape{
		NewSphere(core.NewVec3(0, 0, 0), 1, nil),
		unboundedShape{},
	}
	_, err := NewBVH(rand.New(rand.NewSource(1)), shapes, 0, 1)
	if !errors.Is(err, ErrUnboundedShape) {
		t.Errorf("Expected ErrUnboundedShape, got %v", err)
	}
}

func TestBVH_InvalidBounds(t *testing.T) {
	shapes := []Shape{
		NewSphere(core.NewVec3(0, 0, 0), 1, nil),
		NewSphere(core.NewVec3(math.NaN(), 0, 0), 1, nil),
	}
	_, err := NewBVH(rand.New(rand.NewSource(1)), shapes, 0, 1)
	if !errors.Is(err, ErrInvalidBounds) {
		t.Errorf("Expected ErrInvalidBounds, got %v", err)
	}
}

func TestBVH_Deterministic(t *testing.T) {
	shapes := randomShapes(rand.New(rand.NewSource(9)), 50)

	a, _ := NewBVH(rand.New(rand.NewSource(3)), shapes, 0, 1)
	b, _ := NewBVH(rand.New(rand.NewSource(3)), shapes, 0, 1)
	if !reflect.DeepEqual(a.Nodes, b.Nodes) {
		t.Error("Expected identical hierarchies for identical seeds")
	}
}

func TestBVH_LeavesInputUntouched(t *testing.T) {
	shapes := randomShapes(rand.New(rand.NewSource(5)), 20)
	original := make([]Shape, len(shapes))
	copy(original, shapes)

	if _, err := NewBVH(rand.New(rand.NewSource(1)), shapes, 0, 1); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	for i := range shapes {
		if shapes[i] != original[i] {
			t.Fatalf("Expected input order preserved at %d", i)
		}
	}
}

func TestBVH_StatsAndLevelOrder(t *testing.T) {
	random := rand.New(rand.NewSource(11))
	bvh, _ := NewBVH(random, randomShapes(random, 8), 0, 1)

	stats := bvh.Stats()
	if stats.Shapes != 8 || stats.Leaves != 8 || stats.Internal != 7 || stats.Nodes != 15 {
		t.Errorf("Expected 8 shapes, 8 leaves, 7 internal, 15 nodes, got %+v", stats)
	}
	// Half splits of 8 give a perfect tree of depth 3
	if stats.MaxDepth != 3 || stats.AvgLeafDepth != 3 {
		t.Errorf("Expected depth 3, got max %d avg %f", stats.MaxDepth, stats.AvgLeafDepth)
	}

	order := bvh.LevelOrder()
	if len(order) != 15 {
		t.Fatalf("Expected 15 nodes in level order, got %d", len(order))
	}
	if order[0] != bvh.Root {
		t.Errorf("Expected level order to start at the root, got %d", order[0])
	}
	for i := 7; i < 15; i++ {
		if !bvh.Nodes[order[i]].IsLeaf() {
			t.Errorf("Expected the last level to be all leaves, node %d is internal", order[i])
		}
	}
}
