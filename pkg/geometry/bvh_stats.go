package geometry

// BVHStats summarizes the shape of a hierarchy
type BVHStats struct {
	Shapes       int
	Nodes        int
	Leaves       int
	Internal     int
	MaxDepth     int
	AvgLeafDepth float64
}

// Stats walks the hierarchy from the root
func (b *BVH) Stats() BVHStats {
	stats := BVHStats{Shapes: len(b.Shapes), Nodes: len(b.Nodes)}
	if b.Root < 0 {
		return stats
	}

	totalLeafDepth := 0
	var walk func(index, depth int)
	walk = func(index, depth int) {
		node := b.Nodes[index]
		if depth > stats.MaxDepth {
			stats.MaxDepth = depth
		}
		if node.IsLeaf() {
			stats.Leaves++
			totalLeafDepth += depth
			return
		}
		stats.Internal++
		walk(node.Left, depth+1)
		walk(node.Right, depth+1)
	}
	walk(b.Root, 0)

	stats.AvgLeafDepth = float64(totalLeafDepth) / float64(stats.Leaves)
	return stats
}

// LevelOrder returns node indices breadth-first from the root
func (b *BVH) LevelOrder() []int {
	if b.Root < 0 {
		return nil
	}

	order := make([]int, 0, len(b.Nodes))
	queue := []int{b.Root}
	for len(queue) > 0 {
		index := queue[0]
		queue = queue[1:]
		order = append(order, index)

		if node := b.Nodes[index]; !node.IsLeaf() {
			queue = append(queue, node.Left, node.Right)
		}
	}
	return order
}
