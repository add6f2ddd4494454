package core

import (
	"fmt"
	"sort"
)

// BVHNode is an internal node of a Bounding Volume Hierarchy. Leaves are the primitives
// themselves; a node over a single primitive holds it as both children.
type BVHNode struct {
	Left  Hittable
	Right Hittable
	Box   AABB
}

// NewBVH builds a BVH over objects, bounding every primitive over [time0, time1] so moving
// primitives stay inside their node boxes for any ray time within the interval.
// The split axis of each node is drawn from sampler. The objects slice is not modified.
func NewBVH(objects []Hittable, time0, time1 float64, sampler Sampler) (*BVHNode, error) {
	if len(objects) == 0 {
		return nil, ErrEmptyScene
	}

	// Sorting happens in place, work on a copy so callers keep their ordering
	objectsCopy := make([]Hittable, len(objects))
	copy(objectsCopy, objects)

	return buildBVH(objectsCopy, time0, time1, sampler)
}

// buildBVH recursively splits objects at the median of a randomly chosen axis
func buildBVH(objects []Hittable, time0, time1 float64, sampler Sampler) (*BVHNode, error) {
	axis := min(int(3*sampler.Get1D()), 2)
	if err := sortObjectsByAxis(objects, axis, time0, time1); err != nil {
		return nil, err
	}

	node := &BVHNode{}
	switch len(objects) {
	case 1:
		node.Left = objects[0]
		node.Right = objects[0]
	case 2:
		node.Left = objects[0]
		node.Right = objects[1]
	default:
		mid := len(objects) / 2
		left, err := buildBVH(objects[:mid], time0, time1, sampler)
		if err != nil {
			return nil, err
		}
		right, err := buildBVH(objects[mid:], time0, time1, sampler)
		if err != nil {
			return nil, err
		}
		node.Left = left
		node.Right = right
	}

	boxLeft, okLeft := node.Left.BoundingBox(time0, time1)
	boxRight, okRight := node.Right.BoundingBox(time0, time1)
	if !okLeft || !okRight {
		return nil, ErrNoBoundingBox
	}
	node.Box = SurroundingBox(boxLeft, boxRight)

	return node, nil
}

// sortObjectsByAxis sorts objects by the minimum corner of their bounding boxes along axis
func sortObjectsByAxis(objects []Hittable, axis int, time0, time1 float64) error {
	type keyed struct {
		key    float64
		object Hittable
	}

	entries := make([]keyed, len(objects))
	for i, object := range objects {
		box, ok := object.BoundingBox(time0, time1)
		if !ok {
			return fmt.Errorf("object %d (%T): %w", i, object, ErrNoBoundingBox)
		}
		entries[i] = keyed{key: box.Min.Axis(axis), object: object}
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].key < entries[j].key
	})
	for i, entry := range entries {
		objects[i] = entry.object
	}
	return nil
}

// Hit tests the node box first and prunes the whole subtree on a miss. Otherwise both
// children are tested, since the random split gives no guarantee the nearer surface lives
// in the left one.
func (n *BVHNode) Hit(ray Ray, tMin, tMax float64) (*HitRecord, bool) {
	if !n.Box.Hit(ray, tMin, tMax) {
		return nil, false
	}

	hitLeft, isHitLeft := n.Left.Hit(ray, tMin, tMax)

	// The right child only has to beat the left hit
	closestSoFar := tMax
	if isHitLeft {
		closestSoFar = hitLeft.T
	}
	hitRight, isHitRight := n.Right.Hit(ray, tMin, closestSoFar)

	switch {
	case isHitRight:
		return hitRight, true
	case isHitLeft:
		return hitLeft, true
	default:
		return nil, false
	}
}

// BoundingBox returns the box computed at construction time
func (n *BVHNode) BoundingBox(time0, time1 float64) (AABB, bool) {
	return n.Box, true
}

// bvhStats contains statistics about the BVH structure
type bvhStats struct {
	totalNodes int
	leaves     int
	maxDepth   int
}

// getStats walks the tree collecting structural statistics
func (n *BVHNode) getStats() bvhStats {
	stats := bvhStats{}
	n.collectStats(0, &stats)
	return stats
}

// collectStats recursively collects statistics about the BVH
func (n *BVHNode) collectStats(depth int, stats *bvhStats) {
	stats.totalNodes++
	stats.maxDepth = max(stats.maxDepth, depth)

	for _, child := range []Hittable{n.Left, n.Right} {
		if node, ok := child.(*BVHNode); ok {
			node.collectStats(depth+1, stats)
		} else {
			stats.leaves++
		}
	}
}
