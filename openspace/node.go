package openspace

import "github.com/viam-labs/openspace-planner/geom"

// gridIndex is the compact integer tuple spec.md section 9 calls for in
// place of a string key: comparable, usable directly as a map key.
type gridIndex [3]int32

func quantize(p geom.Pose, xyRes, phiRes float64) gridIndex {
	return gridIndex{
		int32(floorDiv(p.X, xyRes)),
		int32(floorDiv(p.Y, xyRes)),
		int32(floorDiv(geom.NormalizeAngle(p.Phi), phiRes)),
	}
}

func floorDiv(x, res float64) int64 {
	q := x / res
	f := int64(q)
	if q < 0 && float64(f) != q {
		f--
	}
	return f
}

// poseNode is a single vertex in the hybrid A* search tree: a terminal
// pose plus every intermediate pose traversed to reach it from its
// parent, per spec.md section 3.
type poseNode struct {
	pose      geom.Pose
	index     gridIndex
	traversed []geom.Pose

	trajCost      float64
	heuristicCost float64

	direction bool // true: forward motion on the incoming edge
	steering  float64

	predecessor *poseNode

	travelDistance float64 // diagnostic: |arc length| of the incoming edge

	seq int // insertion sequence, for stable priority-queue tie-breaking
}

// newSeedNode builds a start/goal seed node: a single-pose node with no
// incoming edge.
func newSeedNode(p geom.Pose, xyRes, phiRes float64) *poseNode {
	return &poseNode{
		pose:      p,
		index:     quantize(p, xyRes, phiRes),
		traversed: []geom.Pose{p},
	}
}

// newExpandedNode builds a node reached by traversing a sequence of
// intermediate poses from parent, ending at the last element of traversed.
func newExpandedNode(parent *poseNode, traversed []geom.Pose, direction bool, steering float64, xyRes, phiRes float64) *poseNode {
	terminal := traversed[len(traversed)-1]
	return &poseNode{
		pose:        terminal,
		index:       quantize(terminal, xyRes, phiRes),
		traversed:   traversed,
		predecessor: parent,
		direction:   direction,
		steering:    steering,
	}
}

func (n *poseNode) f() float64 {
	return n.trajCost + n.heuristicCost
}
