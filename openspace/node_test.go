package openspace

import (
	"testing"

	"github.com/viam-labs/openspace-planner/geom"
	"go.viam.com/test"
)

func TestQuantizeIsPureFunction(t *testing.T) {
	p := geom.Pose{X: 1.25, Y: -0.65, Phi: 0.31}
	a := quantize(p, 0.3, 0.2)
	b := quantize(p, 0.3, 0.2)
	test.That(t, a, test.ShouldResemble, b)
}

func TestQuantizeNegativeCoordinates(t *testing.T) {
	// -0.1 at resolution 0.3 should floor to cell -1, not 0.
	idx := quantize(geom.Pose{X: -0.1, Y: 0, Phi: 0}, 0.3, 0.2)
	test.That(t, idx[0], test.ShouldEqual, int32(-1))
}

func TestNewSeedNodeSingleElementTraversed(t *testing.T) {
	p := geom.Pose{X: 1, Y: 2, Phi: 0}
	n := newSeedNode(p, 0.3, 0.2)
	test.That(t, len(n.traversed), test.ShouldEqual, 1)
	test.That(t, n.traversed[0], test.ShouldResemble, p)
	test.That(t, n.predecessor, test.ShouldBeNil)
}

func TestNewExpandedNodeTerminalMatchesLastTraversed(t *testing.T) {
	parent := newSeedNode(geom.Pose{X: 0, Y: 0, Phi: 0}, 0.3, 0.2)
	traversed := []geom.Pose{
		{X: 0, Y: 0, Phi: 0},
		{X: 0.5, Y: 0, Phi: 0},
	}
	n := newExpandedNode(parent, traversed, true, 0.1, 0.3, 0.2)
	test.That(t, n.pose, test.ShouldResemble, traversed[len(traversed)-1])
	test.That(t, n.predecessor, test.ShouldEqual, parent)
}

func TestPoseNodeFIsTrajPlusHeuristic(t *testing.T) {
	n := &poseNode{trajCost: 3, heuristicCost: 4}
	test.That(t, n.f(), test.ShouldAlmostEqual, 7.0)
}
