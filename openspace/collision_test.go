package openspace

import (
	"testing"

	"github.com/viam-labs/openspace-planner/geom"
	"go.viam.com/test"
)

func testChecker(obstacles []geom.Segment) *collisionChecker {
	cfg := DefaultConfig()
	ws := geom.Workspace{XMin: -10, XMax: 10, YMin: -10, YMax: 10}
	return newCollisionChecker(cfg, ws, obstacles)
}

func TestCollisionCheckerNoObstaclesAccepts(t *testing.T) {
	c := testChecker(nil)
	n := newSeedNode(geom.Pose{X: 0, Y: 0, Phi: 0}, 0.3, 0.2)
	test.That(t, c.validate(n), test.ShouldBeTrue)
}

func TestCollisionCheckerRejectsOutOfWorkspace(t *testing.T) {
	c := testChecker(nil)
	n := newSeedNode(geom.Pose{X: 100, Y: 0, Phi: 0}, 0.3, 0.2)
	test.That(t, c.validate(n), test.ShouldBeFalse)
}

func TestCollisionCheckerRejectsObstacleOverlap(t *testing.T) {
	obstacles := []geom.Segment{
		{A: geom.Pose{X: -1, Y: -5}.Point(), B: geom.Pose{X: -1, Y: 5}.Point()},
	}
	c := testChecker(obstacles)
	n := newSeedNode(geom.Pose{X: -1, Y: 0, Phi: 0}, 0.3, 0.2)
	test.That(t, c.validate(n), test.ShouldBeFalse)
}

func TestCollisionCheckerSkipsBoundaryPoseForExpandedNode(t *testing.T) {
	// The boundary pose at index 0 sits on an obstacle, but was already
	// validated by the parent; the expanded node must only scan index 1+.
	obstacles := []geom.Segment{
		{A: geom.Pose{X: 0, Y: -5}.Point(), B: geom.Pose{X: 0, Y: 5}.Point()},
	}
	c := testChecker(obstacles)
	parent := newSeedNode(geom.Pose{X: 0, Y: 0, Phi: 0}, 0.3, 0.2)
	child := newExpandedNode(parent, []geom.Pose{
		{X: 0, Y: 0, Phi: 0},
		{X: 1, Y: 0, Phi: 0},
	}, true, 0, 0.3, 0.2)
	test.That(t, c.validate(child), test.ShouldBeTrue)
}
