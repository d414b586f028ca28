package reedsshepp

import (
	"math"
	"testing"

	"github.com/viam-labs/openspace-planner/geom"
	"go.viam.com/test"
)

func TestShortestPathStraightLine(t *testing.T) {
	start := geom.Pose{X: 0, Y: 0, Phi: 0}
	goal := geom.Pose{X: 10, Y: 0, Phi: 0}
	path, ok := ShortestPath(start, goal, 5.0, 0.5, false)
	test.That(t, ok, test.ShouldBeTrue)
	test.That(t, path.Cost, test.ShouldAlmostEqual, 10.0, 1e-2)
	test.That(t, len(path.Nodes), test.ShouldBeGreaterThan, 0)
	last := path.Nodes[len(path.Nodes)-1].Pose
	test.That(t, last.X, test.ShouldAlmostEqual, 10.0, 1e-1)
	test.That(t, last.Y, test.ShouldAlmostEqual, 0.0, 1e-1)
}

func TestShortestPathSamePose(t *testing.T) {
	p := geom.Pose{X: 1, Y: 2, Phi: 0.3}
	path, ok := ShortestPath(p, p, 5.0, 0.5, false)
	test.That(t, ok, test.ShouldBeTrue)
	test.That(t, path.Cost, test.ShouldBeLessThan, 1e-3)
}

func TestShortestPathReachesGoal(t *testing.T) {
	start := geom.Pose{X: 0, Y: 0, Phi: 0}
	goal := geom.Pose{X: 4, Y: 4, Phi: math.Pi / 2}
	path, ok := ShortestPath(start, goal, 3.0, 0.2, false)
	test.That(t, ok, test.ShouldBeTrue)
	last := path.Nodes[len(path.Nodes)-1].Pose
	test.That(t, last.X, test.ShouldAlmostEqual, goal.X, 0.3)
	test.That(t, last.Y, test.ShouldAlmostEqual, goal.Y, 0.3)
	test.That(t, geom.NormalizeAngle(last.Phi-goal.Phi), test.ShouldAlmostEqual, 0.0, 0.1)
}

func TestShortestPathLastStraightPreference(t *testing.T) {
	start := geom.Pose{X: 0, Y: 0, Phi: 0}
	goal := geom.Pose{X: 8, Y: 1, Phi: 0.1}
	path, ok := ShortestPath(start, goal, 4.0, 0.5, true)
	test.That(t, ok, test.ShouldBeTrue)
	test.That(t, path.Cost, test.ShouldBeGreaterThan, 0)
}

func TestShortestPathRejectsBadRadius(t *testing.T) {
	_, ok := ShortestPath(geom.Pose{}, geom.Pose{X: 1}, 0, 0.5, false)
	test.That(t, ok, test.ShouldBeFalse)
	_, ok = ShortestPath(geom.Pose{}, geom.Pose{X: 1}, 1, 0, false)
	test.That(t, ok, test.ShouldBeFalse)
}
