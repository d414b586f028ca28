package openspace

import (
	"math"
	"testing"

	"github.com/viam-labs/openspace-planner/geom"
	"go.viam.com/test"
)

func testExpanderConfig() (Config, geom.Workspace) {
	cfg := DefaultConfig()
	ws := geom.Workspace{XMin: -20, XMax: 20, YMin: -20, YMax: 20}
	return cfg, ws
}

func TestSteeringSampleSpansFullRange(t *testing.T) {
	cfg, ws := testExpanderConfig()
	e := newPrimitiveExpander(cfg, ws)
	half := cfg.NextNodeNum / 2
	test.That(t, e.steeringSample(0), test.ShouldAlmostEqual, -cfg.MaxSteer, 1e-9)
	test.That(t, e.steeringSample(half-1), test.ShouldAlmostEqual, cfg.MaxSteer, 1e-9)
}

func TestExpandForwardAndReverseDirections(t *testing.T) {
	cfg, ws := testExpanderConfig()
	e := newPrimitiveExpander(cfg, ws)
	parent := newSeedNode(geom.Pose{X: 0, Y: 0, Phi: 0}, cfg.XYGridResolution, cfg.PhiGridResolution)

	forwardChild, ok := e.expand(parent, 0, cfg.XYGridResolution, cfg.PhiGridResolution)
	test.That(t, ok, test.ShouldBeTrue)
	test.That(t, forwardChild.direction, test.ShouldBeTrue)

	reverseChild, ok := e.expand(parent, cfg.NextNodeNum/2, cfg.XYGridResolution, cfg.PhiGridResolution)
	test.That(t, ok, test.ShouldBeTrue)
	test.That(t, reverseChild.direction, test.ShouldBeFalse)
	test.That(t, reverseChild.pose.X, test.ShouldBeLessThan, 0)
}

func TestExpandTraversedIncludesParentPoseFirst(t *testing.T) {
	cfg, ws := testExpanderConfig()
	e := newPrimitiveExpander(cfg, ws)
	parent := newSeedNode(geom.Pose{X: 1, Y: 2, Phi: 0.2}, cfg.XYGridResolution, cfg.PhiGridResolution)
	child, ok := e.expand(parent, 1, cfg.XYGridResolution, cfg.PhiGridResolution)
	test.That(t, ok, test.ShouldBeTrue)
	test.That(t, child.traversed[0], test.ShouldResemble, parent.pose)
	test.That(t, child.pose, test.ShouldResemble, child.traversed[len(child.traversed)-1])
}

func TestExpandFailsOutsideWorkspace(t *testing.T) {
	cfg := DefaultConfig()
	ws := geom.Workspace{XMin: -1, XMax: 1, YMin: -1, YMax: 1}
	e := newPrimitiveExpander(cfg, ws)
	parent := newSeedNode(geom.Pose{X: 0.9, Y: 0, Phi: 0}, cfg.XYGridResolution, cfg.PhiGridResolution)
	_, ok := e.expand(parent, 0, cfg.XYGridResolution, cfg.PhiGridResolution)
	test.That(t, ok, test.ShouldBeFalse)
}

// TestMotionPrimitiveReversibility exercises the law from spec.md section 8:
// integrating (steer, +step) then (steer, -step) for the same arc length
// returns to the original pose within numerical tolerance.
func TestMotionPrimitiveReversibility(t *testing.T) {
	wheelBase := 2.8
	steer := 0.3
	step := 0.5
	start := geom.Pose{X: 1, Y: -2, Phi: 0.4}

	forward := bicycleStep(start, steer, step, wheelBase)
	back := bicycleStep(forward, steer, -step, wheelBase)

	test.That(t, back.X, test.ShouldAlmostEqual, start.X, 1e-9)
	test.That(t, back.Y, test.ShouldAlmostEqual, start.Y, 1e-9)
	test.That(t, math.Abs(geom.NormalizeAngle(back.Phi-start.Phi)), test.ShouldBeLessThan, 1e-9)
}
