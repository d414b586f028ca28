package openspace

import (
	"testing"

	"github.com/viam-labs/openspace-planner/geom"
	"github.com/viam-labs/openspace-planner/logging"
	"go.viam.com/test"
)

func TestSearchStraightShotSucceeds(t *testing.T) {
	cfg := DefaultConfig()
	ws := geom.Workspace{XMin: -2, XMax: 12, YMin: -2, YMax: 2}
	start := geom.Pose{X: 0, Y: 0, Phi: 0}
	goal := geom.Pose{X: 10, Y: 0, Phi: 0}

	s := newHybridAStar(cfg, ws, nil, goal, false, logging.NewNoopLogger())
	terminal, err := s.search(start, goal, cfg)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, terminal, test.ShouldNotBeNil)
}

func TestSearchFailsWhenEndpointInCollision(t *testing.T) {
	cfg := DefaultConfig()
	ws := geom.Workspace{XMin: -2, XMax: 12, YMin: -2, YMax: 2}
	obstacles := []geom.Segment{
		{A: geom.Pose{X: -1, Y: -5}.Point(), B: geom.Pose{X: -1, Y: 5}.Point()},
	}
	start := geom.Pose{X: -1, Y: 0, Phi: 0}
	goal := geom.Pose{X: 10, Y: 0, Phi: 0}

	s := newHybridAStar(cfg, ws, obstacles, goal, false, logging.NewNoopLogger())
	_, err := s.search(start, goal, cfg)
	test.That(t, err, test.ShouldEqual, ErrEndpointInCollision)
}

func TestSearchFailsWhenBoxedIn(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MaxExploredNum = 200
	ws := geom.Workspace{XMin: -20, XMax: 20, YMin: -20, YMax: 20}
	ring := []geom.Segment{
		{A: geom.Pose{X: 6, Y: 6}.Point(), B: geom.Pose{X: 16, Y: 6}.Point()},
		{A: geom.Pose{X: 16, Y: 6}.Point(), B: geom.Pose{X: 16, Y: 16}.Point()},
		{A: geom.Pose{X: 16, Y: 16}.Point(), B: geom.Pose{X: 6, Y: 16}.Point()},
		{A: geom.Pose{X: 6, Y: 16}.Point(), B: geom.Pose{X: 6, Y: 6}.Point()},
	}
	start := geom.Pose{X: 0, Y: 0, Phi: 0}
	goal := geom.Pose{X: 10, Y: 10, Phi: 0}

	s := newHybridAStar(cfg, ws, ring, goal, false, logging.NewNoopLogger())
	_, err := s.search(start, goal, cfg)
	test.That(t, err, test.ShouldEqual, ErrSearchExhausted)
}
