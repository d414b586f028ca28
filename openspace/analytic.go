package openspace

import (
	"math"

	"github.com/viam-labs/openspace-planner/geom"
	"github.com/viam-labs/openspace-planner/reedsshepp"
)

// analyticExpander attempts a Reeds-Shepp shortcut from the current node
// straight to the goal, per spec.md section 4.5.
type analyticExpander struct {
	turningRadius float64
	resolution    float64
	lastStraight  bool
	checker       *collisionChecker
	xyRes, phiRes float64
}

func newAnalyticExpander(cfg Config, lastStraight bool, checker *collisionChecker) *analyticExpander {
	return &analyticExpander{
		turningRadius: cfg.WheelBase / math.Tan(cfg.effectiveMaxSteer()),
		resolution:    cfg.StepSize,
		lastStraight:  lastStraight,
		checker:       checker,
		xyRes:         cfg.XYGridResolution,
		phiRes:        cfg.PhiGridResolution,
	}
}

// tryShortcut attempts a validated Reeds-Shepp curve from current to goal.
// On success it returns a node attached as current's child with
// trajCost = current.trajCost + rs_cost.
func (a *analyticExpander) tryShortcut(current *poseNode, goal geom.Pose) (*poseNode, bool) {
	path, ok := reedsshepp.ShortestPath(current.pose, goal, a.turningRadius, a.resolution, a.lastStraight)
	if !ok {
		return nil, false
	}

	traversed := make([]geom.Pose, 0, len(path.Nodes)+1)
	traversed = append(traversed, current.pose)
	for _, node := range path.Nodes {
		traversed = append(traversed, node.Pose)
	}

	candidate := newExpandedNode(current, traversed, true, 0, a.xyRes, a.phiRes)
	if !a.checker.validate(candidate) {
		return nil, false
	}

	candidate.trajCost = current.trajCost + path.Cost
	return candidate, true
}
