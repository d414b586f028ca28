package openspace

import "github.com/viam-labs/openspace-planner/geom"

// collisionChecker tests whether a traversed pose sequence keeps the
// vehicle footprint inside the workspace and disjoint from every
// obstacle segment, per spec.md section 4.4.
type collisionChecker struct {
	ws           geom.Workspace
	obstacles    []geom.Segment
	length       float64
	width        float64
	centerOffset float64
}

func newCollisionChecker(cfg Config, ws geom.Workspace, obstacles []geom.Segment) *collisionChecker {
	return &collisionChecker{
		ws:           ws,
		obstacles:    obstacles,
		length:       cfg.VehicleLength,
		width:        cfg.VehicleWidth,
		centerOffset: cfg.centerOffset(),
	}
}

// validate scans node.traversed starting at index 0 for a single-pose
// (seed) node, or index 1 otherwise -- the boundary pose at index 0 was
// already validated as the parent's terminal pose.
func (c *collisionChecker) validate(n *poseNode) bool {
	start := 1
	if len(n.traversed) == 1 {
		start = 0
	}
	for i := start; i < len(n.traversed); i++ {
		if !c.validatePose(n.traversed[i]) {
			return false
		}
	}
	return true
}

func (c *collisionChecker) validatePose(p geom.Pose) bool {
	if !c.ws.Contains(p.X, p.Y) {
		return false
	}
	if len(c.obstacles) == 0 {
		return true
	}
	footprint := geom.FootprintAt(p, c.length, c.width, c.centerOffset)
	return !footprint.IntersectsAnySegment(c.obstacles)
}
