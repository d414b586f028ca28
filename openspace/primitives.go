package openspace

import (
	"math"

	"github.com/viam-labs/openspace-planner/geom"
)

// primitiveExpander generates the fixed fan of child nodes from a parent
// by forward-simulating a kinematic bicycle model at discrete steering
// angles, in both forward and reverse directions, per spec.md section 4.3.
type primitiveExpander struct {
	nextNodeNum int
	maxSteer    float64
	wheelBase   float64
	stepSize    float64
	arcLength   float64
	ws          geom.Workspace
}

func newPrimitiveExpander(cfg Config, ws geom.Workspace) *primitiveExpander {
	maxSteer := cfg.effectiveMaxSteer()
	half := float64(cfg.NextNodeNum/2 - 1)
	var fromPhiRes float64
	if half > 0 {
		fromPhiRes = cfg.PhiGridResolution * cfg.WheelBase / math.Tan(maxSteer*2/half)
	} else {
		fromPhiRes = 0
	}
	arcLength := math.Max(fromPhiRes, math.Sqrt2*cfg.XYGridResolution)
	return &primitiveExpander{
		nextNodeNum: cfg.NextNodeNum,
		maxSteer:    maxSteer,
		wheelBase:   cfg.WheelBase,
		stepSize:    cfg.StepSize,
		arcLength:   arcLength,
		ws:          ws,
	}
}

// steeringSample returns the steering angle assigned to primitive index i,
// linearly spaced across [-maxSteer, +maxSteer] using N/2 samples.
func (e *primitiveExpander) steeringSample(i int) float64 {
	half := e.nextNodeNum / 2
	pos := i % half
	if half == 1 {
		return 0
	}
	frac := float64(pos) / float64(half-1)
	return -e.maxSteer + frac*2*e.maxSteer
}

// bicycleStep integrates one substep of the kinematic bicycle model,
// per spec.md section 4.3's update equations.
func bicycleStep(p geom.Pose, steer, travel, wheelBase float64) geom.Pose {
	nextPhi := p.Phi + travel/wheelBase*math.Tan(steer)
	mid := (p.Phi + nextPhi) / 2
	return geom.Pose{
		X:   p.X + travel*math.Cos(mid),
		Y:   p.Y + travel*math.Sin(mid),
		Phi: geom.NormalizeAngle(nextPhi),
	}
}

// expand simulates primitive index i from parent, returning the child node
// and true on success, or (nil, false) if the resulting pose leaves the
// workspace.
func (e *primitiveExpander) expand(parent *poseNode, i int, xyRes, phiRes float64) (*poseNode, bool) {
	forward := i < e.nextNodeNum/2
	travel := e.stepSize
	if !forward {
		travel = -e.stepSize
	}
	steer := e.steeringSample(i)

	substeps := int(e.arcLength / e.stepSize)
	if substeps < 1 {
		substeps = 1
	}

	traversed := make([]geom.Pose, 0, substeps+1)
	traversed = append(traversed, parent.pose)
	pose := parent.pose
	for s := 0; s < substeps; s++ {
		pose = bicycleStep(pose, steer, travel, e.wheelBase)
		traversed = append(traversed, pose)
	}

	if !e.ws.Contains(pose.X, pose.Y) {
		return nil, false
	}

	child := newExpandedNode(parent, traversed, forward, steer, xyRes, phiRes)
	child.travelDistance = math.Abs(travel) * float64(substeps)
	return child, true
}
