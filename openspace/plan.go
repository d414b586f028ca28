// Package openspace implements a coarse trajectory generator for
// non-holonomic vehicles in unstructured open-space environments: a
// Hybrid A* search with Reeds-Shepp analytic shortcutting, followed by a
// piecewise-jerk speed-profiling pass, in the style of the teacher's
// motionplan package but specialized to parking/pull-over maneuvers
// rather than arm motion planning.
package openspace

import (
	"context"
	"math"

	"github.com/golang/geo/r2"
	"github.com/pkg/errors"
	"github.com/viam-labs/openspace-planner/geom"
	"github.com/viam-labs/openspace-planner/logging"
)

// Result is the six parallel sequences plus accumulated arc length
// spec.md section 3 calls HybridResult.
type Result struct {
	X, Y, Phi, V []float64
	A, Steer     []float64
	AccumulatedS []float64
}

func isFinitePose(p geom.Pose) bool {
	return !math.IsNaN(p.X) && !math.IsInf(p.X, 0) &&
		!math.IsNaN(p.Y) && !math.IsInf(p.Y, 0) &&
		!math.IsNaN(p.Phi) && !math.IsInf(p.Phi, 0)
}

// Plan is the orchestrator entry point, composing the grid heuristic, the
// hybrid A* search, trajectory assembly and speed profiling into a single
// call, per spec.md section 4.9 and SPEC_FULL.md section 9. ctx is
// consulted cooperatively at the same point the astar_max_search_time
// budget is checked; it does not replace that budget.
func Plan(
	ctx context.Context,
	start, goal geom.Pose,
	workspace geom.Workspace,
	obstaclePolygons [][]r2.Point,
	softBoundaryPolygons [][]r2.Point,
	reedsSheppLastStraight bool,
	cfg Config,
	logger logging.Logger,
) (*Result, error) {
	if logger == nil {
		logger = logging.NewNoopLogger()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if !isFinitePose(start) || !isFinitePose(goal) {
		return nil, errors.Wrap(ErrInvalidInput, "start/goal pose must be finite")
	}
	for _, poly := range obstaclePolygons {
		if len(poly) == 0 {
			return nil, errors.Wrap(ErrInvalidInput, "obstacle polygon must not be empty")
		}
	}

	for _, poly := range softBoundaryPolygons {
		logger.Debugf("soft boundary polygon with %d vertices accepted, not collision-checked", len(poly))
	}

	var obstacles []geom.Segment
	for _, poly := range obstaclePolygons {
		obstacles = append(obstacles, geom.PolygonToSegments(poly)...)
	}

	search := newHybridAStar(cfg, workspace, obstacles, goal, reedsSheppLastStraight, logger)
	terminal, err := search.searchWithContext(ctx, start, goal, cfg)
	if err != nil {
		return nil, errors.Wrap(err, "hybrid A* search")
	}

	poses, err := assembleTrajectory(terminal)
	if err != nil {
		return nil, errors.Wrap(err, "trajectory assembly")
	}

	result, err := buildSpeedProfile(poses, cfg, logger)
	if err != nil {
		return nil, errors.Wrap(err, "speed profiling")
	}

	gearSwitches := len(partitionByGear(poses)) - 1
	logger.Infof("plan succeeded: %d points, %d gear switch(es), path length %.2fm",
		len(result.X), gearSwitches, result.AccumulatedS[len(result.AccumulatedS)-1])

	return result, nil
}
