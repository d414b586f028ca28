package openspace

import (
	"container/heap"
	"context"
	"math"
	"time"

	"github.com/viam-labs/openspace-planner/geom"
	"github.com/viam-labs/openspace-planner/logging"
)

const maxQueueSize = 200000

// nodeQueue is the open priority queue, ordered by f = trajCost +
// heuristicCost with insertion-order tie-breaking, per spec.md section 5's
// determinism requirement.
type nodeQueue struct {
	nodes []*poseNode
}

func (q nodeQueue) Len() int { return len(q.nodes) }
func (q nodeQueue) Less(i, j int) bool {
	fi, fj := q.nodes[i].f(), q.nodes[j].f()
	if fi != fj {
		return fi < fj
	}
	return q.nodes[i].seq < q.nodes[j].seq
}
func (q nodeQueue) Swap(i, j int) { q.nodes[i], q.nodes[j] = q.nodes[j], q.nodes[i] }

func (q *nodeQueue) Push(x interface{}) {
	q.nodes = append(q.nodes, x.(*poseNode))
}

func (q *nodeQueue) Pop() interface{} {
	old := q.nodes
	n := len(old)
	item := old[n-1]
	q.nodes = old[:n-1]
	return item
}

// hybridAStar composes the grid heuristic, motion-primitive expander,
// collision checker and analytic expander into the priority-queue-driven
// best-first search of spec.md section 4.6.
type hybridAStar struct {
	cfg       Config
	ws        geom.Workspace
	checker   *collisionChecker
	expander  *primitiveExpander
	analytic  *analyticExpander
	heuristic *gridHeuristic
	logger    logging.Logger
}

func newHybridAStar(cfg Config, ws geom.Workspace, obstacles []geom.Segment, goal geom.Pose, reedsSheppLastStraight bool, logger logging.Logger) *hybridAStar {
	checker := newCollisionChecker(cfg, ws, obstacles)
	return &hybridAStar{
		cfg:       cfg,
		ws:        ws,
		checker:   checker,
		expander:  newPrimitiveExpander(cfg, ws),
		analytic:  newAnalyticExpander(cfg, reedsSheppLastStraight, checker),
		heuristic: newGridHeuristic(goal, ws, obstacles, cfg.XYGridResolution),
		logger:    logger,
	}
}

// edgeCost computes the cost of a primitive edge into next from cur, per
// spec.md section 4.6's cost function.
// substeps is the child node's step count: the traversed poses include the
// shared parent boundary pose, so the number of integration steps the edge
// actually spans is substeps, not substeps-1.
func (s *hybridAStar) edgeCost(cur, next *poseNode, substeps int) float64 {
	var cost float64
	if next.direction {
		cost = s.cfg.TrajForwardPenalty * float64(substeps) * s.cfg.StepSize
	} else {
		cost = s.cfg.TrajBackPenalty * float64(substeps) * s.cfg.StepSize
	}
	if next.direction != cur.direction {
		cost += s.cfg.TrajGearSwitchPenalty
	}
	cost += s.cfg.TrajSteerPenalty * math.Abs(next.steering)
	cost += s.cfg.TrajSteerChangePenalty * math.Abs(next.steering-cur.steering)
	return cost
}

// search runs the best-first search from start to goal under a background
// context, for callers (and tests) that have no cancellation surface.
func (s *hybridAStar) search(start, goal geom.Pose, cfg Config) (*poseNode, error) {
	return s.searchWithContext(context.Background(), start, goal, cfg)
}

// searchWithContext is search, cooperatively checking ctx for cancellation
// at the same point the wall-clock search budget is checked, per spec.md
// section 5.
func (s *hybridAStar) searchWithContext(ctx context.Context, start, goal geom.Pose, cfg Config) (*poseNode, error) {
	startNode := newSeedNode(start, cfg.XYGridResolution, cfg.PhiGridResolution)
	goalNode := newSeedNode(goal, cfg.XYGridResolution, cfg.PhiGridResolution)

	if !s.checker.validate(startNode) || !s.checker.validate(goalNode) {
		return nil, ErrEndpointInCollision
	}

	startNode.heuristicCost = s.heuristic.lookup(start.X, start.Y)

	openSet := map[gridIndex]bool{}
	closedSet := map[gridIndex]bool{}
	pq := &nodeQueue{}
	heap.Init(pq)

	seq := 0
	startNode.seq = seq
	heap.Push(pq, startNode)
	openSet[startNode.index] = true

	var best *poseNode
	availableResultNum := 0
	exploredNodeNum := 0
	deadline := time.Now().Add(time.Duration(cfg.AStarMaxSearchTimeS * float64(time.Second)))

	for pq.Len() > 0 {
		if pq.Len() >= maxQueueSize {
			break
		}

		cur := heap.Pop(pq).(*poseNode)
		if closedSet[cur.index] {
			continue
		}

		if shortcut, ok := s.analytic.tryShortcut(cur, goal); ok {
			availableResultNum++
			if best == nil || shortcut.trajCost < best.trajCost {
				best = shortcut
			}
			s.logger.Debugf("analytic shortcut accepted, traj_cost=%.3f candidates=%d", shortcut.trajCost, availableResultNum)
		}

		closedSet[cur.index] = true
		exploredNodeNum++

		ctxDone := false
		select {
		case <-ctx.Done():
			ctxDone = true
		default:
		}

		if (time.Now().After(deadline) || ctxDone) && availableResultNum >= 1 {
			s.logger.Warnf("search budget exceeded with %d candidate(s); terminating", availableResultNum)
			break
		}
		if ctxDone && availableResultNum == 0 {
			return nil, ctx.Err()
		}

		if availableResultNum >= cfg.DesiredExploredNum {
			break
		}
		if exploredNodeNum >= cfg.MaxExploredNum {
			break
		}

		tempOpened := make([]*poseNode, 0, cfg.NextNodeNum)
		for i := 0; i < cfg.NextNodeNum; i++ {
			child, ok := s.expander.expand(cur, i, cfg.XYGridResolution, cfg.PhiGridResolution)
			if !ok {
				continue
			}
			if closedSet[child.index] {
				continue
			}
			if !s.checker.validate(child) {
				continue
			}
			if openSet[child.index] {
				continue
			}
			substeps := int(s.expander.arcLength / s.expander.stepSize)
			if substeps < 1 {
				substeps = 1
			}
			child.trajCost = cur.trajCost + s.edgeCost(cur, child, substeps)
			child.heuristicCost = s.heuristic.lookup(child.pose.X, child.pose.Y)
			seq++
			child.seq = seq
			tempOpened = append(tempOpened, child)
		}
		for _, n := range tempOpened {
			openSet[n.index] = true
			heap.Push(pq, n)
		}
	}

	s.logger.Debugf("search finished: explored=%d candidates=%d", exploredNodeNum, availableResultNum)

	if best == nil {
		return nil, ErrSearchExhausted
	}
	return best, nil
}
