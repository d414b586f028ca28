package openspace

import (
	"container/heap"
	"math"

	"github.com/viam-labs/openspace-planner/geom"
)

// gridHeuristic is the holonomic-with-obstacles cost-to-go map, built once
// per Plan call by running Dijkstra from the goal cell over an
// 8-connected grid, per spec.md section 4.2.
type gridHeuristic struct {
	xyRes float64
	ws    geom.Workspace
	cost  map[[2]int32]float64
}

type cellNeighbor struct{ dx, dy int32 }

var eightConnected = []cellNeighbor{
	{1, 0}, {-1, 0}, {0, 1}, {0, -1},
	{1, 1}, {1, -1}, {-1, 1}, {-1, -1},
}

type heuristicItem struct {
	cell [2]int32
	cost float64
	seq  int
}

type heuristicQueue struct {
	items []heuristicItem
}

func (q heuristicQueue) Len() int { return len(q.items) }
func (q heuristicQueue) Less(i, j int) bool {
	if q.items[i].cost != q.items[j].cost {
		return q.items[i].cost < q.items[j].cost
	}
	return q.items[i].seq < q.items[j].seq
}
func (q heuristicQueue) Swap(i, j int) { q.items[i], q.items[j] = q.items[j], q.items[i] }

func (q *heuristicQueue) Push(x interface{}) {
	q.items = append(q.items, x.(heuristicItem))
}

func (q *heuristicQueue) Pop() interface{} {
	old := q.items
	n := len(old)
	item := old[n-1]
	q.items = old[:n-1]
	return item
}

func cellOf(x, y, xyRes float64) [2]int32 {
	return [2]int32{int32(floorDiv(x, xyRes)), int32(floorDiv(y, xyRes))}
}

// newGridHeuristic runs Dijkstra from goal over the workspace at
// resolution xyRes, treating any cell whose center-footprint (a single
// grid cell square) intersects an obstacle segment as blocked.
func newGridHeuristic(goal geom.Pose, ws geom.Workspace, obstacles []geom.Segment, xyRes float64) *gridHeuristic {
	h := &gridHeuristic{xyRes: xyRes, ws: ws, cost: make(map[[2]int32]float64)}

	start := cellOf(goal.X, goal.Y, xyRes)
	pq := &heuristicQueue{}
	heap.Init(pq)
	heap.Push(pq, heuristicItem{cell: start, cost: 0})
	h.cost[start] = 0

	seq := 0
	for pq.Len() > 0 {
		cur := heap.Pop(pq).(heuristicItem)
		if best, ok := h.cost[cur.cell]; ok && cur.cost > best {
			continue
		}
		for _, n := range eightConnected {
			next := [2]int32{cur.cell[0] + n.dx, cur.cell[1] + n.dy}
			cx := float64(next[0])*xyRes + xyRes/2
			cy := float64(next[1])*xyRes + xyRes/2
			if !ws.Contains(cx, cy) {
				continue
			}
			if cellBlocked(cx, cy, xyRes, obstacles) {
				continue
			}
			step := math.Hypot(float64(n.dx), float64(n.dy)) * xyRes
			newCost := cur.cost + step
			if best, ok := h.cost[next]; !ok || newCost < best {
				h.cost[next] = newCost
				seq++
				heap.Push(pq, heuristicItem{cell: next, cost: newCost, seq: seq})
			}
		}
	}
	return h
}

func cellBlocked(cx, cy, xyRes float64, obstacles []geom.Segment) bool {
	if len(obstacles) == 0 {
		return false
	}
	rect := geom.OrientedRect{CX: cx, CY: cy, Phi: 0, Length: xyRes, Width: xyRes}
	return rect.IntersectsAnySegment(obstacles)
}

// lookup returns the cost of the cell containing (x, y), or +Inf if the
// cell is outside the workspace or unreachable from the goal.
func (h *gridHeuristic) lookup(x, y float64) float64 {
	cell := cellOf(x, y, h.xyRes)
	if c, ok := h.cost[cell]; ok {
		return c
	}
	return math.Inf(1)
}
