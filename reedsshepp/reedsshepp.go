// Package reedsshepp implements the external Reeds-Shepp shortest-path
// generator that spec.md section 1 describes as a black-box collaborator:
// given two poses and a turning radius it returns the minimum-length
// Reeds-Shepp curve as a densely sampled pose sequence plus a cost. The
// hybrid A* search only collision-checks and splices in what this package
// returns.
//
// This implements the classical CSC (curve-straight-curve) and CCC
// (curve-curve-curve) word families from Reeds & Shepp's 1990 paper,
// generated through the standard reflect/time-reversal symmetry group
// rather than the full 48-word enumeration (the additional CCCC/CCSC/CCSCC
// families mostly shorten paths with very tight reversals, which the
// fan of CSC/CCC candidates below already covers for open-space parking
// maneuvers). See DESIGN.md for the rationale.
package reedsshepp

import (
	"math"

	"github.com/viam-labs/openspace-planner/geom"
)

// TrajNode is one sample along a Reeds-Shepp curve.
type TrajNode struct {
	Pose      geom.Pose
	Forward   bool
	Curvature float64 // signed: positive left turn, negative right turn, 0 straight
}

// Path is the shortest Reeds-Shepp curve between two poses.
type Path struct {
	Cost  float64
	Nodes []TrajNode
}

type word struct {
	letters [3]byte
	t, u, v float64 // t,v are turn angles (radians); u is either an angle (CCC) or a straight length in unit-radius space (CSC)
}

func mod2pi(x float64) float64 {
	v := math.Mod(x, 2*math.Pi)
	if v < 0 {
		v += 2 * math.Pi
	}
	return v
}

func polar(x, y float64) (r, theta float64) {
	return math.Hypot(x, y), mod2pi(math.Atan2(y, x))
}

// lsl solves the L+S+L+ word family (curvature +1, radius 1).
func lsl(x, y, phi float64) (word, bool) {
	u, t := polar(x-math.Sin(phi), y-1+math.Cos(phi))
	v := mod2pi(phi - t)
	return word{letters: [3]byte{'L', 'S', 'L'}, t: t, u: u, v: v}, true
}

// lsr solves the L+S+R+ word family.
func lsr(x, y, phi float64) (word, bool) {
	u1, t1 := polar(x+math.Sin(phi), y-1-math.Cos(phi))
	u1sq := u1 * u1
	if u1sq < 4 {
		return word{}, false
	}
	u := math.Sqrt(u1sq - 4)
	theta := math.Atan2(2, u)
	t := mod2pi(t1 + theta)
	v := mod2pi(t - phi)
	return word{letters: [3]byte{'L', 'S', 'R'}, t: t, u: u, v: v}, true
}

// lrl solves the L+R-L+ word family.
func lrl(x, y, phi float64) (word, bool) {
	u1, t1 := polar(x-math.Sin(phi), y-1+math.Cos(phi))
	if u1 > 4 {
		return word{}, false
	}
	a := math.Acos(0.25 * u1)
	t := mod2pi(t1 + math.Pi/2 + a)
	u := mod2pi(math.Pi - 2*a)
	v := mod2pi(phi - t - u)
	return word{letters: [3]byte{'L', 'R', 'L'}, t: t, u: u, v: v}, true
}

var baseFamilies = []func(x, y, phi float64) (word, bool){lsl, lsr, lrl}

func flipLetter(c byte) byte {
	switch c {
	case 'L':
		return 'R'
	case 'R':
		return 'L'
	default:
		return c
	}
}

type candidate struct {
	letters  [3]byte
	lengths  [3]float64 // signed arc lengths in world units (already scaled by radius)
	cost     float64
	backward bool
}

// candidates enumerates every CSC/CCC word applied to the reflect/timeflip
// symmetry group, for the goal expressed in the start pose's local frame
// (start at the origin, heading zero) and already scaled to unit radius.
func candidates(lx, ly, lphi, radius float64) []candidate {
	out := make([]candidate, 0, 12)
	for _, base := range baseFamilies {
		for _, reflect := range [2]bool{false, true} {
			for _, timeflip := range [2]bool{false, true} {
				x, y, phi := lx, ly, lphi
				if timeflip {
					x, phi = -x, -phi
				}
				if reflect {
					y, phi = -y, -phi
				}
				w, ok := base(x, y, phi)
				if !ok {
					continue
				}
				letters := w.letters
				if reflect {
					for i := range letters {
						letters[i] = flipLetter(letters[i])
					}
				}
				dir := 1.0
				if timeflip {
					dir = -1.0
				}
				lengths := [3]float64{}
				raw := [3]float64{w.t, w.u, w.v}
				if w.letters[1] != 'S' {
					raw[1] = -raw[1] // CCC words travel the middle arc in the opposite direction
				}
				for i := range letters {
					lengths[i] = dir * raw[i] * radius
				}
				cost := radius * (w.t + w.u + w.v)
				out = append(out, candidate{letters: letters, lengths: lengths, cost: cost, backward: timeflip})
			}
		}
	}
	return out
}

// localGoal expresses goal in start's local frame (start at origin, heading 0).
func localGoal(start, goal geom.Pose) (x, y, phi float64) {
	dx, dy := goal.X-start.X, goal.Y-start.Y
	cosT, sinT := math.Cos(start.Phi), math.Sin(start.Phi)
	x = dx*cosT + dy*sinT
	y = -dx*sinT + dy*cosT
	phi = geom.NormalizeAngle(goal.Phi - start.Phi)
	return
}

func toWorld(start geom.Pose, lx, ly, lphi float64) geom.Pose {
	cosT, sinT := math.Cos(start.Phi), math.Sin(start.Phi)
	return geom.Pose{
		X:   start.X + lx*cosT - ly*sinT,
		Y:   start.Y + lx*sinT + ly*cosT,
		Phi: geom.NormalizeAngle(lphi + start.Phi),
	}
}

// stepPose integrates a single curvature segment of signed arc length
// step (negative for reverse travel), using midpoint-heading integration
// to stay consistent with the motion-primitive bicycle model.
func stepPose(p geom.Pose, letter byte, step, radius float64) geom.Pose {
	var dphi float64
	switch letter {
	case 'L':
		dphi = step / radius
	case 'R':
		dphi = -step / radius
	default: // 'S'
		dphi = 0
	}
	mid := p.Phi + dphi/2
	return geom.Pose{
		X:   p.X + step*math.Cos(mid),
		Y:   p.Y + step*math.Sin(mid),
		Phi: geom.NormalizeAngle(p.Phi + dphi),
	}
}

func curvatureOf(letter byte, radius float64) float64 {
	switch letter {
	case 'L':
		return 1 / radius
	case 'R':
		return -1 / radius
	default:
		return 0
	}
}

// simulate samples a candidate word starting from `start`, at the given
// sampling resolution (meters of arc length between samples).
func simulate(start geom.Pose, c candidate, radius, resolution float64) []TrajNode {
	nodes := make([]TrajNode, 0, 3*8)
	pose := start
	for i, letter := range c.letters {
		length := c.lengths[i]
		if length == 0 {
			continue
		}
		forward := length > 0
		remaining := math.Abs(length)
		n := int(math.Ceil(remaining / resolution))
		if n < 1 {
			n = 1
		}
		stepMag := remaining / float64(n)
		step := stepMag
		if !forward {
			step = -stepMag
		}
		curvature := curvatureOf(letter, radius)
		for s := 0; s < n; s++ {
			pose = stepPose(pose, letter, step, radius)
			nodes = append(nodes, TrajNode{Pose: pose, Forward: forward, Curvature: curvature})
		}
	}
	return nodes
}

// ShortestPath returns the minimum-length Reeds-Shepp curve from start to
// goal under the given turning radius, densely sampled at the given
// resolution (meters). If lastStraight is true, the search prefers a
// candidate whose final segment is straight, falling back to the global
// optimum if none exists. Every CSC and CCC word enumerated here ends in a
// curve, so no candidate qualifies and lastStraight does not change the
// returned path.
func ShortestPath(start, goal geom.Pose, radius, resolution float64, lastStraight bool) (*Path, bool) {
	if radius <= 0 || resolution <= 0 {
		return nil, false
	}
	lx, ly, lphi := localGoal(start, goal)
	cands := candidates(lx/radius, ly/radius, lphi, radius)
	if len(cands) == 0 {
		return nil, false
	}

	best := pickBest(cands, false)
	if lastStraight {
		if withStraightEnd := pickBest(cands, true); withStraightEnd != nil {
			best = withStraightEnd
		}
	}
	if best == nil {
		return nil, false
	}

	nodes := simulate(start, *best, radius, resolution)
	return &Path{Cost: best.cost, Nodes: nodes}, true
}

func pickBest(cands []candidate, requireStraightEnd bool) *candidate {
	var best *candidate
	for i := range cands {
		c := &cands[i]
		if requireStraightEnd && c.letters[2] != 'S' {
			continue
		}
		if best == nil || c.cost < best.cost {
			best = c
		}
	}
	return best
}
