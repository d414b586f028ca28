package openspace

import (
	"math"

	"github.com/viam-labs/openspace-planner/geom"
	"github.com/viam-labs/openspace-planner/logging"
	"github.com/viam-labs/openspace-planner/piecewisejerk"
)

const resampleDt = 0.5

// gearSegment is one forward- or reverse-gear partition of the assembled
// path, per spec.md section 4.8.1.
type gearSegment struct {
	poses []geom.Pose
	gear  bool // true: forward
}

// profiledSegment is a single segment's temporal profile, before stitching.
type profiledSegment struct {
	x, y, phi, v []float64
	a, steer     []float64
}

// localGear reports the gear implied by the path vector from a to b
// relative to a's heading. The strict '<' against pi/2 is load-bearing,
// per spec.md section 9.
func localGear(a, b geom.Pose) bool {
	vAngle := math.Atan2(b.Y-a.Y, b.X-a.X)
	return math.Abs(geom.NormalizeAngle(vAngle-a.Phi)) < math.Pi/2
}

// partitionByGear splits an assembled pose sequence into segments of
// constant gear, sharing the transition pose between consecutive
// segments, per spec.md section 4.8.1.
func partitionByGear(poses []geom.Pose) []gearSegment {
	if len(poses) < 2 {
		return []gearSegment{{poses: poses, gear: true}}
	}
	curGear := localGear(poses[0], poses[1])
	curPoses := []geom.Pose{poses[0]}
	var segments []gearSegment
	for i := 0; i+1 < len(poses); i++ {
		g := localGear(poses[i], poses[i+1])
		if g != curGear {
			segments = append(segments, gearSegment{poses: curPoses, gear: curGear})
			curPoses = []geom.Pose{poses[i]}
			curGear = g
		}
		curPoses = append(curPoses, poses[i+1])
	}
	segments = append(segments, gearSegment{poses: curPoses, gear: curGear})
	return segments
}

// finiteDifferenceProfile is Mode A of spec.md section 4.8.2, grounded on
// the phase-tracked clamping idiom of control/trapezoid_velocity_profile.go
// generalized from a single-axis trapezoid to per-sample tangential
// velocity projection.
func finiteDifferenceProfile(seg gearSegment, cfg Config) profiledSegment {
	poses := seg.poses
	n := len(poses)
	x := make([]float64, n)
	y := make([]float64, n)
	phi := make([]float64, n)
	for i, p := range poses {
		x[i], y[i], phi[i] = p.X, p.Y, p.Phi
	}
	v := make([]float64, n)
	if n < 2 {
		return profiledSegment{x: x, y: y, phi: phi, v: v}
	}

	dt := cfg.DeltaT
	for i := 1; i < n-1; i++ {
		headingX, headingY := math.Cos(poses[i].Phi), math.Sin(poses[i].Phi)
		d1x, d1y := poses[i].X-poses[i-1].X, poses[i].Y-poses[i-1].Y
		d2x, d2y := poses[i+1].X-poses[i].X, poses[i+1].Y-poses[i].Y
		proj1 := (d1x*headingX + d1y*headingY) / dt
		proj2 := (d2x*headingX + d2y*headingY) / dt
		v[i] = (proj1 + proj2) / 2
	}

	a := make([]float64, n-1)
	steer := make([]float64, n-1)
	for i := 0; i < n-1; i++ {
		a[i] = (v[i+1] - v[i]) / dt
		dphi := geom.NormalizeAngle(poses[i+1].Phi - poses[i].Phi)
		sign := 1.0
		if v[i] < 0 {
			sign = -1.0
		}
		steer[i] = math.Atan(dphi * cfg.WheelBase / cfg.StepSize * sign)
	}
	return profiledSegment{x: x, y: y, phi: phi, v: v, a: a, steer: steer}
}

// piecewiseJerkProfile is Mode B of spec.md section 4.8.2: a convex
// piecewise-jerk QP solved over arc length, resampled densely and
// evaluated back against the path geometry.
func piecewiseJerkProfile(seg gearSegment, cfg Config) (profiledSegment, error) {
	poses := seg.poses
	n := len(poses)
	if n < 2 {
		return profiledSegment{}, ErrInvalidInput
	}

	cumS := make([]float64, n)
	for i := 1; i < n; i++ {
		cumS[i] = cumS[i-1] + math.Hypot(poses[i].X-poses[i-1].X, poses[i].Y-poses[i-1].Y)
	}
	sEnd := cumS[n-1]

	vMax, aMax := cfg.MaxForwardV, cfg.MaxForwardAcc
	if !seg.gear {
		vMax, aMax = cfg.MaxReverseV, cfg.MaxReverseAcc
	}
	if vMax <= 0 || aMax <= 0 {
		return profiledSegment{}, ErrInvalidInput
	}

	totalT := math.Max(1.5*(vMax*vMax+sEnd*aMax)/(aMax*vMax), 10.0)
	numKnotsF := math.Floor(totalT/cfg.DeltaT) + 1
	if numKnotsF > float64(math.MaxInt32) || numKnotsF < 2 {
		return profiledSegment{}, ErrNumericOverflow
	}
	numKnots := int(numKnotsF)

	problem := piecewisejerk.Problem{
		NumKnots:  numKnots,
		Dt:        cfg.DeltaT,
		InitS:     0,
		InitV:     0,
		InitA:     0,
		TerminalS: sEnd,
		Bounds: piecewisejerk.Bounds{
			SMin: 0, SMax: sEnd,
			VMin: 0, VMax: vMax,
			AMin: -aMax, AMax: aMax,
			JerkMin: -cfg.MaxAccJerk, JerkMax: cfg.MaxAccJerk,
		},
		Weights: piecewisejerk.Weights{
			RefS: cfg.RefSWeight,
			RefV: cfg.RefVWeight,
			Acc:  cfg.AccWeight,
			Jerk: cfg.JerkWeight,
		},
		RefS: sEnd,
		RefV: 0.8 * vMax,
	}

	solution, ok := piecewisejerk.Optimize(problem)
	if !ok {
		return profiledSegment{}, ErrOptimizerFailure
	}

	totalDuration := float64(numKnots-1) * cfg.DeltaT
	numSamples := int(totalDuration/resampleDt) + 1
	rs, rv, ra := resamplePiecewiseJerk(solution, cfg.DeltaT, numSamples)

	var x, y, phi, v, a []float64
	lastS := math.Inf(-1)
	for i := range rs {
		if rs[i]-lastS < 1e-6 {
			continue
		}
		lastS = rs[i]
		px, py, pphi := evalArcLength(poses, cumS, rs[i])
		x = append(x, px)
		y = append(y, py)
		phi = append(phi, pphi)
		vi, ai := rv[i], ra[i]
		if !seg.gear {
			vi, ai = -vi, -ai
		}
		v = append(v, vi)
		a = append(a, ai)
	}

	steer := make([]float64, len(phi)-1)
	for i := range steer {
		dphi := geom.NormalizeAngle(phi[i+1] - phi[i])
		ds := math.Hypot(x[i+1]-x[i], y[i+1]-y[i])
		sign := 1.0
		if v[i] < 0 {
			sign = -1.0
		}
		if ds > 0 {
			steer[i] = math.Atan(dphi * cfg.WheelBase / ds * sign)
		}
	}

	return profiledSegment{x: x, y: y, phi: phi, v: v, a: a[:len(a)-1], steer: steer}, nil
}

// resamplePiecewiseJerk linearly interpolates a knot-spaced solution onto
// a dense, uniformly spaced sample grid.
func resamplePiecewiseJerk(sol piecewisejerk.Solution, dt float64, numSamples int) (s, v, a []float64) {
	s = make([]float64, numSamples)
	v = make([]float64, numSamples)
	a = make([]float64, numSamples)
	lastIdx := len(sol.S) - 1
	for i := 0; i < numSamples; i++ {
		knotPos := float64(i) * resampleDt / dt
		k0 := int(math.Floor(knotPos))
		if k0 >= lastIdx {
			s[i], v[i], a[i] = sol.S[lastIdx], sol.V[lastIdx], sol.A[lastIdx]
			continue
		}
		frac := knotPos - float64(k0)
		s[i] = sol.S[k0] + frac*(sol.S[k0+1]-sol.S[k0])
		v[i] = sol.V[k0] + frac*(sol.V[k0+1]-sol.V[k0])
		a[i] = sol.A[k0] + frac*(sol.A[k0+1]-sol.A[k0])
	}
	return s, v, a
}

// evalArcLength finds the pose the path reaches at arc length target,
// linearly interpolating between the bracketing samples in cumS.
func evalArcLength(poses []geom.Pose, cumS []float64, target float64) (x, y, phi float64) {
	n := len(cumS)
	if target <= cumS[0] {
		p := poses[0]
		return p.X, p.Y, p.Phi
	}
	if target >= cumS[n-1] {
		p := poses[n-1]
		return p.X, p.Y, p.Phi
	}
	j := 0
	for j+1 < n && cumS[j+1] < target {
		j++
	}
	segLen := cumS[j+1] - cumS[j]
	frac := 0.0
	if segLen > 0 {
		frac = (target - cumS[j]) / segLen
	}
	a, b := poses[j], poses[j+1]
	dphi := geom.NormalizeAngle(b.Phi - a.Phi)
	return a.X + frac*(b.X-a.X), a.Y + frac*(b.Y-a.Y), geom.NormalizeAngle(a.Phi + frac*dphi)
}

// buildSpeedProfile partitions the assembled path at gear transitions,
// profiles each segment, and stitches the results back into a single
// result, per spec.md sections 4.8.1 and 4.8.3.
func buildSpeedProfile(poses []geom.Pose, cfg Config, logger logging.Logger) (*Result, error) {
	segments := partitionByGear(poses)
	profiled := make([]profiledSegment, 0, len(segments))
	for _, seg := range segments {
		if cfg.UseSCurveSpeedSmooth {
			p, err := piecewiseJerkProfile(seg, cfg)
			if err != nil {
				logger.Warnf("mode B speed profile failed (%v); falling back to finite-difference mode", err)
				p = finiteDifferenceProfile(seg, cfg)
			}
			profiled = append(profiled, p)
		} else {
			profiled = append(profiled, finiteDifferenceProfile(seg, cfg))
		}
	}

	var x, y, phi, v, a, steer []float64
	for i, p := range profiled {
		end := len(p.x)
		if i != len(profiled)-1 {
			end--
		}
		x = append(x, p.x[:end]...)
		y = append(y, p.y[:end]...)
		phi = append(phi, p.phi[:end]...)
		v = append(v, p.v[:end]...)
		a = append(a, p.a...)
		steer = append(steer, p.steer...)
	}

	if len(x) != len(y) || len(y) != len(phi) || len(phi) != len(v) {
		return nil, ErrAssemblyInvariant
	}
	if len(a) != len(steer) || (len(x) > 0 && len(a) != len(x)-1) {
		return nil, ErrAssemblyInvariant
	}

	accumulatedS := make([]float64, len(x))
	for i := 1; i < len(x); i++ {
		accumulatedS[i] = accumulatedS[i-1] + math.Hypot(x[i]-x[i-1], y[i]-y[i-1])
	}

	return &Result{X: x, Y: y, Phi: phi, V: v, A: a, Steer: steer, AccumulatedS: accumulatedS}, nil
}
