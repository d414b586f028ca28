// Package piecewisejerk implements the convex piecewise-jerk speed
// optimizer spec.md section 4.8.2 Mode B calls for. Bounds, weights and
// references are fields of a Problem value passed to the single Optimize
// function, which returns a Solution; there are no separate setter
// methods. The state is held in plain float64 slices, with
// gonum/floats computing the gradient norms of the convergence check.
//
// The decision variables are position, velocity and acceleration at K
// uniformly spaced knots. Dynamics link consecutive knots under a
// constant-jerk assumption; position/velocity/acceleration/jerk targets
// are traded off against those dynamics and box bounds via a quadratic
// penalty, minimized by projected gradient descent -- a solver simple
// enough to audit, at the cost of being slower to converge than an
// interior-point or ADMM-based QP backend would be.
package piecewisejerk

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// Bounds constrains each knot's state and the jerk between knots.
type Bounds struct {
	SMin, SMax         float64
	VMin, VMax         float64
	AMin, AMax         float64
	JerkMin, JerkMax   float64
}

// Weights weights each term of the objective.
type Weights struct {
	RefS   float64
	RefV   float64
	Acc    float64
	Jerk   float64
}

// Problem describes one piecewise-jerk speed optimization.
type Problem struct {
	NumKnots  int
	Dt        float64
	InitS     float64
	InitV     float64
	InitA     float64
	TerminalS float64 // s_end; terminal v and a targets are always 0
	Bounds    Bounds
	Weights   Weights
	RefS      float64 // reference the s-tracking term pulls every knot toward (s_end, per spec.md section 4.8.2)
	RefV      float64 // reference the v-tracking term pulls every knot toward (0.8*v_max, per spec.md section 4.8.2)
}

// Solution is the optimized state at every knot, plus the per-interval jerk.
type Solution struct {
	S, V, A, Jerk []float64
}

const (
	defaultMaxIterations = 2000
	defaultStepSize       = 5e-4
	convergenceGradNorm   = 1e-4
)

// Optimize solves the problem via projected gradient descent over the
// free knots (every knot after the pinned initial state), penalizing
// dynamics and terminal-state deviation quadratically, and reports
// ok=false if the iteration budget is exhausted without converging --
// surfaced by callers as ErrOptimizerFailure.
func Optimize(p Problem) (Solution, bool) {
	k := p.NumKnots
	if k < 2 {
		return Solution{}, false
	}
	dt := p.Dt

	// Free variables: s,v,a for knots 1..k-1 (knot 0 is pinned to the initial state).
	n := k - 1
	s := make([]float64, n)
	v := make([]float64, n)
	a := make([]float64, n)
	for i := 0; i < n; i++ {
		frac := float64(i+1) / float64(k-1)
		s[i] = p.InitS + frac*(p.TerminalS-p.InitS)
		v[i] = 0
		a[i] = 0
	}

	terminalWeight := 50.0 * math.Max(1, p.Weights.RefS+p.Weights.Acc+p.Weights.Jerk)

	full := func(s, v, a []float64) (fs, fv, fa []float64) {
		fs = append([]float64{p.InitS}, s...)
		fv = append([]float64{p.InitV}, v...)
		fa = append([]float64{p.InitA}, a...)
		return
	}

	gradS := make([]float64, n)
	gradV := make([]float64, n)
	gradA := make([]float64, n)

	for iter := 0; iter < defaultMaxIterations; iter++ {
		fs, fv, fa := full(s, v, a)

		for i := range gradS {
			gradS[i] = 0
			gradV[i] = 0
			gradA[i] = 0
		}

		// Dynamics-consistency penalty: for each interval, the jerk implied
		// by (a_{i+1}-a_i)/dt should also be consistent with how s and v
		// advance under constant jerk; penalize the discrepancy directly by
		// computing jerk from acceleration and checking s/v against the
		// constant-jerk prediction.
		jerk := make([]float64, k-1)
		for i := 0; i < k-1; i++ {
			jerk[i] = (fa[i+1] - fa[i]) / dt
		}

		for i := 0; i < k-1; i++ {
			predS := fs[i] + fv[i]*dt + fa[i]*dt*dt/2 + jerk[i]*dt*dt*dt/6
			predV := fv[i] + fa[i]*dt + jerk[i]*dt*dt/2
			residS := fs[i+1] - predS
			residV := fv[i+1] - predV
			w := 200.0

			if i+1 >= 1 {
				addGrad(gradS, i, 2*w*residS)
				addGrad(gradV, i, 2*w*residV)
			}
			// Residuals also depend on knot i's s/v/a (and on knot 0 through
			// the pinned state, which contributes no free gradient).
			if i >= 1 {
				addGrad(gradS, i-1, -2*w*residS)
				addGrad(gradV, i-1, -2*w*residV-2*w*residS*dt)
				addGrad(gradA, i-1, -2*w*residS*dt*dt/2-2*w*residV*dt)
			}
		}

		for i := 0; i < n; i++ {
			gradS[i] += 2 * p.Weights.RefS * (fs[i+1] - p.RefS)
			gradV[i] += 2 * p.Weights.RefV * (fv[i+1] - p.RefV)
			gradA[i] += 2 * p.Weights.Acc * fa[i+1]
		}

		// Terminal v/a are pinned to exactly zero, the same way knot 0's
		// state is pinned rather than merely penalized: their gradient
		// contributions are discarded and the values reset after every
		// step, below.
		gradV[n-1] = 0
		gradA[n-1] = 0

		// Terminal position is still a soft pull toward s_end.
		gradS[n-1] += 2 * terminalWeight * (fs[k-1] - p.TerminalS)

		// Jerk-squared penalty.
		for i := 0; i < k-1; i++ {
			dJerk := 2 * p.Weights.Jerk * jerk[i] / dt
			if i >= 1 {
				gradA[i-1] -= dJerk
			}
			if i <= n-1 {
				gradA[i] += dJerk
			}
		}

		gradNorm := floats.Norm(gradS, 2) + floats.Norm(gradV, 2) + floats.Norm(gradA, 2)
		if gradNorm < convergenceGradNorm {
			return finalize(p, s, v, a), true
		}

		step := defaultStepSize
		for i := 0; i < n; i++ {
			s[i] = clamp(s[i]-step*gradS[i], p.Bounds.SMin, p.Bounds.SMax)
			v[i] = clamp(v[i]-step*gradV[i], p.Bounds.VMin, p.Bounds.VMax)
			a[i] = clamp(a[i]-step*gradA[i], p.Bounds.AMin, p.Bounds.AMax)
		}
		clampJerk(p, a)
		v[n-1] = 0
		a[n-1] = 0
	}

	return finalize(p, s, v, a), false
}

func addGrad(g []float64, idx int, v float64) {
	if idx < 0 || idx >= len(g) {
		return
	}
	g[idx] += v
}

// clampJerk walks the acceleration sequence forward and pulls each knot's
// acceleration back toward its predecessor whenever the implied jerk
// between them would exceed the configured bound.
func clampJerk(p Problem, a []float64) {
	prev := p.InitA
	for i := range a {
		jerk := (a[i] - prev) / p.Dt
		if jerk > p.Bounds.JerkMax {
			a[i] = prev + p.Bounds.JerkMax*p.Dt
		} else if jerk < p.Bounds.JerkMin {
			a[i] = prev + p.Bounds.JerkMin*p.Dt
		}
		prev = a[i]
	}
}

func clamp(x, lo, hi float64) float64 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}

func finalize(p Problem, s, v, a []float64) Solution {
	k := p.NumKnots
	fs := append([]float64{p.InitS}, s...)
	fv := append([]float64{p.InitV}, v...)
	fa := append([]float64{p.InitA}, a...)
	jerk := make([]float64, k-1)
	for i := 0; i < k-1; i++ {
		jerk[i] = (fa[i+1] - fa[i]) / p.Dt
	}
	return Solution{S: fs, V: fv, A: fa, Jerk: jerk}
}
