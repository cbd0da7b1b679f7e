// Package motion implements the trajectory engine: easing curves, motion
// parameters and the per-actuator trajectory state machine.
package motion

import "math"

// Quintic evaluates the quintic smoothstep 10t^3 - 15t^4 + 6t^5.
// First and second derivatives are zero at both endpoints, so motion
// built on it has no velocity or acceleration discontinuity at the
// start or end of a move. Input outside [0,1] is clamped.
func Quintic(t float64) float64 {
	if t <= 0 {
		return 0
	}
	if t >= 1 {
		return 1
	}
	t3 := t * t * t
	return 10*t3 - 15*t3*t + 6*t3*t*t
}

// CPGKernel evaluates the half-cosine oscillatory kernel
// 0.5*(1 - cos(pi*t)). Zero slope at both endpoints like the quintic,
// but with a different mid-curve shape; blending it in gives moves a
// central-pattern-generator footprint. Input outside [0,1] is clamped.
func CPGKernel(t float64) float64 {
	if t <= 0 {
		return 0
	}
	if t >= 1 {
		return 1
	}
	return 0.5 * (1 - math.Cos(math.Pi*t))
}

// Blend maps normalized time to normalized progress using the quintic
// ease, mixed with the CPG kernel when p enables it:
//
//	(1-alpha)*quintic(t) + alpha*cpg(t)
//
// Blend is pure; p is only read. A nil p means quintic only.
func Blend(t float64, p *Params) float64 {
	if t <= 0 {
		return 0
	}
	if t >= 1 {
		return 1
	}
	q := Quintic(t)
	if p == nil || !p.CPGEnabled {
		return q
	}
	return (1-p.CPGAlpha)*q + p.CPGAlpha*CPGKernel(t)
}
