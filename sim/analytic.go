package sim

import "math"

// maxFixedPointIterations bounds ExtinctionProbability's iteration.
const maxFixedPointIterations = 1_000_000

// GeneratingFunction evaluates the offspring probability generating function
// f(s) = PDie + PStay*s + PDouble*s^2 + PTriple*s^3.
func (d OffspringDistribution) GeneratingFunction(s float64) float64 {
	return d.PDie + s*(d.PStay+s*(d.PDouble+s*d.PTriple))
}

// ExtinctionCDF returns the exact probability that a single-individual
// population is extinct by generation n, i.e. P(extinction time <= n).
// It iterates q_k = f(q_{k-1}) from q_0 = 0.
func ExtinctionCDF(d OffspringDistribution, n int) float64 {
	q := 0.0
	for range n {
		q = d.GeneratingFunction(q)
	}
	return q
}

// ExtinctionProbability returns the ultimate extinction probability: the
// smallest fixed point of the generating function in [0,1]. For the uniform
// distribution this is sqrt(2)-1. Subcritical and critical processes
// (mean <= 1) with PDie > 0 die out with probability 1.
func ExtinctionProbability(d OffspringDistribution) float64 {
	if d.PDie == 0 {
		return 0
	}
	if d.Mean() <= 1+ProbabilityTolerance {
		return 1
	}
	q := 0.0
	for range maxFixedPointIterations {
		next := d.GeneratingFunction(q)
		if math.Abs(next-q) < 1e-15 {
			return next
		}
		q = next
	}
	return q
}
