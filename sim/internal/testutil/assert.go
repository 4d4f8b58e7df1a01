// Package testutil provides shared test infrastructure for the Monte Carlo
// simulators: floating-point comparisons and sampling-error tolerances used
// across the sim/ test packages.
package testutil

import (
	"math"
	"testing"
)

// AssertFloat64Equal compares two float64 values with relative tolerance.
func AssertFloat64Equal(t *testing.T, name string, want, got, relTol float64) {
	t.Helper()
	if want == 0 && got == 0 {
		return
	}
	diff := math.Abs(want - got)
	maxVal := math.Max(math.Abs(want), math.Abs(got))
	if diff/maxVal > relTol {
		t.Errorf("%s: got %v, want %v (diff=%v, relDiff=%v)", name, got, want, diff, diff/maxVal)
	}
}

// BinomialTolerance returns sigmas standard errors of a proportion p
// estimated from n Bernoulli trials.
func BinomialTolerance(p float64, n int, sigmas float64) float64 {
	return sigmas * math.Sqrt(p*(1-p)/float64(n))
}

// AssertWithinSamplingError fails when an estimated proportion from n trials is
// more than 5 standard errors away from want. Five sigma keeps seeded tests
// stable when the RNG stream changes.
func AssertWithinSamplingError(t *testing.T, name string, want, got float64, n int) {
	t.Helper()
	tol := BinomialTolerance(want, n, 5)
	if math.Abs(got-want) > tol {
		t.Errorf("%s: got %v, want %v ± %v (n=%d)", name, got, want, tol, n)
	}
}
