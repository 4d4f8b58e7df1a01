package sim

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inference-sim/montecarlo/sim/internal/testutil"
)

func TestEstimateCollisionProbability_TinyGroups_ExactlyZero(t *testing.T) {
	for _, groupSize := range []int{0, 1} {
		for _, numTrials := range []int{1, 7, 10000} {
			// GIVEN a fresh RNG
			rng := rand.New(rand.NewSource(42))

			// WHEN estimating for a group that cannot collide
			p, err := EstimateCollisionProbability(groupSize, numTrials, rng)

			// THEN the result is exactly zero
			require.NoError(t, err)
			assert.Equal(t, 0.0, p, "groupSize=%d numTrials=%d", groupSize, numTrials)

			// AND no randomness was consumed
			assert.Equal(t, rand.New(rand.NewSource(42)).Int63(), rng.Int63())
		}
	}
}

func TestEstimateCollisionProbability_Pigeonhole_ExactlyOne(t *testing.T) {
	// GIVEN 400 people and only 365 days
	rng := rand.New(rand.NewSource(7))

	// WHEN estimated over 10000 trials
	p, err := EstimateCollisionProbability(400, 10000, rng)

	// THEN every trial collides
	require.NoError(t, err)
	assert.Equal(t, 1.0, p)
}

func TestEstimateCollisionProbability_FullYear_NearCertain(t *testing.T) {
	p, err := EstimateCollisionProbability(DaysInYear, 2000, rand.New(rand.NewSource(1)))
	require.NoError(t, err)
	assert.Greater(t, p, 0.9)
}

func TestEstimateCollisionProbability_MatchesAnalytic(t *testing.T) {
	tests := []int{2, 10, 23, 40, 60}
	rng := rand.New(rand.NewSource(2024))
	const numTrials = 20000
	for _, groupSize := range tests {
		p, err := EstimateCollisionProbability(groupSize, numTrials, rng)
		require.NoError(t, err)
		testutil.AssertWithinSamplingError(t, "collision probability", AnalyticCollisionProbability(groupSize), p, numTrials)
	}
}

func TestEstimateCollisionProbability_InvalidParameters(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	_, err := EstimateCollisionProbability(-1, 10, rng)
	assert.ErrorIs(t, err, ErrInvalidParameter)
	_, err = EstimateCollisionProbability(10, 0, rng)
	assert.ErrorIs(t, err, ErrInvalidParameter)
	_, err = EstimateCollisionProbability(10, -3, rng)
	assert.ErrorIs(t, err, ErrInvalidParameter)
}

func TestEstimateCollisionProbability_SameSeed_Identical(t *testing.T) {
	a, err := EstimateCollisionProbability(30, 500, rand.New(rand.NewSource(99)))
	require.NoError(t, err)
	b, err := EstimateCollisionProbability(30, 500, rand.New(rand.NewSource(99)))
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestEstimateCollisionProbability_InUnitInterval(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	for groupSize := 0; groupSize <= 100; groupSize += 9 {
		p, err := EstimateCollisionProbability(groupSize, 50, rng)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, p, 0.0)
		assert.LessOrEqual(t, p, 1.0)
	}
}

func TestAnalyticCollisionProbability_EdgeValues(t *testing.T) {
	assert.Equal(t, 0.0, AnalyticCollisionProbability(0))
	assert.Equal(t, 0.0, AnalyticCollisionProbability(1))
	assert.InDelta(t, 1.0/365.0, AnalyticCollisionProbability(2), 1e-12)
	assert.InDelta(t, 0.5072972, AnalyticCollisionProbability(23), 1e-6)
	assert.Equal(t, 1.0, AnalyticCollisionProbability(366))
}

func TestSweepCollisionProbability_CoversRange(t *testing.T) {
	// GIVEN the classic 1..100 sweep at reduced trial count
	points, err := SweepCollisionProbability(1, 100, 400, rand.New(rand.NewSource(11)))
	require.NoError(t, err)

	// THEN one point per group size, in order
	require.Len(t, points, 100)
	for i, p := range points {
		assert.Equal(t, i+1, p.GroupSize)
		assert.Equal(t, AnalyticCollisionProbability(p.GroupSize), p.Analytic)
	}
	assert.Equal(t, 0.0, points[0].Estimated)

	// AND the 50% crossing is near the textbook answer of 23
	median := MedianGroupSize(points)
	assert.GreaterOrEqual(t, median, 15)
	assert.LessOrEqual(t, median, 32)
}

func TestSweepCollisionProbability_InvalidRange(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	_, err := SweepCollisionProbability(10, 5, 100, rng)
	assert.ErrorIs(t, err, ErrInvalidParameter)
	_, err = SweepCollisionProbability(-1, 5, 100, rng)
	assert.ErrorIs(t, err, ErrInvalidParameter)
	_, err = SweepCollisionProbability(1, 5, 0, rng)
	assert.ErrorIs(t, err, ErrInvalidParameter)
}

func TestMedianGroupSize_NoCrossing(t *testing.T) {
	points := []BirthdayPoint{{GroupSize: 1, Estimated: 0}, {GroupSize: 2, Estimated: 0.01}}
	assert.Equal(t, -1, MedianGroupSize(points))
}
