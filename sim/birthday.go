package sim

import (
	"math/rand"

	"github.com/sirupsen/logrus"
)

// DaysInYear is the number of equally likely birthdays.
const DaysInYear = 365

// BirthdayPoint is one row of a group-size sweep.
type BirthdayPoint struct {
	GroupSize int     `json:"group_size"`
	Estimated float64 `json:"estimated"`
	Analytic  float64 `json:"analytic"`
}

// EstimateCollisionProbability estimates the probability that at least two of
// groupSize people share a birthday, from numTrials independent trials.
// Groups of 0 or 1 return exactly 0 without consuming randomness.
func EstimateCollisionProbability(groupSize, numTrials int, rng *rand.Rand) (float64, error) {
	cfg := NewBirthdayConfig(groupSize, numTrials)
	if err := cfg.Validate(); err != nil {
		return 0, err
	}
	if groupSize <= 1 {
		return 0, nil
	}
	collisions := countCollisions(groupSize, numTrials, rng)
	return float64(collisions) / float64(numTrials), nil
}

// countCollisions runs numTrials birthday trials and returns how many collided.
// Callers must have validated the arguments.
func countCollisions(groupSize, numTrials int, rng *rand.Rand) int {
	if groupSize <= 1 {
		return 0
	}
	collisions := 0
	var seen [DaysInYear + 1]bool
	for range numTrials {
		if birthdayTrial(groupSize, rng, &seen) {
			collisions++
		}
	}
	return collisions
}

// birthdayTrial draws up to groupSize birthdays in [1, DaysInYear] and stops at the
// first repeat. seen is scratch space and is cleared before returning.
func birthdayTrial(groupSize int, rng *rand.Rand, seen *[DaysInYear + 1]bool) bool {
	collided := false
	for i := 0; i < groupSize; i++ {
		day := rng.Intn(DaysInYear) + 1
		if seen[day] {
			collided = true
			break
		}
		seen[day] = true
	}
	clear(seen[:])
	return collided
}

// AnalyticCollisionProbability returns the exact probability 1 - Π(365-k)/365
// that groupSize people include a shared birthday.
func AnalyticCollisionProbability(groupSize int) float64 {
	if groupSize <= 1 {
		return 0
	}
	if groupSize > DaysInYear {
		return 1
	}
	distinct := 1.0
	for k := 0; k < groupSize; k++ {
		distinct *= float64(DaysInYear-k) / DaysInYear
	}
	return 1 - distinct
}

// SweepCollisionProbability estimates the collision probability for every group
// size in [minGroup, maxGroup], drawing all trials from rng in ascending order.
func SweepCollisionProbability(minGroup, maxGroup, numTrials int, rng *rand.Rand) ([]BirthdayPoint, error) {
	return sweep(minGroup, maxGroup, numTrials, func(groupSize int) (float64, error) {
		return EstimateCollisionProbability(groupSize, numTrials, rng)
	})
}

// sweep validates the range and collects one point per group size from estimate.
func sweep(minGroup, maxGroup, numTrials int, estimate func(groupSize int) (float64, error)) ([]BirthdayPoint, error) {
	if minGroup < 0 {
		return nil, invalidParam("min_group", minGroup, "must be non-negative")
	}
	if maxGroup < minGroup {
		return nil, invalidParam("max_group", maxGroup, "must be >= min_group")
	}
	if err := requirePositive("num_trials", numTrials); err != nil {
		return nil, err
	}
	points := make([]BirthdayPoint, 0, maxGroup-minGroup+1)
	for n := minGroup; n <= maxGroup; n++ {
		p, err := estimate(n)
		if err != nil {
			return nil, err
		}
		points = append(points, BirthdayPoint{GroupSize: n, Estimated: p, Analytic: AnalyticCollisionProbability(n)})
		logrus.Debugf("birthday sweep: group=%d estimated=%.4f analytic=%.4f", n, p, points[len(points)-1].Analytic)
	}
	return points, nil
}

// MedianGroupSize returns the smallest swept group size whose estimate reaches 0.5,
// or -1 when no point does.
func MedianGroupSize(points []BirthdayPoint) int {
	for _, p := range points {
		if p.Estimated >= 0.5 {
			return p.GroupSize
		}
	}
	return -1
}
