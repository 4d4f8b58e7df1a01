package sim

import (
	"math/rand"

	"github.com/sirupsen/logrus"
)

// ExtinctionSimulator runs one extinction-mode trial. RunExtinctionTrial is the
// production implementation; tests substitute scripted outcomes.
type ExtinctionSimulator func(cfg BranchingConfig, rng *rand.Rand) Outcome

// AggregateResult summarizes NumTrials extinction-mode trials.
type AggregateResult struct {
	NumTrials             int     `json:"num_trials"`
	MaxSteps              int     `json:"max_steps"`
	ExtinctionProbability float64 `json:"extinction_probability"`
	ExtinctionTimes       []int   `json:"extinction_times"` // every result < MaxSteps, in trial order
	CappedCount           int     `json:"capped_count"`
	SurvivedCount         int     `json:"survived_count"`
}

// ExtinctCount is the number of trials that died out before MaxSteps.
func (r *AggregateResult) ExtinctCount() int {
	return len(r.ExtinctionTimes)
}

// record folds one outcome into the result.
func (r *AggregateResult) record(o Outcome) {
	t := o.ExtinctionTime(r.MaxSteps)
	switch {
	case t < r.MaxSteps:
		r.ExtinctionTimes = append(r.ExtinctionTimes, t)
	case o.Kind == CappedEarly:
		r.CappedCount++
	default:
		r.SurvivedCount++
	}
}

// merge appends other's counts and times after r's.
func (r *AggregateResult) merge(other *AggregateResult) {
	r.ExtinctionTimes = append(r.ExtinctionTimes, other.ExtinctionTimes...)
	r.CappedCount += other.CappedCount
	r.SurvivedCount += other.SurvivedCount
}

func (r *AggregateResult) finalize() {
	r.ExtinctionProbability = float64(len(r.ExtinctionTimes)) / float64(r.NumTrials)
}

func newAggregateResult(numTrials, maxSteps int) *AggregateResult {
	return &AggregateResult{
		NumTrials:       numTrials,
		MaxSteps:        maxSteps,
		ExtinctionTimes: make([]int, 0),
	}
}

// Aggregate runs cfg.NumTrials independent trials of simulate and estimates the
// extinction probability as len(ExtinctionTimes) / NumTrials.
// cfg is validated once before the first trial.
func Aggregate(simulate ExtinctionSimulator, cfg BranchingConfig, rng *rand.Rand) (*AggregateResult, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	result := runTrials(simulate, cfg, cfg.NumTrials, rng)
	result.finalize()
	logrus.Infof("aggregate: %d trials, extinct=%d capped=%d survived=%d, p_extinct=%.4f",
		result.NumTrials, result.ExtinctCount(), result.CappedCount, result.SurvivedCount, result.ExtinctionProbability)
	if result.CappedCount > 0 {
		logrus.Debugf("aggregate: %d trials stopped at population_cap=%d and count as non-extinct", result.CappedCount, cfg.PopulationCap)
	}
	return result, nil
}

// runTrials runs n trials without validation or finalization.
func runTrials(simulate ExtinctionSimulator, cfg BranchingConfig, n int, rng *rand.Rand) *AggregateResult {
	result := newAggregateResult(cfg.NumTrials, cfg.MaxSteps)
	for range n {
		result.record(simulate(cfg, rng))
	}
	return result
}
