package sim

import (
	"context"
	"math/rand"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// cancelCheckInterval is how many trials a worker runs between context checks.
const cancelCheckInterval = 1024

// splitTrials divides numTrials into workers contiguous shares; the first
// numTrials%workers shares get one extra trial.
func splitTrials(numTrials, workers int) []int {
	shares := make([]int, workers)
	base, extra := numTrials/workers, numTrials%workers
	for i := range shares {
		shares[i] = base
		if i < extra {
			shares[i]++
		}
	}
	return shares
}

// workerStreams resolves one RNG per worker. Called from the coordinating
// goroutine since PartitionedRNG is not thread-safe.
func workerStreams(rng *PartitionedRNG, workers int) []*rand.Rand {
	streams := make([]*rand.Rand, workers)
	for i := range streams {
		streams[i] = rng.ForSubsystem(SubsystemWorker(i))
	}
	return streams
}

// AggregateParallel is Aggregate with trials spread over workers goroutines.
// Worker i draws from rng.ForSubsystem(SubsystemWorker(i)) and partial results
// are merged in worker order, so output is deterministic for a fixed seed and
// worker count (but differs from the sequential Aggregate stream).
// Cancelling ctx stops the workers and returns ctx.Err().
func AggregateParallel(ctx context.Context, simulate ExtinctionSimulator, cfg BranchingConfig, rng *PartitionedRNG, workers int) (*AggregateResult, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := requirePositive("workers", workers); err != nil {
		return nil, err
	}
	shares := splitTrials(cfg.NumTrials, workers)
	streams := workerStreams(rng, workers)
	partials := make([]*AggregateResult, workers)

	g, ctx := errgroup.WithContext(ctx)
	for i := range workers {
		g.Go(func() error {
			partial := newAggregateResult(cfg.NumTrials, cfg.MaxSteps)
			for n := 0; n < shares[i]; n++ {
				if n%cancelCheckInterval == 0 {
					if err := ctx.Err(); err != nil {
						return err
					}
				}
				partial.record(simulate(cfg, streams[i]))
			}
			partials[i] = partial
			logrus.Debugf("worker %d: %d trials, %d extinct", i, shares[i], partial.ExtinctCount())
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	result := newAggregateResult(cfg.NumTrials, cfg.MaxSteps)
	for _, partial := range partials {
		result.merge(partial)
	}
	result.finalize()
	logrus.Infof("aggregate (%d workers): %d trials, extinct=%d capped=%d survived=%d, p_extinct=%.4f",
		workers, result.NumTrials, result.ExtinctCount(), result.CappedCount, result.SurvivedCount, result.ExtinctionProbability)
	return result, nil
}

// EstimateCollisionProbabilityParallel is EstimateCollisionProbability with
// trials spread over workers goroutines; the reduction is a sum of collision counts.
func EstimateCollisionProbabilityParallel(ctx context.Context, groupSize, numTrials int, rng *PartitionedRNG, workers int) (float64, error) {
	cfg := NewBirthdayConfig(groupSize, numTrials)
	if err := cfg.Validate(); err != nil {
		return 0, err
	}
	if err := requirePositive("workers", workers); err != nil {
		return 0, err
	}
	if groupSize <= 1 {
		return 0, nil
	}
	shares := splitTrials(numTrials, workers)
	streams := workerStreams(rng, workers)
	counts := make([]int, workers)

	g, ctx := errgroup.WithContext(ctx)
	for i := range workers {
		g.Go(func() error {
			for done := 0; done < shares[i]; done += cancelCheckInterval {
				if err := ctx.Err(); err != nil {
					return err
				}
				counts[i] += countCollisions(groupSize, min(cancelCheckInterval, shares[i]-done), streams[i])
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return 0, err
	}

	collisions := 0
	for _, c := range counts {
		collisions += c
	}
	return float64(collisions) / float64(numTrials), nil
}

// SweepCollisionProbabilityParallel is SweepCollisionProbability with each
// point estimated by EstimateCollisionProbabilityParallel. Worker streams carry
// over from one group size to the next, so the sweep is deterministic for a
// fixed seed and worker count.
func SweepCollisionProbabilityParallel(ctx context.Context, minGroup, maxGroup, numTrials int, rng *PartitionedRNG, workers int) ([]BirthdayPoint, error) {
	if err := requirePositive("workers", workers); err != nil {
		return nil, err
	}
	return sweep(minGroup, maxGroup, numTrials, func(groupSize int) (float64, error) {
		return EstimateCollisionProbabilityParallel(ctx, groupSize, numTrials, rng, workers)
	})
}
