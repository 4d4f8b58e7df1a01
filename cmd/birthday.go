package cmd

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	sim "github.com/inference-sim/montecarlo/sim"
)

var (
	// CLI flags for the birthday commands
	groupSize      int // People per simulated group
	birthdayTrials int // Groups simulated per estimate
	sweepTrials    int // Groups simulated per sweep point
	minGroup       int // Smallest group size in a sweep
	maxGroup       int // Largest group size in a sweep
)

// birthdayCmd estimates the collision probability for one group size
var birthdayCmd = &cobra.Command{
	Use:   "birthday",
	Short: "Estimate the probability that two people in a group share a birthday",
	Run: func(cmd *cobra.Command, args []string) {
		bundle := loadScenario()
		cfg := resolveBirthdayConfig(cmd, bundle)
		nWorkers := resolveWorkers(cmd, bundle)
		rng := sim.NewPartitionedRNG(sim.NewSimulationKey(resolveSeed(cmd, bundle)))

		ctx, cancel := runContext()
		defer cancel()

		logrus.Infof("Starting birthday estimate: group_size=%d, trials=%d, workers=%d", cfg.GroupSize, cfg.NumTrials, nWorkers)
		startTime := time.Now()
		estimated, err := runBirthday(ctx, cfg, rng, nWorkers)
		if err != nil {
			logrus.Fatalf("Birthday estimate failed: %v", err)
		}
		metrics := sim.NewBirthdayMetrics(cfg, estimated, nWorkers)
		if err := metrics.SaveResults(startTime, resultsPath); err != nil {
			logrus.Fatalf("Failed to save results: %v", err)
		}
		logrus.Info("Birthday estimate complete.")
	},
}

// sweepCmd estimates the collision probability for a range of group sizes
var sweepCmd = &cobra.Command{
	Use:   "sweep",
	Short: "Estimate the birthday collision probability over a range of group sizes",
	Run: func(cmd *cobra.Command, args []string) {
		bundle := loadScenario()
		lo, hi, trials := resolveSweepRange(cmd, bundle)
		nWorkers := resolveWorkers(cmd, bundle)
		rng := sim.NewPartitionedRNG(sim.NewSimulationKey(resolveSeed(cmd, bundle)))

		ctx, cancel := runContext()
		defer cancel()

		logrus.Infof("Starting birthday sweep: group sizes %d..%d, trials=%d, workers=%d", lo, hi, trials, nWorkers)
		startTime := time.Now()
		points, err := runSweep(ctx, lo, hi, trials, rng, nWorkers)
		if err != nil {
			logrus.Fatalf("Birthday sweep failed: %v", err)
		}
		metrics := sim.NewSweepMetrics(trials, points)
		if metrics.MedianGroupSize < 0 {
			logrus.Warnf("No group size in %d..%d reached a 50%% collision estimate", lo, hi)
		}
		if err := metrics.SaveResults(startTime, resultsPath); err != nil {
			logrus.Fatalf("Failed to save results: %v", err)
		}
		logrus.Info("Birthday sweep complete.")
	},
}

// resolveBirthdayConfig merges the birthday flags over the scenario file.
func resolveBirthdayConfig(cmd *cobra.Command, bundle *sim.ScenarioBundle) sim.BirthdayConfig {
	if bundle == nil {
		return sim.NewBirthdayConfig(groupSize, birthdayTrials)
	}
	return sim.NewBirthdayConfig(
		intSetting(cmd, "group-size", groupSize, bundle.Birthday.GroupSize),
		intSetting(cmd, "num-trials", birthdayTrials, bundle.Birthday.NumTrials),
	)
}

// resolveSweepRange merges the sweep flags over the scenario file.
func resolveSweepRange(cmd *cobra.Command, bundle *sim.ScenarioBundle) (lo, hi, trials int) {
	if bundle == nil {
		return minGroup, maxGroup, sweepTrials
	}
	return intSetting(cmd, "min-group", minGroup, bundle.Birthday.MinGroup),
		intSetting(cmd, "max-group", maxGroup, bundle.Birthday.MaxGroup),
		intSetting(cmd, "num-trials", sweepTrials, bundle.Birthday.NumTrials)
}

// runBirthday estimates sequentially on the birthday stream when nWorkers is
// 1, otherwise on per-worker streams.
func runBirthday(ctx context.Context, cfg sim.BirthdayConfig, rng *sim.PartitionedRNG, nWorkers int) (float64, error) {
	if nWorkers == 1 {
		return sim.EstimateCollisionProbability(cfg.GroupSize, cfg.NumTrials, rng.ForSubsystem(sim.SubsystemBirthday))
	}
	return sim.EstimateCollisionProbabilityParallel(ctx, cfg.GroupSize, cfg.NumTrials, rng, nWorkers)
}

// runSweep sweeps sequentially on the birthday stream when nWorkers is 1,
// otherwise on per-worker streams.
func runSweep(ctx context.Context, lo, hi, trials int, rng *sim.PartitionedRNG, nWorkers int) ([]sim.BirthdayPoint, error) {
	if nWorkers == 1 {
		return sim.SweepCollisionProbability(lo, hi, trials, rng.ForSubsystem(sim.SubsystemBirthday))
	}
	return sim.SweepCollisionProbabilityParallel(ctx, lo, hi, trials, rng, nWorkers)
}

func init() {
	birthdayCmd.Flags().IntVar(&groupSize, "group-size", 23, "Number of people per group")
	birthdayCmd.Flags().IntVar(&birthdayTrials, "num-trials", 10000, "Number of simulated groups")

	sweepCmd.Flags().IntVar(&minGroup, "min-group", 1, "Smallest group size")
	sweepCmd.Flags().IntVar(&maxGroup, "max-group", 100, "Largest group size")
	sweepCmd.Flags().IntVar(&sweepTrials, "num-trials", 1000, "Number of simulated groups per size")

	rootCmd.AddCommand(birthdayCmd)
	rootCmd.AddCommand(sweepCmd)
}
