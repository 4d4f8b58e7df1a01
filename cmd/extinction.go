package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	sim "github.com/inference-sim/montecarlo/sim"
)

var (
	// CLI flags for the offspring distribution (extinction and history)
	preset  string  // Named distribution from defaults.yaml
	pDie    float64 // Probability an individual leaves no offspring
	pStay   float64 // Probability of exactly one
	pDouble float64 // Probability of exactly two
	pTriple float64 // Probability of exactly three

	// CLI flags for extinction mode
	extinctionTrials int    // Independent trials
	extinctionSteps  int    // Generation limit per trial
	populationCap    int    // Population above which a trial stops early
	histogramMax     int    // Largest extinction time binned in the histogram
	timesPath        string // File to save raw extinction times to
)

// extinctionCmd estimates the extinction probability of a one-individual population
var extinctionCmd = &cobra.Command{
	Use:   "extinction",
	Short: "Estimate the probability that a branching population dies out",
	Run: func(cmd *cobra.Command, args []string) {
		bundle := loadScenario()
		cfg, err := resolveBranchingConfig(cmd, bundle)
		if err != nil {
			logrus.Fatalf("Invalid branching configuration: %v", err)
		}
		nWorkers := resolveWorkers(cmd, bundle)
		rng := sim.NewPartitionedRNG(sim.NewSimulationKey(resolveSeed(cmd, bundle)))

		ctx, cancel := runContext()
		defer cancel()

		logrus.Infof("Starting extinction run: offspring=%+v, trials=%d, max_steps=%d, cap=%d, workers=%d",
			cfg.Offspring, cfg.NumTrials, cfg.MaxSteps, cfg.PopulationCap, nWorkers)
		startTime := time.Now()
		result, err := runExtinction(ctx, cfg, rng, nWorkers)
		if err != nil {
			logrus.Fatalf("Extinction run failed: %v", err)
		}

		metrics := sim.NewExtinctionMetrics(cfg, result, nWorkers, histogramMax)
		if err := metrics.SaveResults(startTime, resultsPath); err != nil {
			logrus.Fatalf("Failed to save results: %v", err)
		}
		if timesPath != "" {
			if err := sim.SavetoFile(result.ExtinctionTimes, timesPath); err != nil {
				logrus.Fatalf("Failed to save extinction times: %v", err)
			}
		}
		logrus.Info("Extinction run complete.")
	},
}

// resolveOffspring builds the offspring distribution from, lowest precedence
// first: the named preset, the scenario's probabilities, explicitly set flags.
// The defaults file is not read when all four probabilities are given.
func resolveOffspring(cmd *cobra.Command, bundle *sim.ScenarioBundle) (sim.OffspringDistribution, error) {
	name := preset
	if !cmd.Flags().Changed("preset") && bundle != nil && bundle.Branching.Preset != "" {
		name = bundle.Branching.Preset
	}
	var d sim.OffspringDistribution
	if !offspringFullySpecified(cmd, bundle) {
		var err error
		if d, err = GetOffspringPreset(name, defaultsFilePath); err != nil {
			return sim.OffspringDistribution{}, err
		}
	}
	if bundle != nil {
		d = bundle.Branching.ApplyOffspring(d)
	}
	if cmd.Flags().Changed("p-die") {
		d.PDie = pDie
	}
	if cmd.Flags().Changed("p-stay") {
		d.PStay = pStay
	}
	if cmd.Flags().Changed("p-double") {
		d.PDouble = pDouble
	}
	if cmd.Flags().Changed("p-triple") {
		d.PTriple = pTriple
	}
	if err := d.Validate(); err != nil {
		return sim.OffspringDistribution{}, fmt.Errorf("offspring preset %q with overrides: %w", name, err)
	}
	return d, nil
}

// offspringFullySpecified reports whether every probability comes from a flag
// or the scenario file.
func offspringFullySpecified(cmd *cobra.Command, bundle *sim.ScenarioBundle) bool {
	var section sim.BranchingSection
	if bundle != nil {
		section = bundle.Branching
	}
	fields := []struct {
		flag     string
		scenario *float64
	}{
		{"p-die", section.PDie},
		{"p-stay", section.PStay},
		{"p-double", section.PDouble},
		{"p-triple", section.PTriple},
	}
	for _, f := range fields {
		if !cmd.Flags().Changed(f.flag) && f.scenario == nil {
			return false
		}
	}
	return true
}

// resolveBranchingConfig merges the extinction flags over the scenario file
// and validates the result.
func resolveBranchingConfig(cmd *cobra.Command, bundle *sim.ScenarioBundle) (sim.BranchingConfig, error) {
	d, err := resolveOffspring(cmd, bundle)
	if err != nil {
		return sim.BranchingConfig{}, err
	}
	var cfg sim.BranchingConfig
	if bundle == nil {
		cfg = sim.NewBranchingConfig(d, extinctionTrials, extinctionSteps, populationCap)
	} else {
		cfg = sim.NewBranchingConfig(d,
			intSetting(cmd, "num-trials", extinctionTrials, bundle.Branching.NumTrials),
			intSetting(cmd, "max-steps", extinctionSteps, bundle.Branching.MaxSteps),
			intSetting(cmd, "population-cap", populationCap, bundle.Branching.PopulationCap),
		)
	}
	if err := cfg.Validate(); err != nil {
		return sim.BranchingConfig{}, err
	}
	return cfg, nil
}

// runExtinction aggregates sequentially on the branching stream when nWorkers
// is 1, otherwise on per-worker streams. ctx only bounds parallel runs.
func runExtinction(ctx context.Context, cfg sim.BranchingConfig, rng *sim.PartitionedRNG, nWorkers int) (*sim.AggregateResult, error) {
	if nWorkers == 1 {
		return sim.Aggregate(sim.RunExtinctionTrial, cfg, rng.ForSubsystem(sim.SubsystemBranching))
	}
	return sim.AggregateParallel(ctx, sim.RunExtinctionTrial, cfg, rng, nWorkers)
}

// addOffspringFlags registers the distribution flags on c.
func addOffspringFlags(c *cobra.Command) {
	c.Flags().StringVar(&preset, "preset", "uniform", "Offspring preset from defaults.yaml")
	c.Flags().Float64Var(&pDie, "p-die", 0.25, "Probability of no offspring (overrides the preset)")
	c.Flags().Float64Var(&pStay, "p-stay", 0.25, "Probability of one offspring (overrides the preset)")
	c.Flags().Float64Var(&pDouble, "p-double", 0.25, "Probability of two offspring (overrides the preset)")
	c.Flags().Float64Var(&pTriple, "p-triple", 0.25, "Probability of three offspring (overrides the preset)")
}

func init() {
	addOffspringFlags(extinctionCmd)
	extinctionCmd.Flags().IntVar(&extinctionTrials, "num-trials", 1000000, "Number of independent trials")
	extinctionCmd.Flags().IntVar(&extinctionSteps, "max-steps", 100, "Generation limit per trial")
	extinctionCmd.Flags().IntVar(&populationCap, "population-cap", 25, "Stop a trial once its population exceeds this")
	extinctionCmd.Flags().IntVar(&histogramMax, "histogram-max", sim.DefaultHistogramHorizon, "Largest extinction time shown in the histogram")
	extinctionCmd.Flags().StringVar(&timesPath, "times-path", "", "File to save raw extinction times to (comma-separated)")

	rootCmd.AddCommand(extinctionCmd)
}
