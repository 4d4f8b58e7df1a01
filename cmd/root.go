package cmd

import (
	"context"
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	sim "github.com/inference-sim/montecarlo/sim"
)

var (
	// CLI flags shared by every subcommand
	seed             int64         // Master seed for all RNG subsystems
	logLevel         string        // Log verbosity level
	workers          int           // Number of goroutines running trials
	scenarioPath     string        // Optional scenario YAML
	defaultsFilePath string        // Path to defaults.yaml (offspring presets)
	resultsPath      string        // File to write the metrics JSON to
	timeout          time.Duration // Wall-clock limit for a run (0 = none)
)

// rootCmd is the base command for the CLI
var rootCmd = &cobra.Command{
	Use:   "montecarlo",
	Short: "Monte Carlo estimators for birthday collisions and branching-population extinction",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		// Set up logging
		level, err := logrus.ParseLevel(logLevel)
		if err != nil {
			logrus.Fatalf("Invalid log level: %s", logLevel)
		}
		logrus.SetLevel(level)
	},
}

// Execute runs the CLI root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// loadScenario reads --config when given. A nil bundle means no scenario file.
func loadScenario() *sim.ScenarioBundle {
	if scenarioPath == "" {
		return nil
	}
	bundle, err := sim.LoadScenarioBundle(scenarioPath)
	if err != nil {
		logrus.Fatalf("Failed to load scenario: %v", err)
	}
	if err := bundle.Validate(); err != nil {
		logrus.Fatalf("Invalid scenario %s: %v", scenarioPath, err)
	}
	logrus.Infof("Loaded scenario from %s", scenarioPath)
	return bundle
}

// intSetting resolves an integer parameter: an explicitly set flag wins, then
// the scenario value, then the flag default.
func intSetting(cmd *cobra.Command, flag string, cliValue int, scenario *int) int {
	if cmd.Flags().Changed(flag) || scenario == nil {
		return cliValue
	}
	return *scenario
}

// resolveSeed applies the same precedence as intSetting to --seed.
func resolveSeed(cmd *cobra.Command, bundle *sim.ScenarioBundle) int64 {
	if cmd.Flags().Changed("seed") || bundle == nil || bundle.Seed == nil {
		return seed
	}
	return *bundle.Seed
}

// resolveWorkers applies the same precedence as intSetting to --workers.
func resolveWorkers(cmd *cobra.Command, bundle *sim.ScenarioBundle) int {
	if bundle == nil {
		return workers
	}
	return intSetting(cmd, "workers", workers, bundle.Workers)
}

// runContext returns a context bounded by --timeout when it is positive.
func runContext() (context.Context, context.CancelFunc) {
	if timeout > 0 {
		return context.WithTimeout(context.Background(), timeout)
	}
	return context.WithCancel(context.Background())
}

func init() {
	rootCmd.PersistentFlags().Int64Var(&seed, "seed", 42, "Master seed for random number generation")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log", "error", "Log level (trace, debug, info, warn, error, fatal, panic)")
	rootCmd.PersistentFlags().IntVar(&workers, "workers", 1, "Number of parallel workers (1 = sequential)")
	rootCmd.PersistentFlags().StringVar(&scenarioPath, "config", "", "Scenario YAML; explicitly set flags take precedence over it")
	rootCmd.PersistentFlags().StringVar(&defaultsFilePath, "defaults-filepath", "defaults.yaml", "Path to default constants (offspring presets)")
	rootCmd.PersistentFlags().StringVar(&resultsPath, "results-path", "", "File to save the metrics JSON to")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 0, "Abort the run after this wall-clock duration (0 = no limit)")
}
