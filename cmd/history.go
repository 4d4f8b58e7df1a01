package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	sim "github.com/inference-sim/montecarlo/sim"
	"github.com/inference-sim/montecarlo/sim/trace"
)

var (
	// CLI flags for history mode
	historySteps int    // Generation limit per run
	historyRuns  int    // Number of recorded runs
	tracePath    string // File to save the recorded trajectories to
	logShift     bool   // Add 1 to every saved population for log-scale plots
)

// historyCmd records full population trajectories
var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Record population trajectories of a branching population",
	Run: func(cmd *cobra.Command, args []string) {
		bundle := loadScenario()
		d, err := resolveOffspring(cmd, bundle)
		if err != nil {
			logrus.Fatalf("Invalid branching configuration: %v", err)
		}
		steps, runs := historySteps, historyRuns
		if bundle != nil {
			steps = intSetting(cmd, "max-steps", historySteps, bundle.History.MaxSteps)
			runs = intSetting(cmd, "num-runs", historyRuns, bundle.History.NumRuns)
		}
		rng := sim.NewPartitionedRNG(sim.NewSimulationKey(resolveSeed(cmd, bundle)))

		logrus.Infof("Starting history run: offspring=%+v, max_steps=%d, runs=%d", d, steps, runs)
		startTime := time.Now()
		st, err := runHistory(d, steps, runs, rng)
		if err != nil {
			logrus.Fatalf("History run failed: %v", err)
		}
		summary, err := trace.Summarize(st)
		if err != nil {
			logrus.Fatalf("Failed to summarize trajectories: %v", err)
		}
		metrics := sim.NewHistoryMetrics(d, steps, runs, summary)
		if err := metrics.SaveResults(startTime, resultsPath); err != nil {
			logrus.Fatalf("Failed to save results: %v", err)
		}
		if tracePath != "" {
			if err := saveTrajectories(st.Trajectories, tracePath, logShift); err != nil {
				logrus.Fatalf("Failed to save trajectories: %v", err)
			}
		}
		logrus.Info("History run complete.")
	},
}

// runHistory simulates runs trajectories on the history stream and records
// each one in a new trace.
func runHistory(d sim.OffspringDistribution, steps, runs int, rng *sim.PartitionedRNG) (*trace.SimulationTrace, error) {
	histories, err := sim.SimulateHistories(d, steps, runs, rng.ForSubsystem(sim.SubsystemHistory))
	if err != nil {
		return nil, err
	}
	st := trace.NewSimulationTrace(trace.TraceConfig{Level: trace.TraceLevelTrajectories})
	for i, h := range histories {
		st.RecordTrajectory(trace.TrajectoryRecord{Trial: i, Populations: h})
	}
	return st, nil
}

// saveTrajectories writes records as a JSON array to path.
func saveTrajectories(records []trace.TrajectoryRecord, path string, shifted bool) error {
	out := records
	if shifted {
		out = make([]trace.TrajectoryRecord, len(records))
		for i, r := range records {
			out[i] = trace.TrajectoryRecord{Trial: r.Trial, Populations: r.LogShifted()}
		}
	}
	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return fmt.Errorf("marshalling trajectories: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing trajectories to %s: %w", path, err)
	}
	logrus.Infof("Trajectories written to: %s", path)
	return nil
}

func init() {
	addOffspringFlags(historyCmd)
	historyCmd.Flags().IntVar(&historySteps, "max-steps", 10, "Generation limit per run")
	historyCmd.Flags().IntVar(&historyRuns, "num-runs", 25, "Number of recorded runs")
	historyCmd.Flags().StringVar(&tracePath, "trace-path", "", "File to save trajectories to (JSON)")
	historyCmd.Flags().BoolVar(&logShift, "log-shift", false, "Save populations shifted by +1 for log-scale plots")

	rootCmd.AddCommand(historyCmd)
}
