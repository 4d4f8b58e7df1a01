package trace

import (
	"fmt"

	"github.com/DataDog/sketches-go/ddsketch"
)

// sketchRelativeAccuracy is the relative error bound of per-generation quantiles.
const sketchRelativeAccuracy = 0.01

// GenerationSummary describes the population across all trajectories at one generation.
// Extinct trajectories contribute zeros after their last entry; surviving ones
// that ended earlier are left out.
type GenerationSummary struct {
	Generation int     `json:"generation"`
	Observed   int     `json:"observed"`
	Extinct    int     `json:"extinct"`
	Mean       float64 `json:"mean"`
	P50        float64 `json:"p50"`
	P95        float64 `json:"p95"`
	Max        int     `json:"max"`
}

// TraceSummary aggregates statistics from a SimulationTrace.
type TraceSummary struct {
	TotalTrajectories int                 `json:"total_trajectories"`
	ExtinctCount      int                 `json:"extinct_count"`
	SurvivingCount    int                 `json:"surviving_count"`
	MeanPeak          float64             `json:"mean_peak"`
	MaxPeak           int                 `json:"max_peak"`
	ExtinctionSteps   map[int]int         `json:"extinction_steps"` // generation → trajectories extinct there
	Generations       []GenerationSummary `json:"generations"`
}

// Summarize computes aggregate statistics from a SimulationTrace.
// Safe for nil or empty traces (returns zero-value fields).
func Summarize(st *SimulationTrace) (*TraceSummary, error) {
	summary := &TraceSummary{
		ExtinctionSteps: make(map[int]int),
		Generations:     make([]GenerationSummary, 0),
	}
	if st == nil || len(st.Trajectories) == 0 {
		return summary, nil
	}

	summary.TotalTrajectories = len(st.Trajectories)
	longest := 0
	totalPeak := 0
	for _, r := range st.Trajectories {
		if r.Extinct() {
			summary.ExtinctCount++
			summary.ExtinctionSteps[r.ExtinctionStep()]++
		} else {
			summary.SurvivingCount++
		}
		peak := r.Peak()
		totalPeak += peak
		if peak > summary.MaxPeak {
			summary.MaxPeak = peak
		}
		longest = max(longest, len(r.Populations))
	}
	summary.MeanPeak = float64(totalPeak) / float64(summary.TotalTrajectories)

	for g := 0; g < longest; g++ {
		gs, err := summarizeGeneration(st.Trajectories, g)
		if err != nil {
			return nil, err
		}
		summary.Generations = append(summary.Generations, gs)
	}
	return summary, nil
}

func summarizeGeneration(records []TrajectoryRecord, g int) (GenerationSummary, error) {
	gs := GenerationSummary{Generation: g}
	sketch, err := ddsketch.NewDefaultDDSketch(sketchRelativeAccuracy)
	if err != nil {
		return gs, fmt.Errorf("creating sketch: %w", err)
	}
	total := 0
	for _, r := range records {
		p := r.PopulationAt(g)
		if p < 0 {
			continue
		}
		gs.Observed++
		if p == 0 {
			gs.Extinct++
		}
		total += p
		gs.Max = max(gs.Max, p)
		if err := sketch.Add(float64(p)); err != nil {
			return gs, fmt.Errorf("generation %d: adding %d to sketch: %w", g, p, err)
		}
	}
	if gs.Observed == 0 {
		return gs, nil
	}
	gs.Mean = float64(total) / float64(gs.Observed)
	qs, err := sketch.GetValuesAtQuantiles([]float64{0.50, 0.95})
	if err != nil {
		return gs, fmt.Errorf("generation %d: reading quantiles: %w", g, err)
	}
	gs.P50, gs.P95 = qs[0], qs[1]
	return gs, nil
}
