// Summarizes aggregated Monte Carlo results for final reporting:
// extinction-time statistics, histograms and analytic references.

package sim

import (
	"sort"
	"time"

	"github.com/aclements/go-moremath/stats"

	"github.com/inference-sim/montecarlo/sim/trace"
)

// DefaultHistogramHorizon is the largest extinction time binned by default.
const DefaultHistogramHorizon = 10

// Bin is one extinction-time histogram bin.
type Bin struct {
	Key      int     `json:"time"`
	Count    int     `json:"count"`
	Fraction float64 `json:"fraction"` // Count / NumTrials, not / extinct trials
}

// ExtinctionMetrics reports an extinction-mode experiment.
type ExtinctionMetrics struct {
	Offspring     OffspringDistribution `json:"offspring"`
	MeanOffspring float64               `json:"mean_offspring"`
	NumTrials     int                   `json:"num_trials"`
	MaxSteps      int                   `json:"max_steps"`
	PopulationCap int                   `json:"population_cap"`
	Workers       int                   `json:"workers"`

	ExtinctionProbability float64 `json:"extinction_probability"`
	ExtinctCount          int     `json:"extinct_count"`
	CappedCount           int     `json:"capped_count"`
	SurvivedCount         int     `json:"survived_count"`

	// Exact branching-process references; the estimate is biased low by
	// both the generation limit and the population cap.
	AnalyticProbability      float64 `json:"analytic_probability"`
	AnalyticWithinStepsLimit float64 `json:"analytic_within_steps_limit"`

	MeanExtinctionTime   float64 `json:"mean_extinction_time"`
	StdDevExtinctionTime float64 `json:"stddev_extinction_time"`
	P50ExtinctionTime    float64 `json:"p50_extinction_time"`
	P95ExtinctionTime    float64 `json:"p95_extinction_time"`
	MaxExtinctionTime    int     `json:"max_extinction_time"`
	Histogram            []Bin   `json:"histogram"`

	SimulationDurationS float64 `json:"simulation_duration_s"` // wall clock, not deterministic
}

// NewExtinctionMetrics summarizes result. Extinction times above
// histogramHorizon are counted in the statistics but not binned.
func NewExtinctionMetrics(cfg BranchingConfig, result *AggregateResult, workers, histogramHorizon int) *ExtinctionMetrics {
	m := &ExtinctionMetrics{
		Offspring:                cfg.Offspring,
		MeanOffspring:            cfg.Offspring.Mean(),
		NumTrials:                result.NumTrials,
		MaxSteps:                 result.MaxSteps,
		PopulationCap:            cfg.PopulationCap,
		Workers:                  workers,
		ExtinctionProbability:    result.ExtinctionProbability,
		ExtinctCount:             result.ExtinctCount(),
		CappedCount:              result.CappedCount,
		SurvivedCount:            result.SurvivedCount,
		AnalyticProbability:      ExtinctionProbability(cfg.Offspring),
		AnalyticWithinStepsLimit: ExtinctionCDF(cfg.Offspring, cfg.MaxSteps-1),
		Histogram:                Histogram(result.ExtinctionTimes, result.NumTrials, histogramHorizon),
	}
	if len(result.ExtinctionTimes) == 0 {
		return m
	}

	s := stats.Sample{Xs: make([]float64, len(result.ExtinctionTimes))}
	for i, t := range result.ExtinctionTimes {
		s.Xs[i] = float64(t)
	}
	sort.Float64s(s.Xs)
	s.Sorted = true

	m.MeanExtinctionTime = s.Mean()
	if len(s.Xs) > 1 {
		m.StdDevExtinctionTime = s.StdDev()
	}
	m.P50ExtinctionTime = s.Quantile(0.50)
	m.P95ExtinctionTime = s.Quantile(0.95)
	_, hi := s.Bounds()
	m.MaxExtinctionTime = int(hi)
	return m
}

// Histogram counts extinction times <= horizon. Only non-empty bins are
// returned, in ascending time order.
func Histogram(times []int, numTrials, horizon int) []Bin {
	counts := make(map[int]int)
	for _, t := range times {
		if t <= horizon {
			counts[t]++
		}
	}
	bins := make([]Bin, 0, len(counts))
	for key, count := range counts {
		bins = append(bins, Bin{Key: key, Count: count, Fraction: float64(count) / float64(numTrials)})
	}
	sort.Slice(bins, func(i, j int) bool { return bins[i].Key < bins[j].Key })
	return bins
}

// SaveResults prints the metrics to stdout and, if outputPath is non-empty,
// writes them as JSON to outputPath.
func (m *ExtinctionMetrics) SaveResults(startTime time.Time, outputPath string) error {
	m.SimulationDurationS = time.Since(startTime).Seconds()
	return WriteResults("Extinction Metrics", m, outputPath)
}

// BirthdayMetrics reports a single birthday-collision estimate.
type BirthdayMetrics struct {
	GroupSize     int     `json:"group_size"`
	NumTrials     int     `json:"num_trials"`
	Workers       int     `json:"workers"`
	Estimated     float64 `json:"estimated"`
	Analytic      float64 `json:"analytic"`
	AbsoluteError float64 `json:"absolute_error"`

	SimulationDurationS float64 `json:"simulation_duration_s"`
}

// NewBirthdayMetrics pairs an estimate with its closed-form value.
func NewBirthdayMetrics(cfg BirthdayConfig, estimated float64, workers int) *BirthdayMetrics {
	analytic := AnalyticCollisionProbability(cfg.GroupSize)
	diff := estimated - analytic
	if diff < 0 {
		diff = -diff
	}
	return &BirthdayMetrics{
		GroupSize:     cfg.GroupSize,
		NumTrials:     cfg.NumTrials,
		Workers:       workers,
		Estimated:     estimated,
		Analytic:      analytic,
		AbsoluteError: diff,
	}
}

// SaveResults prints the metrics to stdout and optionally writes them to outputPath.
func (m *BirthdayMetrics) SaveResults(startTime time.Time, outputPath string) error {
	m.SimulationDurationS = time.Since(startTime).Seconds()
	return WriteResults("Birthday Metrics", m, outputPath)
}

// SweepMetrics reports a birthday group-size sweep.
type SweepMetrics struct {
	NumTrials       int             `json:"num_trials"`
	MedianGroupSize int             `json:"median_group_size"` // -1 if no estimate reached 0.5
	Points          []BirthdayPoint `json:"points"`

	SimulationDurationS float64 `json:"simulation_duration_s"`
}

// NewSweepMetrics wraps sweep points.
func NewSweepMetrics(numTrials int, points []BirthdayPoint) *SweepMetrics {
	return &SweepMetrics{NumTrials: numTrials, MedianGroupSize: MedianGroupSize(points), Points: points}
}

// SaveResults prints the metrics to stdout and optionally writes them to outputPath.
func (m *SweepMetrics) SaveResults(startTime time.Time, outputPath string) error {
	m.SimulationDurationS = time.Since(startTime).Seconds()
	return WriteResults("Birthday Sweep", m, outputPath)
}

// HistoryMetrics reports a history-mode experiment.
type HistoryMetrics struct {
	Offspring OffspringDistribution `json:"offspring"`
	MaxSteps  int                   `json:"max_steps"`
	NumRuns   int                   `json:"num_runs"`
	Summary   *trace.TraceSummary   `json:"summary"`

	SimulationDurationS float64 `json:"simulation_duration_s"`
}

// NewHistoryMetrics wraps a trajectory summary with its run parameters.
func NewHistoryMetrics(d OffspringDistribution, maxSteps, numRuns int, summary *trace.TraceSummary) *HistoryMetrics {
	return &HistoryMetrics{Offspring: d, MaxSteps: maxSteps, NumRuns: numRuns, Summary: summary}
}

// SaveResults prints the metrics to stdout and optionally writes them to outputPath.
func (m *HistoryMetrics) SaveResults(startTime time.Time, outputPath string) error {
	m.SimulationDurationS = time.Since(startTime).Seconds()
	return WriteResults("History Metrics", m, outputPath)
}
