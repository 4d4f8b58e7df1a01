package sim

import (
	"math/rand"
)

// OutcomeKind tags how an extinction-mode trial ended.
type OutcomeKind int

const (
	// Extinct: the population reached zero.
	Extinct OutcomeKind = iota
	// Survived: the generation limit was reached with individuals alive.
	Survived
	// CappedEarly: the population exceeded the cap and the trial was cut short.
	// This is an approximation, not a proof of survival.
	CappedEarly
)

func (k OutcomeKind) String() string {
	switch k {
	case Extinct:
		return "extinct"
	case Survived:
		return "survived"
	case CappedEarly:
		return "capped"
	default:
		return "unknown"
	}
}

// Outcome is the tagged result of one extinction-mode trial.
type Outcome struct {
	Kind            OutcomeKind
	Step            int // generation at which the trial stopped
	FinalPopulation int // population when the trial stopped
}

// ExtinctionTime collapses the outcome to the integer contract: the
// extinction step, or maxSteps when the population survived or was capped.
func (o Outcome) ExtinctionTime(maxSteps int) int {
	if o.Kind == Extinct && o.Step < maxSteps {
		return o.Step
	}
	return maxSteps
}

// NextGeneration applies the offspring rule to every individual of population
// and returns the size of the next generation. One uniform draw per individual.
func NextGeneration(d OffspringDistribution, population int, rng *rand.Rand) int {
	next := 0
	for range population {
		next += d.Offspring(rng.Float64())
	}
	return next
}

// SimulateExtinctionTime runs one trial from a single individual and returns
// the generation in [0, maxSteps] at which the population died out. maxSteps is
// returned when the population is still alive after maxSteps generations or
// grows past populationCap (an approximation: large populations almost never
// die out, so the trial is cut short).
func SimulateExtinctionTime(d OffspringDistribution, maxSteps, populationCap int, rng *rand.Rand) (int, error) {
	o, err := SimulateOutcome(d, maxSteps, populationCap, rng)
	if err != nil {
		return 0, err
	}
	return o.ExtinctionTime(maxSteps), nil
}

// SimulateOutcome is SimulateExtinctionTime with the stop reason preserved.
func SimulateOutcome(d OffspringDistribution, maxSteps, populationCap int, rng *rand.Rand) (Outcome, error) {
	cfg := NewBranchingConfig(d, 1, maxSteps, populationCap)
	if err := cfg.Validate(); err != nil {
		return Outcome{}, err
	}
	return RunExtinctionTrial(cfg, rng), nil
}

// RunExtinctionTrial is the unchecked extinction-mode trial; cfg must be valid.
// Checks run at the start of each generation: zero population ends the trial
// as Extinct, a population above cfg.PopulationCap ends it as CappedEarly.
// A population that hits zero on the final transition is reported as Extinct
// at Step == MaxSteps, which ExtinctionTime maps to MaxSteps.
func RunExtinctionTrial(cfg BranchingConfig, rng *rand.Rand) Outcome {
	population := 1
	for step := 0; step < cfg.MaxSteps; step++ {
		if population == 0 {
			return Outcome{Kind: Extinct, Step: step}
		}
		if population > cfg.PopulationCap {
			return Outcome{Kind: CappedEarly, Step: step, FinalPopulation: population}
		}
		population = NextGeneration(cfg.Offspring, population, rng)
	}
	if population == 0 {
		return Outcome{Kind: Extinct, Step: cfg.MaxSteps}
	}
	return Outcome{Kind: Survived, Step: cfg.MaxSteps, FinalPopulation: population}
}

// SimulateHistory runs one trial from a single individual and returns the
// population of every generation, starting with 1. It stops after maxSteps
// transitions or right after the population first reaches 0. No population
// cap applies, so supercritical runs with large maxSteps grow without bound.
func SimulateHistory(d OffspringDistribution, maxSteps int, rng *rand.Rand) ([]int, error) {
	if err := d.Validate(); err != nil {
		return nil, err
	}
	if err := requirePositive("max_steps", maxSteps); err != nil {
		return nil, err
	}
	return runHistory(d, maxSteps, rng), nil
}

func runHistory(d OffspringDistribution, maxSteps int, rng *rand.Rand) []int {
	population := 1
	history := []int{population}
	for step := 0; step < maxSteps && population > 0; step++ {
		population = NextGeneration(d, population, rng)
		history = append(history, population)
	}
	return history
}

// SimulateHistories runs numRuns independent history-mode trials.
func SimulateHistories(d OffspringDistribution, maxSteps, numRuns int, rng *rand.Rand) ([][]int, error) {
	if err := d.Validate(); err != nil {
		return nil, err
	}
	if err := requirePositive("max_steps", maxSteps); err != nil {
		return nil, err
	}
	if err := requirePositive("num_runs", numRuns); err != nil {
		return nil, err
	}
	histories := make([][]int, numRuns)
	for i := range histories {
		histories[i] = runHistory(d, maxSteps, rng)
	}
	return histories, nil
}
