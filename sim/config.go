package sim

import (
	"fmt"
	"math"
)

// ProbabilityTolerance is the allowed deviation of an offspring distribution's sum from 1.0.
const ProbabilityTolerance = 1e-9

// OffspringDistribution gives the probability that one individual leaves
// 0 (die), 1 (stay), 2 (double) or 3 (triple) individuals in the next generation.
type OffspringDistribution struct {
	PDie    float64 `yaml:"p_die" json:"p_die"`
	PStay   float64 `yaml:"p_stay" json:"p_stay"`
	PDouble float64 `yaml:"p_double" json:"p_double"`
	PTriple float64 `yaml:"p_triple" json:"p_triple"`
}

// NewOffspringDistribution creates an OffspringDistribution. It does not validate.
func NewOffspringDistribution(pDie, pStay, pDouble, pTriple float64) OffspringDistribution {
	return OffspringDistribution{PDie: pDie, PStay: pStay, PDouble: pDouble, PTriple: pTriple}
}

// UniformOffspring is the equal-weight distribution used by the amoeba puzzle.
func UniformOffspring() OffspringDistribution {
	return NewOffspringDistribution(0.25, 0.25, 0.25, 0.25)
}

// probabilities returns the four class probabilities in offspring-count order.
func (d OffspringDistribution) probabilities() [4]float64 {
	return [4]float64{d.PDie, d.PStay, d.PDouble, d.PTriple}
}

// Validate checks every probability is finite and non-negative and that they sum to 1.
func (d OffspringDistribution) Validate() error {
	names := [4]string{"p_die", "p_stay", "p_double", "p_triple"}
	sum := 0.0
	for i, p := range d.probabilities() {
		if math.IsNaN(p) || math.IsInf(p, 0) {
			return invalidParam(names[i], p, "must be finite")
		}
		if p < 0 {
			return invalidParam(names[i], p, "must be non-negative")
		}
		sum += p
	}
	if math.Abs(sum-1.0) > ProbabilityTolerance {
		return invalidParam("offspring", d, fmt.Sprintf("probabilities sum to %v, want 1.0", sum))
	}
	return nil
}

// Mean returns the expected number of offspring per individual.
func (d OffspringDistribution) Mean() float64 {
	return d.PStay + 2*d.PDouble + 3*d.PTriple
}

// Offspring maps a uniform draw r in [0,1) to an offspring count by walking the
// contiguous intervals [0,PDie), [PDie,PDie+PStay), ... in order.
// Floating-point slack past the last boundary resolves to the highest class
// with non-zero probability, so zero-probability classes are never produced.
func (d OffspringDistribution) Offspring(r float64) int {
	probs := d.probabilities()
	cumulative := 0.0
	last := 0
	for k, p := range probs {
		if p == 0 {
			continue
		}
		last = k
		cumulative += p
		if r < cumulative {
			return k
		}
	}
	return last
}

// BranchingConfig groups the parameters of one branching-process experiment.
// PopulationCap applies to extinction mode only.
type BranchingConfig struct {
	Offspring     OffspringDistribution
	NumTrials     int // independent trials to aggregate (must be > 0)
	MaxSteps      int // generation cap (must be > 0)
	PopulationCap int // populations above this are treated as non-extinct (must be > 0)
}

// NewBranchingConfig creates a BranchingConfig. Zero values are kept as-is;
// Validate rejects them.
func NewBranchingConfig(offspring OffspringDistribution, numTrials, maxSteps, populationCap int) BranchingConfig {
	return BranchingConfig{
		Offspring:     offspring,
		NumTrials:     numTrials,
		MaxSteps:      maxSteps,
		PopulationCap: populationCap,
	}
}

// Validate checks the offspring distribution and all counts.
func (c BranchingConfig) Validate() error {
	if err := c.Offspring.Validate(); err != nil {
		return err
	}
	if err := requirePositive("num_trials", c.NumTrials); err != nil {
		return err
	}
	if err := requirePositive("max_steps", c.MaxSteps); err != nil {
		return err
	}
	return requirePositive("population_cap", c.PopulationCap)
}

// BirthdayConfig groups the parameters of one birthday-collision estimate.
type BirthdayConfig struct {
	GroupSize int // people per trial (must be >= 0)
	NumTrials int // independent trials (must be > 0)
}

// NewBirthdayConfig creates a BirthdayConfig. It does not validate.
func NewBirthdayConfig(groupSize, numTrials int) BirthdayConfig {
	return BirthdayConfig{GroupSize: groupSize, NumTrials: numTrials}
}

// Validate checks GroupSize >= 0 and NumTrials > 0.
func (c BirthdayConfig) Validate() error {
	if c.GroupSize < 0 {
		return invalidParam("group_size", c.GroupSize, "must be non-negative")
	}
	return requirePositive("num_trials", c.NumTrials)
}
