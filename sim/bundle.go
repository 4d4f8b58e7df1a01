package sim

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// ScenarioBundle holds experiment parameters loadable from a YAML file.
// Nil pointer fields mean "not set in YAML"; they do not override CLI defaults.
// String fields use empty string for "not set".
type ScenarioBundle struct {
	Seed      *int64           `yaml:"seed"`
	Workers   *int             `yaml:"workers"`
	Branching BranchingSection `yaml:"branching"`
	History   HistorySection   `yaml:"history"`
	Birthday  BirthdaySection  `yaml:"birthday"`
}

// BranchingSection configures extinction-mode runs.
type BranchingSection struct {
	Preset        string   `yaml:"preset"`
	PDie          *float64 `yaml:"p_die"`
	PStay         *float64 `yaml:"p_stay"`
	PDouble       *float64 `yaml:"p_double"`
	PTriple       *float64 `yaml:"p_triple"`
	NumTrials     *int     `yaml:"num_trials"`
	MaxSteps      *int     `yaml:"max_steps"`
	PopulationCap *int     `yaml:"population_cap"`
}

// HistorySection configures history-mode runs. Offspring probabilities come
// from BranchingSection.
type HistorySection struct {
	MaxSteps *int `yaml:"max_steps"`
	NumRuns  *int `yaml:"num_runs"`
}

// BirthdaySection configures birthday-collision runs.
type BirthdaySection struct {
	GroupSize *int `yaml:"group_size"`
	NumTrials *int `yaml:"num_trials"`
	MinGroup  *int `yaml:"min_group"`
	MaxGroup  *int `yaml:"max_group"`
}

// LoadScenarioBundle reads and parses a YAML scenario file.
// Uses strict parsing: unrecognized keys (typos) are rejected.
func LoadScenarioBundle(path string) (*ScenarioBundle, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading scenario config: %w", err)
	}
	var bundle ScenarioBundle
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&bundle); err != nil {
		return nil, fmt.Errorf("parsing scenario config: %w", err)
	}
	return &bundle, nil
}

// Validate checks the ranges of every field that is set. Probability sums are
// checked later, once presets and flags have been merged in.
func (b *ScenarioBundle) Validate() error {
	if b.Workers != nil && *b.Workers <= 0 {
		return invalidParam("workers", *b.Workers, "must be positive")
	}
	probs := []struct {
		name string
		v    *float64
	}{
		{"branching.p_die", b.Branching.PDie},
		{"branching.p_stay", b.Branching.PStay},
		{"branching.p_double", b.Branching.PDouble},
		{"branching.p_triple", b.Branching.PTriple},
	}
	for _, p := range probs {
		if p.v != nil && (*p.v < 0 || *p.v > 1) {
			return invalidParam(p.name, *p.v, "must be in [0, 1]")
		}
	}
	positives := []struct {
		name string
		v    *int
	}{
		{"branching.num_trials", b.Branching.NumTrials},
		{"branching.max_steps", b.Branching.MaxSteps},
		{"branching.population_cap", b.Branching.PopulationCap},
		{"history.max_steps", b.History.MaxSteps},
		{"history.num_runs", b.History.NumRuns},
		{"birthday.num_trials", b.Birthday.NumTrials},
	}
	for _, p := range positives {
		if p.v != nil {
			if err := requirePositive(p.name, *p.v); err != nil {
				return err
			}
		}
	}
	nonNegatives := []struct {
		name string
		v    *int
	}{
		{"birthday.group_size", b.Birthday.GroupSize},
		{"birthday.min_group", b.Birthday.MinGroup},
		{"birthday.max_group", b.Birthday.MaxGroup},
	}
	for _, p := range nonNegatives {
		if p.v != nil && *p.v < 0 {
			return invalidParam(p.name, *p.v, "must be non-negative")
		}
	}
	if b.Birthday.MinGroup != nil && b.Birthday.MaxGroup != nil && *b.Birthday.MaxGroup < *b.Birthday.MinGroup {
		return invalidParam("birthday.max_group", *b.Birthday.MaxGroup, "must be >= min_group")
	}
	return nil
}

// ApplyOffspring overrides the probabilities of d that are set in the bundle.
func (s BranchingSection) ApplyOffspring(d OffspringDistribution) OffspringDistribution {
	if s.PDie != nil {
		d.PDie = *s.PDie
	}
	if s.PStay != nil {
		d.PStay = *s.PStay
	}
	if s.PDouble != nil {
		d.PDouble = *s.PDouble
	}
	if s.PTriple != nil {
		d.PTriple = *s.PTriple
	}
	return d
}
