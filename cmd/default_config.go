package cmd

import (
	"bytes"
	"fmt"
	"os"
	"sort"

	sim "github.com/inference-sim/montecarlo/sim"
	"gopkg.in/yaml.v3"
)

// OffspringPreset describes a named offspring distribution in defaults.yaml.
type OffspringPreset struct {
	Description string  `yaml:"description"`
	PDie        float64 `yaml:"p_die"`
	PStay       float64 `yaml:"p_stay"`
	PDouble     float64 `yaml:"p_double"`
	PTriple     float64 `yaml:"p_triple"`
}

// Distribution converts the preset into a sim.OffspringDistribution.
func (p OffspringPreset) Distribution() sim.OffspringDistribution {
	return sim.NewOffspringDistribution(p.PDie, p.PStay, p.PDouble, p.PTriple)
}

// Config represents the full defaults.yaml structure.
// All top-level sections must be listed to satisfy KnownFields(true) strict parsing.
type Config struct {
	Version          string                     `yaml:"version"`
	OffspringPresets map[string]OffspringPreset `yaml:"offspring_presets"`
}

// loadDefaultsConfig parses defaults.yaml into a Config struct.
// Uses strict field checking: typos in defaults.yaml are errors.
func loadDefaultsConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("reading defaults file: %w", err)
	}
	var cfg Config
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&cfg); err != nil {
		return Config{}, fmt.Errorf("parsing defaults YAML: %w", err)
	}
	return cfg, nil
}

// PresetNames returns the preset names in sorted order.
func (c Config) PresetNames() []string {
	names := make([]string, 0, len(c.OffspringPresets))
	for name := range c.OffspringPresets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// GetOffspringPreset looks up a named preset in the defaults file at path.
func GetOffspringPreset(name, path string) (sim.OffspringDistribution, error) {
	cfg, err := loadDefaultsConfig(path)
	if err != nil {
		return sim.OffspringDistribution{}, err
	}
	preset, ok := cfg.OffspringPresets[name]
	if !ok {
		return sim.OffspringDistribution{}, fmt.Errorf("unknown offspring preset %q (available: %v)", name, cfg.PresetNames())
	}
	return preset.Distribution(), nil
}
