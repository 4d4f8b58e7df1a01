package cmd

import (
	"os"
	"path/filepath"
	"testing"

	sim "github.com/inference-sim/montecarlo/sim"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// repoDefaultsPath locates the repository's defaults.yaml from the cmd package directory.
func repoDefaultsPath(t *testing.T) string {
	t.Helper()
	for _, path := range []string{"defaults.yaml", "../defaults.yaml"} {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	t.Skip("defaults.yaml not found, skipping integration test")
	return ""
}

func writeDefaults(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "defaults.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadDefaultsConfig_AllPresetsAreValidDistributions(t *testing.T) {
	// GIVEN the shipped defaults.yaml
	cfg, err := loadDefaultsConfig(repoDefaultsPath(t))
	require.NoError(t, err)
	require.NotEmpty(t, cfg.OffspringPresets)

	// THEN every preset passes distribution validation
	for _, name := range cfg.PresetNames() {
		d := cfg.OffspringPresets[name].Distribution()
		assert.NoError(t, d.Validate(), "preset %q", name)
	}
}

func TestGetOffspringPreset_Uniform_MatchesUniformOffspring(t *testing.T) {
	d, err := GetOffspringPreset("uniform", repoDefaultsPath(t))
	require.NoError(t, err)
	assert.Equal(t, sim.UniformOffspring(), d)
}

func TestGetOffspringPreset_UnknownName_ListsAvailablePresets(t *testing.T) {
	// GIVEN a defaults file with two presets
	path := writeDefaults(t, `
version: "1"
offspring_presets:
  b:
    p_die: 1.0
  a:
    p_stay: 1.0
`)

	// WHEN an unknown preset is requested
	_, err := GetOffspringPreset("missing", path)

	// THEN the error names the preset and the sorted alternatives
	require.Error(t, err)
	assert.Contains(t, err.Error(), `"missing"`)
	assert.Contains(t, err.Error(), "[a b]")
}

func TestLoadDefaultsConfig_UnknownField_Rejected(t *testing.T) {
	// GIVEN a preset with a typo in a probability key
	path := writeDefaults(t, `
offspring_presets:
  uniform:
    p_dye: 0.25
`)

	// WHEN parsed
	_, err := loadDefaultsConfig(path)

	// THEN strict decoding rejects it
	assert.Error(t, err)
}

func TestLoadDefaultsConfig_MissingFile_ReturnsError(t *testing.T) {
	_, err := loadDefaultsConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}
