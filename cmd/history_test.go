package cmd

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	sim "github.com/inference-sim/montecarlo/sim"
	"github.com/inference-sim/montecarlo/sim/trace"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunHistory_RecordsEveryRun(t *testing.T) {
	// GIVEN the uniform distribution and 25 runs of 10 generations
	rng := sim.NewPartitionedRNG(sim.NewSimulationKey(42))

	// WHEN history mode runs
	st, err := runHistory(sim.UniformOffspring(), 10, 25, rng)

	// THEN every run is recorded in order, starting from one individual
	require.NoError(t, err)
	require.Len(t, st.Trajectories, 25)
	for i, r := range st.Trajectories {
		assert.Equal(t, i, r.Trial)
		require.NotEmpty(t, r.Populations)
		assert.Equal(t, 1, r.Populations[0])
		assert.LessOrEqual(t, len(r.Populations), 11)
	}
}

func TestRunHistory_InvalidSteps_ReturnsInvalidParameter(t *testing.T) {
	_, err := runHistory(sim.UniformOffspring(), 0, 5, sim.NewPartitionedRNG(sim.NewSimulationKey(1)))
	assert.ErrorIs(t, err, sim.ErrInvalidParameter)
}

func TestSaveTrajectories_LogShift(t *testing.T) {
	records := []trace.TrajectoryRecord{
		{Trial: 0, Populations: []int{1, 2, 0}},
		{Trial: 1, Populations: []int{1, 3, 5}},
	}
	tests := []struct {
		name    string
		shifted bool
		want    [][]int
	}{
		{name: "raw", shifted: false, want: [][]int{{1, 2, 0}, {1, 3, 5}}},
		{name: "log shifted", shifted: true, want: [][]int{{2, 3, 1}, {2, 4, 6}}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "trajectories.json")

			require.NoError(t, saveTrajectories(records, path, tc.shifted))

			data, err := os.ReadFile(path)
			require.NoError(t, err)
			var got []trace.TrajectoryRecord
			require.NoError(t, json.Unmarshal(data, &got))
			require.Len(t, got, len(tc.want))
			for i := range got {
				assert.Equal(t, i, got[i].Trial)
				assert.Equal(t, tc.want[i], got[i].Populations)
			}
		})
	}

	// AND the caller's records are not modified
	assert.Equal(t, []int{1, 2, 0}, records[0].Populations)
}
