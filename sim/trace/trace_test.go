package trace

import (
	"testing"
)

func TestSimulationTrace_RecordTrajectory_AppendsRecord(t *testing.T) {
	// GIVEN a trace configured for trajectories
	st := NewSimulationTrace(TraceConfig{Level: TraceLevelTrajectories})

	// WHEN a trajectory is recorded
	st.RecordTrajectory(TrajectoryRecord{Trial: 0, Populations: []int{1, 2, 0}})

	// THEN the trace contains one record with correct data
	if len(st.Trajectories) != 1 {
		t.Fatalf("expected 1 trajectory, got %d", len(st.Trajectories))
	}
	if st.Trajectories[0].Final() != 0 {
		t.Errorf("expected final population 0, got %d", st.Trajectories[0].Final())
	}
}

func TestSimulationTrace_LevelNone_DropsRecords(t *testing.T) {
	// GIVEN a trace with tracing disabled
	st := NewSimulationTrace(TraceConfig{Level: TraceLevelNone})

	// WHEN a trajectory is recorded
	st.RecordTrajectory(TrajectoryRecord{Trial: 0, Populations: []int{1}})

	// THEN nothing is kept
	if len(st.Trajectories) != 0 {
		t.Errorf("expected 0 trajectories, got %d", len(st.Trajectories))
	}
}

func TestSimulationTrace_NilTrace_RecordIsNoop(t *testing.T) {
	var st *SimulationTrace
	st.RecordTrajectory(TrajectoryRecord{Populations: []int{1}})
	if st.Enabled() {
		t.Error("nil trace must report disabled")
	}
}

func TestSimulationTrace_MultipleRecords_PreservesOrder(t *testing.T) {
	st := NewSimulationTrace(TraceConfig{Level: TraceLevelTrajectories})
	for i := 0; i < 3; i++ {
		st.RecordTrajectory(TrajectoryRecord{Trial: i, Populations: []int{1, i}})
	}
	for i, r := range st.Trajectories {
		if r.Trial != i {
			t.Errorf("record %d: trial = %d", i, r.Trial)
		}
	}
}

func TestIsValidTraceLevel(t *testing.T) {
	tests := []struct {
		level string
		want  bool
	}{
		{"", true},
		{"none", true},
		{"trajectories", true},
		{"decisions", false},
		{"TRAJECTORIES", false},
	}
	for _, tt := range tests {
		if got := IsValidTraceLevel(tt.level); got != tt.want {
			t.Errorf("IsValidTraceLevel(%q) = %v, want %v", tt.level, got, tt.want)
		}
	}
}

func TestTrajectoryRecord_Accessors(t *testing.T) {
	tests := []struct {
		name           string
		pops           []int
		extinct        bool
		extinctionStep int
		peak           int
		final          int
	}{
		{"dies immediately", []int{1, 0}, true, 1, 1, 0},
		{"grows then dies", []int{1, 3, 2, 0}, true, 3, 3, 0},
		{"survives", []int{1, 2, 4, 5}, false, -1, 5, 5},
		{"empty", nil, false, -1, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := TrajectoryRecord{Populations: tt.pops}
			if r.Extinct() != tt.extinct {
				t.Errorf("Extinct() = %v, want %v", r.Extinct(), tt.extinct)
			}
			if r.ExtinctionStep() != tt.extinctionStep {
				t.Errorf("ExtinctionStep() = %d, want %d", r.ExtinctionStep(), tt.extinctionStep)
			}
			if r.Peak() != tt.peak {
				t.Errorf("Peak() = %d, want %d", r.Peak(), tt.peak)
			}
			if r.Final() != tt.final {
				t.Errorf("Final() = %d, want %d", r.Final(), tt.final)
			}
		})
	}
}

func TestTrajectoryRecord_PopulationAt_PastEnd(t *testing.T) {
	extinct := TrajectoryRecord{Populations: []int{1, 0}}
	alive := TrajectoryRecord{Populations: []int{1, 2}}

	if got := extinct.PopulationAt(5); got != 0 {
		t.Errorf("extinct PopulationAt(5) = %d, want 0", got)
	}
	if got := alive.PopulationAt(5); got != -1 {
		t.Errorf("alive PopulationAt(5) = %d, want -1", got)
	}
	if got := alive.PopulationAt(1); got != 2 {
		t.Errorf("alive PopulationAt(1) = %d, want 2", got)
	}
}

func TestTrajectoryRecord_LogShifted_AddsOne(t *testing.T) {
	r := TrajectoryRecord{Populations: []int{1, 3, 0}}
	got := r.LogShifted()
	want := []int{2, 4, 1}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("LogShifted()[%d] = %d, want %d", i, got[i], want[i])
		}
	}
	if r.Populations[0] != 1 {
		t.Error("LogShifted must not modify the record")
	}
}
