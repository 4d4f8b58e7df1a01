package trace

// TraceLevel controls the verbosity of trajectory tracing.
type TraceLevel string

const (
	// TraceLevelNone disables tracing (zero overhead).
	TraceLevelNone TraceLevel = "none"
	// TraceLevelTrajectories keeps every history-mode trajectory.
	TraceLevelTrajectories TraceLevel = "trajectories"
)

// validTraceLevels maps accepted trace level strings.
var validTraceLevels = map[TraceLevel]bool{
	TraceLevelNone:         true,
	TraceLevelTrajectories: true,
	"":                     true, // empty defaults to none
}

// IsValidTraceLevel returns true if the given level string is a recognized trace level.
func IsValidTraceLevel(level string) bool {
	return validTraceLevels[TraceLevel(level)]
}

// TraceConfig controls trace collection behavior.
type TraceConfig struct {
	Level TraceLevel
}

// SimulationTrace collects trajectory records during history-mode runs.
type SimulationTrace struct {
	Config       TraceConfig
	Trajectories []TrajectoryRecord
}

// NewSimulationTrace creates a SimulationTrace ready for recording.
func NewSimulationTrace(config TraceConfig) *SimulationTrace {
	return &SimulationTrace{
		Config:       config,
		Trajectories: make([]TrajectoryRecord, 0),
	}
}

// Enabled reports whether records are kept.
func (st *SimulationTrace) Enabled() bool {
	return st != nil && st.Config.Level == TraceLevelTrajectories
}

// RecordTrajectory appends a trajectory record. No-op when tracing is disabled.
func (st *SimulationTrace) RecordTrajectory(record TrajectoryRecord) {
	if !st.Enabled() {
		return
	}
	st.Trajectories = append(st.Trajectories, record)
}
