// Package trace records history-mode population trajectories for analysis
// and plotting. It has no dependencies on sim/ and stores pure data types.
package trace

// TrajectoryRecord captures one history-mode run: the population of each
// generation, starting with the seed individual.
type TrajectoryRecord struct {
	Trial       int   `json:"trial"`
	Populations []int `json:"populations"`
}

// Extinct reports whether the trajectory ended with a zero population.
func (r TrajectoryRecord) Extinct() bool {
	n := len(r.Populations)
	return n > 0 && r.Populations[n-1] == 0
}

// ExtinctionStep returns the generation at which the population reached zero,
// or -1 if it never did.
func (r TrajectoryRecord) ExtinctionStep() int {
	if !r.Extinct() {
		return -1
	}
	return len(r.Populations) - 1
}

// Peak returns the largest population in the trajectory.
func (r TrajectoryRecord) Peak() int {
	peak := 0
	for _, p := range r.Populations {
		if p > peak {
			peak = p
		}
	}
	return peak
}

// Final returns the last recorded population (0 for an empty record).
func (r TrajectoryRecord) Final() int {
	if len(r.Populations) == 0 {
		return 0
	}
	return r.Populations[len(r.Populations)-1]
}

// PopulationAt returns the population at generation g. Extinct trajectories
// stay at zero after their last entry; surviving ones report -1 past their end.
func (r TrajectoryRecord) PopulationAt(g int) int {
	if g < len(r.Populations) {
		return r.Populations[g]
	}
	if r.Extinct() {
		return 0
	}
	return -1
}

// LogShifted returns the populations shifted by +1 so that extinction plots
// as 1 on a logarithmic axis.
func (r TrajectoryRecord) LogShifted() []int {
	shifted := make([]int, len(r.Populations))
	for i, p := range r.Populations {
		shifted[i] = p + 1
	}
	return shifted
}
