// Package sim provides the Monte Carlo engines: a birthday-collision
// estimator and a Galton–Watson branching-process ("amoeba population")
// simulator.
//
// # Reading Guide
//
// Start with these files:
//   - config.go: OffspringDistribution, BranchingConfig, BirthdayConfig and their validation
//   - branching.go: the per-generation transition rule, extinction-time mode and history mode
//   - aggregate.go: multi-trial aggregation into an extinction probability
//
// # Architecture
//
// Every operation takes its parameters explicitly and a *rand.Rand to draw
// from; nothing is kept between calls. Randomness is organised by
// PartitionedRNG (rng.go): one seed, isolated streams per subsystem, so
// adding draws in one subsystem never perturbs another.
//
// Extinction mode and history mode are separate operations over the same
// transition rule (NextGeneration). Extinction mode stops early once the
// population exceeds a cap; that is an approximation controlled by
// BranchingConfig.PopulationCap. SimulateOutcome keeps the stop reason
// (Extinct, Survived, CappedEarly) that the integer extinction time hides.
//
// parallel.go spreads trials over goroutines with errgroup; each worker owns
// an RNG stream and results are merged once at the end.
//
// Sub-packages:
//   - sim/trace/: trajectory recording and per-generation summaries for history mode
//
// analytic.go holds closed-form references (birthday product formula,
// generating-function fixed point) used to judge estimates.
package sim
