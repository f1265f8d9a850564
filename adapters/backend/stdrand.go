package backend

import (
	"math/rand"
)

// global is the canonical process-wide language-level generator. Go's
// ambient math/rand generator cannot be re-seeded without deprecated API,
// so the broadcaster owns this instance instead; stochastic code and the
// testkit fixture draw from it via Global.
//
// Single writer by contract: the broadcaster re-seeds it before stochastic
// work begins, and multi-threaded callers serialize externally.
var global = rand.New(rand.NewSource(1))

// SeedGlobal resets the language-level generator to a deterministic state.
// Re-seeding with the same value restores the identical output sequence
// regardless of how much was drawn before.
func SeedGlobal(seed int64) {
	global = rand.New(rand.NewSource(seed))
}

// Global returns the process-wide language-level generator
func Global() *rand.Rand {
	return global
}
