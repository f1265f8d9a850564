// Package testkit provides the test-session seeding fixture and fake
// backends for registry-injection tests.
package testkit

import (
	"math/rand"
	"os"
	"strconv"

	"reprokit/adapters/backend"
	"reprokit/app"
	"reprokit/ports"
)

// defaultSeed mirrors the RANDOM_SEED default
const defaultSeed = 42

// TestSeed resolves the seed for test sessions: TEST_SEED, falling back to
// RANDOM_SEED, falling back to 42. Malformed values fall back rather than
// failing a test session over an env typo.
func TestSeed() int64 {
	if seed, ok := envSeed("TEST_SEED"); ok {
		return seed
	}
	if seed, ok := envSeed("RANDOM_SEED"); ok {
		return seed
	}
	return defaultSeed
}

func envSeed(key string) (int64, bool) {
	value := os.Getenv(key)
	if value == "" {
		return 0, false
	}
	seed, err := strconv.ParseInt(value, 10, 64)
	if err != nil || seed < 0 {
		return 0, false
	}
	return seed, true
}

// SeedSession applies the test seed across every linked backend. Call once
// from TestMain before any stochastic test work.
func SeedSession() error {
	return app.NewBroadcaster(backend.DefaultRegistry()).Apply(TestSeed())
}

// SeededRand returns a fresh generator seeded with the session seed, for
// use inside a single test body without touching process-wide state.
func SeededRand() *rand.Rand {
	return rand.New(rand.NewSource(TestSeed()))
}

// SampleComputation draws n uniform values from the language-level
// generator: the canonical determinism trial.
func SampleComputation(n int) app.Computation {
	return func() (any, error) {
		draws := make([]float64, n)
		for i := range draws {
			draws[i] = backend.Global().Float64()
		}
		return draws, nil
	}
}

// GonumSampleComputation draws n standard normal variates through the
// shared gonum distribution source.
func GonumSampleComputation(n int) app.Computation {
	return func() (any, error) {
		dist := backend.Normal()
		draws := make([]float64, n)
		for i := range draws {
			draws[i] = dist.Rand()
		}
		return draws, nil
	}
}

// FakeBackend is a configurable BackendPort for tests: absent backends,
// GPU-style warning outcomes, and misconfigured-seeding errors.
type FakeBackend struct {
	BackendName string
	Available   bool
	Warn        bool // report the forced-determinism-flags warning outcome
	Err         error
	SeenSeeds   []int64
}

func (f *FakeBackend) Name() string { return f.BackendName }

func (f *FakeBackend) Present() bool { return f.Available }

func (f *FakeBackend) Seed(seed int64) (ports.Outcome, error) {
	if f.Err != nil {
		return ports.OutcomeAbsent, f.Err
	}
	f.SeenSeeds = append(f.SeenSeeds, seed)
	if f.Warn {
		return ports.OutcomeSeededWithWarning, nil
	}
	return ports.OutcomeSeeded, nil
}
