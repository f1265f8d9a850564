package app

import (
	"os"
	"strconv"

	"reprokit/adapters/backend"
	"reprokit/internal"
	"reprokit/internal/errors"
	"reprokit/ports"
)

// BackendOutcome pairs a backend name with its seeding outcome
type BackendOutcome struct {
	Name    string        `json:"name"`
	Outcome ports.Outcome `json:"outcome"`
}

// Broadcaster owns the canonical seed value and applies it to every
// randomness surface in a fixed order: the language-level generator, the
// hash-randomization control, then each registered backend. It is the
// single function every other component depends on.
type Broadcaster struct {
	registry *backend.Registry
	logger   *internal.Logger
}

// NewBroadcaster creates a broadcaster over the given backend registry
func NewBroadcaster(registry *backend.Registry) *Broadcaster {
	return &Broadcaster{
		registry: registry,
		logger:   internal.DefaultLogger,
	}
}

// Apply seeds everything. Idempotent: applying the same seed twice leaves
// the same observable generator state as applying it once. Side effects
// only; callers serialize concurrent use externally.
func (b *Broadcaster) Apply(seed int64) error {
	_, err := b.ApplyWithOutcomes(seed)
	return err
}

// ApplyWithOutcomes is Apply plus the per-backend outcomes in broadcast
// order, for confirmation output.
func (b *Broadcaster) ApplyWithOutcomes(seed int64) ([]BackendOutcome, error) {
	if seed < 0 {
		return nil, errors.InvalidSeed(seed)
	}

	// 1. language-level generator
	backend.SeedGlobal(seed)

	// 2. hash randomization for spawned interpreter processes.
	// Best-effort: takes effect only for processes started after this
	// point, a documented limitation rather than something to work around.
	if err := os.Setenv("PYTHONHASHSEED", strconv.FormatInt(seed, 10)); err != nil {
		b.logger.Warn("hash randomization env not set: %v", err)
	}

	// 3. backends in registry order. Absence is expected and silent;
	// any seeding error is a broken environment and propagates.
	adapters := b.registry.Adapters()
	outcomes := make([]BackendOutcome, 0, len(adapters))
	for _, adapter := range adapters {
		if !adapter.Present() {
			outcomes = append(outcomes, BackendOutcome{Name: adapter.Name(), Outcome: ports.OutcomeAbsent})
			b.logger.Debug("backend %s absent, skipping", adapter.Name())
			continue
		}
		outcome, err := adapter.Seed(seed)
		if err != nil {
			return outcomes, errors.BackendMisconfigured(adapter.Name(), err)
		}
		outcomes = append(outcomes, BackendOutcome{Name: adapter.Name(), Outcome: outcome})
		b.logger.Debug("backend %s %s with seed %d", adapter.Name(), outcome, seed)
	}

	b.logger.Info("all seeds set to %d", seed)
	return outcomes, nil
}

// Registry returns the backend registry the broadcaster applies to
func (b *Broadcaster) Registry() *backend.Registry {
	return b.registry
}
