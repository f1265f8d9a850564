package backend

import (
	exprand "golang.org/x/exp/rand"

	"reprokit/ports"
)

// ExpRandName is the registry name of the x/exp/rand global generator
const ExpRandName = "exprand"

// ExpRand seeds the golang.org/x/exp/rand package-level generator, the
// second process-wide generator surface in this stack (code calling the
// exp/rand top-level functions directly).
type ExpRand struct{}

// NewExpRand creates the exp/rand backend adapter
func NewExpRand() *ExpRand {
	return &ExpRand{}
}

// Name returns the registry name
func (e *ExpRand) Name() string { return ExpRandName }

// Present reports true whenever the adapter is linked into the build
func (e *ExpRand) Present() bool { return true }

// Seed re-seeds the exp/rand package-level generator
func (e *ExpRand) Seed(seed int64) (ports.Outcome, error) {
	exprand.Seed(uint64(seed))
	return ports.OutcomeSeeded, nil
}
