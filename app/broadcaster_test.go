package app_test

import (
	stderrors "errors"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"reprokit/adapters/backend"
	"reprokit/app"
	"reprokit/domain/core"
	"reprokit/internal/errors"
	"reprokit/internal/testkit"
	"reprokit/ports"
)

func TestApplyIdempotence(t *testing.T) {
	seeds := []int64{0, 7, 42, 123456789}
	broadcaster := app.NewBroadcaster(backend.DefaultRegistry())

	for _, seed := range seeds {
		require.NoError(t, broadcaster.Apply(seed))
		once := drawGlobal(10)

		require.NoError(t, broadcaster.Apply(seed))
		require.NoError(t, broadcaster.Apply(seed))
		twice := drawGlobal(10)

		assert.Equal(t, once, twice, "seed %d", seed)
	}
}

func drawGlobal(n int) []float64 {
	draws := make([]float64, n)
	for i := range draws {
		draws[i] = backend.Global().Float64()
	}
	return draws
}

func TestApplyRejectsNegativeSeed(t *testing.T) {
	broadcaster := app.NewBroadcaster(backend.DefaultRegistry())
	err := broadcaster.Apply(-1)
	require.Error(t, err)
	assert.Equal(t, errors.CodeInvalidSeed, errors.GetCode(err))
	assert.True(t, core.IsInvalidSeed(err))
}

func TestApplySkipsAbsentBackends(t *testing.T) {
	// with only the numeric-array backend present, the broadcast succeeds
	// and the ML-style backends report absent
	tensorish := &testkit.FakeBackend{BackendName: "tensorish", Available: false}
	torchish := &testkit.FakeBackend{BackendName: "torchish", Available: false}
	registry := backend.NewRegistry(backend.NewGonum(), tensorish, torchish)

	outcomes, err := app.NewBroadcaster(registry).ApplyWithOutcomes(7)
	require.NoError(t, err)

	require.Len(t, outcomes, 3)
	assert.Equal(t, backend.GonumName, outcomes[0].Name)
	assert.Equal(t, ports.OutcomeSeeded, outcomes[0].Outcome)
	assert.Equal(t, ports.OutcomeAbsent, outcomes[1].Outcome)
	assert.Equal(t, ports.OutcomeAbsent, outcomes[2].Outcome)
	assert.Empty(t, tensorish.SeenSeeds, "absent backends must never be seeded")
}

func TestApplySeedsPresentBackendsInOrder(t *testing.T) {
	fake := &testkit.FakeBackend{BackendName: "tensorish", Available: true}
	registry := backend.NewRegistry(backend.NewGonum(), fake)

	require.NoError(t, app.NewBroadcaster(registry).Apply(11))
	assert.Equal(t, []int64{11}, fake.SeenSeeds)
}

func TestApplyReportsDeterminismFlagWarning(t *testing.T) {
	gpu := &testkit.FakeBackend{BackendName: "torchish", Available: true, Warn: true}
	registry := backend.NewRegistry(backend.NewGonum(), gpu)

	outcomes, err := app.NewBroadcaster(registry).ApplyWithOutcomes(5)
	require.NoError(t, err)
	require.Len(t, outcomes, 2)
	assert.Equal(t, ports.OutcomeSeededWithWarning, outcomes[1].Outcome)
}

func TestApplyPropagatesMisconfiguredBackend(t *testing.T) {
	// a backend that is present but fails to seed is a broken
	// environment, never conflated with absence
	broken := &testkit.FakeBackend{
		BackendName: "torchish",
		Available:   true,
		Err:         stderrors.New("driver version mismatch"),
	}
	registry := backend.NewRegistry(backend.NewGonum(), broken)

	err := app.NewBroadcaster(registry).Apply(5)
	require.Error(t, err)
	assert.Equal(t, errors.CodeBackendMisconfigured, errors.GetCode(err))
	assert.Contains(t, err.Error(), "driver version mismatch")
}

func TestApplyWritesHashRandomizationEnv(t *testing.T) {
	t.Setenv("PYTHONHASHSEED", "")

	broadcaster := app.NewBroadcaster(backend.DefaultRegistry())
	require.NoError(t, broadcaster.Apply(7))
	assert.Equal(t, "7", os.Getenv("PYTHONHASHSEED"))
}
