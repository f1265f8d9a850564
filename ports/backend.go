package ports

// Outcome reports the result of seeding one backend
type Outcome int

const (
	// OutcomeAbsent means the backend is not available in this process.
	// Expected and silent: the broadcast continues to the next backend.
	OutcomeAbsent Outcome = iota
	// OutcomeSeeded means the seed was applied cleanly.
	OutcomeSeeded
	// OutcomeSeededWithWarning means the seed was applied but the backend
	// had to force determinism flags (GPU-capable backends disable
	// nondeterministic kernel selection), narrowing the reproducibility
	// contract.
	OutcomeSeededWithWarning
)

// String returns a human-readable outcome label
func (o Outcome) String() string {
	switch o {
	case OutcomeAbsent:
		return "absent"
	case OutcomeSeeded:
		return "seeded"
	case OutcomeSeededWithWarning:
		return "seeded_with_warning"
	default:
		return "unknown"
	}
}

// BackendPort is a capability-checked shim around one optional numeric
// backend whose internal randomness must be separately seeded.
type BackendPort interface {
	// Name returns the stable name used for registry ordering and
	// confirmation output
	Name() string

	// Present reports whether the backend is usable in this process.
	// Queried fresh on every broadcast; absence is an expected
	// non-error condition, never signalled through Seed.
	Present() bool

	// Seed applies the seed to the backend's internal generator state.
	// Called only when Present returns true. Any error means the
	// backend is misconfigured, which is fatal to the broadcast.
	Seed(seed int64) (Outcome, error)
}
