package app

import (
	"encoding/json"
	"fmt"
	"reflect"

	"reprokit/domain/core"
	"reprokit/internal/errors"
)

// Computation is a no-argument stochastic computation under test
type Computation func() (any, error)

// VerifyReport captures one determinism trial: per-run result fingerprints
// and the overall verdict.
type VerifyReport struct {
	ID           core.ReportID            `json:"id"`
	Seed         int64                    `json:"seed"`
	Runs         int                      `json:"runs"`
	Fingerprints []core.ResultFingerprint `json:"fingerprints"`
	Reproducible bool                     `json:"reproducible"`
}

// Verifier re-seeds and re-invokes a computation to check that it is
// deterministic. Each call is a fresh, isolated trial; nothing is cached
// across calls.
type Verifier struct {
	broadcaster *Broadcaster
}

// NewVerifier creates a verifier backed by the given broadcaster
func NewVerifier(broadcaster *Broadcaster) *Verifier {
	return &Verifier{broadcaster: broadcaster}
}

// Verify reports whether fn produces identical output across runs
// re-seeded invocations. Results are compared structurally, not by
// identity. runs below 2 is a contract violation: a single run cannot
// demonstrate reproducibility. A computation error propagates — a crash
// is distinct from a determinism failure, never reported as false.
func (v *Verifier) Verify(fn Computation, seed int64, runs int) (bool, error) {
	report, err := v.VerifyDetailed(fn, seed, runs)
	if err != nil {
		return false, err
	}
	return report.Reproducible, nil
}

// VerifyDetailed is Verify plus a report with per-run result fingerprints,
// so callers can see which run diverged.
func (v *Verifier) VerifyDetailed(fn Computation, seed int64, runs int) (*VerifyReport, error) {
	if runs < 2 {
		return nil, errors.InvalidRuns(runs)
	}

	report := &VerifyReport{
		ID:           core.NewReportID(),
		Seed:         seed,
		Runs:         runs,
		Reproducible: true,
	}

	var first any
	for i := 0; i < runs; i++ {
		if err := v.broadcaster.Apply(seed); err != nil {
			return nil, err
		}
		result, err := fn()
		if err != nil {
			return nil, errors.Wrapf(err, "computation failed on run %d", i+1)
		}
		report.Fingerprints = append(report.Fingerprints, fingerprint(result))
		if i == 0 {
			first = result
			continue
		}
		if !reflect.DeepEqual(result, first) {
			report.Reproducible = false
		}
	}
	return report, nil
}

// fingerprint hashes a result's JSON form for the report; results that
// cannot be encoded fall back to their Go-syntax representation.
func fingerprint(result any) core.ResultFingerprint {
	data, err := json.Marshal(result)
	if err != nil {
		data = []byte(fmt.Sprintf("%#v", result))
	}
	return core.NewResultFingerprint(data)
}
