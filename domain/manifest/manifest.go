package manifest

import (
	"encoding/json"
	"fmt"
	"runtime"
	"runtime/debug"
	"strings"

	"reprokit/domain/core"
	"reprokit/internal/errors"
)

// Manifest is a self-describing record of one experiment run. It is
// immutable once the checksum is attached; the store persists it verbatim
// and nothing in the system ever mutates or deletes it afterwards.
type Manifest struct {
	Name         string         `json:"name"`
	Timestamp    string         `json:"timestamp"`
	Seed         int64          `json:"seed"`
	GoVersion    string         `json:"go_version"`
	GonumVersion string         `json:"gonum_version"`
	Params       map[string]any `json:"params"`
	// Reproducible asserts intent at construction time; it is not a
	// post-hoc verification result.
	Reproducible bool   `json:"reproducible"`
	Checksum     string `json:"checksum,omitempty"`
}

// Build constructs a checksummed manifest for an experiment run. The
// timestamp is the construction instant in UTC; environment versions are
// captured from the running binary. Params must be JSON-serializable or
// the build fails, never silently coerces.
func Build(name string, seed int64, params map[string]any) (*Manifest, error) {
	if seed < 0 {
		return nil, errors.InvalidSeed(seed)
	}
	if params == nil {
		params = map[string]any{}
	}
	m := &Manifest{
		Name:         name,
		Timestamp:    core.Now().String(),
		Seed:         seed,
		GoVersion:    runtime.Version(),
		GonumVersion: gonumVersion(),
		Params:       params,
		Reproducible: true,
	}
	sum, err := m.ComputeChecksum()
	if err != nil {
		return nil, err
	}
	m.Checksum = sum.String()
	return m, nil
}

// ComputeChecksum hashes the canonical form of the record: the JSON
// encoding of every field except the checksum itself, keys in
// lexicographic order. Fixed key order is what makes the checksum stable
// across runs. The digest is truncated to core.ShortHashLen hex characters.
func (m *Manifest) ComputeChecksum() (core.Checksum, error) {
	params := m.Params
	if params == nil {
		params = map[string]any{}
	}
	// json.Marshal emits map keys sorted, which gives the canonical order
	payload := map[string]any{
		"go_version":    m.GoVersion,
		"gonum_version": m.GonumVersion,
		"name":          m.Name,
		"params":        params,
		"reproducible":  m.Reproducible,
		"seed":          m.Seed,
		"timestamp":     m.Timestamp,
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return "", errors.SerializationFailed("manifest params are not JSON-serializable", err)
	}
	return core.NewChecksum(data), nil
}

// VerifyChecksum recomputes the checksum and compares it with the stored
// one, giving tamper evidence for records read back from storage.
func (m *Manifest) VerifyChecksum() error {
	sum, err := m.ComputeChecksum()
	if err != nil {
		return err
	}
	if sum.String() != m.Checksum {
		return fmt.Errorf("%w: stored %s, computed %s", core.ErrChecksumMismatch, m.Checksum, sum)
	}
	return nil
}

// Filename derives the persisted file name from name and timestamp.
// Colons are path-unsafe on some filesystems and become dashes.
func (m *Manifest) Filename() string {
	return fmt.Sprintf("%s_%s.json", m.Name, strings.ReplaceAll(m.Timestamp, ":", "-"))
}

// gonumVersion reads the numeric-array library version from build info
func gonumVersion() string {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return "unknown"
	}
	for _, dep := range info.Deps {
		if dep.Path == "gonum.org/v1/gonum" {
			return dep.Version
		}
	}
	return "unknown"
}
