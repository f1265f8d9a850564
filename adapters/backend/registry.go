package backend

import (
	"sort"

	"reprokit/ports"
)

// Registry holds backend adapters in the fixed broadcast order: the
// numeric-array backend (gonum) first, every other backend in lexicographic
// name order. A fixed order keeps adapter ordering itself from becoming a
// hidden source of nondeterminism.
type Registry struct {
	adapters []ports.BackendPort
}

// NewRegistry creates a registry from the given adapters
func NewRegistry(adapters ...ports.BackendPort) *Registry {
	r := &Registry{adapters: append([]ports.BackendPort(nil), adapters...)}
	r.sort()
	return r
}

// DefaultRegistry returns the registry of backends linked into this build
func DefaultRegistry() *Registry {
	return NewRegistry(NewGonum(), NewExpRand())
}

// Register adds a backend adapter, preserving the fixed order
func (r *Registry) Register(b ports.BackendPort) {
	r.adapters = append(r.adapters, b)
	r.sort()
}

// Adapters returns the adapters in broadcast order
func (r *Registry) Adapters() []ports.BackendPort {
	out := make([]ports.BackendPort, len(r.adapters))
	copy(out, r.adapters)
	return out
}

// Present returns the names of backends currently usable in this process.
// Presence is queried fresh on every call, never cached.
func (r *Registry) Present() []string {
	var names []string
	for _, adapter := range r.adapters {
		if adapter.Present() {
			names = append(names, adapter.Name())
		}
	}
	return names
}

func (r *Registry) sort() {
	sort.SliceStable(r.adapters, func(i, j int) bool {
		pi, pj := priority(r.adapters[i].Name()), priority(r.adapters[j].Name())
		if pi != pj {
			return pi < pj
		}
		return r.adapters[i].Name() < r.adapters[j].Name()
	})
}

// priority pins the numeric-array backend ahead of everything else
func priority(name string) int {
	if name == GonumName {
		return 0
	}
	return 1
}
