package backend

import (
	exprand "golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"

	"reprokit/ports"
)

// GonumName is the registry name of the numeric-array backend
const GonumName = "gonum"

// gonumSource is the shared generator that gonum stat/distuv distributions
// sample from. Unseeded state is arbitrary; callers apply a broadcast
// before stochastic work begins.
var gonumSource = exprand.NewSource(1)

// Gonum seeds the shared source behind gonum distribution sampling. It is
// the numeric-array backend of this stack and always seeds first in the
// broadcast order.
type Gonum struct{}

// NewGonum creates the gonum backend adapter
func NewGonum() *Gonum {
	return &Gonum{}
}

// Name returns the registry name
func (g *Gonum) Name() string { return GonumName }

// Present reports true whenever the adapter is linked into the build;
// gonum needs no runtime capability beyond the compiled package.
func (g *Gonum) Present() bool { return true }

// Seed replaces the shared source state deterministically
func (g *Gonum) Seed(seed int64) (ports.Outcome, error) {
	gonumSource.Seed(uint64(seed))
	return ports.OutcomeSeeded, nil
}

// GonumSource returns the shared gonum sampling source
func GonumSource() exprand.Source {
	return gonumSource
}

// Uniform returns a uniform [0,1) distribution bound to the shared source
func Uniform() distuv.Uniform {
	return distuv.Uniform{Min: 0, Max: 1, Src: gonumSource}
}

// Normal returns a standard normal distribution bound to the shared source
func Normal() distuv.Normal {
	return distuv.Normal{Mu: 0, Sigma: 1, Src: gonumSource}
}
