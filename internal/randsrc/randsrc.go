// Package randsrc provides the single seeded random source threaded
// through a run, grounded on VLE's utils::Rand (one generator per
// experiment, shared by every Dynamics that asks for it) and on the
// deterministic-seeding idiom of the pack's PartitionedRNG.
package randsrc

import (
	"math/rand"

	"gonum.org/v1/gonum/stat/distuv"
)

// gonumSource adapts a *rand.Rand to gonum's expected Source interface,
// which requires Seed(uint64) where math/rand.Rand has Seed(int64).
type gonumSource struct {
	rng *rand.Rand
}

func (g gonumSource) Uint64() uint64   { return g.rng.Uint64() }
func (g gonumSource) Seed(seed uint64) { g.rng.Seed(int64(seed)) }

// Source is the RNG handed to Dynamics implementations that opt into
// randomness via the RandReceiver capability. It is not safe for
// concurrent use; the coordinator drives one model at a time.
type Source struct {
	rng *rand.Rand
}

// New seeds a Source from seed. The same seed always produces the same
// sequence of draws, matching VLE's reproducible-run guarantee.
func New(seed int64) *Source {
	return &Source{rng: rand.New(rand.NewSource(seed))}
}

// Reseed replaces the underlying sequence, discarding any state.
func (s *Source) Reseed(seed int64) {
	s.rng = rand.New(rand.NewSource(seed))
}

// Int63 returns a non-negative pseudo-random 63-bit integer.
func (s *Source) Int63() int64 { return s.rng.Int63() }

// Uniform draws from the continuous uniform distribution on [low, high).
func (s *Source) Uniform(low, high float64) float64 {
	d := distuv.Uniform{Min: low, Max: high, Src: gonumSource{s.rng}}
	return d.Rand()
}

// Normal draws from a normal distribution with the given mean and
// standard deviation.
func (s *Source) Normal(mean, stddev float64) float64 {
	d := distuv.Normal{Mu: mean, Sigma: stddev, Src: gonumSource{s.rng}}
	return d.Rand()
}

// Exponential draws from an exponential distribution with the given
// rate parameter (lambda).
func (s *Source) Exponential(rate float64) float64 {
	d := distuv.Exponential{Rate: rate, Src: gonumSource{s.rng}}
	return d.Rand()
}

// Bernoulli returns true with probability p.
func (s *Source) Bernoulli(p float64) bool {
	return s.rng.Float64() < p
}
