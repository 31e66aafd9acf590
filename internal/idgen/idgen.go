// Package idgen generates unique string identifiers independent of any
// user-chosen model name; the root coordinator uses one per run to tag
// SQLite-backed observation views.
package idgen

import (
	"strconv"
	"sync/atomic"

	"github.com/rs/xid"
)

// Generator produces unique string identifiers.
type Generator interface {
	Generate() string
}

// Sequential returns a Generator producing small, monotonically increasing
// decimal identifiers, suitable for deterministic tests.
func Sequential() Generator {
	return &sequentialGenerator{}
}

type sequentialGenerator struct {
	next uint64
}

func (g *sequentialGenerator) Generate() string {
	n := atomic.AddUint64(&g.next, 1)
	return strconv.FormatUint(n, 10)
}

// Random returns a Generator producing globally unique, sortable
// identifiers backed by xid, suitable for long-lived or multi-run
// deployments where identifiers must not collide across processes.
func Random() Generator {
	return randomGenerator{}
}

type randomGenerator struct{}

func (randomGenerator) Generate() string {
	return xid.New().String()
}
