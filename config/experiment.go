// Package config holds the in-memory project representation the core
// consumes. The project-file parser that would produce
// this value from a file on disk is out of scope; callers construct
// an Experiment directly or via a loader of their own.
package config

import (
	"github.com/sarchlab/vle/graph"
	"github.com/sarchlab/vle/vtime"
)

// SchedulingPolicy selects when a view pulls observations.
type SchedulingPolicy int

const (
	// SchedulePerStep pulls an observation after every coordinator step.
	SchedulePerStep SchedulingPolicy = iota
	// ScheduleTimed pulls an observation on a fixed time interval.
	ScheduleTimed
	// ScheduleFinish pulls a single observation when the run finishes.
	ScheduleFinish
)

func (p SchedulingPolicy) String() string {
	switch p {
	case SchedulePerStep:
		return "per-step"
	case ScheduleTimed:
		return "timed"
	case ScheduleFinish:
		return "finish"
	default:
		return "unknown"
	}
}

// ViewConfig describes one observation view: which plug-in consumes its
// trames, where they are delivered, and on what schedule.
type ViewConfig struct {
	Name     string
	Plugin   string
	Location string
	Schedule SchedulingPolicy
	// Period is the sampling interval for ScheduleTimed views; ignored
	// otherwise.
	Period vtime.Time
}

// ObservablePort identifies one atomic model's output port or state
// variable as belonging to a named view.
type ObservablePort struct {
	View  string
	Model string
	Port  string
}

// Experiment is the in-memory project description the root coordinator
// loads: experiment metadata, the model tree, the dynamics registry, and
// the observation configuration, grounded on VLE vpz::Vpz's experiment
// metadata fields as referenced by RootCoordinator::load.
type Experiment struct {
	// Duration bounds the run; the coordinator stops once current time
	// would exceed it.
	Duration vtime.Time
	// InitialTime records the project's initial time. The core does not
	// read it: Init always starts the coordinator's clock at zero.
	InitialTime vtime.Time
	// Begin is a free-form experiment label (VLE's "begin date" field),
	// carried through for observation metadata but otherwise unused by
	// the core.
	Begin string
	// Seed seeds the experiment's single shared random source.
	Seed int64

	// Root is the top-level coupled model the root coordinator builds
	// simulators from.
	Root *graph.CoupledModel

	// DynamicsRegistry maps an atomic model's fully-qualified path to the
	// loadable plug-in identifier that instantiates its Dynamics. The
	// core does not resolve plug-in identifiers itself; a loader
	// populates graph.AtomicModel.Dynamics directly and this map exists
	// only to round-trip the project's original plug-in names.
	DynamicsRegistry map[string]string

	// Views lists the observation views to register, keyed by name.
	Views map[string]ViewConfig

	// Observables lists which atomic ports feed which views.
	Observables []ObservablePort
}

// New constructs an Experiment with empty registries, ready for a
// loader to populate.
func New(root *graph.CoupledModel) *Experiment {
	return &Experiment{
		Root:             root,
		DynamicsRegistry: map[string]string{},
		Views:            map[string]ViewConfig{},
	}
}

// ObservablesForView returns the ObservablePort entries belonging to
// view, in declaration order.
func (e *Experiment) ObservablesForView(view string) []ObservablePort {
	var out []ObservablePort
	for _, ob := range e.Observables {
		if ob.View == view {
			out = append(out, ob)
		}
	}
	return out
}
