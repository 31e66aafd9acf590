// Package rootcoordinator drives one complete experiment run: it builds
// a Simulator per atomic model, wires them into a Coordinator, threads
// the shared random source, registers observation views, and exposes
// the accumulated view-matrix. Grounded directly on VLE's
// devs/RootCoordinator.hpp (load/init/run/finish, getCurrentTime,
// outputs/refreshOutputs, setRand), translated from owning raw
// pointers to owning Go values.
package rootcoordinator

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/sarchlab/vle/config"
	"github.com/sarchlab/vle/coordinator"
	"github.com/sarchlab/vle/dynamics"
	"github.com/sarchlab/vle/graph"
	"github.com/sarchlab/vle/internal/idgen"
	"github.com/sarchlab/vle/internal/randsrc"
	"github.com/sarchlab/vle/observation"
	"github.com/sarchlab/vle/simulator"
	"github.com/sarchlab/vle/vtime"
)

// RandReceiver is the optional capability a Dynamics implementation can
// support to receive the experiment's shared random source
// (VLE's setRand(Dynamics&)), an explicit context object rather than a
// global.
type RandReceiver interface {
	SetRand(*randsrc.Source)
}

// RootCoordinator owns one experiment's simulators, its Coordinator,
// and its observation bus.
type RootCoordinator struct {
	rand        *randsrc.Source
	currentTime vtime.Time
	duration    vtime.Time

	coord *coordinator.Coordinator
	bus   *observation.Bus

	experiment *config.Experiment
	sims       map[string]*simulator.Simulator
	viewSinks  map[string]observation.Sink
	outputs    map[string][]observation.Sample

	runID   string
	runIDs  idgen.Generator
	logger  *logrus.Logger
}

// New constructs an empty RootCoordinator, ready for Load.
func New() *RootCoordinator {
	return &RootCoordinator{
		bus:    observation.NewBus(),
		runIDs: idgen.Random(),
		logger: logrus.StandardLogger(),
	}
}

// SetRunIDGenerator overrides how Load assigns a run identifier to
// SQLite-backed views, e.g. idgen.Sequential() for deterministic tests.
func (r *RootCoordinator) SetRunIDGenerator(g idgen.Generator) {
	r.runIDs = g
}

// SetLogger overrides the diagnostic logger, propagating it to the
// coordinator and observation bus (nil restores the default).
func (r *RootCoordinator) SetLogger(l *logrus.Logger) {
	if l == nil {
		l = logrus.StandardLogger()
	}
	r.logger = l
	if r.coord != nil {
		r.coord.SetLogger(l)
	}
	r.bus.SetLogger(l)
}

// CurrentTime returns the current simulation time.
func (r *RootCoordinator) CurrentTime() vtime.Time { return r.currentTime }

// Load builds one Simulator per atomic model in exp.Root, wires them
// into a fresh Coordinator, seeds the shared RNG, and registers every
// configured observation view.
func (r *RootCoordinator) Load(exp *config.Experiment) error {
	r.experiment = exp
	r.duration = exp.Duration
	r.rand = randsrc.New(exp.Seed)
	r.runID = r.runIDs.Generate()

	r.coord = coordinator.New(exp.Duration)
	r.coord.SetLogger(r.logger)
	r.coord.SetObserver(r.bus)

	r.sims = map[string]*simulator.Simulator{}
	r.viewSinks = map[string]observation.Sink{}
	r.outputs = map[string][]observation.Sample{}

	if exp.Root == nil {
		return fmt.Errorf("rootcoordinator: experiment has no root model")
	}
	r.buildSimulators(exp.Root)

	for name, cfg := range exp.Views {
		sink, err := r.pickSink(name, cfg)
		if err != nil {
			return err
		}
		r.viewSinks[name] = sink

		if err := r.bus.Register(name, cfg, sink, exp.ObservablesForView(name), r.sims); err != nil {
			return err
		}
	}

	return nil
}

func (r *RootCoordinator) buildSimulators(m graph.Model) {
	switch mm := m.(type) {
	case *graph.AtomicModel:
		sim := simulator.New(mm, mm.Dynamics)
		r.sims[mm.FullPath()] = sim
		r.coord.AddSimulator(mm, sim)
		r.applyRand(mm.Dynamics)
	case *graph.CoupledModel:
		for _, child := range mm.Children() {
			r.buildSimulators(child)
		}
	default:
		// Opaque models carry no Dynamics and are skipped.
	}
}

func (r *RootCoordinator) applyRand(dyn dynamics.Dynamics) {
	if rr, ok := dyn.(RandReceiver); ok {
		rr.SetRand(r.rand)
	}
}

// pickSink selects a Sink implementation for a view by its configured
// plugin name: "memory" (the default, VLE's Storage-plugin equivalent)
// or "sqlite" (persisted, Location names the database file).
func (r *RootCoordinator) pickSink(name string, cfg config.ViewConfig) (observation.Sink, error) {
	switch cfg.Plugin {
	case "", "memory":
		return observation.NewMemorySink(), nil
	case "sqlite":
		return observation.NewSQLiteSink(cfg.Location, name, r.runID)
	default:
		return nil, fmt.Errorf("rootcoordinator: unknown view plugin %q for view %q", cfg.Plugin, name)
	}
}

// Init calls Init on every Dynamics (via the Coordinator) and sets the
// current time to zero; Experiment.InitialTime is not consulted.
func (r *RootCoordinator) Init() {
	r.coord.Init()
	r.currentTime = r.coord.CurrentTime()
}

// Step performs one Coordinator step. It returns false once the
// simulation is finished (VLE's run(): "@return false when simulation
// is finished, true otherwise").
func (r *RootCoordinator) Step() (bool, error) {
	status, err := r.coord.Step()
	r.currentTime = r.coord.CurrentTime()
	if err != nil {
		return false, err
	}
	return status == coordinator.StatusContinue, nil
}

// Run performs steps until done.
func (r *RootCoordinator) Run() error {
	for {
		cont, err := r.Step()
		if err != nil {
			return err
		}
		if !cont {
			return nil
		}
	}
}

// Finish flushes every observation view and calls Finish on every
// Dynamics.
func (r *RootCoordinator) Finish() {
	r.bus.Finish(r.currentTime)
	for _, sim := range r.sims {
		sim.Dyn.Finish()
	}
}

// Outputs returns the view-matrix accumulated by the last
// RefreshOutputs call.
func (r *RootCoordinator) Outputs() map[string][]observation.Sample {
	return r.outputs
}

// RefreshOutputs pulls the accumulated samples from every memory-backed
// view into the output matrix (VLE's refreshOutputs()).
func (r *RootCoordinator) RefreshOutputs() map[string][]observation.Sample {
	out := map[string][]observation.Sample{}
	for name, sink := range r.viewSinks {
		if ms, ok := sink.(*observation.MemorySink); ok {
			out[name] = ms.Values()
		}
	}
	r.outputs = out
	return out
}
