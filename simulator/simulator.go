// Package simulator implements the per-atomic-model runtime wrapper:
// current time, next-event time, pending external-event bag, and the
// operations the coordinator drives a step through.
package simulator

import (
	"github.com/sarchlab/vle/dynamics"
	"github.com/sarchlab/vle/graph"
	"github.com/sarchlab/vle/value"
	"github.com/sarchlab/vle/vtime"
)

// Simulator holds the runtime state the coordinator needs for one atomic
// model: a reference to its Dynamics, last-transition time tL, next-event
// time tN, and the pending-external-event bag Γ.
type Simulator struct {
	Model *graph.AtomicModel
	Dyn   dynamics.Dynamics

	tL  vtime.Time
	tN  vtime.Time
	bag dynamics.Bag
}

// New constructs a Simulator for model, wrapping dyn (which may be a
// dynamics.DebugWrapper composed in front of the model's own Dynamics).
func New(model *graph.AtomicModel, dyn dynamics.Dynamics) *Simulator {
	return &Simulator{Model: model, Dyn: dyn}
}

// TL returns the simulator's last-transition time.
func (s *Simulator) TL() vtime.Time { return s.tL }

// TN returns the simulator's next-event time.
func (s *Simulator) TN() vtime.Time { return s.tN }

// Bag returns the simulator's pending external-event bag Γ.
func (s *Simulator) Bag() dynamics.Bag { return s.bag }

// HasPendingInput reports whether Γ is non-empty.
func (s *Simulator) HasPendingInput() bool { return len(s.bag) > 0 }

// Init calls Dynamics.Init and sets tL and the initial tN = t + Δ.
func (s *Simulator) Init(t vtime.Time) {
	delta := s.Dyn.Init(t)
	s.tL = t
	s.tN = t.Add(delta)
}

// Output calls Dynamics.Output and returns the produced events tagged with
// their source port, for the router to dispatch.
func (s *Simulator) Output(t vtime.Time) dynamics.Bag {
	return s.Dyn.Output(t)
}

// AppendExternal appends an event to the pending bag Γ.
func (s *Simulator) AppendExternal(ev dynamics.Event) {
	s.bag = append(s.bag, ev)
}

// Internal invokes InternalTransition, then refreshes tN and tL, clearing Γ.
func (s *Simulator) Internal(t vtime.Time) {
	s.Dyn.InternalTransition(t)
	s.refresh(t)
}

// External invokes ExternalTransition with the accumulated bag, then
// refreshes tN and tL, clearing Γ.
func (s *Simulator) External(t vtime.Time) {
	s.Dyn.ExternalTransition(t, s.bag)
	s.refresh(t)
}

// Confluent invokes ConfluentTransition with the accumulated bag, then
// refreshes tN and tL, clearing Γ.
func (s *Simulator) Confluent(t vtime.Time) {
	s.Dyn.ConfluentTransition(t, s.bag)
	s.refresh(t)
}

func (s *Simulator) refresh(t vtime.Time) {
	delta := s.Dyn.TimeAdvance()
	s.tL = t
	s.tN = t.Add(delta)
	s.bag = nil
}

// Observation calls Dynamics.Observation.
func (s *Simulator) Observation(ev dynamics.ObservationEvent) value.Value {
	return s.Dyn.Observation(ev)
}
