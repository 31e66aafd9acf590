// Package dynamics defines the capability-set contract an atomic-model
// author implements.
package dynamics

//go:generate mockgen -destination "mock_dynamics_test.go" -self_package=github.com/sarchlab/vle/dynamics -package dynamics -write_package_comment=false github.com/sarchlab/vle/dynamics Dynamics

import (
	"github.com/sarchlab/vle/value"
	"github.com/sarchlab/vle/vtime"
)

// Event is a single (port, payload) pair, either produced by Output or
// delivered as part of an external/confluent transition's bag.
type Event struct {
	Port  string
	Value value.Value
}

// Bag is the unordered multiset of events delivered to one model at one
// time.
type Bag []Event

// ObservationEvent describes what an Observation call should report.
type ObservationEvent struct {
	Port string
}

// RequestEvent describes a synchronous query issued to a Dynamics.
type RequestEvent struct {
	Port string
}

// Dynamics is the contract an atomic-model author supplies.
type Dynamics interface {
	// Init is called once, at simulation start, and returns the model's
	// initial time-advance.
	Init(t vtime.Time) vtime.Time

	// Output is called when the atomic is imminent, before the transition,
	// and returns the events it produces.
	Output(t vtime.Time) Bag

	// TimeAdvance is called after every transition and returns the delay
	// until the model's next internal transition (>= 0, or Infinity).
	TimeAdvance() vtime.Time

	// InternalTransition is called when the model is imminent and receives
	// no external input.
	InternalTransition(t vtime.Time)

	// ExternalTransition is called when the model is non-imminent and
	// receives input.
	ExternalTransition(t vtime.Time, bag Bag)

	// ConfluentTransition is called when the model is imminent and receives
	// input simultaneously.
	ConfluentTransition(t vtime.Time, bag Bag)

	// Observation returns the payload for an observation descriptor, on
	// demand.
	Observation(ev ObservationEvent) value.Value

	// Finish is called once, at the end of the run.
	Finish()
}

// Requester is an optional capability: a Dynamics that answers synchronous
// queries from other models.
type Requester interface {
	Request(ev RequestEvent, t vtime.Time) Bag
}
