package dynamics

import (
	"github.com/sarchlab/vle/hooking"
	"github.com/sarchlab/vle/value"
	"github.com/sarchlab/vle/vtime"
)

// DebugWrapper composes transparently in front of any Dynamics, forwarding
// every call and emitting a structured hooking.HookCtx trace at each one.
// It owns the wrapped Dynamics and is indistinguishable to a Simulator,
// grounded on VLE's DynamicsDbg.
type DebugWrapper struct {
	hooking.HookableBase

	inner Dynamics
	name  string
}

// NewDebugWrapper wraps inner, tagging every trace with name (typically the
// wrapped model's fully-qualified path).
func NewDebugWrapper(name string, inner Dynamics) *DebugWrapper {
	return &DebugWrapper{inner: inner, name: name}
}

// Set replaces the wrapped Dynamics, mirroring DynamicsDbg::set.
func (w *DebugWrapper) Set(inner Dynamics) {
	w.inner = inner
}

func (w *DebugWrapper) trace(call string, detail interface{}) {
	if w.NumHooks() == 0 {
		return
	}
	w.InvokeHook(hooking.HookCtx{
		Domain: w,
		Pos:    hooking.HookPosDynamicsCall,
		Item:   w.name,
		Detail: struct {
			Call   string
			Detail interface{}
		}{Call: call, Detail: detail},
	})
}

// Init implements Dynamics.
func (w *DebugWrapper) Init(t vtime.Time) vtime.Time {
	w.trace("init", t)
	ta := w.inner.Init(t)
	w.trace("init.return", ta)
	return ta
}

// Output implements Dynamics.
func (w *DebugWrapper) Output(t vtime.Time) Bag {
	w.trace("output", t)
	bag := w.inner.Output(t)
	w.trace("output.return", bag)
	return bag
}

// TimeAdvance implements Dynamics.
func (w *DebugWrapper) TimeAdvance() vtime.Time {
	ta := w.inner.TimeAdvance()
	w.trace("timeAdvance.return", ta)
	return ta
}

// InternalTransition implements Dynamics.
func (w *DebugWrapper) InternalTransition(t vtime.Time) {
	w.trace("internalTransition", t)
	w.inner.InternalTransition(t)
}

// ExternalTransition implements Dynamics.
func (w *DebugWrapper) ExternalTransition(t vtime.Time, bag Bag) {
	w.trace("externalTransition", struct {
		Time vtime.Time
		Bag  Bag
	}{t, bag})
	w.inner.ExternalTransition(t, bag)
}

// ConfluentTransition implements Dynamics.
func (w *DebugWrapper) ConfluentTransition(t vtime.Time, bag Bag) {
	w.trace("confluentTransition", struct {
		Time vtime.Time
		Bag  Bag
	}{t, bag})
	w.inner.ConfluentTransition(t, bag)
}

// Observation implements Dynamics.
func (w *DebugWrapper) Observation(ev ObservationEvent) value.Value {
	w.trace("observation", ev)
	return w.inner.Observation(ev)
}

// Finish implements Dynamics.
func (w *DebugWrapper) Finish() {
	w.trace("finish", nil)
	w.inner.Finish()
}

// Request implements Requester if the wrapped Dynamics does.
func (w *DebugWrapper) Request(ev RequestEvent, t vtime.Time) Bag {
	req, ok := w.inner.(Requester)
	if !ok {
		return nil
	}
	w.trace("request", ev)
	return req.Request(ev, t)
}
