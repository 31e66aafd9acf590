// Package coordinator drives the DEVS abstract-simulator loop: pop
// imminents, run outputs, route, transition, reschedule.
package coordinator

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/sarchlab/vle/dynamics"
	"github.com/sarchlab/vle/eventqueue"
	"github.com/sarchlab/vle/graph"
	"github.com/sarchlab/vle/hooking"
	"github.com/sarchlab/vle/router"
	"github.com/sarchlab/vle/simulator"
	"github.com/sarchlab/vle/vtime"
)

// Status is the outcome of one Step call.
type Status int

const (
	// StatusContinue reports that the coordinator advanced at least one
	// step and more work may remain.
	StatusContinue Status = iota
	// StatusDone reports that the queue is empty or current time has
	// reached the configured duration.
	StatusDone
)

// Observer is notified once per step, after transitions have been applied,
// with the set of simulators touched during the step. observation.Bus
// implements this to pull observations on the configured schedule.
type Observer interface {
	OnStep(t vtime.Time, touched []*simulator.Simulator)
}

// DynamicsError reports that the offending model's Dynamics panicked or
// otherwise failed during a transition.
type DynamicsError struct {
	ModelPath string
	Err       error
}

func (e *DynamicsError) Error() string {
	return fmt.Sprintf("coordinator: dynamics error in %q: %v", e.ModelPath, e.Err)
}

func (e *DynamicsError) Unwrap() error { return e.Err }

// Coordinator maintains the time-ordered event queue and drives the DEVS
// transition protocol for one model tree.
type Coordinator struct {
	hooking.HookableBase

	queue    *eventqueue.Queue
	sims     map[*graph.AtomicModel]*simulator.Simulator
	simOrder []*simulator.Simulator
	time     vtime.Time
	duration vtime.Time
	observer Observer
	logger   *logrus.Logger
}

// New constructs a Coordinator with the given run duration.
func New(duration vtime.Time) *Coordinator {
	return &Coordinator{
		queue:    eventqueue.New(),
		sims:     map[*graph.AtomicModel]*simulator.Simulator{},
		duration: duration,
		logger:   logrus.StandardLogger(),
	}
}

// SetLogger overrides the diagnostic logger (nil restores the default).
func (c *Coordinator) SetLogger(l *logrus.Logger) {
	if l == nil {
		l = logrus.StandardLogger()
	}
	c.logger = l
}

// SetObserver registers the observation bus to notify after each step.
func (c *Coordinator) SetObserver(o Observer) {
	c.observer = o
}

// AddSimulator registers sim for model. Init must be called afterward to
// seed the queue. Registration order is preserved and drives the
// deterministic tie-break Init seeds the queue with.
func (c *Coordinator) AddSimulator(model *graph.AtomicModel, sim *simulator.Simulator) {
	if _, exists := c.sims[model]; !exists {
		c.simOrder = append(c.simOrder, sim)
	}
	c.sims[model] = sim
}

// CurrentTime returns the coordinator's current time.
func (c *Coordinator) CurrentTime() vtime.Time { return c.time }

// Init calls Init on every registered simulator in registration order and
// seeds the queue, setting current time to 0, then notifies the observer
// of the initial state.
func (c *Coordinator) Init() {
	c.time = 0
	for _, sim := range c.simOrder {
		sim.Init(c.time)
		c.queue.Push(sim)
	}
	if c.observer != nil {
		c.observer.OnStep(c.time, c.simOrder)
	}
}

// Step performs one iteration of the abstract simulator's event loop:
// pop the imminent set, collect outputs, route them, apply transitions,
// and reschedule.
func (c *Coordinator) Step() (Status, error) {
	if c.queue.Len() == 0 {
		c.time = vtime.Infinity
		return StatusDone, nil
	}

	tNext := c.queue.PeekTime()
	if tNext > c.duration {
		c.time = c.duration
		return StatusDone, nil
	}
	c.time = tNext

	c.InvokeHook(hooking.HookCtx{Domain: c, Pos: hooking.HookPosBeforeStep, Item: c.time})

	imminent := c.queue.PopImminent()
	imminentSet := make(map[*simulator.Simulator]bool, len(imminent))
	for _, s := range imminent {
		imminentSet[s] = true
	}

	bag := make([]dynamics.Event, 0)
	sources := make([]graph.PortRef, 0)
	for _, s := range imminent {
		out, err := c.callOutput(s, c.time)
		if err != nil {
			return StatusDone, err
		}
		for _, ev := range out {
			bag = append(bag, ev)
			sources = append(sources, graph.PortRef{Model: s.Model, Port: ev.Port})
		}
	}

	receivers := map[*simulator.Simulator]bool{}
	receiverOrder := make([]*simulator.Simulator, 0, len(sources))
	for i, src := range sources {
		for _, dst := range router.Route(src) {
			target := c.sims[dst.Model.(*graph.AtomicModel)]
			if target == nil {
				continue
			}
			target.AppendExternal(dynamics.Event{Port: dst.Port, Value: bag[i].Value})
			if !receivers[target] {
				receivers[target] = true
				receiverOrder = append(receiverOrder, target)
			}
		}
	}

	touched := make([]*simulator.Simulator, 0, len(imminent)+len(receivers))
	touchedSet := map[*simulator.Simulator]bool{}
	addTouched := func(s *simulator.Simulator) {
		if !touchedSet[s] {
			touchedSet[s] = true
			touched = append(touched, s)
		}
	}

	for _, s := range imminent {
		addTouched(s)
		switch {
		case receivers[s]:
			if err := c.callConfluent(s, c.time); err != nil {
				return StatusDone, err
			}
		default:
			if err := c.callInternal(s, c.time); err != nil {
				return StatusDone, err
			}
		}
	}
	for _, s := range receiverOrder {
		if imminentSet[s] {
			continue
		}
		addTouched(s)
		if err := c.callExternal(s, c.time); err != nil {
			return StatusDone, err
		}
	}

	for _, s := range touched {
		c.queue.Push(s)
	}

	c.InvokeHook(hooking.HookCtx{Domain: c, Pos: hooking.HookPosAfterStep, Item: c.time})

	if c.observer != nil {
		c.observer.OnStep(c.time, touched)
	}

	return StatusContinue, nil
}

// Run performs steps until done.
func (c *Coordinator) Run() error {
	for {
		status, err := c.Step()
		if err != nil {
			return err
		}
		if status == StatusDone {
			return nil
		}
	}
}

func (c *Coordinator) callOutput(s *simulator.Simulator, t vtime.Time) (out dynamics.Bag, err error) {
	defer c.recoverDynamicsError(s, &err)
	return s.Output(t), nil
}

func (c *Coordinator) callInternal(s *simulator.Simulator, t vtime.Time) (err error) {
	defer c.recoverDynamicsError(s, &err)
	s.Internal(t)
	return nil
}

func (c *Coordinator) callExternal(s *simulator.Simulator, t vtime.Time) (err error) {
	defer c.recoverDynamicsError(s, &err)
	s.External(t)
	return nil
}

func (c *Coordinator) callConfluent(s *simulator.Simulator, t vtime.Time) (err error) {
	defer c.recoverDynamicsError(s, &err)
	s.Confluent(t)
	return nil
}

func (c *Coordinator) recoverDynamicsError(s *simulator.Simulator, err *error) {
	if r := recover(); r != nil {
		var cause error
		if e, ok := r.(error); ok {
			cause = e
		} else {
			cause = fmt.Errorf("%v", r)
		}
		c.logger.WithField("model", s.Model.FullPath()).Error("dynamics error")
		*err = &DynamicsError{ModelPath: s.Model.FullPath(), Err: cause}
	}
}
