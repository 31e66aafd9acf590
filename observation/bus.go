package observation

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/sarchlab/vle/config"
	"github.com/sarchlab/vle/dynamics"
	"github.com/sarchlab/vle/hooking"
	"github.com/sarchlab/vle/simulator"
	"github.com/sarchlab/vle/vtime"
)

// View is one registered observation view: a schedule, a set of
// observed (model, port) pairs, and the sink samples are delivered to.
type View struct {
	name        string
	cfg         config.ViewConfig
	sink        Sink
	observables []config.ObservablePort
	sims        map[string]*simulator.Simulator
	lastPull    vtime.Time
	pulled      bool
	detached    bool
}

func (v *View) due(t vtime.Time) bool {
	if v.detached || v.cfg.Schedule == config.ScheduleFinish {
		return false
	}
	if v.cfg.Schedule == config.SchedulePerStep {
		return true
	}
	// ScheduleTimed.
	if !v.pulled {
		return true
	}
	return t.Sub(v.lastPull) >= v.cfg.Period
}

func (v *View) pull(t vtime.Time) Trame {
	samples := make([]Sample, 0, len(v.observables))
	for _, ob := range v.observables {
		sim := v.sims[ob.Model]
		if sim == nil {
			continue
		}
		val := sim.Observation(dynamics.ObservationEvent{Port: ob.Port})
		samples = append(samples, Sample{
			Parent:    v.name,
			Simulator: ob.Model,
			Port:      ob.Port,
			Value:     val,
			Time:      t,
		})
	}
	v.lastPull = t
	v.pulled = true
	return Trame{Kind: KindValue, Time: t, Samples: samples}
}

// Bus fans a coordinator's step notifications out to every registered
// view's sink, on each view's own schedule. It implements
// coordinator.Observer.
type Bus struct {
	hooking.HookableBase

	views  map[string]*View
	order  []string
	logger *logrus.Logger
}

// NewBus constructs an empty Bus.
func NewBus() *Bus {
	return &Bus{
		views:  map[string]*View{},
		logger: logrus.StandardLogger(),
	}
}

// SetLogger overrides the diagnostic logger (nil restores the default).
func (b *Bus) SetLogger(l *logrus.Logger) {
	if l == nil {
		l = logrus.StandardLogger()
	}
	b.logger = l
}

// Register adds a view: it sends a Parameter trame followed by one
// NewObservable trame per observed port, then the view is
// eligible to be pulled from on OnStep/Finish.
func (b *Bus) Register(
	name string,
	cfg config.ViewConfig,
	sink Sink,
	observables []config.ObservablePort,
	sims map[string]*simulator.Simulator,
) error {
	if _, exists := b.views[name]; exists {
		return fmt.Errorf("observation: view %q already registered", name)
	}

	v := &View{
		name:        name,
		cfg:         cfg,
		sink:        sink,
		observables: observables,
		sims:        sims,
	}
	b.views[name] = v
	b.order = append(b.order, name)

	b.deliver(v, Trame{Kind: KindParameter, Parameter: cfg.Location})
	for _, ob := range observables {
		b.deliver(v, Trame{Kind: KindNewObservable, Parent: name, Model: ob.Model, Port: ob.Port})
	}
	return nil
}

// Detach removes a view's ability to receive further trames without
// closing its sink; used when a caller wants to stop a view early
// without treating it as a protocol failure.
func (b *Bus) Detach(name string) {
	if v, ok := b.views[name]; ok {
		v.detached = true
	}
}

// OnStep implements coordinator.Observer: due views pull a Value trame
// once transitions for the step have been applied.
func (b *Bus) OnStep(t vtime.Time, touched []*simulator.Simulator) {
	for _, name := range b.order {
		v := b.views[name]
		if !v.due(t) {
			continue
		}
		tr := v.pull(t)
		b.InvokeHook(hooking.HookCtx{Domain: b, Pos: hooking.HookPosObservation, Item: tr})
		b.deliver(v, tr)
	}
}

// Finish pulls any ScheduleFinish views, sends an End trame to every
// non-detached view, and flushes those views' sinks. Detached views are
// skipped entirely; their sinks are not flushed.
func (b *Bus) Finish(t vtime.Time) {
	for _, name := range b.order {
		v := b.views[name]
		if v.detached {
			continue
		}
		if v.cfg.Schedule == config.ScheduleFinish {
			b.deliver(v, v.pull(t))
		}
		b.deliver(v, Trame{Kind: KindEnd})
		if err := v.sink.Flush(); err != nil {
			b.logger.WithField("view", name).WithError(err).Warn("observation sink flush failed")
		}
	}
}

func (b *Bus) deliver(v *View, tr Trame) {
	if v.detached {
		return
	}
	if err := v.sink.Deliver(tr); err != nil {
		ioErr := &IOError{Sink: v.name, Err: err}
		b.logger.WithField("view", v.name).WithError(ioErr).Warn("detaching view after sink error")
		v.detached = true
	}
}
