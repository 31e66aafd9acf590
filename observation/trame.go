// Package observation implements the trame-oriented observation bus:
// views pull samples from atomic models on a schedule and hand framed
// messages to a Sink. Grounded on akita's TracerBackend/DBTracer split
// (sim/hooking/dbtracer.go) for the bus/sink separation, and on VLE's
// oov:: trame vocabulary (parameter/new_observable/del_observable/
// value/end).
package observation

import (
	"github.com/sarchlab/vle/value"
	"github.com/sarchlab/vle/vtime"
)

// Kind discriminates the five trame kinds a view's stream can carry.
type Kind int

const (
	KindParameter Kind = iota
	KindNewObservable
	KindDelObservable
	KindValue
	KindEnd
)

func (k Kind) String() string {
	switch k {
	case KindParameter:
		return "parameter"
	case KindNewObservable:
		return "new_observable"
	case KindDelObservable:
		return "del_observable"
	case KindValue:
		return "value"
	case KindEnd:
		return "end"
	default:
		return "unknown"
	}
}

// Sample is one (parent, simulator, port, Value) tuple carried by a
// KindValue trame, stamped with the trame's time.
type Sample struct {
	Parent    string
	Simulator string
	Port      string
	Value     value.Value
	Time      vtime.Time
}

// Trame is one framed message in a view's observation stream.
type Trame struct {
	Kind Kind

	// Parameter carries the setup string for KindParameter.
	Parameter string

	// Parent/Model/Port identify the column added or removed for
	// KindNewObservable/KindDelObservable.
	Parent string
	Model  string
	Port   string

	// Time and Samples carry a KindValue trame's payload.
	Time    vtime.Time
	Samples []Sample
}
