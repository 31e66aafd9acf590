// Package graph implements the model tree: atomic, coupled, and opaque
// models with named ports and coupling tables.
package graph

import (
	"fmt"

	"github.com/sarchlab/vle/dynamics"
	"github.com/sarchlab/vle/naming"
)

// Direction discriminates a port's namespace: input ports and output ports
// are independent.
type Direction int

const (
	// In identifies an input port.
	In Direction = iota
	// Out identifies an output port.
	Out
)

func (d Direction) String() string {
	if d == In {
		return "input"
	}
	return "output"
}

// Kind is the sealed sum discriminating a Model's concrete type
// a sealed sum, not a class hierarchy.
type Kind int

const (
	// KindAtomic models own a Dynamics reference.
	KindAtomic Kind = iota
	// KindCoupled models own children and coupling tables.
	KindCoupled
	// KindOpaque models are non-DEVS placeholders ignored by the scheduler.
	KindOpaque
)

func (k Kind) String() string {
	switch k {
	case KindAtomic:
		return "atomic"
	case KindCoupled:
		return "coupled"
	case KindOpaque:
		return "opaque"
	default:
		return "unknown"
	}
}

// PortRef identifies a named port on a specific model — the unit the
// coupling tables and the router operate on.
type PortRef struct {
	Model Model
	Port  string
}

// Model is a node in the tree. Every model has a name, an optional parent
// coupled model, and two ordered port namespaces.
type Model interface {
	naming.Named
	Kind() Kind
	Parent() *CoupledModel
	FullPath() string

	HasInputPort(name string) bool
	HasOutputPort(name string) bool
	InputPorts() []string
	OutputPorts() []string

	addInputPort(name string) bool
	addOutputPort(name string) bool
	setParent(p *CoupledModel)
}

// modelBase implements the fields and methods shared by every Model kind.
type modelBase struct {
	naming.NamedBase
	parent      *CoupledModel
	inputPorts  []string
	outputPorts []string
	inputSet    map[string]bool
	outputSet   map[string]bool
}

func makeModelBase(name string) modelBase {
	naming.MustBeValid(name)
	return modelBase{
		NamedBase: naming.MakeNamedBase(name),
		inputSet:  map[string]bool{},
		outputSet: map[string]bool{},
	}
}

func (m *modelBase) Parent() *CoupledModel { return m.parent }

func (m *modelBase) setParent(p *CoupledModel) { m.parent = p }

func (m *modelBase) FullPath() string {
	if m.parent == nil {
		return m.Name()
	}
	return naming.Join(m.parent.FullPath(), m.Name())
}

func (m *modelBase) HasInputPort(name string) bool  { return m.inputSet[name] }
func (m *modelBase) HasOutputPort(name string) bool { return m.outputSet[name] }

func (m *modelBase) InputPorts() []string {
	cp := make([]string, len(m.inputPorts))
	copy(cp, m.inputPorts)
	return cp
}

func (m *modelBase) OutputPorts() []string {
	cp := make([]string, len(m.outputPorts))
	copy(cp, m.outputPorts)
	return cp
}

// addInputPort adds name to the input namespace if absent. It returns true
// if the port was newly added (idempotent).
func (m *modelBase) addInputPort(name string) bool {
	naming.MustBeValid(name)
	if m.inputSet[name] {
		return false
	}
	m.inputSet[name] = true
	m.inputPorts = append(m.inputPorts, name)
	return true
}

func (m *modelBase) addOutputPort(name string) bool {
	naming.MustBeValid(name)
	if m.outputSet[name] {
		return false
	}
	m.outputSet[name] = true
	m.outputPorts = append(m.outputPorts, name)
	return true
}

// AtomicModel owns an opaque Dynamics reference: the user code.
type AtomicModel struct {
	modelBase
	Dynamics dynamics.Dynamics
}

// NewAtomicModel constructs an unparented atomic model wrapping dyn.
func NewAtomicModel(name string, dyn dynamics.Dynamics) *AtomicModel {
	return &AtomicModel{modelBase: makeModelBase(name), Dynamics: dyn}
}

// Kind implements Model.
func (m *AtomicModel) Kind() Kind { return KindAtomic }

// OpaqueModel is a non-DEVS placeholder ignored by the core scheduler.
type OpaqueModel struct {
	modelBase
}

// NewOpaqueModel constructs an unparented opaque model.
func NewOpaqueModel(name string) *OpaqueModel {
	return &OpaqueModel{modelBase: makeModelBase(name)}
}

// Kind implements Model.
func (m *OpaqueModel) Kind() Kind { return KindOpaque }

var (
	_ Model = (*AtomicModel)(nil)
	_ Model = (*OpaqueModel)(nil)
	_ Model = (*CoupledModel)(nil)
)

// portMustHaveDirection returns a PortDirectionError if m does not have
// port with the given direction.
func portMustHaveDirection(m Model, port string, dir Direction) error {
	has := m.HasInputPort(port)
	if dir == Out {
		has = m.HasOutputPort(port)
	}
	if !has {
		return &PortDirectionError{Model: m.Name(), Port: port, Want: dir}
	}
	return nil
}

func mustBeChildOf(parent *CoupledModel, m Model) error {
	if m.Parent() != parent {
		return &GraphError{Op: "coupling", Message: fmt.Sprintf("%q is not a child of %q", m.Name(), parent.Name())}
	}
	return nil
}
