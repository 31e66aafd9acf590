package graph

import (
	"fmt"

	"github.com/sarchlab/vle/dynamics"
)

// CoupledModel owns an insertion-ordered map of children, plus three
// coupling tables: input couplings (its own input port to a
// child's input port), output couplings (a child's output port to its own
// output port), and internal couplings (a child's output port to a
// sibling's input port).
//
// All three tables are stored once, keyed by the source PortRef, on the
// owning CoupledModel rather than duplicated as a second mirrored list on
// each child (see DESIGN.md: this sidesteps the VLE delConnection bug class
// entirely, since there is no second write to desynchronize).
type CoupledModel struct {
	modelBase

	order    []string
	children map[string]Model

	inputCouplings    map[string][]PortRef
	outputCouplings   map[PortRef][]string
	internalCouplings map[PortRef][]PortRef
}

// NewCoupledModel constructs an unparented, childless coupled model.
func NewCoupledModel(name string) *CoupledModel {
	return &CoupledModel{
		modelBase:         makeModelBase(name),
		children:          map[string]Model{},
		inputCouplings:    map[string][]PortRef{},
		outputCouplings:   map[PortRef][]string{},
		internalCouplings: map[PortRef][]PortRef{},
	}
}

// Kind implements Model.
func (c *CoupledModel) Kind() Kind { return KindCoupled }

// Children returns the direct children in insertion order.
func (c *CoupledModel) Children() []Model {
	out := make([]Model, len(c.order))
	for i, name := range c.order {
		out[i] = c.children[name]
	}
	return out
}

// FindChild looks up a direct child by name.
func (c *CoupledModel) FindChild(name string) (Model, bool) {
	m, ok := c.children[name]
	return m, ok
}

func (c *CoupledModel) addChild(name string, m Model) error {
	if name == c.Name() {
		return &GraphError{Op: "add_child", Message: "a coupled model cannot contain itself"}
	}
	if _, exists := c.children[name]; exists {
		return &DuplicateName{Name: name}
	}
	m.setParent(c)
	c.children[name] = m
	c.order = append(c.order, name)
	return nil
}

// AddAtomicChild adds a new atomic child wrapping dyn. It fails with
// DuplicateName if name already exists among the coupled model's children.
func (c *CoupledModel) AddAtomicChild(name string, dyn dynamics.Dynamics) (*AtomicModel, error) {
	m := NewAtomicModel(name, dyn)
	if err := c.addChild(name, m); err != nil {
		return nil, err
	}
	return m, nil
}

// AddCoupledChild adds a new, initially empty coupled child. It fails with
// DuplicateName if name already exists among the coupled model's children.
func (c *CoupledModel) AddCoupledChild(name string) (*CoupledModel, error) {
	m := NewCoupledModel(name)
	if err := c.addChild(name, m); err != nil {
		return nil, err
	}
	return m, nil
}

// AddOpaqueChild adds a new opaque (non-DEVS) placeholder child. It fails
// with DuplicateName if name already exists among the coupled model's
// children.
func (c *CoupledModel) AddOpaqueChild(name string) (*OpaqueModel, error) {
	m := NewOpaqueModel(name)
	if err := c.addChild(name, m); err != nil {
		return nil, err
	}
	return m, nil
}

// AddInputPort adds an input port to m, idempotent if it already exists
// with the same direction.
func AddInputPort(m Model, name string) error {
	if !m.addInputPort(name) {
		return nil
	}
	return nil
}

// AddOutputPort adds an output port to m, idempotent if it already exists.
func AddOutputPort(m Model, name string) error {
	if !m.addOutputPort(name) {
		return nil
	}
	return nil
}

// AddInputConnection connects this coupled model's own input port ownPort
// to child's input port childPort. Both endpoints must exist with the
// input direction and child must be a direct child of c.
func (c *CoupledModel) AddInputConnection(ownPort string, child Model, childPort string) error {
	if err := portMustHaveDirection(c, ownPort, In); err != nil {
		return err
	}
	if err := mustBeChildOf(c, child); err != nil {
		return err
	}
	if err := portMustHaveDirection(child, childPort, In); err != nil {
		return err
	}
	c.inputCouplings[ownPort] = append(c.inputCouplings[ownPort], PortRef{Model: child, Port: childPort})
	return nil
}

// AddOutputConnection connects child's output port childPort to this
// coupled model's own output port ownPort.
func (c *CoupledModel) AddOutputConnection(child Model, childPort string, ownPort string) error {
	if err := mustBeChildOf(c, child); err != nil {
		return err
	}
	if err := portMustHaveDirection(child, childPort, Out); err != nil {
		return err
	}
	if err := portMustHaveDirection(c, ownPort, Out); err != nil {
		return err
	}
	key := PortRef{Model: child, Port: childPort}
	c.outputCouplings[key] = append(c.outputCouplings[key], ownPort)
	return nil
}

// AddInternalConnection connects childA's output port portA to childB's
// input port portB. Both must be direct children of c.
func (c *CoupledModel) AddInternalConnection(childA Model, portA string, childB Model, portB string) error {
	if err := mustBeChildOf(c, childA); err != nil {
		return err
	}
	if err := mustBeChildOf(c, childB); err != nil {
		return err
	}
	if err := portMustHaveDirection(childA, portA, Out); err != nil {
		return err
	}
	if err := portMustHaveDirection(childB, portB, In); err != nil {
		return err
	}
	key := PortRef{Model: childA, Port: portA}
	c.internalCouplings[key] = append(c.internalCouplings[key], PortRef{Model: childB, Port: portB})
	return nil
}

// InputCouplings returns the destinations wired to this coupled model's own
// input port name, in insertion order.
func (c *CoupledModel) InputCouplings(ownPort string) []PortRef {
	return append([]PortRef(nil), c.inputCouplings[ownPort]...)
}

// OutputCouplings returns the own output port names that source's emission
// feeds, in insertion order.
func (c *CoupledModel) OutputCouplings(source PortRef) []string {
	return append([]string(nil), c.outputCouplings[source]...)
}

// InternalCouplings returns the sibling destinations wired to source's
// emission, in insertion order.
func (c *CoupledModel) InternalCouplings(source PortRef) []PortRef {
	return append([]PortRef(nil), c.internalCouplings[source]...)
}

// RemoveInputConnection removes one occurrence of the (ownPort -> child,
// childPort) input coupling, symmetric with AddInputConnection.
func (c *CoupledModel) RemoveInputConnection(ownPort string, child Model, childPort string) error {
	target := PortRef{Model: child, Port: childPort}
	list, ok := removePortRef(c.inputCouplings[ownPort], target)
	if !ok {
		return &GraphError{Op: "remove_connection", Message: "no such input connection"}
	}
	c.inputCouplings[ownPort] = list
	return nil
}

// RemoveOutputConnection removes one occurrence of the (child, childPort ->
// ownPort) output coupling.
func (c *CoupledModel) RemoveOutputConnection(child Model, childPort string, ownPort string) error {
	key := PortRef{Model: child, Port: childPort}
	list, ok := removeString(c.outputCouplings[key], ownPort)
	if !ok {
		return &GraphError{Op: "remove_connection", Message: "no such output connection"}
	}
	if len(list) == 0 {
		delete(c.outputCouplings, key)
	} else {
		c.outputCouplings[key] = list
	}
	return nil
}

// RemoveInternalConnection removes one occurrence of the (childA, portA ->
// childB, portB) internal coupling.
func (c *CoupledModel) RemoveInternalConnection(childA Model, portA string, childB Model, portB string) error {
	key := PortRef{Model: childA, Port: portA}
	target := PortRef{Model: childB, Port: portB}
	list, ok := removePortRef(c.internalCouplings[key], target)
	if !ok {
		return &GraphError{Op: "remove_connection", Message: "no such internal connection"}
	}
	if len(list) == 0 {
		delete(c.internalCouplings, key)
	} else {
		c.internalCouplings[key] = list
	}
	return nil
}

func removePortRef(list []PortRef, target PortRef) ([]PortRef, bool) {
	for i, r := range list {
		if r == target {
			out := make([]PortRef, 0, len(list)-1)
			out = append(out, list[:i]...)
			out = append(out, list[i+1:]...)
			return out, true
		}
	}
	return list, false
}

func removeString(list []string, target string) ([]string, bool) {
	for i, s := range list {
		if s == target {
			out := make([]string, 0, len(list)-1)
			out = append(out, list[:i]...)
			out = append(out, list[i+1:]...)
			return out, true
		}
	}
	return list, false
}

// IncidentConnections reports whether any connection touches m across all
// three tables (as a source or a destination), the "mirror" query used in
// place of duplicated storage (see DESIGN.md).
func (c *CoupledModel) IncidentConnections(m Model) bool {
	for _, dsts := range c.inputCouplings {
		for _, d := range dsts {
			if d.Model == m {
				return true
			}
		}
	}
	for src := range c.outputCouplings {
		if src.Model == m {
			return true
		}
	}
	for src, dsts := range c.internalCouplings {
		if src.Model == m {
			return true
		}
		for _, d := range dsts {
			if d.Model == m {
				return true
			}
		}
	}
	return false
}

// removeAllConnectionsInvolving deletes every coupling entry that
// references m, either as source or destination, across all three tables.
func (c *CoupledModel) removeAllConnectionsInvolving(m Model) {
	for port, dsts := range c.inputCouplings {
		c.inputCouplings[port] = filterPortRefs(dsts, m)
	}
	for src := range c.outputCouplings {
		if src.Model == m {
			delete(c.outputCouplings, src)
		}
	}
	for src, dsts := range c.internalCouplings {
		if src.Model == m {
			delete(c.internalCouplings, src)
			continue
		}
		c.internalCouplings[src] = filterPortRefs(dsts, m)
	}
}

func filterPortRefs(list []PortRef, exclude Model) []PortRef {
	out := list[:0:0]
	for _, r := range list {
		if r.Model != exclude {
			out = append(out, r)
		}
	}
	return out
}

// RemoveChild deletes a child model by name, first removing all of its
// incident connections (collect-then-delete, avoiding an
// iterate-while-erasing bug).
func (c *CoupledModel) RemoveChild(name string) error {
	m, ok := c.children[name]
	if !ok {
		return &UnknownName{Name: name}
	}
	c.removeAllConnectionsInvolving(m)
	if cm, ok := m.(*CoupledModel); ok {
		names := append([]string(nil), cm.order...)
		for _, n := range names {
			if err := cm.RemoveChild(n); err != nil {
				return err
			}
		}
	}
	delete(c.children, name)
	c.order = removeStringOnce(c.order, name)
	m.setParent(nil)
	return nil
}

func removeStringOnce(list []string, target string) []string {
	out, _ := removeString(list, target)
	return out
}

// DeleteAll removes every child of c, collecting the full name set before
// deleting any of them.
func (c *CoupledModel) DeleteAll() error {
	names := append([]string(nil), c.order...)
	for _, n := range names {
		if err := c.RemoveChild(n); err != nil {
			return err
		}
	}
	return nil
}

// Replace rewires every incident connection from old to new by merging
// port lists, then deletes old (grounded on CoupledModel::replace).
func (c *CoupledModel) Replace(old Model, replacement Model) error {
	if err := mustBeChildOf(c, old); err != nil {
		return err
	}
	if old.Name() != replacement.Name() {
		return &GraphError{Op: "replace", Message: "replacement must share the old model's name"}
	}

	for _, port := range old.InputPorts() {
		replacement.addInputPort(port)
	}
	for _, port := range old.OutputPorts() {
		replacement.addOutputPort(port)
	}

	for port, dsts := range c.inputCouplings {
		for i, d := range dsts {
			if d.Model == old {
				dsts[i] = PortRef{Model: replacement, Port: d.Port}
			}
		}
		c.inputCouplings[port] = dsts
	}
	newOutput := map[PortRef][]string{}
	for src, ownPorts := range c.outputCouplings {
		if src.Model == old {
			src = PortRef{Model: replacement, Port: src.Port}
		}
		newOutput[src] = append(newOutput[src], ownPorts...)
	}
	c.outputCouplings = newOutput

	newInternal := map[PortRef][]PortRef{}
	for src, dsts := range c.internalCouplings {
		if src.Model == old {
			src = PortRef{Model: replacement, Port: src.Port}
		}
		remapped := make([]PortRef, len(dsts))
		for i, d := range dsts {
			if d.Model == old {
				d = PortRef{Model: replacement, Port: d.Port}
			}
			remapped[i] = d
		}
		newInternal[src] = append(newInternal[src], remapped...)
	}
	c.internalCouplings = newInternal

	replacement.setParent(c)
	c.children[old.Name()] = replacement
	return nil
}

// Displace moves children to newParent, failing with GraphError if any
// moved child retains a connection to a non-moved sibling still owned by c
// (grounded on CoupledModel::displace's hasConnectionProblem check).
func (c *CoupledModel) Displace(moved []Model, newParent *CoupledModel) error {
	movedSet := map[Model]bool{}
	for _, m := range moved {
		if err := mustBeChildOf(c, m); err != nil {
			return err
		}
		movedSet[m] = true
	}

	for src, dsts := range c.internalCouplings {
		srcMoved := movedSet[src.Model]
		for _, d := range dsts {
			dstMoved := movedSet[d.Model]
			if srcMoved != dstMoved {
				return &GraphError{Op: "displace", Message: fmt.Sprintf(
					"moved model %q retains a connection to non-moved sibling %q", pickMoved(src.Model, d.Model, movedSet), pickNonMoved(src.Model, d.Model, movedSet))}
			}
		}
	}
	for src, ownPorts := range c.outputCouplings {
		if movedSet[src.Model] && len(ownPorts) > 0 {
			return &GraphError{Op: "displace", Message: fmt.Sprintf(
				"moved model %q retains a boundary output connection to non-moved parent", src.Model.Name())}
		}
	}
	for _, dsts := range c.inputCouplings {
		for _, d := range dsts {
			if movedSet[d.Model] {
				return &GraphError{Op: "displace", Message: fmt.Sprintf(
					"moved model %q retains a boundary input connection to non-moved parent", d.Model.Name())}
			}
		}
	}

	for _, m := range moved {
		name := m.Name()
		delete(c.children, name)
		c.order = removeStringOnce(c.order, name)
		if err := newParent.addChild(name, m); err != nil {
			return err
		}
	}
	return nil
}

func pickMoved(a, b Model, moved map[Model]bool) string {
	if moved[a] {
		return a.Name()
	}
	return b.Name()
}

func pickNonMoved(a, b Model, moved map[Model]bool) string {
	if !moved[a] {
		return a.Name()
	}
	return b.Name()
}
