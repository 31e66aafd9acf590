// Package router translates an output event on a (model, port) into the
// set of destination (atomic model, port) pairs by transitively resolving
// coupling links through enclosing coupled models.
package router

import "github.com/sarchlab/vle/graph"

// Route enumerates the destination atomic (model, port) pairs reached by
// an emission at source. Enumeration order is the insertion order of the
// underlying coupling lists, so routing is deterministic given a
// deterministic graph.
func Route(source graph.PortRef) []graph.PortRef {
	parent := source.Model.Parent()
	if parent == nil {
		return nil
	}

	var out []graph.PortRef

	for _, dst := range parent.InternalCouplings(source) {
		out = append(out, deliver(dst)...)
	}
	for _, ownPort := range parent.OutputCouplings(source) {
		out = append(out, Route(graph.PortRef{Model: parent, Port: ownPort})...)
	}

	return out
}

// deliver resolves one coupling destination to terminal atomic deliveries,
// recursing through a coupled destination's own input coupling table when
// the destination is itself a coupled model.
func deliver(dst graph.PortRef) []graph.PortRef {
	switch dst.Model.Kind() {
	case graph.KindAtomic:
		return []graph.PortRef{dst}
	case graph.KindCoupled:
		coupled := dst.Model.(*graph.CoupledModel)
		var out []graph.PortRef
		for _, grandDst := range coupled.InputCouplings(dst.Port) {
			out = append(out, deliver(grandDst)...)
		}
		return out
	default:
		// Opaque/foreign destinations are ignored by the core scheduler.
		return nil
	}
}
