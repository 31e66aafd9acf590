package graph_test

import (
	"bytes"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/vle/graph"
)

var _ = Describe("CoupledModel", func() {
	It("fails to add a child with a duplicate name", func() {
		root := graph.NewCoupledModel("root")
		_, err := root.AddAtomicChild("A", nil)
		Expect(err).NotTo(HaveOccurred())

		_, err = root.AddOpaqueChild("A")
		Expect(err).To(BeAssignableToTypeOf(&graph.DuplicateName{}))
	})

	It("adds ports idempotently", func() {
		root := graph.NewCoupledModel("root")
		a, _ := root.AddAtomicChild("A", nil)

		Expect(graph.AddInputPort(a, "in")).NotTo(HaveOccurred())
		Expect(graph.AddInputPort(a, "in")).NotTo(HaveOccurred())
		Expect(a.InputPorts()).To(Equal([]string{"in"}))
	})

	It("sets the child's parent pointer on AddXChild (invariant P2)", func() {
		root := graph.NewCoupledModel("root")
		a, _ := root.AddAtomicChild("A", nil)
		Expect(a.Parent()).To(Equal(root))
	})

	It("rejects an internal connection sourced at an input port (scenario 6)", func() {
		root := graph.NewCoupledModel("root")
		a, _ := root.AddAtomicChild("A", nil)
		b, _ := root.AddAtomicChild("B", nil)
		graph.AddInputPort(a, "in")
		graph.AddInputPort(b, "in")

		err := root.AddInternalConnection(a, "in", b, "in")
		Expect(err).To(BeAssignableToTypeOf(&graph.PortDirectionError{}))

		Expect(root.InternalCouplings(graph.PortRef{Model: a, Port: "in"})).To(BeEmpty())
	})

	It("routes a self-loop connection without establishing a bogus mirror on another model", func() {
		root := graph.NewCoupledModel("root")
		a, _ := root.AddAtomicChild("A", nil)
		graph.AddOutputPort(a, "out")
		graph.AddInputPort(a, "in")

		Expect(root.AddInternalConnection(a, "out", a, "in")).NotTo(HaveOccurred())
		dsts := root.InternalCouplings(graph.PortRef{Model: a, Port: "out"})
		Expect(dsts).To(Equal([]graph.PortRef{{Model: a, Port: "in"}}))
	})

	It("removes a connection symmetrically and leaves no dangling entry", func() {
		root := graph.NewCoupledModel("root")
		a, _ := root.AddAtomicChild("A", nil)
		b, _ := root.AddAtomicChild("B", nil)
		graph.AddOutputPort(a, "out")
		graph.AddInputPort(b, "in")

		Expect(root.AddInternalConnection(a, "out", b, "in")).NotTo(HaveOccurred())
		Expect(root.RemoveInternalConnection(a, "out", b, "in")).NotTo(HaveOccurred())
		Expect(root.InternalCouplings(graph.PortRef{Model: a, Port: "out"})).To(BeEmpty())
		Expect(root.IncidentConnections(a)).To(BeFalse())
		Expect(root.IncidentConnections(b)).To(BeFalse())
	})

	It("removes all incident connections before deleting a child (RemoveChild)", func() {
		root := graph.NewCoupledModel("root")
		a, _ := root.AddAtomicChild("A", nil)
		b, _ := root.AddAtomicChild("B", nil)
		graph.AddOutputPort(a, "out")
		graph.AddInputPort(b, "in")
		Expect(root.AddInternalConnection(a, "out", b, "in")).NotTo(HaveOccurred())

		Expect(root.RemoveChild("A")).NotTo(HaveOccurred())
		Expect(root.IncidentConnections(b)).To(BeFalse())
		_, ok := root.FindChild("A")
		Expect(ok).To(BeFalse())
	})

	It("preserves multiset cardinality across Replace (merging port lists)", func() {
		root := graph.NewCoupledModel("root")
		a, _ := root.AddAtomicChild("A", nil)
		b, _ := root.AddAtomicChild("B", nil)
		graph.AddOutputPort(a, "out")
		graph.AddInputPort(b, "in")
		Expect(root.AddInternalConnection(a, "out", b, "in")).NotTo(HaveOccurred())
		Expect(root.AddInternalConnection(a, "out", b, "in")).NotTo(HaveOccurred())

		replacement := graph.NewAtomicModel("A", nil)
		Expect(root.Replace(a, replacement)).NotTo(HaveOccurred())

		dsts := root.InternalCouplings(graph.PortRef{Model: replacement, Port: "out"})
		Expect(dsts).To(HaveLen(2))
	})

	It("rejects displacing a child that keeps a connection to a non-moved sibling", func() {
		root := graph.NewCoupledModel("root")
		a, _ := root.AddAtomicChild("A", nil)
		b, _ := root.AddAtomicChild("B", nil)
		graph.AddOutputPort(a, "out")
		graph.AddInputPort(b, "in")
		Expect(root.AddInternalConnection(a, "out", b, "in")).NotTo(HaveOccurred())

		other, _ := root.AddCoupledChild("Other")
		err := root.Displace([]graph.Model{a}, other)
		Expect(err).To(BeAssignableToTypeOf(&graph.GraphError{}))
	})

	It("allows displacing a set of children that move together", func() {
		root := graph.NewCoupledModel("root")
		a, _ := root.AddAtomicChild("A", nil)
		b, _ := root.AddAtomicChild("B", nil)
		graph.AddOutputPort(a, "out")
		graph.AddInputPort(b, "in")
		Expect(root.AddInternalConnection(a, "out", b, "in")).NotTo(HaveOccurred())

		other, _ := root.AddCoupledChild("Other")
		Expect(root.Displace([]graph.Model{a, b}, other)).NotTo(HaveOccurred())

		_, stillInRoot := root.FindChild("A")
		Expect(stillInRoot).To(BeFalse())
		_, inOther := other.FindChild("A")
		Expect(inOther).To(BeTrue())
	})

	It("resolves a deep-routing tree structurally through nested coupled ports (scenario 4)", func() {
		root := graph.NewCoupledModel("root")
		p, _ := root.AddCoupledChild("P")
		q, _ := root.AddCoupledChild("Q")
		a, _ := p.AddAtomicChild("A", nil)
		b, _ := q.AddAtomicChild("B", nil)

		graph.AddOutputPort(a, "out")
		graph.AddOutputPort(p, "out")
		graph.AddInputPort(q, "in")
		graph.AddInputPort(b, "in")

		Expect(p.AddOutputConnection(a, "out", "out")).NotTo(HaveOccurred())
		Expect(root.AddInternalConnection(p, "out", q, "in")).NotTo(HaveOccurred())
		Expect(q.AddInputConnection("in", b, "in")).NotTo(HaveOccurred())

		Expect(p.OutputCouplings(graph.PortRef{Model: a, Port: "out"})).To(Equal([]string{"out"}))
		Expect(root.InternalCouplings(graph.PortRef{Model: p, Port: "out"})).To(Equal([]graph.PortRef{{Model: q, Port: "in"}}))
		Expect(q.InputCouplings("in")).To(Equal([]graph.PortRef{{Model: b, Port: "in"}}))
	})

	It("round-trips a nested tree through canonical XML byte-identically", func() {
		root := graph.NewCoupledModel("root")
		p, _ := root.AddCoupledChild("P")
		a, _ := p.AddAtomicChild("A", nil)
		b, _ := p.AddAtomicChild("B", nil)
		graph.AddOutputPort(a, "out")
		graph.AddInputPort(b, "in")
		Expect(p.AddInternalConnection(a, "out", b, "in")).NotTo(HaveOccurred())

		var first bytes.Buffer
		Expect(graph.WriteXML(&first, root)).NotTo(HaveOccurred())

		parsed, err := graph.ParseXML(bytes.NewReader(first.Bytes()))
		Expect(err).NotTo(HaveOccurred())

		var second bytes.Buffer
		Expect(graph.WriteXML(&second, parsed)).NotTo(HaveOccurred())

		Expect(second.Bytes()).To(Equal(first.Bytes()))
	})
})
