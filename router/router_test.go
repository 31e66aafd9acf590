package router_test

import (
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/vle/graph"
	"github.com/sarchlab/vle/router"
)

func TestRouter(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Router")
}

var _ = Describe("Route", func() {
	It("delivers a one-hop internal connection directly (scenario 2)", func() {
		root := graph.NewCoupledModel("root")
		a, _ := root.AddAtomicChild("A", nil)
		b, _ := root.AddAtomicChild("B", nil)
		graph.AddOutputPort(a, "out")
		graph.AddInputPort(b, "in")
		Expect(root.AddInternalConnection(a, "out", b, "in")).NotTo(HaveOccurred())

		dsts := router.Route(graph.PortRef{Model: a, Port: "out"})
		Expect(dsts).To(Equal([]graph.PortRef{{Model: b, Port: "in"}}))
	})

	It("routes a self-loop as a single terminal delivery (scenario 5)", func() {
		root := graph.NewCoupledModel("root")
		a, _ := root.AddAtomicChild("A", nil)
		graph.AddOutputPort(a, "out")
		graph.AddInputPort(a, "in")
		Expect(root.AddInternalConnection(a, "out", a, "in")).NotTo(HaveOccurred())

		dsts := router.Route(graph.PortRef{Model: a, Port: "out"})
		Expect(dsts).To(Equal([]graph.PortRef{{Model: a, Port: "in"}}))
	})

	It("routes deeply through two levels of coupled boundaries exactly once (scenario 4)", func() {
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

		dsts := router.Route(graph.PortRef{Model: a, Port: "out"})
		Expect(dsts).To(Equal([]graph.PortRef{{Model: b, Port: "in"}}))
	})

	It("silently drops an emission with no matching coupling", func() {
		root := graph.NewCoupledModel("root")
		a, _ := root.AddAtomicChild("A", nil)
		graph.AddOutputPort(a, "out")

		dsts := router.Route(graph.PortRef{Model: a, Port: "out"})
		Expect(dsts).To(BeEmpty())
	})

	It("preserves insertion order across multiple destinations", func() {
		root := graph.NewCoupledModel("root")
		a, _ := root.AddAtomicChild("A", nil)
		b, _ := root.AddAtomicChild("B", nil)
		c, _ := root.AddAtomicChild("C", nil)
		graph.AddOutputPort(a, "out")
		graph.AddInputPort(b, "in")
		graph.AddInputPort(c, "in")
		Expect(root.AddInternalConnection(a, "out", b, "in")).NotTo(HaveOccurred())
		Expect(root.AddInternalConnection(a, "out", c, "in")).NotTo(HaveOccurred())

		dsts := router.Route(graph.PortRef{Model: a, Port: "out"})
		Expect(dsts).To(Equal([]graph.PortRef{{Model: b, Port: "in"}, {Model: c, Port: "in"}}))
	})
})
