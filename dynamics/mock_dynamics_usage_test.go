package dynamics_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"go.uber.org/mock/gomock"

	"github.com/sarchlab/vle/dynamics"
	"github.com/sarchlab/vle/value"
	"github.com/sarchlab/vle/vtime"
)

var _ = Describe("DebugWrapper with a generated mock", func() {
	var ctrl *gomock.Controller

	BeforeEach(func() {
		ctrl = gomock.NewController(GinkgoT())
	})

	AfterEach(func() {
		ctrl.Finish()
	})

	It("forwards Init/Output/Finish with the exact arguments gomock expects", func() {
		inner := dynamics.NewMockDynamics(ctrl)
		inner.EXPECT().Init(vtime.Time(0)).Return(vtime.Time(2))
		inner.EXPECT().Output(vtime.Time(2)).Return(dynamics.Bag{{Port: "out", Value: value.Int(1)}})
		inner.EXPECT().Finish()

		w := dynamics.NewDebugWrapper("root.A", inner)

		Expect(w.Init(0)).To(Equal(vtime.Time(2)))
		Expect(w.Output(2)).To(Equal(dynamics.Bag{{Port: "out", Value: value.Int(1)}}))
		w.Finish()
	})

	It("forwards transitions with their bags in call order", func() {
		inner := dynamics.NewMockDynamics(ctrl)
		bag := dynamics.Bag{{Port: "in", Value: value.Int(3)}}

		gomock.InOrder(
			inner.EXPECT().ExternalTransition(vtime.Time(1), bag),
			inner.EXPECT().ConfluentTransition(vtime.Time(2), bag),
		)

		w := dynamics.NewDebugWrapper("root.B", inner)
		w.ExternalTransition(1, bag)
		w.ConfluentTransition(2, bag)
	})
})
