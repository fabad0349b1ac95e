package monitor_test

import (
	. "github.com/docshelf/warden/pkg/monitor"
	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
)

var _ = Describe("ThreadSafeHistogram", func() {
	var subject *ThreadSafeHistogram

	BeforeEach(func() {
		subject = NewThreadSafeHistogram(ProbeHistogramWindow, SigFigs)
	})

	It("tracks the maximum recorded value", func() {
		Expect(subject.RecordValue(100)).To(Succeed())
		Expect(subject.RecordValue(5000)).To(Succeed())
		Expect(subject.RecordValue(300)).To(Succeed())

		Expect(subject.Max()).To(BeNumerically("~", 5000, 5))
	})

	It("reports quantiles over the recorded values", func() {
		for i := int64(1); i <= 100; i++ {
			Expect(subject.RecordValue(i)).To(Succeed())
		}

		Expect(subject.ValueAtQuantile(90)).To(BeNumerically("~", 90, 1))
		Expect(subject.ValueAtQuantile(99)).To(BeNumerically("~", 99, 1))
	})

	It("keeps values visible across a rotation within the window", func() {
		Expect(subject.RecordValue(1000)).To(Succeed())

		subject.Rotate()

		Expect(subject.Max()).To(BeNumerically("~", 1000, 1))
	})
})
