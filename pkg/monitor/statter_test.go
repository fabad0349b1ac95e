package monitor_test

import (
	"time"

	"code.cloudfoundry.org/lager/lagertest"
	"github.com/docshelf/warden/pkg/logx"
	"github.com/docshelf/warden/pkg/logx/lagerx"
	. "github.com/docshelf/warden/pkg/monitor"
	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
)

type recordedGauge struct {
	stat  string
	value int64
	rate  float32
}

type recordingGaugeStatter struct {
	gauges []recordedGauge
}

func (s *recordingGaugeStatter) Gauge(stat string, value int64, rate float32) error {
	s.gauges = append(s.gauges, recordedGauge{stat: stat, value: value, rate: rate})
	return nil
}

func (s *recordingGaugeStatter) value(stat string) (int64, bool) {
	for _, g := range s.gauges {
		if g.stat == stat {
			return g.value, true
		}
	}
	return 0, false
}

var _ = Describe("Statter", func() {
	var (
		statsd  *recordingGaugeStatter
		subject *Statter

		logger logx.Logger
	)

	BeforeEach(func() {
		statsd = &recordingGaugeStatter{}

		subject = &Statter{
			GaugeStatter: statsd,
			Histogram:    NewThreadSafeHistogram(ProbeHistogramWindow, SigFigs),
		}

		logger = lagerx.NewLogger(lagertest.NewTestLogger("warden-monitor-test"))
	})

	Describe("SendCorrectProbe", func() {
		It("sends a success and a correct gauge", func() {
			subject.SendCorrectProbe(logger)

			Expect(statsd.gauges).To(HaveLen(2))
			Expect(statsd.gauges[0]).To(Equal(recordedGauge{stat: MetricProbeRunsSuccess, value: MetricSuccess, rate: AlwaysSendMetric}))
			Expect(statsd.gauges[1]).To(Equal(recordedGauge{stat: MetricProbeRunsCorrect, value: MetricSuccess, rate: AlwaysSendMetric}))
		})
	})

	Describe("SendIncorrectProbe", func() {
		It("sends a failure and an incorrect gauge", func() {
			subject.SendIncorrectProbe(logger)

			Expect(statsd.gauges).To(HaveLen(2))
			Expect(statsd.gauges[0]).To(Equal(recordedGauge{stat: MetricProbeRunsSuccess, value: MetricFailure, rate: AlwaysSendMetric}))
			Expect(statsd.gauges[1]).To(Equal(recordedGauge{stat: MetricProbeRunsCorrect, value: MetricFailure, rate: AlwaysSendMetric}))
		})
	})

	Describe("SendFailedProbe", func() {
		It("sends a failure gauge only", func() {
			subject.SendFailedProbe(logger)

			Expect(statsd.gauges).To(HaveLen(1))
			Expect(statsd.gauges[0]).To(Equal(recordedGauge{stat: MetricProbeRunsSuccess, value: MetricFailure, rate: AlwaysSendMetric}))
		})
	})

	Describe("SendStats", func() {
		It("publishes the 90th, 99th, and 99.9th percentiles and the max", func() {
			subject.RecordProbeDuration(logger, 50*time.Millisecond)
			subject.RecordProbeDuration(logger, 80*time.Millisecond)

			subject.SendStats(logger)

			p90, ok := statsd.value(MetricProbeTimingP90)
			Expect(ok).To(BeTrue())
			Expect(p90).To(BeNumerically(">", 0))

			_, ok = statsd.value(MetricProbeTimingP99)
			Expect(ok).To(BeTrue())

			_, ok = statsd.value(MetricProbeTimingP999)
			Expect(ok).To(BeTrue())

			max, ok := statsd.value(MetricProbeTimingMax)
			Expect(ok).To(BeTrue())
			Expect(max).To(BeNumerically("~", int64(80*time.Millisecond), int64(time.Millisecond)))
		})
	})
})
