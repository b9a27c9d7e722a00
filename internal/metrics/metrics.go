package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// QuoteMetrics groups the collectors of the quote core. A nil *QuoteMetrics
// is valid and records nothing.
type QuoteMetrics struct {
	Resolutions    prometheus.Counter
	ResolveHops    prometheus.Histogram
	Truncations    prometheus.Counter
	SlotOps        *prometheus.CounterVec
	DecodeFailures prometheus.Counter
	DroppedEvents  prometheus.Counter
}

func NewQuoteMetrics(reg prometheus.Registerer) *QuoteMetrics {
	m := &QuoteMetrics{
		Resolutions: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "goquote",
			Name:      "quote_resolutions_total",
			Help:      "Quote chain resolutions performed.",
		}),
		ResolveHops: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "goquote",
			Name:      "quote_resolve_hops",
			Help:      "Hops followed per quote chain resolution.",
			Buckets:   []float64{0, 1, 2, 3, 4, 5},
		}),
		Truncations: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "goquote",
			Name:      "quote_resolve_truncated_total",
			Help:      "Resolutions stopped by the hop limit.",
		}),
		SlotOps: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "goquote",
			Name:      "quote_slot_operations_total",
			Help:      "Pending quote slot operations by kind.",
		}, []string{"op"}),
		DecodeFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "goquote",
			Name:      "quote_slot_decode_failures_total",
			Help:      "Slot reads that were unreadable and treated as empty.",
		}),
		DroppedEvents: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "goquote",
			Name:      "quote_bus_dropped_events_total",
			Help:      "Async bus events dropped because the queue was full or closed.",
		}),
	}

	if reg != nil {
		reg.MustRegister(m.Resolutions, m.ResolveHops, m.Truncations, m.SlotOps, m.DecodeFailures, m.DroppedEvents)
	}
	return m
}

func (m *QuoteMetrics) ObserveResolution(hops int, truncated bool) {
	if m == nil {
		return
	}
	m.Resolutions.Inc()
	m.ResolveHops.Observe(float64(hops))
	if truncated {
		m.Truncations.Inc()
	}
}

func (m *QuoteMetrics) SlotOp(op string) {
	if m == nil {
		return
	}
	m.SlotOps.WithLabelValues(op).Inc()
}

func (m *QuoteMetrics) DecodeFailure() {
	if m == nil {
		return
	}
	m.DecodeFailures.Inc()
}

func (m *QuoteMetrics) DroppedEvent() {
	if m == nil {
		return
	}
	m.DroppedEvents.Inc()
}
