package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestQuoteMetrics_Record(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewQuoteMetrics(reg)

	m.ObserveResolution(2, false)
	m.ObserveResolution(5, true)
	m.SlotOp("set")
	m.SlotOp("set")
	m.SlotOp("clear")
	m.DecodeFailure()
	m.DroppedEvent()

	assert.Equal(t, float64(2), testutil.ToFloat64(m.Resolutions))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.Truncations))
	assert.Equal(t, float64(2), testutil.ToFloat64(m.SlotOps.WithLabelValues("set")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.SlotOps.WithLabelValues("clear")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.DecodeFailures))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.DroppedEvents))

	count, err := testutil.GatherAndCount(reg, "goquote_quote_resolve_hops")
	assert.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestQuoteMetrics_NilIsSafe(t *testing.T) {
	var m *QuoteMetrics
	assert.NotPanics(t, func() {
		m.ObserveResolution(1, true)
		m.SlotOp("get")
		m.DecodeFailure()
		m.DroppedEvent()
	})
}
