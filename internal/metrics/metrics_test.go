package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObserveSettlement(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New(reg)

	m.ObserveSettlement(SourceCalculate, 3, 2)
	m.ObserveSettlement(SourceCalculate, 4, 3)
	m.ObserveSettlement(SourceShareLink, 2, 1)
	m.ObserveValidationFailure(SourceSummarize)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.SettlementsComputed.WithLabelValues(SourceCalculate)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.SettlementsComputed.WithLabelValues(SourceShareLink)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.ValidationFailures.WithLabelValues(SourceSummarize)))

	count, err := testutil.GatherAndCount(reg, "dividizky_settlement_payments")
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestNilMetricsIsNoop(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.ObserveSettlement(SourceCalculate, 2, 1)
		m.ObserveValidationFailure(SourceCalculate)
	})
}
