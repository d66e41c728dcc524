package observability

import (
	"context"
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func querySamples(t *testing.T, table string) uint64 {
	t.Helper()
	families, err := prometheus.DefaultGatherer.Gather()
	require.NoError(t, err)
	for _, mf := range families {
		if mf.GetName() != "filmorate_database_query_latency_seconds" {
			continue
		}
		for _, m := range mf.GetMetric() {
			for _, lp := range m.GetLabel() {
				if lp.GetName() == "table" && lp.GetValue() == table {
					return m.GetHistogram().GetSampleCount()
				}
			}
		}
	}
	return 0
}

func TestTrackQueryObservesLatency(t *testing.T) {
	before := querySamples(t, "metrics_test_table")

	done := TrackQuery("select", "metrics_test_table")
	done()

	assert.Equal(t, before+1, querySamples(t, "metrics_test_table"))
}

func TestInitTracingDisabledReturnsNoopShutdown(t *testing.T) {
	shutdown, err := InitTracing(TracingConfig{Enabled: false})
	require.NoError(t, err)
	require.NotNil(t, shutdown)
	assert.NoError(t, shutdown(context.Background()))

	ctx, span := StartQuerySpan(context.Background(), "select", "films")
	assert.NotNil(t, ctx)
	EndSpan(span, errors.New("boom"))
}
