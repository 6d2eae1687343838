package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"

	coremetrics "github.com/gridsim/meritsim/core/metrics"
	"github.com/gridsim/meritsim/core/model"
)

func TestPromSink_RecordHourResult(t *testing.T) {
	reg := prometheus.NewRegistry()
	sink, err := NewPromSinkWithRegistry(coremetrics.Config{}, reg)
	require.NoError(t, err)

	recs := []coremetrics.HourRecord{
		{RunID: "r", Result: model.HourlyResult{Hour: 1, MarginalPriceGBP: 34.1, GasGeneratedMWh: 60, DemandMWh: 60}},
		{RunID: "r", Result: model.HourlyResult{Hour: 2, WindGeneratedMWh: 80, DemandMWh: 50}},
		{RunID: "r", Result: model.HourlyResult{Hour: 3, MarginalPriceGBP: 90, GasGeneratedMWh: 100, DemandMWh: 160, SupplyShortageMWh: 60}},
	}
	for _, r := range recs {
		require.NoError(t, sink.RecordHourResult(r))
	}

	require.Equal(t, 1.0, testutil.ToFloat64(sink.hours.WithLabelValues("cleared")))
	require.Equal(t, 1.0, testutil.ToFloat64(sink.hours.WithLabelValues("curtailed")))
	require.Equal(t, 1.0, testutil.ToFloat64(sink.hours.WithLabelValues("shortage")))
	require.Equal(t, 160.0, testutil.ToFloat64(sink.generation.WithLabelValues("gas")))
	require.Equal(t, 80.0, testutil.ToFloat64(sink.generation.WithLabelValues("wind")))
}

func TestPromSink_RecordRunSummary(t *testing.T) {
	reg := prometheus.NewRegistry()
	sink, err := NewPromSinkWithRegistry(coremetrics.Config{}, reg)
	require.NoError(t, err)

	require.NoError(t, sink.RecordRunSummary(coremetrics.RunSummary{
		RunID:                "r",
		Hours:                24,
		MeanMarginalPriceGBP: 41.5,
		ShortageHours:        2,
	}))
	require.Equal(t, 41.5, testutil.ToFloat64(sink.meanPrice))
	require.Equal(t, 2.0, testutil.ToFloat64(sink.shortHours))
}

func TestPromSink_ReRegister(t *testing.T) {
	reg := prometheus.NewRegistry()
	_, err := NewPromSinkWithRegistry(coremetrics.Config{}, reg)
	require.NoError(t, err)
	// A second sink on the same registry must reuse existing collectors.
	_, err = NewPromSinkWithRegistry(coremetrics.Config{}, reg)
	require.NoError(t, err)
}
