package telemetry

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
)

func TestNewConversionMetrics(t *testing.T) {
	t.Parallel()

	t.Run("returns nil when provider is nil", func(t *testing.T) {
		t.Parallel()

		metrics, err := NewConversionMetrics(nil)
		require.NoError(t, err)
		assert.Nil(t, metrics)
	})

	t.Run("creates metrics with SDK provider", func(t *testing.T) {
		t.Parallel()

		mp := sdkmetric.NewMeterProvider()
		defer func() { _ = mp.Shutdown(context.Background()) }()

		metrics, err := NewConversionMetrics(mp)
		require.NoError(t, err)
		require.NotNil(t, metrics)
		assert.NotNil(t, metrics.conversions)
		assert.NotNil(t, metrics.duration)
	})
}

func TestConversionMetrics_RecordConversion(t *testing.T) {
	t.Parallel()

	t.Run("no-op when metrics is nil", func(t *testing.T) {
		t.Parallel()

		var metrics *ConversionMetrics
		// Should not panic
		metrics.RecordConversion(context.Background(), "IntArrayWrapper", OutcomeSuccess, time.Millisecond)
	})

	t.Run("counts conversions per converter and outcome", func(t *testing.T) {
		t.Parallel()

		reader := sdkmetric.NewManualReader()
		mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
		defer func() { _ = mp.Shutdown(context.Background()) }()

		metrics, err := NewConversionMetrics(mp)
		require.NoError(t, err)

		ctx := context.Background()
		metrics.RecordConversion(ctx, "IntArrayWrapper", OutcomeSuccess, time.Microsecond)
		metrics.RecordConversion(ctx, "IntArrayWrapper", OutcomeSuccess, time.Microsecond)
		metrics.RecordConversion(ctx, "IntListConverter", OutcomeFailed, time.Microsecond)
		metrics.RecordConversion(ctx, "", OutcomeNoConverter, 0)

		var rm metricdata.ResourceMetrics
		require.NoError(t, reader.Collect(ctx, &rm))

		counts := map[string]int64{}
		var histogramPoints int
		for _, scope := range rm.ScopeMetrics {
			if scope.Scope.Name != ConversionMetricsMeterName {
				continue
			}
			for _, m := range scope.Metrics {
				switch m.Name {
				case ConversionsTotalName:
					sum, ok := m.Data.(metricdata.Sum[int64])
					require.True(t, ok, "expected int64 sum")
					for _, dp := range sum.DataPoints {
						conv, _ := dp.Attributes.Value("converter")
						outcome, _ := dp.Attributes.Value("outcome")
						counts[conv.AsString()+"/"+outcome.AsString()] = dp.Value
					}
				case ConversionDurationName:
					hist, ok := m.Data.(metricdata.Histogram[float64])
					require.True(t, ok, "expected histogram data type")
					histogramPoints = len(hist.DataPoints)
				}
			}
		}

		assert.Equal(t, int64(2), counts["IntArrayWrapper/success"])
		assert.Equal(t, int64(1), counts["IntListConverter/failed"])
		assert.Equal(t, int64(1), counts["/no_converter"])
		// no duration is recorded when no converter ran
		assert.Equal(t, 2, histogramPoints)
	})
}

func TestCollectConversions(t *testing.T) {
	t.Parallel()

	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	defer func() { _ = mp.Shutdown(context.Background()) }()

	metrics, err := NewConversionMetrics(mp)
	require.NoError(t, err)

	ctx := context.Background()
	metrics.RecordConversion(ctx, "LongArrayWrapper", OutcomeSuccess, time.Microsecond)
	metrics.RecordConversion(ctx, "IntListConverter", OutcomeFailed, time.Microsecond)
	metrics.RecordConversion(ctx, "IntListConverter", OutcomeSuccess, time.Microsecond)
	metrics.RecordConversion(ctx, "IntListConverter", OutcomeSuccess, time.Microsecond)

	counts, err := CollectConversions(ctx, reader)
	require.NoError(t, err)
	assert.Equal(t, []ConversionCount{
		{Converter: "IntListConverter", Outcome: OutcomeFailed, Count: 1},
		{Converter: "IntListConverter", Outcome: OutcomeSuccess, Count: 2},
		{Converter: "LongArrayWrapper", Outcome: OutcomeSuccess, Count: 1},
	}, counts)
}

func TestCollectConversions_Empty(t *testing.T) {
	t.Parallel()

	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	defer func() { _ = mp.Shutdown(context.Background()) }()

	counts, err := CollectConversions(context.Background(), reader)
	require.NoError(t, err)
	assert.Empty(t, counts)
}
