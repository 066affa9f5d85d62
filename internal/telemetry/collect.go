package telemetry

import (
	"cmp"
	"context"
	"slices"

	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
)

// ConversionCount is one data point of the conversions counter.
type ConversionCount struct {
	Converter string
	Outcome   Outcome
	Count     int64
}

// CollectConversions reads the conversions counter from reader, sorted by
// converter then outcome.
func CollectConversions(ctx context.Context, reader sdkmetric.Reader) ([]ConversionCount, error) {
	var rm metricdata.ResourceMetrics
	if err := reader.Collect(ctx, &rm); err != nil {
		return nil, err
	}

	var counts []ConversionCount
	for _, scope := range rm.ScopeMetrics {
		if scope.Scope.Name != ConversionMetricsMeterName {
			continue
		}
		for _, m := range scope.Metrics {
			sum, ok := m.Data.(metricdata.Sum[int64])
			if m.Name != ConversionsTotalName || !ok {
				continue
			}
			for _, dp := range sum.DataPoints {
				conv, _ := dp.Attributes.Value("converter")
				outcome, _ := dp.Attributes.Value("outcome")
				counts = append(counts, ConversionCount{
					Converter: conv.AsString(),
					Outcome:   Outcome(outcome.AsString()),
					Count:     dp.Value,
				})
			}
		}
	}

	slices.SortFunc(counts, func(a, b ConversionCount) int {
		return cmp.Or(cmp.Compare(a.Converter, b.Converter), cmp.Compare(a.Outcome, b.Outcome))
	})
	return counts, nil
}
