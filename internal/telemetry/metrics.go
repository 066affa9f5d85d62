// Package telemetry provides OpenTelemetry instrumentation for conversions.
package telemetry

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const (
	// ConversionMetricsMeterName is the name used for the conversion metrics meter
	ConversionMetricsMeterName = "github.com/wippyai/typeconv/convert"

	ConversionsTotalName   = "typeconv_conversions_total"
	ConversionDurationName = "typeconv_conversion_duration_seconds"
)

// Outcome labels a finished conversion.
type Outcome string

const (
	OutcomeSuccess     Outcome = "success"
	OutcomeNoConverter Outcome = "no_converter"
	OutcomeFailed      Outcome = "failed"
)

// ConversionMetrics holds the OpenTelemetry instruments for conversion metrics
type ConversionMetrics struct {
	conversions metric.Int64Counter
	duration    metric.Float64Histogram
}

// NewConversionMetrics creates a new ConversionMetrics instance with the given meter provider.
// If provider is nil, it returns nil (no-op metrics).
func NewConversionMetrics(provider metric.MeterProvider) (*ConversionMetrics, error) {
	if provider == nil {
		return nil, nil
	}

	meter := provider.Meter(ConversionMetricsMeterName)

	conversions, err := meter.Int64Counter(
		ConversionsTotalName,
		metric.WithDescription("Number of conversions by converter and outcome"),
		metric.WithUnit("{conversion}"),
	)
	if err != nil {
		return nil, err
	}

	duration, err := meter.Float64Histogram(
		ConversionDurationName,
		metric.WithDescription("Time spent inside the selected converter in seconds"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(1e-6, 1e-5, 1e-4, 1e-3, 1e-2, 0.1, 1),
	)
	if err != nil {
		return nil, err
	}

	return &ConversionMetrics{
		conversions: conversions,
		duration:    duration,
	}, nil
}

// RecordConversion counts one conversion and, when a converter ran, its duration.
// An empty converter name means selection found no candidate.
func (m *ConversionMetrics) RecordConversion(ctx context.Context, converter string, outcome Outcome, elapsed time.Duration) {
	if m == nil || m.conversions == nil {
		return
	}

	attrs := metric.WithAttributes(
		attribute.String("converter", converter),
		attribute.String("outcome", string(outcome)),
	)

	m.conversions.Add(ctx, 1, attrs)
	if converter != "" && m.duration != nil {
		m.duration.Record(ctx, elapsed.Seconds(), attrs)
	}
}
