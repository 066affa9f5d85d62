package convert

import (
	"context"
	"fmt"
	"reflect"
	"time"

	"github.com/wippyai/typeconv/errors"
	"github.com/wippyai/typeconv/internal/telemetry"
	"go.opentelemetry.io/otel/metric"
	"go.uber.org/zap"
)

// Engine converts values through the best-ranked registered converter.
// It is safe for concurrent use.
type Engine struct {
	registry *Registry
	logger   *zap.Logger
	provider metric.MeterProvider
	metrics  *telemetry.ConversionMetrics
	builtins bool
}

// Option configures an Engine.
type Option func(*Engine)

// WithRegistry makes the engine use r instead of a fresh registry.
func WithRegistry(r *Registry) Option {
	return func(e *Engine) {
		e.registry = r
	}
}

// WithLogger sets the logger for conversion failures and selection tracing.
func WithLogger(l *zap.Logger) Option {
	return func(e *Engine) {
		e.logger = l
	}
}

// WithMeterProvider records conversion counts and durations through p.
// nil disables metrics.
func WithMeterProvider(p metric.MeterProvider) Option {
	return func(e *Engine) {
		e.provider = p
	}
}

// WithBuiltins controls whether New registers the primitive array
// converters. It defaults to true.
func WithBuiltins(enabled bool) Option {
	return func(e *Engine) {
		e.builtins = enabled
	}
}

// New creates an engine. Registering the builtins into a registry that
// already holds them fails with a registration error.
func New(opts ...Option) (*Engine, error) {
	e := &Engine{builtins: true}
	for _, opt := range opts {
		opt(e)
	}
	if e.registry == nil {
		e.registry = NewRegistry()
	}
	if e.logger == nil {
		e.logger = Logger()
	}

	metrics, err := telemetry.NewConversionMetrics(e.provider)
	if err != nil {
		return nil, fmt.Errorf("create conversion metrics: %w", err)
	}
	e.metrics = metrics

	if e.builtins {
		if err := RegisterBuiltins(e.registry); err != nil {
			return nil, err
		}
	}
	return e, nil
}

// Convert converts value to target using exactly one converter, the
// top-ranked candidate. A failing converter is reported, never retried with
// the next candidate.
func (e *Engine) Convert(value any, target reflect.Type) (any, error) {
	if target == nil {
		return nil, errors.InvalidArgument(errors.PhaseConvert, "target type is nil")
	}
	if value == nil {
		return nil, errors.New(errors.PhaseConvert, errors.KindInvalidArgument).
			OutputType(target.String()).
			Detail("value has no runtime type").
			Build()
	}

	in := reflect.TypeOf(value)
	candidates := e.registry.Find(in, target)
	if len(candidates) == 0 {
		e.metrics.RecordConversion(context.Background(), "", telemetry.OutcomeNoConverter, 0)
		return nil, errors.NoConverterFound(in, target)
	}

	d := candidates[0]
	if ce := e.logger.Check(zap.DebugLevel, "converting"); ce != nil {
		ce.Write(
			zap.Stringer("input", in),
			zap.Stringer("output", target),
			zap.String("converter", d.Name),
			zap.Int("candidates", len(candidates)),
		)
	}

	start := time.Now()
	out, err := invoke(d, value)
	if err == nil {
		out, err = fitResult(out, target)
	}
	elapsed := time.Since(start)

	if err != nil {
		e.metrics.RecordConversion(context.Background(), d.Name, telemetry.OutcomeFailed, elapsed)
		e.logger.Warn("conversion failed",
			zap.Stringer("input", in),
			zap.Stringer("output", target),
			zap.String("converter", d.Name),
			zap.Error(err),
		)
		return nil, errors.ConversionFailed(in, target, d.Name, err)
	}

	e.metrics.RecordConversion(context.Background(), d.Name, telemetry.OutcomeSuccess, elapsed)
	return out, nil
}

func invoke(d Descriptor, value any) (out any, err error) {
	defer func() {
		if r := recover(); r != nil {
			out = nil
			err = fmt.Errorf("converter panicked: %v", r)
		}
	}()
	return d.Convert(asType(value, d.Input))
}

// asType converts v to t when v's type is only assignable to t, such as a
// named slice passed where the unnamed slice is declared. Interface types
// are left alone; the converter sees the dynamic value.
func asType(v any, t reflect.Type) any {
	vt := reflect.TypeOf(v)
	if vt == t || t.Kind() == reflect.Interface || !vt.ConvertibleTo(t) {
		return v
	}
	return reflect.ValueOf(v).Convert(t).Interface()
}

// fitResult checks that out can be returned for target and gives it the
// target's exact type when target is concrete.
func fitResult(out any, target reflect.Type) (any, error) {
	if out == nil {
		if target.Kind() == reflect.Interface {
			return nil, nil
		}
		return nil, errors.New(errors.PhaseConvert, errors.KindTypeMismatch).
			OutputType(target.String()).
			Detail("converter returned nil").
			Build()
	}
	if got := reflect.TypeOf(out); !got.AssignableTo(target) {
		return nil, errors.New(errors.PhaseConvert, errors.KindTypeMismatch).
			Types(got, target).
			Detail("converter result does not fit the target type").
			Build()
	}
	return asType(out, target), nil
}

// ConvertTo is Convert with the target given as a type parameter.
func ConvertTo[T any](e *Engine, value any) (T, error) {
	var zero T
	target := reflect.TypeFor[T]()
	out, err := e.Convert(value, target)
	if err != nil || out == nil {
		return zero, err
	}
	t, ok := out.(T)
	if !ok {
		mismatch := errors.New(errors.PhaseConvert, errors.KindTypeMismatch).
			Types(reflect.TypeOf(out), target).
			Detail("result does not have the requested type").
			Build()
		return zero, errors.ConversionFailed(reflect.TypeOf(value), target, "", mismatch)
	}
	return t, nil
}

// CanConvert reports whether any registered converter matches in -> out.
func (e *Engine) CanConvert(in, out reflect.Type) bool {
	return e.registry.CanConvert(in, out)
}

// Find returns the candidates for in -> out, best first.
func (e *Engine) Find(in, out reflect.Type) []Descriptor {
	return e.registry.Find(in, out)
}

// Register adds d to the engine's registry.
func (e *Engine) Register(d Descriptor) error {
	return e.registry.Register(d)
}

// Registry returns the registry backing the engine.
func (e *Engine) Registry() *Registry {
	return e.registry
}

// ManagedType reports that an engine serves converter descriptors.
func (e *Engine) ManagedType() reflect.Type {
	return reflect.TypeFor[Descriptor]()
}
