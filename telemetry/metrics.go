// Package telemetry provides OpenTelemetry metrics and tracing for simulation batches.
package telemetry

import (
	"context"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

const instrumentationName = "github.com/signalnine/biscuits"

// Batch is what a finished batch reports.
type Batch struct {
	Rules    string
	Strategy string
	Trials   int64
	Gravies  int64
	Busts    int64
	Suspect  int64
	Duration time.Duration
}

func (b Batch) attributes() []attribute.KeyValue {
	return []attribute.KeyValue{
		attribute.String("rules.name", b.Rules),
		attribute.String("strategy.name", b.Strategy),
	}
}

// MetricsProvider records batch metrics and spans.
type MetricsProvider struct {
	meter  metric.Meter
	tracer trace.Tracer

	trials        metric.Int64Counter
	gravies       metric.Int64Counter
	busts         metric.Int64Counter
	suspect       metric.Int64Counter
	errors        metric.Int64Counter
	batchDuration metric.Float64Histogram
	activeBatches metric.Int64UpDownCounter

	initOnce sync.Once
	initErr  error
}

// MetricsConfig configures the metrics provider.
type MetricsConfig struct {
	// MeterName is the name of the meter and tracer.
	MeterName string
	// MeterVersion is the version of the meter.
	MeterVersion string
	// MeterProvider overrides the global meter provider.
	MeterProvider metric.MeterProvider
	// TracerProvider overrides the global tracer provider.
	TracerProvider trace.TracerProvider
}

// DefaultMetricsConfig returns a default metrics configuration.
func DefaultMetricsConfig() MetricsConfig {
	return MetricsConfig{
		MeterName:    instrumentationName,
		MeterVersion: "1.0.0",
	}
}

// NewMetricsProvider creates a new metrics provider.
func NewMetricsProvider(config MetricsConfig) *MetricsProvider {
	if config.MeterName == "" {
		config.MeterName = instrumentationName
	}
	meters := config.MeterProvider
	if meters == nil {
		meters = otel.GetMeterProvider()
	}
	tracers := config.TracerProvider
	if tracers == nil {
		tracers = otel.GetTracerProvider()
	}

	mp := &MetricsProvider{
		meter:  meters.Meter(config.MeterName, metric.WithInstrumentationVersion(config.MeterVersion)),
		tracer: tracers.Tracer(config.MeterName, trace.WithInstrumentationVersion(config.MeterVersion)),
	}

	mp.initOnce.Do(func() {
		mp.initErr = mp.initInstruments()
	})

	return mp
}

// initInstruments initializes all metric instruments.
func (mp *MetricsProvider) initInstruments() error {
	var err error

	mp.trials, err = mp.meter.Int64Counter(
		"biscuits.trials",
		metric.WithDescription("Number of simulated games"),
		metric.WithUnit("{game}"),
	)
	if err != nil {
		return err
	}

	mp.gravies, err = mp.meter.Int64Counter(
		"biscuits.gravies",
		metric.WithDescription("Number of games that reached the ceiling"),
		metric.WithUnit("{game}"),
	)
	if err != nil {
		return err
	}

	mp.busts, err = mp.meter.Int64Counter(
		"biscuits.busts",
		metric.WithDescription("Number of games that ended on a bust"),
		metric.WithUnit("{game}"),
	)
	if err != nil {
		return err
	}

	mp.suspect, err = mp.meter.Int64Counter(
		"biscuits.suspect",
		metric.WithDescription("Number of games stopped after a strategy contract violation"),
		metric.WithUnit("{game}"),
	)
	if err != nil {
		return err
	}

	mp.errors, err = mp.meter.Int64Counter(
		"biscuits.errors",
		metric.WithDescription("Number of failed batches"),
		metric.WithUnit("{error}"),
	)
	if err != nil {
		return err
	}

	mp.batchDuration, err = mp.meter.Float64Histogram(
		"biscuits.batch.duration",
		metric.WithDescription("Wall time of a strategy batch"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return err
	}

	mp.activeBatches, err = mp.meter.Int64UpDownCounter(
		"biscuits.batches.active",
		metric.WithDescription("Number of batches in flight"),
		metric.WithUnit("{batch}"),
	)
	return err
}

// Error returns any initialization error.
func (mp *MetricsProvider) Error() error {
	return mp.initErr
}

// StartBatch opens a span for one strategy batch. The returned func ends it.
func (mp *MetricsProvider) StartBatch(ctx context.Context, rules, strategy string, trials int) (context.Context, func(error)) {
	ctx, span := mp.tracer.Start(ctx, "simulation.batch", trace.WithAttributes(
		attribute.String("rules.name", rules),
		attribute.String("strategy.name", strategy),
		attribute.Int("trials", trials),
	))
	mp.activeBatches.Add(ctx, 1)

	return ctx, func(err error) {
		mp.activeBatches.Add(ctx, -1)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		} else {
			span.SetStatus(codes.Ok, "")
		}
		span.End()
	}
}

// RecordBatch records the totals of a finished batch.
func (mp *MetricsProvider) RecordBatch(ctx context.Context, b Batch) {
	attrs := metric.WithAttributes(b.attributes()...)

	mp.trials.Add(ctx, b.Trials, attrs)
	mp.gravies.Add(ctx, b.Gravies, attrs)
	mp.busts.Add(ctx, b.Busts, attrs)
	mp.suspect.Add(ctx, b.Suspect, attrs)
	mp.batchDuration.Record(ctx, float64(b.Duration.Milliseconds()), attrs)
}

// RecordError records a failed batch or run.
func (mp *MetricsProvider) RecordError(ctx context.Context, errorType string) {
	mp.errors.Add(ctx, 1, metric.WithAttributes(attribute.String("error.type", errorType)))
}

// NoopMetricsProvider is a no-op metrics provider for testing or when metrics are disabled.
type NoopMetricsProvider struct{}

// StartBatch is a no-op.
func (NoopMetricsProvider) StartBatch(ctx context.Context, rules, strategy string, trials int) (context.Context, func(error)) {
	return ctx, func(error) {}
}

// RecordBatch is a no-op.
func (NoopMetricsProvider) RecordBatch(ctx context.Context, b Batch) {}

// RecordError is a no-op.
func (NoopMetricsProvider) RecordError(ctx context.Context, errorType string) {}

// Metrics defines the interface for metrics recording.
type Metrics interface {
	StartBatch(ctx context.Context, rules, strategy string, trials int) (context.Context, func(error))
	RecordBatch(ctx context.Context, b Batch)
	RecordError(ctx context.Context, errorType string)
}

// Ensure implementations satisfy the interface.
var (
	_ Metrics = (*MetricsProvider)(nil)
	_ Metrics = NoopMetricsProvider{}
)
