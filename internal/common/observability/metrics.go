// internal/common/observability/metrics.go
package observability

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/prometheus"
	otelmetric "go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/sdk/metric"
)

// Observability owns the OpenTelemetry meter used for request level
// instrumentation. A zero value is usable and records nothing.
type Observability struct {
	meterProvider *metric.MeterProvider
	requests      otelmetric.Int64Counter
	duration      otelmetric.Float64Histogram
}

// New registers an OTel meter provider that exports through the default
// Prometheus registry. Exporter failures degrade to a no-op instance.
func New(serviceName string) (*Observability, error) {
	exporter, err := prometheus.New()
	if err != nil {
		return &Observability{}, err
	}

	provider := metric.NewMeterProvider(metric.WithReader(exporter))
	otel.SetMeterProvider(provider)

	return newWithProvider(provider, serviceName)
}

func newWithProvider(provider *metric.MeterProvider, serviceName string) (*Observability, error) {
	meter := provider.Meter(serviceName)

	requests, err := meter.Int64Counter(
		"career.requests",
		otelmetric.WithDescription("Recommendation requests by channel, source and outcome"),
	)
	if err != nil {
		return &Observability{}, err
	}

	duration, err := meter.Float64Histogram(
		"career.request.duration",
		otelmetric.WithDescription("Recommendation request duration"),
		otelmetric.WithUnit("ms"),
	)
	if err != nil {
		return &Observability{}, err
	}

	return &Observability{
		meterProvider: provider,
		requests:      requests,
		duration:      duration,
	}, nil
}

// RecordRequest records one finished recommendation request.
func (o *Observability) RecordRequest(ctx context.Context, channel, source, status string, elapsed time.Duration) {
	if o == nil || o.requests == nil {
		return
	}
	attrs := otelmetric.WithAttributes(
		attribute.String("channel", channel),
		attribute.String("source", source),
		attribute.String("status", status),
	)
	o.requests.Add(ctx, 1, attrs)
	o.duration.Record(ctx, float64(elapsed.Microseconds())/1000, attrs)
}

func (o *Observability) Shutdown(ctx context.Context) error {
	if o == nil || o.meterProvider == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	return o.meterProvider.Shutdown(ctx)
}
