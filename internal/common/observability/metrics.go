// internal/common/observability/metrics.go
package observability

import (
	"context"
	"log"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/prometheus"
	otelmetric "go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/sdk/metric"
)

type Observability struct {
	meterProvider   *metric.MeterProvider
	meter           otelmetric.Meter
	composeCounter  otelmetric.Int64Counter
	composeDuration otelmetric.Float64Histogram
}

func New(serviceName string) *Observability {
	exporter, err := prometheus.New()
	if err != nil {
		log.Printf("Failed to create Prometheus exporter: %v", err)
		return &Observability{}
	}

	provider := metric.NewMeterProvider(metric.WithReader(exporter))
	otel.SetMeterProvider(provider)

	meter := provider.Meter(serviceName)

	composeCounter, _ := meter.Int64Counter(
		"deck.compositions",
		otelmetric.WithDescription("Number of deck compositions"),
	)

	composeDuration, _ := meter.Float64Histogram(
		"deck.compose.duration",
		otelmetric.WithDescription("Deck composition duration"),
		otelmetric.WithUnit("ms"),
	)

	return &Observability{
		meterProvider:   provider,
		meter:           meter,
		composeCounter:  composeCounter,
		composeDuration: composeDuration,
	}
}

func (o *Observability) RecordComposition(ctx context.Context, deckContext string) {
	if o.composeCounter != nil {
		o.composeCounter.Add(ctx, 1, otelmetric.WithAttributes(
			attribute.String("context", deckContext),
		))
	}
}

func (o *Observability) RecordComposeDuration(ctx context.Context, duration time.Duration, deckContext string) {
	if o.composeDuration != nil {
		o.composeDuration.Record(ctx, float64(duration.Milliseconds()), otelmetric.WithAttributes(
			attribute.String("context", deckContext),
		))
	}
}

func (o *Observability) Shutdown() {
	if o.meterProvider != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		o.meterProvider.Shutdown(ctx)
	}
}
