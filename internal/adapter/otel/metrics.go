package otel

import (
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
)

const meterName = "eventsgrasp"

// Metrics holds all eventsgrasp metric instruments.
type Metrics struct {
	CacheHits          metric.Int64Counter
	CacheMisses        metric.Int64Counter
	CacheFallbacks     metric.Int64Counter
	ValidationFailures metric.Int64Counter
	AuthRejections     metric.Int64Counter
	ConnectionTests    metric.Int64Counter
	ConnectionDuration metric.Float64Histogram
}

// NewMetrics creates all metric instruments on the global meter provider.
func NewMetrics() (*Metrics, error) {
	meter := otel.Meter(meterName)
	m := &Metrics{}
	var err error

	m.CacheHits, err = meter.Int64Counter("eventsgrasp.customer_cache.hits",
		metric.WithDescription("Customer validity lookups answered from cache"))
	if err != nil {
		return nil, err
	}

	m.CacheMisses, err = meter.Int64Counter("eventsgrasp.customer_cache.misses",
		metric.WithDescription("Customer validity lookups that missed the cache"))
	if err != nil {
		return nil, err
	}

	m.CacheFallbacks, err = meter.Int64Counter("eventsgrasp.customer_cache.fallbacks",
		metric.WithDescription("Remote cache operations served by the local cache"))
	if err != nil {
		return nil, err
	}

	m.ValidationFailures, err = meter.Int64Counter("eventsgrasp.config.validation_failures",
		metric.WithDescription("Rejected provider configurations"))
	if err != nil {
		return nil, err
	}

	m.AuthRejections, err = meter.Int64Counter("eventsgrasp.auth.rejections",
		metric.WithDescription("Requests rejected by customer authentication"))
	if err != nil {
		return nil, err
	}

	m.ConnectionTests, err = meter.Int64Counter("eventsgrasp.vectorstore.connection_tests",
		metric.WithDescription("Vector store connection tests"))
	if err != nil {
		return nil, err
	}

	m.ConnectionDuration, err = meter.Float64Histogram("eventsgrasp.vectorstore.connection_test.duration_seconds",
		metric.WithDescription("Vector store connection test duration in seconds"))
	if err != nil {
		return nil, err
	}

	return m, nil
}
