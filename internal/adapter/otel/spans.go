package otel

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "eventsgrasp"

// StartConnectionTestSpan starts a span for a vector store connection test.
func StartConnectionTestSpan(ctx context.Context, providerType string) (context.Context, trace.Span) {
	return otel.Tracer(tracerName).Start(ctx, "vectorstore.test_connection",
		trace.WithAttributes(attribute.String("vectorstore.provider", providerType)),
	)
}

// StartCustomerLookupSpan starts a span for a customer database lookup on cache miss.
func StartCustomerLookupSpan(ctx context.Context, customerID int64) (context.Context, trace.Span) {
	return otel.Tracer(tracerName).Start(ctx, "customer.lookup",
		trace.WithAttributes(attribute.Int64("customer.id", customerID)),
	)
}
