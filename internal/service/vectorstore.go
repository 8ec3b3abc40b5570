package service

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	egotel "github.com/javakishore-veleti/eventsgrasp/internal/adapter/otel"
	"github.com/javakishore-veleti/eventsgrasp/internal/domain"
	vs "github.com/javakishore-veleti/eventsgrasp/internal/domain/vectorstore"
	port "github.com/javakishore-veleti/eventsgrasp/internal/port/vectorstore"
)

// InvalidConfigurationPrefix starts the message of a connection test that
// failed validation.
const InvalidConfigurationPrefix = "Invalid configuration: "

// VectorStoreService is the single entry point for vector-store configuration:
// availability checks, validation, connection tests, serialization and schemas.
type VectorStoreService struct {
	registry *port.Registry
	logger   *slog.Logger
	metrics  *egotel.Metrics

	mu       sync.Mutex
	handlers map[string]port.Handler
}

// NewVectorStoreService creates a facade over registry.
func NewVectorStoreService(registry *port.Registry, logger *slog.Logger) *VectorStoreService {
	if logger == nil {
		logger = slog.Default()
	}
	return &VectorStoreService{
		registry: registry,
		logger:   logger,
		handlers: make(map[string]port.Handler),
	}
}

// SetMetrics enables metric recording.
func (s *VectorStoreService) SetMetrics(m *egotel.Metrics) { s.metrics = m }

// Handler returns the memoized handler for providerType. Unregistered
// types get a fallback bound to the given string, also memoized.
func (s *VectorStoreService) Handler(providerType string) port.Handler {
	s.mu.Lock()
	defer s.mu.Unlock()

	if h, ok := s.handlers[providerType]; ok {
		return h
	}
	h, _ := s.registry.New(providerType)
	s.handlers[providerType] = h
	return h
}

// Providers lists every vector-store provider in display order.
func (s *VectorStoreService) Providers() []vs.Provider {
	return vs.Providers()
}

// ProviderCategories groups providers by category.
func (s *VectorStoreService) ProviderCategories() map[string][]vs.Provider {
	return vs.Categories()
}

// ValidateConfig checks availability, then the provider rules.
func (s *VectorStoreService) ValidateConfig(ctx context.Context, providerType string, config map[string]any) error {
	if !vs.IsAvailable(providerType) {
		return &domain.UnavailableError{Provider: providerType}
	}
	if err := s.Handler(providerType).ValidateConfig(config); err != nil {
		s.recordValidationFailure(ctx, providerType)
		return err
	}
	return nil
}

// TestConnection validates config before probing the provider. Failures are
// reported in the result, never as errors.
func (s *VectorStoreService) TestConnection(ctx context.Context, providerType string, config map[string]any) vs.ConnectionResult {
	if !vs.IsAvailable(providerType) {
		return vs.ConnectionResult{Message: (&domain.UnavailableError{Provider: providerType}).Error()}
	}
	if err := s.ValidateConfig(ctx, providerType, config); err != nil {
		return vs.ConnectionResult{Message: InvalidConfigurationPrefix + domain.Reason(err)}
	}

	ctx, span := egotel.StartConnectionTestSpan(ctx, providerType)
	defer span.End()

	start := time.Now()
	res := s.Handler(providerType).TestConnection(ctx, config)
	if s.metrics != nil {
		attrs := metric.WithAttributes(
			attribute.String("provider", providerType),
			attribute.Bool("success", res.OK),
		)
		s.metrics.ConnectionTests.Add(ctx, 1, attrs)
		s.metrics.ConnectionDuration.Record(ctx, time.Since(start).Seconds(), attrs)
	}
	if !res.OK {
		s.logger.Info("vector store connection test failed", "provider", providerType, "message", res.Message)
	}
	return res
}

// CreateVectorStoreConfig validates config and returns its storage form.
// Nothing is returned unless every step succeeds.
func (s *VectorStoreService) CreateVectorStoreConfig(ctx context.Context, providerType, displayName string, config map[string]any) (*vs.Config, error) {
	if err := s.ValidateConfig(ctx, providerType, config); err != nil {
		return nil, err
	}
	raw, err := s.Handler(providerType).ToStorage(config)
	if err != nil {
		s.logger.Error("serialize vector store config", "provider", providerType, "error", err)
		return nil, domain.ErrBackend
	}
	return &vs.Config{ProviderType: providerType, DisplayName: displayName, ConfigJSON: raw}, nil
}

// ConfigSchema returns the handler schema decorated with provider metadata.
func (s *VectorStoreService) ConfigSchema(providerType string) vs.ConfigSchema {
	out := s.Handler(providerType).ConfigSchema()
	out.ProviderType = providerType
	out.ProviderStatus = vs.StatusOf(providerType)
	if p, ok := vs.Lookup(providerType); ok {
		out.ProviderName = p.Name
		out.ProviderDescription = p.Description
		out.ProviderCategory = p.Category
	} else if out.ProviderName == "" {
		out.ProviderName = providerType
	}
	return out
}

// ToStorage serializes config with the provider's handler.
func (s *VectorStoreService) ToStorage(providerType string, config map[string]any) (string, error) {
	return s.Handler(providerType).ToStorage(config)
}

// FromStorage parses a stored config. Invalid JSON yields an empty map.
func (s *VectorStoreService) FromStorage(providerType, raw string) map[string]any {
	return s.Handler(providerType).FromStorage(raw)
}

func (s *VectorStoreService) recordValidationFailure(ctx context.Context, providerType string) {
	if s.metrics == nil {
		return
	}
	s.metrics.ValidationFailures.Add(ctx, 1, metric.WithAttributes(
		attribute.String("kind", "vectorstore"),
		attribute.String("provider", providerType),
	))
}
