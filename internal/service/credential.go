package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	egotel "github.com/javakishore-veleti/eventsgrasp/internal/adapter/otel"
	"github.com/javakishore-veleti/eventsgrasp/internal/domain"
	"github.com/javakishore-veleti/eventsgrasp/internal/domain/credential"
	"github.com/javakishore-veleti/eventsgrasp/internal/port/database"
)

// CredentialService manages customer-owned provider credentials.
// Every operation is scoped to a customer; another customer's rows are
// reported as not found.
type CredentialService struct {
	store   database.CredentialStore
	logger  *slog.Logger
	metrics *egotel.Metrics
}

// NewCredentialService creates a CredentialService.
func NewCredentialService(store database.CredentialStore, logger *slog.Logger) *CredentialService {
	if logger == nil {
		logger = slog.Default()
	}
	return &CredentialService{store: store, logger: logger}
}

// SetMetrics enables metric recording.
func (s *CredentialService) SetMetrics(m *egotel.Metrics) { s.metrics = m }

// List returns active credentials newest first, optionally for one provider.
// Configs are not included.
func (s *CredentialService) List(ctx context.Context, customerID int64, providerType string) ([]credential.Credential, error) {
	creds, err := s.store.ListCredentials(ctx, customerID, providerType)
	if err != nil {
		return nil, s.backend(ctx, "list credentials", err, "customer_id", customerID)
	}
	for i := range creds {
		decorate(&creds[i])
	}
	if creds == nil {
		creds = []credential.Credential{}
	}
	return creds, nil
}

// Get returns a credential with its sensitive values masked.
func (s *CredentialService) Get(ctx context.Context, customerID, id int64) (*credential.Credential, error) {
	c, err := s.store.GetCredential(ctx, customerID, id)
	if err != nil {
		return nil, s.storeErr(ctx, "get credential", err, id)
	}
	decorate(c)
	c.Config = credential.Mask(c.Config, credential.SchemaFor(c.ProviderType, c.AuthType))
	if c.Config == nil {
		c.Config = map[string]any{}
	}
	return c, nil
}

// Create validates req and stores a new credential. The returned credential
// carries the new ID and a masked config.
func (s *CredentialService) Create(ctx context.Context, customerID int64, req credential.CreateRequest) (*credential.Credential, error) {
	if !credential.IsAvailable(req.ProviderType) {
		return nil, &domain.UnavailableError{Provider: req.ProviderType}
	}
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, s.invalid(ctx, req.ProviderType, domain.Validationf("Credential name is required"))
	}
	if !credential.HasAuthType(req.ProviderType, req.AuthType) {
		return nil, s.invalid(ctx, req.ProviderType,
			domain.Validationf("Invalid auth type '%s' for provider '%s'", req.AuthType, req.ProviderType))
	}

	config := req.Config
	if config == nil {
		config = map[string]any{}
	}
	sch := credential.SchemaFor(req.ProviderType, req.AuthType)
	if err := sch.Validate(config); err != nil {
		if errors.Is(err, domain.ErrValidation) {
			return nil, s.invalid(ctx, req.ProviderType, err)
		}
		return nil, s.backend(ctx, "validate credential config", err, "provider", req.ProviderType)
	}

	c := &credential.Credential{
		CustomerID:   customerID,
		Name:         name,
		ProviderType: req.ProviderType,
		AuthType:     req.AuthType,
		Config:       config,
		Description:  req.Description,
		IsActive:     true,
	}
	if err := s.store.CreateCredential(ctx, c); err != nil {
		if errors.Is(err, domain.ErrConflict) {
			return nil, err
		}
		return nil, s.backend(ctx, "create credential", err, "customer_id", customerID)
	}

	s.logger.InfoContext(ctx, "credential created", "credential_id", c.ID, "customer_id", customerID, "provider", c.ProviderType)
	decorate(c)
	c.Config = credential.Mask(c.Config, sch)
	return c, nil
}

// Update applies the supplied fields. Sensitive values submitted as the mask
// placeholder keep their stored value, and a new config is validated against
// the credential's schema.
func (s *CredentialService) Update(ctx context.Context, customerID, id int64, req credential.UpdateRequest) (*credential.Credential, error) {
	if req.Name != nil {
		trimmed := strings.TrimSpace(*req.Name)
		if trimmed == "" {
			req.Name = nil
		} else {
			req.Name = &trimmed
		}
	}
	// Checked after trimming: a blank name alone is no change.
	if req.Empty() {
		return nil, domain.Validationf("No fields to update")
	}

	if len(req.Config) > 0 {
		current, err := s.store.GetCredential(ctx, customerID, id)
		if err != nil {
			return nil, s.storeErr(ctx, "get credential", err, id)
		}
		sch := credential.SchemaFor(current.ProviderType, current.AuthType)
		req.Config = unmask(req.Config, current.Config, sch.Sensitive())
		if err := sch.Validate(req.Config); err != nil {
			if errors.Is(err, domain.ErrValidation) {
				return nil, s.invalid(ctx, current.ProviderType, err)
			}
			return nil, s.backend(ctx, "validate credential config", err, "credential_id", id)
		}
	}

	if err := s.store.UpdateCredential(ctx, customerID, id, req); err != nil {
		if errors.Is(err, domain.ErrConflict) {
			return nil, err
		}
		return nil, s.storeErr(ctx, "update credential", err, id)
	}
	return s.Get(ctx, customerID, id)
}

// Delete soft-deletes a credential. Deleting an inactive credential succeeds.
func (s *CredentialService) Delete(ctx context.Context, customerID, id int64) error {
	if err := s.store.DeactivateCredential(ctx, customerID, id); err != nil {
		return s.storeErr(ctx, "delete credential", err, id)
	}
	s.logger.InfoContext(ctx, "credential deactivated", "credential_id", id, "customer_id", customerID)
	return nil
}

// ForVectorStoreProvider lists active credentials usable with a vector-store provider.
func (s *CredentialService) ForVectorStoreProvider(ctx context.Context, customerID int64, vectorStoreProvider string) ([]credential.Credential, error) {
	all, err := s.List(ctx, customerID, "")
	if err != nil {
		return nil, err
	}

	accepted := make(map[string]bool)
	for _, p := range credential.CompatibleProviders(vectorStoreProvider) {
		accepted[string(p)] = true
	}
	out := []credential.Credential{}
	for _, c := range all {
		if accepted[c.ProviderType] {
			out = append(out, c)
		}
	}
	return out, nil
}

// storeErr passes not-found through and hides every other store fault.
func (s *CredentialService) storeErr(ctx context.Context, op string, err error, id int64) error {
	if errors.Is(err, domain.ErrNotFound) {
		return fmt.Errorf("%s %d: %w", op, id, domain.ErrNotFound)
	}
	return s.backend(ctx, op, err, "credential_id", id)
}

// backend logs err with detail and returns a sanitized error.
func (s *CredentialService) backend(ctx context.Context, op string, err error, args ...any) error {
	s.logger.ErrorContext(ctx, op+" failed", append(args, "error", err)...)
	return fmt.Errorf("%s: %w", op, domain.ErrBackend)
}

func (s *CredentialService) invalid(ctx context.Context, providerType string, err error) error {
	if s.metrics != nil {
		s.metrics.ValidationFailures.Add(ctx, 1, metric.WithAttributes(
			attribute.String("kind", "credential"),
			attribute.String("provider", providerType),
		))
	}
	return err
}

// decorate fills display metadata from the provider registry.
func decorate(c *credential.Credential) {
	c.ProviderName = credential.DisplayName(c.ProviderType)
	c.ProviderIcon = credential.Icon(c.ProviderType)
}

// unmask restores stored values for sensitive keys submitted as the placeholder.
func unmask(submitted, stored map[string]any, sensitive []string) map[string]any {
	out := make(map[string]any, len(submitted))
	for k, v := range submitted {
		out[k] = v
	}
	for _, name := range sensitive {
		if out[name] == credential.MaskPlaceholder {
			if prev, ok := stored[name]; ok {
				out[name] = prev
			}
		}
	}
	return out
}
