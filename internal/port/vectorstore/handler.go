// Package vectorstore defines the vector-store configuration handler port.
package vectorstore

import (
	"context"
	"encoding/json"
	"fmt"

	vs "github.com/javakishore-veleti/eventsgrasp/internal/domain/vectorstore"
)

// Handler validates and serializes configuration for one vector-store provider.
type Handler interface {
	// ProviderType returns the provider identifier this handler is bound to.
	ProviderType() string

	// ValidateConfig applies provider-specific business rules. It returns a
	// *domain.ValidationError describing the first violation, or nil.
	ValidateConfig(config map[string]any) error

	// ConfigSchema returns the form schema for the provider.
	ConfigSchema() vs.ConfigSchema

	// ToStorage converts UI configuration to its persisted JSON form.
	ToStorage(config map[string]any) (string, error)

	// FromStorage parses persisted JSON. Invalid input yields an empty map.
	FromStorage(raw string) map[string]any

	// TestConnection attempts a lightweight round trip. It never returns an error;
	// failures are reported through the result.
	TestConnection(ctx context.Context, config map[string]any) vs.ConnectionResult
}

// NotImplementedMessage is reported by handlers without a connection test.
const NotImplementedMessage = "Connection test not implemented for this provider"

// Base supplies default serialization and connection-test behavior.
// Embed it and set Type.
type Base struct {
	Type string
}

// ProviderType returns the bound provider identifier.
func (b Base) ProviderType() string { return b.Type }

// ToStorage encodes config merged over {"provider_type": Type}.
func (b Base) ToStorage(config map[string]any) (string, error) {
	return MergeStorage(b.Type, config)
}

// FromStorage decodes raw JSON, returning an empty map on empty or invalid input.
func (b Base) FromStorage(raw string) map[string]any {
	out := map[string]any{}
	if raw == "" {
		return out
	}
	if err := json.Unmarshal([]byte(raw), &out); err != nil || out == nil {
		return map[string]any{}
	}
	return out
}

// TestConnection reports success without contacting the provider.
func (b Base) TestConnection(context.Context, map[string]any) vs.ConnectionResult {
	return vs.ConnectionResult{OK: true, Message: NotImplementedMessage}
}

// MergeStorage encodes config with a provider_type key. Keys in config take precedence.
func MergeStorage(providerType string, config map[string]any) (string, error) {
	merged := make(map[string]any, len(config)+1)
	merged["provider_type"] = providerType
	for k, v := range config {
		merged[k] = v
	}
	b, err := json.Marshal(merged)
	if err != nil {
		return "", fmt.Errorf("encode %s config: %w", providerType, err)
	}
	return string(b), nil
}
