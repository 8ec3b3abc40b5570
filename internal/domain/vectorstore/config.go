package vectorstore

import "github.com/javakishore-veleti/eventsgrasp/internal/domain/schema"

// Config is the storage-ready result of creating a vector-store configuration.
// It is not persisted by this package.
type Config struct {
	ProviderType string `json:"provider_type"`
	DisplayName  string `json:"display_name"`
	ConfigJSON   string `json:"config_json"`
}

// ConnectionResult is the outcome of a connection test.
type ConnectionResult struct {
	OK      bool   `json:"success"`
	Message string `json:"message"`
}

// ConfigSchema is a handler's form schema, optionally decorated with provider metadata.
type ConfigSchema struct {
	schema.Schema

	ComingSoon bool   `json:"coming_soon,omitempty"`
	Message    string `json:"message,omitempty"`

	ProviderType        string `json:"provider_type,omitempty"`
	ProviderName        string `json:"provider_name,omitempty"`
	ProviderDescription string `json:"provider_description,omitempty"`
	ProviderStatus      Status `json:"provider_status,omitempty"`
	ProviderCategory    string `json:"provider_category,omitempty"`
}
