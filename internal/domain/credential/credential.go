// Package credential defines the credential provider registry, the
// per-provider configuration schemas and the stored Credential entity.
package credential

import (
	"time"

	"github.com/javakishore-veleti/eventsgrasp/internal/domain/schema"
)

// MaskPlaceholder replaces sensitive values in displayed configuration.
const MaskPlaceholder = "********"

// Credential is a customer-owned set of provider credentials.
type Credential struct {
	ID           int64          `json:"credential_id"`
	CustomerID   int64          `json:"customer_id"`
	Name         string         `json:"credential_name"`
	ProviderType string         `json:"provider_type"`
	ProviderName string         `json:"provider_name"`
	ProviderIcon string         `json:"provider_icon,omitempty"`
	AuthType     string         `json:"auth_type"`
	Config       map[string]any `json:"config,omitempty"`
	Description  string         `json:"description"`
	IsActive     bool           `json:"is_active"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
}

// CreateRequest holds the fields for creating a credential.
type CreateRequest struct {
	Name         string         `json:"credential_name"`
	ProviderType string         `json:"provider_type"`
	AuthType     string         `json:"auth_type"`
	Config       map[string]any `json:"config"`
	Description  string         `json:"description"`
}

// UpdateRequest holds the optional fields of a partial update. Nil fields are left unchanged.
type UpdateRequest struct {
	Name        *string        `json:"credential_name,omitempty"`
	Description *string        `json:"description,omitempty"`
	Config      map[string]any `json:"config,omitempty"`
	IsActive    *bool          `json:"is_active,omitempty"`
}

// Empty reports whether the request changes nothing.
func (r *UpdateRequest) Empty() bool {
	return (r.Name == nil || *r.Name == "") && r.Description == nil && len(r.Config) == 0 && r.IsActive == nil
}

// Mask returns a copy of config where every non-empty value of a password or
// textarea field in s is replaced by MaskPlaceholder. Masking is idempotent.
func Mask(config map[string]any, s schema.Schema) map[string]any {
	sensitive := make(map[string]bool)
	for _, name := range s.Sensitive() {
		sensitive[name] = true
	}

	out := make(map[string]any, len(config))
	for k, v := range config {
		if sensitive[k] && schema.Truthy(v) {
			out[k] = MaskPlaceholder
			continue
		}
		out[k] = v
	}
	return out
}

// compatible maps a vector-store provider to the credential providers it accepts.
var compatible = map[string][]ProviderType{
	"aws_opensearch":      {ProviderAWS},
	"aws_aurora_pgvector": {ProviderAWS, ProviderPgVector},
	"mongodb_atlas":       {ProviderMongoDB},
	"neo4j":               {ProviderNeo4j},
	"elasticsearch":       {ProviderElasticsearch, ProviderAWS},
	"redis":               {ProviderRedis, ProviderAWS},
	"pgvector":            {ProviderPgVector},
	"pinecone":            {ProviderPinecone},
	"openai":              {ProviderOpenAI},
}

// CompatibleProviders returns the credential providers usable with the given
// vector-store provider. Unmapped providers accept a credential of the same name.
func CompatibleProviders(vectorStoreProvider string) []ProviderType {
	if ps, ok := compatible[vectorStoreProvider]; ok {
		return append([]ProviderType{}, ps...)
	}
	return []ProviderType{ProviderType(vectorStoreProvider)}
}
