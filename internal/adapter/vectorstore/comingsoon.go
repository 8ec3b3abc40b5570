package vectorstore

import (
	"context"
	"fmt"

	"github.com/javakishore-veleti/eventsgrasp/internal/domain"
	"github.com/javakishore-veleti/eventsgrasp/internal/domain/schema"
	vs "github.com/javakishore-veleti/eventsgrasp/internal/domain/vectorstore"
	port "github.com/javakishore-veleti/eventsgrasp/internal/port/vectorstore"
)

// ComingSoon is bound to any provider without a dedicated handler.
// It rejects every configuration.
type ComingSoon struct {
	port.Base
}

// NewComingSoon binds the handler to providerType, which may be unknown.
func NewComingSoon(providerType string) *ComingSoon {
	return &ComingSoon{Base: port.Base{Type: providerType}}
}

func (h *ComingSoon) ValidateConfig(map[string]any) error {
	return domain.Validationf("Provider '%s' is coming soon and not yet available for configuration", h.Type)
}

func (h *ComingSoon) ConfigSchema() vs.ConfigSchema {
	name := h.Type
	if p, ok := vs.Lookup(h.Type); ok {
		name = p.Name
	}
	return vs.ConfigSchema{
		Schema:       schema.Empty(),
		ComingSoon:   true,
		ProviderName: name,
		Message:      fmt.Sprintf("%s integration is coming soon! We're working hard to bring you this feature.", name),
	}
}

func (h *ComingSoon) TestConnection(context.Context, map[string]any) vs.ConnectionResult {
	return failed("This provider is not yet available")
}
