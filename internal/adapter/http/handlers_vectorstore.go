package http

import (
	"net/http"
)

type vectorStoreConfigRequest struct {
	ProviderType string         `json:"provider_type"`
	DisplayName  string         `json:"display_name"`
	Config       map[string]any `json:"config"`
}

type configBody struct {
	Config map[string]any `json:"config"`
}

// ListVectorStoreProviders handles GET /api/vector-stores/providers.
func (h *Handlers) ListVectorStoreProviders(w http.ResponseWriter, _ *http.Request) {
	writeOK(w, http.StatusOK, "", h.VectorStores.Providers())
}

// ListVectorStoreCategories handles GET /api/vector-stores/providers/categories.
func (h *Handlers) ListVectorStoreCategories(w http.ResponseWriter, _ *http.Request) {
	writeOK(w, http.StatusOK, "", h.VectorStores.ProviderCategories())
}

// GetVectorStoreSchema handles GET /api/vector-stores/providers/{provider}/schema.
// Unknown providers get the coming-soon schema rather than a 404.
func (h *Handlers) GetVectorStoreSchema(w http.ResponseWriter, r *http.Request) {
	writeOK(w, http.StatusOK, "", h.VectorStores.ConfigSchema(urlParam(r, "provider")))
}

// ValidateVectorStoreConfig handles POST /api/vector-stores/providers/{provider}/validate.
func (h *Handlers) ValidateVectorStoreConfig(w http.ResponseWriter, r *http.Request) {
	body, ok := readJSON[configBody](w, r)
	if !ok {
		return
	}
	if err := h.VectorStores.ValidateConfig(r.Context(), urlParam(r, "provider"), body.Config); err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeOK(w, http.StatusOK, "Configuration is valid", nil)
}

// TestVectorStoreConnection handles POST /api/vector-stores/providers/{provider}/test-connection.
// The outcome is always reported in the body with a 200.
func (h *Handlers) TestVectorStoreConnection(w http.ResponseWriter, r *http.Request) {
	body, ok := readJSON[configBody](w, r)
	if !ok {
		return
	}
	res := h.VectorStores.TestConnection(r.Context(), urlParam(r, "provider"), body.Config)
	writeJSON(w, http.StatusOK, envelope{Success: res.OK, Message: res.Message})
}

// CreateVectorStoreConfig handles POST /api/vector-stores/configs.
func (h *Handlers) CreateVectorStoreConfig(w http.ResponseWriter, r *http.Request) {
	req, ok := readJSON[vectorStoreConfigRequest](w, r)
	if !ok {
		return
	}
	cfg, err := h.VectorStores.CreateVectorStoreConfig(r.Context(), req.ProviderType, req.DisplayName, req.Config)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeOK(w, http.StatusCreated, "Vector store configuration created", cfg)
}
