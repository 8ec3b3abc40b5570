package http

import (
	"net/http"

	"github.com/javakishore-veleti/eventsgrasp/internal/domain/credential"
	"github.com/javakishore-veleti/eventsgrasp/internal/middleware"
)

// currentCustomer returns the authenticated customer id, writing a 401 when
// the route was mounted without the auth middleware.
func currentCustomer(w http.ResponseWriter, r *http.Request) (int64, bool) {
	c := middleware.CustomerFromContext(r.Context())
	if c == nil {
		writeError(w, http.StatusUnauthorized, msgAuthRequired)
		return 0, false
	}
	return c.ID, true
}

// ListCredentialProviders handles GET /api/credentials/providers.
func (h *Handlers) ListCredentialProviders(w http.ResponseWriter, _ *http.Request) {
	writeOK(w, http.StatusOK, "", credential.Providers())
}

// ListAuthTypes handles GET /api/credentials/providers/{provider}/auth-types.
// Unknown providers answer an empty list.
func (h *Handlers) ListAuthTypes(w http.ResponseWriter, r *http.Request) {
	writeOK(w, http.StatusOK, "", credential.AuthTypes(urlParam(r, "provider")))
}

// GetCredentialSchema handles GET /api/credentials/providers/{provider}/schema/{auth}.
func (h *Handlers) GetCredentialSchema(w http.ResponseWriter, r *http.Request) {
	writeOK(w, http.StatusOK, "", credential.SchemaFor(urlParam(r, "provider"), urlParam(r, "auth")))
}

// ListCredentials handles GET /api/credentials?provider_type=.
func (h *Handlers) ListCredentials(w http.ResponseWriter, r *http.Request) {
	customerID, ok := currentCustomer(w, r)
	if !ok {
		return
	}
	list, err := h.Credentials.List(r.Context(), customerID, r.URL.Query().Get("provider_type"))
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeOK(w, http.StatusOK, "", list)
}

// GetCredential handles GET /api/credentials/{id}.
func (h *Handlers) GetCredential(w http.ResponseWriter, r *http.Request) {
	customerID, ok := currentCustomer(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	c, err := h.Credentials.Get(r.Context(), customerID, id)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeOK(w, http.StatusOK, "", c)
}

// CreateCredential handles POST /api/credentials.
func (h *Handlers) CreateCredential(w http.ResponseWriter, r *http.Request) {
	customerID, ok := currentCustomer(w, r)
	if !ok {
		return
	}
	req, ok := readJSON[credential.CreateRequest](w, r)
	if !ok {
		return
	}
	c, err := h.Credentials.Create(r.Context(), customerID, req)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeOK(w, http.StatusCreated, "Credential created successfully", c)
}

// UpdateCredential handles PUT /api/credentials/{id}.
func (h *Handlers) UpdateCredential(w http.ResponseWriter, r *http.Request) {
	customerID, ok := currentCustomer(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	req, ok := readJSON[credential.UpdateRequest](w, r)
	if !ok {
		return
	}
	c, err := h.Credentials.Update(r.Context(), customerID, id, req)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeOK(w, http.StatusOK, "Credential updated successfully", c)
}

// DeleteCredential handles DELETE /api/credentials/{id}.
func (h *Handlers) DeleteCredential(w http.ResponseWriter, r *http.Request) {
	customerID, ok := currentCustomer(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	if err := h.Credentials.Delete(r.Context(), customerID, id); err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeOK(w, http.StatusOK, "Credential deleted successfully", nil)
}

// ListCredentialsForVectorStore handles GET /api/credentials/for-provider/{provider}.
func (h *Handlers) ListCredentialsForVectorStore(w http.ResponseWriter, r *http.Request) {
	customerID, ok := currentCustomer(w, r)
	if !ok {
		return
	}
	list, err := h.Credentials.ForVectorStoreProvider(r.Context(), customerID, urlParam(r, "provider"))
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeOK(w, http.StatusOK, "", list)
}
