package http

import (
	"context"
	"net/http"
	"time"

	"github.com/javakishore-veleti/eventsgrasp/internal/service"
)

// Pinger reports whether a backing store is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Handlers holds the services the HTTP API dispatches to.
type Handlers struct {
	Credentials   *service.CredentialService
	VectorStores  *service.VectorStoreService
	CustomerCache *service.CustomerCache

	// Database is pinged by /health when set.
	Database Pinger
	Version  string
}

type healthStatus struct {
	Status   string `json:"status"`
	Version  string `json:"version,omitempty"`
	Database string `json:"database,omitempty"`
	Cache    string `json:"cache"`
}

// Health reports liveness plus database reachability. A failing database
// answers 503 so load balancers drain the instance.
func (h *Handlers) Health(w http.ResponseWriter, r *http.Request) {
	st := healthStatus{Status: "ok", Version: h.Version, Cache: "disabled"}
	if h.CustomerCache != nil {
		st.Cache = h.CustomerCache.Stats().Backend
	}
	if h.Database == nil {
		writeOK(w, http.StatusOK, "", st)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()
	if err := h.Database.Ping(ctx); err != nil {
		st.Status = "degraded"
		st.Database = "unreachable"
		writeJSON(w, http.StatusServiceUnavailable, envelope{Success: false, Message: "Database unreachable", Data: st})
		return
	}
	st.Database = "ok"
	writeOK(w, http.StatusOK, "", st)
}
