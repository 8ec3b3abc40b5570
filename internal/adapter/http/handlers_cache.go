package http

import (
	"net/http"
)

// CacheStats handles GET /api/cache/stats. Invalidation is an operator
// task and only reachable through the cache-clear command.
func (h *Handlers) CacheStats(w http.ResponseWriter, _ *http.Request) {
	writeOK(w, http.StatusOK, "", h.CustomerCache.Stats())
}
