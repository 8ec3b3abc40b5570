package http

import (
	"github.com/go-chi/chi/v5"

	"github.com/javakishore-veleti/eventsgrasp/internal/middleware"
)

// MountRoutes registers all API routes on the given chi router. Provider
// catalogues and vector-store schema endpoints are public; everything that
// reads or changes customer state sits behind auth.
func MountRoutes(r chi.Router, h *Handlers, auth middleware.Authenticator) {
	r.Get("/health", h.Health)

	r.Route("/api/credentials", func(r chi.Router) {
		r.Get("/providers", h.ListCredentialProviders)
		r.Get("/providers/{provider}/auth-types", h.ListAuthTypes)
		r.Get("/providers/{provider}/schema/{auth}", h.GetCredentialSchema)

		r.Group(func(r chi.Router) {
			r.Use(middleware.CustomerAuth(auth))
			r.Get("/", h.ListCredentials)
			r.Post("/", h.CreateCredential)
			r.Get("/for-provider/{provider}", h.ListCredentialsForVectorStore)
			r.Get("/{id}", h.GetCredential)
			r.Put("/{id}", h.UpdateCredential)
			r.Delete("/{id}", h.DeleteCredential)
		})
	})

	r.Route("/api/vector-stores", func(r chi.Router) {
		r.Get("/providers", h.ListVectorStoreProviders)
		r.Get("/providers/categories", h.ListVectorStoreCategories)
		r.Get("/providers/{provider}/schema", h.GetVectorStoreSchema)
		r.Post("/providers/{provider}/validate", h.ValidateVectorStoreConfig)

		r.Group(func(r chi.Router) {
			r.Use(middleware.CustomerAuth(auth))
			r.Post("/providers/{provider}/test-connection", h.TestVectorStoreConnection)
			r.Post("/configs", h.CreateVectorStoreConfig)
		})
	})

	r.Route("/api/cache", func(r chi.Router) {
		r.Use(middleware.CustomerAuth(auth))
		r.Get("/stats", h.CacheStats)
	})
}
