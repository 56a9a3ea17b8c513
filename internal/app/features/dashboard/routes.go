// internal/app/features/dashboard/routes.go
package dashboard

import (
	"github.com/go-chi/chi/v5"

	"github.com/peerloop/peerloop/internal/app/system/auth"
)

// Routes is mounted at /dashboard.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Use(auth.RequireSignedIn)
	r.Get("/", h.Dashboard)
	return r
}
