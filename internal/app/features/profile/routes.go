// internal/app/features/profile/routes.go
package profile

import (
	"github.com/go-chi/chi/v5"

	"github.com/peerloop/peerloop/internal/app/system/auth"
)

// Routes is mounted at /profile.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Use(auth.RequireSignedIn)

	r.Get("/", h.Show)
	r.Post("/", h.Update)

	return r
}
