// internal/app/features/collaborate/routes.go
package collaborate

import (
	"github.com/go-chi/chi/v5"

	"github.com/peerloop/peerloop/internal/app/system/auth"
)

// Routes is mounted at /collaborate.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Use(auth.RequireSignedIn)

	r.Get("/", h.Index)
	r.Get("/{assignmentID}", h.Thread)
	r.Post("/{assignmentID}", h.Post)
	r.Post("/{assignmentID}/summarize", h.Summarize)

	return r
}
