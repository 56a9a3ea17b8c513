// internal/app/features/workspace/routes.go
package workspace

import (
	"github.com/go-chi/chi/v5"

	"github.com/peerloop/peerloop/internal/app/system/auth"
	"github.com/peerloop/peerloop/internal/domain/models"
)

// Routes is mounted at /workspace. Student only.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Use(auth.RequireSignedIn)
	r.Use(auth.RequireRole(models.RoleStudent))

	r.Get("/", h.List)
	r.Get("/{assignmentID}", h.Detail)
	r.Post("/{assignmentID}/upload", h.Upload)
	r.Post("/{assignmentID}/submit", h.Submit)

	return r
}
