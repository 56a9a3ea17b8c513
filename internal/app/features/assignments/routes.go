// internal/app/features/assignments/routes.go
package assignments

import (
	"github.com/go-chi/chi/v5"

	"github.com/peerloop/peerloop/internal/app/system/auth"
	"github.com/peerloop/peerloop/internal/domain/models"
)

// Routes is mounted at /assignments. Teacher only.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Use(auth.RequireSignedIn)
	r.Use(auth.RequireRole(models.RoleTeacher))

	r.Get("/", h.List)
	r.Post("/", h.Create)
	r.Get("/new", h.NewForm)
	r.Post("/new/draft", h.DraftRubric)
	r.Get("/{assignmentID}", h.Detail)
	r.Post("/{assignmentID}/delete", h.Delete)

	return r
}
