// internal/app/features/teams/routes.go
package teams

import (
	"github.com/go-chi/chi/v5"

	"github.com/peerloop/peerloop/internal/app/system/auth"
	"github.com/peerloop/peerloop/internal/domain/models"
)

// Routes is mounted at /teams. Teacher only.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Use(auth.RequireSignedIn)
	r.Use(auth.RequireRole(models.RoleTeacher))

	r.Get("/", h.List)
	r.Post("/", h.Create)
	r.Get("/new", h.NewForm)
	r.Get("/{teamID}", h.Detail)
	r.Post("/{teamID}/members", h.SetMembers)
	r.Post("/{teamID}/delete", h.Delete)

	return r
}
