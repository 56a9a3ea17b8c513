// internal/app/features/statistics/routes.go
package statistics

import (
	"github.com/go-chi/chi/v5"

	"github.com/peerloop/peerloop/internal/app/system/auth"
	"github.com/peerloop/peerloop/internal/domain/models"
)

// Routes is mounted at /statistics. Teacher only.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Use(auth.RequireSignedIn)
	r.Use(auth.RequireRole(models.RoleTeacher))

	r.Get("/", h.Overview)
	r.Get("/standings.csv", h.ExportStandings)
	r.Get("/teams.csv", h.ExportTeams)

	return r
}
