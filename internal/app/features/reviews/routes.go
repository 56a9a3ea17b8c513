// internal/app/features/reviews/routes.go
package reviews

import (
	"github.com/go-chi/chi/v5"

	"github.com/peerloop/peerloop/internal/app/system/auth"
	"github.com/peerloop/peerloop/internal/domain/models"
)

// Routes is mounted at /reviews.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Use(auth.RequireSignedIn)

	r.Group(func(r chi.Router) {
		r.Use(auth.RequireRole(models.RoleStudent))
		r.Get("/", h.List)
		r.Get("/{reviewID}", h.ReviewForm)
		r.Post("/{reviewID}/analyze", h.Analyze)
		r.Post("/{reviewID}", h.Submit)
	})

	r.Group(func(r chi.Router) {
		r.Use(auth.RequireRole(models.RoleTeacher))
		r.Get("/submissions/{submissionID}", h.SubmissionReviews)
		r.Post("/submissions/{submissionID}/assign", h.AssignReviewer)
		r.Post("/submissions/{submissionID}/complete", h.Complete)
	})

	return r
}
