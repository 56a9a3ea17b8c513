// internal/app/features/signup/routes.go
package signup

import "github.com/go-chi/chi/v5"

// Routes is mounted at /signup.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.SignupForm)
	r.Post("/", h.Signup)
	return r
}
