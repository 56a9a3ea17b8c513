// internal/app/features/login/routes.go
package login

import "github.com/go-chi/chi/v5"

// Routes is mounted at /login.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.LoginForm)
	r.Post("/", h.Login)
	return r
}
