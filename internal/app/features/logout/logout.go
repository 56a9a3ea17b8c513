// internal/app/features/logout/logout.go
package logout

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/peerloop/peerloop/internal/app/system/auth"
)

// Handler clears the session.
type Handler struct {
	Log *zap.Logger
}

func NewHandler(logger *zap.Logger) *Handler {
	return &Handler{Log: logger}
}

// Routes is mounted at /logout.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Post("/", h.Logout)
	r.Get("/", h.Logout)
	return r
}

// Logout ends the current session and returns to the landing page.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	if err := auth.SignOut(w, r); err != nil {
		h.Log.Warn("sign-out failed", zap.Error(err))
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}
