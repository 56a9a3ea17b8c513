// internal/app/features/home/home.go
package home

import (
	"net/http"

	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/peerloop/peerloop/internal/app/system/authz"
)

type homeData struct {
	Title      string
	IsLoggedIn bool
	Role       string
	UserName   string
}

// Home renders the landing page. Signed-in users are sent to their
// dashboard instead.
// GET /
func (h *Handler) Home(w http.ResponseWriter, r *http.Request) {
	role, name, _, signedIn := authz.UserCtx(r)
	if signedIn {
		http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
		return
	}

	data := homeData{
		Title:      "Welcome",
		IsLoggedIn: signedIn,
		Role:       role,
		UserName:   name,
	}

	templates.Render(w, r, "home", data)
}
