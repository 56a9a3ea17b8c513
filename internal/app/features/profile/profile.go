// internal/app/features/profile/profile.go
package profile

import (
	"context"
	"net/http"

	"github.com/dalemusser/waffle/pantry/templates"
	"go.uber.org/zap"

	"github.com/peerloop/peerloop/internal/app/engine"
	uierrors "github.com/peerloop/peerloop/internal/app/features/errors"
	userstore "github.com/peerloop/peerloop/internal/app/store/users"
	"github.com/peerloop/peerloop/internal/app/system/authz"
	"github.com/peerloop/peerloop/internal/app/system/formutil"
	"github.com/peerloop/peerloop/internal/app/system/normalize"
	"github.com/peerloop/peerloop/internal/app/system/timeouts"
	"github.com/peerloop/peerloop/internal/domain/models"
)

type profileData struct {
	formutil.Base
	User     models.User
	Standing engine.Standing
}

// Show renders the user's profile. Students also get their standing
// and badge.
// GET /profile
func (h *Handler) Show(w http.ResponseWriter, r *http.Request) {
	_, _, userID, _ := authz.UserCtx(r)

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	u, err := userstore.New(h.DB).GetByID(ctx, userID)
	if err != nil {
		h.Log.Error("profile lookup failed", zap.Error(err))
		uierrors.RenderServerError(w, r, "/dashboard")
		return
	}

	data := profileData{User: u}
	formutil.SetBase(&data.Base, r, "My profile", "/dashboard")

	if u.IsStudent() {
		standing, err := engine.New(h.DB, h.Log).StudentStanding(ctx, u.ID)
		if err != nil {
			h.Log.Error("standing failed", zap.Error(err))
			uierrors.RenderServerError(w, r, "/dashboard")
			return
		}
		data.Standing = standing
	}

	templates.Render(w, r, "profile", data)
}

// Update saves the editable profile fields. Only students have extra
// fields to edit; a display-name change applies to everyone.
// POST /profile
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	_, _, userID, _ := authz.UserCtx(r)

	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad form", http.StatusBadRequest)
		return
	}

	fullName := normalize.Name(r.FormValue("full_name"))
	branch := normalize.Name(r.FormValue("branch"))
	year := normalize.Name(r.FormValue("year"))
	mentor := normalize.Name(r.FormValue("mentor"))

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	store := userstore.New(h.DB)
	u, err := store.GetByID(ctx, userID)
	if err != nil {
		h.Log.Error("profile lookup failed", zap.Error(err))
		uierrors.RenderServerError(w, r, "/profile")
		return
	}

	if fullName == "" {
		fullName = u.FullName
	}
	if err := store.UpdateStudentProfile(ctx, userID, fullName, branch, year, mentor); err != nil {
		h.Log.Error("profile update failed", zap.Error(err))
		uierrors.RenderServerError(w, r, "/profile")
		return
	}

	http.Redirect(w, r, "/profile", http.StatusSeeOther)
}
