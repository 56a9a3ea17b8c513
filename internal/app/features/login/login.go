// internal/app/features/login/login.go
package login

import (
	"context"
	"errors"
	"net/http"

	"github.com/dalemusser/waffle/pantry/templates"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	loginstore "github.com/peerloop/peerloop/internal/app/store/logins"
	"github.com/peerloop/peerloop/internal/app/store/users"
	"github.com/peerloop/peerloop/internal/app/system/auth"
	"github.com/peerloop/peerloop/internal/app/system/formutil"
	"github.com/peerloop/peerloop/internal/app/system/normalize"
	"github.com/peerloop/peerloop/internal/app/system/status"
	"github.com/peerloop/peerloop/internal/app/system/timeouts"
)

type loginData struct {
	formutil.Base
	Email string
}

// LoginForm renders the sign-in page.
// GET /login
func (h *Handler) LoginForm(w http.ResponseWriter, r *http.Request) {
	data := loginData{}
	formutil.SetBase(&data.Base, r, "Sign in", "/")
	templates.Render(w, r, "login", data)
}

// Login authenticates an email/password pair and starts a session.
// POST /login
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad form", http.StatusBadRequest)
		return
	}

	email := normalize.Email(r.FormValue("email"))
	password := r.FormValue("password")

	data := loginData{Email: email}
	formutil.SetBase(&data.Base, r, "Sign in", "/")

	if email == "" || password == "" {
		formutil.SetError(&data.Base, "Email and password are required.")
		templates.Render(w, r, "login", data)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	store := userstore.New(h.DB)
	u, err := store.GetByEmail(ctx, email)
	if err != nil {
		if !errors.Is(err, mongo.ErrNoDocuments) {
			h.Log.Error("login lookup failed", zap.Error(err))
		}
		formutil.SetError(&data.Base, "Invalid email or password.")
		templates.Render(w, r, "login", data)
		return
	}

	if u.Status == status.Inactive {
		formutil.SetError(&data.Base, "This account has been deactivated.")
		templates.Render(w, r, "login", data)
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		formutil.SetError(&data.Base, "Invalid email or password.")
		templates.Render(w, r, "login", data)
		return
	}

	su := &auth.SessionUser{
		ID:    u.ID.Hex(),
		Name:  u.FullName,
		Email: u.Email,
		Role:  u.Role,
	}
	if err := auth.SignIn(w, r, su); err != nil {
		h.Log.Error("session save failed", zap.Error(err))
		formutil.SetError(&data.Base, "Could not start a session. Please try again.")
		templates.Render(w, r, "login", data)
		return
	}

	// Sign-in history is best effort; a failed insert never blocks the
	// login itself.
	if err := loginstore.New(h.DB).RecordFrom(ctx, r, u.ID, u.Email); err != nil {
		h.Log.Warn("login record failed", zap.Error(err))
	}

	http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
}
