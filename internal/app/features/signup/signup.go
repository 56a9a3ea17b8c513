// internal/app/features/signup/signup.go
package signup

import (
	"context"
	"errors"
	"net/http"

	"github.com/dalemusser/waffle/pantry/templates"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/peerloop/peerloop/internal/app/store/users"
	"github.com/peerloop/peerloop/internal/app/system/auth"
	"github.com/peerloop/peerloop/internal/app/system/formutil"
	"github.com/peerloop/peerloop/internal/app/system/inputval"
	"github.com/peerloop/peerloop/internal/app/system/normalize"
	"github.com/peerloop/peerloop/internal/app/system/status"
	"github.com/peerloop/peerloop/internal/app/system/timeouts"
	"github.com/peerloop/peerloop/internal/domain/models"
)

type signupData struct {
	formutil.Base
	FullName string
	Email    string
	Role     string
}

type signupForm struct {
	FullName string `validate:"required"`
	Email    string `validate:"required,bareemail"`
	Role     string `validate:"required,oneof=teacher student"`
	Password string `validate:"required,min=8"`
}

// signupMessage maps the first failed rule to the message shown above
// the form.
func signupMessage(err error) string {
	switch inputval.FirstField(err) {
	case "FullName":
		return "Full name is required."
	case "Email":
		return "Please enter a valid email address."
	case "Role":
		return "Please choose a role."
	case "Password":
		return "Password must be at least 8 characters."
	}
	return "Please check the form and try again."
}

// SignupForm renders the registration page.
// GET /signup
func (h *Handler) SignupForm(w http.ResponseWriter, r *http.Request) {
	data := signupData{Role: models.RoleStudent}
	formutil.SetBase(&data.Base, r, "Sign up", "/")
	templates.Render(w, r, "signup", data)
}

// Signup creates an account and starts a session.
// POST /signup
func (h *Handler) Signup(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad form", http.StatusBadRequest)
		return
	}

	fullName := normalize.Name(r.FormValue("full_name"))
	email := normalize.Email(r.FormValue("email"))
	role := normalize.Role(r.FormValue("role"))
	password := r.FormValue("password")

	data := signupData{FullName: fullName, Email: email, Role: role}
	formutil.SetBase(&data.Base, r, "Sign up", "/")

	form := signupForm{FullName: fullName, Email: email, Role: role, Password: password}
	if err := inputval.CheckStruct(form); err != nil {
		formutil.SetError(&data.Base, signupMessage(err))
		templates.Render(w, r, "signup", data)
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		h.Log.Error("password hash failed", zap.Error(err))
		formutil.SetError(&data.Base, "Could not create the account. Please try again.")
		templates.Render(w, r, "signup", data)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	store := userstore.New(h.DB)
	u, err := store.Create(ctx, models.User{
		FullName:     fullName,
		Email:        email,
		PasswordHash: string(hash),
		Role:         role,
		Status:       status.Active,
	})
	if err != nil {
		if errors.Is(err, userstore.ErrDuplicateEmail) {
			formutil.SetError(&data.Base, "An account with that email already exists.")
		} else {
			h.Log.Error("user create failed", zap.Error(err))
			formutil.SetError(&data.Base, "Could not create the account. Please try again.")
		}
		templates.Render(w, r, "signup", data)
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
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
}
