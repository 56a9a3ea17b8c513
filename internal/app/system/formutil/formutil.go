// Package formutil provides helpers for form re-rendering with validation errors.
//
// When a form submission fails validation, the form should be re-rendered with:
// - The user's previously entered values (echoed back)
// - An error message explaining what went wrong
// - All the context data needed for the form (dropdowns, etc.)
//
// This package provides a Base struct that can be embedded in form data structs
// to handle the common fields, and helper functions to populate them.
//
// Example usage:
//
//	type newTeamData struct {
//		formutil.Base
//		Name     string
//		Section  string
//		Students []studentOption
//	}
//
//	// In your handler:
//	data := newTeamData{Name: name, Section: section}
//	formutil.SetBase(&data.Base, r, "Create Team", "/teams")
//	data.SetError("Team name is required.")
//	templates.Render(w, r, "team_new", data)
package formutil

import (
	"html/template"
	"net/http"

	"github.com/dalemusser/waffle/pantry/httpnav"
	"github.com/peerloop/peerloop/internal/app/system/authz"
)

// Base contains common fields for form pages that can be embedded in form data structs.
type Base struct {
	Title       string
	IsLoggedIn  bool
	Role        string
	UserName    string
	BackURL     string
	CurrentPath string
	Error       template.HTML
}

// SetBase populates the common Base fields from the request context.
// It extracts user info from authz.UserCtx and sets navigation fields.
func SetBase(b *Base, r *http.Request, title, backDefault string) {
	role, uname, _, _ := authz.UserCtx(r)
	b.Title = title
	b.IsLoggedIn = true
	b.Role = role
	b.UserName = uname
	b.BackURL = httpnav.ResolveBackURL(r, backDefault)
	b.CurrentPath = httpnav.CurrentPath(r)
}

// SetError sets the error message on a Base struct.
func (b *Base) SetError(msg string) {
	b.Error = template.HTML(msg)
}

// SetError sets the error message on the given Base struct.
func SetError(b *Base, msg string) {
	b.SetError(msg)
}
