// internal/app/features/teams/teamnew.go
package teams

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/dalemusser/waffle/pantry/templates"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	uierrors "github.com/peerloop/peerloop/internal/app/features/errors"
	teamstore "github.com/peerloop/peerloop/internal/app/store/teams"
	userstore "github.com/peerloop/peerloop/internal/app/store/users"
	"github.com/peerloop/peerloop/internal/app/system/formutil"
	"github.com/peerloop/peerloop/internal/app/system/inputval"
	"github.com/peerloop/peerloop/internal/app/system/status"
	"github.com/peerloop/peerloop/internal/app/system/timeouts"
	"github.com/peerloop/peerloop/internal/domain/models"
)

type newData struct {
	formutil.Base
	Name     string
	Section  string
	Students []models.User
	Selected map[string]bool
}

type teamForm struct {
	Name    string `validate:"required"`
	Section string
}

// NewForm renders the team creation form.
// GET /teams/new
func (h *Handler) NewForm(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	students, err := userstore.New(h.DB).ListByRole(ctx, models.RoleStudent)
	if err != nil {
		h.Log.Error("student list failed", zap.Error(err))
		uierrors.RenderServerError(w, r, "/teams")
		return
	}

	data := newData{Students: students, Selected: map[string]bool{}}
	formutil.SetBase(&data.Base, r, "New team", "/teams")
	templates.Render(w, r, "team_new", data)
}

// Create validates the form and stores the team. Team names are
// case-insensitively unique.
// POST /teams
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad form", http.StatusBadRequest)
		return
	}

	data := newData{
		Name:     strings.TrimSpace(r.FormValue("name")),
		Section:  strings.TrimSpace(r.FormValue("section")),
		Selected: map[string]bool{},
	}
	for _, hex := range r.Form["member_ids"] {
		data.Selected[hex] = true
	}
	formutil.SetBase(&data.Base, r, "New team", "/teams")

	if err := inputval.CheckStruct(teamForm{Name: data.Name, Section: data.Section}); err != nil {
		formutil.SetError(&data.Base, "Team name is required.")
		h.loadStudents(r, &data)
		templates.Render(w, r, "team_new", data)
		return
	}

	var memberIDs []primitive.ObjectID
	for hex := range data.Selected {
		id, err := primitive.ObjectIDFromHex(hex)
		if err == nil {
			memberIDs = append(memberIDs, id)
		}
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	created, err := teamstore.New(h.DB).Create(ctx, models.Team{
		Name:      data.Name,
		Section:   data.Section,
		MemberIDs: memberIDs,
		Status:    status.Active,
	})
	if err != nil {
		if errors.Is(err, teamstore.ErrDuplicateTeamName) {
			formutil.SetError(&data.Base, "A team with that name already exists.")
		} else {
			h.Log.Error("team create failed", zap.Error(err))
			formutil.SetError(&data.Base, "Could not create the team. Please try again.")
		}
		h.loadStudents(r, &data)
		templates.Render(w, r, "team_new", data)
		return
	}

	http.Redirect(w, r, "/teams/"+created.ID.Hex(), http.StatusSeeOther)
}

func (h *Handler) loadStudents(r *http.Request, data *newData) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	students, err := userstore.New(h.DB).ListByRole(ctx, models.RoleStudent)
	if err != nil {
		h.Log.Warn("student list failed", zap.Error(err))
		return
	}
	data.Students = students
}
