// internal/app/features/teams/teams.go
package teams

import (
	"context"
	"net/http"

	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/peerloop/peerloop/internal/app/engine"
	uierrors "github.com/peerloop/peerloop/internal/app/features/errors"
	assignmentstore "github.com/peerloop/peerloop/internal/app/store/assignments"
	teamstore "github.com/peerloop/peerloop/internal/app/store/teams"
	userstore "github.com/peerloop/peerloop/internal/app/store/users"
	"github.com/peerloop/peerloop/internal/app/system/authz"
	"github.com/peerloop/peerloop/internal/app/system/formutil"
	"github.com/peerloop/peerloop/internal/app/system/timeouts"
	"github.com/peerloop/peerloop/internal/domain/models"
)

type listData struct {
	Title      string
	IsLoggedIn bool
	Role       string
	UserName   string

	Rows []listRow
}

type listRow struct {
	Team     models.Team
	Members  int
	Progress int
}

// List shows all teams with member counts and overall progress.
// GET /teams
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	role, name, _, _ := authz.UserCtx(r)

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	all, err := teamstore.New(h.DB).List(ctx)
	if err != nil {
		h.Log.Error("team list failed", zap.Error(err))
		uierrors.RenderServerError(w, r, "/dashboard")
		return
	}

	eng := engine.New(h.DB, h.Log)
	data := listData{
		Title:      "Teams",
		IsLoggedIn: true,
		Role:       role,
		UserName:   name,
	}
	for _, t := range all {
		pct, err := eng.TeamProgress(ctx, t)
		if err != nil {
			h.Log.Error("team progress failed", zap.Error(err))
			uierrors.RenderServerError(w, r, "/dashboard")
			return
		}
		data.Rows = append(data.Rows, listRow{Team: t, Members: len(t.MemberIDs), Progress: pct})
	}

	templates.Render(w, r, "team_list", data)
}

type detailData struct {
	formutil.Base
	Team        models.Team
	Members     []models.User
	Students    []models.User
	MemberSet   map[string]bool
	Assignments []assignmentRow
}

type assignmentRow struct {
	Assignment models.Assignment
	Progress   int
}

// Detail shows one team: roster, member editing, and progress on each
// assignment the team has.
// GET /teams/{teamID}
func (h *Handler) Detail(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "teamID"))
	if err != nil {
		http.NotFound(w, r)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	t, err := teamstore.New(h.DB).GetByID(ctx, id)
	if err != nil {
		http.NotFound(w, r)
		return
	}

	data := detailData{Team: t, MemberSet: map[string]bool{}}
	formutil.SetBase(&data.Base, r, t.Name, "/teams")

	uStore := userstore.New(h.DB)
	if len(t.MemberIDs) > 0 {
		members, err := uStore.ListByIDs(ctx, t.MemberIDs)
		if err != nil {
			h.Log.Error("member lookup failed", zap.Error(err))
			uierrors.RenderServerError(w, r, "/teams")
			return
		}
		data.Members = members
	}
	for _, id := range t.MemberIDs {
		data.MemberSet[id.Hex()] = true
	}

	students, err := uStore.ListByRole(ctx, models.RoleStudent)
	if err != nil {
		h.Log.Error("student list failed", zap.Error(err))
		uierrors.RenderServerError(w, r, "/teams")
		return
	}
	data.Students = students

	assignments, err := assignmentstore.New(h.DB).ListByTeam(ctx, t.ID)
	if err != nil {
		h.Log.Error("assignment lookup failed", zap.Error(err))
		uierrors.RenderServerError(w, r, "/teams")
		return
	}
	eng := engine.New(h.DB, h.Log)
	for _, a := range assignments {
		pct, err := eng.TeamAssignmentProgress(ctx, a.ID, t)
		if err != nil {
			h.Log.Error("team progress failed", zap.Error(err))
			uierrors.RenderServerError(w, r, "/teams")
			return
		}
		data.Assignments = append(data.Assignments, assignmentRow{Assignment: a, Progress: pct})
	}

	templates.Render(w, r, "team_detail", data)
}

// SetMembers replaces the team's roster with the checked students.
// POST /teams/{teamID}/members
func (h *Handler) SetMembers(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "teamID"))
	if err != nil {
		http.NotFound(w, r)
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad form", http.StatusBadRequest)
		return
	}

	var memberIDs []primitive.ObjectID
	for _, hex := range r.Form["member_ids"] {
		mid, err := primitive.ObjectIDFromHex(hex)
		if err == nil {
			memberIDs = append(memberIDs, mid)
		}
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	if err := teamstore.New(h.DB).SetMembers(ctx, id, memberIDs); err != nil {
		h.Log.Error("member update failed", zap.Error(err))
		uierrors.RenderServerError(w, r, "/teams")
		return
	}

	http.Redirect(w, r, "/teams/"+id.Hex(), http.StatusSeeOther)
}

// Delete removes a team. Assignments keep their reference; the detail
// page simply skips teams that no longer exist.
// POST /teams/{teamID}/delete
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "teamID"))
	if err != nil {
		http.NotFound(w, r)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	if _, err := teamstore.New(h.DB).Delete(ctx, id); err != nil {
		h.Log.Error("team delete failed", zap.Error(err))
		uierrors.RenderServerError(w, r, "/teams")
		return
	}

	http.Redirect(w, r, "/teams", http.StatusSeeOther)
}
