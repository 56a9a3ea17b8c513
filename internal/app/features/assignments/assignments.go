// internal/app/features/assignments/assignments.go
package assignments

import (
	"context"
	"net/http"

	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/peerloop/peerloop/internal/app/engine"
	"github.com/peerloop/peerloop/internal/app/features/errors"
	assignmentstore "github.com/peerloop/peerloop/internal/app/store/assignments"
	submissionstore "github.com/peerloop/peerloop/internal/app/store/submissions"
	teamstore "github.com/peerloop/peerloop/internal/app/store/teams"
	userstore "github.com/peerloop/peerloop/internal/app/store/users"
	"github.com/peerloop/peerloop/internal/app/system/authz"
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
	Assignment models.Assignment
	Progress   int
	TeamCount  int
}

// List shows all assignments with their turned-in percentage.
// GET /assignments
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	role, name, _, _ := authz.UserCtx(r)

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	all, err := assignmentstore.New(h.DB).List(ctx)
	if err != nil {
		h.Log.Error("assignment list failed", zap.Error(err))
		errors.RenderServerError(w, r, "/dashboard")
		return
	}

	eng := engine.New(h.DB, h.Log)
	data := listData{
		Title:      "Assignments",
		IsLoggedIn: true,
		Role:       role,
		UserName:   name,
	}
	for _, a := range all {
		pct, err := eng.AssignmentProgress(ctx, a.ID)
		if err != nil {
			h.Log.Error("assignment progress failed", zap.Error(err))
			errors.RenderServerError(w, r, "/dashboard")
			return
		}
		data.Rows = append(data.Rows, listRow{Assignment: a, Progress: pct, TeamCount: len(a.TeamIDs)})
	}

	templates.Render(w, r, "assignment_list", data)
}

type detailData struct {
	Title      string
	IsLoggedIn bool
	Role       string
	UserName   string

	Assignment  models.Assignment
	Teams       []teamRow
	Submissions []submissionRow
	MaxTotal    int
}

type teamRow struct {
	Team     models.Team
	Progress int
}

type submissionRow struct {
	Submission  models.Submission
	StudentName string
}

// Detail shows one assignment: rubric, assigned teams with their
// progress, and every submission so far.
// GET /assignments/{assignmentID}
func (h *Handler) Detail(w http.ResponseWriter, r *http.Request) {
	role, name, _, _ := authz.UserCtx(r)

	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "assignmentID"))
	if err != nil {
		http.NotFound(w, r)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	a, err := assignmentstore.New(h.DB).GetByID(ctx, id)
	if err != nil {
		http.NotFound(w, r)
		return
	}

	data := detailData{
		Title:      a.Title,
		IsLoggedIn: true,
		Role:       role,
		UserName:   name,
		Assignment: a,
	}
	for _, c := range a.Rubric {
		data.MaxTotal += c.MaxPoints
	}

	eng := engine.New(h.DB, h.Log)
	teams := teamstore.New(h.DB)
	for _, teamID := range a.TeamIDs {
		t, err := teams.GetByID(ctx, teamID)
		if err != nil {
			continue // team may have been deleted since assignment
		}
		pct, err := eng.TeamAssignmentProgress(ctx, a.ID, t)
		if err != nil {
			h.Log.Error("team progress failed", zap.Error(err))
			errors.RenderServerError(w, r, "/assignments")
			return
		}
		data.Teams = append(data.Teams, teamRow{Team: t, Progress: pct})
	}

	subs, err := submissionstore.New(h.DB).ListByAssignment(ctx, a.ID)
	if err != nil {
		h.Log.Error("submission list failed", zap.Error(err))
		errors.RenderServerError(w, r, "/assignments")
		return
	}
	if len(subs) > 0 {
		ids := make([]primitive.ObjectID, 0, len(subs))
		for _, s := range subs {
			ids = append(ids, s.StudentID)
		}
		students, err := userstore.New(h.DB).ListByIDs(ctx, ids)
		if err != nil {
			h.Log.Error("student lookup failed", zap.Error(err))
			errors.RenderServerError(w, r, "/assignments")
			return
		}
		nameByID := make(map[primitive.ObjectID]string, len(students))
		for _, u := range students {
			nameByID[u.ID] = u.FullName
		}
		for _, s := range subs {
			data.Submissions = append(data.Submissions, submissionRow{
				Submission:  s,
				StudentName: nameByID[s.StudentID],
			})
		}
	}

	templates.Render(w, r, "assignment_detail", data)
}

// Delete removes an assignment. Submissions and reviews are kept; they
// still count toward student history.
// POST /assignments/{assignmentID}/delete
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "assignmentID"))
	if err != nil {
		http.NotFound(w, r)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	if _, err := assignmentstore.New(h.DB).Delete(ctx, id); err != nil {
		h.Log.Error("assignment delete failed", zap.Error(err))
		errors.RenderServerError(w, r, "/assignments")
		return
	}

	http.Redirect(w, r, "/assignments", http.StatusSeeOther)
}
