// internal/app/features/dashboard/dashboard.go
package dashboard

import (
	"context"
	"net/http"

	"github.com/dalemusser/waffle/pantry/templates"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/peerloop/peerloop/internal/app/engine"
	assignmentstore "github.com/peerloop/peerloop/internal/app/store/assignments"
	submissionstore "github.com/peerloop/peerloop/internal/app/store/submissions"
	teamstore "github.com/peerloop/peerloop/internal/app/store/teams"
	userstore "github.com/peerloop/peerloop/internal/app/store/users"
	"github.com/peerloop/peerloop/internal/app/features/errors"
	"github.com/peerloop/peerloop/internal/app/system/authz"
	"github.com/peerloop/peerloop/internal/app/system/timeouts"
	"github.com/peerloop/peerloop/internal/domain/models"
)

// Dashboard dispatches to the teacher or student view.
// GET /dashboard
func (h *Handler) Dashboard(w http.ResponseWriter, r *http.Request) {
	role, _, _, ok := authz.UserCtx(r)
	if !ok {
		errors.RenderUnauthorized(w, r, "")
		return
	}
	if role == models.RoleTeacher {
		h.teacherDashboard(w, r)
		return
	}
	h.studentDashboard(w, r)
}

type teacherDashData struct {
	Title      string
	IsLoggedIn bool
	Role       string
	UserName   string

	StudentCount    int64
	TeamCount       int64
	AssignmentCount int64

	Recent []assignmentRow
}

type assignmentRow struct {
	Assignment models.Assignment
	Progress   int
}

func (h *Handler) teacherDashboard(w http.ResponseWriter, r *http.Request) {
	role, name, _, _ := authz.UserCtx(r)

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	data := teacherDashData{
		Title:      "Dashboard",
		IsLoggedIn: true,
		Role:       role,
		UserName:   name,
	}

	var err error
	if data.StudentCount, err = userstore.New(h.DB).CountByRole(ctx, models.RoleStudent); err != nil {
		h.Log.Error("student count failed", zap.Error(err))
		errors.RenderServerError(w, r, "/")
		return
	}
	if data.TeamCount, err = teamstore.New(h.DB).Count(ctx); err != nil {
		h.Log.Error("team count failed", zap.Error(err))
		errors.RenderServerError(w, r, "/")
		return
	}

	assignments, err := assignmentstore.New(h.DB).List(ctx)
	if err != nil {
		h.Log.Error("assignment list failed", zap.Error(err))
		errors.RenderServerError(w, r, "/")
		return
	}
	data.AssignmentCount = int64(len(assignments))

	eng := engine.New(h.DB, h.Log)
	limit := len(assignments)
	if limit > 5 {
		limit = 5
	}
	for _, a := range assignments[:limit] {
		pct, err := eng.AssignmentProgress(ctx, a.ID)
		if err != nil {
			h.Log.Error("assignment progress failed", zap.Error(err))
			errors.RenderServerError(w, r, "/")
			return
		}
		data.Recent = append(data.Recent, assignmentRow{Assignment: a, Progress: pct})
	}

	templates.Render(w, r, "dashboard_teacher", data)
}

type studentDashData struct {
	Title      string
	IsLoggedIn bool
	Role       string
	UserName   string

	Standing engine.Standing
	Tasks    []taskRow
	Teams    []models.Team
}

type taskRow struct {
	Assignment models.Assignment
	Status     string
	Overdue    bool
}

func (h *Handler) studentDashboard(w http.ResponseWriter, r *http.Request) {
	role, name, userID, _ := authz.UserCtx(r)

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	data := studentDashData{
		Title:      "Dashboard",
		IsLoggedIn: true,
		Role:       role,
		UserName:   name,
	}

	teams, err := teamstore.New(h.DB).ListByMember(ctx, userID)
	if err != nil {
		h.Log.Error("team lookup failed", zap.Error(err))
		errors.RenderServerError(w, r, "/")
		return
	}
	data.Teams = teams

	tasks, err := h.assignedTasks(ctx, userID, teams)
	if err != nil {
		h.Log.Error("task list failed", zap.Error(err))
		errors.RenderServerError(w, r, "/")
		return
	}
	data.Tasks = tasks

	standing, err := engine.New(h.DB, h.Log).StudentStanding(ctx, userID)
	if err != nil {
		h.Log.Error("standing failed", zap.Error(err))
		errors.RenderServerError(w, r, "/")
		return
	}
	data.Standing = standing

	templates.Render(w, r, "dashboard_student", data)
}

// assignedTasks resolves the assignments visible to the student through
// team membership, de-duplicated, with the student's submission status.
func (h *Handler) assignedTasks(ctx context.Context, studentID primitive.ObjectID, teams []models.Team) ([]taskRow, error) {
	store := assignmentstore.New(h.DB)

	seen := make(map[primitive.ObjectID]bool)
	var assignments []models.Assignment
	for _, t := range teams {
		byTeam, err := store.ListByTeam(ctx, t.ID)
		if err != nil {
			return nil, err
		}
		for _, a := range byTeam {
			if !seen[a.ID] {
				seen[a.ID] = true
				assignments = append(assignments, a)
			}
		}
	}

	subs, err := submissionstore.New(h.DB).ListByStudent(ctx, studentID)
	if err != nil {
		return nil, err
	}
	statusByAssignment := make(map[primitive.ObjectID]string, len(subs))
	for _, s := range subs {
		statusByAssignment[s.AssignmentID] = s.Status
	}

	rows := make([]taskRow, 0, len(assignments))
	for _, a := range assignments {
		st, ok := statusByAssignment[a.ID]
		if !ok {
			st = models.SubmissionNotStarted
		}
		rows = append(rows, taskRow{
			Assignment: a,
			Status:     st,
			Overdue:    a.IsOverdue(timeNow()),
		})
	}
	return rows, nil
}
