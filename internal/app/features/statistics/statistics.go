// internal/app/features/statistics/statistics.go
package statistics

import (
	"context"
	"net/http"

	"github.com/dalemusser/waffle/pantry/templates"
	"go.uber.org/zap"

	"github.com/peerloop/peerloop/internal/app/engine"
	uierrors "github.com/peerloop/peerloop/internal/app/features/errors"
	assignmentstore "github.com/peerloop/peerloop/internal/app/store/assignments"
	teamstore "github.com/peerloop/peerloop/internal/app/store/teams"
	userstore "github.com/peerloop/peerloop/internal/app/store/users"
	"github.com/peerloop/peerloop/internal/app/system/authz"
	"github.com/peerloop/peerloop/internal/app/system/csvutil"
	"github.com/peerloop/peerloop/internal/app/system/timeouts"
	"github.com/peerloop/peerloop/internal/domain/models"
)

type overviewData struct {
	Title      string
	IsLoggedIn bool
	Role       string
	UserName   string

	Assignments []assignmentRow
	Teams       []csvutil.TeamRow
	Students    []csvutil.StandingRow
}

type assignmentRow struct {
	Assignment models.Assignment
	Progress   int
}

// Overview shows progress three ways: per assignment, per team, and
// per student.
// GET /statistics
func (h *Handler) Overview(w http.ResponseWriter, r *http.Request) {
	role, name, _, _ := authz.UserCtx(r)

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	data := overviewData{
		Title:      "Statistics",
		IsLoggedIn: true,
		Role:       role,
		UserName:   name,
	}

	eng := engine.New(h.DB, h.Log)

	assignments, err := assignmentstore.New(h.DB).List(ctx)
	if err != nil {
		h.Log.Error("assignment list failed", zap.Error(err))
		uierrors.RenderServerError(w, r, "/dashboard")
		return
	}
	for _, a := range assignments {
		pct, err := eng.AssignmentProgress(ctx, a.ID)
		if err != nil {
			h.Log.Error("assignment progress failed", zap.Error(err))
			uierrors.RenderServerError(w, r, "/dashboard")
			return
		}
		data.Assignments = append(data.Assignments, assignmentRow{Assignment: a, Progress: pct})
	}

	teamRows, err := h.teamRows(ctx, eng)
	if err != nil {
		h.Log.Error("team report failed", zap.Error(err))
		uierrors.RenderServerError(w, r, "/dashboard")
		return
	}
	data.Teams = teamRows

	standingRows, err := h.standingRows(ctx, eng)
	if err != nil {
		h.Log.Error("standing report failed", zap.Error(err))
		uierrors.RenderServerError(w, r, "/dashboard")
		return
	}
	data.Students = standingRows

	templates.Render(w, r, "statistics", data)
}

// ExportStandings streams the per-student report as CSV.
// GET /statistics/standings.csv
func (h *Handler) ExportStandings(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	rows, err := h.standingRows(ctx, engine.New(h.DB, h.Log))
	if err != nil {
		h.Log.Error("standing export failed", zap.Error(err))
		http.Error(w, "export failed", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="standings.csv"`)
	if err := csvutil.WriteStandings(w, rows); err != nil {
		h.Log.Error("csv write failed", zap.Error(err))
	}
}

// ExportTeams streams the per-team report as CSV.
// GET /statistics/teams.csv
func (h *Handler) ExportTeams(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	rows, err := h.teamRows(ctx, engine.New(h.DB, h.Log))
	if err != nil {
		h.Log.Error("team export failed", zap.Error(err))
		http.Error(w, "export failed", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="teams.csv"`)
	if err := csvutil.WriteTeamProgress(w, rows); err != nil {
		h.Log.Error("csv write failed", zap.Error(err))
	}
}

func (h *Handler) teamRows(ctx context.Context, eng *engine.Engine) ([]csvutil.TeamRow, error) {
	teams, err := teamstore.New(h.DB).List(ctx)
	if err != nil {
		return nil, err
	}
	rows := make([]csvutil.TeamRow, 0, len(teams))
	for _, t := range teams {
		pct, err := eng.TeamProgress(ctx, t)
		if err != nil {
			return nil, err
		}
		rows = append(rows, csvutil.TeamRow{
			TeamName: t.Name,
			Section:  t.Section,
			Members:  len(t.MemberIDs),
			Progress: pct,
		})
	}
	return rows, nil
}

func (h *Handler) standingRows(ctx context.Context, eng *engine.Engine) ([]csvutil.StandingRow, error) {
	students, err := userstore.New(h.DB).ListByRole(ctx, models.RoleStudent)
	if err != nil {
		return nil, err
	}
	rows := make([]csvutil.StandingRow, 0, len(students))
	for _, s := range students {
		st, err := eng.StudentStanding(ctx, s.ID)
		if err != nil {
			return nil, err
		}
		rows = append(rows, csvutil.StandingRow{
			StudentName: s.FullName,
			Email:       s.Email,
			Finished:    st.Finished,
			Total:       st.TotalAssignments,
			ReviewsDone: st.ReviewsDone,
			Progress:    st.Progress,
			Badge:       st.Badge,
		})
	}
	return rows, nil
}
