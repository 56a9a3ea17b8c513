// internal/app/features/workspace/workspace.go
package workspace

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"github.com/peerloop/peerloop/internal/app/engine"
	uierrors "github.com/peerloop/peerloop/internal/app/features/errors"
	assignmentstore "github.com/peerloop/peerloop/internal/app/store/assignments"
	reviewstore "github.com/peerloop/peerloop/internal/app/store/reviews"
	submissionstore "github.com/peerloop/peerloop/internal/app/store/submissions"
	teamstore "github.com/peerloop/peerloop/internal/app/store/teams"
	userstore "github.com/peerloop/peerloop/internal/app/store/users"
	"github.com/peerloop/peerloop/internal/app/system/authz"
	"github.com/peerloop/peerloop/internal/app/system/normalize"
	"github.com/peerloop/peerloop/internal/app/system/timeouts"
	"github.com/peerloop/peerloop/internal/domain/models"
)

// maxUploadBytes caps a single upload's form size.
const maxUploadBytes = 32 << 20

type listData struct {
	Title      string
	IsLoggedIn bool
	Role       string
	UserName   string

	Tasks []taskRow
}

type taskRow struct {
	Assignment models.Assignment
	Status     string
	Overdue    bool
}

// List shows the student's assigned tasks and their status.
// GET /workspace
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	role, name, userID, _ := authz.UserCtx(r)

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	teams, err := teamstore.New(h.DB).ListByMember(ctx, userID)
	if err != nil {
		h.Log.Error("team lookup failed", zap.Error(err))
		uierrors.RenderServerError(w, r, "/dashboard")
		return
	}

	aStore := assignmentstore.New(h.DB)
	seen := make(map[primitive.ObjectID]bool)
	var assignments []models.Assignment
	for _, t := range teams {
		byTeam, err := aStore.ListByTeam(ctx, t.ID)
		if err != nil {
			h.Log.Error("assignment lookup failed", zap.Error(err))
			uierrors.RenderServerError(w, r, "/dashboard")
			return
		}
		for _, a := range byTeam {
			if !seen[a.ID] {
				seen[a.ID] = true
				assignments = append(assignments, a)
			}
		}
	}

	subs, err := submissionstore.New(h.DB).ListByStudent(ctx, userID)
	if err != nil {
		h.Log.Error("submission lookup failed", zap.Error(err))
		uierrors.RenderServerError(w, r, "/dashboard")
		return
	}
	statusByAssignment := make(map[primitive.ObjectID]string, len(subs))
	for _, s := range subs {
		statusByAssignment[s.AssignmentID] = s.Status
	}

	data := listData{
		Title:      "My workspace",
		IsLoggedIn: true,
		Role:       role,
		UserName:   name,
	}
	now := time.Now().UTC()
	for _, a := range assignments {
		st, ok := statusByAssignment[a.ID]
		if !ok {
			st = models.SubmissionNotStarted
		}
		data.Tasks = append(data.Tasks, taskRow{Assignment: a, Status: st, Overdue: a.IsOverdue(now)})
	}

	templates.Render(w, r, "workspace_list", data)
}

type detailData struct {
	Title      string
	IsLoggedIn bool
	Role       string
	UserName   string

	Assignment models.Assignment
	Status     string
	Files      []string
	Content    string
	CanSubmit  bool
	Reviews    []reviewRow
}

type reviewRow struct {
	ReviewerName string
	Feedback     string
	Total        int
	MaxTotal     int
}

// Detail shows one task: the brief, the student's files and status,
// and any peer feedback they've received.
// GET /workspace/{assignmentID}
func (h *Handler) Detail(w http.ResponseWriter, r *http.Request) {
	role, name, userID, _ := authz.UserCtx(r)

	assignmentID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "assignmentID"))
	if err != nil {
		http.NotFound(w, r)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	a, err := assignmentstore.New(h.DB).GetByID(ctx, assignmentID)
	if err != nil {
		http.NotFound(w, r)
		return
	}

	if ok, err := h.assignedTo(ctx, userID, a); err != nil {
		h.Log.Error("membership check failed", zap.Error(err))
		uierrors.RenderServerError(w, r, "/workspace")
		return
	} else if !ok {
		uierrors.RenderForbidden(w, r, "This assignment is not assigned to your team.", "/workspace")
		return
	}

	data := detailData{
		Title:      a.Title,
		IsLoggedIn: true,
		Role:       role,
		UserName:   name,
		Assignment: a,
		Status:     models.SubmissionNotStarted,
	}

	sub, err := submissionstore.New(h.DB).GetByPair(ctx, assignmentID, userID)
	switch {
	case errors.Is(err, mongo.ErrNoDocuments):
		// no submission yet; NOT_STARTED
	case err != nil:
		h.Log.Error("submission lookup failed", zap.Error(err))
		uierrors.RenderServerError(w, r, "/workspace")
		return
	default:
		data.Status = sub.Status
		data.Files = sub.Files
		data.Content = sub.Content
		data.CanSubmit = sub.Status == models.SubmissionInProgress

		if sub.TurnedIn() {
			rows, err := h.feedbackRows(ctx, a, sub.ID)
			if err != nil {
				h.Log.Error("review lookup failed", zap.Error(err))
				uierrors.RenderServerError(w, r, "/workspace")
				return
			}
			data.Reviews = rows
		}
	}

	templates.Render(w, r, "workspace_detail", data)
}

// Upload records a file for the student's submission, creating it on
// first upload.
// POST /workspace/{assignmentID}/upload
func (h *Handler) Upload(w http.ResponseWriter, r *http.Request) {
	_, _, userID, _ := authz.UserCtx(r)

	assignmentID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "assignmentID"))
	if err != nil {
		http.NotFound(w, r)
		return
	}

	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		http.Error(w, "bad upload", http.StatusBadRequest)
		return
	}
	file, header, err := r.FormFile("work_file")
	if err != nil {
		http.Redirect(w, r, "/workspace/"+assignmentID.Hex(), http.StatusSeeOther)
		return
	}
	_ = file.Close() // only the name is recorded

	filename := normalize.Filename(header.Filename)
	if filename == "" {
		http.Redirect(w, r, "/workspace/"+assignmentID.Hex(), http.StatusSeeOther)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	if _, err := engine.New(h.DB, h.Log).UploadWork(ctx, assignmentID, userID, filename); err != nil {
		h.Log.Error("upload failed", zap.Error(err))
		uierrors.RenderServerError(w, r, "/workspace")
		return
	}

	http.Redirect(w, r, "/workspace/"+assignmentID.Hex(), http.StatusSeeOther)
}

// Submit turns the student's work in for peer review.
// POST /workspace/{assignmentID}/submit
func (h *Handler) Submit(w http.ResponseWriter, r *http.Request) {
	_, _, userID, _ := authz.UserCtx(r)

	assignmentID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "assignmentID"))
	if err != nil {
		http.NotFound(w, r)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	if err := engine.New(h.DB, h.Log).SubmitForReview(ctx, assignmentID, userID); err != nil {
		h.Log.Error("submit failed", zap.Error(err))
		uierrors.RenderServerError(w, r, "/workspace")
		return
	}

	http.Redirect(w, r, "/workspace/"+assignmentID.Hex(), http.StatusSeeOther)
}

// assignedTo reports whether the student can see the assignment through
// one of their teams.
func (h *Handler) assignedTo(ctx context.Context, studentID primitive.ObjectID, a models.Assignment) (bool, error) {
	teams, err := teamstore.New(h.DB).ListByMember(ctx, studentID)
	if err != nil {
		return false, err
	}
	for _, t := range teams {
		if a.AssignedToTeam(t.ID) {
			return true, nil
		}
	}
	return false, nil
}

// feedbackRows collects submitted peer reviews of the submission with
// reviewer names and score totals.
func (h *Handler) feedbackRows(ctx context.Context, a models.Assignment, submissionID primitive.ObjectID) ([]reviewRow, error) {
	reviews, err := reviewstore.New(h.DB).ListBySubmission(ctx, submissionID)
	if err != nil {
		return nil, err
	}

	maxTotal := 0
	for _, c := range a.Rubric {
		maxTotal += c.MaxPoints
	}

	var reviewerIDs []primitive.ObjectID
	for _, rv := range reviews {
		if rv.Status == models.ReviewSubmitted {
			reviewerIDs = append(reviewerIDs, rv.ReviewerID)
		}
	}
	if len(reviewerIDs) == 0 {
		return nil, nil
	}
	reviewers, err := userstore.New(h.DB).ListByIDs(ctx, reviewerIDs)
	if err != nil {
		return nil, err
	}
	nameByID := make(map[primitive.ObjectID]string, len(reviewers))
	for _, u := range reviewers {
		nameByID[u.ID] = u.FullName
	}

	var rows []reviewRow
	for _, rv := range reviews {
		if rv.Status != models.ReviewSubmitted {
			continue
		}
		rows = append(rows, reviewRow{
			ReviewerName: nameByID[rv.ReviewerID],
			Feedback:     rv.Feedback,
			Total:        rv.TotalScore(),
			MaxTotal:     maxTotal,
		})
	}
	return rows, nil
}
