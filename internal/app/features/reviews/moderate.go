// internal/app/features/reviews/moderate.go
package reviews

import (
	"context"
	"errors"
	"net/http"

	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/peerloop/peerloop/internal/app/engine"
	uierrors "github.com/peerloop/peerloop/internal/app/features/errors"
	assignmentstore "github.com/peerloop/peerloop/internal/app/store/assignments"
	reviewstore "github.com/peerloop/peerloop/internal/app/store/reviews"
	submissionstore "github.com/peerloop/peerloop/internal/app/store/submissions"
	userstore "github.com/peerloop/peerloop/internal/app/store/users"
	"github.com/peerloop/peerloop/internal/app/system/formutil"
	"github.com/peerloop/peerloop/internal/app/system/timeouts"
	"github.com/peerloop/peerloop/internal/domain/models"
)

type moderateData struct {
	formutil.Base
	Submission  models.Submission
	Assignment  models.Assignment
	StudentName string
	Reviews     []moderateRow
	Candidates  []models.User
	CanComplete bool
}

type moderateRow struct {
	Review       models.PeerReview
	ReviewerName string
	Total        int
}

// SubmissionReviews shows a submission's reviews with controls to
// assign another reviewer or complete the work.
// GET /reviews/submissions/{submissionID}
func (h *Handler) SubmissionReviews(w http.ResponseWriter, r *http.Request) {
	submissionID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "submissionID"))
	if err != nil {
		http.NotFound(w, r)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	sub, err := submissionstore.New(h.DB).GetByID(ctx, submissionID)
	if err != nil {
		http.NotFound(w, r)
		return
	}
	a, err := assignmentstore.New(h.DB).GetByID(ctx, sub.AssignmentID)
	if err != nil {
		h.Log.Error("assignment lookup failed", zap.Error(err))
		uierrors.RenderServerError(w, r, "/assignments")
		return
	}

	data := moderateData{
		Submission:  sub,
		Assignment:  a,
		CanComplete: sub.Status == models.SubmissionReviewed,
	}
	formutil.SetBase(&data.Base, r, "Reviews", "/assignments/"+a.ID.Hex())

	uStore := userstore.New(h.DB)
	if u, err := uStore.GetByID(ctx, sub.StudentID); err == nil {
		data.StudentName = u.FullName
	}

	rvs, err := reviewstore.New(h.DB).ListBySubmission(ctx, submissionID)
	if err != nil {
		h.Log.Error("review lookup failed", zap.Error(err))
		uierrors.RenderServerError(w, r, "/assignments")
		return
	}
	assigned := make(map[primitive.ObjectID]bool, len(rvs))
	for _, rv := range rvs {
		assigned[rv.ReviewerID] = true
		row := moderateRow{Review: rv, Total: rv.TotalScore()}
		if u, err := uStore.GetByID(ctx, rv.ReviewerID); err == nil {
			row.ReviewerName = u.FullName
		}
		data.Reviews = append(data.Reviews, row)
	}

	students, err := uStore.ListByRole(ctx, models.RoleStudent)
	if err != nil {
		h.Log.Error("student list failed", zap.Error(err))
		uierrors.RenderServerError(w, r, "/assignments")
		return
	}
	for _, s := range students {
		// The author never reviews their own work.
		if s.ID == sub.StudentID || assigned[s.ID] {
			continue
		}
		data.Candidates = append(data.Candidates, s)
	}

	templates.Render(w, r, "review_moderate", data)
}

// AssignReviewer opens a draft review of the submission for the chosen
// student.
// POST /reviews/submissions/{submissionID}/assign
func (h *Handler) AssignReviewer(w http.ResponseWriter, r *http.Request) {
	submissionID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "submissionID"))
	if err != nil {
		http.NotFound(w, r)
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad form", http.StatusBadRequest)
		return
	}
	reviewerID, err := primitive.ObjectIDFromHex(r.FormValue("reviewer_id"))
	if err != nil {
		http.Redirect(w, r, "/reviews/submissions/"+submissionID.Hex(), http.StatusSeeOther)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	if _, err := engine.New(h.DB, h.Log).AssignReviewer(ctx, submissionID, reviewerID); err != nil {
		h.Log.Error("reviewer assign failed", zap.Error(err))
		uierrors.RenderServerError(w, r, "/reviews/submissions/"+submissionID.Hex())
		return
	}

	http.Redirect(w, r, "/reviews/submissions/"+submissionID.Hex(), http.StatusSeeOther)
}

// Complete marks reviewed work as done.
// POST /reviews/submissions/{submissionID}/complete
func (h *Handler) Complete(w http.ResponseWriter, r *http.Request) {
	submissionID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "submissionID"))
	if err != nil {
		http.NotFound(w, r)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	if err := engine.New(h.DB, h.Log).Complete(ctx, submissionID); err != nil {
		if errors.Is(err, engine.ErrNotReviewed) {
			uierrors.RenderForbidden(w, r, "Only reviewed work can be completed.",
				"/reviews/submissions/"+submissionID.Hex())
			return
		}
		h.Log.Error("complete failed", zap.Error(err))
		uierrors.RenderServerError(w, r, "/reviews/submissions/"+submissionID.Hex())
		return
	}

	http.Redirect(w, r, "/reviews/submissions/"+submissionID.Hex(), http.StatusSeeOther)
}
