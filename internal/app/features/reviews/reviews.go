// internal/app/features/reviews/reviews.go
package reviews

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"

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
	"github.com/peerloop/peerloop/internal/app/system/authz"
	"github.com/peerloop/peerloop/internal/app/system/formutil"
	"github.com/peerloop/peerloop/internal/app/system/timeouts"
	"github.com/peerloop/peerloop/internal/domain/lifecycle"
	"github.com/peerloop/peerloop/internal/domain/models"
)

type listData struct {
	Title      string
	IsLoggedIn bool
	Role       string
	UserName   string

	Pending []listRow
	Done    []listRow
}

type listRow struct {
	Review          models.PeerReview
	AssignmentTitle string
	AuthorName      string
}

// List shows the reviews assigned to the signed-in student.
// GET /reviews
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	role, name, userID, _ := authz.UserCtx(r)

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	myReviews, err := reviewstore.New(h.DB).ListByReviewer(ctx, userID)
	if err != nil {
		h.Log.Error("review list failed", zap.Error(err))
		uierrors.RenderServerError(w, r, "/dashboard")
		return
	}

	data := listData{
		Title:      "Peer reviews",
		IsLoggedIn: true,
		Role:       role,
		UserName:   name,
	}

	aStore := assignmentstore.New(h.DB)
	uStore := userstore.New(h.DB)
	titleCache := make(map[primitive.ObjectID]string)
	nameCache := make(map[primitive.ObjectID]string)
	for _, rv := range myReviews {
		row := listRow{Review: rv}

		if t, ok := titleCache[rv.AssignmentID]; ok {
			row.AssignmentTitle = t
		} else if a, err := aStore.GetByID(ctx, rv.AssignmentID); err == nil {
			titleCache[rv.AssignmentID] = a.Title
			row.AssignmentTitle = a.Title
		}
		if n, ok := nameCache[rv.AuthorID]; ok {
			row.AuthorName = n
		} else if u, err := uStore.GetByID(ctx, rv.AuthorID); err == nil {
			nameCache[rv.AuthorID] = u.FullName
			row.AuthorName = u.FullName
		}

		if rv.Status == models.ReviewDraft {
			data.Pending = append(data.Pending, row)
		} else {
			data.Done = append(data.Done, row)
		}
	}

	templates.Render(w, r, "review_list", data)
}

type formData struct {
	formutil.Base
	Review     models.PeerReview
	Assignment models.Assignment
	AuthorName string
	Work       models.Submission

	Feedback     string
	Scores       map[string]string
	Constructive string
	Analysis     string
	MinFeedback  int
}

// ReviewForm renders the scoring interface for one assigned review.
// GET /reviews/{reviewID}
func (h *Handler) ReviewForm(w http.ResponseWriter, r *http.Request) {
	_, _, userID, _ := authz.UserCtx(r)

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	data, ok := h.loadForm(ctx, w, r, userID)
	if !ok {
		return
	}

	data.Feedback = data.Review.Feedback
	for id, pts := range data.Review.Scores {
		data.Scores[id] = strconv.Itoa(pts)
	}

	formutil.SetBase(&data.Base, r, "Review "+data.AuthorName+"'s work", "/reviews")
	templates.Render(w, r, "review_form", data)
}

// Analyze runs the AI feedback check and re-renders the form with the
// result. The student's scores and feedback are kept as typed.
// POST /reviews/{reviewID}/analyze
func (h *Handler) Analyze(w http.ResponseWriter, r *http.Request) {
	_, _, userID, _ := authz.UserCtx(r)

	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad form", http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Assist())
	defer cancel()

	data, ok := h.loadForm(ctx, w, r, userID)
	if !ok {
		return
	}
	h.fillFromRequest(r, &data)

	rubricContext := describeRubric(data.Assignment)
	analysis := h.Assist.AnalyzeFeedback(ctx, data.Feedback, rubricContext)
	data.Analysis = analysis.Suggestions
	if analysis.Constructive {
		data.Constructive = "true"
	} else {
		data.Constructive = "false"
	}

	formutil.SetBase(&data.Base, r, "Review "+data.AuthorName+"'s work", "/reviews")
	templates.Render(w, r, "review_form", data)
}

// Submit finalizes the review. Validation failures re-render the form
// with everything the student typed still in place.
// POST /reviews/{reviewID}
func (h *Handler) Submit(w http.ResponseWriter, r *http.Request) {
	_, _, userID, _ := authz.UserCtx(r)

	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad form", http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	data, ok := h.loadForm(ctx, w, r, userID)
	if !ok {
		return
	}
	h.fillFromRequest(r, &data)
	formutil.SetBase(&data.Base, r, "Review "+data.AuthorName+"'s work", "/reviews")

	scores := make(map[string]int, len(data.Assignment.Rubric))
	for _, c := range data.Assignment.Rubric {
		raw, ok := data.Scores[c.ID]
		if !ok || raw == "" {
			continue
		}
		pts, err := strconv.Atoi(raw)
		if err != nil {
			formutil.SetError(&data.Base, "Scores must be whole numbers.")
			templates.Render(w, r, "review_form", data)
			return
		}
		scores[c.ID] = pts
	}

	var constructive *bool
	switch data.Constructive {
	case "true":
		v := true
		constructive = &v
	case "false":
		v := false
		constructive = &v
	}

	err := engine.New(h.DB, h.Log).SubmitReview(ctx, data.Review.ID, data.Feedback, scores, constructive, data.Analysis)
	switch {
	case err == nil:
		http.Redirect(w, r, "/reviews", http.StatusSeeOther)
		return
	case errors.Is(err, lifecycle.ErrScoresIncomplete):
		formutil.SetError(&data.Base, "Score every rubric criterion before submitting.")
	case errors.Is(err, lifecycle.ErrScoreOutOfRange):
		formutil.SetError(&data.Base, "One of the scores is outside its criterion's range.")
	case errors.Is(err, lifecycle.ErrFeedbackTooShort):
		formutil.SetError(&data.Base, "Feedback must be at least 20 characters.")
	case errors.Is(err, lifecycle.ErrReviewNotDraft):
		formutil.SetError(&data.Base, "This review was already submitted.")
	default:
		h.Log.Error("review submit failed", zap.Error(err))
		formutil.SetError(&data.Base, "Could not submit the review. Please try again.")
	}

	templates.Render(w, r, "review_form", data)
}

// loadForm resolves the review, checks ownership, and loads the
// assignment, author and submission. It writes the error response
// itself and returns ok=false when the caller should stop.
func (h *Handler) loadForm(ctx context.Context, w http.ResponseWriter, r *http.Request, userID primitive.ObjectID) (formData, bool) {
	reviewID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "reviewID"))
	if err != nil {
		http.NotFound(w, r)
		return formData{}, false
	}

	review, err := reviewstore.New(h.DB).GetByID(ctx, reviewID)
	if err != nil {
		http.NotFound(w, r)
		return formData{}, false
	}
	if review.ReviewerID != userID {
		uierrors.RenderForbidden(w, r, "This review is assigned to someone else.", "/reviews")
		return formData{}, false
	}

	a, err := assignmentstore.New(h.DB).GetByID(ctx, review.AssignmentID)
	if err != nil {
		h.Log.Error("assignment lookup failed", zap.Error(err))
		uierrors.RenderServerError(w, r, "/reviews")
		return formData{}, false
	}
	work, err := submissionstore.New(h.DB).GetByID(ctx, review.SubmissionID)
	if err != nil {
		h.Log.Error("submission lookup failed", zap.Error(err))
		uierrors.RenderServerError(w, r, "/reviews")
		return formData{}, false
	}

	authorName := ""
	if u, err := userstore.New(h.DB).GetByID(ctx, review.AuthorID); err == nil {
		authorName = u.FullName
	}

	role, name, _, _ := authz.UserCtx(r)
	return formData{
		Base: formutil.Base{
			IsLoggedIn: true,
			Role:       role,
			UserName:   name,
		},
		Review:      review,
		Assignment:  a,
		AuthorName:  authorName,
		Work:        work,
		Scores:      map[string]string{},
		MinFeedback: lifecycle.MinFeedbackLength,
	}, true
}

// fillFromRequest copies the posted feedback, scores, and analysis
// state into the form data.
func (h *Handler) fillFromRequest(r *http.Request, data *formData) {
	data.Feedback = strings.TrimSpace(r.FormValue("feedback"))
	data.Constructive = r.FormValue("constructive")
	data.Analysis = strings.TrimSpace(r.FormValue("analysis"))
	for _, c := range data.Assignment.Rubric {
		if v := r.FormValue("score_" + c.ID); v != "" {
			data.Scores[c.ID] = v
		}
	}
}

// describeRubric flattens the rubric into one line of context for the
// feedback analyzer.
func describeRubric(a models.Assignment) string {
	parts := make([]string, 0, len(a.Rubric))
	for _, c := range a.Rubric {
		parts = append(parts, c.Title)
	}
	return a.Title + ": " + strings.Join(parts, ", ")
}
