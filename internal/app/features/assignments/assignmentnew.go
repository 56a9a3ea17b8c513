// internal/app/features/assignments/assignmentnew.go
package assignments

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/peerloop/peerloop/internal/app/features/errors"
	assignmentstore "github.com/peerloop/peerloop/internal/app/store/assignments"
	teamstore "github.com/peerloop/peerloop/internal/app/store/teams"
	"github.com/peerloop/peerloop/internal/app/system/authz"
	"github.com/peerloop/peerloop/internal/app/system/formutil"
	"github.com/peerloop/peerloop/internal/app/system/inputval"
	"github.com/peerloop/peerloop/internal/app/system/timeouts"
	"github.com/peerloop/peerloop/internal/domain/models"
)

const dueDateLayout = "2006-01-02"

type criterionForm struct {
	Title       string `validate:"required"`
	Description string
	MaxPoints   int `validate:"gte=1,lte=100"`
}

type assignmentForm struct {
	Title    string          `validate:"required"`
	DueDate  time.Time       `validate:"required"`
	Criteria []criterionForm `validate:"min=1,dive"`
}

// createMessage maps the first failed rule to the message shown above
// the form. Criterion failures carry an indexed path ("Criteria[2].Title").
func createMessage(err error) string {
	f := inputval.FirstField(err)
	switch {
	case f == "Title":
		return "Title is required."
	case f == "DueDate":
		return "A valid due date is required."
	case f == "Criteria":
		return "Add at least one rubric criterion."
	case strings.HasSuffix(f, ".Title"):
		return "Every criterion needs a title."
	case strings.HasSuffix(f, ".MaxPoints"):
		return "Criterion points must be between 1 and 100."
	}
	return "Please check the form and try again."
}

type newData struct {
	formutil.Base
	FormTitle       string
	Description     string
	DueDate         string
	Criteria        []criterionForm
	Teams           []models.Team
	SelectedTeamIDs map[string]bool
	AssistEnabled   bool
}

// NewForm renders the assignment creation form.
// GET /assignments/new
func (h *Handler) NewForm(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	teams, err := teamstore.New(h.DB).List(ctx)
	if err != nil {
		h.Log.Error("team list failed", zap.Error(err))
		errors.RenderServerError(w, r, "/assignments")
		return
	}

	data := newData{
		Teams:           teams,
		SelectedTeamIDs: map[string]bool{},
		Criteria:        []criterionForm{{MaxPoints: 10}},
		AssistEnabled:   h.Assist.Enabled(),
	}
	formutil.SetBase(&data.Base, r, "New assignment", "/assignments")
	templates.Render(w, r, "assignment_new", data)
}

// DraftRubric asks the assist service to propose criteria from the
// title and description, then re-renders the form with them filled in.
// POST /assignments/new/draft
func (h *Handler) DraftRubric(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad form", http.StatusBadRequest)
		return
	}

	data, _ := h.formFromRequest(r)
	formutil.SetBase(&data.Base, r, "New assignment", "/assignments")

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Assist())
	defer cancel()

	suggestions := h.Assist.DraftRubric(ctx, data.FormTitle, data.Description)
	if len(suggestions) == 0 {
		formutil.SetError(&data.Base, "Could not draft a rubric right now. Add criteria manually.")
	} else {
		data.Criteria = data.Criteria[:0]
		for _, s := range suggestions {
			data.Criteria = append(data.Criteria, criterionForm{
				Title:       s.Title,
				Description: s.Description,
				MaxPoints:   s.MaxPoints,
			})
		}
	}

	h.loadTeams(r, &data)
	templates.Render(w, r, "assignment_new", data)
}

// Create validates the form and stores the assignment. Each rubric
// criterion gets a fresh opaque ID so scores can reference it.
// POST /assignments
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad form", http.StatusBadRequest)
		return
	}

	_, _, userID, _ := authz.UserCtx(r)

	data, due := h.formFromRequest(r)
	formutil.SetBase(&data.Base, r, "New assignment", "/assignments")

	form := assignmentForm{Title: data.FormTitle, DueDate: due, Criteria: data.Criteria}
	if err := inputval.CheckStruct(form); err != nil {
		formutil.SetError(&data.Base, createMessage(err))
		h.loadTeams(r, &data)
		templates.Render(w, r, "assignment_new", data)
		return
	}

	rubric := make([]models.RubricCriterion, 0, len(data.Criteria))
	for _, c := range data.Criteria {
		rubric = append(rubric, models.RubricCriterion{
			ID:          uuid.NewString(),
			Title:       c.Title,
			Description: c.Description,
			MaxPoints:   c.MaxPoints,
		})
	}

	var teamIDs []primitive.ObjectID
	for hex := range data.SelectedTeamIDs {
		id, err := primitive.ObjectIDFromHex(hex)
		if err == nil {
			teamIDs = append(teamIDs, id)
		}
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	created, err := assignmentstore.New(h.DB).Create(ctx, models.Assignment{
		Title:       data.FormTitle,
		Description: data.Description,
		DueDate:     due,
		Rubric:      rubric,
		TeamIDs:     teamIDs,
		CreatedByID: userID,
	})
	if err != nil {
		h.Log.Error("assignment create failed", zap.Error(err))
		formutil.SetError(&data.Base, "Could not create the assignment. Please try again.")
		h.loadTeams(r, &data)
		templates.Render(w, r, "assignment_new", data)
		return
	}

	http.Redirect(w, r, "/assignments/"+created.ID.Hex(), http.StatusSeeOther)
}

// formFromRequest rebuilds the form state from a parsed request. The
// due date is returned separately; zero means missing or unparseable.
func (h *Handler) formFromRequest(r *http.Request) (newData, time.Time) {
	data := newData{
		FormTitle:       strings.TrimSpace(r.FormValue("title")),
		Description:     strings.TrimSpace(r.FormValue("description")),
		DueDate:         r.FormValue("due_date"),
		SelectedTeamIDs: map[string]bool{},
		AssistEnabled:   h.Assist.Enabled(),
	}
	for _, hex := range r.Form["team_ids"] {
		data.SelectedTeamIDs[hex] = true
	}

	titles := r.Form["crit_title"]
	descs := r.Form["crit_desc"]
	points := r.Form["crit_points"]
	for i := range titles {
		c := criterionForm{Title: strings.TrimSpace(titles[i])}
		if i < len(descs) {
			c.Description = strings.TrimSpace(descs[i])
		}
		if i < len(points) {
			c.MaxPoints, _ = strconv.Atoi(points[i])
		}
		if c.Title == "" && c.Description == "" && c.MaxPoints == 0 {
			continue // skip blank rows
		}
		data.Criteria = append(data.Criteria, c)
	}

	var due time.Time
	if t, err := time.Parse(dueDateLayout, data.DueDate); err == nil {
		due = t.UTC()
	}
	return data, due
}

// loadTeams fills the team choices for a re-render; failures just leave
// the list empty rather than losing the user's input.
func (h *Handler) loadTeams(r *http.Request, data *newData) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	teams, err := teamstore.New(h.DB).List(ctx)
	if err != nil {
		h.Log.Warn("team list failed", zap.Error(err))
		return
	}
	data.Teams = teams
}
