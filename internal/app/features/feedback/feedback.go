// internal/app/features/feedback/feedback.go
package feedback

import (
	"context"
	"net/http"
	"strings"

	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	uierrors "github.com/peerloop/peerloop/internal/app/features/errors"
	feedbackstore "github.com/peerloop/peerloop/internal/app/store/feedback"
	"github.com/peerloop/peerloop/internal/app/system/authz"
	"github.com/peerloop/peerloop/internal/app/system/formutil"
	"github.com/peerloop/peerloop/internal/app/system/htmlsanitize"
	"github.com/peerloop/peerloop/internal/app/system/normalize"
	"github.com/peerloop/peerloop/internal/app/system/timeouts"
	"github.com/peerloop/peerloop/internal/domain/models"
)

// Handler serves the public feedback wall.
type Handler struct {
	DB  *mongo.Database
	Log *zap.Logger
}

func NewHandler(db *mongo.Database, logger *zap.Logger) *Handler {
	return &Handler{DB: db, Log: logger}
}

// Routes is mounted at /feedback. The wall is public.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.Wall)
	r.Post("/", h.Post)
	return r
}

type wallData struct {
	formutil.Base
	Posts    []models.FeedbackPost
	Name     string
	PostRole string
}

// Wall shows the feedback posts, newest first. Anyone can read it.
// GET /feedback
func (h *Handler) Wall(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	posts, err := feedbackstore.New(h.DB).List(ctx)
	if err != nil {
		h.Log.Error("feedback list failed", zap.Error(err))
		uierrors.RenderServerError(w, r, "/")
		return
	}

	data := wallData{Posts: posts}
	formutil.SetBase(&data.Base, r, "Feedback", "/")
	if _, name, _, ok := authz.UserCtx(r); ok {
		data.Name = name
	}

	templates.Render(w, r, "feedback_wall", data)
}

// Post adds a feedback entry. The signed-in identity wins over the
// form fields when present.
// POST /feedback
func (h *Handler) Post(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad form", http.StatusBadRequest)
		return
	}

	postName := normalize.Name(r.FormValue("name"))
	postRole := normalize.Role(r.FormValue("role"))
	message := strings.TrimSpace(htmlsanitize.StripTags(r.FormValue("message")))

	if role, name, _, ok := authz.UserCtx(r); ok {
		postName = name
		postRole = role
	}
	if postName == "" || message == "" {
		http.Redirect(w, r, "/feedback", http.StatusSeeOther)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	_, err := feedbackstore.New(h.DB).Create(ctx, models.FeedbackPost{
		UserName: postName,
		Role:     postRole,
		Message:  message,
	})
	if err != nil {
		h.Log.Error("feedback create failed", zap.Error(err))
		uierrors.RenderServerError(w, r, "/feedback")
		return
	}

	http.Redirect(w, r, "/feedback", http.StatusSeeOther)
}
