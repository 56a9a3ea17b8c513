// internal/app/features/collaborate/collaborate.go
package collaborate

import (
	"context"
	"net/http"
	"strings"

	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	uierrors "github.com/peerloop/peerloop/internal/app/features/errors"
	assignmentstore "github.com/peerloop/peerloop/internal/app/store/assignments"
	messagestore "github.com/peerloop/peerloop/internal/app/store/messages"
	"github.com/peerloop/peerloop/internal/app/system/authz"
	"github.com/peerloop/peerloop/internal/app/system/formutil"
	"github.com/peerloop/peerloop/internal/app/system/htmlsanitize"
	"github.com/peerloop/peerloop/internal/app/system/timeouts"
	"github.com/peerloop/peerloop/internal/domain/models"
)

// maxMessageLength caps a single chat message.
const maxMessageLength = 2000

type indexData struct {
	Title      string
	IsLoggedIn bool
	Role       string
	UserName   string

	Assignments []models.Assignment
}

// Index lists assignments that have a discussion thread.
// GET /collaborate
func (h *Handler) Index(w http.ResponseWriter, r *http.Request) {
	role, name, _, _ := authz.UserCtx(r)

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	assignments, err := assignmentstore.New(h.DB).List(ctx)
	if err != nil {
		h.Log.Error("assignment list failed", zap.Error(err))
		uierrors.RenderServerError(w, r, "/dashboard")
		return
	}

	data := indexData{
		Title:       "Collaborate",
		IsLoggedIn:  true,
		Role:        role,
		UserName:    name,
		Assignments: assignments,
	}
	templates.Render(w, r, "collaborate_index", data)
}

type threadData struct {
	formutil.Base
	Assignment models.Assignment
	Messages   []models.ChatMessage
	Summary    string
}

// Thread shows the discussion for one assignment.
// GET /collaborate/{assignmentID}
func (h *Handler) Thread(w http.ResponseWriter, r *http.Request) {
	assignmentID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "assignmentID"))
	if err != nil {
		http.NotFound(w, r)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	data, ok := h.loadThread(ctx, w, r, assignmentID)
	if !ok {
		return
	}

	templates.Render(w, r, "collaborate_thread", data)
}

// Post appends a message to the thread. Messages are plain text; any
// markup is stripped before storing.
// POST /collaborate/{assignmentID}
func (h *Handler) Post(w http.ResponseWriter, r *http.Request) {
	_, name, userID, _ := authz.UserCtx(r)

	assignmentID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "assignmentID"))
	if err != nil {
		http.NotFound(w, r)
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad form", http.StatusBadRequest)
		return
	}

	text := strings.TrimSpace(htmlsanitize.StripTags(r.FormValue("text")))
	if text == "" {
		http.Redirect(w, r, "/collaborate/"+assignmentID.Hex(), http.StatusSeeOther)
		return
	}
	if len(text) > maxMessageLength {
		text = text[:maxMessageLength]
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	_, err = messagestore.New(h.DB).Create(ctx, models.ChatMessage{
		AssignmentID: assignmentID,
		SenderID:     userID,
		SenderName:   name,
		Text:         text,
	})
	if err != nil {
		h.Log.Error("message create failed", zap.Error(err))
		uierrors.RenderServerError(w, r, "/collaborate")
		return
	}

	http.Redirect(w, r, "/collaborate/"+assignmentID.Hex(), http.StatusSeeOther)
}

// Summarize asks the assist service for a short summary of the thread
// and re-renders it with the result.
// POST /collaborate/{assignmentID}/summarize
func (h *Handler) Summarize(w http.ResponseWriter, r *http.Request) {
	assignmentID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "assignmentID"))
	if err != nil {
		http.NotFound(w, r)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Assist())
	defer cancel()

	data, ok := h.loadThread(ctx, w, r, assignmentID)
	if !ok {
		return
	}

	lines := make([]string, 0, len(data.Messages))
	for _, m := range data.Messages {
		lines = append(lines, m.SenderName+": "+m.Text)
	}
	data.Summary = h.Assist.SummarizeChat(ctx, lines)

	templates.Render(w, r, "collaborate_thread", data)
}

func (h *Handler) loadThread(ctx context.Context, w http.ResponseWriter, r *http.Request, assignmentID primitive.ObjectID) (threadData, bool) {
	a, err := assignmentstore.New(h.DB).GetByID(ctx, assignmentID)
	if err != nil {
		http.NotFound(w, r)
		return threadData{}, false
	}

	msgs, err := messagestore.New(h.DB).ListByAssignment(ctx, assignmentID)
	if err != nil {
		h.Log.Error("message list failed", zap.Error(err))
		uierrors.RenderServerError(w, r, "/collaborate")
		return threadData{}, false
	}

	data := threadData{Assignment: a, Messages: msgs}
	formutil.SetBase(&data.Base, r, a.Title+" · Discussion", "/collaborate")
	return data, true
}
