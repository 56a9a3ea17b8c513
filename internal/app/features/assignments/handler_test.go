package assignments_test

import (
	"net/http"
	"net/url"
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/peerloop/peerloop/internal/app/features/assignments"
	assignmentstore "github.com/peerloop/peerloop/internal/app/store/assignments"
	"github.com/peerloop/peerloop/internal/app/system/assist"
	"github.com/peerloop/peerloop/internal/testutil"
)

func newTestHandler(t *testing.T) (*assignments.Handler, *testutil.Fixtures) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	logger := zap.NewNop()
	return assignments.NewHandler(db, logger, assist.New("", "", logger)), testutil.NewFixtures(t, db)
}

func TestCreate_StoresAssignmentWithRubric(t *testing.T) {
	handler, fixtures := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	teacher := fixtures.CreateTeacher(ctx, "Dana Fox", "dana@example.com")
	team := fixtures.CreateTeam(ctx, "Team Alpha")

	form := url.Values{
		"title":       {"Essay One"},
		"description": {"Write about something you learned."},
		"due_date":    {"2026-12-01"},
		"crit_title":  {"Clarity", "Depth"},
		"crit_desc":   {"Is it clear?", "Is it thorough?"},
		"crit_points": {"10", "20"},
		"team_ids":    {team.ID.Hex()},
	}
	req := testutil.NewFormRequest("/assignments", form.Encode(),
		testutil.UserFor(teacher.ID, teacher.FullName, teacher.Email, teacher.Role))

	rec := testutil.NewRecorder()
	handler.Create(rec.ResponseRecorder, req)

	rec.AssertStatus(t, http.StatusSeeOther)
	loc := rec.Header().Get("Location")
	if !strings.HasPrefix(loc, "/assignments/") {
		t.Fatalf("Location: got %q, want /assignments/{id}", loc)
	}

	created, err := assignmentstore.New(handler.DB).List(ctx)
	if err != nil {
		t.Fatalf("listing assignments: %v", err)
	}
	if len(created) != 1 {
		t.Fatalf("assignments stored: got %d, want 1", len(created))
	}
	a := created[0]
	if a.Title != "Essay One" {
		t.Errorf("title: got %q", a.Title)
	}
	if len(a.Rubric) != 2 {
		t.Fatalf("rubric criteria: got %d, want 2", len(a.Rubric))
	}
	if a.Rubric[0].ID == "" || a.Rubric[1].ID == "" {
		t.Error("rubric criteria were not assigned IDs")
	}
	if a.Rubric[1].MaxPoints != 20 {
		t.Errorf("second criterion max points: got %d, want 20", a.Rubric[1].MaxPoints)
	}
	if len(a.TeamIDs) != 1 || a.TeamIDs[0] != team.ID {
		t.Errorf("team ids: got %v, want [%s]", a.TeamIDs, team.ID.Hex())
	}
	if a.CreatedByID != teacher.ID {
		t.Errorf("created by: got %s, want %s", a.CreatedByID.Hex(), teacher.ID.Hex())
	}
}

func TestDelete_RemovesAssignment(t *testing.T) {
	handler, fixtures := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	teacher := fixtures.CreateTeacher(ctx, "Dana Fox", "dana@example.com")
	a := fixtures.CreateAssignment(ctx, "Essay One", testutil.StandardRubric())

	req := testutil.NewFormRequest("/assignments/"+a.ID.Hex()+"/delete", "",
		testutil.UserFor(teacher.ID, teacher.FullName, teacher.Email, teacher.Role))
	req = testutil.WithChiURLParam(req, "assignmentID", a.ID.Hex())

	rec := testutil.NewRecorder()
	handler.Delete(rec.ResponseRecorder, req)

	rec.AssertRedirect(t, "/assignments")

	if _, err := assignmentstore.New(handler.DB).GetByID(ctx, a.ID); err == nil {
		t.Error("assignment still present after delete")
	}
}
