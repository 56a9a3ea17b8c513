package teams_test

import (
	"net/http"
	"net/url"
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/peerloop/peerloop/internal/app/features/teams"
	teamstore "github.com/peerloop/peerloop/internal/app/store/teams"
	"github.com/peerloop/peerloop/internal/testutil"
)

func newTestHandler(t *testing.T) (*teams.Handler, *testutil.Fixtures) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	return teams.NewHandler(db, zap.NewNop()), testutil.NewFixtures(t, db)
}

func TestCreate_StoresTeam(t *testing.T) {
	handler, fixtures := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	teacher := fixtures.CreateTeacher(ctx, "Dana Fox", "dana@example.com")
	s1 := fixtures.CreateStudent(ctx, "Priya Rao", "priya@example.com")
	s2 := fixtures.CreateStudent(ctx, "Arun Mehta", "arun@example.com")

	form := url.Values{
		"name":       {"Team Alpha"},
		"section":    {"CS-A"},
		"member_ids": {s1.ID.Hex(), s2.ID.Hex()},
	}
	req := testutil.NewFormRequest("/teams", form.Encode(),
		testutil.UserFor(teacher.ID, teacher.FullName, teacher.Email, teacher.Role))

	rec := testutil.NewRecorder()
	handler.Create(rec.ResponseRecorder, req)

	rec.AssertStatus(t, http.StatusSeeOther)
	loc := rec.Header().Get("Location")
	if !strings.HasPrefix(loc, "/teams/") {
		t.Fatalf("Location: got %q, want /teams/{id}", loc)
	}

	stored, err := teamstore.New(handler.DB).List(ctx)
	if err != nil {
		t.Fatalf("listing teams: %v", err)
	}
	if len(stored) != 1 {
		t.Fatalf("teams stored: got %d, want 1", len(stored))
	}
	if stored[0].Name != "Team Alpha" || stored[0].Section != "CS-A" {
		t.Errorf("team: got %q/%q", stored[0].Name, stored[0].Section)
	}
	if len(stored[0].MemberIDs) != 2 {
		t.Errorf("members: got %d, want 2", len(stored[0].MemberIDs))
	}
}

func TestSetMembers_ReplacesRoster(t *testing.T) {
	handler, fixtures := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	teacher := fixtures.CreateTeacher(ctx, "Dana Fox", "dana@example.com")
	s1 := fixtures.CreateStudent(ctx, "Priya Rao", "priya@example.com")
	s2 := fixtures.CreateStudent(ctx, "Arun Mehta", "arun@example.com")
	team := fixtures.CreateTeam(ctx, "Team Alpha", s1.ID)

	form := url.Values{"member_ids": {s2.ID.Hex()}}
	req := testutil.NewFormRequest("/teams/"+team.ID.Hex()+"/members", form.Encode(),
		testutil.UserFor(teacher.ID, teacher.FullName, teacher.Email, teacher.Role))
	req = testutil.WithChiURLParam(req, "teamID", team.ID.Hex())

	rec := testutil.NewRecorder()
	handler.SetMembers(rec.ResponseRecorder, req)

	rec.AssertRedirect(t, "/teams/"+team.ID.Hex())

	updated, err := teamstore.New(handler.DB).GetByID(ctx, team.ID)
	if err != nil {
		t.Fatalf("team lookup failed: %v", err)
	}
	if len(updated.MemberIDs) != 1 || updated.MemberIDs[0] != s2.ID {
		t.Errorf("members after update: got %v, want [%s]", updated.MemberIDs, s2.ID.Hex())
	}
}

func TestDelete_RemovesTeam(t *testing.T) {
	handler, fixtures := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	teacher := fixtures.CreateTeacher(ctx, "Dana Fox", "dana@example.com")
	team := fixtures.CreateTeam(ctx, "Team Alpha")

	req := testutil.NewFormRequest("/teams/"+team.ID.Hex()+"/delete", "",
		testutil.UserFor(teacher.ID, teacher.FullName, teacher.Email, teacher.Role))
	req = testutil.WithChiURLParam(req, "teamID", team.ID.Hex())

	rec := testutil.NewRecorder()
	handler.Delete(rec.ResponseRecorder, req)

	rec.AssertRedirect(t, "/teams")

	if _, err := teamstore.New(handler.DB).GetByID(ctx, team.ID); err == nil {
		t.Error("team still present after delete")
	}
}
