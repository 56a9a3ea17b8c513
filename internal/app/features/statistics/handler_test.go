package statistics_test

import (
	"net/http"
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/peerloop/peerloop/internal/app/features/statistics"
	"github.com/peerloop/peerloop/internal/domain/models"
	"github.com/peerloop/peerloop/internal/testutil"
)

func newTestHandler(t *testing.T) (*statistics.Handler, *testutil.Fixtures) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	return statistics.NewHandler(db, zap.NewNop()), testutil.NewFixtures(t, db)
}

func TestExportStandings_WritesCSV(t *testing.T) {
	handler, fixtures := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	teacher := fixtures.CreateTeacher(ctx, "Dana Fox", "dana@example.com")
	student := fixtures.CreateStudent(ctx, "Priya Rao", "priya@example.com")
	team := fixtures.CreateTeam(ctx, "Team Alpha", student.ID)
	a := fixtures.CreateAssignment(ctx, "Essay One", testutil.StandardRubric(), team.ID)
	fixtures.CreateSubmission(ctx, a.ID, student.ID, models.SubmissionCompleted)

	req := testutil.NewAuthenticatedRequest("GET", "/statistics/standings.csv",
		testutil.UserFor(teacher.ID, teacher.FullName, teacher.Email, teacher.Role))

	rec := testutil.NewRecorder()
	handler.ExportStandings(rec.ResponseRecorder, req)

	rec.AssertStatus(t, http.StatusOK)
	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/csv") {
		t.Errorf("Content-Type: got %q", ct)
	}
	if cd := rec.Header().Get("Content-Disposition"); !strings.Contains(cd, "standings.csv") {
		t.Errorf("Content-Disposition: got %q", cd)
	}

	body := rec.Body.String()
	lines := strings.Split(strings.TrimSpace(body), "\n")
	if len(lines) != 2 {
		t.Fatalf("csv lines: got %d, want 2\n%s", len(lines), body)
	}
	if !strings.HasPrefix(lines[0], "Student,Email") {
		t.Errorf("header: got %q", lines[0])
	}
	if !strings.Contains(lines[1], "Priya Rao") || !strings.Contains(lines[1], "priya@example.com") {
		t.Errorf("row: got %q", lines[1])
	}
}

func TestExportTeams_WritesCSV(t *testing.T) {
	handler, fixtures := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	teacher := fixtures.CreateTeacher(ctx, "Dana Fox", "dana@example.com")
	student := fixtures.CreateStudent(ctx, "Priya Rao", "priya@example.com")
	fixtures.CreateTeam(ctx, "Team Alpha", student.ID)

	req := testutil.NewAuthenticatedRequest("GET", "/statistics/teams.csv",
		testutil.UserFor(teacher.ID, teacher.FullName, teacher.Email, teacher.Role))

	rec := testutil.NewRecorder()
	handler.ExportTeams(rec.ResponseRecorder, req)

	rec.AssertStatus(t, http.StatusOK)

	body := rec.Body.String()
	if !strings.Contains(body, "Team Alpha") {
		t.Errorf("csv missing team row:\n%s", body)
	}
}
