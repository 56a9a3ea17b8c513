package profile_test

import (
	"net/url"
	"testing"

	"go.uber.org/zap"

	"github.com/peerloop/peerloop/internal/app/features/profile"
	userstore "github.com/peerloop/peerloop/internal/app/store/users"
	"github.com/peerloop/peerloop/internal/testutil"
)

func newTestHandler(t *testing.T) (*profile.Handler, *testutil.Fixtures) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	return profile.NewHandler(db, zap.NewNop()), testutil.NewFixtures(t, db)
}

func TestUpdate_SavesStudentDetails(t *testing.T) {
	handler, fixtures := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	student := fixtures.CreateStudent(ctx, "Priya Rao", "priya@example.com")

	form := url.Values{
		"full_name": {"Priya R. Rao"},
		"branch":    {"Computer Science"},
		"year":      {"Sophomore"},
		"mentor":    {"Dr. Fox"},
	}
	req := testutil.NewFormRequest("/profile", form.Encode(),
		testutil.UserFor(student.ID, student.FullName, student.Email, student.Role))

	rec := testutil.NewRecorder()
	handler.Update(rec.ResponseRecorder, req)

	rec.AssertRedirect(t, "/profile")

	updated, err := userstore.New(handler.DB).GetByID(ctx, student.ID)
	if err != nil {
		t.Fatalf("user lookup failed: %v", err)
	}
	if updated.FullName != "Priya R. Rao" {
		t.Errorf("full name: got %q", updated.FullName)
	}
	if updated.Branch != "Computer Science" || updated.Year != "Sophomore" || updated.Mentor != "Dr. Fox" {
		t.Errorf("details: got %q/%q/%q", updated.Branch, updated.Year, updated.Mentor)
	}
}

func TestUpdate_EmptyNameKeepsExisting(t *testing.T) {
	handler, fixtures := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	student := fixtures.CreateStudent(ctx, "Priya Rao", "priya@example.com")

	form := url.Values{"full_name": {"  "}, "branch": {"Math"}}
	req := testutil.NewFormRequest("/profile", form.Encode(),
		testutil.UserFor(student.ID, student.FullName, student.Email, student.Role))

	rec := testutil.NewRecorder()
	handler.Update(rec.ResponseRecorder, req)

	rec.AssertRedirect(t, "/profile")

	updated, err := userstore.New(handler.DB).GetByID(ctx, student.ID)
	if err != nil {
		t.Fatalf("user lookup failed: %v", err)
	}
	if updated.FullName != "Priya Rao" {
		t.Errorf("full name: got %q, want unchanged", updated.FullName)
	}
}
