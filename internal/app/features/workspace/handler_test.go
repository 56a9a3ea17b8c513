package workspace_test

import (
	"bytes"
	"io"
	"mime/multipart"
	"net/http/httptest"
	"testing"

	"go.uber.org/zap"

	"github.com/peerloop/peerloop/internal/app/features/workspace"
	submissionstore "github.com/peerloop/peerloop/internal/app/store/submissions"
	"github.com/peerloop/peerloop/internal/domain/models"
	"github.com/peerloop/peerloop/internal/testutil"
)

func newTestHandler(t *testing.T) (*workspace.Handler, *testutil.Fixtures) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	return workspace.NewHandler(db, zap.NewNop()), testutil.NewFixtures(t, db)
}

func multipartUpload(t *testing.T, field, filename, content string) (io.Reader, string) {
	t.Helper()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile(field, filename)
	if err != nil {
		t.Fatalf("creating form file: %v", err)
	}
	if _, err := io.WriteString(part, content); err != nil {
		t.Fatalf("writing form file: %v", err)
	}
	if err := mw.Close(); err != nil {
		t.Fatalf("closing multipart writer: %v", err)
	}
	return &buf, mw.FormDataContentType()
}

func TestUpload_RecordsFile(t *testing.T) {
	handler, fixtures := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	student := fixtures.CreateStudent(ctx, "Priya Rao", "priya@example.com")
	team := fixtures.CreateTeam(ctx, "Team Alpha", student.ID)
	a := fixtures.CreateAssignment(ctx, "Essay One", testutil.StandardRubric(), team.ID)

	body, contentType := multipartUpload(t, "work_file", "draft.pdf", "pdf bytes")
	req := httptest.NewRequest("POST", "/workspace/"+a.ID.Hex()+"/upload", body)
	req.Header.Set("Content-Type", contentType)
	req = testutil.WithUser(req, testutil.UserFor(student.ID, student.FullName, student.Email, student.Role))
	req = testutil.WithChiURLParam(req, "assignmentID", a.ID.Hex())

	rec := testutil.NewRecorder()
	handler.Upload(rec.ResponseRecorder, req)

	rec.AssertRedirect(t, "/workspace/"+a.ID.Hex())

	sub, err := submissionstore.New(handler.DB).GetByPair(ctx, a.ID, student.ID)
	if err != nil {
		t.Fatalf("submission not created: %v", err)
	}
	if sub.Status != models.SubmissionInProgress {
		t.Errorf("status: got %q, want %q", sub.Status, models.SubmissionInProgress)
	}
	if len(sub.Files) != 1 || sub.Files[0] != "draft.pdf" {
		t.Errorf("files: got %v, want [draft.pdf]", sub.Files)
	}
}

func TestSubmit_TurnsWorkIn(t *testing.T) {
	handler, fixtures := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	student := fixtures.CreateStudent(ctx, "Priya Rao", "priya@example.com")
	team := fixtures.CreateTeam(ctx, "Team Alpha", student.ID)
	a := fixtures.CreateAssignment(ctx, "Essay One", testutil.StandardRubric(), team.ID)
	fixtures.CreateSubmission(ctx, a.ID, student.ID, models.SubmissionInProgress)

	req := testutil.NewFormRequest("/workspace/"+a.ID.Hex()+"/submit", "",
		testutil.UserFor(student.ID, student.FullName, student.Email, student.Role))
	req = testutil.WithChiURLParam(req, "assignmentID", a.ID.Hex())

	rec := testutil.NewRecorder()
	handler.Submit(rec.ResponseRecorder, req)

	rec.AssertRedirect(t, "/workspace/"+a.ID.Hex())

	sub, err := submissionstore.New(handler.DB).GetByPair(ctx, a.ID, student.ID)
	if err != nil {
		t.Fatalf("submission lookup failed: %v", err)
	}
	if sub.Status != models.SubmissionSubmitted {
		t.Errorf("status: got %q, want %q", sub.Status, models.SubmissionSubmitted)
	}
	if sub.SubmittedAt == nil {
		t.Error("SubmittedAt was not set")
	}
}
