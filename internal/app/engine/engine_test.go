package engine_test

import (
	"errors"
	"testing"

	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"

	"github.com/peerloop/peerloop/internal/app/engine"
	"github.com/peerloop/peerloop/internal/domain/lifecycle"
	"github.com/peerloop/peerloop/internal/domain/models"
	"github.com/peerloop/peerloop/internal/testutil"
)

func TestUploadWork_CreatesInProgress(t *testing.T) {
	db := testutil.SetupTestDB(t)
	e := engine.New(db, zap.NewNop())
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	student := fixtures.CreateStudent(ctx, "Bob Chen", "bob@test.com")
	a := fixtures.CreateAssignment(ctx, "Research Paper", testutil.StandardRubric())

	sub, err := e.UploadWork(ctx, a.ID, student.ID, "draft.pdf")
	if err != nil {
		t.Fatalf("UploadWork failed: %v", err)
	}
	if sub.Status != models.SubmissionInProgress {
		t.Errorf("status: got %q, want %q", sub.Status, models.SubmissionInProgress)
	}
	if len(sub.Files) != 1 || sub.Files[0] != "draft.pdf" {
		t.Errorf("files: got %v, want [draft.pdf]", sub.Files)
	}
	if sub.Content != engine.DraftContent {
		t.Errorf("content: got %q, want placeholder", sub.Content)
	}
}

func TestUploadWork_AppendNeverShrinksAndForcesInProgress(t *testing.T) {
	db := testutil.SetupTestDB(t)
	e := engine.New(db, zap.NewNop())
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	student := fixtures.CreateStudent(ctx, "Bob Chen", "bob@test.com")
	a := fixtures.CreateAssignment(ctx, "Research Paper", testutil.StandardRubric())

	if _, err := e.UploadWork(ctx, a.ID, student.ID, "v1.pdf"); err != nil {
		t.Fatalf("first upload failed: %v", err)
	}
	if err := e.SubmitForReview(ctx, a.ID, student.ID); err != nil {
		t.Fatalf("SubmitForReview failed: %v", err)
	}

	// Re-uploading after turning in drops the work back to IN_PROGRESS.
	sub, err := e.UploadWork(ctx, a.ID, student.ID, "v2.pdf")
	if err != nil {
		t.Fatalf("second upload failed: %v", err)
	}
	if sub.Status != models.SubmissionInProgress {
		t.Errorf("status after re-upload: got %q, want %q", sub.Status, models.SubmissionInProgress)
	}
	if len(sub.Files) != 2 {
		t.Errorf("files: got %v, want two entries", sub.Files)
	}

	// Duplicate filename still grows the list.
	sub, err = e.UploadWork(ctx, a.ID, student.ID, "v2.pdf")
	if err != nil {
		t.Fatalf("duplicate upload failed: %v", err)
	}
	if len(sub.Files) != 3 {
		t.Errorf("files after duplicate upload: got %d entries, want 3", len(sub.Files))
	}
}

func TestSubmitForReview_NoSubmissionIsNoOp(t *testing.T) {
	db := testutil.SetupTestDB(t)
	e := engine.New(db, zap.NewNop())
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	student := fixtures.CreateStudent(ctx, "Bob Chen", "bob@test.com")
	a := fixtures.CreateAssignment(ctx, "Research Paper", testutil.StandardRubric())

	if err := e.SubmitForReview(ctx, a.ID, student.ID); err != nil {
		t.Fatalf("expected no-op, got error: %v", err)
	}

	n, err := db.Collection("submissions").CountDocuments(ctx, bson.M{})
	if err != nil {
		t.Fatalf("count failed: %v", err)
	}
	if n != 0 {
		t.Errorf("expected no submissions created, found %d", n)
	}
}

func TestSubmitForReview_StampsAndRestamps(t *testing.T) {
	db := testutil.SetupTestDB(t)
	e := engine.New(db, zap.NewNop())
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	student := fixtures.CreateStudent(ctx, "Bob Chen", "bob@test.com")
	a := fixtures.CreateAssignment(ctx, "Research Paper", testutil.StandardRubric())

	sub, err := e.UploadWork(ctx, a.ID, student.ID, "draft.pdf")
	if err != nil {
		t.Fatalf("UploadWork failed: %v", err)
	}
	if err := e.SubmitForReview(ctx, a.ID, student.ID); err != nil {
		t.Fatalf("SubmitForReview failed: %v", err)
	}

	var got models.Submission
	if err := db.Collection("submissions").FindOne(ctx, bson.M{"_id": sub.ID}).Decode(&got); err != nil {
		t.Fatalf("reload failed: %v", err)
	}
	if got.Status != models.SubmissionSubmitted {
		t.Errorf("status: got %q, want %q", got.Status, models.SubmissionSubmitted)
	}
	if got.SubmittedAt == nil {
		t.Fatal("expected submitted-at to be set")
	}

	first := *got.SubmittedAt
	if err := e.SubmitForReview(ctx, a.ID, student.ID); err != nil {
		t.Fatalf("re-submit failed: %v", err)
	}
	if err := db.Collection("submissions").FindOne(ctx, bson.M{"_id": sub.ID}).Decode(&got); err != nil {
		t.Fatalf("reload failed: %v", err)
	}
	if got.SubmittedAt == nil || got.SubmittedAt.Before(first) {
		t.Error("expected re-submission to re-stamp submitted-at")
	}
}

func TestRecordScore_Boundaries(t *testing.T) {
	db := testutil.SetupTestDB(t)
	e := engine.New(db, zap.NewNop())
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	author := fixtures.CreateStudent(ctx, "Bob Chen", "bob@test.com")
	reviewer := fixtures.CreateStudent(ctx, "Alice Park", "alice@test.com")
	a := fixtures.CreateAssignment(ctx, "Research Paper", testutil.StandardRubric())
	sub := fixtures.CreateSubmission(ctx, a.ID, author.ID, models.SubmissionSubmitted)
	review := fixtures.CreateDraftReview(ctx, sub, reviewer.ID)

	// r1 max is 10
	if err := e.RecordScore(ctx, review.ID, "r1", -1); !errors.Is(err, lifecycle.ErrScoreOutOfRange) {
		t.Errorf("score -1: got %v, want ErrScoreOutOfRange", err)
	}
	if err := e.RecordScore(ctx, review.ID, "r1", 11); !errors.Is(err, lifecycle.ErrScoreOutOfRange) {
		t.Errorf("score 11: got %v, want ErrScoreOutOfRange", err)
	}
	if err := e.RecordScore(ctx, review.ID, "r1", 0); err != nil {
		t.Errorf("score 0 should be accepted: %v", err)
	}
	if err := e.RecordScore(ctx, review.ID, "r1", 10); err != nil {
		t.Errorf("score 10 should be accepted: %v", err)
	}
	if err := e.RecordScore(ctx, review.ID, "bogus", 5); !errors.Is(err, lifecycle.ErrUnknownCriterion) {
		t.Errorf("unknown criterion: got %v, want ErrUnknownCriterion", err)
	}
}

func TestSubmitReview_ValidationAndTransition(t *testing.T) {
	db := testutil.SetupTestDB(t)
	e := engine.New(db, zap.NewNop())
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	author := fixtures.CreateStudent(ctx, "Bob Chen", "bob@test.com")
	reviewer := fixtures.CreateStudent(ctx, "Alice Park", "alice@test.com")
	a := fixtures.CreateAssignment(ctx, "Research Paper", testutil.StandardRubric())
	sub := fixtures.CreateSubmission(ctx, a.ID, author.ID, models.SubmissionSubmitted)
	review := fixtures.CreateDraftReview(ctx, sub, reviewer.ID)

	short := "nineteen chars xxxx" // 19 characters
	incomplete := map[string]int{"r1": 8, "r2": 15}
	if err := e.SubmitReview(ctx, review.ID, short, incomplete, nil, ""); err == nil {
		t.Fatal("expected short/incomplete review to be rejected")
	}

	exact := "exactly twenty chars" // 20 characters
	full := map[string]int{"r1": 8, "r2": 15, "r3": 10}
	if err := e.SubmitReview(ctx, review.ID, exact, full, nil, ""); err != nil {
		t.Fatalf("SubmitReview failed: %v", err)
	}

	var gotReview models.PeerReview
	if err := db.Collection("peer_reviews").FindOne(ctx, bson.M{"_id": review.ID}).Decode(&gotReview); err != nil {
		t.Fatalf("reload review failed: %v", err)
	}
	if gotReview.Status != models.ReviewSubmitted {
		t.Errorf("review status: got %q, want %q", gotReview.Status, models.ReviewSubmitted)
	}

	var gotSub models.Submission
	if err := db.Collection("submissions").FindOne(ctx, bson.M{"_id": sub.ID}).Decode(&gotSub); err != nil {
		t.Fatalf("reload submission failed: %v", err)
	}
	if gotSub.Status != models.SubmissionReviewed {
		t.Errorf("submission status: got %q, want %q", gotSub.Status, models.SubmissionReviewed)
	}
}

func TestSubmitReview_RejectsOutOfRangeScore(t *testing.T) {
	db := testutil.SetupTestDB(t)
	e := engine.New(db, zap.NewNop())
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	author := fixtures.CreateStudent(ctx, "Bob Chen", "bob@test.com")
	reviewer := fixtures.CreateStudent(ctx, "Alice Park", "alice@test.com")
	a := fixtures.CreateAssignment(ctx, "Research Paper", testutil.StandardRubric())
	sub := fixtures.CreateSubmission(ctx, a.ID, author.ID, models.SubmissionSubmitted)
	review := fixtures.CreateDraftReview(ctx, sub, reviewer.ID)

	scores := map[string]int{"r1": 11, "r2": 15, "r3": 10} // r1 over max
	err := e.SubmitReview(ctx, review.ID, "plenty long written feedback here", scores, nil, "")
	if !errors.Is(err, lifecycle.ErrScoreOutOfRange) {
		t.Errorf("got %v, want ErrScoreOutOfRange", err)
	}
}

func TestSubmitReview_RejectsUnknownScoreKey(t *testing.T) {
	db := testutil.SetupTestDB(t)
	e := engine.New(db, zap.NewNop())
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	author := fixtures.CreateStudent(ctx, "Bob Chen", "bob@test.com")
	reviewer := fixtures.CreateStudent(ctx, "Alice Park", "alice@test.com")
	a := fixtures.CreateAssignment(ctx, "Research Paper", testutil.StandardRubric())
	sub := fixtures.CreateSubmission(ctx, a.ID, author.ID, models.SubmissionSubmitted)
	review := fixtures.CreateDraftReview(ctx, sub, reviewer.ID)

	// All rubric criteria scored, plus a key from a criterion that no
	// longer exists. Nothing may be persisted.
	scores := map[string]int{"r1": 8, "r2": 15, "r3": 10, "removed": 5}
	err := e.SubmitReview(ctx, review.ID, "plenty long written feedback here", scores, nil, "")
	if !errors.Is(err, lifecycle.ErrUnknownCriterion) {
		t.Errorf("got %v, want ErrUnknownCriterion", err)
	}

	var gotReview models.PeerReview
	if err := db.Collection("peer_reviews").FindOne(ctx, bson.M{"_id": review.ID}).Decode(&gotReview); err != nil {
		t.Fatalf("reload review failed: %v", err)
	}
	if gotReview.Status != models.ReviewDraft {
		t.Errorf("review status: got %q, want %q", gotReview.Status, models.ReviewDraft)
	}
	if _, ok := gotReview.Scores["removed"]; ok {
		t.Error("stale score key was persisted")
	}
}

func TestComplete_OnlyFromReviewed(t *testing.T) {
	db := testutil.SetupTestDB(t)
	e := engine.New(db, zap.NewNop())
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	student := fixtures.CreateStudent(ctx, "Bob Chen", "bob@test.com")
	a := fixtures.CreateAssignment(ctx, "Research Paper", testutil.StandardRubric())

	submitted := fixtures.CreateSubmission(ctx, a.ID, student.ID, models.SubmissionSubmitted)
	if err := e.Complete(ctx, submitted.ID); !errors.Is(err, engine.ErrNotReviewed) {
		t.Errorf("completing SUBMITTED work: got %v, want ErrNotReviewed", err)
	}

	other := fixtures.CreateStudent(ctx, "Dana Lee", "dana@test.com")
	reviewed := fixtures.CreateSubmission(ctx, a.ID, other.ID, models.SubmissionReviewed)
	if err := e.Complete(ctx, reviewed.ID); err != nil {
		t.Fatalf("Complete failed: %v", err)
	}

	var got models.Submission
	if err := db.Collection("submissions").FindOne(ctx, bson.M{"_id": reviewed.ID}).Decode(&got); err != nil {
		t.Fatalf("reload failed: %v", err)
	}
	if got.Status != models.SubmissionCompleted {
		t.Errorf("status: got %q, want %q", got.Status, models.SubmissionCompleted)
	}
}

// Full workflow: upload, turn in, score, review, complete.
func TestReviewWorkflow_EndToEnd(t *testing.T) {
	db := testutil.SetupTestDB(t)
	e := engine.New(db, zap.NewNop())
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	author := fixtures.CreateStudent(ctx, "Bob Chen", "bob@test.com")
	reviewer := fixtures.CreateStudent(ctx, "Alice Park", "alice@test.com")
	a := fixtures.CreateAssignment(ctx, "Research Paper", testutil.StandardRubric())

	sub, err := e.UploadWork(ctx, a.ID, author.ID, "draft.pdf")
	if err != nil {
		t.Fatalf("UploadWork failed: %v", err)
	}
	if sub.Status != models.SubmissionInProgress {
		t.Fatalf("after upload: got %q, want IN_PROGRESS", sub.Status)
	}

	if err := e.SubmitForReview(ctx, a.ID, author.ID); err != nil {
		t.Fatalf("SubmitForReview failed: %v", err)
	}

	review, err := e.AssignReviewer(ctx, sub.ID, reviewer.ID)
	if err != nil {
		t.Fatalf("AssignReviewer failed: %v", err)
	}
	if review.Status != models.ReviewDraft {
		t.Fatalf("new review: got %q, want DRAFT", review.Status)
	}
	if review.AuthorID != author.ID {
		t.Errorf("review author: got %v, want %v", review.AuthorID, author.ID)
	}

	for id, points := range map[string]int{"r1": 8, "r2": 15, "r3": 10} {
		if err := e.RecordScore(ctx, review.ID, id, points); err != nil {
			t.Fatalf("RecordScore(%s, %d) failed: %v", id, points, err)
		}
	}

	feedback := "Strong draft, tighten the conclusion." // 37 characters
	scores := map[string]int{"r1": 8, "r2": 15, "r3": 10}
	constructive := true
	if err := e.SubmitReview(ctx, review.ID, feedback, scores, &constructive, "Well balanced feedback."); err != nil {
		t.Fatalf("SubmitReview failed: %v", err)
	}

	var gotSub models.Submission
	if err := db.Collection("submissions").FindOne(ctx, bson.M{"_id": sub.ID}).Decode(&gotSub); err != nil {
		t.Fatalf("reload submission failed: %v", err)
	}
	if gotSub.Status != models.SubmissionReviewed {
		t.Fatalf("after review: got %q, want REVIEWED", gotSub.Status)
	}

	if err := e.Complete(ctx, sub.ID); err != nil {
		t.Fatalf("Complete failed: %v", err)
	}

	standing, err := e.StudentStanding(ctx, reviewer.ID)
	if err != nil {
		t.Fatalf("StudentStanding failed: %v", err)
	}
	if standing.ReviewsDone != 1 {
		t.Errorf("reviews done: got %d, want 1", standing.ReviewsDone)
	}
	if standing.Badge != "Beginner" {
		t.Errorf("badge: got %q, want Beginner", standing.Badge)
	}
}
