// internal/app/engine/engine.go
//
// Package engine drives the submission and peer review workflow.
// Handlers call it instead of writing to the stores directly so the
// transition rules in internal/domain/lifecycle are applied in
// exactly one place.
package engine

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	assignmentstore "github.com/peerloop/peerloop/internal/app/store/assignments"
	reviewstore "github.com/peerloop/peerloop/internal/app/store/reviews"
	submissionstore "github.com/peerloop/peerloop/internal/app/store/submissions"
	"github.com/peerloop/peerloop/internal/domain/lifecycle"
	"github.com/peerloop/peerloop/internal/domain/models"
)

// DraftContent is the placeholder body given to a submission created
// by a first file upload, before the student writes anything.
const DraftContent = "Draft content..."

var ErrNotReviewed = errors.New("submission has not been reviewed yet")

type Engine struct {
	subs        *submissionstore.Store
	reviews     *reviewstore.Store
	assignments *assignmentstore.Store
	log         *zap.Logger
}

func New(db *mongo.Database, logger *zap.Logger) *Engine {
	return &Engine{
		subs:        submissionstore.New(db),
		reviews:     reviewstore.New(db),
		assignments: assignmentstore.New(db),
		log:         logger,
	}
}

// UploadWork records a file upload for an (assignment, student) pair.
// The first upload creates the submission IN_PROGRESS with a draft
// body; later uploads append to the file list and force the status
// back to IN_PROGRESS from any state, including SUBMITTED. The file
// list never shrinks.
func (e *Engine) UploadWork(ctx context.Context, assignmentID, studentID primitive.ObjectID, filename string) (models.Submission, error) {
	sub, err := e.subs.GetByPair(ctx, assignmentID, studentID)
	if errors.Is(err, mongo.ErrNoDocuments) {
		created, err := e.subs.Create(ctx, models.Submission{
			AssignmentID: assignmentID,
			StudentID:    studentID,
			Content:      DraftContent,
			Files:        []string{filename},
			Status:       models.SubmissionInProgress,
		})
		if err != nil {
			return models.Submission{}, err
		}
		e.log.Info("submission started",
			zap.String("assignment_id", assignmentID.Hex()),
			zap.String("student_id", studentID.Hex()))
		return created, nil
	}
	if err != nil {
		return models.Submission{}, err
	}

	if err := e.subs.AppendFile(ctx, sub.ID, filename); err != nil {
		return models.Submission{}, err
	}
	return e.subs.GetByID(ctx, sub.ID)
}

// SubmitForReview turns in a student's work: status SUBMITTED plus a
// fresh submitted-at stamp. Calling it again re-stamps. When the
// student has no submission at all it does nothing and returns nil.
func (e *Engine) SubmitForReview(ctx context.Context, assignmentID, studentID primitive.ObjectID) error {
	sub, err := e.subs.GetByPair(ctx, assignmentID, studentID)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil
	}
	if err != nil {
		return err
	}
	return e.subs.MarkSubmitted(ctx, sub.ID, time.Now().UTC())
}

// AssignReviewer opens a draft peer review of the submission for the
// given reviewer.
func (e *Engine) AssignReviewer(ctx context.Context, submissionID, reviewerID primitive.ObjectID) (models.PeerReview, error) {
	sub, err := e.subs.GetByID(ctx, submissionID)
	if err != nil {
		return models.PeerReview{}, err
	}
	review, err := e.reviews.Create(ctx, models.PeerReview{
		SubmissionID: sub.ID,
		AssignmentID: sub.AssignmentID,
		ReviewerID:   reviewerID,
		AuthorID:     sub.StudentID,
		Status:       models.ReviewDraft,
	})
	if err != nil {
		return models.PeerReview{}, err
	}
	e.log.Info("reviewer assigned",
		zap.String("submission_id", sub.ID.Hex()),
		zap.String("reviewer_id", reviewerID.Hex()))
	return review, nil
}

// RecordScore validates and persists the points for one rubric
// criterion on a draft review. Out-of-range values are rejected with
// lifecycle.ErrScoreOutOfRange, never clamped.
func (e *Engine) RecordScore(ctx context.Context, reviewID primitive.ObjectID, criterionID string, points int) error {
	review, err := e.reviews.GetByID(ctx, reviewID)
	if err != nil {
		return err
	}
	if review.Status != models.ReviewDraft {
		return lifecycle.ErrReviewNotDraft
	}
	a, err := e.assignments.GetByID(ctx, review.AssignmentID)
	if err != nil {
		return err
	}
	criterion, ok := a.Criterion(criterionID)
	if !ok {
		return lifecycle.ErrUnknownCriterion
	}
	if err := lifecycle.ValidateScore(criterion, points); err != nil {
		return err
	}
	return e.reviews.SetScore(ctx, reviewID, criterionID, points)
}

// SubmitReview finalizes a draft review with the given feedback and
// scores. Every rubric criterion must be scored in range and the
// feedback must meet lifecycle.MinFeedbackLength. On success the
// review becomes SUBMITTED and the reviewed submission moves to
// REVIEWED. The constructive flag and analysis text are optional
// enrichments and never block the transition.
func (e *Engine) SubmitReview(ctx context.Context, reviewID primitive.ObjectID, feedback string, scores map[string]int, constructive *bool, analysis string) error {
	review, err := e.reviews.GetByID(ctx, reviewID)
	if err != nil {
		return err
	}
	a, err := e.assignments.GetByID(ctx, review.AssignmentID)
	if err != nil {
		return err
	}

	review.Feedback = feedback
	review.Scores = scores
	// Every key must name a rubric criterion; a stale or fabricated id
	// must not reach the stored review. Missing keys are caught by
	// ValidateReviewSubmit.
	for id, points := range scores {
		c, ok := a.Criterion(id)
		if !ok {
			return lifecycle.ErrUnknownCriterion
		}
		if err := lifecycle.ValidateScore(c, points); err != nil {
			return err
		}
	}
	if err := lifecycle.ValidateReviewSubmit(&a, &review); err != nil {
		return err
	}

	if err := e.reviews.MarkSubmitted(ctx, reviewID, feedback, scores, constructive, analysis); err != nil {
		return err
	}
	if err := e.subs.SetStatus(ctx, review.SubmissionID, models.SubmissionReviewed); err != nil {
		return err
	}
	e.log.Info("review submitted",
		zap.String("review_id", reviewID.Hex()),
		zap.String("submission_id", review.SubmissionID.Hex()))
	return nil
}

// Complete closes out a reviewed submission. Only REVIEWED work can
// be completed; this is a teacher's grading decision, not part of the
// student flow.
func (e *Engine) Complete(ctx context.Context, submissionID primitive.ObjectID) error {
	sub, err := e.subs.GetByID(ctx, submissionID)
	if err != nil {
		return err
	}
	if !lifecycle.CanComplete(&sub) {
		return ErrNotReviewed
	}
	return e.subs.SetStatus(ctx, submissionID, models.SubmissionCompleted)
}
