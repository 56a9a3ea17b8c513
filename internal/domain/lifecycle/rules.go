// internal/domain/lifecycle/rules.go
//
// Package lifecycle holds the pure rules of the submission and peer
// review state machines: which transitions are legal, when a review
// may be submitted, and the derived progress and badge metrics. It
// has no storage or transport dependencies so the rules can be tested
// directly.
package lifecycle

import (
	"errors"
	"unicode/utf8"

	"github.com/peerloop/peerloop/internal/domain/models"
)

// MinFeedbackLength is the minimum written feedback, in characters,
// required before a peer review may be submitted.
const MinFeedbackLength = 20

var (
	ErrScoreOutOfRange  = errors.New("score out of range for criterion")
	ErrUnknownCriterion = errors.New("unknown rubric criterion")
	ErrFeedbackTooShort = errors.New("feedback is too short")
	ErrScoresIncomplete = errors.New("not all rubric criteria are scored")
	ErrReviewNotDraft   = errors.New("review is not in draft")
)

// ValidateScore checks a proposed score for one rubric criterion.
// Valid scores are whole points from zero through the criterion's
// maximum, inclusive at both ends. Out-of-range values are rejected,
// never clamped.
func ValidateScore(c models.RubricCriterion, points int) error {
	if points < 0 || points > c.MaxPoints {
		return ErrScoreOutOfRange
	}
	return nil
}

// ValidateReviewSubmit checks whether a draft review is ready to be
// submitted against its assignment's rubric: every criterion must
// carry a recorded score and the written feedback must meet
// MinFeedbackLength. A recorded zero satisfies the scored check.
func ValidateReviewSubmit(a *models.Assignment, r *models.PeerReview) error {
	if r.Status != models.ReviewDraft {
		return ErrReviewNotDraft
	}
	for _, c := range a.Rubric {
		if _, ok := r.Scores[c.ID]; !ok {
			return ErrScoresIncomplete
		}
	}
	if utf8.RuneCountInString(r.Feedback) < MinFeedbackLength {
		return ErrFeedbackTooShort
	}
	return nil
}

// CanComplete reports whether a submission may be marked COMPLETED by
// a teacher. Only reviewed work can be closed out.
func CanComplete(s *models.Submission) bool {
	return s.Status == models.SubmissionReviewed
}
